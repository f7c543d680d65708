package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/garyjia/rental-invoice/internal/config"
	"github.com/garyjia/rental-invoice/internal/domain/document"
	"github.com/garyjia/rental-invoice/internal/domain/entity"
	"github.com/garyjia/rental-invoice/internal/domain/totals"
	"github.com/garyjia/rental-invoice/internal/infrastructure/logo"
	"github.com/garyjia/rental-invoice/internal/infrastructure/render"
	"github.com/garyjia/rental-invoice/internal/infrastructure/storage"
	"github.com/garyjia/rental-invoice/pkg/utils"
)

func newApp(stdout io.Writer) *cli.App {
	return &cli.App{
		Name:      "invoicectl",
		Usage:     "render rental invoices from YAML or JSON documents",
		Writer:    stdout,
		ErrWriter: os.Stderr,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "path to the YAML config file",
				Value:   "configs/config.yaml",
				EnvVars: []string{"INVOICE_CONFIG"},
			},
			&cli.BoolFlag{
				Name:    "verbose",
				Aliases: []string{"v"},
				Usage:   "log debug output to stderr",
			},
		},
		Commands: []*cli.Command{
			renderCommand(),
			totalsCommand(),
			newCommand(),
		},
	}
}

func renderCommand() *cli.Command {
	return &cli.Command{
		Name:  "render",
		Usage: "render a document to html, pdf or xlsx",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "in", Aliases: []string{"i"}, Usage: "document file (.yaml, .yml or .json)", Required: true},
			&cli.StringFlag{Name: "format", Aliases: []string{"f"}, Usage: "html, pdf or xlsx", Value: "pdf"},
			&cli.StringFlag{Name: "out", Aliases: []string{"o"}, Usage: "output file; defaults to a name derived from the invoice number"},
			&cli.StringFlag{Name: "logo", Usage: "image file to use as the company logo"},
		},
		Action: func(c *cli.Context) error {
			cfg, logger, err := setup(c)
			if err != nil {
				return err
			}
			defer logger.Sync()

			format, err := render.ParseFormat(c.String("format"))
			if err != nil {
				return err
			}

			store, err := loadStore(c.String("in"), cfg)
			if err != nil {
				return err
			}

			if path := c.String("logo"); path != "" {
				dataURI, err := logo.NewReader(cfg.Logo.MaxBytes, logger).ReadFile(c.Context, path)
				if err != nil {
					return err
				}
				store.SetLogo(dataURI)
			}

			registry := render.NewRegistry(
				render.NewHTMLRenderer(logger),
				render.NewPDFRenderer(logger),
				render.NewXLSXRenderer(logger),
			)
			renderer, err := registry.For(format)
			if err != nil {
				return err
			}

			inv := store.Snapshot()
			content, err := renderer.Render(c.Context, render.NewInput(inv, cfg.Invoice.Currency()))
			if err != nil {
				return err
			}

			out, err := writeOutput(c.Context, c.String("out"), storage.ExportName(inv.InvoiceNumber, format.Extension(), time.Now()), content, logger)
			if err != nil {
				return err
			}

			fmt.Fprintln(c.App.Writer, out)
			return nil
		},
	}
}

func totalsCommand() *cli.Command {
	return &cli.Command{
		Name:  "totals",
		Usage: "print subtotal, tax and total of a document",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "in", Aliases: []string{"i"}, Usage: "document file (.yaml, .yml or .json)", Required: true},
			&cli.BoolFlag{Name: "json", Usage: "print raw values as JSON"},
		},
		Action: func(c *cli.Context) error {
			cfg, logger, err := setup(c)
			if err != nil {
				return err
			}
			defer logger.Sync()

			store, err := loadStore(c.String("in"), cfg)
			if err != nil {
				return err
			}

			inv := store.Snapshot()
			t := totals.Compute(inv)

			if c.Bool("json") {
				enc := json.NewEncoder(c.App.Writer)
				enc.SetIndent("", "  ")
				return enc.Encode(t)
			}

			d := t.Display(cfg.Invoice.CurrencySymbol)
			fmt.Fprintf(c.App.Writer, "Subtotal:  %s\n", d.Subtotal)
			fmt.Fprintf(c.App.Writer, "Tax (%s%%): %s\n", totals.FormatPercent(inv.TaxRate), d.TaxAmount)
			fmt.Fprintf(c.App.Writer, "Total:     %s\n", d.Total)
			return nil
		},
	}
}

func newCommand() *cli.Command {
	return &cli.Command{
		Name:  "new",
		Usage: "write a fresh document with the configured defaults",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "out", Aliases: []string{"o"}, Usage: "document file (.yaml, .yml or .json)", Value: "invoice.yaml"},
		},
		Action: func(c *cli.Context) error {
			cfg, logger, err := setup(c)
			if err != nil {
				return err
			}
			defer logger.Sync()

			inv := document.NewInvoice(cfg.Invoice.Defaults(), time.Now(), document.NewItemID)
			if err := saveDocument(c.String("out"), inv); err != nil {
				return err
			}

			logger.Debug("Document written", zap.String("path", c.String("out")))
			fmt.Fprintln(c.App.Writer, c.String("out"))
			return nil
		},
	}
}

func setup(c *cli.Context) (*config.Config, *zap.Logger, error) {
	cfg, err := config.Load(c.String("config"))
	if err != nil {
		return nil, nil, err
	}
	logger, err := utils.NewCLILogger(c.Bool("verbose"))
	if err != nil {
		return nil, nil, err
	}
	return cfg, logger, nil
}

func loadStore(path string, cfg *config.Config) (*document.Store, error) {
	inv, err := loadDocument(path)
	if err != nil {
		return nil, err
	}
	return document.NewStore(inv, document.WithItemPlaceholder(cfg.Invoice.ItemPlaceholder)), nil
}

func isJSON(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".json")
}

// loadDocument reads an invoice from a YAML or JSON file chosen by extension
func loadDocument(path string) (entity.Invoice, error) {
	var inv entity.Invoice

	data, err := os.ReadFile(path)
	if err != nil {
		return inv, fmt.Errorf("failed to read document: %w", err)
	}

	if isJSON(path) {
		err = json.Unmarshal(data, &inv)
	} else {
		err = yaml.Unmarshal(data, &inv)
	}
	if err != nil {
		return inv, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return inv, nil
}

func saveDocument(path string, inv entity.Invoice) error {
	var (
		data []byte
		err  error
	)
	if isJSON(path) {
		data, err = json.MarshalIndent(inv, "", "  ")
	} else {
		data, err = yaml.Marshal(inv)
	}
	if err != nil {
		return fmt.Errorf("failed to encode document: %w", err)
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}
	return os.WriteFile(path, data, 0644)
}

// writeOutput saves content at out, or under the working directory with
// defaultName when out is empty
func writeOutput(ctx context.Context, out, defaultName string, content []byte, logger *zap.Logger) (string, error) {
	dir, name := ".", defaultName
	if out != "" {
		dir, name = filepath.Dir(out), filepath.Base(out)
	}
	return storage.NewLocalFileStorage(dir, logger).Save(ctx, name, content)
}
