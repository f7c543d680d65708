package service

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/garyjia/rental-invoice/internal/application/port"
	"github.com/garyjia/rental-invoice/internal/domain/document"
	"github.com/garyjia/rental-invoice/internal/domain/entity"
	"github.com/garyjia/rental-invoice/internal/domain/totals"
	"github.com/garyjia/rental-invoice/internal/infrastructure/render"
	"github.com/garyjia/rental-invoice/internal/infrastructure/storage"
)

// Logger defines the logging interface
type Logger interface {
	Info(msg string, keysAndValues ...interface{})
	Error(msg string, keysAndValues ...interface{})
}

// DocumentView is the current document together with its derived totals
type DocumentView struct {
	Invoice entity.Invoice `json:"invoice"`
	Totals  totals.Totals  `json:"totals"`
	Display totals.Display `json:"display"`
	Version uint64         `json:"version"`
}

// Artifact is a rendered document
type Artifact struct {
	Format   render.Format
	FileName string
	Content  []byte
}

// InvoiceService is the single entry point for editing, previewing and
// exporting the session's invoice
type InvoiceService interface {
	Document() DocumentView

	UpdateField(field document.InvoiceField, value string) entity.Invoice
	UpdateTaxRate(raw string) entity.Invoice
	UpdateParty(party document.Party, field document.PartyField, value string) entity.Invoice
	UploadLogo(ctx context.Context, r io.Reader) (entity.Invoice, error)
	RemoveLogo() entity.Invoice
	UpdateItem(id string, field document.ItemField, value string) entity.Invoice
	AddItem() entity.LineItem
	RemoveItem(id string) entity.Invoice
	Replace(inv entity.Invoice) entity.Invoice

	Render(ctx context.Context, format render.Format) (*Artifact, error)
	Export(ctx context.Context, format render.Format) (string, error)

	Close()
}

type invoiceServiceImpl struct {
	store       *document.Store
	logoReader  port.LogoReader
	renderers   *render.Registry
	exports     port.ExportStorage
	currency    render.Currency
	now         func() time.Time
	unsubscribe func()
	logger      Logger
}

// NewInvoiceService creates a new InvoiceService
func NewInvoiceService(
	store *document.Store,
	logoReader port.LogoReader,
	renderers *render.Registry,
	exports port.ExportStorage,
	currency render.Currency,
	logger Logger,
) InvoiceService {
	s := &invoiceServiceImpl{
		store:      store,
		logoReader: logoReader,
		renderers:  renderers,
		exports:    exports,
		currency:   currency,
		now:        time.Now,
		logger:     logger,
	}
	s.unsubscribe = store.Subscribe(s.onChange)
	return s
}

func (s *invoiceServiceImpl) onChange(inv entity.Invoice) {
	t := totals.Compute(inv)
	s.logger.Info("Invoice updated",
		"invoice_number", inv.InvoiceNumber,
		"items", len(inv.Items),
		"total", totals.FormatAmount(t.Total))
}

// Close stops observing the store
func (s *invoiceServiceImpl) Close() {
	s.unsubscribe()
}

// Document returns the current document and its totals
func (s *invoiceServiceImpl) Document() DocumentView {
	// Version is read first; a change landing in between only makes the
	// reported version older than the document, never newer.
	version := s.store.Version()
	inv := s.store.Snapshot()
	t := totals.Compute(inv)
	return DocumentView{
		Invoice: inv,
		Totals:  t,
		Display: t.Display(s.currency.Symbol),
		Version: version,
	}
}

func (s *invoiceServiceImpl) UpdateField(field document.InvoiceField, value string) entity.Invoice {
	return s.store.UpdateField(field, value)
}

func (s *invoiceServiceImpl) UpdateTaxRate(raw string) entity.Invoice {
	return s.store.UpdateTaxRate(raw)
}

func (s *invoiceServiceImpl) UpdateParty(party document.Party, field document.PartyField, value string) entity.Invoice {
	return s.store.UpdateParty(party, field, value)
}

// UploadLogo reads an image and attaches it as the company logo. A rejected
// upload leaves the document as it was.
func (s *invoiceServiceImpl) UploadLogo(ctx context.Context, r io.Reader) (entity.Invoice, error) {
	dataURI, err := s.logoReader.ReadDataURI(ctx, r)
	if err != nil {
		s.logger.Error("Failed to read logo", "error", err)
		return s.store.Snapshot(), fmt.Errorf("%w: %w", ErrLogoRejected, err)
	}

	s.logger.Info("Logo uploaded", "size", len(dataURI))
	return s.store.SetLogo(dataURI), nil
}

func (s *invoiceServiceImpl) RemoveLogo() entity.Invoice {
	return s.store.RemoveLogo()
}

func (s *invoiceServiceImpl) UpdateItem(id string, field document.ItemField, value string) entity.Invoice {
	return s.store.UpdateItem(id, field, value)
}

func (s *invoiceServiceImpl) AddItem() entity.LineItem {
	item := s.store.AddItem()
	s.logger.Info("Line item added", "item_id", item.ID)
	return item
}

func (s *invoiceServiceImpl) RemoveItem(id string) entity.Invoice {
	return s.store.RemoveItem(id)
}

func (s *invoiceServiceImpl) Replace(inv entity.Invoice) entity.Invoice {
	return s.store.Replace(inv)
}

// Render produces the current document in the given format
func (s *invoiceServiceImpl) Render(ctx context.Context, format render.Format) (*Artifact, error) {
	renderer, err := s.renderers.For(format)
	if err != nil {
		return nil, err
	}

	inv := s.store.Snapshot()
	content, err := renderer.Render(ctx, render.NewInput(inv, s.currency))
	if err != nil {
		s.logger.Error("Failed to render invoice", "format", format.String(), "error", err)
		return nil, err
	}

	return &Artifact{
		Format:   format,
		FileName: storage.ExportName(inv.InvoiceNumber, format.Extension(), s.now()),
		Content:  content,
	}, nil
}

// Export renders the current document and writes it to export storage,
// returning the path written
func (s *invoiceServiceImpl) Export(ctx context.Context, format render.Format) (string, error) {
	artifact, err := s.Render(ctx, format)
	if err != nil {
		return "", err
	}

	path, err := s.exports.Save(ctx, artifact.FileName, artifact.Content)
	if err != nil {
		s.logger.Error("Failed to save export", "file", artifact.FileName, "error", err)
		return "", fmt.Errorf("%w: %w", ErrExportFailed, err)
	}

	s.logger.Info("Invoice exported", "format", format.String(), "path", path, "size", len(artifact.Content))
	return path, nil
}
