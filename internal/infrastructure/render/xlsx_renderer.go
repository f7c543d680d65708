package render

import (
	"context"
	"fmt"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/garyjia/rental-invoice/internal/domain/totals"
	"github.com/garyjia/rental-invoice/internal/infrastructure/logo"
)

const xlsxSheet = "Invoice"

// first row of the items table
const xlsxItemsRow = 14

// numFmtMoney is the built-in "#,##0.00" number format
const numFmtMoney = 4

var xlsxImageExtensions = map[string]string{
	"image/png":  ".png",
	"image/jpeg": ".jpg",
	"image/gif":  ".gif",
}

// XLSXRenderer writes the invoice into a single-sheet workbook
type XLSXRenderer struct {
	logger *zap.Logger
}

// NewXLSXRenderer creates an XLSXRenderer
func NewXLSXRenderer(logger *zap.Logger) *XLSXRenderer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &XLSXRenderer{logger: logger}
}

// Format implements Renderer
func (r *XLSXRenderer) Format() Format {
	return FormatXLSX
}

// Render implements Renderer
func (r *XLSXRenderer) Render(ctx context.Context, in Input) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	view := NewView(in)
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", xlsxSheet); err != nil {
		return nil, fmt.Errorf("%w: xlsx: %v", ErrRenderFailed, err)
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, fmt.Errorf("%w: xlsx: %v", ErrRenderFailed, err)
	}
	money, err := f.NewStyle(&excelize.Style{NumFmt: numFmtMoney})
	if err != nil {
		return nil, fmt.Errorf("%w: xlsx: %v", ErrRenderFailed, err)
	}

	// Company block
	r.setCell(f, "A1", view.CompanyName)
	r.setCell(f, "A2", view.CompanyAddress)
	r.setCell(f, "A3", view.CompanyPhone)
	r.setCell(f, "A4", view.CompanyEmail)
	r.setCell(f, "A5", view.CompanyWebsite)
	r.setStyle(f, "A1", "A1", bold)
	r.addLogo(f, view.Logo)

	// Invoice metadata
	r.setCell(f, "D1", "INVOICE")
	r.setCell(f, "D2", "# "+view.InvoiceNumber)
	r.setCell(f, "C3", "Invoice Date")
	r.setCell(f, "D3", view.InvoiceDate)
	r.setCell(f, "C4", "Due Date")
	r.setCell(f, "D4", view.DueDate)
	r.setStyle(f, "D1", "D1", bold)

	// Bill to
	r.setCell(f, "A7", "BILL TO")
	r.setCell(f, "A8", view.CustomerName)
	r.setCell(f, "A9", view.CustomerAddress)
	r.setCell(f, "A10", view.CustomerPhone)
	r.setCell(f, "A11", view.CustomerEmail)
	r.setStyle(f, "A7", "A8", bold)

	// Items table
	header := xlsxItemsRow - 1
	for col, title := range []string{"Description", "Days/Qty", "Rate (" + in.Currency.Code + ")", "Amount (" + in.Currency.Code + ")"} {
		r.setCell(f, cellName(col+1, header), title)
	}
	r.setStyle(f, cellName(1, header), cellName(4, header), bold)

	row := xlsxItemsRow
	for _, item := range in.Invoice.Items {
		r.setCell(f, cellName(1, row), item.Description)
		r.setCell(f, cellName(2, row), item.Quantity)
		r.setCell(f, cellName(3, row), totals.Round2(item.Rate))
		r.setCell(f, cellName(4, row), totals.Round2(item.Amount()))
		row++
	}
	if row > xlsxItemsRow {
		r.setStyle(f, cellName(3, xlsxItemsRow), cellName(4, row-1), money)
	}

	// Totals
	row++
	totalsStart := row
	for _, line := range []struct {
		label string
		value float64
	}{
		{"Subtotal", in.Totals.Subtotal},
		{view.TaxLabel, in.Totals.TaxAmount},
		{"Total", in.Totals.Total},
	} {
		r.setCell(f, cellName(3, row), line.label)
		r.setCell(f, cellName(4, row), totals.Round2(line.value))
		row++
	}
	r.setStyle(f, cellName(4, totalsStart), cellName(4, row-1), money)
	r.setStyle(f, cellName(3, row-1), cellName(3, row-1), bold)

	if view.Notes != "" {
		row++
		r.setCell(f, cellName(1, row), "Notes")
		r.setStyle(f, cellName(1, row), cellName(1, row), bold)
		r.setCell(f, cellName(1, row+1), view.Notes)
		row += 2
	}

	row++
	r.setCell(f, cellName(1, row), view.ThankYou)
	r.setCell(f, cellName(1, row+1), view.FooterLine)

	if err := f.SetColWidth(xlsxSheet, "A", "A", 40); err != nil {
		r.logger.Warn("Failed to set column width", zap.Error(err))
	}
	if err := f.SetColWidth(xlsxSheet, "B", "D", 18); err != nil {
		r.logger.Warn("Failed to set column width", zap.Error(err))
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("%w: xlsx: %v", ErrRenderFailed, err)
	}
	return buf.Bytes(), nil
}

// setCell sets a cell value, logging rather than failing on bad input
func (r *XLSXRenderer) setCell(f *excelize.File, cell string, value interface{}) {
	if err := f.SetCellValue(xlsxSheet, cell, value); err != nil {
		r.logger.Warn("Failed to set cell value",
			zap.String("sheet", xlsxSheet),
			zap.String("cell", cell),
			zap.Error(err))
	}
}

func (r *XLSXRenderer) setStyle(f *excelize.File, from, to string, style int) {
	if err := f.SetCellStyle(xlsxSheet, from, to, style); err != nil {
		r.logger.Warn("Failed to set cell style",
			zap.String("from", from),
			zap.String("to", to),
			zap.Error(err))
	}
}

// addLogo places the company logo next to the company block when possible
func (r *XLSXRenderer) addLogo(f *excelize.File, dataURI string) {
	if dataURI == "" {
		return
	}

	mime, data, err := logo.Decode(dataURI)
	if err != nil {
		r.logger.Warn("Skipping undecodable logo", zap.Error(err))
		return
	}
	ext, ok := xlsxImageExtensions[mime]
	if !ok {
		r.logger.Debug("Logo type not supported in workbook", zap.String("mime", mime))
		return
	}

	err = f.AddPictureFromBytes(xlsxSheet, "F1", &excelize.Picture{
		Extension: ext,
		File:      data,
		Format: &excelize.GraphicOptions{
			AltText:         "logo",
			LockAspectRatio: true,
		},
	})
	if err != nil {
		r.logger.Warn("Failed to add logo picture", zap.Error(err))
	}
}

func cellName(col, row int) string {
	name, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		// col and row are always positive here
		panic(err)
	}
	return name
}
