package render

import (
	"bytes"
	"context"
	"fmt"

	"github.com/jung-kurt/gofpdf"
	"go.uber.org/zap"

	"github.com/garyjia/rental-invoice/internal/infrastructure/logo"
)

// A4 portrait layout in millimetres
const (
	pdfMargin     = 15.0
	pdfPageWidth  = 210.0
	pdfContentW   = pdfPageWidth - 2*pdfMargin
	pdfLineHeight = 6.0
	pdfLogoHeight = 16.0
)

// column widths of the items table: description, qty, rate, amount
var pdfColumns = [4]float64{90, 25, 32.5, 32.5}

var pdfImageTypes = map[string]string{
	"image/png":  "PNG",
	"image/jpeg": "JPG",
	"image/gif":  "GIF",
}

// PDFRenderer renders a printable A4 invoice
type PDFRenderer struct {
	logger *zap.Logger
}

// NewPDFRenderer creates a PDFRenderer
func NewPDFRenderer(logger *zap.Logger) *PDFRenderer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PDFRenderer{logger: logger}
}

// Format implements Renderer
func (r *PDFRenderer) Format() Format {
	return FormatPDF
}

// Render implements Renderer
func (r *PDFRenderer) Render(ctx context.Context, in Input) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// the core fonts only cover cp1252, so symbols like ₦ fall back to the code
	in.Currency.Symbol = pdfCurrencyLabel(in.Currency)
	view := NewView(in)

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(pdfMargin, pdfMargin, pdfMargin)
	pdf.SetAutoPageBreak(true, pdfMargin)
	pdf.SetTitle("Invoice "+view.InvoiceNumber, true)
	pdf.AddPage()
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	r.writeHeader(pdf, tr, view)
	r.writeParties(pdf, tr, view)
	r.writeItems(pdf, tr, view)
	r.writeTotals(pdf, tr, view)
	r.writeNotes(pdf, tr, view)

	pdf.Ln(10)
	pdf.SetFont("Helvetica", "", 8)
	pdf.SetTextColor(107, 114, 128)
	pdf.CellFormat(pdfContentW, 4, tr(view.ThankYou), "", 1, "C", false, 0, "")
	pdf.CellFormat(pdfContentW, 4, tr(view.FooterLine), "", 1, "C", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("%w: pdf: %v", ErrRenderFailed, err)
	}
	return buf.Bytes(), nil
}

func (r *PDFRenderer) writeHeader(pdf *gofpdf.Fpdf, tr func(string) string, v View) {
	top := pdf.GetY()

	if !r.drawLogo(pdf, v.Logo) {
		pdf.SetFont("Helvetica", "B", 20)
		pdf.SetTextColor(17, 24, 39)
		pdf.CellFormat(120, 10, tr(v.CompanyName), "", 1, "L", false, 0, "")
	}

	pdf.SetFont("Helvetica", "", 10)
	pdf.SetTextColor(75, 85, 99)
	for _, line := range []string{v.CompanyAddress, v.CompanyPhone, v.CompanyEmail} {
		pdf.CellFormat(120, 5, tr(line), "", 1, "L", false, 0, "")
	}
	pdf.SetTextColor(37, 99, 235)
	pdf.CellFormat(120, 5, tr(v.CompanyWebsite), "", 1, "L", false, 0, "")
	bottom := pdf.GetY()

	pdf.SetXY(pdfMargin+120, top)
	pdf.SetFont("Helvetica", "", 22)
	pdf.SetTextColor(55, 65, 81)
	pdf.CellFormat(pdfContentW-120, 10, "INVOICE", "", 2, "R", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.SetTextColor(107, 114, 128)
	pdf.CellFormat(pdfContentW-120, 6, tr("# "+v.InvoiceNumber), "", 2, "R", false, 0, "")

	pdf.SetXY(pdfMargin, bottom+4)
	pdf.SetDrawColor(229, 231, 235)
	pdf.Line(pdfMargin, pdf.GetY(), pdfMargin+pdfContentW, pdf.GetY())
	pdf.Ln(6)
}

// drawLogo embeds the company logo and reports whether it was drawn
func (r *PDFRenderer) drawLogo(pdf *gofpdf.Fpdf, dataURI string) bool {
	if dataURI == "" {
		return false
	}

	mime, data, err := logo.Decode(dataURI)
	if err != nil {
		r.logger.Warn("Skipping undecodable logo", zap.Error(err))
		return false
	}
	imageType, ok := pdfImageTypes[mime]
	if !ok {
		r.logger.Debug("Logo type not supported in PDF", zap.String("mime", mime))
		return false
	}

	opts := gofpdf.ImageOptions{ImageType: imageType, ReadDpi: true}
	pdf.RegisterImageOptionsReader("logo", opts, bytes.NewReader(data))
	if err := pdf.Error(); err != nil {
		r.logger.Warn("Failed to register logo image", zap.Error(err))
		pdf.ClearError()
		return false
	}

	pdf.ImageOptions("logo", pdfMargin, pdf.GetY(), 0, pdfLogoHeight, false, opts, 0, "")
	pdf.SetY(pdf.GetY() + pdfLogoHeight + 2)
	return true
}

func (r *PDFRenderer) writeParties(pdf *gofpdf.Fpdf, tr func(string) string, v View) {
	top := pdf.GetY()
	half := pdfContentW / 2

	pdf.SetFont("Helvetica", "B", 10)
	pdf.SetTextColor(31, 41, 55)
	pdf.CellFormat(half, pdfLineHeight, "BILL TO", "", 2, "L", false, 0, "")
	pdf.CellFormat(half, pdfLineHeight, tr(v.CustomerName), "", 2, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.SetTextColor(75, 85, 99)
	for _, line := range []string{v.CustomerAddress, v.CustomerPhone, v.CustomerEmail} {
		pdf.CellFormat(half, 5, tr(line), "", 2, "L", false, 0, "")
	}
	bottom := pdf.GetY()

	pdf.SetXY(pdfMargin+half, top)
	pdf.SetTextColor(31, 41, 55)
	pdf.CellFormat(half, pdfLineHeight, tr("Invoice Date: "+v.InvoiceDate), "", 2, "R", false, 0, "")
	pdf.CellFormat(half, pdfLineHeight, tr("Due Date: "+v.DueDate), "", 2, "R", false, 0, "")

	pdf.SetXY(pdfMargin, bottom+6)
}

func (r *PDFRenderer) writeItems(pdf *gofpdf.Fpdf, tr func(string) string, v View) {
	headers := [4]string{"Description", "Days/Qty", "Rate", "Amount"}
	aligns := [4]string{"L", "R", "R", "R"}

	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetFillColor(243, 244, 246)
	pdf.SetTextColor(55, 65, 81)
	for i, h := range headers {
		pdf.CellFormat(pdfColumns[i], 8, h, "", 0, aligns[i], true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 10)
	pdf.SetTextColor(31, 41, 55)
	for _, item := range v.Items {
		cells := [4]string{item.Description, item.Quantity, item.Rate, item.Amount}
		for i, c := range cells {
			pdf.CellFormat(pdfColumns[i], 8, tr(c), "B", 0, aligns[i], false, 0, "")
		}
		pdf.Ln(-1)
	}
	pdf.Ln(4)
}

func (r *PDFRenderer) writeTotals(pdf *gofpdf.Fpdf, tr func(string) string, v View) {
	labelX := pdfMargin + pdfContentW - 90

	row := func(label, value string) {
		pdf.SetX(labelX)
		pdf.CellFormat(45, pdfLineHeight, tr(label), "", 0, "L", false, 0, "")
		pdf.CellFormat(45, pdfLineHeight, tr(value), "", 1, "R", false, 0, "")
	}

	pdf.SetFont("Helvetica", "", 10)
	row("Subtotal", v.Subtotal)
	row(v.TaxLabel, v.TaxAmount)
	pdf.Line(labelX, pdf.GetY()+1, labelX+90, pdf.GetY()+1)
	pdf.Ln(2)
	pdf.SetFont("Helvetica", "B", 13)
	row("Total", v.Total)
}

func (r *PDFRenderer) writeNotes(pdf *gofpdf.Fpdf, tr func(string) string, v View) {
	if v.Notes == "" {
		return
	}

	pdf.Ln(10)
	pdf.SetFont("Helvetica", "B", 10)
	pdf.SetTextColor(31, 41, 55)
	pdf.CellFormat(pdfContentW, pdfLineHeight, "Notes", "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 9)
	pdf.SetTextColor(75, 85, 99)
	pdf.MultiCell(pdfContentW, 5, tr(v.Notes), "", "L", false)
}

// pdfCurrencyLabel returns a label the built-in fonts can draw
func pdfCurrencyLabel(c Currency) string {
	for _, r := range c.Symbol {
		if r > 0xFF && r != '€' {
			if c.Code == "" {
				return ""
			}
			return c.Code + " "
		}
	}
	return c.Symbol
}
