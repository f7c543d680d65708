package render

import (
	"bytes"
	"context"
	"fmt"
	"html/template"

	"go.uber.org/zap"

	"github.com/garyjia/rental-invoice/internal/infrastructure/logo"
)

const previewHTMLTemplate = `<!doctype html>
<html lang="en">
<head>
  <meta charset="utf-8" />
  <title>Invoice {{.InvoiceNumber}}</title>
  <style>
    * { box-sizing: border-box; }
    body { margin: 0; padding: 32px; font-family: "Helvetica Neue", Arial, sans-serif; color: #1f2937; background: #f3f4f6; }
    .invoice { max-width: 896px; margin: 0 auto; background: #ffffff; border: 1px solid #e5e7eb; border-radius: 8px; padding: 48px; }
    .header { display: flex; justify-content: space-between; align-items: flex-start; padding-bottom: 32px; border-bottom: 1px solid #e5e7eb; }
    .header img { max-height: 64px; margin-bottom: 16px; }
    .header h1 { font-size: 30px; margin: 0 0 8px; color: #111827; }
    .title { text-align: right; }
    .title h2 { font-size: 30px; font-weight: 300; letter-spacing: 0.1em; margin: 0; color: #374151; }
    .muted { color: #4b5563; margin: 2px 0; }
    .link { color: #2563eb; margin: 2px 0; }
    .parties { display: flex; justify-content: space-between; margin: 32px 0; }
    .dates { text-align: right; }
    .label { font-weight: 600; color: #1f2937; }
    table { width: 100%; border-collapse: collapse; text-align: left; }
    thead { background: #f3f4f6; text-transform: uppercase; font-size: 13px; }
    th, td { padding: 12px 24px; white-space: nowrap; }
    tbody tr { border-top: 1px solid #e5e7eb; }
    .num { text-align: right; }
    .totals { display: flex; justify-content: flex-end; margin-top: 32px; }
    .totals div.box { width: 100%; max-width: 384px; }
    .row { display: flex; justify-content: space-between; margin-top: 8px; }
    .grand { font-weight: 700; font-size: 20px; border-top: 1px solid #e5e7eb; padding-top: 8px; }
    .notes { margin-top: 48px; padding-top: 24px; border-top: 1px solid #e5e7eb; font-size: 14px; }
    .footer { margin-top: 48px; padding-top: 24px; border-top: 1px solid #e5e7eb; text-align: center; font-size: 12px; color: #6b7280; }
  </style>
</head>
<body>
  <div class="invoice" id="invoice-preview">
    <div class="header">
      <div>
        {{if .LogoURL}}<img src="{{.LogoURL}}" alt="{{.CompanyName}} logo" />{{else}}<h1>{{.CompanyName}}</h1>{{end}}
        <p class="muted">{{.CompanyAddress}}</p>
        <p class="muted">{{.CompanyPhone}}</p>
        <p class="muted">{{.CompanyEmail}}</p>
        <p class="link">{{.CompanyWebsite}}</p>
      </div>
      <div class="title">
        <h2>INVOICE</h2>
        <p class="muted"># {{.InvoiceNumber}}</p>
      </div>
    </div>

    <div class="parties">
      <div>
        <div class="label">BILL TO</div>
        <p><strong>{{.CustomerName}}</strong></p>
        <p class="muted">{{.CustomerAddress}}</p>
        <p class="muted">{{.CustomerPhone}}</p>
        <p class="muted">{{.CustomerEmail}}</p>
      </div>
      <div class="dates">
        <p><span class="label">Invoice Date: </span><span class="muted">{{.InvoiceDate}}</span></p>
        <p><span class="label">Due Date: </span><span class="muted">{{.DueDate}}</span></p>
      </div>
    </div>

    <table>
      <thead>
        <tr>
          <th>Description</th>
          <th class="num">Days/Qty</th>
          <th class="num">Rate</th>
          <th class="num">Amount</th>
        </tr>
      </thead>
      <tbody>
        {{range .Items}}
        <tr>
          <td>{{.Description}}</td>
          <td class="num">{{.Quantity}}</td>
          <td class="num">{{.Rate}}</td>
          <td class="num"><strong>{{.Amount}}</strong></td>
        </tr>
        {{end}}
      </tbody>
    </table>

    <div class="totals">
      <div class="box">
        <div class="row"><span class="label">Subtotal</span><span>{{.Subtotal}}</span></div>
        <div class="row"><span class="label">{{.TaxLabel}}</span><span>{{.TaxAmount}}</span></div>
        <div class="row grand"><span>Total</span><span>{{.Total}}</span></div>
      </div>
    </div>

    {{if .NoteLines}}
    <div class="notes">
      <h4>Notes</h4>
      <p class="muted">{{range $i, $line := .NoteLines}}{{if $i}}<br />{{end}}{{$line}}{{end}}</p>
    </div>
    {{end}}

    <div class="footer">
      <p>{{.ThankYou}}</p>
      <p>{{.FooterLine}}</p>
    </div>
  </div>
</body>
</html>
`

// htmlView adds the trusted logo URL to the shared View
type htmlView struct {
	View
	LogoURL template.URL
}

// HTMLRenderer renders the invoice preview page
type HTMLRenderer struct {
	tpl    *template.Template
	logger *zap.Logger
}

// NewHTMLRenderer parses the preview template
func NewHTMLRenderer(logger *zap.Logger) *HTMLRenderer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &HTMLRenderer{
		tpl:    template.Must(template.New("preview").Parse(previewHTMLTemplate)),
		logger: logger,
	}
}

// Format implements Renderer
func (r *HTMLRenderer) Format() Format {
	return FormatHTML
}

// Render implements Renderer
func (r *HTMLRenderer) Render(ctx context.Context, in Input) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	view := htmlView{View: NewView(in)}
	if view.Logo != "" {
		// only base64 image data URIs are trusted as img sources
		if logo.IsImageDataURI(view.Logo) {
			view.LogoURL = template.URL(view.Logo)
		} else {
			r.logger.Warn("Ignoring logo that is not an image data URI")
		}
	}

	var buf bytes.Buffer
	if err := r.tpl.Execute(&buf, view); err != nil {
		return nil, fmt.Errorf("%w: html: %v", ErrRenderFailed, err)
	}
	return buf.Bytes(), nil
}
