package http

import (
	"bytes"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/garyjia/rental-invoice/internal/application/service"
	"github.com/garyjia/rental-invoice/internal/domain/document"
	"github.com/garyjia/rental-invoice/internal/domain/entity"
	"github.com/garyjia/rental-invoice/internal/infrastructure/logo"
	"github.com/garyjia/rental-invoice/internal/infrastructure/render"
	"github.com/garyjia/rental-invoice/internal/infrastructure/storage"
	"github.com/garyjia/rental-invoice/pkg/utils"
)

var _ Logger = (*utils.KVLogger)(nil)

// pngHeader is enough of a PNG for content sniffing
var pngHeader = []byte{0x89, 0x50, 0x4e, 0x47, 0x0d, 0x0a, 0x1a, 0x0a, 0x00, 0x00, 0x00, 0x0d, 0x49, 0x48, 0x44, 0x52}

type documentEnvelope struct {
	Success bool                 `json:"success"`
	Data    service.DocumentView `json:"data"`
	Error   string               `json:"error"`
}

func newTestServer(t *testing.T) *Server {
	t.Helper()

	n := 0
	store := document.NewStore(entity.Invoice{
		InvoiceNumber: "INV-042",
		Company:       entity.Company{Name: "Acme Rentals"},
		Items: []entity.LineItem{
			{ID: "car", Description: "Toyota Camry Rental", Quantity: 3, Rate: 50000},
			{ID: "gps", Description: "GPS Navigation", Quantity: 1, Rate: 15000},
		},
		TaxRate: 7.5,
	}, document.WithIDGenerator(func() string {
		n++
		return fmt.Sprintf("item-%d", n)
	}))

	zl := zap.NewNop()
	svc := service.NewInvoiceService(
		store,
		logo.NewReader(1024, zl),
		render.NewRegistry(render.NewHTMLRenderer(zl), render.NewPDFRenderer(zl), render.NewXLSXRenderer(zl)),
		storage.NewLocalFileStorage(t.TempDir(), zl),
		render.DefaultCurrency,
		utils.NewKVLogger(zl),
	)
	t.Cleanup(svc.Close)

	cfg := DefaultServerConfig()
	cfg.Mode = gin.TestMode
	return NewServer(cfg, svc, utils.NewKVLogger(zl))
}

func do(t *testing.T, s *Server, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	s.Router().ServeHTTP(w, req)
	return w
}

func decodeDocument(t *testing.T, w *httptest.ResponseRecorder) service.DocumentView {
	t.Helper()
	var env documentEnvelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	require.True(t, env.Success, env.Error)
	return env.Data
}

func TestServer_LogsRequests(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	cfg := DefaultServerConfig()
	cfg.Mode = gin.TestMode
	s := NewServer(cfg, newTestServer(t).invoiceService, utils.NewKVLogger(zap.New(core)))

	w := do(t, s, http.MethodGet, "/health", "")
	require.Equal(t, http.StatusOK, w.Code)

	entries := logs.FilterMessage("HTTP request").All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.Equal(t, "GET", fields["method"])
	assert.Equal(t, "/health", fields["path"])
	assert.Equal(t, int64(http.StatusOK), fields["status"])
}

func TestHealthCheck(t *testing.T) {
	s := newTestServer(t)

	w := do(t, s, http.MethodGet, "/health", "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"healthy"`)
}

func TestGetInvoice(t *testing.T) {
	s := newTestServer(t)

	w := do(t, s, http.MethodGet, "/api/invoice", "")

	require.Equal(t, http.StatusOK, w.Code)
	view := decodeDocument(t, w)
	assert.Equal(t, "INV-042", view.Invoice.InvoiceNumber)
	assert.Equal(t, 177375.0, view.Totals.Total)
	assert.Equal(t, "₦12375.00", view.Display.TaxAmount)
}

func TestUpdateField(t *testing.T) {
	s := newTestServer(t)

	t.Run("known field", func(t *testing.T) {
		w := do(t, s, http.MethodPut, "/api/invoice/fields/notes", `{"value":"Fuel not included"}`)

		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "Fuel not included", decodeDocument(t, w).Invoice.Notes)
	})

	t.Run("unknown field", func(t *testing.T) {
		w := do(t, s, http.MethodPut, "/api/invoice/fields/color", `{"value":"red"}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("missing body", func(t *testing.T) {
		w := do(t, s, http.MethodPut, "/api/invoice/fields/notes", "")
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestUpdateTaxRate(t *testing.T) {
	tests := []struct {
		name      string
		body      string
		wantRate  float64
		wantTotal float64
	}{
		{"string value", `{"value":"10"}`, 10, 181500},
		{"numeric value", `{"value":5}`, 5, 173250},
		{"malformed coerces to zero", `{"value":"abc"}`, 0, 165000},
		{"null coerces to zero", `{"value":null}`, 0, 165000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestServer(t)

			w := do(t, s, http.MethodPut, "/api/invoice/tax-rate", tt.body)

			require.Equal(t, http.StatusOK, w.Code)
			view := decodeDocument(t, w)
			assert.Equal(t, tt.wantRate, view.Invoice.TaxRate)
			assert.Equal(t, tt.wantTotal, view.Totals.Total)
		})
	}
}

func TestUpdateParty(t *testing.T) {
	s := newTestServer(t)

	t.Run("company website", func(t *testing.T) {
		w := do(t, s, http.MethodPut, "/api/invoice/parties/company/website", `{"value":"acme.example"}`)

		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "acme.example", decodeDocument(t, w).Invoice.Company.Website)
	})

	t.Run("customer name", func(t *testing.T) {
		w := do(t, s, http.MethodPut, "/api/invoice/parties/customer/name", `{"value":"Ada Obi"}`)

		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "Ada Obi", decodeDocument(t, w).Invoice.Customer.Name)
	})

	t.Run("customer has no website", func(t *testing.T) {
		w := do(t, s, http.MethodPut, "/api/invoice/parties/customer/website", `{"value":"x"}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("unknown party", func(t *testing.T) {
		w := do(t, s, http.MethodPut, "/api/invoice/parties/vendor/name", `{"value":"x"}`)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestItems(t *testing.T) {
	s := newTestServer(t)

	w := do(t, s, http.MethodPost, "/api/invoice/items", "")
	require.Equal(t, http.StatusCreated, w.Code)
	var created struct {
		Data entity.LineItem `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.Equal(t, "item-1", created.Data.ID)
	assert.Equal(t, "Additional Charge", created.Data.Description)

	w = do(t, s, http.MethodPut, "/api/invoice/items/item-1/rate", `{"value":"2500"}`)
	require.Equal(t, http.StatusOK, w.Code)
	view := decodeDocument(t, w)
	assert.Equal(t, 167500.0, view.Totals.Subtotal)

	w = do(t, s, http.MethodPut, "/api/invoice/items/item-1/colour", `{"value":"red"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(t, s, http.MethodDelete, "/api/invoice/items/item-1", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decodeDocument(t, w).Invoice.Items, 2)

	// unknown id is a no-op, not an error
	w = do(t, s, http.MethodDelete, "/api/invoice/items/missing", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decodeDocument(t, w).Invoice.Items, 2)
}

func TestRemoveItem_KeepsLastItem(t *testing.T) {
	s := newTestServer(t)

	do(t, s, http.MethodDelete, "/api/invoice/items/car", "")
	w := do(t, s, http.MethodDelete, "/api/invoice/items/gps", "")

	require.Equal(t, http.StatusOK, w.Code)
	items := decodeDocument(t, w).Invoice.Items
	require.Len(t, items, 1)
	assert.Equal(t, "gps", items[0].ID)
}

func uploadLogo(t *testing.T, s *Server, content []byte) *httptest.ResponseRecorder {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("logo", "logo.png")
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/invoice/logo", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w := httptest.NewRecorder()
	s.Router().ServeHTTP(w, req)
	return w
}

func TestLogo(t *testing.T) {
	t.Run("upload and remove", func(t *testing.T) {
		s := newTestServer(t)

		w := uploadLogo(t, s, pngHeader)
		require.Equal(t, http.StatusOK, w.Code)
		assert.True(t, strings.HasPrefix(decodeDocument(t, w).Invoice.Company.Logo, "data:image/png;base64,"))

		w = do(t, s, http.MethodDelete, "/api/invoice/logo", "")
		require.Equal(t, http.StatusOK, w.Code)
		assert.Empty(t, decodeDocument(t, w).Invoice.Company.Logo)
	})

	t.Run("non-image is rejected", func(t *testing.T) {
		s := newTestServer(t)

		w := uploadLogo(t, s, []byte("just text"))

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		view := decodeDocument(t, do(t, s, http.MethodGet, "/api/invoice", ""))
		assert.Empty(t, view.Invoice.Company.Logo)
		assert.Equal(t, uint64(0), view.Version)
	})

	t.Run("too large", func(t *testing.T) {
		s := newTestServer(t)

		w := uploadLogo(t, s, append(append([]byte{}, pngHeader...), make([]byte, 4096)...))

		assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
	})

	t.Run("missing file", func(t *testing.T) {
		s := newTestServer(t)

		w := do(t, s, http.MethodPost, "/api/invoice/logo", "")

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestReplaceInvoice(t *testing.T) {
	s := newTestServer(t)

	w := do(t, s, http.MethodPut, "/api/invoice",
		`{"invoiceNumber":"INV-100","items":[{"id":"a","description":"Van","quantity":2,"rate":1000}],"taxRate":0}`)

	require.Equal(t, http.StatusOK, w.Code)
	view := decodeDocument(t, w)
	assert.Equal(t, "INV-100", view.Invoice.InvoiceNumber)
	assert.Equal(t, 2000.0, view.Totals.Total)

	w = do(t, s, http.MethodPut, "/api/invoice", `{"items":"nope"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestPreview(t *testing.T) {
	s := newTestServer(t)

	w := do(t, s, http.MethodGet, "/preview", "")

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/html; charset=utf-8", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Body.String(), "Acme Rentals")
	assert.Contains(t, w.Body.String(), "₦177375.00")
}

func TestExport(t *testing.T) {
	s := newTestServer(t)

	t.Run("download pdf", func(t *testing.T) {
		w := do(t, s, http.MethodGet, "/api/invoice/export/pdf", "")

		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "application/pdf", w.Header().Get("Content-Type"))
		assert.Contains(t, w.Header().Get("Content-Disposition"), "INV-042_")
		assert.True(t, bytes.HasPrefix(w.Body.Bytes(), []byte("%PDF-")))
	})

	t.Run("save xlsx", func(t *testing.T) {
		w := do(t, s, http.MethodGet, "/api/invoice/export/xlsx?save=true", "")

		require.Equal(t, http.StatusCreated, w.Code)
		var resp struct {
			Data ExportResponse `json:"data"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "xlsx", resp.Data.Format)
		assert.FileExists(t, resp.Data.Path)
	})

	t.Run("unknown format", func(t *testing.T) {
		w := do(t, s, http.MethodGet, "/api/invoice/export/docx", "")
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestValueRequest_Text(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{`"12abc"`, "12abc"},
		{`12.5`, "12.5"},
		{`null`, ""},
		{``, ""},
		{`true`, "true"},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			assert.Equal(t, tt.want, ValueRequest{Value: json.RawMessage(tt.raw)}.Text())
		})
	}
}
