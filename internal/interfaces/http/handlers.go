package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/garyjia/rental-invoice/internal/application/service"
	"github.com/garyjia/rental-invoice/internal/domain/document"
	"github.com/garyjia/rental-invoice/internal/domain/entity"
	"github.com/garyjia/rental-invoice/internal/infrastructure/logo"
	"github.com/garyjia/rental-invoice/internal/infrastructure/render"
)

// Handlers contains all HTTP request handlers
type Handlers struct {
	invoiceService service.InvoiceService
	logger         Logger
}

// NewHandlers creates a new Handlers instance
func NewHandlers(invoiceService service.InvoiceService, logger Logger) *Handlers {
	return &Handlers{
		invoiceService: invoiceService,
		logger:         logger,
	}
}

// Response represents a standard JSON response
type Response struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// HealthResponse represents the health check response
type HealthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
	Version   string `json:"version"`
}

// ValueRequest carries the new value of a single field. Value may be a JSON
// string or number; numbers are passed on as their literal text.
type ValueRequest struct {
	Value json.RawMessage `json:"value"`
}

// Text returns the value as the raw text a form input would hold
func (r ValueRequest) Text() string {
	raw := strings.TrimSpace(string(r.Value))
	if raw == "" || raw == "null" {
		return ""
	}
	var s string
	if err := json.Unmarshal(r.Value, &s); err == nil {
		return s
	}
	return raw
}

// ExportResponse describes an export written to server storage
type ExportResponse struct {
	Format string `json:"format"`
	Path   string `json:"path"`
}

// HealthCheck handles GET /health
func (h *Handlers) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, Response{
		Success: true,
		Data: HealthResponse{
			Status:    "healthy",
			Timestamp: time.Now().UTC().Format(time.RFC3339),
			Version:   "1.0.0",
		},
	})
}

// GetInvoice handles GET /api/invoice
func (h *Handlers) GetInvoice(c *gin.Context) {
	h.respondDocument(c, http.StatusOK)
}

// ReplaceInvoice handles PUT /api/invoice
func (h *Handlers) ReplaceInvoice(c *gin.Context) {
	var inv entity.Invoice
	if err := c.ShouldBindJSON(&inv); err != nil {
		h.badRequest(c, "invalid invoice document", err)
		return
	}

	h.invoiceService.Replace(inv)
	h.respondDocument(c, http.StatusOK)
}

// UpdateField handles PUT /api/invoice/fields/:field
func (h *Handlers) UpdateField(c *gin.Context) {
	field, ok := document.ParseInvoiceField(c.Param("field"))
	if !ok {
		h.unknownField(c, c.Param("field"))
		return
	}
	value, ok := h.bindValue(c)
	if !ok {
		return
	}

	h.invoiceService.UpdateField(field, value)
	h.respondDocument(c, http.StatusOK)
}

// UpdateTaxRate handles PUT /api/invoice/tax-rate
func (h *Handlers) UpdateTaxRate(c *gin.Context) {
	value, ok := h.bindValue(c)
	if !ok {
		return
	}

	h.invoiceService.UpdateTaxRate(value)
	h.respondDocument(c, http.StatusOK)
}

// UpdateParty handles PUT /api/invoice/parties/:party/:field
func (h *Handlers) UpdateParty(c *gin.Context) {
	party, ok := document.ParseParty(c.Param("party"))
	if !ok {
		c.JSON(http.StatusNotFound, Response{
			Success: false,
			Error:   "unknown party: " + c.Param("party"),
		})
		return
	}
	field, ok := document.ParsePartyField(c.Param("field"))
	if !ok || !field.AppliesTo(party) {
		h.unknownField(c, c.Param("field"))
		return
	}
	value, ok := h.bindValue(c)
	if !ok {
		return
	}

	h.invoiceService.UpdateParty(party, field, value)
	h.respondDocument(c, http.StatusOK)
}

// UploadLogo handles POST /api/invoice/logo (multipart field "logo")
func (h *Handlers) UploadLogo(c *gin.Context) {
	fileHeader, err := c.FormFile("logo")
	if err != nil {
		h.badRequest(c, "missing logo file", err)
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		h.badRequest(c, "unreadable logo file", err)
		return
	}
	defer file.Close()

	if _, err := h.invoiceService.UploadLogo(c.Request.Context(), file); err != nil {
		status := http.StatusUnprocessableEntity
		if errors.Is(err, logo.ErrTooLarge) {
			status = http.StatusRequestEntityTooLarge
		}
		c.JSON(status, Response{
			Success: false,
			Error:   err.Error(),
		})
		return
	}

	h.respondDocument(c, http.StatusOK)
}

// RemoveLogo handles DELETE /api/invoice/logo
func (h *Handlers) RemoveLogo(c *gin.Context) {
	h.invoiceService.RemoveLogo()
	h.respondDocument(c, http.StatusOK)
}

// AddItem handles POST /api/invoice/items
func (h *Handlers) AddItem(c *gin.Context) {
	item := h.invoiceService.AddItem()
	c.JSON(http.StatusCreated, Response{
		Success: true,
		Data:    item,
	})
}

// UpdateItem handles PUT /api/invoice/items/:id/:field
func (h *Handlers) UpdateItem(c *gin.Context) {
	field, ok := document.ParseItemField(c.Param("field"))
	if !ok {
		h.unknownField(c, c.Param("field"))
		return
	}
	value, ok := h.bindValue(c)
	if !ok {
		return
	}

	h.invoiceService.UpdateItem(c.Param("id"), field, value)
	h.respondDocument(c, http.StatusOK)
}

// RemoveItem handles DELETE /api/invoice/items/:id
func (h *Handlers) RemoveItem(c *gin.Context) {
	h.invoiceService.RemoveItem(c.Param("id"))
	h.respondDocument(c, http.StatusOK)
}

// Preview handles GET /preview
func (h *Handlers) Preview(c *gin.Context) {
	artifact, err := h.invoiceService.Render(c.Request.Context(), render.FormatHTML)
	if err != nil {
		h.internalError(c, "failed to render preview", err)
		return
	}

	c.Data(http.StatusOK, render.FormatHTML.ContentType(), artifact.Content)
}

// Export handles GET /api/invoice/export/:format. With ?save=true the
// artifact is written to export storage instead of being downloaded.
func (h *Handlers) Export(c *gin.Context) {
	format, err := render.ParseFormat(c.Param("format"))
	if err != nil {
		c.JSON(http.StatusNotFound, Response{
			Success: false,
			Error:   err.Error(),
		})
		return
	}

	if save, _ := strconv.ParseBool(c.Query("save")); save {
		path, err := h.invoiceService.Export(c.Request.Context(), format)
		if err != nil {
			h.internalError(c, "failed to export invoice", err)
			return
		}
		c.JSON(http.StatusCreated, Response{
			Success: true,
			Data:    ExportResponse{Format: format.String(), Path: path},
		})
		return
	}

	artifact, err := h.invoiceService.Render(c.Request.Context(), format)
	if err != nil {
		h.internalError(c, "failed to render invoice", err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+artifact.FileName+`"`)
	c.Data(http.StatusOK, format.ContentType(), artifact.Content)
}

func (h *Handlers) respondDocument(c *gin.Context, status int) {
	c.JSON(status, Response{
		Success: true,
		Data:    h.invoiceService.Document(),
	})
}

func (h *Handlers) bindValue(c *gin.Context) (string, bool) {
	var req ValueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badRequest(c, "invalid request body", err)
		return "", false
	}
	return req.Text(), true
}

func (h *Handlers) unknownField(c *gin.Context, name string) {
	c.JSON(http.StatusBadRequest, Response{
		Success: false,
		Error:   "unknown field: " + name,
	})
}

func (h *Handlers) badRequest(c *gin.Context, msg string, err error) {
	h.logger.Error("Bad request", "path", c.Request.URL.Path, "error", err)
	c.JSON(http.StatusBadRequest, Response{
		Success: false,
		Error:   msg,
	})
}

func (h *Handlers) internalError(c *gin.Context, msg string, err error) {
	h.logger.Error(msg, "path", c.Request.URL.Path, "error", err)
	c.JSON(http.StatusInternalServerError, Response{
		Success: false,
		Error:   msg,
	})
}
