package handler

import (
	"encoding/csv"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/kapasiraj84-beep/bhavya-steel-industries/internal/quote"
	"github.com/kapasiraj84-beep/bhavya-steel-industries/internal/quote/repository"
	"github.com/kapasiraj84-beep/bhavya-steel-industries/internal/quote/transport"
	"github.com/kapasiraj84-beep/bhavya-steel-industries/platform/httpkit"
)

// RegisterAdminRoutes mounts the API-key protected endpoints.
func (h *Handler) RegisterAdminRoutes(rg *gin.RouterGroup) {
	rg.GET("/quotes", h.ListQuotes)
	rg.GET("/quotes/:id", h.GetQuote)
	rg.PATCH("/quotes/:id/status", h.UpdateQuoteStatus)
	rg.GET("/analytics", h.Analytics)
	rg.GET("/export", h.ExportQuotes)
}

// ListQuotes returns a paginated, newest-first listing with an optional
// status filter.
func (h *Handler) ListQuotes(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	params := repository.ListParams{
		Page:   page,
		Limit:  limit,
		Status: quote.Status(c.Query("status")),
	}

	quotes, total, err := h.svc.ListQuotes(c.Request.Context(), params)
	if httpkit.HandleError(c, err) {
		return
	}

	if params.Limit <= 0 {
		params.Limit = 20
	}
	totalPages := (total + params.Limit - 1) / params.Limit
	httpkit.OK(c, "", transport.ListQuotesResponse{
		Quotes: quotes,
		Pagination: transport.Pagination{
			Page:       params.Page,
			Limit:      params.Limit,
			Total:      total,
			TotalPages: totalPages,
		},
	})
}

// GetQuote returns a single stored quote by identifier.
func (h *Handler) GetQuote(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, "Invalid quote ID", nil)
		return
	}

	stored, err := h.svc.GetQuote(c.Request.Context(), id)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, "", stored)
}

// UpdateQuoteStatus advances a quote through the sales workflow.
func (h *Handler) UpdateQuoteStatus(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, "Invalid quote ID", nil)
		return
	}

	var req transport.UpdateStatusRequest
	if err := c.ShouldBind(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, "Invalid request body", nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, "Invalid status. Must be one of: pending, contacted, quoted, converted, rejected", nil)
		return
	}

	stored, err := h.svc.UpdateQuoteStatus(c.Request.Context(), id, quote.Status(req.Status))
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, "Quote status updated", stored)
}

// Analytics returns the admin dashboard aggregate.
func (h *Handler) Analytics(c *gin.Context) {
	analytics, err := h.svc.Analytics(c.Request.Context())
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, "", analytics)
}

// ExportQuotes streams every stored quote as a CSV download.
func (h *Handler) ExportQuotes(c *gin.Context) {
	quotes, err := h.svc.ExportQuotes(c.Request.Context())
	if httpkit.HandleError(c, err) {
		return
	}

	filename := "quotes-" + time.Now().UTC().Format("2006-01-02") + ".csv"
	c.Header("Content-Type", "text/csv")
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)

	w := csv.NewWriter(c.Writer)
	_ = w.Write([]string{"Date", "Name", "Company", "Email", "Phone", "Product", "Quantity", "Unit", "Location", "Status"})
	for _, q := range quotes {
		_ = w.Write([]string{
			q.CreatedAt.UTC().Format(time.RFC3339),
			q.Name,
			q.Company,
			q.Email,
			q.Phone,
			q.Product,
			q.Quantity,
			q.Unit,
			q.Location,
			string(q.Status),
		})
	}
	w.Flush()
}
