// Package handler exposes the public quote intake endpoint and the
// admin endpoints over stored quotes.
package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/kapasiraj84-beep/bhavya-steel-industries/internal/quote/service"
	"github.com/kapasiraj84-beep/bhavya-steel-industries/internal/quote/transport"
	"github.com/kapasiraj84-beep/bhavya-steel-industries/internal/ratelimit"
	"github.com/kapasiraj84-beep/bhavya-steel-industries/platform/httpkit"
	"github.com/kapasiraj84-beep/bhavya-steel-industries/platform/logger"
	"github.com/kapasiraj84-beep/bhavya-steel-industries/platform/validator"
)

const (
	submitSuccessMessage = "Quote request submitted successfully! We will contact you soon."
	rateLimitMessage     = "Too many requests. Please try again later."
)

// DatabasePinger checks database reachability for the health endpoint.
type DatabasePinger interface {
	Ping(ctx context.Context) error
}

// HealthInfo describes the optional dependencies the health endpoint reports on.
type HealthInfo struct {
	Database DatabasePinger
	Sheets   bool
	Email    bool
}

// Handler serves the quote HTTP endpoints.
type Handler struct {
	svc     *service.Service
	limiter *ratelimit.Limiter
	health  HealthInfo
	val     *validator.Validator
	log     *logger.Logger
}

func New(svc *service.Service, limiter *ratelimit.Limiter, health HealthInfo, val *validator.Validator, log *logger.Logger) *Handler {
	return &Handler{svc: svc, limiter: limiter, health: health, val: val, log: log}
}

// RegisterPublicRoutes mounts the unauthenticated endpoints.
func (h *Handler) RegisterPublicRoutes(rg *gin.RouterGroup) {
	rg.POST("/quote", h.SubmitQuote)
	rg.GET("/health", h.Health)
}

// SubmitQuote runs the public intake pipeline.
func (h *Handler) SubmitQuote(c *gin.Context) {
	if !h.limiter.Allow(c.ClientIP()) {
		h.log.RateLimitExceeded(c.ClientIP(), c.FullPath())
		httpkit.Error(c, http.StatusTooManyRequests, rateLimitMessage, nil)
		return
	}

	var req transport.SubmitQuoteRequest
	if err := c.ShouldBind(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	record, err := h.svc.Submit(c.Request.Context(), req.Submission(c.ClientIP(), c.Request.UserAgent()))
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.Created(c, submitSuccessMessage, transport.NewSubmitQuoteResponse(record))
}

// Health reports liveness plus the state of each backing service.
func (h *Handler) Health(c *gin.Context) {
	services := map[string]string{
		"email":  enabledLabel(h.health.Email),
		"sheets": enabledLabel(h.health.Sheets),
	}
	switch {
	case h.health.Database == nil:
		services["database"] = "not configured"
	case h.health.Database.Ping(c.Request.Context()) != nil:
		services["database"] = "error"
	default:
		services["database"] = "connected"
	}

	httpkit.JSON(c, http.StatusOK, transport.HealthResponse{
		Status:    "ok",
		Timestamp: time.Now().UTC(),
		Services:  services,
	})
}

func enabledLabel(on bool) string {
	if on {
		return "enabled"
	}
	return "disabled"
}
