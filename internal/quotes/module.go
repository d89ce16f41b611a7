// Package quotes wires the quote intake pipeline and admin surface into
// one HTTP-facing domain module.
package quotes

import (
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/kapasiraj84-beep/bhavya-steel-industries/internal/events"
	apphttp "github.com/kapasiraj84-beep/bhavya-steel-industries/internal/http"
	"github.com/kapasiraj84-beep/bhavya-steel-industries/internal/quote"
	"github.com/kapasiraj84-beep/bhavya-steel-industries/internal/quote/handler"
	"github.com/kapasiraj84-beep/bhavya-steel-industries/internal/quote/repository"
	"github.com/kapasiraj84-beep/bhavya-steel-industries/internal/quote/service"
	"github.com/kapasiraj84-beep/bhavya-steel-industries/internal/ratelimit"
	"github.com/kapasiraj84-beep/bhavya-steel-industries/internal/sink"
	"github.com/kapasiraj84-beep/bhavya-steel-industries/platform/config"
	"github.com/kapasiraj84-beep/bhavya-steel-industries/platform/logger"
	"github.com/kapasiraj84-beep/bhavya-steel-industries/platform/validator"
)

// Module is the quotes domain module.
type Module struct {
	handler *handler.Handler
	service *service.Service
}

// Deps carries the externally constructed dependencies of the module.
// Pool is nil when no database is configured; the coordinator then runs
// without the Postgres sink and admin queries report unavailable.
type Deps struct {
	Config      *config.Config
	Pool        *pgxpool.Pool
	Coordinator *sink.Coordinator
	Bus         events.Bus
	Limiter     *ratelimit.Limiter
	Validator   *validator.Validator
	Log         *logger.Logger
}

// NewModule creates the quotes module with all dependencies wired.
func NewModule(d Deps) *Module {
	var store service.AdminStore
	health := handler.HealthInfo{
		Sheets: d.Config.IsSheetsEnabled(),
		Email:  d.Config.GetEmailEnabled(),
	}
	if d.Pool != nil {
		repo := repository.New(d.Pool)
		store = repo
		health.Database = repo
	}

	builder := quote.NewBuilder(d.Config.GetTimezone(), nil)
	svc := service.New(builder, d.Coordinator, sink.Policy(d.Config.GetPersistPolicy()), d.Bus, store, d.Log)
	h := handler.New(svc, d.Limiter, health, d.Validator, d.Log)

	return &Module{handler: h, service: svc}
}

// Name returns the module name for logging.
func (m *Module) Name() string {
	return "quotes"
}

// Service returns the service layer for external use.
func (m *Module) Service() *service.Service {
	return m.service
}

// RegisterRoutes registers the module's routes.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	m.handler.RegisterPublicRoutes(ctx.API)
	m.handler.RegisterAdminRoutes(ctx.Admin)
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
