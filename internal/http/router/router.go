// Package router assembles the Gin engine: global middleware, error
// shaping, and per-module route registration.
package router

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	apphttp "github.com/kapasiraj84-beep/bhavya-steel-industries/internal/http"
	"github.com/kapasiraj84-beep/bhavya-steel-industries/platform/httpkit"
)

// New builds the HTTP engine from the initialized application.
func New(app *apphttp.App) *gin.Engine {
	if !app.Config.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	engine.Use(recovery(app))
	engine.Use(httpkit.RequestLogger(app.Logger))
	engine.Use(httpkit.SecurityHeaders())

	// Engine-level flood guard. Generous on purpose: the submission
	// endpoint applies its own, much stricter fixed-window limit.
	floodGuard := httpkit.NewIPRateLimiter(rate.Limit(50), 100, app.Logger)
	engine.Use(floodGuard.RateLimit())

	corsCfg := cors.DefaultConfig()
	corsCfg.AllowAllOrigins = true
	corsCfg.AllowMethods = []string{"GET", "POST", "PATCH", "OPTIONS"}
	corsCfg.AllowHeaders = []string{"Origin", "Content-Type", "Accept", "X-API-Key"}
	engine.Use(cors.New(corsCfg))

	engine.HandleMethodNotAllowed = true
	engine.NoMethod(func(c *gin.Context) {
		httpkit.Error(c, http.StatusMethodNotAllowed, "Method not allowed. Use POST to submit quotes.", nil)
	})
	engine.NoRoute(func(c *gin.Context) {
		httpkit.Error(c, http.StatusNotFound, "Not found", nil)
	})

	ctx := &apphttp.RouterContext{
		Engine: engine,
		API:    engine.Group("/api"),
		Admin:  engine.Group("/api", httpkit.APIKeyRequired(app.Config.GetAdminAPIKey())),
	}

	for _, m := range app.Modules {
		m.RegisterRoutes(ctx)
		app.Logger.Info("module routes registered", "module", m.Name())
	}

	return engine
}

// recovery converts panics into the standard error envelope. Panic
// details are only echoed in development.
func recovery(app *apphttp.App) gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered any) {
		app.Logger.Error("panic recovered", "error", recovered, "path", c.Request.URL.Path)
		var details any
		if app.Config.IsDevelopment() {
			details = recovered
		}
		c.AbortWithStatusJSON(http.StatusInternalServerError, httpkit.ErrorEnvelope{
			Error:   "Internal server error",
			Details: details,
		})
	})
}
