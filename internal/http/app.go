package http

import (
	"github.com/kapasiraj84-beep/bhavya-steel-industries/platform/config"
	"github.com/kapasiraj84-beep/bhavya-steel-industries/platform/logger"
)

// RouterConfig combines the config interfaces the HTTP router needs.
type RouterConfig interface {
	config.HTTPConfig
	config.AdminConfig
}

// App holds the fully initialized application dependencies. It is
// populated by main.go (the composition root) and passed to the router.
type App struct {
	// Config holds the router configuration.
	Config RouterConfig
	// Logger is the structured logger.
	Logger *logger.Logger
	// Modules contains all HTTP-facing domain modules.
	Modules []Module
}
