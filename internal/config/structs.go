package config

import (
	"github.com/eingabe/eingabe/internal/logger"
)

// Config overall data structure.
type Config struct {
	DevMode   bool // enable dev mode for development
	DB        DB
	Log       logger.Log
	Title     string
	Webserver Webserver
}

// Webserver implement webserver settings.
type Webserver struct {
	DisableRecover bool   // disable recover middleware
	FastShutDown   bool   // skip the ShutDownTime grace period
	Host           string // listening interface, empty or 0.0.0.0 for all
	Metrics        bool   // expose prometheus metrics on /metrics
	Port           int    // listening port for the webserver
	ShutDownTime   int    // wait time for shutdown in seconds
}
