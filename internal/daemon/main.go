// Package daemon wires config, logger, store and web service together.
package daemon

import (
	"net"
	"strconv"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"github.com/eingabe/eingabe/internal/config"
	"github.com/eingabe/eingabe/internal/db/store"
	"github.com/eingabe/eingabe/internal/web"
)

// ErrConfigNil is returned when the daemon is created without config.
var ErrConfigNil = errors.New("config is nil")

// Daemon represents the main application daemon.
type Daemon struct {
	cfg        *config.Config
	webService *web.Service
}

// Addr returns the listening address built from the webserver config.
func (d *Daemon) Addr() string {
	return net.JoinHostPort(d.cfg.Webserver.Host, strconv.Itoa(d.cfg.Webserver.Port))
}

// Start runs the web service until it is shut down.
func (d *Daemon) Start() error {
	log.Info().
		Str("addr", d.Addr()).
		Str("engine", d.cfg.DB.GormEngine).
		Str("db", d.cfg.DB.Name).
		Bool("dev", d.cfg.DevMode).
		Msg("starting web service")

	return d.webService.Start(d.Addr())
}

// New creates a new Daemon instance with the provided configuration.
// The submissions table is not created here, the submit form creates it on demand.
func New(cfg *config.Config) (*Daemon, error) {
	if cfg == nil {
		return nil, ErrConfigNil
	}

	accessor, err := store.New(cfg)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create store accessor")
	}

	return &Daemon{
		cfg:        cfg,
		webService: web.New(cfg, accessor),
	}, nil
}
