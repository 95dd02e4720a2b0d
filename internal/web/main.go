// Package web implements the fiber web service serving the submit form and the list.
package web

import (
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/utils"
	"github.com/gofiber/template/html/v2"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"

	"github.com/eingabe/eingabe/internal/config"
	"github.com/eingabe/eingabe/internal/db/store"
	accesslog "github.com/eingabe/eingabe/internal/logger/adapter/fiber"
	"github.com/eingabe/eingabe/internal/web/handler"
	"github.com/eingabe/eingabe/internal/web/handler/liste"
	"github.com/eingabe/eingabe/internal/web/handler/start"
)

const (
	// CheckAlivePath answers load balancer health checks.
	CheckAlivePath = "/checkalive"

	// MetricsPath exposes prometheus metrics when enabled.
	MetricsPath = "/metrics"
)

// Service represents the web service.
type Service struct {
	App      *fiber.App
	cfg      *config.Config
	alive    atomic.Bool
	accessor *store.Accessor
}

// Start listens on addr until SIGINT or SIGTERM, then shuts down gracefully.
func (s *Service) Start(addr string) error {
	listenErr := make(chan error, 1)

	go func() {
		listenErr <- s.App.Listen(addr)
	}()

	irqSig := make(chan os.Signal, 1)
	signal.Notify(irqSig, syscall.SIGINT, syscall.SIGTERM)

	defer signal.Stop(irqSig)

	select {
	case err := <-listenErr:
		return errors.Wrap(err, "fiber listen error")
	case sig := <-irqSig:
		log.Info().Msgf("shutdown request (signal: %v)", sig)
	}

	if err := s.Shutdown(); err != nil {
		return err
	}

	if err := <-listenErr; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return errors.Wrap(err, "fiber listen error")
	}

	log.Info().Msg("http server was stopped ... good bye...")

	return nil
}

// Shutdown marks the service as not alive, waits the configured grace period
// so load balancers stop routing here, then stops fiber.
func (s *Service) Shutdown() error {
	s.alive.Store(false)

	if !s.cfg.Webserver.FastShutDown && s.cfg.Webserver.ShutDownTime > 0 {
		log.Info().Msgf(
			"graceful shutdown: return 503 on %s for %d seconds",
			CheckAlivePath,
			s.cfg.Webserver.ShutDownTime,
		)

		time.Sleep(time.Duration(s.cfg.Webserver.ShutDownTime) * time.Second)
	}

	log.Info().Msg("stopping http server ...")

	return errors.Wrap(s.App.Shutdown(), "failed to stop http server")
}

// Alive reports whether the service accepts traffic.
func (s *Service) Alive() bool {
	return s.alive.Load()
}

// New creates a new web service with the given configuration.
func New(cfg *config.Config, accessor *store.Accessor) *Service {
	if cfg == nil {
		panic("config cannot be nil")
	}

	if accessor == nil {
		panic("store accessor cannot be nil")
	}

	httpFS := http.FS(templateEmbedFS{embeddedTemplates})
	templateEngine := html.NewFileSystem(httpFS, ".gohtml")

	// in dev mode, use local filesystem for templates
	if cfg.DevMode {
		templateEngine = html.New("./internal/web/templates", ".gohtml")
		templateEngine.ShouldReload = true

		log.Warn().Msg("dev mode enabled: using local filesystem for templates, error responses carry stack traces")
	}

	templateEngine.AddFunc("add", func(a, b int) int {
		return a + b
	})

	service := &Service{
		cfg:      cfg,
		accessor: accessor,
	}
	service.alive.Store(true)

	app := fiber.New(
		fiber.Config{
			ReadBufferSize: 8192,
			AppName:        "eingabe",
			CaseSensitive:  true,
			Prefork:        false,
			Immutable:      true,
			Views:          templateEngine,
			ErrorHandler:   service.errorHandler,
		},
	)
	service.App = app

	app.Use(accesslog.New(accesslog.Config{
		Config:        cfg.Log,
		CheckAliveURI: CheckAlivePath,
	}))

	if !cfg.Webserver.DisableRecover {
		app.Use(recover.New(recover.Config{EnableStackTrace: cfg.DevMode}))
	}

	app.Get(CheckAlivePath, service.checkAlive)

	if cfg.Webserver.Metrics {
		app.Get(MetricsPath, adaptor.HTTPHandler(promhttp.Handler()))
	}

	for _, h := range []handler.Service{new(start.Service), new(liste.Service)} {
		h.Init(app, cfg, accessor)
	}

	return service
}

func (s *Service) checkAlive(c *fiber.Ctx) error {
	if !s.alive.Load() {
		return c.Status(fiber.StatusServiceUnavailable).SendString("shutting down")
	}

	return c.SendString("OK")
}

// errorHandler answers failed requests with a plain text body.
// Dev mode exposes the full error including its stack, otherwise only the status text.
func (s *Service) errorHandler(c *fiber.Ctx, err error) error {
	var (
		code     = fiber.StatusInternalServerError
		fiberErr *fiber.Error
		message  string
	)

	if errors.As(err, &fiberErr) {
		code = fiberErr.Code
		message = fiberErr.Message
	}

	if code >= fiber.StatusInternalServerError {
		log.Error().Err(err).Str("URI", c.OriginalURL()).Str("method", c.Method()).Int("status", code).Msg("request failed")

		message = utils.StatusMessage(code)
	}

	if s.cfg.DevMode {
		message = fmt.Sprintf("%+v", err)
	}

	c.Set(fiber.HeaderContentType, fiber.MIMETextPlainCharsetUTF8)

	return c.Status(code).SendString(message)
}
