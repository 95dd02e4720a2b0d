// Package liste provides the page listing all submissions.
package liste

import (
	"github.com/gofiber/fiber/v2"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/eingabe/eingabe/internal/config"
	"github.com/eingabe/eingabe/internal/db/controller/submission"
	"github.com/eingabe/eingabe/internal/db/store"
	"github.com/eingabe/eingabe/internal/web/handler"
)

const (
	// Path is the path to the submission list.
	Path = handler.ListPath

	// TemplateName is the name of the submission list template.
	TemplateName = "liste/liste"
)

// Service is the submission list handler service.
type Service struct {
	cfg      *config.Config
	accessor *store.Accessor
}

// Init initializes the submission list handler.
func (s *Service) Init(app *fiber.App, cfg *config.Config, accessor *store.Accessor) {
	if app == nil || cfg == nil || accessor == nil {
		log.Fatal().Msg(handler.ErrNilACDFatalLogMsg)
		return
	}

	s.cfg = cfg
	s.accessor = accessor

	// POST is answered exactly like GET
	app.Get(Path, s.Get)
	app.Post(Path, s.Get)
}

// Get renders all submissions, one line per entry.
// The table is not created here, it must exist from a prior request to the submit form.
func (s *Service) Get(c *fiber.Ctx) error {
	var lines []string

	err := s.accessor.With(func(db *gorm.DB) error {
		var err error
		lines, err = submission.Lines(db)

		return err
	})
	if err != nil {
		return errors.Wrap(err, "failed to list submissions")
	}

	log.Debug().Int("lines", len(lines)).Msg("submissions listed")

	return c.Render(TemplateName, fiber.Map{
		"Title":      s.cfg.Title,
		"Navigation": handler.Navigation("Liste", handler.PageListe),
		"Eingaben":   lines,
	}, handler.BaseLayout)
}
