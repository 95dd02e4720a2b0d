// Package start provides the submit form showing the latest submission.
package start

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/eingabe/eingabe/internal/config"
	"github.com/eingabe/eingabe/internal/db/controller/submission"
	"github.com/eingabe/eingabe/internal/db/models"
	"github.com/eingabe/eingabe/internal/db/store"
	"github.com/eingabe/eingabe/internal/web/handler"
)

const (
	// Path is the path to the submit form.
	Path = handler.RootPath

	// TemplateName is the name of the submit form template.
	TemplateName = "start/start"

	// MsgInputRequired is the whole response body when the input field is missing or empty.
	MsgInputRequired = "Inhalt benötigt!"
)

// Service is the submit form handler service.
type Service struct {
	cfg       *config.Config
	accessor  *store.Accessor
	validator *validator.Validate
}

type submitForm struct {
	Input string `form:"input" validate:"required"`
}

// Init initializes the submit form handler.
func (s *Service) Init(app *fiber.App, cfg *config.Config, accessor *store.Accessor) {
	if app == nil || cfg == nil || accessor == nil {
		log.Fatal().Msg(handler.ErrNilACDFatalLogMsg)
		return
	}

	s.cfg = cfg
	s.accessor = accessor
	s.validator = validator.New()

	app.Get(Path, s.Get)
	app.Post(Path, s.Post)
}

// Get renders the latest submission.
func (s *Service) Get(c *fiber.Ctx) error {
	var latest *models.Submission

	err := s.accessor.With(func(db *gorm.DB) error {
		if err := submission.EnsureTable(db); err != nil {
			return errors.Wrap(err, "failed to create submissions table")
		}

		var err error
		latest, err = submission.Latest(db)

		return err
	})
	if err != nil {
		return errors.Wrap(err, "failed to load latest submission")
	}

	return s.render(c, latest)
}

// Post stores the input field and renders the latest submission.
// A missing or empty field is answered with MsgInputRequired and nothing is stored.
func (s *Service) Post(c *fiber.Ctx) error {
	var (
		in       submitForm
		latest   *models.Submission
		rejected bool
	)

	// an unparsable body counts as a missing field
	if err := c.BodyParser(&in); err != nil {
		log.Debug().Err(err).Msg("can't parse submit form")
	}

	err := s.accessor.With(func(db *gorm.DB) error {
		if err := submission.EnsureTable(db); err != nil {
			return errors.Wrap(err, "failed to create submissions table")
		}

		if err := s.validator.Struct(in); err != nil {
			rejected = true
			return nil
		}

		if _, err := submission.Create(db, in.Input); err != nil {
			return errors.Wrap(err, "failed to store submission")
		}

		var err error
		latest, err = submission.Latest(db)

		return err
	})
	if err != nil {
		return errors.Wrap(err, "failed to load latest submission")
	}

	if rejected {
		submissionsTotal.WithLabelValues(resultRejected).Inc()
		log.Debug().Msg("submission rejected: input is empty")

		return c.SendString(MsgInputRequired)
	}

	submissionsTotal.WithLabelValues(resultStored).Inc()
	log.Debug().Int("length", len(in.Input)).Msg("submission stored")

	return s.render(c, latest)
}

func (s *Service) render(c *fiber.Ctx, latest *models.Submission) error {
	return c.Render(TemplateName, fiber.Map{
		"Title":      s.cfg.Title,
		"Navigation": handler.Navigation("Eingabe", handler.PageStart),
		"Input":      latest.Text,
	}, handler.BaseLayout)
}
