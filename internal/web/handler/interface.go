// Package handler holds what all page handlers share.
package handler

import (
	"github.com/gofiber/fiber/v2"

	"github.com/eingabe/eingabe/internal/config"
	"github.com/eingabe/eingabe/internal/db/store"
	"github.com/eingabe/eingabe/internal/web/navigation"
)

// Service is the interface for a web handler service.
type Service interface {
	Init(app *fiber.App, cfg *config.Config, accessor *store.Accessor)
}

// Navigation builds the menu for the page identified by activePage.
func Navigation(pageTitle, activePage string) *navigation.Context {
	return navigation.NewContext(pageTitle, activePage).
		AddLink("Eingabe", RootPath, PageStart).
		AddLink("Liste", ListPath, PageListe)
}
