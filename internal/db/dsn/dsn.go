// Package dsn provides Data Source Name construction utilities for database connections.
package dsn

import (
	"fmt"
	"strings"

	"github.com/eingabe/eingabe/internal/config"
)

// Create builds the Data Source Name for the configured gorm engine.
// Extras is appended in the engine's own option syntax.
func Create(cfg *config.Config) string {
	db := cfg.DB

	switch db.GormEngine {
	case config.GormEngineMySQL:
		out := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s", db.User, db.Password, db.Host, db.Port, db.Name)
		if db.Extras != "" {
			out += "?" + db.Extras
		}

		return out
	case config.GormEnginePostgres:
		out := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%d",
			db.Host, db.User, db.Password, db.Name, db.Port)
		if db.Extras != "" {
			out += " " + strings.TrimSpace(db.Extras)
		}

		return out
	default:
		// sqlite: the name is the store file
		if db.Extras != "" {
			return db.Name + "?" + db.Extras
		}

		return db.Name
	}
}
