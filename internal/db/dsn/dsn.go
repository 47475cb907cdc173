// Package dsn provides Data Source Name construction utilities for database connections.
package dsn

import (
	"fmt"
	"strings"

	"github.com/josephleon/leonweb/internal/config"
)

// Create builds the Data Source Name for the configured engine.
// A non-empty DB.DSN is returned unchanged.
func Create(cfg *config.Config) string {
	db := cfg.DB

	if db.DSN != "" {
		return db.DSN
	}

	switch db.Engine {
	case config.EngineMySQL:
		return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?%s",
			db.User,
			db.Password,
			db.Host,
			db.Port,
			db.Name,
			db.Extras,
		)
	case config.EnginePostgres:
		return strings.TrimSpace(fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s %s",
			db.Host,
			db.Port,
			db.User,
			db.Password,
			db.Name,
			db.Extras,
		))
	default:
		if db.Extras == "" {
			return db.Name
		}

		return db.Name + "?" + db.Extras
	}
}
