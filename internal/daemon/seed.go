package daemon

import (
	"context"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/josephleon/leonweb/internal/auth"
	"github.com/josephleon/leonweb/internal/config"
	"github.com/josephleon/leonweb/internal/uniuri"
)

// seed creates the administrator if it does not exist yet. Without a
// configured initial password a random one is generated and logged once.
func seed(ctx context.Context, cfg *config.Config, conn *gorm.DB) error {
	password := cfg.Admin.InitialPassword
	generated := password == ""

	if generated {
		var err error
		if password, err = uniuri.Password(); err != nil {
			return err
		}
	}

	created, err := auth.NewLocalProvider(conn).EnsureAdministrator(ctx, cfg.Admin.Username, password)
	if err != nil {
		return err
	}

	if !created {
		return nil
	}

	if generated {
		log.Warn().
			Str("username", cfg.Admin.Username).
			Str("password", password).
			Msg("created administrator with a generated password, change it with: leonweb admin set-password")

		return nil
	}

	log.Info().Str("username", cfg.Admin.Username).Msg("created administrator")

	return nil
}
