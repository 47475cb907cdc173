package auth

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	authn "github.com/josephleon/leonweb/internal/auth"
	"github.com/josephleon/leonweb/internal/db/models"
	"github.com/josephleon/leonweb/internal/web/handler"
	"github.com/josephleon/leonweb/internal/web/session"
)

// Directory resolves the administrator a session points at.
type Directory interface {
	GetByID(ctx context.Context, id uint64) (*models.Administrator, error)
}

// Guard returns middleware letting only authenticated administrators through.
// A session whose administrator no longer exists is destroyed and treated as anonymous.
func Guard(sessions *session.Manager, admins Directory) fiber.Handler {
	return func(c *fiber.Ctx) error {
		identity, ok, err := sessions.Current(c)
		if err != nil {
			log.Error().Err(err).Str("path", c.Path()).Msg("failed to read session")

			return c.Redirect(handler.LoginPath)
		}

		if !ok {
			return c.Redirect(handler.LoginPath)
		}

		admin, err := admins.GetByID(c.UserContext(), identity.ID)
		if errors.Is(err, authn.ErrAdministratorNotFound) {
			log.Warn().Uint64("id", identity.ID).Str("username", identity.Username).
				Msg("session of a removed administrator")

			if err = sessions.Logout(c); err != nil {
				log.Error().Err(err).Msg("failed to destroy session")
			}

			return c.Redirect(handler.LoginPath)
		}

		if err != nil {
			return err
		}

		c.Locals(handler.CurrentAdminLocal, session.Identity{ID: admin.ID, Username: admin.Username})

		return c.Next()
	}
}

// RedirectAuthenticated sends administrators who are already logged in to the
// admin index, used on the login page.
func RedirectAuthenticated(sessions *session.Manager) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if _, ok, err := sessions.Current(c); err == nil && ok {
			return c.Redirect(handler.AdminPath)
		}

		return c.Next()
	}
}

// CurrentAdmin returns the identity the guard stored for this request.
func CurrentAdmin(c *fiber.Ctx) (session.Identity, bool) {
	identity, ok := c.Locals(handler.CurrentAdminLocal).(session.Identity)

	return identity, ok
}
