// Package logout ends the admin session.
package logout

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/josephleon/leonweb/internal/web/handler"
	guard "github.com/josephleon/leonweb/internal/web/middleware/auth"
	"github.com/josephleon/leonweb/internal/web/session"
)

// Service is the logout handler service.
type Service struct {
	sessions *session.Manager
	admins   guard.Directory
}

// New creates the logout handler.
func New(sessions *session.Manager, admins guard.Directory) *Service {
	return &Service{sessions: sessions, admins: admins}
}

// Init registers the guarded logout routes.
func (s *Service) Init(app fiber.Router) {
	if app == nil || s.sessions == nil || s.admins == nil {
		log.Fatal().Msg(handler.ErrNilDepsFatalLogMsg)

		return
	}

	g := guard.Guard(s.sessions, s.admins)

	app.Get(handler.LogoutPath, g, s.Logout)
	app.Post(handler.LogoutPath, g, s.Logout)
}

// Logout destroys the session and returns to the homepage.
func (s *Service) Logout(c *fiber.Ctx) error {
	if admin, ok := guard.CurrentAdmin(c); ok {
		log.Info().Str("username", admin.Username).Msg("admin logged out")
	}

	if err := s.sessions.Logout(c); err != nil {
		log.Error().Err(err).Msg("failed to destroy session")
	}

	return c.Redirect(handler.RootPath)
}
