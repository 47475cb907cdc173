// Package login provides the admin login page.
package login

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/josephleon/leonweb/internal/auth"
	"github.com/josephleon/leonweb/internal/config"
	"github.com/josephleon/leonweb/internal/metrics"
	"github.com/josephleon/leonweb/internal/web/handler"
	guard "github.com/josephleon/leonweb/internal/web/middleware/auth"
	"github.com/josephleon/leonweb/internal/web/session"
)

// Form is the submitted login form.
type Form struct {
	Username string `form:"username"`
	Password string `form:"password"`
	OTP      string `form:"otp"`
}

// Service is the login handler service.
type Service struct {
	cfg           *config.Config
	authenticator *auth.Authenticator
	sessions      *session.Manager
}

// New creates the login handler.
func New(cfg *config.Config, authenticator *auth.Authenticator, sessions *session.Manager) *Service {
	return &Service{cfg: cfg, authenticator: authenticator, sessions: sessions}
}

// Init registers the login routes.
func (s *Service) Init(app fiber.Router) {
	if app == nil || s.cfg == nil || s.authenticator == nil || s.sessions == nil {
		log.Fatal().Msg(handler.ErrNilDepsFatalLogMsg)

		return
	}

	app.Get(handler.LoginPath, guard.RedirectAuthenticated(s.sessions), s.Get)
	app.Post(handler.LoginPath, s.Post)
}

// Get renders the login page.
func (s *Service) Get(c *fiber.Ctx) error {
	return s.render(c, "")
}

// Post checks the submitted credentials and starts the admin session.
// Every credential failure renders the same message and leaves the session untouched.
func (s *Service) Post(c *fiber.Ctx) error {
	form := new(Form)
	if err := c.BodyParser(form); err != nil {
		log.Debug().Err(err).Msg(ErrInvalidFormData.Error())
		metrics.LoginAttempts.WithLabelValues(metrics.ResultInvalid).Inc()

		return s.render(c, msgInvalidCredentials)
	}

	admin, err := s.authenticator.Authenticate(c.UserContext(), form.Username, form.Password, form.OTP)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			log.Info().Str("username", form.Username).Str("ip", c.IP()).Msg("failed admin login")
			metrics.LoginAttempts.WithLabelValues(metrics.ResultInvalid).Inc()

			return s.render(c, msgInvalidCredentials)
		}

		log.Error().Err(err).Msg("failed to authenticate administrator")
		metrics.LoginAttempts.WithLabelValues(metrics.ResultError).Inc()

		return s.render(c, msgInternalError)
	}

	if err = s.sessions.Login(c, admin); err != nil {
		log.Error().Err(err).Msg("failed to start admin session")
		metrics.LoginAttempts.WithLabelValues(metrics.ResultError).Inc()

		return s.render(c, msgInternalError)
	}

	log.Info().Str("username", admin.Username).Str("ip", c.IP()).Msg("admin logged in")
	metrics.LoginAttempts.WithLabelValues(metrics.ResultOK).Inc()

	return c.Redirect(handler.AdminPath)
}

func (s *Service) render(c *fiber.Ctx, errMsg string) error {
	data := fiber.Map{"Title": s.cfg.Title}
	if errMsg != "" {
		data["error"] = errMsg
	}

	return c.Render("login", data, handler.BaseLayout)
}
