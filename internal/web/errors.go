package web

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/josephleon/leonweb/internal/web/handler"
)

const msgInternalError = "An internal error occurred. Please try again later."

// errorHandler renders the error pages. JSON clients get {"error": ...} instead.
// Internal error details are logged, never sent.
func (s *Service) errorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError

	var fe *fiber.Error
	if errors.As(err, &fe) {
		code = fe.Code
	}

	msg := msgInternalError
	if code < fiber.StatusInternalServerError {
		msg = fe.Message
	} else {
		log.Error().Err(err).Str("method", c.Method()).Str("path", c.Path()).Msg("request failed")
	}

	c.Status(code)

	if c.Accepts(fiber.MIMETextHTML, fiber.MIMEApplicationJSON) == fiber.MIMEApplicationJSON {
		return c.JSON(fiber.Map{"error": msg})
	}

	tmpl := "errors/500"
	if code < fiber.StatusInternalServerError {
		tmpl = "errors/404"
	}

	if rerr := c.Render(tmpl, fiber.Map{
		"Title":   s.cfg.Title,
		"Code":    code,
		"Message": msg,
	}, handler.BaseLayout); rerr != nil {
		log.Error().Err(rerr).Msg("failed to render error page")

		c.Set(fiber.HeaderContentType, fiber.MIMETextPlainCharsetUTF8)

		return c.SendString(msg)
	}

	return nil
}
