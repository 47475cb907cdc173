// Package contact accepts the JSON submissions of the public contact form.
package contact

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/josephleon/leonweb/internal/db/controller/record"
	"github.com/josephleon/leonweb/internal/db/models"
	"github.com/josephleon/leonweb/internal/metrics"
	"github.com/josephleon/leonweb/internal/web/handler"
)

const (
	// Path is the contact form endpoint.
	Path = "/contact"

	msgInvalidPayload = "Invalid request payload."
	msgFieldsRequired = "All fields are required!"
	msgSent           = "Your message has been sent successfully!"
	msgInternalError  = "An internal error occurred. Please try again later."
)

// Request is the contact form payload.
type Request struct {
	FullName string `json:"fullname" validate:"required"`
	Email    string `json:"email"    validate:"required"`
	Message  string `json:"message"  validate:"required"`
}

// Response is the JSON answer for every submission.
type Response struct {
	Message string   `json:"message,omitempty"`
	Error   string   `json:"error,omitempty"`
	Fields  []string `json:"fields,omitempty"`
}

// Service is the contact handler service.
type Service struct {
	messages *record.Store[models.ContactMessage]
	validate *validator.Validate
}

// New creates the contact handler.
func New(db *gorm.DB) *Service {
	validate := validator.New(validator.WithRequiredStructEnabled())
	validate.RegisterTagNameFunc(jsonName)

	return &Service{
		messages: record.New[models.ContactMessage](db, ""),
		validate: validate,
	}
}

// Init registers the contact route.
func (s *Service) Init(app fiber.Router) {
	if app == nil || s.messages == nil {
		log.Fatal().Msg(handler.ErrNilDepsFatalLogMsg)

		return
	}

	app.Post(Path, s.Post)
}

// Post validates the payload and stores the message.
func (s *Service) Post(c *fiber.Ctx) error {
	req := new(Request)
	if err := c.BodyParser(req); err != nil {
		metrics.ContactSubmissions.WithLabelValues(metrics.ResultInvalid).Inc()

		return c.Status(fiber.StatusBadRequest).JSON(Response{Error: msgInvalidPayload})
	}

	if missing := s.missingFields(req); len(missing) > 0 {
		metrics.ContactSubmissions.WithLabelValues(metrics.ResultInvalid).Inc()

		return c.Status(fiber.StatusBadRequest).JSON(Response{Error: msgFieldsRequired, Fields: missing})
	}

	msg := &models.ContactMessage{
		FullName: req.FullName,
		Email:    req.Email,
		Message:  req.Message,
	}

	if err := s.messages.Create(c.UserContext(), msg); err != nil {
		log.Error().Err(err).Str("email", req.Email).Msg("failed to store contact message")
		metrics.ContactSubmissions.WithLabelValues(metrics.ResultError).Inc()

		return c.Status(fiber.StatusInternalServerError).JSON(Response{Error: msgInternalError})
	}

	log.Info().Uint64("id", msg.ID).Str("email", msg.Email).Msg("contact message received")
	metrics.ContactSubmissions.WithLabelValues(metrics.ResultOK).Inc()

	return c.JSON(Response{Message: msgSent})
}

// missingFields returns the JSON names of the empty fields in declaration order.
func (s *Service) missingFields(req *Request) []string {
	err := s.validate.Struct(req)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []string{"fullname", "email", "message"}
	}

	fields := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, fe.Field())
	}

	return fields
}

func jsonName(fld reflect.StructField) string {
	name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
	if name == "-" {
		return ""
	}

	return name
}
