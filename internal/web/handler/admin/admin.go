// Package admin provides the admin back office: an index of all resources and
// generic list and form pages for every declared resource.
package admin

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/josephleon/leonweb/internal/web/handler"
	guard "github.com/josephleon/leonweb/internal/web/middleware/auth"
	"github.com/josephleon/leonweb/internal/web/navigation"
	"github.com/josephleon/leonweb/internal/web/session"
)

const indexPage = "index"

// Summary is a resource with its record count, shown on the index page.
type Summary struct {
	Meta  Meta
	Count int64
}

// Service is the admin handler service.
type Service struct {
	sessions  *session.Manager
	admins    guard.Directory
	resources []Registrar
}

// New creates the admin service for the given resources.
func New(sessions *session.Manager, admins guard.Directory, resources ...Registrar) *Service {
	return &Service{sessions: sessions, admins: admins, resources: resources}
}

// Init registers the index and the routes of every resource, all guarded.
func (s *Service) Init(app fiber.Router) {
	if app == nil || s.sessions == nil || s.admins == nil {
		log.Fatal().Msg(handler.ErrNilDepsFatalLogMsg)

		return
	}

	g := guard.Guard(s.sessions, s.admins)
	menu := s.menu()

	app.Get(handler.AdminPath, g, s.Index)

	for _, r := range s.resources {
		r.Register(app, g, menu)
	}
}

// Index renders the resources with their record counts.
func (s *Service) Index(c *fiber.Ctx) error {
	summaries := make([]Summary, 0, len(s.resources))

	for _, r := range s.resources {
		n, err := r.Count(c.UserContext())
		if err != nil {
			return err
		}

		summaries = append(summaries, Summary{Meta: r.Meta(), Count: n})
	}

	return c.Render("admin/index", fiber.Map{
		"Title":     navigation.AdminTitle,
		"Resources": s.menu(),
		"Summaries": summaries,
		"Nav": navigation.NewContext(navigation.AdminTitle, indexPage).
			Current(navigation.AdminTitle, handler.AdminPath),
	}, handler.AdminLayout)
}

func (s *Service) menu() []Meta {
	menu := make([]Meta, 0, len(s.resources))
	for _, r := range s.resources {
		menu = append(menu, r.Meta())
	}

	return menu
}
