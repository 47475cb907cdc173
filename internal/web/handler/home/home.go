// Package home renders the public homepage.
package home

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/josephleon/leonweb/internal/config"
	"github.com/josephleon/leonweb/internal/db/controller/record"
	"github.com/josephleon/leonweb/internal/db/models"
	"github.com/josephleon/leonweb/internal/web/handler"
)

// Service is the homepage handler service.
type Service struct {
	cfg   *config.Config
	posts *record.Store[models.BlogPost]
}

// New creates the homepage handler.
func New(cfg *config.Config, db *gorm.DB) *Service {
	return &Service{cfg: cfg, posts: record.New[models.BlogPost](db, "created_at DESC, id DESC")}
}

// Init registers the homepage route.
func (s *Service) Init(app fiber.Router) {
	if app == nil || s.cfg == nil {
		log.Fatal().Msg(handler.ErrNilDepsFatalLogMsg)

		return
	}

	app.Get(handler.RootPath, s.Get)
}

// Get renders the index page with the most recent posts.
func (s *Service) Get(c *fiber.Ctx) error {
	var posts []models.BlogPost

	if s.cfg.Site.HomePosts > 0 {
		page, err := s.posts.List(c.UserContext(), 1, s.cfg.Site.HomePosts)
		if err != nil {
			return err
		}

		posts = page.Items
	}

	return c.Render("index", fiber.Map{
		"Title": s.cfg.Title,
		"Posts": posts,
	}, handler.BaseLayout)
}
