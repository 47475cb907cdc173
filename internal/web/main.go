// Package web assembles the fiber application: views, middleware, handlers and
// the graceful shutdown of the http server.
package web

import (
	"errors"
	"net/http"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/encryptcookie"
	"github.com/gofiber/fiber/v2/middleware/filesystem"
	"github.com/gofiber/template/html/v2"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/josephleon/leonweb/internal/auth"
	"github.com/josephleon/leonweb/internal/config"
	fiberlogger "github.com/josephleon/leonweb/internal/logger/adapter/fiber"
	"github.com/josephleon/leonweb/internal/upload"
	"github.com/josephleon/leonweb/internal/web/handler"
	"github.com/josephleon/leonweb/internal/web/handler/admin"
	"github.com/josephleon/leonweb/internal/web/handler/contact"
	"github.com/josephleon/leonweb/internal/web/handler/home"
	"github.com/josephleon/leonweb/internal/web/handler/login"
	"github.com/josephleon/leonweb/internal/web/handler/logout"
	"github.com/josephleon/leonweb/internal/web/session"
)

const (
	// CheckAlivePath answers load balancer health checks.
	CheckAlivePath = "/checkalive"

	// MetricsPath exposes the Prometheus metrics.
	MetricsPath = "/metrics"

	templateDir = "./internal/web/templates"
)

// Service represents the web service.
type Service struct {
	App          *fiber.App
	cfg          *config.Config
	fastShutDown bool
	alive        atomic.Bool
}

// Start starts the web service on the given address and blocks until the server stops.
func (s *Service) Start(addr string) error {
	s.alive.Store(true)

	if err := s.App.Listen(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}

// WaitShutdown waits for SIGINT or SIGTERM and shuts the server down gracefully.
func (s *Service) WaitShutdown() {
	irqSig := make(chan os.Signal, 1)
	signal.Notify(irqSig, syscall.SIGINT, syscall.SIGTERM)

	sig := <-irqSig
	log.Info().Msgf("shutdown request (signal: %v)", sig)

	// Graceful shutdown for reverse proxies: set status to fail, so checkalive returns fail.
	if !s.fastShutDown {
		log.Info().Msgf(
			"graceful shutdown: return 503 while %d seconds to let LB to remove this pod from active targets",
			s.cfg.Webserver.ShutDownTime,
		)

		s.alive.Store(false)
		time.Sleep(time.Duration(s.cfg.Webserver.ShutDownTime) * time.Second)
	}

	log.Info().Msg("stopping http server ...")

	if err := s.App.Shutdown(); err != nil {
		log.Error().Err(err).Msg("failed to stop http server")
	}

	log.Info().Msg("http server was stopped ... good bye...")
}

// CheckAlive returns 200 while the service accepts traffic and 503 during shutdown.
func (s *Service) CheckAlive(c *fiber.Ctx) error {
	if !s.alive.Load() {
		return c.Status(fiber.StatusServiceUnavailable).SendString("shutting down")
	}

	return c.SendString("OK")
}

// Deps are the services the handlers are built from.
type Deps struct {
	DB       *gorm.DB
	Sessions *session.Manager
	Uploads  *upload.Store
}

// New creates the web service with all routes registered.
func New(cfg *config.Config, deps Deps) (*Service, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}

	if deps.DB == nil || deps.Sessions == nil || deps.Uploads == nil {
		return nil, errors.New("db, sessions and uploads cannot be nil")
	}

	service := &Service{
		cfg:          cfg,
		fastShutDown: cfg.DevMode,
	}

	app := fiber.New(
		fiber.Config{
			ReadBufferSize:    8192,
			AppName:           cfg.Log.AppName,
			CaseSensitive:     true,
			Prefork:           false,
			Immutable:         true,
			BodyLimit:         bodyLimit(cfg),
			Views:             newViews(cfg),
			PassLocalsToViews: true,
			ErrorHandler:      service.errorHandler,
		},
	)
	service.App = app

	if cfg.Webserver.SecretKey != "" {
		app.Use(encryptcookie.New(encryptcookie.Config{
			Key:    cfg.Webserver.SecretKey,
			Except: []string{},
		}))
	}

	app.Use(fiberlogger.New(fiberlogger.Config{
		Config:        cfg.Log,
		CheckAliveURI: CheckAlivePath,
		UserLocal:     handler.CurrentAdminLocal,
	}))

	// serve embedded static files
	app.Use("/static",
		filesystem.New(
			filesystem.Config{
				Root:       http.FS(embeddedStaticFiles),
				PathPrefix: "static",
			},
		),
	)

	app.Static(upload.URLPrefix, deps.Uploads.Dir(), fiber.Static{Browse: false})

	app.Get(CheckAlivePath, service.CheckAlive)

	if cfg.Webserver.Metrics {
		app.Get(MetricsPath, adaptor.HTTPHandler(promhttp.Handler()))
	}

	admins := auth.NewLocalProvider(deps.DB)
	authenticator := auth.NewAuthenticator(admins)

	home.New(cfg, deps.DB).Init(app)
	contact.New(deps.DB).Init(app)
	login.New(cfg, authenticator, deps.Sessions).Init(app)
	logout.New(deps.Sessions, admins).Init(app)
	admin.New(deps.Sessions, admins,
		admin.ContactMessages(deps.DB),
		admin.BlogPosts(deps.DB, deps.Uploads),
	).Init(app)

	app.Use(func(_ *fiber.Ctx) error {
		return fiber.ErrNotFound
	})

	return service, nil
}

func newViews(cfg *config.Config) *html.Engine {
	engine := html.NewFileSystem(http.FS(templatesFS()), ".gohtml")

	// in dev mode, use local filesystem for templates if we run from the repository
	if cfg.DevMode {
		if _, err := os.Stat(templateDir); err == nil {
			engine = html.New(templateDir, ".gohtml")
			engine.Reload(true)

			log.Warn().Msg("dev mode enabled: using local filesystem for templates")
		}
	}

	engine.AddFunc("add", func(a, b int) int {
		return a + b
	})
	engine.AddFunc("sub", func(a, b int) int {
		return a - b
	})
	engine.AddFunc("truncate", func(s string, n int) string {
		r := []rune(s)
		if len(r) <= n {
			return s
		}

		return string(r[:n]) + "…"
	})

	return engine
}

// bodyLimit leaves room for the multipart overhead around the largest upload.
func bodyLimit(cfg *config.Config) int {
	const overhead = 1 << 20

	if cfg.Upload.MaxSize <= 0 {
		return fiber.DefaultBodyLimit
	}

	return int(cfg.Upload.MaxSize) + overhead
}
