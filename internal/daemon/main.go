// Package daemon wires database, sessions, uploads and the web service together.
package daemon

import (
	"context"
	"fmt"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/josephleon/leonweb/internal/config"
	"github.com/josephleon/leonweb/internal/db"
	"github.com/josephleon/leonweb/internal/upload"
	"github.com/josephleon/leonweb/internal/web"
	"github.com/josephleon/leonweb/internal/web/session"
)

// Daemon represents the main application daemon.
type Daemon struct {
	cfg        *config.Config
	db         *gorm.DB
	webService *web.Service
}

// Start serves http until SIGINT or SIGTERM.
func (d *Daemon) Start() error {
	go d.webService.WaitShutdown()

	addr := fmt.Sprintf(":%d", d.cfg.Webserver.Port)
	log.Info().Str("addr", addr).Str("url", d.cfg.Webserver.URL).Msg("starting web service")

	return d.webService.Start(addr)
}

// New creates the daemon: it opens and migrates the database, seeds the
// administrator and builds the web service.
func New(ctx context.Context, cfg *config.Config) (*Daemon, error) {
	if cfg == nil {
		return nil, errors.New("config is nil")
	}

	conn, err := db.Open(cfg)
	if err != nil {
		return nil, err
	}

	if err = seed(ctx, cfg, conn); err != nil {
		return nil, err
	}

	uploads, err := upload.New(cfg.Upload)
	if err != nil {
		return nil, err
	}

	webService, err := web.New(cfg, web.Deps{
		DB:       conn,
		Sessions: session.NewManager(cfg, session.NewStorage(cfg)),
		Uploads:  uploads,
	})
	if err != nil {
		return nil, err
	}

	return &Daemon{
		cfg:        cfg,
		db:         conn,
		webService: webService,
	}, nil
}
