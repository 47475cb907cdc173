// Package session keeps the authenticated administrator in a server side session.
package session

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"
	mysqlstorage "github.com/gofiber/storage/mysql/v2"
	postgresstorage "github.com/gofiber/storage/postgres/v3"
	"github.com/pkg/errors"

	"github.com/josephleon/leonweb/internal/config"
	"github.com/josephleon/leonweb/internal/db/dsn"
	"github.com/josephleon/leonweb/internal/db/models"
)

const (
	// CookieName is the name of the session cookie.
	CookieName = "session"

	// TableName is the table the sql session storages use.
	TableName = "sessions"

	keyAdminID       = "admin_id"
	keyAdminUsername = "admin_username"

	gcInterval = time.Minute
)

// Identity is the administrator a session belongs to.
type Identity struct {
	ID       uint64
	Username string
}

// String returns the username.
func (i Identity) String() string {
	return i.Username
}

// Manager reads and writes the session of the current request.
type Manager struct {
	store *session.Store
}

// NewManager creates a session manager on top of the storage.
// A nil storage keeps sessions in memory.
func NewManager(cfg *config.Config, storage fiber.Storage) *Manager {
	return &Manager{
		store: session.New(session.Config{
			Expiration:     cfg.Webserver.Session.ExpiryTime,
			Storage:        storage,
			KeyLookup:      "cookie:" + CookieName,
			CookieSecure:   !cfg.DevMode,
			CookieHTTPOnly: true,
			CookieSameSite: fiber.CookieSameSiteLaxMode,
		}),
	}
}

// NewStorage returns the session storage matching the database engine:
// a sessions table for mysql and postgres, nil (memory) for sqlite.
func NewStorage(cfg *config.Config) fiber.Storage {
	switch cfg.DB.Engine {
	case config.EngineMySQL:
		return mysqlstorage.New(mysqlstorage.Config{
			ConnectionURI: dsn.Create(cfg),
			Table:         TableName,
			GCInterval:    gcInterval,
		})
	case config.EnginePostgres:
		return postgresstorage.New(postgresstorage.Config{
			ConnectionURI: dsn.Create(cfg),
			Table:         TableName,
			GCInterval:    gcInterval,
		})
	default:
		return nil
	}
}

// Login binds the session to the administrator. The session ID is regenerated
// so an ID known before login is worthless afterwards.
func (m *Manager) Login(c *fiber.Ctx, admin *models.Administrator) error {
	sess, err := m.store.Get(c)
	if err != nil {
		return errors.Wrap(err, "failed to get session")
	}

	if err = sess.Regenerate(); err != nil {
		return errors.Wrap(err, "failed to regenerate session")
	}

	sess.Set(keyAdminID, admin.ID)
	sess.Set(keyAdminUsername, admin.Username)

	if err = sess.Save(); err != nil {
		return errors.Wrap(err, "failed to save session")
	}

	return nil
}

// Current returns the administrator of the request's session, ok is false
// for anonymous requests.
func (m *Manager) Current(c *fiber.Ctx) (Identity, bool, error) {
	// no cookie, no lookup and no fresh session
	if c.Cookies(CookieName) == "" {
		return Identity{}, false, nil
	}

	sess, err := m.store.Get(c)
	if err != nil {
		return Identity{}, false, errors.Wrap(err, "failed to get session")
	}

	id, _ := sess.Get(keyAdminID).(uint64)
	username, _ := sess.Get(keyAdminUsername).(string)

	if id == 0 {
		return Identity{}, false, nil
	}

	return Identity{ID: id, Username: username}, true, nil
}

// Logout destroys the session and expires the cookie.
func (m *Manager) Logout(c *fiber.Ctx) error {
	sess, err := m.store.Get(c)
	if err != nil {
		return errors.Wrap(err, "failed to get session")
	}

	if err = sess.Destroy(); err != nil {
		return errors.Wrap(err, "failed to destroy session")
	}

	return nil
}
