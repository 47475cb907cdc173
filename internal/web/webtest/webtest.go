// Package webtest has helpers for handler tests: a views engine that echoes
// errors instead of rendering templates and request shortcuts around app.Test.
package webtest

import (
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"

	"github.com/josephleon/leonweb/internal/config"
)

// NoOpViews is a minimal fiber.Views engine. It writes the "error" value of the
// bound fiber.Map, then the sorted keys of "Errors", falling back to the template name.
type NoOpViews struct{}

// Load implements fiber.Views.
func (NoOpViews) Load() error { return nil }

// Render implements fiber.Views.
func (NoOpViews) Render(w io.Writer, name string, data interface{}, _ ...string) error {
	m, ok := data.(fiber.Map)
	if !ok {
		_, err := io.WriteString(w, name)

		return err
	}

	if v, exists := m["error"]; exists && v != nil {
		_, err := fmt.Fprint(w, v)

		return err
	}

	if fieldErrs, exists := m["Errors"].(map[string]string); exists && len(fieldErrs) > 0 {
		keys := make([]string, 0, len(fieldErrs))
		for k := range fieldErrs {
			keys = append(keys, k)
		}

		sort.Strings(keys)
		_, err := io.WriteString(w, "errors:"+strings.Join(keys, ","))

		return err
	}

	_, err := io.WriteString(w, name)

	return err
}

// NewApp returns a fiber app rendering through NoOpViews.
func NewApp() *fiber.App {
	return fiber.New(fiber.Config{Views: NoOpViews{}, PassLocalsToViews: true})
}

// Config returns a valid configuration for tests.
func Config(t *testing.T) *config.Config {
	t.Helper()

	return &config.Config{
		DevMode: true,
		Title:   "leonweb",
		Webserver: config.Webserver{
			URL:     "http://localhost",
			Port:    8080,
			Session: config.Session{ExpiryTime: time.Minute},
		},
		DB: config.DB{Engine: config.EngineSQLite},
		Upload: config.Upload{
			Dir:               t.TempDir(),
			MaxSize:           1 << 20,
			AllowedExtensions: []string{".gif", ".jpg", ".jpeg", ".png", ".webp"},
		},
		Admin: config.Admin{Username: "admin"},
		Site:  config.Site{HomePosts: 5},
	}
}

// Do sends the request with the given cookies attached.
func Do(t *testing.T, app *fiber.App, req *http.Request, cookies ...*http.Cookie) *http.Response {
	t.Helper()

	for _, c := range cookies {
		if c != nil {
			req.AddCookie(c)
		}
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	t.Cleanup(func() { _ = resp.Body.Close() })

	return resp
}

// Get sends a GET request.
func Get(t *testing.T, app *fiber.App, target string, cookies ...*http.Cookie) *http.Response {
	t.Helper()

	return Do(t, app, httptest.NewRequest(http.MethodGet, target, nil), cookies...)
}

// PostForm sends an url encoded form.
func PostForm(t *testing.T, app *fiber.App, target string, form url.Values, cookies ...*http.Cookie) *http.Response {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(form.Encode()))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationForm)

	return Do(t, app, req, cookies...)
}

// Body reads the whole response body.
func Body(t *testing.T, resp *http.Response) string {
	t.Helper()

	b, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	return string(b)
}

// Cookie returns the named cookie set by the response, nil if absent.
func Cookie(resp *http.Response, name string) *http.Cookie {
	for _, c := range resp.Cookies() {
		if c.Name == name {
			return c
		}
	}

	return nil
}
