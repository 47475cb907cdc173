package contact

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/josephleon/leonweb/internal/db/dbtest"
	"github.com/josephleon/leonweb/internal/db/models"
	"github.com/josephleon/leonweb/internal/web/webtest"
)

func newTestApp(t *testing.T) (*fiber.App, *gorm.DB) {
	t.Helper()

	conn := dbtest.New(t)
	app := webtest.NewApp()
	New(conn).Init(app)

	return app, conn
}

func post(t *testing.T, app *fiber.App, body string) (*http.Response, Response) {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, Path, strings.NewReader(body))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)

	resp := webtest.Do(t, app, req)

	var out Response
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))

	return resp, out
}

func countMessages(t *testing.T, conn *gorm.DB) int64 {
	t.Helper()

	var n int64
	require.NoError(t, conn.Model(&models.ContactMessage{}).Count(&n).Error)

	return n
}

func TestPostStoresMessage(t *testing.T) {
	app, conn := newTestApp(t)

	resp, out := post(t, app, `{"fullname":"Jo Lee","email":"jo@example.com","message":"Hi"}`)

	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "Your message has been sent successfully!", out.Message)
	assert.Empty(t, out.Error)

	var msgs []models.ContactMessage
	require.NoError(t, conn.Find(&msgs).Error)
	require.Len(t, msgs, 1)
	assert.Equal(t, "Jo Lee", msgs[0].FullName)
	assert.Equal(t, "jo@example.com", msgs[0].Email)
	assert.Equal(t, "Hi", msgs[0].Message)
}

func TestPostMissingFields(t *testing.T) {
	tests := []struct {
		name   string
		body   string
		fields []string
	}{
		{
			name:   "empty message",
			body:   `{"fullname":"Jo Lee","email":"jo@example.com","message":""}`,
			fields: []string{"message"},
		},
		{
			name:   "missing email",
			body:   `{"fullname":"Jo Lee","message":"Hi"}`,
			fields: []string{"email"},
		},
		{
			name:   "empty object",
			body:   `{}`,
			fields: []string{"fullname", "email", "message"},
		},
		{
			name:   "null values",
			body:   `{"fullname":null,"email":"jo@example.com","message":null}`,
			fields: []string{"fullname", "message"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app, conn := newTestApp(t)

			resp, out := post(t, app, tt.body)

			assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
			assert.Equal(t, "All fields are required!", out.Error)
			assert.Equal(t, tt.fields, out.Fields)
			assert.Zero(t, countMessages(t, conn))
		})
	}
}

func TestPostInvalidPayload(t *testing.T) {
	for _, body := range []string{`not json`, `["a"]`, ``} {
		app, conn := newTestApp(t)

		resp, out := post(t, app, body)

		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode, body)
		assert.Equal(t, "Invalid request payload.", out.Error, body)
		assert.Zero(t, countMessages(t, conn))
	}
}

func TestPostPersistenceFailure(t *testing.T) {
	app, conn := newTestApp(t)
	dbtest.Break(t, conn)

	resp, out := post(t, app, `{"fullname":"Jo Lee","email":"jo@example.com","message":"Hi"}`)

	assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)
	assert.Equal(t, "An internal error occurred. Please try again later.", out.Error)
	assert.NotContains(t, out.Error, "sql")
}
