package server

import (
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"inkwell/internal/auth"
	"inkwell/internal/config"
	"inkwell/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// setupTestServer builds a server and app against an in-memory SQLite
// database.
func setupTestServer(t *testing.T) (*Server, *fiber.App, *gorm.DB) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	// An in-memory SQLite database exists per connection.
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Post{}, &models.Comment{}))

	cfg := &config.Config{
		SecretKey:   "test-secret-key",
		DatabaseURL: "sqlite::memory:",
		Port:        "0",
		Env:         "test",
	}
	srv := NewServerWithDeps(cfg, db)
	app := srv.BuildApp()
	return srv, app, db
}

// seedUserWithID inserts a user with a fixed ID so authorization scenarios
// can distinguish the administrator (ID 1) from everyone else.
func seedUserWithID(t *testing.T, db *gorm.DB, id uint, email, name string) *models.User {
	t.Helper()
	user := &models.User{ID: id, Email: email, Password: "hash", Name: name}
	require.NoError(t, db.Create(user).Error)
	return user
}

func seedPost(t *testing.T, db *gorm.DB, authorID uint, title string) *models.Post {
	t.Helper()
	post := &models.Post{
		Title:    title,
		Subtitle: "subtitle",
		Date:     "May 1, 2026",
		Body:     "body text",
		AuthorID: authorID,
	}
	require.NoError(t, db.Create(post).Error)
	return post
}

func seedComment(t *testing.T, db *gorm.DB, authorID, postID uint, text string) *models.Comment {
	t.Helper()
	comment := &models.Comment{Text: text, AuthorID: authorID, PostID: postID}
	require.NoError(t, db.Create(comment).Error)
	return comment
}

// sessionFor signs a session cookie value for the given user.
func sessionFor(t *testing.T, srv *Server, userID uint) *http.Cookie {
	t.Helper()
	token, err := auth.SignSession(srv.config.SecretKey, userID)
	require.NoError(t, err)
	return &http.Cookie{Name: auth.SessionCookieName, Value: token}
}

// formRequest builds a form-encoded POST request.
func formRequest(path string, values url.Values) *http.Request {
	req := httptest.NewRequest(fiber.MethodPost, path, strings.NewReader(values.Encode()))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationForm)
	return req
}

func bodyOf(t *testing.T, resp *http.Response) string {
	t.Helper()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return string(raw)
}

// sessionCookieFrom extracts the session cookie set on a response, if any.
func sessionCookieFrom(resp *http.Response) *http.Cookie {
	for _, cookie := range resp.Cookies() {
		if cookie.Name == auth.SessionCookieName && cookie.Value != "" {
			return cookie
		}
	}
	return nil
}
