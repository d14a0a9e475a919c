package server

import (
	"errors"
	"time"

	"inkwell/internal/auth"
	"inkwell/internal/middleware"
	"inkwell/internal/models"

	"github.com/gofiber/fiber/v2"
)

// errResponseWritten is a sentinel indicating the HTTP response was already
// committed by a helper. Handlers must return nil (not this error) to avoid
// Fiber's ErrorHandler overwriting the response.
var errResponseWritten = errors.New("response already written")

// render renders a page template inside the main layout, injecting the
// login state and any pending flash message.
func (s *Server) render(c *fiber.Ctx, name string, bind fiber.Map) error {
	if bind == nil {
		bind = fiber.Map{}
	}
	identity := middleware.CurrentIdentity(c)
	bind["LoggedIn"] = identity.IsAuthenticated()
	if flash := middleware.PopFlash(c); flash != nil {
		bind["Flash"] = flash
	}
	return c.Render(name, bind)
}

// renderError renders the error page with the given status code.
func (s *Server) renderError(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).Render("error", fiber.Map{
		"Status":   status,
		"Message":  message,
		"LoggedIn": middleware.CurrentIdentity(c).IsAuthenticated(),
	})
}

// handleError translates an application error into the matching HTML
// response: 404 and 403 pages, a login redirect for unauthenticated
// attempts, and a 500 page for everything unexpected.
func (s *Server) handleError(c *fiber.Ctx, err error) error {
	var appErr *models.AppError
	if errors.As(err, &appErr) {
		switch appErr.Code {
		case "NOT_FOUND":
			return s.renderError(c, fiber.StatusNotFound, appErr.Message)
		case "FORBIDDEN":
			return s.renderError(c, fiber.StatusForbidden, appErr.Message)
		case "UNAUTHENTICATED":
			middleware.SetFlash(c, "error", appErr.Message)
			return c.Redirect("/login", fiber.StatusSeeOther)
		}
	}
	middleware.Logger.ErrorContext(c.UserContext(), "unhandled error", "error", err.Error())
	return s.renderError(c, fiber.StatusInternalServerError, "Something went wrong")
}

// parseID extracts a route parameter as a positive uint. A non-numeric or
// non-positive value is treated as a missing resource: the 404 page is
// written and errResponseWritten returned.
func (s *Server) parseID(c *fiber.Ctx, param string) (uint, error) {
	id, err := c.ParamsInt(param)
	if err != nil || id <= 0 {
		_ = s.renderError(c, fiber.StatusNotFound, "There is no such post")
		return 0, errResponseWritten
	}
	return uint(id), nil
}

// issueSession signs a session token for the user and sets the session
// cookie. Registration and login both end here.
func (s *Server) issueSession(c *fiber.Ctx, userID uint) error {
	token, err := auth.SignSession(s.config.SecretKey, userID)
	if err != nil {
		return err
	}
	c.Cookie(&fiber.Cookie{
		Name:     auth.SessionCookieName,
		Value:    token,
		Path:     "/",
		Expires:  time.Now().Add(auth.SessionTTL),
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
	return nil
}

// clearSession expires the session cookie.
func (s *Server) clearSession(c *fiber.Ctx) {
	c.Cookie(&fiber.Cookie{
		Name:     auth.SessionCookieName,
		Value:    "",
		Path:     "/",
		Expires:  time.Now().Add(-time.Hour),
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}
