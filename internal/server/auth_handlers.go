package server

import (
	"errors"

	"inkwell/internal/middleware"
	"inkwell/internal/models"
	"inkwell/internal/service"
	"inkwell/internal/validation"

	"github.com/gofiber/fiber/v2"
)

type registerForm struct {
	Name     string `form:"name"`
	Email    string `form:"email"`
	Password string `form:"password"`
}

type loginForm struct {
	Email    string `form:"email"`
	Password string `form:"password"`
}

// ShowRegister handles GET /register.
func (s *Server) ShowRegister(c *fiber.Ctx) error {
	return s.render(c, "register", fiber.Map{
		"Title":  "Register",
		"Form":   registerForm{},
		"Errors": map[string]string{},
	})
}

// Register handles POST /register. Validation failures re-render the form
// with field messages and mutate nothing; a duplicate email is recovered as
// a flash message and a redirect to the login form; success logs the new
// user in immediately.
func (s *Server) Register(c *fiber.Ctx) error {
	var form registerForm
	if err := c.BodyParser(&form); err != nil {
		return s.renderError(c, fiber.StatusBadRequest, "Invalid form submission")
	}

	fieldErrors := make(map[string]string)
	if err := validation.ValidateName(form.Name); err != nil {
		fieldErrors["name"] = err.Error()
	}
	if err := validation.ValidateEmail(form.Email); err != nil {
		fieldErrors["email"] = err.Error()
	}
	if err := validation.ValidatePassword(form.Password); err != nil {
		fieldErrors["password"] = err.Error()
	}
	if len(fieldErrors) > 0 {
		return s.render(c, "register", fiber.Map{
			"Title":  "Register",
			"Form":   form,
			"Errors": fieldErrors,
		})
	}

	user, err := s.authService.Register(c.Context(), service.RegisterInput{
		Email:    form.Email,
		Password: form.Password,
		Name:     form.Name,
	})
	if err != nil {
		var appErr *models.AppError
		if errors.As(err, &appErr) && appErr.Code == "CONFLICT" {
			middleware.SetFlash(c, "error", "Email is already in use. Please try a different one.")
			return c.Redirect("/login", fiber.StatusSeeOther)
		}
		return s.handleError(c, err)
	}

	// Registration implies login.
	if err := s.issueSession(c, user.ID); err != nil {
		return s.handleError(c, err)
	}
	return c.Redirect("/", fiber.StatusSeeOther)
}

// ShowLogin handles GET /login.
func (s *Server) ShowLogin(c *fiber.Ctx) error {
	if middleware.CurrentIdentity(c).IsAuthenticated() {
		middleware.SetFlash(c, "info", "Already logged in")
		return c.Redirect("/", fiber.StatusSeeOther)
	}
	return s.render(c, "login", fiber.Map{
		"Title": "Log In",
		"Form":  loginForm{},
	})
}

// Login handles POST /login. An already-authenticated requester is informed
// and redirected without re-authentication.
func (s *Server) Login(c *fiber.Ctx) error {
	if middleware.CurrentIdentity(c).IsAuthenticated() {
		middleware.SetFlash(c, "info", "Already logged in")
		return c.Redirect("/", fiber.StatusSeeOther)
	}

	var form loginForm
	if err := c.BodyParser(&form); err != nil {
		return s.renderError(c, fiber.StatusBadRequest, "Invalid form submission")
	}

	user, err := s.authService.Login(c.Context(), form.Email, form.Password)
	if err != nil {
		var appErr *models.AppError
		if errors.As(err, &appErr) {
			switch appErr.Code {
			case "NOT_FOUND":
				middleware.SetFlash(c, "error", "Email does not exist")
				return c.Redirect("/login", fiber.StatusSeeOther)
			case "UNAUTHENTICATED":
				middleware.SetFlash(c, "error", "Password is incorrect")
				return c.Redirect("/login", fiber.StatusSeeOther)
			}
		}
		return s.handleError(c, err)
	}

	if err := s.issueSession(c, user.ID); err != nil {
		return s.handleError(c, err)
	}
	return c.Redirect("/", fiber.StatusSeeOther)
}

// Logout handles GET /logout.
func (s *Server) Logout(c *fiber.Ctx) error {
	s.clearSession(c)
	return c.Redirect("/", fiber.StatusSeeOther)
}
