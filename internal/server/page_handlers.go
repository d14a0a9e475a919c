package server

import (
	"github.com/gofiber/fiber/v2"
)

// About handles GET /about.
func (s *Server) About(c *fiber.Ctx) error {
	return s.render(c, "about", fiber.Map{"Title": "About"})
}

// Contact handles GET /contact.
func (s *Server) Contact(c *fiber.Ctx) error {
	return s.render(c, "contact", fiber.Map{"Title": "Contact"})
}

// Health handles GET /health: readiness including a database ping.
func (s *Server) Health(c *fiber.Ctx) error {
	sqlDB, err := s.db.DB()
	if err == nil {
		err = sqlDB.PingContext(c.Context())
	}
	if err != nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"status": "unavailable",
			"error":  err.Error(),
		})
	}
	return c.JSON(fiber.Map{"status": "ok"})
}
