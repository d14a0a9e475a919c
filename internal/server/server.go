// Package server contains the HTTP handlers and routing for the application.
package server

import (
	"fmt"
	"time"

	"inkwell/internal/cache"
	"inkwell/internal/config"
	"inkwell/internal/database"
	"inkwell/internal/middleware"
	"inkwell/internal/repository"
	"inkwell/internal/service"
	"inkwell/internal/views"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"gorm.io/gorm"
)

// Server holds all dependencies and provides handlers.
type Server struct {
	config         *config.Config
	db             *gorm.DB
	userRepo       repository.UserRepository
	postRepo       repository.PostRepository
	commentRepo    repository.CommentRepository
	authService    *service.AuthService
	postService    *service.PostService
	commentService *service.CommentService
}

// NewServer creates a server instance, connecting the database and the
// optional Redis cache.
func NewServer(cfg *config.Config) (*Server, error) {
	db, err := database.Connect(cfg)
	if err != nil {
		return nil, fmt.Errorf("database connection failed: %w", err)
	}

	cache.InitRedis(cfg.RedisURL)

	return NewServerWithDeps(cfg, db), nil
}

// NewServerWithDeps creates a Server using an already-initialized database.
// Used by tests and by any bootstrap layer that establishes its own
// connections.
func NewServerWithDeps(cfg *config.Config, db *gorm.DB) *Server {
	middleware.InitMiddleware(cfg)

	userRepo := repository.NewUserRepository(db)
	postRepo := repository.NewPostRepository(db)
	commentRepo := repository.NewCommentRepository(db)

	return &Server{
		config:         cfg,
		db:             db,
		userRepo:       userRepo,
		postRepo:       postRepo,
		commentRepo:    commentRepo,
		authService:    service.NewAuthService(userRepo),
		postService:    service.NewPostService(postRepo),
		commentService: service.NewCommentService(commentRepo, postRepo),
	}
}

// BuildApp constructs the Fiber application with views, middleware and
// routes configured.
func (s *Server) BuildApp() *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:     "Inkwell",
		Views:       views.Engine(),
		ViewsLayout: "layouts/main",
	})

	s.SetupMiddleware(app)
	s.SetupRoutes(app)
	return app
}

// SetupMiddleware configures middleware for the Fiber app.
func (s *Server) SetupMiddleware(app *fiber.App) {
	// Panic recovery
	app.Use(recover.New())

	// Request ID for tracing
	app.Use(requestid.New())

	// Propagate request ID into the request context for the logger
	app.Use(middleware.ContextMiddleware())

	// Security headers
	app.Use(helmet.New())

	// Structured request logging
	app.Use(middleware.StructuredLogger())

	// Resolve the session cookie to an identity on every request
	app.Use(middleware.ResolveIdentity())

	// Throttle credential submissions
	authLimiter := limiter.New(limiter.Config{
		Max:        30,
		Expiration: time.Minute,
		Next: func(c *fiber.Ctx) bool {
			return c.Method() != fiber.MethodPost
		},
	})
	app.Use("/login", authLimiter)
	app.Use("/register", authLimiter)
}

// SetupRoutes registers the application's routes.
func (s *Server) SetupRoutes(app *fiber.App) {
	app.Get("/", s.Index)

	app.Get("/register", s.ShowRegister)
	app.Post("/register", s.Register)
	app.Get("/login", s.ShowLogin)
	app.Post("/login", s.Login)
	app.Get("/logout", s.Logout)

	app.Get("/post/:id", s.ShowPost)
	app.Post("/post/:id", s.AddComment)

	app.Get("/new-post", middleware.RequireLogin(), s.ShowNewPost)
	app.Post("/new-post", middleware.RequireLogin(), s.CreatePost)
	app.Get("/edit-post/:id", middleware.RequireLogin(), s.ShowEditPost)
	app.Post("/edit-post/:id", middleware.RequireLogin(), s.EditPost)
	app.Get("/delete/:id", middleware.RequireLogin(), s.DeletePost)

	app.Get("/about", s.About)
	app.Get("/contact", s.Contact)
	app.Get("/health", s.Health)
}
