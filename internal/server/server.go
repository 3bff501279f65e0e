// Package server contains HTTP and WebSocket handlers for the application's API endpoints.
package server

import (
	"context"
	"errors"
	"log"
	"time"

	"safespace/internal/app"
	"safespace/internal/cache"
	"safespace/internal/chat"
	"safespace/internal/config"
	"safespace/internal/demo"
	"safespace/internal/middleware"
	"safespace/internal/models"
	"safespace/internal/notify"
	"safespace/internal/safety"
	"safespace/internal/store"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/monitor"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/gofiber/websocket/v2"
	"github.com/redis/go-redis/v9"
)

// Server holds all dependencies and provides handlers
type Server struct {
	config         *config.Config
	redis          *redis.Client
	app            *fiber.App
	promMiddleware *fiberprometheus.FiberPrometheus
	shutdownCtx    context.Context
	shutdownFn     context.CancelFunc
	store          *store.Store
	source         demo.ContentSource
	notices        *notify.Center
	chatMgr        *chat.Manager
	controller     *app.Controller
	safety         *safety.Tracker
	feedHub        *FeedHub
	exitFn         func()
}

// NewServer creates a new server instance with all dependencies
func NewServer(cfg *config.Config) (*Server, error) {
	cache.InitRedis(cfg.RedisURL)
	return NewServerWithDeps(cfg, cache.GetClient())
}

// NewServerWithDeps creates a Server using an already-initialized Redis
// client (which may be nil). Use this in tests.
func NewServerWithDeps(cfg *config.Config, redisClient *redis.Client) (*Server, error) {
	prom := middleware.InitMetrics("safespace-api")

	st := store.New()
	source := demo.NewGenerator(cfg.DemoSeed)
	notices := notify.NewCenter(cfg.NoticeTTL)
	hub := NewFeedHub()
	notices.OnPush(hub.PushNotice)

	chatMgr := chat.NewManager(st, source,
		chat.WithPeriod(cfg.FeedPeriod),
		chat.WithChance(cfg.FeedChance),
		chat.WithJoinLatency(cfg.DelayJoinRoom),
		chat.WithOnMessage(hub.PushMessage),
	)

	server := &Server{
		config:         cfg,
		redis:          redisClient,
		promMiddleware: prom,
		store:          st,
		source:         source,
		notices:        notices,
		chatMgr:        chatMgr,
		safety:         safety.NewTracker(redisClient),
		feedHub:        hub,
	}
	server.controller = app.NewController(cfg, st, source, notices, chatMgr, hub)
	return server, nil
}

// SetExitFunc registers the function invoked after an emergency exit has
// cleared all state. The bootstrap layer uses it to stop the process.
func (s *Server) SetExitFunc(fn func()) {
	s.exitFn = fn
}

// SetupMiddleware configures middleware for the Fiber app
func (s *Server) SetupMiddleware(app *fiber.App) {
	// Panic recovery
	app.Use(recover.New())

	// Request ID for tracing
	app.Use(requestid.New())

	// Context Middleware to propagate Request ID
	app.Use(middleware.ContextMiddleware())

	// Prometheus Metrics
	if s.promMiddleware != nil {
		app.Use(middleware.MetricsMiddleware(s.promMiddleware))
	}

	// Tracing spans per request
	app.Use(middleware.TracingMiddleware())

	// Security headers
	app.Use(helmet.New())

	// Structured Logging middleware (after requestid and context middleware)
	app.Use(middleware.StructuredLogger())

	// CORS middleware should run before middlewares that can short-circuit
	// (e.g. limiter) so browser clients still receive CORS headers on error
	// responses.
	origins := s.config.AllowedOrigins
	if origins == "" {
		origins = "http://localhost:5173,http://localhost:3000,http://127.0.0.1:5173"
	}

	app.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowHeaders:     "Origin, Content-Type, Accept, Upgrade, Connection, Sec-WebSocket-Key, Sec-WebSocket-Version",
		AllowCredentials: true,
		MaxAge:           86400, // 24 hours
	}))

	// Global rate limiting (100 requests per minute per IP). The emergency
	// exit must never be throttled.
	app.Use(limiter.New(limiter.Config{
		Max:        100,
		Expiration: 1 * time.Minute,
		Next: func(c *fiber.Ctx) bool {
			return c.Method() == fiber.MethodOptions || c.Path() == "/api/exit"
		},
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"error": "Too many requests, please try again later.",
			})
		},
	}))
}

// SetupRoutes configures all routes for the application
func (s *Server) SetupRoutes(app *fiber.App) {
	api := app.Group("/api")

	// Health checks
	app.Get("/health/live", s.LivenessCheck)
	app.Get("/health/ready", s.ReadinessCheck)
	app.Get("/health", s.ReadinessCheck)

	// Metrics endpoint for Prometheus
	if s.promMiddleware != nil {
		s.promMiddleware.RegisterAt(app, "/metrics")
	}
	api.Get("/metrics/dashboard", monitor.New(monitor.Config{
		Title: "SafeSpace Metrics Dashboard",
	}))

	// Session flow
	api.Get("/state", s.GetState)
	api.Post("/enter", s.EnterCommunity)
	api.Post("/tabs/:name", s.SwitchTab)
	api.Post("/logout", s.Logout)
	api.Post("/exit", s.EmergencyExit)

	// Posts
	posts := api.Group("/posts")
	posts.Get("/", s.GetPosts)
	posts.Post("/", middleware.RateLimit(s.redis, 10, time.Minute, "create-post"), s.CreatePost)
	posts.Post("/more", s.LoadMorePosts)
	posts.Post("/:id/like", s.ToggleLike)
	posts.Get("/:id/comments", s.GetComments)
	posts.Post("/:id/comments", middleware.RateLimit(s.redis, 20, time.Minute, "create-comment"), s.CreateComment)

	// Chat
	rooms := api.Group("/rooms")
	rooms.Get("/", s.GetRooms)
	rooms.Post("/leave", s.LeaveRoom)
	rooms.Post("/:id/join", s.JoinRoom)
	api.Get("/messages", s.GetMessages)
	api.Post("/messages", middleware.RateLimit(s.redis, 30, time.Minute, "send-message"), s.SendMessage)

	// Resources and reports
	api.Get("/resources", s.GetResources)
	api.Post("/reports", middleware.RateLimit(s.redis, 5, time.Minute, "report"), s.CreateReport)

	// Notices
	api.Get("/notices", s.GetNotices)
	api.Delete("/notices", s.DismissAllNotices)
	api.Delete("/notices/:id", s.DismissNotice)
	api.Post("/dismiss", s.DismissOverlays)

	// Safety notice acknowledgement
	api.Get("/safety-notice", s.GetSafetyNotice)
	api.Post("/safety-notice/ack", s.AcknowledgeSafetyNotice)

	// WebSocket live feed
	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})
	app.Get("/ws/feed", s.WebSocketFeedHandler())
}

// buildApp constructs the Fiber app with its middleware and routes. Start
// and App share it so both paths serve the identical chain.
func (s *Server) buildApp() *fiber.App {
	fiberApp := fiber.New(fiber.Config{
		AppName: "SafeSpace API",
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			var fiberErr *fiber.Error
			if errors.As(err, &fiberErr) {
				return models.RespondWithError(c, fiberErr.Code, err)
			}
			log.Printf("Error: %v", err)
			return models.RespondWithError(c, models.StatusFor(err), err)
		},
	})
	s.SetupMiddleware(fiberApp)
	s.SetupRoutes(fiberApp)
	return fiberApp
}

// Start starts the server
func (s *Server) Start() error {
	ctx, cancel := context.WithCancel(context.Background())
	s.shutdownCtx = ctx
	s.shutdownFn = cancel

	s.app = s.buildApp()

	log.Printf("Server starting on port %s...", s.config.Port)
	return s.app.Listen(":" + s.config.Port)
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	if s.shutdownFn != nil {
		s.shutdownFn()
	}

	// Stop any live feed before the connections go away
	s.chatMgr.Leave()

	if s.app != nil {
		if err := s.app.ShutdownWithContext(ctx); err != nil {
			log.Printf("error shutting down HTTP server: %v", err)
		}
	}

	if err := s.feedHub.Shutdown(ctx); err != nil {
		log.Printf("error shutting down feed hub: %v", err)
	}

	if s.redis != nil {
		if rerr := s.redis.Close(); rerr != nil {
			log.Printf("error closing redis: %v", rerr)
		}
	}

	log.Println("Server shutdown complete")
	return nil
}

// App builds (once) and returns the Fiber app, for tests that drive requests
// through app.Test without binding a listener.
func (s *Server) App() *fiber.App {
	if s.app == nil {
		s.app = s.buildApp()
	}
	return s.app
}
