package server

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/brokerx/engine/internal/broker"
	"github.com/brokerx/engine/internal/config"
	"github.com/brokerx/engine/internal/handlers"
	custommiddleware "github.com/brokerx/engine/internal/middleware"
	"github.com/brokerx/engine/internal/services"
	"github.com/brokerx/engine/internal/validators"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

type Server struct {
	Router           *chi.Mux
	Config           *config.Config
	Services         *Services
	Handlers         *Handlers
	EmailRateLimiter *custommiddleware.RateLimiter
}

type Services struct {
	AuthService *services.AuthService
	UserService *services.UserService
	Broker      *broker.Broker
}

type Handlers struct {
	AuthHandler        *handlers.AuthHandler
	UserHandler        *handlers.UserHandler
	OrderHandler       *handlers.OrderHandler
	DiagnosticsHandler *handlers.DiagnosticsHandler
}

func NewServer(cfg *config.Config, svc *Services) *Server {
	validator := validators.New()

	h := &Handlers{
		AuthHandler:        handlers.NewAuthHandler(svc.AuthService, validator),
		UserHandler:        handlers.NewUserHandler(svc.UserService, validator),
		OrderHandler:       handlers.NewOrderHandler(svc.Broker, validator),
		DiagnosticsHandler: handlers.NewDiagnosticsHandler(svc.Broker),
	}

	// Registration/login attempts are rate limited in production (10
	// seconds per IP); effectively disabled in development/test.
	rateLimitInterval := time.Microsecond
	if cfg.IsProduction() {
		rateLimitInterval = 10 * time.Second
	}

	s := &Server{
		Router:           chi.NewRouter(),
		Config:           cfg,
		Services:         svc,
		Handlers:         h,
		EmailRateLimiter: custommiddleware.NewRateLimiter(rateLimitInterval),
	}

	s.setupMiddleware()
	s.setupRoutes()

	return s
}

func (s *Server) setupMiddleware() {
	s.Router.Use(middleware.RequestID)
	s.Router.Use(middleware.RealIP)
	s.Router.Use(middleware.Recoverer)
	s.Router.Use(middleware.CleanPath)
	s.Router.Use(middleware.Timeout(s.Config.RequestTimeout))

	if s.Config.IsDevelopment() {
		s.Router.Use(middleware.Logger)
	}

	s.Router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	s.Router.Use(s.jsonContentType)
}

func (s *Server) setupRoutes() {
	s.Router.Get("/health", handlers.HealthCheck)

	if s.Config.IsDevelopment() {
		s.Router.Get("/api/v1/routes", handlers.ListRoutes(s.Router))
	}

	authMiddleware := custommiddleware.AuthMiddleware(s.Services.AuthService)

	s.Router.Route("/api/v1", func(r chi.Router) {
		r.Get("/diagnostics", s.Handlers.DiagnosticsHandler.Get)

		// Public routes: registration and login are rate limited per IP.
		r.Group(func(r chi.Router) {
			r.With(custommiddleware.RateLimitMiddleware(s.EmailRateLimiter)).Post("/auth/register", s.Handlers.AuthHandler.Register)
			r.Post("/auth/verify-email", s.Handlers.AuthHandler.VerifyEmail)
			r.With(custommiddleware.RateLimitMiddleware(s.EmailRateLimiter)).Post("/auth/login", s.Handlers.AuthHandler.Login)
		})

		// Protected routes.
		r.Group(func(r chi.Router) {
			r.Use(authMiddleware)

			r.Route("/auth", func(r chi.Router) {
				r.Post("/logout", s.Handlers.AuthHandler.Logout)
				r.Get("/sessions", s.Handlers.AuthHandler.GetSessions)
				r.Delete("/sessions/{id}", s.Handlers.AuthHandler.RevokeSession)
			})

			r.Route("/users/{id}", func(r chi.Router) {
				r.Get("/", s.Handlers.UserHandler.GetUser)
				r.Post("/deposit", s.Handlers.UserHandler.Deposit)
				r.Post("/withdraw", s.Handlers.UserHandler.Withdraw)
				r.Get("/orders", s.Handlers.OrderHandler.GetOrdersForUser)
			})

			r.Route("/orders", func(r chi.Router) {
				r.Post("/", s.Handlers.OrderHandler.CreateOrder)
				r.Route("/{id}", func(r chi.Router) {
					r.Get("/", s.Handlers.OrderHandler.GetOrder)
					r.Put("/", s.Handlers.OrderHandler.UpdateOrder)
					r.Delete("/", s.Handlers.OrderHandler.CancelOrder)
				})
			})
		})
	})

	s.Router.NotFound(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"error":{"code":"NOT_FOUND","message":"Route not found"}}`))
	})

	s.Router.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusMethodNotAllowed)
		w.Write([]byte(`{"error":{"code":"METHOD_NOT_ALLOWED","message":"Method not allowed"}}`))
	})
}

func (s *Server) jsonContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		next.ServeHTTP(w, r)
	})
}

// Start starts the HTTP server and blocks until a shutdown signal is
// received, then gracefully drains in-flight requests and the broker's
// worker pool.
func (s *Server) Start() error {
	srv := &http.Server{
		Addr:         ":" + s.Config.Port,
		Handler:      s.Router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		fmt.Printf("server starting on port %s (environment: %s)\n", s.Config.Port, s.Config.Environment)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			fmt.Printf("server failed to start: %v\n", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	fmt.Println("server shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	s.Services.Broker.Stop()

	fmt.Println("server exited")
	return nil
}
