package main

import (
	"context"
	"log"

	"github.com/brokerx/engine/internal/broker"
	"github.com/brokerx/engine/internal/config"
	"github.com/brokerx/engine/internal/engine"
	"github.com/brokerx/engine/internal/pretrade"
	"github.com/brokerx/engine/internal/repository/interfaces"
	"github.com/brokerx/engine/internal/repository/memory"
	"github.com/brokerx/engine/internal/repository/postgres"
	"github.com/brokerx/engine/internal/server"
	"github.com/brokerx/engine/internal/services"
	sessioncleanup "github.com/brokerx/engine/internal/workers/session_cleanup"
	"github.com/brokerx/engine/pkg/database"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	ctx := context.Background()

	var (
		userRepo    interfaces.UserRepository
		orderRepo   interfaces.OrderRepository
		sessionRepo interfaces.SessionTokenRepository
	)

	if cfg.DatabaseURL != "" {
		db, err := database.Connect(cfg.DatabaseURL)
		if err != nil {
			log.Fatalf("failed to connect to database: %v", err)
		}
		defer db.Close()

		if userRepo, err = postgres.NewUserRepository(ctx, db); err != nil {
			log.Fatalf("failed to initialize user repository: %v", err)
		}
		if orderRepo, err = postgres.NewOrderRepository(ctx, db); err != nil {
			log.Fatalf("failed to initialize order repository: %v", err)
		}
		if sessionRepo, err = postgres.NewSessionTokenRepository(ctx, db); err != nil {
			log.Fatalf("failed to initialize session token repository: %v", err)
		}
	} else {
		log.Println("DATABASE_URL not set, using in-memory repositories")
		userRepo = memory.NewUserRepository()
		orderRepo = memory.NewOrderRepository()
		sessionRepo = memory.NewSessionTokenRepository()
	}

	validator := pretrade.WithDefaultConfig()
	priceSource := engine.DefaultPriceSource()

	pool, err := engine.New(ctx, orderRepo, userRepo, priceSource, cfg.WorkerCount)
	if err != nil {
		log.Fatalf("failed to initialize order worker pool: %v", err)
	}
	pool.Start(ctx)

	b := broker.New(orderRepo, userRepo, validator, pool)

	var emailService services.EmailService
	if cfg.IsDevelopment() {
		emailService = services.NewMockEmailService()
	} else {
		emailService = services.NewSMTPEmailService()
	}

	authService := services.NewAuthService(emailService, userRepo, sessionRepo)
	userService := services.NewUserService(userRepo)

	cleanupWorker := sessioncleanup.NewWorker(sessionRepo, sessioncleanup.Config{
		RetentionDays: cfg.SessionRetainDays,
	})
	if err := cleanupWorker.Start(); err != nil {
		log.Fatalf("failed to start session cleanup worker: %v", err)
	}
	defer cleanupWorker.Stop()

	svc := &server.Services{
		AuthService: authService,
		UserService: userService,
		Broker:      b,
	}

	srv := server.NewServer(cfg, svc)

	if err := srv.Start(); err != nil {
		log.Fatalf("server failed to start: %v", err)
	}
}
