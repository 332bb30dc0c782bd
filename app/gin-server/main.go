package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/barman-ayush/imitate.ai/config"
	"github.com/barman-ayush/imitate.ai/internal/api/handlers"
	"github.com/barman-ayush/imitate.ai/internal/api/middleware"
	"github.com/barman-ayush/imitate.ai/internal/api/routes"
	"github.com/barman-ayush/imitate.ai/internal/cache"
	"github.com/barman-ayush/imitate.ai/internal/logger"
	"github.com/barman-ayush/imitate.ai/internal/memory"
	"github.com/barman-ayush/imitate.ai/internal/providers/llm"
	"github.com/barman-ayush/imitate.ai/internal/ratelimit"
	pgrepo "github.com/barman-ayush/imitate.ai/internal/repositories/postgres"
	"github.com/barman-ayush/imitate.ai/internal/services"
)

func main() {
	_ = godotenv.Load()

	log := logger.New()

	db, err := config.InitPostgres()
	if err != nil {
		log.WithError(err).Fatal("PostgreSQL init failed")
	}
	if err := config.Migrate(db); err != nil {
		log.WithError(err).Fatal("migration failed")
	}
	log.Info("PostgreSQL connected")

	rdb, err := config.InitRedis()
	if err != nil {
		log.WithError(err).Fatal("Redis init failed")
	}
	log.Info("Redis connected")

	provider, err := llm.NewOpenAI(log)
	if err != nil {
		log.WithError(err).Fatal("LLM provider init failed")
	}

	// Repositories
	userRepo := pgrepo.NewUserRepo(db)
	companionRepo := pgrepo.NewCompanionRepo(db)
	messageRepo := pgrepo.NewMessageRepo(db)
	fragmentRepo := pgrepo.NewFragmentRepo(db)

	// Memory manager: one instance for the process, injected below.
	mgr := memory.NewManager(memory.NewRedisHistory(rdb), fragmentRepo, provider, log)

	redisCache := cache.NewRedisCache(rdb)
	limiter := ratelimit.NewSlidingWindow(rdb, 10, 10*time.Second)

	// Services
	authService := services.NewAuthService(userRepo, os.Getenv("JWT_SECRET"), os.Getenv("JWT_ISSUER"), 72*time.Hour)
	companionService := services.NewCompanionService(companionRepo, fragmentRepo, provider, redisCache, log)
	messageService := services.NewMessageService(messageRepo)
	chatService := services.NewChatService(companionService, messageRepo, mgr, provider, provider.Model(), log)

	if os.Getenv("GIN_MODE") == "" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger(log))

	routes.RegisterRoutes(r, routes.Deps{
		Auth:      handlers.NewAuthHandler(authService),
		Companion: handlers.NewCompanionHandler(companionService, messageService),
		Chat:      handlers.NewChatHandler(chatService),
		RateLimit: middleware.RateLimit(limiter, log),
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	srv := &http.Server{
		Addr:    ":" + port,
		Handler: r,
	}

	go func() {
		log.WithField("port", port).Info("server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.WithError(err).Fatal("server failed")
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	log.Info("shutting down")
	if err := srv.Shutdown(ctx); err != nil {
		log.WithError(err).Error("shutdown failed")
	}
	_ = rdb.Close()
}
