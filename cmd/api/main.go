package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"campus-portal/internal/config"
	"campus-portal/internal/db"
	apihttp "campus-portal/internal/http"
	"campus-portal/internal/oauth"
	"campus-portal/internal/repository"
	"campus-portal/internal/service"
	"campus-portal/internal/storage"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func main() {
	ctx := context.Background()

	if err := godotenv.Load(); err != nil {
		log.Printf("warning: loading .env: %v", err)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		panic(err)
	}

	logger, _ := zap.NewProduction()
	defer logger.Sync()

	pool, err := db.NewPool(ctx, cfg)
	if err != nil {
		logger.Fatal("db connect", zap.Error(err))
	}
	defer pool.Close()

	if err := db.RunMigrations(ctx, cfg.DatabaseURL); err != nil {
		logger.Fatal("db migrate", zap.Error(err))
	}

	disk, err := storage.NewDiskStorage(cfg.UploadDir)
	if err != nil {
		logger.Fatal("upload dir init", zap.Error(err))
	}

	userRepo := repository.NewPgUserRepository(pool)
	fileRepo := repository.NewPgFileRepository(pool)

	var sessionStore service.SessionStore = service.NewMemorySessionStore()
	if cfg.RedisAddr != "" {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		ctxPing, cancel := context.WithTimeout(ctx, 2*time.Second)
		if err := redisClient.Ping(ctxPing).Err(); err != nil {
			logger.Warn("redis ping failed, sessions stay in memory", zap.Error(err))
		} else {
			sessionStore = service.NewRedisSessionStore(redisClient)
		}
		cancel()
	}

	provider := oauth.NewAzureAD(cfg.TenantID, cfg.ClientID, cfg.ClientSecret, cfg.RedirectURI, cfg.SessionSecret)

	userSvc := service.NewUserService(logger, userRepo)
	fileSvc := service.NewFileService(logger, fileRepo, disk)
	searchSvc := service.NewSearchService(userRepo, fileRepo)

	sessionTTL := time.Duration(cfg.SessionTTLHours) * time.Hour
	authHandler := apihttp.NewAuthHandler(logger, provider, userSvc, sessionStore, cfg.AllowedDomains, sessionTTL)
	profileHandler := apihttp.NewProfileHandler(logger, userSvc, fileSvc)
	fileHandler := apihttp.NewFileHandler(logger, fileSvc)
	searchHandler := apihttp.NewSearchHandler(logger, searchSvc)

	router := apihttp.NewRouter(logger, sessionStore, userSvc, authHandler, profileHandler, fileHandler, searchHandler, cfg.UploadDir)

	server := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	logger.Info("starting server", zap.String("port", cfg.HTTPPort))

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Fatal("server error", zap.Error(err))
	}
}
