package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"

	"hugox-backend/apperror"
	"hugox-backend/auth"
	"hugox-backend/config"
	"hugox-backend/controllers"
	"hugox-backend/dashboard"
	"hugox-backend/logger"
	"hugox-backend/middleware"
	"hugox-backend/models"
	"hugox-backend/repository"
	"hugox-backend/routes"
	"hugox-backend/storage"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		logrus.Fatalf("Failed to load configuration: %v", err)
	}
	if err := logger.Init(logger.Config{
		Level: cfg.LogLevel,
		Path:  cfg.LogPath,
		JSON:  cfg.IsProduction(),
	}); err != nil {
		logrus.Fatalf("Failed to initialise logger: %v", err)
	}
	defer logger.Close()
	log := logger.App()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	client, err := config.ConnectDB(ctx, cfg.MongoURI)
	cancel()
	if err != nil {
		log.WithError(err).Fatal("Failed to connect to MongoDB")
	}
	db := client.Database(cfg.MongoDatabase)
	log.WithField("database", cfg.MongoDatabase).Info("Connected to MongoDB")

	ctx, cancel = context.WithTimeout(context.Background(), 30*time.Second)
	if err := config.EnsureIndexes(ctx, db); err != nil {
		log.WithError(err).Warn("Failed to ensure indexes")
	}
	cancel()

	repos := repository.New(db)
	tokens, err := auth.NewTokenMaker([]byte(cfg.TokenSecret), []byte(cfg.RefreshTokenSecret), cfg.TokenExpire, cfg.RefreshTokenExpire)
	if err != nil {
		log.WithError(err).Fatal("Failed to create token maker")
	}
	images, err := storage.NewCloudinary(cfg.CloudinaryURL)
	if err != nil {
		log.WithError(err).Fatal("Failed to configure Cloudinary")
	}
	if images == nil {
		log.Warn("CLOUDINARY_URL is not set, upload endpoints will fail")
	}
	hasher := auth.NewBcryptHasher()

	ctrl := &controllers.Controller{
		Users:      repos.Users,
		Products:   repos.Products,
		Categories: repos.Categories,
		News:       repos.News,
		Reviews:    repos.Reviews,
		Contacts:   repos.Contacts,
		Settings:   repos.Settings,
		Filters:    repos.Stats,
		Dashboard:  dashboard.NewService(repos.Stats, dashboard.NewRandomOrderSource(time.Now().UnixNano())),
		Images:     images,
		Tokens:     tokens,
		Hasher:     hasher,
		Ping:       func(ctx context.Context) error { return repository.Ping(ctx, db) },
		Config:     cfg,
	}

	ctx, cancel = context.WithTimeout(context.Background(), 10*time.Second)
	if err := bootstrapAdmin(ctx, cfg, repos.Users, hasher); err != nil {
		log.WithError(err).Warn("Failed to bootstrap admin account")
	}
	cancel()

	gate := middleware.NewGate(tokens, repos.Users)
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           routes.Setup(ctrl, gate, cfg),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.WithFields(logrus.Fields{"port": cfg.Port, "environment": cfg.Environment}).Info("Server is running")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Fatal("Server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	log.WithField("signal", sig.String()).Info("Shutting down gracefully")

	ctx, cancel = context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.WithError(err).Error("Server forced to shutdown")
	}
	if err := client.Disconnect(ctx); err != nil {
		log.WithError(err).Error("Failed to disconnect from MongoDB")
	}
	log.Info("Server exited")
}

// bootstrapAdmin membuat akun admin dari ADMIN_EMAIL dan ADMIN_PASSWORD bila
// belum ada.
func bootstrapAdmin(ctx context.Context, cfg *config.AppConfig, users *repository.UserRepository, hasher auth.BcryptHasher) error {
	if cfg.AdminEmail == "" || cfg.AdminPassword == "" {
		return nil
	}
	_, err := users.FindByEmail(ctx, cfg.AdminEmail)
	if err == nil {
		return nil
	}
	if !apperror.Is(err, apperror.KindNotFound) {
		return err
	}
	hash, err := hasher.Hash(cfg.AdminPassword)
	if err != nil {
		return err
	}
	admin := &models.User{
		Name:     "Administrator",
		Email:    cfg.AdminEmail,
		Password: hash,
		Role:     models.RoleAdmin,
		IsActive: true,
	}
	if err := users.Create(ctx, admin); err != nil {
		return err
	}
	logger.App().WithField("email", admin.Email).Info("Admin account created")
	return nil
}
