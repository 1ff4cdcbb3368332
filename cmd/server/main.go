package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"hostel-desk.backend/internal/config"
	"hostel-desk.backend/internal/infrastructure/models"
	"hostel-desk.backend/internal/infrastructure/repositories"
	"hostel-desk.backend/internal/infrastructure/storage"
	"hostel-desk.backend/internal/interfaces/http/handlers"
	"hostel-desk.backend/internal/interfaces/http/middleware"
	"hostel-desk.backend/internal/usecases"
	"hostel-desk.backend/pkg/logger"
	"hostel-desk.backend/pkg/redis"
	"hostel-desk.backend/pkg/token"
)

var (
	loadDotenv = godotenv.Load
	loadCfg    = config.Load
	initLog    = logger.Init
	initRedis  = redis.Init
	openDB     = func(dsn string) (*gorm.DB, error) {
		return gorm.Open(postgres.New(postgres.Config{
			DSN:                  dsn,
			PreferSimpleProtocol: true,
		}), &gorm.Config{
			PrepareStmt:    false,
			TranslateError: true,
		})
	}
	newSessionStore = redis.NewSessionStore
	runServer       = func(r *gin.Engine, port string) error { return r.Run(":" + port) }
	getStdDB        = func(db *gorm.DB) (*sql.DB, error) { return db.DB() }
)

func main() {
	if err := runMainProcess(); err != nil {
		log.Fatal(err)
	}
}

func runMainProcess() error {
	if err := loadDotenv(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := loadCfg()

	initLog(cfg.Server.Env)
	logger.Info(context.Background(), "Logger initialized", zap.String("env", cfg.Server.Env))

	if err := initRedis(cfg.Redis.URL, cfg.Redis.Password); err != nil {
		logger.Error(context.Background(), "Failed to initialize Redis", zap.Error(err))
		return fmt.Errorf("failed to initialize redis: %w", err)
	}
	logger.Info(context.Background(), "Redis initialized")

	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := openDB(cfg.Database.URL())
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := getStdDB(db)
	if err != nil {
		return fmt.Errorf("failed to get generic database object: %w", err)
	}
	defer sqlDB.Close()

	if err := sqlDB.Ping(); err != nil {
		log.Printf("database not available: %v (endpoints will return errors)", err)
	} else {
		log.Println("connected to PostgreSQL")
		if err := db.AutoMigrate(&models.User{}, &models.Complaint{}); err != nil {
			return fmt.Errorf("failed to migrate schema: %w", err)
		}
	}

	evidenceStore, err := newEvidenceStore(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize evidence store: %w", err)
	}

	sessionStore, err := newSessionStore(cfg.Session.EncryptionKey)
	if err != nil {
		return fmt.Errorf("failed to initialize session store: %w", err)
	}

	tokenService := token.NewService(cfg.Token.Secret, cfg.Token.Expiry)

	userRepo := repositories.NewUserRepository(db)
	complaintRepo := repositories.NewComplaintRepository(db)

	authUsecase := usecases.NewAuthUsecase(
		userRepo,
		sessionStore,
		tokenService,
		cfg.Session.Timeout,
		cfg.Accounts.StudentEmailDomain,
	)
	complaintUsecase := usecases.NewComplaintUsecase(complaintRepo, evidenceStore)

	authHandler := handlers.NewAuthHandler(authUsecase)
	studentHandler := handlers.NewStudentHandler(authUsecase, complaintUsecase)
	adminHandler := handlers.NewAdminHandler(complaintUsecase)
	evidenceHandler := handlers.NewEvidenceHandler(evidenceStore)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestIDMiddleware())
	r.Use(middleware.LoggerMiddleware())
	r.Use(middleware.SecureHeaders())
	r.Use(middleware.Metrics())

	registerRoutes(r, routeDeps{
		authHandler:     authHandler,
		studentHandler:  studentHandler,
		adminHandler:    adminHandler,
		evidenceHandler: evidenceHandler,
		sessionAuth:     middleware.SessionAuth(authUsecase, tokenService),
	})

	logger.Info(context.Background(), "Hostel Desk backend starting", zap.String("port", cfg.Server.Port))

	if err := runServer(r, cfg.Server.Port); err != nil {
		return fmt.Errorf("failed to start server: %w", err)
	}
	return nil
}

// newEvidenceStore picks the configured upload backend
func newEvidenceStore(cfg *config.Config) (storage.Service, error) {
	switch cfg.Uploads.Backend {
	case "s3":
		return storage.NewS3Service(context.Background(), cfg.Uploads.S3Bucket, cfg.Uploads.S3Region)
	default:
		return storage.NewLocalService(cfg.Uploads.Dir)
	}
}
