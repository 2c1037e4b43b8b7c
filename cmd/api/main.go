package main

import (
	"context"
	"io"
	"log"
	"os"
	"time"

	"github.com/roamly/vacations-api/internal/cache"
	"github.com/roamly/vacations-api/internal/config"
	"github.com/roamly/vacations-api/internal/logging"
	miniorepo "github.com/roamly/vacations-api/internal/repository/minio"
	"github.com/roamly/vacations-api/internal/repository/ports"
	"github.com/roamly/vacations-api/internal/repository/postgres"
	"github.com/roamly/vacations-api/internal/service"
	transporthttp "github.com/roamly/vacations-api/internal/transport/http"
	"github.com/roamly/vacations-api/internal/transport/mail"
	"github.com/roamly/vacations-api/internal/util"
)

func main() {
	cfg := config.Load()

	if cfg.LogstashTCPAddr != "" {
		writer, err := logging.NewLogstashWriter(cfg.LogstashTCPAddr)
		if err != nil {
			log.Fatalf("init logstash writer: %v", err)
		}
		defer writer.Close()
		log.SetOutput(io.MultiWriter(os.Stderr, writer))
	}

	db, err := postgres.New(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("connect database: %v", err)
	}
	defer db.Close()

	if err := postgres.Migrate(db); err != nil {
		log.Fatalf("run migrations: %v", err)
	}

	redisCache := cache.New(cfg.RedisAddr)
	defer redisCache.Close()

	var storage ports.ObjectStorage
	if cfg.MinIOEndpoint != "" {
		client, err := miniorepo.NewClient(cfg.MinIOEndpoint, cfg.MinIOAccessKey, cfg.MinIOSecretKey, cfg.MinIOUseSSL)
		if err != nil {
			log.Fatalf("connect minio: %v", err)
		}
		minioStorage := miniorepo.NewStorage(client, cfg.MinIOPublicURL)

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		if err := minioStorage.EnsureBucket(ctx, cfg.MinIOBucketVacations); err != nil {
			cancel()
			log.Fatalf("prepare bucket: %v", err)
		}
		cancel()
		storage = minioStorage
	}

	sessionTTL := parseDurationOr(cfg.SessionTTL, 24*time.Hour)
	resetTTL := parseDurationOr(cfg.PasswordResetTTL, 15*time.Minute)
	cacheTTL := parseDurationOr(cfg.CacheTTL, time.Minute)

	userRepo := postgres.NewUserRepo(db)
	countryRepo := postgres.NewCountryRepo(db)
	vacationRepo := postgres.NewVacationRepo(db)
	likeRepo := postgres.NewLikeRepo(db)
	sessionRepo := postgres.NewSessionRepo(db)
	resetRepo := postgres.NewPasswordResetRepo(db)

	var mailer service.ResetMailer
	if cfg.SMTPHost != "" {
		mailer = mail.NewPasswordResetMailer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUsername, cfg.SMTPPassword, cfg.SMTPFrom)
	} else {
		log.Println("SMTP not configured; password reset mail disabled")
	}
	jwtManager := util.NewJWTManager(cfg.JWTSecret, sessionTTL)

	authService := service.NewAuthService(userRepo, sessionRepo, resetRepo, mailer, jwtManager, service.AuthConfig{
		SessionTTL: sessionTTL,
		ResetTTL:   resetTTL,
		OTPLength:  cfg.PasswordResetOTPLength,
	})
	countryService := service.NewCountryService(countryRepo)
	vacationService := service.NewVacationService(vacationRepo, countryRepo, storage, redisCache, service.VacationServiceConfig{
		Bucket:        cfg.MinIOBucketVacations,
		ImageMaxBytes: cfg.VacationImageMaxBytes,
		CacheTTL:      cacheTTL,
	})
	likeService := service.NewLikeService(likeRepo, vacationRepo, redisCache, cacheTTL)

	e := transporthttp.NewRouter(cfg.AllowOrigins)
	transporthttp.RegisterAuth(e, authService)
	transporthttp.RegisterUsers(e, authService)
	transporthttp.RegisterCountries(e, authService, countryService)
	transporthttp.RegisterVacations(e, authService, vacationService)
	transporthttp.RegisterLikes(e, authService, likeService)
	transporthttp.RegisterSwagger(e)

	e.Logger.Fatal(e.Start(":" + cfg.Port))
}

func parseDurationOr(raw string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}
