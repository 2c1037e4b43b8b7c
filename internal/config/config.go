package config

import (
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Port                   string
	DatabaseURL            string
	JWTSecret              string
	SessionTTL             string
	AllowOrigins           []string
	RedisAddr              string
	CacheTTL               string
	MinIOEndpoint          string
	MinIOAccessKey         string
	MinIOSecretKey         string
	MinIOUseSSL            bool
	MinIOBucketVacations   string
	MinIOPublicURL         string
	LogstashTCPAddr        string
	SMTPHost               string
	SMTPPort               string
	SMTPUsername           string
	SMTPPassword           string
	SMTPFrom               string
	PasswordResetTTL       string
	PasswordResetOTPLength int
	VacationImageMaxBytes  int64
}

func Load() Config {
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found: %v", err)
	}

	otpLen := 6
	if v, err := strconv.Atoi(getenv("PASSWORD_RESET_OTP_LENGTH", "6")); err == nil && v > 0 {
		otpLen = v
	}

	imageMax := int64(5 * 1024 * 1024)
	if v, err := strconv.ParseInt(getenv("VACATION_IMAGE_MAX_BYTES", "5242880"), 10, 64); err == nil && v > 0 {
		imageMax = v
	}

	return Config{
		Port:                   getenv("PORT", "8080"),
		DatabaseURL:            must("DATABASE_URL"),
		JWTSecret:              must("JWT_SECRET"),
		SessionTTL:             getenv("SESSION_TTL", "24h"),
		AllowOrigins:           splitAndTrim(getenv("ALLOW_ORIGINS", "*")),
		RedisAddr:              getenv("REDIS_ADDR", ""),
		CacheTTL:               getenv("CACHE_TTL", "60s"),
		MinIOEndpoint:          getenv("MINIO_ENDPOINT", ""),
		MinIOAccessKey:         getenv("MINIO_ACCESS_KEY", ""),
		MinIOSecretKey:         getenv("MINIO_SECRET_KEY", ""),
		MinIOUseSSL:            getenv("MINIO_USE_SSL", "false") == "true",
		MinIOBucketVacations:   getenv("MINIO_BUCKET_VACATIONS", "vacation-images"),
		MinIOPublicURL:         getenv("MINIO_PUBLIC_URL", ""),
		LogstashTCPAddr:        getenv("LOGSTASH_TCP_ADDR", ""),
		SMTPHost:               getenv("SMTP_HOST", ""),
		SMTPPort:               getenv("SMTP_PORT", ""),
		SMTPUsername:           getenv("SMTP_USERNAME", ""),
		SMTPPassword:           getenv("SMTP_PASSWORD", ""),
		SMTPFrom:               getenv("SMTP_FROM", ""),
		PasswordResetTTL:       getenv("PASSWORD_RESET_TTL", "15m"),
		PasswordResetOTPLength: otpLen,
		VacationImageMaxBytes:  imageMax,
	}
}

func splitAndTrim(input string) []string {
	parts := strings.Split(input, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		trimmed := strings.TrimSpace(p)
		if trimmed != "" {
			out = append(out, trimmed)
		}
	}
	if len(out) == 0 {
		return []string{"*"}
	}
	return out
}

func getenv(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func must(k string) string {
	v := os.Getenv(k)
	if v == "" {
		panic("missing env: " + k)
	}
	return v
}
