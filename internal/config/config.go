package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/njprem/Hotel_Checkin_BackEnd/internal/service"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

type Config struct {
	Port                 string
	DatabaseURL          string
	SecretKey            string
	SecretKeyReservation string
	Environment          string
	FrontendURL          string
	AllowOrigins         []string
	GoogleAudience       string
	LogstashTCPAddr      string
	SessionTTL           string
	SessionMaxActive     int
	CheckinTokenTTL      string
	CheckinWindow        string
	VerifyEmail          bool
	VerificationTTL      string
	PasswordResetTTL     string
	ResendThrottle       string
	MinIOEndpoint        string
	MinIOAccessKey       string
	MinIOSecretKey       string
	MinIOUseSSL          bool
	MinIOBucketDocuments string
	MinIOPublicURL       string
	DocumentMaxBytes     int64
	SMTPHost             string
	SMTPPort             string
	SMTPUsername         string
	SMTPPassword         string
	SMTPFrom             string
	FFmpegPath           string
	PublicRatePerSecond  float64
	PublicRateBurst      int
}

func Load() Config {
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found: %v", err)
	}

	maxActive := 3
	if v, err := strconv.Atoi(getenv("SESSION_MAX_ACTIVE", "3")); err == nil && v > 0 {
		maxActive = v
	}

	docMax := int64(5 * 1024 * 1024)
	if v, err := strconv.ParseInt(getenv("DOCUMENT_MAX_BYTES", "5242880"), 10, 64); err == nil && v > 0 {
		docMax = v
	}

	ratePerSecond := 5.0
	if v, err := strconv.ParseFloat(getenv("PUBLIC_RATE_PER_SECOND", "5"), 64); err == nil && v > 0 {
		ratePerSecond = v
	}
	rateBurst := 10
	if v, err := strconv.Atoi(getenv("PUBLIC_RATE_BURST", "10")); err == nil && v > 0 {
		rateBurst = v
	}

	return Config{
		Port:                 getenv("PORT", "8080"),
		DatabaseURL:          must("DATABASE_URL"),
		SecretKey:            must("SECRET_KEY"),
		SecretKeyReservation: must("SECRET_KEY_RESERVATION"),
		Environment:          strings.ToLower(getenv("ENVIRONMENT", EnvDevelopment)),
		FrontendURL:          strings.TrimRight(getenv("FRONTEND_URL", ""), "/"),
		AllowOrigins:         splitAndTrim(getenv("ALLOW_ORIGINS", "*")),
		GoogleAudience:       getenv("GOOGLE_AUDIENCE", ""),
		LogstashTCPAddr:      getenv("LOGSTASH_TCP_ADDR", ""),
		SessionTTL:           getenv("SESSION_TTL", "720h"),
		SessionMaxActive:     maxActive,
		CheckinTokenTTL:      getenv("CHECKIN_TOKEN_TTL", "20m"),
		CheckinWindow:        getenv("CHECKIN_WINDOW", "48h"),
		VerifyEmail:          getenv("VERIFY_EMAIL", "true") == "true",
		VerificationTTL:      getenv("VERIFICATION_TTL", "10h"),
		PasswordResetTTL:     getenv("PASSWORD_RESET_TTL", "2h"),
		ResendThrottle:       getenv("RESEND_THROTTLE", "5m"),
		MinIOEndpoint:        must("MINIO_ENDPOINT"),
		MinIOAccessKey:       must("MINIO_ACCESS_KEY"),
		MinIOSecretKey:       must("MINIO_SECRET_KEY"),
		MinIOUseSSL:          getenv("MINIO_USE_SSL", "false") == "true",
		MinIOBucketDocuments: getenv("MINIO_BUCKET_DOCUMENTS", "checkin-documents"),
		MinIOPublicURL:       getenv("MINIO_PUBLIC_URL", ""),
		DocumentMaxBytes:     docMax,
		SMTPHost:             getenv("SMTP_HOST", ""),
		SMTPPort:             getenv("SMTP_PORT", ""),
		SMTPUsername:         getenv("SMTP_USERNAME", ""),
		SMTPPassword:         getenv("SMTP_PASSWORD", ""),
		SMTPFrom:             getenv("SMTP_FROM", ""),
		FFmpegPath:           getenv("FFMPEG_PATH", "ffmpeg"),
		PublicRatePerSecond:  ratePerSecond,
		PublicRateBurst:      rateBurst,
	}
}

// SecureCookies reports whether the session cookie carries the Secure attribute.
// Only local development runs over plain HTTP.
func (c Config) SecureCookies() bool {
	return c.Environment != EnvDevelopment
}

func (c Config) IsProduction() bool {
	return c.Environment == EnvProduction
}

func (c Config) Session() service.SessionConfig {
	defaults := service.DefaultSessionConfig()
	return service.SessionConfig{
		TTL:         parseDuration(c.SessionTTL, defaults.TTL),
		MaxActive:   c.SessionMaxActive,
		BearerTTL:   parseDuration(c.SessionTTL, defaults.BearerTTL),
		TokenSecret: c.SecretKey,
	}
}

func (c Config) Checkin() service.CheckinConfig {
	defaults := service.DefaultCheckinConfig()
	return service.CheckinConfig{
		TokenSecret: c.SecretKeyReservation,
		TokenTTL:    parseDuration(c.CheckinTokenTTL, defaults.TokenTTL),
		Window:      parseDuration(c.CheckinWindow, defaults.Window),
	}
}

func (c Config) Account() service.AccountConfig {
	defaults := service.DefaultAccountConfig()
	return service.AccountConfig{
		VerifyEmail:      c.VerifyEmail,
		VerificationTTL:  parseDuration(c.VerificationTTL, defaults.VerificationTTL),
		PasswordResetTTL: parseDuration(c.PasswordResetTTL, defaults.PasswordResetTTL),
		ResendThrottle:   parseDuration(c.ResendThrottle, defaults.ResendThrottle),
		FrontendURL:      c.FrontendURL,
	}
}

func parseDuration(raw string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(strings.TrimSpace(raw))
	if err != nil || d <= 0 {
		return fallback
	}
	return d
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
