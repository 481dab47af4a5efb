package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

// AppConfig menampung semua variabel konfigurasi aplikasi.
type AppConfig struct {
	Port        string `env:"PORT" envDefault:"3000"`
	Environment string `env:"ENVIRONMENT" envDefault:"development"`

	MongoURI      string `env:"MONGODB_URI,required"`
	MongoDatabase string `env:"MONGODB_DATABASE" envDefault:"hugox"`

	TokenSecret        string        `env:"TOKEN_SECRET,required"`
	RefreshTokenSecret string        `env:"REFRESH_TOKEN_SECRET,required"`
	TokenExpire        time.Duration `env:"TOKEN_EXPIRE" envDefault:"168h"`
	RefreshTokenExpire time.Duration `env:"REFRESH_TOKEN_EXPIRE" envDefault:"720h"`

	FrontendURL      string `env:"FRONTEND_URL" envDefault:"http://localhost:3000"`
	AdminFrontendURL string `env:"ADMIN_FRONTEND_URL" envDefault:"http://localhost:3001"`

	RateLimitWindow    time.Duration `env:"RATE_LIMIT_WINDOW" envDefault:"15m"`
	RateLimitMax       int64         `env:"RATE_LIMIT_MAX" envDefault:"1000"`
	PublicRateLimitMax int64         `env:"PUBLIC_RATE_LIMIT_MAX" envDefault:"500"`

	MaxFileSize      int64    `env:"MAX_FILE_SIZE" envDefault:"5242880"`
	AllowedFileTypes []string `env:"ALLOWED_FILE_TYPES" envSeparator:"," envDefault:"image/jpeg,image/png,image/gif,image/webp"`
	CloudinaryURL    string   `env:"CLOUDINARY_URL"`

	LogPath  string `env:"LOG_PATH" envDefault:"./logs"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	// ForbiddenStatus adalah status HTTP untuk pelanggaran peran.
	ForbiddenStatus int `env:"FORBIDDEN_STATUS" envDefault:"401"`

	SMTPHost     string `env:"SMTP_HOST"`
	SMTPPort     int    `env:"SMTP_PORT" envDefault:"587"`
	SMTPUser     string `env:"SMTP_USER"`
	SMTPPassword string `env:"SMTP_PASS"`

	AdminEmail    string `env:"ADMIN_EMAIL"`
	AdminPassword string `env:"ADMIN_PASSWORD"`
}

// Load memuat konfigurasi dari file .env atau environment variables.
func Load() (*AppConfig, error) {
	if err := godotenv.Load(); err != nil {
		logrus.Info("No .env file found, using environment variables")
	}
	cfg := &AppConfig{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parsing environment: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if cfg.IsDevelopment() {
		cfg.RateLimitMax *= 2
		cfg.PublicRateLimitMax *= 2
	}
	return cfg, nil
}

// Validate memeriksa nilai yang tidak bisa dinyatakan lewat tag.
func (c *AppConfig) Validate() error {
	if c.MongoURI == "" {
		return fmt.Errorf("MONGODB_URI is required")
	}
	if len(c.TokenSecret) != 32 {
		return fmt.Errorf("TOKEN_SECRET must be 32 characters long")
	}
	if len(c.RefreshTokenSecret) != 32 {
		return fmt.Errorf("REFRESH_TOKEN_SECRET must be 32 characters long")
	}
	if c.ForbiddenStatus < 400 || c.ForbiddenStatus > 499 {
		return fmt.Errorf("FORBIDDEN_STATUS must be a 4xx status, got %d", c.ForbiddenStatus)
	}
	if c.MaxFileSize <= 0 {
		return fmt.Errorf("MAX_FILE_SIZE must be positive")
	}
	switch c.Environment {
	case "development", "production", "test":
	default:
		return fmt.Errorf("ENVIRONMENT must be development, production or test, got %q", c.Environment)
	}
	return nil
}

func (c *AppConfig) IsDevelopment() bool { return c.Environment == "development" }

func (c *AppConfig) IsProduction() bool { return c.Environment == "production" }

// Origins mengembalikan daftar origin CORS yang diizinkan.
func (c *AppConfig) Origins() []string {
	var out []string
	for _, o := range []string{c.FrontendURL, c.AdminFrontendURL} {
		for _, part := range strings.Split(o, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}
