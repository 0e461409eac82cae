package config

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
)

// AppConfig menampung semua variabel konfigurasi aplikasi.
type AppConfig struct {
	Port      string        `env:"PORT" envDefault:"5000"`
	Env       string        `env:"ENVIRONMENT" envDefault:"development"`
	MongoURI  string        `env:"MONGO_URI" envDefault:"mongodb://localhost:27017"`
	MongoDB   string        `env:"MONGO_DB" envDefault:"storeadmin"`
	JWTSecret string        `env:"JWT_SECRET" envDefault:"storeadmin-development-secret-32"`
	TokenType string        `env:"TOKEN_TYPE" envDefault:"jwt"`
	TokenTTL  time.Duration `env:"TOKEN_TTL" envDefault:"24h"`

	CORSOrigins []string `env:"CORS_ORIGINS" envSeparator:"," envDefault:"http://localhost:3000"`

	SMTPHost     string `env:"SMTP_HOST" envDefault:"smtp.gmail.com"`
	SMTPPort     int    `env:"SMTP_PORT" envDefault:"587"`
	SMTPUser     string `env:"SMTP_USER"`
	SMTPPassword string `env:"SMTP_PASSWORD"`
	MailFrom     string `env:"MAIL_FROM" envDefault:"Store Admin <no-reply@storeadmin.local>"`

	CloudinaryURL    string `env:"CLOUDINARY_URL"`
	CloudinaryFolder string `env:"CLOUDINARY_FOLDER" envDefault:"storeadmin"`

	RedisAddr     string `env:"REDIS_ADDR"`
	RedisPassword string `env:"REDIS_PASSWORD"`

	OTPTTL time.Duration `env:"OTP_TTL" envDefault:"10m"`

	RateLimitRPS   float64 `env:"RATE_LIMIT_RPS" envDefault:"5"`
	RateLimitBurst int     `env:"RATE_LIMIT_BURST" envDefault:"10"`

	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
	LogFile  string `env:"LOG_FILE"`
}

// IsProduction melaporkan apakah aplikasi berjalan dalam mode produksi.
func (c *AppConfig) IsProduction() bool {
	return c.Env == "production"
}

// Load memuat konfigurasi dari file .env atau environment variables.
func Load() (*AppConfig, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := &AppConfig{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *AppConfig) validate() error {
	c.TokenType = strings.ToLower(strings.TrimSpace(c.TokenType))
	switch c.TokenType {
	case "jwt":
		if len(c.JWTSecret) < 32 {
			return fmt.Errorf("JWT_SECRET must be at least 32 characters long")
		}
	case "paseto":
		// Kunci paseto v2 local harus tepat 32 byte.
		if len(c.JWTSecret) != 32 {
			return fmt.Errorf("JWT_SECRET must be exactly 32 characters long when TOKEN_TYPE=paseto")
		}
	default:
		return fmt.Errorf("unsupported TOKEN_TYPE %q", c.TokenType)
	}
	if c.MongoURI == "" {
		return fmt.Errorf("MONGO_URI is not set")
	}
	return nil
}
