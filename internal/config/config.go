package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds the full application configuration, parsed from environment
// variables at process start and injected into every component from main.
type Config struct {
	Port           int      `env:"PORT"            envDefault:"8080"`
	AllowedOrigins []string `env:"ALLOWED_ORIGINS" envDefault:"*" envSeparator:","`

	MongoURI      string `env:"MONGO_URI"      envDefault:"mongodb://localhost:27017"`
	MongoDatabase string `env:"MONGO_DATABASE" envDefault:"caviteventure"`

	RedisAddr     string `env:"REDIS_ADDR"     envDefault:"localhost:6379"`
	RedisPassword string `env:"REDIS_PASSWORD"`

	JWTSecret           string        `env:"JWT_SECRET"`
	TokenIssuer         string        `env:"TOKEN_ISSUER"          envDefault:"caviteventure"`
	SessionTokenTTL     time.Duration `env:"SESSION_TOKEN_TTL"     envDefault:"1h"`
	VerificationCodeTTL time.Duration `env:"VERIFICATION_CODE_TTL" envDefault:"10m"`

	SMTPHost     string `env:"SMTP_HOST"`
	SMTPPort     int    `env:"SMTP_PORT" envDefault:"587"`
	SMTPUsername string `env:"SMTP_USERNAME"`
	SMTPPassword string `env:"SMTP_PASSWORD"`
	SMTPFrom     string `env:"SMTP_FROM"`

	UploadDir string `env:"UPLOAD_DIR" envDefault:"uploads"`
}

// Load parses and validates the configuration from the environment.
func Load() (*Config, error) {
	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return nil, fmt.Errorf("parse environment variables: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) validate() error {
	if c.JWTSecret == "" {
		return fmt.Errorf("missing JWT_SECRET environment variable")
	}
	if c.SMTPHost == "" {
		return fmt.Errorf("missing SMTP_HOST environment variable")
	}
	if c.SMTPFrom == "" {
		return fmt.Errorf("missing SMTP_FROM environment variable")
	}

	return nil
}
