package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"golang.org/x/crypto/bcrypt"

	"github.com/yukikurage/todo-api/internal/constants"
)

const (
	EnvLocal = "local"
	EnvDev   = "dev"
	EnvProd  = "prod"
)

const (
	DriverPostgres = "postgres"
	DriverMySQL    = "mysql"
	DriverSQLite   = "sqlite"
)

// Config is read once at startup and handed to constructors. Nothing reads
// the environment after Load returns.
type Config struct {
	Env      string `env:"APP_ENV" env-default:"local"`
	HTTP     HTTPConfig
	Database DatabaseConfig
	Auth     AuthConfig
}

type HTTPConfig struct {
	Addr            string        `env:"HTTP_ADDR" env-default:":8080"`
	ShutdownTimeout time.Duration `env:"HTTP_SHUTDOWN_TIMEOUT" env-default:"10s"`
}

type DatabaseConfig struct {
	Driver   string `env:"DB_DRIVER" env-default:"postgres"`
	Host     string `env:"DB_HOST" env-default:"localhost"`
	Port     string `env:"DB_PORT" env-default:"5432"`
	User     string `env:"DB_USER" env-default:"todo"`
	Password string `env:"DB_PASSWORD" env-default:"todo"`
	Name     string `env:"DB_NAME" env-default:"todo"`
	SSLMode  string `env:"DB_SSL_MODE" env-default:"disable"`
	// Path is only used by the sqlite driver.
	Path string `env:"DB_PATH" env-default:"todo.db"`
}

type AuthConfig struct {
	JWTSecret  string        `env:"JWT_SECRET" env-required:"true"`
	JWTIssuer  string        `env:"JWT_ISSUER" env-default:"todo-api"`
	TokenTTL   time.Duration `env:"JWT_TTL"`
	BcryptCost int           `env:"BCRYPT_COST"`
}

// Update seeds auth defaults from constants. cleanenv calls it before reading
// the environment, so JWT_TTL and BCRYPT_COST still override them.
func (c *Config) Update() error {
	c.Auth.TokenTTL = constants.DefaultTokenTTL
	c.Auth.BcryptCost = constants.DefaultBcryptCost
	return nil
}

// Reader produces a Config. EnvReader is the only production implementation.
type Reader interface {
	Read() (*Config, error)
}

type EnvReader struct{}

func NewEnvReader() EnvReader {
	return EnvReader{}
}

func (EnvReader) Read() (*Config, error) {
	cfg := new(Config)
	if err := cleanenv.ReadEnv(cfg); err != nil {
		return nil, fmt.Errorf("failed to read env: %w", err)
	}
	return cfg, nil
}

// Load reads the environment and validates the result.
func Load() (*Config, error) {
	cfg, err := NewEnvReader().Read()
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	switch c.Env {
	case EnvLocal, EnvDev, EnvProd:
	default:
		return fmt.Errorf("unknown env: %q", c.Env)
	}

	switch c.Database.Driver {
	case DriverPostgres, DriverMySQL, DriverSQLite:
	default:
		return fmt.Errorf("unknown database driver: %q", c.Database.Driver)
	}

	if c.Auth.JWTSecret == "" {
		return errors.New("JWT_SECRET must not be empty")
	}
	if c.Auth.TokenTTL <= 0 {
		return errors.New("JWT_TTL must be positive")
	}
	if c.Auth.BcryptCost < bcrypt.MinCost || c.Auth.BcryptCost > bcrypt.MaxCost {
		return fmt.Errorf("BCRYPT_COST must be between %d and %d", bcrypt.MinCost, bcrypt.MaxCost)
	}

	return nil
}

// GinMode maps the application env onto gin's run modes.
func (c *Config) GinMode() string {
	if c.Env == EnvProd {
		return "release"
	}
	return "debug"
}
