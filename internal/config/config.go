package config

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Origins the web frontend is served from.
var defaultAllowedOrigins = []string{
	"http://localhost:3000",
	"https://spend-smart-frontend2-vmeq.vercel.app",
}

// Config holds application configuration
type Config struct {
	Env      string
	LogLevel string

	// Server
	Port            string
	ShutdownTimeout time.Duration
	AllowedOrigins  []string

	// Database
	DBDriver       string
	DBHost         string
	DBPort         string
	DBUser         string
	DBPassword     string
	DBName         string
	DBSSLMode      string
	DBSQLitePath   string
	DBMaxIdleConns int
	DBMaxOpenConns int
	MigrationsPath string

	// JWT
	JWTSecret string
	JWTIssuer string
}

// Load reads configuration from the environment, after loading a .env file
// if one is present.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}
	return fromViper(newViper())
}

func newViper() *viper.Viper {
	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("env", "development")
	v.SetDefault("log_level", "info")

	v.SetDefault("port", "8080")
	v.SetDefault("shutdown_timeout", "15s")
	v.SetDefault("frontend_url", "")
	v.SetDefault("allowed_origins", "")

	v.SetDefault("db_driver", "postgres")
	v.SetDefault("db_host", "localhost")
	v.SetDefault("db_port", "5432")
	v.SetDefault("db_user", "spendsmart")
	v.SetDefault("db_password", "spendsmart")
	v.SetDefault("db_name", "spendsmart")
	v.SetDefault("db_sslmode", "disable")
	v.SetDefault("db_sqlite_path", "spendsmart.db")
	v.SetDefault("db_max_idle_conns", 10)
	v.SetDefault("db_max_open_conns", 100)
	v.SetDefault("migrations_path", "migrations")

	v.SetDefault("jwt_secret", "fallback-secret-key-for-dev-only")
	v.SetDefault("jwt_issuer", "")
	return v
}

func fromViper(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		Env:      v.GetString("env"),
		LogLevel: v.GetString("log_level"),

		Port: v.GetString("port"),

		DBDriver:       strings.ToLower(v.GetString("db_driver")),
		DBHost:         v.GetString("db_host"),
		DBPort:         v.GetString("db_port"),
		DBUser:         v.GetString("db_user"),
		DBPassword:     v.GetString("db_password"),
		DBName:         v.GetString("db_name"),
		DBSSLMode:      v.GetString("db_sslmode"),
		DBSQLitePath:   v.GetString("db_sqlite_path"),
		DBMaxIdleConns: v.GetInt("db_max_idle_conns"),
		DBMaxOpenConns: v.GetInt("db_max_open_conns"),
		MigrationsPath: v.GetString("migrations_path"),

		JWTSecret: v.GetString("jwt_secret"),
		JWTIssuer: v.GetString("jwt_issuer"),
	}

	timeoutStr := v.GetString("shutdown_timeout")
	timeout, err := time.ParseDuration(timeoutStr)
	if err != nil {
		log.Printf("Warning: invalid SHUTDOWN_TIMEOUT value '%s', falling back to 15s\n", timeoutStr)
		timeout = 15 * time.Second
	}
	cfg.ShutdownTimeout = timeout

	cfg.AllowedOrigins = buildAllowedOrigins(v.GetString("frontend_url"), v.GetString("allowed_origins"))

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// buildAllowedOrigins merges the built-in origins with FRONTEND_URL and the
// comma-separated ALLOWED_ORIGINS list, dropping blanks and duplicates.
func buildAllowedOrigins(frontendURL, extra string) []string {
	candidates := append([]string{}, defaultAllowedOrigins...)
	candidates = append(candidates, frontendURL)
	candidates = append(candidates, strings.Split(extra, ",")...)

	seen := make(map[string]bool, len(candidates))
	origins := make([]string, 0, len(candidates))
	for _, o := range candidates {
		o = strings.TrimRight(strings.TrimSpace(o), "/")
		if o == "" || seen[o] {
			continue
		}
		seen[o] = true
		origins = append(origins, o)
	}
	return origins
}

// IsProduction reports whether the service runs with ENV=production.
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// Validate checks the combination of settings for obvious mistakes.
func (c *Config) Validate() error {
	var errs []error

	switch c.DBDriver {
	case "postgres", "sqlite":
	default:
		errs = append(errs, fmt.Errorf("unsupported DB_DRIVER %q (use postgres or sqlite)", c.DBDriver))
	}
	if c.DBMaxIdleConns > c.DBMaxOpenConns {
		errs = append(errs, errors.New("DB_MAX_IDLE_CONNS cannot be greater than DB_MAX_OPEN_CONNS"))
	}
	if c.JWTSecret == "" {
		errs = append(errs, errors.New("JWT_SECRET is required"))
	}
	if c.IsProduction() && c.JWTSecret == "fallback-secret-key-for-dev-only" {
		errs = append(errs, errors.New("JWT_SECRET must be set in production"))
	}

	return errors.Join(errs...)
}
