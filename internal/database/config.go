package database

import (
	"fmt"
	"net/url"

	"spendsmart/internal/config"
)

// Config holds database configuration
type Config struct {
	Driver         string
	Host           string
	Port           string
	User           string
	Password       string
	DBName         string
	SSLMode        string
	SQLitePath     string
	MaxIdleConns   int
	MaxOpenConns   int
	MigrationsPath string
}

// NewConfig extracts the database settings from the application configuration
func NewConfig(cfg *config.Config) *Config {
	return &Config{
		Driver:         cfg.DBDriver,
		Host:           cfg.DBHost,
		Port:           cfg.DBPort,
		User:           cfg.DBUser,
		Password:       cfg.DBPassword,
		DBName:         cfg.DBName,
		SSLMode:        cfg.DBSSLMode,
		SQLitePath:     cfg.DBSQLitePath,
		MaxIdleConns:   cfg.DBMaxIdleConns,
		MaxOpenConns:   cfg.DBMaxOpenConns,
		MigrationsPath: cfg.MigrationsPath,
	}
}

// DSN returns the PostgreSQL connection string
func (c *Config) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
}

// MigrateURL returns the postgres:// URL golang-migrate expects.
func (c *Config) MigrateURL() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.User, c.Password),
		Host:     c.Host + ":" + c.Port,
		Path:     "/" + c.DBName,
		RawQuery: "sslmode=" + url.QueryEscape(c.SSLMode),
	}
	return u.String()
}

// Redacted returns a printable description of the target database with the
// password masked.
func (c *Config) Redacted() string {
	if c.Driver == "sqlite" {
		return "sqlite://" + c.SQLitePath
	}
	u := url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(c.User, "***"),
		Host:   c.Host + ":" + c.Port,
		Path:   "/" + c.DBName,
	}
	return u.String()
}
