// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package config

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	altsrc "github.com/urfave/cli-altsrc/v3"
	"github.com/urfave/cli-altsrc/v3/toml"
	"github.com/urfave/cli/v3"
)

var configFile = altsrc.StringSourcer("config.toml")

type Config struct { //nolint:govet // fieldalignment not critical for config structs
	Server   ServerConfig
	Log      LogConfig
	Database DatabaseConfig
	Auth     AuthConfig
	Client   ClientConfig
}

type ServerConfig struct { //nolint:govet // fieldalignment not critical for config structs
	Host        string
	Port        int
	BaseURL     string
	MaxBodySize int // in MB
}

type LogConfig struct {
	Level  string // debug, info, warn, error
	Format string // text, json
}

type DatabaseConfig struct {
	DSN string
}

type AuthConfig struct { //nolint:govet // fieldalignment not critical for config structs
	JWTSecret        string // HMAC secret for access tokens
	JWTAlgorithm     string // HS256, HS384, HS512
	JWTExpireMinutes int
	CookieName       string // session cookie carrying the signed user session
	CookieSecure     bool
	CookieSameSite   string // lax, strict, none
	HashKey          string // 32-byte hex string for HMAC signing
	BlockKey         string // 32-byte hex string for AES encryption (optional)
}

type ClientConfig struct {
	BaseURL string
	Timeout time.Duration // zero disables the client-side timeout
}

// AccessTokenTTL returns the lifetime of issued access tokens.
func (a *AuthConfig) AccessTokenTTL() time.Duration {
	return time.Duration(a.JWTExpireMinutes) * time.Minute
}

// SameSite maps the configured SameSite mode to its http constant.
func (a *AuthConfig) SameSite() http.SameSite {
	switch strings.ToLower(a.CookieSameSite) {
	case "strict":
		return http.SameSiteStrictMode
	case "none":
		return http.SameSiteNoneMode
	default:
		return http.SameSiteLaxMode
	}
}

func NewFromCLI(cmd *cli.Command) *Config {
	cfg := &Config{
		Server: ServerConfig{
			Host:        cmd.String("host"),
			Port:        int(cmd.Int("port")),
			BaseURL:     cmd.String("base-url"),
			MaxBodySize: int(cmd.Int("max-body-size")),
		},
		Log: LogConfig{
			Level:  cmd.String("log-level"),
			Format: cmd.String("log-format"),
		},
		Database: DatabaseConfig{
			DSN: cmd.String("database-dsn"),
		},
		Auth: AuthConfig{
			JWTSecret:        cmd.String("jwt-secret-key"),
			JWTAlgorithm:     cmd.String("jwt-algorithm"),
			JWTExpireMinutes: int(cmd.Int("jwt-access-token-expire-minutes")),
			CookieName:       cmd.String("cookie-name"),
			CookieSecure:     cmd.Bool("cookie-secure"),
			CookieSameSite:   cmd.String("cookie-samesite"),
			HashKey:          cmd.String("session-hash-key"),
			BlockKey:         cmd.String("session-block-key"),
		},
	}

	if cfg.Server.BaseURL == "" {
		cfg.Server.BaseURL = buildBaseURL(cfg)
	}

	return cfg
}

// NewClientFromCLI builds the configuration for the client command.
func NewClientFromCLI(cmd *cli.Command) *Config {
	return &Config{
		Log: LogConfig{
			Level:  cmd.String("log-level"),
			Format: cmd.String("log-format"),
		},
		Client: ClientConfig{
			BaseURL: strings.TrimSuffix(cmd.String("api-url"), "/"),
			Timeout: cmd.Duration("timeout"),
		},
	}
}

func buildBaseURL(cfg *Config) string {
	host := cfg.Server.Host
	port := cfg.Server.Port

	scheme := "http"
	if cfg.Auth.CookieSecure {
		scheme = "https"
	}

	// Hide default ports in URL
	if (scheme == "http" && port == 80) || (scheme == "https" && port == 443) {
		return fmt.Sprintf("%s://%s", scheme, host)
	}
	return fmt.Sprintf("%s://%s:%d", scheme, host, port)
}

// IsLocalhost checks if the host is a localhost address.
func IsLocalhost(host string) bool {
	switch host {
	case "", "localhost", "127.0.0.1", "::1":
		return true
	}
	// Check for *.localhost subdomains (e.g., app.localhost)
	return strings.HasSuffix(host, ".localhost")
}

func logFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "log-level",
			Value:   "info",
			Usage:   "Log level (debug, info, warn, error)",
			Sources: cli.NewValueSourceChain(cli.EnvVar("LOG_LEVEL"), toml.TOML("log.level", configFile)),
		},
		&cli.StringFlag{
			Name:    "log-format",
			Value:   "text",
			Usage:   "Log format (text, json)",
			Sources: cli.NewValueSourceChain(cli.EnvVar("LOG_FORMAT"), toml.TOML("log.format", configFile)),
		},
	}
}

// DatabaseFlags returns the flags needed to open the database.
func DatabaseFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "database-dsn",
			Value:   "./data/scentbook.db",
			Usage:   "Database DSN",
			Sources: cli.NewValueSourceChain(cli.EnvVar("DATABASE_URL"), toml.TOML("database.dsn", configFile)),
		},
	}
}

// Flags returns the flags of the serve command.
func Flags() []cli.Flag {
	flags := []cli.Flag{
		&cli.StringFlag{
			Name:    "host",
			Value:   "localhost",
			Usage:   "Host to bind to",
			Sources: cli.NewValueSourceChain(cli.EnvVar("HOST"), toml.TOML("server.host", configFile)),
		},
		&cli.IntFlag{
			Name:    "port",
			Value:   8080,
			Usage:   "Port to listen on",
			Sources: cli.NewValueSourceChain(cli.EnvVar("PORT"), toml.TOML("server.port", configFile)),
		},
		&cli.StringFlag{
			Name:    "base-url",
			Usage:   "Base URL for the application",
			Sources: cli.NewValueSourceChain(cli.EnvVar("BASE_URL"), toml.TOML("server.base_url", configFile)),
		},
		&cli.IntFlag{
			Name:    "max-body-size",
			Value:   1,
			Usage:   "Maximum request body size in MB",
			Sources: cli.NewValueSourceChain(cli.EnvVar("MAX_BODY_SIZE"), toml.TOML("server.max_body_size", configFile)),
		},
		// Auth flags
		&cli.StringFlag{
			Name:    "jwt-secret-key",
			Usage:   "Secret for signing access tokens (auto-generated if empty in dev)",
			Sources: cli.NewValueSourceChain(cli.EnvVar("JWT_SECRET_KEY"), toml.TOML("auth.jwt_secret_key", configFile)),
		},
		&cli.StringFlag{
			Name:    "jwt-algorithm",
			Value:   "HS256",
			Usage:   "Access token signing algorithm (HS256, HS384, HS512)",
			Sources: cli.NewValueSourceChain(cli.EnvVar("JWT_ALGORITHM"), toml.TOML("auth.jwt_algorithm", configFile)),
		},
		&cli.IntFlag{
			Name:    "jwt-access-token-expire-minutes",
			Value:   30,
			Usage:   "Access token lifetime in minutes",
			Sources: cli.NewValueSourceChain(cli.EnvVar("JWT_ACCESS_TOKEN_EXPIRE_MINUTES"), toml.TOML("auth.jwt_access_token_expire_minutes", configFile)),
		},
		&cli.StringFlag{
			Name:    "cookie-name",
			Value:   "access_token",
			Usage:   "Session cookie name",
			Sources: cli.NewValueSourceChain(cli.EnvVar("COOKIE_NAME"), toml.TOML("auth.cookie_name", configFile)),
		},
		&cli.BoolFlag{
			Name:    "cookie-secure",
			Usage:   "Send cookies over HTTPS only",
			Sources: cli.NewValueSourceChain(cli.EnvVar("COOKIE_SECURE"), toml.TOML("auth.cookie_secure", configFile)),
		},
		&cli.StringFlag{
			Name:    "cookie-samesite",
			Value:   "lax",
			Usage:   "Cookie SameSite mode (lax, strict, none)",
			Sources: cli.NewValueSourceChain(cli.EnvVar("COOKIE_SAMESITE"), toml.TOML("auth.cookie_samesite", configFile)),
		},
		&cli.StringFlag{
			Name:    "session-hash-key",
			Usage:   "Session hash key (32-byte hex, auto-generated if empty in dev)",
			Sources: cli.NewValueSourceChain(cli.EnvVar("SESSION_HASH_KEY"), toml.TOML("auth.session_hash_key", configFile)),
		},
		&cli.StringFlag{
			Name:    "session-block-key",
			Usage:   "Session block key for encryption (32-byte hex, optional)",
			Sources: cli.NewValueSourceChain(cli.EnvVar("SESSION_BLOCK_KEY"), toml.TOML("auth.session_block_key", configFile)),
		},
	}

	flags = append(flags, DatabaseFlags()...)
	return append(flags, logFlags()...)
}

// ClientFlags returns the flags of the client command.
func ClientFlags() []cli.Flag {
	flags := []cli.Flag{
		&cli.StringFlag{
			Name:    "api-url",
			Value:   "http://localhost:8080",
			Usage:   "Base URL of the scentbook server",
			Sources: cli.NewValueSourceChain(cli.EnvVar("API_URL"), toml.TOML("client.api_url", configFile)),
		},
		&cli.DurationFlag{
			Name:    "timeout",
			Usage:   "Request timeout, unset or 0 means none",
			Sources: cli.NewValueSourceChain(cli.EnvVar("CLIENT_TIMEOUT"), toml.TOML("client.timeout", configFile)),
		},
		&cli.StringFlag{
			Name:  "path",
			Value: "/",
			Usage: "Path to navigate to",
		},
		&cli.StringFlag{
			Name:    "username",
			Usage:   "Log in with this username before navigating",
			Sources: cli.EnvVars("SCENTBOOK_USERNAME"),
		},
		&cli.StringFlag{
			Name:    "password",
			Usage:   "Password for --username",
			Sources: cli.EnvVars("SCENTBOOK_PASSWORD"),
		},
		&cli.StringFlag{
			Name:    "lang",
			Value:   "en",
			Usage:   "Language to render views in (en, de)",
			Sources: cli.NewValueSourceChain(cli.EnvVar("SCENTBOOK_LANG"), toml.TOML("client.lang", configFile)),
		},
	}
	return append(flags, logFlags()...)
}
