package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// TokenLocation controls where the auth middleware looks for JWTs.
type TokenLocation string

const (
	TokenInHeaders TokenLocation = "headers"
	TokenInCookies TokenLocation = "cookies"
	TokenInBoth    TokenLocation = "headers,cookies"
)

// Headers reports whether the Authorization header is an accepted token source.
func (l TokenLocation) Headers() bool { return l == TokenInHeaders || l == TokenInBoth }

// Cookies reports whether token cookies are an accepted token source.
func (l TokenLocation) Cookies() bool { return l == TokenInCookies || l == TokenInBoth }

type Config struct {
	HTTP struct {
		Addr string
	}
	DB struct {
		Driver string
		DSN    string
	}
	JWT struct {
		Secret        string
		AccessTTL     time.Duration
		RefreshTTL    time.Duration
		TokenLocation TokenLocation
	}
	Log struct {
		Level  string
		Pretty bool
	}
}

// Load reads config from environment (BOOKMARKD_ prefix) and optional bookmarkd.yaml.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("BOOKMARKD")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	v.SetConfigName("bookmarkd")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // optional config file

	v.SetDefault("http.addr", ":8080")
	v.SetDefault("jwt.access_ttl", "15m")
	v.SetDefault("jwt.refresh_ttl", "720h")
	v.SetDefault("jwt.token_location", "headers")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.pretty", false)

	cfg := &Config{}
	cfg.HTTP.Addr = v.GetString("http.addr")
	cfg.DB.Driver = v.GetString("db.driver")
	cfg.DB.DSN = v.GetString("db.dsn")
	cfg.JWT.Secret = v.GetString("jwt.secret")
	cfg.Log.Level = v.GetString("log.level")
	cfg.Log.Pretty = v.GetBool("log.pretty")

	accessTTL, err := time.ParseDuration(v.GetString("jwt.access_ttl"))
	if err != nil {
		return nil, fmt.Errorf("invalid BOOKMARKD_JWT_ACCESS_TTL: %w", err)
	}
	cfg.JWT.AccessTTL = accessTTL

	refreshTTL, err := time.ParseDuration(v.GetString("jwt.refresh_ttl"))
	if err != nil {
		return nil, fmt.Errorf("invalid BOOKMARKD_JWT_REFRESH_TTL: %w", err)
	}
	cfg.JWT.RefreshTTL = refreshTTL

	loc, err := parseTokenLocation(v.GetString("jwt.token_location"))
	if err != nil {
		return nil, err
	}
	cfg.JWT.TokenLocation = loc

	if cfg.DB.Driver == "" {
		return nil, fmt.Errorf("BOOKMARKD_DB_DRIVER is required (sqlite3, mysql, postgres)")
	}
	if cfg.DB.DSN == "" {
		return nil, fmt.Errorf("BOOKMARKD_DB_DSN is required")
	}
	if len(cfg.JWT.Secret) < 16 {
		return nil, fmt.Errorf("BOOKMARKD_JWT_SECRET is required and must be at least 16 characters")
	}

	return cfg, nil
}

func parseTokenLocation(s string) (TokenLocation, error) {
	switch TokenLocation(s) {
	case TokenInHeaders, TokenInCookies, TokenInBoth:
		return TokenLocation(s), nil
	default:
		return "", fmt.Errorf("invalid BOOKMARKD_JWT_TOKEN_LOCATION %q: must be headers, cookies, or headers,cookies", s)
	}
}
