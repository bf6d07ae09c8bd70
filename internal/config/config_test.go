package config

import (
	"strings"
	"testing"
	"time"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()

	t.Setenv("BOOKMARKD_DB_DRIVER", "sqlite3")
	t.Setenv("BOOKMARKD_DB_DSN", "file:test.db")
	t.Setenv("BOOKMARKD_JWT_SECRET", "test-secret-at-least-16-chars")
}

func TestLoad_Defaults(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.HTTP.Addr != ":8080" {
		t.Errorf("HTTP.Addr = %q, want :8080", cfg.HTTP.Addr)
	}
	if cfg.JWT.AccessTTL != 15*time.Minute {
		t.Errorf("JWT.AccessTTL = %v, want 15m", cfg.JWT.AccessTTL)
	}
	if cfg.JWT.RefreshTTL != 720*time.Hour {
		t.Errorf("JWT.RefreshTTL = %v, want 720h", cfg.JWT.RefreshTTL)
	}
	if cfg.JWT.TokenLocation != TokenInHeaders {
		t.Errorf("JWT.TokenLocation = %q, want headers", cfg.JWT.TokenLocation)
	}
	if cfg.Log.Level != "info" {
		t.Errorf("Log.Level = %q, want info", cfg.Log.Level)
	}
}

func TestLoad_Overrides(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("BOOKMARKD_HTTP_ADDR", ":9090")
	t.Setenv("BOOKMARKD_JWT_ACCESS_TTL", "5m")
	t.Setenv("BOOKMARKD_JWT_TOKEN_LOCATION", "headers,cookies")
	t.Setenv("BOOKMARKD_LOG_PRETTY", "true")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.HTTP.Addr != ":9090" {
		t.Errorf("HTTP.Addr = %q, want :9090", cfg.HTTP.Addr)
	}
	if cfg.JWT.AccessTTL != 5*time.Minute {
		t.Errorf("JWT.AccessTTL = %v, want 5m", cfg.JWT.AccessTTL)
	}
	if cfg.JWT.TokenLocation != TokenInBoth {
		t.Errorf("JWT.TokenLocation = %q, want headers,cookies", cfg.JWT.TokenLocation)
	}
	if !cfg.JWT.TokenLocation.Headers() || !cfg.JWT.TokenLocation.Cookies() {
		t.Error("headers,cookies should accept both sources")
	}
	if !cfg.Log.Pretty {
		t.Error("Log.Pretty = false, want true")
	}
}

func TestLoad_MissingRequired(t *testing.T) {
	cases := []struct {
		name  string
		unset string
		want  string
	}{
		{"driver", "BOOKMARKD_DB_DRIVER", "BOOKMARKD_DB_DRIVER"},
		{"dsn", "BOOKMARKD_DB_DSN", "BOOKMARKD_DB_DSN"},
		{"secret", "BOOKMARKD_JWT_SECRET", "BOOKMARKD_JWT_SECRET"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			setRequiredEnv(t)
			t.Setenv(tc.unset, "")

			_, err := Load()
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tc.want) {
				t.Errorf("error %q does not mention %s", err, tc.want)
			}
		})
	}
}

func TestLoad_ShortSecret(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("BOOKMARKD_JWT_SECRET", "tooshort")

	if _, err := Load(); err == nil {
		t.Fatal("expected error for short secret")
	}
}

func TestLoad_BadTokenLocation(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("BOOKMARKD_JWT_TOKEN_LOCATION", "query")

	if _, err := Load(); err == nil {
		t.Fatal("expected error for invalid token location")
	}
}

func TestLoad_BadAccessTTL(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("BOOKMARKD_JWT_ACCESS_TTL", "soon")

	if _, err := Load(); err == nil {
		t.Fatal("expected error for invalid access TTL")
	}
}
