package config

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/sethvargo/go-envconfig"
)

func TestLoadFrom_Defaults(t *testing.T) {
	cfg, err := LoadFrom(context.Background(), envconfig.MapLookuper(map[string]string{}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Port != "8080" || cfg.StoreDriver != DriverMongo || cfg.DefaultRole != "UTILISATEUR" {
		t.Errorf("unexpected defaults: %+v", cfg)
	}
	if len(cfg.SeedRoles) != 2 || cfg.SeedRoles[0] != "UTILISATEUR" || cfg.SeedRoles[1] != "ADMIN" {
		t.Errorf("unexpected seed roles: %v", cfg.SeedRoles)
	}
	if len(cfg.CORSOrigins) != 3 || cfg.CORSOrigins[1] != "http://localhost:4200" {
		t.Errorf("unexpected CORS origins: %v", cfg.CORSOrigins)
	}
	if cfg.StoreTimeout != 5*time.Second || cfg.RateLimit.Window != time.Minute || cfg.RateLimit.Limit != 30 {
		t.Errorf("unexpected durations: %+v", cfg)
	}
	if cfg.Mongo.Database != "users" || cfg.Redis.Addr != "localhost:6379" {
		t.Errorf("unexpected store defaults: %+v %+v", cfg.Mongo, cfg.Redis)
	}
}

func TestLoadFrom_Overrides(t *testing.T) {
	cfg, err := LoadFrom(context.Background(), envconfig.MapLookuper(map[string]string{
		"STORE_DRIVER":  "postgres",
		"DATABASE_URL":  "postgres://u:p@localhost:5432/users",
		"RATE_LIMIT":    "5",
		"RATE_WINDOW":   "10s",
		"LOG_PRETTY":    "true",
		"ENV":           "production",
		"STORE_TIMEOUT": "2s",
	}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.StoreDriver != DriverPostgres || cfg.Postgres.URL == "" {
		t.Errorf("unexpected store config: %+v", cfg)
	}
	if cfg.RateLimit.Limit != 5 || cfg.RateLimit.Window != 10*time.Second {
		t.Errorf("unexpected rate limit: %+v", cfg.RateLimit)
	}
	if !cfg.LogPretty || !cfg.IsProduction() || cfg.StoreTimeout != 2*time.Second {
		t.Errorf("unexpected flags: %+v", cfg)
	}
}

func TestLoadFrom_Invalid(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
		want string
	}{
		{"unknown driver", map[string]string{"STORE_DRIVER": "sqlite"}, "STORE_DRIVER"},
		{"postgres without url", map[string]string{"STORE_DRIVER": "postgres"}, "DATABASE_URL"},
		{"zero rate limit", map[string]string{"RATE_LIMIT": "0"}, "RATE_LIMIT"},
		{"malformed duration", map[string]string{"STORE_TIMEOUT": "soon"}, "failed to load configuration"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadFrom(context.Background(), envconfig.MapLookuper(tt.env))
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("expected %q in %v", tt.want, err)
			}
		})
	}
}
