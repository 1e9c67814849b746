package config

import (
	"context"
	"os"
	"testing"
)

func TestLoadRequiresDatabaseURL(t *testing.T) {
	os.Unsetenv("DATABASE_URL")

	if _, err := Load(context.Background()); err == nil {
		t.Fatal("Load() expected error when DATABASE_URL is unset")
	}
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost:5432/quill")

	cfg, err := Load(context.Background())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Addr != ":8080" {
		t.Errorf("Addr = %q, want %q", cfg.Addr, ":8080")
	}
	if cfg.RateLimit != 100 {
		t.Errorf("RateLimit = %d, want 100", cfg.RateLimit)
	}
}

func TestMigrationURL(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
		want string
	}{
		{
			name: "falls back to pooled DSN",
			cfg:  Config{DatabaseURL: "postgres://pooled"},
			want: "postgres://pooled",
		},
		{
			name: "prefers direct DSN",
			cfg:  Config{DatabaseURL: "postgres://pooled", DirectDatabaseURL: "postgres://direct"},
			want: "postgres://direct",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.cfg.MigrationURL(); got != tt.want {
				t.Fatalf("MigrationURL() = %q, want %q", got, tt.want)
			}
		})
	}
}
