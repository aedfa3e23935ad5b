package config

import (
	"context"
	"testing"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("SUPABASE_URL", "https://project.supabase.co/")
	t.Setenv("SUPABASE_ANON_KEY", "anon")

	cfg, err := Load(context.Background())
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Port != "8080" || cfg.DefaultRole != "CONSULTOR" || cfg.Monday.Workers != 2 {
		t.Fatalf("unexpected defaults %+v", cfg)
	}
	if cfg.Supabase.URL != "https://project.supabase.co" {
		t.Fatalf("expected trailing slash trimmed, got %q", cfg.Supabase.URL)
	}
	if cfg.IsProduction() || cfg.BoardSyncEnabled() {
		t.Fatalf("unexpected flags")
	}
}

func TestLoad_RequiresProvider(t *testing.T) {
	t.Setenv("SUPABASE_URL", "")
	t.Setenv("SUPABASE_ANON_KEY", "")

	if _, err := Load(context.Background()); err == nil {
		t.Fatalf("expected error without identity provider settings")
	}
}

func TestLoad_Production(t *testing.T) {
	t.Setenv("SUPABASE_URL", "https://x.supabase.co")
	t.Setenv("SUPABASE_ANON_KEY", "anon")
	t.Setenv("ENV", "Production")
	t.Setenv("MONDAY_API_TOKEN", "tok")

	cfg, err := Load(context.Background())
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !cfg.IsProduction() || !cfg.BoardSyncEnabled() {
		t.Fatalf("expected production with board sync")
	}
}

func TestLoad_RedisURL(t *testing.T) {
	t.Setenv("SUPABASE_URL", "https://x.supabase.co")
	t.Setenv("SUPABASE_ANON_KEY", "anon")
	t.Setenv("REDIS_URL", "redis://cache:6379/2")

	cfg, err := Load(context.Background())
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Redis.URL != "redis://cache:6379/2" || cfg.Redis.Addr != "localhost:6379" {
		t.Fatalf("unexpected redis config %+v", cfg.Redis)
	}
}
