package config

import "testing"

func TestLoadServer_Defaults(t *testing.T) {
	cfg := LoadServer()

	if cfg.Addr != ":8080" {
		t.Errorf("addr = %q, want :8080", cfg.Addr)
	}
	if len(cfg.AllowedOrigins) != 2 {
		t.Errorf("expected 2 default origins, got %v", cfg.AllowedOrigins)
	}
}

func TestLoadServer_Env(t *testing.T) {
	t.Setenv("BODELAB_ADDR", "127.0.0.1:9090")
	t.Setenv("BODELAB_ALLOWED_ORIGINS", "https://a.example, https://b.example,")

	cfg := LoadServer()

	if cfg.Addr != "127.0.0.1:9090" {
		t.Errorf("addr = %q", cfg.Addr)
	}
	if len(cfg.AllowedOrigins) != 2 || cfg.AllowedOrigins[1] != "https://b.example" {
		t.Errorf("origins = %v", cfg.AllowedOrigins)
	}
}
