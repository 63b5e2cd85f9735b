package config

import (
	"strings"
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Port != "8080" {
		t.Fatalf("Port = %q", cfg.Port)
	}
	if cfg.ReadTimeout != 30*time.Second || cfg.WriteTimeout != 30*time.Second {
		t.Fatalf("timeouts = %v / %v", cfg.ReadTimeout, cfg.WriteTimeout)
	}
	if cfg.GinMode != "release" || cfg.LogLevel != "info" {
		t.Fatalf("mode/level = %q / %q", cfg.GinMode, cfg.LogLevel)
	}
	if cfg.APIBasePath != "/api/v1" {
		t.Fatalf("APIBasePath = %q", cfg.APIBasePath)
	}
	if cfg.DBPath != "mydoctor.db" || cfg.FactsPath != "data/symptoms.md" {
		t.Fatalf("paths = %q / %q", cfg.DBPath, cfg.FactsPath)
	}
	if cfg.MaxSessions != 2 {
		t.Fatalf("MaxSessions = %d, want 2", cfg.MaxSessions)
	}
	if cfg.TokenTTL != 24*time.Hour || cfg.IdempotencyTTL != 24*time.Hour {
		t.Fatalf("TTLs = %v / %v", cfg.TokenTTL, cfg.IdempotencyTTL)
	}
	if cfg.RateRPS != 5.0 || cfg.RateBurst != 10 {
		t.Fatalf("rate = %v / %d", cfg.RateRPS, cfg.RateBurst)
	}
	if cfg.Threshold != 0.25 {
		t.Fatalf("Threshold = %v", cfg.Threshold)
	}
	if cfg.OTEL.Enabled || cfg.SwaggerEnabled {
		t.Fatalf("observability/docs enabled by default")
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("LOG_LEVEL", "warning") // normalized to warn
	t.Setenv("GIN_MODE", "DEBUG")
	t.Setenv("MAX_SESSIONS", "5")
	t.Setenv("THRESHOLD", "0.5")
	t.Setenv("TOKEN_TTL", "1h")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, https://b.example ,")
	t.Setenv("API_BASE_PATH", "v2/")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Port != "9090" || cfg.LogLevel != "warn" || cfg.GinMode != "debug" {
		t.Fatalf("cfg = %q / %q / %q", cfg.Port, cfg.LogLevel, cfg.GinMode)
	}
	if cfg.MaxSessions != 5 || cfg.Threshold != 0.5 || cfg.TokenTTL != time.Hour {
		t.Fatalf("cfg = %d / %v / %v", cfg.MaxSessions, cfg.Threshold, cfg.TokenTTL)
	}
	if len(cfg.CORS.AllowedOrigins) != 2 || cfg.CORS.AllowedOrigins[1] != "https://b.example" {
		t.Fatalf("origins = %v", cfg.CORS.AllowedOrigins)
	}
	if cfg.APIBasePath != "/v2" {
		t.Fatalf("APIBasePath = %q", cfg.APIBasePath)
	}
}

func TestLoad_ValidationErrors(t *testing.T) {
	cases := []struct {
		key, val, wantErr string
	}{
		{"LOG_LEVEL", "loud", "LOG_LEVEL"},
		{"THRESHOLD", "1.5", "THRESHOLD"},
		{"MAX_SESSIONS", "0", "MAX_SESSIONS"},
		{"RATE_RPS", "-1", "RATE_RPS"},
		{"RATE_BURST", "0", "RATE_BURST"},
		{"READ_TIMEOUT", "-1s", "timeouts"},
		{"OTEL_TRACES_SAMPLER_ARG", "2", "OTEL_TRACES_SAMPLER_ARG"},
	}
	for _, tc := range cases {
		t.Run(tc.key, func(t *testing.T) {
			t.Setenv(tc.key, tc.val)
			_, err := Load()
			if err == nil {
				t.Fatalf("%s=%s did not fail validation", tc.key, tc.val)
			}
			if !strings.Contains(err.Error(), tc.wantErr) {
				t.Fatalf("error = %v, want mention of %s", err, tc.wantErr)
			}
		})
	}
}

func TestLoad_UnknownGinModeFallsBack(t *testing.T) {
	t.Setenv("GIN_MODE", "turbo")
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.GinMode != "release" {
		t.Fatalf("GinMode = %q, want release", cfg.GinMode)
	}
}

func TestNormalizeBasePath(t *testing.T) {
	cases := []struct{ in, want string }{
		{"", "/"},
		{"/", "/"},
		{"api", "/api"},
		{"/api/v1/", "/api/v1"},
		{"  /api  ", "/api"},
	}
	for _, tc := range cases {
		if got := normalizeBasePath(tc.in); got != tc.want {
			t.Fatalf("normalizeBasePath(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestGetBool(t *testing.T) {
	t.Setenv("FLAG", "yes")
	if !getbool("FLAG", false) {
		t.Fatalf("yes not truthy")
	}
	t.Setenv("FLAG", "off")
	if getbool("FLAG", true) {
		t.Fatalf("off not falsy")
	}
	t.Setenv("FLAG", "maybe")
	if !getbool("FLAG", true) {
		t.Fatalf("garbage should keep the default")
	}
}
