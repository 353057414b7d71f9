package infra

import (
	"testing"
	"time"
)

func TestLoadConfigRequiresAPIKey(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "")

	if _, err := LoadConfig(); err == nil {
		t.Fatal("LoadConfig succeeded without GEMINI_API_KEY")
	}
}

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "test-key")
	t.Setenv("PORT", "")
	t.Setenv("GEMINI_ANALYZE_MODEL", "")
	t.Setenv("GEMINI_EDIT_MODEL", "")
	t.Setenv("CORS_ALLOWED_ORIGINS", "")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig returned error: %v", err)
	}
	if cfg.Port != "8080" {
		t.Fatalf("Port mismatch: got %q want %q", cfg.Port, "8080")
	}
	if cfg.GeminiAnalyzeModel != "gemini-2.5-flash" {
		t.Fatalf("GeminiAnalyzeModel mismatch: got %q", cfg.GeminiAnalyzeModel)
	}
	if cfg.GeminiEditModel != "gemini-2.5-flash-image" {
		t.Fatalf("GeminiEditModel mismatch: got %q", cfg.GeminiEditModel)
	}
	if cfg.UploadMaxBytes != 8<<20 {
		t.Fatalf("UploadMaxBytes mismatch: got %d", cfg.UploadMaxBytes)
	}
	if cfg.SessionIdleTimeout != 30*time.Minute {
		t.Fatalf("SessionIdleTimeout mismatch: got %s", cfg.SessionIdleTimeout)
	}
	if len(cfg.CORSAllowedOrigins) != 0 {
		t.Fatalf("CORSAllowedOrigins mismatch: %#v", cfg.CORSAllowedOrigins)
	}
}

func TestLoadConfigClampsSweepInterval(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "test-key")
	t.Setenv("SESSION_SWEEP_INTERVAL_SECONDS", "0")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig returned error: %v", err)
	}
	if cfg.SessionSweepInterval < time.Second {
		t.Fatalf("SessionSweepInterval = %s, want at least 1s", cfg.SessionSweepInterval)
	}
}

func TestLoadConfigHonorsOverrides(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "test-key")
	t.Setenv("PORT", "1919")
	t.Setenv("GEMINI_EDIT_MODEL", "gemini-3-pro-image-preview")
	t.Setenv("CORS_ALLOWED_ORIGINS", "http://localhost:5173, https://studio.example.com")
	t.Setenv("HTTP_WRITE_TIMEOUT_SECONDS", "45")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig returned error: %v", err)
	}
	if cfg.Port != "1919" {
		t.Fatalf("Port mismatch: got %q", cfg.Port)
	}
	if cfg.GeminiEditModel != "gemini-3-pro-image-preview" {
		t.Fatalf("GeminiEditModel mismatch: got %q", cfg.GeminiEditModel)
	}
	want := []string{"http://localhost:5173", "https://studio.example.com"}
	if len(cfg.CORSAllowedOrigins) != 2 || cfg.CORSAllowedOrigins[0] != want[0] || cfg.CORSAllowedOrigins[1] != want[1] {
		t.Fatalf("CORSAllowedOrigins mismatch: %#v", cfg.CORSAllowedOrigins)
	}
	if cfg.HTTPWriteTimeout != 45*time.Second {
		t.Fatalf("HTTPWriteTimeout mismatch: got %s", cfg.HTTPWriteTimeout)
	}
}
