package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestNew(t *testing.T) {
	cfg := New()

	if cfg.Server.Listen != ":8080" {
		t.Errorf("expected default listen :8080, got %s", cfg.Server.Listen)
	}
	if cfg.Server.ReadTimeout != 15*time.Second {
		t.Errorf("expected default read timeout 15s, got %v", cfg.Server.ReadTimeout)
	}
	if cfg.Server.MaxBodySize != 64*1024 {
		t.Errorf("expected default max body size 65536, got %d", cfg.Server.MaxBodySize)
	}
	if cfg.Database.MaxConns != 10 {
		t.Errorf("expected default max conns 10, got %d", cfg.Database.MaxConns)
	}
	if !cfg.Database.AutoMigrate {
		t.Error("expected auto migrate to default to true")
	}
	if cfg.Redis.CacheTTL != 6*time.Hour {
		t.Errorf("expected default cache ttl 6h, got %v", cfg.Redis.CacheTTL)
	}
	if cfg.CountryData.LookupTimeout != 2*time.Second {
		t.Errorf("expected default lookup timeout 2s, got %v", cfg.CountryData.LookupTimeout)
	}
	if cfg.Mail.BaseURL != "https://api.resend.com" {
		t.Errorf("expected default mail base URL, got %s", cfg.Mail.BaseURL)
	}
	if cfg.Leads.DNSServer != "1.1.1.1:53" {
		t.Errorf("expected default dns server, got %s", cfg.Leads.DNSServer)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing.yaml")

	cfg, err := Load(&path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Server.Listen != ":8080" {
		t.Errorf("expected defaults when file is missing, got listen %s", cfg.Server.Listen)
	}
}

func TestLoad_FileAndEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")

	doc := `
server:
  listen: ":9090"
  readTimeout: 45s
database:
  url: postgres://hub@localhost/hub
slack:
  locale: en
`
	if err := os.WriteFile(path, []byte(doc), 0o600); err != nil {
		t.Fatalf("writing config: %v", err)
	}

	t.Setenv("HUB_SERVER_LISTEN", ":7070")
	t.Setenv("HUB_REDIS_ADDR", "localhost:6379")
	t.Setenv("HUB_LEADS_VERIFYMX", "true")
	t.Setenv("HUB_SERVER_ALLOWEDORIGINS", "https://a.example.com, https://b.example.com")

	cfg, err := Load(&path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Server.Listen != ":7070" {
		t.Errorf("expected env to override file, got listen %s", cfg.Server.Listen)
	}
	if cfg.Server.ReadTimeout != 45*time.Second {
		t.Errorf("expected read timeout 45s from file, got %v", cfg.Server.ReadTimeout)
	}
	if cfg.Server.WriteTimeout != 30*time.Second {
		t.Errorf("expected default write timeout to survive, got %v", cfg.Server.WriteTimeout)
	}
	if cfg.Database.URL != "postgres://hub@localhost/hub" {
		t.Errorf("expected database url from file, got %s", cfg.Database.URL)
	}
	if cfg.Redis.Addr != "localhost:6379" {
		t.Errorf("expected redis addr from env, got %s", cfg.Redis.Addr)
	}
	if !cfg.Leads.VerifyMX {
		t.Error("expected verifyMX from env")
	}
	if len(cfg.Server.AllowedOrigins) != 2 || cfg.Server.AllowedOrigins[1] != "https://b.example.com" {
		t.Errorf("expected two allowed origins, got %v", cfg.Server.AllowedOrigins)
	}
	if cfg.Slack.Locale != "en" {
		t.Errorf("expected slack locale en, got %s", cfg.Slack.Locale)
	}
}

func TestLoad_InvalidFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")

	if err := os.WriteFile(path, []byte("server: [\n"), 0o600); err != nil {
		t.Fatalf("writing config: %v", err)
	}

	if _, err := Load(&path); err == nil {
		t.Fatal("expected error for malformed config file")
	}
}

func TestLoad_InvalidValue(t *testing.T) {
	t.Setenv("HUB_SERVER_READTIMEOUT", "soon")

	if _, err := Load(nil); err == nil {
		t.Fatal("expected error for invalid duration")
	}
}

func TestLoad_EnvOverridesCamelCaseFileKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")

	doc := `
server:
  readTimeout: 45s
countryData:
  baseURL: https://file.example.com
  lookupTimeout: 4s
`
	if err := os.WriteFile(path, []byte(doc), 0o600); err != nil {
		t.Fatalf("writing config: %v", err)
	}

	t.Setenv("HUB_SERVER_READTIMEOUT", "5s")
	t.Setenv("HUB_COUNTRYDATA_BASEURL", "https://env.example.com")

	cfg, err := Load(&path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Server.ReadTimeout != 5*time.Second {
		t.Errorf("expected env read timeout 5s to win over file, got %v", cfg.Server.ReadTimeout)
	}
	if cfg.CountryData.BaseURL != "https://env.example.com" {
		t.Errorf("expected env base URL to win over file, got %s", cfg.CountryData.BaseURL)
	}
	if cfg.CountryData.LookupTimeout != 4*time.Second {
		t.Errorf("expected file lookup timeout 4s to survive, got %v", cfg.CountryData.LookupTimeout)
	}
}

func TestEnvValue(t *testing.T) {
	tests := []struct {
		env  string
		want string
	}{
		{env: "HUB_SERVER_READTIMEOUT", want: "server.readTimeout"},
		{env: "HUB_COUNTRYDATA_APITOKEN", want: "countryData.apiToken"},
		{env: "HUB_LEADS_VERIFYMX", want: "leads.verifyMX"},
		{env: "HUB_SERVER_LISTEN", want: "server.listen"},
		{env: "HUB_UNKNOWN_KEY", want: "unknown.key"},
	}

	for _, tt := range tests {
		if got, _ := envValue(tt.env, "x"); got != tt.want {
			t.Errorf("envValue(%s) key = %q, want %q", tt.env, got, tt.want)
		}
	}
}
