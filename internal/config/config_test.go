package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.News.CacheTTL != 1800 {
		t.Errorf("CacheTTL = %d, want 1800", cfg.News.CacheTTL)
	}
	if cfg.News.HeadlineCacheTTL != 900 {
		t.Errorf("HeadlineCacheTTL = %d, want 900", cfg.News.HeadlineCacheTTL)
	}
	if cfg.News.MaxArticles != 50 {
		t.Errorf("MaxArticles = %d, want 50", cfg.News.MaxArticles)
	}
	if cfg.News.MaxHeadlines != 30 {
		t.Errorf("MaxHeadlines = %d, want 30", cfg.News.MaxHeadlines)
	}
	if cfg.News.LookbackDays != 7 {
		t.Errorf("LookbackDays = %d, want 7", cfg.News.LookbackDays)
	}
	if cfg.API.Port != 8080 {
		t.Errorf("API.Port = %d, want 8080", cfg.API.Port)
	}
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	yaml := `
news:
  cache_ttl: 600
  max_articles: 10
api:
  port: 9090
keys:
  finnhub: file-key
`
	if err := os.WriteFile(path, []byte(yaml), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFromFile(path)
	if err != nil {
		t.Fatalf("LoadFromFile() failed: %v", err)
	}

	if cfg.News.CacheTTL != 600 {
		t.Errorf("CacheTTL = %d, want 600", cfg.News.CacheTTL)
	}
	if cfg.News.MaxArticles != 10 {
		t.Errorf("MaxArticles = %d, want 10", cfg.News.MaxArticles)
	}
	// Unset values keep their defaults.
	if cfg.News.MaxHeadlines != 30 {
		t.Errorf("MaxHeadlines = %d, want default 30", cfg.News.MaxHeadlines)
	}
	if cfg.API.Port != 9090 {
		t.Errorf("API.Port = %d, want 9090", cfg.API.Port)
	}
	if cfg.Keys.Finnhub != "file-key" {
		t.Errorf("Keys.Finnhub = %q, want file-key", cfg.Keys.Finnhub)
	}
}

func TestEnvOverridesConfigFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	yaml := "keys:\n  finnhub: file-key\n"
	if err := os.WriteFile(path, []byte(yaml), 0o644); err != nil {
		t.Fatal(err)
	}

	t.Setenv("FINNHUB_API_KEY", "env-key")
	t.Setenv("NEWSAPI_KEY", "env-newsapi")

	cfg, err := LoadFromFile(path)
	if err != nil {
		t.Fatalf("LoadFromFile() failed: %v", err)
	}

	if cfg.Keys.Finnhub != "env-key" {
		t.Errorf("Keys.Finnhub = %q, want env-key (env wins over file)", cfg.Keys.Finnhub)
	}
	if cfg.Keys.NewsAPI != "env-newsapi" {
		t.Errorf("Keys.NewsAPI = %q, want env-newsapi", cfg.Keys.NewsAPI)
	}
}

func TestCheckAPIKeys(t *testing.T) {
	cfg := &Config{}
	cfg.Keys.Finnhub = "abcdefghijkl"

	statuses := CheckAPIKeys(cfg)
	if len(statuses) != 3 {
		t.Fatalf("got %d statuses, want 3", len(statuses))
	}

	byName := make(map[string]KeyStatus)
	for _, s := range statuses {
		byName[s.Name] = s
	}

	fh := byName["Finnhub API Key"]
	if !fh.IsSet {
		t.Error("Finnhub key should be marked set")
	}
	if fh.Masked != "abc...jkl" {
		t.Errorf("Masked = %q, want abc...jkl", fh.Masked)
	}

	na := byName["NewsAPI Key"]
	if na.IsSet || na.Source != KeySourceNone {
		t.Errorf("unset key: IsSet=%v Source=%q", na.IsSet, na.Source)
	}
}

func TestMaskKey(t *testing.T) {
	tests := []struct {
		key  string
		want string
	}{
		{"short", "***"},
		{"12345678", "***"},
		{"abcdefghijkl", "abc...jkl"},
	}
	for _, tt := range tests {
		if got := maskKey(tt.key); got != tt.want {
			t.Errorf("maskKey(%q) = %q, want %q", tt.key, got, tt.want)
		}
	}
}
