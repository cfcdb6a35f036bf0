package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/spf13/viper"
)

func TestCacheBase_XDGSet(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", "/custom/cache")
	got := cacheBase()
	want := filepath.Join("/custom/cache", "ferrisdoc")
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
	if got, want := CacheDir(), filepath.Join(want, "pages"); got != want {
		t.Errorf("CacheDir() = %q, want %q", got, want)
	}
}

func TestCacheBase_HomeDir(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", "")
	got := cacheBase()
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("cannot determine home dir")
	}
	want := filepath.Join(home, ".cache", "ferrisdoc")
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestCacheBase_TmpFallback(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", "")
	t.Setenv("HOME", "")
	got := cacheBase()
	if !strings.Contains(got, "ferrisdoc") {
		t.Errorf("expected ferrisdoc in path, got %q", got)
	}
}

func TestParseFormat(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input   string
		want    Format
		wantErr bool
	}{
		{"markdown", FormatMarkdown, false},
		{"md", FormatMarkdown, false},
		{" JSON ", FormatJSON, false},
		{"yaml", FormatYAML, false},
		{"html", FormatHTML, false},
		{"term", FormatTerm, false},
		{"pdf", "", true},
	}
	for _, tt := range tests {
		got, err := ParseFormat(tt.input)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseFormat(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
		}
		if got != tt.want {
			t.Errorf("ParseFormat(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

// isolate points viper at an empty config home and resets its global state.
func isolate(t *testing.T) string {
	t.Helper()
	viper.Reset()
	t.Cleanup(viper.Reset)

	home := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", home)
	for _, key := range []string{
		"FERRISDOC_OUTPUT_FORMAT",
		"FERRISDOC_PARSE_CONCURRENCY",
		"FERRISDOC_CACHE_ENABLED",
		"FERRISDOC_FETCH_TIMEOUT_SECONDS",
	} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
	return home
}

func writeConfig(t *testing.T, home, body string) {
	t.Helper()
	dir := filepath.Join(home, "ferrisdoc")
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "config.toml"), []byte(body), 0644); err != nil {
		t.Fatal(err)
	}
}

func TestLoad_Defaults(t *testing.T) {
	isolate(t)

	cfg, err := Load()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Output.Format != FormatMarkdown {
		t.Errorf("format = %q, want markdown", cfg.Output.Format)
	}
	if cfg.Parse.Concurrency != 4 {
		t.Errorf("concurrency = %d, want 4", cfg.Parse.Concurrency)
	}
	if !cfg.Cache.Enabled {
		t.Error("cache should be enabled by default")
	}
	if cfg.Fetch.Timeout() != 60*time.Second {
		t.Errorf("timeout = %v, want 60s", cfg.Fetch.Timeout())
	}
}

func TestLoad_File(t *testing.T) {
	home := isolate(t)
	writeConfig(t, home, `
[output]
format = "json"

[parse]
concurrency = 0

[cache]
enabled = false

[theme]
trait = "#ff0000"
`)

	cfg, err := Load()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Output.Format != FormatJSON {
		t.Errorf("format = %q, want json", cfg.Output.Format)
	}
	if cfg.Parse.Concurrency != 1 {
		t.Errorf("concurrency = %d, want it clamped to 1", cfg.Parse.Concurrency)
	}
	if cfg.Cache.Enabled {
		t.Error("cache should be disabled")
	}
	if cfg.Theme["trait"] != "#ff0000" {
		t.Errorf("theme = %v", cfg.Theme)
	}
}

func TestLoad_Env(t *testing.T) {
	isolate(t)
	t.Setenv("FERRISDOC_OUTPUT_FORMAT", "yaml")
	t.Setenv("FERRISDOC_PARSE_CONCURRENCY", "8")

	cfg, err := Load()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Output.Format != FormatYAML {
		t.Errorf("format = %q, want yaml", cfg.Output.Format)
	}
	if cfg.Parse.Concurrency != 8 {
		t.Errorf("concurrency = %d, want 8", cfg.Parse.Concurrency)
	}
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"format", "[output]\nformat = \"pdf\"\n"},
		{"theme_tag", "[theme]\nwidget = \"#ffffff\"\n"},
		{"theme_colour", "[theme]\nenum = \"teal\"\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			home := isolate(t)
			writeConfig(t, home, tt.body)
			if _, err := Load(); err == nil {
				t.Fatal("expected an error")
			}
		})
	}
}
