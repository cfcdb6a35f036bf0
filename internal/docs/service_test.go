package docs

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/jcdickinson/ferrisdoc/internal/cache"
	"github.com/jcdickinson/ferrisdoc/internal/config"
	"github.com/jcdickinson/ferrisdoc/internal/rustdoc"
)

const fixture = "../rustdoc/testdata/widget.html"

func testConfig(enabled bool) *config.Config {
	return &config.Config{
		Parse: config.ParseConfig{Concurrency: 2},
		Cache: config.CacheConfig{Enabled: enabled},
		Fetch: config.FetchConfig{TimeoutSeconds: 5},
	}
}

func TestGet_ParsesAndCaches(t *testing.T) {
	t.Parallel()

	store := cache.New(t.TempDir())
	svc := NewService(testConfig(true), store)

	page, err := svc.Get(context.Background(), fixture, GetOptions{})
	if err != nil {
		t.Fatal(err)
	}
	if len(page.MainContent) != 6 {
		t.Fatalf("got %d sections, want 6", len(page.MainContent))
	}

	data, err := os.ReadFile(fixture)
	if err != nil {
		t.Fatal(err)
	}
	if !store.Has(cache.Key(data)) {
		t.Fatal("page was not cached")
	}

	again, err := svc.Get(context.Background(), fixture, GetOptions{})
	if err != nil {
		t.Fatal(err)
	}
	if again.MainContent[0].Title() != "Fields" {
		t.Errorf("cached page lost its sections: %v", again.MainContent)
	}
}

func TestGet_CacheDisabled(t *testing.T) {
	t.Parallel()

	dir := filepath.Join(t.TempDir(), "pages")
	svc := NewService(testConfig(false), cache.New(dir))

	if _, err := svc.Get(context.Background(), fixture, GetOptions{}); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(dir); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("cache directory should not exist, stat error: %v", err)
	}
}

func TestGet_NotRustdoc(t *testing.T) {
	t.Parallel()

	p := filepath.Join(t.TempDir(), "page.html")
	if err := os.WriteFile(p, []byte("<html><body><p>hello</p></body></html>"), 0644); err != nil {
		t.Fatal(err)
	}

	svc := NewService(testConfig(false), nil)
	_, err := svc.Get(context.Background(), p, GetOptions{})
	if !errors.Is(err, rustdoc.ErrMissingAnchor) {
		t.Fatalf("got %v, want ErrMissingAnchor", err)
	}
}
