// Package source loads rustdoc pages from disk or over http.
package source

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/klauspost/compress/zstd"
)

const userAgent = "ferrisdoc/0.1.0"

var zstdMagic = []byte{0x28, 0xb5, 0x2f, 0xfd}

// Loader reads documents from local paths and http(s) URLs.
type Loader struct {
	client *http.Client
}

// New returns a Loader whose requests give up after timeout.
func New(timeout time.Duration) *Loader {
	return &Loader{client: &http.Client{Timeout: timeout}}
}

// IsRemote reports whether location is an http(s) URL.
func IsRemote(location string) bool {
	return strings.HasPrefix(location, "http://") || strings.HasPrefix(location, "https://")
}

// Load returns the document at location. Zstd-compressed documents, either
// named *.zst or starting with the zstd frame magic, are decompressed.
func (l *Loader) Load(ctx context.Context, location string) ([]byte, error) {
	var data []byte
	var err error
	if IsRemote(location) {
		data, err = l.fetch(ctx, location)
	} else {
		data, err = os.ReadFile(location)
		if err != nil {
			err = fmt.Errorf("reading %s: %w", location, err)
		}
	}
	if err != nil {
		return nil, err
	}

	if strings.HasSuffix(location, ".zst") || bytes.HasPrefix(data, zstdMagic) {
		return decompress(data)
	}
	return data, nil
}

func (l *Loader) fetch(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := l.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return nil, fmt.Errorf("%s returned %d: %s", url, resp.StatusCode, string(body))
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response from %s: %w", url, err)
	}
	return data, nil
}

func decompress(data []byte) ([]byte, error) {
	decoder, err := zstd.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("creating zstd decoder: %w", err)
	}
	defer decoder.Close()

	out, err := io.ReadAll(decoder)
	if err != nil {
		return nil, fmt.Errorf("decompressing document: %w", err)
	}
	return out, nil
}

// IsRustdoc reports whether the document declares rustdoc as its generator.
func IsRustdoc(src []byte) bool {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(src))
	if err != nil {
		return false
	}
	generator, ok := doc.Find(`meta[name="generator"]`).First().Attr("content")
	return ok && strings.EqualFold(strings.TrimSpace(generator), "rustdoc")
}
