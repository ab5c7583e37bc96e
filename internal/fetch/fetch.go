// Package fetch downloads vendor keys and editor packages over HTTP.
package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"time"

	"desktop-setup/internal/logger"
)

// Fetcher retrieves remote resources.
type Fetcher interface {
	// Fetch returns the whole body of url, for feeding into a second process.
	Fetch(ctx context.Context, url string) ([]byte, error)
	// Download saves url into the existing directory destDir and returns the file path.
	Download(ctx context.Context, url, destDir string) (string, error)
}

// HTTPFetcher implements Fetcher with a plain HTTP client.
type HTTPFetcher struct {
	Client *http.Client
}

// NewHTTPFetcher returns a fetcher with a bounded request timeout.
func NewHTTPFetcher() *HTTPFetcher {
	return &HTTPFetcher{Client: &http.Client{Timeout: 5 * time.Minute}}
}

// Fetch downloads url fully into memory.
func (f *HTTPFetcher) Fetch(ctx context.Context, rawURL string) ([]byte, error) {
	body, err := f.get(ctx, rawURL)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := body.Close(); cerr != nil {
			logger.Warn("[WARN] Failed to close response body: %v\n", cerr)
		}
	}()

	data, err := io.ReadAll(body)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", rawURL, err)
	}
	logger.Debug("[DEBUG] Fetched %d bytes from %s\n", len(data), rawURL)
	return data, nil
}

// Download streams url into destDir. The directory is not created.
func (f *HTTPFetcher) Download(ctx context.Context, rawURL, destDir string) (string, error) {
	destPath, err := DestinationPath(rawURL, destDir)
	if err != nil {
		return "", err
	}
	if err := requireDir(destDir); err != nil {
		return "", err
	}

	body, err := f.get(ctx, rawURL)
	if err != nil {
		return "", err
	}
	defer func() {
		if cerr := body.Close(); cerr != nil {
			logger.Warn("[WARN] Failed to close response body: %v\n", cerr)
		}
	}()

	// Create or truncate the file at destPath
	out, err := os.Create(destPath)
	if err != nil {
		return "", fmt.Errorf("failed to create file %s: %w", destPath, err)
	}

	if _, err := io.Copy(out, body); err != nil {
		out.Close()
		// Don't leave a truncated package behind
		if rerr := os.Remove(destPath); rerr != nil {
			logger.Warn("[WARN] Failed to remove partial download %s: %v\n", destPath, rerr)
		}
		return "", fmt.Errorf("failed to write response to file: %w", err)
	}
	if err := out.Close(); err != nil {
		return "", fmt.Errorf("failed to close destination file %s: %w", destPath, err)
	}

	logger.Debug("[DEBUG] Downloaded %s to: %s\n", rawURL, destPath)
	return destPath, nil
}

func (f *HTTPFetcher) get(ctx context.Context, rawURL string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request for %s: %w", rawURL, err)
	}

	client := f.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to GET %s: %w", rawURL, err)
	}
	if resp.StatusCode != http.StatusOK {
		_ = resp.Body.Close()
		return nil, fmt.Errorf("failed to GET %s: HTTP status %d", rawURL, resp.StatusCode)
	}
	return resp.Body, nil
}

// DestinationPath names the local file for a download: the unescaped last
// path segment of the URL inside destDir.
func DestinationPath(rawURL, destDir string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", fmt.Errorf("invalid URL %s: %w", rawURL, err)
	}
	name, err := url.PathUnescape(path.Base(u.EscapedPath()))
	if err != nil {
		return "", fmt.Errorf("invalid URL path %s: %w", rawURL, err)
	}
	if name == "" || name == "/" || name == "." {
		return "", fmt.Errorf("URL %s has no file name", rawURL)
	}
	return filepath.Join(destDir, name), nil
}

func requireDir(dir string) error {
	info, err := os.Stat(dir)
	if err != nil {
		return fmt.Errorf("download directory %s: %w", dir, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("download directory %s is not a directory", dir)
	}
	return nil
}

// Dry is a Fetcher for --dry-run: it logs what would be fetched and transfers nothing.
type Dry struct{}

// Fetch returns an empty body.
func (Dry) Fetch(_ context.Context, rawURL string) ([]byte, error) {
	logger.Plan("[DRY-RUN] fetch %s\n", rawURL)
	return []byte{}, nil
}

// Download returns the path the file would be written to.
func (Dry) Download(_ context.Context, rawURL, destDir string) (string, error) {
	logger.Plan("[DRY-RUN] download %s -> %s\n", rawURL, destDir)
	return DestinationPath(rawURL, destDir)
}
