package source

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/arc-language/spralpkg/pkg/core"
	"github.com/arc-language/spralpkg/pkg/logging"
)

// Fetcher retrieves upstream sources into a source folder
type Fetcher struct {
	Client   *http.Client
	CacheDir string // downloaded archives are kept here, keyed by checksum
}

// NewFetcher creates a fetcher caching downloads under cacheDir
func NewFetcher(cacheDir string, timeout time.Duration) *Fetcher {
	if timeout == 0 {
		timeout = 5 * time.Minute
	}
	return &Fetcher{
		Client:   &http.Client{Timeout: timeout},
		CacheDir: cacheDir,
	}
}

// Fetch places the sources described by src into dest with the archive's
// top-level folder stripped
func (f *Fetcher) Fetch(ctx context.Context, src Source, dest string) error {
	if err := src.Validate(); err != nil {
		return err
	}
	if err := os.MkdirAll(dest, 0755); err != nil {
		return fmt.Errorf("creating source folder: %w", err)
	}

	if src.IsGit() {
		return Clone(ctx, src, dest)
	}

	archive, err := f.Download(ctx, src)
	if err != nil {
		return err
	}

	return Extract(archive, archiveName(src.URL[0]), dest, true)
}

// Download fetches the archive, trying each mirror in turn, and verifies its
// SHA-256. A cached archive with the right checksum is reused.
func (f *Fetcher) Download(ctx context.Context, src Source) (string, error) {
	logger := logging.FromContext(ctx)

	if err := os.MkdirAll(f.CacheDir, 0755); err != nil {
		return "", fmt.Errorf("creating download cache: %w", err)
	}

	want := strings.ToLower(src.SHA256)
	target := filepath.Join(f.CacheDir, want+"-"+archiveName(src.URL[0]))

	if got, err := fileSHA256(target); err == nil && got == want {
		logger.Debug("using cached archive", "path", target)
		return target, nil
	}

	var lastErr error
	for _, url := range src.URL {
		logger.Info("downloading sources", "url", url)
		if err := f.downloadFile(ctx, url, target); err != nil {
			lastErr = err
			logger.Warn("download failed", "url", url, "error", err)
			continue
		}

		got, err := fileSHA256(target)
		if err != nil {
			return "", fmt.Errorf("hashing %s: %w", target, err)
		}
		if got != want {
			os.Remove(target)
			lastErr = fmt.Errorf("%w: %s: expected %s, got %s", core.ErrHashMismatch, url, want, got)
			continue
		}

		return target, nil
	}

	return "", fmt.Errorf("downloading sources: %w", lastErr)
}

// downloadFile downloads url into dest through a temporary file
func (f *Fetcher) downloadFile(ctx context.Context, url, dest string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}

	resp, err := f.Client.Do(req)
	if err != nil {
		return fmt.Errorf("executing request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	tmp, err := os.CreateTemp(filepath.Dir(dest), ".download-*")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := io.Copy(tmp, resp.Body); err != nil {
		tmp.Close()
		return fmt.Errorf("writing file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return err
	}

	return os.Rename(tmp.Name(), dest)
}

// fileSHA256 returns the hex SHA-256 of a file
func fileSHA256(path string) (string, error) {
	file, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer file.Close()

	hasher := sha256.New()
	if _, err := io.Copy(hasher, file); err != nil {
		return "", err
	}

	return hex.EncodeToString(hasher.Sum(nil)), nil
}

// archiveName returns the file name part of a download URL
func archiveName(url string) string {
	if i := strings.IndexAny(url, "?#"); i >= 0 {
		url = url[:i]
	}
	return path.Base(url)
}
