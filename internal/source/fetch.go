package source

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"

	"github.com/eric-lsd08/US-ETF-Distribution-ICS-Scheduler/internal/errors"
	"github.com/eric-lsd08/US-ETF-Distribution-ICS-Scheduler/pkg/utils"
)

// Fetcher downloads issuer documents into a cache directory. A document
// already present in the cache is reused; Refresh forces a re-download.
type Fetcher struct {
	Client   *http.Client
	CacheDir string
	Logger   zerolog.Logger
}

// NewFetcher creates a fetcher writing into cacheDir.
func NewFetcher(cacheDir string, timeout time.Duration, logger zerolog.Logger) *Fetcher {
	return &Fetcher{
		Client:   &http.Client{Timeout: timeout},
		CacheDir: cacheDir,
		Logger:   logger,
	}
}

// Fetch downloads url to filename under the cache directory and returns
// the cached path. The download is retried with exponential backoff and
// written to a temp file renamed on success, so a failed download never
// leaves a truncated document behind.
func (f *Fetcher) Fetch(ctx context.Context, url, filename string, refresh bool) (string, error) {
	if err := os.MkdirAll(f.CacheDir, 0755); err != nil {
		return "", errors.Wrap(err, "creating cache directory")
	}

	path := filepath.Join(f.CacheDir, filename)
	if !refresh {
		if _, err := os.Stat(path); err == nil {
			f.Logger.Debug().Str("path", path).Msg("Document already cached")
			return path, nil
		}
	}

	f.Logger.Info().Str("url", url).Msg("Downloading document")
	body, err := utils.RetryWithResult(ctx, utils.DefaultRetryConfig(), func() ([]byte, error) {
		return f.download(ctx, url)
	})
	if err != nil {
		return "", errors.Wrapf(errors.ErrDownloadFailed, "%s: %v", url, err)
	}

	tmp, err := os.CreateTemp(f.CacheDir, filename+".*")
	if err != nil {
		return "", errors.Wrap(err, "creating temp file")
	}
	if _, err := tmp.Write(body); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return "", errors.Wrap(err, "writing document")
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return "", errors.Wrap(err, "closing document")
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		os.Remove(tmp.Name())
		return "", errors.Wrap(err, "renaming document")
	}

	f.Logger.Info().Str("path", path).Int("bytes", len(body)).Msg("Document saved")
	return path, nil
}

func (f *Fetcher) download(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := f.Client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %s", resp.Status)
	}
	return io.ReadAll(resp.Body)
}
