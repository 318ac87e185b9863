// Static file store client
package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/slidex/internal/shared"
)

// FileStore downloads slide files from the static file store. Bodies are kept in an optional
// [BlobCache] keyed by path.
type FileStore struct {
	baseURL    string
	httpClient *http.Client
	cache      BlobCache
	logger     *log.Logger
}

// NewFileStore creates a store for files under baseURL. cache may be nil.
func NewFileStore(baseURL string, client *http.Client, cache BlobCache, logger *log.Logger) *FileStore {
	if client == nil {
		client = http.DefaultClient
	}
	if logger == nil {
		logger = log.Default()
	}
	return &FileStore{baseURL: baseURL, httpClient: client, cache: cache, logger: logger}
}

// URL returns {storageBase}{path}. A leading slash on path is dropped when the base already ends
// with one.
func (f *FileStore) URL(path string) string {
	if strings.HasSuffix(f.baseURL, "/") {
		path = strings.TrimPrefix(path, "/")
	}
	return f.baseURL + path
}

// Cached reports whether the body of path is in the blob cache.
func (f *FileStore) Cached(path string) bool {
	if f.cache == nil {
		return false
	}
	_, err := f.cache.Get(path)
	return err == nil
}

// Fetch returns the body of path, from the cache when present and from the network otherwise.
func (f *FileStore) Fetch(ctx context.Context, path string) ([]byte, error) {
	if f.cache != nil {
		data, err := f.cache.Get(path)
		if err == nil {
			return data, nil
		}
		if !errors.Is(err, shared.ErrCacheMiss) {
			f.logger.Warn("blob cache read failed", "path", path, "error", err)
		}
	}

	data, err := f.download(ctx, path)
	if err != nil {
		return nil, err
	}

	if f.cache != nil {
		if err := f.cache.Put(path, data); err != nil {
			f.logger.Warn("blob cache write failed", "path", path, "error", err)
		}
	}
	return data, nil
}

func (f *FileStore) download(ctx context.Context, path string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.URL(path), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", shared.ErrAPIRequest, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, fmt.Errorf("%w: %s", shared.ErrFileNotFound, path)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("%w: %s returned status %d", shared.ErrAPIRequest, path, resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return data, nil
}
