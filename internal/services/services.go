// package services defines interface SlideProvider for the slide REST API and the static file store
package services

import (
	"context"
	"net/http"
	"time"

	"github.com/desertthunder/slidex/internal/models"
)

// SlideProvider defines the operations of the slide REST API.
type SlideProvider interface {
	// ListSlides retrieves every slide (GET /slide).
	ListSlides(ctx context.Context) ([]models.Slide, error)

	// GetSlide retrieves a single slide by ID (GET /slide/{id}).
	// Returns [shared.ErrSlideNotFound] when the API answers 404.
	GetSlide(ctx context.Context, id string) (*models.Slide, error)

	// CreateSlide uploads files under a title as a new slide (multipart POST /slide).
	CreateSlide(ctx context.Context, title string, uploads []models.Upload) (*models.Slide, error)
}

// BlobCache stores downloaded file bodies by key.
// Get returns [shared.ErrCacheMiss] when the key is absent.
type BlobCache interface {
	Get(key string) ([]byte, error)
	Put(key string, data []byte) error
}

// NewHTTPClient returns a client with the given request timeout.
func NewHTTPClient(timeout time.Duration) *http.Client {
	return &http.Client{Timeout: timeout}
}
