// Slide REST API [SlideProvider] implementation
package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"strings"

	"github.com/desertthunder/slidex/internal/media"
	"github.com/desertthunder/slidex/internal/models"
	"github.com/desertthunder/slidex/internal/shared"
)

const defaultBaseURL string = "http://localhost:3000"

// SlideService implements [SlideProvider] against the slide REST API.
type SlideService struct {
	baseURL    string
	httpClient *http.Client
}

var _ SlideProvider = (*SlideService)(nil)

// NewSlideService creates a client for the API at baseURL. A nil client uses [http.DefaultClient].
func NewSlideService(baseURL string, client *http.Client) *SlideService {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	if client == nil {
		client = http.DefaultClient
	}

	return &SlideService{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: client,
	}
}

// BaseURL returns the API root without a trailing slash.
func (s *SlideService) BaseURL() string { return s.baseURL }

func (s *SlideService) doRequest(req *http.Request, result any) error {
	req.Header.Set("Accept", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %w", shared.ErrAPIRequest, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return shared.ErrSlideNotFound
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var errResp struct {
			Error   string `json:"error"`
			Message string `json:"message"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&errResp); err == nil {
			if msg := errResp.Error + errResp.Message; msg != "" {
				return fmt.Errorf("%w (status %d): %s", shared.ErrAPIRequest, resp.StatusCode, msg)
			}
		}
		return fmt.Errorf("%w: status %d", shared.ErrAPIRequest, resp.StatusCode)
	}

	if result == nil {
		return nil
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}
	if len(bytes.TrimSpace(body)) == 0 {
		return nil
	}
	if err := json.Unmarshal(body, result); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// ListSlides retrieves every slide.
//
// Calls GET /slide.
func (s *SlideService) ListSlides(ctx context.Context) ([]models.Slide, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+"/slide", nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	var slides []models.Slide
	if err := s.doRequest(req, &slides); err != nil {
		return nil, err
	}
	if slides == nil {
		slides = []models.Slide{}
	}
	return slides, nil
}

// GetSlide retrieves a slide with its files.
//
// Calls GET /slide/{id}.
func (s *SlideService) GetSlide(ctx context.Context, id string) (*models.Slide, error) {
	if strings.TrimSpace(id) == "" {
		return nil, fmt.Errorf("%w: slide id", shared.ErrMissingArgument)
	}

	endpoint := fmt.Sprintf("%s/slide/%s", s.baseURL, url.PathEscape(id))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	var slide models.Slide
	if err := s.doRequest(req, &slide); err != nil {
		if errors.Is(err, shared.ErrSlideNotFound) {
			return nil, fmt.Errorf("%w: %s", shared.ErrSlideNotFound, id)
		}
		return nil, err
	}
	return &slide, nil
}

// CreateSlide uploads a new slide as multipart form data: one file-N part per upload followed by
// the title field. Only image and video files are accepted.
//
// Calls POST /slide.
func (s *SlideService) CreateSlide(ctx context.Context, title string, uploads []models.Upload) (*models.Slide, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, fmt.Errorf("%w: title", shared.ErrMissingArgument)
	}
	if len(uploads) == 0 {
		return nil, fmt.Errorf("%w: at least one file", shared.ErrMissingArgument)
	}

	body, contentType, err := packUploads(title, uploads)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+"/slide", body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", contentType)

	var created models.Slide
	if err := s.doRequest(req, &created); err != nil {
		if errors.Is(err, shared.ErrSlideNotFound) {
			return nil, fmt.Errorf("%w: status 404", shared.ErrAPIRequest)
		}
		return nil, err
	}
	if created.Title == "" {
		created.Title = title
	}
	return &created, nil
}

func packUploads(title string, uploads []models.Upload) (*bytes.Buffer, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	for i, u := range uploads {
		if u.Body == nil {
			return nil, "", fmt.Errorf("%w: file %q has no content", shared.ErrInvalidInput, u.Name)
		}
		data, err := io.ReadAll(u.Body)
		if err != nil {
			return nil, "", fmt.Errorf("failed to read %s: %w", u.Name, err)
		}

		kind := media.KindOf(models.File{Path: u.Name, Type: u.DetectType(data)})
		if kind == media.Unknown {
			return nil, "", fmt.Errorf("%w: %s is neither an image nor a video (%s)", shared.ErrInvalidInput, u.Name, u.Type)
		}

		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file-%d"; filename="%s"`, i, escapeQuotes(u.Name)))
		h.Set("Content-Type", u.Type)
		part, err := w.CreatePart(h)
		if err != nil {
			return nil, "", fmt.Errorf("failed to create part: %w", err)
		}
		if _, err := part.Write(data); err != nil {
			return nil, "", fmt.Errorf("failed to write part: %w", err)
		}
	}

	if err := w.WriteField("title", title); err != nil {
		return nil, "", fmt.Errorf("failed to write title: %w", err)
	}
	if err := w.Close(); err != nil {
		return nil, "", fmt.Errorf("failed to finalize form: %w", err)
	}
	return &buf, w.FormDataContentType(), nil
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

func escapeQuotes(s string) string { return quoteEscaper.Replace(s) }
