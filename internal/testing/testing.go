// package testing contains shared testing utilities
package testing

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"io"
	"net/http"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/desertthunder/slidex/internal/models"
	"github.com/desertthunder/slidex/internal/shared"
)

// MockSlideProvider is an in-memory test double for the slide REST API.
type MockSlideProvider struct {
	mu      sync.Mutex
	Slides  []models.Slide
	Err     error
	Created []string // titles passed to CreateSlide
	Calls   int
}

func NewMockSlideProvider(slides ...models.Slide) *MockSlideProvider {
	return &MockSlideProvider{Slides: slides}
}

func (m *MockSlideProvider) ListSlides(ctx context.Context) ([]models.Slide, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Calls++
	if m.Err != nil {
		return nil, m.Err
	}
	out := make([]models.Slide, len(m.Slides))
	copy(out, m.Slides)
	return out, nil
}

func (m *MockSlideProvider) GetSlide(ctx context.Context, id string) (*models.Slide, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Calls++
	if m.Err != nil {
		return nil, m.Err
	}
	for _, s := range m.Slides {
		if s.ID.String() == id {
			return &s, nil
		}
	}
	return nil, shared.ErrSlideNotFound
}

func (m *MockSlideProvider) CreateSlide(ctx context.Context, title string, uploads []models.Upload) (*models.Slide, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Calls++
	if m.Err != nil {
		return nil, m.Err
	}
	m.Created = append(m.Created, title)
	s := models.Slide{ID: models.ID(shared.GenerateID()), Title: title}
	for _, u := range uploads {
		s.Files = append(s.Files, models.File{Path: u.Name, Type: u.Type})
	}
	m.Slides = append(m.Slides, s)
	return &s, nil
}

// FakeClock records timers instead of running them. Fire advances them by hand.
type FakeClock struct {
	mu     sync.Mutex
	timers []*FakeTimer
}

// FakeTimer is one timer created through [FakeClock.Every].
type FakeTimer struct {
	Period  time.Duration
	fn      func()
	mu      sync.Mutex
	stopped bool
	stops   int
}

func (c *FakeClock) Every(d time.Duration, fn func()) func() {
	t := &FakeTimer{Period: d, fn: fn}
	c.mu.Lock()
	c.timers = append(c.timers, t)
	c.mu.Unlock()

	return func() {
		t.mu.Lock()
		defer t.mu.Unlock()
		t.stopped = true
		t.stops++
	}
}

// Timers returns every timer ever created.
func (c *FakeClock) Timers() []*FakeTimer {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]*FakeTimer(nil), c.timers...)
}

// Active returns the timers that have not been stopped.
func (c *FakeClock) Active() []*FakeTimer {
	var active []*FakeTimer
	for _, t := range c.Timers() {
		if !t.Stopped() {
			active = append(active, t)
		}
	}
	return active
}

// Fire ticks every active timer once.
func (c *FakeClock) Fire() {
	for _, t := range c.Active() {
		t.Fire()
	}
}

// Fire runs the callback, even for a stopped timer, to simulate a tick already in flight.
func (t *FakeTimer) Fire() { t.fn() }

func (t *FakeTimer) Stopped() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.stopped
}

// Stops reports how many times the stop func was called.
func (t *FakeTimer) Stops() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.stops
}

// FakeFullscreen records fullscreen requests and optionally fails them.
type FakeFullscreen struct {
	Requests int
	Err      error
}

func (f *FakeFullscreen) RequestFullscreen() error {
	f.Requests++
	return f.Err
}

// PNG encodes a w x h image filled with c.
func PNG(t *testing.T, w, h int, c color.NRGBA) []byte {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := range h {
		for x := range w {
			img.SetNRGBA(x, y, c)
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("Failed to encode png: %v", err)
	}
	return buf.Bytes()
}

// SampleSlide returns a slide with two images and a video.
func SampleSlide() models.Slide {
	return models.Slide{
		ID:    "42",
		Title: "Holiday",
		Files: []models.File{
			{Path: "beach.png", Type: "image/png"},
			{Path: "sunset.jpg", Type: "image/jpeg"},
			{Path: "waves.mp4", Type: "video/mp4"},
		},
	}
}

// FWriter always returns an error on Write
type FWriter struct{}

func (f *FWriter) Write(p []byte) (n int, err error) {
	return 0, errors.New("write failed")
}

// LimitedWriter fails after a certain number of writes
type LimitedWriter struct {
	maxWrites int
	written   int
	target    io.Writer
}

func (l *LimitedWriter) Write(p []byte) (n int, err error) {
	if l.written >= l.maxWrites {
		return 0, errors.New("write limit exceeded")
	}
	l.written++
	return l.target.Write(p)
}

func NewLimitedWriter(maxWrites, written int, target io.Writer) LimitedWriter {
	return LimitedWriter{maxWrites: maxWrites, written: written, target: target}
}

// MockRoundTripper allows custom HTTP responses for testing
type MockRoundTripper struct {
	response *http.Response
	err      error
}

func NewMockRoundTripper(r *http.Response, e error) *MockRoundTripper {
	return &MockRoundTripper{response: r, err: e}
}

func (m *MockRoundTripper) RoundTrip(*http.Request) (*http.Response, error) {
	return m.response, m.err
}

// FCloser simulates a failure when reading response body
type FCloser struct{}

func (f *FCloser) Read(p []byte) (n int, err error) {
	return 0, errors.New("read failed")
}

func (f *FCloser) Close() error {
	return nil
}

func MustGetwd(t *testing.T) string {
	t.Helper()
	wd, err := os.Getwd()
	if err != nil {
		t.Fatalf("Failed to get working directory: %v", err)
	}
	return wd
}

func MustChdir(t *testing.T, dir string) {
	t.Helper()
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("Failed to change directory to %s: %v", dir, err)
	}
}

func AssertFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Errorf("File does not exist: %s", path)
	}
}

func MustReadFile(t *testing.T, path string) string {
	t.Helper()
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read file %s: %v", path, err)
	}
	return string(content)
}
