package tasks

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/slidex/internal/models"
	"github.com/desertthunder/slidex/internal/services"
	"github.com/desertthunder/slidex/internal/shared"
	"golang.org/x/time/rate"
)

const (
	defaultWorkers   = 4
	maxWorkers       = 10
	defaultRateLimit = 5.0
)

// SlideStore persists fetched slides and the file records of the blob cache.
type SlideStore interface {
	Upsert(slide models.Slide) (*models.CachedSlide, error)
	MarkFileCached(f models.CachedFile) error
}

// FileFetcher downloads file bodies, filling the blob cache as a side effect.
type FileFetcher interface {
	Fetch(ctx context.Context, path string) ([]byte, error)
	Cached(path string) bool
}

// SyncOpts contains configuration for a cache sync.
type SyncOpts struct {
	Workers    int     // Concurrent slide workers (default: 4, max: 10)
	RateLimit  float64 // Network requests per second (default: 5)
	SkipCached bool    // Skip files already in the blob cache
}

// SlideSyncResult is the outcome for one slide.
type SlideSyncResult struct {
	Index      int    // Position in the requested order
	SlideID    string // API identifier
	Title      string
	Files      int   // Files listed on the slide
	Downloaded int   // Files fetched (from network or cache) and recorded
	Skipped    int   // Files already cached and skipped
	Bytes      int64 // Bytes fetched
	Success    bool
	Error      error
}

func (r SlideSyncResult) label() string {
	if r.Title != "" {
		return r.Title
	}
	return fmt.Sprintf("Unknown (%s)", r.SlideID)
}

// SyncResult contains the per-slide outcomes of a sync, in request order.
type SyncResult struct {
	Total     int
	Succeeded int
	Failed    int
	Bytes     int64
	Results   []SlideSyncResult
}

// SyncEngine prefetches slides and their files into the local cache.
type SyncEngine struct {
	provider services.SlideProvider
	store    SlideStore
	files    FileFetcher
	logger   *log.Logger
}

// NewSyncEngine creates an engine. files may be nil to cache metadata only.
func NewSyncEngine(provider services.SlideProvider, store SlideStore, files FileFetcher, logger *log.Logger) *SyncEngine {
	if logger == nil {
		logger = log.Default()
	}
	return &SyncEngine{provider: provider, store: store, files: files, logger: logger}
}

// sendProgress sends a progress update through the channel without blocking.
func (e *SyncEngine) sendProgress(progress chan<- ProgressUpdate, update ProgressUpdate) {
	if progress == nil {
		return
	}
	select {
	case progress <- update:
	default:
	}
}

type syncJob struct {
	index int
	slide models.Slide
}

// Sync fetches the slides named by ids (every slide when ids is empty), stores them and downloads
// their files with a rate-limited worker pool. A failing slide never aborts the run; its error is
// recorded in its [SlideSyncResult].
func (e *SyncEngine) Sync(ctx context.Context, prog chan<- ProgressUpdate, ids []string, opts SyncOpts) (*SyncResult, error) {
	if e.provider == nil {
		return nil, fmt.Errorf("%w: slide provider not initialized", shared.ErrServiceUnavailable)
	}
	if e.store == nil {
		return nil, fmt.Errorf("%w: slide store not initialized", shared.ErrServiceUnavailable)
	}

	if opts.Workers <= 0 {
		opts.Workers = defaultWorkers
	}
	if opts.Workers > maxWorkers {
		opts.Workers = maxWorkers
	}
	if opts.RateLimit <= 0 {
		opts.RateLimit = defaultRateLimit
	}

	limiter := rate.NewLimiter(rate.Limit(opts.RateLimit), 1)

	var listed []models.Slide
	if len(ids) == 0 {
		e.sendProgress(prog, fetchingSlidesUpdate())
		if err := limiter.Wait(ctx); err != nil {
			return nil, err
		}
		slides, err := e.provider.ListSlides(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to list slides: %w", err)
		}
		listed = slides
		e.sendProgress(prog, foundSlidesUpdate(len(slides)))
	}

	total := len(ids)
	if listed != nil {
		total = len(listed)
	}

	result := &SyncResult{Total: total, Results: make([]SlideSyncResult, 0, total)}

	jobs := make(chan syncJob, total)
	results := make(chan SlideSyncResult, total)

	var wg sync.WaitGroup
	for range opts.Workers {
		wg.Add(1)
		go e.syncWorker(ctx, &wg, limiter, jobs, results, opts, total, prog)
	}

	wg.Add(1)
	go func() {
		defer wg.Done()
		defer close(jobs)

		if listed != nil {
			for i, s := range listed {
				select {
				case <-ctx.Done():
					return
				case jobs <- syncJob{index: i, slide: s}:
				}
			}
			return
		}

		for i, id := range ids {
			if err := limiter.Wait(ctx); err != nil {
				return
			}
			e.sendProgress(prog, fetchSlideUpdate(i+1, total, id))

			slide, err := e.provider.GetSlide(ctx, id)
			if err != nil {
				results <- SlideSyncResult{
					Index:   i,
					SlideID: id,
					Error:   fmt.Errorf("failed to fetch slide: %w", err),
				}
				continue
			}
			jobs <- syncJob{index: i, slide: *slide}
		}
	}()

	go func() {
		wg.Wait()
		close(results)
	}()

	// results is closed once the producer and every worker are done; fetch failures go straight to it.
	completed := 0
	for res := range results {
		completed++
		result.Results = append(result.Results, res)
		result.Bytes += res.Bytes

		if res.Success {
			result.Succeeded++
			e.sendProgress(prog, syncCompletedUpdate(completed, total, res))
		} else {
			result.Failed++
			e.sendProgress(prog, syncFailedUpdate(completed, total, res))
			e.logger.Warn("slide sync failed", "slide", res.SlideID, "error", res.Error)
		}
	}

	sort.Slice(result.Results, func(i, j int) bool { return result.Results[i].Index < result.Results[j].Index })

	if err := ctx.Err(); err != nil {
		return result, err
	}
	return result, nil
}

// syncWorker is a worker goroutine that stores slides from the jobs channel and downloads their files.
func (e *SyncEngine) syncWorker(
	ctx context.Context,
	wg *sync.WaitGroup,
	limiter *rate.Limiter,
	jobs <-chan syncJob,
	results chan<- SlideSyncResult,
	opts SyncOpts,
	total int,
	prog chan<- ProgressUpdate,
) {
	defer wg.Done()

	for job := range jobs {
		select {
		case <-ctx.Done():
			return
		default:
		}

		results <- e.syncSlide(ctx, limiter, job, opts, total, prog)
	}
}

// syncSlide stores one slide and fetches each of its files in order.
func (e *SyncEngine) syncSlide(
	ctx context.Context,
	limiter *rate.Limiter,
	job syncJob,
	opts SyncOpts,
	total int,
	prog chan<- ProgressUpdate,
) SlideSyncResult {
	slide := job.slide
	res := SlideSyncResult{
		Index:   job.index,
		SlideID: slide.ID.String(),
		Title:   slide.Title,
		Files:   slide.Len(),
	}

	cached, err := e.store.Upsert(slide)
	if err != nil {
		res.Error = fmt.Errorf("failed to store slide: %w", err)
		return res
	}
	e.sendProgress(prog, storeSlideUpdate(job.index+1, total, cached))

	if e.files == nil {
		res.Success = true
		return res
	}

	for pos, f := range slide.Files {
		if opts.SkipCached && e.files.Cached(f.Path) {
			res.Skipped++
			continue
		}

		if err := limiter.Wait(ctx); err != nil {
			res.Error = err
			return res
		}

		data, err := e.files.Fetch(ctx, f.Path)
		if err != nil {
			res.Error = fmt.Errorf("failed to download %s: %w", f.Path, err)
			return res
		}

		record := models.CachedFile{
			SlideID:  res.SlideID,
			Position: pos,
			Path:     f.Path,
			MimeType: f.Type,
			Size:     int64(len(data)),
		}
		if err := e.store.MarkFileCached(record); err != nil {
			res.Error = fmt.Errorf("failed to record %s: %w", f.Path, err)
			return res
		}

		res.Downloaded++
		res.Bytes += record.Size
		e.sendProgress(prog, downloadFileUpdate(pos+1, slide.Len(), slide.Title, f))
	}

	res.Success = true
	return res
}
