package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/desertthunder/slidex/internal/services"
	"github.com/desertthunder/slidex/internal/shared"
	"github.com/desertthunder/slidex/internal/tasks"
	"github.com/urfave/cli/v3"
)

// cachedSlideRow is one line of `cache list`.
type cachedSlideRow struct {
	Sequence    int    `json:"sequence"`
	ID          string `json:"id"`
	Title       string `json:"title"`
	Files       int    `json:"files"`
	CachedFiles int    `json:"cached_files"`
	Bytes       int64  `json:"bytes"`
	FetchedAt   string `json:"fetched_at"`
}

// cacheListing is the JSON shape of `cache list`.
type cacheListing struct {
	Slides    []cachedSlideRow `json:"slides"`
	BlobCount int              `json:"blob_count"`
	BlobBytes int64            `json:"blob_bytes"`
	BlobCache string           `json:"blob_cache"`
	Database  string           `json:"database"`
}

// CacheSync downloads slide metadata into the database and file bodies into the blob cache.
func (r *Runner) CacheSync(ctx context.Context, cmd *cli.Command) error {
	repo, cache, closeFn, err := r.openStore()
	if err != nil {
		return err
	}
	defer closeFn()

	files := services.NewFileStore(r.config.Storage.BaseURL, r.httpClient, cache, r.logger)
	engine := tasks.NewSyncEngine(r.provider(), repo, files, r.logger)

	workers := r.config.Cache.Workers
	if cmd.IsSet("workers") {
		workers = int(cmd.Int("workers"))
		if workers <= 0 {
			return fmt.Errorf("%w: workers must be positive", shared.ErrInvalidFlag)
		}
	}
	opts := tasks.SyncOpts{
		Workers:    workers,
		RateLimit:  r.config.Cache.RateLimit,
		SkipCached: cmd.Bool("skip-cached"),
	}

	ids := cmd.StringSlice("id")
	r.logger.Info("starting cache sync", "slides", len(ids), "workers", opts.Workers)

	// Create progress channel and goroutine to handle updates
	progressCh := make(chan tasks.ProgressUpdate, 50)
	done := make(chan struct{})
	go func() {
		defer close(done)
		for update := range progressCh {
			switch update.Phase {
			case tasks.FetchSlides, tasks.FetchSlide:
				r.writePlain("📥 %s\n", update.Message)
			case tasks.StoreSlide:
				r.writePlain("💾 %s\n", update.Message)
			case tasks.DownloadFiles:
				r.writePlain("   %s\n", update.Message)
			case tasks.SyncFailed:
				r.writePlain("✗ %s\n", update.Message)
			}
		}
	}()

	result, err := engine.Sync(ctx, progressCh, ids, opts)
	close(progressCh)
	<-done

	if err != nil && result == nil {
		return err
	}

	r.writePlain("\n")
	r.writePlainHeader("Sync Complete!")
	r.writePlain("Slides: %d/%d synced\n", result.Succeeded, result.Total)
	r.writePlain("Downloaded: %d bytes\n", result.Bytes)

	if result.Failed > 0 {
		r.writePlain("\nFailed to sync %s:\n", shared.Pluralize(result.Failed, "slide", "slides"))
		for _, res := range result.Results {
			if res.Error != nil {
				r.writePlain("  - %s: %v\n", res.SlideID, res.Error)
			}
		}
	}

	return err
}

// CacheList prints the cached slides with their file records and blob cache usage.
func (r *Runner) CacheList(ctx context.Context, cmd *cli.Command) error {
	repo, cache, closeFn, err := r.openStore()
	if err != nil {
		return err
	}
	defer closeFn()

	cached, err := repo.List(nil)
	if err != nil {
		return fmt.Errorf("failed to list cached slides: %w", err)
	}

	stats, err := cache.Stats()
	if err != nil {
		return fmt.Errorf("failed to read blob cache stats: %w", err)
	}

	listing := cacheListing{
		Slides:    make([]cachedSlideRow, 0, len(cached)),
		BlobCount: stats.Entries,
		BlobBytes: stats.Bytes,
		BlobCache: cache.Path(),
		Database:  r.config.Database.Path,
	}
	for _, c := range cached {
		records, err := repo.CachedFiles(c.SlideID())
		if err != nil {
			return err
		}
		row := cachedSlideRow{
			Sequence:    c.Sequence(),
			ID:          c.SlideID(),
			Title:       c.Title(),
			Files:       len(c.Files()),
			CachedFiles: len(records),
			FetchedAt:   c.FetchedAt().Format("2006-01-02 15:04:05"),
		}
		for _, f := range records {
			row.Bytes += f.Size
		}
		listing.Slides = append(listing.Slides, row)
	}

	if cmd.Bool("json") {
		return r.writeJSON(listing, true)
	}

	r.writePlainHeader("Cached slides")
	if len(listing.Slides) == 0 {
		r.writePlain("No cached slides\n")
	}
	for _, row := range listing.Slides {
		r.writePlain("#%-3d %-8s %s (%d/%d files, %d bytes) fetched %s\n",
			row.Sequence, row.ID, row.Title, row.CachedFiles, row.Files, row.Bytes, row.FetchedAt)
	}
	return r.writePlainln("Blob cache: %s, %d bytes", shared.Pluralize(stats.Entries, "entry", "entries"), stats.Bytes)
}

// CacheRemove drops one slide from the cache: its blobs, its record and its file records.
func (r *Runner) CacheRemove(ctx context.Context, cmd *cli.Command) error {
	id := strings.TrimSpace(cmd.String("id"))
	if id == "" {
		return fmt.Errorf("%w: slide ID is required", shared.ErrMissingArgument)
	}

	repo, cache, closeFn, err := r.openStore()
	if err != nil {
		return err
	}
	defer closeFn()

	records, err := repo.CachedFiles(id)
	if err != nil {
		return err
	}
	for _, f := range records {
		if err := cache.Delete(f.Path); err != nil {
			return fmt.Errorf("failed to delete blob %s: %w", f.Path, err)
		}
	}

	if err := repo.DeleteBySlideID(id); err != nil {
		return err
	}
	purged, err := repo.Purge()
	if err != nil {
		return err
	}

	r.logger.Info("removed cached slide", "id", id, "blobs", len(records), "purged", purged)
	return r.writePlain("✓ Removed slide %s (%s)\n", id, shared.Pluralize(len(records), "file", "files"))
}

// CacheClear removes every cached slide, file record and blob.
func (r *Runner) CacheClear(ctx context.Context, cmd *cli.Command) error {
	repo, cache, closeFn, err := r.openStore()
	if err != nil {
		return err
	}
	defer closeFn()

	if err := repo.Clear(); err != nil {
		return fmt.Errorf("failed to clear slide records: %w", err)
	}
	if err := cache.Clear(); err != nil {
		return fmt.Errorf("failed to clear blob cache: %w", err)
	}

	r.logger.Info("cache cleared", "database", r.config.Database.Path, "blobs", cache.Path())
	return r.writePlain("✓ Cache cleared\n")
}
