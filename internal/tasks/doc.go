// Package tasks prefetches slides and their files into the local cache with real-time progress reporting.
//
// # Core Operations
//
// [SyncEngine.Sync] runs a cache sync:
//   - Lists every slide, or fetches each requested id
//   - Upserts each slide into the [SlideStore] (repositories.SlideRepository)
//   - Downloads each file through the [FileFetcher] (services.FileStore), which fills the blob cache
//   - Records every downloaded file with [SlideStore.MarkFileCached]
//
// Slides are processed by a bounded worker pool. All network requests (listing, slide fetches and
// file downloads) share one rate limiter. A failing slide is reported in its [SlideSyncResult] and
// never aborts the run; results come back in request order.
//
// # Progress Reporting
//
// The [ProgressUpdate] struct contains phase, step counters, messages, and optional data for advanced UI rendering.
// Updates use select with default to prevent blocking, so a slow reader drops updates rather than stalling the sync.
package tasks
