// Package repositories implements SQLite persistence for the local slide cache.
//
// [SlideRepository] implements models.Repository[*models.CachedSlide] and adds the operations the
// sync engine and the offline player need: upsert by API id, per-file cache records, purge of
// soft-deleted rows and a full clear.
//
// All queries exclude soft-deleted rows (deleted_at IS NOT NULL) unless stated otherwise.
//
// Sequence numbers provide stable, human-readable ordering (e.g., slide #3) independent of UUIDs and creation timestamps.
// The [NextSequence] function atomically increments per-table sequence counters in dedicated sequence tables.
package repositories
