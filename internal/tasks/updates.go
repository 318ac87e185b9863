package tasks

import (
	"fmt"

	"github.com/desertthunder/slidex/internal/models"
)

// ProgressUpdate represents a progress event during a long-running operation.
//
// Used to send real-time updates to the CLI or UI layer for display.
type ProgressUpdate struct {
	Phase   Phase  // Operation phase
	Step    int    // Current step number within phase
	Total   int    // Total steps in this phase
	Message string // Human-readable message for display
	Data    any    // Optional phase-specific data for advanced UIs
}

// Operation phase enumeration
type Phase int

const (
	FetchSlides Phase = iota
	FetchSlide
	StoreSlide
	DownloadFiles
	SyncCompleted
	SyncFailed
)

func (p Phase) String() string {
	switch p {
	case FetchSlides:
		return "fetch_slides"
	case FetchSlide:
		return "fetch_slide"
	case StoreSlide:
		return "store_slide"
	case DownloadFiles:
		return "download_files"
	case SyncCompleted:
		return "sync_completed"
	case SyncFailed:
		return "sync_failed"
	default:
		return ""
	}
}

func fetchingSlidesUpdate() ProgressUpdate {
	return ProgressUpdate{
		Phase:   FetchSlides,
		Step:    1,
		Total:   1,
		Message: "Fetching slide list...",
	}
}

func foundSlidesUpdate(total int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   FetchSlides,
		Step:    1,
		Total:   1,
		Message: fmt.Sprintf("Found %d slides", total),
		Data:    total,
	}
}

func fetchSlideUpdate(step, total int, id string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   FetchSlide,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] Fetching slide %s...", step, total, id),
	}
}

func storeSlideUpdate(step, total int, slide *models.CachedSlide) ProgressUpdate {
	return ProgressUpdate{
		Phase:   StoreSlide,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] Cached %s (#%d)", step, total, slide.Title(), slide.Sequence()),
		Data:    slide,
	}
}

func downloadFileUpdate(step, total int, title string, file models.File) ProgressUpdate {
	return ProgressUpdate{
		Phase:   DownloadFiles,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("%s: [%d/%d] %s", title, step, total, file.Name()),
	}
}

func syncCompletedUpdate(step, total int, res SlideSyncResult) ProgressUpdate {
	return ProgressUpdate{
		Phase:   SyncCompleted,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] ✓ %s (%d files, %d skipped)", step, total, res.Title, res.Downloaded, res.Skipped),
		Data:    res,
	}
}

func syncFailedUpdate(step, total int, res SlideSyncResult) ProgressUpdate {
	return ProgressUpdate{
		Phase:   SyncFailed,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] ✗ %s: %v", step, total, res.label(), res.Error),
		Data:    res,
	}
}
