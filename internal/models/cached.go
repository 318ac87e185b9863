package models

import (
	"fmt"
	"time"
)

// CachedSlide is a [Slide] fetched from the API and stored in the local database.
//
// The local id is a UUID; SlideID holds the API's identifier and is unique among live rows.
type CachedSlide struct {
	id        string
	sequence  int
	slideID   string
	title     string
	files     []File
	fetchedAt time.Time
	createdAt time.Time
	updatedAt time.Time
	deletedAt *time.Time
}

var _ Model = (*CachedSlide)(nil)

// NewCachedSlide creates a CachedSlide for slide, fetched now.
func NewCachedSlide(sequence int, slide Slide) *CachedSlide {
	now := time.Now()
	files := make([]File, len(slide.Files))
	copy(files, slide.Files)

	return &CachedSlide{
		sequence:  sequence,
		slideID:   slide.ID.String(),
		title:     slide.Title,
		files:     files,
		fetchedAt: now,
		createdAt: now,
		updatedAt: now,
	}
}

// RestoreCachedSlide rebuilds a CachedSlide from stored columns.
func RestoreCachedSlide(
	id string, sequence int, slideID, title string, files []File,
	fetchedAt, createdAt, updatedAt time.Time, deletedAt *time.Time,
) *CachedSlide {
	return &CachedSlide{
		id:        id,
		sequence:  sequence,
		slideID:   slideID,
		title:     title,
		files:     files,
		fetchedAt: fetchedAt,
		createdAt: createdAt,
		updatedAt: updatedAt,
		deletedAt: deletedAt,
	}
}

func (c *CachedSlide) ID() string               { return c.id }
func (c *CachedSlide) SetID(id string)          { c.id = id }
func (c *CachedSlide) Sequence() int            { return c.sequence }
func (c *CachedSlide) SetSequence(seq int)      { c.sequence = seq }
func (c *CachedSlide) SlideID() string          { return c.slideID }
func (c *CachedSlide) Title() string            { return c.title }
func (c *CachedSlide) Files() []File            { return c.files }
func (c *CachedSlide) FetchedAt() time.Time     { return c.fetchedAt }
func (c *CachedSlide) CreatedAt() time.Time     { return c.createdAt }
func (c *CachedSlide) UpdatedAt() time.Time     { return c.updatedAt }
func (c *CachedSlide) SetUpdatedAt(t time.Time) { c.updatedAt = t }
func (c *CachedSlide) DeletedAt() *time.Time    { return c.deletedAt }

// Refresh replaces the cached title and files with a newer fetch of the same slide.
func (c *CachedSlide) Refresh(slide Slide) {
	files := make([]File, len(slide.Files))
	copy(files, slide.Files)
	c.title = slide.Title
	c.files = files
	c.fetchedAt = time.Now()
}

// Slide converts the cached row back into the API shape.
func (c *CachedSlide) Slide() Slide {
	files := make([]File, len(c.files))
	copy(files, c.files)
	return Slide{ID: ID(c.slideID), Title: c.title, Files: files}
}

// Validate checks that the cached slide can be stored.
func (c *CachedSlide) Validate() error {
	if c.slideID == "" {
		return fmt.Errorf("slide id is required")
	}
	for i, f := range c.files {
		if f.Path == "" {
			return fmt.Errorf("file %d has an empty path", i)
		}
	}
	return nil
}

// CachedFile records that the body of one slide file is held in the blob cache.
type CachedFile struct {
	SlideID  string
	Position int
	Path     string
	MimeType string
	Size     int64
	CachedAt time.Time
}
