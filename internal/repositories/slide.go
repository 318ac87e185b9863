package repositories

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/desertthunder/slidex/internal/models"
	"github.com/desertthunder/slidex/internal/shared"
)

const slideColumns = `id, sequence, slide_id, title, files_json, fetched_at, created_at, updated_at, deleted_at`

// SlideRepository implements models.Repository[*models.CachedSlide] for the local slide cache.
//
// Rows are keyed by a local UUID; slide_id is the API identifier and is unique across all rows,
// including soft-deleted ones, so a refetch revives the existing row.
type SlideRepository struct {
	db *sql.DB
}

var _ models.Repository[*models.CachedSlide] = (*SlideRepository)(nil)

// NewSlideRepository creates a new SlideRepository with the given database connection
func NewSlideRepository(db *sql.DB) *SlideRepository {
	return &SlideRepository{db: db}
}

// Create inserts a new cached slide with generated ID and sequence
func (r *SlideRepository) Create(slide *models.CachedSlide) error {
	if err := slide.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	sequence, err := NextSequence(r.db, "slides")
	if err != nil {
		return fmt.Errorf("failed to generate sequence: %w", err)
	}

	filesJSON, err := json.Marshal(slide.Files())
	if err != nil {
		return fmt.Errorf("failed to encode files: %w", err)
	}

	id := shared.GenerateID()
	query := `
		INSERT INTO slides (id, sequence, slide_id, title, files_json, file_count, fetched_at, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err = r.db.Exec(query,
		id,
		sequence,
		slide.SlideID(),
		slide.Title(),
		string(filesJSON),
		len(slide.Files()),
		slide.FetchedAt(),
		slide.CreatedAt(),
		slide.UpdatedAt(),
	)
	if err != nil {
		return fmt.Errorf("failed to insert slide: %w", err)
	}

	slide.SetID(id)
	slide.SetSequence(sequence)
	return nil
}

// Get retrieves a cached slide by local ID, excluding soft-deleted rows
func (r *SlideRepository) Get(id string) (*models.CachedSlide, error) {
	query := `SELECT ` + slideColumns + ` FROM slides WHERE id = ? AND deleted_at IS NULL`
	return r.scanOne(r.db.QueryRow(query, id), id)
}

// GetBySlideID retrieves a cached slide by its API identifier, excluding soft-deleted rows
func (r *SlideRepository) GetBySlideID(slideID string) (*models.CachedSlide, error) {
	query := `SELECT ` + slideColumns + ` FROM slides WHERE slide_id = ? AND deleted_at IS NULL`
	return r.scanOne(r.db.QueryRow(query, slideID), slideID)
}

// Update rewrites title, files and fetch time of an existing cached slide
func (r *SlideRepository) Update(slide *models.CachedSlide) error {
	if err := slide.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	filesJSON, err := json.Marshal(slide.Files())
	if err != nil {
		return fmt.Errorf("failed to encode files: %w", err)
	}

	now := time.Now()
	slide.SetUpdatedAt(now)

	query := `
		UPDATE slides
		SET title = ?, files_json = ?, file_count = ?, fetched_at = ?, updated_at = ?
		WHERE id = ? AND deleted_at IS NULL
	`

	result, err := r.db.Exec(query,
		slide.Title(),
		string(filesJSON),
		len(slide.Files()),
		slide.FetchedAt(),
		now,
		slide.ID(),
	)
	if err != nil {
		return fmt.Errorf("failed to update slide: %w", err)
	}

	return expectAffected(result, "slide", slide.ID())
}

// Upsert stores a freshly fetched slide, reviving a soft-deleted row for the same API id.
func (r *SlideRepository) Upsert(slide models.Slide) (*models.CachedSlide, error) {
	var (
		id       string
		sequence int
	)
	err := r.db.QueryRow(`SELECT id, sequence FROM slides WHERE slide_id = ?`, slide.ID.String()).Scan(&id, &sequence)

	switch {
	case errors.Is(err, sql.ErrNoRows):
		cached := models.NewCachedSlide(0, slide)
		if err := r.Create(cached); err != nil {
			return nil, err
		}
		return cached, nil
	case err != nil:
		return nil, fmt.Errorf("failed to look up slide: %w", err)
	}

	if _, err := r.db.Exec(`UPDATE slides SET deleted_at = NULL WHERE id = ?`, id); err != nil {
		return nil, fmt.Errorf("failed to restore slide: %w", err)
	}

	cached := models.NewCachedSlide(sequence, slide)
	cached.SetID(id)
	if err := r.Update(cached); err != nil {
		return nil, err
	}
	return r.Get(id)
}

// Delete soft-deletes a cached slide by local ID
func (r *SlideRepository) Delete(id string) error {
	result, err := r.db.Exec(`UPDATE slides SET deleted_at = ? WHERE id = ? AND deleted_at IS NULL`, time.Now(), id)
	if err != nil {
		return fmt.Errorf("failed to delete slide: %w", err)
	}
	return expectAffected(result, "slide", id)
}

// DeleteBySlideID soft-deletes a cached slide by its API identifier
func (r *SlideRepository) DeleteBySlideID(slideID string) error {
	result, err := r.db.Exec(`UPDATE slides SET deleted_at = ? WHERE slide_id = ? AND deleted_at IS NULL`, time.Now(), slideID)
	if err != nil {
		return fmt.Errorf("failed to delete slide: %w", err)
	}
	return expectAffected(result, "slide", slideID)
}

// List retrieves cached slides ordered by sequence, excluding soft-deleted rows.
//
// Supported criteria: "title" (substring match) and "min_files" (int).
func (r *SlideRepository) List(criteria map[string]any) ([]*models.CachedSlide, error) {
	query := `SELECT ` + slideColumns + ` FROM slides WHERE deleted_at IS NULL`
	args := []any{}

	if title, ok := criteria["title"].(string); ok && title != "" {
		query += " AND title LIKE ?"
		args = append(args, "%"+title+"%")
	}

	if minFiles, ok := criteria["min_files"].(int); ok && minFiles > 0 {
		query += " AND file_count >= ?"
		args = append(args, minFiles)
	}

	query += " ORDER BY sequence ASC"

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query slides: %w", err)
	}
	defer rows.Close()

	var slides []*models.CachedSlide
	for rows.Next() {
		slide, err := scanSlide(rows)
		if err != nil {
			return nil, err
		}
		slides = append(slides, slide)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return slides, nil
}

// Purge permanently removes soft-deleted slides and their file records. Returns the number of slides removed.
func (r *SlideRepository) Purge() (int64, error) {
	tx, err := r.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM slide_files WHERE slide_id IN (SELECT slide_id FROM slides WHERE deleted_at IS NOT NULL)`); err != nil {
		return 0, fmt.Errorf("failed to purge file records: %w", err)
	}

	result, err := tx.Exec(`DELETE FROM slides WHERE deleted_at IS NOT NULL`)
	if err != nil {
		return 0, fmt.Errorf("failed to purge slides: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get affected rows: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit purge: %w", err)
	}
	return n, nil
}

// Clear removes every slide and file record.
func (r *SlideRepository) Clear() error {
	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	for _, stmt := range []string{`DELETE FROM slide_files`, `DELETE FROM slides`} {
		if _, err := tx.Exec(stmt); err != nil {
			return fmt.Errorf("failed to clear cache tables: %w", err)
		}
	}
	return tx.Commit()
}

// MarkFileCached records that the body of one slide file is in the blob cache.
func (r *SlideRepository) MarkFileCached(f models.CachedFile) error {
	if f.SlideID == "" || f.Path == "" {
		return fmt.Errorf("%w: slide id and path are required", shared.ErrInvalidInput)
	}
	if f.CachedAt.IsZero() {
		f.CachedAt = time.Now()
	}

	query := `
		INSERT INTO slide_files (slide_id, position, path, mime_type, size_bytes, cached_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT (slide_id, position) DO UPDATE SET
			path = excluded.path,
			mime_type = excluded.mime_type,
			size_bytes = excluded.size_bytes,
			cached_at = excluded.cached_at
	`

	if _, err := r.db.Exec(query, f.SlideID, f.Position, f.Path, f.MimeType, f.Size, f.CachedAt); err != nil {
		return fmt.Errorf("failed to record cached file: %w", err)
	}
	return nil
}

// CachedFiles lists the file records of a slide ordered by position.
func (r *SlideRepository) CachedFiles(slideID string) ([]models.CachedFile, error) {
	rows, err := r.db.Query(`
		SELECT slide_id, position, path, mime_type, size_bytes, cached_at
		FROM slide_files
		WHERE slide_id = ?
		ORDER BY position ASC
	`, slideID)
	if err != nil {
		return nil, fmt.Errorf("failed to query cached files: %w", err)
	}
	defer rows.Close()

	var files []models.CachedFile
	for rows.Next() {
		var f models.CachedFile
		if err := rows.Scan(&f.SlideID, &f.Position, &f.Path, &f.MimeType, &f.Size, &f.CachedAt); err != nil {
			return nil, fmt.Errorf("failed to scan cached file: %w", err)
		}
		files = append(files, f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}
	return files, nil
}

// scanOne scans a single row into a [models.CachedSlide]
func (r *SlideRepository) scanOne(row *sql.Row, key string) (*models.CachedSlide, error) {
	slide, err := scanSlide(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", shared.ErrSlideNotFound, key)
	}
	return slide, err
}

type scanner interface {
	Scan(dest ...any) error
}

// scanSlide scans the columns of [slideColumns] into a [models.CachedSlide]
func scanSlide(s scanner) (*models.CachedSlide, error) {
	var (
		id        string
		sequence  int
		slideID   string
		title     string
		filesJSON string
		fetchedAt time.Time
		createdAt time.Time
		updatedAt time.Time
		deletedAt sql.NullTime
	)

	err := s.Scan(&id, &sequence, &slideID, &title, &filesJSON, &fetchedAt, &createdAt, &updatedAt, &deletedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan slide: %w", err)
	}

	var files []models.File
	if err := json.Unmarshal([]byte(filesJSON), &files); err != nil {
		return nil, fmt.Errorf("failed to decode files of slide %s: %w", slideID, err)
	}

	var deleted *time.Time
	if deletedAt.Valid {
		deleted = &deletedAt.Time
	}

	return models.RestoreCachedSlide(id, sequence, slideID, title, files, fetchedAt, createdAt, updatedAt, deleted), nil
}

func expectAffected(result sql.Result, entity, key string) error {
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("%s not found or already deleted: %s", entity, key)
	}
	return nil
}
