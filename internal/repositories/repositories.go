package repositories

import (
	"database/sql"
	"errors"
	"fmt"
)

// NextSequence advances the counter in {table}_sequence and returns the new value.
//
// Sequence numbers order cached slides by first fetch. They are shown as "#N" in cache listings.
func NextSequence(db *sql.DB, table string) (int, error) {
	query := fmt.Sprintf("UPDATE %s_sequence SET value = value + 1 WHERE id = 1 RETURNING value", table)

	var sequence int
	if err := db.QueryRow(query).Scan(&sequence); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, fmt.Errorf("sequence for %s is not seeded", table)
		}
		return 0, fmt.Errorf("failed to advance %s sequence: %w", table, err)
	}
	return sequence, nil
}
