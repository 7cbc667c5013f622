package store

import (
	"database/sql"
	"fmt"
)

// AddPin pins a directory. Pinning it again is a no-op.
func AddPin(db *sql.DB, path string) error {
	query := `INSERT OR IGNORE INTO pins (path) VALUES (?)`
	_, err := db.Exec(query, path)
	if err != nil {
		return fmt.Errorf("failed to add pin: %w", err)
	}
	return nil
}

// RemovePin unpins a directory and reports whether it was pinned.
func RemovePin(db *sql.DB, path string) (bool, error) {
	res, err := db.Exec(`DELETE FROM pins WHERE path = ?`, path)
	if err != nil {
		return false, fmt.Errorf("failed to remove pin: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to remove pin: %w", err)
	}
	return n > 0, nil
}

// ListPins returns pinned directories in the order they were pinned.
func ListPins(db *sql.DB) ([]string, error) {
	rows, err := db.Query(`SELECT path FROM pins ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list pins: %w", err)
	}
	defer rows.Close()

	var paths []string
	for rows.Next() {
		var path string
		if err := rows.Scan(&path); err != nil {
			return nil, err
		}
		paths = append(paths, path)
	}
	return paths, rows.Err()
}
