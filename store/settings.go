package store

import (
	"database/sql"
	"errors"
	"fmt"
)

// GetSetting retrieves a setting value by key. ok is false when the key was
// never set; an empty value is a valid override.
func GetSetting(db *sql.DB, key string) (value string, ok bool, err error) {
	query := `SELECT value FROM settings WHERE key = ?`
	err = db.QueryRow(query, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to get setting %q: %w", key, err)
	}
	return value, true, nil
}

// SetSetting sets a setting value by key.
func SetSetting(db *sql.DB, key, value string) error {
	query := `
		INSERT INTO settings (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`
	_, err := db.Exec(query, key, value)
	if err != nil {
		return fmt.Errorf("failed to set setting %q: %w", key, err)
	}
	return nil
}

// DeleteSetting removes a setting. Removing a missing key is not an error.
func DeleteSetting(db *sql.DB, key string) error {
	if _, err := db.Exec(`DELETE FROM settings WHERE key = ?`, key); err != nil {
		return fmt.Errorf("failed to delete setting %q: %w", key, err)
	}
	return nil
}

// AllSettings returns every stored setting.
func AllSettings(db *sql.DB) (map[string]string, error) {
	rows, err := db.Query(`SELECT key, value FROM settings ORDER BY key`)
	if err != nil {
		return nil, fmt.Errorf("failed to list settings: %w", err)
	}
	defer rows.Close()

	settings := make(map[string]string)
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return nil, err
		}
		settings[key] = value
	}
	return settings, rows.Err()
}
