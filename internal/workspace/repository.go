package workspace

import (
	"database/sql"
	"encoding/json"
	"fmt"
)

// QuoteRepo provides state read/write operations against a quote SQLite
// file.
type QuoteRepo struct {
	db       *sql.DB
	filePath string
}

// NewRepo wraps an open database connection.
func NewRepo(db *sql.DB, filePath string) *QuoteRepo {
	return &QuoteRepo{db: db, filePath: filePath}
}

// FilePath returns the path to the .quote file.
func (r *QuoteRepo) FilePath() string { return r.filePath }

// Close closes the underlying database connection.
func (r *QuoteRepo) Close() error { return r.db.Close() }

// ---------------------------------------------------------------------------
// Settings
// ---------------------------------------------------------------------------

// GetSetting returns a single quote setting value. Returns "" if not found.
func (r *QuoteRepo) GetSetting(key string) (string, error) {
	var value string
	err := r.db.QueryRow("SELECT value FROM quote_settings WHERE key = ?", key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", nil
	}
	return value, err
}

// SetSetting upserts a quote setting key-value pair.
func (r *QuoteRepo) SetSetting(key, value string) error {
	_, err := r.db.Exec(
		"INSERT INTO quote_settings (key, value) VALUES (?, ?) ON CONFLICT(key) DO UPDATE SET value = excluded.value",
		key, value,
	)
	return err
}

// GetAllSettings returns all quote settings.
func (r *QuoteRepo) GetAllSettings() (QuoteSettings, error) {
	rows, err := r.db.Query("SELECT key, value FROM quote_settings")
	if err != nil {
		return QuoteSettings{}, err
	}
	defer rows.Close()

	var s QuoteSettings
	for rows.Next() {
		var k, v string
		if err := rows.Scan(&k, &v); err != nil {
			return s, err
		}
		switch k {
		case "name":
			s.Name = v
		case "client_name":
			s.ClientName = v
		case "prepared_by":
			s.PreparedBy = v
		}
	}
	return s, rows.Err()
}

// SaveAllSettings writes all quote settings.
func (r *QuoteRepo) SaveAllSettings(s QuoteSettings) error {
	tx, err := r.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	upsert := "INSERT INTO quote_settings (key, value) VALUES (?, ?) ON CONFLICT(key) DO UPDATE SET value = excluded.value"
	if _, err := tx.Exec(upsert, "name", s.Name); err != nil {
		return err
	}
	if _, err := tx.Exec(upsert, "client_name", s.ClientName); err != nil {
		return err
	}
	if _, err := tx.Exec(upsert, "prepared_by", s.PreparedBy); err != nil {
		return err
	}
	return tx.Commit()
}

// ---------------------------------------------------------------------------
// Session state
// ---------------------------------------------------------------------------

// GetState returns the raw JSON blob for a namespace key. Returns "" if the
// key has never been written.
func (r *QuoteRepo) GetState(key string) (string, error) {
	var value string
	err := r.db.QueryRow("SELECT value FROM session_state WHERE key = ?", key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", nil
	}
	return value, err
}

// SetState overwrites the JSON blob for a namespace key.
func (r *QuoteRepo) SetState(key, value string) error {
	_, err := r.db.Exec(
		"INSERT INTO session_state (key, value) VALUES (?, ?) ON CONFLICT(key) DO UPDATE SET value = excluded.value",
		key, value,
	)
	return err
}

// SaveSession writes the entire session in one transaction, one namespace
// key per concern.
func (r *QuoteRepo) SaveSession(s Session) error {
	tx, err := r.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	upsert := "INSERT INTO session_state (key, value) VALUES (?, ?) ON CONFLICT(key) DO UPDATE SET value = excluded.value"
	write := func(key string, v any) error {
		b, err := json.Marshal(v)
		if err != nil {
			return fmt.Errorf("encode %s: %w", key, err)
		}
		_, err = tx.Exec(upsert, key, string(b))
		return err
	}

	if err := write(KeyLocations, s.Locations); err != nil {
		return err
	}
	if err := write(KeySelection, s.Selection); err != nil {
		return err
	}
	if err := write(KeyViewport, s.Viewport); err != nil {
		return err
	}
	if err := write(KeyPanels, s.Panels); err != nil {
		return err
	}
	if err := write(KeySupport, s.Support); err != nil {
		return err
	}
	if err := write(KeyActive, s.Active); err != nil {
		return err
	}
	return tx.Commit()
}

// LoadSession reads the entire session. Missing keys leave zero values so a
// fresh file loads as an empty session.
func (r *QuoteRepo) LoadSession() (Session, error) {
	var s Session
	read := func(key string, v any) error {
		raw, err := r.GetState(key)
		if err != nil {
			return fmt.Errorf("read %s: %w", key, err)
		}
		if raw == "" {
			return nil
		}
		if err := json.Unmarshal([]byte(raw), v); err != nil {
			return fmt.Errorf("decode %s: %w", key, err)
		}
		return nil
	}

	if err := read(KeyLocations, &s.Locations); err != nil {
		return s, err
	}
	if err := read(KeySelection, &s.Selection); err != nil {
		return s, err
	}
	if err := read(KeyViewport, &s.Viewport); err != nil {
		return s, err
	}
	if err := read(KeyPanels, &s.Panels); err != nil {
		return s, err
	}
	if err := read(KeySupport, &s.Support); err != nil {
		return s, err
	}
	if err := read(KeyActive, &s.Active); err != nil {
		return s, err
	}
	return s, nil
}
