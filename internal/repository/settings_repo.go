package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
)

// SettingsSQLite stores typed values as blobs in the single settings table.
// Scalars are encoded as their decimal text form so the table stays
// inspectable with the sqlite shell.
type SettingsSQLite struct {
	db *sql.DB
}

func NewSettingsSQLite(db *sql.DB) *SettingsSQLite {
	return &SettingsSQLite{db: db}
}

const (
	upsertSettingSQL = `
		INSERT INTO settings (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value=excluded.value
	`

	selectSettingSQL = `SELECT value FROM settings WHERE key=?`
)

// get returns the raw stored value, or (nil, nil) when the key is absent.
func (r *SettingsSQLite) get(ctx context.Context, key string) ([]byte, error) {
	var v []byte
	err := r.db.QueryRowContext(ctx, selectSettingSQL, key).Scan(&v)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read setting %q: %w", key, err)
	}
	return v, nil
}

func (r *SettingsSQLite) put(ctx context.Context, key string, v []byte) error {
	if _, err := r.db.ExecContext(ctx, upsertSettingSQL, key, v); err != nil {
		return fmt.Errorf("write setting %q: %w", key, err)
	}
	return nil
}

func (r *SettingsSQLite) GetFloat(ctx context.Context, key string, def float64) (float64, error) {
	raw, err := r.get(ctx, key)
	if err != nil || raw == nil {
		return def, err
	}
	v, perr := strconv.ParseFloat(string(raw), 64)
	if perr != nil {
		// Corrupted value: fall back to the default rather than failing.
		return def, nil
	}
	return v, nil
}

func (r *SettingsSQLite) PutFloat(ctx context.Context, key string, v float64) error {
	return r.put(ctx, key, []byte(strconv.FormatFloat(v, 'g', -1, 64)))
}

func (r *SettingsSQLite) GetInt(ctx context.Context, key string, def int) (int, error) {
	raw, err := r.get(ctx, key)
	if err != nil || raw == nil {
		return def, err
	}
	v, perr := strconv.Atoi(string(raw))
	if perr != nil {
		return def, nil
	}
	return v, nil
}

func (r *SettingsSQLite) PutInt(ctx context.Context, key string, v int) error {
	return r.put(ctx, key, []byte(strconv.Itoa(v)))
}

func (r *SettingsSQLite) GetBool(ctx context.Context, key string, def bool) (bool, error) {
	raw, err := r.get(ctx, key)
	if err != nil || raw == nil {
		return def, err
	}
	switch string(raw) {
	case "1":
		return true, nil
	case "0":
		return false, nil
	}
	return def, nil
}

func (r *SettingsSQLite) PutBool(ctx context.Context, key string, v bool) error {
	s := "0"
	if v {
		s = "1"
	}
	return r.put(ctx, key, []byte(s))
}

func (r *SettingsSQLite) GetString(ctx context.Context, key string, def string) (string, error) {
	raw, err := r.get(ctx, key)
	if err != nil || raw == nil {
		return def, err
	}
	return string(raw), nil
}

func (r *SettingsSQLite) PutString(ctx context.Context, key string, v string) error {
	return r.put(ctx, key, []byte(v))
}

func (r *SettingsSQLite) GetBytes(ctx context.Context, key string) ([]byte, error) {
	return r.get(ctx, key)
}

func (r *SettingsSQLite) PutBytes(ctx context.Context, key string, v []byte) error {
	return r.put(ctx, key, v)
}
