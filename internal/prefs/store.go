// Package prefs keeps the terminal client's local state: the signed in
// user, their session token and the theme.
package prefs

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/2beens/fitforge/pkg"

	_ "modernc.org/sqlite"
)

const (
	KeyUID       = "uid"
	KeyToken     = "token"
	KeyThemeMode = "themeMode"
)

const (
	ThemeLight = "light"
	ThemeDark  = "dark"
)

var (
	ErrNotFound     = errors.New("preference not set")
	ErrInvalidTheme = errors.New("theme must be light or dark")
)

type Store struct {
	db *sql.DB
}

// Open opens (or creates) the preferences database at dir/prefs.db.
func Open(dir string) (*Store, error) {
	dirExists, err := pkg.PathExists(dir, true)
	if err != nil {
		return nil, fmt.Errorf("check prefs dir %s: %w", dir, err)
	}
	if !dirExists {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return nil, fmt.Errorf("create prefs dir %s: %w", dir, err)
		}
	}

	db, err := sql.Open("sqlite", filepath.Join(dir, "prefs.db"))
	if err != nil {
		return nil, fmt.Errorf("open prefs db: %w", err)
	}

	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS preference (
		key        TEXT PRIMARY KEY,
		value      TEXT NOT NULL,
		updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	)`); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create preference table: %w", err)
	}

	return &Store{db: db}, nil
}

func (s *Store) Get(ctx context.Context, key string) (string, error) {
	var value string
	err := s.db.QueryRowContext(ctx, `SELECT value FROM preference WHERE key = ?`, key).Scan(&value)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("get preference %s: %w", key, err)
	}
	return value, nil
}

func (s *Store) Set(ctx context.Context, key, value string) error {
	if _, err := s.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO preference (key, value, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)`,
		key, value,
	); err != nil {
		return fmt.Errorf("set preference %s: %w", key, err)
	}
	return nil
}

// Delete removes key. Deleting a missing key is not an error.
func (s *Store) Delete(ctx context.Context, key string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM preference WHERE key = ?`, key); err != nil {
		return fmt.Errorf("delete preference %s: %w", key, err)
	}
	return nil
}

// ThemeMode returns the stored theme, dark when none is stored.
func (s *Store) ThemeMode(ctx context.Context) (string, error) {
	mode, err := s.Get(ctx, KeyThemeMode)
	if errors.Is(err, ErrNotFound) {
		return ThemeDark, nil
	}
	if err != nil {
		return "", err
	}
	if mode != ThemeLight && mode != ThemeDark {
		return ThemeDark, nil
	}
	return mode, nil
}

func (s *Store) SetThemeMode(ctx context.Context, mode string) error {
	if mode != ThemeLight && mode != ThemeDark {
		return ErrInvalidTheme
	}
	return s.Set(ctx, KeyThemeMode, mode)
}

// ToggleTheme flips between light and dark and returns the new mode.
func (s *Store) ToggleTheme(ctx context.Context) (string, error) {
	mode, err := s.ThemeMode(ctx)
	if err != nil {
		return "", err
	}
	next := ThemeLight
	if mode == ThemeLight {
		next = ThemeDark
	}
	if err := s.SetThemeMode(ctx, next); err != nil {
		return "", err
	}
	return next, nil
}

// SaveLogin stores the signed in user and their token.
func (s *Store) SaveLogin(ctx context.Context, uid, token string) error {
	if err := s.Set(ctx, KeyUID, uid); err != nil {
		return err
	}
	return s.Set(ctx, KeyToken, token)
}

// ClearLogin forgets the signed in user. The theme is kept.
func (s *Store) ClearLogin(ctx context.Context) error {
	if err := s.Delete(ctx, KeyUID); err != nil {
		return err
	}
	return s.Delete(ctx, KeyToken)
}

func (s *Store) Close() error {
	return s.db.Close()
}
