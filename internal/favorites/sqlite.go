package favorites

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"
)

// SQLiteStore implements Store on a local SQLite database.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLite opens (creating if needed) the favorites database at dbPath.
func NewSQLite(dbPath string) (*SQLiteStore, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("create database directory: %w", err)
	}

	// WAL keeps concurrent saves from different users from blocking reads.
	dsn := dbPath + "?_journal=WAL&_sync=NORMAL&_busy_timeout=5000"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	s := &SQLiteStore{db: db}
	if err := s.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("initialize schema: %w", err)
	}
	return s, nil
}

func (s *SQLiteStore) initSchema() error {
	query := `
	CREATE TABLE IF NOT EXISTS favorites (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		user_id INTEGER NOT NULL,
		wine_name TEXT NOT NULL,
		wine_link TEXT NOT NULL DEFAULT '',
		image_url TEXT NOT NULL DEFAULT '',
		rating REAL NOT NULL DEFAULT 0,
		price REAL NOT NULL DEFAULT 0,
		region TEXT NOT NULL DEFAULT '',
		country TEXT NOT NULL DEFAULT '',
		created_at INTEGER NOT NULL,
		UNIQUE(user_id, wine_name)
	);
	CREATE INDEX IF NOT EXISTS idx_favorites_user ON favorites(user_id);
	`
	if _, err := s.db.Exec(query); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	return nil
}

// Add inserts a favorite row. A (user_id, wine_name) collision is reported
// as ErrDuplicate.
func (s *SQLiteStore) Add(ctx context.Context, rec *Record) error {
	query := `
		INSERT INTO favorites
			(user_id, wine_name, wine_link, image_url, rating, price, region, country, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`

	created := rec.CreatedAt
	if created.IsZero() {
		created = time.Now()
	}

	res, err := s.db.ExecContext(ctx, query,
		rec.UserID, rec.WineName, rec.WineLink, rec.ImageURL,
		rec.Rating, rec.Price, rec.Region, rec.Country, created.Unix(),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicate
		}
		return fmt.Errorf("insert favorite: %w", err)
	}

	if id, err := res.LastInsertId(); err == nil {
		rec.ID = id
	}
	rec.CreatedAt = created
	return nil
}

// Exists reports whether the user already has a favorite with this name.
func (s *SQLiteStore) Exists(ctx context.Context, userID int64, wineName string) (bool, error) {
	var one int
	err := s.db.QueryRowContext(ctx,
		`SELECT 1 FROM favorites WHERE user_id = ? AND wine_name = ?`,
		userID, wineName,
	).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("query favorite: %w", err)
	}
	return true, nil
}

// ListByUser returns the user's favorites, oldest first.
func (s *SQLiteStore) ListByUser(ctx context.Context, userID int64) ([]Record, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, user_id, wine_name, wine_link, image_url, rating, price, region, country, created_at
		FROM favorites WHERE user_id = ? ORDER BY id`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("query favorites: %w", err)
	}
	defer rows.Close()

	var out []Record
	for rows.Next() {
		var rec Record
		var created int64
		if err := rows.Scan(
			&rec.ID, &rec.UserID, &rec.WineName, &rec.WineLink, &rec.ImageURL,
			&rec.Rating, &rec.Price, &rec.Region, &rec.Country, &created,
		); err != nil {
			return nil, fmt.Errorf("scan favorite row: %w", err)
		}
		rec.CreatedAt = time.Unix(created, 0)
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate favorites: %w", err)
	}
	return out, nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// isUniqueViolation detects SQLite's uniqueness-constraint error. The
// modernc driver exposes it only through the error text.
func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}
