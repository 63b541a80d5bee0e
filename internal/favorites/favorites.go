package favorites

import (
	"context"
	"errors"
	"time"
)

// Record is one persisted favorite wine. Rows are created once and never
// mutated; a user can hold at most one favorite per wine name.
type Record struct {
	ID        int64
	UserID    int64
	WineName  string
	WineLink  string
	ImageURL  string
	Rating    float64
	Price     float64
	Region    string
	Country   string
	CreatedAt time.Time
}

var (
	// ErrDuplicate is returned by a Store when inserting a record that
	// collides with the (user_id, wine_name) uniqueness constraint.
	ErrDuplicate = errors.New("favorite already exists")

	// ErrStaleReference means a save action pointed at a candidate list the
	// user has since replaced; the wine it referenced can no longer be
	// identified safely.
	ErrStaleReference = errors.New("wine reference no longer valid")
)

// Store persists favorite records. Implementations must report a
// (user_id, wine_name) uniqueness violation as ErrDuplicate, distinctly from
// other failures — the constraint, not the in-process pre-check, is the
// final arbiter against racing saves.
type Store interface {
	Add(ctx context.Context, rec *Record) error
	Exists(ctx context.Context, userID int64, wineName string) (bool, error)
	ListByUser(ctx context.Context, userID int64) ([]Record, error)
	Close() error
}
