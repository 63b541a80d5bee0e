package favorites

import (
	"context"
	"errors"
	"fmt"
	"log"

	"pocket-sommelier/internal/recommend"
	"pocket-sommelier/internal/session"
)

// Outcome distinguishes a freshly saved favorite from an idempotent repeat.
type Outcome int

const (
	Added Outcome = iota
	AlreadyExists
)

// Service validates save actions against the session's cached candidate
// list and persists them. It is the only writer of favorite records.
type Service struct {
	store    Store
	sessions *session.Manager
}

func NewService(store Store, sessions *session.Manager) *Service {
	return &Service{store: store, sessions: sessions}
}

// ValidateReference checks that ref still points into the session's current
// candidate cache. It fails when the cached category changed or the position
// no longer fits the cached list — the reference then belongs to a
// recommendation the user has since replaced.
func ValidateReference(sess session.Session, ref recommend.Reference) error {
	if ref.Category != sess.LastCategory {
		return fmt.Errorf("%w: category %q, session has %q",
			ErrStaleReference, ref.Category, sess.LastCategory)
	}
	if ref.Position < 0 || ref.Position >= len(sess.LastCandidates) {
		return fmt.Errorf("%w: position %d outside cached list of %d",
			ErrStaleReference, ref.Position, len(sess.LastCandidates))
	}
	return nil
}

// Save persists the wine ref points at. Saving the same wine twice is
// idempotent: the second call reports AlreadyExists and no second row is
// created. A reference into a replaced candidate list fails with
// ErrStaleReference rather than resolving to the wrong wine.
func (s *Service) Save(ctx context.Context, userID int64, ref recommend.Reference) (Outcome, error) {
	sess, ok := s.sessions.Snapshot(userID)
	if !ok {
		return 0, fmt.Errorf("%w: no active session", ErrStaleReference)
	}
	if err := ValidateReference(sess, ref); err != nil {
		return 0, err
	}

	wine := sess.LastCandidates[ref.Position]
	rec := &Record{
		UserID:   userID,
		WineName: wine.Name(),
		WineLink: wine.Link,
		ImageURL: wine.ImageURL(),
		Rating:   wine.RatingAverage(),
		Price:    wine.Price(),
		Region:   wine.Region(),
		Country:  wine.Country(),
	}

	exists, err := s.store.Exists(ctx, userID, rec.WineName)
	if err != nil {
		return 0, fmt.Errorf("check favorite: %w", err)
	}
	if exists {
		return AlreadyExists, nil
	}

	// The pre-check races with concurrent saves; the store's uniqueness
	// constraint settles it.
	if err := s.store.Add(ctx, rec); err != nil {
		if errors.Is(err, ErrDuplicate) {
			return AlreadyExists, nil
		}
		return 0, fmt.Errorf("save favorite: %w", err)
	}

	log.Printf("favorite added: user=%d wine=%q category=%s", userID, rec.WineName, ref.Category)
	return Added, nil
}

// List returns the user's persisted favorites.
func (s *Service) List(ctx context.Context, userID int64) ([]Record, error) {
	recs, err := s.store.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list favorites: %w", err)
	}
	return recs, nil
}
