package recommend

import (
	"context"
	"errors"
	"fmt"
	"math/rand"

	"pocket-sommelier/internal/catalog"
	"pocket-sommelier/internal/session"
)

// ErrNoCandidates means the catalog answered with an empty list for the
// requested category. The session's previous candidate cache stays intact.
var ErrNoCandidates = errors.New("no wines available for this category")

// Catalog is the slice of the catalog client the resolver needs.
type Catalog interface {
	Fetch(ctx context.Context, category string) ([]catalog.Record, error)
}

// Reference points at one wine inside the session's cached candidate list.
// It is only valid while that cache is unchanged; any later overwrite makes
// it stale, which the favorites service detects before use.
type Reference struct {
	Category string
	Position int
}

// Pick is a resolved recommendation: the raw record that was shown plus the
// reference that can re-identify it later.
type Pick struct {
	Record catalog.Record
	Ref    Reference
}

// Resolver turns a finished questionnaire into one concrete wine. It is the
// sole writer of a session's candidate cache.
type Resolver struct {
	catalog  Catalog
	sessions *session.Manager
	intn     func(n int) int
}

func NewResolver(c Catalog, sessions *session.Manager) *Resolver {
	return &Resolver{
		catalog:  c,
		sessions: sessions,
		intn:     rand.Intn,
	}
}

// Resolve fetches the category's wine list, picks one entry uniformly at
// random from the full list, and caches the list plus category into the
// user's session in a single update so the returned reference can be
// validated against exactly that list later. Concurrent resolutions for the
// same user race on last-write-wins, which matches the single visible
// recommendation in the UI.
func (r *Resolver) Resolve(ctx context.Context, userID int64, category string) (Pick, error) {
	wines, err := r.catalog.Fetch(ctx, category)
	if err != nil {
		return Pick{}, fmt.Errorf("fetch %s: %w", category, err)
	}
	if len(wines) == 0 {
		return Pick{}, ErrNoCandidates
	}

	pos := r.intn(len(wines))
	r.sessions.Update(userID, func(s *session.Session) {
		s.SetCandidates(wines, category)
	})

	return Pick{
		Record: wines[pos],
		Ref:    Reference{Category: category, Position: pos},
	}, nil
}
