package recommend

import (
	"context"
	"errors"
	"testing"

	"pocket-sommelier/internal/catalog"
	"pocket-sommelier/internal/session"
)

type fakeCatalog struct {
	wines map[string][]catalog.Record
	err   error
}

func (f *fakeCatalog) Fetch(ctx context.Context, category string) ([]catalog.Record, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.wines[category], nil
}

func TestResolve_PositionAlwaysIndexesCachedList(t *testing.T) {
	sessions := session.NewManager()
	fc := &fakeCatalog{wines: map[string][]catalog.Record{
		"reds": {{Wine: "A"}, {Wine: "B"}, {Wine: "C"}},
	}}
	r := NewResolver(fc, sessions)

	for i := 0; i < 20; i++ {
		pick, err := r.Resolve(context.Background(), 1, "reds")
		if err != nil {
			t.Fatalf("resolve: %v", err)
		}
		sess, ok := sessions.Snapshot(1)
		if !ok {
			t.Fatal("session not created")
		}
		if pick.Ref.Category != "reds" {
			t.Fatalf("reference category = %q", pick.Ref.Category)
		}
		if pick.Ref.Position < 0 || pick.Ref.Position >= len(sess.LastCandidates) {
			t.Fatalf("position %d outside cached list of %d", pick.Ref.Position, len(sess.LastCandidates))
		}
		if sess.LastCandidates[pick.Ref.Position].Name() != pick.Record.Name() {
			t.Fatalf("reference does not point back at the picked wine")
		}
	}
}

func TestResolve_CachesWholeListWithCategory(t *testing.T) {
	sessions := session.NewManager()
	fc := &fakeCatalog{wines: map[string][]catalog.Record{
		"whites": {{Wine: "W1"}, {Wine: "W2"}},
	}}
	r := NewResolver(fc, sessions)

	if _, err := r.Resolve(context.Background(), 5, "whites"); err != nil {
		t.Fatalf("resolve: %v", err)
	}
	sess, _ := sessions.Snapshot(5)
	if len(sess.LastCandidates) != 2 || sess.LastCategory != "whites" {
		t.Fatalf("cache not written together: %d candidates, category %q",
			len(sess.LastCandidates), sess.LastCategory)
	}
}

func TestResolve_SingleSlotOverwrite(t *testing.T) {
	sessions := session.NewManager()
	fc := &fakeCatalog{wines: map[string][]catalog.Record{
		"reds":   {{Wine: "Red"}},
		"whites": {{Wine: "White A"}, {Wine: "White B"}},
	}}
	r := NewResolver(fc, sessions)

	if _, err := r.Resolve(context.Background(), 2, "reds"); err != nil {
		t.Fatalf("first resolve: %v", err)
	}
	if _, err := r.Resolve(context.Background(), 2, "whites"); err != nil {
		t.Fatalf("second resolve: %v", err)
	}

	sess, _ := sessions.Snapshot(2)
	if sess.LastCategory != "whites" || len(sess.LastCandidates) != 2 {
		t.Fatalf("second resolve must overwrite, not append: %+v", sess)
	}
}

func TestResolve_EmptyCatalogLeavesCacheUntouched(t *testing.T) {
	sessions := session.NewManager()
	fc := &fakeCatalog{wines: map[string][]catalog.Record{
		"reds": {{Wine: "Rioja"}},
	}}
	r := NewResolver(fc, sessions)

	if _, err := r.Resolve(context.Background(), 3, "reds"); err != nil {
		t.Fatalf("seed resolve: %v", err)
	}

	_, err := r.Resolve(context.Background(), 3, "port")
	if !errors.Is(err, ErrNoCandidates) {
		t.Fatalf("expected ErrNoCandidates, got %v", err)
	}

	sess, _ := sessions.Snapshot(3)
	if sess.LastCategory != "reds" || len(sess.LastCandidates) != 1 {
		t.Fatalf("empty fetch overwrote the cache: %+v", sess)
	}
}

func TestResolve_CatalogFailurePropagates(t *testing.T) {
	sessions := session.NewManager()
	fc := &fakeCatalog{err: catalog.ErrUnavailable}
	r := NewResolver(fc, sessions)

	_, err := r.Resolve(context.Background(), 4, "reds")
	if !errors.Is(err, catalog.ErrUnavailable) {
		t.Fatalf("expected ErrUnavailable, got %v", err)
	}
	if _, ok := sessions.Snapshot(4); ok {
		t.Fatal("failed resolve should not create candidate state")
	}
}

func TestResolve_SingleCandidatePicksPositionZero(t *testing.T) {
	sessions := session.NewManager()
	fc := &fakeCatalog{wines: map[string][]catalog.Record{
		"reds": {{Wine: "Rioja"}},
	}}
	r := NewResolver(fc, sessions)

	pick, err := r.Resolve(context.Background(), 6, "reds")
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if pick.Ref.Position != 0 || pick.Record.Name() != "Rioja" {
		t.Fatalf("unexpected pick: %+v", pick)
	}
}
