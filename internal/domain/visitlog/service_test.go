package visitlog

import (
	"context"
	"errors"
	"sort"
	"testing"
	"time"
)

type testRepo struct {
	byID map[string]Entry
	fail bool
}

func newTestRepo() *testRepo {
	return &testRepo{byID: map[string]Entry{}}
}

func (r *testRepo) Create(ctx context.Context, e Entry) error {
	if r.fail {
		return errors.New("repo: boom")
	}
	r.byID[e.ID] = e
	return nil
}

func (r *testRepo) ListByVisitor(ctx context.Context, visitorID string) ([]Entry, error) {
	out := make([]Entry, 0)
	for _, e := range r.byID {
		if e.VisitorID == visitorID {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].RecordedAt.Before(out[j].RecordedAt)
	})
	return out, nil
}

func TestService_Record_PersistsEntry(t *testing.T) {
	repo := newTestRepo()
	svc := NewService(repo, nil)

	now := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }

	svc.Record(context.Background(), "v-1", "pending", "approved", "approved for 14:30:00")

	items, err := svc.ListByVisitor(context.Background(), "v-1")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(items))
	}

	e := items[0]
	if e.ID == "" {
		t.Fatal("expected generated id")
	}
	if e.From != "pending" || e.To != "approved" {
		t.Fatalf("unexpected transition %s->%s", e.From, e.To)
	}
	if e.Note != "approved for 14:30:00" {
		t.Fatalf("unexpected note %q", e.Note)
	}
	if !e.RecordedAt.Equal(now) {
		t.Fatalf("expected recordedAt %v, got %v", now, e.RecordedAt)
	}
}

func TestService_Record_IgnoresEmptyInput(t *testing.T) {
	repo := newTestRepo()
	svc := NewService(repo, nil)

	svc.Record(context.Background(), "", "pending", "approved", "")
	svc.Record(context.Background(), "v-1", "pending", "", "")

	if len(repo.byID) != 0 {
		t.Fatalf("expected no entries, got %d", len(repo.byID))
	}
}

func TestService_Record_SwallowsRepoFailure(t *testing.T) {
	repo := newTestRepo()
	repo.fail = true
	svc := NewService(repo, nil)

	// best-effort: no panic, no error hacia el caller
	svc.Record(context.Background(), "v-1", "", "pending", "registered")
}

func TestService_ListByVisitor_RequiresID(t *testing.T) {
	svc := NewService(newTestRepo(), nil)

	if _, err := svc.ListByVisitor(context.Background(), "  "); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}
