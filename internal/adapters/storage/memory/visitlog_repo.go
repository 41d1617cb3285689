package memory

import (
	"context"
	"errors"
	"sort"
	"sync"

	"visitor-desk/internal/domain/visitlog"
)

// visitLogRepo guarda la bitácora solo en memoria: en modo degradado el
// espejo en disco es únicamente para los registros de visita.
type visitLogRepo struct {
	mu   sync.RWMutex
	byID map[string]visitlog.Entry
}

func NewVisitLogRepo() visitlog.Repository {
	return &visitLogRepo{
		byID: make(map[string]visitlog.Entry),
	}
}

func (r *visitLogRepo) Create(ctx context.Context, e visitlog.Entry) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if e.ID == "" {
		return errors.New("entry id required")
	}
	if _, exists := r.byID[e.ID]; exists {
		return errors.New("entry already exists")
	}
	r.byID[e.ID] = e
	return nil
}

func (r *visitLogRepo) ListByVisitor(ctx context.Context, visitorID string) ([]visitlog.Entry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]visitlog.Entry, 0)
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
