package visitlog

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	ErrInvalidInput = errors.New("invalid input")
)

type Service struct {
	repo Repository
	log  *zap.Logger
	now  func() time.Time
}

func NewService(repo Repository, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{
		repo: repo,
		log:  log,
		now:  time.Now,
	}
}

// Record persiste una línea de bitácora. Best-effort: un fallo acá
// se loguea y no corta el comando que disparó la transición.
func (s *Service) Record(ctx context.Context, visitorID, from, to, note string) {
	visitorID = strings.TrimSpace(visitorID)
	if visitorID == "" || strings.TrimSpace(to) == "" {
		return
	}

	e := Entry{
		ID:         uuid.NewString(),
		VisitorID:  visitorID,
		From:       strings.TrimSpace(from),
		To:         strings.TrimSpace(to),
		Note:       strings.TrimSpace(note),
		RecordedAt: s.now(),
	}

	if err := s.repo.Create(ctx, e); err != nil {
		s.log.Warn("visit log entry not recorded",
			zap.String("visitor_id", visitorID),
			zap.Error(err),
		)
	}
}

func (s *Service) ListByVisitor(ctx context.Context, visitorID string) ([]Entry, error) {
	visitorID = strings.TrimSpace(visitorID)
	if visitorID == "" {
		return nil, ErrInvalidInput
	}
	return s.repo.ListByVisitor(ctx, visitorID)
}
