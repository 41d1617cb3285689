package postgres

import (
	"context"
	"database/sql"

	"visitor-desk/internal/domain/visitlog"
)

type VisitLogRepo struct {
	db *sql.DB
}

func NewVisitLogRepo(db *sql.DB) *VisitLogRepo {
	return &VisitLogRepo{db: db}
}

func (r *VisitLogRepo) Create(ctx context.Context, e visitlog.Entry) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO visit_log (
			id, visitor_id, from_status, to_status, note, recorded_at
		) VALUES ($1,$2,$3,$4,$5,$6)
	`,
		e.ID,
		e.VisitorID,
		e.From,
		e.To,
		e.Note,
		e.RecordedAt,
	)
	return err
}

func (r *VisitLogRepo) ListByVisitor(ctx context.Context, visitorID string) ([]visitlog.Entry, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, visitor_id, from_status, to_status, note, recorded_at
		FROM visit_log
		WHERE visitor_id = $1
		ORDER BY recorded_at ASC
	`, visitorID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]visitlog.Entry, 0)
	for rows.Next() {
		var e visitlog.Entry
		if err := rows.Scan(&e.ID, &e.VisitorID, &e.From, &e.To, &e.Note, &e.RecordedAt); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}
