package postgres

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/google/uuid"

	"visitor-desk/internal/domain/visitors"
)

// VisitorsRepo es la variante durable del Record Store.
// Errores de red/DB se propagan como fallo del store, no se tragan.
type VisitorsRepo struct {
	db *sql.DB
}

func NewVisitorsRepo(db *sql.DB) *VisitorsRepo {
	return &VisitorsRepo{db: db}
}

func (r *VisitorsRepo) Create(ctx context.Context, v visitors.Record) (visitors.Record, error) {
	// El store asigna el id (uuid en modo durable)
	v.ID = uuid.NewString()

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO visitors (
			id, name, mobile, company, email,
			appointment_with, purpose, meeting_person, photo,
			visit_date, status, appointment_time,
			created_at, check_out_time
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14)
	`,
		v.ID,
		v.Name,
		v.Mobile,
		v.Company,
		v.Email,
		string(v.AppointmentWith),
		v.Purpose,
		v.MeetingPerson,
		v.Photo,
		toNullTime(v.VisitDate),
		string(v.Status),
		v.AppointmentTime,
		v.CreatedAt,
		toNullTime(v.CheckOutTime),
	)
	if err != nil {
		return visitors.Record{}, err
	}
	return v, nil
}

func (r *VisitorsRepo) List(ctx context.Context) ([]visitors.Record, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT
			id, name, mobile, company, email,
			appointment_with, purpose, meeting_person, photo,
			visit_date, status, appointment_time,
			created_at, check_out_time
		FROM visitors
		ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]visitors.Record, 0)
	for rows.Next() {
		v, err := scanVisitor(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

func (r *VisitorsRepo) GetByID(ctx context.Context, id string) (visitors.Record, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return visitors.Record{}, visitors.ErrNotFound
	}

	row := r.db.QueryRowContext(ctx, `
		SELECT
			id, name, mobile, company, email,
			appointment_with, purpose, meeting_person, photo,
			visit_date, status, appointment_time,
			created_at, check_out_time
		FROM visitors
		WHERE id = $1
	`, id)

	v, err := scanVisitor(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return visitors.Record{}, visitors.ErrNotFound
		}
		return visitors.Record{}, err
	}
	return v, nil
}

func (r *VisitorsRepo) Update(ctx context.Context, v visitors.Record) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE visitors
		SET
			status = $2,
			appointment_time = $3,
			check_out_time = $4
		WHERE id = $1
	`,
		v.ID,
		string(v.Status),
		v.AppointmentTime,
		toNullTime(v.CheckOutTime),
	)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return visitors.ErrNotFound
	}
	return nil
}

func (r *VisitorsRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM visitors WHERE id = $1`, id)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return visitors.ErrNotFound
	}
	return nil
}

// scanner cubre tanto *sql.Row como *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanVisitor(row scanner) (visitors.Record, error) {
	var v visitors.Record
	var office, status string
	var visitDate, checkOut sql.NullTime

	if err := row.Scan(
		&v.ID,
		&v.Name,
		&v.Mobile,
		&v.Company,
		&v.Email,
		&office,
		&v.Purpose,
		&v.MeetingPerson,
		&v.Photo,
		&visitDate,
		&status,
		&v.AppointmentTime,
		&v.CreatedAt,
		&checkOut,
	); err != nil {
		return visitors.Record{}, err
	}

	v.AppointmentWith = visitors.Office(office)
	v.Status = visitors.Status(status)
	if visitDate.Valid {
		t := visitDate.Time
		v.VisitDate = &t
	}
	if checkOut.Valid {
		t := checkOut.Time
		v.CheckOutTime = &t
	}
	return v, nil
}

func toNullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{Valid: false}
	}
	return sql.NullTime{Time: *t, Valid: true}
}
