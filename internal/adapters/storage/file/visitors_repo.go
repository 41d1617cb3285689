package file

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
	"go.uber.org/zap"

	"visitor-desk/internal/domain/visitors"
)

// VisitorsRepo es la variante degradada del Record Store: una lista en
// memoria (más nuevo primero) espejada a un archivo JSON después de cada
// mutación, para sobrevivir reinicios del proceso sin Postgres.
// El mutex serializa también la reescritura del archivo (un solo escritor).
type VisitorsRepo struct {
	mu      sync.RWMutex
	records []visitors.Record
	path    string
	log     *zap.Logger
}

// NewVisitorsRepo carga el espejo si existe; si no, siembra un registro
// de ejemplo para que el dashboard no arranque vacío.
func NewVisitorsRepo(path string, log *zap.Logger) *VisitorsRepo {
	if log == nil {
		log = zap.NewNop()
	}

	r := &VisitorsRepo{path: path, log: log}

	loaded, err := loadMirror(path)
	if err != nil {
		log.Warn("mirror file unreadable, starting with seed data", zap.String("path", path), zap.Error(err))
	}
	if loaded != nil {
		r.records = loaded
	} else {
		r.records = []visitors.Record{seedRecord()}
	}

	return r
}

func (r *VisitorsRepo) Create(ctx context.Context, v visitors.Record) (visitors.Record, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	// ULID: string ordenable por tiempo, el id "time-based" del modo degradado
	v.ID = ulid.Make().String()

	// unshift: la lista vive ordenada createdAt descendente
	r.records = append([]visitors.Record{v}, r.records...)
	r.saveLocked()
	return v, nil
}

func (r *VisitorsRepo) List(ctx context.Context) ([]visitors.Record, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]visitors.Record, len(r.records))
	copy(out, r.records)
	return out, nil
}

func (r *VisitorsRepo) GetByID(ctx context.Context, id string) (visitors.Record, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, v := range r.records {
		if v.ID == id {
			return v, nil
		}
	}
	return visitors.Record{}, visitors.ErrNotFound
}

func (r *VisitorsRepo) Update(ctx context.Context, v visitors.Record) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.records {
		if r.records[i].ID == v.ID {
			r.records[i] = v
			r.saveLocked()
			return nil
		}
	}
	return visitors.ErrNotFound
}

func (r *VisitorsRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.records {
		if r.records[i].ID == id {
			r.records = append(r.records[:i], r.records[i+1:]...)
			r.saveLocked()
			return nil
		}
	}
	return visitors.ErrNotFound
}

// saveLocked reescribe el espejo completo. Caller debe tener r.mu.
// Un fallo de disco se loguea: el estado en memoria sigue siendo la verdad.
func (r *VisitorsRepo) saveLocked() {
	b, err := json.MarshalIndent(toMirror(r.records), "", "  ")
	if err != nil {
		r.log.Error("mirror marshal failed", zap.Error(err))
		return
	}
	if err := os.WriteFile(r.path, b, 0o644); err != nil {
		r.log.Error("mirror write failed", zap.String("path", r.path), zap.Error(err))
	}
}

// mirrorRecord es el layout persistido: un array de estos en un único JSON.
type mirrorRecord struct {
	ID              string     `json:"_id"`
	Name            string     `json:"name"`
	Mobile          string     `json:"mobile"`
	Company         string     `json:"company,omitempty"`
	Email           string     `json:"email"`
	AppointmentWith string     `json:"appointment_with"`
	Purpose         string     `json:"purpose"`
	MeetingPerson   string     `json:"meeting_person,omitempty"`
	Photo           string     `json:"photo,omitempty"`
	VisitDate       *time.Time `json:"visit_date,omitempty"`
	Status          string     `json:"status"`
	AppointmentTime string     `json:"appointment_time,omitempty"`
	CreatedAt       time.Time  `json:"createdAt"`
	CheckOutTime    *time.Time `json:"checkOutTime,omitempty"`
}

func toMirror(in []visitors.Record) []mirrorRecord {
	out := make([]mirrorRecord, 0, len(in))
	for _, v := range in {
		out = append(out, mirrorRecord{
			ID:              v.ID,
			Name:            v.Name,
			Mobile:          v.Mobile,
			Company:         v.Company,
			Email:           v.Email,
			AppointmentWith: string(v.AppointmentWith),
			Purpose:         v.Purpose,
			MeetingPerson:   v.MeetingPerson,
			Photo:           v.Photo,
			VisitDate:       v.VisitDate,
			Status:          string(v.Status),
			AppointmentTime: v.AppointmentTime,
			CreatedAt:       v.CreatedAt,
			CheckOutTime:    v.CheckOutTime,
		})
	}
	return out
}

func fromMirror(in []mirrorRecord) []visitors.Record {
	out := make([]visitors.Record, 0, len(in))
	for _, m := range in {
		out = append(out, visitors.Record{
			ID:              m.ID,
			Name:            m.Name,
			Mobile:          m.Mobile,
			Company:         m.Company,
			Email:           m.Email,
			AppointmentWith: visitors.Office(m.AppointmentWith),
			Purpose:         m.Purpose,
			MeetingPerson:   m.MeetingPerson,
			Photo:           m.Photo,
			VisitDate:       m.VisitDate,
			Status:          visitors.Status(m.Status),
			AppointmentTime: m.AppointmentTime,
			CreatedAt:       m.CreatedAt,
			CheckOutTime:    m.CheckOutTime,
		})
	}
	return out
}

// loadMirror devuelve (nil, nil) si el archivo no existe.
func loadMirror(path string) ([]visitors.Record, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}

	var m []mirrorRecord
	if err := json.Unmarshal(b, &m); err != nil {
		return nil, err
	}
	return fromMirror(m), nil
}

func seedRecord() visitors.Record {
	return visitors.Record{
		ID:              ulid.Make().String(),
		Name:            "John Doe",
		Mobile:          "1234567890",
		Company:         "Tech Corp",
		Email:           "john@example.com",
		AppointmentWith: visitors.OfficeTripvenzaHolidays,
		Purpose:         "Meeting",
		Status:          visitors.StatusPending,
		CreatedAt:       time.Now(),
	}
}
