package visitors

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"visitor-desk/internal/ports/notify"
)

var (
	ErrInvalidInput      = errors.New("invalid input")
	ErrNotFound          = errors.New("not found")
	ErrInvalidTransition = errors.New("invalid transition")
)

// TrailRecorder registra cada transición aplicada (bitácora del dashboard).
// Best-effort: no devuelve error para que la bitácora nunca corte un comando.
type TrailRecorder interface {
	RecordTransition(ctx context.Context, visitorID string, from, to Status, note string)
}

// Service es el dueño del ciclo de vida del registro: valida transiciones
// contra la tabla central, delega al Repository activo y dispara
// notificaciones desacopladas del camino crítico.
type Service struct {
	repo     Repository
	notifier notify.Notifier // puede ser nil (modo sin correo)
	trail    TrailRecorder   // puede ser nil
	log      *zap.Logger
	now      func() time.Time
}

func NewService(repo Repository, notifier notify.Notifier, trail TrailRecorder, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{
		repo:     repo,
		notifier: notifier,
		trail:    trail,
		log:      log,
		now:      time.Now,
	}
}

type RegisterInput struct {
	Name            string
	Mobile          string
	Company         string
	Email           string
	AppointmentWith string
	Purpose         string
	MeetingPerson   string
	Photo           string
	VisitDate       *time.Time
}

// Register crea el registro en pending y dispara el correo "registered".
// El store activo asigna ID y CreatedAt.
func (s *Service) Register(ctx context.Context, in RegisterInput) (Record, error) {
	name := strings.TrimSpace(in.Name)
	mobile := strings.TrimSpace(in.Mobile)
	email := strings.TrimSpace(in.Email)
	purpose := strings.TrimSpace(in.Purpose)
	office := Office(strings.TrimSpace(in.AppointmentWith))

	if name == "" || mobile == "" || email == "" || purpose == "" {
		return Record{}, ErrInvalidInput
	}
	if !office.IsValid() {
		return Record{}, fmt.Errorf("%w: unknown office %q", ErrInvalidInput, in.AppointmentWith)
	}

	r := Record{
		Name:            name,
		Mobile:          mobile,
		Company:         strings.TrimSpace(in.Company),
		Email:           email,
		AppointmentWith: office,
		Purpose:         purpose,
		MeetingPerson:   strings.TrimSpace(in.MeetingPerson),
		Photo:           in.Photo,
		VisitDate:       in.VisitDate,
		Status:          StatusPending,
		CreatedAt:       s.now(),
	}

	created, err := s.repo.Create(ctx, r)
	if err != nil {
		return Record{}, err
	}

	if s.trail != nil {
		s.trail.RecordTransition(ctx, created.ID, "", StatusPending, "registered")
	}
	s.dispatch(created, notify.EventRegistered)

	return created, nil
}

func (s *Service) List(ctx context.Context) ([]Record, error) {
	return s.repo.List(ctx)
}

func (s *Service) GetByID(ctx context.Context, id string) (Record, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Record{}, ErrNotFound
	}
	return s.repo.GetByID(ctx, id)
}

// ApplyTransition valida y aplica el paso hacia `to` sobre el registro `id`.
// appointmentTime solo aplica (y es obligatorio) al aprobar.
func (s *Service) ApplyTransition(ctx context.Context, id string, to Status, appointmentTime string) (Record, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Record{}, ErrNotFound
	}
	if !to.IsValid() {
		return Record{}, fmt.Errorf("%w: unknown status %q", ErrInvalidInput, string(to))
	}

	r, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return Record{}, err
	}

	if !r.Status.CanTransition(to) {
		return Record{}, fmt.Errorf("%w: cannot move from %s to %s", ErrInvalidTransition, r.Status, to)
	}

	from := r.Status
	note := ""

	switch to {
	case StatusApproved:
		appointmentTime = strings.TrimSpace(appointmentTime)
		if appointmentTime == "" {
			return Record{}, fmt.Errorf("%w: appointment_time required to approve", ErrInvalidInput)
		}
		r.AppointmentTime = appointmentTime
		note = "approved for " + appointmentTime
	case StatusCheckedOut:
		// Se setea exactamente una vez: checked-out es terminal,
		// así que nunca llegamos acá con el campo ya seteado.
		t := s.now()
		r.CheckOutTime = &t
	}

	r.Status = to

	if err := s.repo.Update(ctx, r); err != nil {
		return Record{}, err
	}

	if s.trail != nil {
		s.trail.RecordTransition(ctx, r.ID, from, to, note)
	}

	switch to {
	case StatusApproved:
		s.dispatch(r, notify.EventApproved)
	case StatusRejected:
		s.dispatch(r, notify.EventRejected)
	case StatusCheckedOut:
		s.dispatch(r, notify.EventCheckedOut)
	}

	return r, nil
}

// Checkout es el atajo de recepción: sirve tanto para checked-in → checked-out
// como para el walk-in approved → checked-out.
func (s *Service) Checkout(ctx context.Context, id string) (Record, error) {
	return s.ApplyTransition(ctx, id, StatusCheckedOut, "")
}

// ScanResult indica qué acción decidió el flujo de escaneo.
type ScanResult struct {
	Record Record
	Action Status // checked-in o checked-out
}

// Scan implementa el flujo del escáner de recepción: mira el estado actual
// para decidir entre check-in y check-out, y rechaza cualquier otro estado
// con un error descriptivo sin mutar nada.
func (s *Service) Scan(ctx context.Context, id string) (ScanResult, error) {
	r, err := s.GetByID(ctx, id)
	if err != nil {
		return ScanResult{}, err
	}

	switch r.Status {
	case StatusApproved:
		updated, err := s.ApplyTransition(ctx, id, StatusCheckedIn, "")
		if err != nil {
			return ScanResult{}, err
		}
		return ScanResult{Record: updated, Action: StatusCheckedIn}, nil
	case StatusCheckedIn:
		updated, err := s.ApplyTransition(ctx, id, StatusCheckedOut, "")
		if err != nil {
			return ScanResult{}, err
		}
		return ScanResult{Record: updated, Action: StatusCheckedOut}, nil
	default:
		return ScanResult{}, fmt.Errorf("%w: visitor status is %s, cannot process scan", ErrInvalidTransition, r.Status)
	}
}

// Delete borra el registro en forma definitiva (sin tombstone).
func (s *Service) Delete(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return ErrNotFound
	}
	return s.repo.Delete(ctx, id)
}

// dispatch lanza la notificación en una goroutine aparte.
// El comando que la disparó ya terminó: un fallo acá solo se loguea.
func (s *Service) dispatch(r Record, kind notify.EventKind) {
	if s.notifier == nil {
		return
	}

	v := notify.Visit{
		Name:            r.Name,
		Email:           r.Email,
		Office:          string(r.AppointmentWith),
		Purpose:         r.Purpose,
		AppointmentTime: r.AppointmentTime,
		VisitDate:       r.VisitDate,
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := s.notifier.Notify(ctx, v, kind); err != nil {
			s.log.Warn("notification dispatch failed",
				zap.String("visitor_id", r.ID),
				zap.String("event", string(kind)),
				zap.Error(err),
			)
		}
	}()
}
