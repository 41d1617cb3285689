package visitors

import "time"

// Status es el estado del registro de visita.
// Cerrado: la tabla de transiciones de abajo es la única fuente de verdad.
// @Enum pending, approved, rejected, checked-in, checked-out
type Status string

const (
	StatusPending    Status = "pending"
	StatusApproved   Status = "approved"
	StatusRejected   Status = "rejected"
	StatusCheckedIn  Status = "checked-in"
	StatusCheckedOut Status = "checked-out"
)

// transitions define el grafo completo de estados.
// approved → checked-out directo es legal: flujo walk-in de recepción.
// rejected y checked-out son terminales (no aparecen como origen).
var transitions = map[Status][]Status{
	StatusPending:   {StatusApproved, StatusRejected},
	StatusApproved:  {StatusCheckedIn, StatusCheckedOut},
	StatusCheckedIn: {StatusCheckedOut},
}

// CanTransition responde si el paso from→to está en el grafo.
func (s Status) CanTransition(to Status) bool {
	for _, next := range transitions[s] {
		if next == to {
			return true
		}
	}
	return false
}

// IsValid valida que el string sea uno de los estados conocidos.
func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected, StatusCheckedIn, StatusCheckedOut:
		return true
	}
	return false
}

// Office define las oficinas que reciben visitas.
// @Enum ELLORA MANPOWER, TRIPVENZA HOLIDAYS
type Office string

const (
	OfficeElloraManpower    Office = "ELLORA MANPOWER"
	OfficeTripvenzaHolidays Office = "TRIPVENZA HOLIDAYS"
)

func (o Office) IsValid() bool {
	switch o {
	case OfficeElloraManpower, OfficeTripvenzaHolidays:
		return true
	}
	return false
}

// Record representa una visita registrada, desde la solicitud hasta la salida.
type Record struct {
	ID string

	Name    string
	Mobile  string
	Company string
	Email   string

	AppointmentWith Office // oficina visitada
	Purpose         string
	MeetingPerson   string

	// Foto del visitante como data-URI; opaca para este core.
	Photo string

	// Fecha de visita solicitada por el visitante.
	VisitDate *time.Time

	Status Status

	// Franja horaria asignada al aprobar (texto libre, ej. "14:30:00").
	AppointmentTime string

	CreatedAt time.Time

	// Se setea exactamente una vez, al pasar a checked-out.
	CheckOutTime *time.Time
}
