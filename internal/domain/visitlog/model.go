package visitlog

import "time"

// Entry es una línea de la bitácora de transiciones de un visitante.
// From vacío significa creación del registro.
type Entry struct {
	ID        string
	VisitorID string

	From string
	To   string

	// Nota corta del comando (ej. "approved for 14:30:00").
	Note string

	RecordedAt time.Time
}
