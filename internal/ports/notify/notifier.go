package notify

import (
	"context"
	"time"
)

// EventKind identifica qué correo corresponde enviar.
type EventKind string

const (
	EventRegistered EventKind = "registered"
	EventApproved   EventKind = "approved"
	EventRejected   EventKind = "rejected"
	EventCheckedOut EventKind = "checked-out"
)

// Visit es el payload neutro que necesita cualquier transporte
// para componer la notificación (sin acoplar al modelo del dominio).
type Visit struct {
	Name   string
	Email  string
	Office string

	Purpose         string
	AppointmentTime string
	VisitDate       *time.Time
}

// Notifier envía una notificación para la visita y el evento dados.
// El caller lo invoca fire-and-forget: un error aquí se loguea y se descarta,
// nunca revierte la transición que lo disparó.
type Notifier interface {
	Notify(ctx context.Context, v Visit, kind EventKind) error
}
