package audit

import (
	"context"
	"time"
)

type EventType string

const (
	EventAccessGranted  EventType = "access.granted"
	EventAccessRevoked  EventType = "access.revoked"
	EventReportUploaded EventType = "report.uploaded"
)

// Event es un registro inmutable de un cambio sobre datos de un paciente.
type Event struct {
	Type      EventType `json:"type"`
	ActorID   int64     `json:"actor_id"`
	PatientID int64     `json:"patient_id"`
	DoctorID  int64     `json:"doctor_id,omitempty"`
	ReportID  int64     `json:"report_id,omitempty"`
	At        time.Time `json:"at"`
}

// Publisher entrega eventos de auditoría. Los servicios lo llaman best-effort:
// un fallo de publicación nunca revierte la operación de dominio.
type Publisher interface {
	Publish(ctx context.Context, e Event) error
}

type Nop struct{}

func (Nop) Publish(context.Context, Event) error { return nil }

// Recorder cuenta publicaciones (metrics).
type Recorder interface {
	AuditPublished(eventType string, ok bool)
}

type recorded struct {
	next Publisher
	rec  Recorder
}

// WithRecorder decora p para reportar cada Publish a rec.
func WithRecorder(p Publisher, rec Recorder) Publisher {
	if rec == nil {
		return p
	}
	return recorded{next: p, rec: rec}
}

func (r recorded) Publish(ctx context.Context, e Event) error {
	err := r.next.Publish(ctx, e)
	r.rec.AuditPublished(string(e.Type), err == nil)
	return err
}
