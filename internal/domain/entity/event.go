package entity

import (
	"time"

	"github.com/google/uuid"
)

const (
	EventMappingCreated = "mapping.created"
	EventMappingDeleted = "mapping.deleted"
)

// MappingEvent is published after a mapping change has been committed.
type MappingEvent struct {
	Type             string    `json:"type"`
	MappingID        uuid.UUID `json:"mapping_id"`
	PatientID        uuid.UUID `json:"patient_id"`
	DoctorID         uuid.UUID `json:"doctor_id"`
	AssignedByUserID uuid.UUID `json:"assigned_by_user_id"`
	OccurredAt       time.Time `json:"occurred_at"`
}

func NewMappingEvent(eventType string, m *Mapping, at time.Time) MappingEvent {
	return MappingEvent{
		Type:             eventType,
		MappingID:        m.ID,
		PatientID:        m.PatientID,
		DoctorID:         m.DoctorID,
		AssignedByUserID: m.AssignedByUserID,
		OccurredAt:       at.UTC(),
	}
}
