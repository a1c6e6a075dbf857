package dto

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Request DTOs

type CreateMappingRequest struct {
	PatientID string `json:"patient_id" validate:"required,uuid"`
	DoctorID  string `json:"doctor_id" validate:"required,uuid"`
}

func (r *CreateMappingRequest) Normalize() {
	r.PatientID = strings.TrimSpace(r.PatientID)
	r.DoctorID = strings.TrimSpace(r.DoctorID)
}

// Response DTOs

type MappingResponse struct {
	ID               uuid.UUID `json:"id"`
	PatientID        uuid.UUID `json:"patient_id"`
	PatientName      string    `json:"patient_name"`
	DoctorID         uuid.UUID `json:"doctor_id"`
	DoctorName       string    `json:"doctor_name"`
	AssignedByUserID uuid.UUID `json:"assigned_by_user_id"`
	CreatedAt        time.Time `json:"created_at"`
}

type MappingListResponse struct {
	Mappings []MappingResponse `json:"mappings"`
	Total    int               `json:"total"`
}
