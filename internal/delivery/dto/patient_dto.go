package dto

import (
	"strings"
	"time"

	"healthcare-records/internal/domain/entity"

	"github.com/google/uuid"
)

// Request DTOs

type CreatePatientRequest struct {
	Name           string `json:"name" validate:"required,min=2,max=100"`
	Age            *int   `json:"age" validate:"required,gte=0,lte=150"`
	Gender         string `json:"gender" validate:"required,oneof=male female other"`
	MedicalHistory string `json:"medical_history" validate:"omitempty,max=10000"`
}

func (r *CreatePatientRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.Gender = strings.ToLower(strings.TrimSpace(r.Gender))
}

// UpdatePatientRequest is a partial update: absent fields stay untouched.
type UpdatePatientRequest struct {
	Name           *string `json:"name" validate:"omitempty,min=2,max=100"`
	Age            *int    `json:"age" validate:"omitempty,gte=0,lte=150"`
	Gender         *string `json:"gender" validate:"omitempty,oneof=male female other"`
	MedicalHistory *string `json:"medical_history" validate:"omitempty,max=10000"`
}

func (r *UpdatePatientRequest) Normalize() {
	if r.Name != nil {
		name := strings.TrimSpace(*r.Name)
		r.Name = &name
	}
	if r.Gender != nil {
		gender := strings.ToLower(strings.TrimSpace(*r.Gender))
		r.Gender = &gender
	}
}

func (r *UpdatePatientRequest) IsEmpty() bool {
	return r.ToPatch().IsEmpty()
}

func (r *UpdatePatientRequest) ToPatch() entity.PatientPatch {
	return entity.PatientPatch{
		Name:           r.Name,
		Age:            r.Age,
		Gender:         r.Gender,
		MedicalHistory: r.MedicalHistory,
	}
}

// Response DTOs

type PatientResponse struct {
	ID              uuid.UUID `json:"id"`
	Name            string    `json:"name"`
	Age             int       `json:"age"`
	Gender          string    `json:"gender"`
	MedicalHistory  string    `json:"medical_history"`
	CreatedByUserID uuid.UUID `json:"created_by_user_id"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

type PatientListResponse struct {
	Patients []PatientResponse `json:"patients"`
	Total    int               `json:"total"`
}
