package dto

import (
	"strings"
	"time"

	"healthcare-records/internal/domain/entity"

	"github.com/google/uuid"
)

// Request DTOs

type CreateDoctorRequest struct {
	Name            string `json:"name" validate:"required,min=2,max=100"`
	Specialization  string `json:"specialization" validate:"required,min=2,max=100"`
	ExperienceYears *int   `json:"experience_years" validate:"required,gte=0,lte=60"`
	ContactInfo     string `json:"contact_info" validate:"omitempty,max=255"`
}

func (r *CreateDoctorRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.Specialization = strings.TrimSpace(r.Specialization)
	r.ContactInfo = strings.TrimSpace(r.ContactInfo)
}

type UpdateDoctorRequest struct {
	Name            *string `json:"name" validate:"omitempty,min=2,max=100"`
	Specialization  *string `json:"specialization" validate:"omitempty,min=2,max=100"`
	ExperienceYears *int    `json:"experience_years" validate:"omitempty,gte=0,lte=60"`
	ContactInfo     *string `json:"contact_info" validate:"omitempty,max=255"`
}

func (r *UpdateDoctorRequest) Normalize() {
	r.Name = trimPtr(r.Name)
	r.Specialization = trimPtr(r.Specialization)
	r.ContactInfo = trimPtr(r.ContactInfo)
}

func (r *UpdateDoctorRequest) IsEmpty() bool {
	return r.ToPatch().IsEmpty()
}

func (r *UpdateDoctorRequest) ToPatch() entity.DoctorPatch {
	return entity.DoctorPatch{
		Name:            r.Name,
		Specialization:  r.Specialization,
		ExperienceYears: r.ExperienceYears,
		ContactInfo:     r.ContactInfo,
	}
}

type DoctorFilterRequest struct {
	Specialization string `json:"specialization" validate:"omitempty,max=100"`
}

func (r DoctorFilterRequest) ToFilter() entity.DoctorFilter {
	return entity.DoctorFilter{Specialization: strings.TrimSpace(r.Specialization)}
}

// Response DTOs

type DoctorResponse struct {
	ID              uuid.UUID `json:"id"`
	Name            string    `json:"name"`
	Specialization  string    `json:"specialization"`
	ExperienceYears int       `json:"experience_years"`
	ContactInfo     string    `json:"contact_info"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

type DoctorListResponse struct {
	Doctors []DoctorResponse `json:"doctors"`
	Total   int              `json:"total"`
}

func trimPtr(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	return &v
}
