package converter

import (
	"healthcare-records/internal/delivery/dto"
	"healthcare-records/internal/domain/entity"
)

// PatientToResponse converts a Patient entity to PatientResponse DTO
func PatientToResponse(patient *entity.Patient) *dto.PatientResponse {
	if patient == nil {
		return nil
	}

	return &dto.PatientResponse{
		ID:              patient.ID,
		Name:            patient.Name,
		Age:             patient.Age,
		Gender:          string(patient.Gender),
		MedicalHistory:  patient.MedicalHistory,
		CreatedByUserID: patient.CreatedByUserID,
		CreatedAt:       patient.CreatedAt,
		UpdatedAt:       patient.UpdatedAt,
	}
}

// PatientsToResponses converts a slice of Patient entities to slice of PatientResponse DTOs
func PatientsToResponses(patients []entity.Patient) []dto.PatientResponse {
	responses := make([]dto.PatientResponse, len(patients))
	for i := range patients {
		responses[i] = *PatientToResponse(&patients[i])
	}
	return responses
}
