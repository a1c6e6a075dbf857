package converter

import (
	"healthcare-records/internal/delivery/dto"
	"healthcare-records/internal/domain/entity"
)

// MappingToResponse converts a Mapping entity to MappingResponse DTO.
// Names are filled from the preloaded Patient and Doctor.
func MappingToResponse(mapping *entity.Mapping) *dto.MappingResponse {
	if mapping == nil {
		return nil
	}

	return &dto.MappingResponse{
		ID:               mapping.ID,
		PatientID:        mapping.PatientID,
		PatientName:      mapping.PatientName(),
		DoctorID:         mapping.DoctorID,
		DoctorName:       mapping.DoctorName(),
		AssignedByUserID: mapping.AssignedByUserID,
		CreatedAt:        mapping.CreatedAt,
	}
}

func MappingsToResponses(mappings []entity.Mapping) []dto.MappingResponse {
	responses := make([]dto.MappingResponse, len(mappings))
	for i := range mappings {
		responses[i] = *MappingToResponse(&mappings[i])
	}
	return responses
}
