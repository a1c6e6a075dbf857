package converter

import (
	"testing"

	"healthcare-records/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestMappingToResponse_UsesPreloadedNames(t *testing.T) {
	m := &entity.Mapping{
		ID:        uuid.New(),
		PatientID: uuid.New(),
		DoctorID:  uuid.New(),
		Patient:   &entity.Patient{Name: "John"},
		Doctor:    &entity.Doctor{Name: "House"},
	}

	res := MappingToResponse(m)
	assert.Equal(t, "John", res.PatientName)
	assert.Equal(t, "House", res.DoctorName)

	m.Patient, m.Doctor = nil, nil
	res = MappingToResponse(m)
	assert.Empty(t, res.PatientName)
	assert.Empty(t, res.DoctorName)
}

func TestNilEntitiesConvertToNil(t *testing.T) {
	assert.Nil(t, UserToResponse(nil))
	assert.Nil(t, PatientToResponse(nil))
	assert.Nil(t, DoctorToResponse(nil))
	assert.Nil(t, MappingToResponse(nil))
	assert.Nil(t, AuditLogToResponse(nil))
}

func TestPatientsToResponses(t *testing.T) {
	patients := []entity.Patient{
		{ID: uuid.New(), Name: "John", Gender: entity.GenderMale},
		{ID: uuid.New(), Name: "Mary", Gender: entity.GenderFemale},
	}

	res := PatientsToResponses(patients)
	assert.Len(t, res, 2)
	assert.Equal(t, "male", res[0].Gender)
	assert.Equal(t, patients[1].ID, res[1].ID)
	assert.Empty(t, PatientsToResponses(nil))
}
