package entity

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }
func intPtr(i int) *int       { return &i }

func TestParseGender(t *testing.T) {
	tests := []struct {
		raw  string
		want Gender
		ok   bool
	}{
		{"male", GenderMale, true},
		{"  FeMale ", GenderFemale, true},
		{"OTHER", GenderOther, true},
		{"unknown", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		got, ok := ParseGender(tt.raw)
		assert.Equal(t, tt.ok, ok, tt.raw)
		assert.Equal(t, tt.want, got, tt.raw)
	}
}

func TestNewPatient(t *testing.T) {
	owner := uuid.New()

	p, err := NewPatient(owner, "  Jane Doe ", 42, "Female", "asthma")
	require.NoError(t, err)
	assert.Equal(t, "Jane Doe", p.Name)
	assert.Equal(t, 42, p.Age)
	assert.Equal(t, GenderFemale, p.Gender)
	assert.Equal(t, "asthma", p.MedicalHistory)
	assert.Equal(t, owner, p.OwnerID())
}

func TestNewPatient_Rejects(t *testing.T) {
	owner := uuid.New()
	tests := []struct {
		name   string
		pname  string
		age    int
		gender string
		field  string
	}{
		{"short name", " J ", 30, "male", "name"},
		{"negative age", "Jane", -1, "male", "age"},
		{"age too high", "Jane", 151, "male", "age"},
		{"bad gender", "Jane", 30, "robot", "gender"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewPatient(owner, tt.pname, tt.age, tt.gender, "")
			var vErr *ValidationError
			require.ErrorAs(t, err, &vErr)
			assert.Equal(t, tt.field, vErr.Field)
		})
	}
}

func TestNewPatient_AgeBoundsAccepted(t *testing.T) {
	for _, age := range []int{0, 150} {
		_, err := NewPatient(uuid.New(), "Jane", age, "other", "")
		assert.NoError(t, err)
	}
}

func TestPatient_ApplyPatch(t *testing.T) {
	p, err := NewPatient(uuid.New(), "Jane", 30, "female", "none")
	require.NoError(t, err)

	err = p.ApplyPatch(PatientPatch{Age: intPtr(31), Gender: strPtr("OTHER")})
	require.NoError(t, err)
	assert.Equal(t, "Jane", p.Name)
	assert.Equal(t, 31, p.Age)
	assert.Equal(t, GenderOther, p.Gender)
	assert.Equal(t, "none", p.MedicalHistory)
}

func TestPatient_ApplyPatch_InvalidLeavesUnchanged(t *testing.T) {
	p, err := NewPatient(uuid.New(), "Jane", 30, "female", "none")
	require.NoError(t, err)
	before := *p

	err = p.ApplyPatch(PatientPatch{Name: strPtr("Janet"), Age: intPtr(200)})
	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "age", vErr.Field)
	assert.Equal(t, before, *p)
}

func TestPatientPatch_IsEmpty(t *testing.T) {
	assert.True(t, PatientPatch{}.IsEmpty())
	assert.False(t, PatientPatch{MedicalHistory: strPtr("")}.IsEmpty())
}
