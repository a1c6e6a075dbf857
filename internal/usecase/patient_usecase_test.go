package usecase

import (
	"context"
	"testing"
	"time"

	"healthcare-records/internal/delivery/dto"
	"healthcare-records/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPatientUsecase_CreateGetRoundTrip(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	alice := env.register(t, "Alice", "alice@x.com")

	created, err := env.patients.CreatePatient(ctx, alice, &dto.CreatePatientRequest{
		Name: "John Doe", Age: intPtr(0), Gender: "Male", MedicalHistory: "none",
	})
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, created.ID)
	assert.Equal(t, "male", created.Gender)
	assert.Equal(t, 0, created.Age)
	assert.Equal(t, alice, created.CreatedByUserID)

	got, err := env.patients.GetPatient(ctx, created.ID, alice)
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)
	assert.Equal(t, created.Name, got.Name)
	assert.Equal(t, created.Age, got.Age)
	assert.Equal(t, created.Gender, got.Gender)
	assert.Equal(t, created.MedicalHistory, got.MedicalHistory)
	assert.Equal(t, created.CreatedByUserID, got.CreatedByUserID)
}

func TestPatientUsecase_RejectsOutOfRange(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	alice := env.register(t, "Alice", "alice@x.com")

	tests := []struct {
		name  string
		req   dto.CreatePatientRequest
		field string
	}{
		{"age above range", dto.CreatePatientRequest{Name: "John", Age: intPtr(151), Gender: "male"}, "age"},
		{"negative age", dto.CreatePatientRequest{Name: "John", Age: intPtr(-3), Gender: "male"}, "age"},
		{"missing age", dto.CreatePatientRequest{Name: "John", Gender: "male"}, "age"},
		{"unknown gender", dto.CreatePatientRequest{Name: "John", Age: intPtr(3), Gender: "x"}, "gender"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := env.patients.CreatePatient(ctx, alice, &tt.req)
			var vErr *entity.ValidationError
			require.ErrorAs(t, err, &vErr)
			assert.Equal(t, tt.field, vErr.Field)
		})
	}

	list, err := env.patients.GetMyPatients(ctx, alice)
	require.NoError(t, err)
	assert.Equal(t, 0, list.Total)
}

func TestPatientUsecase_ListScopedToOwner(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	alice := env.register(t, "Alice", "alice@x.com")
	bob := env.register(t, "Bob", "bob@x.com")

	env.createPatient(t, alice, "John")
	env.createPatient(t, alice, "Mary")
	env.createPatient(t, bob, "Zed")

	list, err := env.patients.GetMyPatients(ctx, alice)
	require.NoError(t, err)
	assert.Equal(t, 2, list.Total)
	for _, p := range list.Patients {
		assert.Equal(t, alice, p.CreatedByUserID)
	}
}

func TestPatientUsecase_NonOwnerForbidden(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	alice := env.register(t, "Alice", "alice@x.com")
	bob := env.register(t, "Bob", "bob@x.com")
	p := env.createPatient(t, alice, "John")

	_, err := env.patients.GetPatient(ctx, p.ID, bob)
	assert.ErrorIs(t, err, ErrPatientAccessDenied)

	// Forbidden wins over an invalid or empty payload
	_, err = env.patients.UpdatePatient(ctx, p.ID, bob, &dto.UpdatePatientRequest{Age: intPtr(999)})
	assert.ErrorIs(t, err, ErrPatientAccessDenied)
	_, err = env.patients.UpdatePatient(ctx, p.ID, bob, &dto.UpdatePatientRequest{})
	assert.ErrorIs(t, err, ErrPatientAccessDenied)

	err = env.patients.DeletePatient(ctx, p.ID, bob)
	assert.ErrorIs(t, err, ErrPatientAccessDenied)

	got, err := env.patients.GetPatient(ctx, p.ID, alice)
	require.NoError(t, err)
	assert.Equal(t, 40, got.Age)
}

func TestPatientUsecase_MissingIsNotFound(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	alice := env.register(t, "Alice", "alice@x.com")

	_, err := env.patients.GetPatient(ctx, uuid.New(), alice)
	assert.ErrorIs(t, err, ErrPatientNotFound)
	_, err = env.patients.UpdatePatient(ctx, uuid.New(), alice, &dto.UpdatePatientRequest{Name: strPtr("Jim")})
	assert.ErrorIs(t, err, ErrPatientNotFound)
	assert.ErrorIs(t, env.patients.DeletePatient(ctx, uuid.New(), alice), ErrPatientNotFound)
}

func TestPatientUsecase_PartialUpdate(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	alice := env.register(t, "Alice", "alice@x.com")

	created, err := env.patients.CreatePatient(ctx, alice, &dto.CreatePatientRequest{
		Name: "John", Age: intPtr(30), Gender: "male", MedicalHistory: "asthma",
	})
	require.NoError(t, err)

	time.Sleep(10 * time.Millisecond)
	updated, err := env.patients.UpdatePatient(ctx, created.ID, alice, &dto.UpdatePatientRequest{Age: intPtr(31)})
	require.NoError(t, err)
	assert.Equal(t, 31, updated.Age)
	assert.Equal(t, created.Name, updated.Name)
	assert.Equal(t, created.Gender, updated.Gender)
	assert.Equal(t, created.MedicalHistory, updated.MedicalHistory)
	assert.True(t, updated.UpdatedAt.After(created.UpdatedAt))

	_, err = env.patients.UpdatePatient(ctx, created.ID, alice, &dto.UpdatePatientRequest{})
	assert.ErrorIs(t, err, ErrEmptyUpdate)

	_, err = env.patients.UpdatePatient(ctx, created.ID, alice, &dto.UpdatePatientRequest{Gender: strPtr("robot"), Name: strPtr("Johnny")})
	var vErr *entity.ValidationError
	require.ErrorAs(t, err, &vErr)

	got, err := env.patients.GetPatient(ctx, created.ID, alice)
	require.NoError(t, err)
	assert.Equal(t, "John", got.Name)
}

func TestPatientUsecase_DeleteCascadesMappings(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	alice := env.register(t, "Alice", "alice@x.com")
	p := env.createPatient(t, alice, "John")
	d1 := env.createDoctor(t, alice, "House", "Diagnostics")
	d2 := env.createDoctor(t, alice, "Grey", "Surgery")

	for _, d := range []uuid.UUID{d1.ID, d2.ID} {
		_, err := env.mappings.CreateMapping(ctx, alice, &dto.CreateMappingRequest{PatientID: p.ID.String(), DoctorID: d.String()})
		require.NoError(t, err)
	}
	require.Equal(t, int64(2), env.countMappings(t))

	require.NoError(t, env.patients.DeletePatient(ctx, p.ID, alice))

	assert.Equal(t, int64(0), env.countMappings(t))
	_, err := env.mappings.GetPatientMappings(ctx, p.ID, alice)
	assert.ErrorIs(t, err, ErrPatientNotFound)
	_, err = env.patients.GetPatient(ctx, p.ID, alice)
	assert.ErrorIs(t, err, ErrPatientNotFound)
}

func TestPatientUsecase_CheckPatientAccess(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	alice := env.register(t, "Alice", "alice@x.com")
	bob := env.register(t, "Bob", "bob@x.com")
	patient := env.createPatient(t, alice, "John Doe")

	assert.NoError(t, env.patients.CheckPatientAccess(ctx, patient.ID, alice))
	assert.ErrorIs(t, env.patients.CheckPatientAccess(ctx, patient.ID, bob), ErrPatientAccessDenied)
	assert.ErrorIs(t, env.patients.CheckPatientAccess(ctx, uuid.New(), alice), ErrPatientNotFound)
}
