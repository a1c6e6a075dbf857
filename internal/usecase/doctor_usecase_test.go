package usecase

import (
	"context"
	"testing"

	"healthcare-records/internal/delivery/dto"
	"healthcare-records/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDoctorUsecase_CRUD(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	alice := env.register(t, "Alice", "alice@x.com")
	bob := env.register(t, "Bob", "bob@x.com")

	created := env.createDoctor(t, alice, "House", "Diagnostics")

	got, err := env.doctors.GetDoctor(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "House", got.Name)

	// The directory is shared: another user may edit
	updated, err := env.doctors.UpdateDoctor(ctx, created.ID, bob, &dto.UpdateDoctorRequest{ExperienceYears: intPtr(25)})
	require.NoError(t, err)
	assert.Equal(t, 25, updated.ExperienceYears)
	assert.Equal(t, "Diagnostics", updated.Specialization)

	require.NoError(t, env.doctors.DeleteDoctor(ctx, created.ID, bob))
	_, err = env.doctors.GetDoctor(ctx, created.ID)
	assert.ErrorIs(t, err, ErrDoctorNotFound)
}

func TestDoctorUsecase_Validation(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	alice := env.register(t, "Alice", "alice@x.com")

	_, err := env.doctors.CreateDoctor(ctx, alice, &dto.CreateDoctorRequest{Name: "House", Specialization: "Diagnostics", ExperienceYears: intPtr(61)})
	var vErr *entity.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "experience_years", vErr.Field)

	_, err = env.doctors.CreateDoctor(ctx, alice, &dto.CreateDoctorRequest{Name: "House", Specialization: "Diagnostics"})
	require.ErrorAs(t, err, &vErr)

	d := env.createDoctor(t, alice, "House", "Diagnostics")
	_, err = env.doctors.UpdateDoctor(ctx, d.ID, alice, &dto.UpdateDoctorRequest{})
	assert.ErrorIs(t, err, ErrEmptyUpdate)

	_, err = env.doctors.UpdateDoctor(ctx, uuid.New(), alice, &dto.UpdateDoctorRequest{Name: strPtr("Wilson")})
	assert.ErrorIs(t, err, ErrDoctorNotFound)
}

func TestDoctorUsecase_FilterAndDeleteCascade(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	alice := env.register(t, "Alice", "alice@x.com")
	p := env.createPatient(t, alice, "John")
	surgeon := env.createDoctor(t, alice, "Grey", "General Surgery")
	env.createDoctor(t, alice, "House", "Diagnostics")

	list, err := env.doctors.GetAllDoctors(ctx, dto.DoctorFilterRequest{Specialization: "surgery"})
	require.NoError(t, err)
	require.Equal(t, 1, list.Total)
	assert.Equal(t, surgeon.ID, list.Doctors[0].ID)

	list, err = env.doctors.GetAllDoctors(ctx, dto.DoctorFilterRequest{})
	require.NoError(t, err)
	assert.Equal(t, 2, list.Total)

	_, err = env.mappings.CreateMapping(ctx, alice, &dto.CreateMappingRequest{PatientID: p.ID.String(), DoctorID: surgeon.ID.String()})
	require.NoError(t, err)

	require.NoError(t, env.doctors.DeleteDoctor(ctx, surgeon.ID, alice))
	assert.Equal(t, int64(0), env.countMappings(t))
	assert.ErrorIs(t, env.doctors.DeleteDoctor(ctx, surgeon.ID, alice), ErrDoctorNotFound)
}
