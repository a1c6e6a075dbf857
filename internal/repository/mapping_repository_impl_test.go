package repository

import (
	"testing"

	"healthcare-records/internal/domain/entity"
	"healthcare-records/internal/testutil"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fixture struct {
	db       *gorm.DB
	patients *patientRepository
	doctors  *doctorRepository
	mappings *mappingRepository
}

func newFixture(t *testing.T) fixture {
	return fixture{
		db:       testutil.NewDB(t),
		patients: &patientRepository{},
		doctors:  &doctorRepository{},
		mappings: &mappingRepository{},
	}
}

func (f fixture) patient(t *testing.T, owner uuid.UUID, name string) *entity.Patient {
	p, err := entity.NewPatient(owner, name, 40, "male", "")
	require.NoError(t, err)
	require.NoError(t, f.patients.Create(f.db, p))
	return p
}

func (f fixture) doctor(t *testing.T, name, specialization string) *entity.Doctor {
	d, err := entity.NewDoctor(name, specialization, 10, "")
	require.NoError(t, err)
	require.NoError(t, f.doctors.Create(f.db, d))
	return d
}

func TestMappingRepository_UniquePair(t *testing.T) {
	f := newFixture(t)
	owner := uuid.New()
	p := f.patient(t, owner, "John")
	d := f.doctor(t, "House", "Diagnostics")

	first, err := entity.NewMapping(p.ID, d.ID, owner)
	require.NoError(t, err)
	require.NoError(t, f.mappings.Create(f.db, first))

	second, err := entity.NewMapping(p.ID, d.ID, owner)
	require.NoError(t, err)
	err = f.mappings.Create(f.db, second)
	assert.ErrorIs(t, err, gorm.ErrDuplicatedKey)

	all, err := f.mappings.FindAll(f.db)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestMappingRepository_PreloadsNames(t *testing.T) {
	f := newFixture(t)
	owner := uuid.New()
	p := f.patient(t, owner, "John")
	d := f.doctor(t, "House", "Diagnostics")

	m, err := entity.NewMapping(p.ID, d.ID, owner)
	require.NoError(t, err)
	require.NoError(t, f.mappings.Create(f.db, m))

	found, err := f.mappings.FindByID(f.db, m.ID)
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, "John", found.PatientName())
	assert.Equal(t, "House", found.DoctorName())

	pair, err := f.mappings.FindByPair(f.db, p.ID, d.ID)
	require.NoError(t, err)
	require.NotNil(t, pair)
	assert.Equal(t, m.ID, pair.ID)
}

func TestMappingRepository_MissingReferentRejected(t *testing.T) {
	f := newFixture(t)
	owner := uuid.New()
	p := f.patient(t, owner, "John")

	m, err := entity.NewMapping(p.ID, uuid.New(), owner)
	require.NoError(t, err)
	err = f.mappings.Create(f.db, m)
	assert.ErrorIs(t, err, gorm.ErrForeignKeyViolated)
}

func TestMappingRepository_DeleteByPatientAndDoctor(t *testing.T) {
	f := newFixture(t)
	owner := uuid.New()
	p1 := f.patient(t, owner, "John")
	p2 := f.patient(t, owner, "Mary")
	d1 := f.doctor(t, "House", "Diagnostics")
	d2 := f.doctor(t, "Grey", "Surgery")

	for _, pair := range [][2]uuid.UUID{{p1.ID, d1.ID}, {p1.ID, d2.ID}, {p2.ID, d1.ID}} {
		m, err := entity.NewMapping(pair[0], pair[1], owner)
		require.NoError(t, err)
		require.NoError(t, f.mappings.Create(f.db, m))
	}

	n, err := f.mappings.DeleteByPatientID(f.db, p1.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	left, err := f.mappings.FindByPatientID(f.db, p1.ID)
	require.NoError(t, err)
	assert.Empty(t, left)

	n, err = f.mappings.DeleteByDoctorID(f.db, d1.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	all, err := f.mappings.FindAll(f.db)
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestDoctorRepository_FilterBySpecialization(t *testing.T) {
	f := newFixture(t)
	f.doctor(t, "House", "Diagnostics")
	f.doctor(t, "Grey", "General Surgery")
	f.doctor(t, "Shepherd", "Neurosurgery")

	all, err := f.doctors.FindAll(f.db, entity.DoctorFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 3)

	surgeons, err := f.doctors.FindAll(f.db, entity.DoctorFilter{Specialization: "SURGERY"})
	require.NoError(t, err)
	require.Len(t, surgeons, 2)
	assert.Equal(t, "Grey", surgeons[0].Name)
	assert.Equal(t, "Shepherd", surgeons[1].Name)
}

func TestDoctorRepository_FilterTreatsWildcardsLiterally(t *testing.T) {
	f := newFixture(t)
	f.doctor(t, "House", "Diagnostics")
	f.doctor(t, "Care", "Intensive_Care 100%")

	for _, input := range []string{"_", "%"} {
		got, err := f.doctors.FindAll(f.db, entity.DoctorFilter{Specialization: input})
		require.NoError(t, err)
		require.Len(t, got, 1, "filter %q", input)
		assert.Equal(t, "Care", got[0].Name)
	}

	none, err := f.doctors.FindAll(f.db, entity.DoctorFilter{Specialization: "Diag_ostics"})
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestPatientRepository_FindByOwner(t *testing.T) {
	f := newFixture(t)
	alice := uuid.New()
	bob := uuid.New()
	f.patient(t, alice, "John")
	f.patient(t, alice, "Mary")
	f.patient(t, bob, "Zed")

	mine, err := f.patients.FindByOwner(f.db, alice)
	require.NoError(t, err)
	assert.Len(t, mine, 2)

	missing, err := f.patients.FindByID(f.db, uuid.New())
	assert.NoError(t, err)
	assert.Nil(t, missing)
}
