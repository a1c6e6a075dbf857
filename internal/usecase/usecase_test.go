package usecase

import (
	"context"
	"sync"
	"testing"
	"time"

	"healthcare-records/config"
	"healthcare-records/internal/delivery/dto"
	"healthcare-records/internal/domain/entity"
	"healthcare-records/internal/repository"
	"healthcare-records/internal/service"
	"healthcare-records/internal/testutil"
	"healthcare-records/pkg/jwt"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type recordingPublisher struct {
	mu     sync.Mutex
	events []entity.MappingEvent
	err    error
}

func (p *recordingPublisher) PublishMappingEvent(_ context.Context, event entity.MappingEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
	return p.err
}

type testEnv struct {
	db         *gorm.DB
	redis      *miniredis.Miniredis
	jwtService *jwt.JWTService
	tokens     service.TokenStore
	events     *recordingPublisher

	auth     AuthUsecase
	patients PatientUsecase
	doctors  DoctorUsecase
	mappings MappingUsecase
	audit    AuditLogUsecase
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db := testutil.NewDB(t)
	log := testutil.NewLogger()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	jwtService := jwt.NewJWTService(config.JWTConfig{
		Secret:        "test-secret",
		AccessExpiry:  15 * time.Minute,
		RefreshExpiry: time.Hour,
	})
	tokens := service.NewRedisTokenStore(client, log)
	events := &recordingPublisher{}

	userRepo := repository.NewUserRepository()
	patientRepo := repository.NewPatientRepository()
	doctorRepo := repository.NewDoctorRepository()
	mappingRepo := repository.NewMappingRepository()
	auditRepo := repository.NewAuditLogRepository()
	auditService := service.NewAuditService(log, auditRepo)

	return &testEnv{
		db:         db,
		redis:      mr,
		jwtService: jwtService,
		tokens:     tokens,
		events:     events,
		auth:       NewAuthUsecase(db, log, userRepo, auditService, tokens, jwtService),
		patients:   NewPatientUsecase(db, log, patientRepo, mappingRepo, auditService),
		doctors:    NewDoctorUsecase(db, log, doctorRepo, mappingRepo, auditService),
		mappings:   NewMappingUsecase(db, log, mappingRepo, patientRepo, doctorRepo, auditService, events),
		audit:      NewAuditLogUsecase(db, log, auditRepo),
	}
}

func (e *testEnv) register(t *testing.T, name, email string) uuid.UUID {
	t.Helper()
	res, err := e.auth.Register(context.Background(), &dto.RegisterRequest{Name: name, Email: email, Password: "secret1"})
	require.NoError(t, err)
	return res.User.ID
}

func (e *testEnv) createPatient(t *testing.T, owner uuid.UUID, name string) *dto.PatientResponse {
	t.Helper()
	age := 40
	res, err := e.patients.CreatePatient(context.Background(), owner, &dto.CreatePatientRequest{Name: name, Age: &age, Gender: "male"})
	require.NoError(t, err)
	return res
}

func (e *testEnv) createDoctor(t *testing.T, actor uuid.UUID, name, specialization string) *dto.DoctorResponse {
	t.Helper()
	years := 10
	res, err := e.doctors.CreateDoctor(context.Background(), actor, &dto.CreateDoctorRequest{Name: name, Specialization: specialization, ExperienceYears: &years})
	require.NoError(t, err)
	return res
}

func (e *testEnv) countMappings(t *testing.T) int64 {
	t.Helper()
	var n int64
	require.NoError(t, e.db.Model(&entity.Mapping{}).Count(&n).Error)
	return n
}

func strPtr(s string) *string { return &s }
func intPtr(i int) *int       { return &i }
