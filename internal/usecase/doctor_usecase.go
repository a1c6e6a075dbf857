package usecase

import (
	"context"
	"errors"

	"healthcare-records/internal/converter"
	"healthcare-records/internal/delivery/dto"
	"healthcare-records/internal/domain/entity"
	"healthcare-records/internal/domain/repository"
	"healthcare-records/internal/service"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrDoctorNotFound = errors.New("doctor not found")
)

// DoctorUsecase manages the shared doctor directory. Any authenticated user may
// change any doctor; actorID is recorded for the audit trail only.
type DoctorUsecase interface {
	CreateDoctor(ctx context.Context, actorID uuid.UUID, req *dto.CreateDoctorRequest) (*dto.DoctorResponse, error)
	GetDoctor(ctx context.Context, id uuid.UUID) (*dto.DoctorResponse, error)
	GetAllDoctors(ctx context.Context, filter dto.DoctorFilterRequest) (*dto.DoctorListResponse, error)
	UpdateDoctor(ctx context.Context, id uuid.UUID, actorID uuid.UUID, req *dto.UpdateDoctorRequest) (*dto.DoctorResponse, error)
	DeleteDoctor(ctx context.Context, id uuid.UUID, actorID uuid.UUID) error
}

type doctorUsecase struct {
	db           *gorm.DB
	log          *logrus.Logger
	doctorRepo   repository.DoctorRepository
	mappingRepo  repository.MappingRepository
	auditService service.AuditService
}

func NewDoctorUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	doctorRepo repository.DoctorRepository,
	mappingRepo repository.MappingRepository,
	auditService service.AuditService,
) DoctorUsecase {
	return &doctorUsecase{
		db:           db,
		log:          log,
		doctorRepo:   doctorRepo,
		mappingRepo:  mappingRepo,
		auditService: auditService,
	}
}

func (u *doctorUsecase) CreateDoctor(ctx context.Context, actorID uuid.UUID, req *dto.CreateDoctorRequest) (*dto.DoctorResponse, error) {
	if req.ExperienceYears == nil {
		return nil, entity.NewValidationError("experience_years", "experience_years is required")
	}
	doctor, err := entity.NewDoctor(req.Name, req.Specialization, *req.ExperienceYears, req.ContactInfo)
	if err != nil {
		return nil, err
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	if err := u.doctorRepo.Create(tx, doctor); err != nil {
		u.log.Warnf("Failed to create doctor: %+v", err)
		return nil, err
	}

	res := converter.DoctorToResponse(doctor)
	if err := u.auditService.LogCreate(ctx, tx, actorID, entity.AuditActionDoctorCreate, "doctor", doctor.ID.String(), res); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return res, nil
}

func (u *doctorUsecase) GetDoctor(ctx context.Context, id uuid.UUID) (*dto.DoctorResponse, error) {
	doctor, err := u.doctorRepo.FindByID(u.db.WithContext(ctx), id)
	if err != nil {
		u.log.Warnf("Failed to find doctor: %+v", err)
		return nil, err
	}
	if doctor == nil {
		return nil, ErrDoctorNotFound
	}

	return converter.DoctorToResponse(doctor), nil
}

func (u *doctorUsecase) GetAllDoctors(ctx context.Context, filter dto.DoctorFilterRequest) (*dto.DoctorListResponse, error) {
	doctors, err := u.doctorRepo.FindAll(u.db.WithContext(ctx), filter.ToFilter())
	if err != nil {
		u.log.Warnf("Failed to find all doctors: %+v", err)
		return nil, err
	}

	return &dto.DoctorListResponse{
		Doctors: converter.DoctorsToResponses(doctors),
		Total:   len(doctors),
	}, nil
}

func (u *doctorUsecase) UpdateDoctor(ctx context.Context, id uuid.UUID, actorID uuid.UUID, req *dto.UpdateDoctorRequest) (*dto.DoctorResponse, error) {
	if req.IsEmpty() {
		return nil, ErrEmptyUpdate
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	doctor, err := u.doctorRepo.FindByID(tx, id)
	if err != nil {
		u.log.Warnf("Failed to find doctor: %+v", err)
		return nil, err
	}
	if doctor == nil {
		return nil, ErrDoctorNotFound
	}

	// Capture old value for audit
	oldValue := converter.DoctorToResponse(doctor)
	if err := doctor.ApplyPatch(req.ToPatch()); err != nil {
		return nil, err
	}

	if err := u.doctorRepo.Update(tx, doctor); err != nil {
		u.log.Warnf("Failed to update doctor: %+v", err)
		return nil, err
	}

	res := converter.DoctorToResponse(doctor)
	if err := u.auditService.LogUpdate(ctx, tx, actorID, entity.AuditActionDoctorUpdate, "doctor", doctor.ID.String(), oldValue, res); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return res, nil
}

func (u *doctorUsecase) DeleteDoctor(ctx context.Context, id uuid.UUID, actorID uuid.UUID) error {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	doctor, err := u.doctorRepo.FindByID(tx, id)
	if err != nil {
		u.log.Warnf("Failed to find doctor: %+v", err)
		return err
	}
	if doctor == nil {
		return ErrDoctorNotFound
	}

	removed, err := u.mappingRepo.DeleteByDoctorID(tx, doctor.ID)
	if err != nil {
		u.log.Warnf("Failed to delete mappings for doctor: %+v", err)
		return err
	}

	if err := u.doctorRepo.Delete(tx, doctor.ID); err != nil {
		u.log.Warnf("Failed to delete doctor: %+v", err)
		return err
	}

	if err := u.auditService.LogDelete(ctx, tx, actorID, entity.AuditActionDoctorDelete, "doctor", doctor.ID.String(), converter.DoctorToResponse(doctor)); err != nil {
		return err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return err
	}

	u.log.WithFields(logrus.Fields{"doctor_id": doctor.ID, "mappings_removed": removed}).Info("Doctor deleted")
	return nil
}
