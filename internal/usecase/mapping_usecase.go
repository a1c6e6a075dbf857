package usecase

import (
	"context"
	"errors"
	"time"

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
	ErrMappingNotFound      = errors.New("mapping not found")
	ErrMappingAccessDenied  = errors.New("you do not have access to this mapping")
	ErrMappingAlreadyExists = errors.New("doctor is already assigned to this patient")
)

type MappingUsecase interface {
	CreateMapping(ctx context.Context, actorID uuid.UUID, req *dto.CreateMappingRequest) (*dto.MappingResponse, error)
	GetAllMappings(ctx context.Context) (*dto.MappingListResponse, error)
	GetPatientMappings(ctx context.Context, patientID uuid.UUID, actorID uuid.UUID) (*dto.MappingListResponse, error)
	DeleteMapping(ctx context.Context, id uuid.UUID, actorID uuid.UUID) error
}

type mappingUsecase struct {
	db           *gorm.DB
	log          *logrus.Logger
	mappingRepo  repository.MappingRepository
	patientRepo  repository.PatientRepository
	doctorRepo   repository.DoctorRepository
	auditService service.AuditService
	events       service.EventPublisher
}

func NewMappingUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	mappingRepo repository.MappingRepository,
	patientRepo repository.PatientRepository,
	doctorRepo repository.DoctorRepository,
	auditService service.AuditService,
	events service.EventPublisher,
) MappingUsecase {
	return &mappingUsecase{
		db:           db,
		log:          log,
		mappingRepo:  mappingRepo,
		patientRepo:  patientRepo,
		doctorRepo:   doctorRepo,
		auditService: auditService,
		events:       events,
	}
}

// CreateMapping assigns a doctor to one of the actor's patients. The pair lookup
// only short-circuits the common case; the unique index decides races.
func (u *mappingUsecase) CreateMapping(ctx context.Context, actorID uuid.UUID, req *dto.CreateMappingRequest) (*dto.MappingResponse, error) {
	patientID, err := uuid.Parse(req.PatientID)
	if err != nil {
		return nil, entity.NewValidationError("patient_id", "patient_id must be a valid UUID")
	}
	doctorID, err := uuid.Parse(req.DoctorID)
	if err != nil {
		return nil, entity.NewValidationError("doctor_id", "doctor_id must be a valid UUID")
	}
	mapping, err := entity.NewMapping(patientID, doctorID, actorID)
	if err != nil {
		return nil, err
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	patient, err := u.patientRepo.FindByID(tx, patientID)
	if err != nil {
		u.log.Warnf("Failed to find patient: %+v", err)
		return nil, err
	}
	if patient == nil {
		return nil, ErrPatientNotFound
	}
	if err := authorize(patient, actorID, ErrPatientAccessDenied); err != nil {
		return nil, err
	}

	doctor, err := u.doctorRepo.FindByID(tx, doctorID)
	if err != nil {
		u.log.Warnf("Failed to find doctor: %+v", err)
		return nil, err
	}
	if doctor == nil {
		return nil, ErrDoctorNotFound
	}

	existing, err := u.mappingRepo.FindByPair(tx, patientID, doctorID)
	if err != nil {
		u.log.Warnf("Failed to find mapping: %+v", err)
		return nil, err
	}
	if existing != nil {
		return nil, ErrMappingAlreadyExists
	}

	if err := u.mappingRepo.Create(tx, mapping); err != nil {
		if isDuplicateKeyError(err, "idx_patient_doctor") {
			return nil, ErrMappingAlreadyExists
		}
		if isForeignKeyError(err, "") {
			tx.Rollback()
			return nil, u.missingReferent(ctx, err, patientID)
		}
		u.log.Warnf("Failed to create mapping: %+v", err)
		return nil, err
	}

	mapping.Patient = patient
	mapping.Doctor = doctor
	res := converter.MappingToResponse(mapping)

	if err := u.auditService.LogCreate(ctx, tx, actorID, entity.AuditActionMappingCreate, "mapping", mapping.ID.String(), res); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		if isDuplicateKeyError(err, "idx_patient_doctor") {
			return nil, ErrMappingAlreadyExists
		}
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	u.publish(ctx, entity.EventMappingCreated, mapping)
	return res, nil
}

func (u *mappingUsecase) GetAllMappings(ctx context.Context) (*dto.MappingListResponse, error) {
	mappings, err := u.mappingRepo.FindAll(u.db.WithContext(ctx))
	if err != nil {
		u.log.Warnf("Failed to find all mappings: %+v", err)
		return nil, err
	}

	return &dto.MappingListResponse{
		Mappings: converter.MappingsToResponses(mappings),
		Total:    len(mappings),
	}, nil
}

func (u *mappingUsecase) GetPatientMappings(ctx context.Context, patientID uuid.UUID, actorID uuid.UUID) (*dto.MappingListResponse, error) {
	db := u.db.WithContext(ctx)

	patient, err := u.patientRepo.FindByID(db, patientID)
	if err != nil {
		u.log.Warnf("Failed to find patient: %+v", err)
		return nil, err
	}
	if patient == nil {
		return nil, ErrPatientNotFound
	}
	if err := authorize(patient, actorID, ErrPatientAccessDenied); err != nil {
		return nil, err
	}

	mappings, err := u.mappingRepo.FindByPatientID(db, patientID)
	if err != nil {
		u.log.Warnf("Failed to find mappings for patient: %+v", err)
		return nil, err
	}

	return &dto.MappingListResponse{
		Mappings: converter.MappingsToResponses(mappings),
		Total:    len(mappings),
	}, nil
}

// DeleteMapping is restricted to the user who created the assignment.
func (u *mappingUsecase) DeleteMapping(ctx context.Context, id uuid.UUID, actorID uuid.UUID) error {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	mapping, err := u.mappingRepo.FindByID(tx, id)
	if err != nil {
		u.log.Warnf("Failed to find mapping: %+v", err)
		return err
	}
	if mapping == nil {
		return ErrMappingNotFound
	}
	if err := authorize(mapping, actorID, ErrMappingAccessDenied); err != nil {
		return err
	}

	if err := u.mappingRepo.Delete(tx, mapping.ID); err != nil {
		u.log.Warnf("Failed to delete mapping: %+v", err)
		return err
	}

	if err := u.auditService.LogDelete(ctx, tx, actorID, entity.AuditActionMappingDelete, "mapping", mapping.ID.String(), converter.MappingToResponse(mapping)); err != nil {
		return err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return err
	}

	u.publish(ctx, entity.EventMappingDeleted, mapping)
	return nil
}

// missingReferent tells which side of a mapping vanished between the lookups
// and the insert. Must be called after the transaction is released.
func (u *mappingUsecase) missingReferent(ctx context.Context, cause error, patientID uuid.UUID) error {
	patient, err := u.patientRepo.FindByID(u.db.WithContext(ctx), patientID)
	if err != nil {
		u.log.Warnf("Failed to create mapping: %+v", cause)
		return err
	}
	if patient == nil {
		return ErrPatientNotFound
	}
	return ErrDoctorNotFound
}

// publish runs after commit; a broker failure is logged and never undoes the change.
func (u *mappingUsecase) publish(ctx context.Context, eventType string, mapping *entity.Mapping) {
	event := entity.NewMappingEvent(eventType, mapping, time.Now())
	if err := u.events.PublishMappingEvent(ctx, event); err != nil {
		u.log.WithFields(logrus.Fields{
			"event":      eventType,
			"mapping_id": mapping.ID,
		}).Warnf("Failed to publish mapping event: %+v", err)
	}
}
