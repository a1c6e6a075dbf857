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
	ErrPatientNotFound     = errors.New("patient not found")
	ErrPatientAccessDenied = errors.New("you do not have access to this patient")
)

type PatientUsecase interface {
	CreatePatient(ctx context.Context, ownerID uuid.UUID, req *dto.CreatePatientRequest) (*dto.PatientResponse, error)
	GetPatient(ctx context.Context, id uuid.UUID, actorID uuid.UUID) (*dto.PatientResponse, error)
	CheckPatientAccess(ctx context.Context, id uuid.UUID, actorID uuid.UUID) error
	GetMyPatients(ctx context.Context, ownerID uuid.UUID) (*dto.PatientListResponse, error)
	UpdatePatient(ctx context.Context, id uuid.UUID, actorID uuid.UUID, req *dto.UpdatePatientRequest) (*dto.PatientResponse, error)
	DeletePatient(ctx context.Context, id uuid.UUID, actorID uuid.UUID) error
}

type patientUsecase struct {
	db           *gorm.DB
	log          *logrus.Logger
	patientRepo  repository.PatientRepository
	mappingRepo  repository.MappingRepository
	auditService service.AuditService
}

func NewPatientUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	patientRepo repository.PatientRepository,
	mappingRepo repository.MappingRepository,
	auditService service.AuditService,
) PatientUsecase {
	return &patientUsecase{
		db:           db,
		log:          log,
		patientRepo:  patientRepo,
		mappingRepo:  mappingRepo,
		auditService: auditService,
	}
}

func (u *patientUsecase) CreatePatient(ctx context.Context, ownerID uuid.UUID, req *dto.CreatePatientRequest) (*dto.PatientResponse, error) {
	if req.Age == nil {
		return nil, entity.NewValidationError("age", "age is required")
	}
	patient, err := entity.NewPatient(ownerID, req.Name, *req.Age, req.Gender, req.MedicalHistory)
	if err != nil {
		return nil, err
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	if err := u.patientRepo.Create(tx, patient); err != nil {
		u.log.Warnf("Failed to create patient: %+v", err)
		return nil, err
	}

	res := converter.PatientToResponse(patient)
	if err := u.auditService.LogCreate(ctx, tx, ownerID, entity.AuditActionPatientCreate, "patient", patient.ID.String(), res); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return res, nil
}

func (u *patientUsecase) GetPatient(ctx context.Context, id uuid.UUID, actorID uuid.UUID) (*dto.PatientResponse, error) {
	patient, err := u.findOwned(u.db.WithContext(ctx), id, actorID)
	if err != nil {
		return nil, err
	}

	return converter.PatientToResponse(patient), nil
}

// CheckPatientAccess reports ErrPatientNotFound or ErrPatientAccessDenied without
// loading anything else, so callers can refuse a request before reading its body.
func (u *patientUsecase) CheckPatientAccess(ctx context.Context, id uuid.UUID, actorID uuid.UUID) error {
	_, err := u.findOwned(u.db.WithContext(ctx), id, actorID)
	return err
}

func (u *patientUsecase) GetMyPatients(ctx context.Context, ownerID uuid.UUID) (*dto.PatientListResponse, error) {
	patients, err := u.patientRepo.FindByOwner(u.db.WithContext(ctx), ownerID)
	if err != nil {
		u.log.Warnf("Failed to find patients: %+v", err)
		return nil, err
	}

	return &dto.PatientListResponse{
		Patients: converter.PatientsToResponses(patients),
		Total:    len(patients),
	}, nil
}

// UpdatePatient checks ownership before looking at the payload, so a non-owner
// is refused whatever the request contains.
func (u *patientUsecase) UpdatePatient(ctx context.Context, id uuid.UUID, actorID uuid.UUID, req *dto.UpdatePatientRequest) (*dto.PatientResponse, error) {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	patient, err := u.findOwned(tx, id, actorID)
	if err != nil {
		return nil, err
	}

	if req.IsEmpty() {
		return nil, ErrEmptyUpdate
	}

	oldValue := converter.PatientToResponse(patient)
	if err := patient.ApplyPatch(req.ToPatch()); err != nil {
		return nil, err
	}

	if err := u.patientRepo.Update(tx, patient); err != nil {
		u.log.Warnf("Failed to update patient: %+v", err)
		return nil, err
	}

	res := converter.PatientToResponse(patient)
	if err := u.auditService.LogUpdate(ctx, tx, actorID, entity.AuditActionPatientUpdate, "patient", patient.ID.String(), oldValue, res); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return res, nil
}

// DeletePatient removes the patient's mappings and the patient in one transaction.
func (u *patientUsecase) DeletePatient(ctx context.Context, id uuid.UUID, actorID uuid.UUID) error {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	patient, err := u.findOwned(tx, id, actorID)
	if err != nil {
		return err
	}

	removed, err := u.mappingRepo.DeleteByPatientID(tx, patient.ID)
	if err != nil {
		u.log.Warnf("Failed to delete mappings for patient: %+v", err)
		return err
	}

	if err := u.patientRepo.Delete(tx, patient.ID); err != nil {
		u.log.Warnf("Failed to delete patient: %+v", err)
		return err
	}

	if err := u.auditService.LogDelete(ctx, tx, actorID, entity.AuditActionPatientDelete, "patient", patient.ID.String(), converter.PatientToResponse(patient)); err != nil {
		return err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return err
	}

	u.log.WithFields(logrus.Fields{"patient_id": patient.ID, "mappings_removed": removed}).Info("Patient deleted")
	return nil
}

func (u *patientUsecase) findOwned(db *gorm.DB, id uuid.UUID, actorID uuid.UUID) (*entity.Patient, error) {
	patient, err := u.patientRepo.FindByID(db, id)
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
	return patient, nil
}
