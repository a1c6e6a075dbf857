package repository

import (
	"errors"

	"healthcare-records/internal/domain/entity"
	domainRepo "healthcare-records/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type mappingRepository struct{}

func NewMappingRepository() domainRepo.MappingRepository {
	return &mappingRepository{}
}

func (r *mappingRepository) Create(db *gorm.DB, mapping *entity.Mapping) error {
	return db.Omit("Patient", "Doctor").Create(mapping).Error
}

func (r *mappingRepository) FindByID(db *gorm.DB, id uuid.UUID) (*entity.Mapping, error) {
	var mapping entity.Mapping
	err := db.Preload("Patient").Preload("Doctor").Where("id = ?", id).First(&mapping).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &mapping, nil
}

func (r *mappingRepository) FindByPair(db *gorm.DB, patientID, doctorID uuid.UUID) (*entity.Mapping, error) {
	var mapping entity.Mapping
	err := db.Where("patient_id = ? AND doctor_id = ?", patientID, doctorID).First(&mapping).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &mapping, nil
}

func (r *mappingRepository) FindAll(db *gorm.DB) ([]entity.Mapping, error) {
	var mappings []entity.Mapping
	err := db.Preload("Patient").Preload("Doctor").
		Order("created_at DESC").
		Find(&mappings).Error
	if err != nil {
		return nil, err
	}
	return mappings, nil
}

func (r *mappingRepository) FindByPatientID(db *gorm.DB, patientID uuid.UUID) ([]entity.Mapping, error) {
	var mappings []entity.Mapping
	err := db.Preload("Patient").Preload("Doctor").
		Where("patient_id = ?", patientID).
		Order("created_at DESC").
		Find(&mappings).Error
	if err != nil {
		return nil, err
	}
	return mappings, nil
}

func (r *mappingRepository) Delete(db *gorm.DB, id uuid.UUID) error {
	return db.Where("id = ?", id).Delete(&entity.Mapping{}).Error
}

func (r *mappingRepository) DeleteByPatientID(db *gorm.DB, patientID uuid.UUID) (int64, error) {
	result := db.Where("patient_id = ?", patientID).Delete(&entity.Mapping{})
	return result.RowsAffected, result.Error
}

func (r *mappingRepository) DeleteByDoctorID(db *gorm.DB, doctorID uuid.UUID) (int64, error) {
	result := db.Where("doctor_id = ?", doctorID).Delete(&entity.Mapping{})
	return result.RowsAffected, result.Error
}
