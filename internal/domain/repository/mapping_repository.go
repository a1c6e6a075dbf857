package repository

import (
	"healthcare-records/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type MappingRepository interface {
	Create(db *gorm.DB, mapping *entity.Mapping) error
	FindByID(db *gorm.DB, id uuid.UUID) (*entity.Mapping, error)
	FindByPair(db *gorm.DB, patientID, doctorID uuid.UUID) (*entity.Mapping, error)
	FindAll(db *gorm.DB) ([]entity.Mapping, error)
	FindByPatientID(db *gorm.DB, patientID uuid.UUID) ([]entity.Mapping, error)
	Delete(db *gorm.DB, id uuid.UUID) error
	DeleteByPatientID(db *gorm.DB, patientID uuid.UUID) (int64, error)
	DeleteByDoctorID(db *gorm.DB, doctorID uuid.UUID) (int64, error)
}
