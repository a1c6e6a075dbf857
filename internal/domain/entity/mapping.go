package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Mapping assigns a Doctor to a Patient. A (patient, doctor) pair appears at most once.
type Mapping struct {
	ID               uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	PatientID        uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_patient_doctor" json:"patient_id"`
	DoctorID         uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_patient_doctor;index" json:"doctor_id"`
	AssignedByUserID uuid.UUID `gorm:"type:uuid;not null;index" json:"assigned_by_user_id"`
	CreatedAt        time.Time `gorm:"autoCreateTime" json:"created_at"`

	// Relationships
	Patient *Patient `gorm:"foreignKey:PatientID;constraint:OnDelete:CASCADE" json:"-"`
	Doctor  *Doctor  `gorm:"foreignKey:DoctorID;constraint:OnDelete:CASCADE" json:"-"`
}

func (Mapping) TableName() string {
	return "patient_doctor_mappings"
}

func (m *Mapping) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}

func (m *Mapping) OwnerID() uuid.UUID {
	return m.AssignedByUserID
}

func NewMapping(patientID, doctorID, assignedBy uuid.UUID) (*Mapping, error) {
	if patientID == uuid.Nil {
		return nil, NewValidationError("patient_id", "patient_id is required")
	}
	if doctorID == uuid.Nil {
		return nil, NewValidationError("doctor_id", "doctor_id is required")
	}
	return &Mapping{
		PatientID:        patientID,
		DoctorID:         doctorID,
		AssignedByUserID: assignedBy,
	}, nil
}

// PatientName and DoctorName are empty unless the relationships were preloaded.
func (m *Mapping) PatientName() string {
	if m.Patient == nil {
		return ""
	}
	return m.Patient.Name
}

func (m *Mapping) DoctorName() string {
	if m.Doctor == nil {
		return ""
	}
	return m.Doctor.Name
}
