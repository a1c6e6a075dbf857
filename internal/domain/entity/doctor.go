package entity

import (
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	DoctorNameMinLength           = 2
	DoctorNameMaxLength           = 100
	DoctorSpecializationMinLength = 2
	DoctorSpecializationMaxLength = 100
	DoctorExperienceMin           = 0
	DoctorExperienceMax           = 60
)

// Doctor is a practitioner in the shared directory. Doctors have no owner.
type Doctor struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name            string    `gorm:"type:varchar(100);not null" json:"name"`
	Specialization  string    `gorm:"type:varchar(100);not null;index" json:"specialization"`
	ExperienceYears int       `gorm:"not null" json:"experience_years"`
	ContactInfo     string    `gorm:"type:text" json:"contact_info"`
	CreatedAt       time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Doctor) TableName() string {
	return "doctors"
}

func (d *Doctor) BeforeCreate(tx *gorm.DB) error {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	return nil
}

type DoctorPatch struct {
	Name            *string
	Specialization  *string
	ExperienceYears *int
	ContactInfo     *string
}

func (p DoctorPatch) IsEmpty() bool {
	return p.Name == nil && p.Specialization == nil && p.ExperienceYears == nil && p.ContactInfo == nil
}

// DoctorFilter narrows the directory listing. Empty fields match everything.
type DoctorFilter struct {
	Specialization string
}

func NewDoctor(name, specialization string, experienceYears int, contactInfo string) (*Doctor, error) {
	validName, err := validateDoctorName(name)
	if err != nil {
		return nil, err
	}
	validSpecialization, err := validateSpecialization(specialization)
	if err != nil {
		return nil, err
	}
	if err := validateExperience(experienceYears); err != nil {
		return nil, err
	}

	return &Doctor{
		Name:            validName,
		Specialization:  validSpecialization,
		ExperienceYears: experienceYears,
		ContactInfo:     contactInfo,
	}, nil
}

func (d *Doctor) ApplyPatch(patch DoctorPatch) error {
	next := *d

	if patch.Name != nil {
		name, err := validateDoctorName(*patch.Name)
		if err != nil {
			return err
		}
		next.Name = name
	}
	if patch.Specialization != nil {
		specialization, err := validateSpecialization(*patch.Specialization)
		if err != nil {
			return err
		}
		next.Specialization = specialization
	}
	if patch.ExperienceYears != nil {
		if err := validateExperience(*patch.ExperienceYears); err != nil {
			return err
		}
		next.ExperienceYears = *patch.ExperienceYears
	}
	if patch.ContactInfo != nil {
		next.ContactInfo = *patch.ContactInfo
	}

	*d = next
	return nil
}

func validateDoctorName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if n := utf8.RuneCountInString(name); n < DoctorNameMinLength {
		return "", NewValidationError("name", "name must be at least 2 characters long")
	} else if n > DoctorNameMaxLength {
		return "", NewValidationError("name", "name must be at most 100 characters long")
	}
	return name, nil
}

func validateSpecialization(specialization string) (string, error) {
	specialization = strings.TrimSpace(specialization)
	if n := utf8.RuneCountInString(specialization); n < DoctorSpecializationMinLength {
		return "", NewValidationError("specialization", "specialization must be at least 2 characters long")
	} else if n > DoctorSpecializationMaxLength {
		return "", NewValidationError("specialization", "specialization must be at most 100 characters long")
	}
	return specialization, nil
}

func validateExperience(years int) error {
	if years < DoctorExperienceMin || years > DoctorExperienceMax {
		return NewValidationError("experience_years", "experience years must be a number between 0 and 60")
	}
	return nil
}
