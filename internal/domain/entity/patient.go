package entity

import (
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
	GenderOther  Gender = "other"
)

// ParseGender accepts any casing and surrounding whitespace.
func ParseGender(raw string) (Gender, bool) {
	switch g := Gender(strings.ToLower(strings.TrimSpace(raw))); g {
	case GenderMale, GenderFemale, GenderOther:
		return g, true
	default:
		return "", false
	}
}

const (
	PatientNameMinLength = 2
	PatientNameMaxLength = 100
	PatientAgeMin        = 0
	PatientAgeMax        = 150
)

// Patient is a medical record exclusively owned by the user who created it.
type Patient struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name            string    `gorm:"type:varchar(100);not null" json:"name"`
	Age             int       `gorm:"not null" json:"age"`
	Gender          Gender    `gorm:"type:varchar(20);not null" json:"gender"`
	MedicalHistory  string    `gorm:"type:text" json:"medical_history"`
	CreatedByUserID uuid.UUID `gorm:"type:uuid;not null;index" json:"created_by_user_id"`
	CreatedAt       time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Patient) TableName() string {
	return "patients"
}

func (p *Patient) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

func (p *Patient) OwnerID() uuid.UUID {
	return p.CreatedByUserID
}

// PatientPatch lists the fields a caller may change; nil means untouched.
type PatientPatch struct {
	Name           *string
	Age            *int
	Gender         *string
	MedicalHistory *string
}

func (p PatientPatch) IsEmpty() bool {
	return p.Name == nil && p.Age == nil && p.Gender == nil && p.MedicalHistory == nil
}

func NewPatient(ownerID uuid.UUID, name string, age int, gender string, medicalHistory string) (*Patient, error) {
	validName, err := validatePatientName(name)
	if err != nil {
		return nil, err
	}
	if err := validatePatientAge(age); err != nil {
		return nil, err
	}
	validGender, err := validatePatientGender(gender)
	if err != nil {
		return nil, err
	}

	return &Patient{
		Name:            validName,
		Age:             age,
		Gender:          validGender,
		MedicalHistory:  medicalHistory,
		CreatedByUserID: ownerID,
	}, nil
}

// ApplyPatch validates every supplied field first and only then mutates the patient,
// so a rejected patch leaves it unchanged.
func (p *Patient) ApplyPatch(patch PatientPatch) error {
	next := *p

	if patch.Name != nil {
		name, err := validatePatientName(*patch.Name)
		if err != nil {
			return err
		}
		next.Name = name
	}
	if patch.Age != nil {
		if err := validatePatientAge(*patch.Age); err != nil {
			return err
		}
		next.Age = *patch.Age
	}
	if patch.Gender != nil {
		gender, err := validatePatientGender(*patch.Gender)
		if err != nil {
			return err
		}
		next.Gender = gender
	}
	if patch.MedicalHistory != nil {
		next.MedicalHistory = *patch.MedicalHistory
	}

	*p = next
	return nil
}

func validatePatientName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if n := utf8.RuneCountInString(name); n < PatientNameMinLength {
		return "", NewValidationError("name", "name must be at least 2 characters long")
	} else if n > PatientNameMaxLength {
		return "", NewValidationError("name", "name must be at most 100 characters long")
	}
	return name, nil
}

func validatePatientAge(age int) error {
	if age < PatientAgeMin || age > PatientAgeMax {
		return NewValidationError("age", "age must be a number between 0 and 150")
	}
	return nil
}

func validatePatientGender(raw string) (Gender, error) {
	gender, ok := ParseGender(raw)
	if !ok {
		return "", NewValidationError("gender", "gender must be male, female, or other")
	}
	return gender, nil
}
