package entity

import (
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	UserNameMinLength     = 2
	UserPasswordMinLength = 6
)

// User is the authentication identity; it owns Patients and authors Mappings.
type User struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name      string    `gorm:"type:varchar(100);not null" json:"name"`
	Email     string    `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	Password  string    `gorm:"type:text;not null" json:"-"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (User) TableName() string {
	return "users"
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

// NormalizeEmail is applied before every uniqueness check and lookup.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// NewUser builds a user from already-hashed credentials.
func NewUser(name, email, passwordHash string) (*User, error) {
	name = strings.TrimSpace(name)
	if utf8.RuneCountInString(name) < UserNameMinLength {
		return nil, NewValidationError("name", "name must be at least 2 characters long")
	}

	email = NormalizeEmail(email)
	if !strings.Contains(email, "@") || !strings.Contains(email, ".") {
		return nil, NewValidationError("email", "please provide a valid email address")
	}

	return &User{
		Name:     name,
		Email:    email,
		Password: passwordHash,
	}, nil
}

// ValidatePassword checks the plaintext before it is hashed.
func ValidatePassword(password string) error {
	if utf8.RuneCountInString(password) < UserPasswordMinLength {
		return NewValidationError("password", "password must be at least 6 characters long")
	}
	return nil
}
