package entity

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// AuditLog is an append-only trail entry written in the same transaction as the change it records.
type AuditLog struct {
	ID        int64      `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID    *uuid.UUID `gorm:"type:uuid;index" json:"user_id,omitempty"`
	Action    string     `gorm:"type:varchar(100);not null;index" json:"action"`
	Metadata  JSON       `gorm:"type:jsonb" json:"metadata,omitempty"`
	CreatedAt time.Time  `gorm:"autoCreateTime;index" json:"created_at"`
}

func (AuditLog) TableName() string {
	return "audit_logs"
}

// OwnerID is uuid.Nil for entries written without an acting user, which nobody may read.
func (a *AuditLog) OwnerID() uuid.UUID {
	if a.UserID == nil {
		return uuid.Nil
	}
	return *a.UserID
}

// JSON type for GORM JSONB support
type JSON map[string]interface{}

// Value returns json value, implement driver.Valuer interface
func (j JSON) Value() (driver.Value, error) {
	if len(j) == 0 {
		return nil, nil
	}
	b, err := json.Marshal(j)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan scan value into Jsonb, implements sql.Scanner interface
func (j *JSON) Scan(value interface{}) error {
	if value == nil {
		*j = nil
		return nil
	}
	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return fmt.Errorf("failed to unmarshal JSONB value: %v", value)
	}

	result := map[string]interface{}{}
	err := json.Unmarshal(bytes, &result)
	*j = JSON(result)
	return err
}

const (
	AuditActionUserRegister  = "user.register"
	AuditActionUserLogin     = "user.login"
	AuditActionUserLogout    = "user.logout"
	AuditActionPatientCreate = "patient.create"
	AuditActionPatientUpdate = "patient.update"
	AuditActionPatientDelete = "patient.delete"
	AuditActionDoctorCreate  = "doctor.create"
	AuditActionDoctorUpdate  = "doctor.update"
	AuditActionDoctorDelete  = "doctor.delete"
	AuditActionMappingCreate = "mapping.create"
	AuditActionMappingDelete = "mapping.delete"
)
