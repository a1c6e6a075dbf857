package service

import (
	"context"

	"healthcare-records/internal/domain/entity"
	"healthcare-records/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// AuditService appends audit rows using the caller's transaction, so an audit
// entry exists if and only if the change it describes was committed.
type AuditService interface {
	LogCreate(ctx context.Context, tx *gorm.DB, userID uuid.UUID, action string, entityName string, entityID string, newValue interface{}) error
	LogUpdate(ctx context.Context, tx *gorm.DB, userID uuid.UUID, action string, entityName string, entityID string, oldValue, newValue interface{}) error
	LogDelete(ctx context.Context, tx *gorm.DB, userID uuid.UUID, action string, entityName string, entityID string, oldValue interface{}) error
	LogEvent(ctx context.Context, tx *gorm.DB, userID uuid.UUID, action string, metadata entity.JSON) error
}

type auditService struct {
	log       *logrus.Logger
	auditRepo repository.AuditLogRepository
}

func NewAuditService(log *logrus.Logger, auditRepo repository.AuditLogRepository) AuditService {
	return &auditService{
		log:       log,
		auditRepo: auditRepo,
	}
}

// LogCreate logs a create action
func (s *auditService) LogCreate(ctx context.Context, tx *gorm.DB, userID uuid.UUID, action string, entityName string, entityID string, newValue interface{}) error {
	return s.write(ctx, tx, userID, action, entity.JSON{
		"entity":    entityName,
		"entity_id": entityID,
		"old_value": nil,
		"new_value": newValue,
	})
}

// LogUpdate logs an update action with old and new values
func (s *auditService) LogUpdate(ctx context.Context, tx *gorm.DB, userID uuid.UUID, action string, entityName string, entityID string, oldValue, newValue interface{}) error {
	return s.write(ctx, tx, userID, action, entity.JSON{
		"entity":    entityName,
		"entity_id": entityID,
		"old_value": oldValue,
		"new_value": newValue,
	})
}

// LogDelete logs a delete action with old value
func (s *auditService) LogDelete(ctx context.Context, tx *gorm.DB, userID uuid.UUID, action string, entityName string, entityID string, oldValue interface{}) error {
	return s.write(ctx, tx, userID, action, entity.JSON{
		"entity":    entityName,
		"entity_id": entityID,
		"old_value": oldValue,
		"new_value": nil,
	})
}

// LogEvent records an action that is not a change to a stored record, such as a login.
func (s *auditService) LogEvent(ctx context.Context, tx *gorm.DB, userID uuid.UUID, action string, metadata entity.JSON) error {
	return s.write(ctx, tx, userID, action, metadata)
}

func (s *auditService) write(ctx context.Context, tx *gorm.DB, userID uuid.UUID, action string, metadata entity.JSON) error {
	auditLog := &entity.AuditLog{
		Action:   action,
		Metadata: metadata,
	}
	if userID != uuid.Nil {
		auditLog.UserID = &userID
	}

	if err := s.auditRepo.Create(tx.WithContext(ctx), auditLog); err != nil {
		s.log.Warnf("Failed to create audit log: %+v", err)
		return err
	}

	return nil
}
