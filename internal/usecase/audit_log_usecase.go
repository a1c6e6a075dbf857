package usecase

import (
	"context"
	"errors"

	"healthcare-records/internal/converter"
	"healthcare-records/internal/delivery/dto"
	"healthcare-records/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrAuditLogNotFound     = errors.New("audit log not found")
	ErrAuditLogAccessDenied = errors.New("you do not have access to this audit log")
)

type AuditLogUsecase interface {
	GetMyAuditLogs(ctx context.Context, userID uuid.UUID) (*dto.AuditLogListResponse, error)
	GetAuditLog(ctx context.Context, id int64, actorID uuid.UUID) (*dto.AuditLogResponse, error)
}

type auditLogUsecase struct {
	db           *gorm.DB
	log          *logrus.Logger
	auditLogRepo repository.AuditLogRepository
}

func NewAuditLogUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	auditLogRepo repository.AuditLogRepository,
) AuditLogUsecase {
	return &auditLogUsecase{
		db:           db,
		log:          log,
		auditLogRepo: auditLogRepo,
	}
}

func (u *auditLogUsecase) GetMyAuditLogs(ctx context.Context, userID uuid.UUID) (*dto.AuditLogListResponse, error) {
	logs, err := u.auditLogRepo.FindByUser(u.db.WithContext(ctx), userID)
	if err != nil {
		u.log.Warnf("Failed to find audit logs: %+v", err)
		return nil, err
	}

	return &dto.AuditLogListResponse{
		Logs:  converter.AuditLogsToResponses(logs),
		Total: len(logs),
	}, nil
}

func (u *auditLogUsecase) GetAuditLog(ctx context.Context, id int64, actorID uuid.UUID) (*dto.AuditLogResponse, error) {
	auditLog, err := u.auditLogRepo.FindByID(u.db.WithContext(ctx), id)
	if err != nil {
		u.log.Warnf("Failed to find audit log: %+v", err)
		return nil, err
	}
	if auditLog == nil {
		return nil, ErrAuditLogNotFound
	}
	if err := authorize(auditLog, actorID, ErrAuditLogAccessDenied); err != nil {
		return nil, err
	}

	return converter.AuditLogToResponse(auditLog), nil
}
