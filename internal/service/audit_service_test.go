package service

import (
	"context"
	"testing"

	"healthcare-records/internal/domain/entity"
	"healthcare-records/internal/repository"
	"healthcare-records/internal/testutil"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuditService_WritesWithinTransaction(t *testing.T) {
	db := testutil.NewDB(t)
	repo := repository.NewAuditLogRepository()
	svc := NewAuditService(testutil.NewLogger(), repo)
	ctx := context.Background()
	userID := uuid.New()

	tx := db.Begin()
	require.NoError(t, svc.LogCreate(ctx, tx, userID, entity.AuditActionPatientCreate, "patient", "p1", map[string]any{"name": "John"}))
	require.NoError(t, tx.Commit().Error)

	tx = db.Begin()
	require.NoError(t, svc.LogDelete(ctx, tx, userID, entity.AuditActionPatientDelete, "patient", "p1", nil))
	tx.Rollback()

	logs, err := repo.FindByUser(db, userID)
	require.NoError(t, err)
	require.Len(t, logs, 1)
	assert.Equal(t, entity.AuditActionPatientCreate, logs[0].Action)
	assert.Equal(t, "patient", logs[0].Metadata["entity"])
	assert.Equal(t, "p1", logs[0].Metadata["entity_id"])

	newValue, ok := logs[0].Metadata["new_value"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "John", newValue["name"])
}

func TestAuditService_NilUserStoresNull(t *testing.T) {
	db := testutil.NewDB(t)
	repo := repository.NewAuditLogRepository()
	svc := NewAuditService(testutil.NewLogger(), repo)

	require.NoError(t, svc.LogEvent(context.Background(), db, uuid.Nil, entity.AuditActionUserLogin, entity.JSON{"ok": true}))

	var log entity.AuditLog
	require.NoError(t, db.First(&log).Error)
	assert.Nil(t, log.UserID)
	assert.Equal(t, uuid.Nil, log.OwnerID())
}
