package repository

import (
	"testing"

	"healthcare-records/internal/domain/entity"
	"healthcare-records/internal/testutil"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestUserRepository_CreateAndFind(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewUserRepository()

	user := &entity.User{Name: "Alice", Email: "alice@x.com", Password: "hash"}
	require.NoError(t, repo.Create(db, user))
	assert.NotEqual(t, uuid.Nil, user.ID)

	byEmail, err := repo.FindByEmail(db, "alice@x.com")
	require.NoError(t, err)
	require.NotNil(t, byEmail)
	assert.Equal(t, user.ID, byEmail.ID)

	byID, err := repo.FindByID(db, user.ID)
	require.NoError(t, err)
	require.NotNil(t, byID)
	assert.Equal(t, "Alice", byID.Name)
}

func TestUserRepository_MissingReturnsNil(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewUserRepository()

	user, err := repo.FindByEmail(db, "nobody@x.com")
	assert.NoError(t, err)
	assert.Nil(t, user)

	user, err = repo.FindByID(db, uuid.New())
	assert.NoError(t, err)
	assert.Nil(t, user)
}

func TestUserRepository_DuplicateEmail(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewUserRepository()

	require.NoError(t, repo.Create(db, &entity.User{Name: "Alice", Email: "alice@x.com", Password: "h"}))
	err := repo.Create(db, &entity.User{Name: "Alice2", Email: "alice@x.com", Password: "h"})
	assert.ErrorIs(t, err, gorm.ErrDuplicatedKey)
}
