package entity

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestIsOwnedBy(t *testing.T) {
	alice := uuid.New()
	bob := uuid.New()

	patient := &Patient{CreatedByUserID: alice}
	mapping := &Mapping{AssignedByUserID: bob}

	assert.True(t, IsOwnedBy(patient, alice))
	assert.False(t, IsOwnedBy(patient, bob))
	assert.True(t, IsOwnedBy(mapping, bob))
	assert.False(t, IsOwnedBy(mapping, alice))
	assert.False(t, IsOwnedBy(patient, uuid.Nil))
	assert.False(t, IsOwnedBy(nil, alice))
}

func TestIsOwnedBy_AuditLog(t *testing.T) {
	alice := uuid.New()

	assert.True(t, IsOwnedBy(&AuditLog{UserID: &alice}, alice))
	assert.False(t, IsOwnedBy(&AuditLog{}, alice))
}

func TestNewUser(t *testing.T) {
	u, err := NewUser(" Alice ", " Alice@X.com ", "hash")
	assert.NoError(t, err)
	assert.Equal(t, "Alice", u.Name)
	assert.Equal(t, "alice@x.com", u.Email)

	_, err = NewUser("A", "alice@x.com", "hash")
	assert.Error(t, err)

	_, err = NewUser("Alice", "not-an-email", "hash")
	assert.Error(t, err)

	assert.Error(t, ValidatePassword("12345"))
	assert.NoError(t, ValidatePassword("secret1"))
}
