package entity

import "github.com/google/uuid"

// Owned is implemented by records whose access is restricted to the user that created them.
type Owned interface {
	OwnerID() uuid.UUID
}

// IsOwnedBy is the single access-control predicate: the acting identity must be the
// recorded owner of the resource.
func IsOwnedBy(resource Owned, actorID uuid.UUID) bool {
	if resource == nil || actorID == uuid.Nil {
		return false
	}
	return resource.OwnerID() == actorID
}
