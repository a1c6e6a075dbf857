package usecase

import (
	"healthcare-records/internal/domain/entity"

	"github.com/google/uuid"
)

// authorize is the single ownership gate for owned resources. Callers check
// existence first so that a missing record is reported as not found.
func authorize(resource entity.Owned, actorID uuid.UUID, denied error) error {
	if !entity.IsOwnedBy(resource, actorID) {
		return denied
	}
	return nil
}
