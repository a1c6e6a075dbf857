package converter

import (
	"healthcare-records/internal/delivery/dto"
	"healthcare-records/internal/domain/entity"
)

// UserToResponse converts a User entity to UserResponse DTO. The password hash is never copied.
func UserToResponse(user *entity.User) *dto.UserResponse {
	if user == nil {
		return nil
	}

	return &dto.UserResponse{
		ID:        user.ID,
		Name:      user.Name,
		Email:     user.Email,
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
	}
}
