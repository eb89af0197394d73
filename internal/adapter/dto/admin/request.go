package admin

import "github.com/aseeltahaa/smartspace/internal/domain/entities"

// RoleRequest changes a user's role
type RoleRequest struct {
	Role entities.UserRole `json:"role" validate:"required,oneof=Admin Employee Guest"`
}
