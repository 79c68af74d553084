package domain

import "github.com/google/uuid"

type UserID = uuid.UUID
type MassID = uuid.UUID
type EventID = uuid.UUID
type PaymentID = uuid.UUID

// Role is the privilege level of a user. The three roles form a total
// order: PARISHIONER < ADMIN < SUPERADMIN.
type Role string

const (
	RoleParishioner Role = "PARISHIONER"
	RoleAdmin       Role = "ADMIN"
	RoleSuperAdmin  Role = "SUPERADMIN"
)

func (r Role) Level() int {
	switch r {
	case RoleSuperAdmin:
		return 3
	case RoleAdmin:
		return 2
	case RoleParishioner:
		return 1
	default:
		return 0
	}
}

// AtLeast reports whether r carries at least the privilege of min.
func (r Role) AtLeast(min Role) bool { return r.Level() >= min.Level() }
