package domain

import "time"

// Role is the capability level attached to a dealership user.
type Role string

const (
	RoleAdmin   Role = "admin"
	RoleSales   Role = "sales"
	RoleService Role = "service"
	RoleViewer  Role = "viewer"
)

// Roles lists every assignable role.
var Roles = []Role{RoleAdmin, RoleSales, RoleService, RoleViewer}

// Valid reports whether r is one of the enumerated roles.
func (r Role) Valid() bool {
	for _, known := range Roles {
		if r == known {
			return true
		}
	}
	return false
}

// User models a dealership staff account.
type User struct {
	ID           string    `json:"id" bson:"_id"`
	DealerID     string    `json:"dealer_id" bson:"dealer_id"`
	Name         string    `json:"name" bson:"name"`
	Email        string    `json:"email" bson:"email"`
	PasswordHash string    `json:"-" bson:"password_hash"`
	Role         Role      `json:"role" bson:"role"`
	IsActive     bool      `json:"is_active" bson:"is_active"`
	CreatedAt    time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" bson:"updated_at"`
}

// Profile is the authorization-relevant projection of a User.
type Profile struct {
	ID       string
	DealerID string
	Role     Role
	IsActive bool
}

// Identity is the resolved caller of an authenticated operation.
// It is read-only once resolved.
type Identity struct {
	UserID   string
	Email    string
	DealerID string
	Role     Role
	Active   bool
}
