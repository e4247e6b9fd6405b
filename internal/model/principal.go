package model

import "github.com/google/uuid"

const (
	RoleUser  = "USER"
	RoleAdmin = "ADMIN"
)

// Principal is the authenticated caller extracted from the access token.
type Principal struct {
	UserID   uuid.UUID
	Username string
	Role     string
}

func (p Principal) IsAdmin() bool {
	return p.Role == RoleAdmin
}

// CanAccess reports whether the principal may read or write data owned by the
// given username.
func (p Principal) CanAccess(ownerUsername string) bool {
	return p.IsAdmin() || p.Username == ownerUsername
}
