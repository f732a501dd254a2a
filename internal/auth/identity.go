// Package auth issues and verifies access tokens and hashes passwords.
package auth

import (
	"github.com/yukikurage/apm-api/internal/models"
)

// Identity is the authenticated caller attached to a request.
type Identity struct {
	ID       uint64
	Username string
	Role     models.Role
}

// HasRole reports whether the identity holds one of roles.
func (i Identity) HasRole(roles ...models.Role) bool {
	for _, r := range roles {
		if i.Role == r {
			return true
		}
	}
	return false
}

// IdentityOf builds the identity carried in tokens for user.
func IdentityOf(user *models.User) Identity {
	return Identity{ID: user.ID, Username: user.Username, Role: user.Role}
}
