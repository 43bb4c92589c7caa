package domain

import "time"

// User models an account in the system. Users are never hard-deleted:
// IsDeleted hides the record from every active query while the row
// persists for audit.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	FirstName    string    `json:"first_name"`
	LastName     string    `json:"last_name"`
	PhoneNumber  string    `json:"phone_number,omitempty"`
	Address      string    `json:"address,omitempty"`
	RoleIDs      []string  `json:"role_ids"`
	ProjectIDs   []string  `json:"project_ids,omitempty"`
	IsDeleted    bool      `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// HasRole reports whether the user already holds the given role id.
func (u *User) HasRole(roleID string) bool {
	for _, id := range u.RoleIDs {
		if id == roleID {
			return true
		}
	}
	return false
}

// AddRoles unions roleIDs into the user's role set. Re-adding a held
// role is a no-op, preserving set semantics.
func (u *User) AddRoles(roleIDs []string) {
	for _, id := range roleIDs {
		if !u.HasRole(id) {
			u.RoleIDs = append(u.RoleIDs, id)
		}
	}
}
