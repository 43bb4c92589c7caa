package domain

import "time"

// Role is an independently addressable aggregate. A soft-deleted role
// can never be updated or (re)assigned, but users who already hold it
// keep the reference until explicit maintenance cleans it up.
type Role struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	IsDeleted   bool      `json:"-"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Authority maps the role name onto the closed authority set. Roles with
// names outside the set carry no authority.
func (r *Role) Authority() (Authority, bool) {
	return ParseAuthority(r.Name)
}
