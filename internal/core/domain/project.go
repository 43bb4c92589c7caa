package domain

import "time"

// Project is an aggregate owning its member set. Membership is strict:
// adding a user twice is an error, unlike role assignment which is
// idempotent.
type Project struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	MemberIDs   []string  `json:"member_ids"`
	IsDeleted   bool      `json:"-"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// HasMember reports whether the user id is currently in the member set.
func (p *Project) HasMember(userID string) bool {
	for _, id := range p.MemberIDs {
		if id == userID {
			return true
		}
	}
	return false
}

// RemoveMember drops the user id from the member set. Returns false when
// the user was not a member.
func (p *Project) RemoveMember(userID string) bool {
	for i, id := range p.MemberIDs {
		if id == userID {
			p.MemberIDs = append(p.MemberIDs[:i], p.MemberIDs[i+1:]...)
			return true
		}
	}
	return false
}
