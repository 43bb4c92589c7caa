package domain

// Authority is a permission level carried as a token claim. The set is
// closed: anything outside the three constants is rejected at parse time.
type Authority string

const (
	AuthorityAdmin          Authority = "ADMIN"
	AuthorityProjectManager Authority = "PROJECT_MANAGER"
	AuthorityEmployee       Authority = "EMPLOYEE"
)

// DefaultRoleName is the seed role assigned to users created without
// explicit roles.
const DefaultRoleName = string(AuthorityEmployee)

// ParseAuthority maps a raw claim string onto the closed authority set.
func ParseAuthority(s string) (Authority, bool) {
	switch Authority(s) {
	case AuthorityAdmin, AuthorityProjectManager, AuthorityEmployee:
		return Authority(s), true
	}
	return "", false
}

// Authorities is the set of permission levels held by an authenticated
// caller, snapshotted at token issuance.
type Authorities []Authority

// ContainsAny reports whether the set intersects required. An empty
// required set never matches.
func (a Authorities) ContainsAny(required ...Authority) bool {
	for _, have := range a {
		for _, want := range required {
			if have == want {
				return true
			}
		}
	}
	return false
}

// Strings returns the authorities as plain strings for claim encoding.
func (a Authorities) Strings() []string {
	out := make([]string, len(a))
	for i, v := range a {
		out[i] = string(v)
	}
	return out
}
