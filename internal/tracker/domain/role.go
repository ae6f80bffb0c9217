package domain

import "time"

type Role string

const (
	RoleAdmin  Role = "admin"
	RoleMember Role = "member"
)

// Valid reports whether r is one of the known role names.
func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleMember
}

// RoleGrant is a (user, role) pair. A user may hold several grants;
// holding admin elevates every authorization decision.
type RoleGrant struct {
	UserID    string
	Role      Role
	CreatedAt time.Time
}

// RoleSet is the set of roles a user currently holds. It is fetched from
// the store on every request and passed explicitly into authorization
// checks, never cached across requests.
type RoleSet []Role

func (s RoleSet) Has(r Role) bool {
	for _, have := range s {
		if have == r {
			return true
		}
	}
	return false
}

func (s RoleSet) IsAdmin() bool { return s.Has(RoleAdmin) }
