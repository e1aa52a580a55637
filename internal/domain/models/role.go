// internal/domain/models/role.go
package models

// Role is the closed set of assignment roles. The declaration order is
// the reporting order: each role's permitted direct reports hold the
// next role in the sequence.
type Role string

const (
	RoleDepartmentOverseer Role = "Department Overseer"
	RoleAssistantOverseer  Role = "Assistant Overseer"
	RoleKeyman             Role = "Keyman"
	RoleCaptain            Role = "Captain"
	RoleMember             Role = "Member"
)

// nextRole is the total child-role function over the enumeration.
// Member maps to itself: it is the terminal tier, and callers suppress
// further additions once it is reached. Department Overseer is the
// single top slot per department and never appears as a reports-to
// target in this table.
var nextRole = map[Role]Role{
	RoleAssistantOverseer: RoleKeyman,
	RoleKeyman:            RoleCaptain,
	RoleCaptain:           RoleMember,
	RoleMember:            RoleMember,
}

// Next returns the role a direct report of r must hold.
func (r Role) Next() Role {
	if n, ok := nextRole[r]; ok {
		return n
	}
	return RoleMember
}

// Terminal reports whether r permits no further subordinate tiers.
func (r Role) Terminal() bool {
	return r == RoleMember
}

// CanRoot reports whether r may be assigned without a parent. Only the
// two department-level top slots qualify.
func (r Role) CanRoot() bool {
	return r == RoleDepartmentOverseer || r == RoleAssistantOverseer
}

// ParseRole validates an externally supplied role string.
func ParseRole(s string) (Role, bool) {
	switch Role(s) {
	case RoleDepartmentOverseer, RoleAssistantOverseer, RoleKeyman, RoleCaptain, RoleMember:
		return Role(s), true
	}
	return "", false
}
