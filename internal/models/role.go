package models

// Role is the closed set of panels a session can operate as.
type Role string

const (
	RoleAdmin   Role = "admin"
	RoleEditor  Role = "editor"
	RoleShooter Role = "shooter"
	RoleWriter  Role = "writer"
)

func ParseRole(s string) (Role, bool) {
	switch Role(s) {
	case RoleAdmin, RoleEditor, RoleShooter, RoleWriter:
		return Role(s), true
	}
	return "", false
}

func (r Role) Valid() bool {
	_, ok := ParseRole(string(r))
	return ok
}

// NonAdminRoles returns the producing roles in a fixed order.
func NonAdminRoles() []Role {
	return []Role{RoleEditor, RoleShooter, RoleWriter}
}

type User struct {
	Name string `json:"name"`
	Role Role   `json:"role"`
}
