package guest

import "errors"

var ErrInvalidRole = errors.New("invalid role")

type Role string

const (
	RoleGuest Role = "guest"
	RoleStaff Role = "staff"
	RoleAdmin Role = "admin"
)

func NewRole(s string) (Role, error) {
	r := Role(s)
	if !r.IsValid() {
		return "", ErrInvalidRole
	}
	return r, nil
}

func (r Role) String() string {
	return string(r)
}

func (r Role) IsValid() bool {
	switch r {
	case RoleGuest, RoleStaff, RoleAdmin:
		return true
	default:
		return false
	}
}

var roleLevels = map[Role]int{
	RoleGuest: 1,
	RoleStaff: 2,
	RoleAdmin: 3,
}

// HasPermission reports whether r sits at or above the required role in the
// hierarchy guest < staff < admin.
func (r Role) HasPermission(required Role) bool {
	return roleLevels[r] >= roleLevels[required]
}

func (r Role) IsStaff() bool {
	return r.HasPermission(RoleStaff)
}
