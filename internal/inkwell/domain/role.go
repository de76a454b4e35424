package domain

import (
	"errors"
	"fmt"
)

// Role is an account's privilege level: master > admin > member.
type Role string

const (
	RoleMember Role = "member"
	RoleAdmin  Role = "admin"
	RoleMaster Role = "master"
)

var ErrUnknownRole = errors.New("unknown role")

// ParseRole accepts only the three known role names.
func ParseRole(s string) (Role, error) {
	r := Role(s)
	if !r.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownRole, s)
	}
	return r, nil
}

func (r Role) Valid() bool {
	return r.rank() > 0
}

// AtLeast reports whether r is the same as or higher than other.
func (r Role) AtLeast(other Role) bool {
	return r.rank() >= other.rank()
}

func (r Role) String() string { return string(r) }

func (r Role) rank() int {
	switch r {
	case RoleMaster:
		return 3
	case RoleAdmin:
		return 2
	case RoleMember:
		return 1
	default:
		return 0
	}
}
