package models

import (
	"fmt"
	"strings"
)

type Role string

const (
	RoleUser    Role = "USER"
	RoleManager Role = "MANAGER"
	RoleAdmin   Role = "ADMIN"
)

// legacyPlayerRole is accepted on input and stored as RoleUser.
const legacyPlayerRole = "PLAYER"

// Roles lists assignable roles from least to most privileged.
func Roles() []Role {
	return []Role{RoleUser, RoleManager, RoleAdmin}
}

func ParseRole(raw string) (Role, error) {
	value := strings.ToUpper(strings.TrimSpace(raw))
	switch value {
	case legacyPlayerRole, string(RoleUser):
		return RoleUser, nil
	case string(RoleManager):
		return RoleManager, nil
	case string(RoleAdmin):
		return RoleAdmin, nil
	}
	return "", fmt.Errorf("unknown role %q", raw)
}

// CanManage reports whether the role may operate on other users' bookings
// and the court catalog.
func (r Role) CanManage() bool {
	return r == RoleManager || r == RoleAdmin
}

func (r Role) IsAdmin() bool {
	return r == RoleAdmin
}

func (r Role) String() string {
	return string(r)
}
