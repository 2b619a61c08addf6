package kernel

import (
	"fmt"
	"strings"

	"freight/internal/pkg/errs"
)

// Role is the marketplace role of an authenticated actor.
type Role int

const (
	// UnknownRole catches uninitialized values.
	UnknownRole Role = iota
	Carrier
	Shipper
	Admin
)

func getRoleStrings() map[Role]string {
	return map[Role]string{
		UnknownRole: "unknown",
		Carrier:     "carrier",
		Shipper:     "shipper",
		Admin:       "admin",
	}
}

// ParseRole accepts the wire names "carrier", "shipper" and "admin", case-insensitively.
func ParseRole(s string) (Role, error) {
	needle := strings.ToLower(strings.TrimSpace(s))
	for role, name := range getRoleStrings() {
		if role != UnknownRole && name == needle {
			return role, nil
		}
	}
	return UnknownRole, errs.NewValueIsInvalidErrorWithCause("role", fmt.Errorf("%q is not a known role", s))
}

func (r Role) Validate() error {
	if r < Carrier || r > Admin {
		return errs.NewValueIsInvalidErrorWithCause("role", fmt.Errorf("%d is not a valid role", r))
	}
	return nil
}

func (r Role) String() string {
	if s, ok := getRoleStrings()[r]; ok {
		return s
	}
	return "unknown"
}
