package inkwellsdk

import (
	"net/mail"
	"strings"
)

const (
	reasonRequired = "required"
	minPassword    = 8
	maxPassword    = 128
	maxName        = 64
)

// Validate checks the registration fields. Returns a map of field names to
// error messages, or nil if all fields are valid.
func (r RegisterRequest) Validate() map[string]string {
	errs := make(map[string]string)
	validateEmail(errs, r.Email)
	validateName(errs, r.Name)
	validatePassword(errs, r.Password)
	return nilIfEmpty(errs)
}

func (r BootstrapRequest) Validate() map[string]string {
	errs := make(map[string]string)
	validateEmail(errs, r.Email)
	validateName(errs, r.Name)
	validatePassword(errs, r.Password)
	return nilIfEmpty(errs)
}

func (r CreateAccountRequest) Validate() map[string]string {
	errs := make(map[string]string)
	validateEmail(errs, r.Email)
	validateName(errs, r.Name)
	validatePassword(errs, r.Password)
	validateRole(errs, r.Role)
	return nilIfEmpty(errs)
}

func (r ChangeRoleRequest) Validate() map[string]string {
	errs := make(map[string]string)
	validateRole(errs, r.Role)
	return nilIfEmpty(errs)
}

func validateEmail(errs map[string]string, email string) {
	email = strings.TrimSpace(email)
	switch {
	case email == "":
		errs["email"] = reasonRequired
	case len(email) > 254:
		errs["email"] = "too long (max 254)"
	default:
		if addr, err := mail.ParseAddress(email); err != nil || addr.Address != email {
			errs["email"] = "must be a valid email address"
		}
	}
}

func validateName(errs map[string]string, name string) {
	name = strings.TrimSpace(name)
	switch {
	case name == "":
		errs["name"] = reasonRequired
	case len(name) > maxName:
		errs["name"] = "too long (max 64)"
	}
}

func validatePassword(errs map[string]string, pw string) {
	switch {
	case pw == "":
		errs["password"] = reasonRequired
	case len(pw) < minPassword:
		errs["password"] = "too short (min 8)"
	case len(pw) > maxPassword:
		errs["password"] = "too long (max 128)"
	}
}

func validateRole(errs map[string]string, role string) {
	switch role {
	case "":
		errs["role"] = reasonRequired
	case RoleMaster, RoleAdmin, RoleMember:
	default:
		errs["role"] = "must be one of master, admin, member"
	}
}

func nilIfEmpty(errs map[string]string) map[string]string {
	if len(errs) == 0 {
		return nil
	}
	return errs
}
