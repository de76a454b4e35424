package service

import "github.com/aussiebroadwan/inkwell/internal/inkwell/domain"

// Endpoint classifies a route for the enrollment gate.
type Endpoint int

const (
	// EndpointProtected is any route other than the enrollment routes.
	EndpointProtected Endpoint = iota
	// EndpointEnrollment covers the routes that show and confirm enrollment.
	EndpointEnrollment
)

// Decision is the gate's verdict.
type Decision int

const (
	Allow Decision = iota
	RedirectToEnrollment
)

func (d Decision) String() string {
	switch d {
	case Allow:
		return "allow"
	case RedirectToEnrollment:
		return "redirect_to_enrollment"
	default:
		return "unknown"
	}
}

// Gate decides whether a request may proceed. Unauthenticated requests are
// allowed through because authentication is enforced elsewhere; confirmed
// accounts go anywhere; everyone else is confined to the enrollment routes.
func Gate(isAuthenticated bool, state domain.MFAState, endpoint Endpoint) Decision {
	if !isAuthenticated {
		return Allow
	}
	if domain.IsConfirmed(state) {
		return Allow
	}
	if endpoint == EndpointEnrollment {
		return Allow
	}
	return RedirectToEnrollment
}
