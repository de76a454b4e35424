package service_test

import (
	"testing"
	"time"

	"github.com/aussiebroadwan/inkwell/internal/inkwell/domain"
	"github.com/aussiebroadwan/inkwell/internal/inkwell/service"
	"github.com/stretchr/testify/require"
)

func TestGate(t *testing.T) {
	unregistered := domain.Unregistered{}
	pending := domain.PendingConfirmation{SealedSecret: []byte{1}, SealedRecoveryCodes: []byte{2}}
	confirmed := domain.Confirmed{SealedSecret: []byte{1}, SealedRecoveryCodes: []byte{2}, Since: time.Now()}

	tests := []struct {
		name     string
		authed   bool
		state    domain.MFAState
		endpoint service.Endpoint
		want     service.Decision
	}{
		{"anonymous protected", false, nil, service.EndpointProtected, service.Allow},
		{"anonymous enrollment", false, nil, service.EndpointEnrollment, service.Allow},
		{"unregistered protected", true, unregistered, service.EndpointProtected, service.RedirectToEnrollment},
		{"unregistered enrollment", true, unregistered, service.EndpointEnrollment, service.Allow},
		{"pending protected", true, pending, service.EndpointProtected, service.RedirectToEnrollment},
		{"pending enrollment", true, pending, service.EndpointEnrollment, service.Allow},
		{"confirmed protected", true, confirmed, service.EndpointProtected, service.Allow},
		{"confirmed enrollment", true, confirmed, service.EndpointEnrollment, service.Allow},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, service.Gate(tt.authed, tt.state, tt.endpoint))
		})
	}
}

func TestDecisionString(t *testing.T) {
	require.Equal(t, "allow", service.Allow.String())
	require.Equal(t, "redirect_to_enrollment", service.RedirectToEnrollment.String())
}
