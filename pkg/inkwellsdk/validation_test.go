package inkwellsdk_test

import (
	"strings"
	"testing"

	"github.com/aussiebroadwan/inkwell/pkg/inkwellsdk"
	"github.com/stretchr/testify/require"
)

func TestRegisterRequestValidate(t *testing.T) {
	tests := []struct {
		name   string
		req    inkwellsdk.RegisterRequest
		fields []string
	}{
		{"valid", inkwellsdk.RegisterRequest{Email: "a@example.com", Name: "A", Password: "password1"}, nil},
		{"all missing", inkwellsdk.RegisterRequest{}, []string{"email", "name", "password"}},
		{"bad email", inkwellsdk.RegisterRequest{Email: "nope", Name: "A", Password: "password1"}, []string{"email"}},
		{"display-name email", inkwellsdk.RegisterRequest{Email: "A <a@example.com>", Name: "A", Password: "password1"}, []string{"email"}},
		{"short password", inkwellsdk.RegisterRequest{Email: "a@example.com", Name: "A", Password: "short"}, []string{"password"}},
		{"long name", inkwellsdk.RegisterRequest{Email: "a@example.com", Name: strings.Repeat("x", 65), Password: "password1"}, []string{"name"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := tt.req.Validate()
			if tt.fields == nil {
				require.Nil(t, errs)
				return
			}
			require.Len(t, errs, len(tt.fields))
			for _, f := range tt.fields {
				require.Contains(t, errs, f)
			}
		})
	}
}

func TestRoleValidation(t *testing.T) {
	require.Nil(t, inkwellsdk.ChangeRoleRequest{Role: inkwellsdk.RoleAdmin}.Validate())
	require.Contains(t, inkwellsdk.ChangeRoleRequest{Role: "owner"}.Validate(), "role")
	require.Contains(t, inkwellsdk.ChangeRoleRequest{}.Validate(), "role")

	errs := inkwellsdk.CreateAccountRequest{Email: "b@example.com", Name: "B", Password: "password1", Role: "root"}.Validate()
	require.Equal(t, map[string]string{"role": "must be one of master, admin, member"}, errs)
}
