/*
Package inkwellsdk is a Go client for the Inkwell account API.

Client covers the unauthenticated surface (health, bootstrap, registration and
login) and produces a Session, which carries the access token for everything
else:

	client := inkwellsdk.NewClient("https://blog.example.com")

	reg, err := client.Register(ctx, inkwellsdk.RegisterRequest{
		Email:    "alice@example.com",
		Name:     "Alice",
		Password: "correct horse battery",
	})
	session := client.NewSession(reg.Token)

	// Until MFA enrollment is confirmed every other route answers with a
	// redirect, surfaced as *EnrollmentRequiredError.
	_, err = session.Dashboard(ctx)

	_, err = session.ConfirmEnrollment(ctx, code)

The client never follows redirects, so the enrollment gate is visible to the
caller instead of being silently resolved.

Errors returned by the server decode into *APIError; compare them with
errors.Is against the predefined values (ErrLastMasterAdminProtected,
ErrInvalidCode, ...), which match on the error code only.
*/
package inkwellsdk
