package http

import (
	"github.com/aussiebroadwan/inkwell/internal/inkwell/domain"
	"github.com/aussiebroadwan/inkwell/internal/inkwell/service"
	"github.com/aussiebroadwan/inkwell/pkg/inkwellsdk"
	"github.com/aussiebroadwan/inkwell/pkg/qrx"
)

func toAPIAccount(a domain.Account) inkwellsdk.Account {
	return inkwellsdk.Account{
		ID:             a.ID,
		Email:          a.Email,
		Name:           a.Name,
		Role:           a.Role.String(),
		MFAState:       stateName(a.MFA),
		MFAConfirmedAt: domain.ConfirmedAt(a.MFA),
		CreatedAt:      a.CreatedAt,
	}
}

func toAPIAccounts(accts []domain.Account) inkwellsdk.AccountList {
	out := inkwellsdk.AccountList{Accounts: make([]inkwellsdk.Account, 0, len(accts))}
	for _, a := range accts {
		out.Accounts = append(out.Accounts, toAPIAccount(a))
	}
	return out
}

func toAPIEnrollment(e domain.Enrollment) (inkwellsdk.Enrollment, error) {
	qr, err := qrx.GenerateDataURI(e.ProvisioningURI, qrx.DefaultSize)
	if err != nil {
		return inkwellsdk.Enrollment{}, err
	}
	return inkwellsdk.Enrollment{
		State:           domain.MFAStatePending,
		Secret:          e.Secret,
		ProvisioningURI: e.ProvisioningURI,
		RecoveryCodes:   e.RecoveryCodes,
		QRCode:          qr,
		QRCodeURL:       EnrollmentPath + "/qr.png",
	}, nil
}

func toTokenResponse(t service.AccessToken) inkwellsdk.TokenResponse {
	return inkwellsdk.TokenResponse{
		AccessToken: t.Token,
		TokenType:   "Bearer",
		ExpiresIn:   int(t.ExpiresIn.Seconds()),
	}
}

func stateName(s domain.MFAState) string {
	if s == nil {
		return domain.MFAStateUnregistered
	}
	return s.Name()
}
