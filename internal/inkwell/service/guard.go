package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/aussiebroadwan/inkwell/internal/inkwell/domain"
	"github.com/aussiebroadwan/inkwell/internal/inkwell/store"
	"github.com/aussiebroadwan/inkwell/pkg/slogx"
)

// GuardService applies role changes and deletions while keeping at least
// one master account. Each check and its mutation run in one transaction,
// and the mutation itself re-checks the master count in SQL.
type GuardService struct {
	Store store.Store
	Clock Clock
}

// ChangeRole sets target's role. Only masters may act. Demoting the last
// master is refused with ErrLastMasterAdminProtected.
func (s *GuardService) ChangeRole(ctx context.Context, actingID, targetID string, newRole domain.Role) (domain.Account, error) {
	l := slogx.FromContext(ctx).With(
		slog.String("acting_id", actingID),
		slog.String("target_id", targetID),
		slog.String("new_role", newRole.String()),
	)

	if !newRole.Valid() {
		return domain.Account{}, ErrInvalidRole
	}

	var (
		updated domain.Account
		oldRole domain.Role
	)
	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		if err := requireMaster(ctx, tx, actingID); err != nil {
			return err
		}

		target, err := getAccount(ctx, tx, targetID)
		if err != nil {
			return err
		}

		oldRole = target.Role
		if target.Role == domain.RoleMaster && newRole != domain.RoleMaster {
			if err := ensureAnotherMaster(ctx, tx, ReasonLastMasterDemote); err != nil {
				return err
			}
		}

		applied, err := tx.Accounts().ChangeRoleKeepingMaster(ctx, targetID, newRole, s.Clock.now())
		if err != nil {
			return fmt.Errorf("failed to change role: %w", err)
		}
		if !applied {
			return refuse(ErrLastMasterAdminProtected, ReasonLastMasterDemote)
		}

		updated, err = getAccount(ctx, tx, targetID)
		return err
	})
	if err != nil {
		if errors.Is(err, ErrLastMasterAdminProtected) {
			l.Warn("last master admin protected")
		}
		return domain.Account{}, err
	}

	l.Info("role changed", slog.String("old_role", oldRole.String()))
	return updated, nil
}

// DeleteAccount removes target. Only masters may act, nobody may delete
// themselves, and the last master cannot be deleted.
func (s *GuardService) DeleteAccount(ctx context.Context, actingID, targetID string) error {
	l := slogx.FromContext(ctx).With(
		slog.String("acting_id", actingID),
		slog.String("target_id", targetID),
	)

	if actingID == targetID {
		l.Warn("self deletion refused")
		return refuse(ErrSelfDeletionForbidden, ReasonSelfDeletion)
	}

	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		if err := requireMaster(ctx, tx, actingID); err != nil {
			return err
		}

		target, err := getAccount(ctx, tx, targetID)
		if err != nil {
			return err
		}

		if target.Role == domain.RoleMaster {
			if err := ensureAnotherMaster(ctx, tx, ReasonLastMasterDeleted); err != nil {
				return err
			}
		}

		applied, err := tx.Accounts().DeleteKeepingMaster(ctx, targetID)
		if err != nil {
			return fmt.Errorf("failed to delete account: %w", err)
		}
		if !applied {
			return refuse(ErrLastMasterAdminProtected, ReasonLastMasterDeleted)
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrLastMasterAdminProtected) {
			l.Warn("last master admin protected")
		}
		return err
	}

	l.Info("account deleted")
	return nil
}

func requireMaster(ctx context.Context, tx store.Tx, accountID string) error {
	acting, err := getAccount(ctx, tx, accountID)
	if errors.Is(err, ErrAccountNotFound) {
		return ErrForbidden
	}
	if err != nil {
		return err
	}
	if !acting.Role.AtLeast(domain.RoleMaster) {
		return ErrForbidden
	}
	return nil
}

func ensureAnotherMaster(ctx context.Context, tx store.Tx, reason string) error {
	masters, err := tx.Accounts().CountByRole(ctx, domain.RoleMaster)
	if err != nil {
		return fmt.Errorf("failed to count masters: %w", err)
	}
	if masters <= 1 {
		return refuse(ErrLastMasterAdminProtected, reason)
	}
	return nil
}

func getAccount(ctx context.Context, tx store.Tx, id string) (domain.Account, error) {
	acct, err := tx.Accounts().GetAccountByID(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return domain.Account{}, ErrAccountNotFound
	}
	if err != nil {
		return domain.Account{}, fmt.Errorf("failed to load account: %w", err)
	}
	return acct, nil
}
