package store

import (
	"context"
	"errors"
	"time"

	"github.com/aussiebroadwan/inkwell/internal/inkwell/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
)

// Store is the root data access interface. Drivers implement it and expose
// sub-repositories; a Tx cannot start another transaction.
type Store interface {
	Accounts() Accounts

	ApplyMigrations() error

	// Tx starts a read/write transaction and returns a Tx-scoped Store.
	// The caller MUST call Commit() or Rollback() on the returned Tx.
	Tx(ctx context.Context) (Tx, error)

	// WithTx runs fn in a transaction, committing if fn returns nil and
	// rolling back otherwise. Inside fn use only tx: the outer Store may be
	// blocked until the transaction finishes.
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	Close() error
	Ping(ctx context.Context) error
}

// Tx is a transactional store. It embeds the same repos but adds Commit/Rollback.
type Tx interface {
	Store
	Commit() error
	Rollback() error
}

type Accounts interface {
	GetAccountByID(ctx context.Context, id string) (domain.Account, error)

	// GetAccountByEmail matches case-insensitively.
	GetAccountByEmail(ctx context.Context, email string) (domain.Account, error)

	// CreateAccount inserts an Unregistered account. Returns ErrAlreadyExists
	// if the email is taken.
	CreateAccount(ctx context.Context, a domain.Account) error

	// ListAccountsByRoles returns accounts holding any of roles, newest first.
	ListAccountsByRoles(ctx context.Context, roles ...domain.Role) ([]domain.Account, error)

	CountByRole(ctx context.Context, role domain.Role) (int, error)

	IsEmpty(ctx context.Context) (bool, error)

	// SetPendingMFA stores the sealed secret and recovery codes, but only if
	// the account has no secret yet. Reports whether the write happened.
	SetPendingMFA(ctx context.Context, id string, sealedSecret, sealedCodes []byte, at time.Time) (bool, error)

	// ConfirmMFA sets the confirmation timestamp, but only if the account
	// holds a secret and is not already confirmed. Reports whether the write
	// happened.
	ConfirmMFA(ctx context.Context, id string, at time.Time) (bool, error)

	// ChangeRoleKeepingMaster sets the role unless that would leave no
	// master account. Reports whether the write happened.
	ChangeRoleKeepingMaster(ctx context.Context, id string, role domain.Role, at time.Time) (bool, error)

	// DeleteKeepingMaster deletes the account unless it is the only master.
	// Reports whether the delete happened.
	DeleteKeepingMaster(ctx context.Context, id string) (bool, error)
}
