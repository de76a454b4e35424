package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/aussiebroadwan/inkwell/internal/inkwell/domain"
)

const accountColumns = `id, email, name, password_hash, role, mfa_secret, recovery_codes, mfa_confirmed_at, created_at, updated_at`

// masterSurvives is true when the row being changed is not a master or when
// at least one other master exists. Evaluated in the same statement as the
// write so the count cannot go stale.
const masterSurvives = `(role != 'master' OR (SELECT COUNT(*) FROM accounts WHERE role = 'master') > 1)`

type accountsRepo struct {
	db DBTX
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanAccount(row rowScanner) (domain.Account, error) {
	var (
		a           domain.Account
		role        string
		secret      []byte
		codes       []byte
		confirmedAt sql.NullTime
	)
	err := row.Scan(&a.ID, &a.Email, &a.Name, &a.PasswordHash, &role, &secret, &codes, &confirmedAt, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return domain.Account{}, err
	}
	a.Role = domain.Role(role)
	a.MFA = mapMFAState(secret, codes, confirmedAt)
	a.CreatedAt = a.CreatedAt.UTC()
	a.UpdatedAt = a.UpdatedAt.UTC()
	return a, nil
}

func (r *accountsRepo) GetAccountByID(ctx context.Context, id string) (domain.Account, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+accountColumns+` FROM accounts WHERE id = ?`, id)
	a, err := scanAccount(row)
	if err != nil {
		return domain.Account{}, mapNotFound(err)
	}
	return a, nil
}

func (r *accountsRepo) GetAccountByEmail(ctx context.Context, email string) (domain.Account, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+accountColumns+` FROM accounts WHERE email = ?`, email)
	a, err := scanAccount(row)
	if err != nil {
		return domain.Account{}, mapNotFound(err)
	}
	return a, nil
}

func (r *accountsRepo) CreateAccount(ctx context.Context, a domain.Account) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO accounts (id, email, name, password_hash, role, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		a.ID, a.Email, a.Name, a.PasswordHash, string(a.Role), a.CreatedAt.UTC(), a.UpdatedAt.UTC(),
	)
	return mapConstraint(err)
}

func (r *accountsRepo) ListAccountsByRoles(ctx context.Context, roles ...domain.Role) ([]domain.Account, error) {
	if len(roles) == 0 {
		return nil, nil
	}

	args := make([]any, len(roles))
	for i, role := range roles {
		args[i] = string(role)
	}
	placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(roles)), ", ")

	// ULIDs sort by creation time, so id breaks created_at ties.
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+accountColumns+` FROM accounts WHERE role IN (`+placeholders+`) ORDER BY created_at DESC, id DESC`,
		args...,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Account
	for rows.Next() {
		a, err := scanAccount(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func (r *accountsRepo) CountByRole(ctx context.Context, role domain.Role) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM accounts WHERE role = ?`, string(role)).Scan(&n)
	return n, err
}

func (r *accountsRepo) IsEmpty(ctx context.Context) (bool, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM accounts`).Scan(&n); err != nil {
		return false, err
	}
	return n == 0, nil
}

func (r *accountsRepo) SetPendingMFA(ctx context.Context, id string, sealedSecret, sealedCodes []byte, at time.Time) (bool, error) {
	res, err := r.db.ExecContext(ctx, `
		UPDATE accounts SET mfa_secret = ?, recovery_codes = ?, updated_at = ?
		WHERE id = ? AND mfa_secret IS NULL`,
		sealedSecret, sealedCodes, at.UTC(), id,
	)
	return affectedOne(res, err)
}

func (r *accountsRepo) ConfirmMFA(ctx context.Context, id string, at time.Time) (bool, error) {
	res, err := r.db.ExecContext(ctx, `
		UPDATE accounts SET mfa_confirmed_at = ?, updated_at = ?
		WHERE id = ? AND mfa_secret IS NOT NULL AND mfa_confirmed_at IS NULL`,
		at.UTC(), at.UTC(), id,
	)
	return affectedOne(res, err)
}

func (r *accountsRepo) ChangeRoleKeepingMaster(ctx context.Context, id string, role domain.Role, at time.Time) (bool, error) {
	res, err := r.db.ExecContext(ctx, `
		UPDATE accounts SET role = ?, updated_at = ?
		WHERE id = ? AND (? = 'master' OR `+masterSurvives+`)`,
		string(role), at.UTC(), id, string(role),
	)
	return affectedOne(res, err)
}

func (r *accountsRepo) DeleteKeepingMaster(ctx context.Context, id string) (bool, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM accounts WHERE id = ? AND `+masterSurvives, id)
	return affectedOne(res, err)
}

func affectedOne(res sql.Result, err error) (bool, error) {
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected: %w", err)
	}
	return n == 1, nil
}
