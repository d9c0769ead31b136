package pgsql

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/SscSPs/personal_banking_app/internal/apperrors"
	"github.com/SscSPs/personal_banking_app/internal/core/domain"
	portsrepo "github.com/SscSPs/personal_banking_app/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

type PgxAccountRepository struct {
	BaseRepository
}

// NewAccountRepository creates a new repository for account data.
func NewAccountRepository(pool *pgxpool.Pool) *PgxAccountRepository {
	return &PgxAccountRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxAccountRepository implements portsrepo.AccountRepositoryFacade
var _ portsrepo.AccountRepositoryFacade = (*PgxAccountRepository)(nil)

const accountColumns = `account_id, user_id, kind, balance, created_at, last_updated_at`

func scanAccount(row pgx.Row) (*domain.Account, error) {
	var acc domain.Account
	err := row.Scan(
		&acc.AccountID,
		&acc.UserID,
		&acc.Kind,
		&acc.Balance,
		&acc.CreatedAt,
		&acc.LastUpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &acc, nil
}

// FindAccountByID retrieves an account by its ID.
func (r *PgxAccountRepository) FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE account_id = $1;`
	acc, err := scanAccount(r.Pool.QueryRow(ctx, query, accountID))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to find account by ID %s: %w", accountID, err)
	}
	return acc, nil
}

// FindAccountByUserAndKind retrieves the single account of the given kind
// owned by the user.
func (r *PgxAccountRepository) FindAccountByUserAndKind(ctx context.Context, userID string, kind domain.AccountKind) (*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE user_id = $1 AND kind = $2;`
	acc, err := scanAccount(r.Pool.QueryRow(ctx, query, userID, kind))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to find %s account for user %s: %w", kind, userID, err)
	}
	return acc, nil
}

// FindAccountsByUser retrieves all accounts owned by the user.
func (r *PgxAccountRepository) FindAccountsByUser(ctx context.Context, userID string) ([]domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE user_id = $1 ORDER BY kind;`
	rows, err := r.Pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query accounts for user %s: %w", userID, err)
	}
	defer rows.Close()

	accounts := []domain.Account{}
	for rows.Next() {
		acc, err := scanAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan account row for user %s: %w", userID, err)
		}
		accounts = append(accounts, *acc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating account rows for user %s: %w", userID, err)
	}
	return accounts, nil
}

// LockAccountsForUpdate locks the account rows for update within the
// transaction. Rows are locked one at a time in sorted account-ID order so
// two commits touching the same accounts always acquire locks in the same
// sequence and cannot deadlock.
func (r *PgxAccountRepository) LockAccountsForUpdate(ctx context.Context, tx pgx.Tx, accountIDs []string) (map[string]domain.Account, error) {
	sorted := make([]string, len(accountIDs))
	copy(sorted, accountIDs)
	sort.Strings(sorted)

	query := `SELECT ` + accountColumns + ` FROM accounts WHERE account_id = $1 FOR UPDATE;`

	accountsMap := make(map[string]domain.Account, len(sorted))
	for _, id := range sorted {
		acc, err := scanAccount(tx.QueryRow(ctx, query, id))
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return nil, fmt.Errorf("%w: account %s", apperrors.ErrNotFound, id)
			}
			return nil, fmt.Errorf("failed to lock account %s: %w", id, err)
		}
		accountsMap[id] = *acc
	}
	return accountsMap, nil
}

// ApplyBalanceDeltasInTx adjusts each locked account's balance by its delta.
// The WHERE clause re-checks the funds condition under the row lock, so a
// stale pre-check in the engine can never drive a balance negative.
func (r *PgxAccountRepository) ApplyBalanceDeltasInTx(ctx context.Context, tx pgx.Tx, deltas map[string]decimal.Decimal, now time.Time) (map[string]decimal.Decimal, error) {
	query := `
		UPDATE accounts
		SET balance = balance + $2, last_updated_at = $3
		WHERE account_id = $1 AND balance + $2 >= 0
		RETURNING balance;
	`

	accountIDs := make([]string, 0, len(deltas))
	for accountID := range deltas {
		accountIDs = append(accountIDs, accountID)
	}
	sort.Strings(accountIDs)

	balances := make(map[string]decimal.Decimal, len(deltas))
	for _, accountID := range accountIDs {
		var balance decimal.Decimal
		err := tx.QueryRow(ctx, query, accountID, deltas[accountID], now).Scan(&balance)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				// The row exists (it was locked); the conditional update only
				// skips it when the delta would overdraw it.
				return nil, fmt.Errorf("%w: account %s", apperrors.ErrInsufficientFunds, accountID)
			}
			return nil, fmt.Errorf("failed to update balance for account %s: %w", accountID, err)
		}
		balances[accountID] = balance
	}
	return balances, nil
}
