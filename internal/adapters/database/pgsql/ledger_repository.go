package pgsql

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/SscSPs/personal_banking_app/internal/apperrors"
	"github.com/SscSPs/personal_banking_app/internal/core/domain"
	portsrepo "github.com/SscSPs/personal_banking_app/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

// PgxLedgerRepository is the durable ledger store: accounts and entries live
// in the same database, so one transaction covers the paired (balance
// update, entry append) effect.
type PgxLedgerRepository struct {
	BaseRepository
	accountRepo portsrepo.AccountTransactionSupport
}

// NewLedgerRepository creates a new repository for ledger entries.
func NewLedgerRepository(pool *pgxpool.Pool, accountRepo portsrepo.AccountTransactionSupport) *PgxLedgerRepository {
	return &PgxLedgerRepository{
		BaseRepository: BaseRepository{Pool: pool},
		accountRepo:    accountRepo,
	}
}

// Ensure PgxLedgerRepository implements portsrepo.LedgerRepositoryFacade
var _ portsrepo.LedgerRepositoryFacade = (*PgxLedgerRepository)(nil)

// CommitMovement applies the balance deltas and appends the entry inside one
// database transaction. On any failure the transaction rolls back and no
// effect is visible; the caller may safely retry.
func (r *PgxLedgerRepository) CommitMovement(ctx context.Context, deltas map[string]decimal.Decimal, entry domain.LedgerEntry) (map[string]decimal.Decimal, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer r.Rollback(ctx, tx)

	accountIDs := make([]string, 0, len(deltas))
	for accountID := range deltas {
		accountIDs = append(accountIDs, accountID)
	}

	if _, err := r.accountRepo.LockAccountsForUpdate(ctx, tx, accountIDs); err != nil {
		return nil, err
	}

	now := entry.CreatedAt
	if now.IsZero() {
		now = time.Now().UTC()
	}

	balances, err := r.accountRepo.ApplyBalanceDeltasInTx(ctx, tx, deltas, now)
	if err != nil {
		return nil, err
	}

	entryQuery := `
		INSERT INTO entries (transaction_id, entry_type, amount, user_id, account_id, receiver_account_id, seller, item, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`
	_, err = tx.Exec(ctx, entryQuery,
		entry.TransactionID,
		entry.EntryType,
		entry.Amount,
		entry.UserID,
		entry.AccountID,
		nullableString(entry.ReceiverAccountID),
		nullableString(entry.Seller),
		nullableString(entry.Item),
		now,
	)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to insert ledger entry %s: %v", apperrors.ErrStoreUnavailable, entry.TransactionID, err)
	}

	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}
	return balances, nil
}

// ListEntriesByAccountID retrieves the entries referencing the account, as
// sole account, sender or receiver, newest first.
func (r *PgxLedgerRepository) ListEntriesByAccountID(ctx context.Context, accountID string, limit int) ([]domain.LedgerEntry, error) {
	if limit <= 0 {
		limit = 50
	}

	query := `
		SELECT transaction_id, entry_type, amount, user_id, account_id, receiver_account_id, seller, item, created_at
		FROM entries
		WHERE account_id = $1 OR receiver_account_id = $1
		ORDER BY created_at DESC, transaction_id DESC
		LIMIT $2;
	`
	rows, err := r.Pool.Query(ctx, query, accountID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query entries for account %s: %w", accountID, err)
	}
	defer rows.Close()

	entries := []domain.LedgerEntry{}
	for rows.Next() {
		var e domain.LedgerEntry
		var receiverID, seller, item sql.NullString
		err := rows.Scan(
			&e.TransactionID,
			&e.EntryType,
			&e.Amount,
			&e.UserID,
			&e.AccountID,
			&receiverID,
			&seller,
			&item,
			&e.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan entry row for account %s: %w", accountID, err)
		}
		e.ReceiverAccountID = receiverID.String
		e.Seller = seller.String
		e.Item = item.String
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating entry rows for account %s: %w", accountID, err)
	}
	return entries, nil
}

func nullableString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}
