package memory_test

import (
	"context"
	"testing"
	"time"

	"github.com/SscSPs/personal_banking_app/internal/adapters/database/memory"
	"github.com/SscSPs/personal_banking_app/internal/apperrors"
	"github.com/SscSPs/personal_banking_app/internal/core/domain"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedAccount(store *memory.Store, balance string) domain.Account {
	acc := domain.Account{
		AccountID: uuid.NewString(),
		UserID:    uuid.NewString(),
		Kind:      domain.Checking,
		Balance:   decimal.RequireFromString(balance),
	}
	store.SeedAccount(acc)
	return acc
}

func TestCommitMovement_RejectsOverdraftWithoutPartialApply(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	from := seedAccount(store, "10")
	to := seedAccount(store, "0")

	// credit side is valid, debit side overdraws: neither may apply
	deltas := map[string]decimal.Decimal{
		from.AccountID: decimal.NewFromInt(-40),
		to.AccountID:   decimal.NewFromInt(40),
	}
	entry := domain.LedgerEntry{
		TransactionID:     uuid.NewString(),
		EntryType:         domain.Transfer,
		Amount:            decimal.NewFromInt(40),
		AccountID:         from.AccountID,
		ReceiverAccountID: to.AccountID,
		CreatedAt:         time.Now().UTC(),
	}

	_, err := store.CommitMovement(ctx, deltas, entry)
	require.ErrorIs(t, err, apperrors.ErrInsufficientFunds)

	fromAfter, err := store.FindAccountByID(ctx, from.AccountID)
	require.NoError(t, err)
	toAfter, err := store.FindAccountByID(ctx, to.AccountID)
	require.NoError(t, err)
	assert.True(t, fromAfter.Balance.Equal(decimal.NewFromInt(10)))
	assert.True(t, toAfter.Balance.IsZero())
	assert.Empty(t, store.Entries())
}

func TestCommitMovement_UnknownAccount(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()

	deltas := map[string]decimal.Decimal{uuid.NewString(): decimal.NewFromInt(5)}
	_, err := store.CommitMovement(ctx, deltas, domain.LedgerEntry{TransactionID: uuid.NewString()})

	require.ErrorIs(t, err, apperrors.ErrNotFound)
	assert.Empty(t, store.Entries())
}

func TestListEntriesByAccountID_NewestFirstAndLimited(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	acc := seedAccount(store, "0")

	base := time.Now().UTC()
	var ids []string
	for i := 0; i < 5; i++ {
		id := uuid.NewString()
		ids = append(ids, id)
		_, err := store.CommitMovement(ctx,
			map[string]decimal.Decimal{acc.AccountID: decimal.NewFromInt(1)},
			domain.LedgerEntry{
				TransactionID: id,
				EntryType:     domain.Deposit,
				Amount:        decimal.NewFromInt(1),
				AccountID:     acc.AccountID,
				CreatedAt:     base.Add(time.Duration(i) * time.Second),
			})
		require.NoError(t, err)
	}

	entries, err := store.ListEntriesByAccountID(ctx, acc.AccountID, 3)
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.Equal(t, ids[4], entries[0].TransactionID)
	assert.Equal(t, ids[3], entries[1].TransactionID)
	assert.Equal(t, ids[2], entries[2].TransactionID)
}

func TestListEntriesByAccountID_IncludesReceivedTransfers(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	from := seedAccount(store, "50")
	to := seedAccount(store, "0")

	_, err := store.CommitMovement(ctx,
		map[string]decimal.Decimal{
			from.AccountID: decimal.NewFromInt(-20),
			to.AccountID:   decimal.NewFromInt(20),
		},
		domain.LedgerEntry{
			TransactionID:     uuid.NewString(),
			EntryType:         domain.Transfer,
			Amount:            decimal.NewFromInt(20),
			AccountID:         from.AccountID,
			ReceiverAccountID: to.AccountID,
			CreatedAt:         time.Now().UTC(),
		})
	require.NoError(t, err)

	received, err := store.ListEntriesByAccountID(ctx, to.AccountID, 0)
	require.NoError(t, err)
	require.Len(t, received, 1)
	assert.Equal(t, domain.Transfer, received[0].EntryType)
}
