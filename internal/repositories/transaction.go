package repositories

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/andriarm/wallet-tracker/internal/logger"
	"github.com/andriarm/wallet-tracker/internal/models"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// TransactionWriteRepository handles transaction write operations, running on
// the context transaction when one is present.
type TransactionWriteRepository struct {
	db       *sqlx.DB
	txGetter func(ctx context.Context) *sqlx.Tx
}

func NewTransactionWriteRepository(db *sqlx.DB, txGetter func(ctx context.Context) *sqlx.Tx) *TransactionWriteRepository {
	return &TransactionWriteRepository{db: db, txGetter: txGetter}
}

func (r *TransactionWriteRepository) executor(ctx context.Context) sqlx.ExtContext {
	if r.txGetter != nil {
		if tx := r.txGetter(ctx); tx != nil {
			return tx
		}
	}
	return r.db
}

// Save inserts a transaction row and returns its id.
func (r *TransactionWriteRepository) Save(ctx context.Context, userID, walletID uuid.UUID, txType models.TransactionType, amount float64, occurredOn time.Time, description string) (uuid.UUID, error) {
	const query = `
		INSERT INTO transactions (user_id, wallet_id, type, amount, occurred_on, description, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW(), NOW())
		RETURNING transaction_id
	`

	var transactionID uuid.UUID
	err := sqlx.GetContext(ctx, r.executor(ctx), &transactionID, query,
		userID, walletID, txType, amount, occurredOn, description)

	logger.Log.Infow(
		"query", strings.Join(strings.Fields(query), " "),
		"args", []any{userID, walletID, txType, amount, occurredOn},
		"result", transactionID,
		"error", err,
	)

	return transactionID, err
}

// GetByIDForUpdate loads the transaction owned by the given user and locks its
// row until the surrounding transaction ends, so the signed amount read for a
// balance delta cannot change under a concurrent edit or delete. Returns
// (nil, nil) when no such transaction exists.
func (r *TransactionWriteRepository) GetByIDForUpdate(ctx context.Context, userID, transactionID uuid.UUID) (*models.TransactionDB, error) {
	const query = `
		SELECT transaction_id, user_id, wallet_id, type, amount, occurred_on, description, created_at, updated_at
		FROM transactions
		WHERE transaction_id = $1 AND user_id = $2
		FOR UPDATE
	`

	var txn models.TransactionDB
	err := sqlx.GetContext(ctx, r.executor(ctx), &txn, query, transactionID, userID)

	logger.Log.Infow(
		"query", strings.Join(strings.Fields(query), " "),
		"args", []any{transactionID, userID},
		"error", err,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &txn, nil
}

// Update overwrites the stored fields of one transaction. Returns false when
// the transaction does not exist or is not owned by the user.
func (r *TransactionWriteRepository) Update(ctx context.Context, userID, transactionID, walletID uuid.UUID, txType models.TransactionType, amount float64, occurredOn time.Time, description string) (bool, error) {
	const query = `
		UPDATE transactions
		SET wallet_id = $3, type = $4, amount = $5, occurred_on = $6, description = $7, updated_at = NOW()
		WHERE transaction_id = $1 AND user_id = $2
	`

	res, err := r.executor(ctx).ExecContext(ctx, query,
		transactionID, userID, walletID, txType, amount, occurredOn, description)

	logger.Log.Infow(
		"query", strings.Join(strings.Fields(query), " "),
		"args", []any{transactionID, userID, walletID, txType, amount},
		"error", err,
	)

	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

// Delete removes one transaction row. Returns false when nothing was deleted.
func (r *TransactionWriteRepository) Delete(ctx context.Context, userID, transactionID uuid.UUID) (bool, error) {
	const query = `
		DELETE FROM transactions
		WHERE transaction_id = $1 AND user_id = $2
	`

	res, err := r.executor(ctx).ExecContext(ctx, query, transactionID, userID)

	logger.Log.Infow(
		"query", strings.Join(strings.Fields(query), " "),
		"args", []any{transactionID, userID},
		"error", err,
	)

	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

// DeleteByWalletID removes every transaction referencing the wallet and
// returns the number of rows deleted. Used by the wallet cascade delete, so it
// must run on the same transaction as the wallet row deletion.
func (r *TransactionWriteRepository) DeleteByWalletID(ctx context.Context, userID, walletID uuid.UUID) (int64, error) {
	const query = `
		DELETE FROM transactions
		WHERE wallet_id = $1 AND user_id = $2
	`

	res, err := r.executor(ctx).ExecContext(ctx, query, walletID, userID)

	logger.Log.Infow(
		"query", strings.Join(strings.Fields(query), " "),
		"args", []any{walletID, userID},
		"error", err,
	)

	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// TransactionReadRepository handles transaction read operations.
type TransactionReadRepository struct {
	db *sqlx.DB
}

func NewTransactionReadRepository(db *sqlx.DB) *TransactionReadRepository {
	return &TransactionReadRepository{db: db}
}

// GetByID returns the transaction owned by the given user, or (nil, nil) when
// no such transaction exists.
func (r *TransactionReadRepository) GetByID(ctx context.Context, userID, transactionID uuid.UUID) (*models.TransactionDB, error) {
	const query = `
		SELECT transaction_id, user_id, wallet_id, type, amount, occurred_on, description, created_at, updated_at
		FROM transactions
		WHERE transaction_id = $1 AND user_id = $2
	`

	var txn models.TransactionDB
	err := r.db.GetContext(ctx, &txn, query, transactionID, userID)

	logger.Log.Infow(
		"query", strings.Join(strings.Fields(query), " "),
		"args", []any{transactionID, userID},
		"error", err,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &txn, nil
}

// ListByUserID returns the user's transactions ordered by date descending,
// optionally filtered by wallet.
func (r *TransactionReadRepository) ListByUserID(ctx context.Context, userID uuid.UUID, walletID *uuid.UUID) ([]models.TransactionDB, error) {
	const query = `
		SELECT transaction_id, user_id, wallet_id, type, amount, occurred_on, description, created_at, updated_at
		FROM transactions
		WHERE user_id = $1
		  AND ($2::UUID IS NULL OR wallet_id = $2)
		ORDER BY occurred_on DESC, created_at DESC
	`

	var txns []models.TransactionDB
	err := r.db.SelectContext(ctx, &txns, query, userID, walletID)

	logger.Log.Infow(
		"query", strings.Join(strings.Fields(query), " "),
		"args", []any{userID, walletID},
		"result", len(txns),
		"error", err,
	)

	return txns, err
}

// SignedSumByWalletID recomputes the signed sum of a wallet's transactions
// from the log. Used by reconciliation to detect balance drift.
func (r *TransactionReadRepository) SignedSumByWalletID(ctx context.Context, userID, walletID uuid.UUID) (float64, error) {
	const query = `
		SELECT COALESCE(SUM(CASE WHEN type = 'income' THEN amount ELSE -amount END), 0)
		FROM transactions
		WHERE wallet_id = $1 AND user_id = $2
	`

	var sum float64
	err := r.db.GetContext(ctx, &sum, query, walletID, userID)

	logger.Log.Infow(
		"query", strings.Join(strings.Fields(query), " "),
		"args", []any{walletID, userID},
		"result", sum,
		"error", err,
	)

	return sum, err
}

// TotalsByUserID returns the user's total income and total expense across all
// wallets.
func (r *TransactionReadRepository) TotalsByUserID(ctx context.Context, userID uuid.UUID) (income, expense float64, err error) {
	const query = `
		SELECT
			COALESCE(SUM(amount) FILTER (WHERE type = 'income'), 0)  AS income,
			COALESCE(SUM(amount) FILTER (WHERE type = 'expense'), 0) AS expense
		FROM transactions
		WHERE user_id = $1
	`

	var totals struct {
		Income  float64 `db:"income"`
		Expense float64 `db:"expense"`
	}
	err = r.db.GetContext(ctx, &totals, query, userID)

	logger.Log.Infow(
		"query", strings.Join(strings.Fields(query), " "),
		"args", []any{userID},
		"result", totals,
		"error", err,
	)

	return totals.Income, totals.Expense, err
}
