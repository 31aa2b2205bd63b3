package repositories

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/andriarm/wallet-tracker/internal/logger"
	"github.com/andriarm/wallet-tracker/internal/models"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// WalletWriteRepository handles wallet write operations. When a transaction is
// present in the context (via the tx middleware) every statement runs on it,
// so a ledger operation's paired writes are atomic.
type WalletWriteRepository struct {
	db       *sqlx.DB
	txGetter func(ctx context.Context) *sqlx.Tx
}

func NewWalletWriteRepository(db *sqlx.DB, txGetter func(ctx context.Context) *sqlx.Tx) *WalletWriteRepository {
	return &WalletWriteRepository{db: db, txGetter: txGetter}
}

func (r *WalletWriteRepository) executor(ctx context.Context) sqlx.ExtContext {
	if r.txGetter != nil {
		if tx := r.txGetter(ctx); tx != nil {
			return tx
		}
	}
	return r.db
}

// Save inserts a wallet with the given opening balance and returns its id.
// The opening balance seeds the running balance as an implicit zero-th
// transaction that is never materialized as a row.
func (r *WalletWriteRepository) Save(ctx context.Context, userID uuid.UUID, name string, openingBalance float64) (uuid.UUID, error) {
	const query = `
		INSERT INTO wallets (user_id, name, balance, opening_balance, created_at, updated_at)
		VALUES ($1, $2, $3, $3, NOW(), NOW())
		RETURNING wallet_id
	`

	var walletID uuid.UUID
	err := sqlx.GetContext(ctx, r.executor(ctx), &walletID, query, userID, name, openingBalance)

	logger.Log.Infow(
		"query", strings.Join(strings.Fields(query), " "),
		"args", []any{userID, name, openingBalance},
		"result", walletID,
		"error", err,
	)

	return walletID, err
}

// UpdateName renames a wallet. Returns false when the wallet does not exist
// or is not owned by the user.
func (r *WalletWriteRepository) UpdateName(ctx context.Context, userID, walletID uuid.UUID, name string) (bool, error) {
	const query = `
		UPDATE wallets
		SET name = $3, updated_at = NOW()
		WHERE wallet_id = $1 AND user_id = $2
	`

	res, err := r.executor(ctx).ExecContext(ctx, query, walletID, userID, name)

	logger.Log.Infow(
		"query", strings.Join(strings.Fields(query), " "),
		"args", []any{walletID, userID, name},
		"error", err,
	)

	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

// ApplyDelta atomically increments the wallet balance by delta and returns the
// new balance. The increment happens in SQL, never as read-then-write, so
// concurrent deltas against one wallet are commutative. Returns sql.ErrNoRows
// when the wallet does not exist.
func (r *WalletWriteRepository) ApplyDelta(ctx context.Context, walletID uuid.UUID, delta float64) (float64, error) {
	const query = `
		UPDATE wallets
		SET balance = balance + $2, updated_at = NOW()
		WHERE wallet_id = $1
		RETURNING balance
	`

	var balance float64
	err := sqlx.GetContext(ctx, r.executor(ctx), &balance, query, walletID, delta)

	logger.Log.Infow(
		"query", strings.Join(strings.Fields(query), " "),
		"args", []any{walletID, delta},
		"result", balance,
		"error", err,
	)

	return balance, err
}

// Delete removes a wallet row. Returns false when nothing was deleted.
func (r *WalletWriteRepository) Delete(ctx context.Context, userID, walletID uuid.UUID) (bool, error) {
	const query = `
		DELETE FROM wallets
		WHERE wallet_id = $1 AND user_id = $2
	`

	res, err := r.executor(ctx).ExecContext(ctx, query, walletID, userID)

	logger.Log.Infow(
		"query", strings.Join(strings.Fields(query), " "),
		"args", []any{walletID, userID},
		"error", err,
	)

	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

// WalletReadRepository handles wallet read operations.
type WalletReadRepository struct {
	db *sqlx.DB
}

func NewWalletReadRepository(db *sqlx.DB) *WalletReadRepository {
	return &WalletReadRepository{db: db}
}

// GetByID returns the wallet owned by the given user, or (nil, nil) when no
// such wallet exists. Ownership is part of the lookup so a foreign wallet is
// indistinguishable from a missing one.
func (r *WalletReadRepository) GetByID(ctx context.Context, userID, walletID uuid.UUID) (*models.WalletDB, error) {
	const query = `
		SELECT wallet_id, user_id, name, balance, opening_balance, created_at, updated_at
		FROM wallets
		WHERE wallet_id = $1 AND user_id = $2
	`

	var wallet models.WalletDB
	err := r.db.GetContext(ctx, &wallet, query, walletID, userID)

	logger.Log.Infow(
		"query", strings.Join(strings.Fields(query), " "),
		"args", []any{walletID, userID},
		"error", err,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &wallet, nil
}

// ListByUserID returns all wallets of one user.
func (r *WalletReadRepository) ListByUserID(ctx context.Context, userID uuid.UUID) ([]models.WalletDB, error) {
	const query = `
		SELECT wallet_id, user_id, name, balance, opening_balance, created_at, updated_at
		FROM wallets
		WHERE user_id = $1
		ORDER BY created_at
	`

	var wallets []models.WalletDB
	err := r.db.SelectContext(ctx, &wallets, query, userID)

	logger.Log.Infow(
		"query", strings.Join(strings.Fields(query), " "),
		"args", []any{userID},
		"result", len(wallets),
		"error", err,
	)

	return wallets, err
}
