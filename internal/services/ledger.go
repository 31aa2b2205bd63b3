package services

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/andriarm/wallet-tracker/internal/logger"
	"github.com/andriarm/wallet-tracker/internal/models"
	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
)

var (
	// ErrWalletNotFound is returned when the referenced wallet does not exist
	// or is not owned by the acting user.
	ErrWalletNotFound = errors.New("wallet not found")
	// ErrTransactionNotFound is returned when the referenced transaction does
	// not exist or is not owned by the acting user.
	ErrTransactionNotFound = errors.New("transaction not found")
	// ErrInvalidAmount is returned for negative amounts.
	ErrInvalidAmount = errors.New("amount must not be negative")
	// ErrInvalidTransactionType is returned for unrecognized type literals.
	ErrInvalidTransactionType = errors.New("invalid transaction type")
	// ErrEmptyWalletName is returned when a wallet name is blank.
	ErrEmptyWalletName = errors.New("wallet name must not be empty")
)

// WalletReader defines wallet read operations needed by the ledger.
type WalletReader interface {
	GetByID(ctx context.Context, userID, walletID uuid.UUID) (*models.WalletDB, error)
}

// WalletWriter defines wallet write operations needed by the ledger.
type WalletWriter interface {
	Save(ctx context.Context, userID uuid.UUID, name string, openingBalance float64) (uuid.UUID, error)
	UpdateName(ctx context.Context, userID, walletID uuid.UUID, name string) (bool, error)
	ApplyDelta(ctx context.Context, walletID uuid.UUID, delta float64) (float64, error)
	Delete(ctx context.Context, userID, walletID uuid.UUID) (bool, error)
}

// TransactionReader defines transaction read operations needed by the ledger.
type TransactionReader interface {
	SignedSumByWalletID(ctx context.Context, userID, walletID uuid.UUID) (float64, error)
}

// TransactionWriter defines transaction write operations needed by the ledger.
// GetByIDForUpdate must lock the row for the rest of the surrounding database
// transaction: edit and delete compute their balance deltas from it, and an
// unlocked read would let two concurrent edits both reverse the same old
// amount.
type TransactionWriter interface {
	GetByIDForUpdate(ctx context.Context, userID, transactionID uuid.UUID) (*models.TransactionDB, error)
	Save(ctx context.Context, userID, walletID uuid.UUID, txType models.TransactionType, amount float64, occurredOn time.Time, description string) (uuid.UUID, error)
	Update(ctx context.Context, userID, transactionID, walletID uuid.UUID, txType models.TransactionType, amount float64, occurredOn time.Time, description string) (bool, error)
	Delete(ctx context.Context, userID, transactionID uuid.UUID) (bool, error)
	DeleteByWalletID(ctx context.Context, userID, walletID uuid.UUID) (int64, error)
}

// SummaryInvalidator drops a user's cached dashboard summary.
type SummaryInvalidator interface {
	Invalidate(ctx context.Context, userID uuid.UUID) error
}

// KafkaWriter defines a Kafka writer abstraction.
type KafkaWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// ReconcileReport compares a wallet's stored balance against the signed sum
// recomputed from its transaction log.
type ReconcileReport struct {
	WalletID       uuid.UUID `json:"wallet_id"`
	StoredBalance  float64   `json:"stored_balance"`
	OpeningBalance float64   `json:"opening_balance"`
	SignedSum      float64   `json:"signed_sum"`
	Drift          float64   `json:"drift"`
}

// LedgerService keeps each wallet's stored balance equal to its opening
// balance plus the signed sum of its transactions.
//
// Every mutating method performs the transaction-row write and the wallet
// balance delta as two statements on the same database transaction (supplied
// through the request context), and the delta itself is a single-statement
// atomic increment. Validation and ownership checks happen before any write.
type LedgerService struct {
	walletReader WalletReader
	walletWriter WalletWriter
	txReader     TransactionReader
	txWriter     TransactionWriter
	summaries    SummaryInvalidator
	kafkaWriter  KafkaWriter
}

// NewLedgerService creates a new LedgerService.
func NewLedgerService(
	walletReader WalletReader,
	walletWriter WalletWriter,
	txReader TransactionReader,
	txWriter TransactionWriter,
	summaries SummaryInvalidator,
	kafkaWriter KafkaWriter,
) *LedgerService {
	return &LedgerService{
		walletReader: walletReader,
		walletWriter: walletWriter,
		txReader:     txReader,
		txWriter:     txWriter,
		summaries:    summaries,
		kafkaWriter:  kafkaWriter,
	}
}

// publishEvent publishes a ledger event to Kafka. Best effort: a publish
// failure is logged, never propagated into the ledger operation.
func (s *LedgerService) publishEvent(ctx context.Context, event models.LedgerEvent) {
	if s.kafkaWriter == nil {
		logger.Log.Warnw("Kafka writer not configured, skipping publishing", "operation", event.Operation)
		return
	}

	data, err := json.Marshal(event)
	if err != nil {
		logger.Log.Errorw("failed to marshal ledger event", "operation", event.Operation, "error", err)
		return
	}

	msg := kafka.Message{
		Key:   []byte(event.WalletID),
		Value: data,
	}

	if err := s.kafkaWriter.WriteMessages(ctx, msg); err != nil {
		logger.Log.Errorw("failed to publish ledger event", "operation", event.Operation, "error", err)
	} else {
		logger.Log.Infow("ledger event published", "operation", event.Operation, "wallet_id", event.WalletID)
	}
}

func (s *LedgerService) invalidateSummary(ctx context.Context, userID uuid.UUID) {
	if s.summaries == nil {
		return
	}
	if err := s.summaries.Invalidate(ctx, userID); err != nil {
		logger.Log.Errorw("failed to invalidate summary cache", "userID", userID, "error", err)
	}
}

func newEvent(operation string, userID, walletID uuid.UUID) models.LedgerEvent {
	return models.LedgerEvent{
		EventID:   uuid.NewString(),
		Timestamp: time.Now().Unix(),
		Operation: operation,
		UserID:    userID.String(),
		WalletID:  walletID.String(),
	}
}

// CreateWallet persists a wallet with the given opening balance and no
// transactions.
func (s *LedgerService) CreateWallet(ctx context.Context, userID uuid.UUID, name string, openingBalance float64) (uuid.UUID, error) {
	if strings.TrimSpace(name) == "" {
		return uuid.Nil, ErrEmptyWalletName
	}

	walletID, err := s.walletWriter.Save(ctx, userID, strings.TrimSpace(name), openingBalance)
	if err != nil {
		logger.Log.Errorw("failed to save wallet", "userID", userID, "name", name, "error", err)
		return uuid.Nil, err
	}

	s.invalidateSummary(ctx, userID)
	return walletID, nil
}

// UpdateWallet renames a wallet owned by the user.
func (s *LedgerService) UpdateWallet(ctx context.Context, userID, walletID uuid.UUID, name string) error {
	if strings.TrimSpace(name) == "" {
		return ErrEmptyWalletName
	}

	ok, err := s.walletWriter.UpdateName(ctx, userID, walletID, strings.TrimSpace(name))
	if err != nil {
		logger.Log.Errorw("failed to rename wallet", "userID", userID, "walletID", walletID, "error", err)
		return err
	}
	if !ok {
		return ErrWalletNotFound
	}
	return nil
}

// DeleteWallet removes the wallet and every transaction referencing it as one
// all-or-nothing batch. No balance reversal is performed since the wallet row
// itself disappears.
func (s *LedgerService) DeleteWallet(ctx context.Context, userID, walletID uuid.UUID) error {
	wallet, err := s.walletReader.GetByID(ctx, userID, walletID)
	if err != nil {
		logger.Log.Errorw("failed to load wallet", "userID", userID, "walletID", walletID, "error", err)
		return err
	}
	if wallet == nil {
		return ErrWalletNotFound
	}

	deleted, err := s.txWriter.DeleteByWalletID(ctx, userID, walletID)
	if err != nil {
		logger.Log.Errorw("failed to delete wallet transactions", "userID", userID, "walletID", walletID, "error", err)
		return err
	}

	ok, err := s.walletWriter.Delete(ctx, userID, walletID)
	if err != nil {
		logger.Log.Errorw("failed to delete wallet", "userID", userID, "walletID", walletID, "error", err)
		return err
	}
	if !ok {
		return ErrWalletNotFound
	}

	event := newEvent("cascade_delete", userID, walletID)
	event.Amount = float64(deleted)
	s.publishEvent(ctx, event)
	s.invalidateSummary(ctx, userID)

	logger.Log.Infow("wallet deleted with transactions", "walletID", walletID, "transactions", deleted)
	return nil
}

// RecordTransaction persists a new transaction and atomically applies its
// signed amount to the target wallet's balance.
func (s *LedgerService) RecordTransaction(ctx context.Context, userID, walletID uuid.UUID, txType models.TransactionType, amount float64, occurredOn time.Time, description string) (uuid.UUID, error) {
	if amount < 0 {
		return uuid.Nil, ErrInvalidAmount
	}
	if txType != models.TypeIncome && txType != models.TypeExpense {
		return uuid.Nil, ErrInvalidTransactionType
	}

	wallet, err := s.walletReader.GetByID(ctx, userID, walletID)
	if err != nil {
		logger.Log.Errorw("failed to load wallet", "userID", userID, "walletID", walletID, "error", err)
		return uuid.Nil, err
	}
	if wallet == nil {
		return uuid.Nil, ErrWalletNotFound
	}

	transactionID, err := s.txWriter.Save(ctx, userID, walletID, txType, amount, occurredOn, description)
	if err != nil {
		logger.Log.Errorw("failed to save transaction", "userID", userID, "walletID", walletID, "error", err)
		return uuid.Nil, err
	}

	if _, err := s.walletWriter.ApplyDelta(ctx, walletID, models.Signed(txType, amount)); err != nil {
		// The surrounding transaction rolls the row insert back with us.
		logger.Log.Errorw("failed to apply balance delta",
			"transactionID", transactionID, "walletID", walletID,
			"delta", models.Signed(txType, amount), "error", err)
		return uuid.Nil, err
	}

	event := newEvent("record", userID, walletID)
	event.TransactionID = transactionID.String()
	event.Amount = models.Signed(txType, amount)
	s.publishEvent(ctx, event)
	s.invalidateSummary(ctx, userID)

	return transactionID, nil
}

// EditTransaction overwrites a transaction's fields, reversing the old signed
// amount and applying the new one. The old row is read with a row lock on the
// request's database transaction, so concurrent edits of one transaction
// serialize and each delta is computed against the amount it actually
// replaces. When the transaction moves between wallets the reversal and the
// application hit the two wallets separately; the target wallet is verified
// before any write.
func (s *LedgerService) EditTransaction(ctx context.Context, userID, transactionID, newWalletID uuid.UUID, txType models.TransactionType, amount float64, occurredOn time.Time, description string) error {
	if amount < 0 {
		return ErrInvalidAmount
	}
	if txType != models.TypeIncome && txType != models.TypeExpense {
		return ErrInvalidTransactionType
	}

	old, err := s.txWriter.GetByIDForUpdate(ctx, userID, transactionID)
	if err != nil {
		logger.Log.Errorw("failed to load transaction", "userID", userID, "transactionID", transactionID, "error", err)
		return err
	}
	if old == nil {
		return ErrTransactionNotFound
	}

	if newWalletID != old.WalletID {
		wallet, err := s.walletReader.GetByID(ctx, userID, newWalletID)
		if err != nil {
			logger.Log.Errorw("failed to load target wallet", "userID", userID, "walletID", newWalletID, "error", err)
			return err
		}
		if wallet == nil {
			return ErrWalletNotFound
		}
	}

	oldSigned := models.Signed(old.Type, old.Amount)
	newSigned := models.Signed(txType, amount)

	if newWalletID == old.WalletID {
		if delta := newSigned - oldSigned; delta != 0 {
			if _, err := s.walletWriter.ApplyDelta(ctx, old.WalletID, delta); err != nil {
				logger.Log.Errorw("failed to apply balance delta",
					"transactionID", transactionID, "walletID", old.WalletID, "delta", delta, "error", err)
				return err
			}
		}
	} else {
		if _, err := s.walletWriter.ApplyDelta(ctx, old.WalletID, -oldSigned); err != nil {
			logger.Log.Errorw("failed to reverse balance delta",
				"transactionID", transactionID, "walletID", old.WalletID, "delta", -oldSigned, "error", err)
			return err
		}
		if _, err := s.walletWriter.ApplyDelta(ctx, newWalletID, newSigned); err != nil {
			logger.Log.Errorw("failed to apply balance delta",
				"transactionID", transactionID, "walletID", newWalletID, "delta", newSigned, "error", err)
			return err
		}
	}

	ok, err := s.txWriter.Update(ctx, userID, transactionID, newWalletID, txType, amount, occurredOn, description)
	if err != nil {
		logger.Log.Errorw("failed to update transaction", "userID", userID, "transactionID", transactionID, "error", err)
		return err
	}
	if !ok {
		return ErrTransactionNotFound
	}

	event := newEvent("edit", userID, newWalletID)
	event.TransactionID = transactionID.String()
	event.Amount = newSigned
	s.publishEvent(ctx, event)
	s.invalidateSummary(ctx, userID)

	return nil
}

// DeleteTransaction reverses the transaction's signed amount from its wallet
// and removes the row. The row is locked for the reversal read so a concurrent
// edit cannot change the amount between the read and the delete.
func (s *LedgerService) DeleteTransaction(ctx context.Context, userID, transactionID uuid.UUID) error {
	old, err := s.txWriter.GetByIDForUpdate(ctx, userID, transactionID)
	if err != nil {
		logger.Log.Errorw("failed to load transaction", "userID", userID, "transactionID", transactionID, "error", err)
		return err
	}
	if old == nil {
		return ErrTransactionNotFound
	}

	oldSigned := models.Signed(old.Type, old.Amount)
	if _, err := s.walletWriter.ApplyDelta(ctx, old.WalletID, -oldSigned); err != nil {
		logger.Log.Errorw("failed to reverse balance delta",
			"transactionID", transactionID, "walletID", old.WalletID, "delta", -oldSigned, "error", err)
		return err
	}

	ok, err := s.txWriter.Delete(ctx, userID, transactionID)
	if err != nil {
		logger.Log.Errorw("failed to delete transaction", "userID", userID, "transactionID", transactionID, "error", err)
		return err
	}
	if !ok {
		return ErrTransactionNotFound
	}

	event := newEvent("delete", userID, old.WalletID)
	event.TransactionID = transactionID.String()
	event.Amount = -oldSigned
	s.publishEvent(ctx, event)
	s.invalidateSummary(ctx, userID)

	return nil
}

// ReconcileWallet recomputes the signed sum from the transaction log and
// compares it against the stored balance minus the opening balance. Drift is
// reported with enough detail to support reconciliation and logged as an
// error, never silently patched.
func (s *LedgerService) ReconcileWallet(ctx context.Context, userID, walletID uuid.UUID) (*ReconcileReport, error) {
	wallet, err := s.walletReader.GetByID(ctx, userID, walletID)
	if err != nil {
		logger.Log.Errorw("failed to load wallet", "userID", userID, "walletID", walletID, "error", err)
		return nil, err
	}
	if wallet == nil {
		return nil, ErrWalletNotFound
	}

	sum, err := s.txReader.SignedSumByWalletID(ctx, userID, walletID)
	if err != nil {
		logger.Log.Errorw("failed to recompute signed sum", "walletID", walletID, "error", err)
		return nil, err
	}

	report := &ReconcileReport{
		WalletID:       walletID,
		StoredBalance:  wallet.Balance,
		OpeningBalance: wallet.OpeningBalance,
		SignedSum:      sum,
		Drift:          wallet.Balance - wallet.OpeningBalance - sum,
	}

	if report.Drift != 0 {
		logger.Log.Errorw("wallet balance drift detected",
			"walletID", walletID,
			"stored", report.StoredBalance,
			"opening", report.OpeningBalance,
			"signed_sum", report.SignedSum,
			"drift", report.Drift,
		)
	}

	return report, nil
}
