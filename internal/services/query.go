package services

import (
	"context"

	"github.com/andriarm/wallet-tracker/internal/logger"
	"github.com/andriarm/wallet-tracker/internal/models"
	"github.com/google/uuid"
)

// WalletLister defines wallet listing operations needed by the query service.
type WalletLister interface {
	GetByID(ctx context.Context, userID, walletID uuid.UUID) (*models.WalletDB, error)
	ListByUserID(ctx context.Context, userID uuid.UUID) ([]models.WalletDB, error)
}

// TransactionLister defines transaction listing operations needed by the
// query service.
type TransactionLister interface {
	ListByUserID(ctx context.Context, userID uuid.UUID, walletID *uuid.UUID) ([]models.TransactionDB, error)
	TotalsByUserID(ctx context.Context, userID uuid.UUID) (income, expense float64, err error)
}

// SummaryCache reads and writes cached dashboard summaries.
type SummaryCache interface {
	Get(ctx context.Context, userID uuid.UUID) (*models.Summary, error)
	Set(ctx context.Context, userID uuid.UUID, summary models.Summary) error
}

// QueryService serves the read side: wallet and transaction listings plus the
// dashboard summary. No aggregation logic beyond read-side reductions over
// rows the ledger already keeps consistent.
type QueryService struct {
	wallets      WalletLister
	transactions TransactionLister
	cache        SummaryCache
}

// NewQueryService creates a new QueryService.
func NewQueryService(wallets WalletLister, transactions TransactionLister, cache SummaryCache) *QueryService {
	return &QueryService{
		wallets:      wallets,
		transactions: transactions,
		cache:        cache,
	}
}

// ListWallets returns all wallets of the user.
func (s *QueryService) ListWallets(ctx context.Context, userID uuid.UUID) ([]models.WalletDB, error) {
	wallets, err := s.wallets.ListByUserID(ctx, userID)
	if err != nil {
		logger.Log.Errorw("failed to list wallets", "userID", userID, "error", err)
		return nil, err
	}
	return wallets, nil
}

// GetWallet returns a single wallet owned by the user.
func (s *QueryService) GetWallet(ctx context.Context, userID, walletID uuid.UUID) (*models.WalletDB, error) {
	wallet, err := s.wallets.GetByID(ctx, userID, walletID)
	if err != nil {
		logger.Log.Errorw("failed to get wallet", "userID", userID, "walletID", walletID, "error", err)
		return nil, err
	}
	if wallet == nil {
		return nil, ErrWalletNotFound
	}
	return wallet, nil
}

// ListTransactions returns the user's transactions ordered by date
// descending, optionally scoped to one wallet.
func (s *QueryService) ListTransactions(ctx context.Context, userID uuid.UUID, walletID *uuid.UUID) ([]models.TransactionDB, error) {
	txns, err := s.transactions.ListByUserID(ctx, userID, walletID)
	if err != nil {
		logger.Log.Errorw("failed to list transactions", "userID", userID, "error", err)
		return nil, err
	}
	return txns, nil
}

// Summary returns the user's dashboard totals, read through the cache.
// A cache failure degrades to a direct computation, never to an error.
func (s *QueryService) Summary(ctx context.Context, userID uuid.UUID) (*models.Summary, error) {
	if s.cache != nil {
		cached, err := s.cache.Get(ctx, userID)
		if err != nil {
			logger.Log.Warnw("summary cache read failed", "userID", userID, "error", err)
		} else if cached != nil {
			return cached, nil
		}
	}

	wallets, err := s.wallets.ListByUserID(ctx, userID)
	if err != nil {
		logger.Log.Errorw("failed to list wallets for summary", "userID", userID, "error", err)
		return nil, err
	}

	var totalBalance float64
	for _, w := range wallets {
		totalBalance += w.Balance
	}

	income, expense, err := s.transactions.TotalsByUserID(ctx, userID)
	if err != nil {
		logger.Log.Errorw("failed to compute totals", "userID", userID, "error", err)
		return nil, err
	}

	summary := models.Summary{
		TotalBalance: totalBalance,
		TotalIncome:  income,
		TotalExpense: expense,
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, userID, summary); err != nil {
			logger.Log.Warnw("summary cache write failed", "userID", userID, "error", err)
		}
	}

	return &summary, nil
}
