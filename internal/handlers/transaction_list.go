package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/andriarm/wallet-tracker/internal/logger"
	"github.com/andriarm/wallet-tracker/internal/middlewares"
	"github.com/andriarm/wallet-tracker/internal/models"
	"github.com/google/uuid"
)

// TransactionsLister defines the interface that the service must implement.
type TransactionsLister interface {
	ListTransactions(ctx context.Context, userID uuid.UUID, walletID *uuid.UUID) ([]models.TransactionDB, error)
}

// ListTransactionsResponse represents a successful transaction listing response
// swagger:model ListTransactionsResponse
type ListTransactionsResponse struct {
	// Transactions ordered by date descending
	Transactions []models.TransactionDB `json:"transactions"`
}

// ListTransactionsErrorResponse represents an error response for transaction listing
// swagger:model ListTransactionsErrorResponse
type ListTransactionsErrorResponse struct {
	// Error message
	// default: Unauthorized
	Error string `json:"error"`
}

// NewListTransactionsHandler returns an HTTP handler for listing transactions.
// @Summary List transactions
// @Description Returns the user's transactions ordered by date descending, optionally filtered to one wallet with the wallet_id query parameter.
// @Tags transaction
// @Produce json
// @Param wallet_id query string false "Wallet ID filter"
// @Success 200 {object} handlers.ListTransactionsResponse "Transactions"
// @Failure 400 {object} handlers.ListTransactionsErrorResponse "Invalid wallet ID"
// @Failure 401 {object} handlers.ListTransactionsErrorResponse "Unauthorized"
// @Router /transactions [get]
// @Security BearerAuth
func NewListTransactionsHandler(svc TransactionsLister) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		userID, ok := middlewares.UserIDFromContext(ctx)
		if !ok {
			w.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(w).Encode(ListTransactionsErrorResponse{Error: "Unauthorized"})
			return
		}

		var walletID *uuid.UUID
		if raw := r.URL.Query().Get("wallet_id"); raw != "" {
			id, err := uuid.Parse(raw)
			if err != nil {
				w.WriteHeader(http.StatusBadRequest)
				json.NewEncoder(w).Encode(ListTransactionsErrorResponse{Error: "Invalid wallet ID"})
				return
			}
			walletID = &id
		}

		txns, err := svc.ListTransactions(ctx, userID, walletID)
		if err != nil {
			logger.Log.Errorw("failed to list transactions", "userID", userID, "error", err)
			w.WriteHeader(http.StatusInternalServerError)
			json.NewEncoder(w).Encode(ListTransactionsErrorResponse{Error: "Internal server error"})
			return
		}
		if txns == nil {
			txns = []models.TransactionDB{}
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(ListTransactionsResponse{Transactions: txns})
	}
}
