package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/andriarm/wallet-tracker/internal/logger"
	"github.com/andriarm/wallet-tracker/internal/middlewares"
	"github.com/andriarm/wallet-tracker/internal/services"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// TransactionDeleter defines the interface that the service must implement.
type TransactionDeleter interface {
	DeleteTransaction(ctx context.Context, userID, transactionID uuid.UUID) error
}

// DeleteTransactionResponse represents a successful transaction deletion response
// swagger:model DeleteTransactionResponse
type DeleteTransactionResponse struct {
	// Success message
	// default: Transaction deleted successfully
	Message string `json:"message"`
}

// DeleteTransactionErrorResponse represents an error response for transaction deletion
// swagger:model DeleteTransactionErrorResponse
type DeleteTransactionErrorResponse struct {
	// Error message
	// default: Transaction not found
	Error string `json:"error"`
}

// NewDeleteTransactionHandler returns an HTTP handler for deleting a transaction.
// @Summary Delete a transaction
// @Description Deletes a transaction and reverses its signed amount from the wallet balance.
// @Tags transaction
// @Produce json
// @Param transactionID path string true "Transaction ID"
// @Success 200 {object} handlers.DeleteTransactionResponse "Transaction deleted"
// @Failure 401 {object} handlers.DeleteTransactionErrorResponse "Unauthorized"
// @Failure 404 {object} handlers.DeleteTransactionErrorResponse "Transaction not found"
// @Router /transactions/{transactionID} [delete]
// @Security BearerAuth
func NewDeleteTransactionHandler(svc TransactionDeleter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		userID, ok := middlewares.UserIDFromContext(ctx)
		if !ok {
			w.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(w).Encode(DeleteTransactionErrorResponse{Error: "Unauthorized"})
			return
		}

		transactionID, err := uuid.Parse(chi.URLParam(r, "transactionID"))
		if err != nil {
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(DeleteTransactionErrorResponse{Error: "Invalid transaction ID"})
			return
		}

		if err := svc.DeleteTransaction(ctx, userID, transactionID); err != nil {
			switch {
			case errors.Is(err, services.ErrTransactionNotFound):
				w.WriteHeader(http.StatusNotFound)
				json.NewEncoder(w).Encode(DeleteTransactionErrorResponse{Error: "Transaction not found"})
			default:
				logger.Log.Errorw("failed to delete transaction", "userID", userID, "transactionID", transactionID, "error", err)
				w.WriteHeader(http.StatusInternalServerError)
				json.NewEncoder(w).Encode(DeleteTransactionErrorResponse{Error: "Internal server error"})
			}
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(DeleteTransactionResponse{Message: "Transaction deleted successfully"})
	}
}
