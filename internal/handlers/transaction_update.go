package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/andriarm/wallet-tracker/internal/logger"
	"github.com/andriarm/wallet-tracker/internal/middlewares"
	"github.com/andriarm/wallet-tracker/internal/models"
	"github.com/andriarm/wallet-tracker/internal/services"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// TransactionEditor defines the interface that the service must implement.
type TransactionEditor interface {
	EditTransaction(ctx context.Context, userID, transactionID, newWalletID uuid.UUID, txType models.TransactionType, amount float64, occurredOn time.Time, description string) error
}

// UpdateTransactionRequest represents the JSON body for editing a transaction
// swagger:model UpdateTransactionRequest
type UpdateTransactionRequest struct {
	// Target wallet ID; changing it moves the transaction between wallets
	// required: true
	WalletID uuid.UUID `json:"wallet_id"`

	// Transaction type: income or expense
	// required: true
	// default: expense
	Type string `json:"type"`

	// Amount, non-negative
	// required: true
	// default: 25.0
	Amount float64 `json:"amount"`

	// Date of the transaction, YYYY-MM-DD or RFC3339
	// required: true
	// default: 2024-03-01
	Date string `json:"date"`

	// Free-form description
	Description string `json:"description"`
}

// UpdateTransactionResponse represents a successful transaction edit response
// swagger:model UpdateTransactionResponse
type UpdateTransactionResponse struct {
	// Success message
	// default: Transaction updated successfully
	Message string `json:"message"`
}

// UpdateTransactionErrorResponse represents an error response for transaction edit
// swagger:model UpdateTransactionErrorResponse
type UpdateTransactionErrorResponse struct {
	// Error message
	// default: Transaction not found
	Error string `json:"error"`
}

// NewUpdateTransactionHandler returns an HTTP handler for editing a transaction.
// @Summary Edit a transaction
// @Description Overwrites a transaction's fields, reversing the old signed amount and applying the new one. Moving the transaction to another wallet adjusts both wallets.
// @Tags transaction
// @Accept json
// @Produce json
// @Param transactionID path string true "Transaction ID"
// @Param request body handlers.UpdateTransactionRequest true "Update Transaction Request"
// @Success 200 {object} handlers.UpdateTransactionResponse "Transaction updated"
// @Failure 400 {object} handlers.UpdateTransactionErrorResponse "Invalid amount, type or date"
// @Failure 401 {object} handlers.UpdateTransactionErrorResponse "Unauthorized"
// @Failure 404 {object} handlers.UpdateTransactionErrorResponse "Transaction or wallet not found"
// @Router /transactions/{transactionID} [put]
// @Security BearerAuth
func NewUpdateTransactionHandler(svc TransactionEditor) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		userID, ok := middlewares.UserIDFromContext(ctx)
		if !ok {
			w.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(w).Encode(UpdateTransactionErrorResponse{Error: "Unauthorized"})
			return
		}

		transactionID, err := uuid.Parse(chi.URLParam(r, "transactionID"))
		if err != nil {
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(UpdateTransactionErrorResponse{Error: "Invalid transaction ID"})
			return
		}

		var req UpdateTransactionRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(UpdateTransactionErrorResponse{Error: "Invalid request body"})
			return
		}

		txType, err := models.ParseTransactionType(req.Type)
		if err != nil {
			logger.Log.Warnw("invalid transaction type", "type", req.Type)
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(UpdateTransactionErrorResponse{Error: "Invalid transaction type"})
			return
		}

		occurredOn, err := parseOccurredOn(req.Date)
		if err != nil {
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(UpdateTransactionErrorResponse{Error: "Invalid date"})
			return
		}

		err = svc.EditTransaction(ctx, userID, transactionID, req.WalletID, txType, req.Amount, occurredOn, req.Description)
		if err != nil {
			switch {
			case errors.Is(err, services.ErrInvalidAmount):
				w.WriteHeader(http.StatusBadRequest)
				json.NewEncoder(w).Encode(UpdateTransactionErrorResponse{Error: "Amount must not be negative"})
			case errors.Is(err, services.ErrTransactionNotFound):
				w.WriteHeader(http.StatusNotFound)
				json.NewEncoder(w).Encode(UpdateTransactionErrorResponse{Error: "Transaction not found"})
			case errors.Is(err, services.ErrWalletNotFound):
				w.WriteHeader(http.StatusNotFound)
				json.NewEncoder(w).Encode(UpdateTransactionErrorResponse{Error: "Wallet not found"})
			default:
				logger.Log.Errorw("failed to update transaction", "userID", userID, "transactionID", transactionID, "error", err)
				w.WriteHeader(http.StatusInternalServerError)
				json.NewEncoder(w).Encode(UpdateTransactionErrorResponse{Error: "Internal server error"})
			}
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(UpdateTransactionResponse{Message: "Transaction updated successfully"})
	}
}
