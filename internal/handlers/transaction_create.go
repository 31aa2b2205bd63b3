package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/andriarm/wallet-tracker/internal/logger"
	"github.com/andriarm/wallet-tracker/internal/middlewares"
	"github.com/andriarm/wallet-tracker/internal/models"
	"github.com/andriarm/wallet-tracker/internal/services"
	"github.com/google/uuid"
)

// TransactionRecorder defines the interface that the service must implement.
type TransactionRecorder interface {
	RecordTransaction(ctx context.Context, userID, walletID uuid.UUID, txType models.TransactionType, amount float64, occurredOn time.Time, description string) (uuid.UUID, error)
}

// CreateTransactionRequest represents the JSON body for recording a transaction
// swagger:model CreateTransactionRequest
type CreateTransactionRequest struct {
	// Target wallet ID
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

// CreateTransactionResponse represents a successful transaction creation response
// swagger:model CreateTransactionResponse
type CreateTransactionResponse struct {
	// Success message
	// default: Transaction recorded successfully
	Message string `json:"message"`

	// ID of the created transaction
	TransactionID uuid.UUID `json:"transaction_id"`
}

// CreateTransactionErrorResponse represents an error response for transaction creation
// swagger:model CreateTransactionErrorResponse
type CreateTransactionErrorResponse struct {
	// Error message
	// default: Invalid amount or type
	Error string `json:"error"`
}

// parseOccurredOn accepts a bare date or a full RFC3339 timestamp.
func parseOccurredOn(raw string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", raw); err == nil {
		return t, nil
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, nil
	}
	return time.Time{}, fmt.Errorf("invalid date %q", raw)
}

// NewCreateTransactionHandler returns an HTTP handler for recording a transaction.
// @Summary Record a transaction
// @Description Records an income or expense and applies its signed amount to the wallet balance in the same database transaction.
// @Tags transaction
// @Accept json
// @Produce json
// @Param request body handlers.CreateTransactionRequest true "Create Transaction Request"
// @Success 201 {object} handlers.CreateTransactionResponse "Transaction recorded"
// @Failure 400 {object} handlers.CreateTransactionErrorResponse "Invalid amount, type or date"
// @Failure 401 {object} handlers.CreateTransactionErrorResponse "Unauthorized"
// @Failure 404 {object} handlers.CreateTransactionErrorResponse "Wallet not found"
// @Router /transactions [post]
// @Security BearerAuth
func NewCreateTransactionHandler(svc TransactionRecorder) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		userID, ok := middlewares.UserIDFromContext(ctx)
		if !ok {
			w.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(w).Encode(CreateTransactionErrorResponse{Error: "Unauthorized"})
			return
		}

		var req CreateTransactionRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(CreateTransactionErrorResponse{Error: "Invalid request body"})
			return
		}

		txType, err := models.ParseTransactionType(req.Type)
		if err != nil {
			logger.Log.Warnw("invalid transaction type", "type", req.Type)
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(CreateTransactionErrorResponse{Error: "Invalid transaction type"})
			return
		}

		occurredOn, err := parseOccurredOn(req.Date)
		if err != nil {
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(CreateTransactionErrorResponse{Error: "Invalid date"})
			return
		}

		transactionID, err := svc.RecordTransaction(ctx, userID, req.WalletID, txType, req.Amount, occurredOn, req.Description)
		if err != nil {
			switch {
			case errors.Is(err, services.ErrInvalidAmount):
				w.WriteHeader(http.StatusBadRequest)
				json.NewEncoder(w).Encode(CreateTransactionErrorResponse{Error: "Amount must not be negative"})
			case errors.Is(err, services.ErrWalletNotFound):
				w.WriteHeader(http.StatusNotFound)
				json.NewEncoder(w).Encode(CreateTransactionErrorResponse{Error: "Wallet not found"})
			default:
				logger.Log.Errorw("failed to record transaction", "userID", userID, "walletID", req.WalletID, "error", err)
				w.WriteHeader(http.StatusInternalServerError)
				json.NewEncoder(w).Encode(CreateTransactionErrorResponse{Error: "Internal server error"})
			}
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(CreateTransactionResponse{
			Message:       "Transaction recorded successfully",
			TransactionID: transactionID,
		})
	}
}
