package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/andriarm/wallet-tracker/internal/logger"
	"github.com/andriarm/wallet-tracker/internal/middlewares"
	"github.com/andriarm/wallet-tracker/internal/services"
	"github.com/google/uuid"
)

// WalletCreator defines the interface that the service must implement.
type WalletCreator interface {
	CreateWallet(ctx context.Context, userID uuid.UUID, name string, openingBalance float64) (uuid.UUID, error)
}

// CreateWalletRequest represents the JSON body for creating a wallet
// swagger:model CreateWalletRequest
type CreateWalletRequest struct {
	// Wallet name
	// required: true
	// default: Cash
	Name string `json:"name"`

	// Opening balance
	// default: 0.0
	OpeningBalance float64 `json:"opening_balance"`
}

// CreateWalletResponse represents a successful wallet creation response
// swagger:model CreateWalletResponse
type CreateWalletResponse struct {
	// Success message
	// default: Wallet created successfully
	Message string `json:"message"`

	// ID of the created wallet
	WalletID uuid.UUID `json:"wallet_id"`
}

// CreateWalletErrorResponse represents an error response for wallet creation
// swagger:model CreateWalletErrorResponse
type CreateWalletErrorResponse struct {
	// Error message
	// default: Wallet name must not be empty
	Error string `json:"error"`
}

// NewCreateWalletHandler returns an HTTP handler for creating a wallet.
// @Summary Create a wallet
// @Description Creates a wallet for the authenticated user. The stored balance starts at the opening balance.
// @Tags wallet
// @Accept json
// @Produce json
// @Param request body handlers.CreateWalletRequest true "Create Wallet Request"
// @Success 201 {object} handlers.CreateWalletResponse "Wallet created"
// @Failure 400 {object} handlers.CreateWalletErrorResponse "Invalid request"
// @Failure 401 {object} handlers.CreateWalletErrorResponse "Unauthorized"
// @Router /wallets [post]
// @Security BearerAuth
func NewCreateWalletHandler(svc WalletCreator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		userID, ok := middlewares.UserIDFromContext(ctx)
		if !ok {
			w.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(w).Encode(CreateWalletErrorResponse{Error: "Unauthorized"})
			return
		}

		var req CreateWalletRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(CreateWalletErrorResponse{Error: "Invalid request body"})
			return
		}

		walletID, err := svc.CreateWallet(ctx, userID, req.Name, req.OpeningBalance)
		if err != nil {
			switch {
			case errors.Is(err, services.ErrEmptyWalletName):
				w.WriteHeader(http.StatusBadRequest)
				json.NewEncoder(w).Encode(CreateWalletErrorResponse{Error: "Wallet name must not be empty"})
			default:
				logger.Log.Errorw("failed to create wallet", "userID", userID, "error", err)
				w.WriteHeader(http.StatusInternalServerError)
				json.NewEncoder(w).Encode(CreateWalletErrorResponse{Error: "Internal server error"})
			}
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(CreateWalletResponse{
			Message:  "Wallet created successfully",
			WalletID: walletID,
		})
	}
}
