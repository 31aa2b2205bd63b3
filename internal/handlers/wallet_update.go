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

// WalletRenamer defines the interface that the service must implement.
type WalletRenamer interface {
	UpdateWallet(ctx context.Context, userID, walletID uuid.UUID, name string) error
}

// UpdateWalletRequest represents the JSON body for renaming a wallet
// swagger:model UpdateWalletRequest
type UpdateWalletRequest struct {
	// New wallet name
	// required: true
	// default: Savings
	Name string `json:"name"`
}

// UpdateWalletResponse represents a successful wallet update response
// swagger:model UpdateWalletResponse
type UpdateWalletResponse struct {
	// Success message
	// default: Wallet updated successfully
	Message string `json:"message"`
}

// UpdateWalletErrorResponse represents an error response for wallet update
// swagger:model UpdateWalletErrorResponse
type UpdateWalletErrorResponse struct {
	// Error message
	// default: Wallet not found
	Error string `json:"error"`
}

// NewUpdateWalletHandler returns an HTTP handler for renaming a wallet.
// @Summary Rename a wallet
// @Description Renames a wallet owned by the authenticated user. Balances are never edited directly.
// @Tags wallet
// @Accept json
// @Produce json
// @Param walletID path string true "Wallet ID"
// @Param request body handlers.UpdateWalletRequest true "Update Wallet Request"
// @Success 200 {object} handlers.UpdateWalletResponse "Wallet updated"
// @Failure 400 {object} handlers.UpdateWalletErrorResponse "Invalid request"
// @Failure 401 {object} handlers.UpdateWalletErrorResponse "Unauthorized"
// @Failure 404 {object} handlers.UpdateWalletErrorResponse "Wallet not found"
// @Router /wallets/{walletID} [put]
// @Security BearerAuth
func NewUpdateWalletHandler(svc WalletRenamer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		userID, ok := middlewares.UserIDFromContext(ctx)
		if !ok {
			w.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(w).Encode(UpdateWalletErrorResponse{Error: "Unauthorized"})
			return
		}

		walletID, err := uuid.Parse(chi.URLParam(r, "walletID"))
		if err != nil {
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(UpdateWalletErrorResponse{Error: "Invalid wallet ID"})
			return
		}

		var req UpdateWalletRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(UpdateWalletErrorResponse{Error: "Invalid request body"})
			return
		}

		if err := svc.UpdateWallet(ctx, userID, walletID, req.Name); err != nil {
			switch {
			case errors.Is(err, services.ErrEmptyWalletName):
				w.WriteHeader(http.StatusBadRequest)
				json.NewEncoder(w).Encode(UpdateWalletErrorResponse{Error: "Wallet name must not be empty"})
			case errors.Is(err, services.ErrWalletNotFound):
				w.WriteHeader(http.StatusNotFound)
				json.NewEncoder(w).Encode(UpdateWalletErrorResponse{Error: "Wallet not found"})
			default:
				logger.Log.Errorw("failed to update wallet", "userID", userID, "walletID", walletID, "error", err)
				w.WriteHeader(http.StatusInternalServerError)
				json.NewEncoder(w).Encode(UpdateWalletErrorResponse{Error: "Internal server error"})
			}
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(UpdateWalletResponse{Message: "Wallet updated successfully"})
	}
}
