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

// WalletDeleter defines the interface that the service must implement.
type WalletDeleter interface {
	DeleteWallet(ctx context.Context, userID, walletID uuid.UUID) error
}

// DeleteWalletResponse represents a successful wallet deletion response
// swagger:model DeleteWalletResponse
type DeleteWalletResponse struct {
	// Success message
	// default: Wallet deleted successfully
	Message string `json:"message"`
}

// DeleteWalletErrorResponse represents an error response for wallet deletion
// swagger:model DeleteWalletErrorResponse
type DeleteWalletErrorResponse struct {
	// Error message
	// default: Wallet not found
	Error string `json:"error"`
}

// NewDeleteWalletHandler returns an HTTP handler for deleting a wallet.
// @Summary Delete a wallet
// @Description Deletes a wallet and all of its transactions as one batch. No orphaned transactions remain.
// @Tags wallet
// @Produce json
// @Param walletID path string true "Wallet ID"
// @Success 200 {object} handlers.DeleteWalletResponse "Wallet deleted"
// @Failure 401 {object} handlers.DeleteWalletErrorResponse "Unauthorized"
// @Failure 404 {object} handlers.DeleteWalletErrorResponse "Wallet not found"
// @Router /wallets/{walletID} [delete]
// @Security BearerAuth
func NewDeleteWalletHandler(svc WalletDeleter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		userID, ok := middlewares.UserIDFromContext(ctx)
		if !ok {
			w.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(w).Encode(DeleteWalletErrorResponse{Error: "Unauthorized"})
			return
		}

		walletID, err := uuid.Parse(chi.URLParam(r, "walletID"))
		if err != nil {
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(DeleteWalletErrorResponse{Error: "Invalid wallet ID"})
			return
		}

		if err := svc.DeleteWallet(ctx, userID, walletID); err != nil {
			switch {
			case errors.Is(err, services.ErrWalletNotFound):
				w.WriteHeader(http.StatusNotFound)
				json.NewEncoder(w).Encode(DeleteWalletErrorResponse{Error: "Wallet not found"})
			default:
				logger.Log.Errorw("failed to delete wallet", "userID", userID, "walletID", walletID, "error", err)
				w.WriteHeader(http.StatusInternalServerError)
				json.NewEncoder(w).Encode(DeleteWalletErrorResponse{Error: "Internal server error"})
			}
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(DeleteWalletResponse{Message: "Wallet deleted successfully"})
	}
}
