package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/andriarm/wallet-tracker/internal/logger"
	"github.com/andriarm/wallet-tracker/internal/middlewares"
	"github.com/andriarm/wallet-tracker/internal/models"
	"github.com/andriarm/wallet-tracker/internal/services"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// WalletGetter defines the interface that the service must implement.
type WalletGetter interface {
	GetWallet(ctx context.Context, userID, walletID uuid.UUID) (*models.WalletDB, error)
}

// GetWalletResponse represents a successful single-wallet response
// swagger:model GetWalletResponse
type GetWalletResponse struct {
	// The wallet
	Wallet *models.WalletDB `json:"wallet"`
}

// GetWalletErrorResponse represents an error response for fetching a wallet
// swagger:model GetWalletErrorResponse
type GetWalletErrorResponse struct {
	// Error message
	// default: Wallet not found
	Error string `json:"error"`
}

// NewGetWalletHandler returns an HTTP handler for fetching one wallet.
// @Summary Get a wallet
// @Description Returns a single wallet owned by the authenticated user.
// @Tags wallet
// @Produce json
// @Param walletID path string true "Wallet ID"
// @Success 200 {object} handlers.GetWalletResponse "The wallet"
// @Failure 401 {object} handlers.GetWalletErrorResponse "Unauthorized"
// @Failure 404 {object} handlers.GetWalletErrorResponse "Wallet not found"
// @Router /wallets/{walletID} [get]
// @Security BearerAuth
func NewGetWalletHandler(svc WalletGetter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		userID, ok := middlewares.UserIDFromContext(ctx)
		if !ok {
			w.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(w).Encode(GetWalletErrorResponse{Error: "Unauthorized"})
			return
		}

		walletID, err := uuid.Parse(chi.URLParam(r, "walletID"))
		if err != nil {
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(GetWalletErrorResponse{Error: "Invalid wallet ID"})
			return
		}

		wallet, err := svc.GetWallet(ctx, userID, walletID)
		if err != nil {
			switch {
			case errors.Is(err, services.ErrWalletNotFound):
				w.WriteHeader(http.StatusNotFound)
				json.NewEncoder(w).Encode(GetWalletErrorResponse{Error: "Wallet not found"})
			default:
				logger.Log.Errorw("failed to get wallet", "userID", userID, "walletID", walletID, "error", err)
				w.WriteHeader(http.StatusInternalServerError)
				json.NewEncoder(w).Encode(GetWalletErrorResponse{Error: "Internal server error"})
			}
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(GetWalletResponse{Wallet: wallet})
	}
}
