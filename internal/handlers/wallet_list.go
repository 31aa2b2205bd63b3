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

// WalletsLister defines the interface that the service must implement.
type WalletsLister interface {
	ListWallets(ctx context.Context, userID uuid.UUID) ([]models.WalletDB, error)
}

// ListWalletsResponse represents a successful wallet listing response
// swagger:model ListWalletsResponse
type ListWalletsResponse struct {
	// Wallets of the user
	Wallets []models.WalletDB `json:"wallets"`
}

// ListWalletsErrorResponse represents an error response for wallet listing
// swagger:model ListWalletsErrorResponse
type ListWalletsErrorResponse struct {
	// Error message
	// default: Unauthorized
	Error string `json:"error"`
}

// NewListWalletsHandler returns an HTTP handler for listing the user's wallets.
// @Summary List wallets
// @Description Returns all wallets owned by the authenticated user.
// @Tags wallet
// @Produce json
// @Success 200 {object} handlers.ListWalletsResponse "User wallets"
// @Failure 401 {object} handlers.ListWalletsErrorResponse "Unauthorized"
// @Failure 500 {object} handlers.ListWalletsErrorResponse "Internal server error"
// @Router /wallets [get]
// @Security BearerAuth
func NewListWalletsHandler(svc WalletsLister) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		userID, ok := middlewares.UserIDFromContext(ctx)
		if !ok {
			w.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(w).Encode(ListWalletsErrorResponse{Error: "Unauthorized"})
			return
		}

		wallets, err := svc.ListWallets(ctx, userID)
		if err != nil {
			logger.Log.Errorw("failed to list wallets", "userID", userID, "error", err)
			w.WriteHeader(http.StatusInternalServerError)
			json.NewEncoder(w).Encode(ListWalletsErrorResponse{Error: "Internal server error"})
			return
		}
		if wallets == nil {
			wallets = []models.WalletDB{}
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(ListWalletsResponse{Wallets: wallets})
	}
}
