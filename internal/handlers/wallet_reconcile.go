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

// WalletReconciler defines the interface that the service must implement.
type WalletReconciler interface {
	ReconcileWallet(ctx context.Context, userID, walletID uuid.UUID) (*services.ReconcileReport, error)
}

// ReconcileWalletResponse represents a reconciliation report response
// swagger:model ReconcileWalletResponse
type ReconcileWalletResponse struct {
	// Whether the stored balance matches the transaction log
	Consistent bool `json:"consistent"`

	// The reconciliation report
	Report *services.ReconcileReport `json:"report"`
}

// ReconcileWalletErrorResponse represents an error response for reconciliation
// swagger:model ReconcileWalletErrorResponse
type ReconcileWalletErrorResponse struct {
	// Error message
	// default: Wallet not found
	Error string `json:"error"`
}

// NewReconcileWalletHandler returns an HTTP handler that checks a wallet's
// stored balance against the signed sum of its transaction log.
// @Summary Reconcile a wallet
// @Description Recomputes the wallet balance from its transactions and reports any drift. Drift is reported, never silently repaired.
// @Tags wallet
// @Produce json
// @Param walletID path string true "Wallet ID"
// @Success 200 {object} handlers.ReconcileWalletResponse "Reconciliation report"
// @Failure 401 {object} handlers.ReconcileWalletErrorResponse "Unauthorized"
// @Failure 404 {object} handlers.ReconcileWalletErrorResponse "Wallet not found"
// @Router /wallets/{walletID}/reconcile [get]
// @Security BearerAuth
func NewReconcileWalletHandler(svc WalletReconciler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		userID, ok := middlewares.UserIDFromContext(ctx)
		if !ok {
			w.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(w).Encode(ReconcileWalletErrorResponse{Error: "Unauthorized"})
			return
		}

		walletID, err := uuid.Parse(chi.URLParam(r, "walletID"))
		if err != nil {
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(ReconcileWalletErrorResponse{Error: "Invalid wallet ID"})
			return
		}

		report, err := svc.ReconcileWallet(ctx, userID, walletID)
		if err != nil {
			switch {
			case errors.Is(err, services.ErrWalletNotFound):
				w.WriteHeader(http.StatusNotFound)
				json.NewEncoder(w).Encode(ReconcileWalletErrorResponse{Error: "Wallet not found"})
			default:
				logger.Log.Errorw("failed to reconcile wallet", "userID", userID, "walletID", walletID, "error", err)
				w.WriteHeader(http.StatusInternalServerError)
				json.NewEncoder(w).Encode(ReconcileWalletErrorResponse{Error: "Internal server error"})
			}
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(ReconcileWalletResponse{
			Consistent: report.Drift == 0,
			Report:     report,
		})
	}
}
