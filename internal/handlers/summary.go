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

// Summarizer defines the interface that the service must implement.
type Summarizer interface {
	Summary(ctx context.Context, userID uuid.UUID) (*models.Summary, error)
}

// SummaryResponse represents a successful dashboard summary response
// swagger:model SummaryResponse
type SummaryResponse struct {
	// Dashboard totals
	Summary *models.Summary `json:"summary"`
}

// SummaryErrorResponse represents an error response for the summary
// swagger:model SummaryErrorResponse
type SummaryErrorResponse struct {
	// Error message
	// default: Unauthorized
	Error string `json:"error"`
}

// NewSummaryHandler returns an HTTP handler for the dashboard summary.
// @Summary Get dashboard summary
// @Description Returns total balance across wallets plus total income and expense.
// @Tags summary
// @Produce json
// @Success 200 {object} handlers.SummaryResponse "Dashboard totals"
// @Failure 401 {object} handlers.SummaryErrorResponse "Unauthorized"
// @Failure 500 {object} handlers.SummaryErrorResponse "Internal server error"
// @Router /summary [get]
// @Security BearerAuth
func NewSummaryHandler(svc Summarizer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		userID, ok := middlewares.UserIDFromContext(ctx)
		if !ok {
			w.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(w).Encode(SummaryErrorResponse{Error: "Unauthorized"})
			return
		}

		summary, err := svc.Summary(ctx, userID)
		if err != nil {
			logger.Log.Errorw("failed to get summary", "userID", userID, "error", err)
			w.WriteHeader(http.StatusInternalServerError)
			json.NewEncoder(w).Encode(SummaryErrorResponse{Error: "Internal server error"})
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(SummaryResponse{Summary: summary})
	}
}
