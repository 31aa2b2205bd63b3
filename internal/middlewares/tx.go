package middlewares

import (
	"context"
	"net/http"

	"github.com/andriarm/wallet-tracker/internal/logger"
	"github.com/jmoiron/sqlx"
)

// TxMiddleware wraps an HTTP handler with a database transaction. Write
// repositories pick the transaction up from the request context, so the
// transaction row and the wallet balance delta of one ledger operation commit
// or roll back together.
//
// The transaction is rolled back when the handler reports an error status,
// closing the window where one half of a paired write survives the other.
//
// The handler streams its success body before Commit runs, so a commit
// failure can leave a client holding a 2xx response for a rolled back
// mutation. The failure is logged, and a 500 is still sent when nothing has
// been written yet.
func TxMiddleware(db *sqlx.DB) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tx, err := db.Beginx()
			if err != nil {
				logger.Log.Errorw("failed to begin transaction", "error", err)
				w.WriteHeader(http.StatusInternalServerError)
				return
			}

			defer func() {
				if rec := recover(); rec != nil {
					tx.Rollback()
					panic(rec)
				}
			}()

			rw := &responseWriter{
				ResponseWriter: w,
				statusCode:     http.StatusOK,
			}

			ctx := setTxToContext(r.Context(), tx)
			next.ServeHTTP(rw, r.WithContext(ctx))

			if rw.statusCode >= http.StatusBadRequest {
				if err := tx.Rollback(); err != nil {
					logger.Log.Errorw("failed to rollback transaction", "status", rw.statusCode, "error", err)
				}
				return
			}

			if err := tx.Commit(); err != nil {
				logger.Log.Errorw("failed to commit transaction", "error", err)
				if !rw.written {
					w.WriteHeader(http.StatusInternalServerError)
				}
			}
		})
	}
}

// contextKey is an unexported type for keys in context
type contextKey struct{}

var txKey = contextKey{}

// setTxToContext stores a transaction in the context
func setTxToContext(ctx context.Context, tx *sqlx.Tx) context.Context {
	return context.WithValue(ctx, txKey, tx)
}

// GetTxFromContext retrieves the transaction from the context. Returns nil if not present.
func GetTxFromContext(ctx context.Context) *sqlx.Tx {
	tx, _ := ctx.Value(txKey).(*sqlx.Tx)
	return tx
}
