package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// TransactionType is the normalized direction of a transaction.
type TransactionType string

const (
	TypeIncome  TransactionType = "income"
	TypeExpense TransactionType = "expense"
)

// typeAliases maps the literal spellings that appeared across revisions of the
// data to the two canonical variants.
var typeAliases = map[string]TransactionType{
	"income":      TypeIncome,
	"pemasukan":   TypeIncome,
	"masuk":       TypeIncome,
	"expense":     TypeExpense,
	"pengeluaran": TypeExpense,
	"keluar":      TypeExpense,
}

// ParseTransactionType normalizes a raw type literal. Unrecognized literals
// are an error, never a silent zero delta.
func ParseTransactionType(raw string) (TransactionType, error) {
	t, ok := typeAliases[strings.ToLower(strings.TrimSpace(raw))]
	if !ok {
		return "", fmt.Errorf("unknown transaction type %q", raw)
	}
	return t, nil
}

// Signed returns the amount with the sign implied by the type:
// positive for income, negative for expense.
func Signed(t TransactionType, amount float64) float64 {
	if t == TypeIncome {
		return amount
	}
	return -amount
}

// TransactionDB represents a transaction row in the database.
type TransactionDB struct {
	TransactionID uuid.UUID       `json:"transaction_id" db:"transaction_id"`
	UserID        uuid.UUID       `json:"user_id" db:"user_id"`
	WalletID      uuid.UUID       `json:"wallet_id" db:"wallet_id"`
	Type          TransactionType `json:"type" db:"type"`
	Amount        float64         `json:"amount" db:"amount"`
	OccurredOn    time.Time       `json:"occurred_on" db:"occurred_on"`
	Description   string          `json:"description" db:"description"`
	CreatedAt     time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at" db:"updated_at"`
}

// LedgerEvent is the message published to Kafka after a ledger mutation.
type LedgerEvent struct {
	EventID       string  `json:"event_id"`
	Timestamp     int64   `json:"timestamp"`
	Operation     string  `json:"operation"` // "record", "edit", "delete", "cascade_delete"
	UserID        string  `json:"user_id"`
	WalletID      string  `json:"wallet_id"`
	TransactionID string  `json:"transaction_id,omitempty"`
	Amount        float64 `json:"amount,omitempty"`
}
