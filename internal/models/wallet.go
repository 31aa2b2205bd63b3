package models

import (
	"time"

	"github.com/google/uuid"
)

// WalletDB represents a wallet row in the database.
//
// Balance is a derived quantity: it must equal OpeningBalance plus the signed
// sum of all transactions referencing the wallet. It is stored (not computed
// on read) and maintained through atomic increments only.
type WalletDB struct {
	WalletID       uuid.UUID `json:"wallet_id" db:"wallet_id"`
	UserID         uuid.UUID `json:"user_id" db:"user_id"`
	Name           string    `json:"name" db:"name"`
	Balance        float64   `json:"balance" db:"balance"`
	OpeningBalance float64   `json:"opening_balance" db:"opening_balance"`
	CreatedAt      time.Time `json:"created_at" db:"created_at"`
	UpdatedAt      time.Time `json:"updated_at" db:"updated_at"`
}
