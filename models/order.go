package models

import "time"

// AcceptedOrder is the admission record handed to the matching engine once
// the full pipeline has passed. Price and amount stay decimal strings.
type AcceptedOrder struct {
	OrderID       int64     `json:"order_id"`
	APIKey        string    `json:"api_key"`
	ClientOrderID string    `json:"client_order_id,omitempty"`
	Symbol        string    `json:"symbol"`
	Side          string    `json:"side"` // "buy" or "sell"
	Type          string    `json:"type"`
	Price         string    `json:"price"`
	Amount        string    `json:"amount"`
	Options       []string  `json:"options"`
	AcceptedAt    time.Time `json:"accepted_at"`
}
