package models

import "fmt"

// OrderResponse is the intake-time snapshot returned for an accepted order.
// All amount and price fields are decimal strings; execution fields start at
// zero and are mutated later by the matching engine, never by the gateway.
type OrderResponse struct {
	OrderID           string   `json:"order_id"`
	ClientOrderID     string   `json:"client_order_id"`
	Symbol            string   `json:"symbol"`
	Price             string   `json:"price"`
	AvgExecutionPrice string   `json:"avg_execution_price"`
	Side              string   `json:"side"`
	Type              string   `json:"type"`
	Timestamp         string   `json:"timestamp"`
	Timestampms       int64    `json:"timestampms"`
	IsLive            bool     `json:"is_live"`
	IsCancelled       bool     `json:"is_cancelled"`
	IsHidden          bool     `json:"is_hidden"`
	WasForced         bool     `json:"was_forced"`
	Options           []string `json:"options"`
	ExecutedAmount    string   `json:"executed_amount"`
	RemainingAmount   string   `json:"remaining_amount"`
	OriginalAmount    string   `json:"original_amount"`
}

// GatewayError is the structured error body for a rejected request.
type GatewayError struct {
	Result  string `json:"result"`
	Reason  Reason `json:"reason"`
	Message string `json:"message"`
}

func NewGatewayError(reason Reason, message string) *GatewayError {
	return &GatewayError{Result: "error", Reason: reason, Message: message}
}

// ErrInvalidSignature is the uniform authentication failure. It deliberately
// carries no detail: unknown key, wrong secret and tampered payload all look
// identical, and role rejections reuse it so an authenticated but
// unauthorized key learns nothing about role semantics.
func ErrInvalidSignature() *GatewayError {
	return NewGatewayError(ReasonInvalidSignature, "InvalidSignature")
}

func (e *GatewayError) Error() string {
	return fmt.Sprintf("%s: %s", e.Reason, e.Message)
}
