package models

import (
	"fmt"
	"strconv"
	"strings"
)

// SignedRequest carries the authentication material of one inbound call.
// EncodedPayload is the base64 text exactly as transmitted in the payload
// header; the signature is computed over these bytes, never a re-encoding.
type SignedRequest struct {
	APIKey         string
	EncodedPayload []byte
	Signature      string
}

// Nonce is a non-negative integer that accepts both JSON numbers and numeric
// strings, since client libraries send either form.
type Nonce int64

func (n *Nonce) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return fmt.Errorf("nonce must be an integer: %w", err)
	}
	if v < 0 {
		return fmt.Errorf("nonce must not be negative")
	}
	*n = Nonce(v)
	return nil
}

func (n Nonce) Int64() int64 { return int64(n) }

// OrderPayload is the decoded order field map. Validator tags cover required
// presence and the side enum; business rules (symbol, minimums, options) are
// applied by the service layer in a fixed precedence order.
type OrderPayload struct {
	Request       string   `json:"request" validate:"required"`
	Nonce         *Nonce   `json:"nonce" validate:"required"`
	ClientOrderID string   `json:"client_order_id,omitempty"`
	Symbol        string   `json:"symbol" validate:"required"`
	Amount        string   `json:"amount" validate:"required,decimal"`
	Price         string   `json:"price" validate:"required,posdecimal"`
	Side          string   `json:"side" validate:"required,oneof=buy sell"`
	Type          string   `json:"type" validate:"required"`
	Options       []string `json:"options,omitempty"`
}
