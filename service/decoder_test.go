package service

import (
	"encoding/base64"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/izzydoesit/gemini-api/config"
	"github.com/izzydoesit/gemini-api/models"
)

func newTestDecoder(t *testing.T) *PayloadDecoder {
	t.Helper()
	decoder, err := NewPayloadDecoder(config.Default(), "/v1/order/new")
	require.NoError(t, err)
	return decoder
}

func validFields() map[string]any {
	return map[string]any{
		"request":         "/v1/order/new",
		"nonce":           1,
		"client_order_id": "20150102-4738721",
		"symbol":          "btcusd",
		"amount":          "34.12",
		"price":           "622.13",
		"side":            "buy",
		"type":            "exchange limit",
	}
}

func encodeFields(t *testing.T, fields map[string]any) []byte {
	t.Helper()
	raw, err := json.Marshal(fields)
	require.NoError(t, err)
	return []byte(base64.StdEncoding.EncodeToString(raw))
}

func decodePayload(d *PayloadDecoder, encoded []byte) (*models.OrderPayload, error) {
	raw, err := d.DecodeBase64(encoded)
	if err != nil {
		return nil, err
	}
	return d.Decode(raw)
}

func TestPayloadDecoderDecodeBase64(t *testing.T) {
	decoder := newTestDecoder(t)

	t.Run("well-formed base64 passes the gate", func(t *testing.T) {
		raw, err := decoder.DecodeBase64(encodeFields(t, validFields()))
		require.NoError(t, err)
		assert.Contains(t, string(raw), `"symbol"`)
	})

	t.Run("plain text JSON rejected", func(t *testing.T) {
		raw, err := json.Marshal(validFields())
		require.NoError(t, err)
		_, err = decoder.DecodeBase64(raw)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrBadRequest)
	})

	t.Run("truncated base64 rejected", func(t *testing.T) {
		encoded := encodeFields(t, validFields())
		_, err := decoder.DecodeBase64(encoded[:len(encoded)-1])
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrBadRequest)
	})
}

func TestPayloadDecoderDecode(t *testing.T) {
	decoder := newTestDecoder(t)

	t.Run("valid payload decodes", func(t *testing.T) {
		payload, err := decodePayload(decoder, encodeFields(t, validFields()))
		require.NoError(t, err)
		assert.Equal(t, "btcusd", payload.Symbol)
		assert.Equal(t, int64(1), payload.Nonce.Int64())
		assert.Equal(t, "20150102-4738721", payload.ClientOrderID)
	})

	t.Run("nonce as numeric string decodes", func(t *testing.T) {
		fields := validFields()
		fields["nonce"] = "123456789"
		payload, err := decodePayload(decoder, encodeFields(t, fields))
		require.NoError(t, err)
		assert.Equal(t, int64(123456789), payload.Nonce.Int64())
	})

	tests := []struct {
		name    string
		encoded func(t *testing.T) []byte
	}{
		{
			name: "base64 of non-JSON",
			encoded: func(t *testing.T) []byte {
				return []byte(base64.StdEncoding.EncodeToString([]byte("not an order")))
			},
		},
		{
			name: "missing symbol",
			encoded: func(t *testing.T) []byte {
				fields := validFields()
				delete(fields, "symbol")
				return encodeFields(t, fields)
			},
		},
		{
			name: "missing nonce",
			encoded: func(t *testing.T) []byte {
				fields := validFields()
				delete(fields, "nonce")
				return encodeFields(t, fields)
			},
		},
		{
			name: "missing amount",
			encoded: func(t *testing.T) []byte {
				fields := validFields()
				delete(fields, "amount")
				return encodeFields(t, fields)
			},
		},
		{
			name: "missing price",
			encoded: func(t *testing.T) []byte {
				fields := validFields()
				delete(fields, "price")
				return encodeFields(t, fields)
			},
		},
		{
			name: "missing side",
			encoded: func(t *testing.T) []byte {
				fields := validFields()
				delete(fields, "side")
				return encodeFields(t, fields)
			},
		},
		{
			name: "missing type",
			encoded: func(t *testing.T) []byte {
				fields := validFields()
				delete(fields, "type")
				return encodeFields(t, fields)
			},
		},
		{
			name: "missing request path",
			encoded: func(t *testing.T) []byte {
				fields := validFields()
				delete(fields, "request")
				return encodeFields(t, fields)
			},
		},
		{
			name: "request path mismatch",
			encoded: func(t *testing.T) []byte {
				fields := validFields()
				fields["request"] = "/v1/order/cancel"
				return encodeFields(t, fields)
			},
		},
		{
			name: "negative nonce",
			encoded: func(t *testing.T) []byte {
				fields := validFields()
				fields["nonce"] = -1
				return encodeFields(t, fields)
			},
		},
		{
			name: "unknown side",
			encoded: func(t *testing.T) []byte {
				fields := validFields()
				fields["side"] = "hold"
				return encodeFields(t, fields)
			},
		},
		{
			name: "price not a decimal",
			encoded: func(t *testing.T) []byte {
				fields := validFields()
				fields["price"] = "six hundred"
				return encodeFields(t, fields)
			},
		},
		{
			name: "price not positive",
			encoded: func(t *testing.T) []byte {
				fields := validFields()
				fields["price"] = "0"
				return encodeFields(t, fields)
			},
		},
		{
			name: "amount not a decimal",
			encoded: func(t *testing.T) []byte {
				fields := validFields()
				fields["amount"] = "lots"
				return encodeFields(t, fields)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := decodePayload(decoder, tt.encoded(t))
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrBadRequest)
		})
	}
}

func TestPayloadDecoderValidate(t *testing.T) {
	decoder := newTestDecoder(t)

	decode := func(t *testing.T, fields map[string]any) *models.OrderPayload {
		t.Helper()
		payload, err := decodePayload(decoder, encodeFields(t, fields))
		require.NoError(t, err)
		return payload
	}

	tests := []struct {
		name        string
		mutate      func(fields map[string]any)
		wantReason  models.Reason
		wantMessage string
	}{
		{
			name:   "valid order passes",
			mutate: func(fields map[string]any) {},
		},
		{
			name: "unsupported symbol",
			mutate: func(fields map[string]any) {
				fields["symbol"] = "neousd"
			},
			wantReason:  models.ReasonInvalidSymbol,
			wantMessage: "received bad symbol",
		},
		{
			name: "uppercase symbol is case-sensitive",
			mutate: func(fields map[string]any) {
				fields["symbol"] = "BTCUSD"
			},
			wantReason:  models.ReasonInvalidSymbol,
			wantMessage: "received bad symbol",
		},
		{
			name: "client_order_id of length 100 accepted",
			mutate: func(fields map[string]any) {
				fields["client_order_id"] = strings.Repeat("a", 100)
			},
		},
		{
			name: "client_order_id of length 101 rejected",
			mutate: func(fields map[string]any) {
				fields["client_order_id"] = strings.Repeat("a", 101)
			},
			wantReason:  models.ReasonClientOrderIdTooLong,
			wantMessage: "client_order_id must be under 100 characters",
		},
		{
			name: "client_order_id with bad charset rejected",
			mutate: func(fields map[string]any) {
				fields["client_order_id"] = "order$123"
			},
			wantReason:  models.ReasonClientOrderIdTooLong,
			wantMessage: "client_order_id must be under 100 characters",
		},
		{
			name: "full allowed charset accepted",
			mutate: func(fields map[string]any) {
				fields["client_order_id"] = "Az09:_.#-"
			},
		},
		{
			name: "unsupported order type",
			mutate: func(fields map[string]any) {
				fields["type"] = "market"
			},
			wantReason:  models.ReasonInvalidOrderType,
			wantMessage: "Invalid order type for symbol",
		},
		{
			name: "amount exactly at minimum accepted",
			mutate: func(fields map[string]any) {
				fields["amount"] = "0.00001"
			},
		},
		{
			name: "amount below minimum rejected",
			mutate: func(fields map[string]any) {
				fields["amount"] = "0.000009"
			},
			wantReason:  models.ReasonInvalidQuantity,
			wantMessage: "Invalid quantity for symbol",
		},
		{
			name: "ethusd minimum is higher than btcusd",
			mutate: func(fields map[string]any) {
				fields["symbol"] = "ethusd"
				fields["amount"] = "0.0001"
			},
			wantReason:  models.ReasonInvalidQuantity,
			wantMessage: "Invalid quantity for symbol",
		},
		{
			name: "negative amount rejected",
			mutate: func(fields map[string]any) {
				fields["amount"] = "-1"
			},
			wantReason:  models.ReasonInvalidQuantity,
			wantMessage: "Invalid quantity for symbol",
		},
		{
			name: "single recognized option accepted",
			mutate: func(fields map[string]any) {
				fields["options"] = []string{"maker-or-cancel"}
			},
		},
		{
			name: "empty options accepted",
			mutate: func(fields map[string]any) {
				fields["options"] = []string{}
			},
		},
		{
			name: "two options rejected",
			mutate: func(fields map[string]any) {
				fields["options"] = []string{"auction-only", "maker-or-cancel"}
			},
			wantReason:  models.ReasonConflictingOptions,
			wantMessage: "A single order supports at most one of these options",
		},
		{
			name: "unrecognized option rejected",
			mutate: func(fields map[string]any) {
				fields["options"] = []string{"fill-or-kill"}
			},
			wantReason:  models.ReasonUnsupportedOption,
			wantMessage: `Option "fill-or-kill" is not supported`,
		},
		{
			name: "indication-of-interest below its minimum rejected",
			mutate: func(fields map[string]any) {
				fields["options"] = []string{"indication-of-interest"}
				fields["amount"] = "5"
			},
			wantReason:  models.ReasonInvalidQuantity,
			wantMessage: "Invalid quantity for symbol",
		},
		{
			name: "indication-of-interest at its minimum accepted",
			mutate: func(fields map[string]any) {
				fields["options"] = []string{"indication-of-interest"}
				fields["amount"] = "10"
			},
		},
		{
			name: "bad symbol wins over bad type",
			mutate: func(fields map[string]any) {
				fields["symbol"] = "neousd"
				fields["type"] = "market"
			},
			wantReason:  models.ReasonInvalidSymbol,
			wantMessage: "received bad symbol",
		},
		{
			name: "bad type wins over bad quantity",
			mutate: func(fields map[string]any) {
				fields["type"] = "market"
				fields["amount"] = "0.000001"
			},
			wantReason:  models.ReasonInvalidOrderType,
			wantMessage: "Invalid order type for symbol",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fields := validFields()
			tt.mutate(fields)

			gerr := decoder.Validate(decode(t, fields))
			if tt.wantReason == "" {
				assert.Nil(t, gerr)
				return
			}
			require.NotNil(t, gerr)
			assert.Equal(t, "error", gerr.Result)
			assert.Equal(t, tt.wantReason, gerr.Reason)
			assert.Equal(t, tt.wantMessage, gerr.Message)
		})
	}
}
