package service

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/izzydoesit/gemini-api/config"
	"github.com/izzydoesit/gemini-api/models"
	"github.com/izzydoesit/gemini-api/utils"
)

// ErrBadRequest marks malformed payloads: encoding or structural decode
// failures, missing required fields, a request path mismatch. These carry no
// structured reason code and surface as a plain 400.
var ErrBadRequest = errors.New("bad request")

const maxClientOrderIDLen = 100

var clientOrderIDPattern = regexp.MustCompile(`^[A-Za-z0-9:_.#-]+$`)

// PayloadDecoder decodes the base64 payload and validates it against the
// instrument table.
type PayloadDecoder struct {
	validate   *validator.Validate
	endpoint   string
	minimums   map[string]decimal.Decimal
	ioiMinimum decimal.Decimal
}

func NewPayloadDecoder(cfg *config.Config, endpoint string) (*PayloadDecoder, error) {
	minimums := make(map[string]decimal.Decimal, len(cfg.Instruments))
	for _, inst := range cfg.Instruments {
		min, err := decimal.NewFromString(inst.MinOrderSize)
		if err != nil {
			return nil, fmt.Errorf("invalid min_order_size for %s: %w", inst.Symbol, err)
		}
		minimums[inst.Symbol] = min
	}

	ioiMin, err := decimal.NewFromString(cfg.IOIMinimum)
	if err != nil {
		return nil, fmt.Errorf("invalid ioi_minimum: %w", err)
	}

	return &PayloadDecoder{
		validate:   utils.GetValidator(),
		endpoint:   endpoint,
		minimums:   minimums,
		ioiMinimum: ioiMin,
	}, nil
}

// DecodeBase64 checks that the transmitted payload is well-formed base64 and
// returns the decoded bytes. This is a transport gate: it runs before any
// credential or signature work, so a plaintext payload header is rejected as
// a malformed request, never as a signature failure.
func (d *PayloadDecoder) DecodeBase64(encoded []byte) ([]byte, error) {
	raw := make([]byte, base64.StdEncoding.DecodedLen(len(encoded)))
	n, err := base64.StdEncoding.Decode(raw, encoded)
	if err != nil {
		return nil, fmt.Errorf("%w: payload is not valid base64", ErrBadRequest)
	}
	return raw[:n], nil
}

// Decode performs the structural half of payload handling on the decoded
// bytes: JSON decode, required-field and shape checks, request path match.
// Every failure here is ErrBadRequest; no nonce has been consumed yet, so
// none of these advance nonce state.
func (d *PayloadDecoder) Decode(raw []byte) (*models.OrderPayload, error) {
	var payload models.OrderPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil, fmt.Errorf("%w: payload is not a valid order", ErrBadRequest)
	}

	if err := d.validate.Struct(&payload); err != nil {
		return nil, fmt.Errorf("%w: missing or invalid order fields", ErrBadRequest)
	}

	if payload.Request != d.endpoint {
		return nil, fmt.Errorf("%w: request path mismatch", ErrBadRequest)
	}

	return &payload, nil
}

// Validate applies the business rules in their fixed precedence order; the
// first failing check wins and nothing is aggregated.
func (d *PayloadDecoder) Validate(payload *models.OrderPayload) *models.GatewayError {
	minimum, ok := d.minimums[payload.Symbol]
	if !ok {
		return models.NewGatewayError(models.ReasonInvalidSymbol, "received bad symbol")
	}

	// Length is the primary trigger; a bad charset reports the same way.
	if payload.ClientOrderID != "" {
		if len(payload.ClientOrderID) > maxClientOrderIDLen || !clientOrderIDPattern.MatchString(payload.ClientOrderID) {
			return models.NewGatewayError(models.ReasonClientOrderIdTooLong,
				"client_order_id must be under 100 characters")
		}
	}

	if payload.Type != models.OrderTypeExchangeLimit {
		return models.NewGatewayError(models.ReasonInvalidOrderType, "Invalid order type for symbol")
	}

	amount, err := decimal.NewFromString(payload.Amount)
	if err != nil || amount.LessThan(minimum) {
		return models.NewGatewayError(models.ReasonInvalidQuantity, "Invalid quantity for symbol")
	}

	if len(payload.Options) > 1 {
		return models.NewGatewayError(models.ReasonConflictingOptions,
			"A single order supports at most one of these options")
	}
	if len(payload.Options) == 1 {
		opt := payload.Options[0]
		if !models.SupportedOption(opt) {
			return models.NewGatewayError(models.ReasonUnsupportedOption,
				fmt.Sprintf("Option \"%s\" is not supported", opt))
		}
		if opt == models.OptionIndicationOfInterest && amount.LessThan(d.ioiMinimum) {
			return models.NewGatewayError(models.ReasonInvalidQuantity, "Invalid quantity for symbol")
		}
	}

	return nil
}
