package service

import (
	"context"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/izzydoesit/gemini-api/metrics"
	"github.com/izzydoesit/gemini-api/models"
)

// CredentialStore resolves an API key to its issued credential. Read-only at
// request time; implementations are populated at process start.
type CredentialStore interface {
	Lookup(apiKey string) (models.Credential, bool)
}

// Gateway runs the intake pipeline for one request: signature, nonce,
// payload validation, authorization, response shaping. Terminal on the first
// failure; the nonce tracker is the only component whose state it mutates.
type Gateway struct {
	credentials CredentialStore
	verifier    *SignatureVerifier
	nonces      *NonceTracker
	decoder     *PayloadDecoder
	policy      *Policy
	dispatcher  *EngineDispatcher
	logger      *zap.Logger
	now         func() time.Time
}

func NewGateway(
	credentials CredentialStore,
	decoder *PayloadDecoder,
	dispatcher *EngineDispatcher,
	logger *zap.Logger,
) *Gateway {
	return &Gateway{
		credentials: credentials,
		verifier:    NewSignatureVerifier(),
		nonces:      NewNonceTracker(),
		decoder:     decoder,
		policy:      NewPolicy(),
		dispatcher:  dispatcher,
		logger:      logger,
		now:         time.Now,
	}
}

// SubmitOrder admits or rejects one signed request. Errors are either
// *models.GatewayError (structured reason) or wrap ErrBadRequest (generic
// 400). Payload and authorization failures occurring after a successful
// nonce check leave the nonce advanced; a caller must retry with a fresh one.
func (g *Gateway) SubmitOrder(ctx context.Context, req *models.SignedRequest) (*models.OrderResponse, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// Transport gate: a payload that is not valid base64 is malformed before
	// any cryptographic check runs, even when its signature would also fail.
	raw, err := g.decoder.DecodeBase64(req.EncodedPayload)
	if err != nil {
		metrics.OrdersRejected.WithLabelValues("BadRequest").Inc()
		return nil, err
	}

	cred, found := g.credentials.Lookup(req.APIKey)
	if !found {
		// Indistinguishable from a wrong secret, to prevent key enumeration.
		return nil, g.reject(models.ErrInvalidSignature())
	}
	if !g.verifier.Verify(cred, req.EncodedPayload, req.Signature) {
		return nil, g.reject(models.ErrInvalidSignature())
	}

	payload, err := g.decoder.Decode(raw)
	if err != nil {
		metrics.OrdersRejected.WithLabelValues("BadRequest").Inc()
		return nil, err
	}

	if gerr := g.nonces.CheckAndAdvance(req.APIKey, payload.Nonce.Int64()); gerr != nil {
		return nil, g.reject(gerr)
	}

	if gerr := g.decoder.Validate(payload); gerr != nil {
		return nil, g.reject(gerr)
	}

	if gerr := g.policy.Authorize(cred.Role, OperationNewOrder); gerr != nil {
		return nil, g.reject(gerr)
	}

	options := payload.Options
	if options == nil {
		options = []string{}
	}

	now := g.now()
	orderID := g.dispatcher.NextOrderID()

	g.dispatcher.Dispatch(&models.AcceptedOrder{
		OrderID:       orderID,
		APIKey:        req.APIKey,
		ClientOrderID: payload.ClientOrderID,
		Symbol:        payload.Symbol,
		Side:          payload.Side,
		Type:          payload.Type,
		Price:         payload.Price,
		Amount:        payload.Amount,
		Options:       options,
		AcceptedAt:    now,
	})
	metrics.OrdersAccepted.Inc()

	return &models.OrderResponse{
		OrderID:           strconv.FormatInt(orderID, 10),
		ClientOrderID:     payload.ClientOrderID,
		Symbol:            payload.Symbol,
		Price:             payload.Price,
		AvgExecutionPrice: "0",
		Side:              payload.Side,
		Type:              payload.Type,
		Timestamp:         strconv.FormatInt(now.Unix(), 10),
		Timestampms:       now.UnixMilli(),
		IsLive:            true,
		IsCancelled:       false,
		IsHidden:          false,
		WasForced:         false,
		Options:           options,
		ExecutedAmount:    "0",
		RemainingAmount:   payload.Amount,
		OriginalAmount:    payload.Amount,
	}, nil
}

func (g *Gateway) reject(gerr *models.GatewayError) *models.GatewayError {
	metrics.OrdersRejected.WithLabelValues(string(gerr.Reason)).Inc()
	g.logger.Info("order rejected", zap.String("reason", string(gerr.Reason)))
	return gerr
}
