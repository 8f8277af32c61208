package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/izzydoesit/gemini-api/models"
	"github.com/izzydoesit/gemini-api/service"
)

// Headers carrying the signed request. The payload travels base64-encoded in
// its own header, never in the request body.
const (
	HeaderAPIKey    = "X-GEMINI-APIKEY"
	HeaderPayload   = "X-GEMINI-PAYLOAD"
	HeaderSignature = "X-GEMINI-SIGNATURE"
)

type OrderHandler struct {
	Gateway *service.Gateway
}

func NewOrderHandler(gw *service.Gateway) *OrderHandler {
	return &OrderHandler{Gateway: gw}
}

// POST /v1/order/new
func (h *OrderHandler) NewOrder(c *gin.Context) {
	// A body means the caller put the payload in the wrong channel. This is
	// a transport violation caught before any cryptographic check.
	if c.Request.ContentLength != 0 {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "order parameters must be supplied via the " + HeaderPayload + " header",
		})
		return
	}

	payload := c.GetHeader(HeaderPayload)
	if payload == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing " + HeaderPayload + " header"})
		return
	}

	req := &models.SignedRequest{
		APIKey:         c.GetHeader(HeaderAPIKey),
		EncodedPayload: []byte(payload),
		Signature:      c.GetHeader(HeaderSignature),
	}

	resp, err := h.Gateway.SubmitOrder(c.Request.Context(), req)
	if err != nil {
		var gerr *models.GatewayError
		if errors.As(err, &gerr) {
			c.JSON(http.StatusBadRequest, gerr)
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	c.JSON(http.StatusOK, resp)
}

// GET /health
func (h *OrderHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
