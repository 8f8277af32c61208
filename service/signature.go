package service

import (
	"crypto/hmac"
	"crypto/sha512"
	"crypto/subtle"
	"encoding/hex"

	"github.com/izzydoesit/gemini-api/models"
)

// SignatureVerifier recomputes the request HMAC and compares it to the
// supplied signature.
type SignatureVerifier struct{}

func NewSignatureVerifier() *SignatureVerifier {
	return &SignatureVerifier{}
}

// Verify checks signature against HMAC-SHA384(secret, encodedPayload)
// rendered as lowercase hex. The payload is used exactly as transmitted;
// the verifier never re-encodes it. Comparison is constant-time.
func (v *SignatureVerifier) Verify(cred models.Credential, encodedPayload []byte, signature string) bool {
	mac := hmac.New(sha512.New384, cred.Secret)
	mac.Write(encodedPayload)
	expected := hex.EncodeToString(mac.Sum(nil))
	return subtle.ConstantTimeCompare([]byte(expected), []byte(signature)) == 1
}

// Sign produces the lowercase hex signature for an encoded payload. Used by
// clients and tests; the gateway itself only verifies.
func Sign(secret, encodedPayload []byte) string {
	mac := hmac.New(sha512.New384, secret)
	mac.Write(encodedPayload)
	return hex.EncodeToString(mac.Sum(nil))
}
