package paystack

import (
	"crypto/hmac"
	"crypto/sha512"
	"encoding/hex"
)

// SignatureHeader carries the webhook HMAC.
const SignatureHeader = "x-paystack-signature"

// ValidSignature recomputes HMAC-SHA512 over the exact raw body with
// the shared secret and compares in constant time.
func (c *Client) ValidSignature(body []byte, signature string) bool {
	return ValidSignature(c.secret, body, signature)
}

func ValidSignature(secret string, body []byte, signature string) bool {
	mac := hmac.New(sha512.New, []byte(secret))
	mac.Write(body)
	want := hex.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(want), []byte(signature))
}

// WebhookEvent is the inbound server-to-server payload.
type WebhookEvent struct {
	Event string `json:"event"` // e.g. "charge.success"
	Data  struct {
		Reference string `json:"reference"`
		Status    string `json:"status"`
		Amount    int64  `json:"amount"`
	} `json:"data"`
}
