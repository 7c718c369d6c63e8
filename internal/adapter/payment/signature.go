package payment

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	domainErrors "github.com/lafrite/friterie/internal/domain/errors"
	"github.com/lafrite/friterie/internal/domain/model"
)

// DefaultSignatureTolerance bounds how old a signed webhook timestamp may be.
const DefaultSignatureTolerance = 5 * time.Minute

// SignatureVerifier checks provider webhook signatures over raw bodies.
// The header carries `t=<unix>,v1=<hex>` where v1 is HMAC-SHA256 of
// "<unix>.<body>" under the shared signing secret.
type SignatureVerifier struct {
	secret    []byte
	tolerance time.Duration
	now       func() time.Time
}

// NewSignatureVerifier builds a verifier for the given signing secret.
func NewSignatureVerifier(secret string, tolerance time.Duration) *SignatureVerifier {
	if tolerance <= 0 {
		tolerance = DefaultSignatureTolerance
	}
	return &SignatureVerifier{secret: []byte(secret), tolerance: tolerance, now: time.Now}
}

// Verify validates header against body. Any failure is ErrInvalidSignature;
// callers must not mutate state on error.
func (v *SignatureVerifier) Verify(header string, body []byte) error {
	var (
		timestamp int64
		signature []byte
		haveTS    bool
	)

	for _, part := range strings.Split(header, ",") {
		key, value, found := strings.Cut(strings.TrimSpace(part), "=")
		if !found {
			continue
		}
		switch key {
		case "t":
			ts, err := strconv.ParseInt(value, 10, 64)
			if err != nil {
				return domainErrors.ErrInvalidSignature
			}
			timestamp = ts
			haveTS = true
		case "v1":
			sig, err := hex.DecodeString(value)
			if err != nil {
				return domainErrors.ErrInvalidSignature
			}
			signature = sig
		}
	}

	if !haveTS || len(signature) == 0 {
		return domainErrors.ErrInvalidSignature
	}

	age := v.now().Sub(time.Unix(timestamp, 0))
	if age > v.tolerance || age < -v.tolerance {
		return domainErrors.ErrInvalidSignature
	}

	mac := hmac.New(sha256.New, v.secret)
	fmt.Fprintf(mac, "%d.", timestamp)
	mac.Write(body)
	if !hmac.Equal(mac.Sum(nil), signature) {
		return domainErrors.ErrInvalidSignature
	}

	return nil
}

// Sign produces a valid signature header for body. Used by tests and the
// local provider simulator.
func (v *SignatureVerifier) Sign(body []byte, at time.Time) string {
	mac := hmac.New(sha256.New, v.secret)
	fmt.Fprintf(mac, "%d.", at.Unix())
	mac.Write(body)
	return fmt.Sprintf("t=%d,v1=%s", at.Unix(), hex.EncodeToString(mac.Sum(nil)))
}

// eventPayload mirrors the provider's webhook JSON.
type eventPayload struct {
	ID   string `json:"id"`
	Type string `json:"type"`
	Data struct {
		Object struct {
			ID string `json:"id"`
		} `json:"object"`
	} `json:"data"`
}

// ParseEvent decodes a verified webhook body into a PaymentEvent.
func ParseEvent(body []byte) (*model.PaymentEvent, error) {
	var payload eventPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("decode webhook event: %w", err)
	}
	if payload.ID == "" || payload.Type == "" {
		return nil, fmt.Errorf("webhook event missing id or type")
	}
	return &model.PaymentEvent{
		ID:        payload.ID,
		Type:      payload.Type,
		SessionID: payload.Data.Object.ID,
	}, nil
}
