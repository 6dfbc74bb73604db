// Package signature authenticates webhook payloads. The processor signs
// the raw body with HMAC-SHA256 over "<timestamp>.<body>" and sends the
// result in a "t=<unix>,v1=<hex>" header.
package signature

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"
	"time"

	"quickshow/internal/entities"
)

type Verifier struct {
	secret    []byte
	tolerance time.Duration
}

func NewVerifier(secret string, tolerance time.Duration) *Verifier {
	return &Verifier{
		secret:    []byte(secret),
		tolerance: tolerance,
	}
}

// Verify checks the signature header against the raw, unparsed payload.
// Any failure maps to entities.ErrSignatureInvalid so callers can reject
// without distinguishing why.
func (v *Verifier) Verify(payload []byte, header string, now time.Time) error {
	timestamp, signatures, err := parseHeader(header)
	if err != nil {
		return fmt.Errorf("%w: %s", entities.ErrSignatureInvalid, err)
	}

	drift := now.Sub(time.Unix(timestamp, 0))
	if drift < 0 {
		drift = -drift
	}
	if v.tolerance > 0 && drift > v.tolerance {
		return fmt.Errorf("%w: timestamp outside tolerance", entities.ErrSignatureInvalid)
	}

	expected := ComputeSignature(v.secret, timestamp, payload)
	for _, sig := range signatures {
		if hmac.Equal([]byte(sig), []byte(expected)) {
			return nil
		}
	}

	return fmt.Errorf("%w: no matching v1 signature", entities.ErrSignatureInvalid)
}

func ComputeSignature(secret []byte, timestamp int64, payload []byte) string {
	mac := hmac.New(sha256.New, secret)
	fmt.Fprintf(mac, "%d.", timestamp)
	mac.Write(payload)
	return hex.EncodeToString(mac.Sum(nil))
}

// SignHeader builds a header the Verifier accepts. Used by tests and by
// the payments sandbox tooling.
func SignHeader(secret string, t time.Time, payload []byte) string {
	return fmt.Sprintf("t=%d,v1=%s", t.Unix(), ComputeSignature([]byte(secret), t.Unix(), payload))
}

func parseHeader(header string) (timestamp int64, signatures []string, err error) {
	if header == "" {
		return 0, nil, fmt.Errorf("signature header is empty")
	}

	timestamp = -1
	for _, part := range strings.Split(header, ",") {
		key, value, found := strings.Cut(strings.TrimSpace(part), "=")
		if !found {
			continue
		}
		switch key {
		case "t":
			timestamp, err = strconv.ParseInt(value, 10, 64)
			if err != nil {
				return 0, nil, fmt.Errorf("invalid timestamp %q", value)
			}
		case "v1":
			signatures = append(signatures, value)
		}
	}

	if timestamp < 0 {
		return 0, nil, fmt.Errorf("signature header has no timestamp")
	}
	if len(signatures) == 0 {
		return 0, nil, fmt.Errorf("signature header has no v1 signature")
	}

	return timestamp, signatures, nil
}
