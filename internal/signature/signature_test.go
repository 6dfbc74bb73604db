package signature_test

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"quickshow/internal/entities"
	"quickshow/internal/signature"
)

func TestVerifier_Verify(t *testing.T) {
	secret := "whsec_test"
	payload := []byte(`{"id":"evt_1","type":"checkout.session.completed"}`)
	now := time.Now()

	verifier := signature.NewVerifier(secret, 5*time.Minute)

	t.Run("valid signature", func(t *testing.T) {
		header := signature.SignHeader(secret, now, payload)

		err := verifier.Verify(payload, header, now)
		require.NoError(t, err)
	})

	t.Run("tampered payload", func(t *testing.T) {
		header := signature.SignHeader(secret, now, payload)

		err := verifier.Verify([]byte(`{"id":"evt_2"}`), header, now)
		assert.ErrorIs(t, err, entities.ErrSignatureInvalid)
	})

	t.Run("wrong secret", func(t *testing.T) {
		header := signature.SignHeader("whsec_other", now, payload)

		err := verifier.Verify(payload, header, now)
		assert.ErrorIs(t, err, entities.ErrSignatureInvalid)
	})

	t.Run("stale timestamp", func(t *testing.T) {
		signedAt := now.Add(-10 * time.Minute)
		header := signature.SignHeader(secret, signedAt, payload)

		err := verifier.Verify(payload, header, now)
		assert.ErrorIs(t, err, entities.ErrSignatureInvalid)
	})

	t.Run("future timestamp outside tolerance", func(t *testing.T) {
		signedAt := now.Add(10 * time.Minute)
		header := signature.SignHeader(secret, signedAt, payload)

		err := verifier.Verify(payload, header, now)
		assert.ErrorIs(t, err, entities.ErrSignatureInvalid)
	})

	t.Run("missing header", func(t *testing.T) {
		err := verifier.Verify(payload, "", now)
		assert.ErrorIs(t, err, entities.ErrSignatureInvalid)
	})

	t.Run("malformed header", func(t *testing.T) {
		for _, header := range []string{
			"t=notanumber,v1=deadbeef",
			"v1=deadbeef",
			"t=123",
			"garbage",
		} {
			err := verifier.Verify(payload, header, now)
			assert.True(t, errors.Is(err, entities.ErrSignatureInvalid), "header %q", header)
		}
	})

	t.Run("second v1 signature matches", func(t *testing.T) {
		valid := signature.SignHeader(secret, now, payload)
		header := valid + ",v1=0000"

		err := verifier.Verify(payload, header, now)
		require.NoError(t, err)
	})
}
