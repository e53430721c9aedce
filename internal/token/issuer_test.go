package token_test

import (
	"testing"
	"time"

	"github.com/alec/wallet-auth-backend/internal/token"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-jwt-secret-key-for-testing-only"

func TestIssuer_MintAndValidate(t *testing.T) {
	issuer := token.NewIssuer(testSecret, time.Hour)
	userID := uuid.New()

	raw, err := issuer.Mint(userID)
	require.NoError(t, err)
	require.NotEmpty(t, raw)

	got, err := issuer.Validate(raw)
	require.NoError(t, err)
	assert.Equal(t, userID, got)
}

func TestIssuer_Expired(t *testing.T) {
	issuer := token.NewIssuer(testSecret, -time.Minute)

	raw, err := issuer.Mint(uuid.New())
	require.NoError(t, err)

	_, err = issuer.Validate(raw)
	assert.ErrorIs(t, err, token.ErrExpired)
}

func TestIssuer_WrongSecret(t *testing.T) {
	issuer := token.NewIssuer(testSecret, time.Hour)
	other := token.NewIssuer("a-completely-different-secret", time.Hour)

	raw, err := other.Mint(uuid.New())
	require.NoError(t, err)

	_, err = issuer.Validate(raw)
	assert.ErrorIs(t, err, token.ErrSignatureInvalid)
}

func TestIssuer_Tampered(t *testing.T) {
	issuer := token.NewIssuer(testSecret, time.Hour)

	raw, err := issuer.Mint(uuid.New())
	require.NoError(t, err)

	// Flip a byte in the payload segment.
	tampered := []byte(raw)
	tampered[len(tampered)/2] ^= 0x01

	_, err = issuer.Validate(string(tampered))
	assert.Error(t, err)
}

func TestIssuer_Malformed(t *testing.T) {
	issuer := token.NewIssuer(testSecret, time.Hour)

	tests := []struct {
		name string
		raw  string
	}{
		{name: "empty string", raw: ""},
		{name: "not a jwt", raw: "notavalidjwt"},
		{name: "garbage segments", raw: "aaa.bbb.ccc"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := issuer.Validate(tt.raw)
			assert.ErrorIs(t, err, token.ErrMalformed)
		})
	}
}
