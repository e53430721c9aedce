// Package wallet implements the nonce challenge and signature verification
// half of the wallet authentication protocol.
package wallet

import (
	"crypto/rand"
	"math/big"
)

// nonceRange bounds the generated nonce to a six-digit decimal space.
var nonceRange = big.NewInt(1_000_000)

// NewNonce returns a fresh random decimal string uniform over [0, 1000000).
func NewNonce() (string, error) {
	n, err := rand.Int(rand.Reader, nonceRange)
	if err != nil {
		return "", err
	}
	return n.String(), nil
}
