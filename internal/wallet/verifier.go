package wallet

import (
	"crypto/ed25519"

	"github.com/mr-tron/base58"
)

// ChallengePrefix is the fixed prefix of the message wallets are asked to
// sign. Verification reconstructs the message byte-exactly, so this string
// must never change without versioning the protocol.
const ChallengePrefix = "Sign this message to authenticate with our application: "

// ChallengeMessage builds the canonical message for a nonce.
func ChallengeMessage(nonce string) string {
	return ChallengePrefix + nonce
}

// Provider identifies the wallet that produced a signature.
type Provider string

const (
	ProviderPhantom  Provider = "Phantom"
	ProviderSolflare Provider = "Solflare"
	ProviderUnknown  Provider = "Unknown"
)

// ParseProvider maps a client-supplied tag onto the closed provider set.
func ParseProvider(s string) Provider {
	switch Provider(s) {
	case ProviderPhantom:
		return ProviderPhantom
	case ProviderSolflare:
		return ProviderSolflare
	}
	return ProviderUnknown
}

// Strategy verifies a detached signature over raw message bytes.
type Strategy interface {
	Verify(pub ed25519.PublicKey, message, sig []byte) bool
}

type ed25519Strategy struct{}

func (ed25519Strategy) Verify(pub ed25519.PublicKey, message, sig []byte) bool {
	if len(sig) != ed25519.SignatureSize {
		return false
	}
	return ed25519.Verify(pub, message, sig)
}

// Verifier validates wallet signatures, dispatching on the provider tag.
// Every known provider currently signs the same way (ed25519 over the raw
// message), so the strategies all resolve to one implementation; the
// indirection exists so a new provider can diverge without string
// comparisons at call sites.
type Verifier struct {
	strategies map[Provider]Strategy
	fallback   Strategy
}

func NewVerifier() *Verifier {
	ed := ed25519Strategy{}
	return &Verifier{
		strategies: map[Provider]Strategy{
			ProviderPhantom:  ed,
			ProviderSolflare: ed,
		},
		fallback: ed,
	}
}

// Verify reports whether signature is a valid detached signature of message
// by the key behind walletAddress. The address and signature are base58
// encoded; any structural defect (bad encoding, wrong length) verifies
// false rather than erroring, so it surfaces as an authentication failure.
func (v *Verifier) Verify(walletAddress, signature, message string, provider Provider) bool {
	pub, err := DecodeAddress(walletAddress)
	if err != nil {
		return false
	}

	sig, err := base58.Decode(signature)
	if err != nil {
		return false
	}

	strategy, ok := v.strategies[provider]
	if !ok {
		strategy = v.fallback
	}
	return strategy.Verify(pub, []byte(message), sig)
}

// DecodeAddress decodes a base58 wallet address into an ed25519 public key.
func DecodeAddress(address string) (ed25519.PublicKey, error) {
	decoded, err := base58.Decode(address)
	if err != nil {
		return nil, err
	}
	if len(decoded) != ed25519.PublicKeySize {
		return nil, ErrInvalidAddress
	}
	return ed25519.PublicKey(decoded), nil
}

// EncodeAddress encodes an ed25519 public key as a base58 wallet address.
func EncodeAddress(pub ed25519.PublicKey) string {
	return base58.Encode(pub)
}
