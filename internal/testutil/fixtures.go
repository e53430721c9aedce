package testutil

import (
	"bytes"
	"crypto/ed25519"
	"crypto/rand"
	"encoding/json"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/alec/wallet-auth-backend/internal/domain"
	"github.com/alec/wallet-auth-backend/internal/wallet"
	"github.com/google/uuid"
	"github.com/mr-tron/base58"
	"gorm.io/gorm"
)

// Wallet is a test wallet with a real ed25519 keypair, able to sign the
// challenge messages the backend issues.
type Wallet struct {
	Address string
	priv    ed25519.PrivateKey
}

// NewWallet generates a fresh test wallet
func NewWallet(t *testing.T) *Wallet {
	t.Helper()

	pub, priv, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		t.Fatalf("failed to generate keypair: %v", err)
	}

	return &Wallet{
		Address: wallet.EncodeAddress(pub),
		priv:    priv,
	}
}

// SignChallenge signs the canonical challenge message for a nonce and
// returns the base58-encoded signature.
func (w *Wallet) SignChallenge(nonce string) string {
	message := wallet.ChallengeMessage(nonce)
	return base58.Encode(ed25519.Sign(w.priv, []byte(message)))
}

// Sign signs arbitrary message bytes and returns the base58 signature.
func (w *Wallet) Sign(message string) string {
	return base58.Encode(ed25519.Sign(w.priv, []byte(message)))
}

// UserBuilder creates test users with a builder pattern
type UserBuilder struct {
	walletAddress string
	provider      string
	nonce         string
	role          domain.Role
}

// NewUserBuilder creates a new UserBuilder with default values
func NewUserBuilder() *UserBuilder {
	return &UserBuilder{
		walletAddress: fmt.Sprintf("testwallet_%s", uuid.New().String()[:8]),
		provider:      "Unknown",
		nonce:         "123456",
		role:          domain.RoleUser,
	}
}

// WithWallet sets the wallet address
func (b *UserBuilder) WithWallet(address string) *UserBuilder {
	b.walletAddress = address
	return b
}

// WithProvider sets the wallet provider tag
func (b *UserBuilder) WithProvider(provider string) *UserBuilder {
	b.provider = provider
	return b
}

// WithNonce sets the stored nonce
func (b *UserBuilder) WithNonce(nonce string) *UserBuilder {
	b.nonce = nonce
	return b
}

// WithRole sets the user role
func (b *UserBuilder) WithRole(role domain.Role) *UserBuilder {
	b.role = role
	return b
}

// Build creates the user in the database
func (b *UserBuilder) Build(t *testing.T, db *gorm.DB) *domain.User {
	t.Helper()

	user := &domain.User{
		ID:             uuid.New(),
		WalletAddress:  b.walletAddress,
		WalletProvider: b.provider,
		Nonce:          b.nonce,
		Role:           b.role,
		IsActive:       true,
		LastLogin:      time.Now(),
		CreatedAt:      time.Now(),
		UpdatedAt:      time.Now(),
	}

	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create user: %v", err)
	}

	return user
}

// AuthResponse matches the API auth response
type AuthResponse struct {
	Message string `json:"message"`
	User    struct {
		ID            string `json:"id"`
		WalletAddress string `json:"walletAddress"`
		Role          string `json:"role"`
	} `json:"user"`
	Token string `json:"token"`
}

// NonceResponse matches the API nonce response
type NonceResponse struct {
	Message       string `json:"message"`
	Nonce         string `json:"nonce"`
	WalletAddress string `json:"walletAddress"`
}

// Authenticate runs the full nonce/verify flow for a wallet against the
// test server and returns the auth response with the session token.
func (w *Wallet) Authenticate(t *testing.T, ts *TestServer) *AuthResponse {
	t.Helper()

	nonceResp := PostJSON(t, ts.APIURL("/nonce"), map[string]string{
		"walletAddress": w.Address,
	})
	defer nonceResp.Body.Close()

	if nonceResp.StatusCode != http.StatusOK {
		t.Fatalf("unexpected nonce status code: %d", nonceResp.StatusCode)
	}

	var nonce NonceResponse
	if err := json.NewDecoder(nonceResp.Body).Decode(&nonce); err != nil {
		t.Fatalf("failed to decode nonce response: %v", err)
	}

	verifyResp := PostJSON(t, ts.APIURL("/verify"), map[string]string{
		"walletAddress": w.Address,
		"signature":     w.SignChallenge(nonce.Nonce),
		"nonce":         nonce.Nonce,
	})
	defer verifyResp.Body.Close()

	if verifyResp.StatusCode != http.StatusOK {
		t.Fatalf("unexpected verify status code: %d", verifyResp.StatusCode)
	}

	var auth AuthResponse
	if err := json.NewDecoder(verifyResp.Body).Decode(&auth); err != nil {
		t.Fatalf("failed to decode auth response: %v", err)
	}

	return &auth
}

// PostJSON posts a JSON body to url
func PostJSON(t *testing.T, url string, body interface{}) *http.Response {
	t.Helper()

	encoded, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("failed to marshal request body: %v", err)
	}

	resp, err := http.Post(url, "application/json", bytes.NewBuffer(encoded))
	if err != nil {
		t.Fatalf("failed to post to %s: %v", url, err)
	}

	return resp
}

// DoRequest performs an arbitrary HTTP request with an optional bearer token
func DoRequest(t *testing.T, method, url, token string, body interface{}) *http.Response {
	t.Helper()

	var buf *bytes.Buffer
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("failed to marshal request body: %v", err)
		}
		buf = bytes.NewBuffer(encoded)
	} else {
		buf = bytes.NewBuffer(nil)
	}

	req, err := http.NewRequest(method, url, buf)
	if err != nil {
		t.Fatalf("failed to build request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}

	return resp
}
