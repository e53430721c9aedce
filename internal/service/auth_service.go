package service

import (
	"context"
	"errors"
	"time"

	"github.com/alec/wallet-auth-backend/internal/config"
	"github.com/alec/wallet-auth-backend/internal/domain"
	"github.com/alec/wallet-auth-backend/internal/repository"
	"github.com/alec/wallet-auth-backend/internal/token"
	"github.com/alec/wallet-auth-backend/internal/wallet"
	"github.com/google/uuid"
)

// AuthService orchestrates the two-step challenge/response protocol:
// a client requests a nonce for its wallet address, signs the canonical
// challenge message off-system, and submits the signature for a session
// token.
type AuthService struct {
	userRepo repository.UserRepository
	verifier *wallet.Verifier
	issuer   *token.Issuer
	cfg      *config.Config
}

func NewAuthService(userRepo repository.UserRepository, verifier *wallet.Verifier, issuer *token.Issuer, cfg *config.Config) *AuthService {
	return &AuthService{
		userRepo: userRepo,
		verifier: verifier,
		issuer:   issuer,
		cfg:      cfg,
	}
}

type NonceResult struct {
	WalletAddress string
	Nonce         string
}

type VerifyInput struct {
	WalletAddress  string
	Signature      string
	Nonce          string
	WalletProvider string
}

type AuthResult struct {
	User  *domain.User
	Token string
}

// Nonce finds or creates the user record for a wallet address and rotates
// its challenge nonce. Repeated calls invalidate any unconsumed nonce.
func (s *AuthService) Nonce(ctx context.Context, walletAddress, walletProvider string) (*NonceResult, error) {
	nonce, err := wallet.NewNonce()
	if err != nil {
		return nil, err
	}

	user, err := s.userRepo.GetByWallet(ctx, walletAddress)
	if err != nil {
		if !errors.Is(err, domain.ErrUserNotFound) {
			return nil, err
		}
		// First nonce request for an unseen wallet registers it implicitly.
		user = s.newUser(walletAddress, walletProvider)
		user.Nonce = nonce
		if err := s.userRepo.Create(ctx, user); err != nil {
			return nil, err
		}
		return &NonceResult{WalletAddress: walletAddress, Nonce: nonce}, nil
	}

	user.Nonce = nonce
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return &NonceResult{WalletAddress: walletAddress, Nonce: nonce}, nil
}

// Verify checks a signed challenge and mints a session token.
// Failure order matters: unknown wallet, then nonce mismatch, then
// signature rejection.
func (s *AuthService) Verify(ctx context.Context, input VerifyInput) (*AuthResult, error) {
	user, err := s.userRepo.GetByWallet(ctx, input.WalletAddress)
	if err != nil {
		return nil, err
	}

	// Exact match, no normalization.
	if input.Nonce != user.Nonce {
		return nil, domain.ErrInvalidNonce
	}

	message := wallet.ChallengeMessage(user.Nonce)
	provider := wallet.ParseProvider(input.WalletProvider)
	if !s.verifier.Verify(input.WalletAddress, input.Signature, message, provider) {
		return nil, domain.ErrInvalidSignature
	}

	if input.WalletProvider != "" && input.WalletProvider != user.WalletProvider {
		user.WalletProvider = input.WalletProvider
	}
	user.LastLogin = time.Now()
	if s.cfg.RotateNonceOnLogin {
		// Single-use challenges: a consumed nonce can never authenticate
		// a second time.
		nonce, err := wallet.NewNonce()
		if err != nil {
			return nil, err
		}
		user.Nonce = nonce
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	signed, err := s.issuer.Mint(user.ID)
	if err != nil {
		return nil, err
	}

	return &AuthResult{User: user, Token: signed}, nil
}

// Register explicitly creates a user record for a wallet and logs it in.
func (s *AuthService) Register(ctx context.Context, walletAddress, walletProvider string) (*AuthResult, error) {
	existing, err := s.userRepo.GetByWallet(ctx, walletAddress)
	if err != nil && !errors.Is(err, domain.ErrUserNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrWalletRegistered
	}

	user := s.newUser(walletAddress, walletProvider)
	nonce, err := wallet.NewNonce()
	if err != nil {
		return nil, err
	}
	user.Nonce = nonce

	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, domain.ErrDuplicateKey) {
			return nil, domain.ErrWalletRegistered
		}
		return nil, err
	}

	signed, err := s.issuer.Mint(user.ID)
	if err != nil {
		return nil, err
	}

	return &AuthResult{User: user, Token: signed}, nil
}

func (s *AuthService) GetUserByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	return s.userRepo.GetByID(ctx, id)
}

// ValidateToken resolves a session token to a user id.
func (s *AuthService) ValidateToken(raw string) (uuid.UUID, error) {
	return s.issuer.Validate(raw)
}

func (s *AuthService) newUser(walletAddress, walletProvider string) *domain.User {
	provider := walletProvider
	if provider == "" {
		provider = string(wallet.ProviderUnknown)
	}
	now := time.Now()
	return &domain.User{
		ID:             uuid.New(),
		WalletAddress:  walletAddress,
		WalletProvider: provider,
		Role:           domain.RoleUser,
		IsActive:       true,
		LastLogin:      now,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
}
