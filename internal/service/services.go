package service

import (
	"github.com/alec/wallet-auth-backend/internal/config"
	"github.com/alec/wallet-auth-backend/internal/repository"
	"github.com/alec/wallet-auth-backend/internal/token"
	"github.com/alec/wallet-auth-backend/internal/wallet"
)

type Services struct {
	Auth *AuthService
	User *UserService
}

func NewServices(repos *repository.Repositories, cfg *config.Config) *Services {
	verifier := wallet.NewVerifier()
	issuer := token.NewIssuer(cfg.JWTSecret, cfg.TokenTTL())

	return &Services{
		Auth: NewAuthService(repos.User, verifier, issuer, cfg),
		User: NewUserService(repos.User),
	}
}
