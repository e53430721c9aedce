package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/alec/wallet-auth-backend/internal/api/middleware"
	"github.com/alec/wallet-auth-backend/internal/domain"
	"github.com/alec/wallet-auth-backend/internal/service"
)

type AuthHandler struct {
	authService *service.AuthService
}

func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

type NonceRequest struct {
	WalletAddress  string `json:"walletAddress"`
	WalletProvider string `json:"walletProvider"`
}

type NonceResponse struct {
	Message       string `json:"message"`
	Nonce         string `json:"nonce"`
	WalletAddress string `json:"walletAddress"`
}

type VerifyRequest struct {
	WalletAddress  string `json:"walletAddress"`
	Signature      string `json:"signature"`
	Nonce          string `json:"nonce"`
	WalletProvider string `json:"walletProvider"`
}

type AuthResponse struct {
	Message string             `json:"message"`
	User    *domain.PublicUser `json:"user"`
	Token   string             `json:"token"`
}

// Nonce issues a fresh challenge nonce for a wallet, creating the user
// record on first contact.
func (h *AuthHandler) Nonce(w http.ResponseWriter, r *http.Request) {
	var req NonceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if req.WalletAddress == "" {
		respondError(w, http.StatusBadRequest, "Wallet address is required")
		return
	}

	result, err := h.authService.Nonce(r.Context(), req.WalletAddress, req.WalletProvider)
	if err != nil {
		log.Printf("ERROR [auth.Nonce] failed to issue nonce: %v", err)
		respondError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	respondJSON(w, http.StatusOK, NonceResponse{
		Message:       "Nonce generated successfully",
		Nonce:         result.Nonce,
		WalletAddress: result.WalletAddress,
	})
}

// Verify checks a signed challenge and returns a session token.
func (h *AuthHandler) Verify(w http.ResponseWriter, r *http.Request) {
	var req VerifyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if req.WalletAddress == "" || req.Signature == "" || req.Nonce == "" {
		respondError(w, http.StatusBadRequest, "Wallet address, signature and nonce are required")
		return
	}

	result, err := h.authService.Verify(r.Context(), service.VerifyInput{
		WalletAddress:  req.WalletAddress,
		Signature:      req.Signature,
		Nonce:          req.Nonce,
		WalletProvider: req.WalletProvider,
	})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrUserNotFound):
			respondError(w, http.StatusNotFound, "User not found")
		case errors.Is(err, domain.ErrInvalidNonce):
			respondError(w, http.StatusUnauthorized, "Invalid nonce")
		case errors.Is(err, domain.ErrInvalidSignature):
			respondError(w, http.StatusUnauthorized, "Invalid signature")
		default:
			log.Printf("ERROR [auth.Verify] verification failed: %v", err)
			respondError(w, http.StatusInternalServerError, "Internal server error")
		}
		return
	}

	respondJSON(w, http.StatusOK, AuthResponse{
		Message: "Authentication successful",
		User:    result.User.PublicView(),
		Token:   result.Token,
	})
}

// Register explicitly creates a wallet account and logs it in.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req NonceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if req.WalletAddress == "" {
		respondError(w, http.StatusBadRequest, "Wallet address is required")
		return
	}

	result, err := h.authService.Register(r.Context(), req.WalletAddress, req.WalletProvider)
	if err != nil {
		if errors.Is(err, domain.ErrWalletRegistered) {
			respondError(w, http.StatusConflict, "Wallet address already registered")
			return
		}
		log.Printf("ERROR [auth.Register] registration failed: %v", err)
		respondError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	respondJSON(w, http.StatusCreated, AuthResponse{
		Message: "Registration successful",
		User:    result.User.PublicView(),
		Token:   result.Token,
	})
}

// Me returns the authenticated user's record.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "Request is not authorized")
		return
	}

	respondJSON(w, http.StatusOK, map[string]*domain.PublicUser{"user": user.PublicView()})
}

// Logout is a stateless no-op: session tokens carry their own expiry and
// there is no server-side revocation list.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"message": "Logged out successfully"})
}
