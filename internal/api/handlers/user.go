package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/alec/wallet-auth-backend/internal/api/middleware"
	"github.com/alec/wallet-auth-backend/internal/domain"
	"github.com/alec/wallet-auth-backend/internal/service"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

type UserHandler struct {
	userService *service.UserService
}

func NewUserHandler(userService *service.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

type UpdateProfileRequest struct {
	Username    *string `json:"username"`
	Email       *string `json:"email"`
	DisplayName *string `json:"displayName"`
	Bio         *string `json:"bio"`
	Avatar      *string `json:"avatar"`
}

type ChangeRoleRequest struct {
	Role string `json:"role"`
}

func (h *UserHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	users, err := h.userService.List(r.Context())
	if err != nil {
		log.Printf("ERROR [user.GetAll] failed to list users: %v", err)
		respondError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	views := make([]*domain.PublicUser, 0, len(users))
	for _, u := range users {
		views = append(views, u.PublicView())
	}
	respondJSON(w, http.StatusOK, map[string][]*domain.PublicUser{"users": views})
}

func (h *UserHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid user id")
		return
	}

	user, err := h.userService.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			respondError(w, http.StatusNotFound, "User not found")
			return
		}
		log.Printf("ERROR [user.Get] failed to get user: %v", err)
		respondError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	respondJSON(w, http.StatusOK, map[string]*domain.PublicUser{"user": user.PublicView()})
}

func (h *UserHandler) GetByWallet(w http.ResponseWriter, r *http.Request) {
	walletAddress := chi.URLParam(r, "walletAddress")

	user, err := h.userService.GetByWallet(r.Context(), walletAddress)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			respondError(w, http.StatusNotFound, "User not found")
			return
		}
		log.Printf("ERROR [user.GetByWallet] failed to get user: %v", err)
		respondError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	respondJSON(w, http.StatusOK, map[string]*domain.PublicUser{"user": user.PublicView()})
}

func (h *UserHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.GetUser(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "Request is not authorized")
		return
	}

	targetID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid user id")
		return
	}

	var req UpdateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	user, err := h.userService.UpdateProfile(r.Context(), actor, targetID, service.UpdateProfileInput{
		Username:    req.Username,
		Email:       req.Email,
		DisplayName: req.DisplayName,
		Bio:         req.Bio,
		Avatar:      req.Avatar,
	})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrForbidden):
			respondError(w, http.StatusForbidden, "You can only update your own profile")
		case errors.Is(err, domain.ErrUserNotFound):
			respondError(w, http.StatusNotFound, "User not found")
		case errors.Is(err, domain.ErrDuplicateKey):
			respondError(w, http.StatusConflict, "Username or email already taken")
		case errors.Is(err, domain.ErrUsernameTooLong),
			errors.Is(err, domain.ErrDisplayNameTooLong),
			errors.Is(err, domain.ErrBioTooLong),
			errors.Is(err, domain.ErrInvalidEmail):
			respondError(w, http.StatusBadRequest, err.Error())
		default:
			log.Printf("ERROR [user.UpdateProfile] failed to update profile: %v", err)
			respondError(w, http.StatusInternalServerError, "Internal server error")
		}
		return
	}

	respondJSON(w, http.StatusOK, map[string]*domain.PublicUser{"user": user.PublicView()})
}

func (h *UserHandler) ChangeRole(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.GetUser(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "Request is not authorized")
		return
	}

	targetID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid user id")
		return
	}

	var req ChangeRoleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	user, err := h.userService.ChangeRole(r.Context(), actor, targetID, domain.Role(req.Role))
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrForbidden):
			respondError(w, http.StatusForbidden, "Only admins can change user roles")
		case errors.Is(err, domain.ErrInvalidRole):
			respondError(w, http.StatusBadRequest, "Invalid role")
		case errors.Is(err, domain.ErrUserNotFound):
			respondError(w, http.StatusNotFound, "User not found")
		default:
			log.Printf("ERROR [user.ChangeRole] failed to change role: %v", err)
			respondError(w, http.StatusInternalServerError, "Internal server error")
		}
		return
	}

	respondJSON(w, http.StatusOK, map[string]*domain.PublicUser{"user": user.PublicView()})
}

func (h *UserHandler) Delete(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.GetUser(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "Request is not authorized")
		return
	}

	targetID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid user id")
		return
	}

	if err := h.userService.Delete(r.Context(), actor, targetID); err != nil {
		switch {
		case errors.Is(err, domain.ErrForbidden):
			respondError(w, http.StatusForbidden, "You can only delete your own account")
		case errors.Is(err, domain.ErrUserNotFound):
			respondError(w, http.StatusNotFound, "User not found")
		default:
			log.Printf("ERROR [user.Delete] failed to delete user: %v", err)
			respondError(w, http.StatusInternalServerError, "Internal server error")
		}
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"message": "User deleted successfully"})
}
