package service

import (
	"context"
	"net/mail"

	"github.com/alec/wallet-auth-backend/internal/domain"
	"github.com/alec/wallet-auth-backend/internal/repository"
	"github.com/google/uuid"
	"gorm.io/datatypes"
)

const (
	maxUsernameLen    = 30
	maxDisplayNameLen = 50
	maxBioLen         = 500
)

// UserService covers the record-management surface around authentication:
// listing, profile updates, role changes, deletion.
type UserService struct {
	userRepo repository.UserRepository
}

func NewUserService(userRepo repository.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

type UpdateProfileInput struct {
	Username    *string
	Email       *string
	DisplayName *string
	Bio         *string
	Avatar      *string
}

func (s *UserService) List(ctx context.Context) ([]*domain.User, error) {
	return s.userRepo.List(ctx)
}

func (s *UserService) Get(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	return s.userRepo.GetByID(ctx, id)
}

func (s *UserService) GetByWallet(ctx context.Context, walletAddress string) (*domain.User, error) {
	return s.userRepo.GetByWallet(ctx, walletAddress)
}

// UpdateProfile applies a partial profile update. Only the user themselves
// or an admin may update a record; the wallet address is immutable and not
// part of the input.
func (s *UserService) UpdateProfile(ctx context.Context, actor *domain.User, targetID uuid.UUID, input UpdateProfileInput) (*domain.User, error) {
	if actor.ID != targetID && actor.Role != domain.RoleAdmin {
		return nil, domain.ErrForbidden
	}

	if err := validateProfileInput(input); err != nil {
		return nil, err
	}

	user, err := s.userRepo.GetByID(ctx, targetID)
	if err != nil {
		return nil, err
	}

	if input.Username != nil {
		user.Username = input.Username
	}
	if input.Email != nil {
		user.Email = input.Email
	}

	profile := user.Profile.Data()
	if input.DisplayName != nil {
		profile.DisplayName = *input.DisplayName
	}
	if input.Bio != nil {
		profile.Bio = *input.Bio
	}
	if input.Avatar != nil {
		profile.Avatar = *input.Avatar
	}
	user.Profile = datatypes.NewJSONType(profile)

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// ChangeRole is admin-gated regardless of target.
func (s *UserService) ChangeRole(ctx context.Context, actor *domain.User, targetID uuid.UUID, role domain.Role) (*domain.User, error) {
	if actor.Role != domain.RoleAdmin {
		return nil, domain.ErrForbidden
	}
	if !role.IsValid() {
		return nil, domain.ErrInvalidRole
	}

	user, err := s.userRepo.GetByID(ctx, targetID)
	if err != nil {
		return nil, err
	}

	user.Role = role
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Delete removes a record permanently. Self-service or admin only.
func (s *UserService) Delete(ctx context.Context, actor *domain.User, targetID uuid.UUID) error {
	if actor.ID != targetID && actor.Role != domain.RoleAdmin {
		return domain.ErrForbidden
	}
	return s.userRepo.Delete(ctx, targetID)
}

func validateProfileInput(input UpdateProfileInput) error {
	if input.Username != nil && len(*input.Username) > maxUsernameLen {
		return domain.ErrUsernameTooLong
	}
	if input.DisplayName != nil && len(*input.DisplayName) > maxDisplayNameLen {
		return domain.ErrDisplayNameTooLong
	}
	if input.Bio != nil && len(*input.Bio) > maxBioLen {
		return domain.ErrBioTooLong
	}
	if input.Email != nil {
		if _, err := mail.ParseAddress(*input.Email); err != nil {
			return domain.ErrInvalidEmail
		}
	}
	return nil
}
