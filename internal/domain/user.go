package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type Role string

const (
	RoleUser      Role = "user"
	RoleAdmin     Role = "admin"
	RoleModerator Role = "moderator"
)

func (r Role) IsValid() bool {
	switch r {
	case RoleUser, RoleAdmin, RoleModerator:
		return true
	}
	return false
}

// Profile holds free-form user profile data, stored as a JSONB column.
type Profile struct {
	DisplayName string `json:"displayName,omitempty"`
	Bio         string `json:"bio,omitempty"`
	Avatar      string `json:"avatar,omitempty"`
}

type User struct {
	ID            uuid.UUID `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	WalletAddress string    `json:"walletAddress" gorm:"uniqueIndex;not null"`

	// Username and Email are nullable so the unique indexes ignore users
	// who never set them.
	Username *string `json:"username,omitempty" gorm:"uniqueIndex"`
	Email    *string `json:"email,omitempty" gorm:"uniqueIndex"`

	WalletProvider string                      `json:"walletProvider" gorm:"not null;default:'Unknown'"`
	Nonce          string                      `json:"-" gorm:"not null"`
	Role           Role                        `json:"role" gorm:"type:varchar(16);not null;default:'user'"`
	Profile        datatypes.JSONType[Profile] `json:"profile"`

	IsActive   bool      `json:"isActive" gorm:"not null;default:true"`
	IsVerified bool      `json:"isVerified" gorm:"not null;default:false"`
	LastLogin  time.Time `json:"lastLogin"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// PublicUser is the only user shape that crosses the HTTP boundary.
// It never carries the nonce.
type PublicUser struct {
	ID             uuid.UUID `json:"id"`
	WalletAddress  string    `json:"walletAddress"`
	Username       *string   `json:"username,omitempty"`
	Email          *string   `json:"email,omitempty"`
	WalletProvider string    `json:"walletProvider"`
	Role           Role      `json:"role"`
	Profile        Profile   `json:"profile"`
	IsActive       bool      `json:"isActive"`
	IsVerified     bool      `json:"isVerified"`
	LastLogin      time.Time `json:"lastLogin"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

func (u *User) PublicView() *PublicUser {
	return &PublicUser{
		ID:             u.ID,
		WalletAddress:  u.WalletAddress,
		Username:       u.Username,
		Email:          u.Email,
		WalletProvider: u.WalletProvider,
		Role:           u.Role,
		Profile:        u.Profile.Data(),
		IsActive:       u.IsActive,
		IsVerified:     u.IsVerified,
		LastLogin:      u.LastLogin,
		CreatedAt:      u.CreatedAt,
		UpdatedAt:      u.UpdatedAt,
	}
}
