package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type UserRole string

const (
	RoleUser  UserRole = "user"
	RoleAdmin UserRole = "admin"
)

type AuthProvider string

const (
	ProviderLocal    AuthProvider = "local"
	ProviderGoogle   AuthProvider = "google"
	ProviderFacebook AuthProvider = "facebook"
)

type User struct {
	ID             uuid.UUID    `json:"id" gorm:"type:uuid;primarykey"`
	Username       string       `json:"username" gorm:"uniqueIndex;size:50;not null"`
	Email          string       `json:"email" gorm:"uniqueIndex;size:100;not null"`
	Password       string       `json:"-" gorm:"size:255"`
	Role           UserRole     `json:"role" gorm:"size:20;default:'user';not null"`
	IsActive       bool         `json:"is_active" gorm:"default:true"`
	Provider       AuthProvider `json:"provider" gorm:"size:20;default:'local';not null"`
	ProviderID     *string      `json:"provider_id,omitempty" gorm:"size:255"`
	ProfilePicture *string      `json:"profile_picture,omitempty" gorm:"size:500"`
	CreatedAt      time.Time    `json:"created_at"`
	UpdatedAt      time.Time    `json:"updated_at"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}
