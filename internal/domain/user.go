package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Roles a profile can hold. Buyers can switch to seller from the profile
// screen, so the role is mutable on an existing account.
const (
	RoleBuyer  = "buyer"
	RoleSeller = "seller"
)

// User matches the Supabase profiles table (one row per auth account).
type User struct {
	UserID       uuid.UUID      `gorm:"column:user_id;type:uuid;primaryKey" json:"user_id"`
	Fullname     string         `gorm:"column:fullname;not null" json:"fullname"`
	Email        string         `gorm:"column:email;not null;uniqueIndex" json:"email"`
	PasswordHash string         `gorm:"column:password_hash;not null" json:"-"`
	Phone        string         `gorm:"column:phone" json:"phone"`
	Wilaya       string         `gorm:"column:wilaya" json:"wilaya"`
	Bio          string         `gorm:"column:bio;type:text" json:"bio"`
	AvatarURL    string         `gorm:"column:avatar_url" json:"avatar_url"`
	Role         string         `gorm:"column:role;not null;default:buyer" json:"role"`
	Rating       float64        `gorm:"column:rating;type:decimal(3,2);default:0" json:"rating"`
	CreatedAt    time.Time      `json:"createdAt"`
	UpdatedAt    time.Time      `json:"updatedAt"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
}

func (User) TableName() string {
	return "profiles"
}

// BeforeCreate sets UUID if not set (for DBs without gen_random_uuid).
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.UserID == uuid.Nil {
		u.UserID = uuid.New()
	}
	return nil
}
