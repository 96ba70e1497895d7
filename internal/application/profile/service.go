package profile

import (
	"context"
	"errors"
	"strings"

	"helwati-backend/internal/domain"
	"helwati-backend/internal/pkg/constants"
	"helwati-backend/internal/pkg/validation"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Service holds DB and Redis for profile operations. Redis is needed for
// session rewrites on role change.
type Service struct {
	DB  *gorm.DB
	Rdb *redis.Client
}

// GetProfile returns the profile row for userID.
func (s *Service) GetProfile(ctx context.Context, userID uuid.UUID) (*domain.User, error) {
	if userID == uuid.Nil {
		return nil, errors.New("Missing user ID")
	}
	var u domain.User
	if err := s.DB.WithContext(ctx).Where("user_id = ?", userID).First(&u).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.New("Profile not found")
		}
		return nil, err
	}
	return &u, nil
}

// UpdateProfile updates allowed fields. Allowed: fullname, bio, wilaya, phone, avatar_url.
func (s *Service) UpdateProfile(ctx context.Context, userID uuid.UUID, fields map[string]interface{}) (*domain.User, error) {
	if userID == uuid.Nil {
		return nil, errors.New("Missing user ID")
	}
	if len(fields) == 0 {
		return nil, errors.New("Missing update fields")
	}

	allowed := map[string]bool{
		"fullname": true, "bio": true, "wilaya": true, "phone": true, "avatar_url": true,
	}
	upd := make(map[string]interface{})
	for k, v := range fields {
		if allowed[k] {
			upd[k] = v
		}
	}
	if len(upd) == 0 {
		return nil, errors.New("No valid update fields provided")
	}

	if fn, ok := upd["fullname"].(string); ok {
		trimmed := strings.TrimSpace(fn)
		if trimmed == "" || !validation.IsValidFullname(trimmed) {
			return nil, errors.New("Full name contains invalid characters")
		}
		upd["fullname"] = trimmed
	}
	if w, ok := upd["wilaya"].(string); ok && w != "" {
		if !domain.IsValidWilaya(w) {
			return nil, errors.New("Invalid wilaya")
		}
	}
	if p, ok := upd["phone"].(string); ok && p != "" {
		if !validation.IsValidPhone(p) {
			return nil, errors.New("Invalid phone number format")
		}
	}

	var u domain.User
	if err := s.DB.WithContext(ctx).Where("user_id = ?", userID).First(&u).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.New("Profile not found")
		}
		return nil, err
	}
	if err := s.DB.WithContext(ctx).Model(&u).Updates(upd).Error; err != nil {
		return nil, err
	}
	s.DB.WithContext(ctx).Where("user_id = ?", userID).First(&u)
	return &u, nil
}

// SwitchRole flips the account between buyer and seller. Becoming a seller
// requires a phone number (the WhatsApp contact channel) and a wilaya on
// the profile. The caller rewrites the session user afterwards so role
// reads stay consistent without per-request re-fetching.
func (s *Service) SwitchRole(ctx context.Context, userID uuid.UUID, newRole string) (*domain.User, error) {
	if userID == uuid.Nil {
		return nil, errors.New("Missing user ID")
	}
	if !constants.IsValidRole(newRole) {
		return nil, errors.New("Invalid role")
	}

	var u domain.User
	if err := s.DB.WithContext(ctx).Where("user_id = ?", userID).First(&u).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.New("Profile not found")
		}
		return nil, err
	}
	if u.Role == newRole {
		return &u, nil
	}
	if newRole == constants.Seller {
		if u.Phone == "" {
			return nil, errors.New("Seller accounts require a phone number")
		}
		if u.Wilaya == "" {
			return nil, errors.New("Seller accounts require a wilaya")
		}
	}

	if err := s.DB.WithContext(ctx).Model(&u).Update("role", newRole).Error; err != nil {
		return nil, err
	}
	u.Role = newRole
	return &u, nil
}
