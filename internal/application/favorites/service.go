package favorites

import (
	"context"
	"errors"
	"fmt"

	"helwati-backend/internal/application/notifications"
	"helwati-backend/internal/domain"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// Notifier is the fan-out collaborator; *notifications.Service satisfies it.
type Notifier interface {
	Create(ctx context.Context, in notifications.CreateInput) (*domain.Notification, error)
}

type Service struct {
	DB       *gorm.DB
	Notifier Notifier
}

// Add favorites a product for userID. Adding twice is a no-op. A new
// favorite notifies the product owner ("إعجاب جديد ❤️"); liking your own
// product adds the favorite but the notifier suppresses the self-notification.
func (s *Service) Add(ctx context.Context, userID, productID uuid.UUID) (*domain.Favorite, error) {
	if userID == uuid.Nil {
		return nil, errors.New("Missing user ID")
	}
	var product domain.Product
	if err := s.DB.WithContext(ctx).Where("product_id = ?", productID).First(&product).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.New("Product not found")
		}
		return nil, err
	}

	var existing domain.Favorite
	if err := s.DB.WithContext(ctx).
		Where("user_id = ? AND product_id = ?", userID, productID).
		First(&existing).Error; err == nil {
		return &existing, nil
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	fav := &domain.Favorite{UserID: userID, ProductID: productID}
	if err := s.DB.WithContext(ctx).Create(fav).Error; err != nil {
		return nil, err
	}

	if s.Notifier != nil {
		_, err := s.Notifier.Create(ctx, notifications.CreateInput{
			Recipient: product.SellerID,
			Actor:     userID,
			Type:      domain.NotificationTypeLike,
			Title:     "إعجاب جديد ❤️",
			Message:   fmt.Sprintf("قام شخص بالإعجاب بمنتجك: %s", product.Title),
			Link:      "/product/" + product.ProductID.String(),
		})
		if err != nil {
			// The favorite stands; the like notice is best effort.
			log.Warn().Err(err).Str("product_id", productID.String()).Msg("like notification failed")
		}
	}
	return fav, nil
}

// Remove unfavorites a product. Absent rows are a no-op.
func (s *Service) Remove(ctx context.Context, userID, productID uuid.UUID) error {
	if userID == uuid.Nil {
		return errors.New("Missing user ID")
	}
	return s.DB.WithContext(ctx).
		Where("user_id = ? AND product_id = ?", userID, productID).
		Delete(&domain.Favorite{}).Error
}

// List returns the user's favorites, newest first, with products preloaded.
func (s *Service) List(ctx context.Context, userID uuid.UUID) ([]domain.Favorite, error) {
	if userID == uuid.Nil {
		return nil, errors.New("Missing user ID")
	}
	var favs []domain.Favorite
	if err := s.DB.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Preload("Product").
		Preload("Product.Seller").
		Find(&favs).Error; err != nil {
		return nil, err
	}
	return favs, nil
}

// ClearAll removes every favorite of the user.
func (s *Service) ClearAll(ctx context.Context, userID uuid.UUID) error {
	if userID == uuid.Nil {
		return errors.New("Missing user ID")
	}
	return s.DB.WithContext(ctx).
		Where("user_id = ?", userID).
		Delete(&domain.Favorite{}).Error
}

// CountForSeller counts favorites received across a seller's products
// (dashboard stat).
func (s *Service) CountForSeller(ctx context.Context, sellerID uuid.UUID) (int64, error) {
	var count int64
	err := s.DB.WithContext(ctx).
		Model(&domain.Favorite{}).
		Joins("JOIN products ON products.product_id = favorites.product_id").
		Where("products.seller_id = ?", sellerID).
		Count(&count).Error
	return count, err
}
