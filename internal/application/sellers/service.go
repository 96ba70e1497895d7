package sellers

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"helwati-backend/internal/domain"
	"helwati-backend/internal/pkg/constants"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Service struct {
	DB *gorm.DB
}

// SellerView is the public seller page payload: profile fields without
// account internals, plus the active catalog.
type SellerView struct {
	SellerID     uuid.UUID        `json:"seller_id"`
	Fullname     string           `json:"fullname"`
	AvatarURL    string           `json:"avatar_url"`
	Wilaya       string           `json:"wilaya"`
	Bio          string           `json:"bio"`
	Rating       float64          `json:"rating"`
	ProductCount int              `json:"product_count"`
	WhatsAppLink string           `json:"whatsapp_link"`
	Products     []domain.Product `json:"products"`
}

// ViewSeller returns a seller's public profile with active products.
func (s *Service) ViewSeller(ctx context.Context, sellerID uuid.UUID) (*SellerView, error) {
	if sellerID == uuid.Nil {
		return nil, errors.New("seller_id is required")
	}
	var seller domain.User
	if err := s.DB.WithContext(ctx).Where("user_id = ?", sellerID).First(&seller).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.New("Seller not found")
		}
		return nil, err
	}
	if seller.Role != constants.Seller {
		return nil, errors.New("Seller not found")
	}

	var products []domain.Product
	if err := s.DB.WithContext(ctx).
		Where("seller_id = ? AND status = ?", sellerID, domain.ProductStatusActive).
		Order("created_at DESC").
		Find(&products).Error; err != nil {
		return nil, err
	}

	return &SellerView{
		SellerID:     seller.UserID,
		Fullname:     seller.Fullname,
		AvatarURL:    seller.AvatarURL,
		Wilaya:       seller.Wilaya,
		Bio:          seller.Bio,
		Rating:       seller.Rating,
		ProductCount: len(products),
		WhatsAppLink: WhatsAppLink(seller.Phone, ""),
		Products:     products,
	}, nil
}

// WhatsAppLink builds the wa.me handoff URL: phone without the leading
// "+", optional pre-filled message URL-encoded. Empty phone yields "".
func WhatsAppLink(phone, message string) string {
	if phone == "" {
		return ""
	}
	link := "https://wa.me/" + strings.TrimPrefix(phone, "+")
	if message != "" {
		link += "?text=" + url.QueryEscape(message)
	}
	return link
}

// ProductInquiryLink builds the contact link for a specific product with
// the Arabic inquiry message the product page pre-fills.
func (s *Service) ProductInquiryLink(ctx context.Context, productID uuid.UUID) (string, error) {
	if productID == uuid.Nil {
		return "", errors.New("product_id is required")
	}
	var product domain.Product
	if err := s.DB.WithContext(ctx).
		Where("product_id = ?", productID).
		Preload("Seller").
		First(&product).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return "", errors.New("Product not found")
		}
		return "", err
	}
	if product.Seller == nil || product.Seller.Phone == "" {
		return "", errors.New("Seller has no contact number")
	}
	message := fmt.Sprintf("مرحباً، أنا مهتم بمنتجك: %s", product.Title)
	return WhatsAppLink(product.Seller.Phone, message), nil
}

// DashboardStats is the seller dashboard summary.
type DashboardStats struct {
	ProductCount      int64                 `json:"product_count"`
	ActiveCount       int64                 `json:"active_count"`
	FavoritesReceived int64                 `json:"favorites_received"`
	Rating            float64               `json:"rating"`
	RecentEvents      []domain.ProductEvent `json:"recent_events"`
}

// Stats aggregates dashboard numbers for a seller.
func (s *Service) Stats(ctx context.Context, sellerID uuid.UUID) (*DashboardStats, error) {
	if sellerID == uuid.Nil {
		return nil, errors.New("Seller not found in session")
	}
	var seller domain.User
	if err := s.DB.WithContext(ctx).Where("user_id = ?", sellerID).First(&seller).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.New("Seller not found")
		}
		return nil, err
	}

	stats := &DashboardStats{Rating: seller.Rating}
	if err := s.DB.WithContext(ctx).Model(&domain.Product{}).
		Where("seller_id = ?", sellerID).
		Count(&stats.ProductCount).Error; err != nil {
		return nil, err
	}
	if err := s.DB.WithContext(ctx).Model(&domain.Product{}).
		Where("seller_id = ? AND status = ?", sellerID, domain.ProductStatusActive).
		Count(&stats.ActiveCount).Error; err != nil {
		return nil, err
	}
	if err := s.DB.WithContext(ctx).Model(&domain.Favorite{}).
		Joins("JOIN products ON products.product_id = favorites.product_id").
		Where("products.seller_id = ?", sellerID).
		Count(&stats.FavoritesReceived).Error; err != nil {
		return nil, err
	}
	if err := s.DB.WithContext(ctx).
		Where("seller_id = ?", sellerID).
		Order("created_at DESC").
		Limit(10).
		Find(&stats.RecentEvents).Error; err != nil {
		return nil, err
	}
	return stats, nil
}
