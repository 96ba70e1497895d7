package products

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"

	"helwati-backend/internal/domain"
	"helwati-backend/internal/filter"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Service struct {
	DB       *gorm.DB
	validate *validator.Validate
}

func (s *Service) validator() *validator.Validate {
	if s.validate == nil {
		s.validate = validator.New()
	}
	return s.validate
}

type CreateProductInput struct {
	SellerID    uuid.UUID `validate:"required"`
	Title       string    `validate:"required,min=2,max=120"`
	Description string    `validate:"max=2000"`
	Price       float64   `validate:"required,gt=0"`
	Category    string    `validate:"required"`
	ImageURL    string    `validate:"omitempty,url"`
}

// CreateProduct inserts an active product and records a "listed" event.
func (s *Service) CreateProduct(ctx context.Context, in CreateProductInput) (*domain.Product, error) {
	if err := s.validator().Struct(in); err != nil {
		return nil, fmt.Errorf("Invalid product input: %v", err)
	}
	if !domain.IsValidCategory(in.Category) {
		return nil, errors.New("Invalid category")
	}

	product := &domain.Product{
		SellerID:    in.SellerID,
		Title:       in.Title,
		Description: in.Description,
		Price:       in.Price,
		Category:    in.Category,
		ImageURL:    in.ImageURL,
		Status:      domain.ProductStatusActive,
	}
	if err := s.DB.WithContext(ctx).Create(product).Error; err != nil {
		return nil, fmt.Errorf("Failed to create product: %v", err)
	}

	s.recordEvent(ctx, product, domain.ProductEventListed, map[string]interface{}{
		"price":    product.Price,
		"category": product.Category,
	})
	return product, nil
}

// FeedInput carries the query-string filter selection for the home feed
// and search screen.
type FeedInput struct {
	Category string
	Query    string
	Wilaya   string
}

// Feed returns active products, newest first, run through the filter
// engine. The engine is the single matching authority: the DB read is a
// plain status scan and every clause (category, free text, wilaya) is
// applied in-process so feed and search behave identically.
func (s *Service) Feed(ctx context.Context, in FeedInput) ([]domain.Product, error) {
	var products []domain.Product
	if err := s.DB.WithContext(ctx).
		Where("status = ?", domain.ProductStatusActive).
		Order("created_at DESC").
		Preload("Seller").
		Find(&products).Error; err != nil {
		return nil, err
	}
	return filter.Apply(products, filter.State{
		Category: in.Category,
		Query:    in.Query,
		Wilaya:   in.Wilaya,
	}), nil
}

func (s *Service) GetProductByID(ctx context.Context, productID uuid.UUID) (*domain.Product, error) {
	if productID == uuid.Nil {
		return nil, errors.New("product_id is required")
	}
	var product domain.Product
	if err := s.DB.WithContext(ctx).Where("product_id = ?", productID).Preload("Seller").First(&product).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.New("Product not found")
		}
		return nil, err
	}
	return &product, nil
}

// SellerProducts returns a seller's own products (dashboard list), active
// first, newest first.
func (s *Service) SellerProducts(ctx context.Context, sellerID uuid.UUID) ([]domain.Product, error) {
	if sellerID == uuid.Nil {
		return nil, errors.New("Seller not found in session")
	}
	var products []domain.Product
	if err := s.DB.WithContext(ctx).
		Where("seller_id = ?", sellerID).
		Order("status ASC, created_at DESC").
		Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

type EditProductInput struct {
	ProductID      uuid.UUID
	SellerID       uuid.UUID
	NewTitle       *string
	NewDescription *string
	NewPrice       *float64
	NewImageURL    *string
}

// EditProduct updates owner-editable fields. A price change also records a
// "price_changed" event for the dashboard history.
func (s *Service) EditProduct(ctx context.Context, in EditProductInput) (*domain.Product, error) {
	if in.ProductID == uuid.Nil {
		return nil, errors.New("Missing product_id")
	}
	if in.SellerID == uuid.Nil {
		return nil, errors.New("Missing seller_id")
	}

	var product domain.Product
	if err := s.DB.WithContext(ctx).Where("product_id = ?", in.ProductID).First(&product).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.New("Product not found")
		}
		return nil, err
	}
	if product.Status != domain.ProductStatusActive {
		return nil, errors.New("Product is not editable")
	}
	if product.SellerID != in.SellerID {
		return nil, errors.New("Unauthorized product edit")
	}

	updates := map[string]interface{}{}
	var oldPrice float64

	if in.NewTitle != nil {
		if *in.NewTitle == "" {
			return nil, errors.New("Invalid title")
		}
		if *in.NewTitle != product.Title {
			updates["title"] = *in.NewTitle
		}
	}
	if in.NewDescription != nil && *in.NewDescription != product.Description {
		updates["description"] = *in.NewDescription
	}
	if in.NewPrice != nil {
		price := *in.NewPrice
		if math.IsNaN(price) || price <= 0 {
			return nil, errors.New("Invalid price")
		}
		if price != product.Price {
			oldPrice = product.Price
			updates["price"] = price
		}
	}
	if in.NewImageURL != nil && *in.NewImageURL != product.ImageURL {
		updates["image_url"] = *in.NewImageURL
	}

	if len(updates) == 0 {
		return nil, errors.New("No valid changes provided")
	}
	if err := s.DB.WithContext(ctx).Model(&product).Updates(updates).Error; err != nil {
		return nil, err
	}
	s.DB.WithContext(ctx).Where("product_id = ?", in.ProductID).First(&product)

	if _, changed := updates["price"]; changed {
		s.recordEvent(ctx, &product, domain.ProductEventPriceChanged, map[string]interface{}{
			"old_price": oldPrice,
			"new_price": product.Price,
		})
	}
	return &product, nil
}

// RemoveProduct soft-closes the product (status "removed") rather than
// deleting the row, so favorites and events keep their references.
func (s *Service) RemoveProduct(ctx context.Context, productID, sellerID uuid.UUID) (*domain.Product, error) {
	var product domain.Product
	if err := s.DB.WithContext(ctx).Where("product_id = ?", productID).First(&product).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.New("Product not found")
		}
		return nil, err
	}
	if product.Status != domain.ProductStatusActive {
		return nil, errors.New("Product is not active")
	}
	if product.SellerID != sellerID {
		return nil, errors.New("Unauthorized")
	}

	product.Status = domain.ProductStatusRemoved
	if err := s.DB.WithContext(ctx).Save(&product).Error; err != nil {
		return nil, err
	}
	s.recordEvent(ctx, &product, domain.ProductEventRemoved, map[string]interface{}{
		"price": product.Price,
	})
	return &product, nil
}

// SellerEvents returns a seller's recent product events, newest first.
func (s *Service) SellerEvents(ctx context.Context, sellerID uuid.UUID, limit int) ([]domain.ProductEvent, error) {
	if sellerID == uuid.Nil {
		return nil, errors.New("Seller not found in session")
	}
	if limit <= 0 {
		limit = 20
	}
	var events []domain.ProductEvent
	if err := s.DB.WithContext(ctx).
		Where("seller_id = ?", sellerID).
		Order("created_at DESC").
		Limit(limit).
		Find(&events).Error; err != nil {
		return nil, err
	}
	return events, nil
}

// recordEvent writes the audit row. Event write failures do not fail the
// product operation itself.
func (s *Service) recordEvent(ctx context.Context, p *domain.Product, eventType string, data map[string]interface{}) {
	payload, err := json.Marshal(data)
	if err != nil {
		return
	}
	s.DB.WithContext(ctx).Create(&domain.ProductEvent{
		ProductID: p.ProductID,
		SellerID:  p.SellerID,
		EventType: eventType,
		EventData: datatypes.JSON(payload),
	})
}
