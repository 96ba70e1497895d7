package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Product statuses. Removed products stay in the table (soft close) so
// product events and favorites keep their references.
const (
	ProductStatusActive  = "active"
	ProductStatusRemoved = "removed"
)

// Product matches the Supabase products table. Price is in DZD.
type Product struct {
	ProductID   uuid.UUID      `gorm:"column:product_id;type:uuid;primaryKey" json:"product_id"`
	SellerID    uuid.UUID      `gorm:"column:seller_id;type:uuid;not null;index" json:"seller_id"`
	Title       string         `gorm:"column:title;not null" json:"title"`
	Description string         `gorm:"column:description;type:text" json:"description"`
	Price       float64        `gorm:"column:price;type:decimal(12,2);not null" json:"price"`
	Category    string         `gorm:"column:category;not null" json:"category"`
	ImageURL    string         `gorm:"column:image_url" json:"image_url"`
	Status      string         `gorm:"column:status;type:varchar(20);default:'active'" json:"status"`
	CreatedAt   time.Time      `json:"createdAt"`
	UpdatedAt   time.Time      `json:"updatedAt"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`

	Seller *User `gorm:"foreignKey:SellerID;references:UserID" json:"seller,omitempty"`
}

func (Product) TableName() string {
	return "products"
}

func (p *Product) BeforeCreate(tx *gorm.DB) error {
	if p.ProductID == uuid.Nil {
		p.ProductID = uuid.New()
	}
	return nil
}
