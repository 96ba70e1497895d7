package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Favorite matches the Supabase favorites table. One row per (user, product).
type Favorite struct {
	FavoriteID uuid.UUID `gorm:"column:favorite_id;type:uuid;primaryKey" json:"favorite_id"`
	UserID     uuid.UUID `gorm:"column:user_id;type:uuid;not null;uniqueIndex:idx_favorites_user_product" json:"user_id"`
	ProductID  uuid.UUID `gorm:"column:product_id;type:uuid;not null;uniqueIndex:idx_favorites_user_product" json:"product_id"`
	CreatedAt  time.Time `json:"createdAt"`

	Product *Product `gorm:"foreignKey:ProductID;references:ProductID" json:"product,omitempty"`
}

func (Favorite) TableName() string {
	return "favorites"
}

func (f *Favorite) BeforeCreate(tx *gorm.DB) error {
	if f.FavoriteID == uuid.Nil {
		f.FavoriteID = uuid.New()
	}
	return nil
}
