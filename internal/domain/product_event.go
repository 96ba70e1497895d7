package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Product event types recorded for the seller dashboard history.
const (
	ProductEventListed       = "listed"
	ProductEventPriceChanged = "price_changed"
	ProductEventRemoved      = "removed"
)

// ProductEvent is an audit row written alongside product mutations.
type ProductEvent struct {
	EventID   uuid.UUID      `gorm:"column:event_id;type:uuid;primaryKey" json:"event_id"`
	ProductID uuid.UUID      `gorm:"column:product_id;type:uuid;not null;index" json:"product_id"`
	SellerID  uuid.UUID      `gorm:"column:seller_id;type:uuid;not null;index" json:"seller_id"`
	EventType string         `gorm:"column:event_type;type:varchar(30);not null" json:"event_type"`
	EventData datatypes.JSON `gorm:"column:event_data;type:jsonb;not null" json:"event_data"`
	CreatedAt time.Time      `json:"createdAt"`
}

func (ProductEvent) TableName() string {
	return "product_events"
}

func (pe *ProductEvent) BeforeCreate(tx *gorm.DB) error {
	if pe.EventID == uuid.Nil {
		pe.EventID = uuid.New()
	}
	return nil
}
