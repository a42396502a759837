package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/decantiq/decantiq-backend/pkg/enums"
)

// Order is the persisted record of a confirmed checkout for one session.
type Order struct {
	ID             uuid.UUID         `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	SessionID      string            `gorm:"column:session_id;not null;index"`
	Email          string            `gorm:"column:email;not null"`
	IdempotencyKey *string           `gorm:"column:idempotency_key;uniqueIndex"`
	Status         enums.OrderStatus `gorm:"column:status;type:text;not null;default:'confirmed'"`
	SubtotalCents  int64             `gorm:"column:subtotal_cents;not null"`
	DiscountCents  int64             `gorm:"column:discount_cents;not null;default:0"`
	TotalCents     int64             `gorm:"column:total_cents;not null"`
	Items          []OrderLineItem   `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	CreatedAt      time.Time         `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt      time.Time         `gorm:"column:updated_at;autoUpdateTime"`
}

// OrderLineItem captures the snapshot of each decant within an order.
type OrderLineItem struct {
	ID             uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	OrderID        uuid.UUID `gorm:"column:order_id;type:uuid;not null;index"`
	ProductID      string    `gorm:"column:product_id;not null"`
	ProductName    string    `gorm:"column:product_name;not null"`
	Brand          string    `gorm:"column:brand;not null"`
	Size           string    `gorm:"column:size;not null"`
	UnitPriceCents int64     `gorm:"column:unit_price_cents;not null"`
	Quantity       int       `gorm:"column:quantity;not null"`
	TotalCents     int64     `gorm:"column:total_cents;not null"`
	CreatedAt      time.Time `gorm:"column:created_at;autoCreateTime"`
}
