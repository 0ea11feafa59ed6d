package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/trendora-io/storefront-backend/pkg/enums"
	"github.com/trendora-io/storefront-backend/pkg/types"
)

// Order is the immutable record materialized at checkout submission. Only the
// status column is mutated afterwards, by the admin back-office.
type Order struct {
	ID               uuid.UUID          `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	UserID           string             `gorm:"column:user_id;not null;default:'guest'"`
	SessionID        string             `gorm:"column:session_id;not null"`
	CustomerName     string             `gorm:"column:customer_name;not null"`
	CustomerEmail    string             `gorm:"column:customer_email;not null"`
	CustomerPhone    string             `gorm:"column:customer_phone;not null"`
	ShippingInfo     types.ShippingInfo `gorm:"column:shipping_info;type:jsonb;serializer:json"`
	PaymentInfo      types.PaymentInfo  `gorm:"column:payment_info;type:jsonb;serializer:json"`
	Notes            *string            `gorm:"column:notes"`
	TotalAmountCents int64              `gorm:"column:total_amount_cents;not null"`
	Status           enums.OrderStatus  `gorm:"column:status;type:text;not null;default:'pending'"`
	Items            []OrderItem        `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	CreatedAt        time.Time          `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt        time.Time          `gorm:"column:updated_at;autoUpdateTime"`
}
