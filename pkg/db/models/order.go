package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/verdantcarry/veganbags-backend/pkg/enums"
)

// Order is a placed purchase. Monetary totals are frozen at placement and
// never recomputed from the catalog afterwards.
type Order struct {
	ID                 uuid.UUID           `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	UserID             uuid.UUID           `gorm:"column:user_id;type:uuid;not null;index"`
	Status             enums.OrderStatus   `gorm:"column:status;not null;default:pending"`
	Subtotal           decimal.Decimal     `gorm:"column:subtotal;type:numeric(10,2);not null"`
	ShippingFee        decimal.Decimal     `gorm:"column:shipping_fee;type:numeric(10,2);not null"`
	TotalAmount        decimal.Decimal     `gorm:"column:total_amount;type:numeric(10,2);not null"`
	PaymentMethod      enums.PaymentMethod `gorm:"column:payment_method;not null"`
	ShippingFullName   string              `gorm:"column:shipping_full_name;not null"`
	ShippingAddress    string              `gorm:"column:shipping_address;not null"`
	ShippingCity       string              `gorm:"column:shipping_city;not null"`
	ShippingPostalCode string              `gorm:"column:shipping_postal_code;not null"`
	ShippingCountry    string              `gorm:"column:shipping_country;not null"`
	ShippingPhone      string              `gorm:"column:shipping_phone;not null"`
	Items              []OrderItem         `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	CreatedAt          time.Time           `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt          time.Time           `gorm:"column:updated_at;autoUpdateTime"`
}
