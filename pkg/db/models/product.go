package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/verdantcarry/veganbags-backend/pkg/enums"
)

// Product represents a catalog listing.
type Product struct {
	ID          uuid.UUID         `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Name        string            `gorm:"column:name;not null"`
	Description string            `gorm:"column:description;not null"`
	Price       decimal.Decimal   `gorm:"column:price;type:numeric(10,2);not null"`
	Category    enums.BagCategory `gorm:"column:category;not null"`
	Material    string            `gorm:"column:material;not null"`
	IsVegan     bool              `gorm:"column:is_vegan;not null;default:true"`
	ImageURL    string            `gorm:"column:image_url;not null"`
	Stock       int               `gorm:"column:stock;not null;default:0"`
	CreatedAt   time.Time         `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time         `gorm:"column:updated_at;autoUpdateTime"`
}
