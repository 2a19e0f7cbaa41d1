package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Product is a retail catalog item tracked by the optimizer.
// The pricing engine only ever reads it — CurrentPrice changes exclusively
// through the apply-suggestion path.
type Product struct {
	ID           uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name         string          `gorm:"index;not null"`
	SKU          string          `gorm:"uniqueIndex;not null"`
	Category     string          `gorm:"index;not null"`
	Cost         decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	CurrentPrice decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	Inventory    int             `gorm:"not null;default:0"`
	CreatedAt    time.Time
	UpdatedAt    time.Time

	SalesHistory []SalesRecord `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
}
