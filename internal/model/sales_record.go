package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SalesRecord is one historical sales observation for a product.
// Records are immutable once written. Seq preserves the order the history
// was supplied in — demand metrics read the tail of the sequence as given,
// while elasticity estimation re-sorts by Date.
type SalesRecord struct {
	ID        uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ProductID uuid.UUID       `gorm:"type:uuid;not null;index"`
	Seq       int             `gorm:"not null;default:0"`
	Date      time.Time       `gorm:"not null"`
	UnitsSold int             `gorm:"not null"`
	Price     decimal.Decimal `gorm:"type:decimal(10,2);not null"`
}
