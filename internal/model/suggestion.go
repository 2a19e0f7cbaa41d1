package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Suggestion records one price recommendation produced by an optimize run.
// Lifecycle: created unapplied → applied (terminal). The Applied flag only
// flips through a conditional update keyed on applied=false, so two
// concurrent apply attempts can never both succeed.
type Suggestion struct {
	ID                       uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ProductID                uuid.UUID       `gorm:"type:uuid;not null;index"`
	PreviousPrice            decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	SuggestedPrice           decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	ExpectedRevenueChangePct decimal.Decimal `gorm:"type:decimal(8,2);not null"`
	ExpectedMarginChangePct  decimal.Decimal `gorm:"type:decimal(8,2);not null"`
	Reason                   string          `gorm:"not null"`
	Applied                  bool            `gorm:"not null;default:false;index"`
	CreatedAt                time.Time       `gorm:"index"`

	Product *Product `gorm:"foreignKey:ProductID"`
}
