package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Holding is the current aggregate position in one product within one
// portfolio, one row per (portfolio_id, financial_product_id).
//
// AveragePrice is the quantity-weighted cost basis per unit, not the last
// trade price. A holding whose quantity reaches exactly zero is deleted;
// zero-quantity rows never persist. CurrencyCode is fixed for the life of
// the row.
//
// Version is the optimistic-lock counter: every update or delete carries the
// version it read, and a missed compare-and-swap surfaces as ErrConflict.
type Holding struct {
	PortfolioID  uint            `gorm:"column:portfolio_id;primaryKey" json:"portfolio_id"`
	ProductID    uint            `gorm:"column:financial_product_id;primaryKey" json:"financial_product_id"`
	CurrencyCode string          `gorm:"column:currency_code;type:varchar(10);not null" json:"currency_code"`
	AveragePrice decimal.Decimal `gorm:"column:price;type:decimal(18,2);not null" json:"price"`
	Quantity     decimal.Decimal `gorm:"column:quantity;type:decimal(18,4);not null" json:"quantity"`
	Version      int64           `gorm:"column:version;not null;default:0" json:"-"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

func (Holding) TableName() string {
	return "portfolio_holdings"
}
