package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Trade sides recorded in the ledger.
const (
	SideBuy  = "BUY"
	SideSell = "SELL"
)

// LedgerEntry is the immutable record of one executed trade. Rows are
// append-only: never updated, individually deletable by id. TransactionID is
// assigned by the store and increases monotonically.
//
// Price is the executed unit price of the trade itself, not the holding's
// average. ProfitRate is set only on SELL entries; ExecutedAt comes from the
// caller, not the server clock.
type LedgerEntry struct {
	TransactionID uint                `gorm:"column:transaction_id;primaryKey;autoIncrement" json:"transaction_id"`
	PortfolioID   uint                `gorm:"column:portfolio_id;not null;index" json:"portfolio_id"`
	ProductID     uint                `gorm:"column:financial_product_id;not null" json:"financial_product_id"`
	Side          string              `gorm:"column:transaction_type;type:varchar(50);not null" json:"transaction_type"`
	Price         decimal.Decimal     `gorm:"column:price;type:decimal(18,2);not null" json:"price"`
	ProfitRate    decimal.NullDecimal `gorm:"column:profit_rate;type:decimal(5,2)" json:"profit_rate"`
	CurrencyCode  string              `gorm:"column:currency_code;type:varchar(10)" json:"currency_code"`
	Quantity      decimal.Decimal     `gorm:"column:quantity;type:decimal(18,4)" json:"quantity"`
	ExecutedAt    time.Time           `gorm:"column:created_at" json:"created_at"`
}

func (LedgerEntry) TableName() string {
	return "transaction_history"
}
