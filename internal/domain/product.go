package domain

// Sector classifies financial products.
type Sector struct {
	SectorID   uint   `gorm:"column:sector_id;primaryKey" json:"sector_id"`
	SectorName string `gorm:"column:sector_name;type:varchar(100);not null;unique" json:"sector_name"`
}

func (Sector) TableName() string {
	return "sectors"
}

// FinancialProduct is a tradable instrument from the catalog. Read-only as
// far as this service is concerned.
type FinancialProduct struct {
	ProductID   uint   `gorm:"column:financial_product_id;primaryKey" json:"financial_product_id"`
	ProductName string `gorm:"column:product_name;type:varchar(100);not null" json:"product_name"`
	Ticker      string `gorm:"column:ticker;type:varchar(20);not null;unique" json:"ticker"`
	SectorID    uint   `gorm:"column:sector_id;not null" json:"-"`
}

func (FinancialProduct) TableName() string {
	return "financial_products"
}
