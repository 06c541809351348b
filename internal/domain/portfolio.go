package domain

// Portfolio groups holdings and transaction history for one user. The name
// is unique per owning user, enforced at the service layer.
type Portfolio struct {
	PortfolioID   uint   `gorm:"column:portfolio_id;primaryKey" json:"portfolio_id"`
	PortfolioName string `gorm:"column:portfolio_name;type:varchar(255);not null" json:"portfolio_name"`
	UserID        uint   `gorm:"column:user_id;not null;index" json:"user_id"`
}

func (Portfolio) TableName() string {
	return "portfolios"
}
