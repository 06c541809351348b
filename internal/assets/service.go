package assets

import (
	"context"
	"fmt"

	"folio-backend/internal/domain"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Service provides the holdings read path.
type Service struct {
	DB *gorm.DB
}

// ProductView is the product identity embedded in asset responses.
type ProductView struct {
	ProductID   uint   `json:"financial_product_id"`
	ProductName string `json:"product_name"`
	Ticker      string `json:"ticker"`
}

// AssetView is one holding enriched with product identity.
type AssetView struct {
	PortfolioID  uint            `json:"portfolio_id"`
	CurrencyCode string          `json:"currency_code"`
	AveragePrice decimal.Decimal `json:"price"`
	Quantity     decimal.Decimal `json:"quantity"`
	Product      ProductView     `json:"financial_product"`
}

// ListHoldings returns one page of a portfolio's holdings, ordered by
// product id (insertion order of the composite key), with the total count.
func (s *Service) ListHoldings(ctx context.Context, portfolioID uint, page, perPage int) ([]AssetView, int64, error) {
	if page < 1 {
		return nil, 0, domain.Validationf("page must be >= 1")
	}
	if perPage < 1 || perPage > 100 {
		return nil, 0, domain.Validationf("per_page must be between 1 and 100")
	}

	var count int64
	if err := s.DB.WithContext(ctx).Model(&domain.Portfolio{}).
		Where("portfolio_id = ?", portfolioID).Count(&count).Error; err != nil {
		return nil, 0, domain.StorageErr(err)
	}
	if count == 0 {
		return nil, 0, fmt.Errorf("%w: portfolio %d", domain.ErrNotFound, portfolioID)
	}

	var total int64
	if err := s.DB.WithContext(ctx).Model(&domain.Holding{}).
		Where("portfolio_id = ?", portfolioID).Count(&total).Error; err != nil {
		return nil, 0, domain.StorageErr(err)
	}

	var holdings []domain.Holding
	if err := s.DB.WithContext(ctx).
		Where("portfolio_id = ?", portfolioID).
		Order("financial_product_id ASC").
		Offset((page - 1) * perPage).
		Limit(perPage).
		Find(&holdings).Error; err != nil {
		return nil, 0, domain.StorageErr(err)
	}

	products, err := s.productsByID(ctx, holdings)
	if err != nil {
		return nil, 0, err
	}

	out := make([]AssetView, len(holdings))
	for i, h := range holdings {
		view := AssetView{
			PortfolioID:  h.PortfolioID,
			CurrencyCode: h.CurrencyCode,
			AveragePrice: h.AveragePrice,
			Quantity:     h.Quantity,
		}
		if p, ok := products[h.ProductID]; ok {
			view.Product = ProductView{ProductID: p.ProductID, ProductName: p.ProductName, Ticker: p.Ticker}
		}
		out[i] = view
	}
	return out, total, nil
}

func (s *Service) productsByID(ctx context.Context, holdings []domain.Holding) (map[uint]domain.FinancialProduct, error) {
	ids := make([]uint, 0, len(holdings))
	for _, h := range holdings {
		ids = append(ids, h.ProductID)
	}
	out := map[uint]domain.FinancialProduct{}
	if len(ids) == 0 {
		return out, nil
	}
	var products []domain.FinancialProduct
	if err := s.DB.WithContext(ctx).Where("financial_product_id IN ?", ids).Find(&products).Error; err != nil {
		return nil, domain.StorageErr(err)
	}
	for _, p := range products {
		out[p.ProductID] = p
	}
	return out, nil
}
