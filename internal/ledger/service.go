package ledger

import (
	"context"
	"fmt"
	"time"

	"folio-backend/internal/domain"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Service provides read and delete access to the transaction ledger.
// Entries are immutable; the only write path lives in the reconciler.
type Service struct {
	DB *gorm.DB
}

// SectorView is the sector identity embedded in transaction responses.
type SectorView struct {
	SectorID   uint   `json:"sector_id"`
	SectorName string `json:"sector_name"`
}

// ProductView is the product identity embedded in transaction responses.
type ProductView struct {
	ProductID   uint       `json:"financial_product_id"`
	ProductName string     `json:"product_name"`
	Ticker      string     `json:"ticker"`
	Sector      SectorView `json:"sector"`
}

// EntryView is one ledger entry enriched with product and sector identity.
type EntryView struct {
	TransactionID uint                `json:"transaction_id"`
	PortfolioID   uint                `json:"portfolio_id"`
	Side          string              `json:"transaction_type"`
	Price         decimal.Decimal     `json:"price"`
	ProfitRate    decimal.NullDecimal `json:"profit_rate"`
	CurrencyCode  string              `json:"currency_code"`
	Quantity      decimal.Decimal     `json:"quantity"`
	ExecutedAt    time.Time           `json:"created_at"`
	Product       ProductView         `json:"financial_product"`
}

// DeleteReport is the outcome of a batch delete. Each id is handled
// independently; ids that were not found are reported, not fatal.
type DeleteReport struct {
	Deleted  int64  `json:"deleted"`
	NotFound []uint `json:"not_found"`
}

// ListTransactions returns one page of a portfolio's ledger, newest first
// (executed_at descending, ties broken by transaction_id descending).
func (s *Service) ListTransactions(ctx context.Context, portfolioID uint, page, perPage int) ([]EntryView, int64, error) {
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
	if err := s.DB.WithContext(ctx).Model(&domain.LedgerEntry{}).
		Where("portfolio_id = ?", portfolioID).Count(&total).Error; err != nil {
		return nil, 0, domain.StorageErr(err)
	}

	var entries []domain.LedgerEntry
	if err := s.DB.WithContext(ctx).
		Where("portfolio_id = ?", portfolioID).
		Order("created_at DESC, transaction_id DESC").
		Offset((page - 1) * perPage).
		Limit(perPage).
		Find(&entries).Error; err != nil {
		return nil, 0, domain.StorageErr(err)
	}

	products, sectors, err := s.enrichment(ctx, entries)
	if err != nil {
		return nil, 0, err
	}

	out := make([]EntryView, len(entries))
	for i, e := range entries {
		view := EntryView{
			TransactionID: e.TransactionID,
			PortfolioID:   e.PortfolioID,
			Side:          e.Side,
			Price:         e.Price,
			ProfitRate:    e.ProfitRate,
			CurrencyCode:  e.CurrencyCode,
			Quantity:      e.Quantity,
			ExecutedAt:    e.ExecutedAt,
		}
		if p, ok := products[e.ProductID]; ok {
			view.Product = ProductView{ProductID: p.ProductID, ProductName: p.ProductName, Ticker: p.Ticker}
			if sec, ok := sectors[p.SectorID]; ok {
				view.Product.Sector = SectorView{SectorID: sec.SectorID, SectorName: sec.SectorName}
			}
		}
		out[i] = view
	}
	return out, total, nil
}

// DeleteTransactions deletes each entry independently. Deletions already
// applied are not rolled back when a later id is missing.
func (s *Service) DeleteTransactions(ctx context.Context, ids []uint) (*DeleteReport, error) {
	if len(ids) == 0 {
		return nil, domain.Validationf("transaction_ids must not be empty")
	}

	report := &DeleteReport{NotFound: []uint{}}
	for _, id := range ids {
		res := s.DB.WithContext(ctx).Where("transaction_id = ?", id).Delete(&domain.LedgerEntry{})
		if res.Error != nil {
			return report, domain.StorageErr(res.Error)
		}
		if res.RowsAffected == 0 {
			report.NotFound = append(report.NotFound, id)
			continue
		}
		report.Deleted += res.RowsAffected
	}
	return report, nil
}

func (s *Service) enrichment(ctx context.Context, entries []domain.LedgerEntry) (map[uint]domain.FinancialProduct, map[uint]domain.Sector, error) {
	productIDs := map[uint]bool{}
	for _, e := range entries {
		productIDs[e.ProductID] = true
	}
	products := map[uint]domain.FinancialProduct{}
	sectors := map[uint]domain.Sector{}
	if len(productIDs) == 0 {
		return products, sectors, nil
	}

	ids := make([]uint, 0, len(productIDs))
	for id := range productIDs {
		ids = append(ids, id)
	}
	var rows []domain.FinancialProduct
	if err := s.DB.WithContext(ctx).Where("financial_product_id IN ?", ids).Find(&rows).Error; err != nil {
		return nil, nil, domain.StorageErr(err)
	}
	sectorIDs := map[uint]bool{}
	for _, p := range rows {
		products[p.ProductID] = p
		sectorIDs[p.SectorID] = true
	}

	if len(sectorIDs) > 0 {
		ids = ids[:0]
		for id := range sectorIDs {
			ids = append(ids, id)
		}
		var secRows []domain.Sector
		if err := s.DB.WithContext(ctx).Where("sector_id IN ?", ids).Find(&secRows).Error; err != nil {
			return nil, nil, domain.StorageErr(err)
		}
		for _, sec := range secRows {
			sectors[sec.SectorID] = sec
		}
	}
	return products, sectors, nil
}
