package trades

import (
	"context"
	"errors"
	"fmt"
	"time"

	"folio-backend/internal/domain"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var oneHundred = decimal.NewFromInt(100)

// Reconciler applies trade events to portfolio positions: one holding
// upsert-or-delete plus one ledger append per trade, committed atomically.
type Reconciler struct {
	DB *gorm.DB
}

// TradeRequest is one buy/sell event. Identities arrive already validated
// as integers; ExecutedAt is the caller's trade timestamp.
type TradeRequest struct {
	PortfolioID  uint
	ProductID    uint
	Side         string
	Price        decimal.Decimal
	Quantity     decimal.Decimal
	CurrencyCode string
	ExecutedAt   time.Time
}

// TradeResult is the position after the trade together with the id of the
// ledger entry that recorded it. When a sell closed the position the view
// keeps the final price/currency with quantity zero.
type TradeResult struct {
	TransactionID uint            `json:"transaction_id"`
	PortfolioID   uint            `json:"portfolio_id"`
	ProductID     uint            `json:"financial_product_id"`
	CurrencyCode  string          `json:"currency_code"`
	AveragePrice  decimal.Decimal `json:"price"`
	Quantity      decimal.Decimal `json:"quantity"`
}

// ApplyTrade reconciles one trade event against the current holding.
//
// BUY with no holding opens the position at the trade price. BUY against a
// holding re-weights the average cost basis. SELL computes the realized
// profit rate against the average, decrements quantity, and deletes the row
// when it reaches exactly zero. Every path appends one immutable ledger
// entry inside the same transaction as the holding write.
//
// Writes are guarded by the holding's version column; a missed
// compare-and-swap (or a duplicate-key race on first buy) returns
// ErrConflict and the caller retries with a fresh request.
func (r *Reconciler) ApplyTrade(ctx context.Context, req TradeRequest) (*TradeResult, error) {
	if req.Side != domain.SideBuy && req.Side != domain.SideSell {
		return nil, domain.Validationf("transaction_type must be BUY or SELL")
	}
	if !req.Quantity.IsPositive() {
		return nil, domain.Validationf("quantity must be greater than zero")
	}
	if req.Price.IsNegative() {
		return nil, domain.Validationf("price must not be negative")
	}
	if req.CurrencyCode == "" {
		return nil, domain.Validationf("currency_code is required")
	}
	if req.ExecutedAt.IsZero() {
		return nil, domain.Validationf("created_at is required")
	}

	var result *TradeResult
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&domain.Portfolio{}).Where("portfolio_id = ?", req.PortfolioID).Count(&count).Error; err != nil {
			return domain.StorageErr(err)
		}
		if count == 0 {
			return fmt.Errorf("%w: portfolio %d", domain.ErrNotFound, req.PortfolioID)
		}

		var holding domain.Holding
		err := tx.Where("portfolio_id = ? AND financial_product_id = ?", req.PortfolioID, req.ProductID).
			First(&holding).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			result, err = r.openPosition(tx, req)
			return err
		case err != nil:
			return domain.StorageErr(err)
		}

		if holding.CurrencyCode != req.CurrencyCode {
			return domain.ErrCurrencyMismatch
		}
		if req.Side == domain.SideSell {
			result, err = r.sellAgainst(tx, &holding, req)
		} else {
			result, err = r.buyInto(tx, &holding, req)
		}
		return err
	})
	if err != nil {
		return nil, err
	}

	log.Debug().
		Uint("portfolio_id", req.PortfolioID).
		Uint("product_id", req.ProductID).
		Str("side", req.Side).
		Uint("transaction_id", result.TransactionID).
		Msg("trade applied")
	return result, nil
}

// openPosition handles the no-existing-holding case. Only a buy may open a
// position; a duplicate-key failure means another first buy won the race.
func (r *Reconciler) openPosition(tx *gorm.DB, req TradeRequest) (*TradeResult, error) {
	if req.Side == domain.SideSell {
		return nil, domain.ErrNoPosition
	}

	holding := domain.Holding{
		PortfolioID:  req.PortfolioID,
		ProductID:    req.ProductID,
		CurrencyCode: req.CurrencyCode,
		AveragePrice: req.Price.Round(2),
		Quantity:     req.Quantity,
		Version:      1,
	}
	if err := tx.Create(&holding).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, domain.ErrConflict
		}
		return nil, domain.StorageErr(err)
	}

	entryID, err := r.appendEntry(tx, req, req.CurrencyCode, decimal.NullDecimal{})
	if err != nil {
		return nil, err
	}
	return viewOf(&holding, entryID), nil
}

// sellAgainst decrements the position, realizing profit against the average
// cost basis. Selling the full quantity deletes the row.
func (r *Reconciler) sellAgainst(tx *gorm.DB, holding *domain.Holding, req TradeRequest) (*TradeResult, error) {
	if req.Quantity.GreaterThan(holding.Quantity) {
		return nil, domain.ErrInsufficientQuantity
	}
	if holding.AveragePrice.IsZero() {
		// Profit rate is a division by the average; zero cost basis has no
		// defined rate.
		return nil, domain.Validationf("profit rate undefined for zero average price")
	}

	profit := req.Price.Sub(holding.AveragePrice).
		Div(holding.AveragePrice).
		Mul(oneHundred).
		Round(2)
	remaining := holding.Quantity.Sub(req.Quantity)

	if remaining.IsZero() {
		res := tx.Where("portfolio_id = ? AND financial_product_id = ? AND version = ?",
			holding.PortfolioID, holding.ProductID, holding.Version).
			Delete(&domain.Holding{})
		if res.Error != nil {
			return nil, domain.StorageErr(res.Error)
		}
		if res.RowsAffected == 0 {
			return nil, domain.ErrConflict
		}
	} else {
		if err := r.casUpdate(tx, holding, map[string]interface{}{
			"quantity": remaining,
			"version":  holding.Version + 1,
		}); err != nil {
			return nil, err
		}
	}

	entryID, err := r.appendEntry(tx, req, holding.CurrencyCode, decimal.NewNullDecimal(profit))
	if err != nil {
		return nil, err
	}

	holding.Quantity = remaining
	return viewOf(holding, entryID), nil
}

// buyInto re-weights the average cost basis and increments quantity.
func (r *Reconciler) buyInto(tx *gorm.DB, holding *domain.Holding, req TradeRequest) (*TradeResult, error) {
	totalValue := holding.AveragePrice.Mul(holding.Quantity).Add(req.Price.Mul(req.Quantity))
	newQuantity := holding.Quantity.Add(req.Quantity)
	newAverage := totalValue.Div(newQuantity).Round(2)

	if err := r.casUpdate(tx, holding, map[string]interface{}{
		"price":    newAverage,
		"quantity": newQuantity,
		"version":  holding.Version + 1,
	}); err != nil {
		return nil, err
	}

	entryID, err := r.appendEntry(tx, req, holding.CurrencyCode, decimal.NullDecimal{})
	if err != nil {
		return nil, err
	}

	holding.AveragePrice = newAverage
	holding.Quantity = newQuantity
	return viewOf(holding, entryID), nil
}

// casUpdate applies updates only if the row still carries the version this
// request read; zero rows affected means a concurrent writer got there first.
func (r *Reconciler) casUpdate(tx *gorm.DB, holding *domain.Holding, updates map[string]interface{}) error {
	res := tx.Model(&domain.Holding{}).
		Where("portfolio_id = ? AND financial_product_id = ? AND version = ?",
			holding.PortfolioID, holding.ProductID, holding.Version).
		Updates(updates)
	if res.Error != nil {
		return domain.StorageErr(res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrConflict
	}
	return nil
}

func (r *Reconciler) appendEntry(tx *gorm.DB, req TradeRequest, currency string, profit decimal.NullDecimal) (uint, error) {
	entry := domain.LedgerEntry{
		PortfolioID:  req.PortfolioID,
		ProductID:    req.ProductID,
		Side:         req.Side,
		Price:        req.Price.Round(2),
		Quantity:     req.Quantity,
		CurrencyCode: currency,
		ProfitRate:   profit,
		ExecutedAt:   req.ExecutedAt,
	}
	if err := tx.Create(&entry).Error; err != nil {
		return 0, domain.StorageErr(err)
	}
	return entry.TransactionID, nil
}

func viewOf(h *domain.Holding, entryID uint) *TradeResult {
	return &TradeResult{
		TransactionID: entryID,
		PortfolioID:   h.PortfolioID,
		ProductID:     h.ProductID,
		CurrencyCode:  h.CurrencyCode,
		AveragePrice:  h.AveragePrice,
		Quantity:      h.Quantity,
	}
}
