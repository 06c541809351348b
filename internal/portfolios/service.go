package portfolios

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"folio-backend/internal/domain"

	"gorm.io/gorm"
)

// Service manages portfolio lifecycle. Deleting a portfolio also removes its
// holdings and ledger rows so no orphans survive.
type Service struct {
	DB *gorm.DB
}

// Create adds a portfolio; the name must be unique per owning user.
func (s *Service) Create(ctx context.Context, userID uint, name string) (*domain.Portfolio, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, domain.Validationf("portfolio_name is required")
	}

	var count int64
	if err := s.DB.WithContext(ctx).Model(&domain.Portfolio{}).
		Where("user_id = ? AND portfolio_name = ?", userID, name).Count(&count).Error; err != nil {
		return nil, domain.StorageErr(err)
	}
	if count > 0 {
		return nil, ErrNameTaken
	}

	portfolio := domain.Portfolio{UserID: userID, PortfolioName: name}
	if err := s.DB.WithContext(ctx).Create(&portfolio).Error; err != nil {
		return nil, domain.StorageErr(err)
	}
	return &portfolio, nil
}

// ListByUser returns all portfolios owned by the user.
func (s *Service) ListByUser(ctx context.Context, userID uint) ([]domain.Portfolio, error) {
	var portfolios []domain.Portfolio
	if err := s.DB.WithContext(ctx).Where("user_id = ?", userID).
		Order("portfolio_id ASC").Find(&portfolios).Error; err != nil {
		return nil, domain.StorageErr(err)
	}
	return portfolios, nil
}

// Exists reports whether the portfolio id is known.
func (s *Service) Exists(ctx context.Context, portfolioID uint) (bool, error) {
	var count int64
	if err := s.DB.WithContext(ctx).Model(&domain.Portfolio{}).
		Where("portfolio_id = ?", portfolioID).Count(&count).Error; err != nil {
		return false, domain.StorageErr(err)
	}
	return count > 0, nil
}

// Rename changes the display name, keeping per-user uniqueness.
func (s *Service) Rename(ctx context.Context, portfolioID uint, name string) (*domain.Portfolio, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, domain.Validationf("portfolio_name is required")
	}

	var portfolio domain.Portfolio
	if err := s.DB.WithContext(ctx).Where("portfolio_id = ?", portfolioID).First(&portfolio).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: portfolio %d", domain.ErrNotFound, portfolioID)
		}
		return nil, domain.StorageErr(err)
	}
	if portfolio.PortfolioName == name {
		return &portfolio, nil
	}

	var count int64
	if err := s.DB.WithContext(ctx).Model(&domain.Portfolio{}).
		Where("user_id = ? AND portfolio_name = ? AND portfolio_id <> ?", portfolio.UserID, name, portfolioID).
		Count(&count).Error; err != nil {
		return nil, domain.StorageErr(err)
	}
	if count > 0 {
		return nil, ErrNameTaken
	}

	portfolio.PortfolioName = name
	if err := s.DB.WithContext(ctx).Save(&portfolio).Error; err != nil {
		return nil, domain.StorageErr(err)
	}
	return &portfolio, nil
}

// Delete removes the portfolio together with its holdings and ledger rows
// in one transaction.
func (s *Service) Delete(ctx context.Context, portfolioID uint) error {
	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("portfolio_id = ?", portfolioID).Delete(&domain.Portfolio{})
		if res.Error != nil {
			return domain.StorageErr(res.Error)
		}
		if res.RowsAffected == 0 {
			return fmt.Errorf("%w: portfolio %d", domain.ErrNotFound, portfolioID)
		}
		if err := tx.Where("portfolio_id = ?", portfolioID).Delete(&domain.Holding{}).Error; err != nil {
			return domain.StorageErr(err)
		}
		if err := tx.Where("portfolio_id = ?", portfolioID).Delete(&domain.LedgerEntry{}).Error; err != nil {
			return domain.StorageErr(err)
		}
		return nil
	})
}
