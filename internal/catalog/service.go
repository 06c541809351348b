package catalog

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"folio-backend/internal/domain"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

const cacheTTL = 5 * time.Minute

// Service looks up the product catalog. Rdb is an optional read-through
// cache for search results; cache failures degrade to the database.
type Service struct {
	DB  *gorm.DB
	Rdb *redis.Client
}

// SearchProducts matches the query case-insensitively against product name
// or ticker as a substring. A blank query is rejected.
func (s *Service) SearchProducts(ctx context.Context, query string) ([]domain.FinancialProduct, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, domain.Validationf("search query must not be empty")
	}
	key := "product_search:" + strings.ToLower(query)

	if s.Rdb != nil {
		if cached, err := s.Rdb.Get(ctx, key).Result(); err == nil {
			var products []domain.FinancialProduct
			if err := json.Unmarshal([]byte(cached), &products); err == nil {
				return products, nil
			}
		}
	}

	pattern := "%" + strings.ToLower(query) + "%"
	var products []domain.FinancialProduct
	if err := s.DB.WithContext(ctx).
		Where("LOWER(product_name) LIKE ? OR LOWER(ticker) LIKE ?", pattern, pattern).
		Order("financial_product_id ASC").
		Find(&products).Error; err != nil {
		return nil, domain.StorageErr(err)
	}

	if s.Rdb != nil {
		if payload, err := json.Marshal(products); err == nil {
			if err := s.Rdb.Set(ctx, key, payload, cacheTTL).Err(); err != nil {
				log.Debug().Err(err).Str("key", key).Msg("product search cache write failed")
			}
		}
	}
	return products, nil
}
