package catalog

import (
	"context"
	"testing"

	"folio-backend/internal/domain"

	"github.com/alicebob/miniredis/v2"
	"github.com/glebarez/sqlite"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupCatalogTest(t *testing.T) (*Service, *gorm.DB, *miniredis.Miniredis) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.AutoMigrate(&domain.Sector{}, &domain.FinancialProduct{}))

	sector := domain.Sector{SectorName: "Technology"}
	require.NoError(t, db.Create(&sector).Error)
	products := []domain.FinancialProduct{
		{ProductName: "Apple Inc.", Ticker: "AAPL", SectorID: sector.SectorID},
		{ProductName: "Microsoft Corp.", Ticker: "MSFT", SectorID: sector.SectorID},
		{ProductName: "Applied Materials", Ticker: "AMAT", SectorID: sector.SectorID},
	}
	require.NoError(t, db.Create(&products).Error)

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})

	return &Service{DB: db, Rdb: rdb}, db, mr
}

func TestSearchProducts_CaseInsensitiveName(t *testing.T) {
	svc, _, _ := setupCatalogTest(t)

	products, err := svc.SearchProducts(context.Background(), "appl")
	require.NoError(t, err)
	require.Len(t, products, 2)
	assert.Equal(t, "AAPL", products[0].Ticker)
	assert.Equal(t, "AMAT", products[1].Ticker)
}

func TestSearchProducts_MatchesTicker(t *testing.T) {
	svc, _, _ := setupCatalogTest(t)

	products, err := svc.SearchProducts(context.Background(), "msft")
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, "Microsoft Corp.", products[0].ProductName)
}

func TestSearchProducts_EmptyQuery(t *testing.T) {
	svc, _, _ := setupCatalogTest(t)

	_, err := svc.SearchProducts(context.Background(), "   ")
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestSearchProducts_ServesFromCache(t *testing.T) {
	svc, db, mr := setupCatalogTest(t)
	ctx := context.Background()

	products, err := svc.SearchProducts(ctx, "Apple")
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.True(t, mr.Exists("product_search:apple"))

	// Remove the row; a cache hit must still answer.
	require.NoError(t, db.Where("ticker = ?", "AAPL").Delete(&domain.FinancialProduct{}).Error)
	products, err = svc.SearchProducts(ctx, "Apple")
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, "AAPL", products[0].Ticker)

	// Expired cache falls back to the database.
	mr.FastForward(cacheTTL + 1)
	products, err = svc.SearchProducts(ctx, "Apple")
	require.NoError(t, err)
	assert.Len(t, products, 0)
}

func TestSearchProducts_NoCacheClient(t *testing.T) {
	svc, _, _ := setupCatalogTest(t)
	svc.Rdb = nil

	products, err := svc.SearchProducts(context.Background(), "Apple")
	require.NoError(t, err)
	assert.Len(t, products, 1)
}
