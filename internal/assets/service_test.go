package assets

import (
	"context"
	"testing"
	"time"

	"folio-backend/internal/domain"
	"folio-backend/internal/trades"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupAssetsTest(t *testing.T) (*Service, *gorm.DB, uint) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.AutoMigrate(
		&domain.User{}, &domain.Portfolio{}, &domain.Sector{},
		&domain.FinancialProduct{}, &domain.Holding{}, &domain.LedgerEntry{},
	))

	user := domain.User{Name: "Bob", Email: "bob@example.com", Password: "x"}
	require.NoError(t, db.Create(&user).Error)
	portfolio := domain.Portfolio{PortfolioName: "retirement", UserID: user.UID}
	require.NoError(t, db.Create(&portfolio).Error)

	return &Service{DB: db}, db, portfolio.PortfolioID
}

func seedProduct(t *testing.T, db *gorm.DB, name, ticker string) uint {
	sector := domain.Sector{SectorName: "Sector " + ticker}
	require.NoError(t, db.Create(&sector).Error)
	product := domain.FinancialProduct{ProductName: name, Ticker: ticker, SectorID: sector.SectorID}
	require.NoError(t, db.Create(&product).Error)
	return product.ProductID
}

func seedHolding(t *testing.T, db *gorm.DB, portfolioID, productID uint, price, quantity int64) {
	require.NoError(t, db.Create(&domain.Holding{
		PortfolioID:  portfolioID,
		ProductID:    productID,
		CurrencyCode: "USD",
		AveragePrice: decimal.NewFromInt(price),
		Quantity:     decimal.NewFromInt(quantity),
		Version:      1,
	}).Error)
}

func TestListHoldings_EnrichesWithProduct(t *testing.T) {
	svc, db, pid := setupAssetsTest(t)
	apple := seedProduct(t, db, "Apple Inc.", "AAPL")
	seedHolding(t, db, pid, apple, 150, 10)

	items, total, err := svc.ListHoldings(context.Background(), pid, 1, 10)
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, items, 1)
	assert.Equal(t, "Apple Inc.", items[0].Product.ProductName)
	assert.Equal(t, "AAPL", items[0].Product.Ticker)
	assert.True(t, items[0].AveragePrice.Equal(decimal.NewFromInt(150)))
}

func TestListHoldings_Pagination(t *testing.T) {
	svc, db, pid := setupAssetsTest(t)
	for i := 0; i < 5; i++ {
		productID := seedProduct(t, db, "Product", "TK"+string(rune('A'+i)))
		seedHolding(t, db, pid, productID, 10, 1)
	}

	items, total, err := svc.ListHoldings(context.Background(), pid, 2, 2)
	require.NoError(t, err)
	assert.EqualValues(t, 5, total)
	assert.Len(t, items, 2)

	items, total, err = svc.ListHoldings(context.Background(), pid, 3, 2)
	require.NoError(t, err)
	assert.EqualValues(t, 5, total)
	assert.Len(t, items, 1, "last page carries the remainder")
}

func TestListHoldings_PaginationBounds(t *testing.T) {
	svc, _, pid := setupAssetsTest(t)
	ctx := context.Background()

	_, _, err := svc.ListHoldings(ctx, pid, 0, 10)
	assert.ErrorIs(t, err, domain.ErrValidation)
	_, _, err = svc.ListHoldings(ctx, pid, 1, 0)
	assert.ErrorIs(t, err, domain.ErrValidation)
	_, _, err = svc.ListHoldings(ctx, pid, 1, 101)
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestListHoldings_UnknownPortfolio(t *testing.T) {
	svc, _, _ := setupAssetsTest(t)

	_, _, err := svc.ListHoldings(context.Background(), 9999, 1, 10)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// A position sold down to zero disappears from the listing.
func TestListHoldings_ExcludesClosedPositions(t *testing.T) {
	svc, db, pid := setupAssetsTest(t)
	apple := seedProduct(t, db, "Apple Inc.", "AAPL")
	msft := seedProduct(t, db, "Microsoft Corp.", "MSFT")

	r := &trades.Reconciler{DB: db}
	ctx := context.Background()
	buy := func(productID uint, price, qty int64) {
		_, err := r.ApplyTrade(ctx, trades.TradeRequest{
			PortfolioID: pid, ProductID: productID, Side: domain.SideBuy,
			Price: decimal.NewFromInt(price), Quantity: decimal.NewFromInt(qty),
			CurrencyCode: "USD", ExecutedAt: time.Now().UTC(),
		})
		require.NoError(t, err)
	}
	buy(apple, 100, 10)
	buy(msft, 200, 5)

	_, err := r.ApplyTrade(ctx, trades.TradeRequest{
		PortfolioID: pid, ProductID: apple, Side: domain.SideSell,
		Price: decimal.NewFromInt(110), Quantity: decimal.NewFromInt(10),
		CurrencyCode: "USD", ExecutedAt: time.Now().UTC(),
	})
	require.NoError(t, err)

	items, total, err := svc.ListHoldings(ctx, pid, 1, 10)
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, items, 1)
	assert.Equal(t, "MSFT", items[0].Product.Ticker)
}
