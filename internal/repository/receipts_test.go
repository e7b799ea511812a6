package repository

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/narayan09-boop/GroceryIntelligence/internal/common"
	"github.com/narayan09-boop/GroceryIntelligence/internal/entity"
)

// testDB opens a private in-memory database. One connection only: every
// :memory: connection is its own database.
func testDB(t *testing.T) *sqlx.DB {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	db, err := Open(context.Background(), Config{DSN: ":memory:", MaxOpenConns: 1, MaxIdleConns: 1}, logger)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 12, 0, 0, 0, time.UTC)
}

func TestSaveReceiptAndListItems(t *testing.T) {
	db := testDB(t)
	repo := NewReceiptRepository(db, nil)
	ctx := context.Background()

	id, err := repo.SaveReceipt(ctx, day(2026, time.March, 10), 4.79, []entity.Item{
		{Name: "Banana", Price: 1.29, Category: "Fruits", NutritionScore: 8},
		{Name: "Milk", Price: 3.50, Category: "Dairy", NutritionScore: 6},
	})
	require.NoError(t, err)

	items, err := repo.ListItems(ctx, id)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "Banana", items[0].Name)
	assert.Equal(t, "Fruits", items[0].Category)
	assert.Equal(t, 8, items[0].NutritionScore)
	assert.Equal(t, id, items[0].ReceiptID)
	assert.Equal(t, "Milk", items[1].Name)
}

func TestSaveReceiptWithNoItems(t *testing.T) {
	db := testDB(t)
	repo := NewReceiptRepository(db, nil)
	ctx := context.Background()

	id, err := repo.SaveReceipt(ctx, day(2026, time.March, 10), 0, nil)
	require.NoError(t, err)

	items, err := repo.ListItems(ctx, id)
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestListItemsUnknownReceipt(t *testing.T) {
	db := testDB(t)
	repo := NewReceiptRepository(db, nil)

	_, err := repo.ListItems(context.Background(), uuid.New())

	require.Error(t, err)
	assert.True(t, errors.Is(err, common.ErrNotFound))
}

func TestOpenBadDSNWrapsDatabaseError(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	// sqlite cannot create intermediate directories
	dsn := filepath.Join(t.TempDir(), "missing", "sub", "grocery.db")
	_, err := Open(context.Background(), Config{DSN: dsn}, logger)

	require.Error(t, err)
	assert.True(t, errors.Is(err, common.ErrDatabase))
}

func TestListReceiptsNewestFirstWithLimit(t *testing.T) {
	db := testDB(t)
	repo := NewReceiptRepository(db, nil)
	ctx := context.Background()

	_, err := repo.SaveReceipt(ctx, day(2026, time.March, 1), 10, nil)
	require.NoError(t, err)
	_, err = repo.SaveReceipt(ctx, day(2026, time.March, 20), 30, nil)
	require.NoError(t, err)
	_, err = repo.SaveReceipt(ctx, day(2026, time.March, 10), 20, nil)
	require.NoError(t, err)

	all, err := repo.ListReceipts(ctx, 0)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.InDelta(t, 30.0, all[0].TotalAmount, 1e-9)
	assert.InDelta(t, 20.0, all[1].TotalAmount, 1e-9)
	assert.InDelta(t, 10.0, all[2].TotalAmount, 1e-9)

	limited, err := repo.ListReceipts(ctx, 2)
	require.NoError(t, err)
	assert.Len(t, limited, 2)
}

func TestListReceiptsBetween(t *testing.T) {
	db := testDB(t)
	repo := NewReceiptRepository(db, nil)
	ctx := context.Background()

	_, err := repo.SaveReceipt(ctx, day(2026, time.February, 25), 10, nil)
	require.NoError(t, err)
	_, err = repo.SaveReceipt(ctx, day(2026, time.March, 5), 20, nil)
	require.NoError(t, err)
	_, err = repo.SaveReceipt(ctx, day(2026, time.April, 1), 30, nil)
	require.NoError(t, err)

	got, err := repo.ListReceiptsBetween(ctx, day(2026, time.March, 1), day(2026, time.March, 31))
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.InDelta(t, 20.0, got[0].TotalAmount, 1e-9)
}

func TestItemsByDateRange(t *testing.T) {
	db := testDB(t)
	repo := NewReceiptRepository(db, nil)
	ctx := context.Background()

	_, err := repo.SaveReceipt(ctx, day(2026, time.March, 5), 1.29, []entity.Item{
		{Name: "Banana", Price: 1.29, Category: "Fruits", NutritionScore: 8},
	})
	require.NoError(t, err)
	_, err = repo.SaveReceipt(ctx, day(2026, time.April, 5), 3.50, []entity.Item{
		{Name: "Milk", Price: 3.50, Category: "Dairy", NutritionScore: 6},
	})
	require.NoError(t, err)

	items, err := repo.ItemsByDateRange(ctx, day(2026, time.March, 1), day(2026, time.March, 31))
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Banana", items[0].Name)
	assert.Equal(t, "2026-03-05", items[0].PurchaseDate.UTC().Format("2006-01-02"))
}

func TestSpendingByCategory(t *testing.T) {
	db := testDB(t)
	repo := NewReceiptRepository(db, nil)
	ctx := context.Background()

	_, err := repo.SaveReceipt(ctx, day(2026, time.March, 5), 8.29, []entity.Item{
		{Name: "Banana", Price: 1.29, Category: "Fruits", NutritionScore: 8},
		{Name: "Milk", Price: 3.50, Category: "Dairy", NutritionScore: 6},
		{Name: "Cheese", Price: 3.50, Category: "Dairy", NutritionScore: 5},
	})
	require.NoError(t, err)

	spend, err := repo.SpendingByCategory(ctx, nil, nil)
	require.NoError(t, err)
	require.Len(t, spend, 2)
	assert.Equal(t, "Dairy", spend[0].Category)
	assert.InDelta(t, 7.0, spend[0].TotalAmount, 1e-9)
	assert.Equal(t, "Fruits", spend[1].Category)

	from, to := day(2026, time.April, 1), day(2026, time.April, 30)
	windowed, err := repo.SpendingByCategory(ctx, &from, &to)
	require.NoError(t, err)
	assert.Empty(t, windowed)
}

func TestTotalSpending(t *testing.T) {
	db := testDB(t)
	repo := NewReceiptRepository(db, nil)
	ctx := context.Background()

	total, err := repo.TotalSpending(ctx)
	require.NoError(t, err)
	assert.Zero(t, total)

	_, err = repo.SaveReceipt(ctx, day(2026, time.March, 5), 10.50, nil)
	require.NoError(t, err)
	_, err = repo.SaveReceipt(ctx, day(2026, time.March, 6), 4.50, nil)
	require.NoError(t, err)

	total, err = repo.TotalSpending(ctx)
	require.NoError(t, err)
	assert.InDelta(t, 15.0, total, 1e-9)
}

func TestHealthCheck(t *testing.T) {
	db := testDB(t)
	assert.NoError(t, HealthCheck(context.Background(), db))
}
