package cartControllers

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/4vald/Shop-Project-EKEB/catalog"
	"github.com/4vald/Shop-Project-EKEB/models"
	"github.com/4vald/Shop-Project-EKEB/pricing"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Profile{},
		&models.Category{},
		&models.Product{},
		&models.Sale{},
		&models.CartItem{},
		&models.Order{},
		&models.OrderItem{},
		&models.Review{},
	))
	return db
}

func createProduct(t *testing.T, db *gorm.DB, slug, price string) models.Product {
	t.Helper()
	p := models.Product{
		Title: "Product " + slug,
		Slug:  slug,
		Price: decimal.RequireFromString(price),
		Stock: 10,
	}
	require.NoError(t, db.Create(&p).Error)
	return p
}

func countItems(t *testing.T, db *gorm.DB, owner models.CartOwner) int64 {
	t.Helper()
	var n int64
	require.NoError(t, owner.Scope(db.Model(&models.CartItem{})).Count(&n).Error)
	return n
}

func TestAddItemCreatesThenSums(t *testing.T) {
	db := newTestDB(t)
	p := createProduct(t, db, "mug", "12.50")
	owner := models.UserOwner(1)

	item, err := AddItem(db, owner, p.ID, 2)
	require.NoError(t, err)
	assert.Equal(t, 2, item.Quantity)

	// Same product again: one row, summed quantity.
	item, err = AddItem(db, owner, p.ID, 3)
	require.NoError(t, err)
	assert.Equal(t, 5, item.Quantity)
	assert.EqualValues(t, 1, countItems(t, db, owner))
}

func TestAddItemQuantityFallsBackToOne(t *testing.T) {
	db := newTestDB(t)
	p := createProduct(t, db, "mug", "12.50")

	item, err := AddItem(db, models.UserOwner(1), p.ID, 0)
	require.NoError(t, err)
	assert.Equal(t, 1, item.Quantity)
}

func TestAddItemUnknownProduct(t *testing.T) {
	db := newTestDB(t)
	_, err := AddItem(db, models.UserOwner(1), 999, 1)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestOwnersDoNotShareCarts(t *testing.T) {
	db := newTestDB(t)
	p := createProduct(t, db, "mug", "12.50")

	user := models.UserOwner(1)
	guest := models.GuestOwner("guest_abc")

	_, err := AddItem(db, user, p.ID, 1)
	require.NoError(t, err)
	_, err = AddItem(db, guest, p.ID, 4)
	require.NoError(t, err)

	assert.EqualValues(t, 1, countItems(t, db, user))
	assert.EqualValues(t, 1, countItems(t, db, guest))

	items, err := Items(db, guest)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, 4, items[0].Quantity)
}

func TestSetQuantityOverwrites(t *testing.T) {
	db := newTestDB(t)
	p := createProduct(t, db, "mug", "12.50")
	owner := models.UserOwner(1)

	item, err := AddItem(db, owner, p.ID, 2)
	require.NoError(t, err)

	updated, err := SetQuantity(db, owner, item.ID, 7)
	require.NoError(t, err)
	assert.Equal(t, 7, updated.Quantity)
}

func TestSetQuantityZeroDeletes(t *testing.T) {
	db := newTestDB(t)
	p := createProduct(t, db, "mug", "12.50")
	owner := models.UserOwner(1)

	item, err := AddItem(db, owner, p.ID, 2)
	require.NoError(t, err)
	before := countItems(t, db, owner)

	deleted, err := SetQuantity(db, owner, item.ID, 0)
	require.NoError(t, err)
	assert.Nil(t, deleted)
	assert.Equal(t, before-1, countItems(t, db, owner))
}

func TestSetQuantityUnknownItem(t *testing.T) {
	db := newTestDB(t)
	_, err := SetQuantity(db, models.UserOwner(1), 42, 3)
	assert.ErrorIs(t, err, ErrItemNotFound)
}

func TestSetQuantityOtherOwnersItem(t *testing.T) {
	db := newTestDB(t)
	p := createProduct(t, db, "mug", "12.50")

	item, err := AddItem(db, models.UserOwner(1), p.ID, 2)
	require.NoError(t, err)

	_, err = SetQuantity(db, models.UserOwner(2), item.ID, 5)
	assert.ErrorIs(t, err, ErrItemNotFound)
}

func TestRemoveItemIsIdempotent(t *testing.T) {
	db := newTestDB(t)
	p := createProduct(t, db, "mug", "12.50")
	owner := models.UserOwner(1)

	item, err := AddItem(db, owner, p.ID, 1)
	require.NoError(t, err)

	require.NoError(t, RemoveItem(db, owner, item.ID))
	assert.EqualValues(t, 0, countItems(t, db, owner))

	// Removing again is fine.
	require.NoError(t, RemoveItem(db, owner, item.ID))
}

func TestClearEmptiesOnlyThatCart(t *testing.T) {
	db := newTestDB(t)
	p1 := createProduct(t, db, "mug", "12.50")
	p2 := createProduct(t, db, "tee", "30.00")

	user := models.UserOwner(1)
	other := models.UserOwner(2)
	_, err := AddItem(db, user, p1.ID, 1)
	require.NoError(t, err)
	_, err = AddItem(db, user, p2.ID, 1)
	require.NoError(t, err)
	_, err = AddItem(db, other, p1.ID, 1)
	require.NoError(t, err)

	require.NoError(t, Clear(db, user))
	assert.EqualValues(t, 0, countItems(t, db, user))
	assert.EqualValues(t, 1, countItems(t, db, other))
}

func TestCartTotalUsesDiscountedPrices(t *testing.T) {
	db := newTestDB(t)
	p := createProduct(t, db, "lamp", "1000")
	sale := models.Sale{Title: "Autumn", DiscountPercent: 20}
	require.NoError(t, db.Create(&sale).Error)
	require.NoError(t, db.Model(&sale).Association("Products").Append(&p))

	owner := models.UserOwner(1)
	_, err := AddItem(db, owner, p.ID, 2)
	require.NoError(t, err)

	items, err := Items(db, owner)
	require.NoError(t, err)

	quote := pricing.QuoteCart(items, catalog.SalePolicyFirst)
	assert.Equal(t, "1600", quote.Total.String())
	assert.Equal(t, "2000", quote.OriginalTotal.String())
}
