package orderControllers

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/4vald/Shop-Project-EKEB/catalog"
	cartControllers "github.com/4vald/Shop-Project-EKEB/controllers/cart"
	"github.com/4vald/Shop-Project-EKEB/models"
	"github.com/4vald/Shop-Project-EKEB/pkg/session"
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

func createUser(t *testing.T, db *gorm.DB, username string) models.User {
	t.Helper()
	u := models.User{Username: username, Email: username + "@example.com", PasswordHash: "x"}
	require.NoError(t, db.Create(&u).Error)
	return u
}

func createProductOnSale(t *testing.T, db *gorm.DB, slug, price string, discount int) models.Product {
	t.Helper()
	p := models.Product{Title: "Product " + slug, Slug: slug, Price: decimal.RequireFromString(price), Stock: 10}
	require.NoError(t, db.Create(&p).Error)
	if discount > 0 {
		sale := models.Sale{Title: "Sale on " + slug, DiscountPercent: discount}
		require.NoError(t, db.Create(&sale).Error)
		require.NoError(t, db.Model(&sale).Association("Products").Append(&p))
	}
	return p
}

func validCheckout() CheckoutRequest {
	return CheckoutRequest{FullName: "Ivan Petrov", Address: "Lenina 1, Kazan", Phone: "+7 900 000-00-00"}
}

func countOrders(t *testing.T, db *gorm.DB) int64 {
	t.Helper()
	var n int64
	require.NoError(t, db.Model(&models.Order{}).Count(&n).Error)
	return n
}

func TestCheckoutFreezesPricesAndClearsCart(t *testing.T) {
	db := newTestDB(t)
	user := createUser(t, db, "ivan")
	p := createProductOnSale(t, db, "lamp", "1000", 20)

	_, err := cartControllers.AddItem(db, models.UserOwner(user.ID), p.ID, 2)
	require.NoError(t, err)

	order, err := Checkout(db, user.ID, validCheckout(), catalog.SalePolicyFirst)
	require.NoError(t, err)

	assert.Equal(t, models.OrderStatusProcessing, order.Status)
	assert.Equal(t, "1600", order.Total.String())
	require.Len(t, order.Items, 1)

	item := order.Items[0]
	assert.Equal(t, "800", item.Price.String())
	assert.Equal(t, "1000", item.OriginalPrice.String())
	assert.Equal(t, 20, item.DiscountPercent)
	assert.Equal(t, 2, item.Quantity)

	// Cart is gone.
	items, err := cartControllers.Items(db, models.UserOwner(user.ID))
	require.NoError(t, err)
	assert.Empty(t, items)

	// The persisted row matches what was returned.
	var stored models.Order
	require.NoError(t, db.Preload("Items").First(&stored, order.ID).Error)
	assert.Equal(t, models.OrderStatusProcessing, stored.Status)
	assert.Equal(t, order.Total.String(), stored.Total.String())
}

func TestCheckoutTotalEqualsItemSubtotals(t *testing.T) {
	db := newTestDB(t)
	user := createUser(t, db, "ivan")
	owner := models.UserOwner(user.ID)

	p1 := createProductOnSale(t, db, "mug", "12.50", 0)
	p2 := createProductOnSale(t, db, "tee", "30.00", 25)
	_, err := cartControllers.AddItem(db, owner, p1.ID, 3)
	require.NoError(t, err)
	_, err = cartControllers.AddItem(db, owner, p2.ID, 1)
	require.NoError(t, err)

	order, err := Checkout(db, user.ID, validCheckout(), catalog.SalePolicyFirst)
	require.NoError(t, err)
	require.Len(t, order.Items, 2)

	sum := decimal.Zero
	for _, item := range order.Items {
		sum = sum.Add(item.Subtotal())
	}
	assert.True(t, order.Total.Equal(sum), "total %s != sum %s", order.Total, sum)
}

func TestCheckoutSnapshotSurvivesCatalogEdits(t *testing.T) {
	db := newTestDB(t)
	user := createUser(t, db, "ivan")
	p := createProductOnSale(t, db, "lamp", "1000", 20)

	_, err := cartControllers.AddItem(db, models.UserOwner(user.ID), p.ID, 1)
	require.NoError(t, err)
	order, err := Checkout(db, user.ID, validCheckout(), catalog.SalePolicyFirst)
	require.NoError(t, err)

	// Reprice the product and drop the promotion after the fact.
	require.NoError(t, db.Model(&models.Product{}).Where("id = ?", p.ID).
		Update("price", decimal.RequireFromString("9999")).Error)

	var stored models.Order
	require.NoError(t, db.Preload("Items").First(&stored, order.ID).Error)
	assert.Equal(t, "800", stored.Items[0].Price.String())
	assert.Equal(t, "1000", stored.Items[0].OriginalPrice.String())
}

func TestCheckoutEmptyCart(t *testing.T) {
	db := newTestDB(t)
	user := createUser(t, db, "ivan")

	_, err := Checkout(db, user.ID, validCheckout(), catalog.SalePolicyFirst)
	assert.ErrorIs(t, err, ErrEmptyCart)
	assert.EqualValues(t, 0, countOrders(t, db))
}

func TestCheckoutBlankFieldsLeaveCartUntouched(t *testing.T) {
	db := newTestDB(t)
	user := createUser(t, db, "ivan")
	p := createProductOnSale(t, db, "lamp", "1000", 0)
	owner := models.UserOwner(user.ID)

	_, err := cartControllers.AddItem(db, owner, p.ID, 1)
	require.NoError(t, err)

	for _, req := range []CheckoutRequest{
		{FullName: "", Address: "a", Phone: "p"},
		{FullName: "  ", Address: "a", Phone: "p"},
		{FullName: "n", Address: "\t", Phone: "p"},
		{FullName: "n", Address: "a", Phone: "   "},
	} {
		_, err := Checkout(db, user.ID, req, catalog.SalePolicyFirst)
		assert.ErrorIs(t, err, ErrMissingFields)
	}

	assert.EqualValues(t, 0, countOrders(t, db))
	items, err := cartControllers.Items(db, owner)
	require.NoError(t, err)
	assert.Len(t, items, 1)
}

func TestConfirmPaymentIsIdempotent(t *testing.T) {
	db := newTestDB(t)
	user := createUser(t, db, "ivan")
	p := createProductOnSale(t, db, "lamp", "1000", 0)

	_, err := cartControllers.AddItem(db, models.UserOwner(user.ID), p.ID, 1)
	require.NoError(t, err)
	order, err := Checkout(db, user.ID, validCheckout(), catalog.SalePolicyFirst)
	require.NoError(t, err)

	confirmed, err := ConfirmPayment(db, order.ID)
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusPaid, confirmed.Status)

	// A second confirmation changes nothing and raises nothing.
	confirmed, err = ConfirmPayment(db, order.ID)
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusPaid, confirmed.Status)
}

func TestConfirmPaymentUndefinedFromNew(t *testing.T) {
	db := newTestDB(t)
	order := models.Order{OrderRef: "ref-1", FullName: "n", Address: "a", Phone: "p", Status: models.OrderStatusNew, Total: decimal.Zero}
	require.NoError(t, db.Create(&order).Error)

	_, err := ConfirmPayment(db, order.ID)
	assert.ErrorIs(t, err, models.ErrInvalidTransition)
}

func TestConfirmPaymentUnknownOrder(t *testing.T) {
	db := newTestDB(t)
	_, err := ConfirmPayment(db, 12345)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestLastOrderSessionRoundTrip(t *testing.T) {
	store := session.NewMemoryStore()
	owner := models.UserOwner(7)

	_, found, err := store.LastOrder(context.Background(), owner.Key())
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, store.SetLastOrder(context.Background(), owner.Key(), 42))
	id, found, err := store.LastOrder(context.Background(), owner.Key())
	require.NoError(t, err)
	assert.True(t, found)
	assert.EqualValues(t, 42, id)
}
