package service

import (
	"fmt"
	"testing"
	"time"

	"trendkart/database"
	"trendkart/model"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("unwrap test db: %v", err)
	}
	// One connection keeps every session on the same in-memory database.
	sqlDB.SetMaxOpenConns(1)

	if err := database.Migrate(db); err != nil {
		t.Fatalf("migrate test db: %v", err)
	}
	t.Cleanup(func() { sqlDB.Close() })
	return db
}

var seedSeq int

func seedCustomer(t *testing.T, db *gorm.DB) *model.Customer {
	t.Helper()
	seedSeq++
	customer := model.Customer{
		Email:        fmt.Sprintf("customer%d@example.com", seedSeq),
		Phone:        "9999999999",
		Password:     "hashed",
		UserName:     fmt.Sprintf("customer%d", seedSeq),
		IsActive:     true,
		ReferralCode: fmt.Sprintf("REFCODE%d", seedSeq),
	}
	if err := db.Create(&customer).Error; err != nil {
		t.Fatalf("seed customer: %v", err)
	}
	return &customer
}

func seedProduct(t *testing.T, db *gorm.DB, name string, price float64, sizes map[string]int) *model.Product {
	t.Helper()
	seedSeq++
	product := model.Product{
		Name:     name,
		Slug:     fmt.Sprintf("%s-%d", name, seedSeq),
		Price:    price,
		IsActive: true,
	}
	if sizes != nil {
		raw := "{"
		first := true
		for size, n := range sizes {
			if !first {
				raw += ","
			}
			raw += fmt.Sprintf("%q:%d", size, n)
			first = false
		}
		raw += "}"
		product.Sizes = raw
	}
	if err := db.Create(&product).Error; err != nil {
		t.Fatalf("seed product: %v", err)
	}
	return &product
}

func seedDeliveryGuy(t *testing.T, db *gorm.DB, status string) *model.DeliveryGuy {
	t.Helper()
	seedSeq++
	guy := model.DeliveryGuy{
		Name:   fmt.Sprintf("rider%d", seedSeq),
		Email:  fmt.Sprintf("rider%d@example.com", seedSeq),
		Phone:  "8888888888",
		Status: status,
	}
	if err := db.Create(&guy).Error; err != nil {
		t.Fatalf("seed delivery guy: %v", err)
	}
	return &guy
}

func seedCoupon(t *testing.T, db *gorm.DB, coupon model.Coupon) *model.Coupon {
	t.Helper()
	if coupon.StartDate.IsZero() {
		coupon.StartDate = time.Now().Add(-time.Hour)
	}
	if coupon.EndDate.IsZero() {
		coupon.EndDate = time.Now().Add(24 * time.Hour)
	}
	if err := db.Create(&coupon).Error; err != nil {
		t.Fatalf("seed coupon: %v", err)
	}
	return &coupon
}

func placeOrder(t *testing.T, db *gorm.DB, customerID uint, in model.CreateOrderInput) *model.Order {
	t.Helper()
	order, err := CreateOrder(db, customerID, in)
	if err != nil {
		t.Fatalf("create order: %v", err)
	}
	return order
}

func wantKind(t *testing.T, err error, kind ErrorKind) {
	t.Helper()
	if err == nil {
		t.Fatalf("want %s error, got nil", kind)
	}
	if got := KindOf(err); got != kind {
		t.Fatalf("want %s error, got %s (%v)", kind, got, err)
	}
}

func walletBalance(t *testing.T, db *gorm.DB, customerID uint) float64 {
	t.Helper()
	wallet, err := GetWalletBalance(db, customerID)
	if err != nil {
		t.Fatalf("get wallet: %v", err)
	}
	return wallet.Balance
}

func markPaid(t *testing.T, db *gorm.DB, orderID uint) {
	t.Helper()
	err := db.Model(&model.Order{}).Where("id = ?", orderID).
		Update("payment_status", model.PaymentCompleted).Error
	if err != nil {
		t.Fatalf("mark order paid: %v", err)
	}
}
