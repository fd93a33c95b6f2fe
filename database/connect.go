package database

import (
	"fmt"
	"strconv"

	"trendkart/config"
	"trendkart/model"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func ConnectDB() {
	var err error
	p := config.Config("DB_PORT")
	port, err := strconv.ParseUint(p, 10, 32)

	if err != nil {
		panic("failed to parse database port")
	}

	dsn := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=disable", config.Config("DB_HOST"), port, config.Config("DB_USER"), config.Config("DB_PASSWORD"), config.Config("DB_NAME"))
	DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{})

	if err != nil {
		panic("failed to connect database")
	}

	fmt.Println("Connection Opened to Database")
	if err := Migrate(DB); err != nil {
		panic("failed to migrate database")
	}
	fmt.Println("Database Migrated")

	SeedData(DB)
}

// Migrate creates or updates the schema. Shared with the test setup, which
// runs it against an in-memory database.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.Admin{},
		&model.Customer{},
		&model.Product{},
		&model.CartItem{},
		&model.Wishlist{},
		&model.Order{},
		&model.OrderItem{},
		&model.Wallet{},
		&model.WalletTransaction{},
		&model.Transaction{},
		&model.Coupon{},
		&model.Exchange{},
		&model.DeliveryGuy{},
		&model.OTP{},
	)
}
