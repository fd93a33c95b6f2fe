package database

import (
	"log"
	"time"

	"trendkart/constants"
	"trendkart/model"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func SeedData(db *gorm.DB) {
	bytes, err := bcrypt.GenerateFromPassword([]byte("changeme123"), 10)
	hashPassword := string(bytes)
	if err != nil {
		log.Println("failed to hash seed password:", err)
		return
	}

	admins := []model.Admin{
		{Username: "administrator", Password: hashPassword, Email: "admin@trendkart.local", Active: true, Role: constants.ROLE_ADMIN},
	}
	for _, admin := range admins {
		if err := db.Where(model.Admin{Username: admin.Username}).FirstOrCreate(&admin).Error; err != nil {
			log.Println("failed to seed admin:", admin.Username, "error:", err)
		}
	}

	now := time.Now()
	coupons := []model.Coupon{
		{
			Code:           "WELCOME10",
			Description:    "10% off the first order",
			DiscountType:   model.DiscountPercentage,
			DiscountValue:  10,
			StartDate:      now,
			EndDate:        now.AddDate(1, 0, 0),
			IsActive:       true,
			MinOrderAmount: 500,
			TargetType:     model.TargetAll,
		},
	}
	for _, coupon := range coupons {
		if err := db.Where(model.Coupon{Code: coupon.Code}).FirstOrCreate(&coupon).Error; err != nil {
			log.Println("failed to seed coupon:", coupon.Code, "error:", err)
		}
	}
}
