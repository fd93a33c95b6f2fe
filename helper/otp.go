package helper

import (
	"crypto/rand"
	"log"
	"math/big"
	"time"

	"trendkart/database"
	"trendkart/model"

	"github.com/robfig/cron/v3"
)

const otpTTL = 10 * time.Minute

var otpScheduler *cron.Cron

// GenerateOTP issues a fresh 6-digit code for the email and invalidates any
// previous unused codes.
func GenerateOTP(email string) (*model.OTP, error) {
	db := database.DB

	code := ""
	for i := 0; i < 6; i++ {
		n, err := rand.Int(rand.Reader, big.NewInt(10))
		if err != nil {
			return nil, err
		}
		code += n.String()
	}

	err := db.Model(&model.OTP{}).
		Where("email = ? AND used = ?", email, false).
		Update("used", true).Error
	if err != nil {
		return nil, err
	}

	otp := model.OTP{
		Email:     email,
		Code:      code,
		ExpiresAt: time.Now().Add(otpTTL),
	}
	if err := db.Create(&otp).Error; err != nil {
		return nil, err
	}
	return &otp, nil
}

// VerifyOTP consumes a code. A code can be used once, before its expiry.
func VerifyOTP(email, code string) bool {
	db := database.DB

	var otp model.OTP
	err := db.Where("email = ? AND code = ? AND used = ? AND expires_at > ?",
		email, code, false, time.Now()).First(&otp).Error
	if err != nil {
		return false
	}
	if err := db.Model(&otp).Update("used", true).Error; err != nil {
		return false
	}
	return true
}

func StartOTPScheduler() {
	otpScheduler = cron.New(cron.WithChain(
		cron.SkipIfStillRunning(cron.DefaultLogger),
	))

	_, err := otpScheduler.AddFunc("*/15 * * * *", cleanupExpiredOTPs)
	if err != nil {
		log.Printf("failed to start OTP scheduler: %v", err)
		return
	}

	otpScheduler.Start()
	log.Println("OTP cleanup scheduler started (every 15 minutes)")
}

func cleanupExpiredOTPs() {
	result := database.DB.
		Where("expires_at < ? OR used = ?", time.Now(), true).
		Delete(&model.OTP{})

	if result.Error != nil {
		log.Printf("failed to clean up OTPs: %v", result.Error)
		return
	}
	if result.RowsAffected > 0 {
		log.Printf("removed %d stale OTP rows", result.RowsAffected)
	}
}

func StopOTPScheduler() {
	if otpScheduler != nil {
		otpScheduler.Stop()
	}
}
