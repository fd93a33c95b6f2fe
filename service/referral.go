package service

import (
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"strings"

	"trendkart/constants"
	"trendkart/model"

	"gorm.io/gorm"
)

const referralCodeAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

// GenerateReferralCode builds a unique 8-character code for a new customer.
func GenerateReferralCode(db *gorm.DB) (string, error) {
	for attempt := 0; attempt < 10; attempt++ {
		var b strings.Builder
		for i := 0; i < 8; i++ {
			n, err := rand.Int(rand.Reader, big.NewInt(int64(len(referralCodeAlphabet))))
			if err != nil {
				return "", ErrStorage(err)
			}
			b.WriteByte(referralCodeAlphabet[n.Int64()])
		}
		code := b.String()

		var count int64
		if err := db.Model(&model.Customer{}).Where("referral_code = ?", code).Count(&count).Error; err != nil {
			return "", ErrStorage(err)
		}
		if count == 0 {
			return code, nil
		}
	}
	return "", ErrStorage(errors.New("could not generate a unique referral code"))
}

// ProcessReferralSignup links a freshly registered customer to the referrer
// behind the code and pays the signup reward into both wallets. Runs inside
// the caller's registration transaction so a bad code rolls the signup back
// together with the rewards.
func ProcessReferralSignup(tx *gorm.DB, newCustomer *model.Customer, referralCode string) error {
	referralCode = strings.ToUpper(strings.TrimSpace(referralCode))
	if referralCode == "" {
		return nil
	}

	var referrer model.Customer
	if err := tx.Where("referral_code = ?", referralCode).First(&referrer).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound("referral code %s not found", referralCode)
		}
		return ErrStorage(err)
	}
	if referrer.ID == newCustomer.ID {
		return ErrValidation("a customer cannot refer themselves")
	}

	if err := tx.Model(newCustomer).Update("referred_by_id", referrer.ID).Error; err != nil {
		return ErrStorage(err)
	}
	newCustomer.ReferredByID = &referrer.ID

	reward := constants.REFERRAL_REWARD_AMOUNT
	ref := fmt.Sprintf("REF-%d", newCustomer.ID)

	if _, err := applyWalletCredit(tx, referrer.ID, reward, model.TransactionCredit,
		fmt.Sprintf("Referral reward for inviting %s", newCustomer.UserName), ref); err != nil {
		return err
	}
	if _, err := applyWalletCredit(tx, newCustomer.ID, reward, model.TransactionCredit,
		"Welcome reward for joining with a referral code", ref); err != nil {
		return err
	}

	err := tx.Model(&referrer).Updates(map[string]any{
		"referral_count":          gorm.Expr("referral_count + 1"),
		"total_referral_earnings": gorm.Expr("total_referral_earnings + ?", reward),
	}).Error
	if err != nil {
		return ErrStorage(err)
	}
	return nil
}

// ReferralStats is the customer-facing summary of their referral program.
type ReferralStats struct {
	ReferralCode          string  `json:"referralCode"`
	ReferralCount         int     `json:"referralCount"`
	TotalReferralEarnings float64 `json:"totalReferralEarnings"`
	RewardPerReferral     float64 `json:"rewardPerReferral"`
}

// GetReferralStats returns a customer's referral code and earnings.
func GetReferralStats(db *gorm.DB, customerID uint) (*ReferralStats, error) {
	var customer model.Customer
	if err := db.First(&customer, customerID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound("customer %d not found", customerID)
		}
		return nil, ErrStorage(err)
	}
	return &ReferralStats{
		ReferralCode:          customer.ReferralCode,
		ReferralCount:         customer.ReferralCount,
		TotalReferralEarnings: customer.TotalReferralEarnings,
		RewardPerReferral:     constants.REFERRAL_REWARD_AMOUNT,
	}, nil
}
