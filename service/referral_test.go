package service

import (
	"testing"

	"trendkart/constants"
	"trendkart/model"

	"gorm.io/gorm"
)

func TestGenerateReferralCodeIsUnique(t *testing.T) {
	db := newTestDB(t)

	seen := map[string]bool{}
	for i := 0; i < 5; i++ {
		code, err := GenerateReferralCode(db)
		if err != nil {
			t.Fatalf("generate: %v", err)
		}
		if len(code) != 8 {
			t.Fatalf("code %q has wrong length", code)
		}
		if seen[code] {
			t.Fatalf("duplicate code %q", code)
		}
		seen[code] = true
	}
}

func TestReferralSignupRewardsBothWallets(t *testing.T) {
	db := newTestDB(t)
	referrer := seedCustomer(t, db)
	joiner := seedCustomer(t, db)

	err := db.Transaction(func(tx *gorm.DB) error {
		return ProcessReferralSignup(tx, joiner, referrer.ReferralCode)
	})
	if err != nil {
		t.Fatalf("process signup: %v", err)
	}

	reward := constants.REFERRAL_REWARD_AMOUNT
	if got := walletBalance(t, db, referrer.ID); got != reward {
		t.Fatalf("referrer balance = %v, want %v", got, reward)
	}
	if got := walletBalance(t, db, joiner.ID); got != reward {
		t.Fatalf("joiner balance = %v, want %v", got, reward)
	}

	var reloaded model.Customer
	if err := db.First(&reloaded, referrer.ID).Error; err != nil {
		t.Fatalf("reload referrer: %v", err)
	}
	if reloaded.ReferralCount != 1 {
		t.Fatalf("referral count = %d, want 1", reloaded.ReferralCount)
	}
	if reloaded.TotalReferralEarnings != reward {
		t.Fatalf("earnings = %v, want %v", reloaded.TotalReferralEarnings, reward)
	}

	var joined model.Customer
	if err := db.First(&joined, joiner.ID).Error; err != nil {
		t.Fatalf("reload joiner: %v", err)
	}
	if joined.ReferredByID == nil || *joined.ReferredByID != referrer.ID {
		t.Fatalf("referred_by not set: %v", joined.ReferredByID)
	}
}

func TestReferralSignupWithEmptyCodeIsNoop(t *testing.T) {
	db := newTestDB(t)
	joiner := seedCustomer(t, db)

	err := db.Transaction(func(tx *gorm.DB) error {
		return ProcessReferralSignup(tx, joiner, "")
	})
	if err != nil {
		t.Fatalf("empty code: %v", err)
	}
	if got := walletBalance(t, db, joiner.ID); got != 0 {
		t.Fatalf("empty code credited wallet: %v", got)
	}
}

func TestReferralSignupRejectsUnknownAndSelfCodes(t *testing.T) {
	db := newTestDB(t)
	customer := seedCustomer(t, db)

	err := db.Transaction(func(tx *gorm.DB) error {
		return ProcessReferralSignup(tx, customer, "NOSUCHCODE")
	})
	wantKind(t, err, KindNotFound)

	err = db.Transaction(func(tx *gorm.DB) error {
		return ProcessReferralSignup(tx, customer, customer.ReferralCode)
	})
	wantKind(t, err, KindValidation)
}

func TestGetReferralStats(t *testing.T) {
	db := newTestDB(t)
	customer := seedCustomer(t, db)

	stats, err := GetReferralStats(db, customer.ID)
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if stats.ReferralCode != customer.ReferralCode {
		t.Fatalf("code = %s, want %s", stats.ReferralCode, customer.ReferralCode)
	}
	if stats.RewardPerReferral != constants.REFERRAL_REWARD_AMOUNT {
		t.Fatalf("reward = %v", stats.RewardPerReferral)
	}
}
