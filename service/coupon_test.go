package service

import (
	"testing"
	"time"

	"trendkart/model"
)

func cartOf(product *model.Product, quantity int) model.ValidateCouponInput {
	return model.ValidateCouponInput{
		Code: "TESTCODE",
		Items: []model.CreateOrderItemInput{
			{ProductID: product.ID, Quantity: quantity, Size: "M"},
		},
	}
}

func TestPercentageDiscountCappedByMaxAmount(t *testing.T) {
	db := newTestDB(t)
	product := seedProduct(t, db, "jacket", 10000, map[string]int{"M": 10})
	maxDiscount := 100.0
	seedCoupon(t, db, model.Coupon{
		Code:              "TESTCODE",
		DiscountType:      model.DiscountPercentage,
		DiscountValue:     10,
		IsActive:          true,
		MaxDiscountAmount: &maxDiscount,
		TargetType:        model.TargetAll,
	})

	// 10% of 50000 would be 5000; the cap wins.
	quote, err := ValidateCoupon(db, cartOf(product, 5))
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if quote.DiscountAmount != 100 {
		t.Fatalf("discount = %v, want 100", quote.DiscountAmount)
	}
	if quote.Subtotal != 50000 {
		t.Fatalf("subtotal = %v, want 50000", quote.Subtotal)
	}
}

func TestFixedDiscountCappedByEligibleSubtotal(t *testing.T) {
	db := newTestDB(t)
	product := seedProduct(t, db, "socks", 80, map[string]int{"M": 10})
	seedCoupon(t, db, model.Coupon{
		Code:          "TESTCODE",
		DiscountType:  model.DiscountFixed,
		DiscountValue: 500,
		IsActive:      true,
		TargetType:    model.TargetAll,
	})

	quote, err := ValidateCoupon(db, cartOf(product, 1))
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if quote.DiscountAmount != 80 {
		t.Fatalf("discount = %v, want 80 (capped by subtotal)", quote.DiscountAmount)
	}
}

func TestCouponRejectedWhenInactive(t *testing.T) {
	db := newTestDB(t)
	product := seedProduct(t, db, "shirt", 400, map[string]int{"M": 10})
	seedCoupon(t, db, model.Coupon{
		Code:          "TESTCODE",
		DiscountType:  model.DiscountFixed,
		DiscountValue: 50,
		IsActive:      false,
		TargetType:    model.TargetAll,
	})

	_, err := ValidateCoupon(db, cartOf(product, 1))
	wantKind(t, err, KindValidation)
}

func TestCouponRejectedOutsideWindow(t *testing.T) {
	db := newTestDB(t)
	product := seedProduct(t, db, "shirt", 400, map[string]int{"M": 10})
	seedCoupon(t, db, model.Coupon{
		Code:          "TESTCODE",
		DiscountType:  model.DiscountFixed,
		DiscountValue: 50,
		IsActive:      true,
		TargetType:    model.TargetAll,
		StartDate:     time.Now().Add(-48 * time.Hour),
		EndDate:       time.Now().Add(-24 * time.Hour),
	})

	_, err := ValidateCoupon(db, cartOf(product, 1))
	wantKind(t, err, KindValidation)
}

func TestCouponRejectedAtUsageLimit(t *testing.T) {
	db := newTestDB(t)
	product := seedProduct(t, db, "shirt", 400, map[string]int{"M": 10})
	limit := 3
	seedCoupon(t, db, model.Coupon{
		Code:          "TESTCODE",
		DiscountType:  model.DiscountFixed,
		DiscountValue: 50,
		IsActive:      true,
		UsageLimit:    &limit,
		UsedCount:     3,
		TargetType:    model.TargetAll,
	})

	_, err := ValidateCoupon(db, cartOf(product, 1))
	wantKind(t, err, KindValidation)
}

func TestCouponRejectedBelowMinimumOrder(t *testing.T) {
	db := newTestDB(t)
	product := seedProduct(t, db, "shirt", 400, map[string]int{"M": 10})
	seedCoupon(t, db, model.Coupon{
		Code:           "TESTCODE",
		DiscountType:   model.DiscountFixed,
		DiscountValue:  50,
		IsActive:       true,
		MinOrderAmount: 1000,
		TargetType:     model.TargetAll,
	})

	_, err := ValidateCoupon(db, cartOf(product, 1))
	wantKind(t, err, KindValidation)
}

func TestProductCouponAppliesOnlyToItsProduct(t *testing.T) {
	db := newTestDB(t)
	target := seedProduct(t, db, "jeans", 1000, map[string]int{"M": 10})
	other := seedProduct(t, db, "belt", 300, map[string]int{"M": 10})
	seedCoupon(t, db, model.Coupon{
		Code:            "TESTCODE",
		DiscountType:    model.DiscountPercentage,
		DiscountValue:   20,
		IsActive:        true,
		TargetType:      model.TargetProduct,
		TargetProductID: &target.ID,
	})

	quote, err := ValidateCoupon(db, model.ValidateCouponInput{
		Code: "TESTCODE",
		Items: []model.CreateOrderItemInput{
			{ProductID: target.ID, Quantity: 1, Size: "M"},
			{ProductID: other.ID, Quantity: 1, Size: "M"},
		},
	})
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if quote.EligibleSubtotal != 1000 {
		t.Fatalf("eligible = %v, want 1000", quote.EligibleSubtotal)
	}
	if quote.DiscountAmount != 200 {
		t.Fatalf("discount = %v, want 200", quote.DiscountAmount)
	}

	// A cart with only the other product does not match at all.
	_, err = ValidateCoupon(db, cartOf(other, 1))
	wantKind(t, err, KindValidation)
}

func TestCouponLookupIsCaseInsensitive(t *testing.T) {
	db := newTestDB(t)
	product := seedProduct(t, db, "shirt", 400, map[string]int{"M": 10})
	seedCoupon(t, db, model.Coupon{
		Code:          "TESTCODE",
		DiscountType:  model.DiscountFixed,
		DiscountValue: 50,
		IsActive:      true,
		TargetType:    model.TargetAll,
	})

	in := cartOf(product, 1)
	in.Code = "testcode"
	quote, err := ValidateCoupon(db, in)
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if quote.DiscountAmount != 50 {
		t.Fatalf("discount = %v, want 50", quote.DiscountAmount)
	}
}

func TestDeactivateExpiredCoupons(t *testing.T) {
	db := newTestDB(t)
	seedCoupon(t, db, model.Coupon{
		Code:          "EXPIRED",
		DiscountType:  model.DiscountFixed,
		DiscountValue: 50,
		IsActive:      true,
		TargetType:    model.TargetAll,
		StartDate:     time.Now().Add(-48 * time.Hour),
		EndDate:       time.Now().Add(-24 * time.Hour),
	})
	seedCoupon(t, db, model.Coupon{
		Code:          "LIVE",
		DiscountType:  model.DiscountFixed,
		DiscountValue: 50,
		IsActive:      true,
		TargetType:    model.TargetAll,
	})

	n, err := DeactivateExpiredCoupons(db)
	if err != nil {
		t.Fatalf("deactivate: %v", err)
	}
	if n != 1 {
		t.Fatalf("deactivated %d coupons, want 1", n)
	}
	var live model.Coupon
	if err := db.Where("code = ?", "LIVE").First(&live).Error; err != nil {
		t.Fatalf("load live coupon: %v", err)
	}
	if !live.IsActive {
		t.Fatal("live coupon was deactivated")
	}
}
