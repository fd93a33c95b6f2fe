package service

import (
	"errors"
	"strings"
	"time"

	"trendkart/model"

	"gorm.io/gorm"
)

// couponLine is the slice of an order a coupon is matched against.
type couponLine struct {
	ProductID     uint
	CategoryID    *uint
	SubcategoryID *uint
	Total         float64
}

// CouponQuote is the outcome of validating a coupon against a cart.
type CouponQuote struct {
	Coupon           *model.Coupon `json:"coupon"`
	Subtotal         float64       `json:"subtotal"`
	EligibleSubtotal float64       `json:"eligibleSubtotal"`
	DiscountAmount   float64       `json:"discountAmount"`
}

func lineMatchesCoupon(coupon *model.Coupon, line couponLine) bool {
	switch coupon.TargetType {
	case model.TargetAll:
		return true
	case model.TargetCategory:
		return coupon.TargetCategoryID != nil && line.CategoryID != nil &&
			*coupon.TargetCategoryID == *line.CategoryID
	case model.TargetSubcategory:
		return coupon.TargetSubcategoryID != nil && line.SubcategoryID != nil &&
			*coupon.TargetSubcategoryID == *line.SubcategoryID
	case model.TargetProduct:
		return coupon.TargetProductID != nil && *coupon.TargetProductID == line.ProductID
	}
	return false
}

// evaluateCoupon runs the full validation pipeline against the given lines
// and returns the quote. Checks run in a fixed order so the caller always
// gets the earliest failure: existence, active flag, date window, usage
// limit, minimum order amount, target match.
func evaluateCoupon(tx *gorm.DB, code string, lines []couponLine, at time.Time) (*CouponQuote, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		return nil, ErrValidation("coupon code is required")
	}

	var coupon model.Coupon
	if err := tx.Where("code = ?", code).First(&coupon).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound("coupon %s not found", code)
		}
		return nil, ErrStorage(err)
	}

	if !coupon.IsActive {
		return nil, ErrValidation("coupon %s is not active", code)
	}
	if at.Before(coupon.StartDate) {
		return nil, ErrValidation("coupon %s is not valid yet", code)
	}
	if at.After(coupon.EndDate) {
		return nil, ErrValidation("coupon %s has expired", code)
	}
	if coupon.UsageLimit != nil && coupon.UsedCount >= *coupon.UsageLimit {
		return nil, ErrValidation("coupon %s has reached its usage limit", code)
	}

	subtotal := 0.0
	eligible := 0.0
	for _, line := range lines {
		subtotal += line.Total
		if lineMatchesCoupon(&coupon, line) {
			eligible += line.Total
		}
	}
	subtotal = Round2(subtotal)
	eligible = Round2(eligible)

	if subtotal < coupon.MinOrderAmount {
		return nil, ErrValidation("order total %.2f is below the coupon minimum %.2f", subtotal, coupon.MinOrderAmount)
	}
	if eligible == 0 {
		return nil, ErrValidation("coupon %s does not apply to any item in this order", code)
	}

	var discount float64
	switch coupon.DiscountType {
	case model.DiscountPercentage:
		discount = eligible * coupon.DiscountValue / 100
		if coupon.MaxDiscountAmount != nil && discount > *coupon.MaxDiscountAmount {
			discount = *coupon.MaxDiscountAmount
		}
	case model.DiscountFixed:
		discount = coupon.DiscountValue
	default:
		return nil, ErrValidation("coupon %s has an unknown discount type", code)
	}
	// A coupon can never discount more than the eligible part of the order.
	if discount > eligible {
		discount = eligible
	}
	discount = Round2(discount)

	return &CouponQuote{
		Coupon:           &coupon,
		Subtotal:         subtotal,
		EligibleSubtotal: eligible,
		DiscountAmount:   discount,
	}, nil
}

// buildCouponLines prices the requested items with the current catalog and
// turns them into coupon lines.
func buildCouponLines(tx *gorm.DB, items []model.CreateOrderItemInput) ([]couponLine, error) {
	lines := make([]couponLine, 0, len(items))
	for _, item := range items {
		var product model.Product
		if err := tx.First(&product, item.ProductID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrNotFound("product %d not found", item.ProductID)
			}
			return nil, ErrStorage(err)
		}
		lines = append(lines, couponLine{
			ProductID:     product.ID,
			CategoryID:    product.CategoryID,
			SubcategoryID: product.SubcategoryID,
			Total:         Round2(product.Price * float64(item.Quantity)),
		})
	}
	return lines, nil
}

// ValidateCoupon quotes a coupon against a prospective cart without reserving
// anything. The quote is advisory; CreateOrder re-validates inside its own
// transaction.
func ValidateCoupon(db *gorm.DB, in model.ValidateCouponInput) (*CouponQuote, error) {
	lines, err := buildCouponLines(db, in.Items)
	if err != nil {
		return nil, err
	}
	return evaluateCoupon(db, in.Code, lines, nowFunc())
}

// consumeCouponUsage bumps the usage counter once the order actually commits.
// Must run inside the order transaction so a failed order never burns a use.
func consumeCouponUsage(tx *gorm.DB, couponID uint) error {
	res := tx.Model(&model.Coupon{}).Where("id = ?", couponID).
		UpdateColumn("used_count", gorm.Expr("used_count + 1"))
	if res.Error != nil {
		return ErrStorage(res.Error)
	}
	return nil
}

// CreateCoupon registers a new coupon. Codes are stored upper-case so lookup
// is case-insensitive.
func CreateCoupon(db *gorm.DB, in model.CreateCouponInput) (*model.Coupon, error) {
	targetType := model.CouponTarget(in.TargetType)
	if in.TargetType == "" {
		targetType = model.TargetAll
	}
	switch targetType {
	case model.TargetCategory:
		if in.TargetCategoryID == nil {
			return nil, ErrValidation("category coupon needs a target category")
		}
	case model.TargetSubcategory:
		if in.TargetSubcategoryID == nil {
			return nil, ErrValidation("subcategory coupon needs a target subcategory")
		}
	case model.TargetProduct:
		if in.TargetProductID == nil {
			return nil, ErrValidation("product coupon needs a target product")
		}
	}
	if model.DiscountType(in.DiscountType) == model.DiscountPercentage && in.DiscountValue > 100 {
		return nil, ErrValidation("percentage discount cannot exceed 100")
	}

	coupon := model.Coupon{
		Code:                strings.ToUpper(strings.TrimSpace(in.Code)),
		Description:         in.Description,
		DiscountType:        model.DiscountType(in.DiscountType),
		DiscountValue:       in.DiscountValue,
		StartDate:           in.StartDate,
		EndDate:             in.EndDate,
		IsActive:            true,
		MinOrderAmount:      in.MinOrderAmount,
		MaxDiscountAmount:   in.MaxDiscountAmount,
		UsageLimit:          in.UsageLimit,
		TargetType:          targetType,
		TargetCategoryID:    in.TargetCategoryID,
		TargetSubcategoryID: in.TargetSubcategoryID,
		TargetProductID:     in.TargetProductID,
	}
	if err := db.Create(&coupon).Error; err != nil {
		return nil, ErrStorage(err)
	}
	return &coupon, nil
}

// ListCoupons returns coupons, optionally only the currently usable ones.
func ListCoupons(db *gorm.DB, activeOnly bool) (model.Coupons, error) {
	q := db.Order("created_at desc")
	if activeOnly {
		now := nowFunc()
		q = q.Where("is_active = ? AND start_date <= ? AND end_date >= ?", true, now, now)
	}
	var coupons model.Coupons
	if err := q.Find(&coupons).Error; err != nil {
		return nil, ErrStorage(err)
	}
	return coupons, nil
}

// SetCouponActive toggles a coupon on or off.
func SetCouponActive(db *gorm.DB, couponID uint, active bool) (*model.Coupon, error) {
	var coupon model.Coupon
	if err := db.First(&coupon, couponID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound("coupon %d not found", couponID)
		}
		return nil, ErrStorage(err)
	}
	if err := db.Model(&coupon).Update("is_active", active).Error; err != nil {
		return nil, ErrStorage(err)
	}
	coupon.IsActive = active
	return &coupon, nil
}

// DeactivateExpiredCoupons flips past-end-date coupons inactive. Run by the
// nightly scheduler.
func DeactivateExpiredCoupons(db *gorm.DB) (int64, error) {
	res := db.Model(&model.Coupon{}).
		Where("is_active = ? AND end_date < ?", true, nowFunc()).
		Update("is_active", false)
	if res.Error != nil {
		return 0, ErrStorage(res.Error)
	}
	return res.RowsAffected, nil
}
