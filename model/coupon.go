package model

import "time"

type Coupon struct {
	DTO
	Code          string       `gorm:"unique;size:50;not null" json:"code"`
	Description   string       `gorm:"size:200" json:"description"`
	DiscountType  DiscountType `gorm:"size:20;not null" json:"discountType"`
	DiscountValue float64      `gorm:"type:decimal(10,2);not null" json:"discountValue"`
	StartDate     time.Time    `gorm:"not null" json:"startDate"`
	EndDate       time.Time    `gorm:"not null" json:"endDate"`
	// No column default: GORM drops zero-value plain bools from inserts when
	// one is set, which would turn a deliberately inactive row active.
	IsActive bool `json:"isActive"`

	MinOrderAmount    float64  `gorm:"type:decimal(10,2);default:0" json:"minOrderAmount"`
	MaxDiscountAmount *float64 `gorm:"type:decimal(10,2)" json:"maxDiscountAmount,omitempty"`
	UsageLimit        *int     `json:"usageLimit,omitempty"`
	UsedCount         int      `gorm:"default:0" json:"usedCount"`

	TargetType          CouponTarget `gorm:"size:20;default:'all';not null" json:"targetType"`
	TargetCategoryID    *uint        `json:"targetCategoryId,omitempty"`
	TargetSubcategoryID *uint        `json:"targetSubcategoryId,omitempty"`
	TargetProductID     *uint        `json:"targetProductId,omitempty"`
}

type Coupons []Coupon

type CreateCouponInput struct {
	Code          string    `json:"code" validate:"required,max=50"`
	Description   string    `json:"description" validate:"omitempty,max=200"`
	DiscountType  string    `json:"discountType" validate:"required,oneof=percentage fixed"`
	DiscountValue float64   `json:"discountValue" validate:"required,gt=0"`
	StartDate     time.Time `json:"startDate" validate:"required"`
	EndDate       time.Time `json:"endDate" validate:"required,gtfield=StartDate"`

	MinOrderAmount    float64  `json:"minOrderAmount" validate:"omitempty,gte=0"`
	MaxDiscountAmount *float64 `json:"maxDiscountAmount" validate:"omitempty,gt=0"`
	UsageLimit        *int     `json:"usageLimit" validate:"omitempty,gt=0"`

	TargetType          string `json:"targetType" validate:"omitempty,oneof=all category subcategory product"`
	TargetCategoryID    *uint  `json:"targetCategoryId" validate:"omitempty,gt=0"`
	TargetSubcategoryID *uint  `json:"targetSubcategoryId" validate:"omitempty,gt=0"`
	TargetProductID     *uint  `json:"targetProductId" validate:"omitempty,gt=0"`
}

type ValidateCouponInput struct {
	Code  string                 `json:"code" validate:"required,max=50"`
	Items []CreateOrderItemInput `json:"items" validate:"required,min=1,dive"`
}
