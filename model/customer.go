package model

type Customer struct {
	DTO
	Email    string `gorm:"unique;not null" json:"email"`
	Phone    string `gorm:"not null" json:"phone"`
	Password string `gorm:"not null" json:"-"`
	UserName string `json:"username"`

	FirstName *string `json:"firstname"`
	LastName  *string `json:"lastname"`

	IsActive bool `json:"isActive"`

	// Referral program
	ReferralCode          string  `gorm:"unique;size:20" json:"referralCode"`
	ReferredByID          *uint   `json:"referredById,omitempty"`
	ReferralCount         int     `gorm:"default:0" json:"referralCount"`
	TotalReferralEarnings float64 `gorm:"type:decimal(10,2);default:0" json:"totalReferralEarnings"`
}

type Customers []Customer

type RegisterCustomerInput struct {
	UserName     string `validate:"required" json:"username"`
	Email        string `validate:"required,email" json:"email"`
	Phone        string `validate:"required" json:"phone"`
	Password     string `validate:"required,min=8" json:"password"`
	ReferralCode string `validate:"omitempty,max=20" json:"referralCode"`
}

type LoginCustomerInput struct {
	Email    string `validate:"required,email" json:"email"`
	Password string `validate:"required" json:"password"`
}

type EditCustomerInput struct {
	FirstName *string `json:"firstname"`
	LastName  *string `json:"lastname"`
	Phone     *string `json:"phone"`
}

type RequestOTPInput struct {
	Email string `validate:"required,email" json:"email"`
}

type VerifyOTPInput struct {
	Email string `validate:"required,email" json:"email"`
	Code  string `validate:"required,len=6" json:"code"`
}
