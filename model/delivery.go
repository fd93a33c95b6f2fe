package model

import "time"

// DeliveryGuy is the onboarding record for a delivery actor. Orders and
// exchanges may only be assigned to an approved one.
type DeliveryGuy struct {
	DTO
	Name     string `gorm:"size:100;not null" json:"name"`
	Email    string `gorm:"unique;not null" json:"email"`
	Phone    string `gorm:"size:20;not null" json:"phone"`
	Status   string `gorm:"size:20;default:'pending'" json:"status"` // pending, approved, rejected
	Vehicle  string `gorm:"size:50" json:"vehicle"`
	PinCodes string `gorm:"size:500" json:"pinCodes"` // comma-separated serviceable pin codes
}

func (d *DeliveryGuy) Approved() bool {
	return d.Status == "approved"
}

type DeliveryGuys []DeliveryGuy

type ApplyDeliveryInput struct {
	Name     string `json:"name" validate:"required,max=100"`
	Email    string `json:"email" validate:"required,email"`
	Phone    string `json:"phone" validate:"required,max=20"`
	Vehicle  string `json:"vehicle" validate:"omitempty,max=50"`
	PinCodes string `json:"pinCodes" validate:"omitempty,max=500"`
}

type OTP struct {
	DTO
	Email     string    `gorm:"size:200;not null;index" json:"email"`
	Code      string    `gorm:"size:10;not null" json:"-"`
	ExpiresAt time.Time `gorm:"not null" json:"expiresAt"`
	Used      bool      `gorm:"default:false" json:"used"`
}
