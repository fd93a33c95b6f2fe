package model

import "time"

// Exchange is a post-delivery request to swap a purchased item's size or
// quantity. At most one non-terminal Exchange may exist per OrderItem.
type Exchange struct {
	DTO
	OrderID     uint `gorm:"not null;index" json:"orderId"`
	OrderItemID uint `gorm:"not null;index" json:"orderItemId"`
	CustomerID  uint `gorm:"not null;index" json:"customerId"`
	ProductID   uint `gorm:"not null" json:"productId"`

	OldSize     string `gorm:"size:20;not null" json:"oldSize"`
	NewSize     string `gorm:"size:20;not null" json:"newSize"`
	OldQuantity int    `gorm:"default:1;not null" json:"oldQuantity"`
	NewQuantity int    `gorm:"default:1;not null" json:"newQuantity"`
	Reason      string `gorm:"size:500" json:"reason"`

	AdditionalPaymentRequired bool    `gorm:"default:false" json:"additionalPaymentRequired"`
	AdditionalAmount          float64 `gorm:"type:decimal(10,2);default:0" json:"additionalAmount"`

	Status ExchangeStatus `gorm:"size:50;default:'initiated';not null" json:"status"`

	AdminNotes string     `gorm:"type:text" json:"adminNotes"`
	ApprovedBy *uint      `json:"approvedBy,omitempty"`
	ApprovedAt *time.Time `json:"approvedAt,omitempty"`

	DeliveryGuyID *uint      `json:"deliveryGuyId,omitempty"`
	AssignedAt    *time.Time `json:"assignedAt,omitempty"`
	DeliveredAt   *time.Time `json:"deliveredAt,omitempty"`
}

type Exchanges []Exchange

type RequestExchangeInput struct {
	OrderItemID uint   `json:"orderItemId" validate:"required,gt=0"`
	NewSize     string `json:"newSize" validate:"required,max=20"`
	NewQuantity int    `json:"newQuantity" validate:"required,gt=0"`
	Reason      string `json:"reason" validate:"omitempty,max=500"`
}

type ReviewExchangeInput struct {
	AdminNotes string `json:"adminNotes" validate:"omitempty,max=1000"`
	Reason     string `json:"reason" validate:"omitempty,max=1000"`
}
