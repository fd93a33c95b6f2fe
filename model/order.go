package model

import (
	"encoding/json"
	"fmt"
	"time"
)

type Order struct {
	DTO
	CustomerID  uint      `gorm:"not null;index" json:"customerId"`
	Customer    *Customer `json:"customer,omitempty"`
	OrderNumber string    `gorm:"unique;size:50;not null" json:"orderNumber"`
	Status      OrderStatus `gorm:"size:20;default:'pending';not null" json:"status"`

	// Delivery
	DeliveryAddress   string     `gorm:"type:text;not null" json:"deliveryAddress"` // JSON-encoded address snapshot
	DeliveryType      string     `gorm:"size:20;not null" json:"deliveryType"`      // express, standard, scheduled
	ScheduledTime     *time.Time `json:"scheduledTime,omitempty"`
	EstimatedDelivery *time.Time `json:"estimatedDelivery,omitempty"`
	DeliveryGuyID     *uint      `json:"deliveryGuyId,omitempty"`
	DeliveryGuy       *DeliveryGuy `json:"deliveryGuy,omitempty"`
	AssignedAt        *time.Time `json:"assignedAt,omitempty"`
	DeliveredAt       *time.Time `json:"deliveredAt,omitempty"`
	DeliveryNotes     string     `gorm:"type:text" json:"deliveryNotes"` // JSON audit trail, see FlowStep

	// Payment
	PaymentMethod string        `gorm:"size:20;not null" json:"paymentMethod"` // wallet, razorpay, cod
	PaymentID     string        `gorm:"size:100" json:"paymentId"`
	PaymentStatus PaymentStatus `gorm:"size:20;default:'pending'" json:"paymentStatus"`

	// Pricing. TotalAmount = Subtotal + DeliveryFeeAmount + PlatformFee - DiscountAmount.
	Subtotal          float64 `gorm:"type:decimal(10,2);not null" json:"subtotal"`
	DeliveryFeeAmount float64 `gorm:"type:decimal(10,2);default:0" json:"deliveryFeeAmount"`
	PlatformFee       float64 `gorm:"type:decimal(10,2);default:0" json:"platformFee"`
	DiscountAmount    float64 `gorm:"type:decimal(10,2);default:0" json:"discountAmount"`
	TotalAmount       float64 `gorm:"type:decimal(10,2);not null" json:"totalAmount"`

	CouponID *uint   `json:"couponId,omitempty"`
	Coupon   *Coupon `json:"coupon,omitempty"`

	Items []OrderItem `gorm:"foreignKey:OrderID" json:"items,omitempty"`
}

type Orders []Order

// FlowStep is one entry of the append-only status audit trail kept in
// DeliveryNotes under a named flow ("cancel_flow", "return_flow").
type FlowStep struct {
	Status string    `json:"status"`
	At     time.Time `json:"at"`
}

// AppendFlowStep appends a step to the named flow in DeliveryNotes. Existing
// entries are never mutated; a status already present in the flow is not
// appended twice.
func (o *Order) AppendFlowStep(flow, status string) {
	notes := map[string]json.RawMessage{}
	if o.DeliveryNotes != "" {
		_ = json.Unmarshal([]byte(o.DeliveryNotes), &notes)
	}

	var steps []FlowStep
	if raw, ok := notes[flow]; ok {
		_ = json.Unmarshal(raw, &steps)
	}
	for _, s := range steps {
		if s.Status == status {
			return
		}
	}
	steps = append(steps, FlowStep{Status: status, At: time.Now().UTC()})

	rawSteps, err := json.Marshal(steps)
	if err != nil {
		return
	}
	notes[flow] = rawSteps
	rawNotes, err := json.Marshal(notes)
	if err != nil {
		return
	}
	o.DeliveryNotes = string(rawNotes)
}

// FlowSteps reads back the named flow from DeliveryNotes.
func (o *Order) FlowSteps(flow string) []FlowStep {
	if o.DeliveryNotes == "" {
		return nil
	}
	notes := map[string]json.RawMessage{}
	if err := json.Unmarshal([]byte(o.DeliveryNotes), &notes); err != nil {
		return nil
	}
	var steps []FlowStep
	if raw, ok := notes[flow]; ok {
		_ = json.Unmarshal(raw, &steps)
	}
	return steps
}

// GenerateOrderNumber builds the public order number once the row has an ID.
func (o *Order) GenerateOrderNumber() string {
	return fmt.Sprintf("ORD%s%d", time.Now().Format("20060102150405"), o.ID)
}

type OrderItem struct {
	DTO
	OrderID   uint `gorm:"not null;index" json:"orderId"`
	ProductID uint `gorm:"not null;index" json:"productId"`

	Quantity   int     `gorm:"not null" json:"quantity"`
	UnitPrice  float64 `gorm:"type:decimal(10,2);not null" json:"unitPrice"`
	TotalPrice float64 `gorm:"type:decimal(10,2);not null" json:"totalPrice"`

	// Snapshot taken at order time; product edits must not change past orders.
	ProductName  string `gorm:"size:200;not null" json:"productName"`
	ProductImage string `gorm:"size:500" json:"productImage"`
	SelectedSize string `gorm:"size:20" json:"selectedSize"`

	Status OrderItemStatus `gorm:"size:20;default:'pending';not null" json:"status"`

	// Cancellation
	QuantityCancel    int        `gorm:"default:0;not null" json:"quantityCancel"`
	CancelReason      string     `gorm:"size:500" json:"cancelReason"`
	CancelRequestedAt *time.Time `json:"cancelRequestedAt,omitempty"`
	CancelledAt       *time.Time `json:"cancelledAt,omitempty"`
	CancelledBy       string     `gorm:"size:20" json:"cancelledBy"`

	// Refund
	RefundStatus      RefundStatus `gorm:"size:20;default:'not_applicable';not null" json:"refundStatus"`
	RefundAmount      float64      `gorm:"type:decimal(10,2);default:0;not null" json:"refundAmount"`
	RefundReason      string       `gorm:"size:500" json:"refundReason"`
	RefundRequestedAt *time.Time   `json:"refundRequestedAt,omitempty"`
	RefundedAt        *time.Time   `json:"refundedAt,omitempty"`

	// Exchange
	ExchangeStatus ItemExchangeStatus `gorm:"size:20;default:'not_applicable';not null" json:"exchangeStatus"`
	ExchangeID     *uint              `json:"exchangeId,omitempty"`

	DeliveryGuyID *uint `json:"deliveryGuyId,omitempty"`
}

// RemainingQuantity is the part of the line not yet cancelled.
func (i *OrderItem) RemainingQuantity() int {
	remaining := i.Quantity - i.QuantityCancel
	if remaining < 0 {
		return 0
	}
	return remaining
}

type CreateOrderItemInput struct {
	ProductID uint   `json:"productId" validate:"required,gt=0"`
	Quantity  int    `json:"quantity" validate:"required,gt=0"`
	Size      string `json:"size" validate:"omitempty,max=20"`
}

type CreateOrderInput struct {
	Items           []CreateOrderItemInput `json:"items" validate:"required,min=1,dive"`
	DeliveryAddress map[string]any         `json:"deliveryAddress" validate:"required"`
	DeliveryType    string                 `json:"deliveryType" validate:"required,oneof=express standard scheduled"`
	ScheduledTime   *time.Time             `json:"scheduledTime" validate:"omitempty"`
	PaymentMethod   string                 `json:"paymentMethod" validate:"required,oneof=wallet razorpay cod"`
	PaymentID       string                 `json:"paymentId" validate:"omitempty,max=100"`
	CouponCode      string                 `json:"couponCode" validate:"omitempty,max=50"`
}

type CancelItemInput struct {
	Quantity int    `json:"quantity" validate:"required,gt=0"`
	Reason   string `json:"reason" validate:"required,max=500"`
}

type RequestRefundInput struct {
	Reason string `json:"reason" validate:"required,max=500"`
}

type UpdateOrderStatusInput struct {
	Status  OrderStatus `json:"status" validate:"required"`
	ItemIDs []uint      `json:"itemIds" validate:"omitempty"`
}

type AssignDeliveryInput struct {
	DeliveryGuyID uint `json:"deliveryGuyId" validate:"required,gt=0"`
}
