package model

// Closed status enumerations. Every transition goes through the service layer,
// which validates against these sets instead of raw strings.

type OrderStatus string

const (
	OrderPending    OrderStatus = "pending"
	OrderConfirmed  OrderStatus = "confirmed"
	OrderProcessing OrderStatus = "processing"
	OrderShipped    OrderStatus = "shipped"
	OrderDelivered  OrderStatus = "delivered"
	OrderCancelled  OrderStatus = "cancelled"
	OrderRefunded   OrderStatus = "refunded"
)

// progression ranks the forward delivery path. Side branches (cancelled,
// refunded) are not ranked; they are reached through their own operations.
var orderProgression = map[OrderStatus]int{
	OrderPending:    0,
	OrderConfirmed:  1,
	OrderProcessing: 2,
	OrderShipped:    3,
	OrderDelivered:  4,
}

func (s OrderStatus) Valid() bool {
	switch s {
	case OrderPending, OrderConfirmed, OrderProcessing, OrderShipped,
		OrderDelivered, OrderCancelled, OrderRefunded:
		return true
	}
	return false
}

// ForwardOf reports whether s is a strictly later delivery step than old.
func (s OrderStatus) ForwardOf(old OrderStatus) bool {
	newRank, ok := orderProgression[s]
	if !ok {
		return false
	}
	oldRank, ok := orderProgression[old]
	if !ok {
		return false
	}
	return newRank > oldRank
}

// PreShipment reports whether the order has not left the warehouse yet.
func (s OrderStatus) PreShipment() bool {
	rank, ok := orderProgression[s]
	return ok && rank < orderProgression[OrderShipped]
}

type OrderItemStatus string

const (
	ItemPending    OrderItemStatus = "pending"
	ItemConfirmed  OrderItemStatus = "confirmed"
	ItemProcessing OrderItemStatus = "processing"
	ItemShipped    OrderItemStatus = "shipped"
	ItemDelivered  OrderItemStatus = "delivered"
	ItemCancelled  OrderItemStatus = "cancelled"
	ItemRefunded   OrderItemStatus = "refunded"
)

func (s OrderItemStatus) Valid() bool {
	switch s {
	case ItemPending, ItemConfirmed, ItemProcessing, ItemShipped,
		ItemDelivered, ItemCancelled, ItemRefunded:
		return true
	}
	return false
}

func (s OrderItemStatus) PreShipment() bool {
	switch s {
	case ItemPending, ItemConfirmed, ItemProcessing:
		return true
	}
	return false
}

// Terminal items are skipped by bulk status updates.
func (s OrderItemStatus) Terminal() bool {
	return s == ItemCancelled || s == ItemRefunded
}

type RefundStatus string

const (
	RefundNotApplicable RefundStatus = "not_applicable"
	RefundPending       RefundStatus = "pending"
	RefundCompleted     RefundStatus = "completed"
)

type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "pending"
	PaymentCompleted PaymentStatus = "completed"
	PaymentFailed    PaymentStatus = "failed"
	PaymentRefunded  PaymentStatus = "refunded"
)

type ExchangeStatus string

const (
	ExchangeInitiated      ExchangeStatus = "initiated"
	ExchangeApproved       ExchangeStatus = "approved"
	ExchangeAssigned       ExchangeStatus = "assigned"
	ExchangeOutForDelivery ExchangeStatus = "out_for_delivery"
	ExchangeDelivered      ExchangeStatus = "delivered"
	ExchangeRejected       ExchangeStatus = "rejected"
)

// Active exchanges block a second exchange request for the same order item.
func (s ExchangeStatus) Active() bool {
	switch s {
	case ExchangeInitiated, ExchangeApproved, ExchangeAssigned, ExchangeOutForDelivery:
		return true
	}
	return false
}

func (s ExchangeStatus) Terminal() bool {
	return s == ExchangeDelivered || s == ExchangeRejected
}

// ItemExchangeStatus is the exchange sub-state carried on the OrderItem.
type ItemExchangeStatus string

const (
	ItemExchangeNone      ItemExchangeStatus = "not_applicable"
	ItemExchangeRequested ItemExchangeStatus = "requested"
	ItemExchangeApproved  ItemExchangeStatus = "approved"
	ItemExchangeCompleted ItemExchangeStatus = "completed"
)

type TransactionType string

const (
	TransactionCredit TransactionType = "credit"
	TransactionDebit  TransactionType = "debit"
	TransactionRefund TransactionType = "refund"
)

type DiscountType string

const (
	DiscountPercentage DiscountType = "percentage"
	DiscountFixed      DiscountType = "fixed"
)

type CouponTarget string

const (
	TargetAll         CouponTarget = "all"
	TargetCategory    CouponTarget = "category"
	TargetSubcategory CouponTarget = "subcategory"
	TargetProduct     CouponTarget = "product"
)
