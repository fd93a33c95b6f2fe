package model

// Transaction is the customer-level payment log, distinct from the wallet
// ledger: one row per order payment, exchange payment or payout, used by the
// admin reporting screens.
type Transaction struct {
	DTO
	CustomerID    *uint   `gorm:"index" json:"customerId,omitempty"`
	Type          string  `gorm:"size:50;not null" json:"type"` // order_payment, wallet_credit, wallet_debit, refund, exchange_payment
	Amount        float64 `gorm:"type:decimal(10,2);not null" json:"amount"`
	Description   string  `gorm:"type:text;not null" json:"description"`
	ReferenceID   string  `gorm:"size:100" json:"referenceId"`
	ReferenceType string  `gorm:"size:50" json:"referenceType"` // order, exchange, refund
	Status        string  `gorm:"size:20;default:'completed'" json:"status"`
	PaymentMethod string  `gorm:"size:50" json:"paymentMethod"`
}
