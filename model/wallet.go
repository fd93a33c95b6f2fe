package model

import "time"

// Wallet is the single source of truth for a customer's store balance.
// Created lazily on first access; the balance never goes below zero.
type Wallet struct {
	DTO
	CustomerID uint    `gorm:"not null;uniqueIndex" json:"customerId"`
	Balance    float64 `gorm:"type:decimal(10,2);default:0;not null" json:"balance"`

	Transactions []WalletTransaction `gorm:"foreignKey:WalletID" json:"-"`
}

// WalletTransaction is one append-only ledger row. Amount is always positive;
// the direction is carried by TransactionType. Sum(credits+refunds) -
// sum(debits) must equal the wallet balance at all times.
type WalletTransaction struct {
	ID              uint            `gorm:"primaryKey" json:"id"`
	WalletID        uint            `gorm:"not null;index" json:"walletId"`
	TransactionType TransactionType `gorm:"size:20;not null" json:"transactionType"`
	Amount          float64         `gorm:"type:decimal(10,2);not null" json:"amount"`
	Description     string          `gorm:"size:200" json:"description"`
	ReferenceID     string          `gorm:"size:100" json:"referenceId"`
	CreatedAt       time.Time       `json:"createdAt"`
}

type WalletAmountInput struct {
	Amount      float64 `json:"amount" validate:"required,gt=0"`
	Description string  `json:"description" validate:"omitempty,max=200"`
	ReferenceID string  `json:"referenceId" validate:"omitempty,max=100"`
}
