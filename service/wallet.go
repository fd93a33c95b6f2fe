package service

import (
	"errors"
	"fmt"
	"math"
	"time"

	"trendkart/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Round2 rounds a monetary amount to 2 decimal places. Amounts are rounded
// once at computation time; stored values are never re-rounded.
func Round2(amount float64) float64 {
	return math.Round(amount*100) / 100
}

// rowLock adds a FOR UPDATE lock on supported dialects. The sqlite driver
// used by tests has no row locks, so the clause is skipped there.
func rowLock(tx *gorm.DB) *gorm.DB {
	if tx.Dialector.Name() == "sqlite" {
		return tx
	}
	return tx.Clauses(clause.Locking{Strength: "UPDATE"})
}

// getOrCreateWallet fetches the customer's wallet, creating a zero-balance
// one on first access. With lock set, the row is locked for the enclosing
// transaction so concurrent credits/debits serialize.
func getOrCreateWallet(tx *gorm.DB, customerID uint, lock bool) (*model.Wallet, error) {
	q := tx
	if lock {
		q = rowLock(tx)
	}
	var wallet model.Wallet
	err := q.Where("customer_id = ?", customerID).First(&wallet).Error
	if err == nil {
		return &wallet, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrStorage(err)
	}
	wallet = model.Wallet{CustomerID: customerID, Balance: 0}
	if err := tx.Create(&wallet).Error; err != nil {
		return nil, ErrStorage(err)
	}
	return &wallet, nil
}

// GetWalletBalance returns the customer's wallet, creating it on first access.
func GetWalletBalance(db *gorm.DB, customerID uint) (*model.Wallet, error) {
	var wallet *model.Wallet
	err := db.Transaction(func(tx *gorm.DB) error {
		var err error
		wallet, err = getOrCreateWallet(tx, customerID, false)
		return err
	})
	if err != nil {
		return nil, err
	}
	return wallet, nil
}

// applyWalletCredit increases the balance and appends the matching ledger row
// inside the caller's transaction. Used by credits, refunds and the order
// refund flow so that balance mutation and log insert always commit together.
func applyWalletCredit(tx *gorm.DB, customerID uint, amount float64, txnType model.TransactionType, description, referenceID string) (*model.WalletTransaction, error) {
	if amount <= 0 {
		return nil, ErrValidation("amount must be greater than zero")
	}
	amount = Round2(amount)

	wallet, err := getOrCreateWallet(tx, customerID, true)
	if err != nil {
		return nil, err
	}

	wallet.Balance = Round2(wallet.Balance + amount)
	if err := tx.Model(wallet).Update("balance", wallet.Balance).Error; err != nil {
		return nil, ErrStorage(err)
	}

	txn := model.WalletTransaction{
		WalletID:        wallet.ID,
		TransactionType: txnType,
		Amount:          amount,
		Description:     description,
		ReferenceID:     referenceID,
	}
	if err := tx.Create(&txn).Error; err != nil {
		return nil, ErrStorage(err)
	}
	return &txn, nil
}

// applyWalletDebit decreases the balance, failing without overdraft, and
// appends the matching debit row inside the caller's transaction.
func applyWalletDebit(tx *gorm.DB, customerID uint, amount float64, description, referenceID string) (*model.WalletTransaction, error) {
	if amount <= 0 {
		return nil, ErrValidation("amount must be greater than zero")
	}
	amount = Round2(amount)

	wallet, err := getOrCreateWallet(tx, customerID, true)
	if err != nil {
		return nil, err
	}
	if wallet.Balance < amount {
		return nil, ErrInsufficientFunds("wallet balance %.2f is less than %.2f", wallet.Balance, amount)
	}

	wallet.Balance = Round2(wallet.Balance - amount)
	if err := tx.Model(wallet).Update("balance", wallet.Balance).Error; err != nil {
		return nil, ErrStorage(err)
	}

	txn := model.WalletTransaction{
		WalletID:        wallet.ID,
		TransactionType: model.TransactionDebit,
		Amount:          amount,
		Description:     description,
		ReferenceID:     referenceID,
	}
	if err := tx.Create(&txn).Error; err != nil {
		return nil, ErrStorage(err)
	}
	return &txn, nil
}

// CreditWallet adds money to the customer's wallet.
func CreditWallet(db *gorm.DB, customerID uint, amount float64, description, referenceID string) (*model.WalletTransaction, error) {
	var txn *model.WalletTransaction
	err := db.Transaction(func(tx *gorm.DB) error {
		var err error
		txn, err = applyWalletCredit(tx, customerID, amount, model.TransactionCredit, description, referenceID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return txn, nil
}

// DebitWallet removes money from the customer's wallet. A debit that would
// drive the balance below zero fails and leaves the wallet untouched.
func DebitWallet(db *gorm.DB, customerID uint, amount float64, description, referenceID string) (*model.WalletTransaction, error) {
	var txn *model.WalletTransaction
	err := db.Transaction(func(tx *gorm.DB) error {
		var err error
		txn, err = applyWalletDebit(tx, customerID, amount, description, referenceID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return txn, nil
}

// RefundToWallet is a credit tagged as refund for ledger reporting. Used by
// the order refund flow.
func RefundToWallet(db *gorm.DB, customerID uint, amount float64, description, referenceID string) (*model.WalletTransaction, error) {
	var txn *model.WalletTransaction
	err := db.Transaction(func(tx *gorm.DB) error {
		var err error
		txn, err = applyWalletCredit(tx, customerID, amount, model.TransactionRefund, description, referenceID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return txn, nil
}

// ListWalletTransactions returns the most recent ledger rows, newest first.
func ListWalletTransactions(db *gorm.DB, customerID uint, limit int) ([]model.WalletTransaction, error) {
	if limit <= 0 {
		limit = 10
	}
	wallet, err := GetWalletBalance(db, customerID)
	if err != nil {
		return nil, err
	}
	var txns []model.WalletTransaction
	if err := db.Where("wallet_id = ?", wallet.ID).
		Order("created_at desc, id desc").
		Limit(limit).
		Find(&txns).Error; err != nil {
		return nil, ErrStorage(err)
	}
	return txns, nil
}

// WalletReference builds the ledger reference for an order, e.g. "ORD-12".
func WalletReference(kind string, id uint) string {
	return fmt.Sprintf("%s-%d", kind, id)
}

var nowFunc = time.Now
