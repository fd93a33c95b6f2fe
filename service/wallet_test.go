package service

import (
	"testing"

	"trendkart/model"
)

func TestWalletCreatedLazily(t *testing.T) {
	db := newTestDB(t)
	customer := seedCustomer(t, db)

	wallet, err := GetWalletBalance(db, customer.ID)
	if err != nil {
		t.Fatalf("get wallet: %v", err)
	}
	if wallet.Balance != 0 {
		t.Fatalf("new wallet balance = %v, want 0", wallet.Balance)
	}

	again, err := GetWalletBalance(db, customer.ID)
	if err != nil {
		t.Fatalf("get wallet again: %v", err)
	}
	if again.ID != wallet.ID {
		t.Fatalf("second lookup created a new wallet: %d != %d", again.ID, wallet.ID)
	}
}

func TestWalletBalanceMatchesLedger(t *testing.T) {
	db := newTestDB(t)
	customer := seedCustomer(t, db)

	if _, err := CreditWallet(db, customer.ID, 500, "top up", "t1"); err != nil {
		t.Fatalf("credit: %v", err)
	}
	if _, err := RefundToWallet(db, customer.ID, 249.99, "refund", "t2"); err != nil {
		t.Fatalf("refund: %v", err)
	}
	if _, err := DebitWallet(db, customer.ID, 100.50, "purchase", "t3"); err != nil {
		t.Fatalf("debit: %v", err)
	}

	var txns []model.WalletTransaction
	if err := db.Find(&txns).Error; err != nil {
		t.Fatalf("load ledger: %v", err)
	}
	sum := 0.0
	for _, txn := range txns {
		if txn.Amount <= 0 {
			t.Fatalf("ledger row %d has non-positive amount %v", txn.ID, txn.Amount)
		}
		switch txn.TransactionType {
		case model.TransactionCredit, model.TransactionRefund:
			sum += txn.Amount
		case model.TransactionDebit:
			sum -= txn.Amount
		}
	}

	if got := walletBalance(t, db, customer.ID); got != Round2(sum) {
		t.Fatalf("balance %v does not match ledger sum %v", got, Round2(sum))
	}
	if got := walletBalance(t, db, customer.ID); got != 649.49 {
		t.Fatalf("balance = %v, want 649.49", got)
	}
}

func TestWalletDebitNeverOverdraws(t *testing.T) {
	db := newTestDB(t)
	customer := seedCustomer(t, db)

	if _, err := CreditWallet(db, customer.ID, 100, "top up", "t1"); err != nil {
		t.Fatalf("credit: %v", err)
	}

	_, err := DebitWallet(db, customer.ID, 100.01, "too much", "t2")
	wantKind(t, err, KindInsufficientFunds)

	if got := walletBalance(t, db, customer.ID); got != 100 {
		t.Fatalf("failed debit changed balance: %v", got)
	}
	var count int64
	if err := db.Model(&model.WalletTransaction{}).Where("transaction_type = ?", model.TransactionDebit).Count(&count).Error; err != nil {
		t.Fatalf("count debits: %v", err)
	}
	if count != 0 {
		t.Fatalf("failed debit left %d ledger rows", count)
	}
}

func TestWalletRejectsNonPositiveAmounts(t *testing.T) {
	db := newTestDB(t)
	customer := seedCustomer(t, db)

	_, err := CreditWallet(db, customer.ID, 0, "zero", "t1")
	wantKind(t, err, KindValidation)
	_, err = DebitWallet(db, customer.ID, -5, "negative", "t2")
	wantKind(t, err, KindValidation)
}

func TestListWalletTransactionsNewestFirst(t *testing.T) {
	db := newTestDB(t)
	customer := seedCustomer(t, db)

	for _, ref := range []string{"a", "b", "c"} {
		if _, err := CreditWallet(db, customer.ID, 10, "credit", ref); err != nil {
			t.Fatalf("credit %s: %v", ref, err)
		}
	}

	txns, err := ListWalletTransactions(db, customer.ID, 2)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(txns) != 2 {
		t.Fatalf("got %d rows, want 2", len(txns))
	}
	if txns[0].ReferenceID != "c" || txns[1].ReferenceID != "b" {
		t.Fatalf("wrong order: %s, %s", txns[0].ReferenceID, txns[1].ReferenceID)
	}
}
