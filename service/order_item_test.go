package service

import (
	"testing"

	"trendkart/model"
)

func TestCancelOrderItemPartially(t *testing.T) {
	db := newTestDB(t)
	customer := seedCustomer(t, db)
	shirt := seedProduct(t, db, "shirt", 1000, map[string]int{"M": 10})
	jeans := seedProduct(t, db, "jeans", 2000, map[string]int{"M": 10})

	order := placeOrder(t, db, customer.ID, standardOrderInput(
		model.CreateOrderItemInput{ProductID: shirt.ID, Quantity: 5, Size: "M"},
		model.CreateOrderItemInput{ProductID: jeans.ID, Quantity: 1, Size: "M"},
	))
	markPaid(t, db, order.ID)
	shirtItem := order.Items[0]

	item, err := CancelOrderItem(db, shirtItem.ID, customer.ID, model.CancelItemInput{
		Quantity: 2, Reason: "ordered too many",
	}, "customer")
	if err != nil {
		t.Fatalf("cancel: %v", err)
	}
	if item.QuantityCancel != 2 {
		t.Fatalf("quantity_cancel = %d, want 2", item.QuantityCancel)
	}
	if item.RemainingQuantity() != 3 {
		t.Fatalf("remaining = %d, want 3", item.RemainingQuantity())
	}
	if item.Status != model.ItemCancelled {
		t.Fatalf("status = %s, want cancelled", item.Status)
	}

	// The sibling line and the order itself stay open.
	var sibling model.OrderItem
	if err := db.First(&sibling, order.Items[1].ID).Error; err != nil {
		t.Fatalf("reload sibling: %v", err)
	}
	if sibling.Status != model.ItemPending || sibling.QuantityCancel != 0 {
		t.Fatalf("sibling was touched: %s/%d", sibling.Status, sibling.QuantityCancel)
	}
	var reloaded model.Order
	if err := db.First(&reloaded, order.ID).Error; err != nil {
		t.Fatalf("reload order: %v", err)
	}
	if reloaded.Status == model.OrderCancelled {
		t.Fatal("partial item cancel cancelled the whole order")
	}

	// Paid line is queued for refund; money has not moved yet.
	var queued model.OrderItem
	if err := db.First(&queued, shirtItem.ID).Error; err != nil {
		t.Fatalf("reload item: %v", err)
	}
	if queued.RefundStatus != model.RefundPending {
		t.Fatalf("refund status = %s, want pending", queued.RefundStatus)
	}
	if queued.QuantityCancel != item.QuantityCancel {
		t.Fatalf("stored quantity_cancel %d != returned %d", queued.QuantityCancel, item.QuantityCancel)
	}
	if got := walletBalance(t, db, customer.ID); got != 0 {
		t.Fatalf("cancellation credited wallet early: %v", got)
	}
}

func TestCancelOrderItemCappedAtRemaining(t *testing.T) {
	db := newTestDB(t)
	customer := seedCustomer(t, db)
	shirt := seedProduct(t, db, "shirt", 1000, map[string]int{"M": 10})
	order := placeOrder(t, db, customer.ID, standardOrderInput(
		model.CreateOrderItemInput{ProductID: shirt.ID, Quantity: 3, Size: "M"}))
	itemID := order.Items[0].ID

	if _, err := CancelOrderItem(db, itemID, customer.ID, model.CancelItemInput{
		Quantity: 2, Reason: "first",
	}, "customer"); err != nil {
		t.Fatalf("first cancel: %v", err)
	}

	_, err := CancelOrderItem(db, itemID, customer.ID, model.CancelItemInput{
		Quantity: 2, Reason: "too much",
	}, "customer")
	wantKind(t, err, KindValidation)

	if _, err := CancelOrderItem(db, itemID, customer.ID, model.CancelItemInput{
		Quantity: 1, Reason: "rest",
	}, "customer"); err != nil {
		t.Fatalf("final cancel: %v", err)
	}

	_, err = CancelOrderItem(db, itemID, customer.ID, model.CancelItemInput{
		Quantity: 1, Reason: "again",
	}, "customer")
	wantKind(t, err, KindAlreadyProcessed)
}

func TestCancellingEveryLineCancelsOrder(t *testing.T) {
	db := newTestDB(t)
	customer := seedCustomer(t, db)
	shirt := seedProduct(t, db, "shirt", 1000, map[string]int{"M": 10})
	order := placeOrder(t, db, customer.ID, standardOrderInput(
		model.CreateOrderItemInput{ProductID: shirt.ID, Quantity: 2, Size: "M"}))

	if _, err := CancelOrderItem(db, order.Items[0].ID, customer.ID, model.CancelItemInput{
		Quantity: 2, Reason: "full cancel",
	}, "customer"); err != nil {
		t.Fatalf("cancel: %v", err)
	}

	var reloaded model.Order
	if err := db.First(&reloaded, order.ID).Error; err != nil {
		t.Fatalf("reload order: %v", err)
	}
	if reloaded.Status != model.OrderCancelled {
		t.Fatalf("order status = %s, want cancelled", reloaded.Status)
	}
}

func TestCancelOrderItemEnforcesOwnership(t *testing.T) {
	db := newTestDB(t)
	owner := seedCustomer(t, db)
	stranger := seedCustomer(t, db)
	shirt := seedProduct(t, db, "shirt", 1000, map[string]int{"M": 10})
	order := placeOrder(t, db, owner.ID, standardOrderInput(
		model.CreateOrderItemInput{ProductID: shirt.ID, Quantity: 1, Size: "M"}))

	_, err := CancelOrderItem(db, order.Items[0].ID, stranger.ID, model.CancelItemInput{
		Quantity: 1, Reason: "not mine",
	}, "customer")
	wantKind(t, err, KindNotFound)
}

func TestRequestItemRefund(t *testing.T) {
	db := newTestDB(t)
	customer := seedCustomer(t, db)
	shirt := seedProduct(t, db, "shirt", 1000, map[string]int{"M": 10})
	order := placeOrder(t, db, customer.ID, standardOrderInput(
		model.CreateOrderItemInput{ProductID: shirt.ID, Quantity: 1, Size: "M"}))
	itemID := order.Items[0].ID

	// Not delivered yet and not paid: both preconditions fail.
	_, err := RequestItemRefund(db, itemID, customer.ID, "does not fit")
	wantKind(t, err, KindInvalidState)

	markPaid(t, db, order.ID)
	if _, err := UpdateOrderStatus(db, order.ID, model.OrderDelivered); err != nil {
		t.Fatalf("deliver: %v", err)
	}

	item, err := RequestItemRefund(db, itemID, customer.ID, "does not fit")
	if err != nil {
		t.Fatalf("request refund: %v", err)
	}
	if item.RefundStatus != model.RefundPending {
		t.Fatalf("refund status = %s, want pending", item.RefundStatus)
	}

	_, err = RequestItemRefund(db, itemID, customer.ID, "again")
	wantKind(t, err, KindAlreadyProcessed)
}

func TestUpdateOrderItemsStatusSkipsTerminal(t *testing.T) {
	db := newTestDB(t)
	customer := seedCustomer(t, db)
	shirt := seedProduct(t, db, "shirt", 1000, map[string]int{"M": 10})
	jeans := seedProduct(t, db, "jeans", 2000, map[string]int{"M": 10})
	order := placeOrder(t, db, customer.ID, standardOrderInput(
		model.CreateOrderItemInput{ProductID: shirt.ID, Quantity: 1, Size: "M"},
		model.CreateOrderItemInput{ProductID: jeans.ID, Quantity: 1, Size: "M"},
	))

	if _, err := CancelOrderItem(db, order.Items[0].ID, customer.ID, model.CancelItemInput{
		Quantity: 1, Reason: "cancel one",
	}, "customer"); err != nil {
		t.Fatalf("cancel: %v", err)
	}

	updated, err := UpdateOrderItemsStatus(db, order.ID, model.ItemShipped, nil)
	if err != nil {
		t.Fatalf("bulk update: %v", err)
	}
	if updated.Status != model.OrderShipped {
		t.Fatalf("order status = %s, want shipped", updated.Status)
	}

	var items []model.OrderItem
	if err := db.Where("order_id = ?", order.ID).Order("id").Find(&items).Error; err != nil {
		t.Fatalf("reload items: %v", err)
	}
	if items[0].Status != model.ItemCancelled {
		t.Fatalf("cancelled item was moved: %s", items[0].Status)
	}
	if items[1].Status != model.ItemShipped {
		t.Fatalf("open item not moved: %s", items[1].Status)
	}
}
