package service

import (
	"testing"

	"trendkart/model"

	"gorm.io/gorm"
)

// deliveredLine places a paid single-line order and walks it to delivered.
func deliveredLine(t *testing.T, db *gorm.DB, customerID uint, product *model.Product, quantity int) *model.OrderItem {
	t.Helper()
	order := placeOrder(t, db, customerID, standardOrderInput(
		model.CreateOrderItemInput{ProductID: product.ID, Quantity: quantity, Size: "M"}))
	markPaid(t, db, order.ID)
	if _, err := UpdateOrderStatus(db, order.ID, model.OrderDelivered); err != nil {
		t.Fatalf("deliver order: %v", err)
	}
	var item model.OrderItem
	if err := db.First(&item, order.Items[0].ID).Error; err != nil {
		t.Fatalf("reload item: %v", err)
	}
	return &item
}

func TestRequestExchangeRequiresDelivery(t *testing.T) {
	db := newTestDB(t)
	customer := seedCustomer(t, db)
	shirt := seedProduct(t, db, "shirt", 1000, map[string]int{"M": 10, "L": 5})
	order := placeOrder(t, db, customer.ID, standardOrderInput(
		model.CreateOrderItemInput{ProductID: shirt.ID, Quantity: 1, Size: "M"}))

	_, err := RequestExchange(db, customer.ID, model.RequestExchangeInput{
		OrderItemID: order.Items[0].ID, NewSize: "L", NewQuantity: 1,
	})
	wantKind(t, err, KindInvalidState)
}

func TestRequestExchangeAllowsOneActivePerItem(t *testing.T) {
	db := newTestDB(t)
	customer := seedCustomer(t, db)
	shirt := seedProduct(t, db, "shirt", 1000, map[string]int{"M": 10, "L": 5})
	item := deliveredLine(t, db, customer.ID, shirt, 1)

	first, err := RequestExchange(db, customer.ID, model.RequestExchangeInput{
		OrderItemID: item.ID, NewSize: "L", NewQuantity: 1, Reason: "too small",
	})
	if err != nil {
		t.Fatalf("first request: %v", err)
	}
	if first.Status != model.ExchangeInitiated {
		t.Fatalf("status = %s, want initiated", first.Status)
	}

	_, err = RequestExchange(db, customer.ID, model.RequestExchangeInput{
		OrderItemID: item.ID, NewSize: "L", NewQuantity: 1,
	})
	wantKind(t, err, KindInvalidState)

	// Closing the first one reopens the door.
	admin := uint(1)
	if _, err := RejectExchange(db, first.ID, admin, "out of stock"); err != nil {
		t.Fatalf("reject: %v", err)
	}
	if _, err := RequestExchange(db, customer.ID, model.RequestExchangeInput{
		OrderItemID: item.ID, NewSize: "L", NewQuantity: 1,
	}); err != nil {
		t.Fatalf("request after reject: %v", err)
	}
}

func TestApproveExchangeSwapsStock(t *testing.T) {
	db := newTestDB(t)
	customer := seedCustomer(t, db)
	shirt := seedProduct(t, db, "shirt", 1000, map[string]int{"M": 10, "L": 5})
	item := deliveredLine(t, db, customer.ID, shirt, 2)

	exchange, err := RequestExchange(db, customer.ID, model.RequestExchangeInput{
		OrderItemID: item.ID, NewSize: "L", NewQuantity: 2, Reason: "wrong size",
	})
	if err != nil {
		t.Fatalf("request: %v", err)
	}

	approved, err := ApproveExchange(db, exchange.ID, 1, "ok")
	if err != nil {
		t.Fatalf("approve: %v", err)
	}
	if approved.Status != model.ExchangeApproved || approved.ApprovedAt == nil {
		t.Fatalf("approve state wrong: %s / %v", approved.Status, approved.ApprovedAt)
	}

	var reloaded model.Product
	if err := db.First(&reloaded, shirt.ID).Error; err != nil {
		t.Fatalf("reload product: %v", err)
	}
	// Order took 2 M (10->8); approval puts the 2 M back and takes 2 L.
	if got := reloaded.SizeStock("M"); got != 10 {
		t.Fatalf("size M stock = %d, want 10", got)
	}
	if got := reloaded.SizeStock("L"); got != 3 {
		t.Fatalf("size L stock = %d, want 3", got)
	}

	_, err = ApproveExchange(db, exchange.ID, 1, "again")
	wantKind(t, err, KindAlreadyProcessed)
}

func TestApproveExchangeFailsWithoutNewSizeStock(t *testing.T) {
	db := newTestDB(t)
	customer := seedCustomer(t, db)
	shirt := seedProduct(t, db, "shirt", 1000, map[string]int{"M": 10, "L": 1})
	item := deliveredLine(t, db, customer.ID, shirt, 2)

	exchange, err := RequestExchange(db, customer.ID, model.RequestExchangeInput{
		OrderItemID: item.ID, NewSize: "L", NewQuantity: 2,
	})
	if err != nil {
		t.Fatalf("request: %v", err)
	}

	_, err = ApproveExchange(db, exchange.ID, 1, "")
	wantKind(t, err, KindValidation)

	// Failure must not leak the old-size restock.
	var reloaded model.Product
	if err := db.First(&reloaded, shirt.ID).Error; err != nil {
		t.Fatalf("reload product: %v", err)
	}
	if got := reloaded.SizeStock("M"); got != 8 {
		t.Fatalf("size M stock = %d, want 8", got)
	}
	if got := reloaded.SizeStock("L"); got != 1 {
		t.Fatalf("size L stock = %d, want 1", got)
	}
}

func TestExchangeDeliveryLifecycle(t *testing.T) {
	db := newTestDB(t)
	customer := seedCustomer(t, db)
	shirt := seedProduct(t, db, "shirt", 1000, map[string]int{"M": 10, "L": 5})
	item := deliveredLine(t, db, customer.ID, shirt, 1)

	exchange, err := RequestExchange(db, customer.ID, model.RequestExchangeInput{
		OrderItemID: item.ID, NewSize: "L", NewQuantity: 1,
	})
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	if _, err := ApproveExchange(db, exchange.ID, 1, ""); err != nil {
		t.Fatalf("approve: %v", err)
	}

	guy := seedDeliveryGuy(t, db, "approved")
	if _, err := AssignExchangeDelivery(db, exchange.ID, guy.ID); err != nil {
		t.Fatalf("assign: %v", err)
	}
	if _, err := StartExchangeDelivery(db, exchange.ID); err != nil {
		t.Fatalf("start: %v", err)
	}
	done, err := CompleteExchangeDelivery(db, exchange.ID)
	if err != nil {
		t.Fatalf("complete: %v", err)
	}
	if done.Status != model.ExchangeDelivered || done.DeliveredAt == nil {
		t.Fatalf("final state wrong: %s / %v", done.Status, done.DeliveredAt)
	}

	// The order line now reflects what the customer holds.
	var reloaded model.OrderItem
	if err := db.First(&reloaded, item.ID).Error; err != nil {
		t.Fatalf("reload item: %v", err)
	}
	if reloaded.SelectedSize != "L" {
		t.Fatalf("item size = %s, want L", reloaded.SelectedSize)
	}
	if reloaded.ExchangeStatus != model.ItemExchangeCompleted {
		t.Fatalf("item exchange status = %s, want completed", reloaded.ExchangeStatus)
	}

	// Out-of-order transitions are rejected.
	_, err = StartExchangeDelivery(db, exchange.ID)
	wantKind(t, err, KindInvalidState)
}

func TestAssignExchangeRequiresApprovedStatusAndGuy(t *testing.T) {
	db := newTestDB(t)
	customer := seedCustomer(t, db)
	shirt := seedProduct(t, db, "shirt", 1000, map[string]int{"M": 10, "L": 5})
	item := deliveredLine(t, db, customer.ID, shirt, 1)

	exchange, err := RequestExchange(db, customer.ID, model.RequestExchangeInput{
		OrderItemID: item.ID, NewSize: "L", NewQuantity: 1,
	})
	if err != nil {
		t.Fatalf("request: %v", err)
	}

	guy := seedDeliveryGuy(t, db, "approved")
	_, err = AssignExchangeDelivery(db, exchange.ID, guy.ID)
	wantKind(t, err, KindInvalidState)

	if _, err := ApproveExchange(db, exchange.ID, 1, ""); err != nil {
		t.Fatalf("approve: %v", err)
	}
	pending := seedDeliveryGuy(t, db, "pending")
	_, err = AssignExchangeDelivery(db, exchange.ID, pending.ID)
	wantKind(t, err, KindInvalidState)

	if _, err := AssignExchangeDelivery(db, exchange.ID, guy.ID); err != nil {
		t.Fatalf("assign: %v", err)
	}
}

func TestRejectApprovedExchangeRestoresStock(t *testing.T) {
	db := newTestDB(t)
	customer := seedCustomer(t, db)
	shirt := seedProduct(t, db, "shirt", 1000, map[string]int{"M": 10, "L": 5})
	item := deliveredLine(t, db, customer.ID, shirt, 2)

	exchange, err := RequestExchange(db, customer.ID, model.RequestExchangeInput{
		OrderItemID: item.ID, NewSize: "L", NewQuantity: 2,
	})
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	if _, err := ApproveExchange(db, exchange.ID, 1, ""); err != nil {
		t.Fatalf("approve: %v", err)
	}

	rejected, err := RejectExchange(db, exchange.ID, 1, "customer changed their mind")
	if err != nil {
		t.Fatalf("reject: %v", err)
	}
	if rejected.Status != model.ExchangeRejected {
		t.Fatalf("status = %s, want rejected", rejected.Status)
	}

	// The approval swap (M back in, L taken out) is undone.
	var reloaded model.Product
	if err := db.First(&reloaded, shirt.ID).Error; err != nil {
		t.Fatalf("reload product: %v", err)
	}
	if got := reloaded.SizeStock("M"); got != 8 {
		t.Fatalf("size M stock = %d, want 8", got)
	}
	if got := reloaded.SizeStock("L"); got != 5 {
		t.Fatalf("size L stock = %d, want 5", got)
	}

	_, err = RejectExchange(db, exchange.ID, 1, "again")
	wantKind(t, err, KindAlreadyProcessed)
}

func TestRejectOutForDeliveryExchangeRejected(t *testing.T) {
	db := newTestDB(t)
	customer := seedCustomer(t, db)
	shirt := seedProduct(t, db, "shirt", 1000, map[string]int{"M": 10, "L": 5})
	item := deliveredLine(t, db, customer.ID, shirt, 1)

	exchange, err := RequestExchange(db, customer.ID, model.RequestExchangeInput{
		OrderItemID: item.ID, NewSize: "L", NewQuantity: 1,
	})
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	if _, err := ApproveExchange(db, exchange.ID, 1, ""); err != nil {
		t.Fatalf("approve: %v", err)
	}
	guy := seedDeliveryGuy(t, db, "approved")
	if _, err := AssignExchangeDelivery(db, exchange.ID, guy.ID); err != nil {
		t.Fatalf("assign: %v", err)
	}

	_, err = RejectExchange(db, exchange.ID, 1, "too late")
	wantKind(t, err, KindInvalidState)
}

func TestRequestExchangeMustChangeSomething(t *testing.T) {
	db := newTestDB(t)
	customer := seedCustomer(t, db)
	shirt := seedProduct(t, db, "shirt", 1000, map[string]int{"M": 10, "L": 5})
	item := deliveredLine(t, db, customer.ID, shirt, 2)

	_, err := RequestExchange(db, customer.ID, model.RequestExchangeInput{
		OrderItemID: item.ID, NewSize: "M", NewQuantity: 2,
	})
	wantKind(t, err, KindValidation)
}
