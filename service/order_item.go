package service

import (
	"errors"

	"trendkart/model"

	"gorm.io/gorm"
)

// loadItemWithOrder fetches an order item and its parent order under row
// locks. A non-zero customerID enforces ownership.
func loadItemWithOrder(tx *gorm.DB, itemID uint, customerID uint) (*model.OrderItem, *model.Order, error) {
	var item model.OrderItem
	if err := rowLock(tx).First(&item, itemID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrNotFound("order item %d not found", itemID)
		}
		return nil, nil, ErrStorage(err)
	}
	var order model.Order
	if err := rowLock(tx).First(&order, item.OrderID).Error; err != nil {
		return nil, nil, ErrStorage(err)
	}
	if customerID != 0 && order.CustomerID != customerID {
		return nil, nil, ErrNotFound("order item %d not found", itemID)
	}
	return &item, &order, nil
}

// CancelOrderItem cancels part or all of a single order line. Each line
// tracks its own cancelled quantity, so cancelling one item never touches
// its siblings. Paid lines are queued for refund; the money moves later,
// when an admin processes the order refund.
func CancelOrderItem(db *gorm.DB, itemID uint, customerID uint, in model.CancelItemInput, cancelledBy string) (*model.OrderItem, error) {
	var item *model.OrderItem
	err := db.Transaction(func(tx *gorm.DB) error {
		var order *model.Order
		var err error
		item, order, err = loadItemWithOrder(tx, itemID, customerID)
		if err != nil {
			return err
		}

		switch item.Status {
		case model.ItemDelivered:
			return ErrInvalidState("item %s is already delivered", item.ProductName)
		case model.ItemRefunded:
			return ErrInvalidState("item %s is already refunded", item.ProductName)
		}
		remaining := item.RemainingQuantity()
		if remaining == 0 {
			return ErrAlreadyProcessed("item %s is already fully cancelled", item.ProductName)
		}
		if in.Quantity > remaining {
			return ErrValidation("cannot cancel %d of %s, only %d remaining", in.Quantity, item.ProductName, remaining)
		}

		now := nowFunc()
		updates := map[string]any{
			"quantity_cancel":     item.QuantityCancel + in.Quantity,
			"cancel_reason":       in.Reason,
			"status":              model.ItemCancelled,
			"cancel_requested_at": now,
			"cancelled_at":        now,
			"cancelled_by":        cancelledBy,
		}
		if order.PaymentStatus == model.PaymentCompleted && item.RefundStatus == model.RefundNotApplicable {
			updates["refund_status"] = model.RefundPending
			updates["refund_requested_at"] = now
		}
		// Updates writes the map values back into item, quantity_cancel included.
		if err := tx.Model(item).Updates(updates).Error; err != nil {
			return ErrStorage(err)
		}

		order.AppendFlowStep("cancel_flow", "cancel_request_initiated")
		orderUpdates := map[string]any{"delivery_notes": order.DeliveryNotes}

		// When every line is fully cancelled, the order follows.
		var openItems int64
		err = tx.Model(&model.OrderItem{}).
			Where("order_id = ? AND quantity_cancel < quantity", order.ID).
			Count(&openItems).Error
		if err != nil {
			return ErrStorage(err)
		}
		if openItems == 0 {
			orderUpdates["status"] = model.OrderCancelled
		}
		if err := tx.Model(order).Updates(orderUpdates).Error; err != nil {
			return ErrStorage(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return item, nil
}

// RequestItemRefund queues a delivered or cancelled paid line for refund.
func RequestItemRefund(db *gorm.DB, itemID uint, customerID uint, reason string) (*model.OrderItem, error) {
	var item *model.OrderItem
	err := db.Transaction(func(tx *gorm.DB) error {
		var order *model.Order
		var err error
		item, order, err = loadItemWithOrder(tx, itemID, customerID)
		if err != nil {
			return err
		}

		if item.RefundStatus == model.RefundCompleted {
			return ErrAlreadyProcessed("item %s is already refunded", item.ProductName)
		}
		if item.RefundStatus == model.RefundPending {
			return ErrAlreadyProcessed("refund for %s is already requested", item.ProductName)
		}
		if order.PaymentStatus != model.PaymentCompleted {
			return ErrInvalidState("order %s has no completed payment to refund", order.OrderNumber)
		}
		if item.Status != model.ItemDelivered && item.Status != model.ItemCancelled {
			return ErrInvalidState("item %s must be delivered or cancelled before a refund", item.ProductName)
		}

		now := nowFunc()
		err = tx.Model(item).Updates(map[string]any{
			"refund_status":       model.RefundPending,
			"refund_reason":       reason,
			"refund_requested_at": now,
		}).Error
		if err != nil {
			return ErrStorage(err)
		}
		item.RefundStatus = model.RefundPending
		return nil
	})
	if err != nil {
		return nil, err
	}
	return item, nil
}

// UpdateOrderItemsStatus bulk-moves items of an order, skipping terminal
// ones, then recomputes the overall order status from its items.
func UpdateOrderItemsStatus(db *gorm.DB, orderID uint, status model.OrderItemStatus, itemIDs []uint) (*model.Order, error) {
	if !status.Valid() {
		return nil, ErrValidation("unknown item status %q", status)
	}
	var order model.Order
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := rowLock(tx).First(&order, orderID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound("order %d not found", orderID)
			}
			return ErrStorage(err)
		}

		q := tx.Model(&model.OrderItem{}).
			Where("order_id = ? AND status NOT IN ?", orderID,
				[]model.OrderItemStatus{model.ItemCancelled, model.ItemRefunded})
		if len(itemIDs) > 0 {
			q = q.Where("id IN ?", itemIDs)
		}
		if err := q.Update("status", status).Error; err != nil {
			return ErrStorage(err)
		}

		var items []model.OrderItem
		if err := tx.Where("order_id = ?", orderID).Find(&items).Error; err != nil {
			return ErrStorage(err)
		}
		overall := overallOrderStatus(items)
		if overall != order.Status {
			orderUpdates := map[string]any{"status": overall}
			if overall == model.OrderDelivered {
				now := nowFunc()
				orderUpdates["delivered_at"] = now
				order.DeliveredAt = &now
			}
			if err := tx.Model(&order).Updates(orderUpdates).Error; err != nil {
				return ErrStorage(err)
			}
			order.Status = overall
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// overallOrderStatus derives an order's status from its items: all terminal
// means cancelled/refunded, otherwise the least advanced open item wins.
func overallOrderStatus(items []model.OrderItem) model.OrderStatus {
	if len(items) == 0 {
		return model.OrderPending
	}
	rank := map[model.OrderItemStatus]int{
		model.ItemPending:    0,
		model.ItemConfirmed:  1,
		model.ItemProcessing: 2,
		model.ItemShipped:    3,
		model.ItemDelivered:  4,
	}
	lowest := -1
	var lowestStatus model.OrderItemStatus
	allRefunded := true
	for _, item := range items {
		if item.Status != model.ItemRefunded {
			allRefunded = false
		}
		if item.Status.Terminal() {
			continue
		}
		r, ok := rank[item.Status]
		if !ok {
			continue
		}
		if lowest == -1 || r < lowest {
			lowest = r
			lowestStatus = item.Status
		}
	}
	if lowest == -1 {
		if allRefunded {
			return model.OrderRefunded
		}
		return model.OrderCancelled
	}
	return model.OrderStatus(lowestStatus)
}
