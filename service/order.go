package service

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"trendkart/constants"
	"trendkart/model"

	"gorm.io/gorm"
)

// DeliveryFee returns the flat fee charged for a delivery type.
func DeliveryFee(deliveryType string) float64 {
	switch deliveryType {
	case "express":
		return constants.DELIVERY_FEE_EXPRESS
	case "scheduled":
		return constants.DELIVERY_FEE_SCHEDULED
	default:
		return constants.DELIVERY_FEE_STANDARD
	}
}

func estimatedDelivery(deliveryType string, scheduled *time.Time, at time.Time) *time.Time {
	var eta time.Time
	switch deliveryType {
	case "express":
		eta = at.Add(time.Hour)
	case "scheduled":
		if scheduled != nil {
			eta = *scheduled
		} else {
			eta = at.Add(24 * time.Hour)
		}
	default:
		eta = at.Add(48 * time.Hour)
	}
	return &eta
}

// CreateOrder places an order. Prices are recomputed from the current catalog,
// size stock is reserved, the coupon is re-validated and its usage consumed,
// and a wallet payment is debited — all inside one transaction, so a failure
// at any step leaves no trace.
func CreateOrder(db *gorm.DB, customerID uint, in model.CreateOrderInput) (*model.Order, error) {
	if len(in.Items) == 0 {
		return nil, ErrValidation("order needs at least one item")
	}
	if in.DeliveryType == "scheduled" && in.ScheduledTime == nil {
		return nil, ErrValidation("scheduled delivery needs a scheduled time")
	}

	addressRaw, err := json.Marshal(in.DeliveryAddress)
	if err != nil {
		return nil, ErrValidation("delivery address is not serializable")
	}

	var order *model.Order
	err = db.Transaction(func(tx *gorm.DB) error {
		now := nowFunc()

		subtotal := 0.0
		orderItems := make([]model.OrderItem, 0, len(in.Items))
		lines := make([]couponLine, 0, len(in.Items))

		for _, item := range in.Items {
			var product model.Product
			if err := rowLock(tx).First(&product, item.ProductID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return ErrNotFound("product %d not found", item.ProductID)
				}
				return ErrStorage(err)
			}
			if !product.IsActive {
				return ErrValidation("product %s is no longer available", product.Name)
			}
			if item.Size != "" {
				if err := product.ReserveSize(item.Size, item.Quantity); err != nil {
					return ErrValidation("%s: %v", product.Name, err)
				}
				if err := tx.Model(&product).Update("sizes", product.Sizes).Error; err != nil {
					return ErrStorage(err)
				}
			}

			lineTotal := Round2(product.Price * float64(item.Quantity))
			subtotal += lineTotal

			orderItems = append(orderItems, model.OrderItem{
				ProductID:    product.ID,
				Quantity:     item.Quantity,
				UnitPrice:    product.Price,
				TotalPrice:   lineTotal,
				ProductName:  product.Name,
				ProductImage: product.Image,
				SelectedSize: item.Size,
				Status:       model.ItemPending,
			})
			lines = append(lines, couponLine{
				ProductID:     product.ID,
				CategoryID:    product.CategoryID,
				SubcategoryID: product.SubcategoryID,
				Total:         lineTotal,
			})
		}
		subtotal = Round2(subtotal)

		deliveryFee := DeliveryFee(in.DeliveryType)
		platformFee := constants.PLATFORM_FEE

		discount := 0.0
		var couponID *uint
		if in.CouponCode != "" {
			quote, err := evaluateCoupon(tx, in.CouponCode, lines, now)
			if err != nil {
				return err
			}
			discount = quote.DiscountAmount
			couponID = &quote.Coupon.ID
			if err := consumeCouponUsage(tx, quote.Coupon.ID); err != nil {
				return err
			}
		}

		total := Round2(subtotal + deliveryFee + platformFee - discount)
		if total < 0 {
			total = 0
		}

		paymentStatus := model.PaymentPending
		switch in.PaymentMethod {
		case "wallet":
			ref := fmt.Sprintf("checkout-%d", now.UnixNano())
			if _, err := applyWalletDebit(tx, customerID, total, "Order payment", ref); err != nil {
				return err
			}
			paymentStatus = model.PaymentCompleted
		case "razorpay":
			if in.PaymentID != "" {
				paymentStatus = model.PaymentCompleted
			}
		}

		o := model.Order{
			CustomerID:        customerID,
			Status:            model.OrderPending,
			DeliveryAddress:   string(addressRaw),
			DeliveryType:      in.DeliveryType,
			ScheduledTime:     in.ScheduledTime,
			EstimatedDelivery: estimatedDelivery(in.DeliveryType, in.ScheduledTime, now),
			PaymentMethod:     in.PaymentMethod,
			PaymentID:         in.PaymentID,
			PaymentStatus:     paymentStatus,
			Subtotal:          subtotal,
			DeliveryFeeAmount: deliveryFee,
			PlatformFee:       platformFee,
			DiscountAmount:    discount,
			TotalAmount:       total,
			CouponID:          couponID,
			Items:             orderItems,
		}
		// The public order number embeds the row ID, so insert first.
		o.OrderNumber = fmt.Sprintf("ORD%d", now.UnixNano())
		if err := tx.Create(&o).Error; err != nil {
			return ErrStorage(err)
		}
		o.OrderNumber = o.GenerateOrderNumber()
		if err := tx.Model(&o).Update("order_number", o.OrderNumber).Error; err != nil {
			return ErrStorage(err)
		}

		payment := model.Transaction{
			CustomerID:    &customerID,
			Type:          "order_payment",
			Amount:        total,
			Description:   fmt.Sprintf("Payment for order %s", o.OrderNumber),
			ReferenceID:   WalletReference("ORD", o.ID),
			ReferenceType: "order",
			Status:        string(paymentStatus),
			PaymentMethod: in.PaymentMethod,
		}
		if err := tx.Create(&payment).Error; err != nil {
			return ErrStorage(err)
		}

		order = &o
		return nil
	})
	if err != nil {
		return nil, err
	}
	return order, nil
}

// GetOrder loads an order with its items. A non-zero customerID restricts the
// lookup to that customer's orders.
func GetOrder(db *gorm.DB, orderID uint, customerID uint) (*model.Order, error) {
	q := db.Preload("Items").Preload("DeliveryGuy")
	if customerID != 0 {
		q = q.Where("customer_id = ?", customerID)
	}
	var order model.Order
	if err := q.First(&order, orderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound("order %d not found", orderID)
		}
		return nil, ErrStorage(err)
	}
	return &order, nil
}

// ListCustomerOrders returns a customer's orders, newest first.
func ListCustomerOrders(db *gorm.DB, customerID uint, limit int) (model.Orders, error) {
	if limit <= 0 {
		limit = 20
	}
	var orders model.Orders
	err := db.Preload("Items").
		Where("customer_id = ?", customerID).
		Order("created_at desc").
		Limit(limit).
		Find(&orders).Error
	if err != nil {
		return nil, ErrStorage(err)
	}
	return orders, nil
}

// ListAllOrders is the admin view, optionally filtered by status.
func ListAllOrders(db *gorm.DB, status model.OrderStatus, p model.Pagination) (model.Orders, int64, error) {
	q := db.Model(&model.Order{})
	if status != "" {
		if !status.Valid() {
			return nil, 0, ErrValidation("unknown order status %q", status)
		}
		q = q.Where("status = ?", status)
	}
	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, ErrStorage(err)
	}
	var orders model.Orders
	err := q.Preload("Items").Preload("Customer").
		Order("created_at desc").
		Offset(p.Offset()).Limit(p.PerPage()).
		Find(&orders).Error
	if err != nil {
		return nil, 0, ErrStorage(err)
	}
	return orders, total, nil
}

// UpdateOrderStatus moves an order along the delivery path. Only forward
// moves are allowed; cancellation and refund go through their own operations.
func UpdateOrderStatus(db *gorm.DB, orderID uint, status model.OrderStatus) (*model.Order, error) {
	if !status.Valid() {
		return nil, ErrValidation("unknown order status %q", status)
	}
	if status == model.OrderCancelled || status == model.OrderRefunded {
		return nil, ErrValidation("status %s is set by its own operation, not a status update", status)
	}

	var order model.Order
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := rowLock(tx).First(&order, orderID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound("order %d not found", orderID)
			}
			return ErrStorage(err)
		}
		if order.Status == model.OrderCancelled || order.Status == model.OrderRefunded {
			return ErrInvalidState("order %s is %s and cannot move to %s", order.OrderNumber, order.Status, status)
		}
		if !status.ForwardOf(order.Status) {
			return ErrInvalidState("order %s cannot move from %s to %s", order.OrderNumber, order.Status, status)
		}

		updates := map[string]any{"status": status}
		if status == model.OrderDelivered {
			now := nowFunc()
			updates["delivered_at"] = now
			order.DeliveredAt = &now
			// Cash on delivery settles when the order is handed over.
			if order.PaymentMethod == "cod" && order.PaymentStatus == model.PaymentPending {
				updates["payment_status"] = model.PaymentCompleted
				order.PaymentStatus = model.PaymentCompleted
			}
		}
		if err := tx.Model(&order).Updates(updates).Error; err != nil {
			return ErrStorage(err)
		}
		order.Status = status

		// Non-terminal items follow the order.
		itemStatus := model.OrderItemStatus(status)
		err := tx.Model(&model.OrderItem{}).
			Where("order_id = ? AND status NOT IN ?", orderID,
				[]model.OrderItemStatus{model.ItemCancelled, model.ItemRefunded}).
			Update("status", itemStatus).Error
		if err != nil {
			return ErrStorage(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// CancelOrder cancels every item that is still cancellable. Pre-shipment
// orders cancel outright; delivered orders within the 24h return window turn
// into a return request; anything else is rejected.
func CancelOrder(db *gorm.DB, orderID uint, customerID uint, cancelledBy string) (*model.Order, error) {
	var order model.Order
	err := db.Transaction(func(tx *gorm.DB) error {
		q := rowLock(tx)
		if customerID != 0 {
			q = q.Where("customer_id = ?", customerID)
		}
		if err := q.First(&order, orderID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound("order %d not found", orderID)
			}
			return ErrStorage(err)
		}

		now := nowFunc()
		switch {
		case order.Status == model.OrderCancelled || order.Status == model.OrderRefunded:
			return ErrAlreadyProcessed("order %s is already %s", order.OrderNumber, order.Status)
		case order.Status == model.OrderShipped:
			return ErrInvalidState("order %s is already shipped", order.OrderNumber)
		case order.Status == model.OrderDelivered:
			// The window anchors on the delivery stamp, not updated_at, so an
			// unrelated row touch cannot stretch it.
			deliveredAt := order.UpdatedAt
			if order.DeliveredAt != nil {
				deliveredAt = *order.DeliveredAt
			}
			if now.Sub(deliveredAt) > 24*time.Hour {
				return ErrInvalidState("return window for order %s has expired", order.OrderNumber)
			}
		}

		var items []model.OrderItem
		if err := rowLock(tx).Where("order_id = ?", orderID).Find(&items).Error; err != nil {
			return ErrStorage(err)
		}

		flow := "cancel_flow"
		flowStep := "cancel_request_initiated"
		reason := "Bulk order cancellation"
		if order.Status == model.OrderDelivered {
			flow = "return_flow"
			flowStep = "return_requested"
			reason = "Bulk order return"
		}

		for i := range items {
			item := &items[i]
			if item.Status.Terminal() {
				continue
			}
			updates := map[string]any{
				"status":              model.ItemCancelled,
				"quantity_cancel":     item.Quantity,
				"cancel_reason":       reason,
				"cancel_requested_at": now,
				"cancelled_at":        now,
				"cancelled_by":        cancelledBy,
			}
			if order.PaymentStatus == model.PaymentCompleted {
				updates["refund_status"] = model.RefundPending
				updates["refund_requested_at"] = now
			}
			if err := tx.Model(item).Updates(updates).Error; err != nil {
				return ErrStorage(err)
			}
		}

		order.AppendFlowStep(flow, flowStep)
		err := tx.Model(&order).Updates(map[string]any{
			"status":         model.OrderCancelled,
			"delivery_notes": order.DeliveryNotes,
		}).Error
		if err != nil {
			return ErrStorage(err)
		}
		order.Status = model.OrderCancelled
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// ProcessOrderRefund is the admin catch-up refund: every item not yet
// refund-completed is refunded at its full line price in one shot, whatever
// its cancellation history. Item updates, stock restoration, the single
// wallet credit and the order flip all commit together or not at all.
// Running it twice on the same order fails with an already-processed error
// and credits nothing.
func ProcessOrderRefund(db *gorm.DB, orderID uint) (*model.Order, float64, error) {
	var order model.Order
	var totalRefund float64
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := rowLock(tx).First(&order, orderID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound("order %d not found", orderID)
			}
			return ErrStorage(err)
		}

		var items []model.OrderItem
		if err := rowLock(tx).Where("order_id = ?", orderID).Find(&items).Error; err != nil {
			return ErrStorage(err)
		}
		if len(items) == 0 {
			return ErrNotFound("order %s has no items to refund", order.OrderNumber)
		}

		now := nowFunc()
		refunded := 0
		for i := range items {
			item := &items[i]
			if item.RefundStatus == model.RefundCompleted {
				continue
			}

			err := tx.Model(item).Updates(map[string]any{
				"refund_status": model.RefundCompleted,
				"refund_amount": item.TotalPrice,
				"refunded_at":   now,
				"status":        model.ItemRefunded,
			}).Error
			if err != nil {
				return ErrStorage(err)
			}
			totalRefund += item.TotalPrice

			// Put the line's stock back.
			if item.SelectedSize != "" && item.Quantity > 0 {
				var product model.Product
				if err := rowLock(tx).First(&product, item.ProductID).Error; err == nil {
					product.AddSizeStock(item.SelectedSize, item.Quantity)
					if err := tx.Model(&product).Update("sizes", product.Sizes).Error; err != nil {
						return ErrStorage(err)
					}
				} else if !errors.Is(err, gorm.ErrRecordNotFound) {
					return ErrStorage(err)
				}
			}
			refunded++
		}

		if refunded == 0 {
			return ErrAlreadyProcessed("all items of order %s have already been refunded", order.OrderNumber)
		}
		totalRefund = Round2(totalRefund)

		description := fmt.Sprintf("Order %s refund - %d products", order.OrderNumber, refunded)
		if _, err := applyWalletCredit(tx, order.CustomerID, totalRefund, model.TransactionRefund,
			description, WalletReference("ORD", order.ID)); err != nil {
			return err
		}

		log := model.Transaction{
			CustomerID:    &order.CustomerID,
			Type:          "refund",
			Amount:        totalRefund,
			Description:   description,
			ReferenceID:   WalletReference("ORD", order.ID),
			ReferenceType: "refund",
			Status:        "completed",
			PaymentMethod: "wallet",
		}
		if err := tx.Create(&log).Error; err != nil {
			return ErrStorage(err)
		}

		order.AppendFlowStep("cancel_flow", "cancel_request_initiated")
		order.AppendFlowStep("cancel_flow", "refund_initiated")
		order.AppendFlowStep("cancel_flow", "refunded")
		err := tx.Model(&order).Updates(map[string]any{
			"status":         model.OrderRefunded,
			"payment_status": model.PaymentRefunded,
			"delivery_notes": order.DeliveryNotes,
		}).Error
		if err != nil {
			return ErrStorage(err)
		}
		order.Status = model.OrderRefunded
		order.PaymentStatus = model.PaymentRefunded
		return nil
	})
	if err != nil {
		return nil, 0, err
	}
	return &order, totalRefund, nil
}

// AssignDeliveryGuy attaches an approved delivery actor to an unassigned
// order and its open items. Swapping an existing assignment goes through
// ReassignDeliveryGuy.
func AssignDeliveryGuy(db *gorm.DB, orderID uint, deliveryGuyID uint) (*model.Order, error) {
	return assignDelivery(db, orderID, deliveryGuyID, false)
}

// ReassignDeliveryGuy replaces the delivery actor on an already assigned
// order.
func ReassignDeliveryGuy(db *gorm.DB, orderID uint, deliveryGuyID uint) (*model.Order, error) {
	return assignDelivery(db, orderID, deliveryGuyID, true)
}

func assignDelivery(db *gorm.DB, orderID uint, deliveryGuyID uint, reassign bool) (*model.Order, error) {
	var order model.Order
	err := db.Transaction(func(tx *gorm.DB) error {
		var guy model.DeliveryGuy
		if err := tx.First(&guy, deliveryGuyID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound("delivery guy %d not found", deliveryGuyID)
			}
			return ErrStorage(err)
		}
		if !guy.Approved() {
			return ErrInvalidState("delivery guy %s is not approved", guy.Name)
		}

		if err := rowLock(tx).First(&order, orderID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound("order %d not found", orderID)
			}
			return ErrStorage(err)
		}
		switch order.Status {
		case model.OrderCancelled, model.OrderRefunded, model.OrderDelivered:
			return ErrInvalidState("order %s is %s and cannot be assigned", order.OrderNumber, order.Status)
		}
		if !reassign && order.DeliveryGuyID != nil {
			return ErrInvalidState("order %s is already assigned", order.OrderNumber)
		}
		if reassign && order.DeliveryGuyID == nil {
			return ErrInvalidState("order %s has no delivery guy to replace", order.OrderNumber)
		}

		now := nowFunc()
		err := tx.Model(&order).Updates(map[string]any{
			"delivery_guy_id": deliveryGuyID,
			"assigned_at":     now,
		}).Error
		if err != nil {
			return ErrStorage(err)
		}
		order.DeliveryGuyID = &deliveryGuyID
		order.AssignedAt = &now

		err = tx.Model(&model.OrderItem{}).
			Where("order_id = ? AND status NOT IN ?", orderID,
				[]model.OrderItemStatus{model.ItemCancelled, model.ItemRefunded}).
			Update("delivery_guy_id", deliveryGuyID).Error
		if err != nil {
			return ErrStorage(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// VerifyDeliveryCode resolves a scanned tracking code (the order number on
// the QR) to its order. Codes only verify while the order is actually out
// with a delivery guy.
func VerifyDeliveryCode(db *gorm.DB, code string) (*model.Order, error) {
	var order model.Order
	err := db.Preload("Items").Where("order_number = ?", code).First(&order).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound("unknown delivery code")
		}
		return nil, ErrStorage(err)
	}
	if order.DeliveryGuyID == nil {
		return nil, ErrInvalidState("order %s has not been handed to delivery", order.OrderNumber)
	}
	switch order.Status {
	case model.OrderCancelled, model.OrderRefunded, model.OrderDelivered:
		return nil, ErrInvalidState("order %s is %s", order.OrderNumber, order.Status)
	}
	return &order, nil
}
