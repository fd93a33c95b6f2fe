package service

import (
	"errors"

	"trendkart/model"

	"gorm.io/gorm"
)

// RequestExchange opens an exchange for a delivered order line. At most one
// non-terminal exchange may exist per line; a second request is rejected
// until the first one is delivered or rejected. The size/quantity swap on
// stock happens at approval, not here.
func RequestExchange(db *gorm.DB, customerID uint, in model.RequestExchangeInput) (*model.Exchange, error) {
	var exchange *model.Exchange
	err := db.Transaction(func(tx *gorm.DB) error {
		item, order, err := loadItemWithOrder(tx, in.OrderItemID, customerID)
		if err != nil {
			return err
		}
		if item.Status != model.ItemDelivered {
			return ErrInvalidState("item %s must be delivered before an exchange", item.ProductName)
		}
		if in.NewQuantity > item.Quantity {
			return ErrValidation("exchange quantity %d cannot exceed the ordered quantity %d", in.NewQuantity, item.Quantity)
		}
		if in.NewSize == item.SelectedSize && in.NewQuantity == item.Quantity {
			return ErrValidation("exchange must change the size or the quantity")
		}

		var active int64
		err = tx.Model(&model.Exchange{}).
			Where("order_item_id = ? AND status IN ?", item.ID, []model.ExchangeStatus{
				model.ExchangeInitiated, model.ExchangeApproved,
				model.ExchangeAssigned, model.ExchangeOutForDelivery,
			}).Count(&active).Error
		if err != nil {
			return ErrStorage(err)
		}
		if active > 0 {
			return ErrInvalidState("item %s already has an open exchange", item.ProductName)
		}

		var product model.Product
		if err := tx.First(&product, item.ProductID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound("product %d not found", item.ProductID)
			}
			return ErrStorage(err)
		}

		// Exchanging for more units than paid for requires a top-up at the
		// current catalog price.
		additional := 0.0
		if in.NewQuantity > item.Quantity-item.QuantityCancel {
			extra := in.NewQuantity - (item.Quantity - item.QuantityCancel)
			additional = Round2(product.Price * float64(extra))
		}

		e := model.Exchange{
			OrderID:                   order.ID,
			OrderItemID:               item.ID,
			CustomerID:                customerID,
			ProductID:                 item.ProductID,
			OldSize:                   item.SelectedSize,
			NewSize:                   in.NewSize,
			OldQuantity:               item.Quantity,
			NewQuantity:               in.NewQuantity,
			Reason:                    in.Reason,
			AdditionalPaymentRequired: additional > 0,
			AdditionalAmount:          additional,
			Status:                    model.ExchangeInitiated,
		}
		if err := tx.Create(&e).Error; err != nil {
			return ErrStorage(err)
		}

		err = tx.Model(item).Updates(map[string]any{
			"exchange_status": model.ItemExchangeRequested,
			"exchange_id":     e.ID,
		}).Error
		if err != nil {
			return ErrStorage(err)
		}

		exchange = &e
		return nil
	})
	if err != nil {
		return nil, err
	}
	return exchange, nil
}

func loadExchange(tx *gorm.DB, exchangeID uint) (*model.Exchange, error) {
	var exchange model.Exchange
	if err := rowLock(tx).First(&exchange, exchangeID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound("exchange %d not found", exchangeID)
		}
		return nil, ErrStorage(err)
	}
	return &exchange, nil
}

// ApproveExchange swaps stock (old size back in, new size reserved) and moves
// the exchange to approved, in one transaction. A missing new size fails the
// whole operation and leaves stock untouched.
func ApproveExchange(db *gorm.DB, exchangeID uint, adminID uint, adminNotes string) (*model.Exchange, error) {
	var exchange *model.Exchange
	err := db.Transaction(func(tx *gorm.DB) error {
		var err error
		exchange, err = loadExchange(tx, exchangeID)
		if err != nil {
			return err
		}
		if exchange.Status.Terminal() || exchange.Status == model.ExchangeApproved {
			return ErrAlreadyProcessed("exchange %d is already %s", exchangeID, exchange.Status)
		}
		if exchange.Status != model.ExchangeInitiated {
			return ErrInvalidState("exchange %d is %s and can no longer be approved", exchangeID, exchange.Status)
		}

		var product model.Product
		if err := rowLock(tx).First(&product, exchange.ProductID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound("product %d not found", exchange.ProductID)
			}
			return ErrStorage(err)
		}

		product.AddSizeStock(exchange.OldSize, exchange.OldQuantity)
		if err := product.ReserveSize(exchange.NewSize, exchange.NewQuantity); err != nil {
			return ErrValidation("%s: %v", product.Name, err)
		}
		if err := tx.Model(&product).Update("sizes", product.Sizes).Error; err != nil {
			return ErrStorage(err)
		}

		now := nowFunc()
		err = tx.Model(exchange).Updates(map[string]any{
			"status":      model.ExchangeApproved,
			"approved_by": adminID,
			"approved_at": now,
			"admin_notes": adminNotes,
		}).Error
		if err != nil {
			return ErrStorage(err)
		}
		exchange.Status = model.ExchangeApproved

		err = tx.Model(&model.OrderItem{}).Where("id = ?", exchange.OrderItemID).
			Update("exchange_status", model.ItemExchangeApproved).Error
		if err != nil {
			return ErrStorage(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return exchange, nil
}

// RejectExchange closes an open exchange with a reason. Rejecting an already
// approved exchange undoes the stock swap done at approval; once it is out
// with a delivery guy it can no longer be rejected.
func RejectExchange(db *gorm.DB, exchangeID uint, adminID uint, reason string) (*model.Exchange, error) {
	var exchange *model.Exchange
	err := db.Transaction(func(tx *gorm.DB) error {
		var err error
		exchange, err = loadExchange(tx, exchangeID)
		if err != nil {
			return err
		}
		if exchange.Status.Terminal() {
			return ErrAlreadyProcessed("exchange %d is already %s", exchangeID, exchange.Status)
		}
		if exchange.Status != model.ExchangeInitiated && exchange.Status != model.ExchangeApproved {
			return ErrInvalidState("exchange %d is %s and can no longer be rejected", exchangeID, exchange.Status)
		}

		if exchange.Status == model.ExchangeApproved {
			var product model.Product
			if err := rowLock(tx).First(&product, exchange.ProductID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return ErrNotFound("product %d not found", exchange.ProductID)
				}
				return ErrStorage(err)
			}
			product.AddSizeStock(exchange.NewSize, exchange.NewQuantity)
			if err := product.ReserveSize(exchange.OldSize, exchange.OldQuantity); err != nil {
				return ErrValidation("%s: %v", product.Name, err)
			}
			if err := tx.Model(&product).Update("sizes", product.Sizes).Error; err != nil {
				return ErrStorage(err)
			}
		}

		err = tx.Model(exchange).Updates(map[string]any{
			"status":      model.ExchangeRejected,
			"approved_by": adminID,
			"admin_notes": reason,
		}).Error
		if err != nil {
			return ErrStorage(err)
		}
		exchange.Status = model.ExchangeRejected

		err = tx.Model(&model.OrderItem{}).Where("id = ?", exchange.OrderItemID).
			Update("exchange_status", model.ItemExchangeNone).Error
		if err != nil {
			return ErrStorage(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return exchange, nil
}

// AssignExchangeDelivery hands an approved exchange to a delivery actor.
func AssignExchangeDelivery(db *gorm.DB, exchangeID uint, deliveryGuyID uint) (*model.Exchange, error) {
	var exchange *model.Exchange
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

		var err error
		exchange, err = loadExchange(tx, exchangeID)
		if err != nil {
			return err
		}
		if exchange.Status != model.ExchangeApproved {
			return ErrInvalidState("exchange %d must be approved before assignment, is %s", exchangeID, exchange.Status)
		}

		now := nowFunc()
		err = tx.Model(exchange).Updates(map[string]any{
			"status":          model.ExchangeAssigned,
			"delivery_guy_id": deliveryGuyID,
			"assigned_at":     now,
		}).Error
		if err != nil {
			return ErrStorage(err)
		}
		exchange.Status = model.ExchangeAssigned
		exchange.DeliveryGuyID = &deliveryGuyID
		exchange.AssignedAt = &now
		return nil
	})
	if err != nil {
		return nil, err
	}
	return exchange, nil
}

// StartExchangeDelivery moves an assigned exchange out for delivery.
func StartExchangeDelivery(db *gorm.DB, exchangeID uint) (*model.Exchange, error) {
	var exchange *model.Exchange
	err := db.Transaction(func(tx *gorm.DB) error {
		var err error
		exchange, err = loadExchange(tx, exchangeID)
		if err != nil {
			return err
		}
		if exchange.Status != model.ExchangeAssigned {
			return ErrInvalidState("exchange %d is not assigned, is %s", exchangeID, exchange.Status)
		}
		if err := tx.Model(exchange).Update("status", model.ExchangeOutForDelivery).Error; err != nil {
			return ErrStorage(err)
		}
		exchange.Status = model.ExchangeOutForDelivery
		return nil
	})
	if err != nil {
		return nil, err
	}
	return exchange, nil
}

// CompleteExchangeDelivery closes the exchange and rewrites the order line's
// size and quantity to what the customer actually holds now.
func CompleteExchangeDelivery(db *gorm.DB, exchangeID uint) (*model.Exchange, error) {
	var exchange *model.Exchange
	err := db.Transaction(func(tx *gorm.DB) error {
		var err error
		exchange, err = loadExchange(tx, exchangeID)
		if err != nil {
			return err
		}
		if exchange.Status != model.ExchangeAssigned && exchange.Status != model.ExchangeOutForDelivery {
			return ErrInvalidState("exchange %d is not out for delivery, is %s", exchangeID, exchange.Status)
		}

		now := nowFunc()
		err = tx.Model(exchange).Updates(map[string]any{
			"status":       model.ExchangeDelivered,
			"delivered_at": now,
		}).Error
		if err != nil {
			return ErrStorage(err)
		}
		exchange.Status = model.ExchangeDelivered
		exchange.DeliveredAt = &now

		err = tx.Model(&model.OrderItem{}).Where("id = ?", exchange.OrderItemID).
			Updates(map[string]any{
				"exchange_status": model.ItemExchangeCompleted,
				"selected_size":   exchange.NewSize,
				"quantity":        exchange.NewQuantity,
			}).Error
		if err != nil {
			return ErrStorage(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return exchange, nil
}

// ListCustomerExchanges returns a customer's exchanges, newest first.
func ListCustomerExchanges(db *gorm.DB, customerID uint, limit int) (model.Exchanges, error) {
	if limit <= 0 {
		limit = 20
	}
	var exchanges model.Exchanges
	err := db.Where("customer_id = ?", customerID).
		Order("created_at desc").Limit(limit).
		Find(&exchanges).Error
	if err != nil {
		return nil, ErrStorage(err)
	}
	return exchanges, nil
}

// ListExchanges is the admin view, optionally filtered by status.
func ListExchanges(db *gorm.DB, status model.ExchangeStatus, limit int) (model.Exchanges, error) {
	if limit <= 0 {
		limit = 50
	}
	q := db.Order("created_at desc").Limit(limit)
	if status != "" {
		q = q.Where("status = ?", status)
	}
	var exchanges model.Exchanges
	if err := q.Find(&exchanges).Error; err != nil {
		return nil, ErrStorage(err)
	}
	return exchanges, nil
}

// ListDeliveryGuyExchanges returns the open exchanges assigned to one
// delivery actor.
func ListDeliveryGuyExchanges(db *gorm.DB, deliveryGuyID uint) (model.Exchanges, error) {
	var exchanges model.Exchanges
	err := db.Where("delivery_guy_id = ? AND status IN ?", deliveryGuyID,
		[]model.ExchangeStatus{model.ExchangeAssigned, model.ExchangeOutForDelivery}).
		Order("assigned_at asc").
		Find(&exchanges).Error
	if err != nil {
		return nil, ErrStorage(err)
	}
	return exchanges, nil
}
