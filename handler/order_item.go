package handler

import (
	"errors"

	"trendkart/constants"
	"trendkart/database"
	"trendkart/model"
	"trendkart/service"
	"trendkart/utils"

	"github.com/gofiber/fiber/v2"
)

func CancelOrderItem(c *fiber.Ctx) error {
	db := database.DB
	customerId := c.Locals("customerId").(uint)

	itemId, ok := c.Locals("inputId").(int)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, errors.New("missing item id"))
	}
	input, ok := c.Locals("CancelItem").(model.CancelItemInput)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, errors.New("missing validated input"))
	}

	item, err := service.CancelOrderItem(db, uint(itemId), customerId, input, constants.CANCELLED_BY_CUSTOMER)
	if err != nil {
		return utils.ServiceErrorResponse(c, err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, item)
}

func RequestItemRefund(c *fiber.Ctx) error {
	db := database.DB
	customerId := c.Locals("customerId").(uint)

	itemId, ok := c.Locals("inputId").(int)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, errors.New("missing item id"))
	}
	input, ok := c.Locals("RequestRefund").(model.RequestRefundInput)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, errors.New("missing validated input"))
	}

	item, err := service.RequestItemRefund(db, uint(itemId), customerId, input.Reason)
	if err != nil {
		return utils.ServiceErrorResponse(c, err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, item)
}

// UpdateOrderItemsStatus moves selected items of an order (or all open ones)
// to a new status and recomputes the order status from its items.
func UpdateOrderItemsStatus(c *fiber.Ctx) error {
	db := database.DB

	orderId, ok := c.Locals("inputId").(int)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, errors.New("missing order id"))
	}
	input, ok := c.Locals("UpdateOrderStatus").(model.UpdateOrderStatusInput)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, errors.New("missing validated input"))
	}

	order, err := service.UpdateOrderItemsStatus(db, uint(orderId), model.OrderItemStatus(input.Status), input.ItemIDs)
	if err != nil {
		return utils.ServiceErrorResponse(c, err)
	}

	PublishOrderUpdate(order)

	return utils.SuccessResponse(c, fiber.StatusOK, order)
}
