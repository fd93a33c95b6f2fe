package handler

import (
	"errors"
	"fmt"
	"os"

	"trendkart/constants"
	"trendkart/database"
	"trendkart/model"
	"trendkart/service"
	"trendkart/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

func CreateOrder(c *fiber.Ctx) error {
	db := database.DB
	customerId := c.Locals("customerId").(uint)
	customer, _ := c.Locals("customer").(*model.Customer)

	input, ok := c.Locals("CreateOrder").(model.CreateOrderInput)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, errors.New("missing validated input"))
	}

	order, err := service.CreateOrder(db, customerId, input)
	if err != nil {
		return utils.ServiceErrorResponse(c, err)
	}

	// Ordered items leave the cart. Failure here does not undo the order.
	for _, item := range input.Items {
		db.Where("customer_id = ? AND product_id = ? AND size = ?",
			customerId, item.ProductID, item.Size).Delete(&model.CartItem{})
	}

	if customer != nil {
		utils.SendOrderConfirmationEmail(customer.Email, utils.OrderConfirmationData{
			OrderNumber:   order.OrderNumber,
			CustomerName:  customer.UserName,
			ItemCount:     len(order.Items),
			TotalAmount:   order.TotalAmount,
			PaymentMethod: order.PaymentMethod,
			DetailLink:    fmt.Sprintf("%s/orders/%d", os.Getenv("FRONTEND_URL"), order.ID),
		})
	}

	return utils.SuccessResponse(c, fiber.StatusCreated, order)
}

func GetMyOrders(c *fiber.Ctx) error {
	db := database.DB
	customerId := c.Locals("customerId").(uint)

	limit := c.QueryInt("limit", 0)
	orders, err := service.ListCustomerOrders(db, customerId, limit)
	if err != nil {
		return utils.ServiceErrorResponse(c, err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, orders)
}

func GetOrderById(c *fiber.Ctx) error {
	db := database.DB
	customerId := c.Locals("customerId").(uint)

	orderId, ok := c.Locals("inputId").(int)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, errors.New("missing order id"))
	}

	order, err := service.GetOrder(db, uint(orderId), customerId)
	if err != nil {
		return utils.ServiceErrorResponse(c, err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, order)
}

func GetAllOrders(c *fiber.Ctx) error {
	db := database.DB

	var p model.Pagination
	if limit := c.QueryInt("limit", 0); limit > 0 {
		p.Limit = utils.Ptr(limit)
	}
	if page := c.QueryInt("page", 0); page > 0 {
		p.Page = utils.Ptr(page)
	}

	status := model.OrderStatus(c.Query("status"))
	if status != "" && !status.Valid() {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, fmt.Sprintf("unknown status %q", status), nil)
	}

	orders, totalCount, err := service.ListAllOrders(db, status, p)
	if err != nil {
		return utils.ServiceErrorResponse(c, err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, model.ResponseCustom{
		Rows:       orders,
		Limit:      p.Limit,
		Page:       p.Page,
		TotalCount: totalCount,
	})
}

func GetOrderByIdAdmin(c *fiber.Ctx) error {
	db := database.DB

	orderId, ok := c.Locals("inputId").(int)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, errors.New("missing order id"))
	}

	order, err := service.GetOrder(db, uint(orderId), 0)
	if err != nil {
		return utils.ServiceErrorResponse(c, err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, order)
}

func UpdateOrderStatus(c *fiber.Ctx) error {
	db := database.DB

	orderId, ok := c.Locals("inputId").(int)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, errors.New("missing order id"))
	}
	input, ok := c.Locals("UpdateOrderStatus").(model.UpdateOrderStatusInput)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, errors.New("missing validated input"))
	}

	order, err := service.UpdateOrderStatus(db, uint(orderId), input.Status)
	if err != nil {
		return utils.ServiceErrorResponse(c, err)
	}

	PublishOrderUpdate(order)

	return utils.SuccessResponse(c, fiber.StatusOK, order)
}

func CancelOrder(c *fiber.Ctx) error {
	db := database.DB
	customerId := c.Locals("customerId").(uint)

	orderId, ok := c.Locals("inputId").(int)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, errors.New("missing order id"))
	}

	order, err := service.CancelOrder(db, uint(orderId), customerId, constants.CANCELLED_BY_CUSTOMER)
	if err != nil {
		return utils.ServiceErrorResponse(c, err)
	}

	PublishOrderUpdate(order)

	return utils.SuccessResponse(c, fiber.StatusOK, order)
}

func CancelOrderAdmin(c *fiber.Ctx) error {
	db := database.DB

	orderId, ok := c.Locals("inputId").(int)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, errors.New("missing order id"))
	}

	order, err := service.CancelOrder(db, uint(orderId), 0, constants.CANCELLED_BY_ADMIN)
	if err != nil {
		return utils.ServiceErrorResponse(c, err)
	}

	PublishOrderUpdate(order)

	return utils.SuccessResponse(c, fiber.StatusOK, order)
}

func ProcessOrderRefund(c *fiber.Ctx) error {
	db := database.DB

	orderId, ok := c.Locals("inputId").(int)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, errors.New("missing order id"))
	}

	order, refunded, err := service.ProcessOrderRefund(db, uint(orderId))
	if err != nil {
		return utils.ServiceErrorResponse(c, err)
	}

	PublishOrderUpdate(order)

	var customer model.Customer
	if err := db.First(&customer, order.CustomerID).Error; err == nil {
		balance := 0.0
		if wallet, err := service.GetWalletBalance(db, order.CustomerID); err == nil {
			balance = wallet.Balance
		}
		utils.SendRefundNotificationEmail(customer.Email, utils.RefundNotificationData{
			OrderNumber:   order.OrderNumber,
			CustomerName:  customer.UserName,
			RefundAmount:  refunded,
			WalletBalance: balance,
		})
	}

	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{
		"order":          order,
		"refundedAmount": refunded,
	})
}

func AssignDelivery(c *fiber.Ctx) error {
	db := database.DB

	orderId, ok := c.Locals("inputId").(int)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, errors.New("missing order id"))
	}
	input, ok := c.Locals("AssignDelivery").(model.AssignDeliveryInput)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, errors.New("missing validated input"))
	}

	order, err := service.AssignDeliveryGuy(db, uint(orderId), input.DeliveryGuyID)
	if err != nil {
		return utils.ServiceErrorResponse(c, err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, order)
}

func ReassignDelivery(c *fiber.Ctx) error {
	db := database.DB

	orderId, ok := c.Locals("inputId").(int)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, errors.New("missing order id"))
	}
	input, ok := c.Locals("AssignDelivery").(model.AssignDeliveryInput)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, errors.New("missing validated input"))
	}

	order, err := service.ReassignDeliveryGuy(db, uint(orderId), input.DeliveryGuyID)
	if err != nil {
		return utils.ServiceErrorResponse(c, err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, order)
}

// GetOrderTrackingQR renders a QR code pointing at the public tracking page
// for the order. The embedded token lets the tracking page verify the link
// was handed out by us.
func GetOrderTrackingQR(c *fiber.Ctx) error {
	db := database.DB
	customerId := c.Locals("customerId").(uint)

	orderId, ok := c.Locals("inputId").(int)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, errors.New("missing order id"))
	}

	order, err := service.GetOrder(db, uint(orderId), customerId)
	if err != nil {
		return utils.ServiceErrorResponse(c, err)
	}

	trackingURL := fmt.Sprintf("%s/track/%s?token=%s",
		os.Getenv("FRONTEND_URL"), order.OrderNumber, uuid.NewString())

	png, err := utils.GenerateQRCode(trackingURL, 256)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	c.Set("Content-Type", "image/png")
	return c.Send(png)
}
