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

func RequestExchange(c *fiber.Ctx) error {
	db := database.DB
	customerId := c.Locals("customerId").(uint)

	input, ok := c.Locals("RequestExchange").(model.RequestExchangeInput)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, errors.New("missing validated input"))
	}

	exchange, err := service.RequestExchange(db, customerId, input)
	if err != nil {
		return utils.ServiceErrorResponse(c, err)
	}

	return utils.SuccessResponse(c, fiber.StatusCreated, exchange)
}

func GetMyExchanges(c *fiber.Ctx) error {
	db := database.DB
	customerId := c.Locals("customerId").(uint)

	limit := c.QueryInt("limit", 0)
	exchanges, err := service.ListCustomerExchanges(db, customerId, limit)
	if err != nil {
		return utils.ServiceErrorResponse(c, err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, exchanges)
}

func GetAllExchanges(c *fiber.Ctx) error {
	db := database.DB

	status := model.ExchangeStatus(c.Query("status"))
	limit := c.QueryInt("limit", 0)
	exchanges, err := service.ListExchanges(db, status, limit)
	if err != nil {
		return utils.ServiceErrorResponse(c, err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, exchanges)
}

func ApproveExchange(c *fiber.Ctx) error {
	db := database.DB
	adminId := c.Locals("adminId").(uint)

	exchangeId, ok := c.Locals("inputId").(int)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, errors.New("missing exchange id"))
	}
	input, ok := c.Locals("ReviewExchange").(model.ReviewExchangeInput)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, errors.New("missing validated input"))
	}

	exchange, err := service.ApproveExchange(db, uint(exchangeId), adminId, input.AdminNotes)
	if err != nil {
		return utils.ServiceErrorResponse(c, err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, exchange)
}

func RejectExchange(c *fiber.Ctx) error {
	db := database.DB
	adminId := c.Locals("adminId").(uint)

	exchangeId, ok := c.Locals("inputId").(int)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, errors.New("missing exchange id"))
	}
	input, ok := c.Locals("ReviewExchange").(model.ReviewExchangeInput)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, errors.New("missing validated input"))
	}

	exchange, err := service.RejectExchange(db, uint(exchangeId), adminId, input.Reason)
	if err != nil {
		return utils.ServiceErrorResponse(c, err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, exchange)
}

func AssignExchangeDelivery(c *fiber.Ctx) error {
	db := database.DB

	exchangeId, ok := c.Locals("inputId").(int)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, errors.New("missing exchange id"))
	}
	input, ok := c.Locals("AssignDelivery").(model.AssignDeliveryInput)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, errors.New("missing validated input"))
	}

	exchange, err := service.AssignExchangeDelivery(db, uint(exchangeId), input.DeliveryGuyID)
	if err != nil {
		return utils.ServiceErrorResponse(c, err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, exchange)
}

func StartExchangeDelivery(c *fiber.Ctx) error {
	db := database.DB

	exchangeId, ok := c.Locals("inputId").(int)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, errors.New("missing exchange id"))
	}

	exchange, err := service.StartExchangeDelivery(db, uint(exchangeId))
	if err != nil {
		return utils.ServiceErrorResponse(c, err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, exchange)
}

func CompleteExchangeDelivery(c *fiber.Ctx) error {
	db := database.DB

	exchangeId, ok := c.Locals("inputId").(int)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, errors.New("missing exchange id"))
	}

	exchange, err := service.CompleteExchangeDelivery(db, uint(exchangeId))
	if err != nil {
		return utils.ServiceErrorResponse(c, err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, exchange)
}

// GetDeliveryGuyExchanges lists the exchanges assigned to one delivery guy.
func GetDeliveryGuyExchanges(c *fiber.Ctx) error {
	db := database.DB

	deliveryGuyId, ok := c.Locals("inputId").(int)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, errors.New("missing delivery guy id"))
	}

	exchanges, err := service.ListDeliveryGuyExchanges(db, uint(deliveryGuyId))
	if err != nil {
		return utils.ServiceErrorResponse(c, err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, exchanges)
}
