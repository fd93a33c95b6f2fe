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

func GetWallet(c *fiber.Ctx) error {
	db := database.DB
	customerId := c.Locals("customerId").(uint)

	wallet, err := service.GetWalletBalance(db, customerId)
	if err != nil {
		return utils.ServiceErrorResponse(c, err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, wallet)
}

func GetWalletTransactions(c *fiber.Ctx) error {
	db := database.DB
	customerId := c.Locals("customerId").(uint)

	limit := c.QueryInt("limit", 0)
	transactions, err := service.ListWalletTransactions(db, customerId, limit)
	if err != nil {
		return utils.ServiceErrorResponse(c, err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, transactions)
}

// CreditCustomerWallet is the admin-side manual credit (goodwill, promo).
func CreditCustomerWallet(c *fiber.Ctx) error {
	db := database.DB

	customerId, ok := c.Locals("inputId").(int)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, errors.New("missing customer id"))
	}
	input, ok := c.Locals("WalletAmount").(model.WalletAmountInput)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, errors.New("missing validated input"))
	}

	txn, err := service.CreditWallet(db, uint(customerId), input.Amount, input.Description, input.ReferenceID)
	if err != nil {
		return utils.ServiceErrorResponse(c, err)
	}

	return utils.SuccessResponse(c, fiber.StatusCreated, txn)
}

// DebitCustomerWallet is the admin-side manual debit (chargeback, correction).
func DebitCustomerWallet(c *fiber.Ctx) error {
	db := database.DB

	customerId, ok := c.Locals("inputId").(int)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, errors.New("missing customer id"))
	}
	input, ok := c.Locals("WalletAmount").(model.WalletAmountInput)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, errors.New("missing validated input"))
	}

	txn, err := service.DebitWallet(db, uint(customerId), input.Amount, input.Description, input.ReferenceID)
	if err != nil {
		return utils.ServiceErrorResponse(c, err)
	}

	return utils.SuccessResponse(c, fiber.StatusCreated, txn)
}
