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

func CreateCoupon(c *fiber.Ctx) error {
	db := database.DB

	input, ok := c.Locals("CreateCoupon").(model.CreateCouponInput)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, errors.New("missing validated input"))
	}

	coupon, err := service.CreateCoupon(db, input)
	if err != nil {
		return utils.ServiceErrorResponse(c, err)
	}

	return utils.SuccessResponse(c, fiber.StatusCreated, coupon)
}

func GetCoupons(c *fiber.Ctx) error {
	db := database.DB

	activeOnly := c.QueryBool("active", false)
	coupons, err := service.ListCoupons(db, activeOnly)
	if err != nil {
		return utils.ServiceErrorResponse(c, err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, coupons)
}

// ValidateCoupon quotes the discount a coupon would give for a cart without
// consuming a use.
func ValidateCoupon(c *fiber.Ctx) error {
	db := database.DB

	input, ok := c.Locals("ValidateCoupon").(model.ValidateCouponInput)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, errors.New("missing validated input"))
	}

	quote, err := service.ValidateCoupon(db, input)
	if err != nil {
		return utils.ServiceErrorResponse(c, err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, quote)
}

func SetCouponActive(active bool) fiber.Handler {
	return func(c *fiber.Ctx) error {
		db := database.DB

		couponId, ok := c.Locals("inputId").(int)
		if !ok {
			return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, errors.New("missing coupon id"))
		}

		coupon, err := service.SetCouponActive(db, uint(couponId), active)
		if err != nil {
			return utils.ServiceErrorResponse(c, err)
		}

		return utils.SuccessResponse(c, fiber.StatusOK, coupon)
	}
}
