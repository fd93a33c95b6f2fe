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

// ApplyDelivery registers a delivery guy application. The account stays
// pending until an admin reviews it.
func ApplyDelivery(c *fiber.Ctx) error {
	db := database.DB

	input, ok := c.Locals("ApplyDelivery").(model.ApplyDeliveryInput)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, errors.New("missing validated input"))
	}

	guy := model.DeliveryGuy{
		Name:     input.Name,
		Email:    input.Email,
		Phone:    input.Phone,
		Vehicle:  input.Vehicle,
		PinCodes: input.PinCodes,
		Status:   "pending",
	}
	if err := db.Create(&guy).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	return utils.SuccessResponse(c, fiber.StatusCreated, guy)
}

func GetDeliveryGuys(c *fiber.Ctx) error {
	db := database.DB

	query := db.Model(&model.DeliveryGuy{})
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var guys model.DeliveryGuys
	if err := query.Order("created_at desc").Find(&guys).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, guys)
}

// VerifyDeliveryCode resolves a scanned order QR code during handover.
func VerifyDeliveryCode(c *fiber.Ctx) error {
	db := database.DB

	code := c.Params("code")
	if code == "" {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Missing delivery code", nil)
	}

	order, err := service.VerifyDeliveryCode(db, code)
	if err != nil {
		return utils.ServiceErrorResponse(c, err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, order)
}

// ReviewDeliveryGuy resolves a pending application to approved or rejected.
func ReviewDeliveryGuy(status string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		db := database.DB

		guyId, ok := c.Locals("inputId").(int)
		if !ok {
			return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, errors.New("missing delivery guy id"))
		}

		var guy model.DeliveryGuy
		if err := db.First(&guy, guyId).Error; err != nil {
			return utils.ErrorResponse(c, fiber.StatusNotFound, "Delivery guy not found", nil)
		}
		if guy.Status != "pending" {
			return utils.ErrorResponse(c, fiber.StatusConflict, "Application already reviewed", nil)
		}

		guy.Status = status
		if err := db.Save(&guy).Error; err != nil {
			return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
		}

		return utils.SuccessResponse(c, fiber.StatusOK, guy)
	}
}
