package handler

import (
	"trendkart/database"
	"trendkart/service"
	"trendkart/utils"

	"github.com/gofiber/fiber/v2"
)

func GetReferralStats(c *fiber.Ctx) error {
	db := database.DB
	customerId := c.Locals("customerId").(uint)

	stats, err := service.GetReferralStats(db, customerId)
	if err != nil {
		return utils.ServiceErrorResponse(c, err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, stats)
}
