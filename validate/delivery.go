package validate

import (
	"fmt"

	"trendkart/database"
	"trendkart/model"
	"trendkart/utils"

	"github.com/gofiber/fiber/v2"
)

func ApplyDelivery() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var input model.ApplyDeliveryInput
		if err := c.BodyParser(&input); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": fmt.Sprintf("Invalid input %s", err.Error()),
			})
		}

		if err := validate.Struct(input); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": err.Error(),
			})
		}

		var existing model.DeliveryGuy
		if err := database.DB.Where("email = ?", input.Email).First(&existing).Error; err == nil {
			return utils.ErrorResponse(c, fiber.StatusConflict, "An application with this email already exists", nil)
		}

		c.Locals("ApplyDelivery", input)

		return c.Next()
	}
}
