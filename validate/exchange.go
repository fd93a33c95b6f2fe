package validate

import (
	"fmt"

	"trendkart/model"

	"github.com/gofiber/fiber/v2"
)

func RequestExchange() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var input model.RequestExchangeInput
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

		c.Locals("RequestExchange", input)

		return c.Next()
	}
}

func ReviewExchange(key string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var input model.ReviewExchangeInput
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

		c.Locals("ReviewExchange", input)

		return GetById(key)(c)
	}
}
