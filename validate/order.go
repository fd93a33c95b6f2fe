package validate

import (
	"fmt"

	"trendkart/model"

	"github.com/gofiber/fiber/v2"
)

func CreateOrder() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var input model.CreateOrderInput
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

		if input.DeliveryType == "scheduled" && input.ScheduledTime == nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "scheduledTime is required for scheduled delivery",
			})
		}

		c.Locals("CreateOrder", input)

		return c.Next()
	}
}

func CancelItem(key string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var input model.CancelItemInput
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

		c.Locals("CancelItem", input)

		return GetById(key)(c)
	}
}

func RequestRefund(key string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var input model.RequestRefundInput
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

		c.Locals("RequestRefund", input)

		return GetById(key)(c)
	}
}

func UpdateOrderStatus(key string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var input model.UpdateOrderStatusInput
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

		if !input.Status.Valid() {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": fmt.Sprintf("unknown status %q", input.Status),
			})
		}

		c.Locals("UpdateOrderStatus", input)

		return GetById(key)(c)
	}
}

func AssignDelivery(key string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var input model.AssignDeliveryInput
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

		c.Locals("AssignDelivery", input)

		return GetById(key)(c)
	}
}
