package validate

import (
	"fmt"

	"trendkart/model"

	"github.com/gofiber/fiber/v2"
)

func CreateProduct() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var input model.CreateProductInput
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

		for size, stock := range input.Sizes {
			if stock < 0 {
				return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
					"error": fmt.Sprintf("stock for size %s cannot be negative", size),
				})
			}
		}

		c.Locals("CreateProduct", input)

		return c.Next()
	}
}

func EditProduct(key string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var input model.EditProductInput
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

		for size, stock := range input.Sizes {
			if stock < 0 {
				return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
					"error": fmt.Sprintf("stock for size %s cannot be negative", size),
				})
			}
		}

		c.Locals("EditProduct", input)

		return GetById(key)(c)
	}
}

func AddCartItem() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var input model.AddCartItemInput
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

		c.Locals("AddCartItem", input)

		return c.Next()
	}
}

func UpdateCartItem(key string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var input model.UpdateCartItemInput
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

		c.Locals("UpdateCartItem", input)

		return GetById(key)(c)
	}
}
