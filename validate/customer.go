package validate

import (
	"fmt"

	"trendkart/database"
	"trendkart/model"
	"trendkart/utils"

	"github.com/gofiber/fiber/v2"
)

func RegisterCustomer() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var input model.RegisterCustomerInput
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

		var existing model.Customer
		if err := database.DB.Where("email = ?", input.Email).First(&existing).Error; err == nil {
			return utils.ErrorResponse(c, fiber.StatusConflict, "Email is already registered", nil)
		}
		if err := database.DB.Where("user_name = ?", input.UserName).First(&existing).Error; err == nil {
			return utils.ErrorResponse(c, fiber.StatusConflict, "Username is already taken", nil)
		}

		c.Locals("RegisterCustomer", input)

		return c.Next()
	}
}

func LoginCustomer() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var input model.LoginCustomerInput
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

		c.Locals("LoginCustomer", input)

		return c.Next()
	}
}

func LoginAdmin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var input model.LoginAdminInput
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

		c.Locals("LoginAdmin", input)

		return c.Next()
	}
}

func EditCustomer() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var input model.EditCustomerInput
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

		c.Locals("EditCustomer", input)

		return c.Next()
	}
}

func RequestOTP() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var input model.RequestOTPInput
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

		c.Locals("RequestOTP", input)

		return c.Next()
	}
}

func VerifyOTP() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var input model.VerifyOTPInput
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

		c.Locals("VerifyOTP", input)

		return c.Next()
	}
}
