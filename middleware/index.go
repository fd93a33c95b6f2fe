package middleware

import (
	"errors"
	"os"
	"strings"

	"trendkart/helper"
	"trendkart/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

func Protected() fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := c.Cookies("access_token")

		if token == "" {
			auth := c.Get("Authorization")
			if strings.HasPrefix(auth, "Bearer ") {
				token = strings.TrimPrefix(auth, "Bearer ")
			}
		}

		if token == "" {
			return utils.ErrorResponse(c, 401, "Missing token", errors.New("no token"))
		}

		jwtToken, err := jwt.Parse(token, func(t *jwt.Token) (interface{}, error) {
			return []byte(os.Getenv("JWT_SECRET")), nil
		})
		if err != nil || !jwtToken.Valid {
			return utils.ErrorResponse(c, 401, "Invalid token", err)
		}

		c.Locals("user", jwtToken)
		return c.Next()
	}
}

// CustomerOnly resolves the customer behind the token and stores it in
// Locals. Runs after Protected.
func CustomerOnly() fiber.Handler {
	return func(c *fiber.Ctx) error {
		claim, customer := helper.GetInfoCustomerFromToken(c)
		if claim.CustomerId == 0 || customer.ID == 0 {
			return utils.ErrorResponse(c, 403, "Customer account required", nil)
		}
		if !customer.IsActive {
			return utils.ErrorResponse(c, 403, "Account is disabled", nil)
		}
		c.Locals("customerId", claim.CustomerId)
		c.Locals("customer", &customer)
		return c.Next()
	}
}

// AdminOnly verifies the token belongs to an active admin. Runs after
// Protected.
func AdminOnly() fiber.Handler {
	return func(c *fiber.Ctx) error {
		claim, ok := helper.GetInfoAdminFromToken(c)
		if !ok {
			return utils.ErrorResponse(c, 403, "Admin access required", nil)
		}
		c.Locals("adminId", claim.AdminId)
		return c.Next()
	}
}

func OptionalJWT() fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")

		if authHeader == "" {
			c.Locals("user", nil)
			return c.Next()
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")

		token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, errors.New("unexpected signing method")
			}
			return []byte(os.Getenv("JWT_SECRET")), nil
		})

		if err != nil || !token.Valid {
			c.Locals("user", nil)
			return c.Next()
		}

		c.Locals("user", token)
		return c.Next()
	}
}
