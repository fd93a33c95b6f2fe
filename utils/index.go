package utils

import (
	"trendkart/service"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func ErrorResponse(c *fiber.Ctx, status int, message string, err error) error {
	var errMsg interface{}
	if err != nil {
		errMsg = err.Error()
	} else {
		errMsg = nil
	}
	return c.Status(status).JSON(fiber.Map{
		"message": message,
		"error":   errMsg,
	})
}

func SuccessResponse(c *fiber.Ctx, status int, data any) error {
	return c.Status(status).JSON(fiber.Map{
		"status": "success",
		"data":   data,
	})
}

// ServiceErrorResponse maps a service error kind to an HTTP status. Storage
// failures are reported without the underlying driver message.
func ServiceErrorResponse(c *fiber.Ctx, err error) error {
	status := fiber.StatusInternalServerError
	switch service.KindOf(err) {
	case service.KindValidation:
		status = fiber.StatusBadRequest
	case service.KindNotFound:
		status = fiber.StatusNotFound
	case service.KindInvalidState, service.KindAlreadyProcessed:
		status = fiber.StatusConflict
	case service.KindInsufficientFunds:
		status = fiber.StatusPaymentRequired
	case service.KindStorage:
		return ErrorResponse(c, fiber.StatusInternalServerError, "Internal server error", nil)
	}
	return ErrorResponse(c, status, err.Error(), nil)
}

func ApplyPagination(query *gorm.DB, limit, page *int) *gorm.DB {
	if limit != nil && *limit > 0 && page != nil && *page >= 1 {
		query = query.Limit(*limit)
		offset := *limit * (*page - 1)
		query = query.Offset(offset)
	}
	return query
}

func Ptr[T any](v T) *T {
	return &v
}
