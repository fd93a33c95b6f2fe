package handler

import (
	"errors"
	"strings"

	"trendkart/constants"
	"trendkart/database"
	"trendkart/model"
	"trendkart/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/jinzhu/copier"
)

func EditCustomer(c *fiber.Ctx) error {
	db := database.DB
	customer, ok := c.Locals("customer").(*model.Customer)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, errors.New("missing customer"))
	}
	input, ok := c.Locals("EditCustomer").(model.EditCustomerInput)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, errors.New("missing validated input"))
	}

	copier.CopyWithOption(customer, &input, copier.Option{IgnoreEmpty: true})

	if err := db.Save(customer).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, customer)
}

func GetCustomers(c *fiber.Ctx) error {
	db := database.DB

	query := db.Model(&model.Customer{})
	if search := c.Query("search"); search != "" {
		like := "%" + strings.ToLower(search) + "%"
		query = query.Where("LOWER(email) LIKE ? OR LOWER(user_name) LIKE ?", like, like)
	}

	var totalCount int64
	if err := query.Count(&totalCount).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	var limit, page *int
	if l := c.QueryInt("limit", 0); l > 0 {
		limit = utils.Ptr(l)
	}
	if p := c.QueryInt("page", 0); p > 0 {
		page = utils.Ptr(p)
	}

	var customers model.Customers
	if err := utils.ApplyPagination(query, limit, page).Order("created_at desc").Find(&customers).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, model.ResponseCustom{
		Rows:       customers,
		Limit:      limit,
		Page:       page,
		TotalCount: totalCount,
	})
}

func SetCustomerActive(active bool) fiber.Handler {
	return func(c *fiber.Ctx) error {
		db := database.DB
		customerId, ok := c.Locals("inputId").(int)
		if !ok {
			return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, errors.New("missing customer id"))
		}

		res := db.Model(&model.Customer{}).Where("id = ?", customerId).Update("is_active", active)
		if res.Error != nil {
			return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, res.Error)
		}
		if res.RowsAffected == 0 {
			return utils.ErrorResponse(c, fiber.StatusNotFound, "Customer not found", nil)
		}

		return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{"id": customerId, "isActive": active})
	}
}
