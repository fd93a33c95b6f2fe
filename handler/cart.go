package handler

import (
	"errors"

	"trendkart/constants"
	"trendkart/database"
	"trendkart/model"
	"trendkart/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

func GetCart(c *fiber.Ctx) error {
	db := database.DB
	customerId := c.Locals("customerId").(uint)

	var items model.CartItems
	if err := db.Preload("Product").Where("customer_id = ?", customerId).
		Order("created_at desc").Find(&items).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, items)
}

func AddCartItem(c *fiber.Ctx) error {
	db := database.DB
	customerId := c.Locals("customerId").(uint)

	input, ok := c.Locals("AddCartItem").(model.AddCartItemInput)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, errors.New("missing validated input"))
	}

	var product model.Product
	if err := db.First(&product, input.ProductID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.ErrorResponse(c, fiber.StatusNotFound, "Product not found", nil)
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}
	if !product.IsActive {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Product is no longer available", nil)
	}
	if input.Size != "" && product.SizeStock(input.Size) < input.Quantity {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Not enough stock for this size", nil)
	}

	item := model.CartItem{
		CustomerID: customerId,
		ProductID:  input.ProductID,
		Quantity:   input.Quantity,
		Size:       input.Size,
	}
	// Same product+size already in the cart bumps the quantity instead.
	err := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "customer_id"}, {Name: "product_id"}, {Name: "size"}},
		DoUpdates: clause.Assignments(map[string]interface{}{"quantity": gorm.Expr("cart_items.quantity + ?", input.Quantity)}),
	}).Create(&item).Error
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	return utils.SuccessResponse(c, fiber.StatusCreated, item)
}

func UpdateCartItem(c *fiber.Ctx) error {
	db := database.DB
	customerId := c.Locals("customerId").(uint)

	itemId, ok := c.Locals("inputId").(int)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, errors.New("missing item id"))
	}
	input, ok := c.Locals("UpdateCartItem").(model.UpdateCartItemInput)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, errors.New("missing validated input"))
	}

	var item model.CartItem
	if err := db.Where("id = ? AND customer_id = ?", itemId, customerId).First(&item).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.ErrorResponse(c, fiber.StatusNotFound, "Cart item not found", nil)
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	item.Quantity = input.Quantity
	if err := db.Save(&item).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, item)
}

func RemoveCartItem(c *fiber.Ctx) error {
	db := database.DB
	customerId := c.Locals("customerId").(uint)

	itemId, ok := c.Locals("inputId").(int)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, errors.New("missing item id"))
	}

	res := db.Where("id = ? AND customer_id = ?", itemId, customerId).Delete(&model.CartItem{})
	if res.Error != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, res.Error)
	}
	if res.RowsAffected == 0 {
		return utils.ErrorResponse(c, fiber.StatusNotFound, "Cart item not found", nil)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{"removed": itemId})
}

func ClearCart(c *fiber.Ctx) error {
	db := database.DB
	customerId := c.Locals("customerId").(uint)

	if err := db.Where("customer_id = ?", customerId).Delete(&model.CartItem{}).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{"cleared": true})
}

func GetWishlist(c *fiber.Ctx) error {
	db := database.DB
	customerId := c.Locals("customerId").(uint)

	var entries []model.Wishlist
	if err := db.Preload("Product").Where("customer_id = ?", customerId).
		Order("created_at desc").Find(&entries).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, entries)
}

func AddWishlistItem(c *fiber.Ctx) error {
	db := database.DB
	customerId := c.Locals("customerId").(uint)

	productId, ok := c.Locals("inputId").(int)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, errors.New("missing product id"))
	}

	var product model.Product
	if err := db.First(&product, productId).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.ErrorResponse(c, fiber.StatusNotFound, "Product not found", nil)
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	entry := model.Wishlist{CustomerID: customerId, ProductID: uint(productId)}
	if err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&entry).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	return utils.SuccessResponse(c, fiber.StatusCreated, entry)
}

func RemoveWishlistItem(c *fiber.Ctx) error {
	db := database.DB
	customerId := c.Locals("customerId").(uint)

	productId, ok := c.Locals("inputId").(int)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, errors.New("missing product id"))
	}

	res := db.Where("customer_id = ? AND product_id = ?", customerId, productId).Delete(&model.Wishlist{})
	if res.Error != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, res.Error)
	}
	if res.RowsAffected == 0 {
		return utils.ErrorResponse(c, fiber.StatusNotFound, "Wishlist entry not found", nil)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{"removed": productId})
}
