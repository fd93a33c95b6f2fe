package handler

import (
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"trendkart/constants"
	"trendkart/database"
	"trendkart/helper"
	"trendkart/model"
	"trendkart/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/jinzhu/copier"
	"gorm.io/gorm"
)

func GetProducts(c *fiber.Ctx) error {
	db := database.DB

	var input model.FilterProductInput
	input.SearchKey = c.Query("search")
	if limit := c.QueryInt("limit", 0); limit > 0 {
		input.Limit = utils.Ptr(limit)
	}
	if page := c.QueryInt("page", 0); page > 0 {
		input.Page = utils.Ptr(page)
	}

	query := db.Model(&model.Product{}).Where("is_active = ?", true)
	if input.SearchKey != "" {
		query = query.Where("LOWER(name) LIKE ?", "%"+strings.ToLower(input.SearchKey)+"%")
	}
	if categoryID := c.QueryInt("categoryId", 0); categoryID > 0 {
		query = query.Where("category_id = ?", categoryID)
	}
	if subcategoryID := c.QueryInt("subcategoryId", 0); subcategoryID > 0 {
		query = query.Where("subcategory_id = ?", subcategoryID)
	}

	var totalCount int64
	if err := query.Count(&totalCount).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	var products model.Products
	if err := utils.ApplyPagination(query, input.Limit, input.Page).Order("created_at desc").Find(&products).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, model.ResponseCustom{
		Rows:       products,
		Limit:      input.Limit,
		Page:       input.Page,
		TotalCount: totalCount,
	})
}

func GetProductById(c *fiber.Ctx) error {
	db := database.DB
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

	return utils.SuccessResponse(c, fiber.StatusOK, product)
}

func CreateProduct(c *fiber.Ctx) error {
	db := database.DB

	input, ok := c.Locals("CreateProduct").(model.CreateProductInput)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, errors.New("missing validated input"))
	}

	var newProduct model.Product
	copier.Copy(&newProduct, &input)
	newProduct.IsActive = true
	newProduct.Slug = helper.GenerateUniqueProductSlug(db, input.Name)

	if len(input.Sizes) > 0 {
		raw, err := json.Marshal(input.Sizes)
		if err != nil {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid sizes", err)
		}
		newProduct.Sizes = string(raw)
	}

	if err := db.Create(&newProduct).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	return utils.SuccessResponse(c, fiber.StatusCreated, newProduct)
}

func EditProduct(c *fiber.Ctx) error {
	db := database.DB

	productId, ok := c.Locals("inputId").(int)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, errors.New("missing product id"))
	}
	input, ok := c.Locals("EditProduct").(model.EditProductInput)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, errors.New("missing validated input"))
	}

	var product model.Product
	if err := db.First(&product, productId).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.ErrorResponse(c, fiber.StatusNotFound, "Product not found", nil)
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	oldName := product.Name
	copier.CopyWithOption(&product, &input, copier.Option{IgnoreEmpty: true})
	if input.Name != "" && input.Name != oldName {
		product.Slug = helper.GenerateUniqueProductSlug(db, input.Name)
	}
	if len(input.Sizes) > 0 {
		raw, err := json.Marshal(input.Sizes)
		if err != nil {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid sizes", err)
		}
		product.Sizes = string(raw)
	}

	if err := db.Save(&product).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, product)
}

func DisableProduct(c *fiber.Ctx) error {
	db := database.DB
	input, ok := c.Locals("deleteIds").(model.ArrayId)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, errors.New("missing ids"))
	}

	err := db.Model(&model.Product{}).Where("id IN ?", input.IDs).Update("is_active", false).Error
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{"disabled": input.IDs})
}

// GenerateSignature signs direct-to-Cloudinary upload params for the admin
// product screens.
func GenerateSignature(c *fiber.Ctx) error {
	type SigParams struct {
		Folder       string `json:"folder"`
		PublicID     string `json:"public_id"`
		ResourceType string `json:"resource_type"` // parsed but never signed
	}

	var params SigParams
	if err := c.BodyParser(&params); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid params", err)
	}

	timestamp := time.Now().Unix()
	timestampStr := fmt.Sprintf("%d", timestamp)

	paramMap := make(map[string]string)
	if params.Folder != "" {
		paramMap["folder"] = params.Folder
	}
	if params.PublicID != "" {
		paramMap["public_id"] = params.PublicID
	}
	paramMap["timestamp"] = timestampStr

	keys := make([]string, 0, len(paramMap))
	for k := range paramMap {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var stringToSign strings.Builder
	for i, k := range keys {
		if i > 0 {
			stringToSign.WriteString("&")
		}
		stringToSign.WriteString(k)
		stringToSign.WriteString("=")
		stringToSign.WriteString(paramMap[k])
	}
	stringToSign.WriteString(os.Getenv("CLOUDINARY_API_SECRET"))

	h := sha1.New()
	h.Write([]byte(stringToSign.String()))
	signature := hex.EncodeToString(h.Sum(nil))

	return c.JSON(fiber.Map{
		"signature": signature,
		"timestamp": timestamp,
		"apiKey":    os.Getenv("CLOUDINARY_API_KEY"),
		"cloudName": os.Getenv("CLOUDINARY_CLOUD_NAME"),
	})
}
