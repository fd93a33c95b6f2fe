package handler

import (
	"errors"
	"log"

	"trendkart/constants"
	"trendkart/database"
	"trendkart/helper"
	"trendkart/model"
	"trendkart/service"
	"trendkart/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"gorm.io/gorm"
)

func RegisterCustomer(c *fiber.Ctx) error {
	db := database.DB

	input, ok := c.Locals("RegisterCustomer").(model.RegisterCustomerInput)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, errors.New("missing validated input"))
	}

	hash, err := helper.HashPassword(input.Password)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	var customer model.Customer
	err = db.Transaction(func(tx *gorm.DB) error {
		code, err := service.GenerateReferralCode(tx)
		if err != nil {
			return err
		}
		customer = model.Customer{
			Email:        input.Email,
			Phone:        input.Phone,
			Password:     hash,
			UserName:     input.UserName,
			IsActive:     true,
			ReferralCode: code,
		}
		if err := tx.Create(&customer).Error; err != nil {
			return err
		}
		// A bad referral code fails the whole signup, rewards included.
		return service.ProcessReferralSignup(tx, &customer, input.ReferralCode)
	})
	if err != nil {
		var se *service.Error
		if errors.As(err, &se) {
			return utils.ServiceErrorResponse(c, err)
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	return utils.SuccessResponse(c, fiber.StatusCreated, customer)
}

func LoginCustomer(c *fiber.Ctx) error {
	input, ok := c.Locals("LoginCustomer").(model.LoginCustomerInput)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, errors.New("missing validated input"))
	}

	customer, err := helper.GetCustomerByEmail(input.Email)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}
	if customer == nil || !helper.CheckPasswordHash(input.Password, customer.Password) {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, "Invalid email or password", nil)
	}
	if !customer.IsActive {
		return utils.ErrorResponse(c, fiber.StatusForbidden, "Account is disabled", nil)
	}

	claim := model.TokenClaim{
		CustomerId: customer.ID,
		Username:   customer.UserName,
		Role:       constants.ROLE_CUSTOMER,
	}
	accessToken, err := helper.GenerateAccessToken(claim)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}
	refreshToken, err := helper.GenerateRefreshToken(claim)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{
		"customer": customer,
		"tokens": model.TokenData{
			AccessToken:  accessToken,
			RefreshToken: refreshToken,
		},
	})
}

func LoginAdmin(c *fiber.Ctx) error {
	input, ok := c.Locals("LoginAdmin").(model.LoginAdminInput)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, errors.New("missing validated input"))
	}

	admin, err := helper.GetAdminByUsername(input.Username)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}
	if admin == nil || !helper.CheckPasswordHash(input.Password, admin.Password) {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, "Invalid username or password", nil)
	}
	if !admin.Active {
		return utils.ErrorResponse(c, fiber.StatusForbidden, "Account is disabled", nil)
	}

	claim := model.TokenClaim{
		AdminId:  admin.ID,
		Username: admin.Username,
		Role:     admin.Role,
	}
	accessToken, err := helper.GenerateAccessToken(claim)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}
	refreshToken, err := helper.GenerateRefreshToken(claim)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{
		"admin": admin,
		"tokens": model.TokenData{
			AccessToken:  accessToken,
			RefreshToken: refreshToken,
		},
	})
}

func RefreshToken(c *fiber.Ctx) error {
	var body struct {
		RefreshToken string `json:"refreshToken"`
	}
	if err := c.BodyParser(&body); err != nil || body.RefreshToken == "" {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Missing refresh token", err)
	}

	token, err := helper.ParseToken(body.RefreshToken)
	if err != nil || !token.Valid {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, "Invalid refresh token", err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, "Invalid refresh token", nil)
	}

	claim := model.TokenClaim{}
	if cid, ok := claims["customerId"].(float64); ok {
		claim.CustomerId = uint(cid)
	}
	if aid, ok := claims["adminId"].(float64); ok {
		claim.AdminId = uint(aid)
	}
	if username, ok := claims["username"].(string); ok {
		claim.Username = username
	}
	if role, ok := claims["role"].(string); ok {
		claim.Role = role
	}

	accessToken, err := helper.GenerateAccessToken(claim)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}
	refreshToken, err := helper.GenerateRefreshToken(claim)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, model.TokenData{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	})
}

func Me(c *fiber.Ctx) error {
	claim, customer := helper.GetInfoCustomerFromToken(c)
	if claim.CustomerId != 0 && customer.ID != 0 {
		return utils.SuccessResponse(c, fiber.StatusOK, customer)
	}

	adminClaim, ok := helper.GetInfoAdminFromToken(c)
	if ok {
		return utils.SuccessResponse(c, fiber.StatusOK, adminClaim)
	}

	return utils.ErrorResponse(c, fiber.StatusUnauthorized, "Unknown account", nil)
}

func RequestOTP(c *fiber.Ctx) error {
	input, ok := c.Locals("RequestOTP").(model.RequestOTPInput)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, errors.New("missing validated input"))
	}

	otp, err := helper.GenerateOTP(input.Email)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	if err := utils.SendOTPEmail(input.Email, otp.Code); err != nil {
		log.Printf("failed to send OTP email to %s: %v", input.Email, err)
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Could not send the verification code", nil)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{
		"message":   "Verification code sent",
		"expiresAt": otp.ExpiresAt,
	})
}

func VerifyOTP(c *fiber.Ctx) error {
	input, ok := c.Locals("VerifyOTP").(model.VerifyOTPInput)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, errors.New("missing validated input"))
	}

	if !helper.VerifyOTP(input.Email, input.Code) {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid or expired code", nil)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{"verified": true})
}
