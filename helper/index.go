package helper

import (
	"errors"
	"fmt"
	"net/mail"
	"os"
	"time"

	"trendkart/constants"
	"trendkart/database"
	"trendkart/model"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var JwtSecret = []byte(os.Getenv("JWT_SECRET"))

func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), 10)
	return string(bytes), err
}

func CheckPasswordHash(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}

func ValidEmail(email string) bool {
	_, err := mail.ParseAddress(email)
	return err == nil
}

func GetCustomerByEmail(e string) (*model.Customer, error) {
	db := database.DB
	var customer model.Customer
	if err := db.Where(&model.Customer{Email: e}).First(&customer).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &customer, nil
}

func GetAdminByUsername(u string) (*model.Admin, error) {
	db := database.DB
	var admin model.Admin
	if err := db.Where(&model.Admin{Username: u}).First(&admin).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &admin, nil
}

func GenerateAccessToken(tokenClaim model.TokenClaim) (string, error) {
	token := jwt.New(jwt.SigningMethodHS256)

	claims := token.Claims.(jwt.MapClaims)
	claims["username"] = tokenClaim.Username
	claims["customerId"] = tokenClaim.CustomerId
	claims["adminId"] = tokenClaim.AdminId
	claims["role"] = tokenClaim.Role
	claims["exp"] = time.Now().Add(time.Minute * 60).Unix()

	t, err := token.SignedString(JwtSecret)
	return t, err
}

func GenerateRefreshToken(tokenClaim model.TokenClaim) (string, error) {
	token := jwt.New(jwt.SigningMethodHS256)

	claims := token.Claims.(jwt.MapClaims)
	claims["username"] = tokenClaim.Username
	claims["customerId"] = tokenClaim.CustomerId
	claims["adminId"] = tokenClaim.AdminId
	claims["role"] = tokenClaim.Role
	claims["exp"] = time.Now().Add(time.Hour * 24 * 7).Unix()

	t, err := token.SignedString(JwtSecret)
	return t, err
}

func ParseToken(tokenString string) (*jwt.Token, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return JwtSecret, nil
	})

	return token, err
}

func claimsFromContext(c *fiber.Ctx) jwt.MapClaims {
	u := c.Locals("user")
	if u == nil {
		return nil
	}
	token, ok := u.(*jwt.Token)
	if !ok || token == nil {
		return nil
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil
	}
	return claims
}

// GetInfoCustomerFromToken reads the customer behind the request token. A
// guest gets CustomerId 0 and an empty customer.
func GetInfoCustomerFromToken(c *fiber.Ctx) (model.TokenClaim, model.Customer) {
	var emptyCustomer model.Customer
	guestClaim := model.TokenClaim{CustomerId: 0}

	claims := claimsFromContext(c)
	if claims == nil {
		return guestClaim, emptyCustomer
	}

	customerIdFloat := float64(0)
	if cid, ok := claims["customerId"].(float64); ok {
		customerIdFloat = cid
	}
	if customerIdFloat == 0 {
		return guestClaim, emptyCustomer
	}

	claim := model.TokenClaim{CustomerId: uint(customerIdFloat)}
	if username, ok := claims["username"].(string); ok {
		claim.Username = username
	}
	if role, ok := claims["role"].(string); ok {
		claim.Role = role
	}

	var customer model.Customer
	if err := database.DB.First(&customer, claim.CustomerId).Error; err != nil {
		return claim, emptyCustomer
	}
	return claim, customer
}

// GetInfoAdminFromToken reads the admin behind the request token and reports
// whether the token actually belongs to an active admin.
func GetInfoAdminFromToken(c *fiber.Ctx) (model.TokenClaim, bool) {
	claims := claimsFromContext(c)
	if claims == nil {
		return model.TokenClaim{}, false
	}

	adminIdFloat, ok := claims["adminId"].(float64)
	if !ok || adminIdFloat == 0 {
		return model.TokenClaim{}, false
	}

	var admin model.Admin
	if err := database.DB.First(&admin, uint(adminIdFloat)).Error; err != nil {
		return model.TokenClaim{}, false
	}
	if !admin.Active || admin.Role != constants.ROLE_ADMIN {
		return model.TokenClaim{}, false
	}

	return model.TokenClaim{
		AdminId:  admin.ID,
		Username: admin.Username,
		Role:     admin.Role,
	}, true
}
