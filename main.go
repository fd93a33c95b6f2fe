package main

import (
	"log"
	"os"

	"trendkart/database"
	"trendkart/helper"
	"trendkart/router"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
)

func main() {
	app := fiber.New(fiber.Config{
		BodyLimit: 10 * 1024 * 1024,
	})

	app.Use(cors.New(cors.Config{
		AllowOrigins:     allowOrigins(),
		AllowMethods:     "GET,POST,PUT,DELETE,PATCH,OPTIONS",
		AllowHeaders:     "Origin, Content-Type, Authorization, Accept",
		AllowCredentials: true,
		ExposeHeaders:    "Set-Cookie",
		MaxAge:           600,
	}))

	database.ConnectDB()
	helper.InitCloudinary()

	helper.StartOTPScheduler()
	defer helper.StopOTPScheduler()
	helper.StartCouponScheduler()
	defer helper.StopCouponScheduler()

	router.SetupRoutes(app)

	log.Fatal(app.Listen(":8002"))
}

func allowOrigins() string {
	if origins := os.Getenv("CORS_ORIGINS"); origins != "" {
		return origins
	}
	return "http://localhost:5173"
}
