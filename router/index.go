package router

import (
	"trendkart/handler"
	"trendkart/middleware"
	"trendkart/validate"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
)

func SetupRoutes(app *fiber.App) {
	api := app.Group("/api", logger.New())
	v1 := api.Group("/v1", logger.New())

	auth := v1.Group("/auth")
	auth.Post("/register", validate.RegisterCustomer(), handler.RegisterCustomer)
	auth.Post("/login", validate.LoginCustomer(), handler.LoginCustomer)
	auth.Post("/admin/login", validate.LoginAdmin(), handler.LoginAdmin)
	auth.Post("/refresh-token", handler.RefreshToken)
	auth.Get("/me", middleware.Protected(), handler.Me)
	auth.Post("/otp/request", validate.RequestOTP(), handler.RequestOTP)
	auth.Post("/otp/verify", validate.VerifyOTP(), handler.VerifyOTP)

	customer := v1.Group("/customer", logger.New())
	customer.Put("/me", middleware.Protected(), middleware.CustomerOnly(), validate.EditCustomer(), handler.EditCustomer)
	customer.Get("/", middleware.Protected(), middleware.AdminOnly(), handler.GetCustomers)
	customer.Patch("/:customerId/disable", middleware.Protected(), middleware.AdminOnly(), validate.GetById("customerId"), handler.SetCustomerActive(false))
	customer.Patch("/:customerId/enable", middleware.Protected(), middleware.AdminOnly(), validate.GetById("customerId"), handler.SetCustomerActive(true))

	product := v1.Group("/product", logger.New())
	product.Get("/", middleware.OptionalJWT(), handler.GetProducts)
	product.Get("/:productId", middleware.OptionalJWT(), validate.GetById("productId"), handler.GetProductById)
	product.Post("/", middleware.Protected(), middleware.AdminOnly(), validate.CreateProduct(), handler.CreateProduct)
	product.Put("/:productId", middleware.Protected(), middleware.AdminOnly(), validate.EditProduct("productId"), handler.EditProduct)
	product.Put("/disable", middleware.Protected(), middleware.AdminOnly(), validate.Delete(), handler.DisableProduct)

	v1.Post("/cloudinary-signature", middleware.Protected(), middleware.AdminOnly(), handler.GenerateSignature)

	cart := v1.Group("/cart", logger.New())
	cart.Get("/", middleware.Protected(), middleware.CustomerOnly(), handler.GetCart)
	cart.Post("/", middleware.Protected(), middleware.CustomerOnly(), validate.AddCartItem(), handler.AddCartItem)
	cart.Put("/:itemId", middleware.Protected(), middleware.CustomerOnly(), validate.UpdateCartItem("itemId"), handler.UpdateCartItem)
	cart.Delete("/:itemId", middleware.Protected(), middleware.CustomerOnly(), validate.GetById("itemId"), handler.RemoveCartItem)
	cart.Delete("/", middleware.Protected(), middleware.CustomerOnly(), handler.ClearCart)

	wishlist := v1.Group("/wishlist", logger.New())
	wishlist.Get("/", middleware.Protected(), middleware.CustomerOnly(), handler.GetWishlist)
	wishlist.Post("/:productId", middleware.Protected(), middleware.CustomerOnly(), validate.GetById("productId"), handler.AddWishlistItem)
	wishlist.Delete("/:productId", middleware.Protected(), middleware.CustomerOnly(), validate.GetById("productId"), handler.RemoveWishlistItem)

	order := v1.Group("/order", logger.New())
	order.Post("/", middleware.Protected(), middleware.CustomerOnly(), validate.CreateOrder(), handler.CreateOrder)
	order.Get("/", middleware.Protected(), middleware.CustomerOnly(), handler.GetMyOrders)
	order.Get("/:orderId", middleware.Protected(), middleware.CustomerOnly(), validate.GetById("orderId"), handler.GetOrderById)
	order.Post("/:orderId/cancel", middleware.Protected(), middleware.CustomerOnly(), validate.GetById("orderId"), handler.CancelOrder)
	order.Get("/:orderId/tracking-qr", middleware.Protected(), middleware.CustomerOnly(), validate.GetById("orderId"), handler.GetOrderTrackingQR)

	item := v1.Group("/order-item", logger.New())
	item.Post("/:itemId/cancel", middleware.Protected(), middleware.CustomerOnly(), validate.CancelItem("itemId"), handler.CancelOrderItem)
	item.Post("/:itemId/refund-request", middleware.Protected(), middleware.CustomerOnly(), validate.RequestRefund("itemId"), handler.RequestItemRefund)

	adminOrder := v1.Group("/admin/order", logger.New())
	adminOrder.Get("/", middleware.Protected(), middleware.AdminOnly(), handler.GetAllOrders)
	adminOrder.Get("/:orderId", middleware.Protected(), middleware.AdminOnly(), validate.GetById("orderId"), handler.GetOrderByIdAdmin)
	adminOrder.Patch("/:orderId/status", middleware.Protected(), middleware.AdminOnly(), validate.UpdateOrderStatus("orderId"), handler.UpdateOrderStatus)
	adminOrder.Patch("/:orderId/items/status", middleware.Protected(), middleware.AdminOnly(), validate.UpdateOrderStatus("orderId"), handler.UpdateOrderItemsStatus)
	adminOrder.Post("/:orderId/cancel", middleware.Protected(), middleware.AdminOnly(), validate.GetById("orderId"), handler.CancelOrderAdmin)
	adminOrder.Post("/:orderId/refund", middleware.Protected(), middleware.AdminOnly(), validate.GetById("orderId"), handler.ProcessOrderRefund)
	adminOrder.Post("/:orderId/assign", middleware.Protected(), middleware.AdminOnly(), validate.AssignDelivery("orderId"), handler.AssignDelivery)
	adminOrder.Post("/:orderId/reassign", middleware.Protected(), middleware.AdminOnly(), validate.AssignDelivery("orderId"), handler.ReassignDelivery)

	wallet := v1.Group("/wallet", logger.New())
	wallet.Get("/", middleware.Protected(), middleware.CustomerOnly(), handler.GetWallet)
	wallet.Get("/transactions", middleware.Protected(), middleware.CustomerOnly(), handler.GetWalletTransactions)
	wallet.Post("/:customerId/credit", middleware.Protected(), middleware.AdminOnly(), validate.WalletAmount(), validate.GetById("customerId"), handler.CreditCustomerWallet)
	wallet.Post("/:customerId/debit", middleware.Protected(), middleware.AdminOnly(), validate.WalletAmount(), validate.GetById("customerId"), handler.DebitCustomerWallet)

	coupon := v1.Group("/coupon", logger.New())
	coupon.Get("/", middleware.OptionalJWT(), handler.GetCoupons)
	coupon.Post("/validate", middleware.Protected(), middleware.CustomerOnly(), validate.ValidateCoupon(), handler.ValidateCoupon)
	coupon.Post("/", middleware.Protected(), middleware.AdminOnly(), validate.CreateCoupon(), handler.CreateCoupon)
	coupon.Patch("/:couponId/disable", middleware.Protected(), middleware.AdminOnly(), validate.GetById("couponId"), handler.SetCouponActive(false))
	coupon.Patch("/:couponId/enable", middleware.Protected(), middleware.AdminOnly(), validate.GetById("couponId"), handler.SetCouponActive(true))

	exchange := v1.Group("/exchange", logger.New())
	exchange.Post("/", middleware.Protected(), middleware.CustomerOnly(), validate.RequestExchange(), handler.RequestExchange)
	exchange.Get("/", middleware.Protected(), middleware.CustomerOnly(), handler.GetMyExchanges)
	exchange.Get("/admin", middleware.Protected(), middleware.AdminOnly(), handler.GetAllExchanges)
	exchange.Patch("/:exchangeId/approve", middleware.Protected(), middleware.AdminOnly(), validate.ReviewExchange("exchangeId"), handler.ApproveExchange)
	exchange.Patch("/:exchangeId/reject", middleware.Protected(), middleware.AdminOnly(), validate.ReviewExchange("exchangeId"), handler.RejectExchange)
	exchange.Post("/:exchangeId/assign", middleware.Protected(), middleware.AdminOnly(), validate.AssignDelivery("exchangeId"), handler.AssignExchangeDelivery)
	exchange.Post("/:exchangeId/start-delivery", middleware.Protected(), middleware.AdminOnly(), validate.GetById("exchangeId"), handler.StartExchangeDelivery)
	exchange.Post("/:exchangeId/complete-delivery", middleware.Protected(), middleware.AdminOnly(), validate.GetById("exchangeId"), handler.CompleteExchangeDelivery)

	delivery := v1.Group("/delivery", logger.New())
	delivery.Post("/apply", validate.ApplyDelivery(), handler.ApplyDelivery)
	delivery.Get("/", middleware.Protected(), middleware.AdminOnly(), handler.GetDeliveryGuys)
	delivery.Patch("/:deliveryGuyId/approve", middleware.Protected(), middleware.AdminOnly(), validate.GetById("deliveryGuyId"), handler.ReviewDeliveryGuy("approved"))
	delivery.Patch("/:deliveryGuyId/reject", middleware.Protected(), middleware.AdminOnly(), validate.GetById("deliveryGuyId"), handler.ReviewDeliveryGuy("rejected"))
	delivery.Get("/:deliveryGuyId/exchanges", middleware.Protected(), middleware.AdminOnly(), validate.GetById("deliveryGuyId"), handler.GetDeliveryGuyExchanges)
	delivery.Get("/verify/:code", middleware.Protected(), handler.VerifyDeliveryCode)

	referral := v1.Group("/referral", logger.New())
	referral.Get("/stats", middleware.Protected(), middleware.CustomerOnly(), handler.GetReferralStats)

	v1.Get("/order/:id/track", websocket.New(handler.OrderTrackingSocket))
}
