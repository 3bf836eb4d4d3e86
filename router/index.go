package router

import (
	"restaurant_manager/constants"
	"restaurant_manager/handler"
	"restaurant_manager/middleware"
	"restaurant_manager/validate"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
)

func SetupRoutes(app *fiber.App) {
	api := app.Group("/api", logger.New())
	v1 := api.Group("/v1", logger.New())

	auth := v1.Group("/auth")
	auth.Post("/login", handler.Login)
	auth.Post("/refresh-token", handler.RefreshToken)
	auth.Post("/logout", handler.Logout)
	auth.Get("/me", middleware.Protected(), handler.Me)

	user := v1.Group("/user", logger.New())
	user.Get("/", middleware.Protected(), middleware.RequireRole(constants.ROLE_SUPERUSER, constants.ROLE_ADMIN), handler.GetUsers)
	user.Post("/", middleware.Protected(), middleware.RequireRole(constants.ROLE_SUPERUSER, constants.ROLE_ADMIN), validate.CreateUser(), handler.CreateUser)
	user.Put("/:userId", middleware.Protected(), middleware.RequireRole(constants.ROLE_SUPERUSER, constants.ROLE_ADMIN), validate.GetById("userId"), validate.UpdateUser(), handler.UpdateUser)
	user.Delete("/:userId", middleware.Protected(), middleware.RequireRole(constants.ROLE_SUPERUSER, constants.ROLE_ADMIN), validate.GetById("userId"), handler.DeleteUser)

	product := v1.Group("/product", logger.New())
	product.Get("/", middleware.Protected(), handler.GetProducts)
	product.Post("/", middleware.Protected(), middleware.RequireRole(constants.ROLE_SUPERUSER, constants.ROLE_ADMIN), validate.CreateProduct(), handler.CreateProduct)
	product.Put("/:productId", middleware.Protected(), middleware.RequireRole(constants.ROLE_SUPERUSER, constants.ROLE_ADMIN), validate.GetById("productId"), validate.UpdateProduct(), handler.UpdateProduct)
	product.Patch("/:productId/availability", middleware.Protected(), validate.GetById("productId"), handler.ToggleAvailability)
	product.Delete("/:productId", middleware.Protected(), middleware.RequireRole(constants.ROLE_SUPERUSER, constants.ROLE_ADMIN), validate.GetById("productId"), handler.DeleteProduct)
	product.Delete("/", middleware.Protected(), middleware.RequireRole(constants.ROLE_SUPERUSER, constants.ROLE_ADMIN), validate.Delete(), handler.DeleteProducts)

	v1.Post("/cloudinary-signature", middleware.Protected(), middleware.RequireRole(constants.ROLE_SUPERUSER, constants.ROLE_ADMIN), handler.GenerateSignature)

	table := v1.Group("/table", logger.New())
	table.Get("/", middleware.Protected(), handler.GetTables)
	table.Post("/", middleware.Protected(), middleware.RequireRole(constants.ROLE_SUPERUSER, constants.ROLE_ADMIN), handler.CreateTable)
	table.Delete("/:tableId", middleware.Protected(), middleware.RequireRole(constants.ROLE_SUPERUSER, constants.ROLE_ADMIN), validate.GetById("tableId"), handler.DeleteTable)
	table.Get("/:tableId/qr", middleware.Protected(), validate.GetById("tableId"), handler.TableQR)
	table.Patch("/:tableId/occupy", middleware.Protected(), validate.GetById("tableId"), handler.OccupyTable)
	table.Patch("/:tableId/request-payment", middleware.Protected(), validate.GetById("tableId"), handler.RequestPayment)
	table.Patch("/:tableId/clean", middleware.Protected(), validate.GetById("tableId"), handler.CleanTable)

	order := v1.Group("/order", logger.New())
	order.Get("/", middleware.Protected(), handler.GetOrders)
	order.Get("/active", middleware.Protected(), handler.GetActiveOrders)
	order.Get("/:orderId", middleware.Protected(), validate.GetById("orderId"), handler.GetOrderById)
	order.Post("/", middleware.Protected(), validate.CreateOrder(), handler.CreateOrder)
	order.Patch("/:orderId/status", middleware.Protected(), validate.GetById("orderId"), validate.UpdateOrderStatus(), handler.UpdateOrderStatus)
	order.Post("/:orderId/pay", middleware.Protected(), middleware.RequireRole(constants.ROLE_SUPERUSER, constants.ROLE_ADMIN, constants.ROLE_CASHIER), validate.GetById("orderId"), handler.PayOrder)

	takeout := v1.Group("/takeout", logger.New())
	takeout.Post("/", middleware.Protected(), validate.CreateTakeout(), handler.CreateTakeoutOrder)

	reports := v1.Group("/reports", logger.New())
	reports.Get("/stats", middleware.Protected(), middleware.RequireRole(constants.ROLE_SUPERUSER, constants.ROLE_ADMIN), handler.GetStats)
	reports.Get("/top-products", middleware.Protected(), middleware.RequireRole(constants.ROLE_SUPERUSER, constants.ROLE_ADMIN), handler.GetTopProducts)

	settings := v1.Group("/settings", logger.New())
	settings.Get("/", middleware.Protected(), handler.GetSettings)
	settings.Put("/", middleware.Protected(), middleware.RequireRole(constants.ROLE_SUPERUSER, constants.ROLE_ADMIN), validate.UpdateSettings(), handler.UpdateSettings)
	settings.Post("/logo", middleware.Protected(), middleware.RequireRole(constants.ROLE_SUPERUSER, constants.ROLE_ADMIN), handler.UploadLogo)
	settings.Post("/reset", middleware.Protected(), middleware.RequireRole(constants.ROLE_SUPERUSER), handler.ResetData)

	// Public QR flow: no auth, table identity comes from the scanned code
	public := v1.Group("/public", logger.New())
	public.Get("/menu", handler.GetMenu)
	public.Get("/settings", handler.GetSettings)
	public.Post("/orders", validate.PlacePublicOrder(), handler.PlacePublicOrder)

	v1.Get("/events", websocket.New(handler.WebSocketConnection))
}
