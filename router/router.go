package router

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/warungku/warung-app/controllers"
	"github.com/warungku/warung-app/middlewares"
	"github.com/warungku/warung-app/services"
	"github.com/warungku/warung-app/ws"
)

func SetupRouter(db *gorm.DB, defaultTenantSlug string) *gin.Engine {
	r := gin.Default()

	r.Use(middlewares.SecurityHeaders())
	r.Use(middlewares.CORSMiddlewares())
	r.Use(middlewares.LoggerMiddleware())

	// Wiring service inti
	notifier := ws.NewHubNotifier(db)
	validator := services.NewAccessValidator(&services.GormAccessStore{DB: db})
	checkoutService := services.NewCheckoutService(db, notifier)

	// Inisialisasi controller
	userCtrl := controllers.NewUserController(db)
	menuCtrl := controllers.NewMenuController(db)
	paymentMethodCtrl := controllers.NewPaymentMethodController(db)
	checkoutCtrl := controllers.NewCheckoutController(db, checkoutService)
	orderCtrl := controllers.NewOrderController(db, validator, notifier, defaultTenantSlug)
	staffWSCtrl := controllers.NewStaffWSController(db, defaultTenantSlug)

	// ----------------------------------------------------------------
	//                      PUBLIC ROUTES
	// ----------------------------------------------------------------
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "pong"})
	})

	// Rate limiter ketat untuk login
	public := r.Group("/")
	public.Use(middlewares.NewStrictRateLimiter())
	{
		public.POST("/login", userCtrl.Login)
	}

	// Storefront per tenant (tanpa auth). Prefix statis /store karena radix
	// tree gin tidak mengizinkan segmen param bersanding dengan route statis
	// (/login, /admin) di level yang sama.
	store := r.Group("/store/:tenant_slug")
	{
		store.GET("/menus", menuCtrl.GetTenantMenus)
		store.GET("/payment-methods", paymentMethodCtrl.GetTenantPaymentMethods)
		store.POST("/checkout", checkoutCtrl.Checkout)
		store.GET("/orders/:order_code", checkoutCtrl.GetOrderByCode)
	}

	// ----------------------------------------------------------------
	//                      AUTHENTICATED ROUTES
	// ----------------------------------------------------------------
	auth := r.Group("/admin")
	auth.Use(middlewares.AuthMiddleware())

	auth.GET("/profile", userCtrl.GetProfile)
	auth.POST("/logout", userCtrl.Logout)

	// ORDERS (staff, tenant-scoped lewat AccessValidator)
	auth.GET("/orders", orderCtrl.GetAllOrders)
	auth.GET("/orders/:order_id", orderCtrl.GetOrderByID)
	auth.PATCH("/orders/:order_id/status", orderCtrl.UpdateOrderStatus)

	// WebSocket notifikasi staff
	wsGroup := r.Group("/ws")
	wsGroup.Use(middlewares.WebSocketAuthMiddleware())
	{
		wsGroup.GET("/staff", staffWSCtrl.StaffWSHandler)
	}

	return r
}
