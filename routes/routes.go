package routes

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"storeadmin-backend/config"
	"storeadmin-backend/controllers"
	"storeadmin-backend/logger"
	"storeadmin-backend/middleware"
	"storeadmin-backend/models"
	"storeadmin-backend/realtime"
	"storeadmin-backend/token"
)

// Gateways groups the websocket endpoints.
type Gateways struct {
	Chat          *realtime.ChatGateway
	Notifications *realtime.NotificationGateway
}

// Setup mengonfigurasi dan mengembalikan Gin engine.
func Setup(ctrl *controllers.Controller, cfg *config.AppConfig, maker token.Maker, ws Gateways) *gin.Engine {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	if err := middleware.RegisterValidators(); err != nil {
		logger.Get("routes").WithError(err).Warn("custom validators not registered")
	}

	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestID(), logger.RequestLogger())

	corsCfg := cors.DefaultConfig()
	corsCfg.AllowOrigins = cfg.CORSOrigins
	corsCfg.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsCfg.AllowHeaders = []string{"Origin", "Content-Type", "Accept", "Authorization", middleware.RequestIDHeader}
	corsCfg.ExposeHeaders = []string{middleware.RequestIDHeader}
	corsCfg.AllowCredentials = true
	corsCfg.MaxAge = 12 * time.Hour
	r.Use(cors.New(corsCfg))

	auth := middleware.AuthGuard(maker)
	admin := []gin.HandlerFunc{auth, middleware.RequireAdmin()}
	limited := middleware.RateLimit(cfg.RateLimitRPS, cfg.RateLimitBurst)

	api := r.Group("/api")
	{
		// Rute utilitas
		api.GET("/health", ctrl.HealthCheck)
		api.GET("/stats", append(admin, ctrl.GetStats)...)

		// Rute registrasi
		reg := api.Group("/register", limited)
		reg.POST("/send-otp", ctrl.SendRegisterOTP)
		reg.POST("/verify-otp", ctrl.VerifyRegisterOTP)
		reg.POST("/complete", ctrl.CompleteRegister)

		// Rute FAQ
		api.GET("/faq-categories", ctrl.GetFAQCategories)
		faqCats := api.Group("/faq-categories", admin...)
		faqCats.POST("", ctrl.CreateFAQCategory)
		faqCats.PUT("/:id", ctrl.UpdateFAQCategory)
		faqCats.PATCH("/:id/toggle", ctrl.ToggleFAQCategory)
		faqCats.DELETE("/:id", ctrl.DeleteFAQCategory)

		api.GET("/faqs", ctrl.GetFAQs)
		api.GET("/faqs/:id", ctrl.GetFAQ)
		faqs := api.Group("/faqs", admin...)
		faqs.POST("", ctrl.CreateFAQ)
		faqs.PUT("/reorder", ctrl.ReorderFAQs)
		faqs.PUT("/:id", ctrl.UpdateFAQ)
		faqs.PATCH("/:id/toggle", ctrl.ToggleFAQ)
		faqs.DELETE("/:id", ctrl.DeleteFAQ)

		// Rute notifikasi
		notif := api.Group("/notifications", auth)
		notif.GET("", ctrl.GetNotifications)
		notif.GET("/unread-count", ctrl.GetUnreadCount)
		notif.PATCH("/read-all", ctrl.MarkAllNotificationsRead)
		notif.PATCH("/:id/read", ctrl.MarkNotificationRead)
		notif.PATCH("/:id/toggle", ctrl.ToggleNotification)
		notif.POST("", append(admin, ctrl.CreateNotification)...)
		notif.DELETE("/:id", append(admin, ctrl.DeleteNotification)...)
	}

	// Rute otentikasi
	authGroup := r.Group("/auth")
	{
		authGroup.POST("/login", limited, ctrl.Login)
		authGroup.GET("/me", auth, ctrl.Me)
		authGroup.PUT("/change-password", auth, ctrl.ChangePassword)
		authGroup.POST("/forgot-password", limited, ctrl.ForgotPassword)
		authGroup.POST("/verify-reset-otp", limited, ctrl.VerifyResetOTP)
		authGroup.POST("/reset-password", limited, ctrl.ResetPassword)
	}

	// Rute produk
	products := r.Group("/products")
	{
		products.GET("", ctrl.GetProducts)
		products.GET("/slug/:slug", ctrl.GetProductBySlug)
		products.GET("/:id", ctrl.GetProduct)
		products.POST("", append(admin, ctrl.CreateProduct)...)
		products.PUT("/:id", append(admin, ctrl.UpdateProduct)...)
		products.PATCH("/:id/toggle", append(admin, ctrl.ToggleProduct)...)
		products.PATCH("/:id/stock", append(admin, ctrl.UpdateStock)...)
		products.POST("/:id/images", append(admin, ctrl.UploadProductImages)...)
		products.DELETE("/:id/images", append(admin, ctrl.RemoveProductImage)...)
		products.DELETE("/:id", append(admin, ctrl.DeleteProduct)...)
	}

	categories := r.Group("/categories")
	{
		categories.GET("", ctrl.GetCategories)
		categories.GET("/:id", ctrl.GetCategory)
		categories.POST("", append(admin, ctrl.CreateCategory)...)
		categories.PUT("/:id", append(admin, ctrl.UpdateCategory)...)
		categories.PATCH("/:id/toggle", append(admin, ctrl.ToggleCategory)...)
		categories.POST("/:id/image", append(admin, ctrl.UploadCategoryImage)...)
		categories.DELETE("/:id", append(admin, ctrl.DeleteCategory)...)
	}

	orders := r.Group("/orders", admin...)
	{
		orders.GET("", ctrl.GetOrders)
		orders.GET("/:id", ctrl.GetOrder)
		orders.POST("", ctrl.CreateOrder)
		orders.PATCH("/:id/status", ctrl.UpdateOrderStatus)
		orders.PATCH("/:id/payment", ctrl.UpdateOrderPayment)
		orders.DELETE("/:id", ctrl.DeleteOrder)
	}

	users := r.Group("/users", admin...)
	{
		users.GET("", ctrl.GetUsers)
		users.GET("/:id", ctrl.GetUser)
		users.POST("", ctrl.CreateUser)
		users.PUT("/:id", ctrl.UpdateUser)
		users.PATCH("/:id/toggle", ctrl.ToggleUser)
		users.PATCH("/:id/role", ctrl.SetUserRole)
		users.POST("/:id/avatar", ctrl.UploadAvatar)
		users.DELETE("/:id", ctrl.DeleteUser)
	}

	coupons := r.Group("/coupons")
	{
		coupons.POST("/validate", auth, ctrl.ValidateCoupon)
		coupons.GET("", append(admin, ctrl.GetCoupons)...)
		coupons.GET("/:id", append(admin, ctrl.GetCoupon)...)
		coupons.POST("", append(admin, ctrl.CreateCoupon)...)
		coupons.PUT("/:id", append(admin, ctrl.UpdateCoupon)...)
		coupons.PATCH("/:id/toggle", append(admin, ctrl.ToggleCoupon)...)
		coupons.POST("/:id/send", append(admin, ctrl.SendCoupon)...)
		coupons.DELETE("/:id", append(admin, ctrl.DeleteCoupon)...)
	}

	subscribers := r.Group("/subscribers")
	{
		subscribers.POST("", limited, ctrl.Subscribe)
		subscribers.GET("", append(admin, ctrl.GetSubscribers)...)
		subscribers.DELETE("/:id", append(admin, ctrl.Unsubscribe)...)
	}

	comments := r.Group("/comments", admin...)
	{
		comments.GET("", ctrl.GetComments)
		comments.GET("/:id", ctrl.GetComment)
		comments.PATCH("/:id/toggle", ctrl.ToggleComment)
		comments.POST("/:id/reply", ctrl.ReplyComment)
		comments.DELETE("/:id", ctrl.DeleteComment)
	}

	r.GET("/settings", ctrl.GetSettings)
	r.PUT("/settings", append(admin, ctrl.UpdateSettings)...)

	if ws.Chat != nil {
		r.GET("/ws/chat", ws.Chat.ServeWS)
	}
	if ws.Notifications != nil {
		r.GET("/ws/notifications", ws.Notifications.ServeWS)
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, models.Envelope{Success: false, Message: "Endpoint not found"})
	})
	return r
}
