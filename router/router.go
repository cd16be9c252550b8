package router

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/gorm"

	"github.com/digiadi/digiadi-backend/controllers"
	"github.com/digiadi/digiadi-backend/middlewares"
)

func SetupRouter(db *gorm.DB) *gin.Engine {
	r := gin.Default()

	r.Use(middlewares.SecurityHeaders())
	r.Use(middlewares.CORSMiddlewares())
	r.Use(middlewares.LoggerMiddleware())
	r.Use(middlewares.MetricsMiddleware())

	rateLimiter := middlewares.NewRateLimiter(50, 1)
	r.Use(rateLimiter.RateLimit())

	authCtrl := controllers.NewAuthController(db)
	catalogCtrl := controllers.NewCatalogController(db)
	userCtrl := controllers.NewUserController(db)
	orderCtrl := controllers.NewOrderController(db)

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "pong"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Login/register get a stricter limit than the rest of the API.
	auth := r.Group("/auth")
	auth.Use(middlewares.NewStrictRateLimiter())
	{
		auth.POST("/login", authCtrl.Login)
		auth.POST("/register", authCtrl.Register)
	}
	r.GET("/auth/profile", middlewares.AuthMiddleware(), authCtrl.GetProfile)

	// Catalog (read-only)
	r.GET("/categories", catalogCtrl.GetAllCategories)
	r.GET("/products", catalogCtrl.GetAllProducts)

	// Staff accounts
	r.GET("/users", userCtrl.GetUsersByRole)
	r.PUT("/users/:id", userCtrl.UpdateUser)
	r.DELETE("/users/:id", userCtrl.DeleteUser)

	// Orders
	r.POST("/orders", orderCtrl.CreateOrder)
	r.GET("/orders", orderCtrl.GetActiveOrders)
	r.GET("/orders/:order_id", orderCtrl.GetOrderByID)
	r.PUT("/orders/:order_id/items", orderCtrl.AddItem)
	r.PUT("/orders/:order_id/ready", orderCtrl.MarkReady)
	r.PUT("/orders/:order_id/complete", orderCtrl.CompleteOrder)
	r.DELETE("/orders/:order_id", orderCtrl.DeleteOrder)

	// Kitchen display websocket
	r.GET("/kds/ws", controllers.KDSHandler)

	return r
}
