package main

import (
	"log"
	"os"

	"github.com/gin-gonic/gin"

	"backend/internal/config"
	"backend/internal/database"
	"backend/internal/guestcart"
	"backend/internal/handlers"
	"backend/internal/middleware"
	"backend/internal/orders"
)

func main() {
	config.Load()

	client, err := database.Connect(config.AppEnv.MongoURI)
	if err != nil {
		log.Fatal(err)
	}

	db := client.Database(config.AppEnv.DBName)

	log.Println("MongoDB connected to:", db.Name())

	redisClient, err := database.ConnectRedis(config.AppEnv.RedisAddr)
	if err != nil {
		log.Fatal(err)
	}

	log.Println("Redis connected to:", config.AppEnv.RedisAddr)

	if err := database.EnsureProductIndexes(db); err != nil {
		log.Printf("⚠️ product index warning: %v", err)
	}
	if err := database.EnsureUserIndexes(db); err != nil {
		log.Printf("⚠️ user index warning: %v", err)
	}
	if err := database.EnsureCartIndexes(db); err != nil {
		log.Printf("⚠️ cart index warning: %v", err)
	}
	if err := database.EnsureOrderIndexes(db); err != nil {
		log.Printf("⚠️ order index warning: %v", err)
	}

	guestStore := guestcart.NewStore(redisClient, config.AppEnv.GuestCartTTL)
	assigner := orders.NewSimulatedAssigner()

	r := gin.Default()

	r.POST("/auth/register", handlers.Register(db))
	r.POST("/auth/login", handlers.Login(db))
	r.GET("/auth/me", middleware.UserAuth(config.AppEnv.JWTSecret), handlers.GetMe(db))

	r.GET("/categories", handlers.GetCategories(db))
	r.GET("/products", handlers.GetProducts(db))
	r.GET("/products/:id", handlers.GetProduct(db))

	r.POST("/guest-cart", handlers.AddGuestCartItem(guestStore))
	r.GET("/guest-cart/:session", handlers.GetGuestCart(guestStore))
	r.DELETE("/guest-cart/:session", handlers.DeleteGuestCart(guestStore))

	user := r.Group("/user")
	user.Use(middleware.UserAuth(config.AppEnv.JWTSecret))
	{
		user.GET("/cart", handlers.GetCart(db))
		user.DELETE("/cart", handlers.ClearCart(db))
		user.POST("/cart/items", handlers.AddCartItem(db))
		user.PUT("/cart/items/:productId", handlers.UpdateCartItem(db))
		user.DELETE("/cart/items/:productId", handlers.RemoveCartItem(db))
		user.POST("/cart/merge", handlers.MergeGuestCart(db, guestStore))
		user.POST("/cart/validate", handlers.ValidateCartStock(db))

		user.GET("/addresses", handlers.GetUserAddresses(db))
		user.POST("/addresses", handlers.CreateUserAddress(db))
		user.PUT("/addresses/:id", handlers.UpdateUserAddress(db))
		user.DELETE("/addresses/:id", handlers.DeleteUserAddress(db))
		user.PUT("/addresses/:id/default", handlers.SetDefaultUserAddress(db))
	}

	userOrders := r.Group("/orders")
	userOrders.Use(middleware.UserAuth(config.AppEnv.JWTSecret))
	{
		userOrders.POST("", handlers.CreateOrder(db, assigner))
		userOrders.GET("", handlers.GetMyOrders(db))
		userOrders.GET("/:id", handlers.GetOrder(db))
		userOrders.POST("/:id/cancel", handlers.CancelOrder(db))
	}

	admin := r.Group("/admin/api")
	admin.Use(middleware.AdminAuth(config.AppEnv.JWTSecret))
	{
		admin.GET("/me", func(c *gin.Context) {
			c.JSON(200, gin.H{"ok": true})
		})

		admin.GET("/products", handlers.GetAllProducts(db))
		admin.POST("/products", handlers.CreateProduct(db))
		admin.PUT("/products/:id", handlers.UpdateProduct(db))
		admin.DELETE("/products/:id", handlers.DeleteProduct(db))

		admin.GET("/categories", handlers.GetAllCategories(db))
		admin.POST("/categories", handlers.CreateCategory(db))
		admin.PUT("/categories/:id", handlers.UpdateCategory(db))
		admin.DELETE("/categories/:id", handlers.DeleteCategory(db))

		admin.GET("/orders", handlers.GetAllOrders(db))
		admin.PATCH("/orders/:id/status", handlers.UpdateOrderStatus(db))
		admin.DELETE("/orders/:id", handlers.DeleteOrder(db))

		admin.POST("/seed", handlers.SeedCatalog(db))
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	r.Run(":" + port)
}
