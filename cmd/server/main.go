package main

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gamevault/backend/docs"
	"github.com/gamevault/backend/internal/cart"
	"github.com/gamevault/backend/internal/catalog"
	"github.com/gamevault/backend/internal/config"
	"github.com/gamevault/backend/internal/database"
	"github.com/gamevault/backend/internal/handlers"
	mW "github.com/gamevault/backend/internal/middleware"
	"github.com/gamevault/backend/internal/services"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/spf13/viper"
	httpSwagger "github.com/swaggo/http-swagger"
)

// @title GameVault Storefront API
// @version 1.0
// @description API for browsing and purchasing premium game accounts
// @host localhost:8080
// @BasePath /api/v1
// @schemes http https

func main() {
	// Initialize config
	viper.SetConfigFile(".env") // explicitly point to .env file
	viper.AutomaticEnv()        // allow environment variables to override .env
	viper.ReadInConfig()        // read .env file

	viper.SetEnvPrefix("")

	viper.BindEnv("redis.host", "REDIS_HOST")
	viper.BindEnv("redis.port", "REDIS_PORT")
	viper.BindEnv("redis.password", "REDIS_PASSWORD")
	viper.BindEnv("redis.db", "REDIS_DB")

	viper.BindEnv("jwt.secret_key", "JWT_SECRET_KEY")
	viper.BindEnv("jwt.expiry_hours", "JWT_EXPIRY_HOURS")
	viper.BindEnv("argon2.time", "ARGON2_TIME")
	viper.BindEnv("argon2.memory", "ARGON2_MEMORY")
	viper.BindEnv("argon2.threads", "ARGON2_THREADS")
	viper.BindEnv("argon2.key_length", "ARGON2_KEY_LENGTH")
	viper.BindEnv("argon2.salt_length", "ARGON2_SALT_LENGTH")

	if err := viper.ReadInConfig(); err != nil {
		log.Printf("Config file not found, using defaults: %v", err)
	}

	// Initialize Swagger docs
	docs.SwaggerInfo.Title = "GameVault Storefront API"
	docs.SwaggerInfo.Description = "API for browsing and purchasing premium game accounts"
	docs.SwaggerInfo.Version = "1.0"
	docs.SwaggerInfo.Host = "localhost:8080"
	docs.SwaggerInfo.BasePath = "/api/v1"
	docs.SwaggerInfo.Schemes = []string{"http", "https"}

	// Initialize storage
	redisClient := database.InitRedis()
	if redisClient != nil {
		defer redisClient.Close()
	}
	kv := database.SelectKV(redisClient)

	checkoutCfg := config.LoadCheckoutConfig()

	// Initialize services
	catalogStore := catalog.NewStore(catalog.Seed())
	cartService := cart.NewService(kv, checkoutCfg.CartTTL)
	authService := services.NewAuthService(kv)
	checkoutService := services.NewCheckoutService(catalogStore, cartService, kv)

	catalogHandler := handlers.NewCatalogHandler(catalogStore)
	cartHandler := handlers.NewCartHandler(cartService, catalogStore)
	checkoutHandler := handlers.NewCheckoutHandler(checkoutService)
	adminHandler := handlers.NewAdminHandler(catalogStore)

	// Initialize auth middleware with the shared KV for token blacklisting
	mW.InitAuthMiddleware(kv)

	// Setup router
	r := chi.NewRouter()

	// Middleware
	r.Use(mW.SecurityHeaders)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RealIP)
	r.Use(middleware.Timeout(60 * time.Second))

	// CORS
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"https://*", "http://*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", mW.SessionHeader},
		ExposedHeaders:   []string{"Link", mW.SessionHeader},
		AllowCredentials: true,
		MaxAge:           86400,
	}))

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{"status": "healthy"})
	})

	// Swagger documentation
	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("http://localhost:8080/swagger/doc.json"),
	))

	// Static file server for game imagery
	r.Handle("/static/games/*", http.StripPrefix("/static/games/",
		mW.StaticFileServer("./static/games")))

	// API routes
	r.Route("/api/v1", func(r chi.Router) {
		// Public endpoints (no auth required)
		r.Post("/auth/login", authService.Login)
		r.Post("/auth/signup", authService.Signup)
		r.Post("/auth/logout", authService.Logout)

		r.Get("/games", catalogHandler.ListGames)
		r.Get("/games/featured", catalogHandler.Featured)
		r.Get("/games/filters", catalogHandler.FilterOptions)
		r.Get("/games/{gameID}", catalogHandler.GetGame)

		// Cart endpoints: session-scoped, usable before login
		r.Group(func(r chi.Router) {
			r.Use(mW.CartSession)

			r.Get("/cart", cartHandler.GetCart)
			r.Delete("/cart", cartHandler.ClearCart)
			r.Post("/cart/items", cartHandler.AddItem)
			r.Delete("/cart/items/{gameID}", cartHandler.RemoveItem)
			r.Put("/cart/items/{gameID}/increment", cartHandler.IncrementItem)
			r.Put("/cart/items/{gameID}/decrement", cartHandler.DecrementItem)
		})

		// Protected endpoints (auth required)
		r.Group(func(r chi.Router) {
			r.Use(mW.AuthMiddleware)

			r.Get("/auth/account", authService.GetAccount)
			r.Get("/purchases", checkoutHandler.Purchases)

			r.Group(func(r chi.Router) {
				r.Use(mW.CartSession)
				r.Post("/checkout", checkoutHandler.Checkout)
			})

			// Admin inventory management
			r.Group(func(r chi.Router) {
				r.Use(mW.RequireRole("admin"))

				r.Get("/admin/games", adminHandler.ListGames)
				r.Get("/admin/games/{gameID}/codes", adminHandler.ListCodes)
				r.Post("/admin/games/{gameID}/codes", adminHandler.AddCode)
				r.Put("/admin/games/{gameID}/codes/{codeID}/toggle", adminHandler.ToggleCode)
				r.Delete("/admin/games/{gameID}/codes/{codeID}", adminHandler.DeleteCode)
			})
		})
	})

	// JSON 404 for unknown routes
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		services.SendErrorResponse(w, "Not found", http.StatusNotFound, nil)
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	// Start server
	server := &http.Server{
		Addr:         ":" + port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown
	go func() {
		log.Printf("Server starting on :%s", port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Server shutting down...")
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server stopped")
}
