// main.go
package main

import (
	"context"
	"net/http"
	"os"
	"time"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/nahead/admin-dashboard/controllers"
	"github.com/nahead/admin-dashboard/middleware"
	"github.com/nahead/admin-dashboard/routes"
	"github.com/nahead/admin-dashboard/store"
	"github.com/nahead/admin-dashboard/utils"
)

func main() {
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})

	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		logger.Info("No .env file found. Proceeding with environment variables.")
	}

	// Set the JWT secret key
	utils.JwtKey = []byte(os.Getenv("JWT_SECRET"))

	// Initialize EmailService and the image asset resolver. Without a
	// Postmark token the dashboard still works, it just sends no
	// status update emails.
	var emailService *utils.EmailService
	if os.Getenv("POSTMARK_API_TOKEN") != "" {
		emailService = utils.NewEmailService()
	} else {
		logger.Warn("POSTMARK_API_TOKEN not set; status update emails disabled")
	}
	images := utils.NewImageResolver()

	// Connect to MongoDB
	client := utils.ConnectDB()
	defer func() {
		if err := client.Disconnect(context.TODO()); err != nil {
			logger.Fatal(err)
		}
	}()

	database := os.Getenv("MONGO_DB")
	if database == "" {
		database = "ecommerce"
	}

	// Build the order store over the remote collection and load the
	// initial snapshot. A failed load is not fatal: the dashboard comes
	// up empty and the operator can refresh.
	remote := store.NewMongoOrders(client, database)
	orderStore := store.NewOrderStore(remote, logger)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	if err := orderStore.Load(ctx); err != nil {
		logger.WithError(err).Warn("initial order load failed, starting with an empty snapshot")
	}
	cancel()

	// Initialize controllers
	authController := controllers.NewAuthController(logger)
	orderController := controllers.NewOrderController(orderStore, emailService, images, logger)

	// Set up the router
	router := mux.NewRouter()
	router.Use(middleware.LoggingMiddleware(logger))

	// Register routes
	routes.RegisterRoutes(router, authController, orderController)

	// Start the server
	port := os.Getenv("PORT")
	if port == "" {
		port = "8000"
	}
	logger.Infof("Server is running on port %s", port)
	logger.Fatal(http.ListenAndServe(":"+port, router))
}
