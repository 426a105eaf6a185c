// routes/routes.go
package routes

import (
	"github.com/gorilla/mux"

	"github.com/nahead/admin-dashboard/controllers"
	"github.com/nahead/admin-dashboard/middleware"
)

// RegisterRoutes sets up all the routes for the application
func RegisterRoutes(router *mux.Router, authController *controllers.AuthController, orderController *controllers.OrderController) {
	// Public routes
	router.HandleFunc("/admin/login", authController.Login).Methods("POST")

	// Dashboard routes, gated behind an admin session
	admin := router.PathPrefix("/admin/orders").Subrouter()
	admin.Use(middleware.AuthMiddleware)
	admin.Use(middleware.AdminMiddleware)
	admin.HandleFunc("", orderController.GetOrders).Methods("GET")
	admin.HandleFunc("/refresh", orderController.RefreshOrders).Methods("POST")
	admin.HandleFunc("/filter", orderController.SetFilter).Methods("PUT")
	admin.HandleFunc("/search", orderController.SetSearch).Methods("PUT")
	admin.HandleFunc("/page/next", orderController.NextPage).Methods("POST")
	admin.HandleFunc("/page/prev", orderController.PrevPage).Methods("POST")
	admin.HandleFunc("/selected", orderController.GetSelectedOrder).Methods("GET")
	admin.HandleFunc("/{id}/status", orderController.UpdateOrderStatus).Methods("PATCH")
	admin.HandleFunc("/{id}/select", orderController.SelectOrder).Methods("POST")
	admin.HandleFunc("/{id}", orderController.DeleteOrder).Methods("DELETE")
}
