// controllers/order.go
package controllers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"github.com/nahead/admin-dashboard/models"
	"github.com/nahead/admin-dashboard/store"
	"github.com/nahead/admin-dashboard/utils"
)

// OrderController handles the order dashboard requests
type OrderController struct {
	Store        *store.OrderStore
	EmailService *utils.EmailService
	Images       *utils.ImageResolver
	Logger       *logrus.Logger
}

// NewOrderController creates a new OrderController
func NewOrderController(s *store.OrderStore, emailService *utils.EmailService, images *utils.ImageResolver, logger *logrus.Logger) *OrderController {
	return &OrderController{
		Store:        s,
		EmailService: emailService,
		Images:       images,
		Logger:       logger,
	}
}

// GetOrders returns the current page of orders together with the
// pagination and filter state a client needs to render the controls
func (oc *OrderController) GetOrders(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"orders": oc.Store.VisibleOrders(),
		"view":   oc.Store.CurrentView(),
	})
}

// RefreshOrders re-fetches the full order collection from the remote
// store, replacing the snapshot wholesale
func (oc *OrderController) RefreshOrders(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := oc.Store.Load(ctx); err != nil {
		http.Error(w, "Error fetching orders", http.StatusBadGateway)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"view": oc.Store.CurrentView(),
	})
}

// SetFilter sets the dashboard status filter
func (oc *OrderController) SetFilter(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid input", http.StatusBadRequest)
		return
	}

	if err := oc.Store.SetFilter(req.Status); err != nil {
		http.Error(w, "Invalid status filter", http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(oc.Store.CurrentView())
}

// SetSearch sets the customer-name search text
func (oc *OrderController) SetSearch(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Query string `json:"query"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid input", http.StatusBadRequest)
		return
	}

	oc.Store.SetSearch(req.Query)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(oc.Store.CurrentView())
}

// NextPage advances the dashboard one page
func (oc *OrderController) NextPage(w http.ResponseWriter, r *http.Request) {
	oc.Store.NextPage()
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(oc.Store.CurrentView())
}

// PrevPage moves the dashboard one page back
func (oc *OrderController) PrevPage(w http.ResponseWriter, r *http.Request) {
	oc.Store.PrevPage()
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(oc.Store.CurrentView())
}

// UpdateOrderStatus patches one order's fulfillment status. The local
// snapshot only changes after the remote patch is confirmed; on failure
// the operator gets an explicit message naming the action
func (oc *OrderController) UpdateOrderStatus(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	orderID := vars["id"]

	var req struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid input", http.StatusBadRequest)
		return
	}
	status := models.OrderStatus(req.Status)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	err := oc.Store.UpdateStatus(ctx, orderID, status)
	switch {
	case errors.Is(err, store.ErrInvalidStatus):
		http.Error(w, "Invalid order status", http.StatusBadRequest)
		return
	case errors.Is(err, store.ErrOrderNotFound):
		http.Error(w, "Order not found", http.StatusNotFound)
		return
	case err != nil:
		http.Error(w, "Failed to update the order status", http.StatusBadGateway)
		return
	}

	// Notify the customer about the new status
	if order, ok := oc.Store.Get(orderID); ok && oc.EmailService != nil {
		go func(order models.Order) {
			if err := oc.EmailService.SendStatusUpdateEmail(order, status); err != nil {
				oc.Logger.WithError(err).WithField("order_id", order.ID).Warn("failed to send status update email")
			}
		}(order)
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{
		"message": fmt.Sprintf("Order status updated to %s", status),
	})
}

// DeleteOrder removes one order. Deletion is irreversible, so the
// request must carry confirm=true; without it nothing is touched
func (oc *OrderController) DeleteOrder(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	orderID := vars["id"]

	if r.URL.Query().Get("confirm") != "true" {
		http.Error(w, "Deletion requires confirm=true", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	err := oc.Store.DeleteOrder(ctx, orderID)
	switch {
	case errors.Is(err, store.ErrOrderNotFound):
		http.Error(w, "Order not found", http.StatusNotFound)
		return
	case err != nil:
		http.Error(w, "Failed to delete the order", http.StatusBadGateway)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{
		"message": "The order has been deleted",
	})
}

// SelectOrder toggles which order's detail panel is expanded
func (oc *OrderController) SelectOrder(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	oc.Store.SelectOrder(vars["id"])

	_, selected := oc.Store.Selected()
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]bool{"selected": selected})
}

// cartItemDetail is a cart line item with its image reference resolved
// to a renderable URL
type cartItemDetail struct {
	Name     string `json:"name"`
	ImageURL string `json:"image_url"`
	Size     string `json:"size,omitempty"`
	Color    string `json:"color,omitempty"`
	Quantity int    `json:"quantity"`
}

// GetSelectedOrder returns the expanded detail view of the selected
// order, with cart item images resolved to URLs
func (oc *OrderController) GetSelectedOrder(w http.ResponseWriter, r *http.Request) {
	order, ok := oc.Store.Selected()
	if !ok {
		http.Error(w, "No order selected", http.StatusNotFound)
		return
	}

	items := make([]cartItemDetail, 0, len(order.CartItems))
	for _, item := range order.CartItems {
		items = append(items, cartItemDetail{
			Name:     item.Name,
			ImageURL: oc.Images.URLFor(item.ImageRef),
			Size:     item.Size,
			Color:    item.Color,
			Quantity: item.Quantity,
		})
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"order":      order,
		"cart_items": items,
	})
}
