package store

import (
	"context"

	"github.com/nahead/admin-dashboard/models"
)

// RemoteOrders is the contract with the remote order document store.
// Fetch returns every order with product references resolved; SetStatus
// and Delete each commit atomically on the remote side.
type RemoteOrders interface {
	FetchOrders(ctx context.Context) ([]models.Order, error)
	SetOrderStatus(ctx context.Context, orderID string, status models.OrderStatus) error
	DeleteOrder(ctx context.Context, orderID string) error
}
