package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/nahead/admin-dashboard/models"
	"github.com/nahead/admin-dashboard/store"
	"github.com/nahead/admin-dashboard/utils"
)

type MockRemoteOrders struct {
	mock.Mock
}

func (m *MockRemoteOrders) FetchOrders(ctx context.Context) ([]models.Order, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Order), args.Error(1)
}

func (m *MockRemoteOrders) SetOrderStatus(ctx context.Context, orderID string, status models.OrderStatus) error {
	args := m.Called(ctx, orderID, status)
	return args.Error(0)
}

func (m *MockRemoteOrders) DeleteOrder(ctx context.Context, orderID string) error {
	args := m.Called(ctx, orderID)
	return args.Error(0)
}

// newTestRouter wires the order controller onto the dashboard routes
// without the auth middleware.
func newTestRouter(t *testing.T, orders []models.Order) (*mux.Router, *MockRemoteOrders) {
	t.Helper()

	remote := new(MockRemoteOrders)
	remote.On("FetchOrders", mock.Anything).Return(orders, nil).Once()

	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)

	s := store.NewOrderStore(remote, logger)
	require.NoError(t, s.Load(context.Background()))

	images := &utils.ImageResolver{
		BaseURL:     "https://cdn.test/images",
		Placeholder: "https://cdn.test/images/placeholder.png",
	}
	oc := NewOrderController(s, nil, images, logger)

	router := mux.NewRouter()
	router.HandleFunc("/admin/orders", oc.GetOrders).Methods("GET")
	router.HandleFunc("/admin/orders/filter", oc.SetFilter).Methods("PUT")
	router.HandleFunc("/admin/orders/search", oc.SetSearch).Methods("PUT")
	router.HandleFunc("/admin/orders/page/next", oc.NextPage).Methods("POST")
	router.HandleFunc("/admin/orders/page/prev", oc.PrevPage).Methods("POST")
	router.HandleFunc("/admin/orders/selected", oc.GetSelectedOrder).Methods("GET")
	router.HandleFunc("/admin/orders/{id}/status", oc.UpdateOrderStatus).Methods("PATCH")
	router.HandleFunc("/admin/orders/{id}/select", oc.SelectOrder).Methods("POST")
	router.HandleFunc("/admin/orders/{id}", oc.DeleteOrder).Methods("DELETE")
	return router, remote
}

func do(router *mux.Router, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
	}
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	return rr
}

func testOrders() []models.Order {
	return []models.Order{
		{
			ID: "6553a1b2c3d4e5f601020301", FirstName: "Ali", LastName: "Khan",
			Email: "ali@example.com", Status: models.StatusPending,
			CartItems: []models.CartItem{
				{Name: "Sneakers", ImageRef: "image-abc123-200x200-png", Size: "42", Quantity: 1},
				{Name: "Socks", Quantity: 3},
			},
		},
		{
			ID: "6553a1b2c3d4e5f601020302", FirstName: "Sara", LastName: "Ahmed",
			Email: "sara@example.com", Status: models.StatusSuccess,
		},
	}
}

func TestGetOrders(t *testing.T) {
	router, _ := newTestRouter(t, testOrders())

	rr := do(router, "GET", "/admin/orders", "")
	require.Equal(t, http.StatusOK, rr.Code)

	var resp struct {
		Orders []models.Order `json:"orders"`
		View   store.View     `json:"view"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Len(t, resp.Orders, 2)
	assert.Equal(t, 1, resp.View.Page)
	assert.Equal(t, models.FilterAll, resp.View.Filter)
}

func TestSetFilterHandler(t *testing.T) {
	router, _ := newTestRouter(t, testOrders())

	rr := do(router, "PUT", "/admin/orders/filter", `{"status":"success"}`)
	require.Equal(t, http.StatusOK, rr.Code)

	rr = do(router, "GET", "/admin/orders", "")
	var resp struct {
		Orders []models.Order `json:"orders"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	require.Len(t, resp.Orders, 1)
	assert.Equal(t, "Sara", resp.Orders[0].FirstName)

	rr = do(router, "PUT", "/admin/orders/filter", `{"status":"shipped"}`)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestSearchHandler(t *testing.T) {
	router, _ := newTestRouter(t, testOrders())

	rr := do(router, "PUT", "/admin/orders/search", `{"query":"ali"}`)
	require.Equal(t, http.StatusOK, rr.Code)

	rr = do(router, "GET", "/admin/orders", "")
	var resp struct {
		Orders []models.Order `json:"orders"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	require.Len(t, resp.Orders, 1)
	assert.Equal(t, "Ali", resp.Orders[0].FirstName)
}

func TestUpdateOrderStatusHandler(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		router, remote := newTestRouter(t, testOrders())
		remote.On("SetOrderStatus", mock.Anything, "6553a1b2c3d4e5f601020301", models.StatusDispatch).
			Return(nil).Once()

		rr := do(router, "PATCH", "/admin/orders/6553a1b2c3d4e5f601020301/status", `{"status":"dispatch"}`)

		require.Equal(t, http.StatusOK, rr.Code)
		assert.Contains(t, rr.Body.String(), "Order status updated to dispatch")
		remote.AssertExpectations(t)
	})

	t.Run("unknown order", func(t *testing.T) {
		router, remote := newTestRouter(t, testOrders())

		rr := do(router, "PATCH", "/admin/orders/unknown/status", `{"status":"dispatch"}`)

		assert.Equal(t, http.StatusNotFound, rr.Code)
		remote.AssertNotCalled(t, "SetOrderStatus", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("invalid status", func(t *testing.T) {
		router, _ := newTestRouter(t, testOrders())

		rr := do(router, "PATCH", "/admin/orders/6553a1b2c3d4e5f601020301/status", `{"status":"delivered"}`)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}

func TestDeleteOrderHandler(t *testing.T) {
	t.Run("requires confirmation", func(t *testing.T) {
		router, remote := newTestRouter(t, testOrders())

		rr := do(router, "DELETE", "/admin/orders/6553a1b2c3d4e5f601020301", "")

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		remote.AssertNotCalled(t, "DeleteOrder", mock.Anything, mock.Anything)
	})

	t.Run("deletes when confirmed", func(t *testing.T) {
		router, remote := newTestRouter(t, testOrders())
		remote.On("DeleteOrder", mock.Anything, "6553a1b2c3d4e5f601020301").Return(nil).Once()

		rr := do(router, "DELETE", "/admin/orders/6553a1b2c3d4e5f601020301?confirm=true", "")
		require.Equal(t, http.StatusOK, rr.Code)

		rr = do(router, "GET", "/admin/orders", "")
		assert.NotContains(t, rr.Body.String(), "6553a1b2c3d4e5f601020301")
		remote.AssertExpectations(t)
	})
}

func TestSelectedOrderHandler(t *testing.T) {
	router, _ := newTestRouter(t, testOrders())

	// Nothing selected yet
	rr := do(router, "GET", "/admin/orders/selected", "")
	assert.Equal(t, http.StatusNotFound, rr.Code)

	rr = do(router, "POST", "/admin/orders/6553a1b2c3d4e5f601020301/select", "")
	require.Equal(t, http.StatusOK, rr.Code)

	rr = do(router, "GET", "/admin/orders/selected", "")
	require.Equal(t, http.StatusOK, rr.Code)

	var resp struct {
		Order     models.Order     `json:"order"`
		CartItems []cartItemDetail `json:"cart_items"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, "Ali", resp.Order.FirstName)
	require.Len(t, resp.CartItems, 2)
	assert.Equal(t, "https://cdn.test/images/abc123-200x200.png", resp.CartItems[0].ImageURL)
	// Missing image reference falls back to the placeholder
	assert.Equal(t, "https://cdn.test/images/placeholder.png", resp.CartItems[1].ImageURL)

	// Selecting the same order again collapses the detail view
	rr = do(router, "POST", "/admin/orders/6553a1b2c3d4e5f601020301/select", "")
	require.Equal(t, http.StatusOK, rr.Code)
	rr = do(router, "GET", "/admin/orders/selected", "")
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestPaginationHandlers(t *testing.T) {
	orders := testOrders()
	for i := 0; i < 5; i++ {
		orders = append(orders, models.Order{ID: string(rune('a' + i)), FirstName: "Extra", LastName: "Customer"})
	}
	router, _ := newTestRouter(t, orders)

	rr := do(router, "POST", "/admin/orders/page/next", "")
	require.Equal(t, http.StatusOK, rr.Code)

	var view store.View
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &view))
	assert.Equal(t, 2, view.Page)

	// Already on the last page, so next is a no-op
	rr = do(router, "POST", "/admin/orders/page/next", "")
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &view))
	assert.Equal(t, 2, view.Page)

	rr = do(router, "POST", "/admin/orders/page/prev", "")
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &view))
	assert.Equal(t, 1, view.Page)
}
