package store

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/nahead/admin-dashboard/models"
)

// PageSize is the fixed number of orders shown per dashboard page.
const PageSize = 5

var (
	ErrOrderNotFound = errors.New("order not found")
	ErrInvalidStatus = errors.New("invalid order status")
	ErrInvalidFilter = errors.New("invalid status filter")
)

// OrderStore holds the in-memory snapshot of the remote order collection
// together with the dashboard's view state (filter, search, pagination,
// selection). Local state is mutated only after the remote write is
// confirmed; failures leave the snapshot untouched.
//
// One mutex keeps the single-logical-writer model: a second operation
// waits for the first rather than interleaving with it.
type OrderStore struct {
	mu     sync.Mutex
	remote RemoteOrders
	logger *logrus.Logger

	orders       []models.Order
	filterStatus string
	searchText   string
	currentPage  int
	selectedID   string
}

// NewOrderStore creates an OrderStore with an empty snapshot and the
// default view state (filter All, page 1, nothing selected).
func NewOrderStore(remote RemoteOrders, logger *logrus.Logger) *OrderStore {
	return &OrderStore{
		remote:       remote,
		logger:       logger,
		filterStatus: models.FilterAll,
		currentPage:  1,
	}
}

// Load replaces the snapshot wholesale with a full fetch from the remote
// collection. On fetch failure the previous snapshot is kept and the
// error is returned; the dashboard stays usable on stale data.
func (s *OrderStore) Load(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	orders, err := s.remote.FetchOrders(ctx)
	if err != nil {
		s.logger.WithError(err).Error("failed to fetch orders")
		return fmt.Errorf("fetch orders: %w", err)
	}

	s.orders = orders
	s.currentPage = 1
	s.selectedID = ""
	s.logger.WithField("count", len(orders)).Info("order snapshot loaded")
	return nil
}

// filtered returns the orders passing the active filter and search, in
// snapshot order. Callers must hold s.mu.
func (s *OrderStore) filtered() []models.Order {
	search := strings.ToLower(s.searchText)
	var out []models.Order
	for _, o := range s.orders {
		if s.filterStatus != models.FilterAll && string(o.Status) != s.filterStatus {
			continue
		}
		if !strings.Contains(strings.ToLower(o.FullName()), search) {
			continue
		}
		out = append(out, o)
	}
	return out
}

// VisibleOrders returns the slice of filtered orders for the current
// page. It never returns more than PageSize orders, and returns an
// empty slice when the page is past the end of the filtered set.
func (s *OrderStore) VisibleOrders() []models.Order {
	s.mu.Lock()
	defer s.mu.Unlock()

	filtered := s.filtered()
	start := (s.currentPage - 1) * PageSize
	if start >= len(filtered) {
		return []models.Order{}
	}
	end := start + PageSize
	if end > len(filtered) {
		end = len(filtered)
	}
	out := make([]models.Order, end-start)
	copy(out, filtered[start:end])
	return out
}

// SetFilter sets the status filter. A changed value resets pagination to
// the first page; re-setting the current value keeps the page.
func (s *OrderStore) SetFilter(filter string) error {
	if !models.ValidFilter(filter) {
		return fmt.Errorf("%w: %q", ErrInvalidFilter, filter)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if filter != s.filterStatus {
		s.filterStatus = filter
		s.currentPage = 1
	}
	return nil
}

// SetSearch sets the customer-name search text. Matching is a
// case-insensitive substring test against "first last". A changed value
// resets pagination to the first page.
func (s *OrderStore) SetSearch(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if text != s.searchText {
		s.searchText = text
		s.currentPage = 1
	}
}

// NextPage advances one page unless the current page is already the last
// one for the active filter and search.
func (s *OrderStore) NextPage() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.currentPage*PageSize < len(s.filtered()) {
		s.currentPage++
	}
}

// PrevPage moves one page back, stopping at page 1.
func (s *OrderStore) PrevPage() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.currentPage > 1 {
		s.currentPage--
	}
}

// clampPage pulls currentPage back into range after the filtered set
// shrinks. Page math is always derived from the current filtered
// length, never cached. Callers must hold s.mu.
func (s *OrderStore) clampPage() {
	last := (len(s.filtered()) + PageSize - 1) / PageSize
	if last < 1 {
		last = 1
	}
	if s.currentPage > last {
		s.currentPage = last
	}
}

// UpdateStatus patches one order's status on the remote store and, only
// once the patch is confirmed, mirrors it into the snapshot. An unknown
// id performs no remote call. On remote failure the snapshot is left
// exactly as it was.
func (s *OrderStore) UpdateStatus(ctx context.Context, orderID string, status models.OrderStatus) error {
	if !models.ValidStatus(status) {
		return fmt.Errorf("%w: %q", ErrInvalidStatus, status)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOf(orderID)
	if idx < 0 {
		return ErrOrderNotFound
	}

	if err := s.remote.SetOrderStatus(ctx, orderID, status); err != nil {
		s.logger.WithError(err).WithField("order_id", orderID).Error("failed to update order status")
		return fmt.Errorf("update status of order %s: %w", orderID, err)
	}

	s.orders[idx].Status = status
	s.logger.WithFields(logrus.Fields{"order_id": orderID, "status": status}).Info("order status updated")
	return nil
}

// DeleteOrder removes one order from the remote store and, only once
// the delete is confirmed, drops it from the snapshot. An unknown id
// performs no remote call. On remote failure the snapshot is left
// exactly as it was. Deletes are never retried.
func (s *OrderStore) DeleteOrder(ctx context.Context, orderID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOf(orderID)
	if idx < 0 {
		return ErrOrderNotFound
	}

	if err := s.remote.DeleteOrder(ctx, orderID); err != nil {
		s.logger.WithError(err).WithField("order_id", orderID).Error("failed to delete order")
		return fmt.Errorf("delete order %s: %w", orderID, err)
	}

	s.orders = append(s.orders[:idx], s.orders[idx+1:]...)
	if s.selectedID == orderID {
		s.selectedID = ""
	}
	s.clampPage()
	s.logger.WithField("order_id", orderID).Info("order deleted")
	return nil
}

// SelectOrder toggles which order's detail panel is expanded. Selecting
// the already-selected id collapses it; an unknown id is a no-op.
func (s *OrderStore) SelectOrder(orderID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if orderID == s.selectedID {
		s.selectedID = ""
		return
	}
	if s.indexOf(orderID) >= 0 {
		s.selectedID = orderID
	}
}

// Selected returns the currently expanded order, if any.
func (s *OrderStore) Selected() (models.Order, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOf(s.selectedID)
	if s.selectedID == "" || idx < 0 {
		return models.Order{}, false
	}
	return s.orders[idx], true
}

// Get returns one order from the snapshot by id.
func (s *OrderStore) Get(orderID string) (models.Order, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOf(orderID)
	if idx < 0 {
		return models.Order{}, false
	}
	return s.orders[idx], true
}

// View describes the dashboard state a client needs to render the
// pagination and filter controls.
type View struct {
	Page      int    `json:"page"`
	PageCount int    `json:"page_count"`
	Total     int    `json:"total"`
	Filter    string `json:"filter"`
	Search    string `json:"search"`
}

// CurrentView reports the active page, derived page count over the
// filtered set, and the filter/search values.
func (s *OrderStore) CurrentView() View {
	s.mu.Lock()
	defer s.mu.Unlock()

	total := len(s.filtered())
	pages := (total + PageSize - 1) / PageSize
	if pages < 1 {
		pages = 1
	}
	return View{
		Page:      s.currentPage,
		PageCount: pages,
		Total:     total,
		Filter:    s.filterStatus,
		Search:    s.searchText,
	}
}

// indexOf returns the snapshot position of orderID, or -1. Callers must
// hold s.mu.
func (s *OrderStore) indexOf(orderID string) int {
	for i, o := range s.orders {
		if o.ID == orderID {
			return i
		}
	}
	return -1
}
