package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"backoffice/internal/broker"
	"backoffice/internal/models"
	"backoffice/internal/store"
	"backoffice/internal/util"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// OrderService handles order business logic
type OrderService struct {
	store          *store.Store
	eventPublisher *broker.EventPublisher
	logger         *zap.Logger
}

// NewOrderService creates a new order service
func NewOrderService(store *store.Store, eventPublisher *broker.EventPublisher) *OrderService {
	return &OrderService{
		store:          store,
		eventPublisher: eventPublisher,
		logger:         util.GetLogger(),
	}
}

// PlaceOrderRequest represents a request to place an order. Either
// UserID or the guest fields identify the customer.
type PlaceOrderRequest struct {
	UserID        int64              `json:"user_id,omitempty"`
	CustomerName  string             `json:"customer_name,omitempty"`
	CustomerEmail string             `json:"customer_email,omitempty"`
	Items         []OrderItemRequest `json:"items" binding:"required,min=1"`
}

// OrderItemRequest represents an item in an order
type OrderItemRequest struct {
	ProductID int64 `json:"product_id" binding:"required"`
	Quantity  int   `json:"quantity" binding:"required,min=1"`
}

// PlaceOrderResponse represents the response after placing an order
type PlaceOrderResponse struct {
	OrderID     int64  `json:"order_id"`
	Status      string `json:"status"`
	TotalAmount int64  `json:"total_amount"`
}

// PlaceOrder validates the items, snapshots current prices and runs
// the transactional stock decrement. Stock only ever changes through
// this path and Cancel.
func (s *OrderService) PlaceOrder(ctx context.Context, req *PlaceOrderRequest) (*PlaceOrderResponse, error) {
	ctx, span := util.StartSpan(ctx, "OrderService.PlaceOrder")
	defer span.End()

	start := time.Now()
	defer func() {
		util.OrderPlacementLatency.Observe(time.Since(start).Seconds())
	}()

	products, err := s.validateOrderItems(ctx, req.Items)
	if err != nil {
		util.OrdersFailedTotal.WithLabelValues("invalid_items").Inc()
		return nil, err
	}

	totalAmount := s.calculateTotal(req.Items, products)

	order := &models.Order{
		Status:      models.OrderStatusPending,
		TotalAmount: totalAmount,
	}
	if req.UserID != 0 {
		order.UserID = sql.NullInt64{Int64: req.UserID, Valid: true}
	} else {
		order.CustomerName = sql.NullString{String: req.CustomerName, Valid: req.CustomerName != ""}
		order.CustomerEmail = sql.NullString{String: req.CustomerEmail, Valid: req.CustomerEmail != ""}
	}

	items := make([]models.OrderItem, len(req.Items))
	for i, item := range req.Items {
		items[i] = models.OrderItem{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			Price:     products[item.ProductID].Price,
		}
	}

	changes, err := s.store.PlaceOrderTx(ctx, order, items)
	if err != nil {
		reason := "db_error"
		if store.IsInsufficientStock(err) {
			reason = "insufficient_stock"
		}
		util.OrdersFailedTotal.WithLabelValues(reason).Inc()
		return nil, fmt.Errorf("failed to place order: %w", err)
	}

	util.OrdersPlacedTotal.Inc()
	s.logger.Info("Order placed",
		zap.Int64("order_id", order.ID),
		zap.Int64("total_amount", totalAmount),
		zap.Int("items", len(items)))

	s.publishOrderPlaced(ctx, order, items)
	s.publishStockChanges(ctx, changes)

	return &PlaceOrderResponse{
		OrderID:     order.ID,
		Status:      order.Status,
		TotalAmount: totalAmount,
	}, nil
}

// Cancel cancels an order and restores its stock
func (s *OrderService) Cancel(ctx context.Context, orderID int64) error {
	ctx, span := util.StartSpan(ctx, "OrderService.Cancel")
	defer span.End()

	oldStatus, changes, err := s.store.CancelOrderTx(ctx, orderID)
	if err != nil {
		return fmt.Errorf("failed to cancel order: %w", err)
	}

	util.OrdersCancelledTotal.Inc()
	s.logger.Info("Order cancelled",
		zap.Int64("order_id", orderID),
		zap.String("old_status", oldStatus))

	s.publishStatusChange(ctx, orderID, oldStatus, models.OrderStatusCancelled)
	s.publishStockChanges(ctx, changes)

	return nil
}

// UpdateStatus transitions an order to a new non-cancelled status.
// Cancellation goes through Cancel so the restock happens.
func (s *OrderService) UpdateStatus(ctx context.Context, orderID int64, status string) error {
	if !models.ValidOrderStatus(status) {
		return fmt.Errorf("unknown order status: %s", status)
	}
	if status == models.OrderStatusCancelled {
		return s.Cancel(ctx, orderID)
	}

	order, err := s.store.GetOrderByID(ctx, orderID)
	if err != nil {
		return err
	}
	if order == nil {
		return fmt.Errorf("order not found: %d", orderID)
	}

	if err := validTransition(order.Status, status); err != nil {
		return err
	}

	if err := s.store.UpdateOrderStatus(ctx, orderID, status); err != nil {
		return fmt.Errorf("failed to update order status: %w", err)
	}

	s.publishStatusChange(ctx, orderID, order.Status, status)
	return nil
}

// ErrOrderCancelled is returned when a status change targets an
// order that has already been cancelled.
var ErrOrderCancelled = errors.New("order is cancelled")

// validTransition rejects status changes out of the cancelled state.
// Cancellation already restored the stock, so reviving the order
// would sell inventory that has been returned to the shelf.
func validTransition(oldStatus, newStatus string) error {
	if oldStatus == models.OrderStatusCancelled {
		return fmt.Errorf("cannot transition to %s: %w", newStatus, ErrOrderCancelled)
	}
	return nil
}

// GetOrder retrieves an order with its items, nil when absent
func (s *OrderService) GetOrder(ctx context.Context, orderID int64) (*models.OrderDetail, error) {
	return s.store.GetOrderByID(ctx, orderID)
}

func (s *OrderService) publishOrderPlaced(ctx context.Context, order *models.Order, items []models.OrderItem) {
	eventItems := make([]models.OrderItemData, len(items))
	for i, item := range items {
		eventItems[i] = models.OrderItemData{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			Price:     item.Price,
		}
	}

	event := &models.OrderPlacedEvent{
		BaseEvent: models.BaseEvent{
			EventID:   uuid.New().String(),
			EventType: models.EventTypeOrderPlaced,
			Timestamp: time.Now(),
		},
		OrderID:     order.ID,
		UserID:      order.UserID.Int64,
		TotalAmount: order.TotalAmount,
		Items:       eventItems,
	}

	if err := s.eventPublisher.PublishOrderPlaced(ctx, event); err != nil {
		s.logger.Error("Failed to publish OrderPlaced event", zap.Error(err))
	}
}

func (s *OrderService) publishStatusChange(ctx context.Context, orderID int64, oldStatus, newStatus string) {
	event := &models.OrderStatusChangedEvent{
		BaseEvent: models.BaseEvent{
			EventID:   uuid.New().String(),
			EventType: models.EventTypeOrderStatusChanged,
			Timestamp: time.Now(),
		},
		OrderID:   orderID,
		OldStatus: oldStatus,
		NewStatus: newStatus,
	}

	if err := s.eventPublisher.PublishOrderStatusChanged(ctx, event); err != nil {
		s.logger.Error("Failed to publish OrderStatusChanged event", zap.Error(err))
	}
}

func (s *OrderService) publishStockChanges(ctx context.Context, changes []models.StockChange) {
	for _, change := range changes {
		direction := "decrement"
		if change.Delta > 0 {
			direction = "increment"
		}
		util.StockAdjustmentsTotal.WithLabelValues(direction).Inc()

		event := &models.StockAdjustedEvent{
			BaseEvent: models.BaseEvent{
				EventID:   uuid.New().String(),
				EventType: models.EventTypeStockAdjusted,
				Timestamp: time.Now(),
			},
			ProductID: change.ProductID,
			Delta:     change.Delta,
			NewStock:  change.NewStock,
		}

		if err := s.eventPublisher.PublishStockAdjusted(ctx, event); err != nil {
			s.logger.Error("Failed to publish StockAdjusted event", zap.Error(err))
		}
	}
}

// validateOrderItems validates that all products exist
func (s *OrderService) validateOrderItems(ctx context.Context, items []OrderItemRequest) (map[int64]*models.Product, error) {
	productIDs := make([]int64, len(items))
	for i, item := range items {
		productIDs[i] = item.ProductID
	}

	products, err := s.store.GetProductsByIDs(ctx, productIDs)
	if err != nil {
		return nil, err
	}

	productMap := make(map[int64]*models.Product)
	for i := range products {
		productMap[products[i].ID] = &products[i]
	}

	for _, item := range items {
		if _, ok := productMap[item.ProductID]; !ok {
			return nil, fmt.Errorf("product not found: %d", item.ProductID)
		}
	}

	return productMap, nil
}

// calculateTotal calculates the total amount for an order
func (s *OrderService) calculateTotal(items []OrderItemRequest, products map[int64]*models.Product) int64 {
	var total int64
	for _, item := range items {
		total += products[item.ProductID].Price * int64(item.Quantity)
	}
	return total
}
