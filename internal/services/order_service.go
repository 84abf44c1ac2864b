package services

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"kawther/internal/events"
	"kawther/internal/models"
	"kawther/internal/store"
)

const orderNumberPrefix = "KW"

// CheckoutDetails is what the customer supplies at checkout.
type CheckoutDetails struct {
	Customer     models.Customer
	Address      models.Address
	DeliverySlot string
	Payment      models.Payment
	// RequireItems makes CreateOrder fail with ErrEmptyCart when the cart has no priced lines.
	RequireItems bool
}

// OrderService turns the cart into orders and manages order history.
type OrderService struct {
	store     *store.Store
	rules     PricingRules
	publisher events.Publisher
	logger    *zap.Logger
	now       func() time.Time
}

// NewOrderService creates a new OrderService.
func NewOrderService(st *store.Store, rules PricingRules, publisher events.Publisher, logger *zap.Logger) *OrderService {
	if publisher == nil {
		publisher = events.NopPublisher{}
	}
	return &OrderService{
		store:     st,
		rules:     rules,
		publisher: publisher,
		logger:    logger,
		now:       time.Now,
	}
}

// SetClock replaces the time source used for order timestamps.
func (s *OrderService) SetClock(now func() time.Time) {
	s.now = now
}

// GetAllOrders returns the order history, most recent first.
func (s *OrderService) GetAllOrders() []models.Order {
	return s.store.Snapshot().Orders
}

// GetOrderByID retrieves a single order by its ID.
func (s *OrderService) GetOrderByID(id string) (*models.Order, error) {
	if o := s.store.Snapshot().OrderByID(id); o != nil {
		out := *o
		return &out, nil
	}
	return nil, fmt.Errorf("order %s: %w", id, ErrOrderNotFound)
}

// CreateOrder snapshots the cart into a new pending order, decrements stock (never below zero),
// clears the cart and prepends the order to the history, all in one store update. An empty cart
// gives an empty order unless details.RequireItems is set. The order.placed event is published after the update commits;
// a publishing failure is logged and does not fail the order.
func (s *OrderService) CreateOrder(ctx context.Context, details CheckoutDetails) (*models.Order, error) {
	var order models.Order

	err := s.store.Update(ctx, func(st *store.State) error {
		view := PriceCart(st.Cart, st.Products, st.Coupons, s.rules)
		if details.RequireItems && len(view.Items) == 0 {
			return ErrEmptyCart
		}

		items := make([]models.OrderItem, 0, len(view.Items))
		for _, line := range view.Items {
			items = append(items, models.OrderItem{
				ProductID:     line.ProductID,
				ProductNameAr: line.Product.NameAr,
				ProductNameEn: line.Product.NameEn,
				WeightOption:  line.SelectedWeight,
				Qty:           line.Qty,
				UnitPrice:     line.ItemPrice,
				TotalPrice:    line.LineTotal,
			})
		}

		order = models.Order{
			ID:           uuid.New().String(),
			Number:       nextOrderNumber(st.Orders),
			CreatedAt:    s.now().UTC(),
			Status:       models.OrderPending,
			Customer:     details.Customer,
			Address:      details.Address,
			DeliverySlot: details.DeliverySlot,
			Items:        items,
			Payment:      details.Payment,
			Totals:       view.Totals,
		}

		for _, line := range view.Items {
			if p := st.ProductByID(line.ProductID); p != nil {
				p.StockQty = max(0, p.StockQty-line.Qty)
			}
		}

		st.Orders = append([]models.Order{order}, st.Orders...)
		st.Cart = models.Cart{Items: []models.CartItem{}}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	s.logger.Info("order created",
		zap.String("order_id", order.ID),
		zap.String("number", order.Number),
		zap.Int("items", len(order.Items)),
		zap.String("total", order.Totals.Total.String()))

	if err := s.publisher.PublishOrderPlaced(ctx, events.NewOrderPlacedEvent(&order)); err != nil {
		s.logger.Error("failed to publish order event", zap.String("order_id", order.ID), zap.Error(err))
	}

	return &order, nil
}

// UpdateOrderStatus sets the status of an order. Any known status may follow any other.
func (s *OrderService) UpdateOrderStatus(ctx context.Context, id string, status models.OrderStatus) error {
	if !status.Valid() {
		return fmt.Errorf("%s: %w", status, ErrInvalidStatus)
	}
	return s.store.Update(ctx, func(st *store.State) error {
		o := st.OrderByID(id)
		if o == nil {
			return fmt.Errorf("order %s: %w", id, ErrOrderNotFound)
		}
		o.Status = status
		return nil
	})
}

// nextOrderNumber continues the KW sequence from the highest number in the history.
func nextOrderNumber(orders []models.Order) string {
	var highest int64
	for _, o := range orders {
		n, err := strconv.ParseInt(strings.TrimPrefix(o.Number, orderNumberPrefix), 10, 64)
		if err == nil && n > highest {
			highest = n
		}
	}
	return fmt.Sprintf("%s%08d", orderNumberPrefix, highest+1)
}
