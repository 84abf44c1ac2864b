package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	OrderPending   OrderStatus = "pending"
	OrderConfirmed OrderStatus = "confirmed"
	OrderShipped   OrderStatus = "shipped"
	OrderDelivered OrderStatus = "delivered"
	OrderCancelled OrderStatus = "cancelled"
)

// Valid reports whether s is one of the known statuses.
func (s OrderStatus) Valid() bool {
	switch s {
	case OrderPending, OrderConfirmed, OrderShipped, OrderDelivered, OrderCancelled:
		return true
	}
	return false
}

type PaymentMethod string

const (
	PaymentCOD  PaymentMethod = "cod"
	PaymentCard PaymentMethod = "card"
)

type Customer struct {
	Name  string `json:"name" validate:"required,max=120"`
	Phone string `json:"phone" validate:"required,max=30"`
	Email string `json:"email" validate:"omitempty,email"`
}

type Address struct {
	Street string `json:"street" validate:"required,max=300"`
	City   string `json:"city" validate:"required,max=120"`
}

type Payment struct {
	Method PaymentMethod `json:"method" validate:"required,oneof=cod card"`
	Paid   bool          `json:"paid"`
}

// OrderItem is a denormalized copy of a cart line taken when the order was placed.
type OrderItem struct {
	ProductID     string          `json:"product_id"`
	ProductNameAr string          `json:"product_name_ar"`
	ProductNameEn string          `json:"product_name_en"`
	WeightOption  WeightOption    `json:"weight_option"`
	Qty           int             `json:"qty"`
	UnitPrice     decimal.Decimal `json:"unit_price"`
	TotalPrice    decimal.Decimal `json:"total_price"`
}

// Order represents a placed order. Only Status changes after creation.
type Order struct {
	ID           string      `json:"id"`
	Number       string      `json:"number"`
	CreatedAt    time.Time   `json:"created_at"`
	Status       OrderStatus `json:"status"`
	Customer     Customer    `json:"customer"`
	Address      Address     `json:"address"`
	DeliverySlot string      `json:"delivery_slot"`
	Items        []OrderItem `json:"items"`
	Payment      Payment     `json:"payment"`
	Totals       CartTotals  `json:"totals"`
}

// DeliverySlot is a selectable delivery window at checkout.
type DeliverySlot struct {
	Value   string `json:"value"`
	LabelAr string `json:"label_ar"`
	LabelEn string `json:"label_en"`
}
