package repositories

import (
	"context"
	"errors"
)

// Slot names. Each slot holds one JSON-encoded collection, overwritten wholesale on change.
const (
	SlotProducts = "products"
	SlotCart     = "cart"
	SlotOrders   = "orders"
	SlotCoupons  = "coupons"
	SlotUser     = "user"
)

// AllSlots lists every persisted slot in load order.
var AllSlots = []string{SlotProducts, SlotCart, SlotOrders, SlotCoupons, SlotUser}

// ErrSlotNotFound is returned by Get when nothing has been stored under a key.
var ErrSlotNotFound = errors.New("slot not found")

// SlotStore is a key-value byte store holding full snapshots.
type SlotStore interface {
	// Get returns the bytes stored under key or ErrSlotNotFound.
	Get(ctx context.Context, key string) ([]byte, error)
	// PutAll writes every entry or none of them.
	PutAll(ctx context.Context, entries map[string][]byte) error
	Close() error
}
