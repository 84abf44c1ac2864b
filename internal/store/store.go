// Package store keeps the storefront session state: products, cart, orders, coupons and the
// demo user. Every mutation runs through Update, which works on a private copy, persists the
// slots that changed in one batch and only then publishes the new state. Readers get immutable
// snapshots.
package store

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"kawther/internal/models"
	"kawther/internal/repositories"
	"kawther/internal/seed"
)

// State is one consistent view of the session.
type State struct {
	Products []models.Product
	Cart     models.Cart
	Orders   []models.Order
	Coupons  []models.Coupon
	User     *models.User
}

// ProductByID returns the product with the given id, or nil.
func (st *State) ProductByID(id string) *models.Product {
	for i := range st.Products {
		if st.Products[i].ID == id {
			return &st.Products[i]
		}
	}
	return nil
}

// OrderByID returns the order with the given id, or nil.
func (st *State) OrderByID(id string) *models.Order {
	for i := range st.Orders {
		if st.Orders[i].ID == id {
			return &st.Orders[i]
		}
	}
	return nil
}

// SeedState returns the state used when nothing has been persisted.
func SeedState() *State {
	return &State{
		Products: seed.Products(),
		Cart:     models.Cart{Items: []models.CartItem{}},
		Orders:   []models.Order{},
		Coupons:  seed.Coupons(),
	}
}

// Store owns the session state and its persistence.
type Store struct {
	slots  repositories.SlotStore
	prefix string
	logger *zap.Logger

	mu    sync.RWMutex
	state *State
	// persisted holds the bytes last known to be in the slot store, per slot.
	persisted map[string][]byte
}

// New creates a Store over slots. Keys are prefix + slot name. Call Load before use.
func New(slots repositories.SlotStore, prefix string, logger *zap.Logger) *Store {
	return &Store{
		slots:     slots,
		prefix:    prefix,
		logger:    logger,
		state:     SeedState(),
		persisted: make(map[string][]byte),
	}
}

// Load reads every slot, falling back to seed data for slots that are missing or unreadable.
// Fallback slots are written back so the store heals on the next start.
func (s *Store) Load(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	state := SeedState()
	loaded := make(map[string][]byte)
	fallback := make(map[string][]byte)

	for _, slot := range repositories.AllSlots {
		data, err := s.slots.Get(ctx, s.key(slot))
		if err == nil {
			if err = decodeSlot(state, slot, data); err == nil {
				loaded[slot] = data
				continue
			}
		}
		if errors.Is(err, repositories.ErrSlotNotFound) {
			s.logger.Info("slot empty, using seed data", zap.String("slot", slot))
		} else {
			s.logger.Warn("slot unreadable, using seed data", zap.String("slot", slot), zap.Error(err))
		}
		// decodeSlot may have partially filled the slot; reset it to seed.
		resetSlot(state, slot)
		encoded, encErr := encodeSlot(state, slot)
		if encErr != nil {
			return fmt.Errorf("failed to encode seed slot %s: %w", slot, encErr)
		}
		fallback[slot] = encoded
	}

	if len(fallback) > 0 {
		if err := s.slots.PutAll(ctx, s.keyed(fallback)); err != nil {
			// Not fatal: the slots stay unmarked and are written by the next Update.
			s.logger.Warn("failed to persist seed slots", zap.Error(err))
		} else {
			for slot, data := range fallback {
				loaded[slot] = data
			}
		}
	}

	s.state = state
	s.persisted = loaded
	return nil
}

// Snapshot returns the current state. Callers must treat it as read-only.
func (s *Store) Snapshot() *State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// View calls fn with the current state under the read lock.
func (s *Store) View(fn func(st *State)) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	fn(s.state)
}

// Update runs fn on a deep copy of the state. If fn succeeds, changed slots are persisted in a
// single PutAll and the copy becomes the current state. If fn or the write fails, nothing changes.
// Updates are serialized.
func (s *Store) Update(ctx context.Context, fn func(st *State) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, err := encodeState(s.state)
	if err != nil {
		return err
	}
	work, err := decodeState(current)
	if err != nil {
		return err
	}

	if err := fn(work); err != nil {
		return err
	}

	next, err := encodeState(work)
	if err != nil {
		return err
	}

	changed := make(map[string][]byte)
	for slot, data := range next {
		if old, ok := s.persisted[slot]; !ok || !bytes.Equal(old, data) {
			changed[slot] = data
		}
	}

	if len(changed) > 0 {
		if err := s.slots.PutAll(ctx, s.keyed(changed)); err != nil {
			return fmt.Errorf("failed to persist state: %w", err)
		}
		for slot, data := range changed {
			s.persisted[slot] = data
		}
		s.logger.Debug("state flushed", zap.Int("slots", len(changed)))
	}

	s.state = work
	return nil
}

func (s *Store) key(slot string) string { return s.prefix + slot }

func (s *Store) keyed(entries map[string][]byte) map[string][]byte {
	out := make(map[string][]byte, len(entries))
	for slot, data := range entries {
		out[s.key(slot)] = data
	}
	return out
}

func encodeSlot(st *State, slot string) ([]byte, error) {
	switch slot {
	case repositories.SlotProducts:
		return json.Marshal(st.Products)
	case repositories.SlotCart:
		return json.Marshal(st.Cart)
	case repositories.SlotOrders:
		return json.Marshal(st.Orders)
	case repositories.SlotCoupons:
		return json.Marshal(st.Coupons)
	case repositories.SlotUser:
		return json.Marshal(st.User)
	}
	return nil, fmt.Errorf("unknown slot %q", slot)
}

func decodeSlot(st *State, slot string, data []byte) error {
	switch slot {
	case repositories.SlotProducts:
		var products []models.Product
		if err := json.Unmarshal(data, &products); err != nil {
			return err
		}
		if products == nil {
			products = []models.Product{}
		}
		st.Products = products
	case repositories.SlotCart:
		var cart models.Cart
		if err := json.Unmarshal(data, &cart); err != nil {
			return err
		}
		if cart.Items == nil {
			cart.Items = []models.CartItem{}
		}
		st.Cart = cart
	case repositories.SlotOrders:
		var orders []models.Order
		if err := json.Unmarshal(data, &orders); err != nil {
			return err
		}
		if orders == nil {
			orders = []models.Order{}
		}
		st.Orders = orders
	case repositories.SlotCoupons:
		var coupons []models.Coupon
		if err := json.Unmarshal(data, &coupons); err != nil {
			return err
		}
		if coupons == nil {
			coupons = []models.Coupon{}
		}
		st.Coupons = coupons
	case repositories.SlotUser:
		var user *models.User
		if err := json.Unmarshal(data, &user); err != nil {
			return err
		}
		st.User = user
	default:
		return fmt.Errorf("unknown slot %q", slot)
	}
	return nil
}

func resetSlot(st *State, slot string) {
	fresh := SeedState()
	switch slot {
	case repositories.SlotProducts:
		st.Products = fresh.Products
	case repositories.SlotCart:
		st.Cart = fresh.Cart
	case repositories.SlotOrders:
		st.Orders = fresh.Orders
	case repositories.SlotCoupons:
		st.Coupons = fresh.Coupons
	case repositories.SlotUser:
		st.User = nil
	}
}

func encodeState(st *State) (map[string][]byte, error) {
	out := make(map[string][]byte, len(repositories.AllSlots))
	for _, slot := range repositories.AllSlots {
		data, err := encodeSlot(st, slot)
		if err != nil {
			return nil, fmt.Errorf("failed to encode slot %s: %w", slot, err)
		}
		out[slot] = data
	}
	return out, nil
}

func decodeState(encoded map[string][]byte) (*State, error) {
	st := &State{}
	for _, slot := range repositories.AllSlots {
		if err := decodeSlot(st, slot, encoded[slot]); err != nil {
			return nil, fmt.Errorf("failed to decode slot %s: %w", slot, err)
		}
	}
	return st, nil
}
