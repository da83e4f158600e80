package cart

import (
	"context"
	"sync"

	"github.com/shopspring/decimal"
	"github.com/thalilabs/storefront/pkg/logger"
)

// ProductSnapshot is the denormalized product copy held per line item.
// The ID is the unique key; display fields are frozen at add time.
type ProductSnapshot struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Price       decimal.Decimal `json:"price"`
	Image       string          `json:"image,omitempty"`
	Description string          `json:"description,omitempty"`
}

// LineItem pairs a product snapshot with the intended quantity.
type LineItem struct {
	Product  ProductSnapshot `json:"product"`
	Quantity int             `json:"quantity"`
}

// Store is the canonical owner of the visitor's cart. At most one line
// item exists per product ID; every mutation persists the collection.
type Store struct {
	mu      sync.Mutex
	items   []LineItem
	storage Storage
	logg    *logger.Logger

	subMu sync.Mutex
	subs  map[int]func()
	nextS int
}

// NewStore loads the persisted collection and returns a ready store.
// Malformed or missing persisted data yields an empty cart.
func NewStore(ctx context.Context, storage Storage, logg *logger.Logger) *Store {
	s := &Store{
		storage: storage,
		logg:    logg,
		subs:    map[int]func(){},
	}
	if storage != nil {
		items, err := storage.Load(ctx)
		if err != nil {
			if logg != nil {
				logg.Warn(ctx, "cart.load_failed, starting empty")
			}
		} else {
			s.items = sanitize(items)
		}
	}
	return s
}

// Add merges quantity into an existing line for the same product, or
// appends a new line. Quantities below 1 are ignored.
func (s *Store) Add(ctx context.Context, product ProductSnapshot, quantity int) {
	if quantity < 1 || product.ID == "" {
		return
	}
	s.mu.Lock()
	merged := false
	for i := range s.items {
		if s.items[i].Product.ID == product.ID {
			s.items[i].Quantity += quantity
			merged = true
			break
		}
	}
	if !merged {
		s.items = append(s.items, LineItem{Product: product, Quantity: quantity})
	}
	s.persistLocked(ctx)
	s.mu.Unlock()
	s.notify()
}

// Remove deletes the line item for the product ID. No-op when absent.
func (s *Store) Remove(ctx context.Context, productID string) {
	s.mu.Lock()
	changed := s.removeLocked(productID)
	if changed {
		s.persistLocked(ctx)
	}
	s.mu.Unlock()
	if changed {
		s.notify()
	}
}

// SetQuantity sets the line's quantity exactly; values <= 0 remove the
// line. No-op when the product is not in the cart.
func (s *Store) SetQuantity(ctx context.Context, productID string, quantity int) {
	if quantity <= 0 {
		s.Remove(ctx, productID)
		return
	}
	s.mu.Lock()
	changed := false
	for i := range s.items {
		if s.items[i].Product.ID == productID {
			s.items[i].Quantity = quantity
			changed = true
			break
		}
	}
	if changed {
		s.persistLocked(ctx)
	}
	s.mu.Unlock()
	if changed {
		s.notify()
	}
}

// Clear empties the collection. Used after a successful checkout.
func (s *Store) Clear(ctx context.Context) {
	s.mu.Lock()
	s.items = nil
	s.persistLocked(ctx)
	s.mu.Unlock()
	s.notify()
}

// Items returns a snapshot of the current line items.
func (s *Store) Items() []LineItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]LineItem, len(s.items))
	copy(out, s.items)
	return out
}

// Total recomputes the sum of price x quantity on every read.
func (s *Store) Total() decimal.Decimal {
	s.mu.Lock()
	defer s.mu.Unlock()
	total := decimal.Zero
	for _, item := range s.items {
		total = total.Add(item.Product.Price.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	return total
}

// ItemCount returns the sum of quantities across all lines, used for
// the cart badge.
func (s *Store) ItemCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	count := 0
	for _, item := range s.items {
		count += item.Quantity
	}
	return count
}

// Subscribe registers a callback fired after every mutation. The
// returned function cancels the subscription.
func (s *Store) Subscribe(fn func()) func() {
	if fn == nil {
		return func() {}
	}
	s.subMu.Lock()
	id := s.nextS
	s.nextS++
	s.subs[id] = fn
	s.subMu.Unlock()
	return func() {
		s.subMu.Lock()
		delete(s.subs, id)
		s.subMu.Unlock()
	}
}

func (s *Store) removeLocked(productID string) bool {
	for i := range s.items {
		if s.items[i].Product.ID == productID {
			s.items = append(s.items[:i], s.items[i+1:]...)
			return true
		}
	}
	return false
}

// persistLocked writes the full collection through storage. Cart
// mutations never fail; persistence problems are logged and the
// in-memory state stays authoritative.
func (s *Store) persistLocked(ctx context.Context) {
	if s.storage == nil {
		return
	}
	items := make([]LineItem, len(s.items))
	copy(items, s.items)
	if err := s.storage.Save(ctx, items); err != nil && s.logg != nil {
		s.logg.Error(ctx, "cart.persist_failed", err)
	}
}

func (s *Store) notify() {
	s.subMu.Lock()
	fns := make([]func(), 0, len(s.subs))
	for _, fn := range s.subs {
		fns = append(fns, fn)
	}
	s.subMu.Unlock()
	for _, fn := range fns {
		fn()
	}
}

func sanitize(items []LineItem) []LineItem {
	out := items[:0]
	seen := map[string]int{}
	for _, item := range items {
		if item.Product.ID == "" || item.Quantity < 1 {
			continue
		}
		if idx, ok := seen[item.Product.ID]; ok {
			out[idx].Quantity += item.Quantity
			continue
		}
		seen[item.Product.ID] = len(out)
		out = append(out, item)
	}
	return out
}
