// Package cart owns the shopping cart: one line per product id in first-add
// order, write-through persisted as one JSON value under a single kv key.
package cart

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"ShopFront/internal/kv"
)

// DefaultKey is the kv key the cart persists under.
const DefaultKey = "cart"

// Line is one product's accumulated quantity. Title, Price, and Img are
// snapshotted when the line is first added; later catalog changes do not
// touch existing lines.
type Line struct {
	ID    string          `json:"id"`
	Title string          `json:"title"`
	Price decimal.Decimal `json:"price"`
	Img   string          `json:"img"`
	Qty   int             `json:"qty"`
}

// ProductInfo is the slice of a catalog product the cart snapshots at add
// time. The cart never reads the catalog itself; callers supply a LookupFunc.
type ProductInfo struct {
	ID    string
	Title string
	Price decimal.Decimal
	Img   string
}

type LookupFunc func(id string) (ProductInfo, bool)

// Store keeps the cart in memory after a lazy first load and re-serializes
// the full line list to the kv store after every mutation. A corrupted
// stored value reads as an empty cart. Two Stores sharing one key overwrite
// each other wholesale; the last writer wins.
type Store struct {
	mu  sync.Mutex
	kv  kv.Store
	key string
	log *zap.Logger

	lines  []Line
	loaded bool
}

func NewStore(store kv.Store, key string, log *zap.Logger) *Store {
	if key == "" {
		key = DefaultKey
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Store{kv: store, key: key, log: log}
}

// Add merges qty units of the looked-up product into the cart. An id absent
// from the lookup is logged and declined, never an error: storefront buttons
// may race a stale catalog. A qty below 1 counts as 1.
func (s *Store) Add(ctx context.Context, id string, qty int, lookup LookupFunc) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.load(ctx); err != nil {
		return err
	}
	if qty < 1 {
		qty = 1
	}

	p, ok := lookup(id)
	if !ok {
		s.log.Warn("add to cart declined, product not found", zap.String("product_id", id))
		return nil
	}

	for i := range s.lines {
		if s.lines[i].ID == id {
			s.lines[i].Qty += qty
			return s.persist(ctx)
		}
	}

	s.lines = append(s.lines, Line{
		ID:    p.ID,
		Title: p.Title,
		Price: p.Price,
		Img:   p.Img,
		Qty:   qty,
	})
	return s.persist(ctx)
}

// Remove deletes the line with the given id. Absent id is a no-op, but the
// cart is still re-persisted.
func (s *Store) Remove(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.load(ctx); err != nil {
		return err
	}

	s.removeLocked(id)
	return s.persist(ctx)
}

// ChangeQty adjusts a line's quantity by delta. A result at or below zero
// removes the line; an absent id is a no-op.
func (s *Store) ChangeQty(ctx context.Context, id string, delta int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.load(ctx); err != nil {
		return err
	}

	for i := range s.lines {
		if s.lines[i].ID != id {
			continue
		}

		if s.lines[i].Qty+delta <= 0 {
			s.removeLocked(id)
		} else {
			s.lines[i].Qty += delta
		}
		return s.persist(ctx)
	}
	return nil
}

// Snapshot returns a copy of the current lines; mutating it does not affect
// the cart.
func (s *Store) Snapshot(ctx context.Context) ([]Line, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.load(ctx); err != nil {
		return nil, err
	}

	out := make([]Line, len(s.lines))
	copy(out, s.lines)
	return out, nil
}

// Total is the sum of qty*price across all lines.
func (s *Store) Total(ctx context.Context) (decimal.Decimal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.load(ctx); err != nil {
		return decimal.Zero, err
	}

	total := decimal.Zero
	for _, l := range s.lines {
		total = total.Add(l.Price.Mul(decimal.NewFromInt(int64(l.Qty))))
	}
	return total, nil
}

// Count is the total number of units across all lines, not the number of
// distinct lines.
func (s *Store) Count(ctx context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.load(ctx); err != nil {
		return 0, err
	}

	n := 0
	for _, l := range s.lines {
		n += l.Qty
	}
	return n, nil
}

func (s *Store) removeLocked(id string) {
	kept := s.lines[:0]
	for _, l := range s.lines {
		if l.ID != id {
			kept = append(kept, l)
		}
	}
	s.lines = kept
}

func (s *Store) load(ctx context.Context) error {
	if s.loaded {
		return nil
	}

	raw, ok, err := s.kv.Get(ctx, s.key)
	if err != nil {
		return err
	}

	s.lines = []Line{}
	if ok {
		if err := json.Unmarshal([]byte(raw), &s.lines); err != nil {
			// Lossy recovery: a corrupted value reads as an empty cart.
			s.log.Warn("stored cart unreadable, starting empty", zap.Error(err))
			s.lines = []Line{}
		}
	}
	s.loaded = true
	return nil
}

func (s *Store) persist(ctx context.Context) error {
	raw, err := json.Marshal(s.lines)
	if err != nil {
		return err
	}
	return s.kv.Set(ctx, s.key, string(raw))
}
