// Package admin holds the locally-authored product list of the admin entry
// surface. Same persistence shape as the cart: one kv key, whole value
// rewritten per mutation, corrupted value reads as empty.
package admin

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"ShopFront/internal/kv"
)

const (
	// DefaultKey is the kv key the authored list persists under.
	DefaultKey = "authored_products"

	defaultImg = "images/default.jpg"
)

var (
	ErrTitleRequired    = errors.New("title required")
	ErrBrandRequired    = errors.New("brand required")
	ErrCategoryRequired = errors.New("category required")
	ErrBadPrice         = errors.New("price must be positive")
)

type Product struct {
	ID       string          `json:"id"`
	Title    string          `json:"title"`
	Brand    string          `json:"brand"`
	Category string          `json:"category"`
	Price    decimal.Decimal `json:"price"`
	Img      string          `json:"img"`
}

// NewProduct is the authored input; the id and image fallback are assigned
// by Add.
type NewProduct struct {
	Title    string          `json:"title"`
	Brand    string          `json:"brand"`
	Category string          `json:"category"`
	Price    decimal.Decimal `json:"price"`
	Img      string          `json:"img"`
}

type Store struct {
	mu  sync.Mutex
	kv  kv.Store
	key string
	log *zap.Logger
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

// Add validates the authored product, assigns an id and the default image
// when none is given, appends it to the stored list, and persists. Nothing
// is persisted on a validation failure.
func (s *Store) Add(ctx context.Context, np NewProduct) (Product, error) {
	if err := validate(np); err != nil {
		return Product{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	products, err := s.read(ctx)
	if err != nil {
		return Product{}, err
	}

	p := Product{
		ID:       "p_" + uuid.NewString(),
		Title:    strings.TrimSpace(np.Title),
		Brand:    strings.TrimSpace(np.Brand),
		Category: np.Category,
		Price:    np.Price,
		Img:      strings.TrimSpace(np.Img),
	}
	if p.Img == "" {
		p.Img = defaultImg
	}

	products = append(products, p)

	raw, err := json.Marshal(products)
	if err != nil {
		return Product{}, err
	}
	if err := s.kv.Set(ctx, s.key, string(raw)); err != nil {
		return Product{}, err
	}

	s.log.Info("product authored",
		zap.String("id", p.ID),
		zap.String("title", p.Title),
	)
	return p, nil
}

// List returns the stored authored products, oldest first.
func (s *Store) List(ctx context.Context) ([]Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.read(ctx)
}

func (s *Store) read(ctx context.Context) ([]Product, error) {
	raw, ok, err := s.kv.Get(ctx, s.key)
	if err != nil {
		return nil, err
	}
	if !ok {
		return []Product{}, nil
	}

	products := []Product{}
	if err := json.Unmarshal([]byte(raw), &products); err != nil {
		s.log.Warn("stored product list unreadable, starting empty", zap.Error(err))
		return []Product{}, nil
	}
	return products, nil
}

func validate(np NewProduct) error {
	if strings.TrimSpace(np.Title) == "" {
		return ErrTitleRequired
	}
	if strings.TrimSpace(np.Brand) == "" {
		return ErrBrandRequired
	}
	if strings.TrimSpace(np.Category) == "" {
		return ErrCategoryRequired
	}
	if np.Price.Cmp(decimal.Zero) <= 0 {
		return ErrBadPrice
	}
	return nil
}
