package catalog

import (
	"strings"
	"sync"

	"github.com/shopspring/decimal"
)

const (
	// CategoryAll disables the category restriction.
	CategoryAll = "ALL"

	DefaultPageSize = 8
)

// defaultMaxPrice mirrors the upper bound of the storefront price slider.
var defaultMaxPrice = decimal.NewFromInt(6000)

// Filter narrows the catalog. Zero-ish values relax their clause: empty
// Search, CategoryAll, and an empty Brands set match everything. The price
// window is inclusive on both ends and is not validated; MinPrice above
// MaxPrice matches nothing.
type Filter struct {
	Search   string
	Category string
	Brands   []string
	MinPrice decimal.Decimal
	MaxPrice decimal.Decimal
}

func DefaultFilter() Filter {
	return Filter{
		Category: CategoryAll,
		MinPrice: decimal.Zero,
		MaxPrice: defaultMaxPrice,
	}
}

// FilterPatch is a partial Filter; nil fields keep their current value.
type FilterPatch struct {
	Search   *string
	Category *string
	Brands   *[]string
	MinPrice *decimal.Decimal
	MaxPrice *decimal.Decimal
}

type PageResult struct {
	Items      []Product `json:"items"`
	Page       int       `json:"page"`
	TotalPages int       `json:"total_pages"`
	TotalCount int       `json:"total_count"`
}

// Engine owns the immutable-per-session product list, the current Filter,
// and the current page, and produces paginated filtered views of the
// catalog. Filtering is a fresh full scan on every Page call.
type Engine struct {
	mu       sync.Mutex
	products []Product
	filter   Filter
	page     int
	pageSize int
}

func NewEngine(pageSize int) *Engine {
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}
	return &Engine{
		filter:   DefaultFilter(),
		page:     1,
		pageSize: pageSize,
	}
}

// SetCatalog replaces the product list and returns to the first page.
func (e *Engine) SetCatalog(products []Product) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.products = make([]Product, len(products))
	copy(e.products, products)
	e.page = 1
}

// SetFilter merges the patch into the current filter. Any filter change
// returns to the first page.
func (e *Engine) SetFilter(p FilterPatch) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if p.Search != nil {
		e.filter.Search = *p.Search
	}
	if p.Category != nil {
		e.filter.Category = *p.Category
	}
	if p.Brands != nil {
		e.filter.Brands = append([]string(nil), (*p.Brands)...)
	}
	if p.MinPrice != nil {
		e.filter.MinPrice = *p.MinPrice
	}
	if p.MaxPrice != nil {
		e.filter.MaxPrice = *p.MaxPrice
	}
	e.page = 1
}

// SetPage stores the requested page as-is. Out-of-range values are legal
// here and get clamped by the next Page call.
func (e *Engine) SetPage(n int) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.page = n
}

// Page scans the catalog with the current filter, clamps the stored page
// into the available range, and returns that page's slice.
func (e *Engine) Page() PageResult {
	e.mu.Lock()
	defer e.mu.Unlock()

	filtered := make([]Product, 0, e.pageSize)
	for _, p := range e.products {
		if e.filter.matches(p) {
			filtered = append(filtered, p)
		}
	}

	totalCount := len(filtered)
	totalPages := (totalCount + e.pageSize - 1) / e.pageSize

	if e.page > totalPages {
		e.page = max(1, totalPages)
	}
	if e.page < 1 {
		e.page = 1
	}

	start := min((e.page-1)*e.pageSize, totalCount)
	end := min(start+e.pageSize, totalCount)

	return PageResult{
		Items:      filtered[start:end],
		Page:       e.page,
		TotalPages: totalPages,
		TotalCount: totalCount,
	}
}

// Get looks a product up by id in the full, unfiltered catalog.
func (e *Engine) Get(id ID) (Product, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()

	for _, p := range e.products {
		if p.ID == id {
			return p, true
		}
	}
	return Product{}, false
}

func (f Filter) matches(p Product) bool {
	if f.Category != CategoryAll && p.Category != f.Category {
		return false
	}
	if len(f.Brands) > 0 && !contains(f.Brands, p.Brand) {
		return false
	}
	if p.Price.Cmp(f.MinPrice) < 0 || p.Price.Cmp(f.MaxPrice) > 0 {
		return false
	}
	if f.Search != "" &&
		!strings.Contains(strings.ToLower(p.Title), strings.ToLower(f.Search)) {
		return false
	}
	return true
}

func contains(set []string, v string) bool {
	for _, s := range set {
		if s == v {
			return true
		}
	}
	return false
}
