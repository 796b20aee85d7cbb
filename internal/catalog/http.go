package catalog

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"ShopFront/pkg/kit"
)

// Server exposes the engine to the grid and detail-page renderers.
type Server struct {
	Engine *Engine
	Log    *zap.Logger
}

func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()

	r.Get("/", s.list)
	r.Get("/{id}", s.get)
	r.Get("/{id}/related", s.related)

	return r
}

type productView struct {
	Product
	StockStatus StockStatus `json:"stock_status"`
}

// list applies the request's filter parameters and returns the resulting
// page. Filter changes land before the page number, so a changed filter
// always starts from page 1 and an explicit page request is clamped by the
// engine.
func (s *Server) list(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	var patch FilterPatch
	if q.Has("search") {
		v := q.Get("search")
		patch.Search = &v
	}
	if q.Has("category") {
		v := q.Get("category")
		patch.Category = &v
	}
	if q.Has("brand") {
		v := q["brand"]
		patch.Brands = &v
	}
	if q.Has("min_price") {
		d, err := decimal.NewFromString(q.Get("min_price"))
		if err != nil {
			kit.WriteError(w, r, http.StatusBadRequest, "bad min_price", nil)
			return
		}
		patch.MinPrice = &d
	}
	if q.Has("max_price") {
		d, err := decimal.NewFromString(q.Get("max_price"))
		if err != nil {
			kit.WriteError(w, r, http.StatusBadRequest, "bad max_price", nil)
			return
		}
		patch.MaxPrice = &d
	}

	s.Engine.SetFilter(patch)

	if q.Has("page") {
		n, err := strconv.Atoi(q.Get("page"))
		if err != nil {
			kit.WriteError(w, r, http.StatusBadRequest, "bad page", nil)
			return
		}
		s.Engine.SetPage(n)
	}

	kit.WriteJSON(w, http.StatusOK, s.Engine.Page())
}

func (s *Server) get(w http.ResponseWriter, r *http.Request) {
	id := ID(chi.URLParam(r, "id"))

	p, ok := s.Engine.Get(id)
	if !ok {
		kit.WriteError(w, r, http.StatusNotFound, "not found", map[string]any{"id": id})
		return
	}
	kit.WriteJSON(w, http.StatusOK, productView{Product: p, StockStatus: p.StockStatus()})
}

// related serves the detail-page strip. Category and brand default to the
// focus product's values, the way the detail page pre-selects them.
func (s *Server) related(w http.ResponseWriter, r *http.Request) {
	id := ID(chi.URLParam(r, "id"))

	focus, ok := s.Engine.Get(id)
	if !ok {
		kit.WriteError(w, r, http.StatusNotFound, "not found", map[string]any{"id": id})
		return
	}

	q := r.URL.Query()
	f := RelatedFilter{
		Category:    focus.Category,
		Brand:       focus.Brand,
		FeatureText: q.Get("feature"),
	}
	if q.Has("category") {
		f.Category = q.Get("category")
	}
	if q.Has("brand") {
		f.Brand = q.Get("brand")
	}

	items := s.Engine.Related(id, f)
	kit.WriteJSON(w, http.StatusOK, map[string]any{
		"items": items,
		"count": len(items),
	})
}
