package cart

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"ShopFront/pkg/kit"
)

// Server exposes the cart to the drawer renderer. Every mutation responds
// with the fresh cart view, so the drawer refreshes from the response
// instead of issuing a second read.
type Server struct {
	Store  *Store
	Lookup LookupFunc
	Log    *zap.Logger
}

const maxBodyBytes = 1 << 20

func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()

	r.Get("/", s.view)
	r.Post("/items", s.add)
	r.Patch("/items/{id}", s.changeQty)
	r.Delete("/items/{id}", s.remove)

	return r
}

type cartView struct {
	Items []Line          `json:"items"`
	Total decimal.Decimal `json:"total"`
	Count int             `json:"count"`
}

// flexID accepts product ids as JSON strings or numbers, matching the
// catalog's id handling.
type flexID string

func (id *flexID) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*id = flexID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("id must be a string or a number: %w", err)
	}
	*id = flexID(n.String())
	return nil
}

type addReq struct {
	ID  flexID `json:"id"`
	Qty int    `json:"qty"`
}

type changeQtyReq struct {
	Delta int `json:"delta"`
}

func (s *Server) view(w http.ResponseWriter, r *http.Request) {
	s.respondView(w, r)
}

func (s *Server) add(w http.ResponseWriter, r *http.Request) {
	var req addReq
	if err := decodeBody(w, r, &req); err != nil {
		kit.WriteError(w, r, http.StatusBadRequest, "bad json", nil)
		return
	}
	if req.ID == "" {
		kit.WriteError(w, r, http.StatusBadRequest, "id required", nil)
		return
	}
	if req.Qty < 0 {
		kit.WriteError(w, r, http.StatusBadRequest, "bad qty", nil)
		return
	}
	if req.Qty == 0 {
		req.Qty = 1
	}

	if err := s.Store.Add(r.Context(), string(req.ID), req.Qty, s.Lookup); err != nil {
		s.logError("cart add failed", err, string(req.ID))
		kit.WriteError(w, r, http.StatusInternalServerError, "server error", nil)
		return
	}
	s.respondView(w, r)
}

func (s *Server) changeQty(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req changeQtyReq
	if err := decodeBody(w, r, &req); err != nil {
		kit.WriteError(w, r, http.StatusBadRequest, "bad json", nil)
		return
	}

	if err := s.Store.ChangeQty(r.Context(), id, req.Delta); err != nil {
		s.logError("cart qty change failed", err, id)
		kit.WriteError(w, r, http.StatusInternalServerError, "server error", nil)
		return
	}
	s.respondView(w, r)
}

func (s *Server) remove(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := s.Store.Remove(r.Context(), id); err != nil {
		s.logError("cart remove failed", err, id)
		kit.WriteError(w, r, http.StatusInternalServerError, "server error", nil)
		return
	}
	s.respondView(w, r)
}

func (s *Server) respondView(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	items, err := s.Store.Snapshot(ctx)
	if err != nil {
		s.logError("cart read failed", err, "")
		kit.WriteError(w, r, http.StatusInternalServerError, "server error", nil)
		return
	}
	total, err := s.Store.Total(ctx)
	if err != nil {
		s.logError("cart read failed", err, "")
		kit.WriteError(w, r, http.StatusInternalServerError, "server error", nil)
		return
	}
	count, err := s.Store.Count(ctx)
	if err != nil {
		s.logError("cart read failed", err, "")
		kit.WriteError(w, r, http.StatusInternalServerError, "server error", nil)
		return
	}

	kit.WriteJSON(w, http.StatusOK, cartView{Items: items, Total: total, Count: count})
}

func (s *Server) logError(msg string, err error, id string) {
	if s.Log == nil {
		return
	}
	fields := []zap.Field{zap.Error(err)}
	if id != "" {
		fields = append(fields, zap.String("product_id", id))
	}
	s.Log.Error(msg, fields...)
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	defer func() { _ = r.Body.Close() }()

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	if err := dec.Decode(v); err != nil {
		return err
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		return errors.New("extra data after json object")
	}
	return nil
}
