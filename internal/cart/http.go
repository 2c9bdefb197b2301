package cart

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"MiniCart/internal/catalog"
	"MiniCart/pkg/kit"
)

const maxBodyBytes = 1 << 16

// Catalog is the read side of the catalog loader.
type Catalog interface {
	State() catalog.State
	Product(id int) (catalog.Product, bool)
}

type Pinger interface {
	Ping(ctx context.Context) error
}

// Server exposes the cart widget over HTTP.
type Server struct {
	Store   *Store
	Catalog Catalog
	Health  Pinger
	Log     *zap.Logger

	// Limit wraps mutating routes; nil leaves them unlimited.
	Limit func(http.Handler) http.Handler
}

type cartResp struct {
	Items      Cart   `json:"items"`
	TotalCount int    `json:"total_count"`
	TotalPrice string `json:"total_price"`
}

type badgeResp struct {
	Count int `json:"count"`
}

type addReq struct {
	ProductID int `json:"product_id"`
}

func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusOK) })
	r.Get("/readyz", s.readyz)

	r.Get("/products", s.products)

	r.Route("/cart", func(rr chi.Router) {
		rr.Get("/", s.cart)
		rr.Get("/badge", s.badge)

		rr.Group(func(mr chi.Router) {
			if s.Limit != nil {
				mr.Use(s.Limit)
			}
			mr.Post("/items", s.add)
			mr.Post("/items/{id}/increase", s.increase)
			mr.Post("/items/{id}/decrease", s.decrease)
		})
	})

	return r
}

func (s *Server) readyz(w http.ResponseWriter, r *http.Request) {
	if s.Health == nil {
		w.WriteHeader(http.StatusOK)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 1*time.Second)
	defer cancel()

	if err := s.Health.Ping(ctx); err != nil {
		s.logger().Warn("readyz failed", zap.Error(err))
		kit.WriteError(w, r, http.StatusServiceUnavailable, "not ready", nil)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (s *Server) products(w http.ResponseWriter, r *http.Request) {
	st := s.Catalog.State()

	switch st.Status {
	case catalog.StatusReady:
		products := st.Products
		if products == nil {
			products = []catalog.Product{}
		}
		kit.WriteJSON(w, http.StatusOK, products)
	case catalog.StatusFailed:
		kit.WriteError(w, r, http.StatusBadGateway, "something went wrong", nil)
	default:
		kit.WriteJSON(w, http.StatusAccepted, map[string]string{"status": st.Status.String()})
	}
}

func (s *Server) cart(w http.ResponseWriter, _ *http.Request) {
	kit.WriteJSON(w, http.StatusOK, newCartResp(s.Store.Items()))
}

func (s *Server) badge(w http.ResponseWriter, _ *http.Request) {
	kit.WriteJSON(w, http.StatusOK, badgeResp{Count: s.Store.TotalCount()})
}

func (s *Server) add(w http.ResponseWriter, r *http.Request) {
	var req addReq
	if err := kit.DecodeJSON(w, r, maxBodyBytes, &req); err != nil {
		kit.WriteError(w, r, http.StatusBadRequest, "bad json", map[string]any{"cause": err.Error()})
		return
	}

	if st := s.Catalog.State(); st.Status != catalog.StatusReady {
		kit.WriteError(w, r, http.StatusServiceUnavailable, "catalog not ready", map[string]any{"status": st.Status.String()})
		return
	}

	p, ok := s.Catalog.Product(req.ProductID)
	if !ok {
		kit.WriteError(w, r, http.StatusNotFound, "unknown product", map[string]any{"product_id": req.ProductID})
		return
	}

	s.dispatch(w, r, AddItemCmd{Product: p})
}

func (s *Server) increase(w http.ResponseWriter, r *http.Request) {
	id, ok := s.lineID(w, r)
	if !ok {
		return
	}

	items, found, err := s.Store.Increase(r.Context(), id)
	if !found {
		kit.WriteError(w, r, http.StatusNotFound, "not in cart", map[string]any{"id": id})
		return
	}
	s.respond(w, "add_item", items, err)
}

func (s *Server) decrease(w http.ResponseWriter, r *http.Request) {
	id, ok := s.lineID(w, r)
	if !ok {
		return
	}

	s.dispatch(w, r, RemoveItemCmd{ID: id})
}

func (s *Server) dispatch(w http.ResponseWriter, r *http.Request, cmd Command) {
	items, err := s.Store.Dispatch(r.Context(), cmd)
	s.respond(w, cmd.Name(), items, err)
}

func (s *Server) respond(w http.ResponseWriter, command string, items Cart, err error) {
	if err != nil {
		// the in-memory cart already changed; the snapshot write is retried
		// on the next mutation
		s.logger().Warn("cart persisted late", zap.String("command", command), zap.Error(err))
	}
	kit.WriteJSON(w, http.StatusOK, newCartResp(items))
}

func (s *Server) lineID(w http.ResponseWriter, r *http.Request) (int, bool) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.Atoi(raw)
	if err != nil {
		kit.WriteError(w, r, http.StatusBadRequest, "bad id", map[string]any{"id": raw})
		return 0, false
	}
	return id, true
}

func (s *Server) logger() *zap.Logger {
	if s.Log == nil {
		return zap.NewNop()
	}
	return s.Log
}

func newCartResp(c Cart) cartResp {
	if c == nil {
		c = Cart{}
	}
	return cartResp{
		Items:      c,
		TotalCount: TotalCount(c),
		TotalPrice: TotalPrice(c).StringFixed(2),
	}
}
