package httpapi

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/example/order-fulfillment-service/internal/domain"
	"github.com/example/order-fulfillment-service/internal/stockledger"
	"github.com/example/order-fulfillment-service/internal/usecase"
)

// Deps wires the use cases and the stock ledger into the HTTP surface.
type Deps struct {
	CreateOrder      usecase.CreateOrder
	UpdateStatus     usecase.UpdateOrderStatus
	GetOrder         usecase.GetOrder
	ListOrders       usecase.ListOrders
	OrdersByCustomer usecase.OrdersByCustomer
	OrdersByProduct  usecase.OrdersByProduct
	Ledger           *stockledger.Ledger
	Metrics          *Metrics
	Log              *zap.Logger
}

type Server struct {
	Router *mux.Router
	deps   Deps
}

func NewServer(deps Deps) *Server {
	s := &Server{Router: mux.NewRouter(), deps: deps}

	r := s.Router
	if deps.Metrics != nil {
		r.Use(deps.Metrics.Middleware)
	}

	r.HandleFunc("/api/orders", s.handleCreateOrder).Methods(http.MethodPost)
	r.HandleFunc("/api/orders", s.handleListOrders).Methods(http.MethodGet)
	r.HandleFunc("/api/orders/product/{productId}", s.handleOrdersByProduct).Methods(http.MethodGet)
	r.HandleFunc("/api/orders/{orderId}", s.handleGetOrder).Methods(http.MethodGet)
	r.HandleFunc("/api/orders/{orderId}", s.handleUpdateStatus).Methods(http.MethodPatch)

	r.HandleFunc("/api/stocks", s.handleCreateStock).Methods(http.MethodPost)
	r.HandleFunc("/api/stocks/low", s.handleLowStock).Methods(http.MethodGet)
	r.HandleFunc("/api/stocks/{productId}", s.handleGetStock).Methods(http.MethodGet)
	r.HandleFunc("/api/stocks/{productId}", s.handleUpdateStock).Methods(http.MethodPut)
	r.HandleFunc("/api/stocks/{productId}/reorder-level", s.handleReorderLevel).Methods(http.MethodPatch)

	r.Handle("/metrics", MetricsHandler()).Methods(http.MethodGet)
	r.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}).Methods(http.MethodGet)

	return s
}

type createOrderRequest struct {
	CustomerID int64              `json:"customerId"`
	Items      []domain.OrderItem `json:"items"`
}

func (s *Server) handleCreateOrder(w http.ResponseWriter, r *http.Request) {
	var req createOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, r, domain.ErrValidation)
		return
	}
	view, err := s.deps.CreateOrder.Execute(r.Context(), req.CustomerID, req.Items)
	if err != nil {
		s.deps.Log.Warn("create order failed", zap.Error(err))
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, view)
}

func (s *Server) handleListOrders(w http.ResponseWriter, r *http.Request) {
	var (
		views []usecase.OrderView
		err   error
	)
	if v := r.URL.Query().Get("customerId"); v != "" {
		customerID, perr := strconv.ParseInt(v, 10, 64)
		if perr != nil {
			writeError(w, r, domain.ErrValidation)
			return
		}
		views, err = s.deps.OrdersByCustomer.Execute(r.Context(), customerID)
	} else {
		views, err = s.deps.ListOrders.Execute(r.Context())
	}
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, views)
}

func (s *Server) handleOrdersByProduct(w http.ResponseWriter, r *http.Request) {
	productID, err := pathID(r, "productId")
	if err != nil {
		writeError(w, r, err)
		return
	}
	views, err := s.deps.OrdersByProduct.Execute(r.Context(), productID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, views)
}

func (s *Server) handleGetOrder(w http.ResponseWriter, r *http.Request) {
	orderID, err := pathID(r, "orderId")
	if err != nil {
		writeError(w, r, err)
		return
	}
	view, err := s.deps.GetOrder.Execute(r.Context(), orderID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func (s *Server) handleUpdateStatus(w http.ResponseWriter, r *http.Request) {
	orderID, err := pathID(r, "orderId")
	if err != nil {
		writeError(w, r, err)
		return
	}
	status, err := domain.ParseOrderStatus(r.URL.Query().Get("orderStatus"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	if err := s.deps.UpdateStatus.Execute(r.Context(), orderID, status); err != nil {
		s.deps.Log.Warn("status update failed",
			zap.Int64("order_id", orderID), zap.Error(err))
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  string(status),
		"message": "Order status updated successfully",
	})
}

type stockUpdateRequest struct {
	Quantity  int    `json:"quantity"`
	Operation string `json:"operation"`
}

func (s *Server) handleGetStock(w http.ResponseWriter, r *http.Request) {
	productID, err := pathID(r, "productId")
	if err != nil {
		writeError(w, r, err)
		return
	}
	rec, err := s.deps.Ledger.GetStock(r.Context(), productID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, stockView(rec))
}

func (s *Server) handleUpdateStock(w http.ResponseWriter, r *http.Request) {
	productID, err := pathID(r, "productId")
	if err != nil {
		writeError(w, r, err)
		return
	}
	var req stockUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, r, domain.ErrValidation)
		return
	}
	op, err := domain.ParseStockOperation(req.Operation)
	if err != nil {
		writeError(w, r, err)
		return
	}
	rec, err := s.deps.Ledger.ApplyDelta(r.Context(), productID, req.Quantity, op)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, stockView(rec))
}

type reorderLevelRequest struct {
	ReorderLevel int `json:"reorderLevel"`
}

func (s *Server) handleReorderLevel(w http.ResponseWriter, r *http.Request) {
	productID, err := pathID(r, "productId")
	if err != nil {
		writeError(w, r, err)
		return
	}
	var req reorderLevelRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, r, domain.ErrValidation)
		return
	}
	rec, err := s.deps.Ledger.SetReorderLevel(r.Context(), productID, req.ReorderLevel)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, stockView(rec))
}

func (s *Server) handleCreateStock(w http.ResponseWriter, r *http.Request) {
	var rec domain.StockRecord
	if err := json.NewDecoder(r.Body).Decode(&rec); err != nil {
		writeError(w, r, domain.ErrValidation)
		return
	}
	created, err := s.deps.Ledger.CreateStock(r.Context(), rec)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, stockView(created))
}

func (s *Server) handleLowStock(w http.ResponseWriter, r *http.Request) {
	recs, err := s.deps.Ledger.ListLowStock(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	views := make([]stockResponse, 0, len(recs))
	for _, rec := range recs {
		views = append(views, stockView(rec))
	}
	writeJSON(w, http.StatusOK, views)
}

// stockResponse adds the derived low-stock flag to the wire shape.
type stockResponse struct {
	domain.StockRecord
	LowStock bool `json:"lowStock"`
}

func stockView(rec domain.StockRecord) stockResponse {
	return stockResponse{StockRecord: rec, LowStock: rec.Low()}
}

func pathID(r *http.Request, name string) (int64, error) {
	id, err := strconv.ParseInt(mux.Vars(r)[name], 10, 64)
	if err != nil {
		return 0, domain.ErrValidation
	}
	return id, nil
}
