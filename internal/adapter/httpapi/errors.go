package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/example/order-fulfillment-service/internal/domain"
)

// errorResponse is the error envelope shared by every endpoint.
// Insufficient-stock responses carry the figures so callers (and the
// remote stock client) can act on them.
type errorResponse struct {
	Timestamp time.Time `json:"timestamp"`
	Status    int       `json:"status"`
	Error     string    `json:"error"`
	Message   string    `json:"message"`
	Path      string    `json:"path"`
	ProductID *int64    `json:"productId,omitempty"`
	Available *int      `json:"available,omitempty"`
	Requested *int      `json:"requested,omitempty"`
}

func writeError(w http.ResponseWriter, r *http.Request, err error) {
	resp := errorResponse{
		Timestamp: time.Now().UTC(),
		Message:   err.Error(),
		Path:      r.URL.Path,
	}

	var (
		productNotFound *domain.ProductNotFoundError
		insufficient    *domain.InsufficientStockError
		invalidOrder    *domain.InvalidOrderError
		transition      *domain.InvalidTransitionError
		downstream      *domain.DownstreamError
		partial         *domain.PartialApplicationError
	)
	switch {
	case errors.As(err, &insufficient):
		resp.Status = http.StatusBadRequest
		resp.ProductID = &insufficient.ProductID
		resp.Available = &insufficient.Available
		resp.Requested = &insufficient.Requested
	case errors.As(err, &productNotFound):
		resp.Status = http.StatusNotFound
	case errors.Is(err, domain.ErrNotFound):
		resp.Status = http.StatusNotFound
	case errors.As(err, &invalidOrder), errors.As(err, &transition):
		resp.Status = http.StatusBadRequest
	case errors.Is(err, domain.ErrStockExists):
		resp.Status = http.StatusConflict
	case errors.Is(err, domain.ErrValidation):
		resp.Status = http.StatusBadRequest
	case errors.As(err, &downstream):
		resp.Status = http.StatusBadGateway
	case errors.As(err, &partial):
		// Fatal to the request; the order stays PENDING with partially
		// applied stock, by design.
		resp.Status = http.StatusInternalServerError
	default:
		resp.Status = http.StatusInternalServerError
	}
	resp.Error = http.StatusText(resp.Status)

	writeJSON(w, resp.Status, resp)
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}
