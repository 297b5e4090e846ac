package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/example/order-fulfillment-service/internal/adapter/memory"
	"github.com/example/order-fulfillment-service/internal/domain"
	"github.com/example/order-fulfillment-service/internal/stockledger"
)

func BenchmarkGetStock(b *testing.B) {
	log := zap.NewNop()
	stocks := memory.NewStockRepo()
	catalog := memory.NewProductCatalog()
	dispatcher := stockledger.NewDispatcher(catalog, log)
	defer dispatcher.Close()
	ledger := stockledger.New(stocks, dispatcher, log)
	for i := int64(1); i <= 1000; i++ {
		_ = stocks.Create(context.Background(), domain.StockRecord{ProductID: i, Quantity: 100, ReorderLevel: 10})
	}
	router := NewServer(Deps{
		Ledger:  ledger,
		Metrics: NewMetrics(prometheus.NewRegistry(), "bench"),
		Log:     log,
	}).Router

	b.ResetTimer()
	b.RunParallel(func(pb *testing.PB) {
		i := int64(0)
		for pb.Next() {
			path := fmt.Sprintf("/api/stocks/%d", i%1000+1)
			req := httptest.NewRequest(http.MethodGet, path, nil)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)
			i++
		}
	})
}

func BenchmarkApplyDelta(b *testing.B) {
	log := zap.NewNop()
	stocks := memory.NewStockRepo()
	catalog := memory.NewProductCatalog()
	dispatcher := stockledger.NewDispatcher(catalog, log)
	defer dispatcher.Close()
	ledger := stockledger.New(stocks, dispatcher, log)
	_ = stocks.Create(context.Background(), domain.StockRecord{ProductID: 1, Quantity: 0, ReorderLevel: 10})

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = ledger.ApplyDelta(context.Background(), 1, 1, domain.OpIncrement)
	}
}
