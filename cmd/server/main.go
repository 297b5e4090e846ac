package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/example/order-fulfillment-service/internal/adapter/httpapi"
	"github.com/example/order-fulfillment-service/internal/adapter/httpclient"
	"github.com/example/order-fulfillment-service/internal/adapter/local"
	"github.com/example/order-fulfillment-service/internal/adapter/memory"
	"github.com/example/order-fulfillment-service/internal/adapter/natsstan"
	"github.com/example/order-fulfillment-service/internal/adapter/repo"
	"github.com/example/order-fulfillment-service/internal/domain"
	"github.com/example/order-fulfillment-service/internal/stockledger"
	"github.com/example/order-fulfillment-service/internal/usecase"
)

func main() {
	log, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer func() { _ = log.Sync() }()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	addr := getEnv("ADDR", ":8080")
	clientTimeout := getDuration("CLIENT_TIMEOUT", 5*time.Second)
	productURL := getEnv("PRODUCT_BASE_URL", "http://localhost:8081")

	// Repositories: postgres when DATABASE_URL is set, in-memory otherwise.
	var (
		orderRepo domain.OrderRepository
		stockRepo domain.StockRepository
	)
	if dbURL := os.Getenv("DATABASE_URL"); dbURL != "" {
		pool, err := pgxpool.New(ctx, dbURL)
		if err != nil {
			log.Fatal("db connect", zap.Error(err))
		}
		defer pool.Close()
		if err := repo.EnsureSchema(ctx, pool); err != nil {
			log.Fatal("init schema", zap.Error(err))
		}
		orderRepo = repo.NewPostgresOrderRepo(pool)
		stockRepo = repo.NewPostgresStockRepo(pool)
		log.Info("using postgres repositories")
	} else {
		orderRepo = memory.NewOrderRepo()
		stockRepo = memory.NewStockRepo()
		log.Info("using in-memory repositories")
	}

	products := httpclient.NewProductClient(productURL, clientTimeout)

	// Availability notifications ride NATS Streaming when configured;
	// otherwise an in-process dispatcher patches the product service
	// directly. Either way the stock write path never waits on them.
	var notifier domain.AvailabilityNotifier
	if natsURL := os.Getenv("NATS_URL"); natsURL != "" {
		pub, err := natsstan.NewPublisher(
			getEnv("STAN_CLUSTER_ID", "fulfillment-cluster"),
			os.Getenv("STAN_CLIENT_ID"),
			natsURL,
			getEnv("STAN_SUBJECT", "stock.availability"),
			log)
		if err != nil {
			log.Fatal("stan connect", zap.Error(err))
		}
		defer func() { _ = pub.Close() }()
		notifier = pub
		log.Info("availability notifications via NATS Streaming")
	} else {
		dispatcher := stockledger.NewDispatcher(products, log)
		defer dispatcher.Close()
		notifier = dispatcher
		log.Info("availability notifications in-process")
	}

	ledger := stockledger.New(stockRepo, notifier, log)

	// The orchestrator goes through the stock service boundary: a remote
	// client when STOCK_BASE_URL points elsewhere, the in-process ledger
	// otherwise.
	var stockClient domain.StockClient
	if stockURL := os.Getenv("STOCK_BASE_URL"); stockURL != "" {
		stockClient = httpclient.NewStockClient(stockURL, clientTimeout)
		log.Info("using remote stock service", zap.String("url", stockURL))
	} else {
		stockClient = local.StockClient{Ledger: ledger}
	}

	pricing := usecase.PricingResolver{Products: products}
	server := httpapi.NewServer(httpapi.Deps{
		CreateOrder:      usecase.CreateOrder{Repo: orderRepo, Stock: stockClient, Pricing: pricing, Log: log},
		UpdateStatus:     usecase.UpdateOrderStatus{Repo: orderRepo, Stock: stockClient, Log: log},
		GetOrder:         usecase.GetOrder{Repo: orderRepo, Pricing: pricing},
		ListOrders:       usecase.ListOrders{Repo: orderRepo, Pricing: pricing},
		OrdersByCustomer: usecase.OrdersByCustomer{Repo: orderRepo, Pricing: pricing},
		OrdersByProduct:  usecase.OrdersByProduct{Repo: orderRepo, Pricing: pricing},
		Ledger:           ledger,
		Metrics:          httpapi.NewMetrics(prometheus.DefaultRegisterer, "server"),
		Log:              log,
	})

	srv := &http.Server{
		Addr:              addr,
		Handler:           server.Router,
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		log.Info("http listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("http", zap.Error(err))
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()
	_ = srv.Shutdown(shutdownCtx)
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}
