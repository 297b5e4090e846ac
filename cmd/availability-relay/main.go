// Command availability-relay consumes stock availability changes from
// NATS Streaming and patches product status through the product
// service. Runs beside the server when notifications go over the bus.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/example/order-fulfillment-service/internal/adapter/httpclient"
	"github.com/example/order-fulfillment-service/internal/adapter/natsstan"
)

func main() {
	log, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer func() { _ = log.Sync() }()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	products := httpclient.NewProductClient(
		getEnv("PRODUCT_BASE_URL", "http://localhost:8081"), 5*time.Second)

	sub := &natsstan.Subscriber{
		ClusterID: getEnv("STAN_CLUSTER_ID", "fulfillment-cluster"),
		ClientID:  os.Getenv("STAN_CLIENT_ID"),
		URL:       getEnv("NATS_URL", "nats://localhost:4222"),
		Subject:   getEnv("STAN_SUBJECT", "stock.availability"),
		Durable:   getEnv("STAN_DURABLE", "availability-durable"),
		Products:  products,
		Log:       log,
	}
	if err := sub.Subscribe(ctx); err != nil {
		log.Fatal("stan subscribe", zap.Error(err))
	}
	log.Info("availability relay running")

	<-ctx.Done()
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
