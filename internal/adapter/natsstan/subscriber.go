package natsstan

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	stan "github.com/nats-io/stan.go"
	"go.uber.org/zap"

	"github.com/example/order-fulfillment-service/internal/domain"
)

// Subscriber consumes availability changes and patches product status
// through the product client. Messages whose change crosses no
// availability edge are acked and dropped. A failed status patch is
// still acked: the contract is best effort, not at-least-once delivery
// into the product service.
type Subscriber struct {
	ClusterID string
	ClientID  string
	URL       string
	Subject   string
	Durable   string
	Products  domain.ProductClient
	Log       *zap.Logger
}

func (s *Subscriber) Subscribe(ctx context.Context) error {
	clientID := s.ClientID
	if clientID == "" {
		clientID = fmt.Sprintf("availability-%s", uuid.NewString()[:8])
	}
	sc, err := stan.Connect(s.ClusterID, clientID, stan.NatsURL(s.URL))
	if err != nil {
		return err
	}
	go func() {
		<-ctx.Done()
		sc.Close()
	}()
	_, err = sc.QueueSubscribe(s.Subject, "availability-workers", func(m *stan.Msg) {
		var change domain.AvailabilityChange
		if err := json.Unmarshal(m.Data, &change); err != nil {
			s.Log.Error("invalid availability message", zap.Error(err))
			_ = m.Ack()
			return
		}
		s.handle(change)
		if err := m.Ack(); err != nil {
			s.Log.Error("ack failed", zap.String("event_id", change.EventID), zap.Error(err))
		}
	}, stan.DurableName(s.Durable), stan.SetManualAckMode(), stan.AckWait(10*time.Second), stan.DeliverAllAvailable())
	return err
}

func (s *Subscriber) handle(change domain.AvailabilityChange) {
	status, flip := domain.StatusAfterChange(change.PreviousQty, change.NewQty)
	if !flip {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.Products.UpdateProductStatus(ctx, change.ProductID, status); err != nil {
		s.Log.Error("product status update failed",
			zap.String("event_id", change.EventID),
			zap.Int64("product_id", change.ProductID),
			zap.String("status", string(status)),
			zap.Error(err))
		return
	}
	s.Log.Info("product status updated",
		zap.Int64("product_id", change.ProductID),
		zap.String("status", string(status)))
}
