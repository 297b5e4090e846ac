package natsstan

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	stan "github.com/nats-io/stan.go"
	"go.uber.org/zap"

	"github.com/example/order-fulfillment-service/internal/domain"
)

// Publisher carries availability changes onto NATS Streaming. Notify
// publishes asynchronously and never blocks the stock write path; a
// failed publish is logged and the stock change stands.
type Publisher struct {
	sc      stan.Conn
	subject string
	log     *zap.Logger
}

func NewPublisher(clusterID, clientID, url, subject string, log *zap.Logger) (*Publisher, error) {
	if clientID == "" {
		clientID = fmt.Sprintf("stock-pub-%s", uuid.NewString()[:8])
	}
	sc, err := stan.Connect(clusterID, clientID, stan.NatsURL(url),
		stan.ConnectWait(5*time.Second))
	if err != nil {
		return nil, err
	}
	return &Publisher{sc: sc, subject: subject, log: log}, nil
}

func (p *Publisher) Notify(change domain.AvailabilityChange) {
	data, err := json.Marshal(change)
	if err != nil {
		p.log.Error("availability change marshal failed",
			zap.String("event_id", change.EventID), zap.Error(err))
		return
	}
	_, err = p.sc.PublishAsync(p.subject, data, func(guid string, err error) {
		if err != nil {
			p.log.Error("availability publish not acked",
				zap.String("event_id", change.EventID),
				zap.String("guid", guid),
				zap.Error(err))
		}
	})
	if err != nil {
		p.log.Error("availability publish failed",
			zap.String("event_id", change.EventID), zap.Error(err))
	}
}

func (p *Publisher) Close() error {
	return p.sc.Close()
}

var _ domain.AvailabilityNotifier = (*Publisher)(nil)
