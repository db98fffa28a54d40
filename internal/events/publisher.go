package events

import (
	"context"
	"encoding/json"
	"time"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/merchly/order-lookup/internal/domain"
)

// Publisher emits one message per completed lookup to a kafka topic.
// Fire-and-forget: publish errors are logged and never fail the lookup.
type Publisher struct {
	writer *kafkago.Writer
	logger *zap.Logger
}

func NewPublisher(brokers []string, topic string, logger *zap.Logger) *Publisher {
	writer := &kafkago.Writer{
		Addr:         kafkago.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafkago.LeastBytes{},
		BatchTimeout: 10 * time.Millisecond,
		RequiredAcks: kafkago.RequireOne,
	}
	return &Publisher{writer: writer, logger: logger}
}

// Record implements lookup.Reporter.
func (p *Publisher) Record(_ context.Context, rec domain.LookupRecord) {
	value, err := json.Marshal(rec)
	if err != nil {
		p.logger.Warn("marshal lookup event", zap.Error(err))
		return
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		msg := kafkago.Message{
			Key:   []byte(rec.ContactHash),
			Value: value,
		}
		if err := p.writer.WriteMessages(ctx, msg); err != nil {
			p.logger.Warn("publish lookup event",
				zap.Error(err),
				zap.String("source", rec.Source),
			)
		}
	}()
}

func (p *Publisher) Close() error {
	return p.writer.Close()
}
