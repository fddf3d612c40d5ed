package events

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/segmentio/kafka-go"

	"storefront/internal/domain"
)

// Publisher emits a cart snapshot record on every cart change. It is
// a fire-and-forget side channel: publish failures are logged and
// swallowed, never surfaced to cart callers.
type Publisher struct {
	writer *kafka.Writer
}

func NewPublisher(brokers []string, topic string) *Publisher {
	return &Publisher{
		writer: &kafka.Writer{
			Addr:     kafka.TCP(brokers...),
			Topic:    topic,
			Balancer: &kafka.LeastBytes{},
		},
	}
}

type cartEvent struct {
	TotalItems int               `json:"total_items"`
	TotalPrice float64           `json:"total_price"`
	Items      []domain.CartItem `json:"items"`
}

// Notify is wired as a store subscriber. Publishing happens on its own
// goroutine so mutation latency never depends on the broker.
func (p *Publisher) Notify(cart domain.Cart) {
	payload, err := json.Marshal(cartEvent{
		TotalItems: cart.TotalItems(),
		TotalPrice: cart.TotalPrice(),
		Items:      cart.Items(),
	})
	if err != nil {
		log.Printf("failed to marshal cart event: %v", err)
		return
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := p.writer.WriteMessages(ctx, kafka.Message{Value: payload}); err != nil {
			log.Printf("failed to publish cart event: %v", err)
		}
	}()
}

func (p *Publisher) Close() {
	if err := p.writer.Close(); err != nil {
		log.Printf("error closing kafka writer: %v", err)
	}
}
