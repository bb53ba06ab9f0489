package relay

import (
	"context"
	"encoding/json"
	"log"

	"github.com/redis/go-redis/v9"
)

const defaultChannel = "relay:deliveries"

// RedisBroker reparte las entregas del relay entre instancias con pub/sub.
type RedisBroker struct {
	rdb     *redis.Client
	channel string
}

func NewRedisBroker(rdb *redis.Client, channel string) *RedisBroker {
	if channel == "" {
		channel = defaultChannel
	}
	return &RedisBroker{rdb: rdb, channel: channel}
}

func (b *RedisBroker) Publish(ctx context.Context, d Delivery) error {
	payload, err := json.Marshal(d)
	if err != nil {
		return err
	}
	return b.rdb.Publish(ctx, b.channel, payload).Err()
}

// Run se suscribe al canal y entrega cada mensaje hasta que se cancele ctx.
func (b *RedisBroker) Run(ctx context.Context, deliver func(Delivery)) error {
	sub := b.rdb.Subscribe(ctx, b.channel)
	defer sub.Close()

	if _, err := sub.Receive(ctx); err != nil {
		return err
	}

	ch := sub.Channel()
	for {
		select {
		case <-ctx.Done():
			return nil
		case msg, ok := <-ch:
			if !ok {
				return nil
			}
			var d Delivery
			if err := json.Unmarshal([]byte(msg.Payload), &d); err != nil {
				log.Printf("[relay] mensaje inválido en %s: %v", b.channel, err)
				continue
			}
			deliver(d)
		}
	}
}
