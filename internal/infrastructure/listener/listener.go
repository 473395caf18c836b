// Package listener consumes "something changed" notifications for the
// market_deals table. Payload contents are ignored; only the occurrence of
// an event matters.
package listener

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"

	"eko_market/pkg/contextx"
)

var logger = contextx.LoggerFromContextOrDefault //nolint:gochecknoglobals

// DefaultChannel carries insert/update/delete events for market deals.
const DefaultChannel = "market_deals:changes"

type ChangeListener struct {
	client  *redis.Client
	channel string
}

func NewChangeListener(client *redis.Client, channel string) *ChangeListener {
	if channel == "" {
		channel = DefaultChannel
	}

	return &ChangeListener{
		client:  client,
		channel: channel,
	}
}

// Listen subscribes to the change channel and invokes handler once per
// delivered event until ctx is done. The handler must be cheap: it is
// expected to enqueue a refresh intent, not to refresh in place.
func (l *ChangeListener) Listen(ctx context.Context, handler func(ctx context.Context)) error {
	pubsub := l.client.Subscribe(ctx, l.channel)
	defer pubsub.Close()

	if _, err := pubsub.Receive(ctx); err != nil {
		return fmt.Errorf("pubsub.Receive: %w", err)
	}

	logger(ctx).Info("change listener subscribed", "channel", l.channel)

	ch := pubsub.Channel()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case msg, ok := <-ch:
			if !ok {
				return nil
			}

			logger(ctx).Debug("change event received", "channel", msg.Channel)
			handler(ctx)
		}
	}
}
