package worker

import (
	"context"
	"fmt"

	"github.com/hibiken/asynq"
)

// TypeDealsRefresh is the asynq task pattern for a collection refresh.
const TypeDealsRefresh = "deals:refresh"

// RefreshQueue enqueues refresh intents instead of refreshing in place, so
// change-notification handlers stay cheap and in-flight fetches are not
// raced from the subscription callback.
type RefreshQueue struct {
	client *asynq.Client
}

func NewRefreshQueue(client *asynq.Client) *RefreshQueue {
	return &RefreshQueue{client: client}
}

func (q *RefreshQueue) EnqueueRefresh(ctx context.Context, trigger string) error {
	task := asynq.NewTask(TypeDealsRefresh, []byte(trigger))

	if _, err := q.client.EnqueueContext(ctx, task); err != nil {
		return fmt.Errorf("client.EnqueueContext: %w", err)
	}

	return nil
}

// HandleRefreshTask adapts the refresher to an asynq handler.
func HandleRefreshTask(refresher *Refresher) func(context.Context, *asynq.Task) error {
	return func(ctx context.Context, task *asynq.Task) error {
		trigger := string(task.Payload())
		if trigger == "" {
			trigger = TriggerChange
		}

		// A failed fetch already resolved the collection to a consistent
		// empty state; retrying through asynq would refetch anyway on the
		// next trigger.
		if err := refresher.Refresh(ctx, trigger); err != nil {
			logger(ctx).Error("queued refresh failed", "error", err)
		}

		return nil
	}
}
