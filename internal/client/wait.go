package client

import (
	"context"
	"fmt"
	"time"

	"github.com/odmkit/webodm-client/internal/model"
)

// DefaultPollInterval is used by WaitForCompletion when the caller passes a
// non-positive interval.
const DefaultPollInterval = 3 * time.Second

// WaitForCompletion polls a task until it reaches a terminal state. It
// returns the task on completion and an error if the task failed or was
// canceled. The wait is bounded only by the context: callers wanting a
// timeout wrap ctx with context.WithTimeout.
func (c *Client) WaitForCompletion(ctx context.Context, projectID int, taskID model.TaskID, pollInterval time.Duration) (*model.Task, error) {
	if pollInterval <= 0 {
		pollInterval = DefaultPollInterval
	}

	for {
		task, err := c.GetTask(ctx, projectID, taskID)
		if err != nil {
			return nil, fmt.Errorf("wait for task %s: %w", taskID, err)
		}

		switch task.Status {
		case model.StatusCompleted:
			return task, nil
		case model.StatusFailed:
			return nil, fmt.Errorf("task %s (%s) failed on the server", taskID, task.DisplayName())
		case model.StatusCanceled:
			return nil, fmt.Errorf("task %s (%s) was canceled", taskID, task.DisplayName())
		}

		c.logger.Debug("task still processing", "task", taskID, "status", task.Status.String())

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(pollInterval):
		}
	}
}
