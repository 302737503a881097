package tasks

import (
	"context"
	"fmt"
	"time"

	"github.com/mikestefanello/backlite"
)

// ArticleNotifier fans a published article out to its subscribers.
type ArticleNotifier interface {
	NotifyArticlePublished(articleID uint) error
}

// NotifySubscribersTask emails subscribers about a newly published article.
type NotifySubscribersTask struct {
	ArticleID uint `json:"article_id"`
}

// Config returns the queue configuration for notification tasks.
func (t NotifySubscribersTask) Config() backlite.QueueConfig {
	return backlite.QueueConfig{
		Name:        "notify_subscribers",
		MaxAttempts: 3,
		Backoff:     30 * time.Second,
		Timeout:     2 * time.Minute,
		Retention: &backlite.Retention{
			Duration:   24 * time.Hour,
			OnlyFailed: false,
			Data:       &backlite.RetainData{OnlyFailed: true},
		},
	}
}

// NotifySubscribersProcessor creates a processor function for NotifySubscribersTask.
func NotifySubscribersProcessor(notifier ArticleNotifier) backlite.QueueProcessor[NotifySubscribersTask] {
	return func(ctx context.Context, task NotifySubscribersTask) error {
		if notifier == nil {
			return fmt.Errorf("article notifier not configured")
		}

		if err := notifier.NotifyArticlePublished(task.ArticleID); err != nil {
			return fmt.Errorf("notify subscribers for article %d: %w", task.ArticleID, err)
		}
		return nil
	}
}

// NewNotifySubscribersQueue creates a backlite queue for notification tasks.
func NewNotifySubscribersQueue(notifier ArticleNotifier) backlite.Queue {
	return backlite.NewQueue(NotifySubscribersProcessor(notifier))
}

// EnqueueNotification schedules a subscriber notification for an article.
func (c *Client) EnqueueNotification(articleID uint) error {
	_, err := c.Add(NotifySubscribersTask{ArticleID: articleID}).Save()
	return err
}
