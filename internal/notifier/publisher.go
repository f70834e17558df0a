package notifier

import (
	"context"
	"encoding/json"
	"fmt"

	"contract-manager-backend/internal/domain/notification"

	"github.com/redis/go-redis/v9"
)

// Publisher delivers one notification. Implementations must be safe for
// redelivery: a row may be published more than once if MarkSent fails.
type Publisher interface {
	Publish(ctx context.Context, n notification.Notification) error
}

// RedisPublisher pushes notifications onto a per-user redis channel for
// whatever delivery frontend is subscribed there.
type RedisPublisher struct {
	rdb     *redis.Client
	channel string
}

func NewRedisPublisher(rdb *redis.Client, channelPrefix string) *RedisPublisher {
	if channelPrefix == "" {
		channelPrefix = "notifications"
	}
	return &RedisPublisher{rdb: rdb, channel: channelPrefix}
}

type wireNotification struct {
	ID           uint64 `json:"id"`
	UserID       uint64 `json:"user_id"`
	Title        string `json:"title"`
	Message      string `json:"message"`
	Category     string `json:"category"`
	RelatedTable string `json:"related_table,omitempty"`
	RelatedID    uint64 `json:"related_id,omitempty"`
	CreatedAt    string `json:"created_at"`
}

func (p *RedisPublisher) Publish(ctx context.Context, n notification.Notification) error {
	payload, err := json.Marshal(wireNotification{
		ID:           n.ID,
		UserID:       n.UserID,
		Title:        n.Title,
		Message:      n.Message,
		Category:     string(n.Category),
		RelatedTable: n.RelatedTable,
		RelatedID:    n.RelatedID,
		CreatedAt:    n.CreatedAt.UTC().Format("2006-01-02T15:04:05.999999999Z07:00"),
	})
	if err != nil {
		return err
	}
	ch := fmt.Sprintf("%s:user:%d", p.channel, n.UserID)
	return p.rdb.Publish(ctx, ch, payload).Err()
}
