package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/travelblog/auth-service/internal/core/ports"
)

const (
	auditKey    = "auth:audit"
	auditMaxLen = 500
	auditTTL    = 24 * time.Hour
)

// AuditStore keeps a bounded, recent-first log of auth events in a Redis
// list. Older entries fall off the end; the whole key expires after a quiet
// day. The trail is operational tooling, not durable compliance storage.
type AuditStore struct {
	client *redis.Client
}

func NewAuditStore(client *redis.Client) *AuditStore {
	return &AuditStore{client: client}
}

// Append pushes an event to the head of the trail and trims it to
// auditMaxLen entries.
func (s *AuditStore) Append(ctx context.Context, event ports.AuditEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("audit append: marshal: %w", err)
	}

	pipe := s.client.TxPipeline()
	pipe.LPush(ctx, auditKey, payload)
	pipe.LTrim(ctx, auditKey, 0, auditMaxLen-1)
	pipe.Expire(ctx, auditKey, auditTTL)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("audit append: %w", err)
	}
	return nil
}

// Recent returns up to limit events, newest first.
func (s *AuditStore) Recent(ctx context.Context, limit int) ([]ports.AuditEvent, error) {
	if limit <= 0 {
		return nil, nil
	}

	raw, err := s.client.LRange(ctx, auditKey, 0, int64(limit-1)).Result()
	if err != nil {
		return nil, fmt.Errorf("audit read: %w", err)
	}

	events := make([]ports.AuditEvent, 0, len(raw))
	for _, item := range raw {
		var event ports.AuditEvent
		if err := json.Unmarshal([]byte(item), &event); err != nil {
			// Skip entries written by an incompatible version.
			continue
		}
		events = append(events, event)
	}
	return events, nil
}
