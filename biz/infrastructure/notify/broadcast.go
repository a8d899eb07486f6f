package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"exam-hall/biz/infrastructure/config"
	rds "exam-hall/biz/infrastructure/redis"

	"github.com/google/uuid"
	"github.com/mitchellh/mapstructure"
	"github.com/spf13/cast"
	gozero_redis "github.com/zeromicro/go-zero/core/stores/redis"
)

const (
	defaultQueuePrefix = "broadcast:exam"
	defaultExpireSec   = 3600
	defaultRecentLimit = 50
)

// Event is what the notification service drains from the per-exam queue.
type Event struct {
	Id        string         `json:"id" mapstructure:"id"`
	ExamId    string         `json:"examId" mapstructure:"examId"`
	Name      string         `json:"name" mapstructure:"name"`
	Payload   map[string]any `json:"payload" mapstructure:"payload"`
	Timestamp int64          `json:"timestamp" mapstructure:"timestamp"`
}

type Broadcaster interface {
	Broadcast(ctx context.Context, examID, eventName string, payload map[string]any) error
	Recent(ctx context.Context, examID string, limit int) ([]*Event, error)
}

// RedisBroadcaster enqueues events onto a redis list per exam. Delivery to
// participants is owned by the external notification service; the engine only
// produces, best effort.
type RedisBroadcaster struct {
	rds         *gozero_redis.Redis
	queuePrefix string
	expireSec   int
}

func NewRedisBroadcaster(config *config.Config) *RedisBroadcaster {
	prefix := config.Broadcast.QueuePrefix
	if prefix == "" {
		prefix = defaultQueuePrefix
	}
	expire := config.Broadcast.ExpireSec
	if expire <= 0 {
		expire = defaultExpireSec
	}
	return &RedisBroadcaster{
		rds:         rds.GetRedis(config),
		queuePrefix: prefix,
		expireSec:   expire,
	}
}

func (b *RedisBroadcaster) Broadcast(ctx context.Context, examID, eventName string, payload map[string]any) error {
	event := &Event{
		Id:        uuid.NewString(),
		ExamId:    examID,
		Name:      eventName,
		Payload:   payload,
		Timestamp: time.Now().Unix(),
	}
	data, err := json.Marshal(event)
	if err != nil {
		return err
	}

	key := b.queueKey(examID)
	if _, err := b.rds.LpushCtx(ctx, key, string(data)); err != nil {
		return err
	}
	return b.rds.ExpireCtx(ctx, key, b.expireSec)
}

// Recent peeks at the newest events on an exam queue, newest first. It never
// pops: the queue stays intact for the notification service to drain.
func (b *RedisBroadcaster) Recent(ctx context.Context, examID string, limit int) ([]*Event, error) {
	if limit <= 0 || limit > defaultRecentLimit {
		limit = defaultRecentLimit
	}
	entries, err := b.rds.LrangeCtx(ctx, b.queueKey(examID), 0, limit-1)
	if err != nil {
		return nil, err
	}

	events := make([]*Event, 0, len(entries))
	for _, entry := range entries {
		var raw map[string]any
		if err := json.Unmarshal([]byte(entry), &raw); err != nil {
			continue
		}
		event, err := ParseEvent(raw)
		if err != nil {
			continue
		}
		events = append(events, event)
	}
	return events, nil
}

func (b *RedisBroadcaster) queueKey(examID string) string {
	return fmt.Sprintf("%s:%s", b.queuePrefix, examID)
}

// ParseEvent decodes a loosely typed payload coming back off the queue. The
// decode is weakly typed: a JSON round trip turns the timestamp into float64.
func ParseEvent(raw map[string]any) (*Event, error) {
	var event Event
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		Result:           &event,
	})
	if err != nil {
		return nil, err
	}
	if err := decoder.Decode(raw); err != nil {
		return nil, err
	}
	return &event, nil
}

// PayloadString reads a payload value as a string whatever its wire type;
// queue consumers see numbers as float64 after a JSON round trip.
func (e *Event) PayloadString(key string) string {
	v, ok := e.Payload[key]
	if !ok {
		return ""
	}
	return cast.ToString(v)
}
