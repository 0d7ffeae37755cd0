package publisher

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
)

// matchStream carries one event per ingested match for downstream consumers.
const matchStream = "matches.ingested.cricket"

// RedisPublisher publishes ingest events to Redis streams
type RedisPublisher struct {
	client *redis.Client
}

// NewRedisPublisher creates a new Redis stream publisher
func NewRedisPublisher(redisURL string) (*RedisPublisher, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, err
	}

	client := redis.NewClient(opt)

	// Test connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return &RedisPublisher{
		client: client,
	}, nil
}

// NewRedisPublisherFromClient reuses an existing client, typically the
// cache's, so both share one connection pool
func NewRedisPublisherFromClient(client *redis.Client) *RedisPublisher {
	return &RedisPublisher{client: client}
}

// Close closes the Redis connection
func (rp *RedisPublisher) Close() error {
	return rp.client.Close()
}

// MatchIngestedEvent summarizes one processed match for the stream.
type MatchIngestedEvent struct {
	MatchID        string `json:"match_id"`
	MatchDate      string `json:"match_date,omitempty"`
	Opponent       string `json:"opponent,omitempty"`
	Result         string `json:"result,omitempty"`
	BattingRecords int    `json:"batting_records"`
	BowlingRecords int    `json:"bowling_records"`
}

// PublishMatchIngested appends a match-ingested event to the stream
func (rp *RedisPublisher) PublishMatchIngested(ctx context.Context, event MatchIngestedEvent) error {
	data, err := json.Marshal(event)
	if err != nil {
		return err
	}

	return rp.client.XAdd(ctx, &redis.XAddArgs{
		Stream: matchStream,
		Values: map[string]interface{}{
			"data":      string(data),
			"timestamp": time.Now().Unix(),
		},
	}).Err()
}
