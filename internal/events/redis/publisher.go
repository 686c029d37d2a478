package redis

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/ShimmyTheDev/GameOfThree/internal/events"
	"github.com/ShimmyTheDev/GameOfThree/internal/model"
)

// DefaultChannel is the pub/sub channel game events are published to
const DefaultChannel = "gothree:events"

// Config holds Redis publisher settings
type Config struct {
	// URL is the Redis connection URL (e.g., redis://localhost:6379)
	URL string
	// Channel is the pub/sub channel to publish to
	Channel string
}

// DefaultConfig returns sensible defaults for the publisher
func DefaultConfig() Config {
	return Config{
		URL:     "redis://localhost:6379",
		Channel: DefaultChannel,
	}
}

// Publisher publishes game events to a Redis pub/sub channel
type Publisher struct {
	client  *redis.Client
	channel string
	logger  *slog.Logger
}

// New creates a new Redis publisher
func New(cfg Config, logger *slog.Logger) (*Publisher, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, err
	}

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	channel := cfg.Channel
	if channel == "" {
		channel = DefaultChannel
	}

	return &Publisher{
		client:  client,
		channel: channel,
		logger:  logger,
	}, nil
}

// NewWithClient creates a publisher with an existing client (for testing)
func NewWithClient(client *redis.Client, channel string, logger *slog.Logger) *Publisher {
	if channel == "" {
		channel = DefaultChannel
	}
	return &Publisher{
		client:  client,
		channel: channel,
		logger:  logger,
	}
}

// Close closes the Redis connection
func (p *Publisher) Close() error {
	return p.client.Close()
}

var _ events.Publisher = (*Publisher)(nil)

// Emit publishes the event. Failures are logged and swallowed;
// delivery is best-effort and must not fail the triggering operation.
func (p *Publisher) Emit(ctx context.Context, event model.Event) {
	data, err := json.Marshal(event)
	if err != nil {
		p.logger.Error("failed to encode event",
			slog.String("event_id", event.ID),
			slog.String("event_type", string(event.Type)),
			slog.String("error", err.Error()),
		)
		return
	}

	if err := p.client.Publish(ctx, p.channel, data).Err(); err != nil {
		p.logger.Error("failed to publish event",
			slog.String("event_id", event.ID),
			slog.String("event_type", string(event.Type)),
			slog.String("game_id", string(event.GameID)),
			slog.String("error", err.Error()),
		)
	}
}
