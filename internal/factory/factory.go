package factory

import (
	"errors"
	"io"
	"log/slog"

	"github.com/ShimmyTheDev/GameOfThree/internal/dependencies/clock"
	"github.com/ShimmyTheDev/GameOfThree/internal/dependencies/random"
	"github.com/ShimmyTheDev/GameOfThree/internal/events"
	redisevents "github.com/ShimmyTheDev/GameOfThree/internal/events/redis"
	"github.com/ShimmyTheDev/GameOfThree/internal/services/game"
	"github.com/ShimmyTheDev/GameOfThree/internal/services/matchmaker"
	"github.com/ShimmyTheDev/GameOfThree/internal/services/player"
	"github.com/ShimmyTheDev/GameOfThree/internal/services/reaper"
	"github.com/ShimmyTheDev/GameOfThree/internal/storage"
	"github.com/ShimmyTheDev/GameOfThree/internal/storage/memory"
	redisstorage "github.com/ShimmyTheDev/GameOfThree/internal/storage/redis"
)

// Storage type constants
const (
	StorageTypeMemory = "memory"
	StorageTypeRedis  = "redis"
)

// Publisher type constants
const (
	PublisherTypeNop   = "nop"
	PublisherTypeRedis = "redis"
)

// App contains all wired application components
type App struct {
	// Storage
	Storage storage.Storage

	// External dependencies
	Clock  clock.Clock
	Random random.Random

	// Event publishing
	Publisher events.Publisher

	// Services
	PlayerService  *player.Service
	GameController *game.Controller
	Matchmaker     *matchmaker.Service
	Reaper         *reaper.Service
}

// Config holds configuration for the application factory
type Config struct {
	// Logger is the application logger (optional)
	// If nil, a no-op logger is used
	Logger *slog.Logger
	// StorageType selects the storage backend ("memory" or "redis")
	// If empty, defaults to "memory"
	StorageType string
	// RedisConfig holds Redis connection settings (required if StorageType is "redis")
	RedisConfig *redisstorage.Config
	// PublisherType selects the event publisher ("nop" or "redis")
	// If empty, defaults to "nop"
	PublisherType string
	// RedisPublisherConfig holds Redis pub/sub settings (required if PublisherType is "redis")
	RedisPublisherConfig *redisevents.Config
}

// New creates a new application with all dependencies wired
func New(cfg Config) (*App, error) {
	// Use no-op logger if not provided
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	// Create storage based on type
	var store storage.Storage
	storageType := cfg.StorageType
	if storageType == "" {
		storageType = StorageTypeMemory
	}

	switch storageType {
	case StorageTypeMemory:
		store = memory.New()
	case StorageTypeRedis:
		if cfg.RedisConfig == nil {
			return nil, errors.New("RedisConfig required when StorageType is redis")
		}
		redisStore, err := redisstorage.New(*cfg.RedisConfig)
		if err != nil {
			return nil, err
		}
		store = redisStore
	default:
		return nil, errors.New("invalid StorageType: must be 'memory' or 'redis'")
	}

	// Create event publisher based on type
	var publisher events.Publisher
	publisherType := cfg.PublisherType
	if publisherType == "" {
		publisherType = PublisherTypeNop
	}

	switch publisherType {
	case PublisherTypeNop:
		publisher = events.NewNopPublisher()
	case PublisherTypeRedis:
		if cfg.RedisPublisherConfig == nil {
			return nil, errors.New("RedisPublisherConfig required when PublisherType is redis")
		}
		redisPublisher, err := redisevents.New(*cfg.RedisPublisherConfig, logger)
		if err != nil {
			return nil, err
		}
		publisher = redisPublisher
	default:
		return nil, errors.New("invalid PublisherType: must be 'nop' or 'redis'")
	}

	// Create external dependencies
	clk := clock.New()
	rnd := random.New()

	return newWithDependencies(store, publisher, clk, rnd, logger), nil
}

// newWithDependencies creates an App with the given dependencies (useful for testing)
func newWithDependencies(store storage.Storage, publisher events.Publisher, clk clock.Clock, rnd random.Random, logger *slog.Logger) *App {
	// Create services
	playerService := player.New(store, clk, logger)
	gameController := game.NewController(store, publisher, clk, rnd, logger)
	matchmakerService := matchmaker.New(store, publisher, clk, rnd, logger)
	reaperService := reaper.New(store, gameController, clk, logger)

	return &App{
		Storage:        store,
		Clock:          clk,
		Random:         rnd,
		Publisher:      publisher,
		PlayerService:  playerService,
		GameController: gameController,
		Matchmaker:     matchmakerService,
		Reaper:         reaperService,
	}
}
