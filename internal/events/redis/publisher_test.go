package redis

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"

	"github.com/ShimmyTheDev/GameOfThree/internal/model"
	"github.com/ShimmyTheDev/GameOfThree/internal/testutil"
)

func TestEmitPublishesToChannel(t *testing.T) {
	mini := miniredis.RunT(t)

	client := redis.NewClient(&redis.Options{Addr: mini.Addr()})
	publisher := NewWithClient(client, "", testutil.NopLogger())
	defer func() { _ = publisher.Close() }()

	subClient := redis.NewClient(&redis.Options{Addr: mini.Addr()})
	defer func() { _ = subClient.Close() }()

	ctx := context.Background()
	sub := subClient.Subscribe(ctx, DefaultChannel)
	defer func() { _ = sub.Close() }()

	// Wait for the subscription before publishing
	_, err := sub.Receive(ctx)
	require.NoError(t, err)

	event := model.Event{
		ID:     "event-1",
		GameID: "game-1",
		Type:   model.EventGameEnded,
		Payload: model.GameEndedPayload{
			GameID:      "game-1",
			WinnerID:    "player-1",
			FinalNumber: 1,
		},
	}
	publisher.Emit(ctx, event)

	select {
	case msg := <-sub.Channel():
		var received model.Event
		require.NoError(t, json.Unmarshal([]byte(msg.Payload), &received))
		require.Equal(t, "event-1", received.ID)
		require.Equal(t, model.GameID("game-1"), received.GameID)
		require.Equal(t, model.EventGameEnded, received.Type)
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for published event")
	}
}

func TestEmitSwallowsPublishFailure(t *testing.T) {
	mini := miniredis.RunT(t)

	client := redis.NewClient(&redis.Options{Addr: mini.Addr()})
	publisher := NewWithClient(client, "gothree:test", testutil.NopLogger())

	mini.Close()

	// Must not panic or surface the broken connection
	publisher.Emit(context.Background(), model.Event{
		ID:     "event-1",
		GameID: "game-1",
		Type:   model.EventMoveApplied,
	})
}
