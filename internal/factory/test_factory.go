package factory

import (
	"time"

	"github.com/ShimmyTheDev/GameOfThree/internal/dependencies/mocks"
	"github.com/ShimmyTheDev/GameOfThree/internal/events"
	"github.com/ShimmyTheDev/GameOfThree/internal/storage/memory"
	"github.com/ShimmyTheDev/GameOfThree/internal/testutil"
)

// TestApp extends App with test-specific helpers
type TestApp struct {
	*App

	// Mocks for test control
	MockClock  *mocks.MockClock
	MockRandom *mocks.MockRandom

	// Events captures everything emitted during the test
	Events *events.MemoryPublisher
}

// NewTestApp creates an App configured for testing with mocked dependencies
func NewTestApp() *TestApp {
	store := memory.New()
	mockClock := mocks.NewMockClock(time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC))
	mockRandom := mocks.NewMockRandom()
	publisher := events.NewMemoryPublisher()

	app := newWithDependencies(store, publisher, mockClock, mockRandom, testutil.NopLogger())

	return &TestApp{
		App:        app,
		MockClock:  mockClock,
		MockRandom: mockRandom,
		Events:     publisher,
	}
}
