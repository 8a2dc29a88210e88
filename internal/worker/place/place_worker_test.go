package place_test

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/tourism-microservice/internal/domain"
	"github.com/tourism-microservice/internal/worker"
	"github.com/tourism-microservice/internal/worker/place"
)

// MockStreamRepository is a mock of StreamRepository
type MockStreamRepository struct {
	mock.Mock
}

func (m *MockStreamRepository) ConsumeStream(ctx context.Context, stream, group, consumer string) (<-chan domain.StreamMessage, error) {
	args := m.Called(ctx, stream, group, consumer)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(<-chan domain.StreamMessage), args.Error(1)
}

func (m *MockStreamRepository) AckMessage(ctx context.Context, stream, group, messageID string) error {
	args := m.Called(ctx, stream, group, messageID)
	return args.Error(0)
}

func (m *MockStreamRepository) CreateConsumerGroup(ctx context.Context, stream, group string) error {
	args := m.Called(ctx, stream, group)
	return args.Error(0)
}

func (m *MockStreamRepository) PublishToStream(ctx context.Context, stream string, data interface{}) error {
	args := m.Called(ctx, stream, data)
	return args.Error(0)
}

// fakeCache - CacheRepository, считающий вызовы DeleteByPattern
type fakeCache struct {
	mu       sync.Mutex
	patterns []string
	err      error
}

func (f *fakeCache) Get(context.Context, string) ([]byte, error) { return nil, nil }

func (f *fakeCache) Set(context.Context, string, []byte, time.Duration) error { return nil }

func (f *fakeCache) Delete(context.Context, string) error { return nil }

func (f *fakeCache) Exists(context.Context, string) (bool, error) { return false, nil }

func (f *fakeCache) GetFilters(context.Context) (*domain.Filters, error) { return nil, nil }

func (f *fakeCache) SetFilters(context.Context, *domain.Filters, time.Duration) error { return nil }

func (f *fakeCache) GetSuggestions(context.Context) ([]string, error) { return nil, nil }

func (f *fakeCache) SetSuggestions(context.Context, []string, time.Duration) error { return nil }

func (f *fakeCache) GetPlaces(context.Context, string) ([]domain.Place, error) { return nil, nil }

func (f *fakeCache) SetPlaces(context.Context, string, []domain.Place, time.Duration) error {
	return nil
}

func (f *fakeCache) DeleteByPattern(_ context.Context, pattern string) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return 0, f.err
	}
	f.patterns = append(f.patterns, pattern)
	return 3, nil
}

type recordingBroadcaster struct {
	events []domain.PlaceEvent
}

func (r *recordingBroadcaster) PlaceCreated(event domain.PlaceEvent) {
	r.events = append(r.events, event)
}

func message(t *testing.T, id string, event domain.PlaceEvent) domain.StreamMessage {
	t.Helper()
	data, err := json.Marshal(event)
	require.NoError(t, err)
	return domain.StreamMessage{ID: id, Data: string(data)}
}

// feed возвращает закрытый канал с заданными сообщениями
func feed(msgs ...domain.StreamMessage) <-chan domain.StreamMessage {
	ch := make(chan domain.StreamMessage, len(msgs))
	for _, m := range msgs {
		ch <- m
	}
	close(ch)
	return ch
}

func TestBroadcastWorkerForwardsCreatedEvents(t *testing.T) {
	stream := &MockStreamRepository{}
	broadcaster := &recordingBroadcaster{}

	msgs := feed(
		message(t, "1-0", domain.PlaceEvent{Type: domain.PlaceEventCreated, ID: 10, Name: "วัดพระธาตุพนม"}),
		message(t, "2-0", domain.PlaceEvent{Type: domain.PlaceEventUpdated, ID: 10}),
		domain.StreamMessage{ID: "3-0", Data: "{broken"},
	)

	stream.On("CreateConsumerGroup", mock.Anything, domain.StreamPlaceEvents, mock.AnythingOfType("string")).Return(nil)
	stream.On("ConsumeStream", mock.Anything, domain.StreamPlaceEvents, mock.AnythingOfType("string"), mock.AnythingOfType("string")).
		Return(msgs, nil)
	stream.On("AckMessage", mock.Anything, domain.StreamPlaceEvents, mock.AnythingOfType("string"), mock.AnythingOfType("string")).
		Return(nil)

	w := place.NewBroadcastWorker(stream, broadcaster, "", "place-broadcast", zap.NewNop())
	assert.Equal(t, "place-broadcast", w.Name())
	assert.Contains(t, w.ConsumerGroup(), "place-broadcast-")

	require.NoError(t, w.Start(context.Background()))

	require.Len(t, broadcaster.events, 1)
	assert.Equal(t, int64(10), broadcaster.events[0].ID)
	assert.Equal(t, "วัดพระธาตุพนม", broadcaster.events[0].Name)
	stream.AssertNumberOfCalls(t, "AckMessage", 3)
}

func TestListingCacheWorkerInvalidatesListings(t *testing.T) {
	stream := &MockStreamRepository{}
	cache := &fakeCache{}

	msgs := feed(
		message(t, "1-0", domain.PlaceEvent{Type: domain.PlaceEventCreated, ID: 1}),
		message(t, "2-0", domain.PlaceEvent{Type: domain.PlaceEventDeleted, ID: 2}),
	)

	stream.On("CreateConsumerGroup", mock.Anything, "custom:stream", "listing-group").Return(nil)
	stream.On("ConsumeStream", mock.Anything, "custom:stream", "listing-group", mock.AnythingOfType("string")).Return(msgs, nil)
	stream.On("AckMessage", mock.Anything, "custom:stream", "listing-group", "1-0").Return(nil).Once()
	stream.On("AckMessage", mock.Anything, "custom:stream", "listing-group", "2-0").Return(nil).Once()

	w := place.NewListingCacheWorker(stream, cache, "custom:stream", "listing-group", zap.NewNop())
	require.NoError(t, w.Start(context.Background()))

	assert.Equal(t, []string{domain.CachePatternPlaces, domain.CachePatternPlaces}, cache.patterns)
	stream.AssertExpectations(t)
}

func TestListingCacheWorkerLeavesFailedMessagesPending(t *testing.T) {
	stream := &MockStreamRepository{}
	cache := &fakeCache{err: errors.New("redis down")}

	msgs := feed(message(t, "1-0", domain.PlaceEvent{Type: domain.PlaceEventUpdated, ID: 1}))

	stream.On("CreateConsumerGroup", mock.Anything, domain.StreamPlaceEvents, "g").Return(nil)
	stream.On("ConsumeStream", mock.Anything, domain.StreamPlaceEvents, "g", mock.AnythingOfType("string")).Return(msgs, nil)

	w := place.NewListingCacheWorker(stream, cache, "", "g", zap.NewNop())
	require.NoError(t, w.Start(context.Background()))

	stream.AssertNotCalled(t, "AckMessage", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestWorkerFailsWithoutConsumerGroup(t *testing.T) {
	stream := &MockStreamRepository{}
	stream.On("CreateConsumerGroup", mock.Anything, domain.StreamPlaceEvents, "g").Return(errors.New("no redis"))

	w := place.NewListingCacheWorker(stream, &fakeCache{}, "", "g", zap.NewNop())
	err := w.Start(context.Background())
	assert.Error(t, err)
	stream.AssertNotCalled(t, "ConsumeStream", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestWorkerStopsOnStopSignal(t *testing.T) {
	stream := &MockStreamRepository{}
	open := make(chan domain.StreamMessage)
	subscribed := make(chan struct{})

	stream.On("CreateConsumerGroup", mock.Anything, domain.StreamPlaceEvents, "g").Return(nil)
	stream.On("ConsumeStream", mock.Anything, domain.StreamPlaceEvents, "g", mock.AnythingOfType("string")).
		Run(func(mock.Arguments) { close(subscribed) }).
		Return((<-chan domain.StreamMessage)(open), nil)

	w := place.NewListingCacheWorker(stream, &fakeCache{}, "", "g", zap.NewNop())

	manager := worker.NewWorkerManager(zap.NewNop())
	manager.Register(w)
	require.NoError(t, manager.Start(context.Background()))

	select {
	case <-subscribed:
	case <-time.After(time.Second):
		t.Fatal("worker did not subscribe")
	}

	require.NoError(t, manager.Stop())
	assert.True(t, w.IsStopped())
}
