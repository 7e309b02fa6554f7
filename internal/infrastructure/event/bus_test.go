package event

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/fieldsales/backend/internal/domain/ordering"
	"github.com/fieldsales/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type recordingHandler struct {
	types    []string
	received []shared.DomainEvent
	err      error
	panics   bool
}

func (h *recordingHandler) Handle(_ context.Context, event shared.DomainEvent) error {
	if h.panics {
		panic("handler exploded")
	}
	h.received = append(h.received, event)
	return h.err
}

func (h *recordingHandler) EventTypes() []string {
	return h.types
}

func submittedEvent(t *testing.T) shared.DomainEvent {
	t.Helper()
	order, err := ordering.NewOrder("ORD00000001", uuid.New(), uuid.New(), "Gangnam Mart", time.Now().AddDate(0, 0, 1))
	require.NoError(t, err)
	events := order.GetDomainEvents()
	require.Len(t, events, 1)
	return events[0]
}

func TestInMemoryEventBus_DeliversToSubscribedHandler(t *testing.T) {
	bus := NewInMemoryEventBus(zap.NewNop())
	handler := &recordingHandler{types: []string{ordering.EventTypeOrderSubmitted}}
	bus.Subscribe(handler)

	event := submittedEvent(t)
	require.NoError(t, bus.Publish(context.Background(), event))

	require.Len(t, handler.received, 1)
	assert.Equal(t, ordering.EventTypeOrderSubmitted, handler.received[0].EventType())
}

func TestInMemoryEventBus_SkipsUninterestedHandler(t *testing.T) {
	bus := NewInMemoryEventBus(zap.NewNop())
	handler := &recordingHandler{types: []string{ordering.EventTypeOrderApproved}}
	bus.Subscribe(handler)

	require.NoError(t, bus.Publish(context.Background(), submittedEvent(t)))
	assert.Empty(t, handler.received)
}

func TestInMemoryEventBus_WildcardHandlerReceivesEverything(t *testing.T) {
	bus := NewInMemoryEventBus(zap.NewNop())
	handler := &recordingHandler{}
	bus.Subscribe(handler)

	require.NoError(t, bus.Publish(context.Background(), submittedEvent(t)))
	assert.Len(t, handler.received, 1)
}

func TestInMemoryEventBus_HandlerErrorDoesNotStopOthers(t *testing.T) {
	bus := NewInMemoryEventBus(zap.NewNop())
	failing := &recordingHandler{types: []string{ordering.EventTypeOrderSubmitted}, err: errors.New("boom")}
	healthy := &recordingHandler{types: []string{ordering.EventTypeOrderSubmitted}}
	bus.Subscribe(failing)
	bus.Subscribe(healthy)

	require.NoError(t, bus.Publish(context.Background(), submittedEvent(t)))
	assert.Len(t, healthy.received, 1)
}

func TestInMemoryEventBus_PanickingHandlerIsContained(t *testing.T) {
	bus := NewInMemoryEventBus(zap.NewNop())
	panicking := &recordingHandler{types: []string{ordering.EventTypeOrderSubmitted}, panics: true}
	healthy := &recordingHandler{types: []string{ordering.EventTypeOrderSubmitted}}
	bus.Subscribe(panicking)
	bus.Subscribe(healthy)

	require.NoError(t, bus.Publish(context.Background(), submittedEvent(t)))
	assert.Len(t, healthy.received, 1)
}

func TestInMemoryEventBus_Unsubscribe(t *testing.T) {
	bus := NewInMemoryEventBus(zap.NewNop())
	handler := &recordingHandler{types: []string{ordering.EventTypeOrderSubmitted}}
	bus.Subscribe(handler)
	bus.Unsubscribe(handler)

	require.NoError(t, bus.Publish(context.Background(), submittedEvent(t)))
	assert.Empty(t, handler.received)
}
