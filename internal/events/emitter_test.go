package events

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingHandler struct {
	events []*TaskRequestEvent
	err    error
}

func (h *recordingHandler) HandleEvent(_ context.Context, event *TaskRequestEvent) error {
	h.events = append(h.events, event)
	return h.err
}

func testEmitter() *InMemoryEventEmitter {
	return NewInMemoryEventEmitter(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestEmitEventReachesAllHandlers(t *testing.T) {
	t.Parallel()

	emitter := testEmitter()
	first := &recordingHandler{}
	second := &recordingHandler{}
	emitter.RegisterHandler(first)
	emitter.RegisterHandler(second)

	event, err := NewTaskRequestEvent("deck_import", map[string]string{"source_path": "x.md"})
	require.NoError(t, err)

	require.NoError(t, emitter.EmitEvent(context.Background(), event))
	require.Len(t, first.events, 1)
	require.Len(t, second.events, 1)
	assert.Equal(t, event.ID, first.events[0].ID)
}

func TestEmitEventReturnsFirstHandlerError(t *testing.T) {
	t.Parallel()

	emitter := testEmitter()
	failing := &recordingHandler{err: assert.AnError}
	after := &recordingHandler{}
	emitter.RegisterHandler(failing)
	emitter.RegisterHandler(after)

	event, err := NewTaskRequestEvent("deck_import", nil)
	require.NoError(t, err)

	assert.ErrorIs(t, emitter.EmitEvent(context.Background(), event), assert.AnError)
	assert.Len(t, after.events, 1, "later handlers still receive the event")
}

func TestEmitEventWithNoHandlers(t *testing.T) {
	t.Parallel()

	event, err := NewTaskRequestEvent("card_generation", nil)
	require.NoError(t, err)
	assert.NoError(t, testEmitter().EmitEvent(context.Background(), event))
}

func TestUnmarshalPayload(t *testing.T) {
	t.Parallel()

	type payload struct {
		SourcePath string `json:"source_path"`
	}

	event, err := NewTaskRequestEvent("deck_import", payload{SourcePath: "01-javascript/basics.md"})
	require.NoError(t, err)

	var decoded payload
	require.NoError(t, event.UnmarshalPayload(&decoded))
	assert.Equal(t, "01-javascript/basics.md", decoded.SourcePath)
}
