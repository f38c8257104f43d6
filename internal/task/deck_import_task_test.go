package task

import (
	"context"
	"testing"
	"time"

	"github.com/Controversial-fact877/Frontend-Master-Prep-Series-sub005/internal/domain"
	"github.com/Controversial-fact877/Frontend-Master-Prep-Series-sub005/internal/events"
	"github.com/Controversial-fact877/Frontend-Master-Prep-Series-sub005/internal/service/deck"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeImporter struct {
	userID uuid.UUID
	path   string
	result *deck.ImportResult
	err    error
}

func (f *fakeImporter) ImportFile(_ context.Context, userID uuid.UUID, path string) (*deck.ImportResult, error) {
	f.userID = userID
	f.path = path
	return f.result, f.err
}

func TestDeckImportTaskExecute(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	imported, err := domain.NewDeck(userID, "01-javascript", "JS Basics")
	require.NoError(t, err)

	importer := &fakeImporter{result: &deck.ImportResult{Deck: imported, CardCount: 3}}

	task, err := NewDeckImportTask(importer, DeckImportPayload{
		UserID:     userID,
		SourcePath: "01-javascript/basics.md",
	}, discardLogger())
	require.NoError(t, err)

	require.NoError(t, task.Execute(context.Background()))
	assert.Equal(t, userID, importer.userID)
	assert.Equal(t, "01-javascript/basics.md", importer.path)
}

func TestDeckImportTaskExecuteErrors(t *testing.T) {
	t.Parallel()

	payload := DeckImportPayload{UserID: uuid.New(), SourcePath: "x.md"}

	task, err := NewDeckImportTask(&fakeImporter{err: assert.AnError}, payload, discardLogger())
	require.NoError(t, err)
	assert.ErrorIs(t, task.Execute(context.Background()), assert.AnError)

	// An already-imported deck is treated as done, not retried.
	task, err = NewDeckImportTask(&fakeImporter{err: deck.ErrDeckExists}, payload, discardLogger())
	require.NoError(t, err)
	assert.NoError(t, task.Execute(context.Background()))
}

func TestDeckImportEventFlowsThroughRunner(t *testing.T) {
	t.Parallel()

	store := newFakeTaskStore()
	registry := NewRegistry()
	importer := &fakeImporter{result: &deck.ImportResult{CardCount: 1}}
	registry.Register(TaskTypeDeckImport, NewDeckImportFactory(importer, discardLogger()))

	runner := NewTaskRunner(store, registry, TaskRunnerConfig{
		WorkerCount:            1,
		QueueSize:              4,
		StuckTaskAge:           time.Hour,
		StuckTaskCheckInterval: time.Hour,
	}, discardLogger())
	require.NoError(t, runner.Start())
	defer runner.Stop()

	emitter := events.NewInMemoryEventEmitter(discardLogger())
	emitter.RegisterHandler(NewTaskRequestHandler(runner, registry, discardLogger()))

	userID := uuid.New()
	event, err := events.NewTaskRequestEvent(TaskTypeDeckImport, DeckImportPayload{
		UserID:     userID,
		SourcePath: "02-css/grid.md",
	})
	require.NoError(t, err)
	require.NoError(t, emitter.EmitEvent(context.Background(), event))

	// The emitted event becomes a persisted task the worker completes.
	assert.Eventually(t, func() bool {
		return store.statusOf(event.ID) == TaskStatusCompleted
	}, 5*time.Second, 10*time.Millisecond)
	assert.Equal(t, userID, importer.userID)
	assert.Equal(t, "02-css/grid.md", importer.path)
}
