package jobs_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"sync"
	"testing"
	"time"

	"donation/internal/core/application/usecases/queries"
	"donation/internal/core/domain/model/item"
	"donation/internal/jobs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockItemCounter struct {
	mock.Mock
}

func (m *MockItemCounter) Handle(ctx context.Context, query queries.CountItemsByStatusQuery) (queries.ItemStats, error) {
	args := m.Called(ctx, query)
	stats, _ := args.Get(0).(queries.ItemStats)
	return stats, args.Error(1)
}

type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) lines(t *testing.T) []map[string]any {
	b.mu.Lock()
	defer b.mu.Unlock()

	var out []map[string]any
	for _, line := range bytes.Split(bytes.TrimSpace(b.buf.Bytes()), []byte("\n")) {
		if len(line) == 0 {
			continue
		}
		var entry map[string]any
		require.NoError(t, json.Unmarshal(line, &entry))
		out = append(out, entry)
	}
	return out
}

func newLogger(buf *syncBuffer) *slog.Logger {
	return slog.New(slog.NewJSONHandler(buf, nil))
}

func TestItemStatsJob_Run_LogsCounts(t *testing.T) {
	counter := new(MockItemCounter)
	counter.On("Handle", mock.Anything, mock.Anything).
		Return(queries.ItemStats{item.Posted: 3, item.Picked: 1, item.Delivered: 2}, nil).
		Once()

	buf := &syncBuffer{}
	job := jobs.NewItemStatsJob(counter, "", newLogger(buf))

	job.Run(context.Background())

	entries := buf.lines(t)
	require.Len(t, entries, 1)
	assert.Equal(t, "Item stats", entries[0]["msg"])
	assert.Equal(t, "item_stats_job", entries[0]["component"])
	assert.EqualValues(t, 3, entries[0]["posted"])
	assert.EqualValues(t, 1, entries[0]["picked"])
	assert.EqualValues(t, 2, entries[0]["delivered"])
	assert.EqualValues(t, 6, entries[0]["total"])
	counter.AssertExpectations(t)
}

func TestItemStatsJob_Run_LogsFailure(t *testing.T) {
	counter := new(MockItemCounter)
	counter.On("Handle", mock.Anything, mock.Anything).Return(nil, errors.New("db down")).Once()

	buf := &syncBuffer{}
	jobs.NewItemStatsJob(counter, "", newLogger(buf)).Run(context.Background())

	entries := buf.lines(t)
	require.Len(t, entries, 1)
	assert.Equal(t, "ERROR", entries[0]["level"])
	assert.Equal(t, "db down", entries[0]["error"])
}

func TestItemStatsJob_StartRunsOnSchedule(t *testing.T) {
	counter := new(MockItemCounter)
	ran := make(chan struct{}, 1)
	counter.On("Handle", mock.Anything, mock.Anything).
		Return(queries.ItemStats{}, nil).
		Run(func(mock.Arguments) {
			select {
			case ran <- struct{}{}:
			default:
			}
		})

	job := jobs.NewItemStatsJob(counter, "* * * * * *", newLogger(&syncBuffer{}))
	require.NoError(t, job.Start())
	defer job.Stop()

	select {
	case <-ran:
	case <-time.After(3 * time.Second):
		t.Fatal("job did not run within its schedule")
	}
}

func TestJobManager_InvalidSchedule(t *testing.T) {
	manager := jobs.NewJobManager(new(MockItemCounter), "every now and then", newLogger(&syncBuffer{}))

	err := manager.StartAll()

	assert.ErrorContains(t, err, "item stats job")
}
