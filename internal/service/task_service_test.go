package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/TeamSamavisa/solara-admin-bot/internal/model"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const (
	waitTimeout = 3 * time.Second
	waitTick    = 5 * time.Millisecond
)

// fakeTaskAPI отдаёт заранее заданную последовательность снимков:
// каждый LastTask продвигает сценарий на шаг, последний снимок липкий
type fakeTaskAPI struct {
	mu sync.Mutex

	script    []*model.Task
	pos       int
	pollCount int

	optimizeErr error
}

func (f *fakeTaskAPI) LastTask(ctx context.Context) (*model.Task, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.pollCount++
	if len(f.script) == 0 {
		return nil, nil
	}
	task := f.script[f.pos]
	if f.pos < len(f.script)-1 {
		f.pos++
	}
	return task, nil
}

func (f *fakeTaskAPI) Optimize(ctx context.Context) (*model.OptimizeTicket, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.optimizeErr != nil {
		return nil, f.optimizeErr
	}
	return &model.OptimizeTicket{TaskID: 42, CorrelationID: "corr-1"}, nil
}

func (f *fakeTaskAPI) polls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.pollCount
}

func task(id int64, status model.TaskStatus, progress int) *model.Task {
	return &model.Task{ID: id, Status: status, Progress: progress}
}

func TestTrackerPollsWhileProcessing(t *testing.T) {
	fake := &fakeTaskAPI{script: []*model.Task{
		task(42, model.TaskStatusProcessing, 10),
		task(42, model.TaskStatusProcessing, 55),
		task(42, model.TaskStatusCompleted, 100),
	}}

	var mu sync.Mutex
	var seen []model.Task
	tr := NewTaskTracker(fake, zap.NewNop(),
		WithPollInterval(10*time.Millisecond),
		WithUpdateHook(func(snap *model.Task) {
			mu.Lock()
			seen = append(seen, *snap)
			mu.Unlock()
		}))

	tr.Start(context.Background())
	defer tr.Stop()

	require.Eventually(t, func() bool {
		snap := tr.Snapshot()
		return snap != nil && snap.Terminal()
	}, waitTimeout, waitTick)

	mu.Lock()
	defer mu.Unlock()
	// Каждое изменение прогресса и статуса дало ровно один снимок
	require.Len(t, seen, 3)
	require.Equal(t, 10, seen[0].Progress)
	require.Equal(t, 55, seen[1].Progress)
	require.Equal(t, model.TaskStatusCompleted, seen[2].Status)
}

func TestTrackerStopsPollingOnTerminal(t *testing.T) {
	fake := &fakeTaskAPI{script: []*model.Task{
		task(42, model.TaskStatusCompleted, 100),
	}}

	tr := NewTaskTracker(fake, zap.NewNop(), WithPollInterval(5*time.Millisecond))
	tr.Start(context.Background())
	defer tr.Stop()

	require.Eventually(t, func() bool {
		return tr.Snapshot() != nil
	}, waitTimeout, waitTick)

	// Терминальный статус гасит таймер: новых опросов без Refresh нет
	settled := fake.polls()
	time.Sleep(50 * time.Millisecond)
	require.Equal(t, settled, fake.polls())
	require.False(t, tr.IsProcessing())
}

func TestTrackerRefreshForcesPoll(t *testing.T) {
	fake := &fakeTaskAPI{script: []*model.Task{
		task(42, model.TaskStatusFailed, 0),
	}}

	tr := NewTaskTracker(fake, zap.NewNop(), WithPollInterval(time.Hour))
	tr.Start(context.Background())
	defer tr.Stop()

	require.Eventually(t, func() bool {
		return fake.polls() >= 1
	}, waitTimeout, waitTick)

	before := fake.polls()
	tr.Refresh()
	require.Eventually(t, func() bool {
		return fake.polls() > before
	}, waitTimeout, waitTick)
}

func TestTrackerSubmit(t *testing.T) {
	fake := &fakeTaskAPI{script: []*model.Task{
		task(42, model.TaskStatusProcessing, 0),
		task(42, model.TaskStatusCompleted, 100),
	}}

	tr := NewTaskTracker(fake, zap.NewNop(), WithPollInterval(5*time.Millisecond))
	tr.Start(context.Background())
	defer tr.Stop()

	ticket, err := tr.Submit(context.Background())
	require.NoError(t, err)
	require.Equal(t, int64(42), ticket.TaskID)
	require.Equal(t, "corr-1", ticket.CorrelationID)

	// Успешная отправка форсирует перечитывание, опрос доводит до терминала
	require.Eventually(t, func() bool {
		snap := tr.Snapshot()
		return snap != nil && snap.Status == model.TaskStatusCompleted
	}, waitTimeout, waitTick)
}

func TestTrackerSubmitFailure(t *testing.T) {
	fake := &fakeTaskAPI{
		script:      []*model.Task{task(41, model.TaskStatusCompleted, 100)},
		optimizeErr: errors.New("solver unavailable"),
	}

	tr := NewTaskTracker(fake, zap.NewNop(), WithPollInterval(5*time.Millisecond))
	tr.Start(context.Background())
	defer tr.Stop()

	require.Eventually(t, func() bool {
		return tr.Snapshot() != nil
	}, waitTimeout, waitTick)

	_, err := tr.Submit(context.Background())
	require.Error(t, err)

	// Неудачная отправка не трогает прежний снимок
	snap := tr.Snapshot()
	require.Equal(t, int64(41), snap.ID)
	require.False(t, tr.IsProcessing())
}

func TestTrackerSnapshotIsCopy(t *testing.T) {
	fake := &fakeTaskAPI{script: []*model.Task{
		task(42, model.TaskStatusCompleted, 100),
	}}

	tr := NewTaskTracker(fake, zap.NewNop(), WithPollInterval(5*time.Millisecond))
	tr.Start(context.Background())
	defer tr.Stop()

	require.Eventually(t, func() bool {
		return tr.Snapshot() != nil
	}, waitTimeout, waitTick)

	snap := tr.Snapshot()
	snap.Progress = -1
	require.Equal(t, 100, tr.Snapshot().Progress)
}
