package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/TeamSamavisa/solara-admin-bot/internal/model"
	"go.uber.org/zap"
)

// TaskAPI срез клиента API, нужный трекеру
type TaskAPI interface {
	LastTask(ctx context.Context) (*model.Task, error)
	Optimize(ctx context.Context) (*model.OptimizeTicket, error)
}

// defaultPollInterval каденция опроса, пока задача в PROCESSING
const defaultPollInterval = 2 * time.Second

// TaskTracker следит за фоновой задачей оптимизации.
// Таймер принадлежит трекеру и взводится заново после каждого
// завершённого запроса, только если свежий статус — PROCESSING.
// Терминальный статус гасит опрос; новая задача в PROCESSING
// возобновляет его сама, решение принимается по последнему снимку.
// В полёте всегда не больше одного запроса: цикл последовательный
type TaskTracker struct {
	mu sync.RWMutex

	api      TaskAPI
	logger   *zap.Logger
	interval time.Duration

	snapshot   *model.Task
	submitting bool
	onUpdate   func(*model.Task)

	kick chan struct{}
	stop chan struct{}
	once sync.Once
	wg   sync.WaitGroup
}

// TrackerOption настройка трекера
type TrackerOption func(*TaskTracker)

// WithPollInterval переопределяет каденцию опроса
func WithPollInterval(d time.Duration) TrackerOption {
	return func(t *TaskTracker) {
		if d > 0 {
			t.interval = d
		}
	}
}

// WithUpdateHook регистрирует колбэк на каждый новый снимок задачи
func WithUpdateHook(hook func(*model.Task)) TrackerOption {
	return func(t *TaskTracker) { t.onUpdate = hook }
}

func NewTaskTracker(apiClient TaskAPI, logger *zap.Logger, opts ...TrackerOption) *TaskTracker {
	t := &TaskTracker{
		api:      apiClient,
		logger:   logger,
		interval: defaultPollInterval,
		kick:     make(chan struct{}, 1),
		stop:     make(chan struct{}),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// OnUpdate регистрирует колбэк на каждый новый снимок задачи.
// Вызывается до Start, когда хук нельзя передать опцией
func (t *TaskTracker) OnUpdate(hook func(*model.Task)) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.onUpdate = hook
}

// Start запускает цикл опроса. Первый запрос уходит сразу,
// без ожидания таймера
func (t *TaskTracker) Start(ctx context.Context) {
	t.wg.Add(1)
	go t.run(ctx)
}

// Stop останавливает опрос и дожидается завершения цикла.
// После остановки снимок больше не обновляется
func (t *TaskTracker) Stop() {
	t.once.Do(func() { close(t.stop) })
	t.wg.Wait()
}

func (t *TaskTracker) run(ctx context.Context) {
	defer t.wg.Done()

	for {
		t.poll(ctx)

		// Таймер взводится только по свежему статусу PROCESSING.
		// nil-канал блокируется навсегда — "больше не опрашивать"
		var tick <-chan time.Time
		if t.shouldPoll() {
			tick = time.After(t.interval)
		}

		select {
		case <-ctx.Done():
			return
		case <-t.stop:
			return
		case <-t.kick:
		case <-tick:
		}
	}
}

func (t *TaskTracker) poll(ctx context.Context) {
	task, err := t.api.LastTask(ctx)
	if err != nil {
		// Неудачный опрос не трогает прежний снимок
		t.logger.Warn("Failed to fetch last task", zap.Error(err))
		return
	}
	if task == nil {
		return
	}

	t.mu.Lock()
	changed := t.snapshot == nil ||
		t.snapshot.ID != task.ID ||
		t.snapshot.Status != task.Status ||
		t.snapshot.Progress != task.Progress
	t.snapshot = task
	hook := t.onUpdate
	t.mu.Unlock()

	if changed {
		t.logger.Info("Optimization task snapshot updated",
			zap.Int64("task_id", task.ID),
			zap.String("status", string(task.Status)),
			zap.Int("progress", task.Progress))
		if hook != nil {
			hook(task)
		}
	}
}

func (t *TaskTracker) shouldPoll() bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.snapshot != nil && t.snapshot.Status == model.TaskStatusProcessing
}

// Refresh форсирует немедленный опрос вне каденции
// (аналог перечитывания при возврате фокуса)
func (t *TaskTracker) Refresh() {
	select {
	case t.kick <- struct{}{}:
	default:
	}
}

// Submit отправляет запрос на оптимизацию. Успех сразу форсирует
// перечитывание последней задачи, чтобы не ждать следующего тика.
// Неудача не повторяется автоматически и не трогает прежний снимок
func (t *TaskTracker) Submit(ctx context.Context) (*model.OptimizeTicket, error) {
	t.mu.Lock()
	if t.submitting {
		t.mu.Unlock()
		return nil, fmt.Errorf("optimization request already in flight")
	}
	t.submitting = true
	t.mu.Unlock()

	defer func() {
		t.mu.Lock()
		t.submitting = false
		t.mu.Unlock()
	}()

	ticket, err := t.api.Optimize(ctx)
	if err != nil {
		t.logger.Error("Failed to submit optimization", zap.Error(err))
		return nil, fmt.Errorf("submit optimization: %w", err)
	}

	t.logger.Info("Optimization submitted",
		zap.Int64("task_id", ticket.TaskID),
		zap.String("correlation_id", ticket.CorrelationID))

	t.Refresh()
	return ticket, nil
}

// Snapshot копия последнего известного снимка задачи (nil, если задач не было)
func (t *TaskTracker) Snapshot() *model.Task {
	t.mu.RLock()
	defer t.mu.RUnlock()
	if t.snapshot == nil {
		return nil
	}
	copied := *t.snapshot
	return &copied
}

// IsProcessing истинно, пока отправка в полёте или задача в PROCESSING.
// Используется, чтобы блокировать кнопку запуска оптимизации
func (t *TaskTracker) IsProcessing() bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.submitting || (t.snapshot != nil && t.snapshot.Status == model.TaskStatusProcessing)
}
