package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/TeamSamavisa/solara-admin-bot/internal/api"
	"github.com/TeamSamavisa/solara-admin-bot/internal/model"
	"go.uber.org/zap"
)

// Ошибки матрицы доступности
var (
	ErrMutationInFlight = errors.New("availability mutation already in flight")
	ErrNothingPending   = errors.New("no pending deletion to confirm")
	ErrSlotUnknown      = errors.New("schedule slot not found in catalogue")
)

// MatrixPhase фаза матрицы. Явный маленький автомат вместо пары булевых
// флагов: состояние "подтверждение во время мутации" непредставимо
type MatrixPhase int

const (
	MatrixIdle MatrixPhase = iota
	MatrixConfirming
	MatrixMutating
)

// ToggleOutcome результат переключения ячейки
type ToggleOutcome int

const (
	// ToggleCreated связь создана, данные перечитаны
	ToggleCreated ToggleOutcome = iota
	// ToggleNeedsConfirm удаление требует явного подтверждения
	ToggleNeedsConfirm
)

// AvailabilityAPI срез клиента API, нужный матрице
type AvailabilityAPI interface {
	ListSchedules(ctx context.Context, limit int) ([]model.Schedule, error)
	ListScheduleTeachers(ctx context.Context, teacherID int64, limit int) ([]model.ScheduleTeacher, error)
	CreateScheduleTeacher(ctx context.Context, scheduleID, teacherID int64) (*model.ScheduleTeacher, error)
	DeleteScheduleTeacher(ctx context.Context, id int64) error
}

// catalogueLimit каталог слотов невелик, одной страницы хватает
const catalogueLimit = 100

// AvailabilityMatrix матрица доступности одного преподавателя:
// переключаемые ячейки по слотам расписания. Пока одна мутация
// (create или delete) в полёте, вся матрица заблокирована — это
// исключает гонки, порождающие дубли или осиротевшие связи
type AvailabilityMatrix struct {
	mu sync.Mutex

	api       AvailabilityAPI
	logger    *zap.Logger
	teacherID int64

	phase       MatrixPhase
	pendingLink int64 // id связи на удаление, валиден в фазе MatrixConfirming
	pendingSlot int64 // слот этой связи, для отрисовки подтверждения

	editMode bool
	slots    []model.Schedule // каталог, сгруппирован при отдаче
	links    map[int64]int64  // schedule_id -> id связи
}

func NewAvailabilityMatrix(apiClient AvailabilityAPI, teacherID int64, logger *zap.Logger) *AvailabilityMatrix {
	return &AvailabilityMatrix{
		api:       apiClient,
		logger:    logger,
		teacherID: teacherID,
		links:     make(map[int64]int64),
	}
}

// Load перечитывает каталог слотов и связи преподавателя.
// Производное множество связей обновляется только по ответу сервера,
// оптимистичных правок нет
func (m *AvailabilityMatrix) Load(ctx context.Context) error {
	slots, err := m.api.ListSchedules(ctx, catalogueLimit)
	if err != nil {
		return fmt.Errorf("load slot catalogue: %w", err)
	}

	links, err := m.api.ListScheduleTeachers(ctx, m.teacherID, catalogueLimit)
	if err != nil {
		return fmt.Errorf("load availability links: %w", err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.slots = slots
	m.setLinks(links)
	return nil
}

func (m *AvailabilityMatrix) setLinks(links []model.ScheduleTeacher) {
	bySlot := make(map[int64]int64, len(links))
	for _, link := range links {
		bySlot[link.ScheduleID] = link.ID
	}
	m.links = bySlot
}

func (m *AvailabilityMatrix) reloadLinks(ctx context.Context) error {
	links, err := m.api.ListScheduleTeachers(ctx, m.teacherID, catalogueLimit)
	if err != nil {
		return fmt.Errorf("reload availability links: %w", err)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.setLinks(links)
	return nil
}

// TeacherID преподаватель, чья доступность редактируется
func (m *AvailabilityMatrix) TeacherID() int64 { return m.teacherID }

// IsAvailable проверяет наличие связи для слота
func (m *AvailabilityMatrix) IsAvailable(slotID int64) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.links[slotID]
	return ok
}

// Total количество зарегистрированных слотов доступности
func (m *AvailabilityMatrix) Total() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.links)
}

// Phase текущая фаза автомата
func (m *AvailabilityMatrix) Phase() MatrixPhase {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.phase
}

// PendingSlot слот, ожидающий подтверждения удаления
func (m *AvailabilityMatrix) PendingSlot() (int64, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.pendingSlot, m.phase == MatrixConfirming
}

// SetEditMode переключает режим: в режиме просмотра отдаются только
// связанные слоты, в режиме правки — весь каталог
func (m *AvailabilityMatrix) SetEditMode(on bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.editMode = on
}

func (m *AvailabilityMatrix) EditMode() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.editMode
}

// Toggle переключает ячейку слота.
// Связанный слот не удаляется сразу: матрица переходит в фазу
// подтверждения и ждёт ConfirmDelete либо CancelDelete.
// Несвязанный слот создаёт связь немедленно.
// Во время мутации любые переключения отклоняются
func (m *AvailabilityMatrix) Toggle(ctx context.Context, slotID int64) (ToggleOutcome, error) {
	m.mu.Lock()
	switch m.phase {
	case MatrixMutating:
		m.mu.Unlock()
		return 0, ErrMutationInFlight
	case MatrixConfirming:
		// Новое переключение поверх неподтверждённого удаления
		// отменяет прежний выбор
		m.phase = MatrixIdle
		m.pendingLink = 0
		m.pendingSlot = 0
	}

	if !m.slotKnown(slotID) {
		m.mu.Unlock()
		return 0, ErrSlotUnknown
	}

	if linkID, linked := m.links[slotID]; linked {
		m.phase = MatrixConfirming
		m.pendingLink = linkID
		m.pendingSlot = slotID
		m.mu.Unlock()
		return ToggleNeedsConfirm, nil
	}

	m.phase = MatrixMutating
	m.mu.Unlock()

	_, err := m.api.CreateScheduleTeacher(ctx, slotID, m.teacherID)
	if err != nil {
		m.toIdle()
		m.logger.Error("Failed to create availability link",
			zap.Int64("teacher_id", m.teacherID),
			zap.Int64("schedule_id", slotID),
			zap.Error(err))
		return 0, fmt.Errorf("create availability link: %w", err)
	}

	if err := m.reloadLinks(ctx); err != nil {
		m.toIdle()
		return 0, err
	}

	m.toIdle()
	m.logger.Info("Availability link created",
		zap.Int64("teacher_id", m.teacherID),
		zap.Int64("schedule_id", slotID))
	return ToggleCreated, nil
}

// ConfirmDelete удаляет связь, выбранную последним Toggle.
// Уже удалённая кем-то связь (404) считается успехом — с точки зрения
// пользователя слот и так свободен
func (m *AvailabilityMatrix) ConfirmDelete(ctx context.Context) error {
	m.mu.Lock()
	if m.phase != MatrixConfirming {
		m.mu.Unlock()
		return ErrNothingPending
	}
	linkID := m.pendingLink
	slotID := m.pendingSlot
	m.phase = MatrixMutating
	m.pendingLink = 0
	m.pendingSlot = 0
	m.mu.Unlock()

	if err := m.api.DeleteScheduleTeacher(ctx, linkID); err != nil && !api.IsNotFound(err) {
		m.toIdle()
		m.logger.Error("Failed to delete availability link",
			zap.Int64("teacher_id", m.teacherID),
			zap.Int64("link_id", linkID),
			zap.Error(err))
		return fmt.Errorf("delete availability link: %w", err)
	}

	if err := m.reloadLinks(ctx); err != nil {
		m.toIdle()
		return err
	}

	m.toIdle()
	m.logger.Info("Availability link removed",
		zap.Int64("teacher_id", m.teacherID),
		zap.Int64("schedule_id", slotID))
	return nil
}

// CancelDelete отменяет неподтверждённое удаление без побочных эффектов
func (m *AvailabilityMatrix) CancelDelete() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.phase == MatrixConfirming {
		m.phase = MatrixIdle
		m.pendingLink = 0
		m.pendingSlot = 0
	}
}

func (m *AvailabilityMatrix) toIdle() {
	m.mu.Lock()
	m.phase = MatrixIdle
	m.mu.Unlock()
}

func (m *AvailabilityMatrix) slotKnown(slotID int64) bool {
	for _, s := range m.slots {
		if s.ID == slotID {
			return true
		}
	}
	return false
}

// AvailabilityCell ячейка для отрисовки
type AvailabilityCell struct {
	Slot   model.Schedule
	Linked bool
}

// AvailabilityRow слоты одного дня недели, отсортированы по началу
type AvailabilityRow struct {
	Weekday string
	Cells   []AvailabilityCell
}

// Rows группирует каталог по дням недели для отрисовки.
// В режиме просмотра остаются только связанные слоты и непустые дни
func (m *AvailabilityMatrix) Rows() []AvailabilityRow {
	m.mu.Lock()
	defer m.mu.Unlock()

	rows := make([]AvailabilityRow, 0, len(Weekdays))
	for _, day := range Weekdays {
		var cells []AvailabilityCell
		for _, slot := range m.slots {
			if slot.Weekday != day {
				continue
			}
			_, linked := m.links[slot.ID]
			if !m.editMode && !linked {
				continue
			}
			cells = append(cells, AvailabilityCell{Slot: slot, Linked: linked})
		}
		sort.Slice(cells, func(i, j int) bool {
			return cells[i].Slot.StartTime < cells[j].Slot.StartTime
		})
		if len(cells) == 0 && !m.editMode {
			continue
		}
		rows = append(rows, AvailabilityRow{Weekday: day, Cells: cells})
	}
	return rows
}
