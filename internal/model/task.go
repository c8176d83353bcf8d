package model

import (
	"encoding/json"
	"time"
)

type TaskStatus string

const (
	TaskStatusProcessing TaskStatus = "PROCESSING"
	TaskStatusCompleted  TaskStatus = "COMPLETED"
	TaskStatusFailed     TaskStatus = "FAILED"
)

// Task фоновая задача оптимизации расписания на бэкенде.
// Жизненный цикл: PROCESSING -> COMPLETED | FAILED, терминальные
// статусы для одного id задачи не пересматриваются
type Task struct {
	ID            int64           `json:"id"`
	CorrelationID string          `json:"correlation_id"`
	Type          string          `json:"type"` // TIMETABLE_OPTIMIZATION
	Status        TaskStatus      `json:"status"`
	Progress      int             `json:"progress"` // 0..100
	Result        json.RawMessage `json:"result,omitempty"`
	ErrorMessage  *string         `json:"error_message"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// Terminal сообщает, завершилась ли задача окончательно
func (t *Task) Terminal() bool {
	return t.Status == TaskStatusCompleted || t.Status == TaskStatusFailed
}

// OptimizeTicket ответ бэкенда на запрос оптимизации
type OptimizeTicket struct {
	TaskID        int64  `json:"taskId"`
	CorrelationID string `json:"correlationId"`
}
