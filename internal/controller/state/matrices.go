package state

import (
	"sync"

	"github.com/TeamSamavisa/solara-admin-bot/internal/service"
)

// MatrixRegistry матрицы доступности, открытые пользователями.
// У каждого пользователя не больше одной активной матрицы:
// выбор другого преподавателя заменяет прежнюю
type MatrixRegistry struct {
	mu       sync.RWMutex
	matrices map[int64]*service.AvailabilityMatrix // telegramID -> матрица
}

// NewMatrixRegistry создаёт новый реестр матриц
func NewMatrixRegistry() *MatrixRegistry {
	return &MatrixRegistry{
		matrices: make(map[int64]*service.AvailabilityMatrix),
	}
}

// Matrix возвращает активную матрицу пользователя
func (r *MatrixRegistry) Matrix(telegramID int64) (*service.AvailabilityMatrix, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	m, ok := r.matrices[telegramID]
	return m, ok
}

// Put заменяет активную матрицу пользователя
func (r *MatrixRegistry) Put(telegramID int64, m *service.AvailabilityMatrix) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.matrices[telegramID] = m
}

// Drop удаляет активную матрицу пользователя
func (r *MatrixRegistry) Drop(telegramID int64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.matrices, telegramID)
}
