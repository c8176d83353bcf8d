package state

import (
	"sync"
)

// Manager управляет сессиями пользователей
type Manager struct {
	mu       sync.RWMutex
	sessions map[int64]*Session // telegramID -> Session
}

// NewManager создаёт новый менеджер сессий
func NewManager() *Manager {
	return &Manager{
		sessions: make(map[int64]*Session),
	}
}

// Session возвращает копию сессии пользователя (пустая, если её нет)
func (sm *Manager) Session(telegramID int64) Session {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	if s, exists := sm.sessions[telegramID]; exists {
		return *s
	}
	return Session{}
}

// Update изменяет сессию пользователя, создавая её при необходимости
func (sm *Manager) Update(telegramID int64, fn func(*Session)) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	s, exists := sm.sessions[telegramID]
	if !exists {
		s = &Session{}
		sm.sessions[telegramID] = s
	}
	fn(s)
}

// Clear удаляет сессию пользователя
func (sm *Manager) Clear(telegramID int64) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	delete(sm.sessions, telegramID)
}

// Subscribers возвращает telegram id всех, кто подписан на
// уведомления о ходе оптимизации
func (sm *Manager) Subscribers() []int64 {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	ids := make([]int64, 0, len(sm.sessions))
	for id, s := range sm.sessions {
		if s.NotifyTasks {
			ids = append(ids, id)
		}
	}
	return ids
}
