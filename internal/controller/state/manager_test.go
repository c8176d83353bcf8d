package state

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestManagerSessionLifecycle(t *testing.T) {
	sm := NewManager()

	require.Equal(t, Session{}, sm.Session(1))

	sm.Update(1, func(s *Session) {
		s.SelectedTeacherID = 7
		s.CourseID = 2
	})
	s := sm.Session(1)
	require.Equal(t, int64(7), s.SelectedTeacherID)
	require.False(t, s.FilterComplete())

	sm.Update(1, func(s *Session) { s.ClassGroupID = 3 })
	s2 := sm.Session(1)
	require.True(t, s2.FilterComplete())

	sm.Clear(1)
	require.Equal(t, Session{}, sm.Session(1))
}

func TestManagerSubscribers(t *testing.T) {
	sm := NewManager()
	sm.Update(1, func(s *Session) { s.NotifyTasks = true })
	sm.Update(2, func(s *Session) { s.NotifyTasks = false })
	sm.Update(3, func(s *Session) { s.NotifyTasks = true })

	require.ElementsMatch(t, []int64{1, 3}, sm.Subscribers())
}

func TestSessionResetFilter(t *testing.T) {
	s := Session{CourseID: 1, ClassGroupID: 2, ShiftID: 3, SelectedTeacherID: 9}
	s.ResetFilter()
	require.Equal(t, Session{SelectedTeacherID: 9}, s)
}
