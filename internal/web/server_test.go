package web

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/TeamSamavisa/solara-admin-bot/internal/api"
	"github.com/TeamSamavisa/solara-admin-bot/internal/model"
	"github.com/TeamSamavisa/solara-admin-bot/internal/service"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeAssignments struct {
	assignments []model.Assignment
	err         error
}

func (f *fakeAssignments) ListAssignments(ctx context.Context, q api.AssignmentQuery) ([]model.Assignment, error) {
	return f.assignments, f.err
}

type fakeTasks struct {
	task *model.Task
}

func (f *fakeTasks) Snapshot() *model.Task { return f.task }

func sampleAssignments() []model.Assignment {
	return []model.Assignment{
		{
			ClassGroupID: 5,
			Subject:      &model.Subject{Name: "Cálculo"},
			Teacher:      &model.User{FullName: "Ana"},
			Space:        &model.Space{Name: "Sala 1"},
			ClassGroup:   &model.ClassGroup{ID: 5, Name: "Turma A", CourseID: 2},
			Schedules: []model.Schedule{
				{Weekday: "monday", StartTime: "08:00:00", EndTime: "10:00:00"},
			},
		},
	}
}

func newTestServer(assignments *fakeAssignments, tasks *fakeTasks) *Server {
	return NewServer(":0", assignments, tasks, zap.NewNop())
}

func TestHealthz(t *testing.T) {
	s := newTestServer(&fakeAssignments{}, &fakeTasks{})

	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestTimetableJSON(t *testing.T) {
	s := newTestServer(&fakeAssignments{assignments: sampleAssignments()}, &fakeTasks{})

	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet,
		"/api/timetable?course_id=2&class_group_id=5", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var grid service.TimetableGrid
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &grid))
	require.Equal(t, []string{"08:00 - 10:00"}, grid.TimeSlots)
	require.Len(t, grid.Cells["monday"]["08:00 - 10:00"], 1)
	require.Equal(t, "Cálculo", grid.Cells["monday"]["08:00 - 10:00"][0].Subject)
}

func TestTimetableIncompleteFilter(t *testing.T) {
	s := newTestServer(&fakeAssignments{}, &fakeTasks{})

	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet,
		"/api/timetable?course_id=2", nil))

	require.Equal(t, http.StatusBadRequest, rec.Code)
	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Contains(t, body["message"], "class_group_id")
}

func TestTimetableUpstreamError(t *testing.T) {
	s := newTestServer(&fakeAssignments{err: errors.New("boom")}, &fakeTasks{})

	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet,
		"/api/timetable?course_id=2&class_group_id=5", nil))

	require.Equal(t, http.StatusBadGateway, rec.Code)
}

func TestTimetableImage(t *testing.T) {
	s := newTestServer(&fakeAssignments{assignments: sampleAssignments()}, &fakeTasks{})

	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet,
		"/api/timetable.png?course_id=2&class_group_id=5", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "image/png", rec.Header().Get("Content-Type"))
	require.NotEmpty(t, rec.Body.Bytes())
}

func TestLastTask(t *testing.T) {
	s := newTestServer(&fakeAssignments{}, &fakeTasks{})

	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/tasks/last", nil))
	require.Equal(t, http.StatusNotFound, rec.Code)

	s = newTestServer(&fakeAssignments{}, &fakeTasks{task: &model.Task{ID: 42, Status: model.TaskStatusProcessing, Progress: 40}})
	rec = httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/tasks/last", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var task model.Task
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &task))
	require.Equal(t, int64(42), task.ID)
	require.Equal(t, 40, task.Progress)
}
