package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(srv.URL, 5*time.Second, func() string { return "test-token" }, zap.NewNop())
}

func TestListSchedulesEnvelope(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/schedule", r.URL.Path)
		require.Equal(t, "100", r.URL.Query().Get("limit"))
		require.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))
		require.NotEmpty(t, r.Header.Get("X-Request-Id"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"content": [
				{"id": 1, "weekday": "monday", "start_time": "08:00:00", "end_time": "10:00:00"},
				{"id": 2, "weekday": "tuesday", "start_time": "10:00:00", "end_time": "12:00:00"}
			],
			"pagination": {"page": 1, "limit": 100, "total": 2, "total_pages": 1}
		}`))
	}))

	schedules, err := client.ListSchedules(context.Background(), 100)
	require.NoError(t, err)
	require.Len(t, schedules, 2)
	require.Equal(t, "monday", schedules[0].Weekday)
	require.Equal(t, "08:00 - 10:00", schedules[0].SlotKey())
}

func TestServerErrorMessage(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		w.Write([]byte(`{"message": "associação já existe"}`))
	}))

	_, err := client.CreateScheduleTeacher(context.Background(), 1, 2)
	require.Error(t, err)

	var apiErr *Error
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, http.StatusConflict, apiErr.Status)
	require.Equal(t, "associação já existe", apiErr.Message)
}

func TestLastTaskNotFound(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))

	task, err := client.LastTask(context.Background())
	require.NoError(t, err)
	require.Nil(t, task)
}

func TestOptimizeTicket(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/api/timetabling/optimize", r.URL.Path)
		w.Write([]byte(`{"taskId": 42, "correlationId": "abc-123"}`))
	}))

	ticket, err := client.Optimize(context.Background())
	require.NoError(t, err)
	require.Equal(t, int64(42), ticket.TaskID)
	require.Equal(t, "abc-123", ticket.CorrelationID)
}

func TestDeleteScheduleTeacherNotFound(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodDelete, r.Method)
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"message": "not found"}`))
	}))

	err := client.DeleteScheduleTeacher(context.Background(), 7)
	require.Error(t, err)
	require.True(t, IsNotFound(err))
}

func TestListAssignmentsQueryParams(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "5", r.URL.Query().Get("class_group_id"))
		require.Empty(t, r.URL.Query().Get("teacher_id"))
		w.Write([]byte(`{"content": [], "pagination": {}}`))
	}))

	assignments, err := client.ListAssignments(context.Background(), AssignmentQuery{ClassGroupID: 5, Limit: 100})
	require.NoError(t, err)
	require.Empty(t, assignments)
}
