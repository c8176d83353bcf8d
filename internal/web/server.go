package web

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/TeamSamavisa/solara-admin-bot/internal/api"
	"github.com/TeamSamavisa/solara-admin-bot/internal/model"
	"github.com/TeamSamavisa/solara-admin-bot/internal/render"
	"github.com/TeamSamavisa/solara-admin-bot/internal/service"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

// AssignmentSource срез клиента API, нужный веб-серверу
type AssignmentSource interface {
	ListAssignments(ctx context.Context, q api.AssignmentQuery) ([]model.Assignment, error)
}

// TaskSource последний известный снимок задачи оптимизации
type TaskSource interface {
	Snapshot() *model.Task
}

const webAssignmentsLimit = 500

// Server печатная витрина расписания: JSON сетка и PNG для печати.
// Только чтение, мутации идут через бота
type Server struct {
	assignments AssignmentSource
	tasks       TaskSource
	logger      *zap.Logger
	httpServer  *http.Server
}

func NewServer(addr string, assignments AssignmentSource, tasks TaskSource, logger *zap.Logger) *Server {
	s := &Server{
		assignments: assignments,
		tasks:       tasks,
		logger:      logger,
	}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(s.logRequests)

	r.Get("/healthz", s.handleHealth)
	r.Get("/api/timetable", s.handleTimetable)
	r.Get("/api/timetable.png", s.handleTimetableImage)
	r.Get("/api/tasks/last", s.handleLastTask)

	s.httpServer = &http.Server{
		Addr:              addr,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}
	return s
}

// Handler корневой роутер, для тестов
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// ListenAndServe блокирует до остановки сервера
func (s *Server) ListenAndServe() error {
	s.logger.Info("🌐 Web server listening", zap.String("addr", s.httpServer.Addr))
	return s.httpServer.ListenAndServe()
}

// Shutdown мягко останавливает сервер
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		s.logger.Info("HTTP request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Duration("took", time.Since(start)))
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ok"))
}

// buildGrid разбирает фильтр из query и сворачивает назначения в сетку
func (s *Server) buildGrid(r *http.Request) (*service.TimetableGrid, int, string) {
	filter := service.TimetableFilter{
		CourseID:     queryInt64(r, "course_id"),
		ClassGroupID: queryInt64(r, "class_group_id"),
		ShiftID:      queryInt64(r, "shift_id"),
	}
	if !filter.Complete() {
		return nil, http.StatusBadRequest, "course_id and class_group_id are required"
	}

	assignments, err := s.assignments.ListAssignments(r.Context(), api.AssignmentQuery{
		ClassGroupID: filter.ClassGroupID,
		Limit:        webAssignmentsLimit,
	})
	if err != nil {
		s.logger.Error("Failed to list assignments", zap.Error(err))
		return nil, http.StatusBadGateway, "upstream request failed"
	}

	return service.BuildTimetableGrid(service.FilterAssignments(assignments, filter)), 0, ""
}

func (s *Server) handleTimetable(w http.ResponseWriter, r *http.Request) {
	grid, status, msg := s.buildGrid(r)
	if grid == nil {
		writeError(w, status, msg)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(grid)
}

func (s *Server) handleTimetableImage(w http.ResponseWriter, r *http.Request) {
	grid, status, msg := s.buildGrid(r)
	if grid == nil {
		writeError(w, status, msg)
		return
	}

	img, err := render.GridImage(grid, r.URL.Query().Get("title"))
	if err != nil {
		s.logger.Error("Failed to render timetable image", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to render image")
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Write(img)
}

func (s *Server) handleLastTask(w http.ResponseWriter, r *http.Request) {
	task := s.tasks.Snapshot()
	if task == nil {
		writeError(w, http.StatusNotFound, "no optimization task yet")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(task)
}

func writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"message": message})
}

func queryInt64(r *http.Request, key string) int64 {
	v, _ := strconv.ParseInt(r.URL.Query().Get(key), 10, 64)
	return v
}
