package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/TeamSamavisa/solara-admin-bot/internal/model"
)

// GetTask получает задачу по id. Возвращает (nil, nil), если задачи нет
func (c *Client) GetTask(ctx context.Context, id int64) (*model.Task, error) {
	var task model.Task
	err := c.do(ctx, http.MethodGet, fmt.Sprintf("/api/tasks/%d", id), nil, nil, &task)
	if err != nil {
		if IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get task: %w", err)
	}
	return &task, nil
}

// LastTask получает последнюю задачу оптимизации.
// (nil, nil) означает, что задач ещё не было
func (c *Client) LastTask(ctx context.Context) (*model.Task, error) {
	var task model.Task
	err := c.do(ctx, http.MethodGet, "/api/tasks/last", nil, nil, &task)
	if err != nil {
		if IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get last task: %w", err)
	}
	return &task, nil
}

// ListTasks получает историю задач оптимизации
func (c *Client) ListTasks(ctx context.Context) ([]model.Task, error) {
	var tasks []model.Task
	if err := c.do(ctx, http.MethodGet, "/api/tasks", nil, nil, &tasks); err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	return tasks, nil
}
