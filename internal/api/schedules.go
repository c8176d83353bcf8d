package api

import (
	"context"
	"fmt"

	"github.com/TeamSamavisa/solara-admin-bot/internal/model"
)

// ListSchedules получает каталог слотов расписания
func (c *Client) ListSchedules(ctx context.Context, limit int) ([]model.Schedule, error) {
	schedules, _, err := getList[model.Schedule](ctx, c, "/api/schedule", limitQuery(limit))
	if err != nil {
		return nil, fmt.Errorf("list schedules: %w", err)
	}
	return schedules, nil
}
