package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/TeamSamavisa/solara-admin-bot/internal/model"
)

// ListScheduleTeachers получает связи доступности преподавателя
func (c *Client) ListScheduleTeachers(ctx context.Context, teacherID int64, limit int) ([]model.ScheduleTeacher, error) {
	query := limitQuery(limit)
	query.Set("teacher_id", fmt.Sprint(teacherID))

	links, _, err := getList[model.ScheduleTeacher](ctx, c, "/api/schedule-teacher", query)
	if err != nil {
		return nil, fmt.Errorf("list schedule teachers: %w", err)
	}
	return links, nil
}

// CreateScheduleTeacher создаёт связь (преподаватель, слот)
func (c *Client) CreateScheduleTeacher(ctx context.Context, scheduleID, teacherID int64) (*model.ScheduleTeacher, error) {
	body := map[string]int64{
		"schedule_id": scheduleID,
		"teacher_id":  teacherID,
	}

	var link model.ScheduleTeacher
	if err := c.do(ctx, http.MethodPost, "/api/schedule-teacher", nil, body, &link); err != nil {
		return nil, fmt.Errorf("create schedule teacher: %w", err)
	}
	return &link, nil
}

// DeleteScheduleTeacher удаляет связь по её id
func (c *Client) DeleteScheduleTeacher(ctx context.Context, id int64) error {
	if err := c.do(ctx, http.MethodDelete, fmt.Sprintf("/api/schedule-teacher/%d", id), nil, nil, nil); err != nil {
		return fmt.Errorf("delete schedule teacher: %w", err)
	}
	return nil
}
