package api

import (
	"context"
	"fmt"
	"net/url"

	"github.com/TeamSamavisa/solara-admin-bot/internal/model"
)

// Справочные коллекции: курсы, смены, группы, пользователи

func (c *Client) ListCourses(ctx context.Context, limit int) ([]model.Course, error) {
	courses, _, err := getList[model.Course](ctx, c, "/api/course", limitQuery(limit))
	if err != nil {
		return nil, fmt.Errorf("list courses: %w", err)
	}
	return courses, nil
}

func (c *Client) ListShifts(ctx context.Context, limit int) ([]model.Shift, error) {
	shifts, _, err := getList[model.Shift](ctx, c, "/api/shift", limitQuery(limit))
	if err != nil {
		return nil, fmt.Errorf("list shifts: %w", err)
	}
	return shifts, nil
}

// ListClassGroups получает группы, опционально сужая по курсу
func (c *Client) ListClassGroups(ctx context.Context, courseID int64, limit int) ([]model.ClassGroup, error) {
	query := limitQuery(limit)
	if courseID != 0 {
		query.Set("course_id", fmt.Sprint(courseID))
	}

	groups, _, err := getList[model.ClassGroup](ctx, c, "/api/class-group", query)
	if err != nil {
		return nil, fmt.Errorf("list class groups: %w", err)
	}
	return groups, nil
}

// ListTeachers получает пользователей с ролью преподавателя
func (c *Client) ListTeachers(ctx context.Context, limit int) ([]model.User, error) {
	query := limitQuery(limit)
	query.Set("role", "teacher")
	return c.listUsers(ctx, query)
}

func (c *Client) listUsers(ctx context.Context, query url.Values) ([]model.User, error) {
	users, _, err := getList[model.User](ctx, c, "/api/user", query)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}
