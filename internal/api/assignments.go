package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/TeamSamavisa/solara-admin-bot/internal/model"
)

// AssignmentQuery фильтры списка назначений, нулевые значения не передаются
type AssignmentQuery struct {
	TeacherID    int64
	SubjectID    int64
	SpaceID      int64
	ClassGroupID int64
	ScheduleID   int64
	Limit        int
}

func (q AssignmentQuery) values() url.Values {
	query := limitQuery(q.Limit)
	set := func(key string, v int64) {
		if v != 0 {
			query.Set(key, fmt.Sprint(v))
		}
	}
	set("teacher_id", q.TeacherID)
	set("subject_id", q.SubjectID)
	set("space_id", q.SpaceID)
	set("class_group_id", q.ClassGroupID)
	set("schedule_id", q.ScheduleID)
	return query
}

// ListAssignments получает назначения с учётом фильтров
func (c *Client) ListAssignments(ctx context.Context, q AssignmentQuery) ([]model.Assignment, error) {
	assignments, _, err := getList[model.Assignment](ctx, c, "/api/assignment", q.values())
	if err != nil {
		return nil, fmt.Errorf("list assignments: %w", err)
	}
	return assignments, nil
}

// Optimize запускает фоновую оптимизацию расписания
func (c *Client) Optimize(ctx context.Context) (*model.OptimizeTicket, error) {
	var ticket model.OptimizeTicket
	if err := c.do(ctx, http.MethodPost, "/api/timetabling/optimize", nil, nil, &ticket); err != nil {
		return nil, fmt.Errorf("optimize timetable: %w", err)
	}
	return &ticket, nil
}
