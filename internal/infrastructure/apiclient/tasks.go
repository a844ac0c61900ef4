package apiclient

import (
	"context"
	"fmt"
	"net/http"

	"github.com/taskmanagement/console/internal/core/domain"
)

const tasksPath = "/workspaces/tasks"

func (c *Client) ListTasks(ctx context.Context) ([]domain.Task, error) {
	return c.listTasks(ctx, tasksPath)
}

func (c *Client) ListTasksByAssignee(ctx context.Context, assigneeID int64) ([]domain.Task, error) {
	return c.listTasks(ctx, fmt.Sprintf("%s/assignee/%d", tasksPath, assigneeID))
}

func (c *Client) listTasks(ctx context.Context, path string) ([]domain.Task, error) {
	body, err := c.do(ctx, http.MethodGet, "tasks", path, nil)
	if err != nil {
		return nil, err
	}
	tasks := []domain.Task{}
	if _, err := decode(body, &tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

func (c *Client) GetTask(ctx context.Context, id int64) (*domain.Task, error) {
	return c.taskCall(ctx, http.MethodGet, fmt.Sprintf("%s/%d", tasksPath, id), nil)
}

func (c *Client) CreateTask(ctx context.Context, task domain.Task) (*domain.Task, error) {
	task.ID = 0
	return c.taskCall(ctx, http.MethodPost, tasksPath, task)
}

func (c *Client) UpdateTask(ctx context.Context, id int64, task domain.Task) (*domain.Task, error) {
	task.ID = 0
	return c.taskCall(ctx, http.MethodPatch, fmt.Sprintf("%s/%d", tasksPath, id), task)
}

func (c *Client) DeleteTask(ctx context.Context, id int64) error {
	_, err := c.do(ctx, http.MethodDelete, "tasks", fmt.Sprintf("%s/%d", tasksPath, id), nil)
	return err
}

func (c *Client) taskCall(ctx context.Context, method, path string, in any) (*domain.Task, error) {
	body, err := c.do(ctx, method, "tasks", path, in)
	if err != nil {
		return nil, err
	}
	var task domain.Task
	ok, err := decode(body, &task)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}
	return &task, nil
}
