package service

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"github.com/taskmanagement/console/internal/core/access"
	"github.com/taskmanagement/console/internal/core/domain"
	"github.com/taskmanagement/console/internal/core/ports"
)

var _ ports.TaskService = (*TaskService)(nil)

type TaskService struct {
	api    ports.TaskAPI
	audit  auditor
	logger zerolog.Logger
}

func NewTaskService(api ports.TaskAPI, audits ports.AuditRepository, logger zerolog.Logger) *TaskService {
	return &TaskService{api: api, audit: newAuditor(audits, logger), logger: logger}
}

func (s *TaskService) List(ctx context.Context, actor *domain.Session, filter ports.TaskFilter) ([]domain.Task, error) {
	ctx, err := authorize(ctx, actor, access.ActionViewTask)
	if err != nil {
		return nil, err
	}
	tasks, err := s.api.ListTasks(ctx)
	if err != nil {
		return nil, err
	}
	return filterTasks(tasks, filter), nil
}

// ListMine returns the tasks assigned to the session's own user.
func (s *TaskService) ListMine(ctx context.Context, actor *domain.Session) ([]domain.Task, error) {
	ctx, err := authorize(ctx, actor, access.ActionViewTask)
	if err != nil {
		return nil, err
	}
	return s.api.ListTasksByAssignee(ctx, actor.UserID)
}

func (s *TaskService) Get(ctx context.Context, actor *domain.Session, id int64) (*domain.Task, error) {
	ctx, err := authorize(ctx, actor, access.ActionViewTask)
	if err != nil {
		return nil, err
	}
	return s.api.GetTask(ctx, id)
}

func (s *TaskService) Create(ctx context.Context, actor *domain.Session, task domain.Task) (*domain.Task, error) {
	actx, err := authorize(ctx, actor, access.ActionCreateTask)
	if err != nil {
		s.audit.record(ctx, actor, string(access.ActionCreateTask), "task", 0, err)
		return nil, err
	}
	if err := validateTask(task); err != nil {
		return nil, err
	}
	task.CreatedBy = actor.UserID
	created, err := s.api.CreateTask(actx, task)
	var id int64
	if created != nil {
		id = created.ID
	}
	s.audit.record(ctx, actor, string(access.ActionCreateTask), "task", id, err)
	return created, err
}

func (s *TaskService) Update(ctx context.Context, actor *domain.Session, id int64, task domain.Task) (*domain.Task, error) {
	actx, err := authorize(ctx, actor, access.ActionUpdateTask)
	if err != nil {
		s.audit.record(ctx, actor, string(access.ActionUpdateTask), "task", id, err)
		return nil, err
	}
	if err := validateTask(task); err != nil {
		return nil, err
	}
	task.UpdatedBy = actor.UserID
	updated, err := s.api.UpdateTask(actx, id, task)
	s.audit.record(ctx, actor, string(access.ActionUpdateTask), "task", id, err)
	return updated, err
}

func (s *TaskService) Delete(ctx context.Context, actor *domain.Session, id int64) error {
	actx, err := authorize(ctx, actor, access.ActionDeleteTask)
	if err != nil {
		s.audit.record(ctx, actor, string(access.ActionDeleteTask), "task", id, err)
		return err
	}
	err = s.api.DeleteTask(actx, id)
	if err != nil {
		s.logger.Warn().Err(err).Int64("task_id", id).Msg("task delete failed")
	}
	s.audit.record(ctx, actor, string(access.ActionDeleteTask), "task", id, err)
	return err
}

func filterTasks(tasks []domain.Task, filter ports.TaskFilter) []domain.Task {
	status := strings.TrimSpace(filter.Status)
	priority := strings.TrimSpace(filter.Priority)
	if status == "" && priority == "" {
		return tasks
	}
	out := make([]domain.Task, 0, len(tasks))
	for _, t := range tasks {
		if status != "" && !strings.EqualFold(string(t.Status), status) {
			continue
		}
		if priority != "" && !strings.EqualFold(string(t.Priority), priority) {
			continue
		}
		out = append(out, t)
	}
	return out
}

func validateTask(task domain.Task) error {
	fields := make(map[string]string)
	if strings.TrimSpace(task.Title) == "" {
		fields["title"] = "Title is required"
	}
	switch task.Status {
	case domain.TaskToDo, domain.TaskInProgress, domain.TaskDone:
	default:
		fields["status"] = "Status must be one of to_do, in_progress, done"
	}
	switch task.Priority {
	case domain.PriorityLow, domain.PriorityMedium, domain.PriorityHigh:
	default:
		fields["priority"] = "Priority must be one of low, medium, high"
	}
	if task.StartDate != nil && task.DueDate != nil && task.DueDate.Before(task.StartDate.Time) {
		fields["due_date"] = "Due date cannot be before start date"
	}
	if len(fields) > 0 {
		return &domain.ValidationError{Message: "task is invalid", Fields: fields}
	}
	return nil
}

// authorize checks the session's permission for action and, when granted,
// returns ctx carrying the session's API token.
func authorize(ctx context.Context, actor *domain.Session, action access.Action) (context.Context, error) {
	if !access.Can(actor, action) {
		return ctx, domain.ErrForbidden
	}
	return ports.WithAccessToken(ctx, actor.AccessToken), nil
}
