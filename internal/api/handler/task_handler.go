package handler

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/taskmanagement/console/internal/api/middleware"
	"github.com/taskmanagement/console/internal/core/access"
	"github.com/taskmanagement/console/internal/core/domain"
	"github.com/taskmanagement/console/internal/core/ports"
	"github.com/taskmanagement/console/internal/web"
)

type TaskHandler struct {
	Base
	tasks ports.TaskService
}

func NewTaskHandler(base Base, tasks ports.TaskService) *TaskHandler {
	return &TaskHandler{Base: base, tasks: tasks}
}

type taskForm struct {
	Title       string `form:"title" validate:"required,max=200"`
	Description string `form:"description" validate:"max=2000"`
	StartDate   string `form:"start_date" validate:"omitempty,datetime=2006-01-02"`
	DueDate     string `form:"due_date" validate:"omitempty,datetime=2006-01-02"`
	Status      string `form:"status" validate:"required,oneof=to_do in_progress done"`
	Priority    string `form:"priority" validate:"required,oneof=low medium high"`
	AssigneeID  string `form:"assignee_id" validate:"omitempty,number"`
}

// task converts the form. Values are assumed validated; a parse failure is
// reported against its field.
func (f taskForm) task() (domain.Task, error) {
	t := domain.Task{
		Title:       strings.TrimSpace(f.Title),
		Description: strings.TrimSpace(f.Description),
		Status:      domain.TaskStatus(f.Status),
		Priority:    domain.TaskPriority(f.Priority),
	}
	var err error
	if t.StartDate, err = domain.ParseDate(f.StartDate); err != nil {
		return t, domain.NewValidationError("start_date", "Start date must be a valid date")
	}
	if t.DueDate, err = domain.ParseDate(f.DueDate); err != nil {
		return t, domain.NewValidationError("due_date", "Due date must be a valid date")
	}
	if f.AssigneeID != "" {
		if t.AssigneeID, err = strconv.ParseInt(f.AssigneeID, 10, 64); err != nil || t.AssigneeID < 0 {
			return t, domain.NewValidationError("assignee_id", "Assignee id must be a number")
		}
	}
	return t, nil
}

// List renders every task, narrowed by the status and priority query filters.
func (h *TaskHandler) List(c echo.Context) error {
	actor := middleware.CurrentSession(c)
	filter := ports.TaskFilter{Status: c.QueryParam("status"), Priority: c.QueryParam("priority")}
	p := h.page(c, "Tasks")
	view := h.listView(actor, "Tasks")
	view.ShowFilter = true
	view.Filter = filter

	tasks, err := h.tasks.List(c.Request().Context(), actor, filter)
	return h.renderList(c, p, view, tasks, err)
}

// Mine renders the tasks assigned to the logged-in user.
func (h *TaskHandler) Mine(c echo.Context) error {
	actor := middleware.CurrentSession(c)
	p := h.page(c, "My Tasks")
	view := h.listView(actor, "My Tasks")

	tasks, err := h.tasks.ListMine(c.Request().Context(), actor)
	return h.renderList(c, p, view, tasks, err)
}

func (h *TaskHandler) listView(actor *domain.Session, heading string) web.TasksView {
	return web.TasksView{
		Heading:    heading,
		Statuses:   web.TaskStatuses,
		Priorities: web.TaskPriorities,
		CanCreate:  access.Can(actor, access.ActionCreateTask),
		CanUpdate:  access.Can(actor, access.ActionUpdateTask),
		CanDelete:  access.Can(actor, access.ActionDeleteTask),
	}
}

func (h *TaskHandler) renderList(c echo.Context, p web.Page, view web.TasksView, tasks []domain.Task, err error) error {
	if err != nil {
		if web.Abandoned(err) {
			return err
		}
		view.LoadError = true
		p.Error = web.ErrorMessage(err)
	}
	view.Tasks = tasks
	p.Data = view
	return c.Render(http.StatusOK, web.ViewTasks, p)
}

func (h *TaskHandler) ShowCreate(c echo.Context) error {
	p := h.page(c, "Create Task")
	p.Data = h.formView("/create-task", "Create", domain.Task{Status: domain.TaskToDo, Priority: domain.PriorityMedium})
	return c.Render(http.StatusOK, web.ViewTaskForm, p)
}

func (h *TaskHandler) Create(c echo.Context) error {
	var form taskForm
	p := h.page(c, "Create Task")
	err := bindForm(c, &form)
	task, convErr := form.task()
	p.Data = h.formView("/create-task", "Create", task)
	if err == nil {
		err = convErr
	}
	if err != nil {
		return h.fail(c, web.ViewTaskForm, p, err)
	}

	created, err := h.tasks.Create(c.Request().Context(), middleware.CurrentSession(c), task)
	if err != nil {
		return h.fail(c, web.ViewTaskForm, p, err)
	}
	addFlash(c, web.FlashSuccess, "Task created")
	if created != nil && created.ID > 0 {
		return seeOther(c, fmt.Sprintf("/view-task/%d", created.ID))
	}
	return seeOther(c, "/tasks")
}

func (h *TaskHandler) ShowUpdate(c echo.Context) error {
	id, err := pathID(c, "taskId")
	if err != nil {
		return err
	}
	task, err := h.tasks.Get(c.Request().Context(), middleware.CurrentSession(c), id)
	if err != nil {
		return err
	}
	p := h.page(c, "Update Task")
	p.Data = h.formView(fmt.Sprintf("/update-task/%d", id), "Save", *task)
	return c.Render(http.StatusOK, web.ViewTaskForm, p)
}

func (h *TaskHandler) Update(c echo.Context) error {
	id, err := pathID(c, "taskId")
	if err != nil {
		return err
	}
	var form taskForm
	action := fmt.Sprintf("/update-task/%d", id)
	p := h.page(c, "Update Task")
	err = bindForm(c, &form)
	task, convErr := form.task()
	p.Data = h.formView(action, "Save", task)
	if err == nil {
		err = convErr
	}
	if err != nil {
		return h.fail(c, web.ViewTaskForm, p, err)
	}

	if _, err := h.tasks.Update(c.Request().Context(), middleware.CurrentSession(c), id, task); err != nil {
		return h.fail(c, web.ViewTaskForm, p, err)
	}
	addFlash(c, web.FlashSuccess, "Task updated")
	return seeOther(c, fmt.Sprintf("/view-task/%d", id))
}

func (h *TaskHandler) View(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	actor := middleware.CurrentSession(c)
	task, err := h.tasks.Get(c.Request().Context(), actor, id)
	if err != nil {
		return err
	}
	p := h.page(c, task.Title)
	p.Data = web.TaskDetailView{
		Task:      task,
		CanUpdate: access.Can(actor, access.ActionUpdateTask),
		CanDelete: access.Can(actor, access.ActionDeleteTask),
	}
	return c.Render(http.StatusOK, web.ViewTaskView, p)
}

// Delete removes a task and returns to the list. A failed delete leaves the
// task listed and reports the failure as a flash message.
func (h *TaskHandler) Delete(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	back := localPath(c.FormValue("redirect"), "/tasks")

	err = h.tasks.Delete(c.Request().Context(), middleware.CurrentSession(c), id)
	switch {
	case err == nil:
		addFlash(c, web.FlashSuccess, "Task deleted")
		if strings.HasPrefix(back, "/view-task/") {
			back = "/tasks"
		}
	case web.Abandoned(err), errorDecidesResponse(err):
		return err
	default:
		addFlash(c, web.FlashError, "Task could not be deleted. "+web.ErrorMessage(err))
	}
	return seeOther(c, back)
}

func (h *TaskHandler) formView(action, submit string, task domain.Task) web.TaskFormView {
	return web.TaskFormView{
		Action:     action,
		Submit:     submit,
		Task:       task,
		Statuses:   web.TaskStatuses,
		Priorities: web.TaskPriorities,
	}
}
