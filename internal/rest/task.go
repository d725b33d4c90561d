package rest

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/sanLimbu/taskboard-api/internal"
)

//go:generate counterfeiter -o resttesting/task_service.gen.go . TaskService

// TaskService ...
type TaskService interface {
	Create(ctx context.Context, actor internal.Actor, params internal.CreateTaskParams) (internal.Task, error)
	Update(ctx context.Context, actor internal.Actor, id string, params internal.UpdateTaskParams) (internal.Task, error)
	Advance(ctx context.Context, actor internal.Actor, id string) (internal.Task, error)
	Delete(ctx context.Context, actor internal.Actor, id string) error
	All(ctx context.Context, actor internal.Actor) ([]internal.Task, error)
	Assigned(ctx context.Context, actor internal.Actor) ([]internal.Task, error)
}

// TaskHandler ...
type TaskHandler struct {
	svc TaskService
}

// NewTaskHandler ...
func NewTaskHandler(svc TaskService) *TaskHandler {
	return &TaskHandler{
		svc: svc,
	}
}

// Register connects the handlers to the router, every route requires a
// resolved actor.
func (h *TaskHandler) Register(r chi.Router) {
	r.Post("/tasks", h.create)
	r.Get("/tasks/all", h.all)
	r.Get("/tasks/mine", h.mine)
	r.Put("/tasks/{id}", h.update)
	r.Post("/tasks/{id}/advance", h.advance)
	r.Delete("/tasks/{id}", h.delete)
}

// Task is a unit of work progressing through the status lifecycle.
type Task struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Status      string    `json:"status"`
	Priority    string    `json:"priority"`
	AssignedTo  *User     `json:"assigned_to"`
	CreatedBy   User      `json:"created_by"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// NewTask converts a domain task into its response projection.
func NewTask(task internal.Task) Task {
	res := Task{
		ID:          task.ID,
		Title:       task.Title,
		Description: task.Description,
		Status:      task.Status.String(),
		Priority:    task.Priority.String(),
		CreatedBy: User{
			ID:    task.CreatedBy.ID,
			Name:  task.CreatedBy.Name,
			Email: task.CreatedBy.Email,
		},
		CreatedAt: task.CreatedAt,
		UpdatedAt: task.UpdatedAt,
	}

	if task.AssignedTo != nil {
		res.AssignedTo = &User{
			ID:    task.AssignedTo.ID,
			Name:  task.AssignedTo.Name,
			Email: task.AssignedTo.Email,
		}
	}

	return res
}

// CreateTaskRequest defines the request used for creating tasks.
type CreateTaskRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Priority    string `json:"priority"`
	AssignedTo  string `json:"assigned_to"`
}

// TaskResponse defines the response wrapping a single task.
type TaskResponse struct {
	Task Task `json:"task"`
}

// TasksResponse defines the response wrapping a task listing.
type TasksResponse struct {
	Tasks []Task `json:"tasks"`
}

func (h *TaskHandler) create(w http.ResponseWriter, r *http.Request) {
	var req CreateTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		renderErrorResponse(r.Context(), w, "invalid request",
			internal.WrapErrorf(err, internal.ErrorCodeInvalidArgument, "json decoder"))
		return
	}
	defer r.Body.Close()

	task, err := h.svc.Create(r.Context(), actorFromRequest(r), internal.CreateTaskParams{
		Title:       req.Title,
		Description: req.Description,
		Priority:    internal.ParsePriority(req.Priority),
		AssignedTo:  req.AssignedTo,
	})
	if err != nil {
		renderErrorResponse(r.Context(), w, "create failed", err)
		return
	}

	renderResponse(w, &TaskResponse{Task: NewTask(task)}, http.StatusCreated)
}

// UpdateTaskRequest defines the patch applied over an existing task, absent
// fields keep their stored value.
type UpdateTaskRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Status      *string `json:"status"`
	Priority    *string `json:"priority"`
	AssignedTo  *string `json:"assigned_to"`
}

func (h *TaskHandler) update(w http.ResponseWriter, r *http.Request) {
	var req UpdateTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		renderErrorResponse(r.Context(), w, "invalid request",
			internal.WrapErrorf(err, internal.ErrorCodeInvalidArgument, "json decoder"))
		return
	}
	defer r.Body.Close()

	params := internal.UpdateTaskParams{
		Title:       req.Title,
		Description: req.Description,
		AssignedTo:  req.AssignedTo,
	}

	if req.Status != nil {
		status, err := internal.ParseStatus(*req.Status)
		if err != nil {
			renderErrorResponse(r.Context(), w, "unknown status", err)
			return
		}

		params.Status = &status
	}

	if req.Priority != nil {
		priority := internal.ParsePriority(*req.Priority)
		params.Priority = &priority
	}

	task, err := h.svc.Update(r.Context(), actorFromRequest(r), chi.URLParam(r, "id"), params)
	if err != nil {
		renderErrorResponse(r.Context(), w, "update failed", err)
		return
	}

	renderResponse(w, &TaskResponse{Task: NewTask(task)}, http.StatusOK)
}

func (h *TaskHandler) advance(w http.ResponseWriter, r *http.Request) {
	task, err := h.svc.Advance(r.Context(), actorFromRequest(r), chi.URLParam(r, "id"))
	if err != nil {
		renderErrorResponse(r.Context(), w, "advance failed", err)
		return
	}

	renderResponse(w, &TaskResponse{Task: NewTask(task)}, http.StatusOK)
}

func (h *TaskHandler) delete(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Delete(r.Context(), actorFromRequest(r), chi.URLParam(r, "id")); err != nil {
		renderErrorResponse(r.Context(), w, "delete failed", err)
		return
	}

	renderResponse(w, struct{}{}, http.StatusOK)
}

func (h *TaskHandler) all(w http.ResponseWriter, r *http.Request) {
	tasks, err := h.svc.All(r.Context(), actorFromRequest(r))
	if err != nil {
		renderErrorResponse(r.Context(), w, "list failed", err)
		return
	}

	renderResponse(w, newTasksResponse(tasks), http.StatusOK)
}

func (h *TaskHandler) mine(w http.ResponseWriter, r *http.Request) {
	tasks, err := h.svc.Assigned(r.Context(), actorFromRequest(r))
	if err != nil {
		renderErrorResponse(r.Context(), w, "list failed", err)
		return
	}

	renderResponse(w, newTasksResponse(tasks), http.StatusOK)
}

func newTasksResponse(tasks []internal.Task) *TasksResponse {
	res := TasksResponse{Tasks: make([]Task, 0, len(tasks))}

	for _, task := range tasks {
		res.Tasks = append(res.Tasks, NewTask(task))
	}

	return &res
}
