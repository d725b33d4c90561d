package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/sanLimbu/taskboard-api/internal"
	"github.com/sanLimbu/taskboard-api/internal/service"
)

// memTaskRepo is an in-memory TaskRepository mirroring the patch semantics of
// the real store.
type memTaskRepo struct {
	tasks map[string]internal.Task
}

func newMemTaskRepo() *memTaskRepo {
	return &memTaskRepo{
		tasks: make(map[string]internal.Task),
	}
}

func (r *memTaskRepo) Create(_ context.Context, params internal.CreateTaskParams) (internal.Task, error) {
	now := time.Now()

	task := internal.Task{
		ID:          uuid.NewString(),
		Title:       params.Title,
		Description: params.Description,
		Status:      internal.StatusPending,
		Priority:    params.Priority,
		CreatedBy:   internal.UserRef{ID: params.CreatedBy},
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if params.AssignedTo != "" {
		task.AssignedTo = &internal.UserRef{ID: params.AssignedTo}
	}

	r.tasks[task.ID] = task

	return task, nil
}

func (r *memTaskRepo) Find(_ context.Context, id string) (internal.Task, error) {
	task, ok := r.tasks[id]
	if !ok {
		return internal.Task{}, internal.NewErrorf(internal.ErrorCodeNotFound, "task not found")
	}

	return task, nil
}

func (r *memTaskRepo) Update(_ context.Context, id string, params internal.UpdateTaskParams) (internal.Task, error) {
	task, ok := r.tasks[id]
	if !ok {
		return internal.Task{}, internal.NewErrorf(internal.ErrorCodeNotFound, "task not found")
	}

	if params.Title != nil {
		task.Title = *params.Title
	}

	if params.Description != nil {
		task.Description = *params.Description
	}

	if params.Status != nil {
		task.Status = *params.Status
	}

	if params.Priority != nil {
		task.Priority = *params.Priority
	}

	if params.AssignedTo != nil {
		if *params.AssignedTo == "" {
			task.AssignedTo = nil
		} else {
			task.AssignedTo = &internal.UserRef{ID: *params.AssignedTo}
		}
	}

	task.UpdatedAt = time.Now()
	r.tasks[id] = task

	return task, nil
}

func (r *memTaskRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.tasks[id]; !ok {
		return internal.NewErrorf(internal.ErrorCodeNotFound, "task not found")
	}

	delete(r.tasks, id)

	return nil
}

func (r *memTaskRepo) All(_ context.Context) ([]internal.Task, error) {
	res := make([]internal.Task, 0, len(r.tasks))
	for _, task := range r.tasks {
		res = append(res, task)
	}

	return res, nil
}

func (r *memTaskRepo) ByAssignee(_ context.Context, userID string) ([]internal.Task, error) {
	var res []internal.Task

	for _, task := range r.tasks {
		if task.AssignedTo != nil && task.AssignedTo.ID == userID {
			res = append(res, task)
		}
	}

	return res, nil
}

// recordingBroker captures the events the service publishes.
type recordingBroker struct {
	created []internal.Task
	updated []internal.Task
	deleted []string
}

func (b *recordingBroker) Created(_ context.Context, task internal.Task) error {
	b.created = append(b.created, task)
	return nil
}

func (b *recordingBroker) Updated(_ context.Context, task internal.Task) error {
	b.updated = append(b.updated, task)
	return nil
}

func (b *recordingBroker) Deleted(_ context.Context, id string) error {
	b.deleted = append(b.deleted, id)
	return nil
}

var (
	adminActor  = internal.Actor{ID: "0af69063-9103-441d-a4c5-4a3e29f3d380", Role: internal.RoleAdmin}
	memberActor = internal.Actor{ID: "3bf63086-14b6-4b2c-bc85-fd42e0e11807", Role: internal.RoleUser}
)

func newTaskService() (*service.Task, *memTaskRepo, *recordingBroker) {
	repo := newMemTaskRepo()
	broker := &recordingBroker{}

	return service.NewTask(zap.NewNop(), repo, broker), repo, broker
}

func TestTask_Create(t *testing.T) {
	t.Parallel()

	svc, _, broker := newTaskService()

	task, err := svc.Create(context.Background(), adminActor, internal.CreateTaskParams{
		Title:      "write report",
		Priority:   internal.PriorityHigh,
		AssignedTo: memberActor.ID,
	})
	require.NoError(t, err)
	require.NotEmpty(t, task.ID)
	require.Equal(t, internal.StatusPending, task.Status)
	require.Equal(t, adminActor.ID, task.CreatedBy.ID)
	require.NotNil(t, task.AssignedTo)
	require.Equal(t, memberActor.ID, task.AssignedTo.ID)

	require.Len(t, broker.created, 1)
	require.Equal(t, task.ID, broker.created[0].ID)
}

func TestTask_Create_Forbidden(t *testing.T) {
	t.Parallel()

	svc, _, broker := newTaskService()

	_, err := svc.Create(context.Background(), memberActor, internal.CreateTaskParams{
		Title: "write report",
	})
	requireCode(t, err, internal.ErrorCodeForbidden)
	require.Empty(t, broker.created)
}

func TestTask_Create_Invalid(t *testing.T) {
	t.Parallel()

	svc, _, _ := newTaskService()

	_, err := svc.Create(context.Background(), adminActor, internal.CreateTaskParams{})
	requireCode(t, err, internal.ErrorCodeInvalidArgument)

	_, err = svc.Create(context.Background(), adminActor, internal.CreateTaskParams{
		Title:      "write report",
		AssignedTo: "not-an-id",
	})
	requireCode(t, err, internal.ErrorCodeInvalidArgument)
}

func TestTask_Update(t *testing.T) {
	t.Parallel()

	svc, _, broker := newTaskService()

	ctx := context.Background()

	task, err := svc.Create(ctx, adminActor, internal.CreateTaskParams{
		Title:      "write report",
		AssignedTo: memberActor.ID,
	})
	require.NoError(t, err)

	newTitle := "write the quarterly report"
	status := internal.StatusInProgress

	// The assignee may patch their own task.
	updated, err := svc.Update(ctx, memberActor, task.ID, internal.UpdateTaskParams{
		Title:  &newTitle,
		Status: &status,
	})
	require.NoError(t, err)
	require.Equal(t, newTitle, updated.Title)
	require.Equal(t, internal.StatusInProgress, updated.Status)

	// Untouched fields kept their stored value.
	require.Equal(t, task.Description, updated.Description)
	require.Equal(t, task.Priority, updated.Priority)
	require.False(t, updated.UpdatedAt.Before(task.UpdatedAt))

	require.Len(t, broker.updated, 1)
}

func TestTask_Update_Forbidden(t *testing.T) {
	t.Parallel()

	svc, _, _ := newTaskService()

	ctx := context.Background()

	task, err := svc.Create(ctx, adminActor, internal.CreateTaskParams{
		Title:      "write report",
		AssignedTo: memberActor.ID,
	})
	require.NoError(t, err)

	other := internal.Actor{ID: "91cf7a51-d7a9-40aa-a1f8-2f211b2f1e64", Role: internal.RoleUser}
	title := "hijacked"

	_, err = svc.Update(ctx, other, task.ID, internal.UpdateTaskParams{Title: &title})
	requireCode(t, err, internal.ErrorCodeForbidden)
}

func TestTask_Update_NotFoundBeforeForbidden(t *testing.T) {
	t.Parallel()

	svc, _, _ := newTaskService()

	title := "whatever"

	// A missing task reports not-found even to actors who couldn't have
	// touched it.
	_, err := svc.Update(context.Background(), memberActor, uuid.NewString(), internal.UpdateTaskParams{Title: &title})
	requireCode(t, err, internal.ErrorCodeNotFound)
}

func TestTask_Update_ClearAssignment(t *testing.T) {
	t.Parallel()

	svc, _, _ := newTaskService()

	ctx := context.Background()

	task, err := svc.Create(ctx, adminActor, internal.CreateTaskParams{
		Title:      "write report",
		AssignedTo: memberActor.ID,
	})
	require.NoError(t, err)

	empty := ""

	updated, err := svc.Update(ctx, adminActor, task.ID, internal.UpdateTaskParams{AssignedTo: &empty})
	require.NoError(t, err)
	require.Nil(t, updated.AssignedTo)
}

func TestTask_Advance(t *testing.T) {
	t.Parallel()

	svc, _, broker := newTaskService()

	ctx := context.Background()

	task, err := svc.Create(ctx, adminActor, internal.CreateTaskParams{
		Title:      "write report",
		AssignedTo: memberActor.ID,
	})
	require.NoError(t, err)
	require.Equal(t, internal.StatusPending, task.Status)

	advanced, err := svc.Advance(ctx, memberActor, task.ID)
	require.NoError(t, err)
	require.Equal(t, internal.StatusInProgress, advanced.Status)

	advanced, err = svc.Advance(ctx, memberActor, task.ID)
	require.NoError(t, err)
	require.Equal(t, internal.StatusCompleted, advanced.Status)

	// Advancing past Completed wraps back to Pending.
	advanced, err = svc.Advance(ctx, memberActor, task.ID)
	require.NoError(t, err)
	require.Equal(t, internal.StatusPending, advanced.Status)

	require.Len(t, broker.updated, 3)
}

func TestTask_Advance_Forbidden(t *testing.T) {
	t.Parallel()

	svc, _, _ := newTaskService()

	ctx := context.Background()

	task, err := svc.Create(ctx, adminActor, internal.CreateTaskParams{
		Title: "write report",
	})
	require.NoError(t, err)

	_, err = svc.Advance(ctx, memberActor, task.ID)
	requireCode(t, err, internal.ErrorCodeForbidden)
}

func TestTask_Delete(t *testing.T) {
	t.Parallel()

	svc, repo, broker := newTaskService()

	ctx := context.Background()

	task, err := svc.Create(ctx, adminActor, internal.CreateTaskParams{
		Title: "write report",
	})
	require.NoError(t, err)

	err = svc.Delete(ctx, adminActor, task.ID)
	require.NoError(t, err)

	_, err = repo.Find(ctx, task.ID)
	requireCode(t, err, internal.ErrorCodeNotFound)

	require.Equal(t, []string{task.ID}, broker.deleted)
}

func TestTask_Delete_Forbidden(t *testing.T) {
	t.Parallel()

	svc, _, _ := newTaskService()

	ctx := context.Background()

	task, err := svc.Create(ctx, adminActor, internal.CreateTaskParams{
		Title:      "write report",
		AssignedTo: memberActor.ID,
	})
	require.NoError(t, err)

	// Not even the assignee may delete.
	err = svc.Delete(ctx, memberActor, task.ID)
	requireCode(t, err, internal.ErrorCodeForbidden)
}

func TestTask_Delete_NotFound(t *testing.T) {
	t.Parallel()

	svc, _, _ := newTaskService()

	err := svc.Delete(context.Background(), memberActor, uuid.NewString())
	requireCode(t, err, internal.ErrorCodeNotFound)
}

func TestTask_All(t *testing.T) {
	t.Parallel()

	svc, _, _ := newTaskService()

	ctx := context.Background()

	_, err := svc.Create(ctx, adminActor, internal.CreateTaskParams{Title: "one"})
	require.NoError(t, err)

	_, err = svc.Create(ctx, adminActor, internal.CreateTaskParams{Title: "two"})
	require.NoError(t, err)

	tasks, err := svc.All(ctx, adminActor)
	require.NoError(t, err)
	require.Len(t, tasks, 2)

	_, err = svc.All(ctx, memberActor)
	requireCode(t, err, internal.ErrorCodeForbidden)
}

func TestTask_Assigned(t *testing.T) {
	t.Parallel()

	svc, _, _ := newTaskService()

	ctx := context.Background()

	_, err := svc.Create(ctx, adminActor, internal.CreateTaskParams{
		Title:      "mine",
		AssignedTo: memberActor.ID,
	})
	require.NoError(t, err)

	_, err = svc.Create(ctx, adminActor, internal.CreateTaskParams{Title: "unassigned"})
	require.NoError(t, err)

	tasks, err := svc.Assigned(ctx, memberActor)
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	require.Equal(t, "mine", tasks[0].Title)

	_, err = svc.Assigned(ctx, internal.Actor{})
	requireCode(t, err, internal.ErrorCodeUnauthenticated)
}
