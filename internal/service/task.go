package service

import (
	"context"

	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/sanLimbu/taskboard-api/internal"
)

const otelName = "github.com/sanLimbu/taskboard-api/internal/service"

// TaskRepository defines the datastore handling persisting task records.
type TaskRepository interface {
	Create(ctx context.Context, params internal.CreateTaskParams) (internal.Task, error)
	Delete(ctx context.Context, id string) error
	Find(ctx context.Context, id string) (internal.Task, error)
	Update(ctx context.Context, id string, params internal.UpdateTaskParams) (internal.Task, error)
	All(ctx context.Context) ([]internal.Task, error)
	ByAssignee(ctx context.Context, userID string) ([]internal.Task, error)
}

// TaskMessageBrokerRepository defines the datastore handling publishing
// task events.
type TaskMessageBrokerRepository interface {
	Created(ctx context.Context, task internal.Task) error
	Deleted(ctx context.Context, id string) error
	Updated(ctx context.Context, task internal.Task) error
}

// Task defines the application service in charge of the task lifecycle,
// every operation is gated by the authorization policy.
type Task struct {
	logger    *zap.Logger
	repo      TaskRepository
	msgBroker TaskMessageBrokerRepository
}

// NewTask instantiates the Task service.
func NewTask(logger *zap.Logger, repo TaskRepository, msgBroker TaskMessageBrokerRepository) *Task {
	return &Task{
		logger:    logger,
		repo:      repo,
		msgBroker: msgBroker,
	}
}

// Create stores a new task record created by the actor, admin only.
func (t *Task) Create(ctx context.Context, actor internal.Actor, params internal.CreateTaskParams) (internal.Task, error) {
	ctx, span := trace.SpanFromContext(ctx).TracerProvider().Tracer(otelName).Start(ctx, "Task.Create")
	defer span.End()

	if err := internal.CanPerform(actor, internal.OperationCreateTask, nil); err != nil {
		return internal.Task{}, err
	}

	params.CreatedBy = actor.ID

	if err := params.Validate(); err != nil {
		return internal.Task{}, err
	}

	task, err := t.repo.Create(ctx, params)
	if err != nil {
		return internal.Task{}, err
	}

	_ = t.msgBroker.Created(ctx, task) // XXX: event delivery is best effort

	return task, nil
}

// Update merges the patch over an existing task. Admins may update any
// task, the assigned user may update their own, any field included.
func (t *Task) Update(ctx context.Context, actor internal.Actor, id string, params internal.UpdateTaskParams) (internal.Task, error) {
	ctx, span := trace.SpanFromContext(ctx).TracerProvider().Tracer(otelName).Start(ctx, "Task.Update")
	defer span.End()

	if err := params.Validate(); err != nil {
		return internal.Task{}, err
	}

	task, err := t.repo.Find(ctx, id)
	if err != nil {
		return internal.Task{}, err
	}

	if err := internal.CanPerform(actor, internal.OperationUpdateTask, &task); err != nil {
		return internal.Task{}, err
	}

	updated, err := t.repo.Update(ctx, id, params)
	if err != nil {
		return internal.Task{}, err
	}

	_ = t.msgBroker.Updated(ctx, updated)

	return updated, nil
}

// Advance moves the task to the next lifecycle status, wrapping back to
// Pending after Completed. Authorization matches Update.
func (t *Task) Advance(ctx context.Context, actor internal.Actor, id string) (internal.Task, error) {
	ctx, span := trace.SpanFromContext(ctx).TracerProvider().Tracer(otelName).Start(ctx, "Task.Advance")
	defer span.End()

	task, err := t.repo.Find(ctx, id)
	if err != nil {
		return internal.Task{}, err
	}

	if err := internal.CanPerform(actor, internal.OperationUpdateTask, &task); err != nil {
		return internal.Task{}, err
	}

	next := task.Status.Next()

	updated, err := t.repo.Update(ctx, id, internal.UpdateTaskParams{Status: &next})
	if err != nil {
		return internal.Task{}, err
	}

	_ = t.msgBroker.Updated(ctx, updated)

	return updated, nil
}

// Delete removes an existing task, admin only.
func (t *Task) Delete(ctx context.Context, actor internal.Actor, id string) error {
	ctx, span := trace.SpanFromContext(ctx).TracerProvider().Tracer(otelName).Start(ctx, "Task.Delete")
	defer span.End()

	if _, err := t.repo.Find(ctx, id); err != nil {
		return err
	}

	if err := internal.CanPerform(actor, internal.OperationDeleteTask, nil); err != nil {
		return err
	}

	if err := t.repo.Delete(ctx, id); err != nil {
		return err
	}

	_ = t.msgBroker.Deleted(ctx, id)

	return nil
}

// All returns every task, admin only.
func (t *Task) All(ctx context.Context, actor internal.Actor) ([]internal.Task, error) {
	ctx, span := trace.SpanFromContext(ctx).TracerProvider().Tracer(otelName).Start(ctx, "Task.All")
	defer span.End()

	if err := internal.CanPerform(actor, internal.OperationListAllTasks, nil); err != nil {
		return nil, err
	}

	return t.repo.All(ctx)
}

// Assigned returns the tasks assigned to the actor.
func (t *Task) Assigned(ctx context.Context, actor internal.Actor) ([]internal.Task, error) {
	ctx, span := trace.SpanFromContext(ctx).TracerProvider().Tracer(otelName).Start(ctx, "Task.Assigned")
	defer span.End()

	if err := internal.CanPerform(actor, internal.OperationListOwnTasks, nil); err != nil {
		return nil, err
	}

	return t.repo.ByAssignee(ctx, actor.ID)
}
