package memcached

import (
	"context"
	"time"

	"github.com/bradfitz/gomemcache/memcache"
	"go.uber.org/zap"

	"github.com/sanLimbu/taskboard-api/internal"
)

// TaskStore defines the datastore being decorated.
type TaskStore interface {
	Create(ctx context.Context, params internal.CreateTaskParams) (internal.Task, error)
	Delete(ctx context.Context, id string) error
	Find(ctx context.Context, id string) (internal.Task, error)
	Update(ctx context.Context, id string, params internal.UpdateTaskParams) (internal.Task, error)
	All(ctx context.Context) ([]internal.Task, error)
	ByAssignee(ctx context.Context, userID string) ([]internal.Task, error)
}

// Task caches single-task reads in front of the wrapped store, list reads
// pass through.
type Task struct {
	client     *memcache.Client
	orig       TaskStore
	expiration time.Duration
	logger     *zap.Logger
}

// NewTask instantiates the decorated Task store.
func NewTask(client *memcache.Client, orig TaskStore, logger *zap.Logger) *Task {
	return &Task{
		client:     client,
		orig:       orig,
		expiration: 15 * time.Minute,
		logger:     logger,
	}
}

// Create delegates and primes the cache with the new record.
func (t *Task) Create(ctx context.Context, params internal.CreateTaskParams) (internal.Task, error) {
	defer newOTELSpan(ctx, "Task.Create").End()

	task, err := t.orig.Create(ctx, params)
	if err != nil {
		return internal.Task{}, err
	}

	setTask(ctx, t.client, task.ID, &task, t.expiration)

	return task, nil
}

// Delete delegates and evicts the cached record.
func (t *Task) Delete(ctx context.Context, id string) error {
	defer newOTELSpan(ctx, "Task.Delete").End()

	if err := t.orig.Delete(ctx, id); err != nil {
		return err
	}

	deleteTask(ctx, t.client, id)

	return nil
}

// Find returns the cached record when present, falling back to the wrapped
// store and caching the result.
func (t *Task) Find(ctx context.Context, id string) (internal.Task, error) {
	defer newOTELSpan(ctx, "Task.Find").End()

	var res internal.Task

	if err := getTask(ctx, t.client, id, &res); err == nil {
		return res, nil
	}

	t.logger.Debug("Find: cache miss", zap.String("id", id))

	res, err := t.orig.Find(ctx, id)
	if err != nil {
		return internal.Task{}, err
	}

	setTask(ctx, t.client, res.ID, &res, t.expiration)

	return res, nil
}

// Update delegates and replaces the cached record with the merged result.
func (t *Task) Update(ctx context.Context, id string, params internal.UpdateTaskParams) (internal.Task, error) {
	defer newOTELSpan(ctx, "Task.Update").End()

	task, err := t.orig.Update(ctx, id, params)
	if err != nil {
		return internal.Task{}, err
	}

	setTask(ctx, t.client, task.ID, &task, t.expiration)

	return task, nil
}

// All passes through, list projections are not cached.
func (t *Task) All(ctx context.Context) ([]internal.Task, error) {
	defer newOTELSpan(ctx, "Task.All").End()

	return t.orig.All(ctx)
}

// ByAssignee passes through, list projections are not cached.
func (t *Task) ByAssignee(ctx context.Context, userID string) ([]internal.Task, error) {
	defer newOTELSpan(ctx, "Task.ByAssignee").End()

	return t.orig.ByAssignee(ctx, userID)
}
