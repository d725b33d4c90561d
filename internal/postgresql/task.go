package postgresql

import (
	"context"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/sanLimbu/taskboard-api/internal"
	"github.com/sanLimbu/taskboard-api/internal/postgresql/db"
)

// Task represents the repository used for interacting with task records.
type Task struct {
	q *db.Queries
}

// NewTask instantiates the Task repository.
func NewTask(pool *pgxpool.Pool) *Task {
	return &Task{
		q: db.New(pool),
	}
}

// Create inserts a new task record. The assignee id is stored as received,
// its existence is not verified.
func (t *Task) Create(ctx context.Context, params internal.CreateTaskParams) (internal.Task, error) {
	defer newOTELSpan(ctx, "Task.Create").End()

	createdBy, err := newUUID(params.CreatedBy)
	if err != nil {
		return internal.Task{}, err
	}

	var assignedTo pgtype.UUID
	if params.AssignedTo != "" {
		assignedTo, err = newUUID(params.AssignedTo)
		if err != nil {
			return internal.Task{}, err
		}
	}

	id, err := t.q.InsertTask(ctx, db.InsertTaskParams{
		Title:       params.Title,
		Description: params.Description,
		Status:      db.StatusPending,
		Priority:    db.Priority(params.Priority.String()),
		AssignedTo:  assignedTo,
		CreatedBy:   createdBy,
	})
	if err != nil {
		return internal.Task{}, internal.WrapErrorf(err, internal.ErrorCodeUnknown, "q.InsertTask")
	}

	return t.find(ctx, id)
}

// Find returns the task with the received id, assignee and creator expanded
// for display.
func (t *Task) Find(ctx context.Context, id string) (internal.Task, error) {
	defer newOTELSpan(ctx, "Task.Find").End()

	tid, err := newUUID(id)
	if err != nil {
		return internal.Task{}, err
	}

	return t.find(ctx, tid)
}

// Update merges the patch over the stored record, unset fields keep their
// prior value. Concurrent patches resolve last-write-wins.
func (t *Task) Update(ctx context.Context, id string, params internal.UpdateTaskParams) (internal.Task, error) {
	defer newOTELSpan(ctx, "Task.Update").End()

	tid, err := newUUID(id)
	if err != nil {
		return internal.Task{}, err
	}

	arg := db.UpdateTaskParams{
		ID:          tid,
		Title:       newText(params.Title),
		Description: newText(params.Description),
	}

	if params.Status != nil {
		s := params.Status.String()
		arg.Status = newText(&s)
	}

	if params.Priority != nil {
		p := params.Priority.String()
		arg.Priority = newText(&p)
	}

	if params.AssignedTo != nil {
		arg.SetAssignee = true

		if *params.AssignedTo != "" {
			assignedTo, err := newUUID(*params.AssignedTo)
			if err != nil {
				return internal.Task{}, err
			}

			arg.AssignedTo = assignedTo
		}
	}

	updated, err := t.q.UpdateTask(ctx, arg)
	if err != nil {
		if isNoRows(err) {
			return internal.Task{}, internal.WrapErrorf(err, internal.ErrorCodeNotFound, "task not found")
		}

		return internal.Task{}, internal.WrapErrorf(err, internal.ErrorCodeUnknown, "q.UpdateTask")
	}

	return t.find(ctx, updated)
}

// Delete removes the task with the received id.
func (t *Task) Delete(ctx context.Context, id string) error {
	defer newOTELSpan(ctx, "Task.Delete").End()

	tid, err := newUUID(id)
	if err != nil {
		return err
	}

	affected, err := t.q.DeleteTask(ctx, tid)
	if err != nil {
		return internal.WrapErrorf(err, internal.ErrorCodeUnknown, "q.DeleteTask")
	}

	if affected == 0 {
		return internal.NewErrorf(internal.ErrorCodeNotFound, "task not found")
	}

	return nil
}

// All returns every task, ordered by creation time.
func (t *Task) All(ctx context.Context) ([]internal.Task, error) {
	defer newOTELSpan(ctx, "Task.All").End()

	rows, err := t.q.ListTasks(ctx)
	if err != nil {
		return nil, internal.WrapErrorf(err, internal.ErrorCodeUnknown, "q.ListTasks")
	}

	return convertTasks(rows)
}

// ByAssignee returns the tasks assigned to the received user.
func (t *Task) ByAssignee(ctx context.Context, userID string) ([]internal.Task, error) {
	defer newOTELSpan(ctx, "Task.ByAssignee").End()

	uid, err := newUUID(userID)
	if err != nil {
		return nil, err
	}

	rows, err := t.q.TasksByAssignee(ctx, uid)
	if err != nil {
		return nil, internal.WrapErrorf(err, internal.ErrorCodeUnknown, "q.TasksByAssignee")
	}

	return convertTasks(rows)
}

func (t *Task) find(ctx context.Context, id pgtype.UUID) (internal.Task, error) {
	row, err := t.q.TaskByID(ctx, id)
	if err != nil {
		if isNoRows(err) {
			return internal.Task{}, internal.WrapErrorf(err, internal.ErrorCodeNotFound, "task not found")
		}

		return internal.Task{}, internal.WrapErrorf(err, internal.ErrorCodeUnknown, "q.TaskByID")
	}

	return convertTask(row)
}

func convertTask(row db.TaskRow) (internal.Task, error) {
	status, err := internal.ParseStatus(string(row.Task.Status))
	if err != nil {
		return internal.Task{}, internal.WrapErrorf(err, internal.ErrorCodeUnknown, "unknown stored status")
	}

	res := internal.Task{
		ID:          uuidString(row.Task.ID),
		Title:       row.Task.Title,
		Description: row.Task.Description,
		Status:      status,
		Priority:    internal.ParsePriority(string(row.Task.Priority)),
		CreatedBy: internal.UserRef{
			ID:    uuidString(row.Task.CreatedBy),
			Name:  row.CreatorName.String,
			Email: row.CreatorEmail.String,
		},
		CreatedAt: row.Task.CreatedAt.Time,
		UpdatedAt: row.Task.UpdatedAt.Time,
	}

	// A dangling assignee id still expands to a reference carrying the id,
	// referential integrity is not enforced at write time.
	if row.Task.AssignedTo.Valid {
		res.AssignedTo = &internal.UserRef{
			ID:    uuidString(row.Task.AssignedTo),
			Name:  row.AssigneeName.String,
			Email: row.AssigneeEmail.String,
		}
	}

	return res, nil
}

func convertTasks(rows []db.TaskRow) ([]internal.Task, error) {
	res := make([]internal.Task, 0, len(rows))

	for _, row := range rows {
		task, err := convertTask(row)
		if err != nil {
			return nil, err
		}

		res = append(res, task)
	}

	return res, nil
}
