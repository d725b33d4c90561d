package db

import (
	"context"

	"github.com/jackc/pgx/v5/pgtype"
)

// TaskRow is a task joined with the display fields of its assignee and
// creator.
type TaskRow struct {
	Task          Tasks
	AssigneeName  pgtype.Text
	AssigneeEmail pgtype.Text
	CreatorName   pgtype.Text
	CreatorEmail  pgtype.Text
}

const taskColumns = `t.id, t.title, t.description, t.status, t.priority, t.assigned_to, t.created_by, t.created_at, t.updated_at,
	a.name, a.email,
	c.name, c.email`

const taskJoins = `
FROM tasks t
LEFT JOIN users a ON a.id = t.assigned_to
LEFT JOIN users c ON c.id = t.created_by`

const insertTask = `
INSERT INTO tasks (title, description, status, priority, assigned_to, created_by)
VALUES ($1, $2, $3, $4, $5, $6)
RETURNING id`

type InsertTaskParams struct {
	Title       string
	Description string
	Status      Status
	Priority    Priority
	AssignedTo  pgtype.UUID
	CreatedBy   pgtype.UUID
}

func (q *Queries) InsertTask(ctx context.Context, arg InsertTaskParams) (pgtype.UUID, error) {
	var id pgtype.UUID

	err := q.db.QueryRow(ctx, insertTask,
		arg.Title,
		arg.Description,
		arg.Status,
		arg.Priority,
		arg.AssignedTo,
		arg.CreatedBy,
	).Scan(&id)

	return id, err
}

const taskByID = `
SELECT ` + taskColumns + taskJoins + `
WHERE t.id = $1`

func (q *Queries) TaskByID(ctx context.Context, id pgtype.UUID) (TaskRow, error) {
	return scanTask(q.db.QueryRow(ctx, taskByID, id))
}

// updateTask merges a field-level patch over the stored record, NULL
// arguments keep the current value. Assignment is special-cased so it can be
// cleared.
const updateTask = `
UPDATE tasks
SET title = COALESCE($2, title),
	description = COALESCE($3, description),
	status = COALESCE($4, status),
	priority = COALESCE($5, priority),
	assigned_to = CASE WHEN $6 THEN $7 ELSE assigned_to END,
	updated_at = now()
WHERE id = $1
RETURNING id`

type UpdateTaskParams struct {
	ID          pgtype.UUID
	Title       pgtype.Text
	Description pgtype.Text
	Status      pgtype.Text
	Priority    pgtype.Text
	SetAssignee bool
	AssignedTo  pgtype.UUID
}

func (q *Queries) UpdateTask(ctx context.Context, arg UpdateTaskParams) (pgtype.UUID, error) {
	var id pgtype.UUID

	err := q.db.QueryRow(ctx, updateTask,
		arg.ID,
		arg.Title,
		arg.Description,
		arg.Status,
		arg.Priority,
		arg.SetAssignee,
		arg.AssignedTo,
	).Scan(&id)

	return id, err
}

const deleteTask = `
DELETE FROM tasks
WHERE id = $1`

func (q *Queries) DeleteTask(ctx context.Context, id pgtype.UUID) (int64, error) {
	tag, err := q.db.Exec(ctx, deleteTask, id)
	if err != nil {
		return 0, err
	}

	return tag.RowsAffected(), nil
}

const listTasks = `
SELECT ` + taskColumns + taskJoins + `
ORDER BY t.created_at`

func (q *Queries) ListTasks(ctx context.Context) ([]TaskRow, error) {
	rows, err := q.db.Query(ctx, listTasks)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectTasks(rows)
}

const tasksByAssignee = `
SELECT ` + taskColumns + taskJoins + `
WHERE t.assigned_to = $1
ORDER BY t.created_at`

func (q *Queries) TasksByAssignee(ctx context.Context, assignedTo pgtype.UUID) ([]TaskRow, error) {
	rows, err := q.db.Query(ctx, tasksByAssignee, assignedTo)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectTasks(rows)
}

type scanner interface{ Scan(...interface{}) error }

func scanTask(row scanner) (TaskRow, error) {
	var r TaskRow

	err := row.Scan(
		&r.Task.ID,
		&r.Task.Title,
		&r.Task.Description,
		&r.Task.Status,
		&r.Task.Priority,
		&r.Task.AssignedTo,
		&r.Task.CreatedBy,
		&r.Task.CreatedAt,
		&r.Task.UpdatedAt,
		&r.AssigneeName,
		&r.AssigneeEmail,
		&r.CreatorName,
		&r.CreatorEmail,
	)

	return r, err
}

func collectTasks(rows interface {
	Next() bool
	Scan(...interface{}) error
	Err() error
}) ([]TaskRow, error) {
	var res []TaskRow

	for rows.Next() {
		r, err := scanTask(rows)
		if err != nil {
			return nil, err
		}

		res = append(res, r)
	}

	return res, rows.Err()
}
