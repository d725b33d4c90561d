package db

import (
	"github.com/jackc/pgx/v5/pgtype"
)

type Status string

const (
	StatusPending    Status = "Pending"
	StatusInProgress Status = "In Progress"
	StatusCompleted  Status = "Completed"
)

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

type Users struct {
	ID               pgtype.UUID
	Name             string
	Email            string
	PasswordHash     string
	Role             pgtype.Text
	ResetToken       pgtype.Text
	ResetTokenExpiry pgtype.Timestamptz
	CreatedAt        pgtype.Timestamptz
	UpdatedAt        pgtype.Timestamptz
}

type Tasks struct {
	ID          pgtype.UUID
	Title       string
	Description string
	Status      Status
	Priority    Priority
	AssignedTo  pgtype.UUID
	CreatedBy   pgtype.UUID
	CreatedAt   pgtype.Timestamptz
	UpdatedAt   pgtype.Timestamptz
}
