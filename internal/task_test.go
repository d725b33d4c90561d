package internal_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/sanLimbu/taskboard-api/internal"
)

func TestStatus_Next(t *testing.T) {
	t.Parallel()

	require.Equal(t, internal.StatusInProgress, internal.StatusPending.Next())
	require.Equal(t, internal.StatusCompleted, internal.StatusInProgress.Next())
	require.Equal(t, internal.StatusPending, internal.StatusCompleted.Next())
}

func TestStatus_String(t *testing.T) {
	t.Parallel()

	require.Equal(t, "Pending", internal.StatusPending.String())
	require.Equal(t, "In Progress", internal.StatusInProgress.String())
	require.Equal(t, "Completed", internal.StatusCompleted.String())
	require.Equal(t, "invalid", internal.Status(9).String())
}

func TestParseStatus(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   string
		want    internal.Status
		withErr bool
	}{
		{
			name:  "Pending",
			input: "Pending",
			want:  internal.StatusPending,
		},
		{
			name:  "In Progress",
			input: "In Progress",
			want:  internal.StatusInProgress,
		},
		{
			name:  "Completed",
			input: "Completed",
			want:  internal.StatusCompleted,
		},
		{
			name:    "unknown value",
			input:   "Done",
			withErr: true,
		},
		{
			name:    "wrong case",
			input:   "pending",
			withErr: true,
		},
	}

	for _, tt := range tests {
		tt := tt

		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := internal.ParseStatus(tt.input)
			if tt.withErr {
				require.Error(t, err)

				var ierr *internal.Error
				require.ErrorAs(t, err, &ierr)
				require.Equal(t, internal.ErrorCodeInvalidArgument, ierr.Code())

				return
			}

			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestParsePriority(t *testing.T) {
	t.Parallel()

	require.Equal(t, internal.PriorityLow, internal.ParsePriority("low"))
	require.Equal(t, internal.PriorityMedium, internal.ParsePriority("medium"))
	require.Equal(t, internal.PriorityHigh, internal.ParsePriority("high"))

	// Unrecognized values fall back to medium instead of failing.
	require.Equal(t, internal.PriorityMedium, internal.ParsePriority(""))
	require.Equal(t, internal.PriorityMedium, internal.ParsePriority("urgent"))
	require.Equal(t, internal.PriorityMedium, internal.ParsePriority("HIGH"))
}

func TestCreateTaskParams_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   internal.CreateTaskParams
		withErr bool
	}{
		{
			name: "OK: minimal",
			input: internal.CreateTaskParams{
				Title:     "write report",
				CreatedBy: "4e3e11f8-b92b-46f0-9bb5-7c0c8a36a906",
			},
		},
		{
			name: "OK: assigned",
			input: internal.CreateTaskParams{
				Title:      "write report",
				Priority:   internal.PriorityHigh,
				AssignedTo: "0bf63086-14b6-4b2c-bc85-fd42e0e11807",
				CreatedBy:  "4e3e11f8-b92b-46f0-9bb5-7c0c8a36a906",
			},
		},
		{
			name: "ERR: missing title",
			input: internal.CreateTaskParams{
				CreatedBy: "4e3e11f8-b92b-46f0-9bb5-7c0c8a36a906",
			},
			withErr: true,
		},
		{
			name: "ERR: missing creator",
			input: internal.CreateTaskParams{
				Title: "write report",
			},
			withErr: true,
		},
		{
			name: "ERR: malformed assignee id",
			input: internal.CreateTaskParams{
				Title:      "write report",
				AssignedTo: "not-an-id",
				CreatedBy:  "4e3e11f8-b92b-46f0-9bb5-7c0c8a36a906",
			},
			withErr: true,
		},
	}

	for _, tt := range tests {
		tt := tt

		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := tt.input.Validate()
			if tt.withErr {
				require.Error(t, err)
				return
			}

			require.NoError(t, err)
		})
	}
}

func TestUpdateTaskParams_Validate(t *testing.T) {
	t.Parallel()

	newPtrStr := func(s string) *string {
		return &s
	}

	status := internal.StatusCompleted
	badStatus := internal.Status(9)

	tests := []struct {
		name    string
		input   internal.UpdateTaskParams
		withErr bool
	}{
		{
			name:  "OK: empty patch",
			input: internal.UpdateTaskParams{},
		},
		{
			name: "OK: status only",
			input: internal.UpdateTaskParams{
				Status: &status,
			},
		},
		{
			name: "OK: clearing assignment",
			input: internal.UpdateTaskParams{
				AssignedTo: newPtrStr(""),
			},
		},
		{
			name: "ERR: blank title",
			input: internal.UpdateTaskParams{
				Title: newPtrStr(""),
			},
			withErr: true,
		},
		{
			name: "ERR: unknown status",
			input: internal.UpdateTaskParams{
				Status: &badStatus,
			},
			withErr: true,
		},
		{
			name: "ERR: malformed assignee id",
			input: internal.UpdateTaskParams{
				AssignedTo: newPtrStr("not-an-id"),
			},
			withErr: true,
		},
	}

	for _, tt := range tests {
		tt := tt

		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := tt.input.Validate()
			if tt.withErr {
				require.Error(t, err)
				return
			}

			require.NoError(t, err)
		})
	}
}
