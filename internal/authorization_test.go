package internal_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/sanLimbu/taskboard-api/internal"
)

func TestCanPerform(t *testing.T) {
	t.Parallel()

	admin := internal.Actor{ID: "2b9eb83f-11b2-4c95-b21f-3dbe16e66b99", Role: internal.RoleAdmin}
	member := internal.Actor{ID: "68b4f177-0af8-46a3-ada0-2a80a0866e3e", Role: internal.RoleUser}
	other := internal.Actor{ID: "b2cf7a51-d7a9-40aa-a1f8-2f211b2f1e64", Role: internal.RoleUser}

	assigned := internal.Task{
		ID: "5f9ab7f0-2c94-4a9a-8f27-2460bb3f4e2b",
		AssignedTo: &internal.UserRef{
			ID: member.ID,
		},
	}

	unassigned := internal.Task{
		ID: "0c7a74eb-5dca-4759-bd6c-f303b9fa69c7",
	}

	tests := []struct {
		name     string
		actor    internal.Actor
		op       internal.Operation
		target   *internal.Task
		wantCode internal.ErrorCode
	}{
		{
			name:     "unauthenticated is rejected before anything else",
			actor:    internal.Actor{Role: internal.RoleAdmin},
			op:       internal.OperationListOwnTasks,
			wantCode: internal.ErrorCodeUnauthenticated,
		},
		{
			name:  "admin creates tasks",
			actor: admin,
			op:    internal.OperationCreateTask,
		},
		{
			name:     "user can't create tasks",
			actor:    member,
			op:       internal.OperationCreateTask,
			wantCode: internal.ErrorCodeForbidden,
		},
		{
			name:  "admin lists all tasks",
			actor: admin,
			op:    internal.OperationListAllTasks,
		},
		{
			name:     "user can't list all tasks",
			actor:    member,
			op:       internal.OperationListAllTasks,
			wantCode: internal.ErrorCodeForbidden,
		},
		{
			name:  "user lists own tasks",
			actor: member,
			op:    internal.OperationListOwnTasks,
		},
		{
			name:  "admin lists own tasks",
			actor: admin,
			op:    internal.OperationListOwnTasks,
		},
		{
			name:   "admin updates any task",
			actor:  admin,
			op:     internal.OperationUpdateTask,
			target: &unassigned,
		},
		{
			name:   "assignee updates their task",
			actor:  member,
			op:     internal.OperationUpdateTask,
			target: &assigned,
		},
		{
			name:     "non-assignee can't update",
			actor:    other,
			op:       internal.OperationUpdateTask,
			target:   &assigned,
			wantCode: internal.ErrorCodeForbidden,
		},
		{
			name:     "unassigned task is admin-only to update",
			actor:    member,
			op:       internal.OperationUpdateTask,
			target:   &unassigned,
			wantCode: internal.ErrorCodeForbidden,
		},
		{
			name:  "admin deletes tasks",
			actor: admin,
			op:    internal.OperationDeleteTask,
		},
		{
			name:     "assignee can't delete their own task",
			actor:    member,
			op:       internal.OperationDeleteTask,
			target:   &assigned,
			wantCode: internal.ErrorCodeForbidden,
		},
		{
			name:  "admin lists users",
			actor: admin,
			op:    internal.OperationListUsers,
		},
		{
			name:     "user can't list users",
			actor:    member,
			op:       internal.OperationListUsers,
			wantCode: internal.ErrorCodeForbidden,
		},
		{
			name:  "user updates own role",
			actor: member,
			op:    internal.OperationUpdateRole,
		},
	}

	for _, tt := range tests {
		tt := tt

		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := internal.CanPerform(tt.actor, tt.op, tt.target)
			if tt.wantCode == internal.ErrorCodeUnknown {
				require.NoError(t, err)
				return
			}

			var ierr *internal.Error
			require.ErrorAs(t, err, &ierr)
			require.Equal(t, tt.wantCode, ierr.Code())
		})
	}
}
