package internal

// Operation enumerates the actions gated by the authorization policy.
type Operation uint8

const (
	OperationCreateTask Operation = iota
	OperationListAllTasks
	OperationListOwnTasks
	OperationUpdateTask
	OperationDeleteTask
	OperationListUsers
	OperationUpdateRole
)

// Actor is the authenticated identity performing an operation.
type Actor struct {
	ID   string
	Role Role
}

// CanPerform decides whether the actor may run the operation, optionally
// against a target task. Rules are evaluated in a fixed precedence:
// authentication first, then admin-only operations, then self-scoped ones.
func CanPerform(actor Actor, op Operation, target *Task) error {
	if actor.ID == "" {
		return NewErrorf(ErrorCodeUnauthenticated, "authentication required")
	}

	switch op {
	case OperationCreateTask, OperationListAllTasks, OperationDeleteTask, OperationListUsers:
		if actor.Role != RoleAdmin {
			return NewErrorf(ErrorCodeForbidden, "forbidden")
		}

		return nil
	case OperationListOwnTasks, OperationUpdateRole:
		return nil
	case OperationUpdateTask:
		if actor.Role == RoleAdmin {
			return nil
		}

		// An unassigned task can be updated by no non-admin.
		if target != nil && target.AssignedTo != nil && target.AssignedTo.ID == actor.ID {
			return nil
		}

		return NewErrorf(ErrorCodeForbidden, "forbidden")
	}

	return NewErrorf(ErrorCodeForbidden, "unsupported operation: %d", op)
}
