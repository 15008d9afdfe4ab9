package authz

import (
	usermodel "EMProject/module/user/model"
	"EMProject/tools/errs"
)

// Resources and actions for the capability check. One decision table
// instead of per-endpoint role branches.

type Resource string

const (
	Complaint  Resource = "complaint"
	Attendance Resource = "attendance"
	Task       Resource = "task"
	Salary     Resource = "salary"
	MessageRec Resource = "message"
	UserRec    Resource = "user"
)

type Action string

const (
	List         Action = "list"          // scoped to owner unless staff
	Create       Action = "create"        // ownership forced to the actor for non-staff
	Update       Action = "update"        // staff, plus per-resource owner carve-outs
	UpdateStatus Action = "update_status" // complaint status changes
	Complete     Action = "complete"      // task completion by assignee
	Delete       Action = "delete"
)

// Allow decides whether actor may perform action on a resource owned by
// ownerID (empty when ownership is not meaningful, e.g. list). A nil
// return means allowed.
func Allow(actor *usermodel.User, res Resource, act Action, ownerID string) error {
	if actor == nil {
		return errs.ErrUnauthenticated
	}
	if actor.IsStaff {
		return nil
	}

	owns := ownerID != "" && ownerID == actor.ID

	switch res {
	case Complaint:
		switch act {
		case List, Create:
			return nil
		case UpdateStatus, Update, Delete:
			return errs.ErrForbidden.WithMsg("You do not have permission to update the status.")
		}
	case Attendance:
		switch act {
		case List, Create:
			return nil
		case Delete:
			return errs.ErrForbidden.WithMsg("You cannot delete attendance records.")
		}
	case Task:
		switch act {
		case List:
			return nil
		case Complete:
			if owns {
				return nil
			}
			return errs.ErrForbidden.WithMsg("You do not have permission to update this task.")
		case Create, Update, Delete:
			return errs.ErrForbidden.WithMsg("You do not have permission to update this task.")
		}
	case Salary:
		switch act {
		case List, Create:
			// non-staff creation is ownership-forced by the handler
			return nil
		case Update, Delete:
			return errs.ErrForbidden
		}
	case MessageRec:
		switch act {
		case List, Create:
			return nil
		}
	case UserRec:
		switch act {
		case List:
			return nil
		case Create, Delete:
			return errs.ErrForbidden
		}
	}
	return errs.ErrForbidden
}
