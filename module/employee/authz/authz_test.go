package authz

import (
	"errors"
	"testing"

	usermodel "EMProject/module/user/model"
	"EMProject/tools/errs"
)

var (
	admin    = &usermodel.User{ID: "u-admin", Username: "root", IsStaff: true}
	employee = &usermodel.User{ID: "u-emp", Username: "worker"}
)

func TestStaffAllowedEverything(t *testing.T) {
	for _, res := range []Resource{Complaint, Attendance, Task, Salary, MessageRec, UserRec} {
		for _, act := range []Action{List, Create, Update, UpdateStatus, Complete, Delete} {
			if err := Allow(admin, res, act, "someone-else"); err != nil {
				t.Fatalf("staff denied %s/%s: %v", res, act, err)
			}
		}
	}
}

func TestNilActorUnauthenticated(t *testing.T) {
	if err := Allow(nil, Complaint, List, ""); !errors.Is(err, errs.ErrUnauthenticated) {
		t.Fatalf("err = %v, want unauthenticated", err)
	}
}

func TestEmployeeTable(t *testing.T) {
	cases := []struct {
		name    string
		res     Resource
		act     Action
		owner   string
		allowed bool
	}{
		{"complaint list", Complaint, List, "", true},
		{"complaint create", Complaint, Create, employee.ID, true},
		{"complaint status change", Complaint, UpdateStatus, employee.ID, false},
		{"complaint delete", Complaint, Delete, employee.ID, false},
		{"attendance create", Attendance, Create, employee.ID, true},
		{"attendance delete", Attendance, Delete, employee.ID, false},
		{"task list", Task, List, "", true},
		{"task create", Task, Create, "", false},
		{"task delete", Task, Delete, employee.ID, false},
		{"complete own task", Task, Complete, employee.ID, true},
		{"complete someone else's task", Task, Complete, "u-other", false},
		{"salary list", Salary, List, "", true},
		{"salary create (self-scoped)", Salary, Create, employee.ID, true},
		{"salary update", Salary, Update, employee.ID, false},
		{"message list", MessageRec, List, "", true},
		{"message create", MessageRec, Create, employee.ID, true},
		{"user list", UserRec, List, "", true},
		{"user create", UserRec, Create, "", false},
		{"user delete", UserRec, Delete, "", false},
	}
	for _, tc := range cases {
		err := Allow(employee, tc.res, tc.act, tc.owner)
		if tc.allowed && err != nil {
			t.Errorf("%s: denied: %v", tc.name, err)
		}
		if !tc.allowed {
			if err == nil {
				t.Errorf("%s: allowed, want forbidden", tc.name)
			} else if !errors.Is(err, errs.ErrForbidden) {
				t.Errorf("%s: err = %v, want forbidden", tc.name, err)
			}
		}
	}
}
