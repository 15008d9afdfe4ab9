package model

import "testing"

func TestSalaryNet(t *testing.T) {
	s := Salary{BasicSalary: 3000, Bonuses: 500, Deductions: 250.50}
	if got := s.Net(); got != 3249.50 {
		t.Fatalf("Net() = %v, want 3249.50", got)
	}
}

func TestStatusValidators(t *testing.T) {
	for _, ok := range []string{ComplaintPending, ComplaintResolved, ComplaintDismissed} {
		if !ValidComplaintStatus(ok) {
			t.Errorf("complaint status %q rejected", ok)
		}
	}
	if ValidComplaintStatus("Open") {
		t.Error("unknown complaint status accepted")
	}

	if !ValidAttendanceStatus(AttendancePresent) || ValidAttendanceStatus("Late") {
		t.Error("attendance validator wrong")
	}

	for _, ok := range []string{TaskPending, TaskInProgress, TaskCompleted, TaskCancelled} {
		if !ValidTaskStatus(ok) {
			t.Errorf("task status %q rejected", ok)
		}
	}
	if ValidTaskStatus("Done") {
		t.Error("unknown task status accepted")
	}

	if !ValidPriority(PriorityHigh) || ValidPriority("Urgent") {
		t.Error("priority validator wrong")
	}
}
