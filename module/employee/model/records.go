package model

import "time"

// Record models for the non-core CRUD services. Status/priority values
// mirror the original backend's choice lists exactly.

const (
	ComplaintPending   = "Pending"
	ComplaintResolved  = "Resolved"
	ComplaintDismissed = "Dismissed"
)

type Complaint struct {
	ID          string    `bson:"_id" json:"id"`
	EmployeeID  string    `bson:"employee_id" json:"employee"`
	Subject     string    `bson:"subject" json:"subject"`
	Description string    `bson:"description" json:"description"`
	Status      string    `bson:"status" json:"status"`
	CreateTime  time.Time `bson:"created_at" json:"created_at"`
}

func ValidComplaintStatus(s string) bool {
	return s == ComplaintPending || s == ComplaintResolved || s == ComplaintDismissed
}

const (
	AttendancePresent = "Present"
	AttendanceAbsent  = "Absent"
)

type Attendance struct {
	ID           string `bson:"_id" json:"id"`
	EmployeeID   string `bson:"employee_id" json:"employee"`
	EmployeeName string `bson:"-" json:"employee_name,omitempty"`
	Date         string `bson:"date" json:"date"` // YYYY-MM-DD
	Status       string `bson:"status" json:"status"`
}

func ValidAttendanceStatus(s string) bool {
	return s == AttendancePresent || s == AttendanceAbsent
}

const (
	TaskPending    = "Pending"
	TaskInProgress = "In Progress"
	TaskCompleted  = "Completed"
	TaskCancelled  = "Cancelled"
)

const (
	PriorityLow    = "Low"
	PriorityMedium = "Medium"
	PriorityHigh   = "High"
)

type Task struct {
	ID                 string    `bson:"_id" json:"id"`
	Title              string    `bson:"title" json:"title"`
	Description        string    `bson:"description" json:"description"`
	AssignedTo         string    `bson:"assigned_to" json:"assigned_to"`
	AssignedToUsername string    `bson:"assigned_to_username" json:"assigned_to_username"`
	Status             string    `bson:"status" json:"status"`
	Priority           string    `bson:"priority" json:"priority"`
	DueDate            string    `bson:"due_date" json:"due_date"` // YYYY-MM-DD
	CreateTime         time.Time `bson:"created_at" json:"created_at"`
	UpdateTime         time.Time `bson:"updated_at" json:"updated_at"`
	CreatedBy          string    `bson:"created_by" json:"-"`
	Completed          bool      `bson:"completed" json:"completed"`
}

func ValidTaskStatus(s string) bool {
	switch s {
	case TaskPending, TaskInProgress, TaskCompleted, TaskCancelled:
		return true
	}
	return false
}

func ValidPriority(s string) bool {
	return s == PriorityLow || s == PriorityMedium || s == PriorityHigh
}

type Salary struct {
	ID           string  `bson:"_id" json:"id"`
	EmployeeID   string  `bson:"employee_id" json:"employee"`
	EmployeeName string  `bson:"-" json:"employee_name,omitempty"`
	BasicSalary  float64 `bson:"basic_salary" json:"basic_salary"`
	Bonuses      float64 `bson:"bonuses" json:"bonuses"`
	Deductions   float64 `bson:"deductions" json:"deductions"`
	NetSalary    float64 `bson:"net_salary" json:"net_salary"`
	Date         string  `bson:"date" json:"date"` // YYYY-MM-DD
}

// Net computes the stored net amount; always written server-side.
func (s *Salary) Net() float64 {
	return s.BasicSalary + s.Bonuses - s.Deductions
}
