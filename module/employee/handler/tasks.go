package handler

import (
	"net/http"
	"time"

	"EMProject/module/employee/authz"
	emodel "EMProject/module/employee/model"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
)

func (h *Handler) ListTasks(c *gin.Context) {
	actor := currentUser(c)
	if err := authz.Allow(actor, authz.Task, authz.List, ""); err != nil {
		fail(c, err)
		return
	}
	scope := actor.ID
	if actor.IsStaff {
		scope = ""
	}
	items, err := h.Records.ListTasks(c.Request.Context(), scope)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

type createTaskRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	AssignedTo  string `json:"assigned_to"`
	Priority    string `json:"priority"`
	DueDate     string `json:"due_date"`
}

// CreateTask is staff-only; due date must not be in the past.
func (h *Handler) CreateTask(c *gin.Context) {
	actor := currentUser(c)
	if err := authz.Allow(actor, authz.Task, authz.Create, ""); err != nil {
		fail(c, err)
		return
	}
	var req createTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Title == "" || req.AssignedTo == "" {
		badRequest(c, "title and assigned_to are required")
		return
	}
	if req.Priority == "" {
		req.Priority = emodel.PriorityMedium
	}
	if !emodel.ValidPriority(req.Priority) {
		badRequest(c, "priority must be Low, Medium or High")
		return
	}
	due, err := time.Parse("2006-01-02", req.DueDate)
	if err != nil {
		badRequest(c, "due_date must be YYYY-MM-DD")
		return
	}
	today, _ := time.Parse("2006-01-02", time.Now().UTC().Format("2006-01-02"))
	if due.Before(today) {
		badRequest(c, "Due date cannot be in the past.")
		return
	}
	assignee, err := h.Users.ByID(c.Request.Context(), req.AssignedTo)
	if err != nil {
		fail(c, err)
		return
	}
	item := &emodel.Task{
		Title:              req.Title,
		Description:        req.Description,
		AssignedTo:         assignee.ID,
		AssignedToUsername: assignee.Username,
		Status:             emodel.TaskPending,
		Priority:           req.Priority,
		DueDate:            req.DueDate,
		CreatedBy:          actor.ID,
	}
	if err := h.Records.CreateTask(c.Request.Context(), item); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, item)
}

type updateTaskRequest struct {
	Status    *string `json:"status"`
	Priority  *string `json:"priority"`
	Completed *bool   `json:"completed"`
}

// UpdateTask: staff may change anything; the assignee may update status
// and completion on their own task.
func (h *Handler) UpdateTask(c *gin.Context) {
	actor := currentUser(c)
	item, err := h.Records.GetTask(c.Request.Context(), c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	var req updateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body")
		return
	}

	fields := bson.M{}
	if req.Status != nil {
		if !emodel.ValidTaskStatus(*req.Status) {
			badRequest(c, "invalid status")
			return
		}
		fields["status"] = *req.Status
	}
	if req.Completed != nil {
		fields["completed"] = *req.Completed
	}
	if req.Priority != nil {
		if !emodel.ValidPriority(*req.Priority) {
			badRequest(c, "invalid priority")
			return
		}
		fields["priority"] = *req.Priority
	}
	if len(fields) == 0 {
		badRequest(c, "nothing to update")
		return
	}

	// The assignee carve-out covers status/completed on their own task,
	// not priority changes.
	action := authz.Update
	_, touchedPriority := fields["priority"]
	if !touchedPriority && actor.ID == item.AssignedTo {
		action = authz.Complete
	}
	if err := authz.Allow(actor, authz.Task, action, item.AssignedTo); err != nil {
		fail(c, err)
		return
	}

	if err := h.Records.UpdateTask(c.Request.Context(), item.ID, fields); err != nil {
		fail(c, err)
		return
	}
	updated, err := h.Records.GetTask(c.Request.Context(), item.ID)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (h *Handler) DeleteTask(c *gin.Context) {
	actor := currentUser(c)
	if err := authz.Allow(actor, authz.Task, authz.Delete, ""); err != nil {
		fail(c, err)
		return
	}
	if err := h.Records.DeleteTask(c.Request.Context(), c.Param("id")); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": c.Param("id")})
}
