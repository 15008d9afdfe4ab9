package handler

import (
	"net/http"

	"EMProject/module/employee/authz"
	emodel "EMProject/module/employee/model"

	"github.com/gin-gonic/gin"
)

// ListComplaints: staff see everything, employees only their own.
func (h *Handler) ListComplaints(c *gin.Context) {
	actor := currentUser(c)
	if err := authz.Allow(actor, authz.Complaint, authz.List, ""); err != nil {
		fail(c, err)
		return
	}
	scope := actor.ID
	if actor.IsStaff {
		scope = ""
	}
	items, err := h.Records.ListComplaints(c.Request.Context(), scope)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

type createComplaintRequest struct {
	Subject     string `json:"subject"`
	Description string `json:"description"`
}

// CreateComplaint always files under the caller; status starts Pending.
func (h *Handler) CreateComplaint(c *gin.Context) {
	actor := currentUser(c)
	if err := authz.Allow(actor, authz.Complaint, authz.Create, actor.ID); err != nil {
		fail(c, err)
		return
	}
	var req createComplaintRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Subject == "" || req.Description == "" {
		badRequest(c, "subject and description are required")
		return
	}
	item := &emodel.Complaint{
		EmployeeID:  actor.ID,
		Subject:     req.Subject,
		Description: req.Description,
	}
	if err := h.Records.CreateComplaint(c.Request.Context(), item); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, item)
}

type updateComplaintRequest struct {
	Status string `json:"status"`
}

// UpdateComplaint changes the status; staff only.
func (h *Handler) UpdateComplaint(c *gin.Context) {
	actor := currentUser(c)
	item, err := h.Records.GetComplaint(c.Request.Context(), c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	if err := authz.Allow(actor, authz.Complaint, authz.UpdateStatus, item.EmployeeID); err != nil {
		fail(c, err)
		return
	}
	var req updateComplaintRequest
	if err := c.ShouldBindJSON(&req); err != nil || !emodel.ValidComplaintStatus(req.Status) {
		badRequest(c, "status must be one of Pending, Resolved, Dismissed")
		return
	}
	if err := h.Records.UpdateComplaintStatus(c.Request.Context(), item.ID, req.Status); err != nil {
		fail(c, err)
		return
	}
	item.Status = req.Status
	c.JSON(http.StatusOK, item)
}

func (h *Handler) DeleteComplaint(c *gin.Context) {
	actor := currentUser(c)
	if err := authz.Allow(actor, authz.Complaint, authz.Delete, ""); err != nil {
		fail(c, err)
		return
	}
	if err := h.Records.DeleteComplaint(c.Request.Context(), c.Param("id")); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": c.Param("id")})
}
