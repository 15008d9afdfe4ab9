package handler

import (
	"net/http"
	"time"

	"EMProject/module/employee/authz"
	emodel "EMProject/module/employee/model"

	"github.com/gin-gonic/gin"
)

func (h *Handler) ListAttendance(c *gin.Context) {
	actor := currentUser(c)
	if err := authz.Allow(actor, authz.Attendance, authz.List, ""); err != nil {
		fail(c, err)
		return
	}
	scope := actor.ID
	if actor.IsStaff {
		scope = ""
	}
	items, err := h.Records.ListAttendance(c.Request.Context(), scope)
	if err != nil {
		fail(c, err)
		return
	}
	// employee_name shape from the original serializer
	names := map[string]string{}
	for i := range items {
		id := items[i].EmployeeID
		if _, ok := names[id]; !ok {
			if u, err := h.Users.ByID(c.Request.Context(), id); err == nil {
				names[id] = u.DisplayName()
			} else {
				names[id] = id
			}
		}
		items[i].EmployeeName = names[id]
	}
	c.JSON(http.StatusOK, items)
}

type createAttendanceRequest struct {
	Status string `json:"status"`
}

// CreateAttendance marks the caller for today only; one row per day.
func (h *Handler) CreateAttendance(c *gin.Context) {
	actor := currentUser(c)
	if err := authz.Allow(actor, authz.Attendance, authz.Create, actor.ID); err != nil {
		fail(c, err)
		return
	}
	var req createAttendanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body")
		return
	}
	if req.Status == "" {
		req.Status = emodel.AttendancePresent
	}
	if !emodel.ValidAttendanceStatus(req.Status) {
		badRequest(c, "status must be Present or Absent")
		return
	}
	item := &emodel.Attendance{
		EmployeeID: actor.ID,
		Date:       time.Now().UTC().Format("2006-01-02"),
		Status:     req.Status,
	}
	if err := h.Records.CreateAttendance(c.Request.Context(), item); err != nil {
		fail(c, err)
		return
	}
	item.EmployeeName = actor.DisplayName()
	c.JSON(http.StatusCreated, item)
}

func (h *Handler) DeleteAttendance(c *gin.Context) {
	actor := currentUser(c)
	if err := authz.Allow(actor, authz.Attendance, authz.Delete, ""); err != nil {
		fail(c, err)
		return
	}
	if err := h.Records.DeleteAttendance(c.Request.Context(), c.Param("id")); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": c.Param("id")})
}
