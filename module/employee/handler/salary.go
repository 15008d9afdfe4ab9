package handler

import (
	"net/http"

	"EMProject/module/employee/authz"
	emodel "EMProject/module/employee/model"

	"github.com/gin-gonic/gin"
)

func (h *Handler) ListSalaries(c *gin.Context) {
	actor := currentUser(c)
	if err := authz.Allow(actor, authz.Salary, authz.List, ""); err != nil {
		fail(c, err)
		return
	}
	scope := actor.ID
	if actor.IsStaff {
		scope = ""
	}
	items, err := h.Records.ListSalaries(c.Request.Context(), scope)
	if err != nil {
		fail(c, err)
		return
	}
	names := map[string]string{}
	for i := range items {
		id := items[i].EmployeeID
		if _, ok := names[id]; !ok {
			if u, err := h.Users.ByID(c.Request.Context(), id); err == nil {
				names[id] = u.Username
			} else {
				names[id] = id
			}
		}
		items[i].EmployeeName = names[id]
	}
	c.JSON(http.StatusOK, items)
}

type createSalaryRequest struct {
	Employee    string  `json:"employee"`
	BasicSalary float64 `json:"basic_salary"`
	Bonuses     float64 `json:"bonuses"`
	Deductions  float64 `json:"deductions"`
	Date        string  `json:"date"`
}

// CreateSalary computes net server-side. Staff may record for anyone;
// a non-staff caller's record is forced onto themselves, matching the
// original backend.
func (h *Handler) CreateSalary(c *gin.Context) {
	actor := currentUser(c)
	if err := authz.Allow(actor, authz.Salary, authz.Create, actor.ID); err != nil {
		fail(c, err)
		return
	}
	var req createSalaryRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Date == "" {
		badRequest(c, "invalid request body")
		return
	}
	employeeID := actor.ID
	if actor.IsStaff && req.Employee != "" {
		u, err := h.Users.ByID(c.Request.Context(), req.Employee)
		if err != nil {
			fail(c, err)
			return
		}
		employeeID = u.ID
	}
	item := &emodel.Salary{
		EmployeeID:  employeeID,
		BasicSalary: req.BasicSalary,
		Bonuses:     req.Bonuses,
		Deductions:  req.Deductions,
		Date:        req.Date,
	}
	if err := h.Records.CreateSalary(c.Request.Context(), item); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, item)
}
