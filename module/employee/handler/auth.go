package handler

import (
	"net/http"

	"EMProject/module/employee/authz"
	"EMProject/module/employee/store"
	userservice "EMProject/module/user/service"
	jwtlib "EMProject/tools/security"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
)

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Login issues an access token plus the caller's role, matching the
// original token endpoint's response shape.
func (h *Handler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Username == "" || req.Password == "" {
		badRequest(c, "username and password are required")
		return
	}
	u, err := h.Users.Authenticate(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		fail(c, err)
		return
	}
	token, _, err := jwtlib.Generate(h.Jwt, u.ID, u.Role())
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"access": token, "role": u.Role()})
}

// ListUsers returns id+username for every user; any authenticated
// caller may list (the frontend needs it to pick message recipients).
func (h *Handler) ListUsers(c *gin.Context) {
	actor := currentUser(c)
	if err := authz.Allow(actor, authz.UserRec, authz.List, ""); err != nil {
		fail(c, err)
		return
	}
	users, err := h.Users.List(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	out := make([]gin.H, 0, len(users))
	for _, u := range users {
		out = append(out, gin.H{"id": u.ID, "username": u.Username})
	}
	c.JSON(http.StatusOK, out)
}

type createUserRequest struct {
	Username  string `json:"username"`
	Password  string `json:"password"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	IsStaff   bool   `json:"is_staff"`
}

func (h *Handler) CreateUser(c *gin.Context) {
	actor := currentUser(c)
	if err := authz.Allow(actor, authz.UserRec, authz.Create, ""); err != nil {
		fail(c, err)
		return
	}
	var req createUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body")
		return
	}
	u, err := h.Users.Create(c.Request.Context(), userservice.CreateParams{
		Username:  req.Username,
		Password:  req.Password,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		IsStaff:   req.IsStaff,
	})
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"id": u.ID, "username": u.Username})
}

// DeleteUser refuses while dependent records exist; no cascades.
func (h *Handler) DeleteUser(c *gin.Context) {
	actor := currentUser(c)
	if err := authz.Allow(actor, authz.UserRec, authz.Delete, ""); err != nil {
		fail(c, err)
		return
	}
	id := c.Param("id")
	dependents := map[string]bson.M{
		store.CollComplaints: {"employee_id": id},
		store.CollAttendance: {"employee_id": id},
		store.CollTasks:      {"$or": bson.A{bson.M{"assigned_to": id}, bson.M{"created_by": id}}},
		store.CollSalaries:   {"employee_id": id},
		"messages":           {"$or": bson.A{bson.M{"sender_id": id}, bson.M{"recipient_id": id}}},
	}
	if err := h.Users.Delete(c.Request.Context(), id, dependents); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": id})
}
