package handler

import (
	"net/http"

	"EMProject/module/employee/store"
	msg "EMProject/module/message"
	usermodel "EMProject/module/user/model"
	userservice "EMProject/module/user/service"
	jwtlib "EMProject/tools/security"

	mid "EMProject/middleware/security"
	"EMProject/tools/errs"

	"github.com/gin-gonic/gin"
)

// Handler carries the dependencies of the REST surface. One instance,
// wired in main.
type Handler struct {
	Users   *userservice.Service
	Records *store.Store
	Msgs    msg.Store
	Jwt     jwtlib.Options
}

func New(users *userservice.Service, records *store.Store, msgs msg.Store, jwt jwtlib.Options) *Handler {
	return &Handler{Users: users, Records: records, Msgs: msgs, Jwt: jwt}
}

// Register mounts every REST route under /api. The ws route is mounted
// separately in main because it uses the soft auth middleware.
func (h *Handler) Register(r *gin.Engine, auth gin.HandlerFunc) {
	api := r.Group("/api")
	api.POST("/token/", h.Login)

	priv := api.Group("", auth)
	priv.GET("/users/", h.ListUsers)
	priv.POST("/users/", h.CreateUser)
	priv.DELETE("/users/:id", h.DeleteUser)

	priv.GET("/complaints/", h.ListComplaints)
	priv.POST("/complaints/", h.CreateComplaint)
	priv.PATCH("/complaints/:id", h.UpdateComplaint)
	priv.DELETE("/complaints/:id", h.DeleteComplaint)

	priv.GET("/attendance/", h.ListAttendance)
	priv.POST("/attendance/", h.CreateAttendance)
	priv.DELETE("/attendance/:id", h.DeleteAttendance)

	priv.GET("/tasks/", h.ListTasks)
	priv.POST("/tasks/", h.CreateTask)
	priv.PATCH("/tasks/:id", h.UpdateTask)
	priv.DELETE("/tasks/:id", h.DeleteTask)

	priv.GET("/salary/", h.ListSalaries)
	priv.POST("/salary/", h.CreateSalary)

	priv.GET("/messages/", h.ListMessages)
	priv.POST("/messages/", h.CreateMessage)
	priv.GET("/messages/conversation/:username", h.Conversation)
}

func currentUser(c *gin.Context) *usermodel.User { return mid.CurrentUser(c) }

// fail writes the structured error response for any taxonomy error.
func fail(c *gin.Context, err error) {
	c.JSON(errs.HTTPStatus(err), gin.H{"error": errs.ClientMsg(err)})
}

func badRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, gin.H{"error": msg})
}
