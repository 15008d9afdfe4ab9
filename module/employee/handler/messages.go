package handler

import (
	"errors"
	"net/http"

	"EMProject/module/employee/authz"
	msg "EMProject/module/message"
	"EMProject/tools/errs"

	"github.com/gin-gonic/gin"
)

// ListMessages returns everything the caller sent or received, most
// recent first.
func (h *Handler) ListMessages(c *gin.Context) {
	actor := currentUser(c)
	if err := authz.Allow(actor, authz.MessageRec, authz.List, ""); err != nil {
		fail(c, err)
		return
	}
	items, err := h.Msgs.ForUser(c.Request.Context(), actor.ID)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

type createMessageRequest struct {
	Recipient string `json:"recipient"`
	Content   string `json:"content"`
}

// CreateMessage is the REST twin of the gateway frame: persisted the
// same way, but with no live push.
func (h *Handler) CreateMessage(c *gin.Context) {
	actor := currentUser(c)
	if err := authz.Allow(actor, authz.MessageRec, authz.Create, actor.ID); err != nil {
		fail(c, err)
		return
	}
	var req createMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Recipient == "" || req.Content == "" {
		badRequest(c, "Recipient and content are required")
		return
	}
	rec, err := h.Users.ByUsername(c.Request.Context(), req.Recipient)
	if err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			fail(c, errs.ErrNotFound.WithMsg("Recipient does not exist"))
			return
		}
		fail(c, err)
		return
	}
	m, err := h.Msgs.Append(c.Request.Context(),
		msg.Party{ID: actor.ID, Username: actor.Username},
		msg.Party{ID: rec.ID, Username: rec.Username},
		req.Content,
	)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, m)
}

// Conversation returns the full two-party history, descending.
func (h *Handler) Conversation(c *gin.Context) {
	actor := currentUser(c)
	if err := authz.Allow(actor, authz.MessageRec, authz.List, ""); err != nil {
		fail(c, err)
		return
	}
	other, err := h.Users.ByUsername(c.Request.Context(), c.Param("username"))
	if err != nil {
		fail(c, err)
		return
	}
	items, err := h.Msgs.Conversation(c.Request.Context(), actor.ID, other.ID)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}
