package handlers

import (
	"net/http"

	"toolshare/models"
	"toolshare/resolvers"
	"toolshare/services/messaging"
	"toolshare/utils"

	"github.com/gin-gonic/gin"
)

// MessageHandler serves /api/messages.
type MessageHandler struct {
	MessagingService messaging.MessagingService
	Resolver         *resolvers.Resolver
}

func NewMessageHandler(ms messaging.MessagingService, r *resolvers.Resolver) *MessageHandler {
	return &MessageHandler{MessagingService: ms, Resolver: r}
}

// SendMessageHandler handles POST /api/messages.
func (h *MessageHandler) SendMessageHandler(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req models.SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	msg, err := h.MessagingService.Send(c.Request.Context(), userID, req)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.Respond(c, http.StatusCreated, msg, "Message sent")
}

// ListMessagesHandler handles GET /api/messages/booking/:bookingId.
func (h *MessageHandler) ListMessagesHandler(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	page, limit := pageParams(c)

	result, err := h.MessagingService.List(c.Request.Context(), c.Param("bookingId"), userID, page, limit)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.Respond(c, http.StatusOK, result, "")
}

// ConversationsHandler handles GET /api/messages/conversations.
func (h *MessageHandler) ConversationsHandler(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	threads, err := h.MessagingService.Conversations(c.Request.Context(), userID)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	conversations, err := h.Resolver.Conversations(c.Request.Context(), threads)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.Respond(c, http.StatusOK, conversations, "")
}

// MarkReadHandler handles PUT /api/messages/booking/:bookingId/read.
func (h *MessageHandler) MarkReadHandler(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	n, err := h.MessagingService.MarkRead(c.Request.Context(), c.Param("bookingId"), userID)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.Respond(c, http.StatusOK, gin.H{"updated": n}, "")
}
