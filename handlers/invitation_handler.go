package handlers

import (
	"net/http"

	"corpquiz/services"

	"github.com/gin-gonic/gin"
)

type InvitationHandler struct {
	invitationService *services.InvitationService
}

func NewInvitationHandler(invitationService *services.InvitationService) *InvitationHandler {
	return &InvitationHandler{invitationService: invitationService}
}

// Mine lists invitations addressed to the current user.
func (h *InvitationHandler) Mine(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	skip, limit := pageParams(c)

	invitations, total, err := h.invitationService.ListMine(c.Request.Context(), userID, skip, limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, newPage(c, invitations, total, skip, limit))
}

func (h *InvitationHandler) Accept(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	invitationID, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.invitationService.Accept(c.Request.Context(), userID, invitationID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Invitation accepted"})
}

func (h *InvitationHandler) Decline(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	invitationID, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.invitationService.Decline(c.Request.Context(), userID, invitationID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Invitation declined"})
}

func (h *InvitationHandler) Cancel(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	invitationID, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.invitationService.Cancel(c.Request.Context(), userID, invitationID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Invitation cancelled"})
}
