package handlers

import (
	"net/http"

	"corpquiz/services"

	"github.com/gin-gonic/gin"
)

type CompanyHandler struct {
	companyService    *services.CompanyService
	memberService     *services.MemberService
	invitationService *services.InvitationService
	requestService    *services.RequestService
	quizService       *services.QuizService
}

func NewCompanyHandler(
	companyService *services.CompanyService,
	memberService *services.MemberService,
	invitationService *services.InvitationService,
	requestService *services.RequestService,
	quizService *services.QuizService,
) *CompanyHandler {
	return &CompanyHandler{
		companyService:    companyService,
		memberService:     memberService,
		invitationService: invitationService,
		requestService:    requestService,
		quizService:       quizService,
	}
}

func (h *CompanyHandler) Create(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req services.CreateCompanyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	company, err := h.companyService.Create(c.Request.Context(), userID, &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, company)
}

func (h *CompanyHandler) List(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	skip, limit := pageParams(c)

	companies, total, err := h.companyService.List(c.Request.Context(), userID, skip, limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, newPage(c, companies, total, skip, limit))
}

func (h *CompanyHandler) Get(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	companyID, ok := pathID(c, "id")
	if !ok {
		return
	}

	company, err := h.companyService.GetByID(c.Request.Context(), userID, companyID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, company)
}

func (h *CompanyHandler) Update(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	companyID, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req services.UpdateCompanyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	company, err := h.companyService.Update(c.Request.Context(), userID, companyID, &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, company)
}

func (h *CompanyHandler) Delete(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	companyID, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.companyService.Delete(c.Request.Context(), userID, companyID); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Join files a membership request for the current user.
func (h *CompanyHandler) Join(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	companyID, ok := pathID(c, "id")
	if !ok {
		return
	}

	request, err := h.requestService.Create(c.Request.Context(), userID, companyID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, request)
}

// Invite creates an invitation for an outside user. Owner-only.
func (h *CompanyHandler) Invite(c *gin.Context) {
	ownerID, ok := currentUserID(c)
	if !ok {
		return
	}
	companyID, ok := pathID(c, "id")
	if !ok {
		return
	}
	invitedUserID, ok := pathID(c, "user_id")
	if !ok {
		return
	}

	invitation, err := h.invitationService.Create(c.Request.Context(), ownerID, companyID, invitedUserID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, invitation)
}

func (h *CompanyHandler) Leave(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	companyID, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.memberService.Leave(c.Request.Context(), userID, companyID); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *CompanyHandler) Members(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	companyID, ok := pathID(c, "id")
	if !ok {
		return
	}
	skip, limit := pageParams(c)

	members, total, err := h.memberService.ListMembers(c.Request.Context(), userID, companyID, skip, limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, newPage(c, members, total, skip, limit))
}

func (h *CompanyHandler) Admins(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	companyID, ok := pathID(c, "id")
	if !ok {
		return
	}
	skip, limit := pageParams(c)

	admins, total, err := h.memberService.ListAdmins(c.Request.Context(), userID, companyID, skip, limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, newPage(c, admins, total, skip, limit))
}

func (h *CompanyHandler) RemoveMember(c *gin.Context) {
	ownerID, ok := currentUserID(c)
	if !ok {
		return
	}
	companyID, ok := pathID(c, "id")
	if !ok {
		return
	}
	memberUserID, ok := pathID(c, "user_id")
	if !ok {
		return
	}

	if err := h.memberService.RemoveMember(c.Request.Context(), ownerID, companyID, memberUserID); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *CompanyHandler) AppointAdmin(c *gin.Context) {
	ownerID, ok := currentUserID(c)
	if !ok {
		return
	}
	companyID, ok := pathID(c, "id")
	if !ok {
		return
	}
	userID, ok := pathID(c, "user_id")
	if !ok {
		return
	}

	if err := h.memberService.AppointAdmin(c.Request.Context(), ownerID, companyID, userID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Admin appointed"})
}

func (h *CompanyHandler) RemoveAdmin(c *gin.Context) {
	ownerID, ok := currentUserID(c)
	if !ok {
		return
	}
	companyID, ok := pathID(c, "id")
	if !ok {
		return
	}
	userID, ok := pathID(c, "user_id")
	if !ok {
		return
	}

	if err := h.memberService.RemoveAdmin(c.Request.Context(), ownerID, companyID, userID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Admin removed"})
}

// Quizzes lists the company's quizzes for members.
func (h *CompanyHandler) Quizzes(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	companyID, ok := pathID(c, "id")
	if !ok {
		return
	}
	skip, limit := pageParams(c)

	quizzes, total, err := h.quizService.ListByCompany(c.Request.Context(), userID, companyID, skip, limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, newPage(c, quizzes, total, skip, limit))
}

// Invitations lists invitations sent by the current user as an owner.
func (h *CompanyHandler) SentInvitations(c *gin.Context) {
	ownerID, ok := currentUserID(c)
	if !ok {
		return
	}
	skip, limit := pageParams(c)

	invitations, total, err := h.invitationService.ListSent(c.Request.Context(), ownerID, skip, limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, newPage(c, invitations, total, skip, limit))
}

// ReceivedRequests lists join requests received by the current user as an
// owner.
func (h *CompanyHandler) ReceivedRequests(c *gin.Context) {
	ownerID, ok := currentUserID(c)
	if !ok {
		return
	}
	skip, limit := pageParams(c)

	requests, total, err := h.requestService.ListReceived(c.Request.Context(), ownerID, skip, limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, newPage(c, requests, total, skip, limit))
}
