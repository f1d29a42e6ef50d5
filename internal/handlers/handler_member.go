package handlers

import (
	"net/http"

	portssvc "github.com/SscSPs/enterprise_ledger/internal/core/ports/services"
	"github.com/SscSPs/enterprise_ledger/internal/dto"
	"github.com/SscSPs/enterprise_ledger/internal/middleware"
	"github.com/gin-gonic/gin"
)

type memberHandler struct {
	memberService portssvc.MemberSvc
}

func registerMemberRoutes(rg *gin.RouterGroup, memberService portssvc.MemberSvc) {
	h := &memberHandler{memberService: memberService}

	members := rg.Group("/members")
	{
		members.GET("", h.listMembers)
		members.POST("", h.addMember)
		members.POST("/fast-add", h.fastAddMember)
	}
}

// listMembers godoc
// @Summary List team members
// @Tags members
// @Produce json
// @Success 200 {object} dto.ListMembersResponse
// @Security BearerAuth
// @Router /enterprise/members [get]
func (h *memberHandler) listMembers(c *gin.Context) {
	scope, ok := scopeFromContext(c)
	if !ok {
		return
	}
	members := h.memberService.ListMembers(c.Request.Context(), scope.store, scope.orgID)
	c.JSON(http.StatusOK, dto.ToListMembersResponse(members))
}

// addMember godoc
// @Summary Add a registered user to the team
// @Description The email must belong to an existing user. Adding an existing member is reported, not treated as an error.
// @Tags members
// @Accept json
// @Produce json
// @Param member body dto.AddMemberRequest true "Member"
// @Success 200 {object} MessageResponse "Already a member"
// @Success 201 {object} MessageResponse
// @Failure 404 {object} ErrorResponse "No user with that email"
// @Security BearerAuth
// @Router /enterprise/members [post]
func (h *memberHandler) addMember(c *gin.Context) {
	scope, ok := scopeFromContext(c)
	if !ok {
		return
	}
	var req dto.AddMemberRequest
	if !bindJSON(c, &req) {
		return
	}

	outcome, err := h.memberService.AddMemberByEmail(c.Request.Context(), scope.store, scope.orgID, req)
	if err != nil {
		respondError(c, err, "Failed to add team member")
		return
	}

	sess, _ := middleware.GetSession(c)
	if outcome == portssvc.MemberAlreadyExists {
		if sess != nil {
			sess.AddFlash("info", "User is already a member.")
		}
		c.JSON(http.StatusOK, MessageResponse{Message: "User is already a member"})
		return
	}
	if sess != nil {
		sess.AddFlash("success", "Team member added.")
	}
	c.JSON(http.StatusCreated, MessageResponse{Message: "Team member added"})
}

// fastAddMember godoc
// @Summary Add a member by name and email
// @Description Creates a bare profile when the email is unknown, then adds it to the team.
// @Tags members
// @Accept json
// @Produce json
// @Param member body dto.FastAddMemberRequest true "Member"
// @Success 201 {object} dto.MemberResponse
// @Failure 400 {object} ErrorResponse
// @Security BearerAuth
// @Router /enterprise/members/fast-add [post]
func (h *memberHandler) fastAddMember(c *gin.Context) {
	scope, ok := scopeFromContext(c)
	if !ok {
		return
	}
	var req dto.FastAddMemberRequest
	if !bindJSON(c, &req) {
		return
	}
	member, err := h.memberService.FastAddMember(c.Request.Context(), scope.store, scope.orgID, req)
	if err != nil {
		respondError(c, err, "Failed to add team member")
		return
	}
	c.JSON(http.StatusCreated, dto.ToMemberResponse(*member))
}
