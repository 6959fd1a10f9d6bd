package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"banking/internal/application/user/dto"
	"banking/internal/shared/constants"
	"banking/internal/shared/id"
	"banking/internal/shared/logger"
	"banking/internal/shared/utils"
)

// UserHandler serves the back-office user endpoints
type UserHandler struct {
	service userAdminService
	logger  logger.Interface
}

func NewUserHandler(service userAdminService, logger logger.Interface) *UserHandler {
	return &UserHandler{
		service: service,
		logger:  logger,
	}
}

// ListUsers handles GET /admin/users
func (h *UserHandler) ListUsers(c *gin.Context) {
	var req dto.ListUsersRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		utils.ErrorResponseWithError(c, utils.TranslateValidationError(err))
		return
	}

	result, err := h.service.ListUsers(c.Request.Context(), req)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}

// GetUser handles GET /admin/users/:sid
func (h *UserHandler) GetUser(c *gin.Context) {
	sid, err := utils.ParseSIDParam(c, "sid", id.PrefixUser, "user")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	user, err := h.service.GetUser(c.Request.Context(), sid)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", user)
}

// UpdateUserStatus handles PATCH /admin/users/:sid/status
func (h *UserHandler) UpdateUserStatus(c *gin.Context) {
	sid, err := utils.ParseSIDParam(c, "sid", id.PrefixUser, "user")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req dto.UpdateUserStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponseWithError(c, utils.TranslateValidationError(err))
		return
	}

	actorSID := c.GetString(constants.ContextKeyUserSID)
	user, err := h.service.UpdateUserStatus(c.Request.Context(), sid, actorSID, req)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	h.logger.Infow("user status updated by admin", "user_sid", sid, "actor_sid", actorSID, "status", req.Status)
	utils.SuccessResponse(c, http.StatusOK, "user status updated", user)
}
