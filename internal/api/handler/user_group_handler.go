package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/canergenc/doctor-calendar-server/internal/dto"
	"github.com/canergenc/doctor-calendar-server/internal/service"
	"github.com/canergenc/doctor-calendar-server/pkg/response"
)

// UserGroupHandler 组成员关系接口
type UserGroupHandler struct {
	userGroupService service.UserGroupService
}

// NewUserGroupHandler 创建 UserGroupHandler
func NewUserGroupHandler(userGroupService service.UserGroupService) *UserGroupHandler {
	return &UserGroupHandler{userGroupService: userGroupService}
}

// Create 将用户加入组
// POST /api/v1/user-groups
func (h *UserGroupHandler) Create(c *gin.Context) {
	actor, ok := MustGetActor(c)
	if !ok {
		return
	}

	var req dto.CreateUserGroupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	userGroup, err := h.userGroupService.Create(c.Request.Context(), &req, actor)
	if err != nil {
		handleUserGroupError(c, err)
		return
	}

	response.Created(c, userGroup)
}

// GetByID 获取成员关系详情
// GET /api/v1/user-groups/:id
func (h *UserGroupHandler) GetByID(c *gin.Context) {
	userGroup, err := h.userGroupService.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		handleUserGroupError(c, err)
		return
	}

	response.OK(c, userGroup)
}

// ListByGroup 获取组的成员列表
// GET /api/v1/user-groups?group_id=xxx 或 ?user_id=xxx
func (h *UserGroupHandler) List(c *gin.Context) {
	groupID := c.Query("group_id")
	userID := c.Query("user_id")

	switch {
	case groupID != "":
		list, err := h.userGroupService.ListByGroup(c.Request.Context(), groupID)
		if err != nil {
			handleUserGroupError(c, err)
			return
		}
		response.OK(c, list)
	case userID != "":
		list, err := h.userGroupService.ListByUser(c.Request.Context(), userID)
		if err != nil {
			handleUserGroupError(c, err)
			return
		}
		response.OK(c, list)
	default:
		response.BadRequest(c, 10001, "group_id 与 user_id 必须提供其一")
	}
}

// Update 更新成员关系（个性化上限、启用状态）
// PUT /api/v1/user-groups/:id
func (h *UserGroupHandler) Update(c *gin.Context) {
	actor, ok := MustGetActor(c)
	if !ok {
		return
	}

	var req dto.UpdateUserGroupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	userGroup, err := h.userGroupService.Update(c.Request.Context(), c.Param("id"), &req, actor)
	if err != nil {
		handleUserGroupError(c, err)
		return
	}

	response.OK(c, userGroup)
}

// Delete 将用户移出组（软删除）
// DELETE /api/v1/user-groups/:id
func (h *UserGroupHandler) Delete(c *gin.Context) {
	actor, ok := MustGetActor(c)
	if !ok {
		return
	}

	if err := h.userGroupService.Delete(c.Request.Context(), c.Param("id"), actor); err != nil {
		handleUserGroupError(c, err)
		return
	}

	response.NoContent(c)
}

func handleUserGroupError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrUserGroupNotFound):
		response.NotFound(c, 20007, err.Error())
	case errors.Is(err, service.ErrUserNotFound):
		response.NotFound(c, 20004, err.Error())
	case errors.Is(err, service.ErrGroupNotFound):
		response.NotFound(c, 20006, err.Error())
	case errors.Is(err, service.ErrAlreadyMember):
		response.BadRequest(c, 20008, err.Error())
	default:
		response.InternalError(c)
	}
}
