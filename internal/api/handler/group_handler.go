package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/canergenc/doctor-calendar-server/internal/dto"
	"github.com/canergenc/doctor-calendar-server/internal/service"
	"github.com/canergenc/doctor-calendar-server/pkg/response"
)

// GroupHandler 组（科室）管理接口
type GroupHandler struct {
	groupService service.GroupService
}

// NewGroupHandler 创建 GroupHandler
func NewGroupHandler(groupService service.GroupService) *GroupHandler {
	return &GroupHandler{groupService: groupService}
}

// Create 创建组
// POST /api/v1/groups
func (h *GroupHandler) Create(c *gin.Context) {
	actor, ok := MustGetActor(c)
	if !ok {
		return
	}

	var req dto.CreateGroupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	group, err := h.groupService.Create(c.Request.Context(), &req, actor)
	if err != nil {
		handleGroupError(c, err)
		return
	}

	response.Created(c, group)
}

// GetByID 获取组详情
// GET /api/v1/groups/:id
func (h *GroupHandler) GetByID(c *gin.Context) {
	group, err := h.groupService.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		handleGroupError(c, err)
		return
	}

	response.OK(c, group)
}

// List 获取组列表
// GET /api/v1/groups
func (h *GroupHandler) List(c *gin.Context) {
	var req dto.GroupListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	groups, err := h.groupService.List(c.Request.Context(), &req)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, groups)
}

// Update 更新组信息
// PUT /api/v1/groups/:id
func (h *GroupHandler) Update(c *gin.Context) {
	actor, ok := MustGetActor(c)
	if !ok {
		return
	}

	var req dto.UpdateGroupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	group, err := h.groupService.Update(c.Request.Context(), c.Param("id"), &req, actor)
	if err != nil {
		handleGroupError(c, err)
		return
	}

	response.OK(c, group)
}

// Delete 删除组（软删除）
// DELETE /api/v1/groups/:id
func (h *GroupHandler) Delete(c *gin.Context) {
	actor, ok := MustGetActor(c)
	if !ok {
		return
	}

	if err := h.groupService.Delete(c.Request.Context(), c.Param("id"), actor); err != nil {
		handleGroupError(c, err)
		return
	}

	response.NoContent(c)
}

// UpsertSetting 创建或更新组排班规则设置
// PUT /api/v1/groups/:id/setting
func (h *GroupHandler) UpsertSetting(c *gin.Context) {
	actor, ok := MustGetActor(c)
	if !ok {
		return
	}

	var req dto.UpsertGroupSettingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	setting, err := h.groupService.UpsertSetting(c.Request.Context(), c.Param("id"), &req, actor)
	if err != nil {
		handleGroupError(c, err)
		return
	}

	response.OK(c, setting)
}

// GetSetting 获取组排班规则设置
// GET /api/v1/groups/:id/setting?type=general
func (h *GroupHandler) GetSetting(c *gin.Context) {
	setting, err := h.groupService.GetSetting(c.Request.Context(), c.Param("id"), c.Query("type"))
	if err != nil {
		handleGroupError(c, err)
		return
	}

	response.OK(c, setting)
}

func handleGroupError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrGroupNotFound):
		response.NotFound(c, 20006, err.Error())
	default:
		response.InternalError(c)
	}
}
