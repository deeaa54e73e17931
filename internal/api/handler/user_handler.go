package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/canergenc/doctor-calendar-server/internal/dto"
	"github.com/canergenc/doctor-calendar-server/internal/service"
	"github.com/canergenc/doctor-calendar-server/pkg/response"
)

// UserHandler 用户管理接口（创建/角色分配仅管理员）
type UserHandler struct {
	userService service.UserService
}

// NewUserHandler 创建 UserHandler
func NewUserHandler(userService service.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// Create 创建用户
// POST /api/v1/users
func (h *UserHandler) Create(c *gin.Context) {
	actor, ok := MustGetActor(c)
	if !ok {
		return
	}

	var req dto.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	user, err := h.userService.Create(c.Request.Context(), &req, actor)
	if err != nil {
		handleUserError(c, err)
		return
	}

	response.Created(c, user)
}

// GetByID 获取用户详情
// GET /api/v1/users/:id
func (h *UserHandler) GetByID(c *gin.Context) {
	user, err := h.userService.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		handleUserError(c, err)
		return
	}

	response.OK(c, user)
}

// List 分页获取用户列表
// GET /api/v1/users
func (h *UserHandler) List(c *gin.Context) {
	var req dto.UserListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	users, total, err := h.userService.List(c.Request.Context(), &req)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OKPage(c, users, total, req.Page, req.PageSize)
}

// Update 更新用户信息
// PUT /api/v1/users/:id
func (h *UserHandler) Update(c *gin.Context) {
	actor, ok := MustGetActor(c)
	if !ok {
		return
	}

	var req dto.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	user, err := h.userService.Update(c.Request.Context(), c.Param("id"), &req, actor)
	if err != nil {
		handleUserError(c, err)
		return
	}

	response.OK(c, user)
}

// AssignRole 分配角色
// PUT /api/v1/users/:id/role
func (h *UserHandler) AssignRole(c *gin.Context) {
	actor, ok := MustGetActor(c)
	if !ok {
		return
	}

	var req dto.AssignRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	if err := h.userService.AssignRole(c.Request.Context(), c.Param("id"), &req, actor); err != nil {
		handleUserError(c, err)
		return
	}

	response.OK(c, nil)
}

// ResetPassword 管理员重置用户密码（临时密码邮件下发）
// POST /api/v1/users/:id/reset-password
func (h *UserHandler) ResetPassword(c *gin.Context) {
	actor, ok := MustGetActor(c)
	if !ok {
		return
	}

	if err := h.userService.ResetPassword(c.Request.Context(), c.Param("id"), actor); err != nil {
		handleUserError(c, err)
		return
	}

	response.OK(c, nil)
}

// Delete 删除用户（软删除）
// DELETE /api/v1/users/:id
func (h *UserHandler) Delete(c *gin.Context) {
	actor, ok := MustGetActor(c)
	if !ok {
		return
	}

	if err := h.userService.Delete(c.Request.Context(), c.Param("id"), actor); err != nil {
		handleUserError(c, err)
		return
	}

	response.NoContent(c)
}

// UpsertSetting 创建或更新用户个人值班设置
// PUT /api/v1/users/:id/setting
func (h *UserHandler) UpsertSetting(c *gin.Context) {
	actor, ok := MustGetActor(c)
	if !ok {
		return
	}

	var req dto.UpsertUserSettingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	setting, err := h.userService.UpsertSetting(c.Request.Context(), c.Param("id"), &req, actor)
	if err != nil {
		handleUserError(c, err)
		return
	}

	response.OK(c, setting)
}

// GetSetting 获取用户个人值班设置
// GET /api/v1/users/:id/setting
func (h *UserHandler) GetSetting(c *gin.Context) {
	setting, err := h.userService.GetSetting(c.Request.Context(), c.Param("id"))
	if err != nil {
		handleUserError(c, err)
		return
	}

	response.OK(c, setting)
}

func handleUserError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrUserNotFound):
		response.NotFound(c, 20004, err.Error())
	case errors.Is(err, service.ErrEmailTaken):
		response.BadRequest(c, 20005, err.Error())
	default:
		response.InternalError(c)
	}
}
