package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/canergenc/doctor-calendar-server/internal/dto"
	"github.com/canergenc/doctor-calendar-server/internal/service"
	"github.com/canergenc/doctor-calendar-server/pkg/jwt"
	"github.com/canergenc/doctor-calendar-server/pkg/response"
)

// AuthHandler 认证相关接口
type AuthHandler struct {
	authService service.AuthService
}

// NewAuthHandler 创建 AuthHandler
func NewAuthHandler(authService service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Login 邮箱密码登录
// POST /api/v1/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	token, err := h.authService.Login(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			response.Unauthorized(c, 20001, err.Error())
			return
		}
		response.InternalError(c)
		return
	}

	response.OK(c, token)
}

// RefreshToken 刷新 Token 对
// POST /api/v1/auth/refresh
func (h *AuthHandler) RefreshToken(c *gin.Context) {
	var req dto.RefreshTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	token, err := h.authService.RefreshToken(c.Request.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired),
			errors.Is(err, jwt.ErrTokenInvalid),
			errors.Is(err, service.ErrInvalidTokenType):
			response.Unauthorized(c, 20002, "refresh token 无效或已过期")
		default:
			response.InternalError(c)
		}
		return
	}

	response.OK(c, token)
}

// Logout 登出，当前 access token 加入黑名单
// POST /api/v1/auth/logout
func (h *AuthHandler) Logout(c *gin.Context) {
	claims, ok := MustGetClaims(c)
	if !ok {
		return
	}

	if err := h.authService.Logout(c.Request.Context(), claims); err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, nil)
}

// ChangePassword 修改当前用户密码
// PUT /api/v1/auth/password
func (h *AuthHandler) ChangePassword(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	if err := h.authService.ChangePassword(c.Request.Context(), userID, &req); err != nil {
		switch {
		case errors.Is(err, service.ErrOldPasswordWrong):
			response.BadRequest(c, 20003, err.Error())
		case errors.Is(err, service.ErrUserNotFound):
			response.NotFound(c, 20004, err.Error())
		default:
			response.InternalError(c)
		}
		return
	}

	response.OK(c, nil)
}

// GetCurrentUser 获取当前登录用户信息
// GET /api/v1/auth/me
func (h *AuthHandler) GetCurrentUser(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	user, err := h.authService.GetCurrentUser(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			response.NotFound(c, 20004, err.Error())
			return
		}
		response.InternalError(c)
		return
	}

	response.OK(c, user)
}
