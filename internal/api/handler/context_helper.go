package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/canergenc/doctor-calendar-server/internal/model"
	"github.com/canergenc/doctor-calendar-server/pkg/jwt"
	"github.com/canergenc/doctor-calendar-server/pkg/response"
)

// MustGetUserID 从 Gin 上下文中安全提取 user_id。
// JWT 中间件未正确注入时返回 false 并写入 401 响应，调用方应直接 return。
func MustGetUserID(c *gin.Context) (string, bool) {
	v, exists := c.Get("user_id")
	if !exists {
		response.Unauthorized(c, 10002, "未认证")
		return "", false
	}
	s, ok := v.(string)
	if !ok || s == "" {
		response.Unauthorized(c, 10002, "未认证")
		return "", false
	}
	return s, true
}

// MustGetActor 由上下文中的认证信息构造操作者。
// 校验引擎只依赖 UserID 与 Role（追溯编辑豁免），无需完整用户记录。
func MustGetActor(c *gin.Context) (*model.User, bool) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return nil, false
	}
	role, _ := c.Get("role")
	roleStr, _ := role.(string)
	return &model.User{UserID: userID, Role: roleStr}, true
}

// MustGetClaims 从上下文中提取完整 JWT 声明（登出时需要 jti 与过期时间）。
func MustGetClaims(c *gin.Context) (*jwt.Claims, bool) {
	v, exists := c.Get("claims")
	if !exists {
		response.Unauthorized(c, 10002, "未认证")
		return nil, false
	}
	claims, ok := v.(*jwt.Claims)
	if !ok {
		response.Unauthorized(c, 10002, "未认证")
		return nil, false
	}
	return claims, true
}
