package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/canergenc/doctor-calendar-server/config"
	"github.com/canergenc/doctor-calendar-server/internal/api/handler"
	"github.com/canergenc/doctor-calendar-server/internal/api/middleware"
	"github.com/canergenc/doctor-calendar-server/internal/repository"
	"github.com/canergenc/doctor-calendar-server/pkg/jwt"
	"github.com/canergenc/doctor-calendar-server/pkg/redis"
)

// Setup 初始化并返回 Gin 路由引擎
func Setup(cfg *config.Config, h *handler.Handler, jwtMgr *jwt.Manager, rdb *redis.Client, repo *repository.Repository, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()

	// ── 全局中间件 ──
	r.Use(middleware.Recovery(repo.ErrorLog, logger))
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.CORS(cfg.Server.CORS.AllowOrigins))
	r.Use(middleware.BodyLimit(1 << 20))

	// ── 健康检查 ──
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// ── API v1 ──
	v1 := r.Group("/api/v1")
	{
		// 认证模块（无需认证）
		auth := v1.Group("/auth")
		{
			auth.POST("/login", middleware.RateLimit(rdb, 10, time.Minute), h.Auth.Login)
			auth.POST("/refresh", h.Auth.RefreshToken)
		}

		// 需要认证的路由
		authorized := v1.Group("")
		authorized.Use(middleware.JWTAuth(jwtMgr, rdb))
		{
			// 认证模块（需要认证）
			authorized.POST("/auth/logout", h.Auth.Logout)
			authorized.GET("/auth/me", h.Auth.GetCurrentUser)
			authorized.PUT("/auth/password", h.Auth.ChangePassword)

			// 用户模块
			users := authorized.Group("/users")
			{
				users.GET("", middleware.RoleAuth("admin", "manager"), h.User.List)
				users.GET("/:id", h.User.GetByID)
				users.POST("", middleware.RoleAuth("admin"), h.User.Create)
				users.PUT("/:id", middleware.RoleAuth("admin"), h.User.Update)
				users.DELETE("/:id", middleware.RoleAuth("admin"), h.User.Delete)
				users.PUT("/:id/role", middleware.RoleAuth("admin"), h.User.AssignRole)
				users.POST("/:id/reset-password", middleware.RoleAuth("admin"), h.User.ResetPassword)
				users.GET("/:id/setting", h.User.GetSetting)
				users.PUT("/:id/setting", middleware.RoleAuth("admin", "manager"), h.User.UpsertSetting)
			}

			// 组（科室）模块
			groups := authorized.Group("/groups")
			{
				groups.GET("", h.Group.List)
				groups.GET("/:id", h.Group.GetByID)
				groups.POST("", middleware.RoleAuth("admin"), h.Group.Create)
				groups.PUT("/:id", middleware.RoleAuth("admin"), h.Group.Update)
				groups.DELETE("/:id", middleware.RoleAuth("admin"), h.Group.Delete)
				groups.GET("/:id/setting", h.Group.GetSetting)
				groups.PUT("/:id/setting", middleware.RoleAuth("admin", "manager"), h.Group.UpsertSetting)
			}

			// 组成员关系模块
			userGroups := authorized.Group("/user-groups")
			{
				userGroups.GET("", h.UserGroup.List)
				userGroups.GET("/:id", h.UserGroup.GetByID)
				userGroups.POST("", middleware.RoleAuth("admin", "manager"), h.UserGroup.Create)
				userGroups.PUT("/:id", middleware.RoleAuth("admin", "manager"), h.UserGroup.Update)
				userGroups.DELETE("/:id", middleware.RoleAuth("admin", "manager"), h.UserGroup.Delete)
			}

			// 值班地点模块
			locations := authorized.Group("/locations")
			{
				locations.GET("", h.Location.ListByGroup)
				locations.GET("/:id", h.Location.GetByID)
				locations.POST("", middleware.RoleAuth("admin", "manager"), h.Location.Create)
				locations.PUT("/:id", middleware.RoleAuth("admin", "manager"), h.Location.Update)
				locations.DELETE("/:id", middleware.RoleAuth("admin", "manager"), h.Location.Delete)
			}

			// 日历条目模块
			entries := authorized.Group("/calendar-entries")
			{
				entries.GET("", h.Calendar.ListByUser)
				entries.GET("/:id", h.Calendar.GetByID)
				entries.POST("", h.Calendar.Create)
				entries.POST("/batch", h.Calendar.CreateBatch)
				entries.PUT("/:id", h.Calendar.Update)
				entries.DELETE("/:id", h.Calendar.Delete)
			}

			// 导出模块
			export := authorized.Group("/export")
			{
				export.GET("/roster", middleware.RoleAuth("admin", "manager"), h.Export.ExportRoster)
			}
		}
	}

	return r
}
