package middleware

import (
	"fmt"
	"runtime/debug"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/canergenc/doctor-calendar-server/internal/model"
	"github.com/canergenc/doctor-calendar-server/internal/repository"
	"github.com/canergenc/doctor-calendar-server/pkg/response"
)

// Recovery panic 恢复中间件
// 除返回 500 外，将 panic 信息落库到 error_logs 供运维排查（落库失败仅记日志）。
func Recovery(errorLogRepo repository.ErrorLogRepository, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				stack := string(debug.Stack())
				userID, _ := c.Get("user_id")
				userIDStr, _ := userID.(string)

				logger.Error("请求处理 panic",
					zap.String("method", c.Request.Method),
					zap.String("path", c.Request.URL.Path),
					zap.Any("panic", r),
					zap.String("stack", stack),
				)

				if errorLogRepo != nil {
					entry := &model.ErrorLog{
						Method:  c.Request.Method,
						Path:    c.Request.URL.Path,
						UserID:  userIDStr,
						Message: fmt.Sprintf("%v", r),
						Stack:   stack,
					}
					if err := errorLogRepo.Create(c.Request.Context(), entry); err != nil {
						logger.Warn("错误日志落库失败", zap.Error(err))
					}
				}

				response.InternalError(c)
				c.Abort()
			}
		}()

		c.Next()
	}
}
