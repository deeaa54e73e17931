package handler

import (
	"errors"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/canergenc/doctor-calendar-server/internal/service"
	"github.com/canergenc/doctor-calendar-server/pkg/response"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ExportHandler 导出模块接口
type ExportHandler struct {
	exportService service.ExportService
}

// NewExportHandler 创建 ExportHandler
func NewExportHandler(exportService service.ExportService) *ExportHandler {
	return &ExportHandler{exportService: exportService}
}

// ExportRoster 导出组月度值班表
// GET /api/v1/export/roster?group_id=xxx&year=2026&month=6
func (h *ExportHandler) ExportRoster(c *gin.Context) {
	groupID := c.Query("group_id")
	if groupID == "" {
		response.BadRequest(c, 10001, "group_id 不能为空")
		return
	}

	year, err := strconv.Atoi(c.Query("year"))
	if err != nil || year < 2000 || year > 2200 {
		response.BadRequest(c, 10001, "year 参数无效")
		return
	}
	month, err := strconv.Atoi(c.Query("month"))
	if err != nil || month < 1 || month > 12 {
		response.BadRequest(c, 10001, "month 参数无效")
		return
	}

	f, filename, err := h.exportService.ExportGroupMonthlyRoster(c.Request.Context(), groupID, year, time.Month(month))
	if err != nil {
		h.handleExportError(c, err)
		return
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		response.InternalError(c)
		return
	}

	// 下载响应头，文件名含中文需 RFC 5987 编码
	encodedFilename := url.QueryEscape(filename)
	c.Header("Content-Description", "File Transfer")
	c.Header("Content-Disposition", "attachment; filename*=UTF-8''"+encodedFilename)
	c.Header("Content-Type", xlsxContentType)
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}

func (h *ExportHandler) handleExportError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrGroupNotFound):
		response.NotFound(c, 20006, err.Error())
	default:
		response.InternalError(c)
	}
}
