package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/canergenc/doctor-calendar-server/internal/dto"
	"github.com/canergenc/doctor-calendar-server/internal/service"
	"github.com/canergenc/doctor-calendar-server/pkg/response"
)

// LocationHandler 值班地点接口
type LocationHandler struct {
	locationService service.LocationService
}

// NewLocationHandler 创建 LocationHandler
func NewLocationHandler(locationService service.LocationService) *LocationHandler {
	return &LocationHandler{locationService: locationService}
}

// Create 创建地点
// POST /api/v1/locations
func (h *LocationHandler) Create(c *gin.Context) {
	actor, ok := MustGetActor(c)
	if !ok {
		return
	}

	var req dto.CreateLocationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	location, err := h.locationService.Create(c.Request.Context(), &req, actor)
	if err != nil {
		handleLocationError(c, err)
		return
	}

	response.Created(c, location)
}

// GetByID 获取地点详情
// GET /api/v1/locations/:id
func (h *LocationHandler) GetByID(c *gin.Context) {
	location, err := h.locationService.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		handleLocationError(c, err)
		return
	}

	response.OK(c, location)
}

// ListByGroup 获取组下地点列表
// GET /api/v1/locations?group_id=xxx
func (h *LocationHandler) ListByGroup(c *gin.Context) {
	var req dto.LocationListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	locations, err := h.locationService.ListByGroup(c.Request.Context(), &req)
	if err != nil {
		handleLocationError(c, err)
		return
	}

	response.OK(c, locations)
}

// Update 更新地点
// PUT /api/v1/locations/:id
func (h *LocationHandler) Update(c *gin.Context) {
	actor, ok := MustGetActor(c)
	if !ok {
		return
	}

	var req dto.UpdateLocationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	location, err := h.locationService.Update(c.Request.Context(), c.Param("id"), &req, actor)
	if err != nil {
		handleLocationError(c, err)
		return
	}

	response.OK(c, location)
}

// Delete 删除地点（软删除）
// DELETE /api/v1/locations/:id
func (h *LocationHandler) Delete(c *gin.Context) {
	actor, ok := MustGetActor(c)
	if !ok {
		return
	}

	if err := h.locationService.Delete(c.Request.Context(), c.Param("id"), actor); err != nil {
		handleLocationError(c, err)
		return
	}

	response.NoContent(c)
}

func handleLocationError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrLocationNotFound):
		response.NotFound(c, 20009, err.Error())
	case errors.Is(err, service.ErrGroupNotFound):
		response.NotFound(c, 20006, err.Error())
	default:
		response.InternalError(c)
	}
}
