package handler

import "github.com/canergenc/doctor-calendar-server/internal/service"

// Handler 所有 Handler 的聚合入口
type Handler struct {
	Auth      *AuthHandler
	User      *UserHandler
	Group     *GroupHandler
	UserGroup *UserGroupHandler
	Location  *LocationHandler
	Calendar  *CalendarHandler
	Export    *ExportHandler
}

// NewHandler 创建 Handler 聚合
func NewHandler(svc *service.Service) *Handler {
	return &Handler{
		Auth:      NewAuthHandler(svc.Auth),
		User:      NewUserHandler(svc.User),
		Group:     NewGroupHandler(svc.Group),
		UserGroup: NewUserGroupHandler(svc.UserGroup),
		Location:  NewLocationHandler(svc.Location),
		Calendar:  NewCalendarHandler(svc.Calendar),
		Export:    NewExportHandler(svc.Export),
	}
}
