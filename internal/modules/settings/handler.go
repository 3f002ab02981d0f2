package settings

import (
	"encoding/json"
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/inkflow/blog-core/internal/pkg/response"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(api, my *gin.RouterGroup) {
	api.GET("/settings", h.profile)

	my.GET("/settings", h.profile)
	my.PUT("/settings", h.update)
	my.GET("/dashboard/stats", h.stats)
}

// profile GET /settings — the public owner card.
func (h *Handler) profile(c *gin.Context) {
	p, err := h.svc.Profile()
	if err != nil {
		if errors.Is(err, errOwnerNotFound) {
			response.NotFound(c, "站点信息未初始化")
			return
		}
		response.InternalError(c, err)
		return
	}
	response.OK(c, "获取成功", p)
}

// update PUT /my/settings — merge patch on the owner profile.
func (h *Handler) update(c *gin.Context) {
	var patch map[string]json.RawMessage
	if err := c.ShouldBindJSON(&patch); err != nil {
		response.BadRequest(c, "请求参数有误")
		return
	}

	p, err := h.svc.Update(patch)
	if err != nil {
		switch {
		case errors.Is(err, errOwnerNotFound):
			response.NotFound(c, "站点信息未初始化")
		case errors.Is(err, errWrongOldPassword):
			response.BadRequest(c, "原密码不正确")
		case errors.Is(err, errInvalidField):
			response.BadRequest(c, "请求参数有误")
		default:
			response.InternalError(c, err)
		}
		return
	}
	response.OK(c, "更新成功", p)
}

// stats GET /my/dashboard/stats
func (h *Handler) stats(c *gin.Context) {
	st, err := h.svc.Stats()
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.OK(c, "获取成功", st)
}
