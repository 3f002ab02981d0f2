package user

import (
	"errors"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/inkflow/blog-core/internal/models"
	"github.com/inkflow/blog-core/internal/pkg/pagination"
	"github.com/inkflow/blog-core/internal/pkg/response"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(my *gin.RouterGroup) {
	g := my.Group("/users")
	g.GET("", h.list)
	g.PUT("/:id/status", h.setStatus)
	g.PUT("/:id/password", h.resetPassword)
	g.DELETE("/:id", h.remove)
}

// list GET /my/users
func (h *Handler) list(c *gin.Context) {
	q := pagination.FromContext(c)
	keyword := strings.TrimSpace(c.Query("keyword"))

	var status *int
	if raw := c.Query("status"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil || (v != models.StatusDisabled && v != models.StatusEnabled) {
			response.BadRequest(c, "状态参数有误")
			return
		}
		status = &v
	}

	rows, total, err := h.svc.List(q, keyword, status)
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.OK(c, "获取成功", pagination.Envelope(rows, total, q))
}

// setStatus PUT /my/users/:id/status — body {"status": 0|1}
func (h *Handler) setStatus(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	var body struct {
		Status *int `json:"status"`
	}
	if err := c.ShouldBindJSON(&body); err != nil || body.Status == nil ||
		(*body.Status != models.StatusDisabled && *body.Status != models.StatusEnabled) {
		response.BadRequest(c, "状态参数有误")
		return
	}

	if err := h.svc.SetStatus(id, *body.Status); err != nil {
		h.writeError(c, err)
		return
	}
	if *body.Status == models.StatusEnabled {
		response.OK(c, "已启用该账号", nil)
		return
	}
	response.OK(c, "已禁用该账号", nil)
}

// resetPassword PUT /my/users/:id/password — body {"password": "..."}
func (h *Handler) resetPassword(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	var body struct {
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		response.BadRequest(c, "请求参数有误")
		return
	}
	body.Password = strings.TrimSpace(body.Password)
	if len(body.Password) < 6 {
		response.BadRequest(c, "密码至少 6 位")
		return
	}

	if err := h.svc.ResetPassword(id, body.Password); err != nil {
		h.writeError(c, err)
		return
	}
	response.OK(c, "密码已重置", nil)
}

// remove DELETE /my/users/:id — the account's comments go with it.
func (h *Handler) remove(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	if err := h.svc.Delete(id); err != nil {
		h.writeError(c, err)
		return
	}
	response.OK(c, "删除成功", nil)
}

func (h *Handler) writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, errUserNotFound):
		response.NotFound(c, "用户不存在")
	case errors.Is(err, errAdminProtected):
		response.Forbidden(c, "不能操作管理员账号")
	default:
		response.InternalError(c, err)
	}
}

func idParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || id == 0 {
		response.BadRequest(c, "ID 参数有误")
		return 0, false
	}
	return uint(id), true
}
