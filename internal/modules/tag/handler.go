package tag

import (
	"errors"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/inkflow/blog-core/internal/pkg/response"
)

type nameDTO struct {
	Name string `json:"name"`
}

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(api, my *gin.RouterGroup) {
	api.GET("/tags", h.list)

	g := my.Group("/tags")
	g.POST("/add", h.create)
	g.PUT("/:id", h.update)
	g.DELETE("/:id", h.remove)
}

// list GET /tags
func (h *Handler) list(c *gin.Context) {
	list, err := h.svc.List()
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.OK(c, "获取成功", list)
}

// create POST /my/tags/add
func (h *Handler) create(c *gin.Context) {
	var dto nameDTO
	if err := c.ShouldBindJSON(&dto); err != nil || strings.TrimSpace(dto.Name) == "" {
		response.BadRequest(c, "标签名称不能为空")
		return
	}

	t, err := h.svc.Create(dto.Name)
	if err != nil {
		if errors.Is(err, errDuplicateName) {
			response.BadRequest(c, "标签已存在")
			return
		}
		response.InternalError(c, err)
		return
	}
	response.OK(c, "创建成功", t)
}

// update PUT /my/tags/:id
func (h *Handler) update(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var dto nameDTO
	if err := c.ShouldBindJSON(&dto); err != nil || strings.TrimSpace(dto.Name) == "" {
		response.BadRequest(c, "标签名称不能为空")
		return
	}

	t, err := h.svc.Update(id, dto.Name)
	if err != nil {
		switch {
		case errors.Is(err, errTagNotFound):
			response.NotFound(c, "标签不存在")
		case errors.Is(err, errDuplicateName):
			response.BadRequest(c, "标签已存在")
		default:
			response.InternalError(c, err)
		}
		return
	}
	response.OK(c, "更新成功", t)
}

// remove DELETE /my/tags/:id
func (h *Handler) remove(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	if err := h.svc.Delete(id); err != nil {
		if errors.Is(err, errTagNotFound) {
			response.NotFound(c, "标签不存在")
			return
		}
		response.InternalError(c, err)
		return
	}
	response.OK(c, "删除成功", nil)
}

func idParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || id == 0 {
		response.BadRequest(c, "ID 参数有误")
		return 0, false
	}
	return uint(id), true
}
