package category

import (
	"encoding/json"
	"errors"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/inkflow/blog-core/internal/pkg/response"
)

type nameDTO struct {
	Name  string `json:"name"`
	Alias string `json:"alias"`
}

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(api, my *gin.RouterGroup) {
	api.GET("/categories", h.list)
	api.GET("/categories/:id", h.detail)

	g := my.Group("/categories")
	g.POST("/add", h.create)
	g.PUT("/:id", h.update)
	g.DELETE("/:id", h.remove)
}

// list GET /categories — all categories with article counts.
func (h *Handler) list(c *gin.Context) {
	list, err := h.svc.List()
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.OK(c, "获取成功", list)
}

// detail GET /categories/:id
func (h *Handler) detail(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	cat, err := h.svc.Get(id)
	if err != nil {
		if errors.Is(err, errCategoryNotFound) {
			response.NotFound(c, "分类不存在")
			return
		}
		response.InternalError(c, err)
		return
	}
	response.OK(c, "获取成功", cat)
}

// create POST /my/categories/add
func (h *Handler) create(c *gin.Context) {
	var dto nameDTO
	if err := c.ShouldBindJSON(&dto); err != nil || strings.TrimSpace(dto.Name) == "" {
		response.BadRequest(c, "分类名称不能为空")
		return
	}

	cat, err := h.svc.Create(dto.Name, dto.Alias)
	if err != nil {
		if errors.Is(err, errDuplicateName) {
			response.BadRequest(c, "分类已存在")
			return
		}
		response.InternalError(c, err)
		return
	}
	response.OK(c, "创建成功", cat)
}

// update PUT /my/categories/:id — merge patch, only the keys present change.
func (h *Handler) update(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var patch map[string]json.RawMessage
	if err := c.ShouldBindJSON(&patch); err != nil {
		response.BadRequest(c, "请求参数有误")
		return
	}

	cat, err := h.svc.Update(id, patch)
	if err != nil {
		switch {
		case errors.Is(err, errCategoryNotFound):
			response.NotFound(c, "分类不存在")
		case errors.Is(err, errDuplicateName):
			response.BadRequest(c, "分类已存在")
		case errors.Is(err, errInvalidField):
			response.BadRequest(c, "请求参数有误")
		default:
			response.InternalError(c, err)
		}
		return
	}
	response.OK(c, "更新成功", cat)
}

// remove DELETE /my/categories/:id — articles under it become uncategorized.
func (h *Handler) remove(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	if err := h.svc.Delete(id); err != nil {
		if errors.Is(err, errCategoryNotFound) {
			response.NotFound(c, "分类不存在")
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
