package friendlink

import (
	"encoding/json"
	"errors"
	"strconv"
	"strings"

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
	api.GET("/friendlinks", h.list)

	g := my.Group("/friendlinks")
	g.POST("/add", h.create)
	g.PUT("/:id", h.update)
	g.DELETE("/:id", h.remove)
}

// list GET /friendlinks
func (h *Handler) list(c *gin.Context) {
	list, err := h.svc.List()
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.OK(c, "获取成功", list)
}

// create POST /my/friendlinks/add
func (h *Handler) create(c *gin.Context) {
	dto, ok := bindUpsert(c)
	if !ok {
		return
	}

	fl, err := h.svc.Create(dto)
	if err != nil {
		if errors.Is(err, errDuplicateName) {
			response.BadRequest(c, "友链已存在")
			return
		}
		response.InternalError(c, err)
		return
	}
	response.OK(c, "创建成功", fl)
}

// update PUT /my/friendlinks/:id — merge patch, only the keys present change.
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

	fl, err := h.svc.Update(id, patch)
	if err != nil {
		switch {
		case errors.Is(err, errLinkNotFound):
			response.NotFound(c, "友链不存在")
		case errors.Is(err, errDuplicateName):
			response.BadRequest(c, "友链已存在")
		case errors.Is(err, errInvalidField):
			response.BadRequest(c, "请求参数有误")
		default:
			response.InternalError(c, err)
		}
		return
	}
	response.OK(c, "更新成功", fl)
}

// remove DELETE /my/friendlinks/:id
func (h *Handler) remove(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	if err := h.svc.Delete(id); err != nil {
		if errors.Is(err, errLinkNotFound) {
			response.NotFound(c, "友链不存在")
			return
		}
		response.InternalError(c, err)
		return
	}
	response.OK(c, "删除成功", nil)
}

func bindUpsert(c *gin.Context) (*UpsertDTO, bool) {
	var dto UpsertDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, "请求参数有误")
		return nil, false
	}
	if strings.TrimSpace(dto.Name) == "" || strings.TrimSpace(dto.LinkURL) == "" {
		response.BadRequest(c, "名称和链接不能为空")
		return nil, false
	}
	return &dto, true
}

func idParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || id == 0 {
		response.BadRequest(c, "ID 参数有误")
		return 0, false
	}
	return uint(id), true
}
