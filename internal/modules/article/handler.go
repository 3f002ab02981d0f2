package article

import (
	"encoding/json"
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

// RegisterRoutes mounts the public reading routes on api and the management
// routes on my (already guarded by the auth and admin middleware).
func (h *Handler) RegisterRoutes(api, my *gin.RouterGroup) {
	api.GET("/articles", h.list)
	api.GET("/articles/:id", h.detail)
	api.POST("/articles/:id/like", h.like)

	g := my.Group("/articles")
	g.POST("/add", h.create)
	g.PUT("/:id", h.update)
	g.PUT("/:id/top", h.setTop)
	g.DELETE("/:id", h.remove)
}

// list GET /articles — paginated, pinned articles first. Without an explicit
// status filter only published articles are returned.
func (h *Handler) list(c *gin.Context) {
	q := pagination.FromContext(c)

	var f ListFilter
	if raw := c.Query("cate_id"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			response.BadRequest(c, "分类参数有误")
			return
		}
		v := uint(id)
		f.CateID = &v
	}
	f.Keyword = strings.TrimSpace(c.Query("keyword"))
	if raw := c.Query("status"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil || (v != models.ArticleDraft && v != models.ArticlePublished) {
			response.BadRequest(c, "状态参数有误")
			return
		}
		f.Status = &v
	} else {
		published := models.ArticlePublished
		f.Status = &published
	}

	list, total, err := h.svc.List(q, f)
	if err != nil {
		response.InternalError(c, err)
		return
	}

	items := make([]articleResponse, 0, len(list))
	for i := range list {
		items = append(items, toResponse(&list[i]))
	}
	response.OK(c, "获取成功", pagination.Envelope(items, total, q))
}

// detail GET /articles/:id — each fetch counts one view.
func (h *Handler) detail(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	a, err := h.svc.Get(id)
	if err != nil {
		if errors.Is(err, errArticleNotFound) {
			response.NotFound(c, "文章不存在")
			return
		}
		response.InternalError(c, err)
		return
	}
	if err := h.svc.IncrementView(id); err != nil {
		response.InternalError(c, err)
		return
	}
	a.ViewCount++
	response.OK(c, "获取成功", toResponse(a))
}

// like POST /articles/:id/like
func (h *Handler) like(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	counted, err := h.svc.Like(c.Request.Context(), id, c.ClientIP())
	if err != nil {
		if errors.Is(err, errArticleNotFound) {
			response.NotFound(c, "文章不存在")
			return
		}
		response.InternalError(c, err)
		return
	}
	if !counted {
		response.OK(c, "今天已经点过赞啦", nil)
		return
	}
	response.OK(c, "点赞成功", nil)
}

// create POST /my/articles/add
func (h *Handler) create(c *gin.Context) {
	var dto CreateArticleDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, "请求参数有误")
		return
	}
	dto.Title = strings.TrimSpace(dto.Title)
	if dto.Title == "" || strings.TrimSpace(dto.Content) == "" {
		response.BadRequest(c, "标题和内容不能为空")
		return
	}
	if dto.Status != nil && *dto.Status != models.ArticleDraft && *dto.Status != models.ArticlePublished {
		response.BadRequest(c, "状态参数有误")
		return
	}

	a, err := h.svc.Create(&dto)
	if err != nil {
		if errors.Is(err, errTagNotFound) {
			response.BadRequest(c, "部分标签不存在")
			return
		}
		response.InternalError(c, err)
		return
	}
	response.OK(c, "发布成功", toResponse(a))
}

// update PUT /my/articles/:id — merge patch, only the keys present change.
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

	a, err := h.svc.Update(id, patch)
	if err != nil {
		var pfe patchFieldError
		switch {
		case errors.Is(err, errArticleNotFound):
			response.NotFound(c, "文章不存在")
		case errors.Is(err, errTagNotFound):
			response.BadRequest(c, "部分标签不存在")
		case errors.As(err, &pfe):
			response.BadRequest(c, "请求参数有误")
		default:
			response.InternalError(c, err)
		}
		return
	}
	response.OK(c, "更新成功", toResponse(a))
}

// setTop PUT /my/articles/:id/top — body {"is_top": bool} or empty to toggle.
func (h *Handler) setTop(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	var body struct {
		IsTop *bool `json:"is_top"`
	}
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&body); err != nil {
			response.BadRequest(c, "请求参数有误")
			return
		}
	}

	top, err := h.svc.SetTop(id, body.IsTop)
	if err != nil {
		if errors.Is(err, errArticleNotFound) {
			response.NotFound(c, "文章不存在")
			return
		}
		response.InternalError(c, err)
		return
	}
	if top {
		response.OK(c, "置顶成功", gin.H{"is_top": true})
		return
	}
	response.OK(c, "已取消置顶", gin.H{"is_top": false})
}

// remove DELETE /my/articles/:id — comments and tag links go with it.
func (h *Handler) remove(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	if err := h.svc.Delete(id); err != nil {
		if errors.Is(err, errArticleNotFound) {
			response.NotFound(c, "文章不存在")
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
