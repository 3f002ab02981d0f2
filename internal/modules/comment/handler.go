package comment

import (
	"errors"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/inkflow/blog-core/internal/middleware"
	"github.com/inkflow/blog-core/internal/pkg/pagination"
	"github.com/inkflow/blog-core/internal/pkg/response"
)

type Handler struct {
	svc        *Service
	optionalMW gin.HandlerFunc
}

// NewHandler wires the service with the optional-auth middleware used to
// attach an identity to public submissions when a token is present.
func NewHandler(svc *Service, optionalMW gin.HandlerFunc) *Handler {
	return &Handler{svc: svc, optionalMW: optionalMW}
}

func (h *Handler) RegisterRoutes(api, my *gin.RouterGroup) {
	api.GET("/comments/article/:id", h.tree)
	api.POST("/comments/add", h.optionalMW, h.create)

	g := my.Group("/comments")
	g.GET("", h.adminList)
	g.POST("/reply", h.reply)
	g.DELETE("/:id", h.remove)
}

// tree GET /comments/article/:id
func (h *Handler) tree(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || id == 0 {
		response.BadRequest(c, "ID 参数有误")
		return
	}

	roots, err := h.svc.Tree(uint(id))
	if err != nil {
		if errors.Is(err, errArticleNotFound) {
			response.NotFound(c, "文章不存在")
			return
		}
		response.InternalError(c, err)
		return
	}
	response.OK(c, "获取成功", roots)
}

// create POST /comments/add — logged-in users comment as themselves; guests
// need the guest switch enabled and a nickname.
func (h *Handler) create(c *gin.Context) {
	var dto CreateDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, "请求参数有误")
		return
	}
	if dto.ArticleID == 0 || strings.TrimSpace(dto.Content) == "" {
		response.BadRequest(c, "评论内容不能为空")
		return
	}

	cm, err := h.svc.Create(&dto, middleware.CurrentUser(c))
	if err != nil {
		switch {
		case errors.Is(err, errArticleNotFound):
			response.NotFound(c, "文章不存在")
		case errors.Is(err, errCommentNotFound):
			response.NotFound(c, "回复的评论不存在")
		case errors.Is(err, errParentMismatch):
			response.BadRequest(c, "回复的评论不属于该文章")
		case errors.Is(err, errGuestForbidden):
			response.Unauthorized(c, "请登录后再评论")
		case errors.Is(err, errGuestIncomplete):
			response.BadRequest(c, "请填写昵称和邮箱")
		case errors.Is(err, errAccountDisabled):
			response.Forbidden(c, "账号已被禁用")
		default:
			response.InternalError(c, err)
		}
		return
	}
	response.OK(c, "评论成功", cm)
}

// adminList GET /my/comments
func (h *Handler) adminList(c *gin.Context) {
	q := pagination.FromContext(c)
	keyword := strings.TrimSpace(c.Query("keyword"))

	rows, total, err := h.svc.AdminList(q, keyword)
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.OK(c, "获取成功", pagination.Envelope(rows, total, q))
}

// reply POST /my/comments/reply
func (h *Handler) reply(c *gin.Context) {
	var dto ReplyDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, "请求参数有误")
		return
	}
	if dto.CommentID == 0 || strings.TrimSpace(dto.Content) == "" {
		response.BadRequest(c, "回复内容不能为空")
		return
	}

	cm, err := h.svc.Reply(&dto, middleware.CurrentUser(c))
	if err != nil {
		if errors.Is(err, errCommentNotFound) {
			response.NotFound(c, "评论不存在")
			return
		}
		response.InternalError(c, err)
		return
	}
	response.OK(c, "回复成功", cm)
}

// remove DELETE /my/comments/:id — takes direct replies with it.
func (h *Handler) remove(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || id == 0 {
		response.BadRequest(c, "ID 参数有误")
		return
	}

	if err := h.svc.Delete(uint(id)); err != nil {
		if errors.Is(err, errCommentNotFound) {
			response.NotFound(c, "评论不存在")
			return
		}
		response.InternalError(c, err)
		return
	}
	response.OK(c, "删除成功", nil)
}
