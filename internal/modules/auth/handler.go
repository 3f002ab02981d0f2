package auth

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/inkflow/blog-core/internal/middleware"
	"github.com/inkflow/blog-core/internal/pkg/response"
)

type Handler struct {
	svc    *Service
	authMW gin.HandlerFunc
}

func NewHandler(svc *Service, authMW gin.HandlerFunc) *Handler {
	return &Handler{svc: svc, authMW: authMW}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/login", h.adminLogin)

	u := rg.Group("/user")
	u.POST("/register", h.register)
	u.POST("/login", h.userLogin)
	u.GET("/me", h.authMW, h.me)
}

// adminLogin POST /login — management console entrance.
func (h *Handler) adminLogin(c *gin.Context) {
	var dto LoginDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, "请求参数有误")
		return
	}
	dto.Username = strings.TrimSpace(dto.Username)
	if dto.Username == "" || dto.Password == "" {
		response.BadRequest(c, "用户名和密码不能为空")
		return
	}

	token, user, err := h.svc.AdminLogin(dto.Username, dto.Password)
	if err != nil {
		switch {
		case errors.Is(err, errInvalidCredentials):
			response.BadRequest(c, "用户名或密码错误")
		case errors.Is(err, errNotAdmin):
			response.Forbidden(c, "该账号不是管理员")
		default:
			response.InternalError(c, err)
		}
		return
	}

	response.OK(c, "登录成功", gin.H{"token": token, "user": toSummary(user)})
}

// userLogin POST /user/login — public site login for commenters.
func (h *Handler) userLogin(c *gin.Context) {
	var dto LoginDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, "请求参数有误")
		return
	}
	dto.Username = strings.TrimSpace(dto.Username)
	if dto.Username == "" || dto.Password == "" {
		response.BadRequest(c, "账号和密码不能为空")
		return
	}

	token, user, err := h.svc.UserLogin(dto.Username, dto.Password)
	if err != nil {
		switch {
		case errors.Is(err, errInvalidCredentials):
			response.BadRequest(c, "用户名或密码错误")
		case errors.Is(err, errAdminAccount):
			response.Forbidden(c, "管理员请从后台登录")
		case errors.Is(err, errAccountDisabled):
			response.Forbidden(c, "账号已被禁用")
		default:
			response.InternalError(c, err)
		}
		return
	}

	response.OK(c, "登录成功", gin.H{"token": token, "user": toSummary(user)})
}

// register POST /user/register
func (h *Handler) register(c *gin.Context) {
	var dto RegisterDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, "请求参数有误")
		return
	}
	dto.Username = strings.TrimSpace(dto.Username)
	dto.Password = strings.TrimSpace(dto.Password)

	if dto.Username == "" || dto.Password == "" {
		response.BadRequest(c, "账号和密码不能为空")
		return
	}
	if n := len([]rune(dto.Username)); n < 3 || n > 32 {
		response.BadRequest(c, "账号长度需在 3-32 位之间")
		return
	}
	if len(dto.Password) < 6 {
		response.BadRequest(c, "密码至少 6 位")
		return
	}

	token, user, err := h.svc.Register(&dto)
	if err != nil {
		if errors.Is(err, errUsernameTaken) {
			response.BadRequest(c, "账号已存在")
			return
		}
		response.InternalError(c, err)
		return
	}

	response.OK(c, "注册成功", gin.H{"token": token, "user": toSummary(user)})
}

// me GET /user/me — live identity, re-read from the database by the guard.
func (h *Handler) me(c *gin.Context) {
	user := middleware.CurrentUser(c)
	response.OK(c, "获取成功", toSummary(user))
}
