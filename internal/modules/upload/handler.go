package upload

import (
	"errors"
	"fmt"

	"github.com/gin-gonic/gin"

	"github.com/inkflow/blog-core/internal/pkg/response"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(my *gin.RouterGroup) {
	my.POST("/upload", h.upload)
}

// upload POST /my/upload — multipart form, field name "file".
func (h *Handler) upload(c *gin.Context) {
	fh, err := c.FormFile("file")
	if err != nil {
		response.BadRequest(c, "请选择要上传的文件")
		return
	}

	res, err := h.svc.Store(fh)
	if err != nil {
		switch {
		case errors.Is(err, errTooLarge):
			limitMB := h.svc.cfg.UploadLimit() / (1 << 20)
			response.BadRequest(c, fmt.Sprintf("文件大小不能超过 %dMB", limitMB))
		case errors.Is(err, errUnsupportedType):
			response.BadRequest(c, "仅支持上传图片文件")
		default:
			response.InternalError(c, err)
		}
		return
	}
	response.OK(c, "上传成功", res)
}
