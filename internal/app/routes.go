package app

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/inkflow/blog-core/internal/config"
	"github.com/inkflow/blog-core/internal/middleware"
	"github.com/inkflow/blog-core/internal/modules/article"
	"github.com/inkflow/blog-core/internal/modules/auth"
	"github.com/inkflow/blog-core/internal/modules/category"
	"github.com/inkflow/blog-core/internal/modules/comment"
	"github.com/inkflow/blog-core/internal/modules/friendlink"
	"github.com/inkflow/blog-core/internal/modules/settings"
	"github.com/inkflow/blog-core/internal/modules/tag"
	"github.com/inkflow/blog-core/internal/modules/upload"
	"github.com/inkflow/blog-core/internal/modules/user"
	"github.com/inkflow/blog-core/internal/pkg/response"
)

func (a *App) registerRoutes() {
	r := a.router
	db := a.db
	authMW := middleware.Auth(db)
	optionalMW := middleware.OptionalAuth(db)

	r.NoRoute(func(c *gin.Context) {
		response.NotFound(c, "")
	})

	if a.cfg.Upload.Backend == config.UploadBackendLocal {
		r.Static("/uploads", a.cfg.Upload.Dir)
	}

	api := r.Group("/api")
	api.GET("/health", func(c *gin.Context) {
		response.OK(c, "ok", gin.H{"time": time.Now().Format(time.RFC3339)})
	})

	// Console routes live under /api/my and require an admin token.
	my := api.Group("/my", authMW, middleware.RequireAdmin())

	auth.NewHandler(auth.NewService(db, a.cfg.TokenTTL()), authMW).RegisterRoutes(api)
	article.NewHandler(article.NewService(db, a.cache)).RegisterRoutes(api, my)
	category.NewHandler(category.NewService(db)).RegisterRoutes(api, my)
	tag.NewHandler(tag.NewService(db)).RegisterRoutes(api, my)
	comment.NewHandler(comment.NewService(db, a.cfg.Comments.AllowGuest), optionalMW).RegisterRoutes(api, my)
	friendlink.NewHandler(friendlink.NewService(db)).RegisterRoutes(api, my)
	settings.NewHandler(settings.NewService(db)).RegisterRoutes(api, my)
	user.NewHandler(user.NewService(db)).RegisterRoutes(my)
	upload.NewHandler(upload.NewService(a.cfg)).RegisterRoutes(my)
}
