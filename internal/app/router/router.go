package router

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	httpSwagger "github.com/swaggo/http-swagger"

	"blog_backend/internal/api"
	authhandler "blog_backend/internal/feature/auth/transport/handler"
	posthandler "blog_backend/internal/feature/posts/transport/handler"
	"blog_backend/internal/platform/http/handler"
	"blog_backend/internal/platform/http/middleware"
	jwtmw "blog_backend/internal/platform/jwt"
)

// SpecPath serves the embedded OpenAPI document.
const SpecPath = "/openapi.yaml"

func NewRouter(authHandler *authhandler.AuthHandler, posts *posthandler.PostHandler,
	authn *jwtmw.Authenticator, health gin.HandlerFunc, corsOrigins []string) *gin.Engine {
	r := gin.Default()
	r.Use(middleware.RequestID())
	r.Use(cors.New(corsConfig(corsOrigins)))

	// 導通確認用
	r.GET("/healthz", health)
	r.HEAD("/healthz", health)
	// サービス概要
	r.GET("/", handler.Index)

	// APIドキュメント
	r.GET(SpecPath, func(c *gin.Context) {
		c.Data(http.StatusOK, "application/yaml", api.OpenAPISpec)
	})
	docs := httpSwagger.Handler(httpSwagger.URL(SpecPath))
	r.GET("/api-docs/*any", func(c *gin.Context) {
		if c.Param("any") == "/" {
			c.Redirect(http.StatusMovedPermanently, handler.DocsPath)
			return
		}
		docs.ServeHTTP(c.Writer, c.Request)
	})

	// 新規ユーザー登録・ログイン（JWT 発行）
	authGroup := r.Group("/api/auth")
	{
		authGroup.POST("/register", authHandler.Register)
		authGroup.POST("/login", authHandler.Login)
	}

	postGroup := r.Group("/api/posts")
	{
		// 認証任意: トークンがあれば自分の下書きも見える
		postGroup.GET("", authn.OptionalAuth(), posts.List)
		postGroup.GET("/:slug", authn.OptionalAuth(), posts.GetBySlug)

		// 認証必須
		postGroup.POST("", authn.Protect(), posts.Create)
		postGroup.PUT("/:id", authn.Protect(), posts.Update)
		postGroup.DELETE("/:id", authn.Protect(), posts.Delete)
	}

	r.NoRoute(handler.NotFound)
	return r
}

// corsConfig allows every origin unless an explicit list is configured.
func corsConfig(origins []string) cors.Config {
	cfg := cors.DefaultConfig()
	cfg.AllowHeaders = append(cfg.AllowHeaders, "Authorization", middleware.HeaderRequestID)
	cfg.ExposeHeaders = []string{middleware.HeaderRequestID}
	if len(origins) == 0 {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = origins
	}
	return cfg
}
