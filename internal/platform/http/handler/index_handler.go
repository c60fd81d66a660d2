package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// DocsPath is where the Swagger UI is mounted.
const DocsPath = "/api-docs/index.html"

var endpoints = gin.H{
	"auth": gin.H{
		"register": "POST /api/auth/register",
		"login":    "POST /api/auth/login",
	},
	"posts": gin.H{
		"create":    "POST /api/posts (authenticated)",
		"getAll":    "GET /api/posts",
		"getBySlug": "GET /api/posts/:slug",
		"update":    "PUT /api/posts/:id (authenticated)",
		"delete":    "DELETE /api/posts/:id (authenticated)",
	},
}

// Index は / でサービスの概要とエンドポイント一覧を返します。
func Index(c *gin.Context) {
	scheme := "http"
	if c.Request.TLS != nil || c.GetHeader("X-Forwarded-Proto") == "https" {
		scheme = "https"
	}
	c.JSON(http.StatusOK, gin.H{
		"success":       true,
		"message":       "Blog API is running",
		"documentation": scheme + "://" + c.Request.Host + DocsPath,
		"endpoints":     endpoints,
	})
}
