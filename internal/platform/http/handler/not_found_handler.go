package handler

import (
	"github.com/gin-gonic/gin"

	"blog_backend/internal/platform/http/response"
	"blog_backend/internal/shared/apperr"
)

// NotFound is the NoRoute handler.
func NotFound(c *gin.Context) {
	response.Error(c, apperr.NotFound("Route "+c.Request.URL.RequestURI()+" not found"))
}
