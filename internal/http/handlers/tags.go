package handlers

import (
	"net/http"

	"bacalah/internal/http/middleware"
	"bacalah/internal/services"

	"github.com/gin-gonic/gin"
)

// GET /api/tags
func GetTags(c *gin.Context) {
	svc := services.TagService{RequestID: middleware.GetRequestID(c)}
	list, err := svc.List(c.Request.Context())
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}
