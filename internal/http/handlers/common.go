package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"bacalah/internal/domain"

	"github.com/gin-gonic/gin"
)

const (
	defaultPageSize = 10
	maxPageSize     = 100
)

// BindJSONOrError ensures the body is present and parsable.
func BindJSONOrError[T any](c *gin.Context, dst *T) bool {
	if c.Request.Body == nil {
		respondError(c, http.StatusBadRequest, "empty_body", "request body is required", nil)
		return false
	}
	if err := c.ShouldBindJSON(dst); err != nil {
		respondError(c, http.StatusBadRequest, "invalid_payload", "invalid request payload", err)
		return false
	}
	return true
}

// pageParams reads page/pageSize query params with defensive clamping:
// page >= 1, pageSize in [1, 100].
func pageParams(c *gin.Context) (int, int) {
	page, _ := strconv.Atoi(strings.TrimSpace(c.Query("page")))
	size, _ := strconv.Atoi(strings.TrimSpace(c.Query("pageSize")))
	if page < 1 {
		page = 1
	}
	if size < 1 {
		size = defaultPageSize
	}
	if size > maxPageSize {
		size = maxPageSize
	}
	return page, size
}

// pageResponse serializes a page with its derived boundary fields.
func pageResponse[T any](p domain.Page[T]) gin.H {
	return gin.H{
		"items":           p.Items,
		"totalCount":      p.TotalCount,
		"pageNumber":      p.PageNumber,
		"pageSize":        p.PageSize,
		"totalPages":      p.TotalPages(),
		"hasNextPage":     p.HasNext(),
		"hasPreviousPage": p.HasPrevious(),
	}
}

func pathID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		respondError(c, http.StatusBadRequest, "invalid_id", "invalid "+name, err)
		return 0, false
	}
	return id, true
}
