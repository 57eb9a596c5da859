package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"bacalah/internal/domain"
	"bacalah/internal/http/middleware"
	"bacalah/internal/services"

	"github.com/gin-gonic/gin"
)

// GET /api/search?q=...&categoryId=...&tagIds=1,2&sortBy=title&sortDesc=false&page=1&pageSize=10
//
// categoryId is three-state: absent means no category filter, "none" or
// "0" selects only uncategorized documents, any other id filters by it.
// sortDesc defaults to descending when omitted.
func SearchDocuments(c *gin.Context) {
	criteria, err := bindSearchCriteria(c)
	if err != nil {
		respondError(c, http.StatusBadRequest, "invalid_query", err.Error(), nil)
		return
	}

	svc := services.SearchService{RequestID: middleware.GetRequestID(c)}
	res, svcErr := svc.Search(c.Request.Context(), criteria)
	if svcErr != nil {
		RespondDomainError(c, svcErr)
		return
	}
	c.JSON(http.StatusOK, pageResponse(res))
}

func bindSearchCriteria(c *gin.Context) (domain.SearchCriteria, error) {
	page, size := pageParams(c)
	criteria := domain.SearchCriteria{
		Query:          c.Query("q"),
		SortBy:         strings.TrimSpace(c.Query("sortBy")),
		SortDescending: true,
		PageNumber:     page,
		PageSize:       size,
	}

	if v := strings.TrimSpace(c.Query("sortDesc")); v != "" {
		desc, err := strconv.ParseBool(v)
		if err != nil {
			return domain.SearchCriteria{}, errInvalidParam("sortDesc")
		}
		criteria.SortDescending = desc
	}

	if v := strings.TrimSpace(c.Query("categoryId")); v != "" {
		id, err := parseCategoryParam(v)
		if err != nil {
			return domain.SearchCriteria{}, errInvalidParam("categoryId")
		}
		criteria.CategoryID = &id
	}

	if v := strings.TrimSpace(c.Query("tagIds")); v != "" {
		for _, part := range strings.Split(v, ",") {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			id, err := strconv.ParseInt(part, 10, 64)
			if err != nil || id <= 0 {
				return domain.SearchCriteria{}, errInvalidParam("tagIds")
			}
			criteria.TagIDs = append(criteria.TagIDs, id)
		}
	}

	return criteria, nil
}

// parseCategoryParam maps "none" and "0" to the uncategorized sentinel.
func parseCategoryParam(raw string) (int64, error) {
	raw = strings.TrimSpace(raw)
	if strings.EqualFold(raw, "none") {
		return 0, nil
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id < 0 {
		return 0, errInvalidParam("categoryId")
	}
	return id, nil
}

func intQuery(c *gin.Context, name string, fallback int) int {
	v := strings.TrimSpace(c.Query(name))
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

type paramError string

func (e paramError) Error() string { return "invalid parameter: " + string(e) }

func errInvalidParam(name string) error { return paramError(name) }
