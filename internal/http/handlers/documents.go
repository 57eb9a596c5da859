package handlers

import (
	"net/http"

	"bacalah/internal/http/middleware"
	"bacalah/internal/services"

	"github.com/gin-gonic/gin"
)

type documentPayload struct {
	Title      string   `json:"title" binding:"required"`
	Content    string   `json:"content"`
	CategoryID *int64   `json:"categoryId"`
	Tags       []string `json:"tags"`
}

func documentService(c *gin.Context) services.DocumentService {
	return services.DocumentService{RequestID: middleware.GetRequestID(c)}
}

// GET /api/documents?page=1&pageSize=10
func GetDocuments(c *gin.Context) {
	page, size := pageParams(c)
	res, err := documentService(c).List(c.Request.Context(), page, size)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, pageResponse(res))
}

// GET /api/documents/:id
func GetDocumentByID(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	doc, err := documentService(c).GetByID(c.Request.Context(), id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, doc)
}

// GET /api/documents/category/:categoryId — categoryId 0 selects the
// uncategorized documents.
func GetDocumentsByCategory(c *gin.Context) {
	categoryID, err := parseCategoryParam(c.Param("categoryId"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "invalid_id", "invalid categoryId", err)
		return
	}
	page, size := pageParams(c)
	res, svcErr := documentService(c).ListByCategory(c.Request.Context(), categoryID, page, size)
	if svcErr != nil {
		RespondDomainError(c, svcErr)
		return
	}
	c.JSON(http.StatusOK, pageResponse(res))
}

// GET /api/documents/recent?count=5
func GetRecentDocuments(c *gin.Context) {
	count := intQuery(c, "count", 5)
	if count < 1 {
		count = 5
	}
	docs, err := documentService(c).Recent(c.Request.Context(), count)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, docs)
}

// POST /api/documents
func CreateDocument(c *gin.Context) {
	var payload documentPayload
	if !BindJSONOrError(c, &payload) {
		return
	}
	doc, err := documentService(c).Create(c.Request.Context(), services.DocumentInput{
		Title:      payload.Title,
		Content:    payload.Content,
		CategoryID: payload.CategoryID,
		Tags:       payload.Tags,
	}, middleware.GetUserID(c))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, doc)
}

// PUT /api/documents/:id
func UpdateDocument(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var payload documentPayload
	if !BindJSONOrError(c, &payload) {
		return
	}
	doc, err := documentService(c).Update(c.Request.Context(), id, services.DocumentInput{
		Title:      payload.Title,
		Content:    payload.Content,
		CategoryID: payload.CategoryID,
		Tags:       payload.Tags,
	}, middleware.GetUserID(c))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, doc)
}

// DELETE /api/documents/:id
func DeleteDocument(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := documentService(c).Delete(c.Request.Context(), id, middleware.GetUserID(c)); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// GET /api/documents/:id/pdf returns the document rendered as PDF (inline).
func GetDocumentPDF(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	svc := services.DocsService{
		Documents: documentService(c),
		RequestID: middleware.GetRequestID(c),
	}
	pdfBytes, filename, err := svc.GeneratePDF(c.Request.Context(), id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.Header("Content-Disposition", `inline; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/pdf", pdfBytes)
}
