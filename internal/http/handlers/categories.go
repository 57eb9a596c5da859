package handlers

import (
	"net/http"
	"strings"

	intconfig "bacalah/internal/config"
	"bacalah/internal/repositories"

	"github.com/gin-gonic/gin"
	"github.com/go-sql-driver/mysql"
)

type categoryPayload struct {
	Name string `json:"name" binding:"required"`
}

// GET /api/categories
func GetCategories(c *gin.Context) {
	repo := repositories.CategoryRepository{DB: intconfig.DB}
	list, err := repo.List(c.Request.Context())
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

// GET /api/categories/:id
func GetCategoryByID(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	repo := repositories.CategoryRepository{DB: intconfig.DB}
	cat, err := repo.GetByID(c.Request.Context(), id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, cat)
}

// POST /api/categories
func CreateCategory(c *gin.Context) {
	var payload categoryPayload
	if !BindJSONOrError(c, &payload) {
		return
	}
	name := strings.TrimSpace(payload.Name)
	if name == "" {
		respondError(c, http.StatusBadRequest, "validation_error", "name is required", nil)
		return
	}

	repo := repositories.CategoryRepository{DB: intconfig.DB}
	id, err := repo.Insert(c.Request.Context(), name)
	if err != nil {
		if me, ok := err.(*mysql.MySQLError); ok && me.Number == 1062 {
			respondError(c, http.StatusConflict, "conflict", "category already exists", nil)
			return
		}
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"id": id, "name": name})
}
