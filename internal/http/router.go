package api

import (
	"log"
	stdhttp "net/http"

	intconfig "bacalah/internal/config"
	h "bacalah/internal/http/handlers"
	"bacalah/internal/http/middleware"

	"github.com/gin-gonic/gin"
)

func NewRouter(env intconfig.Env) *gin.Engine {
	h.SetJWTSecret(env.JWTSecret)

	r := gin.New()
	r.Use(middleware.RequestID(), middleware.Logger(), gin.Recovery(), middleware.CORS())

	if err := r.SetTrustedProxies(nil); err != nil {
		log.Printf("warning: failed to set trusted proxies: %v", err)
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(stdhttp.StatusNotFound, gin.H{
			"error":  "route not found",
			"path":   c.Request.URL.Path,
			"method": c.Request.Method,
		})
	})

	api := r.Group("/api")
	{
		api.GET("/health", h.Health)
		api.GET("/db-check", h.DBCheck)

		auth := api.Group("/auth")
		auth.POST("/login", h.Login)
		auth.POST("/register", h.Register)

		protected := api.Group("")
		protected.Use(middleware.RequireAuth([]byte(env.JWTSecret)))
		{
			protected.GET("/search", h.SearchDocuments)

			documents := protected.Group("/documents")
			documents.GET("", h.GetDocuments)
			documents.GET("/recent", h.GetRecentDocuments)
			documents.GET("/category/:categoryId", h.GetDocumentsByCategory)
			documents.GET("/:id", h.GetDocumentByID)
			documents.GET("/:id/pdf", h.GetDocumentPDF)
			documents.POST("", h.CreateDocument)
			documents.PUT("/:id", h.UpdateDocument)
			documents.DELETE("/:id", h.DeleteDocument)

			categories := protected.Group("/categories")
			categories.GET("", h.GetCategories)
			categories.GET("/:id", h.GetCategoryByID)
			categories.POST("", h.CreateCategory)

			protected.GET("/tags", h.GetTags)
		}
	}

	return r
}
