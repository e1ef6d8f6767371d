package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"pizza_this_backend/internal/middleware"
	"pizza_this_backend/internal/services"
	"pizza_this_backend/pkg/utils"
)

// ArticleHandler holds the article service dependency.
type ArticleHandler struct {
	articleService services.ArticleService
}

// NewArticleHandler creates a new ArticleHandler.
func NewArticleHandler(articleService services.ArticleService) *ArticleHandler {
	return &ArticleHandler{articleService: articleService}
}

func articleID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeBadRequest, "Identifiant invalide"))
		return 0, false
	}
	return id, true
}

func isAdminRequest(c *gin.Context) bool {
	user := middleware.CurrentUser(c)
	return user != nil && user.IsAdmin()
}

// ListArticles handles GET /articles. Admins see every article; everyone
// else sees published ones only.
func (h *ArticleHandler) ListArticles(c *gin.Context) {
	articles, err := h.articleService.ListArticles(isAdminRequest(c))
	if err != nil {
		utils.LogError(err, "article listing failed")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Erreur interne du serveur"))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"articles": articles,
	})
}

// GetArticle handles GET /articles/:id.
func (h *ArticleHandler) GetArticle(c *gin.Context) {
	id, ok := articleID(c)
	if !ok {
		return
	}

	article, err := h.articleService.GetArticle(id, isAdminRequest(c))
	if err != nil {
		switch {
		case errors.Is(err, services.ErrArticleNotFound):
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Article non trouvé"))
		case errors.Is(err, services.ErrArticleNotAccessible):
			utils.RespondWithError(c, utils.NewAPIError(http.StatusForbidden, utils.ErrCodeForbidden, "Accès non autorisé"))
		default:
			utils.LogError(err, "article fetch failed")
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Erreur interne du serveur"))
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"article": article,
	})
}

// CreateArticle handles POST /articles (admin).
func (h *ArticleHandler) CreateArticle(c *gin.Context) {
	var req services.CreateArticleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondBindingError(c, err)
		return
	}

	article, err := h.articleService.CreateArticle(req)
	if err != nil {
		if errors.Is(err, services.ErrInvalidArticleStatus) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Statut invalide"))
			return
		}
		utils.LogError(err, "article creation failed")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Erreur interne du serveur"))
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "Article créé avec succès",
		"article": article,
	})
}

// UpdateArticle handles PUT /articles/:id (admin).
func (h *ArticleHandler) UpdateArticle(c *gin.Context) {
	id, ok := articleID(c)
	if !ok {
		return
	}

	var req services.UpdateArticleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondBindingError(c, err)
		return
	}

	article, err := h.articleService.UpdateArticle(id, req)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrArticleNotFound):
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Article non trouvé"))
		case errors.Is(err, services.ErrInvalidArticleStatus):
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Statut invalide"))
		case errors.Is(err, services.ErrEmptyUpdate):
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeBadRequest, "Aucune donnée à mettre à jour"))
		default:
			utils.LogError(err, "article update failed")
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Erreur interne du serveur"))
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Article mis à jour avec succès",
		"article": article,
	})
}

// DeleteArticle handles DELETE /articles/:id (admin).
func (h *ArticleHandler) DeleteArticle(c *gin.Context) {
	id, ok := articleID(c)
	if !ok {
		return
	}

	if err := h.articleService.DeleteArticle(id); err != nil {
		if errors.Is(err, services.ErrArticleNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Article non trouvé"))
			return
		}
		utils.LogError(err, "article deletion failed")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Erreur interne du serveur"))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Article supprimé avec succès",
	})
}
