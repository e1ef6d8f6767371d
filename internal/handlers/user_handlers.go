package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"pizza_this_backend/internal/middleware"
	"pizza_this_backend/internal/services"
	"pizza_this_backend/pkg/utils"
)

// UserHandler holds the admin user-management service dependency.
type UserHandler struct {
	userService services.UserService
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(userService services.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// ListUsers handles GET /users (admin).
func (h *UserHandler) ListUsers(c *gin.Context) {
	users, err := h.userService.ListUsers()
	if err != nil {
		utils.LogError(err, "user listing failed")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Erreur interne du serveur"))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"users":   users,
	})
}

// CreateUser handles POST /users (admin).
func (h *UserHandler) CreateUser(c *gin.Context) {
	var req services.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondBindingError(c, err)
		return
	}

	user, err := h.userService.CreateUser(req)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidRole):
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Rôle invalide"))
		case errors.Is(err, services.ErrEmailExists):
			utils.RespondWithError(c, utils.NewAPIError(http.StatusConflict, utils.ErrCodeConflict, "Cet email est déjà utilisé"))
		default:
			utils.LogError(err, "user creation failed")
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Erreur interne du serveur"))
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "Utilisateur créé avec succès",
		"user":    user,
	})
}

// UpdateUser handles PUT /users/:id (admin).
func (h *UserHandler) UpdateUser(c *gin.Context) {
	userID := c.Param("id")

	var req services.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondBindingError(c, err)
		return
	}

	user, err := h.userService.UpdateUser(userID, req)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrUserNotFound):
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Utilisateur non trouvé"))
		case errors.Is(err, services.ErrInvalidRole):
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Rôle invalide"))
		case errors.Is(err, services.ErrInvalidEmailFormat):
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Format d'email invalide"))
		case errors.Is(err, services.ErrPasswordTooShort):
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Le mot de passe doit contenir au moins 6 caractères"))
		case errors.Is(err, services.ErrEmptyUpdate):
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeBadRequest, "Aucune donnée à mettre à jour"))
		case errors.Is(err, services.ErrEmailExists):
			utils.RespondWithError(c, utils.NewAPIError(http.StatusConflict, utils.ErrCodeConflict, "Cet email est déjà utilisé"))
		default:
			utils.LogError(err, "user update failed")
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Erreur interne du serveur"))
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Utilisateur mis à jour avec succès",
		"user":    user,
	})
}

// DeleteUser handles DELETE /users/:id (admin).
func (h *UserHandler) DeleteUser(c *gin.Context) {
	userID := c.Param("id")
	actor := middleware.CurrentUser(c)

	if err := h.userService.DeleteUser(userID, actor.ID); err != nil {
		switch {
		case errors.Is(err, services.ErrSelfDeletion):
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeBadRequest, "Vous ne pouvez pas supprimer votre propre compte"))
		case errors.Is(err, services.ErrUserNotFound):
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Utilisateur non trouvé"))
		default:
			utils.LogError(err, "user deletion failed")
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Erreur interne du serveur"))
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Utilisateur supprimé avec succès",
	})
}
