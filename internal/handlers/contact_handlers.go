package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"pizza_this_backend/internal/middleware"
	"pizza_this_backend/internal/models"
	"pizza_this_backend/internal/services"
	"pizza_this_backend/pkg/utils"
)

// ContactHandler holds the contact service dependency.
type ContactHandler struct {
	contactService services.ContactService
}

// NewContactHandler creates a new ContactHandler.
func NewContactHandler(contactService services.ContactService) *ContactHandler {
	return &ContactHandler{contactService: contactService}
}

// Submit handles POST /contacts. Authentication is optional; an authenticated
// submission is attributed to the account.
func (h *ContactHandler) Submit(c *gin.Context) {
	var req services.SubmitContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondBindingError(c, err)
		return
	}

	var userID *string
	if user := middleware.CurrentUser(c); user != nil {
		userID = &user.ID
	}

	contact, err := h.contactService.Submit(req, userID)
	if err != nil {
		utils.LogError(err, "contact submission failed")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Erreur interne du serveur"))
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "Message envoyé avec succès",
		"contact": contact,
	})
}

// List handles GET /contacts. Admins get every message with owner emails
// joined; everyone else gets their own.
func (h *ContactHandler) List(c *gin.Context) {
	user := middleware.CurrentUser(c)

	var contacts []models.Contact
	var err error
	if user.IsAdmin() {
		contacts, err = h.contactService.ListAll()
	} else {
		contacts, err = h.contactService.ListForUser(user.ID)
	}
	if err != nil {
		utils.LogError(err, "contact listing failed")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Erreur interne du serveur"))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"contacts": contacts,
	})
}

// UpdateStatus handles PUT /contacts/:id (admin).
func (h *ContactHandler) UpdateStatus(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeBadRequest, "Identifiant invalide"))
		return
	}

	var req services.UpdateContactStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondBindingError(c, err)
		return
	}

	if err := h.contactService.UpdateStatus(id, req); err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidContactStatus):
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Statut invalide"))
		case errors.Is(err, services.ErrContactNotFound):
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Message non trouvé"))
		default:
			utils.LogError(err, "contact status update failed")
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Erreur interne du serveur"))
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Statut mis à jour",
	})
}
