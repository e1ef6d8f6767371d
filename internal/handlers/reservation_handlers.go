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

// ReservationHandler holds the reservation service dependency.
type ReservationHandler struct {
	reservationService services.ReservationService
}

// NewReservationHandler creates a new ReservationHandler.
func NewReservationHandler(reservationService services.ReservationService) *ReservationHandler {
	return &ReservationHandler{reservationService: reservationService}
}

// Submit handles POST /reservations. Authentication is optional; an
// authenticated submission is attributed to the account.
func (h *ReservationHandler) Submit(c *gin.Context) {
	var req services.SubmitReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondBindingError(c, err)
		return
	}

	var userID *string
	if user := middleware.CurrentUser(c); user != nil {
		userID = &user.ID
	}

	reservation, err := h.reservationService.Submit(req, userID)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidReservationDate):
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Date de réservation invalide"))
		case errors.Is(err, services.ErrReservationDateInPast):
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "La date de réservation ne peut pas être dans le passé"))
		case errors.Is(err, services.ErrInvalidReservationPersons):
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Nombre de personnes invalide (1-20)"))
		default:
			utils.LogError(err, "reservation submission failed")
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Erreur interne du serveur"))
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success":     true,
		"message":     "Réservation enregistrée avec succès",
		"reservation": reservation,
	})
}

// List handles GET /reservations. Admins get every reservation with owner
// emails joined; everyone else gets their own.
func (h *ReservationHandler) List(c *gin.Context) {
	user := middleware.CurrentUser(c)

	var reservations []models.Reservation
	var err error
	if user.IsAdmin() {
		reservations, err = h.reservationService.ListAll()
	} else {
		reservations, err = h.reservationService.ListForUser(user.ID)
	}
	if err != nil {
		utils.LogError(err, "reservation listing failed")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Erreur interne du serveur"))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":      true,
		"reservations": reservations,
	})
}

// UpdateStatus handles PUT /reservations/:id (admin).
func (h *ReservationHandler) UpdateStatus(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeBadRequest, "Identifiant invalide"))
		return
	}

	var req services.UpdateReservationStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondBindingError(c, err)
		return
	}

	if err := h.reservationService.UpdateStatus(id, req); err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidReservationStatus):
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Statut invalide"))
		case errors.Is(err, services.ErrReservationNotFound):
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Réservation non trouvée"))
		default:
			utils.LogError(err, "reservation status update failed")
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Erreur interne du serveur"))
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Statut mis à jour",
	})
}
