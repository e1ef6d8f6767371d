package services

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"pizza_this_backend/internal/models"
	"pizza_this_backend/internal/notifier"
	"pizza_this_backend/internal/repositories"
	"pizza_this_backend/pkg/utils"
)

// --- Custom Service Errors for reservations ---
var (
	ErrReservationNotFound       = errors.New("reservation not found")
	ErrInvalidReservationStatus  = errors.New("invalid reservation status")
	ErrInvalidReservationDate    = errors.New("invalid reservation date")
	ErrReservationDateInPast     = errors.New("reservation date is in the past")
	ErrInvalidReservationPersons = errors.New("invalid people count")
)

// --- Reservation DTOs ---

// SubmitReservationRequest carries the public form fields. The wire names
// are French, matching the site's frontend; storage uses English columns.
type SubmitReservationRequest struct {
	Nom             string  `json:"nom" binding:"required"`
	Discord         string  `json:"discord" binding:"required"`
	PeopleCount     int     `json:"personnes" binding:"required,min=1,max=20"`
	ReservationDate string  `json:"jour" binding:"required"`
	ReservationTime string  `json:"heure" binding:"required,hhmm"`
	Message         *string `json:"message"`
}

type UpdateReservationStatusRequest struct {
	Status     string  `json:"status" binding:"required"`
	AdminNotes *string `json:"admin_notes"`
}

// --- ReservationService Interface ---
type ReservationService interface {
	// Submit records a reservation request, attributing it to userID when the
	// submitter was authenticated (nil otherwise).
	Submit(req SubmitReservationRequest, userID *string) (*models.Reservation, error)
	ListForUser(userID string) ([]models.Reservation, error)
	ListAll() ([]models.Reservation, error)
	UpdateStatus(id int64, req UpdateReservationStatusRequest) error
}

// --- reservationService Implementation ---
type reservationService struct {
	reservationRepo repositories.ReservationRepository
	db              *sql.DB
	notifier        notifier.Notifier

	// now is swappable in tests for the past-date check.
	now func() time.Time
}

// NewReservationService creates a new instance of ReservationService.
func NewReservationService(reservationRepo repositories.ReservationRepository, db *sql.DB, n notifier.Notifier) ReservationService {
	if n == nil {
		n = notifier.NopNotifier{}
	}
	return &reservationService{
		reservationRepo: reservationRepo,
		db:              db,
		notifier:        n,
		now:             time.Now,
	}
}

// validateDate accepts today or later, compared on calendar dates.
func (s *reservationService) validateDate(date string) error {
	parsed, err := time.Parse("2006-01-02", date)
	if err != nil {
		return ErrInvalidReservationDate
	}
	today, _ := time.Parse("2006-01-02", s.now().Format("2006-01-02"))
	if parsed.Before(today) {
		return ErrReservationDateInPast
	}
	return nil
}

func (s *reservationService) Submit(req SubmitReservationRequest, userID *string) (*models.Reservation, error) {
	if err := s.validateDate(req.ReservationDate); err != nil {
		return nil, err
	}
	if req.PeopleCount < 1 || req.PeopleCount > 20 {
		return nil, ErrInvalidReservationPersons
	}

	reservation := models.Reservation{
		UserID:          userID,
		Nom:             strings.TrimSpace(req.Nom),
		Discord:         strings.TrimSpace(req.Discord),
		PeopleCount:     req.PeopleCount,
		ReservationDate: req.ReservationDate,
		ReservationTime: req.ReservationTime,
		Message:         utils.TrimPtr(req.Message),
		Status:          string(models.ReservationStatusEnAttente),
	}

	if _, err := s.reservationRepo.CreateReservation(s.db, &reservation); err != nil {
		return nil, fmt.Errorf("failed to create reservation: %w", err)
	}

	// Delivery happens off the request path.
	go s.notifier.Notify(fmt.Sprintf(
		"🍕 Nouvelle réservation\nNom: %s\nDiscord: %s\nPersonnes: %d\nDate: %s à %s",
		reservation.Nom, reservation.Discord, reservation.PeopleCount,
		reservation.ReservationDate, reservation.ReservationTime))

	return &reservation, nil
}

func (s *reservationService) ListForUser(userID string) ([]models.Reservation, error) {
	reservations, err := s.reservationRepo.ListByUser(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list reservations: %w", err)
	}
	return reservations, nil
}

func (s *reservationService) ListAll() ([]models.Reservation, error) {
	reservations, err := s.reservationRepo.ListAll()
	if err != nil {
		return nil, fmt.Errorf("failed to list reservations: %w", err)
	}
	return reservations, nil
}

func (s *reservationService) UpdateStatus(id int64, req UpdateReservationStatusRequest) error {
	if !models.IsValidReservationStatus(req.Status) {
		return ErrInvalidReservationStatus
	}

	err := s.reservationRepo.UpdateStatus(s.db, id, req.Status, utils.TrimPtr(req.AdminNotes))
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrReservationNotFound
		}
		return fmt.Errorf("failed to update reservation status: %w", err)
	}
	return nil
}
