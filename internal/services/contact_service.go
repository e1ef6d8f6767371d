package services

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"pizza_this_backend/internal/models"
	"pizza_this_backend/internal/notifier"
	"pizza_this_backend/internal/repositories"
	"pizza_this_backend/pkg/utils"
)

// --- Custom Service Errors for contacts ---
var (
	ErrContactNotFound      = errors.New("contact not found")
	ErrInvalidContactStatus = errors.New("invalid contact status")
)

// --- Contact DTOs ---

// SubmitContactRequest carries the public form fields. The wire names are
// French, matching the site's frontend; storage uses English columns.
type SubmitContactRequest struct {
	Nom     string `json:"nom" binding:"required"`
	Discord string `json:"discord" binding:"required"`
	Subject string `json:"sujet" binding:"required"`
	Message string `json:"message" binding:"required"`
}

type UpdateContactStatusRequest struct {
	Status        string  `json:"status" binding:"required"`
	AdminResponse *string `json:"admin_response"`
}

// --- ContactService Interface ---
type ContactService interface {
	// Submit records a contact message, attributing it to userID when the
	// submitter was authenticated (nil otherwise).
	Submit(req SubmitContactRequest, userID *string) (*models.Contact, error)
	// ListForUser returns the caller's own messages.
	ListForUser(userID string) ([]models.Contact, error)
	// ListAll returns every message with submitter emails joined in.
	ListAll() ([]models.Contact, error)
	UpdateStatus(id int64, req UpdateContactStatusRequest) error
}

// --- contactService Implementation ---
type contactService struct {
	contactRepo repositories.ContactRepository
	db          *sql.DB
	notifier    notifier.Notifier
}

// NewContactService creates a new instance of ContactService.
func NewContactService(contactRepo repositories.ContactRepository, db *sql.DB, n notifier.Notifier) ContactService {
	if n == nil {
		n = notifier.NopNotifier{}
	}
	return &contactService{contactRepo: contactRepo, db: db, notifier: n}
}

func (s *contactService) Submit(req SubmitContactRequest, userID *string) (*models.Contact, error) {
	contact := models.Contact{
		UserID:  userID,
		Nom:     strings.TrimSpace(req.Nom),
		Discord: strings.TrimSpace(req.Discord),
		Subject: strings.TrimSpace(req.Subject),
		Message: strings.TrimSpace(req.Message),
		Status:  string(models.ContactStatusNouveau),
	}

	if _, err := s.contactRepo.CreateContact(s.db, &contact); err != nil {
		return nil, fmt.Errorf("failed to create contact: %w", err)
	}

	// Delivery happens off the request path.
	go s.notifier.Notify(fmt.Sprintf(
		"📬 Nouveau message de contact\nNom: %s\nDiscord: %s\nSujet: %s\nMessage: %s",
		contact.Nom, contact.Discord, contact.Subject, contact.Message))

	return &contact, nil
}

func (s *contactService) ListForUser(userID string) ([]models.Contact, error) {
	contacts, err := s.contactRepo.ListByUser(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list contacts: %w", err)
	}
	return contacts, nil
}

func (s *contactService) ListAll() ([]models.Contact, error) {
	contacts, err := s.contactRepo.ListAll()
	if err != nil {
		return nil, fmt.Errorf("failed to list contacts: %w", err)
	}
	return contacts, nil
}

func (s *contactService) UpdateStatus(id int64, req UpdateContactStatusRequest) error {
	if !models.IsValidContactStatus(req.Status) {
		return ErrInvalidContactStatus
	}

	err := s.contactRepo.UpdateStatus(s.db, id, req.Status, utils.TrimPtr(req.AdminResponse))
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrContactNotFound
		}
		return fmt.Errorf("failed to update contact status: %w", err)
	}
	return nil
}
