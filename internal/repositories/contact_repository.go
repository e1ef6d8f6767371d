package repositories

import (
	"database/sql"
	"fmt"
	"time"

	"pizza_this_backend/internal/models"
)

// ContactRepository defines the interface for contact-related database operations.
type ContactRepository interface {
	CreateContact(executor SQLExecutor, contact *models.Contact) (int64, error)
	ListByUser(userID string) ([]models.Contact, error)
	ListAll() ([]models.Contact, error)
	UpdateStatus(executor SQLExecutor, id int64, status string, adminResponse *string) error
	CountByUser(userID string) (int, error)
}

type contactRepository struct {
	db *sql.DB
}

// NewContactRepository creates a new instance of ContactRepository.
func NewContactRepository(db *sql.DB) ContactRepository {
	return &contactRepository{db: db}
}

// CreateContact inserts a new contact message and returns its id.
func (r *contactRepository) CreateContact(executor SQLExecutor, contact *models.Contact) (int64, error) {
	query := `INSERT INTO contacts (user_id, nom, discord, subject, message, status, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	          RETURNING id`

	currentTime := time.Now()
	contact.CreatedAt = currentTime
	contact.UpdatedAt = currentTime
	if contact.Status == "" {
		contact.Status = string(models.ContactStatusNouveau)
	}

	var id int64
	err := executor.QueryRow(query,
		contact.UserID, contact.Nom, contact.Discord, contact.Subject,
		contact.Message, contact.Status, contact.CreatedAt, contact.UpdatedAt,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("%w: creating contact: %v", ErrDatabaseError, err)
	}
	contact.ID = id
	return id, nil
}

// ListByUser retrieves the contacts owned by a user, newest first.
func (r *contactRepository) ListByUser(userID string) ([]models.Contact, error) {
	query := `SELECT id, user_id, nom, discord, subject, message, status, admin_response, created_at, updated_at
	          FROM contacts WHERE user_id = $1 ORDER BY created_at DESC`

	rows, err := r.db.Query(query, userID)
	if err != nil {
		return nil, fmt.Errorf("%w: querying contacts for user %s: %v", ErrDatabaseError, userID, err)
	}
	defer rows.Close()

	contacts := []models.Contact{}
	for rows.Next() {
		var contact models.Contact
		if err := rows.Scan(
			&contact.ID, &contact.UserID, &contact.Nom, &contact.Discord,
			&contact.Subject, &contact.Message, &contact.Status,
			&contact.AdminResponse, &contact.CreatedAt, &contact.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("%w: scanning contact: %v", ErrDatabaseError, err)
		}
		contacts = append(contacts, contact)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating contact rows: %v", ErrDatabaseError, err)
	}
	return contacts, nil
}

// ListAll retrieves every contact with the owner's email joined in, for the
// admin view. Contacts whose owner was deleted keep a null owner reference.
func (r *contactRepository) ListAll() ([]models.Contact, error) {
	query := `SELECT c.id, c.user_id, c.nom, c.discord, c.subject, c.message, c.status, c.admin_response, c.created_at, c.updated_at,
	                 u.email AS user_email
	          FROM contacts c
	          LEFT JOIN users u ON c.user_id = u.id
	          ORDER BY c.created_at DESC`

	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("%w: querying all contacts: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	contacts := []models.Contact{}
	for rows.Next() {
		var contact models.Contact
		if err := rows.Scan(
			&contact.ID, &contact.UserID, &contact.Nom, &contact.Discord,
			&contact.Subject, &contact.Message, &contact.Status,
			&contact.AdminResponse, &contact.CreatedAt, &contact.UpdatedAt,
			&contact.UserEmail,
		); err != nil {
			return nil, fmt.Errorf("%w: scanning contact: %v", ErrDatabaseError, err)
		}
		contacts = append(contacts, contact)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating contact rows: %v", ErrDatabaseError, err)
	}
	return contacts, nil
}

// UpdateStatus sets the status and admin response of a contact.
func (r *contactRepository) UpdateStatus(executor SQLExecutor, id int64, status string, adminResponse *string) error {
	query := `UPDATE contacts SET status = $1, admin_response = $2, updated_at = $3 WHERE id = $4`
	result, err := executor.Exec(query, status, adminResponse, time.Now(), id)
	if err != nil {
		return fmt.Errorf("%w: updating contact %d: %v", ErrDatabaseError, id, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: getting rows affected for contact %d: %v", ErrDatabaseError, id, err)
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// CountByUser returns the number of contacts owned by a user.
func (r *contactRepository) CountByUser(userID string) (int, error) {
	var count int
	err := r.db.QueryRow(`SELECT COUNT(*) FROM contacts WHERE user_id = $1`, userID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("%w: counting contacts for user %s: %v", ErrDatabaseError, userID, err)
	}
	return count, nil
}
