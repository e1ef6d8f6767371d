package repositories

import (
	"database/sql"
	"fmt"
	"time"

	"pizza_this_backend/internal/models"
)

// ReservationRepository defines the interface for reservation-related database operations.
type ReservationRepository interface {
	CreateReservation(executor SQLExecutor, reservation *models.Reservation) (int64, error)
	ListByUser(userID string) ([]models.Reservation, error)
	ListAll() ([]models.Reservation, error)
	UpdateStatus(executor SQLExecutor, id int64, status string, adminNotes *string) error
	CountByUser(userID string) (int, error)
}

type reservationRepository struct {
	db *sql.DB
}

// NewReservationRepository creates a new instance of ReservationRepository.
func NewReservationRepository(db *sql.DB) ReservationRepository {
	return &reservationRepository{db: db}
}

// CreateReservation inserts a new reservation and returns its id.
func (r *reservationRepository) CreateReservation(executor SQLExecutor, reservation *models.Reservation) (int64, error) {
	query := `INSERT INTO reservations (user_id, nom, discord, people_count, reservation_date, reservation_time, message, status, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	          RETURNING id`

	currentTime := time.Now()
	reservation.CreatedAt = currentTime
	reservation.UpdatedAt = currentTime
	if reservation.Status == "" {
		reservation.Status = string(models.ReservationStatusEnAttente)
	}

	var id int64
	err := executor.QueryRow(query,
		reservation.UserID, reservation.Nom, reservation.Discord,
		reservation.PeopleCount, reservation.ReservationDate, reservation.ReservationTime,
		reservation.Message, reservation.Status, reservation.CreatedAt, reservation.UpdatedAt,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("%w: creating reservation: %v", ErrDatabaseError, err)
	}
	reservation.ID = id
	return id, nil
}

// ListByUser retrieves the reservations owned by a user, upcoming first.
func (r *reservationRepository) ListByUser(userID string) ([]models.Reservation, error) {
	query := `SELECT id, user_id, nom, discord, people_count, reservation_date, reservation_time, message, status, admin_notes, created_at, updated_at
	          FROM reservations WHERE user_id = $1
	          ORDER BY reservation_date DESC, reservation_time DESC`

	rows, err := r.db.Query(query, userID)
	if err != nil {
		return nil, fmt.Errorf("%w: querying reservations for user %s: %v", ErrDatabaseError, userID, err)
	}
	defer rows.Close()
	return collectReservations(rows, false)
}

// ListAll retrieves every reservation with the owner's email joined in, for
// the admin view.
func (r *reservationRepository) ListAll() ([]models.Reservation, error) {
	query := `SELECT r.id, r.user_id, r.nom, r.discord, r.people_count, r.reservation_date, r.reservation_time, r.message, r.status, r.admin_notes, r.created_at, r.updated_at,
	                 u.email AS user_email
	          FROM reservations r
	          LEFT JOIN users u ON r.user_id = u.id
	          ORDER BY r.reservation_date DESC, r.reservation_time DESC`

	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("%w: querying all reservations: %v", ErrDatabaseError, err)
	}
	defer rows.Close()
	return collectReservations(rows, true)
}

func collectReservations(rows *sql.Rows, withUserEmail bool) ([]models.Reservation, error) {
	reservations := []models.Reservation{}
	for rows.Next() {
		var reservation models.Reservation
		dest := []interface{}{
			&reservation.ID, &reservation.UserID, &reservation.Nom, &reservation.Discord,
			&reservation.PeopleCount, &reservation.ReservationDate, &reservation.ReservationTime,
			&reservation.Message, &reservation.Status, &reservation.AdminNotes,
			&reservation.CreatedAt, &reservation.UpdatedAt,
		}
		if withUserEmail {
			dest = append(dest, &reservation.UserEmail)
		}
		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("%w: scanning reservation: %v", ErrDatabaseError, err)
		}
		reservations = append(reservations, reservation)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating reservation rows: %v", ErrDatabaseError, err)
	}
	return reservations, nil
}

// UpdateStatus sets the status and admin notes of a reservation.
func (r *reservationRepository) UpdateStatus(executor SQLExecutor, id int64, status string, adminNotes *string) error {
	query := `UPDATE reservations SET status = $1, admin_notes = $2, updated_at = $3 WHERE id = $4`
	result, err := executor.Exec(query, status, adminNotes, time.Now(), id)
	if err != nil {
		return fmt.Errorf("%w: updating reservation %d: %v", ErrDatabaseError, id, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: getting rows affected for reservation %d: %v", ErrDatabaseError, id, err)
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// CountByUser returns the number of reservations owned by a user.
func (r *reservationRepository) CountByUser(userID string) (int, error) {
	var count int
	err := r.db.QueryRow(`SELECT COUNT(*) FROM reservations WHERE user_id = $1`, userID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("%w: counting reservations for user %s: %v", ErrDatabaseError, userID, err)
	}
	return count, nil
}
