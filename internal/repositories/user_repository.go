package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/lib/pq" // For pq.Error

	"pizza_this_backend/internal/models"
)

// UserRepository defines the interface for user-related database operations.
type UserRepository interface {
	CreateUser(executor SQLExecutor, user *models.User) error
	FindByIdentifier(identifier string) (*models.User, error)
	FindByID(userID string) (*models.User, error)
	ListUsers() ([]models.User, error)
	UpdateUser(executor SQLExecutor, userID string, upd *models.UserUpdate) error
	UpdateLastLogin(executor SQLExecutor, userID string) error
	DeleteUser(userID string) error
}

type userRepository struct {
	db *sql.DB
}

// NewUserRepository creates a new instance of UserRepository.
func NewUserRepository(db *sql.DB) UserRepository {
	return &userRepository{db: db}
}

const userColumns = `id, nom, prenom, email, discord, phone, password_hash, role, newsletter,
	       member_since, orders_count, total_spent, loyalty_points, created_at, updated_at, last_login`

func scanUser(row interface{ Scan(dest ...interface{}) error }) (*models.User, error) {
	user := &models.User{}
	var lastLogin sql.NullTime
	err := row.Scan(
		&user.ID, &user.Nom, &user.Prenom, &user.Email, &user.Discord, &user.Phone,
		&user.PasswordHash, &user.Role, &user.Newsletter, &user.MemberSince,
		&user.OrdersCount, &user.TotalSpent, &user.LoyaltyPoints,
		&user.CreatedAt, &user.UpdatedAt, &lastLogin,
	)
	if err != nil {
		return nil, err
	}
	if lastLogin.Valid {
		user.LastLogin = &lastLogin.Time
	}
	return user, nil
}

// CreateUser inserts a new user row. There is no prior existence check: a
// unique-constraint violation from Postgres is the control path for both
// duplicate emails and code collisions, and the constraint name is carried
// in the wrapped error for the service layer to inspect.
func (r *userRepository) CreateUser(executor SQLExecutor, user *models.User) error {
	query := `INSERT INTO users (id, nom, prenom, email, discord, phone, password_hash, role, newsletter, member_since, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`

	currentTime := time.Now()
	if user.CreatedAt.IsZero() {
		user.CreatedAt = currentTime
	}
	user.UpdatedAt = currentTime
	if user.MemberSince == 0 {
		user.MemberSince = currentTime.Year()
	}

	_, err := executor.Exec(query,
		user.ID, user.Nom, user.Prenom, user.Email, user.Discord, user.Phone,
		user.PasswordHash, user.Role, user.Newsletter, user.MemberSince,
		user.CreatedAt, user.UpdatedAt,
	)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) {
			if pqErr.Code.Name() == "unique_violation" {
				return fmt.Errorf("%w: %s (constraint: %s)", ErrDuplicateKey, pqErr.Message, pqErr.Constraint)
			}
		}
		return fmt.Errorf("%w: creating user: %v", ErrDatabaseError, err)
	}
	return nil
}

// FindByIdentifier retrieves a user by email or user code. The password
// digest is populated for credential checks; callers strip it before any
// response leaves the service layer.
func (r *userRepository) FindByIdentifier(identifier string) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1 OR id = $1`
	user, err := scanUser(r.db.QueryRow(query, identifier))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: finding user by identifier: %v", ErrDatabaseError, err)
	}
	return user, nil
}

// FindByID retrieves a user by their code.
func (r *userRepository) FindByID(userID string) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	user, err := scanUser(r.db.QueryRow(query, userID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: finding user by ID %s: %v", ErrDatabaseError, userID, err)
	}
	return user, nil
}

// ListUsers retrieves all users, newest first.
func (r *userRepository) ListUsers() ([]models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users ORDER BY created_at DESC`
	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("%w: querying users: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	users := []models.User{}
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanning user: %v", ErrDatabaseError, err)
		}
		users = append(users, *user)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating user rows: %v", ErrDatabaseError, err)
	}
	return users, nil
}

// UpdateUser applies the non-nil fields of upd to the user row.
func (r *userRepository) UpdateUser(executor SQLExecutor, userID string, upd *models.UserUpdate) error {
	var sets []string
	var args []interface{}
	argCount := 1

	addSet := func(column string, value interface{}) {
		sets = append(sets, fmt.Sprintf("%s = $%d", column, argCount))
		args = append(args, value)
		argCount++
	}

	if upd.Nom != nil {
		addSet("nom", *upd.Nom)
	}
	if upd.Prenom != nil {
		addSet("prenom", *upd.Prenom)
	}
	if upd.Email != nil {
		addSet("email", *upd.Email)
	}
	if upd.Discord != nil {
		addSet("discord", *upd.Discord)
	}
	if upd.Phone != nil {
		addSet("phone", *upd.Phone)
	}
	if upd.Role != nil {
		addSet("role", *upd.Role)
	}
	if upd.Newsletter != nil {
		addSet("newsletter", *upd.Newsletter)
	}
	if upd.OrdersCount != nil {
		addSet("orders_count", *upd.OrdersCount)
	}
	if upd.TotalSpent != nil {
		addSet("total_spent", *upd.TotalSpent)
	}
	if upd.LoyaltyPoints != nil {
		addSet("loyalty_points", *upd.LoyaltyPoints)
	}
	if upd.PasswordHash != nil {
		addSet("password_hash", *upd.PasswordHash)
	}
	if len(sets) == 0 {
		return nil
	}
	addSet("updated_at", time.Now())

	args = append(args, userID)
	query := fmt.Sprintf("UPDATE users SET %s WHERE id = $%d", strings.Join(sets, ", "), argCount)

	result, err := executor.Exec(query, args...)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) {
			if pqErr.Code.Name() == "unique_violation" {
				return fmt.Errorf("%w: %s (constraint: %s)", ErrDuplicateKey, pqErr.Message, pqErr.Constraint)
			}
		}
		return fmt.Errorf("%w: updating user %s: %v", ErrDatabaseError, userID, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: getting rows affected for user %s: %v", ErrDatabaseError, userID, err)
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// UpdateLastLogin stamps the user's last_login column.
func (r *userRepository) UpdateLastLogin(executor SQLExecutor, userID string) error {
	_, err := executor.Exec(`UPDATE users SET last_login = $1 WHERE id = $2`, time.Now(), userID)
	if err != nil {
		return fmt.Errorf("%w: updating last_login for user %s: %v", ErrDatabaseError, userID, err)
	}
	return nil
}

// DeleteUser removes a user in a single transaction, first nulling the owner
// reference on the user's contacts and reservations so those records survive
// with a null owner instead of being cascade-deleted.
func (r *userRepository) DeleteUser(userID string) error {
	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("%w: beginning delete transaction: %v", ErrDatabaseError, err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`UPDATE contacts SET user_id = NULL WHERE user_id = $1`, userID); err != nil {
		return fmt.Errorf("%w: detaching contacts for user %s: %v", ErrDatabaseError, userID, err)
	}
	if _, err := tx.Exec(`UPDATE reservations SET user_id = NULL WHERE user_id = $1`, userID); err != nil {
		return fmt.Errorf("%w: detaching reservations for user %s: %v", ErrDatabaseError, userID, err)
	}

	result, err := tx.Exec(`DELETE FROM users WHERE id = $1`, userID)
	if err != nil {
		return fmt.Errorf("%w: deleting user %s: %v", ErrDatabaseError, userID, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: getting rows affected for deleting user %s: %v", ErrDatabaseError, userID, err)
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%w: committing delete for user %s: %v", ErrDatabaseError, userID, err)
	}
	return nil
}
