package services

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"pizza_this_backend/internal/models"
	"pizza_this_backend/internal/repositories"
	"pizza_this_backend/pkg/utils"
)

// --- Custom Service Errors for admin user management ---
var (
	ErrInvalidRole  = errors.New("invalid role")
	ErrSelfDeletion = errors.New("cannot delete own account")
)

// --- User admin DTOs ---

// CreateUserRequest is the admin-side account creation payload. Unlike
// self-registration, discord is optional and a role can be assigned.
type CreateUserRequest struct {
	Nom        string  `json:"nom" binding:"required"`
	Prenom     string  `json:"prenom" binding:"required"`
	Email      string  `json:"email" binding:"required,email"`
	Password   string  `json:"password" binding:"required,min=6"`
	Discord    *string `json:"discord"`
	Phone      *string `json:"phone"`
	Role       *string `json:"role"`
	Newsletter *bool   `json:"newsletter"`
}

// UpdateUserRequest is the admin-side update payload. No current-password
// re-authentication applies; loyalty counters and role are admin-editable.
type UpdateUserRequest struct {
	Nom           *string  `json:"nom"`
	Prenom        *string  `json:"prenom"`
	Email         *string  `json:"email"`
	Discord       *string  `json:"discord"`
	Phone         *string  `json:"phone"`
	Role          *string  `json:"role"`
	Newsletter    *bool    `json:"newsletter"`
	OrdersCount   *int     `json:"orders_count"`
	TotalSpent    *float64 `json:"total_spent"`
	LoyaltyPoints *int     `json:"loyalty_points"`
	NewPassword   *string  `json:"new_password"`
}

// --- UserService Interface ---
type UserService interface {
	ListUsers() ([]models.User, error)
	CreateUser(req CreateUserRequest) (*models.User, error)
	UpdateUser(userID string, req UpdateUserRequest) (*models.User, error)
	DeleteUser(userID, actorID string) error
}

// --- userService Implementation ---
type userService struct {
	userRepo repositories.UserRepository
	db       *sql.DB

	newUserCode func() string
}

// NewUserService creates a new instance of UserService.
func NewUserService(userRepo repositories.UserRepository, db *sql.DB) UserService {
	return &userService{
		userRepo:    userRepo,
		db:          db,
		newUserCode: generateUserCode,
	}
}

// ListUsers returns all users with password digests stripped.
func (s *userService) ListUsers() ([]models.User, error) {
	users, err := s.userRepo.ListUsers()
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	for i := range users {
		users[i].PasswordHash = ""
	}
	return users, nil
}

// CreateUser creates an account on behalf of an admin.
func (s *userService) CreateUser(req CreateUserRequest) (*models.User, error) {
	role := models.RoleClient
	if req.Role != nil {
		if !models.IsValidRole(*req.Role) {
			return nil, ErrInvalidRole
		}
		role = *req.Role
	}

	hashed, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := models.User{
		Nom:          strings.TrimSpace(req.Nom),
		Prenom:       strings.TrimSpace(req.Prenom),
		Email:        strings.TrimSpace(req.Email),
		Discord:      utils.TrimPtr(req.Discord),
		Phone:        utils.TrimPtr(req.Phone),
		PasswordHash: hashed,
		Role:         role,
	}
	if req.Newsletter != nil {
		user.Newsletter = *req.Newsletter
	}

	for attempt := 0; attempt < codeAttempts; attempt++ {
		user.ID = s.newUserCode()
		err := s.userRepo.CreateUser(s.db, &user)
		if err == nil {
			created, err := s.userRepo.FindByID(user.ID)
			if err != nil {
				return nil, fmt.Errorf("user created but failed to reload: %w", err)
			}
			created.PasswordHash = ""
			return created, nil
		}
		if errors.Is(err, repositories.ErrDuplicateKey) {
			if strings.Contains(err.Error(), "users_pkey") {
				continue
			}
			return nil, ErrEmailExists
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return nil, ErrUserCodeExhausted
}

// UpdateUser applies an admin update to any account.
func (s *userService) UpdateUser(userID string, req UpdateUserRequest) (*models.User, error) {
	upd := models.UserUpdate{
		Nom:           utils.TrimPtr(req.Nom),
		Prenom:        utils.TrimPtr(req.Prenom),
		Discord:       utils.TrimPtr(req.Discord),
		Phone:         utils.TrimPtr(req.Phone),
		Newsletter:    req.Newsletter,
		OrdersCount:   req.OrdersCount,
		TotalSpent:    req.TotalSpent,
		LoyaltyPoints: req.LoyaltyPoints,
	}

	if req.Email != nil {
		email := strings.TrimSpace(*req.Email)
		if !utils.IsValidEmail(email) {
			return nil, ErrInvalidEmailFormat
		}
		upd.Email = &email
	}
	if req.Role != nil {
		if !models.IsValidRole(*req.Role) {
			return nil, ErrInvalidRole
		}
		upd.Role = req.Role
	}
	if req.NewPassword != nil && *req.NewPassword != "" {
		if !utils.IsValidPasswordLength(*req.NewPassword, 6) {
			return nil, ErrPasswordTooShort
		}
		hashed, err := utils.HashPassword(*req.NewPassword)
		if err != nil {
			return nil, fmt.Errorf("failed to hash new password: %w", err)
		}
		upd.PasswordHash = &hashed
	}

	if upd.IsEmpty() {
		return nil, ErrEmptyUpdate
	}

	if err := s.userRepo.UpdateUser(s.db, userID, &upd); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		if errors.Is(err, repositories.ErrDuplicateKey) {
			return nil, ErrEmailExists
		}
		return nil, fmt.Errorf("failed to update user: %w", err)
	}

	updated, err := s.userRepo.FindByID(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to reload updated user: %w", err)
	}
	updated.PasswordHash = ""
	return updated, nil
}

// DeleteUser removes an account, detaching its contacts and reservations so
// they remain queryable with a null owner reference. Admins cannot delete
// themselves.
func (s *userService) DeleteUser(userID, actorID string) error {
	if userID == actorID {
		return ErrSelfDeletion
	}
	if err := s.userRepo.DeleteUser(userID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("failed to delete user: %w", err)
	}
	return nil
}
