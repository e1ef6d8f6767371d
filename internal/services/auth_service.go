package services

import (
	"database/sql"
	"errors"
	"fmt"
	"math/rand"
	"strings"

	"pizza_this_backend/internal/models"
	"pizza_this_backend/internal/repositories"
	"pizza_this_backend/pkg/utils"
)

// --- Custom Service Errors ---
var (
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid identifier or password")
	ErrEmailExists        = errors.New("email already registered")
	ErrWrongPassword      = errors.New("current password is incorrect")
	ErrPasswordTooShort   = errors.New("password must be at least 6 characters")
	ErrPasswordMismatch   = errors.New("new passwords do not match")
	ErrEmptyUpdate        = errors.New("no fields to update")
	ErrInvalidEmailFormat = errors.New("invalid email format")
	ErrUserCodeExhausted  = errors.New("could not allocate a unique user code")
	ErrTokenGeneration    = errors.New("failed to generate token")
)

// --- Data Transfer Objects (DTOs) ---

// LoginRequest DTO. Identifier is an email or a user code.
type LoginRequest struct {
	Identifier string `json:"identifier" binding:"required"`
	Password   string `json:"password" binding:"required"`
}

// RegisterRequest DTO
type RegisterRequest struct {
	Nom        string  `json:"nom" binding:"required"`
	Prenom     string  `json:"prenom" binding:"required"`
	Email      string  `json:"email" binding:"required,email"`
	Discord    string  `json:"discord" binding:"required"`
	Password   string  `json:"password" binding:"required,min=6"`
	Phone      *string `json:"phone"`
	Newsletter *bool   `json:"newsletter"`
}

// UpdateProfileRequest DTO. Every field except the re-authentication password
// is optional; only present fields are merged into the store.
type UpdateProfileRequest struct {
	CurrentPassword    string  `json:"current_password" binding:"required"`
	Nom                *string `json:"nom"`
	Prenom             *string `json:"prenom"`
	Email              *string `json:"email"`
	Discord            *string `json:"discord"`
	Phone              *string `json:"phone"`
	Newsletter         *bool   `json:"newsletter"`
	NewPassword        *string `json:"new_password"`
	ConfirmNewPassword *string `json:"confirm_new_password"`
}

// --- AuthService Interface ---
type AuthService interface {
	Register(req RegisterRequest) (*models.User, error)
	Login(req LoginRequest) (*models.User, error)
	Logout(token string)
	GetUser(userID string) (*models.User, error)
	GetProfile(userID string) (*models.User, error)
	UpdateProfile(userID string, req UpdateProfileRequest) (*models.User, error)
}

// --- authService Implementation ---
type authService struct {
	userRepo        repositories.UserRepository
	contactRepo     repositories.ContactRepository
	reservationRepo repositories.ReservationRepository
	tokens          TokenService
	db              *sql.DB

	// newUserCode is swappable in tests.
	newUserCode func() string
}

// NewAuthService creates a new instance of AuthService.
func NewAuthService(
	userRepo repositories.UserRepository,
	contactRepo repositories.ContactRepository,
	reservationRepo repositories.ReservationRepository,
	tokens TokenService,
	db *sql.DB,
) AuthService {
	return &authService{
		userRepo:        userRepo,
		contactRepo:     contactRepo,
		reservationRepo: reservationRepo,
		tokens:          tokens,
		db:              db,
		newUserCode:     generateUserCode,
	}
}

// generateUserCode produces a human-typable account code like USER00042.
// Uniqueness is not checked here: the insert's unique constraint is the
// arbiter, and Register retries on a code collision.
func generateUserCode() string {
	return fmt.Sprintf("USER%05d", rand.Intn(99999)+1)
}

// codeAttempts bounds the retry loop for code collisions. With 99999
// possible codes the odds of exhausting this are negligible until the
// table is nearly full.
const codeAttempts = 5

// Register creates an account and returns the user with a fresh session
// token attached. Duplicate emails surface as ErrEmailExists straight from
// the store's unique constraint; no check-then-insert window exists.
func (s *authService) Register(req RegisterRequest) (*models.User, error) {
	hashed, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := models.User{
		Nom:          strings.TrimSpace(req.Nom),
		Prenom:       strings.TrimSpace(req.Prenom),
		Email:        strings.TrimSpace(req.Email),
		Discord:      utils.NewNullString(strings.TrimSpace(req.Discord)),
		Phone:        utils.TrimPtr(req.Phone),
		PasswordHash: hashed,
		Role:         models.RoleClient,
	}
	if req.Newsletter != nil {
		user.Newsletter = *req.Newsletter
	}

	if err := s.createWithFreshCode(&user); err != nil {
		return nil, err
	}
	return s.finishLogin(user.ID)
}

// createWithFreshCode inserts the user under newly generated codes until one
// sticks. An email conflict aborts immediately; a primary-key conflict means
// the code was taken and a new one is tried.
func (s *authService) createWithFreshCode(user *models.User) error {
	for attempt := 0; attempt < codeAttempts; attempt++ {
		user.ID = s.newUserCode()
		err := s.userRepo.CreateUser(s.db, user)
		if err == nil {
			return nil
		}
		if errors.Is(err, repositories.ErrDuplicateKey) {
			if strings.Contains(err.Error(), "users_email_key") {
				return ErrEmailExists
			}
			if strings.Contains(err.Error(), "users_pkey") {
				continue
			}
			return ErrEmailExists
		}
		return fmt.Errorf("failed to create user: %w", err)
	}
	return ErrUserCodeExhausted
}

// Login verifies credentials, stamps last_login and returns the user with a
// fresh token attached.
func (s *authService) Login(req LoginRequest) (*models.User, error) {
	user, err := s.userRepo.FindByIdentifier(strings.TrimSpace(req.Identifier))
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("login attempt failed: %w", err)
	}

	if !utils.CheckPassword(req.Password, user.PasswordHash) {
		return nil, ErrInvalidCredentials
	}

	if err := s.userRepo.UpdateLastLogin(s.db, user.ID); err != nil {
		return nil, fmt.Errorf("failed to update last login: %w", err)
	}

	return s.finishLogin(user.ID)
}

// finishLogin loads the fresh row, attaches a token and strips the digest.
func (s *authService) finishLogin(userID string) (*models.User, error) {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load user after auth: %w", err)
	}

	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTokenGeneration, err)
	}

	user.PasswordHash = ""
	user.Token = token
	return user, nil
}

// Logout revokes the presented token server-side. The client is still
// expected to discard its copy.
func (s *authService) Logout(token string) {
	s.tokens.Revoke(token)
}

// GetUser resolves a validated token subject to a live user row. A missing
// row means the account was deleted after the token was issued.
func (s *authService) GetUser(userID string) (*models.User, error) {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to load user: %w", err)
	}
	user.PasswordHash = ""
	return user, nil
}

// GetProfile returns the user with their submission counters attached.
func (s *authService) GetProfile(userID string) (*models.User, error) {
	user, err := s.GetUser(userID)
	if err != nil {
		return nil, err
	}

	contacts, err := s.contactRepo.CountByUser(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to count contacts: %w", err)
	}
	reservations, err := s.reservationRepo.CountByUser(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to count reservations: %w", err)
	}

	user.Stats = &models.UserStats{Contacts: contacts, Reservations: reservations}
	return user, nil
}

// UpdateProfile applies a self-service profile update. The caller must
// re-authenticate with their current password regardless of which fields
// change.
func (s *authService) UpdateProfile(userID string, req UpdateProfileRequest) (*models.User, error) {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to load user: %w", err)
	}

	if !utils.CheckPassword(req.CurrentPassword, user.PasswordHash) {
		return nil, ErrWrongPassword
	}

	upd := models.UserUpdate{
		Nom:        utils.TrimPtr(req.Nom),
		Prenom:     utils.TrimPtr(req.Prenom),
		Discord:    utils.TrimPtr(req.Discord),
		Phone:      utils.TrimPtr(req.Phone),
		Newsletter: req.Newsletter,
	}

	if req.Email != nil {
		email := strings.TrimSpace(*req.Email)
		if !utils.IsValidEmail(email) {
			return nil, ErrInvalidEmailFormat
		}
		upd.Email = &email
	}

	if req.NewPassword != nil && *req.NewPassword != "" {
		if !utils.IsValidPasswordLength(*req.NewPassword, 6) {
			return nil, ErrPasswordTooShort
		}
		if req.ConfirmNewPassword == nil || *req.NewPassword != *req.ConfirmNewPassword {
			return nil, ErrPasswordMismatch
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
		if errors.Is(err, repositories.ErrDuplicateKey) {
			return nil, ErrEmailExists
		}
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}

	return s.GetUser(userID)
}
