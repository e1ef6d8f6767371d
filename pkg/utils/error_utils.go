package utils

import (
	"errors"
	"net/http"
	"regexp"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// APIError carries an HTTP status and a user-facing message. The wire format
// is always {"error": message}; Code is for server-side logs only.
type APIError struct {
	StatusCode int
	Code       string
	Message    string
}

// NewAPIError creates a new APIError instance.
func NewAPIError(statusCode int, code string, message string) *APIError {
	return &APIError{
		StatusCode: statusCode,
		Code:       code,
		Message:    message,
	}
}

// RespondWithError sends a standardized JSON error response.
func RespondWithError(c *gin.Context, err *APIError) {
	c.JSON(err.StatusCode, gin.H{"error": err.Message})
	c.Abort()
}

// Common Error Constants
const (
	ErrCodeBadRequest          = "BAD_REQUEST"
	ErrCodeUnauthorized        = "UNAUTHORIZED"
	ErrCodeForbidden           = "FORBIDDEN"
	ErrCodeNotFound            = "NOT_FOUND"
	ErrCodeConflict            = "CONFLICT"
	ErrCodeInternalServerError = "INTERNAL_SERVER_ERROR"
	ErrCodeValidationFailed    = "VALIDATION_FAILED"
)

// BindingErrorMessage converts a gin binding error into the French
// user-facing message the API contract expects. Unknown validation tags and
// malformed JSON fall back to a generic message.
func BindingErrorMessage(err error) string {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		field := jsonFieldName(fe)
		switch fe.Tag() {
		case "required":
			return "Le champ " + field + " est obligatoire"
		case "email":
			return "Format d'email invalide"
		case "min", "max":
			if strings.Contains(field, "password") {
				return "Le mot de passe doit contenir au moins 6 caractères"
			}
			if field == "personnes" {
				return "Nombre de personnes invalide (1-20)"
			}
			return "Le champ " + field + " est invalide"
		case "hhmm":
			return "Heure de réservation invalide"
		}
		return "Le champ " + field + " est invalide"
	}
	return "Données JSON invalides"
}

func jsonFieldName(fe validator.FieldError) string {
	// With the json tag name registered on the engine this is already the
	// wire name; the camel-to-snake pass is the fallback for engines
	// without it (tests binding through gin's default validator).
	var b strings.Builder
	for i, r := range fe.Field() {
		if r >= 'A' && r <= 'Z' {
			if i > 0 {
				b.WriteByte('_')
			}
			b.WriteRune(r + ('a' - 'A'))
		} else {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// RespondBindingError sends a 400 with the message derived from a binding error.
func RespondBindingError(c *gin.Context, err error) {
	RespondWithError(c, NewAPIError(http.StatusBadRequest, ErrCodeValidationFailed, BindingErrorMessage(err)))
}

// Validation functions

// IsEmpty checks if a string is empty after trimming whitespace.
func IsEmpty(s string) bool {
	return strings.TrimSpace(s) == ""
}

// IsValidEmail checks if a string is a valid email format.
var emailRegex = regexp.MustCompile(`^[a-z0-9._%+\-]+@[a-z0-9.\-]+\.[a-z]{2,4}$`)

func IsValidEmail(email string) bool {
	return emailRegex.MatchString(strings.ToLower(email))
}

// timeRegex matches a 24h HH:MM clock value, single-digit hour allowed.
var timeRegex = regexp.MustCompile(`^([01]?[0-9]|2[0-3]):[0-5][0-9]$`)

// IsValidTimeHHMM reports whether s is a valid HH:MM time of day.
func IsValidTimeHHMM(s string) bool {
	return timeRegex.MatchString(s)
}

// IsValidPasswordLength checks if password meets minimum length requirement.
func IsValidPasswordLength(password string, minLength int) bool {
	return len(password) >= minLength
}
