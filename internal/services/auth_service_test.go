package services

import (
	"errors"
	"regexp"
	"testing"
	"time"

	"pizza_this_backend/internal/models"
	"pizza_this_backend/pkg/utils"
)

var userCodePattern = regexp.MustCompile(`^USER\d{5}$`)

func newTestAuthService(userRepo *stubUserRepo) (*authService, *stubContactRepo, *stubReservationRepo) {
	contactRepo := newStubContactRepo()
	reservationRepo := newStubReservationRepo()
	tokens := NewTokenService("test-secret", time.Hour)
	svc := NewAuthService(userRepo, contactRepo, reservationRepo, tokens, nil).(*authService)
	return svc, contactRepo, reservationRepo
}

func registerRequest() RegisterRequest {
	return RegisterRequest{
		Nom:      "Dupont",
		Prenom:   "Marie",
		Email:    "marie@example.com",
		Discord:  "marie#1234",
		Password: "secret-pass",
	}
}

func TestRegisterIssuesCodeAndToken(t *testing.T) {
	userRepo := newStubUserRepo()
	svc, _, _ := newTestAuthService(userRepo)

	user, err := svc.Register(registerRequest())
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}

	if !userCodePattern.MatchString(user.ID) {
		t.Errorf("user code %q does not match USERxxxxx", user.ID)
	}
	if user.Token == "" {
		t.Error("registered user has no token")
	}
	if user.PasswordHash != "" {
		t.Error("password digest leaked in response")
	}
	if user.Role != models.RoleClient {
		t.Errorf("new user role = %q, want client", user.Role)
	}

	stored := userRepo.users[user.ID]
	if stored == nil {
		t.Fatal("user not persisted")
	}
	if stored.PasswordHash == "secret-pass" || stored.PasswordHash == "" {
		t.Error("password stored without hashing")
	}
	if !utils.CheckPassword("secret-pass", stored.PasswordHash) {
		t.Error("stored digest does not verify against the password")
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	userRepo := newStubUserRepo()
	svc, _, _ := newTestAuthService(userRepo)

	if _, err := svc.Register(registerRequest()); err != nil {
		t.Fatalf("first Register returned error: %v", err)
	}
	if _, err := svc.Register(registerRequest()); !errors.Is(err, ErrEmailExists) {
		t.Errorf("second Register returned %v, want ErrEmailExists", err)
	}
}

func TestRegisterRetriesOnCodeCollision(t *testing.T) {
	userRepo := newStubUserRepo()
	userRepo.failCreates = 2
	svc, _, _ := newTestAuthService(userRepo)

	user, err := svc.Register(registerRequest())
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if userRepo.createCalls != 3 {
		t.Errorf("CreateUser called %d times, want 3", userRepo.createCalls)
	}
	if user.ID == "" {
		t.Error("user has no code after retries")
	}
}

func TestRegisterGivesUpAfterRepeatedCollisions(t *testing.T) {
	userRepo := newStubUserRepo()
	userRepo.failCreates = codeAttempts
	svc, _, _ := newTestAuthService(userRepo)

	if _, err := svc.Register(registerRequest()); !errors.Is(err, ErrUserCodeExhausted) {
		t.Errorf("Register returned %v, want ErrUserCodeExhausted", err)
	}
}

func TestLoginByEmailAndCode(t *testing.T) {
	userRepo := newStubUserRepo()
	svc, _, _ := newTestAuthService(userRepo)

	created, err := svc.Register(registerRequest())
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}

	for _, identifier := range []string{"marie@example.com", created.ID} {
		user, err := svc.Login(LoginRequest{Identifier: identifier, Password: "secret-pass"})
		if err != nil {
			t.Fatalf("Login(%q) returned error: %v", identifier, err)
		}
		if user.Token == "" {
			t.Errorf("Login(%q) returned no token", identifier)
		}
	}
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	userRepo := newStubUserRepo()
	svc, _, _ := newTestAuthService(userRepo)

	if _, err := svc.Register(registerRequest()); err != nil {
		t.Fatalf("Register returned error: %v", err)
	}

	cases := []LoginRequest{
		{Identifier: "marie@example.com", Password: "wrong"},
		{Identifier: "nobody@example.com", Password: "secret-pass"},
		{Identifier: "USER00000", Password: "secret-pass"},
	}
	for _, req := range cases {
		if _, err := svc.Login(req); !errors.Is(err, ErrInvalidCredentials) {
			t.Errorf("Login(%q) returned %v, want ErrInvalidCredentials", req.Identifier, err)
		}
	}
}

func TestLogoutRevokesToken(t *testing.T) {
	userRepo := newStubUserRepo()
	svc, _, _ := newTestAuthService(userRepo)

	user, err := svc.Register(registerRequest())
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}

	svc.Logout(user.Token)

	if _, err := svc.tokens.Validate(user.Token); !errors.Is(err, ErrTokenRevoked) {
		t.Errorf("Validate after logout returned %v, want ErrTokenRevoked", err)
	}
}

func TestGetProfileAttachesStats(t *testing.T) {
	userRepo := newStubUserRepo()
	svc, contactRepo, reservationRepo := newTestAuthService(userRepo)

	user, err := svc.Register(registerRequest())
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}

	contactRepo.contacts = append(contactRepo.contacts,
		models.Contact{ID: 1, UserID: &user.ID},
		models.Contact{ID: 2, UserID: &user.ID},
	)
	reservationRepo.reservations = append(reservationRepo.reservations,
		models.Reservation{ID: 1, UserID: &user.ID},
	)

	profile, err := svc.GetProfile(user.ID)
	if err != nil {
		t.Fatalf("GetProfile returned error: %v", err)
	}
	if profile.Stats == nil {
		t.Fatal("profile has no stats")
	}
	if profile.Stats.Contacts != 2 || profile.Stats.Reservations != 1 {
		t.Errorf("stats = %+v, want 2 contacts and 1 reservation", profile.Stats)
	}
}

func TestUpdateProfileRequiresCurrentPassword(t *testing.T) {
	userRepo := newStubUserRepo()
	svc, _, _ := newTestAuthService(userRepo)

	user, err := svc.Register(registerRequest())
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}

	nom := "Martin"
	_, err = svc.UpdateProfile(user.ID, UpdateProfileRequest{CurrentPassword: "wrong", Nom: &nom})
	if !errors.Is(err, ErrWrongPassword) {
		t.Errorf("UpdateProfile with wrong password returned %v, want ErrWrongPassword", err)
	}
}

func TestUpdateProfileValidation(t *testing.T) {
	userRepo := newStubUserRepo()
	svc, _, _ := newTestAuthService(userRepo)

	user, err := svc.Register(registerRequest())
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}

	badEmail := "not-an-email"
	short := "abc"
	newPass := "fresh-pass"
	mismatch := "other-pass"

	cases := []struct {
		name string
		req  UpdateProfileRequest
		want error
	}{
		{"bad email", UpdateProfileRequest{CurrentPassword: "secret-pass", Email: &badEmail}, ErrInvalidEmailFormat},
		{"short password", UpdateProfileRequest{CurrentPassword: "secret-pass", NewPassword: &short, ConfirmNewPassword: &short}, ErrPasswordTooShort},
		{"password mismatch", UpdateProfileRequest{CurrentPassword: "secret-pass", NewPassword: &newPass, ConfirmNewPassword: &mismatch}, ErrPasswordMismatch},
		{"empty update", UpdateProfileRequest{CurrentPassword: "secret-pass"}, ErrEmptyUpdate},
	}
	for _, tc := range cases {
		if _, err := svc.UpdateProfile(user.ID, tc.req); !errors.Is(err, tc.want) {
			t.Errorf("%s: UpdateProfile returned %v, want %v", tc.name, err, tc.want)
		}
	}
}

func TestUpdateProfileChangesPassword(t *testing.T) {
	userRepo := newStubUserRepo()
	svc, _, _ := newTestAuthService(userRepo)

	user, err := svc.Register(registerRequest())
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}

	newPass := "fresh-pass"
	if _, err := svc.UpdateProfile(user.ID, UpdateProfileRequest{
		CurrentPassword:    "secret-pass",
		NewPassword:        &newPass,
		ConfirmNewPassword: &newPass,
	}); err != nil {
		t.Fatalf("UpdateProfile returned error: %v", err)
	}

	if _, err := svc.Login(LoginRequest{Identifier: user.Email, Password: "secret-pass"}); !errors.Is(err, ErrInvalidCredentials) {
		t.Error("old password still accepted after change")
	}
	if _, err := svc.Login(LoginRequest{Identifier: user.Email, Password: newPass}); err != nil {
		t.Errorf("new password rejected: %v", err)
	}
}
