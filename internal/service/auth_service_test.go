package service

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/roamly/vacations-api/internal/domain"
	"github.com/roamly/vacations-api/internal/util"
)

type fakeUserRepo struct {
	createInput struct {
		firstName string
		lastName  string
		email     string
		hash      []byte
		salt      []byte
		role      domain.Role
	}
	createResult *domain.User
	createErr    error

	findByEmailInput  string
	findByEmailResult *domain.User
	findByEmailErr    error

	findByIDInput  uuid.UUID
	findByIDResult *domain.User
	findByIDErr    error

	updatePasswordInput struct {
		id   uuid.UUID
		hash []byte
		salt []byte
	}
	updatePasswordErr error

	listInputs []struct {
		limit  int
		offset int
	}
	listResult []domain.User
	listErr    error

	countResult int64
	countErr    error
}

func (f *fakeUserRepo) Create(ctx context.Context, firstName, lastName, email string, passwordHash, passwordSalt []byte, role domain.Role) (*domain.User, error) {
	f.createInput.firstName = firstName
	f.createInput.lastName = lastName
	f.createInput.email = email
	f.createInput.hash = append([]byte(nil), passwordHash...)
	f.createInput.salt = append([]byte(nil), passwordSalt...)
	f.createInput.role = role
	return f.createResult, f.createErr
}

func (f *fakeUserRepo) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	f.findByEmailInput = email
	return f.findByEmailResult, f.findByEmailErr
}

func (f *fakeUserRepo) FindByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	f.findByIDInput = id
	return f.findByIDResult, f.findByIDErr
}

func (f *fakeUserRepo) UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash, passwordSalt []byte) error {
	f.updatePasswordInput.id = id
	f.updatePasswordInput.hash = append([]byte(nil), passwordHash...)
	f.updatePasswordInput.salt = append([]byte(nil), passwordSalt...)
	return f.updatePasswordErr
}

func (f *fakeUserRepo) List(ctx context.Context, limit, offset int) ([]domain.User, error) {
	f.listInputs = append(f.listInputs, struct {
		limit  int
		offset int
	}{limit: limit, offset: offset})
	return f.listResult, f.listErr
}

func (f *fakeUserRepo) Count(ctx context.Context) (int64, error) {
	return f.countResult, f.countErr
}

type fakeSessionRepo struct {
	createdSessions []domain.Session

	deactivatedTokens []string
	deactivateErr     error

	findActiveToken  string
	findActiveResult *domain.Session
	findActiveErr    error
}

func (f *fakeSessionRepo) CreateSession(ctx context.Context, userID uuid.UUID, token string, expiresAt time.Time) (*domain.Session, error) {
	session := domain.Session{
		ID:        int64(len(f.createdSessions) + 1),
		UserID:    userID,
		Token:     token,
		ExpiresAt: expiresAt,
		IsActive:  true,
	}
	f.createdSessions = append(f.createdSessions, session)
	return &session, nil
}

func (f *fakeSessionRepo) DeactivateSession(ctx context.Context, token string) error {
	f.deactivatedTokens = append(f.deactivatedTokens, token)
	return f.deactivateErr
}

func (f *fakeSessionRepo) FindActiveSession(ctx context.Context, token string) (*domain.Session, error) {
	f.findActiveToken = token
	return f.findActiveResult, f.findActiveErr
}

type resetCreateCall struct {
	userID    uuid.UUID
	hash      []byte
	salt      []byte
	expiresAt time.Time
}

type fakePasswordResetRepo struct {
	createCalls  []resetCreateCall
	createResult *domain.PasswordReset
	createErr    error

	findActiveResult *domain.PasswordReset
	findActiveErr    error

	markedConsumed []int64
	consumeCalls   []uuid.UUID
}

func (f *fakePasswordResetRepo) Create(ctx context.Context, userID uuid.UUID, otpHash, otpSalt []byte, expiresAt time.Time) (*domain.PasswordReset, error) {
	f.createCalls = append(f.createCalls, resetCreateCall{
		userID:    userID,
		hash:      append([]byte(nil), otpHash...),
		salt:      append([]byte(nil), otpSalt...),
		expiresAt: expiresAt,
	})
	if f.createResult != nil {
		return f.createResult, f.createErr
	}
	return &domain.PasswordReset{ID: int64(len(f.createCalls)), UserID: userID, OTPHash: otpHash, OTPSalt: otpSalt, ExpiresAt: expiresAt}, f.createErr
}

func (f *fakePasswordResetRepo) FindActiveByUser(ctx context.Context, userID uuid.UUID, now time.Time) (*domain.PasswordReset, error) {
	return f.findActiveResult, f.findActiveErr
}

func (f *fakePasswordResetRepo) MarkConsumed(ctx context.Context, id int64) error {
	f.markedConsumed = append(f.markedConsumed, id)
	return nil
}

func (f *fakePasswordResetRepo) ConsumeByUser(ctx context.Context, userID uuid.UUID) error {
	f.consumeCalls = append(f.consumeCalls, userID)
	return nil
}

type sentMail struct {
	email string
	otp   string
}

type fakeResetMailer struct {
	sent    []sentMail
	sendErr error
}

func (f *fakeResetMailer) SendPasswordReset(ctx context.Context, email, otp string) error {
	if f.sendErr != nil {
		return f.sendErr
	}
	f.sent = append(f.sent, sentMail{email: email, otp: otp})
	return nil
}

func newAuthServiceForTests(users *fakeUserRepo, sessions *fakeSessionRepo, resets *fakePasswordResetRepo, mailer ResetMailer) *AuthService {
	return NewAuthService(users, sessions, resets, mailer, util.NewJWTManager("test-secret", time.Hour), AuthConfig{
		SessionTTL: time.Hour,
		ResetTTL:   15 * time.Minute,
		OTPLength:  6,
	})
}

func testUserWithPassword(t *testing.T, password string) *domain.User {
	t.Helper()
	hash, salt, err := util.DerivePassword(password)
	if err != nil {
		t.Fatalf("derive password: %v", err)
	}
	return &domain.User{
		ID:           uuid.New(),
		FirstName:    "Ada",
		LastName:     "Lovelace",
		Email:        "ada@example.com",
		PasswordHash: hash,
		PasswordSalt: salt,
		Role:         domain.RoleUser,
	}
}

func TestRegisterSuccess(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	userRepo := &fakeUserRepo{
		createResult: &domain.User{ID: userID, Email: "test@example.com", Role: domain.RoleUser},
	}
	sessionRepo := &fakeSessionRepo{}
	svc := newAuthServiceForTests(userRepo, sessionRepo, &fakePasswordResetRepo{}, &fakeResetMailer{})

	result, err := svc.Register(ctx, RegisterInput{
		FirstName: "Test",
		LastName:  "User",
		Email:     " Test@Example.com ",
		Password:  "SuperSecret1",
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if result.User == nil || result.User.ID != userID {
		t.Fatalf("unexpected user in result: %+v", result.User)
	}
	if userRepo.createInput.email != "test@example.com" {
		t.Fatalf("email should be normalized, got %q", userRepo.createInput.email)
	}
	if userRepo.createInput.role != domain.RoleUser {
		t.Fatalf("self-registration must create a user role, got %q", userRepo.createInput.role)
	}
	if len(userRepo.createInput.hash) == 0 || len(userRepo.createInput.salt) == 0 {
		t.Fatal("expected password hash and salt to be set")
	}
	if len(sessionRepo.createdSessions) != 1 {
		t.Fatalf("expected session to be created, got %d", len(sessionRepo.createdSessions))
	}
	if result.Token == "" {
		t.Fatal("expected JWT token in result")
	}
}

func TestRegisterValidation(t *testing.T) {
	svc := newAuthServiceForTests(&fakeUserRepo{}, &fakeSessionRepo{}, &fakePasswordResetRepo{}, &fakeResetMailer{})

	cases := []struct {
		name  string
		input RegisterInput
	}{
		{"weak password", RegisterInput{FirstName: "A", LastName: "B", Email: "a@example.com", Password: "weakpass"}},
		{"missing names", RegisterInput{Email: "a@example.com", Password: "SuperSecret1"}},
		{"bad email", RegisterInput{FirstName: "A", LastName: "B", Email: "not-an-email", Password: "SuperSecret1"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Register(context.Background(), tc.input)
			if !errors.Is(err, ErrValidation) {
				t.Fatalf("expected ErrValidation, got %v", err)
			}
		})
	}
}

func TestRegisterEmailExists(t *testing.T) {
	userRepo := &fakeUserRepo{createErr: &pgconn.PgError{Code: "23505"}}
	svc := newAuthServiceForTests(userRepo, &fakeSessionRepo{}, &fakePasswordResetRepo{}, &fakeResetMailer{})

	_, err := svc.Register(context.Background(), RegisterInput{
		FirstName: "Dup",
		LastName:  "User",
		Email:     "duplicate@example.com",
		Password:  "ValidPass123",
	})
	if !errors.Is(err, ErrEmailAlreadyUsed) {
		t.Fatalf("expected ErrEmailAlreadyUsed, got %v", err)
	}
}

func TestLogin(t *testing.T) {
	ctx := context.Background()
	user := testUserWithPassword(t, "right-password1A")

	t.Run("unknown email", func(t *testing.T) {
		svc := newAuthServiceForTests(&fakeUserRepo{findByEmailErr: sql.ErrNoRows}, &fakeSessionRepo{}, &fakePasswordResetRepo{}, &fakeResetMailer{})
		_, err := svc.Login(ctx, "none@example.com", "password")
		if !errors.Is(err, ErrInvalidCredentials) {
			t.Fatalf("expected ErrInvalidCredentials, got %v", err)
		}
	})

	t.Run("wrong password", func(t *testing.T) {
		svc := newAuthServiceForTests(&fakeUserRepo{findByEmailResult: user}, &fakeSessionRepo{}, &fakePasswordResetRepo{}, &fakeResetMailer{})
		_, err := svc.Login(ctx, user.Email, "wrong-password")
		if !errors.Is(err, ErrInvalidCredentials) {
			t.Fatalf("expected ErrInvalidCredentials, got %v", err)
		}
	})

	t.Run("success", func(t *testing.T) {
		userRepo := &fakeUserRepo{findByEmailResult: user}
		sessionRepo := &fakeSessionRepo{}
		svc := newAuthServiceForTests(userRepo, sessionRepo, &fakePasswordResetRepo{}, &fakeResetMailer{})

		result, err := svc.Login(ctx, "Ada@Example.com", "right-password1A")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if userRepo.findByEmailInput != "ada@example.com" {
			t.Fatalf("email should be normalized, got %q", userRepo.findByEmailInput)
		}
		if result.Token == "" || len(sessionRepo.createdSessions) != 1 {
			t.Fatal("expected token and session")
		}
	})
}

func TestAuthenticate(t *testing.T) {
	ctx := context.Background()
	user := testUserWithPassword(t, "Password1")
	userRepo := &fakeUserRepo{findByIDResult: user}
	sessionRepo := &fakeSessionRepo{}
	svc := newAuthServiceForTests(userRepo, sessionRepo, &fakePasswordResetRepo{}, &fakeResetMailer{})

	token, _, err := svc.jwt.Generate(user.ID, user.Email, user.Role)
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}

	t.Run("success", func(t *testing.T) {
		sessionRepo.findActiveResult = &domain.Session{UserID: user.ID, Token: token, IsActive: true}
		sessionRepo.findActiveErr = nil

		authenticated, err := svc.Authenticate(ctx, token)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if authenticated.ID != user.ID {
			t.Fatal("expected user to be returned")
		}
		if sessionRepo.findActiveToken != token {
			t.Fatal("expected session lookup with token")
		}
	})

	t.Run("revoked session", func(t *testing.T) {
		sessionRepo.findActiveResult = nil
		sessionRepo.findActiveErr = sql.ErrNoRows

		_, err := svc.Authenticate(ctx, token)
		if !errors.Is(err, ErrSessionExpired) {
			t.Fatalf("expected ErrSessionExpired, got %v", err)
		}
	})

	t.Run("session for other user", func(t *testing.T) {
		sessionRepo.findActiveResult = &domain.Session{UserID: uuid.New(), Token: token, IsActive: true}
		sessionRepo.findActiveErr = nil

		_, err := svc.Authenticate(ctx, token)
		if !errors.Is(err, ErrSessionExpired) {
			t.Fatalf("expected ErrSessionExpired, got %v", err)
		}
	})

	t.Run("garbage token", func(t *testing.T) {
		_, err := svc.Authenticate(ctx, "not-a-jwt")
		if !errors.Is(err, ErrSessionExpired) {
			t.Fatalf("expected ErrSessionExpired, got %v", err)
		}
	})
}

func TestLogoutDeactivatesSession(t *testing.T) {
	sessionRepo := &fakeSessionRepo{}
	svc := newAuthServiceForTests(&fakeUserRepo{}, sessionRepo, &fakePasswordResetRepo{}, &fakeResetMailer{})

	if err := svc.Logout(context.Background(), "token123"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(sessionRepo.deactivatedTokens) != 1 || sessionRepo.deactivatedTokens[0] != "token123" {
		t.Fatal("expected session to be deactivated with token123")
	}
}

func TestRefreshRotatesSession(t *testing.T) {
	ctx := context.Background()
	user := testUserWithPassword(t, "Password1")
	userRepo := &fakeUserRepo{findByIDResult: user}
	sessionRepo := &fakeSessionRepo{}
	svc := newAuthServiceForTests(userRepo, sessionRepo, &fakePasswordResetRepo{}, &fakeResetMailer{})

	token, _, err := svc.jwt.Generate(user.ID, user.Email, user.Role)
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}
	sessionRepo.findActiveResult = &domain.Session{UserID: user.ID, Token: token, IsActive: true}

	result, err := svc.Refresh(ctx, token)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(sessionRepo.deactivatedTokens) != 1 || sessionRepo.deactivatedTokens[0] != token {
		t.Fatal("expected old session to be deactivated")
	}
	if len(sessionRepo.createdSessions) != 1 {
		t.Fatal("expected replacement session")
	}
	if result.Token == "" || result.Token == token {
		t.Fatal("expected a fresh token")
	}
}

func TestChangePassword(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		user := testUserWithPassword(t, "old-passwordA1")
		repo := &fakeUserRepo{findByIDResult: user}
		svc := newAuthServiceForTests(repo, &fakeSessionRepo{}, &fakePasswordResetRepo{}, &fakeResetMailer{})

		if err := svc.ChangePassword(ctx, user.ID, "old-passwordA1", "NewPassword1"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if repo.updatePasswordInput.id != user.ID {
			t.Fatal("expected password update for user")
		}
		if len(repo.updatePasswordInput.hash) == 0 || len(repo.updatePasswordInput.salt) == 0 {
			t.Fatal("expected new hash and salt")
		}
	})

	t.Run("wrong current password", func(t *testing.T) {
		user := testUserWithPassword(t, "old-passwordA1")
		svc := newAuthServiceForTests(&fakeUserRepo{findByIDResult: user}, &fakeSessionRepo{}, &fakePasswordResetRepo{}, &fakeResetMailer{})

		err := svc.ChangePassword(ctx, user.ID, "wrong-pass", "NewPassword1")
		if !errors.Is(err, ErrInvalidCredentials) {
			t.Fatalf("expected ErrInvalidCredentials, got %v", err)
		}
	})

	t.Run("weak new password", func(t *testing.T) {
		user := testUserWithPassword(t, "old-passwordA1")
		svc := newAuthServiceForTests(&fakeUserRepo{findByIDResult: user}, &fakeSessionRepo{}, &fakePasswordResetRepo{}, &fakeResetMailer{})

		err := svc.ChangePassword(ctx, user.ID, "old-passwordA1", "alllowercase")
		if !errors.Is(err, ErrValidation) {
			t.Fatalf("expected ErrValidation, got %v", err)
		}
	})

	t.Run("unknown user", func(t *testing.T) {
		svc := newAuthServiceForTests(&fakeUserRepo{findByIDErr: sql.ErrNoRows}, &fakeSessionRepo{}, &fakePasswordResetRepo{}, &fakeResetMailer{})

		err := svc.ChangePassword(ctx, uuid.New(), "old", "NewPassword1")
		if !errors.Is(err, ErrUserNotFound) {
			t.Fatalf("expected ErrUserNotFound, got %v", err)
		}
	})
}

func TestRequestPasswordReset(t *testing.T) {
	ctx := context.Background()
	user := testUserWithPassword(t, "Password1")

	t.Run("success", func(t *testing.T) {
		resetRepo := &fakePasswordResetRepo{}
		mailer := &fakeResetMailer{}
		svc := newAuthServiceForTests(&fakeUserRepo{findByEmailResult: user}, &fakeSessionRepo{}, resetRepo, mailer)

		if err := svc.RequestPasswordReset(ctx, user.Email); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(resetRepo.consumeCalls) != 1 || resetRepo.consumeCalls[0] != user.ID {
			t.Fatal("expected prior codes to be consumed")
		}
		if len(resetRepo.createCalls) != 1 || resetRepo.createCalls[0].userID != user.ID {
			t.Fatal("expected a reset row for the user")
		}
		if len(resetRepo.createCalls[0].hash) == 0 || len(resetRepo.createCalls[0].salt) == 0 {
			t.Fatal("expected otp hash and salt to be set")
		}
		if len(mailer.sent) != 1 || len(mailer.sent[0].otp) != svc.otpLength {
			t.Fatalf("expected one mail with a %d-digit code", svc.otpLength)
		}
	})

	t.Run("unknown email returns nil", func(t *testing.T) {
		mailer := &fakeResetMailer{}
		svc := newAuthServiceForTests(&fakeUserRepo{findByEmailErr: sql.ErrNoRows}, &fakeSessionRepo{}, &fakePasswordResetRepo{}, mailer)

		if err := svc.RequestPasswordReset(ctx, "none@example.com"); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if len(mailer.sent) != 0 {
			t.Fatal("expected no mail for unknown email")
		}
	})

	t.Run("mailer failure retires the code", func(t *testing.T) {
		resetRepo := &fakePasswordResetRepo{}
		mailer := &fakeResetMailer{sendErr: errors.New("smtp down")}
		svc := newAuthServiceForTests(&fakeUserRepo{findByEmailResult: user}, &fakeSessionRepo{}, resetRepo, mailer)

		if err := svc.RequestPasswordReset(ctx, user.Email); err == nil {
			t.Fatal("expected error from mailer")
		}
		if len(resetRepo.markedConsumed) != 1 {
			t.Fatal("expected undelivered code to be marked consumed")
		}
	})

	t.Run("no mailer configured", func(t *testing.T) {
		resetRepo := &fakePasswordResetRepo{}
		svc := newAuthServiceForTests(&fakeUserRepo{findByEmailResult: user}, &fakeSessionRepo{}, resetRepo, nil)

		if err := svc.RequestPasswordReset(ctx, user.Email); !errors.Is(err, ErrResetUnavailable) {
			t.Fatalf("expected ErrResetUnavailable, got %v", err)
		}
		if len(resetRepo.createCalls) != 0 {
			t.Fatal("expected no reset row without a mailer")
		}
	})
}

func TestConfirmPasswordReset(t *testing.T) {
	ctx := context.Background()
	user := testUserWithPassword(t, "Password1")

	newResetRow := func(t *testing.T, otp string) *domain.PasswordReset {
		t.Helper()
		hash, salt, err := util.DerivePassword(otp)
		if err != nil {
			t.Fatalf("derive otp: %v", err)
		}
		return &domain.PasswordReset{ID: 7, UserID: user.ID, OTPHash: hash, OTPSalt: salt, ExpiresAt: time.Now().Add(time.Minute)}
	}

	t.Run("success", func(t *testing.T) {
		repo := &fakeUserRepo{findByEmailResult: user}
		resetRepo := &fakePasswordResetRepo{findActiveResult: newResetRow(t, "123456")}
		svc := newAuthServiceForTests(repo, &fakeSessionRepo{}, resetRepo, &fakeResetMailer{})

		if err := svc.ConfirmPasswordReset(ctx, user.Email, "123456", "ResetPass12"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if repo.updatePasswordInput.id != user.ID {
			t.Fatal("expected password update")
		}
		if len(resetRepo.markedConsumed) != 1 || resetRepo.markedConsumed[0] != 7 {
			t.Fatal("expected code to be consumed")
		}
	})

	t.Run("wrong code", func(t *testing.T) {
		resetRepo := &fakePasswordResetRepo{findActiveResult: newResetRow(t, "123456")}
		svc := newAuthServiceForTests(&fakeUserRepo{findByEmailResult: user}, &fakeSessionRepo{}, resetRepo, &fakeResetMailer{})

		err := svc.ConfirmPasswordReset(ctx, user.Email, "000000", "ResetPass12")
		if !errors.Is(err, ErrResetCodeInvalid) {
			t.Fatalf("expected ErrResetCodeInvalid, got %v", err)
		}
	})

	t.Run("no active code", func(t *testing.T) {
		resetRepo := &fakePasswordResetRepo{findActiveErr: sql.ErrNoRows}
		svc := newAuthServiceForTests(&fakeUserRepo{findByEmailResult: user}, &fakeSessionRepo{}, resetRepo, &fakeResetMailer{})

		err := svc.ConfirmPasswordReset(ctx, user.Email, "123456", "ResetPass12")
		if !errors.Is(err, ErrResetCodeInvalid) {
			t.Fatalf("expected ErrResetCodeInvalid, got %v", err)
		}
	})

	t.Run("weak new password", func(t *testing.T) {
		resetRepo := &fakePasswordResetRepo{findActiveResult: newResetRow(t, "123456")}
		svc := newAuthServiceForTests(&fakeUserRepo{findByEmailResult: user}, &fakeSessionRepo{}, resetRepo, &fakeResetMailer{})

		err := svc.ConfirmPasswordReset(ctx, user.Email, "123456", "weakpassword")
		if !errors.Is(err, ErrValidation) {
			t.Fatalf("expected ErrValidation, got %v", err)
		}
	})
}

func TestListUsers(t *testing.T) {
	ctx := context.Background()
	admin := &domain.User{ID: uuid.New(), Role: domain.RoleAdmin}
	regular := &domain.User{ID: uuid.New(), Role: domain.RoleUser}

	t.Run("admin sees users", func(t *testing.T) {
		repo := &fakeUserRepo{
			listResult:  []domain.User{{ID: uuid.New()}, {ID: uuid.New()}},
			countResult: 2,
		}
		svc := newAuthServiceForTests(repo, &fakeSessionRepo{}, &fakePasswordResetRepo{}, &fakeResetMailer{})

		result, err := svc.ListUsers(ctx, admin, 25, 10)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(result.Items) != 2 || result.Total != 2 {
			t.Fatalf("unexpected result: %+v", result)
		}
		if len(repo.listInputs) != 1 || repo.listInputs[0].limit != 25 || repo.listInputs[0].offset != 10 {
			t.Fatalf("unexpected pagination: %+v", repo.listInputs)
		}
	})

	t.Run("non-admin denied", func(t *testing.T) {
		svc := newAuthServiceForTests(&fakeUserRepo{}, &fakeSessionRepo{}, &fakePasswordResetRepo{}, &fakeResetMailer{})
		_, err := svc.ListUsers(ctx, regular, 10, 0)
		if !errors.Is(err, ErrForbidden) {
			t.Fatalf("expected ErrForbidden, got %v", err)
		}
	})

	t.Run("pagination clamped", func(t *testing.T) {
		repo := &fakeUserRepo{}
		svc := newAuthServiceForTests(repo, &fakeSessionRepo{}, &fakePasswordResetRepo{}, &fakeResetMailer{})

		if _, err := svc.ListUsers(ctx, admin, 500, -5); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if repo.listInputs[0].limit != 100 || repo.listInputs[0].offset != 0 {
			t.Fatalf("expected clamped pagination, got %+v", repo.listInputs[0])
		}
	})
}
