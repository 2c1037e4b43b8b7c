package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/go-multierror"

	"github.com/roamly/vacations-api/internal/authz"
	"github.com/roamly/vacations-api/internal/domain"
	"github.com/roamly/vacations-api/internal/repository/ports"
	"github.com/roamly/vacations-api/internal/util"
)

// ResetMailer delivers a one-time password reset code to the user.
type ResetMailer interface {
	SendPasswordReset(ctx context.Context, email, otp string) error
}

type AuthService struct {
	users    ports.UserRepository
	sessions ports.SessionRepository
	resets   ports.PasswordResetRepository
	mailer   ResetMailer
	jwt      *util.JWTManager

	sessionTTL time.Duration
	resetTTL   time.Duration
	otpLength  int
}

type AuthConfig struct {
	SessionTTL time.Duration
	ResetTTL   time.Duration
	OTPLength  int
}

func NewAuthService(
	userRepo ports.UserRepository,
	sessionRepo ports.SessionRepository,
	resetRepo ports.PasswordResetRepository,
	mailer ResetMailer,
	jwtManager *util.JWTManager,
	cfg AuthConfig,
) *AuthService {
	if cfg.SessionTTL <= 0 {
		cfg.SessionTTL = 24 * time.Hour
	}
	if cfg.ResetTTL <= 0 {
		cfg.ResetTTL = 15 * time.Minute
	}
	if cfg.OTPLength <= 0 {
		cfg.OTPLength = 6
	}
	return &AuthService{
		users:      userRepo,
		sessions:   sessionRepo,
		resets:     resetRepo,
		mailer:     mailer,
		jwt:        jwtManager,
		sessionTTL: cfg.SessionTTL,
		resetTTL:   cfg.ResetTTL,
		otpLength:  cfg.OTPLength,
	}
}

type AuthResult struct {
	User      *domain.User
	Token     string
	ExpiresAt time.Time
}

type RegisterInput struct {
	FirstName string
	LastName  string
	Email     string
	Password  string
}

// Register creates an account with the user role. Self-registration can
// never produce an admin; admins are provisioned out of band.
func (s *AuthService) Register(ctx context.Context, input RegisterInput) (*AuthResult, error) {
	firstName := strings.TrimSpace(input.FirstName)
	lastName := strings.TrimSpace(input.LastName)
	email := normalizeEmail(input.Email)

	var merr *multierror.Error
	if firstName == "" {
		merr = multierror.Append(merr, fmt.Errorf("first_name is required"))
	}
	if lastName == "" {
		merr = multierror.Append(merr, fmt.Errorf("last_name is required"))
	}
	if email == "" || !strings.Contains(email, "@") {
		merr = multierror.Append(merr, fmt.Errorf("a valid email is required"))
	}
	if err := util.ValidatePassword(input.Password); err != nil {
		merr = multierror.Append(merr, err)
	}
	if err := merr.ErrorOrNil(); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrValidation, err)
	}

	hash, salt, err := util.DerivePassword(input.Password)
	if err != nil {
		return nil, err
	}

	user, err := s.users.Create(ctx, firstName, lastName, email, hash, salt, domain.RoleUser)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrEmailAlreadyUsed
		}
		return nil, err
	}

	return s.issueSession(ctx, user)
}

func (s *AuthService) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	user, err := s.users.FindByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if isNotFound(err) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if !util.VerifyPassword(password, user.PasswordSalt, user.PasswordHash) {
		return nil, ErrInvalidCredentials
	}
	return s.issueSession(ctx, user)
}

// Authenticate resolves a bearer token to its user. The token must both
// verify and belong to an active, unexpired session; logout revokes it
// even before the JWT itself expires.
func (s *AuthService) Authenticate(ctx context.Context, token string) (*domain.User, error) {
	claims, err := s.jwt.Parse(token)
	if err != nil {
		return nil, ErrSessionExpired
	}

	session, err := s.sessions.FindActiveSession(ctx, token)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrSessionExpired
		}
		return nil, err
	}
	if session.UserID != claims.UserID {
		return nil, ErrSessionExpired
	}

	user, err := s.users.FindByID(ctx, claims.UserID)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrSessionExpired
		}
		return nil, err
	}
	return user, nil
}

func (s *AuthService) Logout(ctx context.Context, token string) error {
	return s.sessions.DeactivateSession(ctx, token)
}

// Refresh swaps a still-valid session for a fresh token, retiring the
// old session so each token is usable from exactly one session row.
func (s *AuthService) Refresh(ctx context.Context, token string) (*AuthResult, error) {
	user, err := s.Authenticate(ctx, token)
	if err != nil {
		return nil, err
	}
	if err := s.sessions.DeactivateSession(ctx, token); err != nil {
		return nil, err
	}
	return s.issueSession(ctx, user)
}

func (s *AuthService) ChangePassword(ctx context.Context, userID uuid.UUID, currentPassword, newPassword string) error {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if isNotFound(err) {
			return ErrUserNotFound
		}
		return err
	}
	if !util.VerifyPassword(currentPassword, user.PasswordSalt, user.PasswordHash) {
		return ErrInvalidCredentials
	}
	if err := util.ValidatePassword(newPassword); err != nil {
		return fmt.Errorf("%w: %s", ErrValidation, err)
	}

	hash, salt, err := util.DerivePassword(newPassword)
	if err != nil {
		return err
	}
	return s.users.UpdatePassword(ctx, userID, hash, salt)
}

// RequestPasswordReset mails a one-time code. An unknown email returns
// nil so the endpoint never confirms which addresses exist.
func (s *AuthService) RequestPasswordReset(ctx context.Context, email string) error {
	if s.mailer == nil {
		return ErrResetUnavailable
	}

	user, err := s.users.FindByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if isNotFound(err) {
			return nil
		}
		return err
	}

	if err := s.resets.ConsumeByUser(ctx, user.ID); err != nil {
		return err
	}

	otp, err := util.GenerateNumericOTP(s.otpLength)
	if err != nil {
		return err
	}
	hash, salt, err := util.DerivePassword(otp)
	if err != nil {
		return err
	}

	reset, err := s.resets.Create(ctx, user.ID, hash, salt, time.Now().Add(s.resetTTL))
	if err != nil {
		return err
	}

	if err := s.mailer.SendPasswordReset(ctx, user.Email, otp); err != nil {
		// The code never reached the user; retire it so it cannot linger.
		_ = s.resets.MarkConsumed(ctx, reset.ID)
		return err
	}
	return nil
}

func (s *AuthService) ConfirmPasswordReset(ctx context.Context, email, otp, newPassword string) error {
	user, err := s.users.FindByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if isNotFound(err) {
			return ErrResetCodeInvalid
		}
		return err
	}

	reset, err := s.resets.FindActiveByUser(ctx, user.ID, time.Now())
	if err != nil {
		if isNotFound(err) {
			return ErrResetCodeInvalid
		}
		return err
	}
	if !util.VerifyPassword(otp, reset.OTPSalt, reset.OTPHash) {
		return ErrResetCodeInvalid
	}

	if err := util.ValidatePassword(newPassword); err != nil {
		return fmt.Errorf("%w: %s", ErrValidation, err)
	}

	hash, salt, err := util.DerivePassword(newPassword)
	if err != nil {
		return err
	}
	if err := s.users.UpdatePassword(ctx, user.ID, hash, salt); err != nil {
		return err
	}
	return s.resets.MarkConsumed(ctx, reset.ID)
}

func (s *AuthService) GetUser(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

type UserListResult struct {
	Items  []domain.User
	Total  int64
	Limit  int
	Offset int
}

func (s *AuthService) ListUsers(ctx context.Context, actor *domain.User, limit, offset int) (*UserListResult, error) {
	if actor == nil || !authz.Can(actor.Role, authz.OpListUsers) {
		return nil, ErrForbidden
	}

	nLimit, nOffset := normalizePagination(limit, offset)
	users, err := s.users.List(ctx, nLimit, nOffset)
	if err != nil {
		return nil, err
	}
	total, err := s.users.Count(ctx)
	if err != nil {
		return nil, err
	}
	return &UserListResult{Items: users, Total: total, Limit: nLimit, Offset: nOffset}, nil
}

func (s *AuthService) issueSession(ctx context.Context, user *domain.User) (*AuthResult, error) {
	token, expiresAt, err := s.jwt.Generate(user.ID, user.Email, user.Role)
	if err != nil {
		return nil, err
	}
	if _, err := s.sessions.CreateSession(ctx, user.ID, token, expiresAt); err != nil {
		return nil, err
	}
	return &AuthResult{User: user, Token: token, ExpiresAt: expiresAt}, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func normalizePagination(limit, offset int) (int, int) {
	const (
		defaultLimit = 20
		maxLimit     = 100
	)

	if limit <= 0 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}
