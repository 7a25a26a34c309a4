package service

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/Jack-WebDev/ahsa/internal/auth"
	"github.com/Jack-WebDev/ahsa/internal/config"
	"github.com/Jack-WebDev/ahsa/internal/domain"
	"github.com/Jack-WebDev/ahsa/internal/events"
	"github.com/Jack-WebDev/ahsa/internal/repository"
	"github.com/Jack-WebDev/ahsa/pkg/util"
)

const otpLength = 6

// RegisterInput carries the full registration profile.
type RegisterInput struct {
	Name        string
	Surname     string
	Email       string
	Password    string
	Gender      domain.Gender
	Title       domain.Title
	Ethnicity   domain.Ethnicity
	Province    domain.Province
	DateOfBirth time.Time
	IDNumber    string
	PhoneNumber string
	Address     string
}

// UserService orchestrates registration, login, and the password
// recovery flow.
type UserService struct {
	users          repository.UserRepository
	otps           repository.OTPRepository
	tokens         *auth.TokenManager
	dispatcher     events.Dispatcher
	logger         *zap.Logger
	bcryptCost     int
	otpTTL         time.Duration
	otpMaxAttempts int
}

// UserDependencies encapsulates requirements for the user service.
type UserDependencies struct {
	UserRepo   repository.UserRepository
	OTPRepo    repository.OTPRepository
	Tokens     *auth.TokenManager
	Dispatcher events.Dispatcher
}

// NewUserService builds the service.
func NewUserService(cfg config.Config, deps UserDependencies, logger *zap.Logger) *UserService {
	return &UserService{
		users:          deps.UserRepo,
		otps:           deps.OTPRepo,
		tokens:         deps.Tokens,
		dispatcher:     deps.Dispatcher,
		logger:         logger,
		bcryptCost:     cfg.Auth.BcryptCost,
		otpTTL:         cfg.Auth.OTPTTL,
		otpMaxAttempts: cfg.Auth.OTPMaxAttempts,
	}
}

// Login authenticates by email and password and issues a token pair.
// Unknown email and wrong password return the same error kind so the
// response does not reveal whether the account exists.
func (s *UserService) Login(ctx context.Context, email, password string) (*domain.TokenPair, string, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, "", util.NewNotFound("user not found")
		}
		return nil, "", util.NewInternal(err)
	}

	if err := auth.ComparePassword(user.PasswordHash, password); err != nil {
		return nil, "", util.NewNotFound("invalid credentials")
	}

	pair, err := s.tokens.IssuePair(payloadFor(user))
	if err != nil {
		return nil, "", util.NewInternal(err)
	}
	return &pair, "Login successful", nil
}

// Register creates a new account. The email must be unused; the check
// happens before any write. Registration does not log the user in.
func (s *UserService) Register(ctx context.Context, input RegisterInput) (string, error) {
	if _, err := s.users.GetByEmail(ctx, input.Email); err == nil {
		return "", util.NewUnauthorized("user already exists")
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return "", util.NewInternal(err)
	}

	hash, err := auth.HashPassword(input.Password, s.bcryptCost)
	if err != nil {
		return "", util.NewInternal(err)
	}

	user := &domain.User{
		ID:           uuid.NewString(),
		Name:         input.Name,
		Surname:      input.Surname,
		Email:        input.Email,
		PasswordHash: hash,
		Gender:       input.Gender,
		Title:        input.Title,
		Ethnicity:    input.Ethnicity,
		Province:     input.Province,
		DateOfBirth:  input.DateOfBirth,
		IDNumber:     input.IDNumber,
		PhoneNumber:  input.PhoneNumber,
		Address:      input.Address,
		Role:         domain.RoleApplicant,
		Status:       domain.UserStatusActive,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return "", util.NewInternal(err)
	}

	s.publish(ctx, events.Event{
		Type:    events.EventUserRegistered,
		UserID:  user.ID,
		Email:   user.Email,
		Payload: events.UserRegisteredPayload{Name: user.Name, Surname: user.Surname},
	})

	return "Your account has been created successfully", nil
}

// ForgotPassword generates a one-time code for the account and hands it
// to the notification pipeline for email delivery.
func (s *UserService) ForgotPassword(ctx context.Context, email string) (string, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", util.NewNotFound("user not found")
		}
		return "", util.NewInternal(err)
	}

	code, err := generateOTP()
	if err != nil {
		return "", util.NewInternal(err)
	}
	if err := s.otps.Save(ctx, user.Email, code, s.otpTTL); err != nil {
		return "", util.NewInternal(err)
	}

	s.publish(ctx, events.Event{
		Type:    events.EventOTPRequested,
		UserID:  user.ID,
		Email:   user.Email,
		Payload: events.OTPRequestedPayload{Name: user.Name, Code: code},
	})

	return "A verification code has been sent to your email", nil
}

// VerifyOTP checks the submitted code and, on success, consumes it and
// mints a short-lived reset token.
func (s *UserService) VerifyOTP(ctx context.Context, email, code string) (string, error) {
	record, err := s.otps.Get(ctx, email)
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", util.NewUnauthorized("verification code expired or not requested")
		}
		return "", util.NewInternal(err)
	}

	if record.Attempts >= s.otpMaxAttempts {
		if err := s.otps.Delete(ctx, email); err != nil {
			s.logger.Warn("failed to delete exhausted code", zap.Error(err))
		}
		return "", util.NewUnauthorized("too many verification attempts")
	}

	if record.Code != code {
		if err := s.otps.IncrementAttempts(ctx, email); err != nil {
			s.logger.Warn("failed to record verification attempt", zap.Error(err))
		}
		return "", util.NewUnauthorized("invalid verification code")
	}

	if err := s.otps.Delete(ctx, email); err != nil {
		return "", util.NewInternal(err)
	}

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return "", util.NewInternal(err)
	}

	resetToken, err := s.tokens.IssueResetToken(payloadFor(user))
	if err != nil {
		return "", util.NewInternal(err)
	}
	return resetToken, nil
}

// ResetPassword validates the reset token and stores the new password.
// Outstanding refresh tokens are not invalidated; they age out on TTL.
func (s *UserService) ResetPassword(ctx context.Context, resetToken, newPassword string) (string, error) {
	claims, err := s.tokens.VerifyReset(resetToken)
	if err != nil {
		return "", util.NewUnauthorized("invalid reset token")
	}

	hash, err := auth.HashPassword(newPassword, s.bcryptCost)
	if err != nil {
		return "", util.NewInternal(err)
	}
	if err := s.users.UpdatePassword(ctx, claims.UserID, hash); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", util.NewNotFound("user not found")
		}
		return "", util.NewInternal(err)
	}

	user, err := s.users.GetByID(ctx, claims.UserID)
	if err == nil {
		s.publish(ctx, events.Event{
			Type:    events.EventPasswordReset,
			UserID:  user.ID,
			Email:   user.Email,
			Payload: events.PasswordResetPayload{Name: user.Name},
		})
	}

	return "Your password has been updated successfully", nil
}

// Profile fetches the account behind an authenticated identity.
func (s *UserService) Profile(ctx context.Context, userID string) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, util.NewNotFound("user not found")
		}
		return nil, util.NewInternal(err)
	}
	return user, nil
}

func (s *UserService) publish(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	event.ID = uuid.NewString()
	event.Timestamp = time.Now()
	if err := s.dispatcher.Publish(ctx, event); err != nil {
		s.logger.Warn("event publish failed", zap.String("type", string(event.Type)), zap.Error(err))
	}
}

func payloadFor(user *domain.User) domain.TokenPayload {
	return domain.TokenPayload{
		UserID: user.ID,
		Role:   string(user.Role),
		Status: string(user.Status),
	}
}

func generateOTP() (string, error) {
	max := big.NewInt(1)
	max.Exp(big.NewInt(10), big.NewInt(otpLength), nil)
	n, err := rand.Int(rand.Reader, max)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%0*d", otpLength, n), nil
}
