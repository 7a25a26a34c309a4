package service_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/Jack-WebDev/ahsa/internal/auth"
	"github.com/Jack-WebDev/ahsa/internal/config"
	"github.com/Jack-WebDev/ahsa/internal/domain"
	"github.com/Jack-WebDev/ahsa/internal/events"
	"github.com/Jack-WebDev/ahsa/internal/repository"
	"github.com/Jack-WebDev/ahsa/internal/service"
	"github.com/Jack-WebDev/ahsa/pkg/util"
)

type memoryUserRepo struct {
	mu      sync.Mutex
	users   map[string]*domain.User // keyed by id
	creates int
}

func newMemoryUserRepo() *memoryUserRepo {
	return &memoryUserRepo{users: make(map[string]*domain.User)}
}

func (r *memoryUserRepo) Create(_ context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.creates++
	stored := *user
	stored.CreatedAt = time.Now()
	stored.UpdatedAt = stored.CreatedAt
	r.users[user.ID] = &stored
	return nil
}

func (r *memoryUserRepo) GetByID(_ context.Context, id string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := *user
	return &copied, nil
}

func (r *memoryUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, user := range r.users {
		if user.Email == email {
			copied := *user
			return &copied, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *memoryUserRepo) UpdatePassword(_ context.Context, id, passwordHash string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[id]
	if !ok {
		return pgx.ErrNoRows
	}
	user.PasswordHash = passwordHash
	user.UpdatedAt = time.Now()
	return nil
}

type memoryOTPRepo struct {
	mu       sync.Mutex
	codes    map[string]string
	attempts map[string]int
}

func newMemoryOTPRepo() *memoryOTPRepo {
	return &memoryOTPRepo{codes: make(map[string]string), attempts: make(map[string]int)}
}

func (r *memoryOTPRepo) Save(_ context.Context, email, code string, _ time.Duration) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.codes[email] = code
	r.attempts[email] = 0
	return nil
}

func (r *memoryOTPRepo) Get(_ context.Context, email string) (*repository.OTPRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	code, ok := r.codes[email]
	if !ok {
		return nil, redis.Nil
	}
	return &repository.OTPRecord{Code: code, Attempts: r.attempts[email]}, nil
}

func (r *memoryOTPRepo) IncrementAttempts(_ context.Context, email string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.attempts[email]++
	return nil
}

func (r *memoryOTPRepo) Delete(_ context.Context, email string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.codes, email)
	delete(r.attempts, email)
	return nil
}

func testConfig() config.Config {
	return config.Config{
		Auth: config.AuthConfig{
			AccessSecret:   "access-secret",
			RefreshSecret:  "refresh-secret",
			ResetSecret:    "reset-secret",
			AccessTTL:      time.Minute,
			RefreshTTL:     time.Hour,
			ResetTTL:       time.Minute,
			BcryptCost:     bcrypt.MinCost,
			OTPTTL:         time.Minute,
			OTPMaxAttempts: 3,
		},
	}
}

type fixture struct {
	svc        *service.UserService
	users      *memoryUserRepo
	otps       *memoryOTPRepo
	tokens     *auth.TokenManager
	dispatcher events.Dispatcher
}

func newFixture() *fixture {
	cfg := testConfig()
	users := newMemoryUserRepo()
	otps := newMemoryOTPRepo()
	tokens := auth.NewTokenManager(cfg.Auth)
	dispatcher := events.NewInMemoryDispatcher()
	svc := service.NewUserService(cfg, service.UserDependencies{
		UserRepo:   users,
		OTPRepo:    otps,
		Tokens:     tokens,
		Dispatcher: dispatcher,
	}, zap.NewNop())
	return &fixture{svc: svc, users: users, otps: otps, tokens: tokens, dispatcher: dispatcher}
}

func registerInput(email string) service.RegisterInput {
	return service.RegisterInput{
		Name:        "Jack",
		Surname:     "Mokoena",
		Email:       email,
		Password:    "secret",
		Gender:      domain.GenderMale,
		Title:       domain.TitleMr,
		Ethnicity:   domain.EthnicityBlack,
		Province:    domain.ProvinceGauteng,
		DateOfBirth: time.Date(1990, 4, 12, 0, 0, 0, 0, time.UTC),
		IDNumber:    "9004125009087",
		PhoneNumber: "0821234567",
		Address:     "12 Main Road, Johannesburg",
	}
}

func TestRegisterThenLogin(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	message, err := f.svc.Register(ctx, registerInput("jack@example.com"))
	require.NoError(t, err)
	assert.Equal(t, "Your account has been created successfully", message)

	pair, loginMsg, err := f.svc.Login(ctx, "jack@example.com", "secret")
	require.NoError(t, err)
	assert.Equal(t, "Login successful", loginMsg)
	assert.NotEmpty(t, pair.AccessToken)
	assert.NotEmpty(t, pair.RefreshToken)
	assert.NotEqual(t, pair.AccessToken, pair.RefreshToken)

	claims, err := f.tokens.VerifyAccess(pair.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "Applicant", claims.Role)
}

func TestRegisterStoresHashedPassword(t *testing.T) {
	f := newFixture()

	_, err := f.svc.Register(context.Background(), registerInput("jack@example.com"))
	require.NoError(t, err)

	user, err := f.users.GetByEmail(context.Background(), "jack@example.com")
	require.NoError(t, err)
	assert.NotEqual(t, "secret", user.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("secret")))
}

func TestRegisterDuplicateEmail(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	_, err := f.svc.Register(ctx, registerInput("jack@example.com"))
	require.NoError(t, err)

	_, err = f.svc.Register(ctx, registerInput("jack@example.com"))
	require.Error(t, err)
	assert.Equal(t, util.CodeUnauthorized, util.ToDomainError(err).Code)
	assert.Equal(t, "user already exists", util.ToDomainError(err).Message)
	assert.Equal(t, 1, f.users.creates, "duplicate registration must not write")
}

func TestLoginErrorsDoNotRevealAccountExistence(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	_, err := f.svc.Register(ctx, registerInput("jack@example.com"))
	require.NoError(t, err)

	_, _, unknownErr := f.svc.Login(ctx, "nobody@example.com", "secret")
	require.Error(t, unknownErr)
	_, _, wrongPassErr := f.svc.Login(ctx, "jack@example.com", "wrong")
	require.Error(t, wrongPassErr)

	assert.Equal(t, util.ToDomainError(unknownErr).Code, util.ToDomainError(wrongPassErr).Code)
	assert.Equal(t, util.CodeNotFound, util.ToDomainError(wrongPassErr).Code)
}

func TestPasswordRecoveryFlow(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	var mailedCode string
	f.dispatcher.Subscribe(events.EventOTPRequested, func(_ context.Context, event events.Event) error {
		payload := event.Payload.(events.OTPRequestedPayload)
		mailedCode = payload.Code
		return nil
	})

	_, err := f.svc.Register(ctx, registerInput("jack@example.com"))
	require.NoError(t, err)

	_, err = f.svc.ForgotPassword(ctx, "jack@example.com")
	require.NoError(t, err)
	require.Len(t, mailedCode, 6)

	// wrong code is rejected and counted
	_, err = f.svc.VerifyOTP(ctx, "jack@example.com", "000000")
	if mailedCode == "000000" {
		t.Skip("generated code collided with the test's wrong guess")
	}
	require.Error(t, err)
	assert.Equal(t, util.CodeUnauthorized, util.ToDomainError(err).Code)

	resetToken, err := f.svc.VerifyOTP(ctx, "jack@example.com", mailedCode)
	require.NoError(t, err)
	require.NotEmpty(t, resetToken)

	// the code is single use
	_, err = f.svc.VerifyOTP(ctx, "jack@example.com", mailedCode)
	require.Error(t, err)

	_, err = f.svc.ResetPassword(ctx, resetToken, "newsecret")
	require.NoError(t, err)

	_, _, err = f.svc.Login(ctx, "jack@example.com", "secret")
	require.Error(t, err, "old password must stop working")

	pair, _, err := f.svc.Login(ctx, "jack@example.com", "newsecret")
	require.NoError(t, err)
	assert.NotEmpty(t, pair.AccessToken)
}

func TestForgotPasswordUnknownEmail(t *testing.T) {
	f := newFixture()

	_, err := f.svc.ForgotPassword(context.Background(), "nobody@example.com")
	require.Error(t, err)
	assert.Equal(t, util.CodeNotFound, util.ToDomainError(err).Code)
}

func TestVerifyOTPWithoutRequest(t *testing.T) {
	f := newFixture()

	_, err := f.svc.VerifyOTP(context.Background(), "jack@example.com", "123456")
	require.Error(t, err)
	assert.Equal(t, util.CodeUnauthorized, util.ToDomainError(err).Code)
}

func TestVerifyOTPAttemptLimit(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	var mailedCode string
	f.dispatcher.Subscribe(events.EventOTPRequested, func(_ context.Context, event events.Event) error {
		mailedCode = event.Payload.(events.OTPRequestedPayload).Code
		return nil
	})

	_, err := f.svc.Register(ctx, registerInput("jack@example.com"))
	require.NoError(t, err)
	_, err = f.svc.ForgotPassword(ctx, "jack@example.com")
	require.NoError(t, err)

	wrong := "000000"
	if mailedCode == wrong {
		wrong = "000001"
	}
	for i := 0; i < 3; i++ {
		_, err = f.svc.VerifyOTP(ctx, "jack@example.com", wrong)
		require.Error(t, err)
	}

	// budget exhausted; even the right code is refused now
	_, err = f.svc.VerifyOTP(ctx, "jack@example.com", mailedCode)
	require.Error(t, err)
	assert.Equal(t, util.CodeUnauthorized, util.ToDomainError(err).Code)
}

func TestResetPasswordRejectsNonResetTokens(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	_, err := f.svc.Register(ctx, registerInput("jack@example.com"))
	require.NoError(t, err)

	pair, _, err := f.svc.Login(ctx, "jack@example.com", "secret")
	require.NoError(t, err)

	// an access token must not work as a reset token
	_, err = f.svc.ResetPassword(ctx, pair.AccessToken, "newsecret")
	require.Error(t, err)
	assert.Equal(t, util.CodeUnauthorized, util.ToDomainError(err).Code)
}
