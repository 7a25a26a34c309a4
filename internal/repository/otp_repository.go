package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// OTPRecord is a stored one-time code and its failed-attempt count.
type OTPRecord struct {
	Code     string
	Attempts int
}

// OTPRepository manages one-time codes for the password recovery flow.
// Codes are single use and expire on their own via the store's TTL.
type OTPRepository interface {
	Save(ctx context.Context, email, code string, ttl time.Duration) error
	Get(ctx context.Context, email string) (*OTPRecord, error)
	IncrementAttempts(ctx context.Context, email string) error
	Delete(ctx context.Context, email string) error
}

type otpRepository struct {
	client *redis.Client
}

// NewOTPRepository returns a Redis-backed implementation.
func NewOTPRepository(client *redis.Client) OTPRepository {
	return &otpRepository{client: client}
}

func codeKey(email string) string     { return fmt.Sprintf("otp:%s", email) }
func attemptsKey(email string) string { return fmt.Sprintf("otp:%s:attempts", email) }

func (r *otpRepository) Save(ctx context.Context, email, code string, ttl time.Duration) error {
	pipe := r.client.TxPipeline()
	pipe.Set(ctx, codeKey(email), code, ttl)
	pipe.Set(ctx, attemptsKey(email), 0, ttl)
	_, err := pipe.Exec(ctx)
	return err
}

func (r *otpRepository) Get(ctx context.Context, email string) (*OTPRecord, error) {
	code, err := r.client.Get(ctx, codeKey(email)).Result()
	if err != nil {
		return nil, err
	}
	attempts, err := r.client.Get(ctx, attemptsKey(email)).Int()
	if err != nil && err != redis.Nil {
		return nil, err
	}
	return &OTPRecord{Code: code, Attempts: attempts}, nil
}

func (r *otpRepository) IncrementAttempts(ctx context.Context, email string) error {
	return r.client.Incr(ctx, attemptsKey(email)).Err()
}

func (r *otpRepository) Delete(ctx context.Context, email string) error {
	return r.client.Del(ctx, codeKey(email), attemptsKey(email)).Err()
}
