package redis

import (
	"context"
	"errors"
	"fmt"
	"time"
)

const (
	ResetCodeTTL    = 5 * time.Minute
	ResetCodePrefix = "reset:code"
)

var (
	ErrCodeNotFound  = errors.New("reset code not found")
	ErrCodeSetFailed = errors.New("reset code set failed")
	ErrCodeDelFailed = errors.New("reset code delete failed")
)

// ResetRepository stores short-lived password reset codes by email.
type ResetRepository struct{}

func resetKey(email string) string {
	return fmt.Sprintf("%s:%s", ResetCodePrefix, email)
}

func (r *ResetRepository) SetCode(ctx context.Context, email, code string) error {
	if err := Client.Set(ctx, resetKey(email), code, ResetCodeTTL).Err(); err != nil {
		return ErrCodeSetFailed
	}
	return nil
}

func (r *ResetRepository) Code(ctx context.Context, email string) (string, error) {
	val, err := Client.Get(ctx, resetKey(email)).Result()
	if err != nil {
		return "", ErrCodeNotFound
	}
	return val, nil
}

// DeleteCode consumes the code after a successful reset. Idempotent.
func (r *ResetRepository) DeleteCode(ctx context.Context, email string) error {
	if err := Client.Del(ctx, resetKey(email)).Err(); err != nil {
		return ErrCodeDelFailed
	}
	return nil
}
