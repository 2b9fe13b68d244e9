package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/diabetes-care-service/internal/config"
	"github.com/spec-kit/diabetes-care-service/internal/domain"
	"github.com/spec-kit/diabetes-care-service/internal/persistence"
)

// LoginThrottle counts failed login attempts per role+username in Redis and
// blocks further attempts once the limit is reached, until the lockout TTL
// expires. A nil throttle or missing Redis disables throttling.
type LoginThrottle struct {
	redis       *persistence.Redis
	maxAttempts int
	lockout     time.Duration
	logger      *zap.Logger
}

// NewLoginThrottle builds the throttle from auth config.
func NewLoginThrottle(redis *persistence.Redis, cfg config.AuthConfig, logger *zap.Logger) *LoginThrottle {
	if cfg.LoginMaxAttempts <= 0 {
		return nil
	}
	return &LoginThrottle{
		redis:       redis,
		maxAttempts: cfg.LoginMaxAttempts,
		lockout:     time.Duration(cfg.LoginLockoutMinutes) * time.Minute,
		logger:      logger,
	}
}

func (t *LoginThrottle) key(role domain.Role, username string) string {
	return fmt.Sprintf("login_attempts:%s:%s", role, username)
}

// Blocked reports whether the account has exceeded the attempt limit.
// Throttling fails open: if Redis is unreachable, logins proceed.
func (t *LoginThrottle) Blocked(ctx context.Context, role domain.Role, username string) bool {
	if t == nil || t.redis == nil || t.redis.Client == nil {
		return false
	}
	count, err := t.redis.Client.Get(ctx, t.key(role, username)).Int()
	if err != nil {
		return false
	}
	return count >= t.maxAttempts
}

// RecordFailure increments the per-account failure counter and refreshes the
// lockout window.
func (t *LoginThrottle) RecordFailure(ctx context.Context, role domain.Role, username string) {
	if t == nil || t.redis == nil || t.redis.Client == nil {
		return
	}
	key := t.key(role, username)
	count, err := t.redis.Client.Incr(ctx, key).Result()
	if err != nil {
		t.logger.Warn("login throttle unavailable", zap.Error(err))
		return
	}
	t.redis.Client.Expire(ctx, key, t.lockout)
	if count >= int64(t.maxAttempts) {
		t.logger.Warn("login attempts exceeded",
			zap.String("role", string(role)),
			zap.String("username", username),
		)
	}
}

// Reset clears the failure counter after a successful login.
func (t *LoginThrottle) Reset(ctx context.Context, role domain.Role, username string) {
	if t == nil || t.redis == nil || t.redis.Client == nil {
		return
	}
	t.redis.Client.Del(ctx, t.key(role, username))
}
