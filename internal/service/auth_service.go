package service

import (
	"context"
	"time"

	"github.com/xxxsen/common/logutil"

	"github.com/yatagawa/anirec/internal/pkg/errs"
	"github.com/yatagawa/anirec/internal/pkg/jwt"
	"github.com/yatagawa/anirec/internal/pkg/password"
)

// AuthService issues admin tokens. There are no user accounts; a single
// admin key (stored as a bcrypt hash in config) gates the write surface.
type AuthService struct {
	adminKeyHash string
	secret       []byte
	ttl          time.Duration
}

func NewAuthService(adminKeyHash string, secret []byte, ttl time.Duration) *AuthService {
	return &AuthService{adminKeyHash: adminKeyHash, secret: secret, ttl: ttl}
}

func (s *AuthService) Login(ctx context.Context, key string) (string, error) {
	if s.adminKeyHash == "" {
		return "", errs.ErrUnauthorized
	}
	if err := password.Compare(s.adminKeyHash, key); err != nil {
		logutil.GetLogger(ctx).Warn("admin login rejected")
		return "", errs.ErrUnauthorized
	}
	return jwt.GenerateToken("admin", s.secret, s.ttl)
}
