//go:build unit || e2e

package authtest

import (
	"testing"

	"book-rental/internal/domain/user"
	"book-rental/internal/pkg/config"
	"book-rental/internal/pkg/jwt"

	"github.com/stretchr/testify/require"
)

type JWTHelper struct {
	cfg config.JWTConfig
}

func NewJWTHelper(cfg config.JWTConfig) *JWTHelper {
	return &JWTHelper{cfg: cfg}
}

func (h *JWTHelper) GenerateToken(t *testing.T, ownerID string, role user.Role) string {
	t.Helper()
	service := jwt.NewService(h.cfg.Secret, h.cfg.Issuer, h.cfg.Duration)
	token, err := service.GenerateToken(ownerID, role)
	require.NoError(t, err)
	return token
}
