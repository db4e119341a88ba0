//go:build unit || e2e

package authtest

import (
	"testing"
	"time"

	"ticket-checkout/internal/domain/user"
	"ticket-checkout/internal/pkg/config"
	"ticket-checkout/internal/pkg/jwt"
	"ticket-checkout/tests/common/dbtest"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

// JWTHelper mints tokens the way the account service does, using the same secret.
type JWTHelper struct {
	cfg config.JWTConfig
}

func NewJWTHelper(cfg config.JWTConfig) *JWTHelper {
	return &JWTHelper{cfg: cfg}
}

func (h *JWTHelper) GenerateToken(t *testing.T, userID uuid.UUID, role user.Role) string {
	t.Helper()
	duration, err := time.ParseDuration(h.cfg.Duration)
	require.NoError(t, err)
	token, err := jwt.NewService(h.cfg.Secret, duration).GenerateToken(userID, role)
	require.NoError(t, err)
	return token
}

// CreateExpiredToken returns a token that expired beyond the validator's leeway.
func (h *JWTHelper) CreateExpiredToken(t *testing.T, userID uuid.UUID, role user.Role) string {
	t.Helper()
	token, err := jwt.NewService(h.cfg.Secret, -time.Minute).GenerateToken(userID, role)
	require.NoError(t, err)
	return token
}

// CreateUserWithToken stores a user and returns its id with a valid token.
func (h *JWTHelper) CreateUserWithToken(t *testing.T, db dbtest.DBLike, email string, role user.Role) (uuid.UUID, string) {
	t.Helper()
	id := dbtest.CreateTestUser(t, db, email, "Test "+role.String(), role.String())
	return id, h.GenerateToken(t, id, role)
}
