//go:build unit

package jwt_test

import (
	"testing"
	"time"

	"ticket-checkout/internal/domain/user"
	"ticket-checkout/internal/pkg/jwt"

	gojwt "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestService(t *testing.T) {
	svc := jwt.NewService("secret", time.Hour)
	userID := uuid.New()

	t.Run("発行したトークンを検証できる", func(t *testing.T) {
		token, err := svc.GenerateToken(userID, user.RoleManager)
		require.NoError(t, err)

		claims, err := svc.ValidateToken(token)
		require.NoError(t, err)
		assert.Equal(t, userID, claims.UserID)
		assert.Equal(t, "manager", claims.Role)
	})

	t.Run("別の秘密鍵はNG", func(t *testing.T) {
		token, err := jwt.NewService("other", time.Hour).GenerateToken(userID, user.RoleUser)
		require.NoError(t, err)

		_, err = svc.ValidateToken(token)
		assert.ErrorIs(t, err, jwt.ErrInvalidToken)
	})

	t.Run("期限切れ", func(t *testing.T) {
		token, err := jwt.NewService("secret", -time.Minute).GenerateToken(userID, user.RoleUser)
		require.NoError(t, err)

		_, err = svc.ValidateToken(token)
		assert.ErrorIs(t, err, jwt.ErrExpiredToken)
	})

	t.Run("HS256 以外のアルゴリズムはNG", func(t *testing.T) {
		claims := jwt.Claims{
			UserID: userID,
			Role:   "admin",
			RegisteredClaims: gojwt.RegisteredClaims{
				ExpiresAt: gojwt.NewNumericDate(time.Now().Add(time.Hour)),
			},
		}
		token, err := gojwt.NewWithClaims(gojwt.SigningMethodHS512, claims).SignedString([]byte("secret"))
		require.NoError(t, err)

		_, err = svc.ValidateToken(token)
		assert.ErrorIs(t, err, jwt.ErrInvalidToken)
	})
}
