package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shoplens/backend/internal/infrastructure/config"
)

func newTestService() *JWTService {
	return NewJWTService(config.JWTConfig{
		Secret:     "0123456789abcdef0123456789abcdef",
		Expiration: time.Hour,
		Issuer:     "shoplens-backend",
	})
}

func TestJWTService_GenerateAndValidate(t *testing.T) {
	svc := newTestService()
	tenantID := uuid.New()
	userID := uuid.New()

	token, err := svc.GenerateToken(tenantID, userID)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, tenantID.String(), claims.TenantID)
	assert.Equal(t, userID.String(), claims.UserID)
	assert.Equal(t, "shoplens-backend", claims.Issuer)

	gotTenant, err := claims.GetTenantUUID()
	require.NoError(t, err)
	assert.Equal(t, tenantID, gotTenant)

	gotUser, err := claims.GetUserUUID()
	require.NoError(t, err)
	assert.Equal(t, userID, gotUser)
}

func TestJWTService_RejectsGarbage(t *testing.T) {
	svc := newTestService()

	_, err := svc.ValidateToken("not.a.token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestJWTService_RejectsWrongSecret(t *testing.T) {
	svc := newTestService()
	other := NewJWTService(config.JWTConfig{
		Secret:     "another-secret-another-secret-32",
		Expiration: time.Hour,
		Issuer:     "shoplens-backend",
	})

	token, err := other.GenerateToken(uuid.New(), uuid.New())
	require.NoError(t, err)

	_, err = svc.ValidateToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestJWTService_RejectsExpiredToken(t *testing.T) {
	svc := NewJWTService(config.JWTConfig{
		Secret:     "0123456789abcdef0123456789abcdef",
		Expiration: -time.Minute,
		Issuer:     "shoplens-backend",
	})

	token, err := svc.GenerateToken(uuid.New(), uuid.New())
	require.NoError(t, err)

	_, err = svc.ValidateToken(token)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestJWTService_RejectsMissingClaims(t *testing.T) {
	svc := newTestService()
	now := time.Now()

	sign := func(claims *Claims) string {
		token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
		signed, err := token.SignedString([]byte("0123456789abcdef0123456789abcdef"))
		require.NoError(t, err)
		return signed
	}

	base := jwt.RegisteredClaims{
		ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
		IssuedAt:  jwt.NewNumericDate(now),
	}

	_, err := svc.ValidateToken(sign(&Claims{RegisteredClaims: base, UserID: uuid.New().String()}))
	assert.ErrorIs(t, err, ErrMissingTenantID)

	_, err = svc.ValidateToken(sign(&Claims{RegisteredClaims: base, TenantID: uuid.New().String()}))
	assert.ErrorIs(t, err, ErrMissingUserID)
}
