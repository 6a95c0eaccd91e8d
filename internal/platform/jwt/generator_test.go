package jwtmw

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerator_GenerateToken(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		userID     string
		expiration time.Duration
	}{
		{"basic user", "4b1c9e0a-2f3d-4a5b-8c6d-7e8f9a0b1c2d", time.Hour},
		{"short id", "u1", time.Minute},
		{"long expiration", "user-42", 24 * time.Hour * 30},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			gen := NewGenerator("test-secret", tt.expiration)
			tokenStr, err := gen.GenerateToken(tt.userID)
			require.NoError(t, err)
			require.NotEmpty(t, tokenStr)

			token, err := jwt.Parse(tokenStr, func(tok *jwt.Token) (interface{}, error) {
				if _, ok := tok.Method.(*jwt.SigningMethodHMAC); !ok {
					t.Errorf("unexpected signing method: %v", tok.Header["alg"])
				}
				return []byte("test-secret"), nil
			})
			require.NoError(t, err)
			require.True(t, token.Valid)

			claims, ok := token.Claims.(jwt.MapClaims)
			require.True(t, ok)
			assert.Equal(t, tt.userID, claims["sub"])
			assert.Contains(t, claims, "exp")
			assert.Contains(t, claims, "iat")
		})
	}
}

func TestGenerator_GenerateToken_Expiration(t *testing.T) {
	t.Parallel()

	expiration := 2 * time.Hour
	gen := NewGenerator("test-secret", expiration)

	before := time.Now().Truncate(time.Second)
	tokenStr, err := gen.GenerateToken("user-1")
	after := time.Now().Truncate(time.Second).Add(time.Second)
	require.NoError(t, err)

	token, err := jwt.Parse(tokenStr, func(tok *jwt.Token) (interface{}, error) {
		return []byte("test-secret"), nil
	})
	require.NoError(t, err)

	claims := token.Claims.(jwt.MapClaims)
	expUnix := int64(claims["exp"].(float64))
	assert.GreaterOrEqual(t, expUnix, before.Add(expiration).Unix())
	assert.LessOrEqual(t, expUnix, after.Add(expiration).Unix())
}

func TestGenerator_GenerateToken_WrongSecretFailsVerification(t *testing.T) {
	t.Parallel()

	gen := NewGenerator("correct-secret", time.Hour)
	tokenStr, err := gen.GenerateToken("user-1")
	require.NoError(t, err)

	_, err = jwt.Parse(tokenStr, func(tok *jwt.Token) (interface{}, error) {
		return []byte("wrong-secret"), nil
	})
	assert.Error(t, err)
}
