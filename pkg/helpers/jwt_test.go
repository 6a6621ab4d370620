package helpers

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/okisetiawan/go-product-catalog/internal/domain/entity"
)

func testUser() *entity.User {
	return &entity.User{
		ID:    "11111111-1111-1111-1111-111111111111",
		Email: "a@x.com",
		Role:  entity.RoleAdmin,
	}
}

func TestJWTManager_GenerateAndParse(t *testing.T) {
	m := NewJWTManager("test-secret", time.Hour)
	u := testUser()

	token, exp, err := m.Generate(u)
	require.NoError(t, err)
	require.NotEmpty(t, token)
	assert.WithinDuration(t, time.Now().Add(time.Hour), exp, 5*time.Second)

	claims, err := m.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, u.ID, claims.UserID)
	assert.Equal(t, u.Email, claims.Email)
	assert.Equal(t, entity.RoleAdmin, claims.Role)
	require.NotNil(t, claims.ExpiresAt)
	require.NotNil(t, claims.IssuedAt)
	assert.Equal(t, m.TTL(), claims.ExpiresAt.Sub(claims.IssuedAt.Time))
}

func TestJWTManager_Expired(t *testing.T) {
	m := NewJWTManager("test-secret", -time.Minute)

	token, _, err := m.Generate(testUser())
	require.NoError(t, err)

	_, err = m.Parse(token)
	require.ErrorIs(t, err, ErrExpiredToken)
}

func TestJWTManager_WrongSecret(t *testing.T) {
	issuer := NewJWTManager("secret-one", time.Hour)
	verifier := NewJWTManager("secret-two", time.Hour)

	token, _, err := issuer.Generate(testUser())
	require.NoError(t, err)

	_, err = verifier.Parse(token)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestJWTManager_Garbage(t *testing.T) {
	m := NewJWTManager("test-secret", time.Hour)

	_, err := m.Parse("not.a.token")
	require.ErrorIs(t, err, ErrInvalidToken)

	_, err = m.Parse("")
	require.ErrorIs(t, err, ErrInvalidToken)
}
