package util

import (
	"testing"
	"time"

	"edunova_backend/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWT_RoundTrip(t *testing.T) {
	user := &model.User{
		UUIDBase: model.UUIDBase{ID: "user-1"},
		Email:    "alice@example.com",
		Role:     model.Student,
		Grade:    "5",
	}

	token, err := GenerateJWT(user, "test-secret", time.Hour)
	require.NoError(t, err)

	claims, err := ParseJWT(token, "test-secret")
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, model.Student, claims.Role)
	assert.Equal(t, "alice@example.com", claims.Email)
	assert.Equal(t, "5", claims.Grade)
}

func TestJWT_WrongSecret(t *testing.T) {
	user := &model.User{UUIDBase: model.UUIDBase{ID: "user-1"}}

	token, err := GenerateJWT(user, "test-secret", time.Hour)
	require.NoError(t, err)

	_, err = ParseJWT(token, "other-secret")
	assert.Error(t, err)
}

func TestJWT_Expired(t *testing.T) {
	user := &model.User{UUIDBase: model.UUIDBase{ID: "user-1"}}

	token, err := GenerateJWT(user, "test-secret", -time.Minute)
	require.NoError(t, err)

	_, err = ParseJWT(token, "test-secret")
	assert.Error(t, err)
}
