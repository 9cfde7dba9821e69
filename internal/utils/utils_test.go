package utils_test

import (
	"testing"
	"time"

	"github.com/SscSPs/mei_retail_app/internal/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTRoundTrip(t *testing.T) {
	token, err := utils.GenerateJWT("user-1", "owner@shop.com", "secret", time.Hour, "mei", time.Now())
	require.NoError(t, err)

	claims, err := utils.ParseAndValidateJWT(token, "secret")
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.Subject)
	assert.Equal(t, "owner@shop.com", claims.Email)

	_, err = utils.ParseAndValidateJWT(token, "other-secret")
	assert.Error(t, err)
}

func TestJWTExpired(t *testing.T) {
	token, err := utils.GenerateJWT("user-1", "owner@shop.com", "secret", time.Minute, "mei", time.Now().Add(-time.Hour))
	require.NoError(t, err)

	_, err = utils.ParseAndValidateJWT(token, "secret")
	assert.Error(t, err)
}

func TestHashPassword(t *testing.T) {
	_, err := utils.HashPassword("short")
	assert.Error(t, err)

	hash, err := utils.HashPassword("long-enough")
	require.NoError(t, err)
	assert.True(t, utils.CheckPasswordHash("long-enough", hash))
	assert.False(t, utils.CheckPasswordHash("wrong-password", hash))
}
