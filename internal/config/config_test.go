package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("SOBERUP_SECURITY_JWTSECRET", "test-secret")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, 8080, cfg.HTTP.Port)
	assert.Equal(t, 15*time.Minute, cfg.Security.JWTAccessTTL)
	assert.Equal(t, 168*time.Hour, cfg.Security.JWTRefreshTTL)
	assert.Equal(t, "accepted", cfg.Contacts.ReciprocalStatus)
	assert.Equal(t, time.Duration(0), cfg.Usage.Retention)
}

func TestLoad_MissingSecret(t *testing.T) {
	t.Setenv("SOBERUP_SECURITY_JWTSECRET", "")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("SOBERUP_SECURITY_JWTSECRET", "test-secret")
	t.Setenv("SOBERUP_CONTACTS_RECIPROCALSTATUS", "pending")
	t.Setenv("SOBERUP_SECURITY_JWTACCESSTTL", "5m")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "pending", cfg.Contacts.ReciprocalStatus)
	assert.Equal(t, 5*time.Minute, cfg.Security.JWTAccessTTL)
}

func TestLoad_InvalidReciprocalStatus(t *testing.T) {
	t.Setenv("SOBERUP_SECURITY_JWTSECRET", "test-secret")
	t.Setenv("SOBERUP_CONTACTS_RECIPROCALSTATUS", "friends")

	_, err := Load()
	assert.Error(t, err)
}
