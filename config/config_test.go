package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	for _, k := range []string{"APP_NAME", "APP_ENV", "PORT", "GIN_MODE", "JWT_SECRET", "TOKEN_EXPIRES_IN", "USERS_FILE", "BCRYPT_COST", "HTTP_LOG_ENABLED", "DEBUG_METRICS_ENABLED"} {
		t.Setenv(k, "")
	}

	c := Load()
	require.NotNil(t, c)

	assert.Equal(t, "sheet-auth", c.AppName)
	assert.Equal(t, "development", c.Env)
	assert.Equal(t, "3000", c.Port)
	assert.Equal(t, DefaultJWTSecret, c.JWTSecret)
	assert.Equal(t, 2*time.Hour, c.TokenTTL)
	assert.Equal(t, "users.xlsx", c.UsersFile)
	assert.Equal(t, 10, c.BcryptCost)
	assert.False(t, c.HTTPLogEnabled)
	assert.False(t, c.DebugMetricsEnabled)
	assert.True(t, c.InsecureSecret())
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("PORT", "8081")
	t.Setenv("JWT_SECRET", "s3cr3t")
	t.Setenv("TOKEN_EXPIRES_IN", "30m")
	t.Setenv("USERS_FILE", "/tmp/x/users.xlsx")
	t.Setenv("BCRYPT_COST", "12")
	t.Setenv("HTTP_LOG_ENABLED", "true")
	t.Setenv("DEBUG_METRICS_ENABLED", "1")

	c := Load()

	assert.Equal(t, "8081", c.Port)
	assert.Equal(t, "s3cr3t", c.JWTSecret)
	assert.Equal(t, 30*time.Minute, c.TokenTTL)
	assert.Equal(t, "/tmp/x/users.xlsx", c.UsersFile)
	assert.Equal(t, 12, c.BcryptCost)
	assert.True(t, c.HTTPLogEnabled)
	assert.True(t, c.DebugMetricsEnabled)
	assert.False(t, c.InsecureSecret())
}

func TestLoadInvalidValuesFallBack(t *testing.T) {
	t.Setenv("TOKEN_EXPIRES_IN", "soon")
	t.Setenv("BCRYPT_COST", "ten")
	t.Setenv("HTTP_LOG_ENABLED", "maybe")

	c := Load()

	assert.Equal(t, 2*time.Hour, c.TokenTTL)
	assert.Equal(t, 10, c.BcryptCost)
	assert.False(t, c.HTTPLogEnabled)
}

func TestLoadNonPositiveTTLFallsBack(t *testing.T) {
	for _, v := range []string{"0", "-5", "-30m"} {
		t.Run(v, func(t *testing.T) {
			t.Setenv("TOKEN_EXPIRES_IN", v)
			assert.Equal(t, 2*time.Hour, Load().TokenTTL)
		})
	}
}

func TestParseTTL(t *testing.T) {
	tests := []struct {
		in      string
		want    time.Duration
		wantErr bool
	}{
		{in: "2h", want: 2 * time.Hour},
		{in: "90m", want: 90 * time.Minute},
		{in: "3600", want: time.Hour},
		{in: "7d", want: 7 * 24 * time.Hour},
		{in: " 1d ", want: 24 * time.Hour},
		{in: "xd", wantErr: true},
		{in: "0", wantErr: true},
		{in: "-5", wantErr: true},
		{in: "0d", wantErr: true},
		{in: "-1h", wantErr: true},
		{in: "1 day", wantErr: true},
		{in: "1w", wantErr: true},
		{in: "", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseTTL(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
