package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg := Load()

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, 5*time.Second, cfg.Database.QueryTimeout)
	assert.Equal(t, "auto", cfg.Media.Region)
	assert.Equal(t, "shoutbox", cfg.Media.KeyPrefix)
	assert.Equal(t, []string{"*"}, cfg.CORS.AllowedOrigins)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("DATABASE_URL", "postgres://u:p@db:5432/shout?sslmode=disable")
	t.Setenv("MEDIA_BUCKET", "bucket-from-env")

	cfg := Load()

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "postgres://u:p@db:5432/shout?sslmode=disable", cfg.Database.URL)
	assert.Equal(t, "bucket-from-env", cfg.Media.Bucket)
}

func TestLoad_QueryTimeoutParsesDuration(t *testing.T) {
	t.Setenv("DATABASE_QUERY_TIMEOUT", "250ms")

	cfg := Load()
	require.Equal(t, 250*time.Millisecond, cfg.Database.QueryTimeout)
}
