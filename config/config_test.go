package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDSN(t *testing.T) {
	t.Setenv("DB_USER", "app")
	t.Setenv("DB_PASS", "pw")
	t.Setenv("DB_HOST", "dbhost")
	t.Setenv("DB_PORT", "3307")
	t.Setenv("DB_NAME", "digiadi")

	got := dsn()
	assert.Contains(t, got, "app:pw@tcp(dbhost:3307)/digiadi")
	// matched-rows counting: without it a no-op UPDATE on an existing row
	// reports 0 affected rows and the handlers answer a false 404
	assert.Contains(t, got, "clientFoundRows=true")
	assert.Contains(t, got, "parseTime=True")
}

func TestPoolSize(t *testing.T) {
	t.Setenv("DB_MAX_OPEN_CONNS", "25")
	assert.Equal(t, 25, poolSize())

	t.Setenv("DB_MAX_OPEN_CONNS", "not-a-number")
	assert.Equal(t, 10, poolSize())

	t.Setenv("DB_MAX_OPEN_CONNS", "0")
	assert.Equal(t, 10, poolSize())

	t.Setenv("DB_MAX_OPEN_CONNS", "")
	assert.Equal(t, 10, poolSize())
}
