package database

import (
	"io"
	"strings"
	"testing"

	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfig_DriverName(t *testing.T) {
	assert.Equal(t, "postgres", Config{}.DriverName())
	assert.Equal(t, "nrpostgres", Config{Instrumented: true}.DriverName())
}

func TestMigrations_Embedded(t *testing.T) {
	source, err := iofs.New(migrationFiles, "migrations")
	require.NoError(t, err)
	defer source.Close()

	version, err := source.First()
	require.NoError(t, err)
	assert.Equal(t, uint(1), version)

	r, _, err := source.ReadUp(version)
	require.NoError(t, err)
	defer r.Close()

	body, err := io.ReadAll(r)
	require.NoError(t, err)
	sql := string(body)

	for _, col := range []string{"ride_id", "start_lat", "start_long", "end_lat", "end_long", "rider_name", "driver_name", "driver_vehicle", "created"} {
		assert.True(t, strings.Contains(sql, col), "missing column %s", col)
	}

	down, _, err := source.ReadDown(version)
	require.NoError(t, err)
	down.Close()
}
