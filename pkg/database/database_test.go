package database

import (
	"path/filepath"
	"testing"
	"time"

	"library_catalog/pkg/config"
	"library_catalog/pkg/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostgresDSN(t *testing.T) {
	cfg := &config.Config{
		DBHost:     "db.internal",
		DBPort:     "6543",
		DBUser:     "catalog",
		DBPassword: "secret",
		DBName:     "libros",
	}

	dsn := PostgresDSN(cfg)

	assert.Equal(t, "host=db.internal user=catalog password=secret dbname=libros port=6543 sslmode=disable TimeZone=UTC", dsn)
}

func TestDialectorMemoryDriver(t *testing.T) {
	_, err := Dialector(&config.Config{DBDriver: config.DriverMemory})
	assert.Error(t, err)
}

func TestOpenSQLiteMigratesBooks(t *testing.T) {
	cfg := &config.Config{
		DBDriver:            config.DriverSQLite,
		DBSQLitePath:        filepath.Join(t.TempDir(), "libros.db"),
		DBConnectRetries:    1,
		DBConnectRetryDelay: time.Millisecond,
	}

	db, err := Open(cfg)
	require.NoError(t, err)

	assert.True(t, db.Migrator().HasTable(&models.Book{}))
	assert.True(t, db.Migrator().HasColumn(&models.Book{}, "titulo"))
	assert.True(t, db.Migrator().HasColumn(&models.Book{}, "fecha_creacion"))

	sqlDB, err := db.DB()
	require.NoError(t, err)
	assert.NoError(t, sqlDB.Close())
}
