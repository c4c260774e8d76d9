package repository

import (
	"fmt"
	"strings"
	"testing"

	"github.com/Jins0l/ai-board-project/internal/database"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// newTestHandle returns a store handle backed by an in-memory SQLite database
// with the schema ensured. Each test gets its own database.
func newTestHandle(t *testing.T) *database.Handle {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared",
		strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: database.NewGormLogger(),
	})
	require.NoError(t, err)

	// A single connection keeps the in-memory database alive for the test.
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, database.EnsureSchema(db))
	return database.NewHandleWithDB(db)
}
