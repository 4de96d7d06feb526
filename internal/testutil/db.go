package testutil

import (
	"fmt"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	gormlogger "gorm.io/gorm/logger"

	"atlas3-backend/internal/platform/database"
)

// GetEmptyTestDB returns a migrated in-memory SQLite database private to t.
func GetEmptyTestDB(t *testing.T, models ...interface{}) *database.Client {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_pragma=busy_timeout(5000)", uuid.NewString())
	client, err := database.Open(sqlite.Open(dsn), gormlogger.Silent)
	if err != nil {
		t.Fatalf("failed to create in memory db: %v", err)
	}
	// One connection keeps every query on the same in-memory database.
	sqlDB, err := client.GetDB().DB()
	if err != nil {
		t.Fatalf("failed to get sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := client.Migrate(models...); err != nil {
		t.Fatalf("failed to migrate db: %v", err)
	}
	t.Cleanup(func() { _ = client.Close() })
	return client
}
