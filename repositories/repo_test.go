package repositories

import (
	"fmt"
	"testing"

	"github.com/Stevekk11/PersonalCloud/models"

	gormsqlite "gorm.io/driver/sqlite"
	"gorm.io/gorm"
	_ "modernc.org/sqlite"
)

// newTestDB opens an in-memory SQLite database (modernc.org/sqlite, cgo-free)
// with a per-test shared cache so the gorm pool sees one store.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	dial := gormsqlite.Dialector{DriverName: "sqlite", DSN: dsn}
	db, err := gorm.Open(dial, &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open sqlite: %v", err)
	}
	if err := db.AutoMigrate(&models.Account{}, &models.Document{}); err != nil {
		t.Fatalf("failed to automigrate: %v", err)
	}
	return db
}
