package services

import (
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"staybook-backend/config"
	"staybook-backend/models"
)

// newTestDB opens an in-memory store migrated through the same model list as
// production. The pool is pinned to one connection so every goroutine sees the
// same in-memory database.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("unwrap sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	if err := config.AutoMigrate(db); err != nil {
		t.Fatalf("migrate test db: %v", err)
	}
	return db
}

func createUser(t *testing.T, db *gorm.DB, email string, role models.Role) *models.User {
	t.Helper()
	user := &models.User{
		Name:     "Test " + string(role),
		Email:    email,
		Password: "$2a$10$not.a.real.hash.but.long.enough.for.tests.x",
		Role:     role,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("create %s user: %v", role, err)
	}
	return user
}

func createListing(t *testing.T, db *gorm.DB, hostID uint, from, to string) *models.Listing {
	t.Helper()
	f, err := time.Parse("2006-01-02", from)
	if err != nil {
		t.Fatalf("parse %q: %v", from, err)
	}
	to2, err := time.Parse("2006-01-02", to)
	if err != nil {
		t.Fatalf("parse %q: %v", to, err)
	}
	listing := &models.Listing{
		UserID:         hostID,
		Title:          "Seaside flat",
		NumberOfPeople: 4,
		Country:        "Portugal",
		City:           "Lisbon",
		Price:          120,
		AvailableFrom:  datatypes.Date(f),
		AvailableTo:    datatypes.Date(to2),
	}
	if err := db.Create(listing).Error; err != nil {
		t.Fatalf("create listing: %v", err)
	}
	return listing
}
