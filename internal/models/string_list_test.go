package models_test

import (
	"reflect"
	"testing"

	"github.com/gameshelf/gameshelf/internal/models"
	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func TestStringListRoundTrip(t *testing.T) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to create test database: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("Failed to get underlying SQL DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(&models.User{}, &models.Videogame{}); err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}

	game := models.Videogame{
		UserID:   1,
		Name:     "Outer Wilds",
		Genre:    models.StringList{"Adventure", "Puzzle"},
		Platform: models.StringList{"PC", "Switch"},
	}
	if err := db.Create(&game).Error; err != nil {
		t.Fatalf("Failed to create videogame: %v", err)
	}

	var stored models.Videogame
	if err := db.First(&stored, game.ID).Error; err != nil {
		t.Fatalf("Failed to reload videogame: %v", err)
	}

	// Order is preserved through the JSON column
	if !reflect.DeepEqual(stored.Genre, game.Genre) {
		t.Errorf("Expected genre %v, got %v", game.Genre, stored.Genre)
	}
	if !reflect.DeepEqual(stored.Platform, game.Platform) {
		t.Errorf("Expected platform %v, got %v", game.Platform, stored.Platform)
	}
}

func TestStringListScanNil(t *testing.T) {
	var s models.StringList
	if err := s.Scan(nil); err != nil {
		t.Fatalf("Scan(nil) failed: %v", err)
	}
	if s != nil {
		t.Errorf("Expected nil list, got %v", s)
	}
}
