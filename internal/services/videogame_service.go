package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gameshelf/gameshelf/internal/models"
	"gorm.io/gorm"
	"gorm.io/hints"
)

// ErrNotFound is returned when a videogame does not exist.
var ErrNotFound = errors.New("not found")

// VideogameInput is the allow-listed field set accepted from the create and
// edit forms. Anything else posted with the form is dropped.
type VideogameInput struct {
	Name        string
	Genre       string // comma-separated, split on write
	Platform    string // comma-separated, split on write
	ImageURL    string
	Rating      float64
	Description string
}

// SplitList splits a comma-separated form value into an ordered sequence.
// Values are kept verbatim, without trimming.
func SplitList(raw string) models.StringList {
	return models.StringList(strings.Split(raw, ","))
}

// CreateVideogame inserts a new record owned by the user with the given
// email. Ownership is a column on the record itself, so the create and the
// owner link are a single write.
func CreateVideogame(db *gorm.DB, email string, input VideogameInput) (*models.Videogame, error) {
	var user models.User
	if err := db.Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to look up owner: %w", err)
	}

	game := models.Videogame{
		UserID:      user.ID,
		Name:        input.Name,
		Genre:       SplitList(input.Genre),
		Platform:    SplitList(input.Platform),
		ImageURL:    input.ImageURL,
		Rating:      input.Rating,
		Description: input.Description,
	}
	if err := db.Create(&game).Error; err != nil {
		return nil, fmt.Errorf("failed to create videogame: %w", err)
	}

	return &game, nil
}

// ListVideogames returns the collection owned by the user with the given
// email. There is no unscoped listing path.
func ListVideogames(db *gorm.DB, email string) ([]models.Videogame, error) {
	var user models.User
	if err := db.Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	var games []models.Videogame
	err := db.Clauses(hints.CommentBefore("select", "gameshelf collection listing")).
		Where("user_id = ?", user.ID).
		Order("id").
		Find(&games).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list videogames: %w", err)
	}

	return games, nil
}

// GetVideogame fetches one record by identifier. There is no ownership
// check: any logged-in user can fetch any record by id.
func GetVideogame(db *gorm.DB, id uint64) (*models.Videogame, error) {
	var game models.Videogame
	if err := db.First(&game, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to fetch videogame: %w", err)
	}
	return &game, nil
}

// UpdateVideogame overwrites the allow-listed columns of a record. Genre and
// platform are re-split from comma-separated input exactly like create, so
// both paths store the same shape.
func UpdateVideogame(db *gorm.DB, id uint64, input VideogameInput) error {
	res := db.Model(&models.Videogame{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"name":        input.Name,
			"genre":       SplitList(input.Genre),
			"platform":    SplitList(input.Platform),
			"image_url":   input.ImageURL,
			"rating":      input.Rating,
			"description": input.Description,
		})
	if res.Error != nil {
		return fmt.Errorf("failed to update videogame: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteVideogame removes a record by identifier. Ownership lives on the
// record, so the deletion cannot leave dangling references behind.
func DeleteVideogame(db *gorm.DB, id uint64) error {
	res := db.Delete(&models.Videogame{}, id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete videogame: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
