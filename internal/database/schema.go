// schema.go
//
// A joke delivery service backed by a relational database
// Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC
//
// This file is part of jokebook.
// jokebook is free software: you can redistribute it and/or modify it
// under the terms of the GNU Affero General Public License as published by the Free Software
// Foundation, either version 3 of the License, or (at your option) any later version.
// jokebook is distributed in the hope that it will be useful, but WITHOUT ANY WARRANTY;
// without even the implied warranty of MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.
// See the GNU Affero General Public License for more details.
// You should have received a copy of the GNU Affero General Public License along with jokebook.
// If not, see <https://www.gnu.org/licenses/>.
// Additional terms under GNU AGPL version 3 section 7:
// a) The reasonable legal notice of original copyright and author attribution must be preserved
//    by including the string: "Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC"
//    in this material, copies, or source code of derived works.

package database

import (
	"context"
	"errors"
	"fmt"

	"github.com/robsiuuu/jokebook/internal/models"
	"github.com/robsiuuu/jokebook/internal/types"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SeedJoke is one joke of the fixed seed set
type SeedJoke struct {
	Category string
	Setup    string
	Delivery string
}

// SeedCategories are created by Initialize if absent
var SeedCategories = []string{"funnyJoke", "lameJoke"}

// SeedJokes replace the contents of the jokes table on every Initialize
var SeedJokes = []SeedJoke{
	{"funnyJoke", "Why did the student eat his homework?", "Because the teacher told him it was a piece of cake!"},
	{"funnyJoke", "What kind of tree fits in your hand?", "A palm tree"},
	{"funnyJoke", "What is worse than raining cats and dogs?", "Hailing taxis"},
	{"lameJoke", "Which bear is the most condescending?", "Pan-DUH"},
	{"lameJoke", "What would the Terminator be called in his retirement?", "The Exterminator"},
}

// AutoMigrate creates the categories and jokes tables if they do not exist
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(models.All()...)
}

// Initialize creates the schema and resets it to the seed data. It is safe to
// run repeatedly and always converges to the same seeded state.
func Initialize(ctx context.Context, db *gorm.DB) error {
	log := zap.L()
	log.Info("Initializing database...")

	// Unreachable is fatal, no retry
	if err := Ping(ctx, db); err != nil {
		return &types.InitializationError{Step: "connect", Err: err}
	}

	if err := AutoMigrate(db.WithContext(ctx)); err != nil {
		return &types.InitializationError{Step: "create tables", Err: types.Classify("create tables", err)}
	}
	log.Info("Tables created successfully")

	err := WithTransaction(ctx, db, seed)
	if err != nil {
		var initErr *types.InitializationError
		if errors.As(err, &initErr) {
			return initErr
		}
		return &types.InitializationError{Step: "seed", Err: types.Classify("seed", err)}
	}

	var categoryCount, jokeCount int64
	if err := db.WithContext(ctx).Model(&models.Category{}).Count(&categoryCount).Error; err != nil {
		return &types.InitializationError{Step: "verify", Err: types.Classify("count categories", err)}
	}
	if err := db.WithContext(ctx).Model(&models.Joke{}).Count(&jokeCount).Error; err != nil {
		return &types.InitializationError{Step: "verify", Err: types.Classify("count jokes", err)}
	}

	log.Info("Database initialization completed successfully",
		zap.Int64("categories", categoryCount),
		zap.Int64("jokes", jokeCount))

	return nil
}

func seed(tx *gorm.DB) error {
	// An existing row with the same name is left untouched
	for _, name := range SeedCategories {
		category := models.Category{Name: name}
		if err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "name"}},
			DoNothing: true,
		}).Create(&category).Error; err != nil {
			return err
		}
	}
	zap.L().Info("Categories inserted")

	var categories []models.Category
	if err := tx.Where("name IN ?", SeedCategories).Find(&categories).Error; err != nil {
		return err
	}

	ids := make(map[string]uint64, len(categories))
	for _, c := range categories {
		ids[c.Name] = c.ID
	}
	for _, name := range SeedCategories {
		if ids[name] == 0 {
			return &types.InitializationError{
				Step: "resolve seed categories",
				Err:  fmt.Errorf("could not find category ID for %q", name),
			}
		}
	}

	if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&models.Joke{}).Error; err != nil {
		return err
	}

	jokes := make([]models.Joke, 0, len(SeedJokes))
	for _, j := range SeedJokes {
		jokes = append(jokes, models.Joke{
			CategoryID: ids[j.Category],
			Setup:      j.Setup,
			Delivery:   j.Delivery,
		})
	}
	if err := tx.Create(&jokes).Error; err != nil {
		return err
	}
	zap.L().Info("Jokes inserted successfully", zap.Int("count", len(jokes)))

	return nil
}
