// jokes.go
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

package services

import (
	"context"
	"errors"
	"slices"
	"strconv"
	"strings"

	"github.com/robsiuuu/jokebook/internal/database"
	"github.com/robsiuuu/jokebook/internal/models"
	"github.com/robsiuuu/jokebook/internal/types"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// JokeResult is a joke as returned by category listings
type JokeResult struct {
	Setup    string `json:"setup"`
	Delivery string `json:"delivery"`
}

// RandomJokeResult is a joke together with the name of its category
type RandomJokeResult struct {
	Setup    string `json:"setup"`
	Delivery string `json:"delivery"`
	Category string `json:"category"`
}

// ListCategories returns every category name in lexicographic order
func ListCategories(ctx context.Context, db *gorm.DB) ([]string, error) {
	var names []string
	if err := db.WithContext(ctx).Model(&models.Category{}).
		Order("name").
		Pluck("name", &names).Error; err != nil {
		return nil, fail("list categories", err)
	}

	// Byte order, independent of the database collation
	slices.Sort(names)
	if names == nil {
		names = []string{}
	}
	return names, nil
}

// ListJokesByCategory returns the jokes of a category ordered by id. The limit
// is applied only when it parses as a non-negative integer. An unknown
// category yields an empty slice; use CategoryExists to tell the cases apart.
func ListJokesByCategory(ctx context.Context, db *gorm.DB, category, limit string) ([]JokeResult, error) {
	query := db.WithContext(ctx).
		Table("jokes j").
		Select("j.setup, j.delivery").
		Joins("JOIN categories c ON j.category_id = c.id").
		Where("c.name = ?", category).
		Order("j.id")

	if n, ok := ParseLimit(limit); ok {
		query = query.Limit(n)
	}

	jokes := []JokeResult{}
	if err := query.Scan(&jokes).Error; err != nil {
		return nil, fail("list jokes by category", err, zap.String("category", category), zap.String("limit", limit))
	}
	return jokes, nil
}

// GetRandomJoke picks one joke uniformly at random using the database's random
// ordering. It returns nil without error when there are no jokes.
func GetRandomJoke(ctx context.Context, db *gorm.DB) (*RandomJokeResult, error) {
	var joke RandomJokeResult
	result := db.WithContext(ctx).
		Table("jokes j").
		Select("j.setup, j.delivery, c.name AS category").
		Joins("JOIN categories c ON j.category_id = c.id").
		Order(randomOrder(db)).
		Limit(1).
		Scan(&joke)
	if result.Error != nil {
		return nil, fail("get random joke", result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, nil
	}
	return &joke, nil
}

// CategoryExists reports whether a category with the given name exists
func CategoryExists(ctx context.Context, db *gorm.DB, name string) (bool, error) {
	_, found, err := findCategoryID(db.WithContext(ctx), name)
	if err != nil {
		return false, fail("check category", err, zap.String("category", name))
	}
	return found, nil
}

// AddJoke inserts a joke under the named category, creating the category if
// needed, in one transaction. It returns the category's jokes after commit.
func AddJoke(ctx context.Context, db *gorm.DB, category, setup, delivery string) ([]JokeResult, error) {
	err := database.WithTransaction(ctx, db, func(tx *gorm.DB) error {
		categoryID, err := getOrCreateCategory(tx, category)
		if err != nil {
			return err
		}

		joke := models.Joke{
			CategoryID: categoryID,
			Setup:      setup,
			Delivery:   delivery,
		}
		return tx.Create(&joke).Error
	})
	if err != nil {
		return nil, fail("add joke", err, zap.String("category", category))
	}

	// Committed, so a fresh read on the pool sees the new row
	return ListJokesByCategory(ctx, db, category, "")
}

// ParseLimit parses a limit query value. ok is false when the value is absent,
// not a base-10 integer or negative.
func ParseLimit(raw string) (n int, ok bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, false
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}

// getOrCreateCategory resolves a category id inside tx. The insert tolerates a
// concurrent insert of the same name: on conflict it inserts nothing and the
// id is looked up again.
func getOrCreateCategory(tx *gorm.DB, name string) (uint64, error) {
	id, found, err := findCategoryID(tx, name)
	if err != nil {
		return 0, err
	}
	if found {
		return id, nil
	}

	category := models.Category{Name: name}
	result := tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "name"}},
		DoNothing: true,
	}).Create(&category)
	if result.Error != nil {
		return 0, result.Error
	}
	if result.RowsAffected == 1 && category.ID != 0 {
		return category.ID, nil
	}

	id, found, err = findCategoryID(lockingRead(tx), name)
	if err != nil {
		return 0, err
	}
	if !found {
		return 0, errors.New("category vanished after conflicting insert")
	}
	return id, nil
}

func findCategoryID(db *gorm.DB, name string) (uint64, bool, error) {
	var category models.Category
	err := db.Select("id").Where("name = ?", name).Take(&category).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}
	return category.ID, true, nil
}

// lockingRead makes the lookup see rows committed after the transaction's
// snapshot was taken, which repeatable-read engines need after a conflict.
func lockingRead(tx *gorm.DB) *gorm.DB {
	switch tx.Dialector.Name() {
	case "mysql", "postgres":
		return tx.Clauses(clause.Locking{Strength: "UPDATE"})
	default:
		return tx
	}
}

// randomOrder returns the dialect's full-table random ordering expression
func randomOrder(db *gorm.DB) string {
	switch db.Dialector.Name() {
	case "mysql":
		return "RAND()"
	case "sqlserver":
		return "NEWID()"
	default:
		return "RANDOM()"
	}
}

// fail logs the failure with its context and returns it classified
func fail(op string, err error, fields ...zap.Field) error {
	classified := types.Classify(op, err)
	zap.L().Error("Error "+op, append(fields, zap.Error(classified))...)
	return classified
}
