// data.go
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

package testhelpers

import (
	"testing"

	"github.com/robsiuuu/jokebook/internal/models"
	"gorm.io/gorm"
)

// CreateTestCategory inserts a category directly
func CreateTestCategory(t testing.TB, db *gorm.DB, name string) models.Category {
	t.Helper()
	category := models.Category{Name: name}
	if err := db.Create(&category).Error; err != nil {
		t.Fatalf("Failed to create category %s: %v", name, err)
	}
	return category
}

// CreateTestJoke inserts a joke directly under an existing category
func CreateTestJoke(t testing.TB, db *gorm.DB, category models.Category, setup, delivery string) models.Joke {
	t.Helper()
	joke := models.Joke{CategoryID: category.ID, Setup: setup, Delivery: delivery}
	if err := db.Create(&joke).Error; err != nil {
		t.Fatalf("Failed to create joke in %s: %v", category.Name, err)
	}
	return joke
}

// CountRows returns the number of rows of a model's table
func CountRows(t testing.TB, db *gorm.DB, model interface{}) int64 {
	t.Helper()
	var count int64
	if err := db.Model(model).Count(&count).Error; err != nil {
		t.Fatalf("Failed to count rows: %v", err)
	}
	return count
}
