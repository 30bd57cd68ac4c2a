package models

import (
	"time"
)

// Category is a named grouping of jokes
type Category struct {
	ID        uint64 `gorm:"primaryKey;autoIncrement"`
	Name      string `gorm:"uniqueIndex;size:255;not null;check:chk_categories_name,name <> ''"`
	CreatedAt time.Time
	Jokes     []Joke `gorm:"foreignKey:CategoryID;constraint:OnDelete:CASCADE"`
}

// Joke is a setup/delivery pair owned by exactly one category
type Joke struct {
	ID         uint64 `gorm:"primaryKey;autoIncrement"`
	CategoryID uint64 `gorm:"not null;index"`
	Setup      string `gorm:"not null;check:chk_jokes_setup,setup <> ''"`
	Delivery   string `gorm:"not null;check:chk_jokes_delivery,delivery <> ''"`
	CreatedAt  time.Time
}

// TableName overrides the table name for Category
func (Category) TableName() string {
	return "categories"
}

// TableName overrides the table name for Joke
func (Joke) TableName() string {
	return "jokes"
}

// All returns every model managed by the schema, parents first
func All() []interface{} {
	return []interface{}{
		&Category{},
		&Joke{},
	}
}
