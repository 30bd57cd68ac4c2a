package main

import (
	"fmt"
	"log"

	"github.com/robsiuuu/jokebook/internal/config"
	"github.com/robsiuuu/jokebook/internal/database"
)

// Prints the schema GORM creates for the jokebook models
func main() {
	db, err := database.Connect(&config.Config{
		DBType:            "sqlite",
		DatabaseURL:       ":memory:",
		DBConnectionLimit: 1,
		LogLevel:          "warn",
	})
	if err != nil {
		log.Fatal(err)
	}
	defer database.Close(db)

	if err := database.AutoMigrate(db); err != nil {
		log.Fatal(err)
	}

	type entry struct {
		Type string
		Name string
		SQL  string
	}
	var entries []entry
	if err := db.Raw("SELECT type, name, sql FROM sqlite_master WHERE sql IS NOT NULL ORDER BY tbl_name, type DESC").
		Scan(&entries).Error; err != nil {
		log.Fatal(err)
	}

	for _, e := range entries {
		fmt.Printf("\n=== %s: %s ===\n", e.Type, e.Name)
		fmt.Println(e.SQL)
	}
}
