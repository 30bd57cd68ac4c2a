// main.go
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

package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/robsiuuu/jokebook/internal/config"
	"github.com/robsiuuu/jokebook/internal/database"
	"github.com/robsiuuu/jokebook/internal/logging"
	"go.uber.org/zap"
)

func main() {
	os.Exit(run())
}

func run() int {
	cfg, err := config.Load()
	if err != nil {
		log.Printf("Failed to load configuration: %v", err)
		return 1
	}

	zlog, restoreLogging, err := logging.Install(cfg.LogLevel)
	if err != nil {
		log.Printf("Failed to initialize logging: %v", err)
		return 1
	}
	defer restoreLogging()

	db, err := database.Connect(cfg)
	if err != nil {
		zlog.Error("Failed to connect to database", zap.Error(err))
		fmt.Println("Database setup failed")
		return 1
	}
	defer database.Close(db)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	if err := database.Initialize(ctx, db); err != nil {
		zlog.Error("Failed to initialize database", zap.Error(err))
		fmt.Println("Database setup failed")
		return 1
	}

	fmt.Println("Database setup complete!")
	return 0
}
