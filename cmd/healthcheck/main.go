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
	"encoding/json"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/robsiuuu/jokebook/internal/config"
	"github.com/robsiuuu/jokebook/internal/database"
	"github.com/robsiuuu/jokebook/internal/logging"
	"github.com/robsiuuu/jokebook/internal/services"
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

	// Keep stdout for the JSON result
	zlog, restoreLogging, err := logging.Install("error")
	if err != nil {
		log.Printf("Failed to initialize logging: %v", err)
		return 1
	}
	defer restoreLogging()

	db, err := database.Connect(cfg)
	if err != nil {
		zlog.Error("Failed to connect to database", zap.Error(err))
		return 1
	}
	defer database.Close(db)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	result := services.HealthCheck(ctx, cfg, db)

	output, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		zlog.Error("Failed to marshal health check result", zap.Error(err))
		return 1
	}
	fmt.Println(string(output))

	if !result.Healthy() {
		return 1
	}
	return 0
}
