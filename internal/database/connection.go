// connection.go
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
	"fmt"
	"net/url"
	"strings"

	glebarez "github.com/glebarez/sqlite"
	"github.com/robsiuuu/jokebook/internal/config"
	"github.com/robsiuuu/jokebook/internal/logging"
	"github.com/robsiuuu/jokebook/internal/types"
	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/driver/sqlserver"
	"gorm.io/gorm"
)

// Dialector selects the GORM dialector for the configured DB_TYPE
func Dialector(cfg *config.Config) (gorm.Dialector, error) {
	switch cfg.DBType {
	case "postgres", "postgresql":
		dsn, err := postgresDSN(cfg.DatabaseURL, cfg.DBSSLMode)
		if err != nil {
			return nil, err
		}
		return postgres.Open(dsn), nil

	case "mysql", "mariadb":
		return mysql.Open(cfg.DatabaseURL), nil

	case "sqlserver", "mssql":
		return sqlserver.Open(cfg.DatabaseURL), nil

	case "sqlite":
		// Pure Go driver, no cgo required
		return glebarez.Open(withQueryParam(cfg.DatabaseURL, "_pragma", "foreign_keys(1)")), nil

	case "sqlite3":
		return sqlite.Open(withQueryParam(cfg.DatabaseURL, "_foreign_keys", "1")), nil

	default:
		return nil, fmt.Errorf("unsupported database type: %s", cfg.DBType)
	}
}

// Connect opens the connection pool for the configured database
func Connect(cfg *config.Config) (*gorm.DB, error) {
	dialector, err := Dialector(cfg)
	if err != nil {
		return nil, err
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: logging.GormLogger(cfg.LogLevel),
	})
	if err != nil {
		return nil, &types.ConnectionError{Op: "connect", Err: fmt.Errorf("failed to connect to database: %w", err)}
	}

	// Get underlying SQL DB for connection pool configuration
	sqlDB, err := db.DB()
	if err != nil {
		return nil, &types.ConnectionError{Op: "connect", Err: fmt.Errorf("failed to get underlying SQL DB: %w", err)}
	}

	// Set connection pool settings
	maxOpen := cfg.DBConnectionLimit
	if isMemorySQLite(cfg) {
		// Every connection to an in-memory database is a separate database
		maxOpen = 1
	}
	sqlDB.SetMaxOpenConns(maxOpen)
	sqlDB.SetMaxIdleConns(max(maxOpen/2, 1))
	sqlDB.SetConnMaxLifetime(cfg.DBConnMaxLifetime)

	zap.L().Info("Connected to database",
		zap.String("type", cfg.DBType),
		zap.String("database", redact(cfg.DatabaseURL)),
		zap.Int("maxOpenConns", maxOpen))

	return db, nil
}

// Ping verifies the database is reachable
func Ping(ctx context.Context, db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return &types.ConnectionError{Op: "ping", Err: err}
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		return &types.ConnectionError{Op: "ping", Err: err}
	}
	return nil
}

// WithTransaction runs fn inside a transaction on a single pooled connection.
// It commits when fn returns nil and rolls back when fn returns an error or
// panics; in every case the connection goes back to the pool.
func WithTransaction(ctx context.Context, db *gorm.DB, fn func(tx *gorm.DB) error) error {
	return db.WithContext(ctx).Transaction(fn)
}

// Close closes the database connection
func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	stats := sqlDB.Stats()
	zap.L().Info("Closing database pool",
		zap.Int("openConnections", stats.OpenConnections),
		zap.Int64("waitCount", stats.WaitCount))
	return sqlDB.Close()
}

// postgresDSN applies an sslmode override to either DSN form pgx accepts
func postgresDSN(dsn, sslMode string) (string, error) {
	if sslMode == "" {
		return dsn, nil
	}

	if strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://") {
		u, err := url.Parse(dsn)
		if err != nil {
			return "", fmt.Errorf("invalid DATABASE_URL: %w", err)
		}
		q := u.Query()
		q.Set("sslmode", sslMode)
		u.RawQuery = q.Encode()
		return u.String(), nil
	}

	// Keyword/value form, the last occurrence of a keyword wins
	return strings.TrimSpace(dsn) + " sslmode=" + sslMode, nil
}

func withQueryParam(dsn, key, value string) string {
	if strings.Contains(dsn, key+"=") {
		return dsn
	}
	sep := "?"
	if strings.Contains(dsn, "?") {
		sep = "&"
	}
	return dsn + sep + key + "=" + value
}

func isMemorySQLite(cfg *config.Config) bool {
	if cfg.DBType != "sqlite" && cfg.DBType != "sqlite3" {
		return false
	}
	return strings.Contains(cfg.DatabaseURL, ":memory:") || strings.Contains(cfg.DatabaseURL, "mode=memory")
}

// redact hides the password of a connection string for logging
func redact(dsn string) string {
	if !strings.Contains(dsn, "://") {
		fields := strings.Fields(dsn)
		for i, f := range fields {
			if strings.HasPrefix(strings.ToLower(f), "password=") {
				fields[i] = "password=xxxxx"
			}
		}
		return strings.Join(fields, " ")
	}

	u, err := url.Parse(dsn)
	if err != nil || u.User == nil {
		return dsn
	}
	if _, ok := u.User.Password(); ok {
		u.User = url.UserPassword(u.User.Username(), "xxxxx")
	}
	return u.String()
}
