package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/robsiuuu/jokebook/internal/database"
	"github.com/robsiuuu/jokebook/internal/logging"
	"github.com/robsiuuu/jokebook/internal/testhelpers"
	"go.uber.org/zap"
)

func main() {
	var showHelp bool
	flag.BoolVar(&showHelp, "h", false, "show help")
	var envFilename string
	flag.StringVar(&envFilename, "f", "", "path to the .env file")
	var dbType string
	flag.StringVar(&dbType, "db", "", "database type (postgres or mysql), defaults to DB_TYPE or postgres")
	flag.Parse()

	usage := `
Start a seeded jokebook database in a container and print its DATABASE_URL.

Usage:

testcontainers [-h] [-f ENV_FILE_PATH] [-db postgres|mysql]

ENV_FILE_PATH: path to the .env file, DB_IMAGE in it overrides the image

example
  testcontainers -f /path/to/something/.env -db mysql
`
	if showHelp {
		fmt.Println(usage)
		return
	}

	if envFilename != "" {
		log.Printf("Loading environment variables from %s\n", envFilename)
		if err := godotenv.Load(envFilename); err != nil {
			log.Fatalf("Failed to load environment variables: %v\n", err)
		}
	} else {
		log.Printf("No environment file specified, using current environment variables\n")
	}

	if dbType == "" {
		dbType = os.Getenv("DB_TYPE")
	}
	if dbType == "" {
		dbType = "postgres"
	}

	zlog, restoreLogging, err := logging.Install("info")
	if err != nil {
		log.Fatalf("Failed to initialize logging: %v\n", err)
	}
	defer restoreLogging()

	ctx := context.Background()
	dc, err := testhelpers.StartDatabaseContainer(ctx, dbType)
	if err != nil {
		zlog.Fatal("Failed to create test container", zap.Error(err))
	}
	defer dc.Terminate(nil)

	db, err := database.Connect(dc.Config)
	if err != nil {
		dc.Terminate(nil)
		zlog.Fatal("Failed to connect to test container", zap.Error(err))
	}
	if err := database.Initialize(ctx, db); err != nil {
		_ = database.Close(db)
		dc.Terminate(nil)
		zlog.Fatal("Failed to seed test container", zap.Error(err))
	}
	_ = database.Close(db)

	fmt.Printf("DB_TYPE=%s\n", dc.Config.DBType)
	fmt.Printf("DATABASE_URL=%s\n", dc.Config.DatabaseURL)

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	sig := <-sigs
	log.Printf("\nReceived signal: %v, terminating test container...\n", sig)
}
