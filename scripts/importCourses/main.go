package main

import (
	"context"
	"entrelaunch/config"
	"entrelaunch/database"
	"entrelaunch/logger"
	"entrelaunch/services/catalog"
	"flag"
	"log"
	"os"
)

func main() {
	path := flag.String("file", "courses.csv", "CSV file to import")
	flag.Parse()

	cfg := config.LoadConfig()
	appLog, err := logger.New(cfg.LogMode)
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}
	defer appLog.Sync()

	db, err := database.ConnectDb(cfg, appLog)
	if err != nil {
		appLog.Fatal("Failed to connect to the database", "error", err)
	}

	file, err := os.Open(*path)
	if err != nil {
		appLog.Fatal("Failed to open CSV file", "file", *path, "error", err)
	}
	defer file.Close()

	summary, err := catalog.New(catalog.Deps{DB: db, Log: appLog}).ImportCourses(context.Background(), file)
	if err != nil {
		appLog.Fatal("Course import failed", "error", err)
	}
	appLog.Info("Import completed", "inserted", summary.Inserted, "updated", summary.Updated, "skipped", summary.Skipped)
}
