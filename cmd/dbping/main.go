package main

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"aimrealty.com/estateapi/internal/dbtools"
	"aimrealty.com/estateapi/pkg/database"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, using process environment")
	}

	// Open directly instead of database.Connect, which fatals on failure.
	db, err := gorm.Open(postgres.Open(database.DSN()), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})

	var diagnosis dbtools.Diagnosis
	if err != nil {
		diagnosis = dbtools.Classify(err)
	} else {
		diagnosis = dbtools.Ping(db, 5*time.Second)
	}

	fmt.Printf("status: %s\n%s\n", diagnosis.Kind, diagnosis.Advice)
	if diagnosis.Kind != dbtools.FailureNone {
		os.Exit(1)
	}
}
