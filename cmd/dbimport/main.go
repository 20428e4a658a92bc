package main

import (
	"flag"
	"log"
	"os"

	"github.com/joho/godotenv"

	"aimrealty.com/estateapi/internal/dbtools"
	"aimrealty.com/estateapi/pkg/database"
	"aimrealty.com/estateapi/pkg/logger"
)

func main() {
	flag.Parse()
	if flag.NArg() != 1 {
		log.Fatal("usage: dbimport <dump.sql>")
	}

	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, using process environment")
	}

	file, err := os.Open(flag.Arg(0))
	if err != nil {
		log.Fatalf("open %s: %v", flag.Arg(0), err)
	}
	defer file.Close()

	zlog := logger.New()
	defer zlog.Sync()

	db := database.Connect()
	result, err := dbtools.Import(db, file, zlog)
	if err != nil {
		zlog.Fatalw("import aborted", "error", err)
	}

	zlog.Infow("import finished", "succeeded", result.Succeeded, "failed", result.Failed)
	if result.Failed > 0 {
		os.Exit(1)
	}
}
