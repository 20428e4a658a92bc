package main

import (
	"flag"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"

	"aimrealty.com/estateapi/internal/dbtools"
	"aimrealty.com/estateapi/pkg/database"
)

func main() {
	out := flag.String("out", "", "output file (default: timestamped name in the working directory)")
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, using process environment")
	}

	path := *out
	if path == "" {
		path = dbtools.ExportFileName(time.Now())
	}

	file, err := os.Create(path)
	if err != nil {
		log.Fatalf("create %s: %v", path, err)
	}
	defer file.Close()

	db := database.Connect()
	if err := dbtools.Export(db, file); err != nil {
		log.Fatalf("export failed: %v", err)
	}

	log.Printf("export written to %s", path)
}
