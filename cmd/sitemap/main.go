package main

import (
	"flag"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"

	"aimrealty.com/estateapi/internal/model"
	"aimrealty.com/estateapi/internal/sitemap"
	"aimrealty.com/estateapi/pkg/database"
)

func main() {
	out := flag.String("out", "sitemap.xml", "output file")
	baseURL := flag.String("base", "", "site base URL (default: BASE_URL env)")
	withDB := flag.Bool("db", true, "include active property detail pages from the database")
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, using process environment")
	}

	base := *baseURL
	if base == "" {
		base = os.Getenv("BASE_URL")
	}
	if base == "" {
		base = "http://localhost:8080"
	}

	routes := sitemap.DefaultRoutes()
	if *withDB {
		routes = append(routes, propertyRoutes()...)
	}

	body, err := sitemap.Generate(base, routes, time.Now())
	if err != nil {
		log.Fatalf("generate sitemap: %v", err)
	}

	if err := os.WriteFile(*out, body, 0o644); err != nil {
		log.Fatalf("write %s: %v", *out, err)
	}

	log.Printf("sitemap with %d routes written to %s", len(routes), *out)
}

func propertyRoutes() []sitemap.Route {
	db := database.Connect()

	var slugs []string
	if err := db.Model(&model.Property{}).
		Where("status = ? AND slug IS NOT NULL", model.PropertyStatusActive).
		Pluck("slug", &slugs).Error; err != nil {
		log.Fatalf("load property slugs: %v", err)
	}

	routes := make([]sitemap.Route, 0, len(slugs))
	for _, slug := range slugs {
		routes = append(routes, sitemap.Route{
			Path:       "/properties/" + slug,
			ChangeFreq: "weekly",
			Priority:   "0.7",
		})
	}
	return routes
}
