// Command seed populates the database with demo data for development.
package main

import (
	"context"
	"flag"
	"log"

	"warble/internal/config"
	"warble/internal/database"
	"warble/internal/seed"
)

func main() {
	opts := seed.DefaultOptions()
	flag.IntVar(&opts.Users, "users", opts.Users, "number of users to create")
	flag.IntVar(&opts.PostsPerUser, "posts", opts.PostsPerUser, "posts per user")
	flag.IntVar(&opts.CommentsPerPost, "comments", opts.CommentsPerPost, "comments per post")
	flag.IntVar(&opts.MaxDays, "days", opts.MaxDays, "spread post timestamps over this many days")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if cfg.IsProduction() {
		log.Fatal("Refusing to seed a production database")
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := seed.Run(context.Background(), db, opts); err != nil {
		log.Fatalf("Seed failed: %v", err)
	}
}
