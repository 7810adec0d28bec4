// Command main seeds a board for local development.
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"time"

	"moodboard/internal/config"
	"moodboard/internal/database"
	"moodboard/internal/observability"
	"moodboard/internal/seed"
)

func main() {
	fixture := flag.String("fixture", "", "YAML board fixture to load instead of generated posts")
	numPosts := flag.Int("posts", 60, "Number of posts to generate")
	maxAge := flag.Duration("max-age", 12*time.Hour, "Oldest generated post")
	seedValue := flag.Int64("seed", 0, "Random seed for generated content (0 = random)")
	shouldClean := flag.Bool("clean", true, "Clean the board before seeding")
	dryRun := flag.Bool("dry-run", false, "Build the board without writing it")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	observability.SetLogger(observability.NewLogger(os.Stdout, cfg.Env))

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		log.Fatalf("Failed to migrate: %v", err)
	}

	ctx := context.Background()
	factory := seed.NewFactory(db, seed.Options{
		Seed:   *seedValue,
		MaxAge: *maxAge,
		DryRun: *dryRun,
	})

	var board seed.Board
	if *fixture != "" {
		fx, err := seed.LoadFixture(*fixture)
		if err != nil {
			log.Fatalf("Failed to load fixture: %v", err)
		}
		if board, err = fx.Board(time.Now()); err != nil {
			log.Fatalf("Invalid fixture: %v", err)
		}
	} else {
		board = factory.BuildBoard(*numPosts)
	}

	if *shouldClean && !*dryRun {
		if err := seed.Clear(ctx, db); err != nil {
			log.Fatalf("Cleanup failed: %v", err)
		}
	}

	if err := factory.Persist(ctx, board); err != nil {
		log.Fatalf("Seeding failed: %v", err)
	}

	posts, reactions, replies := board.Counts()
	log.Printf("Seeded %d posts, %d reactions, %d replies (dry-run=%v)", posts, reactions, replies, *dryRun)
}
