package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/artcove/artcove-backend/internal/app"
	"github.com/artcove/artcove-backend/internal/seed"
)

func main() {
	var configPath string
	var dryRun bool
	flag.StringVar(&configPath, "config", "configs/seed.yaml", "path to the seed file")
	flag.BoolVar(&dryRun, "dry-run", false, "parse and validate the seed file without writing")
	flag.Parse()

	f, err := seed.Parse(configPath)
	if err != nil {
		fmt.Printf("load seed file: %v\n", err)
		os.Exit(1)
	}
	if dryRun {
		fmt.Printf("seed file ok: %d categories, creator=%v, %d assets\n",
			len(f.Categories), f.Creator != nil, len(f.Assets))
		return
	}

	application, err := app.New()
	if err != nil {
		fmt.Printf("init app: %v\n", err)
		os.Exit(1)
	}
	defer application.Close()

	seeder := seed.NewSeeder(
		application.DB,
		application.Log,
		application.Repos.User,
		application.Repos.Category,
		application.Repos.Asset,
	)
	res, err := seeder.Apply(context.Background(), f)
	if err != nil {
		fmt.Printf("apply seed: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("seeded: %d new categories, creator created=%v, %d assets\n",
		res.CategoriesCreated, res.CreatorCreated, res.AssetsCreated)
}
