package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	repo "portfolio/internal/adapter/repository"
	"portfolio/internal/config"
	"portfolio/internal/model"
	"portfolio/internal/seed"
)

func main() {
	file := flag.String("file", "seed/portfolio.yaml", "seed document to apply")
	export := flag.Bool("export", false, "print the current store contents as a seed document instead of applying one")
	dryRun := flag.Bool("dry-run", false, "validate the seed document without writing it")
	flag.Parse()

	if err := run(*file, *export, *dryRun); err != nil {
		slog.Error("seed failed", "error", err)
		os.Exit(1)
	}
}

func run(file string, export, dryRun bool) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	level, _ := cfg.SlogLevel()
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	ctx := context.Background()

	if !export {
		doc, err := seed.Load(file)
		if err != nil {
			return err
		}
		v, err := model.NewValidator()
		if err != nil {
			return err
		}
		if err := doc.Validate(v); err != nil {
			return fmt.Errorf("invalid seed document %s: %w", file, err)
		}
		if dryRun {
			slog.Info("seed document is valid", "file", file)
			return nil
		}

		store, closeStore, err := repo.Open(ctx, cfg)
		if err != nil {
			return err
		}
		defer closeStore()

		res, err := seed.Apply(ctx, store, doc)
		if err != nil {
			return err
		}
		slog.Info("seed complete",
			"file", file,
			"skills", res.Skills,
			"education", res.Education,
			"experience", res.Experience,
			"projects", res.Projects,
			"technologies", res.Technologies,
		)
		return nil
	}

	store, closeStore, err := repo.Open(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeStore()

	doc, err := seed.Export(ctx, store)
	if err != nil {
		return err
	}
	out, err := seed.Marshal(doc)
	if err != nil {
		return err
	}
	_, err = os.Stdout.Write(out)
	return err
}
