// Command loadbank imports question bank JSON files into the local
// question store.
//
// Usage:
//
//	loadbank [-type sentence-completion] [-difficulty medium] [-dry-run] file.json...
//
// Each file is upserted in its own transaction and keeps its question order,
// which is the order numbered sets page through.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/vytor/examprep/internal/config"
	"github.com/vytor/examprep/internal/db"
	"github.com/vytor/examprep/internal/logger"
	"github.com/vytor/examprep/internal/models"
	"github.com/vytor/examprep/internal/questions"
	"github.com/vytor/examprep/internal/repository/sqlite"
)

func main() {
	typeFlag := flag.String("type", "", "question type for entries that omit one")
	difficultyFlag := flag.String("difficulty", string(models.DifficultyMedium), "difficulty for entries that omit one")
	dryRun := flag.Bool("dry-run", false, "parse and validate without writing")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: %s [flags] file.json...\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	cfg := config.Load()
	log := logger.New(
		logger.WithLevel(logger.ParseLevel(cfg.LogLevel)),
		logger.WithColors(cfg.LogColors),
		logger.WithPrefix("loadbank"),
	)
	logger.SetDefault(log)

	if flag.NArg() == 0 {
		flag.Usage()
		os.Exit(2)
	}
	defaults := questions.FileDefaults{
		Type:       models.QuestionType(*typeFlag),
		Difficulty: models.Difficulty(*difficultyFlag),
	}
	if defaults.Type != "" && !defaults.Type.Valid() {
		log.Error("unknown question type %q", *typeFlag)
		os.Exit(2)
	}
	if !defaults.Difficulty.Valid() {
		log.Error("unknown difficulty %q", *difficultyFlag)
		os.Exit(2)
	}

	banks := make(map[string][]models.Question, flag.NArg())
	for _, path := range flag.Args() {
		data, err := os.ReadFile(path)
		if err != nil {
			log.Error("failed to read %s: %v", path, err)
			os.Exit(1)
		}
		qs, err := questions.ParseBankFile(data, defaults)
		if err != nil {
			log.Error("invalid bank %s: %v", path, err)
			os.Exit(1)
		}
		log.Info("parsed %d questions from %s", len(qs), path)
		banks[path] = qs
	}
	if *dryRun {
		log.Info("dry run, nothing written")
		return
	}

	database, err := db.Open(cfg.DBPath)
	if err != nil {
		log.Error("failed to open database: %v", err)
		os.Exit(1)
	}
	defer database.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()
	ctx = logger.NewContext(ctx, log)

	repo := sqlite.NewQuestionRepository(database.DB)
	total := 0
	for _, path := range flag.Args() {
		n, err := repo.UpsertBatch(ctx, banks[path])
		if err != nil {
			log.Error("failed to load %s: %v", path, err)
			os.Exit(1)
		}
		total += n
	}
	log.Info("loaded %d questions from %d files", total, flag.NArg())
}
