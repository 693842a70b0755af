// Command recordpdf renders a stored match record to PDF: a diagram of the
// last stone placed on every point followed by the placement log.
package main

import (
	"context"
	"os"
	"time"

	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/LanSanter/GO-game-proj/internal/adapters"
	"github.com/LanSanter/GO-game-proj/internal/bootstrap"
	repo "github.com/LanSanter/GO-game-proj/internal/repository"
)

func main() {
	logger, err := zap.NewDevelopment()
	if err != nil {
		panic("failed to initialize logger: " + err.Error())
	}
	log := logger.Sugar()
	defer func() { _ = log.Sync() }()

	cfgPath := pflag.String("config", ".env", "path to the configuration file")
	id := pflag.String("id", "", "record id")
	output := pflag.StringP("out", "o", "", "output file (default <id>.pdf)")
	pflag.Parse()

	if *id == "" {
		log.Error("--id is required")
		pflag.Usage()
		os.Exit(2)
	}
	if *output == "" {
		*output = *id + ".pdf"
	}

	cfg, err := bootstrap.Setup(*cfgPath)
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	mongoAdapter := adapters.NewAdapterMongo(cfg, log)
	if err := mongoAdapter.Init(ctx); err != nil {
		log.Fatalf("failed to connect: %v", err)
	}
	defer func() { _ = mongoAdapter.Close(context.Background()) }()

	record, err := repo.NewGameRepository(log, mongoAdapter.Database).GetRecord(ctx, *id)
	if err != nil {
		log.Errorf("failed to load record %s: %v", *id, err)
		return
	}

	f, err := os.Create(*output)
	if err != nil {
		log.Errorf("failed to create %s: %v", *output, err)
		return
	}
	defer f.Close()

	if err := renderRecord(record, f); err != nil {
		log.Errorf("failed to render record: %v", err)
		return
	}
	log.Infof("record %s written to %s", *id, *output)
}
