// Command datafix repairs the marketplace collection files in place, so a
// hand-edited or truncated document can never surface missing-field
// errors on the dashboards.
package main

import (
	"flag"
	"os"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/msme-dost/marketplace/internal/config"
	"github.com/msme-dost/marketplace/internal/insight"
	"github.com/msme-dost/marketplace/internal/repository"
	"github.com/msme-dost/marketplace/internal/service"
)

func main() {
	force := flag.Bool("force", false, "rewrite collection files even when already valid")
	flag.Parse()

	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{})

	cfg, err := config.NewConfig()
	if err != nil {
		logger.Fatalf("Failed to load config: %v", err)
	}

	store, err := repository.NewStore(cfg.DataDir)
	if err != nil {
		logger.Fatalf("Failed to open data dir: %v", err)
	}
	svc := service.NewService(store, logger, cfg, insight.NewFitScorer(time.Now().UnixNano()))

	fixed, failed := 0, 0
	for _, result := range svc.RepairCollections(*force) {
		switch {
		case result.Err != nil:
			logger.Errorf("%s: %v", result.Collection, result.Err)
			failed++
		case result.Changed:
			logger.Infof("Fixed %s", result.Collection)
			fixed++
		default:
			logger.Infof("%s is already valid", result.Collection)
		}
	}

	logger.Infof("Repair complete: %d fixed, %d failed", fixed, failed)
	if failed > 0 {
		os.Exit(1)
	}
}
