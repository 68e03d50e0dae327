package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"github.com/jengzang/hexmetrics-backend-go/internal/config"
	"github.com/jengzang/hexmetrics-backend-go/internal/database"
	"github.com/jengzang/hexmetrics-backend-go/internal/models"
	"github.com/jengzang/hexmetrics-backend-go/internal/service"
)

// aggregate runs the cell aggregation pipeline from the command line:
//
//	aggregate -domain biodiversity -partitions ES:2022,ES:2023
//	aggregate -domain landfeature -partitions ES
//
// With no -partitions flag, all staged partitions of the domain are run.
func main() {
	domain := flag.String("domain", service.DomainBiodiversity, "aggregation domain: biodiversity or landfeature")
	partitionsFlag := flag.String("partitions", "", "comma-separated partitions, country or country:year")
	flag.Parse()

	cfg := config.Load()

	if err := database.Init(database.Config{Path: cfg.DBPath}); err != nil {
		log.Fatal("Failed to initialize database:", err)
	}
	defer database.Close()

	db := database.GetDB()
	migrator := database.NewMigrationManager(db, cfg.MigrationsPath)
	if err := migrator.Migrate(); err != nil {
		log.Fatal("Failed to apply migrations:", err)
	}

	aggregation, err := service.NewAggregationService(db, config.DefaultEngine(), cfg.AggWorkers)
	if err != nil {
		log.Fatal("Failed to create aggregation service:", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	partitions, err := resolvePartitions(ctx, aggregation, *domain, *partitionsFlag)
	if err != nil {
		log.Fatal(err)
	}
	if len(partitions) == 0 {
		log.Printf("No partitions to process for domain %s", *domain)
		return
	}

	runID, err := aggregation.Run(ctx, *domain, partitions)
	if err != nil {
		log.Fatalf("Run %d failed: %v", runID, err)
	}
	log.Printf("Run %d completed for %d partitions", runID, len(partitions))
}

func resolvePartitions(ctx context.Context, aggregation *service.AggregationService, domain, flagValue string) ([]models.Partition, error) {
	if flagValue == "" {
		if domain == service.DomainLandFeature {
			return aggregation.ListFeaturePartitions(ctx)
		}
		return aggregation.ListBiodiversityPartitions(ctx)
	}

	var out []models.Partition
	for _, spec := range strings.Split(flagValue, ",") {
		spec = strings.TrimSpace(spec)
		if spec == "" {
			continue
		}
		parts := strings.SplitN(spec, ":", 2)
		p := models.Partition{Country: parts[0]}
		if len(parts) == 2 {
			year, err := strconv.Atoi(parts[1])
			if err != nil {
				log.Fatalf("invalid partition spec %q", spec)
			}
			p.Year = year
		}
		out = append(out, p)
	}
	return out, nil
}
