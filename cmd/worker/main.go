package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/giftcardmax/recommender/internal/catalog"
	"github.com/giftcardmax/recommender/internal/engine"
	infrabq "github.com/giftcardmax/recommender/internal/infra/bigquery"
	"github.com/giftcardmax/recommender/internal/jobs"
	jobsmem "github.com/giftcardmax/recommender/internal/jobs/inmemory"
	"github.com/giftcardmax/recommender/internal/logger"
	"github.com/giftcardmax/recommender/internal/refresh"
	"github.com/giftcardmax/recommender/internal/store"
	storegcs "github.com/giftcardmax/recommender/internal/store/gcs"
	"github.com/giftcardmax/recommender/internal/store/jsonfile"
)

// The worker recomputes recommendations on a schedule and logs the
// resulting savings summary. It shares the queue machinery with the
// API server so a queue swap (Cloud Tasks, Pub/Sub) touches one place.
func main() {
	var (
		storePath  = flag.String("store", "transactions.json", "Path to the local transaction store")
		bqProject  = flag.String("bq-project", os.Getenv("BQ_PROJECT"), "BigQuery project for the transaction store (or set BQ_PROJECT env); overrides -bucket and -store")
		bucket     = flag.String("bucket", os.Getenv("GCS_BUCKET"), "GCS bucket for the transaction store (or set GCS_BUCKET env); overrides -store")
		object     = flag.String("object", "transactions.json", "GCS object name for the transaction store")
		catalogURI = flag.String("catalog-uri", os.Getenv("CATALOG_URI"), "GCS URI of an external catalog JSON; default uses the built-in catalog")
		interval   = flag.Duration("interval", 15*time.Minute, "How often to refresh recommendations")
	)
	flag.Parse()

	log := logger.New()

	var txnStore store.TransactionStore
	if *bqProject != "" {
		bqStore, err := infrabq.NewStore(context.Background(), *bqProject)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to create BigQuery transaction store")
		}
		defer bqStore.Close()
		txnStore = bqStore
	} else if *bucket != "" {
		txnStore = storegcs.NewStore(*bucket, *object)
	} else {
		txnStore = jsonfile.NewStore(*storePath)
	}

	var catalogSrc refresh.CatalogSource = catalog.StaticSource{}
	if *catalogURI != "" {
		catalogSrc = catalog.GCSSource{URI: *catalogURI}
	}

	runner := refresh.NewRunner(txnStore, catalogSrc, engine.DefaultConfig())

	jobStore := jobsmem.NewStore()
	jobQueue := jobsmem.NewQueue(100, jobStore)

	log.Info().Dur("interval", *interval).Msg("Starting worker service")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	handler := func(ctx context.Context, job jobs.Job) error {
		refreshJob, ok := job.(*jobs.RefreshJob)
		if !ok {
			return fmt.Errorf("unexpected job type: %T", job)
		}

		log.Info().
			Str("job_id", refreshJob.JobID).
			Str("trigger", refreshJob.Trigger).
			Msg("Processing refresh job")

		snap, err := runner.Run(ctx, refreshJob.AsOf)
		if err != nil {
			log.Error().Err(err).Str("job_id", refreshJob.JobID).Msg("Refresh failed")
			return err
		}

		var annual float64
		for _, rec := range snap.Recommendations {
			annual += rec.AnnualSavings
		}
		log.Info().
			Str("job_id", refreshJob.JobID).
			Int("transactions", snap.Transactions).
			Int("merchants", len(snap.Profiles)).
			Int("recommendations", len(snap.Recommendations)).
			Float64("total_annual_savings", annual).
			Msg("Refresh completed")
		return nil
	}

	if err := jobQueue.Start(ctx, handler); err != nil {
		log.Fatal().Err(err).Msg("Failed to start job consumer")
	}

	// Kick off one run immediately, then on the interval.
	if err := jobQueue.PublishRefresh(ctx, &jobs.RefreshJob{Trigger: "startup"}); err != nil {
		log.Warn().Err(err).Msg("Failed to enqueue startup refresh")
	}

	ticker := time.NewTicker(*interval)
	defer ticker.Stop()

	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if err := jobQueue.PublishRefresh(ctx, &jobs.RefreshJob{Trigger: "schedule"}); err != nil {
					log.Warn().Err(err).Msg("Failed to enqueue scheduled refresh")
				}
			}
		}
	}()

	log.Info().Msg("Worker service started, waiting for jobs...")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down worker service...")

	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := jobQueue.Stop(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Error during graceful shutdown")
	}

	log.Info().Msg("Worker service exited")
}
