package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/giftcardmax/recommender/internal/api/handlers"
	"github.com/giftcardmax/recommender/internal/api/middleware"
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

func main() {
	var (
		port        = flag.String("port", "8080", "HTTP server port")
		storePath   = flag.String("store", "transactions.json", "Path to the local transaction store")
		bqProject   = flag.String("bq-project", os.Getenv("BQ_PROJECT"), "BigQuery project for the transaction store (or set BQ_PROJECT env); overrides -bucket and -store")
		bucket      = flag.String("bucket", os.Getenv("GCS_BUCKET"), "GCS bucket for the transaction store (or set GCS_BUCKET env); overrides -store")
		object      = flag.String("object", "transactions.json", "GCS object name for the transaction store")
		catalogURI  = flag.String("catalog-uri", os.Getenv("CATALOG_URI"), "GCS URI of an external catalog JSON (or set CATALOG_URI env); default uses the built-in catalog")
		minSpend    = flag.Float64("min-spend", engine.DefaultMinMonthlySpending, "Minimum monthly spending threshold")
		minDiscount = flag.Float64("min-discount", engine.DefaultMinDiscountThreshold, "Minimum discount percent threshold")
		topN        = flag.Int("top-n", engine.DefaultTopN, "Maximum number of recommendations")
	)
	flag.Parse()

	log := logger.New()
	ctx := context.Background()

	var txnStore store.TransactionStore
	if *bqProject != "" {
		bqStore, err := infrabq.NewStore(ctx, *bqProject)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to create BigQuery transaction store")
		}
		defer bqStore.Close()
		txnStore = bqStore
		log.Info().Str("project", *bqProject).Msg("Using BigQuery transaction store")
	} else if *bucket != "" {
		txnStore = storegcs.NewStore(*bucket, *object)
		log.Info().Str("bucket", *bucket).Str("object", *object).Msg("Using GCS transaction store")
	} else {
		txnStore = jsonfile.NewStore(*storePath)
		log.Info().Str("path", *storePath).Msg("Using local transaction store")
	}

	var catalogSrc refresh.CatalogSource = catalog.StaticSource{}
	if *catalogURI != "" {
		catalogSrc = catalog.GCSSource{URI: *catalogURI}
		log.Info().Str("uri", *catalogURI).Msg("Using external gift card catalog")
	}

	cfg := engine.Config{
		MinMonthlySpending:   *minSpend,
		MinDiscountThreshold: *minDiscount,
		TopN:                 *topN,
	}
	runner := refresh.NewRunner(txnStore, catalogSrc, cfg)
	holder := refresh.NewHolder()

	jobStore := jobsmem.NewStore()
	jobQueue := jobsmem.NewQueue(100, jobStore)

	workerCtx, cancelWorker := context.WithCancel(ctx)
	defer cancelWorker()

	jobHandler := func(ctx context.Context, job jobs.Job) error {
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
		holder.Set(snap)

		log.Info().
			Str("job_id", refreshJob.JobID).
			Int("transactions", snap.Transactions).
			Int("recommendations", len(snap.Recommendations)).
			Msg("Refresh completed")
		return nil
	}

	go func() {
		log.Info().Msg("Starting refresh worker")
		if err := jobQueue.Start(workerCtx, jobHandler); err != nil {
			log.Error().Err(err).Msg("Refresh worker stopped with error")
		}
	}()

	// Warm the snapshot so the first GET does not 503.
	if err := jobQueue.PublishRefresh(ctx, &jobs.RefreshJob{Trigger: "startup"}); err != nil {
		log.Warn().Err(err).Msg("Failed to enqueue startup refresh")
	}

	recsHandler := handlers.NewRecommendationsHandler(holder, jobQueue, log)
	merchantsHandler := handlers.NewMerchantsHandler(holder, log)
	transactionsHandler := handlers.NewTransactionsHandler(txnStore, log)
	jobsHandler := handlers.NewJobsHandler(jobStore, log)

	mux := http.NewServeMux()

	mux.HandleFunc("/api/recommendations", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet {
			recsHandler.List(w, r)
		} else {
			middleware.WriteError(w, http.StatusMethodNotAllowed, "Method not allowed")
		}
	})

	mux.HandleFunc("/api/recommendations/refresh", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			recsHandler.Refresh(w, r)
		} else {
			middleware.WriteError(w, http.StatusMethodNotAllowed, "Method not allowed")
		}
	})

	mux.HandleFunc("/api/recommendations/", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet {
			id := strings.TrimPrefix(r.URL.Path, "/api/recommendations/")
			if id == "" {
				middleware.WriteError(w, http.StatusBadRequest, "Recommendation ID is required")
				return
			}
			recsHandler.Get(w, r, id)
		} else {
			middleware.WriteError(w, http.StatusMethodNotAllowed, "Method not allowed")
		}
	})

	mux.HandleFunc("/api/merchants", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet {
			merchantsHandler.List(w, r)
		} else {
			middleware.WriteError(w, http.StatusMethodNotAllowed, "Method not allowed")
		}
	})

	mux.HandleFunc("/api/transactions", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet {
			transactionsHandler.List(w, r)
		} else {
			middleware.WriteError(w, http.StatusMethodNotAllowed, "Method not allowed")
		}
	})

	mux.HandleFunc("/api/jobs", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet {
			jobsHandler.List(w, r)
		} else {
			middleware.WriteError(w, http.StatusMethodNotAllowed, "Method not allowed")
		}
	})

	mux.HandleFunc("/api/jobs/", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet {
			jobID := strings.TrimPrefix(r.URL.Path, "/api/jobs/")
			if jobID == "" {
				middleware.WriteError(w, http.StatusBadRequest, "Job ID is required")
				return
			}
			jobsHandler.Get(w, r, jobID)
		} else {
			middleware.WriteError(w, http.StatusMethodNotAllowed, "Method not allowed")
		}
	})

	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		middleware.WriteJSON(w, http.StatusOK, map[string]string{
			"status": "healthy",
			"time":   time.Now().Format(time.RFC3339),
		})
	})

	handler := middleware.Recovery(log)(
		middleware.Logger(log)(
			middleware.RequestID(
				middleware.CORS(mux),
			),
		),
	)

	server := &http.Server{
		Addr:         ":" + *port,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info().Str("port", *port).Msg("Starting API server")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	cancelWorker()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	if err := jobQueue.Stop(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Error stopping job queue")
	}

	log.Info().Msg("Server exited")
}
