package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"

	"github.com/giftcardmax/recommender/internal/catalog"
	"github.com/giftcardmax/recommender/internal/engine"
	infrabq "github.com/giftcardmax/recommender/internal/infra/bigquery"
	"github.com/giftcardmax/recommender/internal/logger"
	"github.com/giftcardmax/recommender/internal/mockdata"
	"github.com/giftcardmax/recommender/internal/store"
	"github.com/giftcardmax/recommender/internal/store/jsonfile"
)

func main() {
	log := logger.New()

	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "seed":
		runSeed(log)
	case "merchants":
		runMerchants(log)
	case "recommend":
		runRecommend(log)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println("Gift Card Recommender CLI")
	fmt.Println("\nUsage:")
	fmt.Println("  cli <command> [options]")
	fmt.Println("\nCommands:")
	fmt.Println("  seed       Generate mock transactions into the local store")
	fmt.Println("  merchants  Print per-merchant spending profiles")
	fmt.Println("  recommend  Generate gift card recommendations")
	fmt.Println("  help       Show this help message")
	fmt.Println("\nRun 'cli <command> -h' for more information on a command.")
}

// openStore picks the transaction store backend. A close function is
// always returned; it is a no-op for the local file store.
func openStore(ctx context.Context, log zerolog.Logger, path, bqProject string) (store.TransactionStore, func()) {
	if bqProject != "" {
		bqStore, err := infrabq.NewStore(ctx, bqProject)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to create BigQuery transaction store")
		}
		return bqStore, func() { bqStore.Close() }
	}
	return jsonfile.NewStore(path), func() {}
}

func runSeed(log zerolog.Logger) {
	fs := flag.NewFlagSet("seed", flag.ExitOnError)
	storePath := fs.String("store", "transactions.json", "Path to the local transaction store")
	bqProject := fs.String("bq-project", os.Getenv("BQ_PROJECT"), "BigQuery project for the transaction store; overrides -store")
	count := fs.Int("count", 100, "Number of transactions to generate")
	seed := fs.Int64("seed", time.Now().UnixNano(), "Random seed (fixed seed gives reproducible output)")
	fs.Parse(os.Args[2:])

	ctx := context.Background()
	txns := mockdata.NewGenerator(*seed, time.Now()).Transactions(*count)

	txnStore, closeStore := openStore(ctx, log, *storePath, *bqProject)
	defer closeStore()

	if err := txnStore.Save(ctx, txns); err != nil {
		log.Fatal().Err(err).Msg("Failed to save transactions")
	}

	if *bqProject != "" {
		fmt.Printf("Wrote %d transactions to BigQuery project %s\n", len(txns), *bqProject)
	} else {
		fmt.Printf("Wrote %d transactions to %s\n", len(txns), *storePath)
	}
}

func runMerchants(log zerolog.Logger) {
	fs := flag.NewFlagSet("merchants", flag.ExitOnError)
	storePath := fs.String("store", "transactions.json", "Path to the local transaction store")
	bqProject := fs.String("bq-project", os.Getenv("BQ_PROJECT"), "BigQuery project for the transaction store; overrides -store")
	fs.Parse(os.Args[2:])

	ctx := context.Background()

	txnStore, closeStore := openStore(ctx, log, *storePath, *bqProject)
	defer closeStore()

	txns, err := txnStore.Load(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load transactions")
	}

	profiles, err := engine.BuildProfiles(txns)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to build merchant profiles")
	}

	fmt.Printf("\n=== Merchants (%d) ===\n", len(profiles))
	for i, p := range profiles {
		fmt.Printf("\n%d. %s (%s)\n", i+1, p.Name, p.Category)
		fmt.Printf("   Total:   $%.2f over %d transactions\n", p.TotalSpent, p.TransactionCount)
		fmt.Printf("   Average: $%.2f\n", p.AverageTransaction)
		fmt.Printf("   Last:    %s\n", p.LastTransactionDate.Format("2006-01-02"))
	}
	fmt.Println()
}

func runRecommend(log zerolog.Logger) {
	fs := flag.NewFlagSet("recommend", flag.ExitOnError)
	storePath := fs.String("store", "transactions.json", "Path to the local transaction store")
	bqProject := fs.String("bq-project", os.Getenv("BQ_PROJECT"), "BigQuery project for the transaction store; overrides -store")
	catalogURI := fs.String("catalog-uri", "", "GCS URI of an external catalog JSON; default uses the built-in catalog")
	minSpend := fs.Float64("min-spend", engine.DefaultMinMonthlySpending, "Minimum monthly spending threshold")
	minDiscount := fs.Float64("min-discount", engine.DefaultMinDiscountThreshold, "Minimum discount percent threshold")
	topN := fs.Int("top-n", engine.DefaultTopN, "Maximum number of recommendations")
	fs.Parse(os.Args[2:])

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()
	ctx = logger.WithContext(ctx, log)

	txnStore, closeStore := openStore(ctx, log, *storePath, *bqProject)
	defer closeStore()

	txns, err := txnStore.Load(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load transactions")
	}

	offers := catalog.Static()
	if *catalogURI != "" {
		offers, err = catalog.FetchFromGCS(ctx, *catalogURI)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to fetch catalog")
		}
	}

	profiles, err := engine.BuildProfiles(txns)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to build merchant profiles")
	}

	cfg := engine.Config{
		MinMonthlySpending:   *minSpend,
		MinDiscountThreshold: *minDiscount,
		TopN:                 *topN,
	}
	recs, err := engine.Generate(profiles, txns, offers, cfg, time.Now())
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to generate recommendations")
	}

	if len(recs) == 0 {
		fmt.Println("No recommendations - nothing cleared the thresholds.")
		return
	}

	var annual float64
	fmt.Printf("\n=== Recommendations (%d) ===\n", len(recs))
	for i, rec := range recs {
		fmt.Printf("\n%d. %s - %.1f%% off via %s\n", i+1, rec.Merchant.Name, rec.GiftCard.DiscountPercent, rec.GiftCard.Source)
		fmt.Printf("   Monthly spending: $%.2f\n", rec.MonthlySpending)
		fmt.Printf("   Monthly savings:  $%.2f\n", rec.PotentialSavings)
		fmt.Printf("   Annual savings:   $%.2f\n", rec.AnnualSavings)
		annual += rec.AnnualSavings
	}
	fmt.Printf("\nTotal annual savings: $%.2f\n\n", annual)
}
