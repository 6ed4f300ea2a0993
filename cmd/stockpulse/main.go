package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"stockpulse/pkg/crawler"
	"stockpulse/pkg/directory"
	"stockpulse/pkg/reddit"
	"stockpulse/pkg/report"
	"stockpulse/pkg/ticker"
)

var refreshTickers = flag.Bool("refresh-tickers", false, "Download the latest SEC company tickers before crawling")

func envStr(name, fallback string) string {
	if v := os.Getenv(name); v != "" {
		return v
	}
	return fallback
}

func envInt(name string, fallback int) int {
	v := os.Getenv(name)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func envList(name string, fallback []string) []string {
	v := os.Getenv(name)
	if v == "" {
		return fallback
	}
	var out []string
	for _, part := range strings.Split(v, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	if len(out) == 0 {
		return fallback
	}
	return out
}

func main() {
	flag.Parse()
	godotenv.Load()

	logger := zap.Must(zap.NewProduction())
	defer logger.Sync()

	clientID := os.Getenv("REDDIT_CLIENT_ID")
	clientSecret := os.Getenv("REDDIT_CLIENT_SECRET")
	if clientID == "" || clientSecret == "" {
		fmt.Println("Error: Reddit API credentials not found!")
		fmt.Println("Set the following variables in the environment or a .env file:")
		fmt.Println("  REDDIT_CLIENT_ID=your_client_id")
		fmt.Println("  REDDIT_CLIENT_SECRET=your_client_secret")
		fmt.Println("  REDDIT_USER_AGENT=YourApp/1.0 (optional)")
		fmt.Println("\nCredentials come from: https://www.reddit.com/prefs/apps")
		os.Exit(1)
	}

	subreddits := envList("SUBREDDITS", []string{"wallstreetbets"})
	outputFile := envStr("OUTPUT_FILE", "top_stocks.txt")
	topN := envInt("TOP_N", 10)

	denylist := ticker.DefaultDenylist()
	if path := os.Getenv("DENYLIST_FILE"); path != "" {
		var err error
		denylist, err = ticker.LoadDenylist(path)
		if err != nil {
			logger.Fatal("failed to load denylist", zap.String("path", path), zap.Error(err))
		}
	}

	client := reddit.NewClient(&reddit.Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		UserAgent:    envStr("REDDIT_USER_AGENT", reddit.DefaultUserAgent),
	}, logger)

	fmt.Println("Testing Reddit API connection...")
	if err := client.Authenticate(); err != nil {
		logger.Fatal("reddit authentication failed", zap.Error(err))
	}

	c := crawler.New(&crawler.Config{
		Subreddits:   subreddits,
		PostLimit:    envInt("POST_LIMIT", 25),
		CommentLimit: envInt("COMMENT_LIMIT", 10),
		Delay:        time.Duration(envInt("FETCH_DELAY_MS", 100)) * time.Millisecond,
	}, client, logger)

	fmt.Println("Starting Reddit stock symbol crawl...")
	agg := ticker.NewAggregator(denylist)
	stats := c.Run(agg)

	logger.Info("crawl complete",
		zap.Int("posts", stats.Posts),
		zap.Int("comments", stats.Comments),
		zap.Int("skipped", stats.Skipped),
		zap.Int("unique_symbols", agg.Distinct()),
		zap.Int("total_mentions", agg.Total()))

	rep := report.Build(agg.Rank(topN), agg.Total(), subreddits)
	rep.Annotate(buildDirectory(logger), logger)

	fmt.Print(rep.Text())

	if err := rep.WriteText(outputFile); err != nil {
		logger.Fatal("failed to write report", zap.Error(err))
	}
	jsonFile := strings.TrimSuffix(outputFile, filepath.Ext(outputFile)) + ".json"
	if err := rep.WriteJSON(jsonFile); err != nil {
		logger.Fatal("failed to write json report", zap.Error(err))
	}

	fmt.Printf("\nResults saved to %s and %s\n", outputFile, jsonFile)
}

// buildDirectory assembles the optional symbol directory chain. Anything that
// fails here degrades to an unannotated report, never a failed run.
func buildDirectory(logger *zap.Logger) directory.Directory {
	var chain directory.Chain

	sec := directory.NewSECDirectory(envStr("SEC_TICKER_FILE", "sec_tickers.json"), logger)
	if *refreshTickers {
		if err := sec.Refresh(); err != nil {
			logger.Warn("sec ticker refresh failed", zap.Error(err))
		} else {
			chain = append(chain, sec)
		}
	} else if err := sec.Load(); err != nil {
		logger.Info("no sec ticker cache, skipping sec annotation", zap.Error(err))
	} else {
		chain = append(chain, sec)
	}

	apiKey := os.Getenv("ALPACA_API_KEY")
	apiSecret := os.Getenv("ALPACA_SECRET_KEY")
	if apiKey != "" && apiSecret != "" {
		chain = append(chain, directory.NewAlpacaDirectory(apiKey, apiSecret, logger))
	}

	if len(chain) == 0 {
		return nil
	}
	return chain
}
