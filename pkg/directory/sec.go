package directory

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/kaptinlin/jsonrepair"
	"go.uber.org/zap"
)

const DefaultSECTickerURL = "https://www.sec.gov/files/company_tickers.json"

// secEntry is one record in the SEC company_tickers.json object, which is
// keyed by arbitrary index strings rather than being an array.
type secEntry struct {
	CIK    int    `json:"cik_str"`
	Ticker string `json:"ticker"`
	Title  string `json:"title"`
}

// cachedTicker is the normalized record written to the local cache file.
type cachedTicker struct {
	Ticker string `json:"ticker"`
	Title  string `json:"title"`
}

// SECDirectory resolves symbols against the SEC company ticker list, cached
// in a local JSON file between runs.
type SECDirectory struct {
	Path      string
	SourceURL string
	UserAgent string
	Client    *http.Client
	Logger    *zap.Logger

	entries map[string]string
}

func NewSECDirectory(path string, logger *zap.Logger) *SECDirectory {
	return &SECDirectory{
		Path:      path,
		SourceURL: DefaultSECTickerURL,
		UserAgent: "stockpulse/1.0 (stock mention crawler)",
		Client:    &http.Client{Timeout: 10 * time.Second},
		Logger:    logger,
	}
}

// Refresh downloads the latest SEC company tickers, rewrites the local cache
// and loads it into memory.
func (d *SECDirectory) Refresh() error {
	req, err := http.NewRequest("GET", d.SourceURL, nil)
	if err != nil {
		return fmt.Errorf("build ticker request: %w", err)
	}
	// SEC rejects requests without an identifying User-Agent.
	req.Header.Set("User-Agent", d.UserAgent)
	req.Header.Set("Accept", "application/json")

	res, err := d.Client.Do(req)
	if err != nil {
		return fmt.Errorf("fetch sec tickers: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return fmt.Errorf("sec ticker endpoint returned %s", res.Status)
	}

	var raw map[string]secEntry
	if err := json.NewDecoder(res.Body).Decode(&raw); err != nil {
		return fmt.Errorf("decode sec tickers: %w", err)
	}

	cached := make([]cachedTicker, 0, len(raw))
	for _, entry := range raw {
		symbol := strings.ToUpper(entry.Ticker)
		if symbol == "" {
			continue
		}
		cached = append(cached, cachedTicker{Ticker: symbol, Title: entry.Title})
	}

	out, err := json.MarshalIndent(cached, "", "  ")
	if err != nil {
		return fmt.Errorf("encode ticker cache: %w", err)
	}
	if err := os.WriteFile(d.Path, out, 0644); err != nil {
		return fmt.Errorf("write ticker cache: %w", err)
	}

	d.index(cached)
	d.Logger.Info("refreshed sec ticker cache",
		zap.String("path", d.Path), zap.Int("tickers", len(cached)))
	return nil
}

// Load reads the cache file written by Refresh. Slightly malformed files are
// repaired before giving up.
func (d *SECDirectory) Load() error {
	raw, err := os.ReadFile(d.Path)
	if err != nil {
		return fmt.Errorf("read ticker cache: %w", err)
	}

	var cached []cachedTicker
	if err := json.Unmarshal(raw, &cached); err != nil {
		repaired, repairErr := jsonrepair.JSONRepair(string(raw))
		if repairErr != nil {
			return fmt.Errorf("parse ticker cache %s: %w", d.Path, err)
		}
		if err := json.Unmarshal([]byte(repaired), &cached); err != nil {
			return fmt.Errorf("parse ticker cache %s: %w", d.Path, err)
		}
	}

	d.index(cached)
	return nil
}

func (d *SECDirectory) index(cached []cachedTicker) {
	d.entries = make(map[string]string, len(cached))
	for _, t := range cached {
		d.entries[strings.ToUpper(t.Ticker)] = t.Title
	}
}

// Lookup resolves a symbol from the in-memory index. Unknown symbols are not
// an error.
func (d *SECDirectory) Lookup(symbol string) (*Listing, error) {
	title, ok := d.entries[symbol]
	if !ok {
		return nil, nil
	}
	return &Listing{Symbol: symbol, Name: title}, nil
}
