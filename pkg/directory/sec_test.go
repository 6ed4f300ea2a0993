package directory

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-playground/assert/v2"
	"go.uber.org/zap"
)

const secPayload = `{
	"0": {"cik_str": 320193, "ticker": "AAPL", "title": "Apple Inc."},
	"1": {"cik_str": 1318605, "ticker": "TSLA", "title": "Tesla, Inc."},
	"2": {"cik_str": 1326380, "ticker": "gme", "title": "GameStop Corp."}
}`

func TestSECDirectoryRefresh(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("User-Agent") == "" {
			w.WriteHeader(http.StatusForbidden)
			return
		}
		fmt.Fprint(w, secPayload)
	}))
	defer srv.Close()

	path := filepath.Join(t.TempDir(), "sec_tickers.json")
	d := NewSECDirectory(path, zap.NewNop())
	d.SourceURL = srv.URL

	assert.Equal(t, nil, d.Refresh())

	// Cache file written and reloadable.
	fresh := NewSECDirectory(path, zap.NewNop())
	assert.Equal(t, nil, fresh.Load())

	listing, err := fresh.Lookup("AAPL")
	assert.Equal(t, nil, err)
	assert.Equal(t, &Listing{Symbol: "AAPL", Name: "Apple Inc."}, listing)

	// Symbols are uppercased on the way into the cache.
	listing, err = fresh.Lookup("GME")
	assert.Equal(t, nil, err)
	assert.Equal(t, "GameStop Corp.", listing.Name)
}

func TestSECDirectoryLookupUnknownSymbol(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sec_tickers.json")
	err := os.WriteFile(path, []byte(`[{"ticker": "AAPL", "title": "Apple Inc."}]`), 0644)
	assert.Equal(t, nil, err)

	d := NewSECDirectory(path, zap.NewNop())
	assert.Equal(t, nil, d.Load())

	listing, err := d.Lookup("ZZZZZ")
	assert.Equal(t, nil, err)
	assert.Equal(t, (*Listing)(nil), listing)
}

func TestSECDirectoryLoadRepairsMalformedCache(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sec_tickers.json")
	err := os.WriteFile(path, []byte(`[{"ticker": "AAPL", "title": "Apple Inc."},]`), 0644)
	assert.Equal(t, nil, err)

	d := NewSECDirectory(path, zap.NewNop())
	assert.Equal(t, nil, d.Load())

	listing, err := d.Lookup("AAPL")
	assert.Equal(t, nil, err)
	assert.Equal(t, "Apple Inc.", listing.Name)
}

func TestSECDirectoryLoadMissingCache(t *testing.T) {
	d := NewSECDirectory(filepath.Join(t.TempDir(), "nope.json"), zap.NewNop())
	assert.NotEqual(t, nil, d.Load())
}

type staticDirectory map[string]*Listing

func (s staticDirectory) Lookup(symbol string) (*Listing, error) {
	return s[symbol], nil
}

type failingDirectory struct{}

func (failingDirectory) Lookup(string) (*Listing, error) {
	return nil, fmt.Errorf("unreachable")
}

func TestChainFirstHitWins(t *testing.T) {
	first := staticDirectory{"AAPL": {Symbol: "AAPL", Name: "Apple Inc."}}
	second := staticDirectory{"AAPL": {Symbol: "AAPL", Name: "wrong"}, "GME": {Symbol: "GME", Name: "GameStop Corp."}}

	chain := Chain{first, second}

	listing, err := chain.Lookup("AAPL")
	assert.Equal(t, nil, err)
	assert.Equal(t, "Apple Inc.", listing.Name)

	listing, err = chain.Lookup("GME")
	assert.Equal(t, nil, err)
	assert.Equal(t, "GameStop Corp.", listing.Name)
}

func TestChainSkipsFailingDirectory(t *testing.T) {
	chain := Chain{failingDirectory{}, staticDirectory{"GME": {Symbol: "GME"}}}

	listing, err := chain.Lookup("GME")
	assert.Equal(t, nil, err)
	assert.Equal(t, "GME", listing.Symbol)
}
