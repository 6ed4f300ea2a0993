package report

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tidwall/pretty"
	"go.uber.org/zap"

	"stockpulse/pkg/directory"
	"stockpulse/pkg/ticker"
)

const border = "=================================================="

// Entry is one ranked line of the report.
type Entry struct {
	Rank         int             `json:"rank"`
	Symbol       string          `json:"symbol"`
	Count        int             `json:"count"`
	SharePercent decimal.Decimal `json:"share_percent"`
	Company      string          `json:"company,omitempty"`
	Exchange     string          `json:"exchange,omitempty"`
	Tradable     bool            `json:"tradable,omitempty"`
}

// Report is the final artifact of one crawl run.
type Report struct {
	RunID         string    `json:"run_id"`
	GeneratedAt   time.Time `json:"generated_at"`
	Subreddits    []string  `json:"subreddits"`
	TotalMentions int       `json:"total_mentions"`
	Entries       []Entry   `json:"top_symbols"`
}

// Build assembles a report from ranked mentions. total is the sum of all
// counted mentions (not just the ranked ones) and feeds share-of-voice.
func Build(mentions []ticker.Mention, total int, subreddits []string) *Report {
	r := &Report{
		RunID:         uuid.NewString(),
		GeneratedAt:   time.Now().UTC(),
		Subreddits:    subreddits,
		TotalMentions: total,
		Entries:       make([]Entry, 0, len(mentions)),
	}

	for i, m := range mentions {
		share := decimal.Zero
		if total > 0 {
			share = decimal.NewFromInt(int64(m.Count) * 100).
				Div(decimal.NewFromInt(int64(total))).
				Round(2)
		}
		r.Entries = append(r.Entries, Entry{
			Rank:         i + 1,
			Symbol:       m.Symbol,
			Count:        m.Count,
			SharePercent: share,
		})
	}
	return r
}

// Annotate fills company details from the symbol directory. Lookup failures
// leave entries bare; annotation never changes ranks or counts.
func (r *Report) Annotate(dir directory.Directory, logger *zap.Logger) {
	if dir == nil {
		return
	}
	for i := range r.Entries {
		listing, err := dir.Lookup(r.Entries[i].Symbol)
		if err != nil {
			logger.Warn("directory lookup failed",
				zap.String("symbol", r.Entries[i].Symbol), zap.Error(err))
			continue
		}
		if listing == nil {
			continue
		}
		r.Entries[i].Company = listing.Name
		r.Entries[i].Exchange = listing.Exchange
		r.Entries[i].Tradable = listing.Tradable
	}
}

// Text renders the bordered plain-text ranking, the same format the original
// crawler printed and saved.
func (r *Report) Text() string {
	var b strings.Builder

	fmt.Fprintf(&b, "%s\n", border)
	fmt.Fprintf(&b, "TOP %d MOST MENTIONED STOCK SYMBOLS ON REDDIT\n", len(r.Entries))
	fmt.Fprintf(&b, "%s\n", border)

	for _, e := range r.Entries {
		fmt.Fprintf(&b, "%2d. $%-6s - %4d mentions\n", e.Rank, e.Symbol, e.Count)
	}

	fmt.Fprintf(&b, "%s\n", border)
	fmt.Fprintf(&b, "Total unique symbols found: %d\n", len(r.Entries))
	return b.String()
}

// WriteText writes the plain-text report to path.
func (r *Report) WriteText(path string) error {
	if err := os.WriteFile(path, []byte(r.Text()), 0644); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return nil
}

// WriteJSON writes the pretty-printed JSON artifact to path.
func (r *Report) WriteJSON(path string) error {
	raw, err := json.Marshal(r)
	if err != nil {
		return fmt.Errorf("encode report: %w", err)
	}
	if err := os.WriteFile(path, pretty.Pretty(raw), 0644); err != nil {
		return fmt.Errorf("write json report: %w", err)
	}
	return nil
}
