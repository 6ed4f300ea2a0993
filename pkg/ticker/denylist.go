package ticker

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/kaptinlin/jsonrepair"
)

// Denylist is a set of symbol-shaped tokens that must never be counted even
// though they match the ticker pattern. Matching is exact string equality
// against uppercase entries.
type Denylist map[string]struct{}

// NewDenylist builds a denylist from the given words, uppercasing each entry.
func NewDenylist(words ...string) Denylist {
	d := make(Denylist, len(words))
	for _, w := range words {
		w = strings.ToUpper(strings.TrimSpace(w))
		if w != "" {
			d[w] = struct{}{}
		}
	}
	return d
}

// Blocked reports whether symbol is excluded from counting.
func (d Denylist) Blocked(symbol string) bool {
	_, ok := d[symbol]
	return ok
}

// LoadDenylist reads a JSON string array of excluded tokens from path. Files
// that are slightly malformed (trailing commas, single quotes) are repaired
// before giving up.
func LoadDenylist(path string) (Denylist, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read denylist: %w", err)
	}

	var words []string
	if err := json.Unmarshal(raw, &words); err != nil {
		repaired, repairErr := jsonrepair.JSONRepair(string(raw))
		if repairErr != nil {
			return nil, fmt.Errorf("parse denylist %s: %w", path, err)
		}
		if err := json.Unmarshal([]byte(repaired), &words); err != nil {
			return nil, fmt.Errorf("parse denylist %s: %w", path, err)
		}
	}

	return NewDenylist(words...), nil
}

// DefaultDenylist is the set shipped with the crawler: common English words,
// finance jargon and forum slang that collide with the ticker pattern.
func DefaultDenylist() Denylist {
	return NewDenylist(
		// Common English words
		"THE", "AND", "FOR", "ARE", "BUT", "NOT", "YOU", "ALL", "CAN", "HER",
		"WAS", "ONE", "OUR", "OUT", "DAY", "GET", "HAS", "HIM", "HIS", "HOW",
		"ITS", "NEW", "NOW", "OLD", "SEE", "TWO", "WHO", "BOY", "DID", "ILL",
		"LET", "OWN", "SAY", "SHE", "TOO", "USE", "WAY", "WHY", "USD",
		"TO", "IS", "IT", "AT", "ON", "IN", "BY", "UP", "AS", "OR", "IF",
		"MY", "WE", "ME", "HE", "BE", "DO", "GO", "SO", "NO", "OF", "AN",
		"A", "I", "US", "VS", "AM", "PM", "UK", "CA", "EU", "NY", "LA",
		"THAT", "THIS", "HAVE", "WITH", "WILL", "FROM", "THEY", "BEEN",
		"WERE", "SAID", "EACH", "WHICH", "THEIR", "TIME", "THAN", "MANY",
		"SOME", "WHAT", "WOULD", "MAKE", "LIKE", "INTO", "OVER", "THINK",
		"ALSO", "BACK", "AFTER", "FIRST", "WELL", "WORK", "LIFE", "ONLY",
		"YEAR", "YEARS", "LAST", "MUCH", "WHERE", "THOSE", "COME", "CAME",
		"RIGHT", "USED", "MADE", "MOST", "VERY", "KNOW", "WANT", "GOOD",
		"COULD", "SHOULD", "JUST", "NULL", "TRUE", "FALSE", "NONE",
		"HTTPS", "HTTP", "WWW", "COM", "ORG", "NET", "GOV", "EDU",
		// Financial and business terms that aren't tickers
		"CEO", "CFO", "CTO", "IPO", "SEC", "FDA", "FBI", "IRS", "LLC", "INC",
		"ETF", "ATH", "ATL", "YTD", "EOD", "AH", "DD", "TA", "FA",
		"YOLO", "HODL", "FOMO", "FUD", "WSB", "LOL", "OMG", "WTF", "TBH",
		"IMO", "IMHO", "TLDR", "ELI", "AMA", "TIL", "PSA", "EDIT", "UPDATE",
		"BULL", "BEAR", "MOON", "DIP", "RIP", "BUY", "SELL", "HOLD",
	)
}
