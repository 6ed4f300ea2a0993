package ticker

import "sort"

// Aggregator accumulates mention counts for symbols extracted from text
// fragments. It is not safe for concurrent use; the crawl is single-threaded.
type Aggregator struct {
	denylist  Denylist
	counts    map[string]int
	firstSeen map[string]int
	seq       int
}

// NewAggregator returns an empty aggregator filtering against denylist. A nil
// denylist blocks nothing.
func NewAggregator(denylist Denylist) *Aggregator {
	a := &Aggregator{denylist: denylist}
	a.Reset()
	return a
}

// Reset clears the frequency table. Called once at the start of a crawl run.
func (a *Aggregator) Reset() {
	a.counts = make(map[string]int)
	a.firstSeen = make(map[string]int)
	a.seq = 0
}

// Ingest extracts symbols from the fragment and increments the count of each
// accepted one. Malformed or empty input is fine and yields zero tokens.
func (a *Aggregator) Ingest(frag Fragment) {
	for _, symbol := range Extract(frag.Text) {
		if a.denylist.Blocked(symbol) {
			continue
		}
		if _, seen := a.counts[symbol]; !seen {
			a.firstSeen[symbol] = a.seq
			a.seq++
		}
		a.counts[symbol]++
	}
}

// Rank snapshots the frequency table sorted by count descending, ties broken
// by first-seen order, and returns at most limit entries. It does not mutate
// the table; repeated calls return the same result.
func (a *Aggregator) Rank(limit int) []Mention {
	if limit <= 0 {
		return []Mention{}
	}

	mentions := make([]Mention, 0, len(a.counts))
	for symbol, count := range a.counts {
		mentions = append(mentions, Mention{Symbol: symbol, Count: count})
	}

	sort.Slice(mentions, func(i, j int) bool {
		if mentions[i].Count != mentions[j].Count {
			return mentions[i].Count > mentions[j].Count
		}
		return a.firstSeen[mentions[i].Symbol] < a.firstSeen[mentions[j].Symbol]
	})

	if len(mentions) > limit {
		mentions = mentions[:limit]
	}
	return mentions
}

// Distinct returns the number of unique symbols counted so far.
func (a *Aggregator) Distinct() int {
	return len(a.counts)
}

// Total returns the sum of all mention counts.
func (a *Aggregator) Total() int {
	total := 0
	for _, c := range a.counts {
		total += c
	}
	return total
}
