// Package directory looks up extracted symbols against real security listings
// (SEC company tickers, alpaca assets). Directory data only annotates the
// final report; it never changes what gets counted or how results rank.
package directory

// Listing is what a directory knows about one symbol.
type Listing struct {
	Symbol   string `json:"symbol"`
	Name     string `json:"name,omitempty"`
	Exchange string `json:"exchange,omitempty"`
	Tradable bool   `json:"tradable,omitempty"`
}

// Directory resolves a symbol to a listing. A (nil, nil) return means the
// symbol is simply unknown; errors are reserved for lookup failures.
type Directory interface {
	Lookup(symbol string) (*Listing, error)
}

// Chain queries directories in order and returns the first hit. A failing
// directory is skipped so one broken source degrades to a thinner annotation,
// not a failed report.
type Chain []Directory

func (c Chain) Lookup(symbol string) (*Listing, error) {
	var lastErr error
	for _, d := range c {
		listing, err := d.Lookup(symbol)
		if err != nil {
			lastErr = err
			continue
		}
		if listing != nil {
			return listing, nil
		}
	}
	return nil, lastErr
}
