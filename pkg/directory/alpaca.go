package directory

import (
	"github.com/alpacahq/alpaca-trade-api-go/v3/alpaca"
	"go.uber.org/zap"
)

// AlpacaDirectory resolves symbols against alpaca's asset registry, filling in
// exchange and tradability for symbols the SEC list doesn't carry.
type AlpacaDirectory struct {
	Client *alpaca.Client
	Logger *zap.Logger
}

func NewAlpacaDirectory(apiKey, apiSecret string, logger *zap.Logger) *AlpacaDirectory {
	client := alpaca.NewClient(alpaca.ClientOpts{
		APIKey:    apiKey,
		APISecret: apiSecret,
	})
	return &AlpacaDirectory{Client: client, Logger: logger}
}

func (d *AlpacaDirectory) Lookup(symbol string) (*Listing, error) {
	asset, err := d.Client.GetAsset(symbol)
	if err != nil {
		if apiErr, ok := err.(*alpaca.APIError); ok && apiErr.StatusCode == 404 {
			return nil, nil
		}
		d.Logger.Warn("alpaca asset lookup failed",
			zap.String("symbol", symbol), zap.Error(err))
		return nil, err
	}

	return &Listing{
		Symbol:   asset.Symbol,
		Name:     asset.Name,
		Exchange: asset.Exchange,
		Tradable: asset.Tradable,
	}, nil
}
