package api

import (
	"context"
	"fmt"
	"net/url"
	"strings"
)

// GetTOPS fetches the current TOPS quote snapshot for the given symbols.
// With no symbols the endpoint returns the full market.
func (c *Client) GetTOPS(ctx context.Context, symbols ...string) ([]TOPSQuote, error) {
	query := url.Values{}
	if len(symbols) > 0 {
		query.Set("symbols", strings.Join(symbols, ","))
	}

	var quotes []TOPSQuote
	if err := c.get(ctx, "/tops", query, &quotes); err != nil {
		return nil, fmt.Errorf("get tops: %w", err)
	}
	return quotes, nil
}

// GetLast fetches the last trade snapshot for the given symbols.
func (c *Client) GetLast(ctx context.Context, symbols ...string) ([]LastTrade, error) {
	query := url.Values{}
	if len(symbols) > 0 {
		query.Set("symbols", strings.Join(symbols, ","))
	}

	var trades []LastTrade
	if err := c.get(ctx, "/tops/last", query, &trades); err != nil {
		return nil, fmt.Errorf("get last: %w", err)
	}
	return trades, nil
}
