package api

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"
)

// histDate formats a calendar date the way the HIST endpoint expects.
func histDate(date time.Time) string {
	return date.Format("20060102")
}

// GetHIST fetches the download descriptors for one trading day. Days with
// no published data surface as an *APIError with a 404 status.
func (c *Client) GetHIST(ctx context.Context, date time.Time) ([]HISTEntry, error) {
	query := url.Values{}
	query.Set("date", histDate(date))

	var entries []HISTEntry
	if err := c.get(ctx, "/hist", query, &entries); err != nil {
		return nil, fmt.Errorf("get hist %s: %w", histDate(date), err)
	}
	return entries, nil
}

// GetAllHIST fetches download descriptors for every published day, keyed
// by date string (YYYYMMDD).
func (c *Client) GetAllHIST(ctx context.Context) (map[string][]HISTEntry, error) {
	var entries map[string][]HISTEntry
	if err := c.get(ctx, "/hist", nil, &entries); err != nil {
		return nil, fmt.Errorf("get hist: %w", err)
	}
	return entries, nil
}

// FindHIST returns the day's entry for one feed kind ("TOPS" or "DEEP").
// The second return is false when the day has no capture for that feed.
func (c *Client) FindHIST(ctx context.Context, date time.Time, feed string) (HISTEntry, bool, error) {
	entries, err := c.GetHIST(ctx, date)
	if err != nil {
		return HISTEntry{}, false, err
	}
	for _, e := range entries {
		if strings.EqualFold(e.Feed, feed) {
			return e, true, nil
		}
	}
	return HISTEntry{}, false, nil
}
