// Package gsheet downloads newsletter tabs from a Google Sheet through
// the gviz CSV export endpoint. No API key or OAuth flow is involved;
// the sheet must be shared as viewable by anyone with the link, and a
// sign-in page coming back instead of CSV is reported as such.
package gsheet

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"sync"
	"time"
)

// maxResponseSize bounds one tab download. The gviz endpoint streams the
// whole tab, so anything past this is a runaway sheet, not newsletter data.
const maxResponseSize = 10 << 20

// defaultFetchTimeout is the per-request timeout of the default client.
const defaultFetchTimeout = 30 * time.Second

var (
	sheetIDPattern = regexp.MustCompile(`/spreadsheets/d/([a-zA-Z0-9-_]+)`)
	bareIDPattern  = regexp.MustCompile(`^[a-zA-Z0-9-_]{20,}$`)
)

// ExtractID pulls the spreadsheet ID out of a full sheet URL, or accepts
// a bare ID as-is. Anything else is rejected.
func ExtractID(ref string) (string, error) {
	value := strings.TrimSpace(ref)
	if value == "" {
		return "", fmt.Errorf("%w: sheet URL or ID is required", ErrInvalidSheetRef)
	}
	if match := sheetIDPattern.FindStringSubmatch(value); match != nil {
		return match[1], nil
	}
	if bareIDPattern.MatchString(value) {
		return value, nil
	}
	return "", fmt.Errorf("%w: %q is neither a sheet URL nor a sheet ID", ErrInvalidSheetRef, value)
}

// Tabs names the four worksheet tabs one issue is read from.
type Tabs struct {
	Meta         string
	Points       string
	Distribution string
	Price        string
}

// DefaultTabs returns the conventional tab names.
func DefaultTabs() Tabs {
	return Tabs{
		Meta:         "meta",
		Points:       "points",
		Distribution: "distribution",
		Price:        "price",
	}
}

// Tables holds the raw CSV text of the four tabs. Optional tabs that
// were missing or empty come back as empty strings.
type Tables struct {
	Meta         string
	Points       string
	Distribution string
	Price        string
}

// Client fetches tabs from the docs.google.com export endpoint.
type Client struct {
	httpClient *http.Client
	baseURL    string
}

// NewClient returns a Client with a bounded per-request timeout.
func NewClient() *Client {
	return &Client{
		httpClient: &http.Client{Timeout: defaultFetchTimeout},
		baseURL:    "https://docs.google.com",
	}
}

// tabURL builds the gviz CSV export URL for one tab.
func (c *Client) tabURL(sheetID, tab string) string {
	return c.baseURL + "/spreadsheets/d/" + sheetID +
		"/gviz/tq?tqx=out:csv&sheet=" + url.QueryEscape(tab)
}

// FetchTab downloads one tab as CSV text. Optional tabs degrade to an
// empty string when the tab is missing (HTTP 400/404), empty, or the
// endpoint reports a query error; required tabs fail instead. A sign-in
// page means the sheet is not shared publicly.
func (c *Client) FetchTab(ctx context.Context, sheetID, tab string, required bool) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.tabURL(sheetID, tab), nil)
	if err != nil {
		return "", fmt.Errorf("%w %q: %v", ErrTabUnavailable, tab, err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w %q: %v", ErrTabUnavailable, tab, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		if !required && (resp.StatusCode == http.StatusBadRequest || resp.StatusCode == http.StatusNotFound) {
			return "", nil
		}
		return "", fmt.Errorf("%w %q: HTTP %d, confirm sharing is enabled and the tab name is correct",
			ErrTabUnavailable, tab, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return "", fmt.Errorf("%w %q: %v", ErrTabUnavailable, tab, err)
	}

	text := strings.TrimSpace(strings.TrimPrefix(string(body), "﻿"))
	if text == "" {
		if required {
			return "", fmt.Errorf("%w: %q", ErrTabEmpty, tab)
		}
		return "", nil
	}

	lowered := strings.ToLower(text)
	if strings.HasPrefix(lowered, "<!doctype html") || strings.HasPrefix(lowered, "<html") {
		if required {
			return "", fmt.Errorf("%w %q: got a sign-in page, share the sheet as viewable (at least %q)",
				ErrTabUnavailable, tab, "Anyone with the link can view")
		}
		return "", nil
	}
	if strings.Contains(lowered, "google.visualization.query.setresponse") &&
		strings.Contains(lowered, `"status":"error"`) {
		if required {
			return "", fmt.Errorf("%w %q: check that the tab exists and has access permissions",
				ErrTabUnavailable, tab)
		}
		return "", nil
	}

	return text, nil
}

// FetchTables downloads all four tabs concurrently. Meta and points are
// required; distribution and price may be absent. The first failure in
// tab order wins so repeated runs report the same error.
func (c *Client) FetchTables(ctx context.Context, sheetID string, tabs Tabs) (*Tables, error) {
	requests := []struct {
		tab      string
		required bool
	}{
		{tabs.Meta, true},
		{tabs.Points, true},
		{tabs.Distribution, false},
		{tabs.Price, false},
	}

	texts := make([]string, len(requests))
	errs := make([]error, len(requests))

	var wg sync.WaitGroup
	for i, r := range requests {
		wg.Add(1)
		go func(i int, tab string, required bool) {
			defer wg.Done()
			texts[i], errs[i] = c.FetchTab(ctx, sheetID, tab, required)
		}(i, r.tab, r.required)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	return &Tables{
		Meta:         texts[0],
		Points:       texts[1],
		Distribution: texts[2],
		Price:        texts[3],
	}, nil
}
