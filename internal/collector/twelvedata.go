package collector

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"time"

	"github.com/tidwall/gjson"

	"github.com/ahmed970ty-lgtm/trading-bot/internal/model"
)

// Timestamp layouts Twelve Data uses depending on the interval.
var datetimeLayouts = []string{"2006-01-02 15:04:05", "2006-01-02"}

// TwelveDataFetcher implements Fetcher against the Twelve Data REST API.
type TwelveDataFetcher struct {
	BaseURL string
	APIKey  string
	Client  *http.Client
}

// NewTwelveDataFetcher creates a fetcher with optional proxy support.
func NewTwelveDataFetcher(baseURL, apiKey, proxyURL string) *TwelveDataFetcher {
	transport := &http.Transport{}
	if proxyURL != "" {
		if u, err := url.Parse(proxyURL); err == nil {
			transport.Proxy = http.ProxyURL(u)
		}
	}
	return &TwelveDataFetcher{
		BaseURL: baseURL,
		APIKey:  apiKey,
		Client: &http.Client{
			Timeout:   15 * time.Second,
			Transport: transport,
		},
	}
}

func (f *TwelveDataFetcher) Name() string { return "twelvedata" }

// tdBar is the per-bar shape of the time_series payload. All prices are
// string-encoded by the provider.
type tdBar struct {
	Datetime string `json:"datetime"`
	Open     string `json:"open"`
	High     string `json:"high"`
	Low      string `json:"low"`
	Close    string `json:"close"`
	Volume   string `json:"volume"`
}

type tdTimeSeries struct {
	Values  []tdBar `json:"values"`
	Status  string  `json:"status"`
	Message string  `json:"message"`
}

// FetchSeries retrieves the bar history. Any transport failure,
// non-success response, or empty/malformed payload yields
// model.ErrDataUnavailable; a partially-parsed series is never handed
// downstream.
func (f *TwelveDataFetcher) FetchSeries(ctx context.Context, symbol, interval string, count int) (*model.PriceSeries, error) {
	endpoint := fmt.Sprintf("%s/time_series?symbol=%s&interval=%s&outputsize=%d&apikey=%s",
		f.BaseURL, url.QueryEscape(symbol), url.QueryEscape(interval), count, f.APIKey)

	body, err := f.get(ctx, endpoint)
	if err != nil {
		return nil, err
	}

	var ts tdTimeSeries
	if err := json.Unmarshal(body, &ts); err != nil {
		return nil, fmt.Errorf("%w: decode time_series: %v", model.ErrDataUnavailable, err)
	}
	if ts.Status == "error" {
		return nil, fmt.Errorf("%w: provider error: %s", model.ErrDataUnavailable, ts.Message)
	}
	if len(ts.Values) == 0 {
		return nil, fmt.Errorf("%w: empty values for %s", model.ErrDataUnavailable, symbol)
	}

	bars := make([]model.OHLCV, len(ts.Values))
	for i, v := range ts.Values {
		bar, err := v.toBar()
		if err != nil {
			return nil, fmt.Errorf("%w: bar %d: %v", model.ErrDataUnavailable, i, err)
		}
		bars[i] = bar
	}

	// Provider returns newest-first; downstream requires ascending time.
	sort.Slice(bars, func(i, j int) bool { return bars[i].Time.Before(bars[j].Time) })

	return &model.PriceSeries{
		Symbol:    symbol,
		Interval:  interval,
		Bars:      bars,
		FetchedAt: time.Now(),
	}, nil
}

// FetchPrice retrieves the latest quote via the lightweight /price
// endpoint.
func (f *TwelveDataFetcher) FetchPrice(ctx context.Context, symbol string) (float64, error) {
	endpoint := fmt.Sprintf("%s/price?symbol=%s&apikey=%s", f.BaseURL, url.QueryEscape(symbol), f.APIKey)
	body, err := f.get(ctx, endpoint)
	if err != nil {
		return 0, err
	}
	price := gjson.GetBytes(body, "price")
	if !price.Exists() {
		return 0, fmt.Errorf("%w: no price field for %s", model.ErrDataUnavailable, symbol)
	}
	return price.Float(), nil
}

func (f *TwelveDataFetcher) get(ctx context.Context, endpoint string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: build request: %v", model.ErrDataUnavailable, err)
	}
	resp, err := f.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", model.ErrDataUnavailable, err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: read body: %v", model.ErrDataUnavailable, err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: status %d, body: %s", model.ErrDataUnavailable, resp.StatusCode, string(body))
	}
	return body, nil
}

func (b tdBar) toBar() (model.OHLCV, error) {
	var bar model.OHLCV
	var t time.Time
	var err error
	for _, layout := range datetimeLayouts {
		if t, err = time.Parse(layout, b.Datetime); err == nil {
			break
		}
	}
	if err != nil {
		return bar, fmt.Errorf("parse datetime %q: %w", b.Datetime, err)
	}
	bar.Time = t

	fields := []struct {
		raw string
		dst *float64
	}{
		{b.Open, &bar.Open},
		{b.High, &bar.High},
		{b.Low, &bar.Low},
		{b.Close, &bar.Close},
	}
	for _, fld := range fields {
		v, err := strconv.ParseFloat(fld.raw, 64)
		if err != nil {
			return bar, fmt.Errorf("parse price %q: %w", fld.raw, err)
		}
		*fld.dst = v
	}
	if b.Volume != "" {
		// Volume is absent for FX and metals; ignore parse failures.
		if v, err := strconv.ParseFloat(b.Volume, 64); err == nil {
			bar.Volume = v
		}
	}
	return bar, nil
}
