package yahoo

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"swing-screener-backend/internal/domain"
)

const DefaultBaseURL = "https://query1.finance.yahoo.com"

// Client fetches daily bars from the Yahoo Finance chart API.
type Client struct {
	httpClient *http.Client
	baseURL    string
}

func NewClient(baseURL string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		httpClient: &http.Client{Timeout: 15 * time.Second},
		baseURL:    baseURL,
	}
}

// chartResponse mirrors the v8 chart payload. Quote arrays use pointer
// elements because Yahoo emits null for halted/missing sessions.
type chartResponse struct {
	Chart struct {
		Result []struct {
			Timestamp  []int64 `json:"timestamp"`
			Indicators struct {
				Quote []struct {
					Open   []*float64 `json:"open"`
					High   []*float64 `json:"high"`
					Low    []*float64 `json:"low"`
					Close  []*float64 `json:"close"`
					Volume []*float64 `json:"volume"`
				} `json:"quote"`
			} `json:"indicators"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"chart"`
}

// DailyBars returns the daily history for a ticker over the given
// lookback range (e.g. "1y"). Null data points are dropped here so the
// rest of the pipeline only ever sees complete bars.
func (c *Client) DailyBars(ctx context.Context, ticker, lookback string) (*domain.PriceSeries, error) {
	url := fmt.Sprintf("%s/v8/finance/chart/%s?range=%s&interval=1d", c.baseURL, ticker, lookback)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	// Yahoo rejects the default Go user agent.
	req.Header.Set("User-Agent", "Mozilla/5.0")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("yahoo API error: %d", resp.StatusCode)
	}

	var payload chartResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, err
	}

	if payload.Chart.Error != nil {
		return nil, fmt.Errorf("yahoo API error: %s", payload.Chart.Error.Code)
	}
	if len(payload.Chart.Result) == 0 || len(payload.Chart.Result[0].Indicators.Quote) == 0 {
		return &domain.PriceSeries{Ticker: ticker}, nil
	}

	result := payload.Chart.Result[0]
	quote := result.Indicators.Quote[0]

	series := &domain.PriceSeries{Ticker: ticker}
	for i, ts := range result.Timestamp {
		if i >= len(quote.Close) {
			break
		}
		o, h, l, cl := at(quote.Open, i), at(quote.High, i), at(quote.Low, i), at(quote.Close, i)
		if o == nil || h == nil || l == nil || cl == nil {
			continue
		}
		vol := 0.0
		if v := at(quote.Volume, i); v != nil {
			vol = *v
		}
		series.Bars = append(series.Bars, domain.Bar{
			Date:   time.Unix(ts, 0).UTC(),
			Open:   *o,
			High:   *h,
			Low:    *l,
			Close:  *cl,
			Volume: vol,
		})
	}
	return series, nil
}

func at(vals []*float64, i int) *float64 {
	if i >= len(vals) {
		return nil
	}
	return vals[i]
}
