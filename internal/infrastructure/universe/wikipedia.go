package universe

import (
	"context"
	"fmt"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/rs/zerolog/log"
)

const (
	defaultSP500URL  = "https://en.wikipedia.org/wiki/List_of_S%26P_500_companies"
	defaultNasdaqURL = "https://en.wikipedia.org/wiki/Nasdaq-100"
)

// fallbackTickers is used whenever scraping fails. Large caps plus the
// index ETFs, enough for a meaningful scan without network luck.
var fallbackTickers = []string{
	"AAPL", "MSFT", "NVDA", "TSLA", "GOOGL", "AMZN", "META", "AMD", "SPY", "QQQ",
	"AVGO", "COST", "PEP", "ADBE", "LIN", "NFLX", "INTC", "TMUS", "CSCO", "CMCSA",
	"TXN", "QCOM", "AMAT", "INTU", "AMGN", "ISRG", "HON", "BKNG", "MU", "VRTX",
	"REGN", "PANW", "LRCX", "ADP", "MDLZ", "GILD", "MELI", "PDD", "ADI", "SBUX",
	"BRK-B", "V", "JPM", "UNH", "MA", "XOM", "HD", "PG", "JNJ", "LLY",
	"ABBV", "CVX", "MRK", "MRVL", "ORCL", "ABT", "KO", "BAC", "SCHW",
	"TMO", "DIS", "WMT", "MCD", "PFE", "IBM", "GE", "CAT", "CRM", "UBER",
	"NOW", "AXP", "GS", "BA", "AMCR", "LOW", "NKE", "UPS", "MS",
	"BLK", "PLTR", "SNOW", "MSTR", "COIN", "SQ", "PYPL", "SHOP", "CRWD", "NET",
}

// WikipediaProvider scrapes index constituent tables to build the scan
// universe. Any scraping failure falls back to the fixed list; the
// provider never returns an error to the pipeline.
type WikipediaProvider struct {
	httpClient *http.Client
	sp500URL   string
	nasdaqURL  string
}

func NewWikipediaProvider() *WikipediaProvider {
	return &WikipediaProvider{
		httpClient: &http.Client{Timeout: 20 * time.Second},
		sp500URL:   defaultSP500URL,
		nasdaqURL:  defaultNasdaqURL,
	}
}

// Tickers returns the deduplicated, sorted scan universe. Class-share
// dots become dashes for compatibility with the bar provider.
func (p *WikipediaProvider) Tickers(ctx context.Context) []string {
	set := make(map[string]struct{})

	sp500, err := p.scrapeColumn(ctx, p.sp500URL, "Symbol")
	if err != nil {
		log.Warn().Err(err).Msg("S&P 500 scrape failed, using fallback universe")
		return normalize(fallbackTickers)
	}
	for _, t := range sp500 {
		set[t] = struct{}{}
	}
	log.Info().Int("count", len(sp500)).Msg("loaded S&P 500 constituents")

	nasdaq, err := p.scrapeColumn(ctx, p.nasdaqURL, "Ticker")
	if err != nil {
		log.Warn().Err(err).Msg("Nasdaq-100 scrape failed, using fallback universe")
		return normalize(fallbackTickers)
	}
	for _, t := range nasdaq {
		set[t] = struct{}{}
	}
	log.Info().Int("count", len(nasdaq)).Msg("loaded Nasdaq-100 constituents")

	tickers := make([]string, 0, len(set))
	for t := range set {
		tickers = append(tickers, t)
	}
	return normalize(tickers)
}

// scrapeColumn fetches a page and extracts the named column from the
// first wikitable whose header row contains it.
func (p *WikipediaProvider) scrapeColumn(ctx context.Context, url, header string) ([]string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", "Mozilla/5.0")

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("wikipedia returned %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, err
	}
	return extractColumn(doc, header)
}

func extractColumn(doc *goquery.Document, header string) ([]string, error) {
	var tickers []string

	doc.Find("table.wikitable").EachWithBreak(func(_ int, table *goquery.Selection) bool {
		col := -1
		table.Find("tr").First().Find("th").Each(func(i int, th *goquery.Selection) {
			if strings.EqualFold(strings.TrimSpace(th.Text()), header) {
				col = i
			}
		})
		if col < 0 {
			return true // try next table
		}

		table.Find("tr").Each(func(i int, tr *goquery.Selection) {
			if i == 0 {
				return
			}
			cell := tr.Find("td").Eq(col)
			if t := strings.TrimSpace(cell.Text()); t != "" {
				tickers = append(tickers, t)
			}
		})
		return false
	})

	if len(tickers) == 0 {
		return nil, fmt.Errorf("no %q column found in any wikitable", header)
	}
	return tickers, nil
}

func normalize(raw []string) []string {
	set := make(map[string]struct{}, len(raw))
	for _, t := range raw {
		t = strings.ReplaceAll(strings.TrimSpace(t), ".", "-")
		if t != "" {
			set[t] = struct{}{}
		}
	}
	out := make([]string, 0, len(set))
	for t := range set {
		out = append(out, t)
	}
	sort.Strings(out)
	return out
}
