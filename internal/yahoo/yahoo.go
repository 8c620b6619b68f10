// Package yahoo is a minimal client for the public Yahoo Finance chart
// and quoteSummary endpoints, covering the two queries this service
// needs: recent daily price history for a symbol and best-effort company
// metadata.
package yahoo

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/galaxytrack/Stock-Tracker-Backend/internal/apperrors"
)

const defaultBaseURL = "https://query1.finance.yahoo.com"

// FinanceClient provides methods for fetching financial data from the
// Yahoo Finance API. It wraps an HTTP client and handles the request
// headers, JSON decoding, and API-level error checking.
type FinanceClient struct {
	httpClient *http.Client
	baseURL    string
}

// NewFinanceClient creates a new Yahoo Finance client with default HTTP
// settings, pointed at the public Yahoo endpoint.
func NewFinanceClient() *FinanceClient {
	return &FinanceClient{
		httpClient: &http.Client{},
		baseURL:    defaultBaseURL,
	}
}

// NewFinanceClientWithBaseURL creates a client pointed at a custom base
// URL. Used by tests to target an httptest server.
func NewFinanceClientWithBaseURL(baseURL string) *FinanceClient {
	return &FinanceClient{
		httpClient: &http.Client{},
		baseURL:    baseURL,
	}
}

// QueryHistory fetches daily price data for a symbol over a Yahoo range
// expression such as "1d", "5d", or "1mo", and parses it into a
// PriceChart. Cancellation and deadlines are taken from ctx.
func (c *FinanceClient) QueryHistory(ctx context.Context, symbol, rng string) (PriceChart, error) {
	url := fmt.Sprintf("%s/v8/finance/chart/%s?interval=1d&range=%s", c.baseURL, symbol, rng)

	var response ChartResponse
	if err := c.query(ctx, url, &response); err != nil {
		return PriceChart{}, err
	}
	if response.Chart.Error != nil {
		return PriceChart{}, fmt.Errorf("yahoo error for %s: %s", symbol, *response.Chart.Error)
	}
	if len(response.Chart.Result) == 0 {
		return PriceChart{}, fmt.Errorf("%w: %s", apperrors.ErrQuoteNotFound, symbol)
	}

	return parseChart(response)
}

// QueryProfile fetches company metadata (long name, website, business
// summary) for a symbol from the quoteSummary endpoint. The result is
// best-effort: callers should treat a failure as cosmetic.
func (c *FinanceClient) QueryProfile(ctx context.Context, symbol string) (CompanyProfile, error) {
	url := fmt.Sprintf("%s/v10/finance/quoteSummary/%s?modules=assetProfile,price", c.baseURL, symbol)

	var response SummaryResponse
	if err := c.query(ctx, url, &response); err != nil {
		return CompanyProfile{}, err
	}
	if response.QuoteSummary.Error != nil {
		return CompanyProfile{}, fmt.Errorf("yahoo error for %s: %s", symbol, *response.QuoteSummary.Error)
	}
	if len(response.QuoteSummary.Result) == 0 {
		return CompanyProfile{}, fmt.Errorf("no profile returned for symbol %s", symbol)
	}

	result := response.QuoteSummary.Result[0]
	profile := CompanyProfile{
		LongName: result.Price.LongName,
		Website:  result.AssetProfile.Website,
		Summary:  result.AssetProfile.LongBusinessSummary,
	}
	if profile.LongName == "" {
		profile.LongName = result.Price.ShortName
	}
	return profile, nil
}

// parseChart converts a raw chart response into a PriceChart, validating
// that timestamps and close prices are present and of matching lengths.
func parseChart(response ChartResponse) (PriceChart, error) {
	result := response.Chart.Result[0]

	if len(result.Timestamp) == 0 {
		return PriceChart{}, fmt.Errorf("%w: no price data", apperrors.ErrQuoteNotFound)
	}
	if len(result.Indicators.Quote) == 0 || len(result.Indicators.Quote[0].Close) == 0 {
		return PriceChart{}, fmt.Errorf("%w: no close prices", apperrors.ErrQuoteNotFound)
	}
	if len(result.Indicators.Quote[0].Close) != len(result.Timestamp) {
		return PriceChart{}, fmt.Errorf("mismatched data lengths")
	}

	quote := result.Indicators.Quote[0]
	bars := make([]Bar, len(result.Timestamp))
	for i, ts := range result.Timestamp {
		bars[i] = Bar{
			Date:       time.Unix(ts, 0).UTC(),
			PriceClose: quote.Close[i],
		}
		// Open/high/low/volume arrays can be shorter for thinly traded
		// symbols; close is the only field the valuation path requires.
		if i < len(quote.Open) {
			bars[i].PriceOpen = quote.Open[i]
		}
		if i < len(quote.High) {
			bars[i].PriceHigh = quote.High[i]
		}
		if i < len(quote.Low) {
			bars[i].PriceLow = quote.Low[i]
		}
		if i < len(quote.Volume) {
			bars[i].Volume = quote.Volume[i]
		}
	}

	longName := result.Meta.LongName
	if longName == "" {
		longName = result.Meta.ShortName
	}

	return PriceChart{
		Symbol:   result.Meta.Symbol,
		Currency: result.Meta.Currency,
		LongName: longName,
		Bars:     bars,
	}, nil
}

// query executes a GET request against the Yahoo API and decodes the
// JSON body into out. A browser User-Agent is required; Yahoo blocks
// default Go client requests.
func (c *FinanceClient) query(ctx context.Context, url string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}

	req.Header.Set("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to decode yahoo response: %w", err)
	}
	return nil
}
