package yahoo

import "time"

// ChartResponse represents the raw JSON response structure from the Yahoo
// Finance chart API. It maps directly to the nested response format,
// containing metadata, timestamps, and price indicator arrays.
type ChartResponse struct {
	Chart struct {
		Result []struct {
			Meta struct {
				Currency         string `json:"currency"`
				Symbol           string `json:"symbol"`
				ExchangeName     string `json:"exchangeName"`
				FullExchangeName string `json:"fullExchangeName"`
				LongName         string `json:"longName"`
				ShortName        string `json:"shortName"`
			} `json:"meta"`
			Timestamp  []int64 `json:"timestamp"`
			Indicators struct {
				Quote []struct {
					Open   []float64 `json:"open"`
					Close  []float64 `json:"close"`
					Volume []int64   `json:"volume"`
					High   []float64 `json:"high"`
					Low    []float64 `json:"low"`
				} `json:"quote"`
			} `json:"indicators"`
		} `json:"result"`
		Error *string `json:"error"`
	} `json:"chart"`
}

// SummaryResponse represents the raw JSON response from the Yahoo Finance
// quoteSummary API, queried with the assetProfile and price modules.
type SummaryResponse struct {
	QuoteSummary struct {
		Result []struct {
			AssetProfile struct {
				Website             string `json:"website"`
				LongBusinessSummary string `json:"longBusinessSummary"`
			} `json:"assetProfile"`
			Price struct {
				LongName  string `json:"longName"`
				ShortName string `json:"shortName"`
			} `json:"price"`
		} `json:"result"`
		Error *string `json:"error"`
	} `json:"quoteSummary"`
}

// PriceChart is the parsed internal representation of a chart response:
// symbol metadata plus a date-ordered series of daily bars.
type PriceChart struct {
	Symbol   string `json:"symbol"`
	Currency string `json:"currency"`
	LongName string `json:"longName"`
	Bars     []Bar  `json:"bars"`
}

// Bar is a single trading day's OHLCV data point.
type Bar struct {
	Date       time.Time
	PriceOpen  float64
	PriceClose float64
	PriceHigh  float64
	PriceLow   float64
	Volume     int64
}

// LatestClose returns the close of the most recent bar. The caller
// guarantees the chart is non-empty.
func (c PriceChart) LatestClose() float64 {
	return c.Bars[len(c.Bars)-1].PriceClose
}

// CompanyProfile holds best-effort descriptive metadata for a symbol.
// Any field may be empty when Yahoo has no data for it.
type CompanyProfile struct {
	LongName string `json:"longName"`
	Website  string `json:"website"`
	Summary  string `json:"summary"`
}
