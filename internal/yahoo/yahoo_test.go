package yahoo_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/galaxytrack/Stock-Tracker-Backend/internal/apperrors"
	"github.com/galaxytrack/Stock-Tracker-Backend/internal/yahoo"
)

const chartBody = `{
  "chart": {
    "result": [{
      "meta": {
        "currency": "USD",
        "symbol": "NVDA",
        "exchangeName": "NMS",
        "longName": "NVIDIA Corporation"
      },
      "timestamp": [1736226000, 1736312400],
      "indicators": {
        "quote": [{
          "open": [100.5, 108.0],
          "close": [107.2, 110.0],
          "volume": [1000, 2000],
          "high": [108.1, 111.4],
          "low": [99.8, 107.0]
        }]
      }
    }],
    "error": null
  }
}`

const profileBody = `{
  "quoteSummary": {
    "result": [{
      "assetProfile": {
        "website": "https://www.nvidia.com",
        "longBusinessSummary": "NVIDIA Corporation provides graphics computing."
      },
      "price": {
        "longName": "NVIDIA Corporation",
        "shortName": "NVIDIA"
      }
    }],
    "error": null
  }
}`

// TestFinanceClient_QueryHistory tests chart fetching and parsing.
//
// WHY: The chart response is deeply nested and partially optional; the
// client must produce a well-formed bar series from a valid body and a
// clear error from empty or malformed data.
func TestFinanceClient_QueryHistory(t *testing.T) {
	t.Run("parses a valid chart", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !strings.Contains(r.URL.Path, "/v8/finance/chart/NVDA") {
				t.Errorf("Unexpected path %s", r.URL.Path)
			}
			if r.URL.Query().Get("range") != "1mo" {
				t.Errorf("Unexpected range %s", r.URL.Query().Get("range"))
			}
			w.Write([]byte(chartBody)) //nolint:errcheck
		}))
		defer server.Close()

		client := yahoo.NewFinanceClientWithBaseURL(server.URL)
		chart, err := client.QueryHistory(context.Background(), "NVDA", "1mo")
		if err != nil {
			t.Fatalf("QueryHistory() returned unexpected error: %v", err)
		}

		if chart.Symbol != "NVDA" || chart.Currency != "USD" {
			t.Errorf("Unexpected metadata: %+v", chart)
		}
		if len(chart.Bars) != 2 {
			t.Fatalf("Expected 2 bars, got %d", len(chart.Bars))
		}
		if chart.LatestClose() != 110.0 {
			t.Errorf("LatestClose() = %v, want 110.0", chart.LatestClose())
		}
	})

	t.Run("returns error on yahoo api error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"chart": {"result": [], "error": "Not Found"}}`)) //nolint:errcheck
		}))
		defer server.Close()

		client := yahoo.NewFinanceClientWithBaseURL(server.URL)
		if _, err := client.QueryHistory(context.Background(), "GONE", "1mo"); err == nil {
			t.Error("Expected error from yahoo api error, got nil")
		}
	})

	t.Run("returns ErrQuoteNotFound on empty result set", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"chart": {"result": [], "error": null}}`)) //nolint:errcheck
		}))
		defer server.Close()

		client := yahoo.NewFinanceClientWithBaseURL(server.URL)
		_, err := client.QueryHistory(context.Background(), "GONE", "1mo")
		if !errors.Is(err, apperrors.ErrQuoteNotFound) {
			t.Errorf("QueryHistory() error = %v, want ErrQuoteNotFound", err)
		}
	})

	t.Run("returns ErrQuoteNotFound on missing close prices", func(t *testing.T) {
		body := `{"chart": {"result": [{"meta": {"symbol": "X"}, "timestamp": [1736226000],
			"indicators": {"quote": [{"close": []}]}}], "error": null}}`
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(body)) //nolint:errcheck
		}))
		defer server.Close()

		client := yahoo.NewFinanceClientWithBaseURL(server.URL)
		_, err := client.QueryHistory(context.Background(), "X", "1mo")
		if !errors.Is(err, apperrors.ErrQuoteNotFound) {
			t.Errorf("QueryHistory() error = %v, want ErrQuoteNotFound", err)
		}
	})

	t.Run("honors context cancellation", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			<-r.Context().Done()
		}))
		defer server.Close()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		client := yahoo.NewFinanceClientWithBaseURL(server.URL)
		if _, err := client.QueryHistory(ctx, "NVDA", "1mo"); err == nil {
			t.Error("Expected error from cancelled context, got nil")
		}
	})
}

// TestFinanceClient_QueryProfile tests metadata fetching.
//
// WHY: Profile data feeds display-name and logo enrichment; the client
// must extract the long name and website and fall back to the short
// name when no long name exists.
func TestFinanceClient_QueryProfile(t *testing.T) {
	t.Run("parses a valid profile", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !strings.Contains(r.URL.Path, "/v10/finance/quoteSummary/NVDA") {
				t.Errorf("Unexpected path %s", r.URL.Path)
			}
			w.Write([]byte(profileBody)) //nolint:errcheck
		}))
		defer server.Close()

		client := yahoo.NewFinanceClientWithBaseURL(server.URL)
		profile, err := client.QueryProfile(context.Background(), "NVDA")
		if err != nil {
			t.Fatalf("QueryProfile() returned unexpected error: %v", err)
		}

		if profile.LongName != "NVIDIA Corporation" {
			t.Errorf("LongName = %q", profile.LongName)
		}
		if profile.Website != "https://www.nvidia.com" {
			t.Errorf("Website = %q", profile.Website)
		}
	})

	t.Run("falls back to short name", func(t *testing.T) {
		body := `{"quoteSummary": {"result": [{"assetProfile": {}, "price": {"shortName": "NVIDIA"}}], "error": null}}`
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(body)) //nolint:errcheck
		}))
		defer server.Close()

		client := yahoo.NewFinanceClientWithBaseURL(server.URL)
		profile, err := client.QueryProfile(context.Background(), "NVDA")
		if err != nil {
			t.Fatalf("QueryProfile() returned unexpected error: %v", err)
		}
		if profile.LongName != "NVIDIA" {
			t.Errorf("LongName = %q, want short-name fallback", profile.LongName)
		}
	})

	t.Run("returns error on empty result", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"quoteSummary": {"result": [], "error": null}}`)) //nolint:errcheck
		}))
		defer server.Close()

		client := yahoo.NewFinanceClientWithBaseURL(server.URL)
		if _, err := client.QueryProfile(context.Background(), "GONE"); err == nil {
			t.Error("Expected error from empty profile result, got nil")
		}
	})
}
