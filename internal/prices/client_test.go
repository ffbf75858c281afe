package prices

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/rs/zerolog"

	apperrors "fund-reporter/internal/errors"
)

func TestGetPrices(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("X-API-KEY") != "test-key" {
			t.Errorf("Missing API key header")
		}
		q := r.URL.Query()
		if q.Get("ticker") != "MSFT" || q.Get("interval") != "day" {
			t.Errorf("Unexpected query: %s", r.URL.RawQuery)
		}
		w.Write([]byte(`{"prices": [
			{"time": "2025-04-01", "open": 380, "high": 390, "low": 378.5, "close": 385.24, "volume": 1000000},
			{"time": "2025-04-02", "open": 385, "high": 388, "low": 380, "close": 382.1, "volume": 900000}
		]}`))
	}))
	defer upstream.Close()

	client := NewClient(upstream.URL, "test-key", zerolog.Nop())
	prices, err := client.GetPrices(context.Background(), "MSFT", "2025-04-01", "2025-04-02")
	if err != nil {
		t.Fatalf("GetPrices failed: %v", err)
	}

	if len(prices) != 2 {
		t.Fatalf("Expected 2 records, got %d", len(prices))
	}
	if prices[0].Date != "2025-04-01" || prices[0].Close != 385.24 {
		t.Errorf("First record wrong: %+v", prices[0])
	}
}

func TestGetPricesRetriesOnFailure(t *testing.T) {
	var calls int32
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.Write([]byte(`{"prices": [{"time": "2025-04-01", "close": 385.24}]}`))
	}))
	defer upstream.Close()

	client := NewClient(upstream.URL, "", zerolog.Nop())
	prices, err := client.GetPrices(context.Background(), "MSFT", "2025-04-01", "2025-04-01")
	if err != nil {
		t.Fatalf("GetPrices should have retried past the first failure: %v", err)
	}
	if len(prices) != 1 {
		t.Errorf("Expected 1 record, got %d", len(prices))
	}
	if atomic.LoadInt32(&calls) != 2 {
		t.Errorf("Expected 2 upstream calls, got %d", calls)
	}
}

func TestGetPricesUpstreamError(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer upstream.Close()

	client := NewClient(upstream.URL, "", zerolog.Nop())
	_, err := client.GetPrices(context.Background(), "MSFT", "2025-04-01", "2025-04-01")
	if err == nil {
		t.Fatal("Expected an error")
	}

	var perr *apperrors.PriceError
	if !errors.As(err, &perr) {
		t.Fatalf("Expected a PriceError, got %T: %v", err, err)
	}
	if perr.StatusCode != http.StatusForbidden {
		t.Errorf("StatusCode = %d", perr.StatusCode)
	}
	if !errors.Is(err, apperrors.ErrPriceUnavailable) {
		t.Errorf("Error should wrap ErrPriceUnavailable")
	}
}

func TestGetPricesEmptyTicker(t *testing.T) {
	client := NewClient("http://localhost", "", zerolog.Nop())
	if _, err := client.GetPrices(context.Background(), "", "2025-04-01", "2025-04-01"); err == nil {
		t.Error("Expected an error for an empty ticker")
	}
}
