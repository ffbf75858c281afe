// Package prices implements the price-history lookup consumed by the
// passthrough server. The upstream computes prices; this client only
// fetches and reshapes them.
package prices

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/rs/zerolog"
	"github.com/tidwall/gjson"

	apperrors "fund-reporter/internal/errors"
	"fund-reporter/internal/logging"
	"fund-reporter/internal/models"
	"fund-reporter/pkg/utils"
)

// Source looks up historical prices for a ticker over a date range.
type Source interface {
	GetPrices(ctx context.Context, ticker, startDate, endDate string) ([]models.Price, error)
}

// Client fetches price history from the financial datasets API.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	retry      utils.RetryConfig
	logger     zerolog.Logger
}

// NewClient creates a price-history client.
func NewClient(baseURL, apiKey string, logger zerolog.Logger) *Client {
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		retry:  utils.DefaultRetryConfig(),
		logger: logger,
	}
}

// GetPrices returns the daily price records for ticker between startDate
// and endDate, inclusive, in upstream order.
func (c *Client) GetPrices(ctx context.Context, ticker, startDate, endDate string) ([]models.Price, error) {
	if ticker == "" {
		return nil, fmt.Errorf("ticker must not be empty")
	}

	endpoint := fmt.Sprintf(
		"%s/prices/?ticker=%s&interval=day&interval_multiplier=1&start_date=%s&end_date=%s",
		c.baseURL, url.QueryEscape(ticker), url.QueryEscape(startDate), url.QueryEscape(endDate),
	)

	body, err := utils.RetryWithResult(ctx, c.retry, func() ([]byte, error) {
		return c.fetch(ctx, ticker, endpoint)
	})
	if err != nil {
		return nil, err
	}

	return c.parsePrices(ticker, body), nil
}

func (c *Client) fetch(ctx context.Context, ticker, endpoint string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, apperrors.NewPriceError(ticker, 0, err)
	}
	if c.apiKey != "" {
		req.Header.Set("X-API-KEY", c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, apperrors.NewPriceError(ticker, 0, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, apperrors.NewPriceError(ticker, resp.StatusCode, apperrors.ErrPriceUnavailable)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, apperrors.NewPriceError(ticker, 0, err)
	}
	return body, nil
}

func (c *Client) parsePrices(ticker string, body []byte) []models.Price {
	var prices []models.Price
	gjson.GetBytes(body, "prices").ForEach(func(_, p gjson.Result) bool {
		record := models.Price{
			Open:   p.Get("open").Float(),
			High:   p.Get("high").Float(),
			Low:    p.Get("low").Float(),
			Close:  p.Get("close").Float(),
			Volume: p.Get("volume").Float(),
		}
		// The upstream labels the date field inconsistently across
		// endpoints.
		if t := p.Get("time"); t.Exists() {
			record.Date = t.String()
		} else {
			record.Date = p.Get("date").String()
		}
		prices = append(prices, record)
		return true
	})
	tickerLogger := logging.WithTicker(c.logger, ticker)
	tickerLogger.Debug().Int("records", len(prices)).Msg("fetched price history")
	return prices
}
