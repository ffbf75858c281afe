// Package server exposes the price passthrough API over HTTP.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"

	apperrors "fund-reporter/internal/errors"
	"fund-reporter/internal/models"
	"fund-reporter/internal/prices"
)

// Server wraps an Echo HTTP server serving price history.
type Server struct {
	echo   *echo.Echo
	addr   string
	prices prices.Source
	logger zerolog.Logger
}

// New builds a server listening on addr backed by the given price source.
func New(addr string, src prices.Source, logger zerolog.Logger) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(echomw.Recover())

	s := &Server{
		echo:   e,
		addr:   addr,
		prices: src,
		logger: logger.With().Str("component", "server").Logger(),
	}
	s.registerRoutes()
	return s
}

func (s *Server) registerRoutes() {
	g := s.echo.Group("/api")
	g.GET("/price-history", s.priceHistory)
	s.echo.GET("/healthz", s.health)
}

// Start begins serving in the background.
func (s *Server) Start() error {
	go func() {
		s.logger.Info().Str("addr", s.addr).Msg("http server listening")
		if err := s.echo.Start(s.addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error().Err(err).Msg("http server error")
		}
	}()
	return nil
}

// Stop shuts the server down gracefully.
func (s *Server) Stop(ctx context.Context) error {
	if err := s.echo.Shutdown(ctx); err != nil {
		return err
	}
	s.logger.Info().Msg("http server stopped")
	return nil
}

// Echo returns the underlying Echo instance.
func (s *Server) Echo() *echo.Echo {
	return s.echo
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) priceHistory(c echo.Context) error {
	ticker := c.QueryParam("ticker")
	if ticker == "" {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "ticker is required"})
	}

	endDate := c.QueryParam("end_date")
	if endDate == "" {
		endDate = time.Now().Format("2006-01-02")
	}
	startDate := c.QueryParam("start_date")
	if startDate == "" {
		end, err := time.Parse("2006-01-02", endDate)
		if err != nil {
			return c.JSON(http.StatusBadRequest, errorResponse{Error: "end_date must be YYYY-MM-DD"})
		}
		startDate = end.AddDate(0, -3, 0).Format("2006-01-02")
	}

	records, err := s.prices.GetPrices(c.Request().Context(), ticker, startDate, endDate)
	if err != nil {
		s.logger.Error().Err(err).Str("ticker", ticker).Msg("price fetch failed")
		var perr *apperrors.PriceError
		if errors.As(err, &perr) && perr.StatusCode >= 400 && perr.StatusCode < 500 {
			return c.JSON(http.StatusBadGateway, errorResponse{Error: err.Error()})
		}
		return c.JSON(http.StatusBadGateway, errorResponse{Error: "price source unavailable"})
	}

	return c.JSON(http.StatusOK, models.PriceHistory{Ticker: ticker, Prices: records})
}
