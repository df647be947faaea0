// Package api exposes the statement ledger over HTTP: statement upload and
// retrieval, category corrections, and spending analytics.
package api

import (
	"context"
	"log/slog"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/ruvan/cardledger/internal/ingest"
	"github.com/ruvan/cardledger/internal/model"
)

// Store is the persistence surface the API needs.
type Store interface {
	GetStatement(ctx context.Context, id string) (*model.Statement, error)
	ListStatements(ctx context.Context) ([]model.Statement, error)
	GetTransaction(ctx context.Context, id string) (*model.Transaction, error)
	UpdateTransactionCategory(ctx context.Context, id, category string) error
}

// Engine is the categorization surface the API needs.
type Engine interface {
	Learn(ctx context.Context, description, category string) error
}

// Server hosts the REST API.
type Server struct {
	echo     *echo.Echo
	store    Store
	engine   Engine
	importer *ingest.Importer
}

// customValidator adapts go-playground/validator to echo.Validator.
type customValidator struct {
	validator *validator.Validate
}

func (cv *customValidator) Validate(i any) error {
	return cv.validator.Struct(i)
}

// NewServer wires the routes and middleware.
func NewServer(store Store, engine Engine, importer *ingest.Importer) *Server {
	e := echo.New()
	e.HideBanner = true
	e.Validator = &customValidator{validator: validator.New()}
	e.Use(middleware.Recover())
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogStatus: true,
		LogURI:    true,
		LogMethod: true,
		LogValuesFunc: func(_ echo.Context, v middleware.RequestLoggerValues) error {
			logRequest(v)
			return nil
		},
	}))

	s := &Server{echo: e, store: store, engine: engine, importer: importer}

	e.GET("/statements", s.listStatements)
	e.POST("/statements/upload", s.uploadStatement)
	e.GET("/statements/:id", s.getStatement)
	e.PUT("/transactions/:id", s.updateTransaction)
	e.GET("/analytics/summary", s.summary)
	e.GET("/analytics/compare", s.compare)

	return s
}

// Start serves until Shutdown or a listener error.
func (s *Server) Start(addr string) error {
	return s.echo.Start(addr)
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}

func logRequest(v middleware.RequestLoggerValues) {
	slog.Info("request", "method", v.Method, "uri", v.URI, "status", v.Status)
}
