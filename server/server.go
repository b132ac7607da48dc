package server

import (
	"context"
	"errors"
	"net/http"

	"cafe-analytics/records"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/op/go-logging"
)

var log = logging.MustGetLogger("log")

// Server exposes the analytics queries over HTTP. Every handler reads the same
// snapshot, which is never modified after the server is created.
type Server struct {
	echo     *echo.Echo
	snapshot *records.Snapshot
}

func New(snapshot *records.Snapshot, corsOrigins []string) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = errorHandler

	e.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{Generator: uuid.NewString}))
	e.Use(requestLogger)
	e.Use(middleware.Recover())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     corsOrigins,
		AllowMethods:     []string{http.MethodGet, http.MethodHead, http.MethodOptions},
		AllowCredentials: true,
	}))

	s := &Server{echo: e, snapshot: snapshot}
	s.routes()
	return s
}

func (s *Server) routes() {
	s.echo.GET("/health", s.health)

	s.echo.GET("/kpi", s.kpi)
	s.echo.GET("/kpi/", s.kpi)
	s.echo.GET("/kpi/total_revenue", s.legacyTotalRevenue)
	s.echo.GET("/kpi/top_products", s.legacyTopProducts)
	s.echo.GET("/kpi/sales_by_hour", s.legacySalesByHour)

	s.echo.GET("/dashboard-data", s.dashboard)
	s.echo.GET("/revenue-trends", s.revenueTrends)
	s.echo.GET("/product-analytics", s.productAnalytics)
	s.echo.GET("/hourly-analysis", s.hourlyAnalysis)
	s.echo.GET("/heatmap", s.heatmap)
	s.echo.GET("/feedback-summary", s.feedbackSummary)
	s.echo.GET("/inventory", s.inventory)
	s.echo.GET("/inventory/reorder-alerts", s.reorderAlerts)
}

// ServeHTTP lets the server be mounted or tested as a plain http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.echo.ServeHTTP(w, r)
}

// Start blocks serving on address until Shutdown is called.
func (s *Server) Start(address string) error {
	log.Infof("Listening on %s", address)
	if err := s.echo.Start(address); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown stops accepting connections and waits for in-flight requests until ctx
// is done.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}
