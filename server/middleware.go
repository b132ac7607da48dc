package server

import (
	"time"

	"github.com/labstack/echo/v4"
)

// requestLogger writes one access log line per request. Errors are handed to the
// error handler here so the logged status is the one the client receives.
func requestLogger(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		start := time.Now()
		if err := next(c); err != nil {
			c.Error(err)
		}

		req := c.Request()
		res := c.Response()
		status := res.Status
		requestID := res.Header().Get(echo.HeaderXRequestID)
		latency := time.Since(start)

		switch {
		case status >= 500:
			log.Errorf("%s %s %d %s id=%s", req.Method, req.URL.RequestURI(), status, latency, requestID)
		case status >= 400:
			log.Warningf("%s %s %d %s id=%s", req.Method, req.URL.RequestURI(), status, latency, requestID)
		default:
			log.Infof("%s %s %d %s id=%s", req.Method, req.URL.RequestURI(), status, latency, requestID)
		}
		return nil
	}
}
