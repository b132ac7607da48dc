package server

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"cafe-analytics/common"

	"github.com/labstack/echo/v4"
)

// errInvalidParam is returned for query parameters that are not in the expected format.
var errInvalidParam = errors.New("invalid parameter")

type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

func classify(err error) (int, errorResponse) {
	var httpErr *echo.HTTPError
	switch {
	case errors.Is(err, common.ErrInvalidDate):
		return http.StatusBadRequest, errorResponse{"invalid_date", err.Error()}
	case errors.Is(err, common.ErrInvalidWindow):
		return http.StatusBadRequest, errorResponse{"invalid_window", err.Error()}
	case errors.Is(err, common.ErrInvalidPeriod):
		return http.StatusBadRequest, errorResponse{"invalid_period", err.Error()}
	case errors.Is(err, errInvalidParam):
		return http.StatusBadRequest, errorResponse{"invalid_parameter", err.Error()}
	case errors.Is(err, common.ErrNoDataInRange):
		return http.StatusNotFound, errorResponse{"no_data", err.Error()}
	case errors.As(err, &httpErr):
		code := strings.ToLower(strings.ReplaceAll(http.StatusText(httpErr.Code), " ", "_"))
		return httpErr.Code, errorResponse{code, fmt.Sprint(httpErr.Message)}
	default:
		log.Errorf("Unhandled error: %v", err)
		return http.StatusInternalServerError, errorResponse{"internal_error", "internal server error"}
	}
}

func errorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	status, body := classify(err)

	var writeErr error
	if c.Request().Method == http.MethodHead {
		writeErr = c.NoContent(status)
	} else {
		writeErr = c.JSON(status, body)
	}
	if writeErr != nil {
		log.Errorf("Failed to write error response: %v", writeErr)
	}
}
