package api

import (
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/squartrbnb/user-service/internal/api/apierror"
	"github.com/squartrbnb/user-service/internal/api/metrics"
)

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Classifies every error into the API taxonomy (apierror.Classify).
//   - Logs client errors at warn and server errors at error, with the real cause.
//   - Renders a consistent apierror.ErrorPayload and counts it by code.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return newHTTPErrorHandler(log, time.Now)
}

func newHTTPErrorHandler(log zerolog.Logger, now func() time.Time) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		cl := apierror.Classify(err)
		logError(log, c, cl, err)
		metrics.APIErrorsTotal.WithLabelValues(cl.Code.String()).Inc()

		payload := apierror.NewPayload(cl, c.Request().URL.Path, now().UTC())
		if c.Request().Method == echo.HEAD {
			_ = c.NoContent(cl.Status)
			return
		}
		_ = c.JSON(cl.Status, payload)
	}
}

func logError(log zerolog.Logger, c echo.Context, cl apierror.Classification, err error) {
	ev := log.Warn()
	if cl.Status >= 500 {
		ev = log.Error()
	}
	ev.Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Request().URL.Path).
		Str("request_id", c.Response().Header().Get(echo.HeaderXRequestID)).
		Str("error_code", cl.Code.String()).
		Int("status", cl.Status).
		Msg("request failed")
}
