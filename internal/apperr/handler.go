package apperr

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"
)

type problem struct {
	Error string `json:"error"`
	Title string `json:"title,omitempty"`
}

// resolve maps err to a status code and a body that is safe to show to the client.
func resolve(err error) (int, problem) {
	var (
		ve *ValidationError
		nf *NotFoundError
		ue *UpstreamError
		he *echo.HTTPError
	)
	switch {
	case errors.As(err, &ve):
		return http.StatusBadRequest, problem{Error: ve.Message, Title: "validation error"}
	case errors.As(err, &nf):
		return http.StatusNotFound, problem{Error: nf.Error()}
	case errors.As(err, &ue):
		return http.StatusBadGateway, problem{Error: ue.Op + " failed"}
	case errors.As(err, &he):
		return he.Code, problem{Error: fmt.Sprintf("%v", he.Message)}
	default:
		return http.StatusInternalServerError, problem{Error: "internal server error"}
	}
}

func GlobalErrorHandler() echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		status, body := resolve(err)
		if status >= http.StatusInternalServerError {
			slog.Error("Request failed",
				"method", c.Request().Method,
				"route", c.Path(),
				"status", status,
				"request_id", c.Response().Header().Get(echo.HeaderXRequestID),
				"error", err,
			)
		}

		if c.Request().Method == http.MethodHead {
			_ = c.NoContent(status)
			return
		}
		_ = c.JSON(status, body)
	}
}
