package apperr_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/DjordjeVuckovic/exam-portal/internal/apperr"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

func TestGlobalErrorHandler(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code int
		body string
	}{
		{"validation", apperr.NewValidation("unknown collection"), http.StatusBadRequest, `{"error":"unknown collection","title":"validation error"}`},
		{"not found", apperr.NewNotFound("run", "42"), http.StatusNotFound, `{"error":"run 42 not found"}`},
		{"upstream", apperr.NewUpstream("list colleges", errors.New("timeout")), http.StatusBadGateway, `{"error":"list colleges failed"}`},
		{"echo", echo.NewHTTPError(http.StatusRequestEntityTooLarge, "too big"), http.StatusRequestEntityTooLarge, `{"error":"too big"}`},
		{"other", errors.New("boom"), http.StatusInternalServerError, `{"error":"internal server error"}`},
	}

	e := echo.New()
	handler := apperr.GlobalErrorHandler()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)

			handler(tt.err, c)

			assert.Equal(t, tt.code, rec.Code)
			assert.JSONEq(t, tt.body, rec.Body.String())
		})
	}
}

func TestGlobalErrorHandler_Head(t *testing.T) {
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodHead, "/", nil), rec)

	apperr.GlobalErrorHandler()(apperr.NewNotFound("college", "C09"), c)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Empty(t, rec.Body.String())
}

func TestGlobalErrorHandler_CommittedResponse(t *testing.T) {
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)
	_ = c.String(http.StatusAccepted, "started")

	apperr.GlobalErrorHandler()(errors.New("late failure"), c)

	assert.Equal(t, http.StatusAccepted, rec.Code)
	assert.Equal(t, "started", rec.Body.String())
}
