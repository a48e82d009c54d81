package router

import (
	"errors"
	"net/http"
	"net/mail"

	"github.com/DjordjeVuckovic/exam-portal/internal/apperr"
	"github.com/DjordjeVuckovic/exam-portal/internal/fees"
	"github.com/DjordjeVuckovic/exam-portal/internal/letters"
	"github.com/DjordjeVuckovic/exam-portal/internal/notify"
	"github.com/DjordjeVuckovic/exam-portal/internal/storage"
	"github.com/labstack/echo/v4"
)

type CollegeRouter struct {
	e        *echo.Echo
	fees     *fees.Service
	renderer *letters.Renderer
	mailer   notify.Mailer
}

func NewCollegeRouter(e *echo.Echo, svc *fees.Service, renderer *letters.Renderer, mailer notify.Mailer) *CollegeRouter {
	return &CollegeRouter{
		e:        e,
		fees:     svc,
		renderer: renderer,
		mailer:   mailer,
	}
}

func (r *CollegeRouter) Bind() {
	g := r.e.Group("/colleges/:code")
	g.GET("/statement", r.statementHandler)
	g.GET("/letters/:kind", r.letterHandler)
	g.POST("/letters/:kind/send", r.sendHandler)
}

type StatementResponse struct {
	fees.Statement
	Status fees.Status `json:"status"`
	Papers int         `json:"papers"`
}

type SentResponse struct {
	Kind    letters.Kind `json:"kind"`
	To      string       `json:"to"`
	Subject string       `json:"subject"`
}

func (r *CollegeRouter) statement(c echo.Context) (fees.Statement, error) {
	code := c.Param("code")
	st, err := r.fees.Statement(c.Request().Context(), code)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return fees.Statement{}, apperr.NewNotFound("college", code)
		}
		return fees.Statement{}, apperr.NewUpstream("load statement", err)
	}
	return st, nil
}

func (r *CollegeRouter) render(c echo.Context) (letters.Letter, fees.Statement, error) {
	kind, err := letters.ParseKind(c.Param("kind"))
	if err != nil {
		return letters.Letter{}, fees.Statement{}, err
	}
	st, err := r.statement(c)
	if err != nil {
		return letters.Letter{}, fees.Statement{}, err
	}
	letter, err := r.renderer.Render(kind, st)
	return letter, st, err
}

// statementHandler godoc
// @Summary Fee statement of a college
// @Description Balance is due minus paid. A positive balance is a discrepancy, a negative one a credit.
// @Tags colleges
// @Produce json
// @Param code path string true "College code"
// @Success 200 {object} StatementResponse
// @Failure 404 {object} ErrorResponse
// @Failure 502 {object} ErrorResponse
// @Router /colleges/{code}/statement [get]
func (r *CollegeRouter) statementHandler(c echo.Context) error {
	st, err := r.statement(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, StatementResponse{Statement: st, Status: st.Status(), Papers: st.Papers()})
}

// letterHandler godoc
// @Summary Render a letter for a college
// @Tags colleges
// @Produce html
// @Param code path string true "College code"
// @Param kind path string true "Letter kind" Enums(cover, discrepancy, credit)
// @Success 200 {string} string "HTML letter"
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /colleges/{code}/letters/{kind} [get]
func (r *CollegeRouter) letterHandler(c echo.Context) error {
	letter, _, err := r.render(c)
	if err != nil {
		return err
	}
	return c.HTMLBlob(http.StatusOK, letter.HTML)
}

// sendHandler godoc
// @Summary Email a letter to a college
// @Tags colleges
// @Produce json
// @Param code path string true "College code"
// @Param kind path string true "Letter kind" Enums(cover, discrepancy, credit)
// @Success 200 {object} SentResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /colleges/{code}/letters/{kind}/send [post]
func (r *CollegeRouter) sendHandler(c echo.Context) error {
	letter, st, err := r.render(c)
	if err != nil {
		return err
	}
	if st.College.Email == "" {
		return apperr.NewValidation("college " + st.College.Code + " has no email address")
	}

	msg := notify.Message{
		To:      mail.Address{Name: st.College.Name, Address: st.College.Email},
		Subject: letter.Subject,
		HTML:    string(letter.HTML),
	}
	if err := r.mailer.Send(c.Request().Context(), msg); err != nil {
		return apperr.NewUpstream("send letter", err)
	}

	return c.JSON(http.StatusOK, SentResponse{Kind: letter.Kind, To: st.College.Email, Subject: letter.Subject})
}
