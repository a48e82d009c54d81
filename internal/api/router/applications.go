package router

import (
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/DjordjeVuckovic/exam-portal/internal/apperr"
	"github.com/DjordjeVuckovic/exam-portal/internal/domain"
	"github.com/DjordjeVuckovic/exam-portal/internal/ingest/batch"
	"github.com/DjordjeVuckovic/exam-portal/internal/storage"
	"github.com/DjordjeVuckovic/exam-portal/pkg/pagination"
	"github.com/labstack/echo/v4"
)

type ApplicationRouter struct {
	e      *echo.Echo
	store  storage.DocumentStore
	writer *batch.Writer[domain.Application]
	now    func() time.Time
}

func NewApplicationRouter(e *echo.Echo, store storage.DocumentStore, opts ...batch.Option) *ApplicationRouter {
	opts = append([]batch.Option{batch.WithSanitizer(domain.SanitizeKey)}, opts...)
	return &ApplicationRouter{
		e:      e,
		store:  store,
		writer: batch.NewWriter(store, domain.CollectionApplications, domain.Application.Key, opts...),
		now:    time.Now,
	}
}

func (r *ApplicationRouter) Bind() {
	r.e.GET("/applications", r.listHandler)
	r.e.GET("/applications/:seat", r.getHandler)
	r.e.PUT("/applications/:seat", r.putHandler)
}

// listHandler godoc
// @Summary List applications
// @Description Pages through applications ordered by seat number
// @Tags applications
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param size query int false "Page size" default(50)
// @Param collegeCode query string false "Only applications of this college"
// @Success 200 {object} pagination.OffsetResult[domain.Application]
// @Failure 400 {object} ErrorResponse
// @Router /applications [get]
func (r *ApplicationRouter) listHandler(c echo.Context) error {
	var req pagination.OffsetRequest
	if err := c.Bind(&req); err != nil {
		return apperr.NewValidationWrap("invalid pagination parameters", err)
	}
	college := strings.ToUpper(strings.TrimSpace(c.QueryParam("collegeCode")))

	docs, err := r.store.List(c.Request().Context(), domain.CollectionApplications)
	if err != nil {
		return apperr.NewUpstream("list applications", err)
	}
	apps, err := storage.DecodeAll[domain.Application](docs)
	if err != nil {
		return err
	}

	if college != "" {
		filtered := apps[:0]
		for _, app := range apps {
			if app.CollegeCode == college {
				filtered = append(filtered, app)
			}
		}
		apps = filtered
	}

	sort.Slice(apps, func(i, j int) bool { return apps[i].SeatNo < apps[j].SeatNo })
	return c.JSON(http.StatusOK, pagination.Paginate(apps, req))
}

// getHandler godoc
// @Summary Get an application by seat number
// @Tags applications
// @Produce json
// @Param seat path string true "Seat number"
// @Success 200 {object} domain.Application
// @Failure 404 {object} ErrorResponse
// @Router /applications/{seat} [get]
func (r *ApplicationRouter) getHandler(c echo.Context) error {
	seat := c.Param("seat")
	doc, err := r.store.Get(c.Request().Context(), domain.CollectionApplications, domain.SanitizeKey(seat))
	if err != nil {
		return storeError("get application", "application", seat, err)
	}

	app, err := storage.Decode[domain.Application](doc)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, app)
}

// putHandler godoc
// @Summary Create or replace an application
// @Tags applications
// @Accept json
// @Produce json
// @Param seat path string true "Seat number"
// @Param application body domain.Application true "Application"
// @Success 200 {object} domain.Application
// @Failure 400 {object} ErrorResponse
// @Router /applications/{seat} [put]
func (r *ApplicationRouter) putHandler(c echo.Context) error {
	seat := c.Param("seat")
	if domain.SanitizeKey(seat) == "" {
		return apperr.NewValidation("seat number is required")
	}

	var app domain.Application
	if err := c.Bind(&app); err != nil {
		return apperr.NewValidationWrap("invalid application body", err)
	}
	if app.SeatNo == "" {
		app.SeatNo = seat
	}
	if app.SeatNo != seat {
		return apperr.NewValidation("seat number in body does not match the path")
	}
	if app.CreatedAt.IsZero() {
		app.CreatedAt = r.now().UTC()
	}
	if err := domain.Validate(app); err != nil {
		return apperr.NewValidationWrap("invalid application", err)
	}

	if err := r.writer.Write(c.Request().Context(), []domain.Application{app}); err != nil {
		return apperr.NewUpstream("save application", err)
	}
	return c.JSON(http.StatusOK, app)
}
