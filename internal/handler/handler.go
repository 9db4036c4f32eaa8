package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	md "github.com/motorent/rental-service/pkg/middleware"

	"github.com/motorent/rental-service/internal/errs"
	"github.com/motorent/rental-service/internal/model"
	"github.com/motorent/rental-service/pkg/datetime"
	"github.com/motorent/rental-service/pkg/validate"
)

// AdminIDHeader carries the acting admin identity. Authentication lives with
// the identity collaborator; the id arrives opaque and is recorded as is.
const AdminIDHeader = "X-Admin-Id"

type Handler struct {
	rentalSvc RentalService
	log       *zap.Logger
}

func New(rentalSvc RentalService, log *zap.Logger) *Handler {
	return &Handler{
		rentalSvc: rentalSvc,
		log:       log,
	}
}

func (h *Handler) NewRouter() *echo.Echo {
	e := echo.New()
	const (
		baseRPS = 10
		apiRPS  = 100
	)
	e.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{
		StackSize: 4 << 10, // 4 KB
	}))
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{http.MethodGet, http.MethodOptions, http.MethodHead, http.MethodPut, http.MethodPatch, http.MethodPost, http.MethodDelete},
		AllowCredentials: true,
	}))

	base := e.Group("", md.NewRateLimiter(baseRPS))
	base.GET("/manage/health", h.Health)

	e.Validator = validate.NewCustomValidator()
	api := e.Group("/api/v1",
		middleware.RequestLoggerWithConfig(md.RequestLoggerConfig()),
		middleware.RequestID(),
		md.NewRateLimiter(apiRPS),
	)

	api.POST("/rentals", h.CreateRental)
	api.GET("/rentals", h.ListRentals)
	api.GET("/rentals/overdue", h.ListOverdueRentals)
	api.GET("/rentals/:id", h.GetRental)
	api.PATCH("/rentals/:id", h.UpdateRental)
	api.DELETE("/rentals/:id", h.RemoveRental)
	api.POST("/rentals/:id/extend", h.ExtendRental)
	api.POST("/rentals/:id/complete", h.CompleteRental)

	api.GET("/history", h.ListHistory)
	api.GET("/history/:id", h.GetHistory)

	return e
}

func (h *Handler) Health(c echo.Context) error {
	return c.String(http.StatusOK, "OK")
}

func (h *Handler) CreateRental(c echo.Context) error {
	var req model.CreateRentalRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	adminID, err := strconv.ParseInt(c.Request().Header.Get(AdminIDHeader), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid "+AdminIDHeader+" header")
	}
	req.AdminID = adminID
	if err := c.Validate(req); err != nil {
		return err
	}

	rental, err := h.rentalSvc.Create(c.Request().Context(), req)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusCreated, rental)
}

func (h *Handler) GetRental(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	rental, err := h.rentalSvc.FindOne(c.Request().Context(), id, datetime.Now())
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, rental)
}

func (h *Handler) ListRentals(c echo.Context) error {
	rentals, err := h.rentalSvc.FindAll(c.Request().Context(), datetime.Now())
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, rentals)
}

func (h *Handler) ListOverdueRentals(c echo.Context) error {
	items, err := h.rentalSvc.FindOverdue(c.Request().Context(), datetime.Now())
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, items)
}

func (h *Handler) UpdateRental(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	var req model.UpdateRentalRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := c.Validate(req); err != nil {
		return err
	}
	rental, err := h.rentalSvc.Update(c.Request().Context(), id, req)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, rental)
}

func (h *Handler) ExtendRental(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	var req model.ExtendRentalRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := c.Validate(req); err != nil {
		return err
	}
	rental, err := h.rentalSvc.Extend(c.Request().Context(), id, req)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, rental)
}

func (h *Handler) CompleteRental(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	var req model.CompleteRentalRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := c.Validate(req); err != nil {
		return err
	}
	result, err := h.rentalSvc.Complete(c.Request().Context(), id, req, datetime.Now())
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, result)
}

func (h *Handler) RemoveRental(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	if err := h.rentalSvc.Remove(c.Request().Context(), id); err != nil {
		return httpError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *Handler) GetHistory(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	hist, err := h.rentalSvc.GetHistory(c.Request().Context(), id)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, hist)
}

func (h *Handler) ListHistory(c echo.Context) error {
	items, err := h.rentalSvc.ListHistory(c.Request().Context())
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, items)
}

func pathID(c echo.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "id is invalid")
	}
	return id, nil
}

func httpError(err error) *echo.HTTPError {
	switch {
	case errors.Is(err, errs.ErrNotFound):
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	case errors.Is(err, errs.ErrInvalidDateFormat),
		errors.Is(err, errs.ErrInvalidTemporalOrder):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	case errors.Is(err, errs.ErrVehicleUnavailable),
		errors.Is(err, errs.ErrRenterBlacklisted),
		errors.Is(err, errs.ErrRenterHasActiveRent),
		errors.Is(err, errs.ErrAlreadyCompleted),
		errors.Is(err, errs.ErrInvalidTransition):
		return echo.NewHTTPError(http.StatusConflict, err.Error())
	default:
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
}
