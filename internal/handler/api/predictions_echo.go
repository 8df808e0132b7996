package api

import (
	"errors"

	models "RxPulse/internal/domain/models"
	"RxPulse/internal/usecase"
	xhttp "RxPulse/pkg/http"
	xlogger "RxPulse/pkg/logger"

	"github.com/labstack/echo/v4"
)

// StatusSource reports model availability for the health endpoint.
type StatusSource interface {
	Status() models.RegistryStatus
}

// PredictionsEchoHandler exposes the prediction services over HTTP.
type PredictionsEchoHandler struct {
	logger     *xlogger.Logger
	predictor  *usecase.Predictor
	forecaster *usecase.Forecaster
	status     StatusSource
}

func NewPredictionsEchoHandler(
	logger *xlogger.Logger,
	predictor *usecase.Predictor,
	forecaster *usecase.Forecaster,
	status StatusSource,
) *PredictionsEchoHandler {
	return &PredictionsEchoHandler{
		logger:     logger,
		predictor:  predictor,
		forecaster: forecaster,
		status:     status,
	}
}

func (h *PredictionsEchoHandler) RegisterRoutes(e *echo.Echo) {
	e.GET("/health", h.Health)
	e.POST("/forecast/demand", h.DemandForecast)
	e.POST("/forecast/medicine", h.MedicineForecast)
	e.POST("/inventory/optimize", h.InventoryOptimize)
	e.POST("/inventory/optimize/batch", h.InventoryOptimizeBatch)
	e.POST("/expiry/predict", h.ExpiryPredict)
	e.POST("/expiry/predict/batch", h.ExpiryPredictBatch)
	e.POST("/demand/weekly", h.WeeklyDemand)
}

func (h *PredictionsEchoHandler) Health(c echo.Context) error {
	return xhttp.SuccessResponse(c, h.status.Status())
}

func (h *PredictionsEchoHandler) DemandForecast(c echo.Context) error {
	req := &models.DemandForecastRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	res, err := h.forecaster.GlobalForecast(c.Request().Context(), req.Periods)
	if err != nil {
		return h.predictionError(c, "demand forecast", err)
	}
	return xhttp.SuccessResponse(c, res)
}

func (h *PredictionsEchoHandler) MedicineForecast(c echo.Context) error {
	req := &models.MedicineForecastRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	res, err := h.forecaster.ForecastForMedicine(c.Request().Context(), req.AvgDailySales)
	if err != nil {
		return h.predictionError(c, "medicine forecast", err)
	}
	return xhttp.SuccessResponse(c, res)
}

func (h *PredictionsEchoHandler) InventoryOptimize(c echo.Context) error {
	req := &models.InventoryOptimizationRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	res, err := h.predictor.PredictInventory(c.Request().Context(), *req)
	if err != nil {
		return h.predictionError(c, "inventory optimize", err)
	}
	return xhttp.SuccessResponse(c, res)
}

// InventoryOptimizeBatch always answers 200; per-item failures ride inside
// the response elements.
func (h *PredictionsEchoHandler) InventoryOptimizeBatch(c echo.Context) error {
	req := &models.BatchInventoryRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	res := h.predictor.PredictInventoryBatch(c.Request().Context(), req.Medicines)
	return xhttp.SuccessResponse(c, res)
}

func (h *PredictionsEchoHandler) ExpiryPredict(c echo.Context) error {
	req := &models.ExpiryPredictionRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	res, err := h.predictor.PredictExpiry(c.Request().Context(), *req)
	if err != nil {
		return h.predictionError(c, "expiry predict", err)
	}
	return xhttp.SuccessResponse(c, res)
}

func (h *PredictionsEchoHandler) ExpiryPredictBatch(c echo.Context) error {
	req := &models.BatchExpiryRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	res := h.predictor.PredictExpiryBatch(c.Request().Context(), req.Medicines)
	return xhttp.SuccessResponse(c, res)
}

func (h *PredictionsEchoHandler) WeeklyDemand(c echo.Context) error {
	req := &models.WeeklyDemandRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	res, err := h.predictor.PredictWeeklyDemand(c.Request().Context(), *req)
	if err != nil {
		return h.predictionError(c, "weekly demand", err)
	}
	return xhttp.SuccessResponse(c, res)
}

func (h *PredictionsEchoHandler) predictionError(c echo.Context, op string, err error) error {
	if errors.Is(err, usecase.ErrModelUnavailable) {
		return xhttp.AppErrorResponse(c, xhttp.UnavailableError("prediction model not available"))
	}
	h.logger.Error(op+" usecase error", xlogger.Error(err))
	return xhttp.AppErrorResponse(c, err)
}
