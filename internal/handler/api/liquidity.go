package api

import (
	"io"
	"time"

	models "CashRadar/internal/domain/models"
	"CashRadar/internal/ingest"
	"CashRadar/internal/usecase"
	xhttp "CashRadar/pkg/http"
	xlogger "CashRadar/pkg/logger"

	"github.com/labstack/echo/v4"
)

// LiquidityEchoHandler implements Echo-based HTTP handlers following Clean Architecture.
type LiquidityEchoHandler struct {
	logger   *xlogger.Logger
	pipeline *usecase.LiquidityPipeline
	views    *usecase.SnapshotViews
}

func NewLiquidityEchoHandler(logger *xlogger.Logger, pipeline *usecase.LiquidityPipeline, views *usecase.SnapshotViews) *LiquidityEchoHandler {
	return &LiquidityEchoHandler{logger: logger, pipeline: pipeline, views: views}
}

func (h *LiquidityEchoHandler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/api")
	g.POST("/ledger", h.UploadLedger)
	g.GET("/forecast", h.Forecast)
	g.GET("/behavior", h.Behavior)
	g.GET("/requirement", h.Requirement)
	g.GET("/summary", h.Summary)
}

// UploadLedger ingests a cashflow CSV (multipart field "file", or the raw
// request body) and runs the full analysis pipeline on it.
func (h *LiquidityEchoHandler) UploadLedger(c echo.Context) error {
	reader, err := ledgerPayload(c)
	if err != nil {
		return xhttp.AppErrorResponse(c, err)
	}

	records, err := ingest.ParseCSV(reader)
	if err != nil {
		h.logger.Warn("ledger csv rejected", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, xhttp.BadRequestError(err.Error()))
	}

	snap, err := h.pipeline.Run(c.Request().Context(), records)
	if err != nil {
		h.logger.Error("pipeline run failed", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, xhttp.BadRequestError(err.Error()))
	}

	return xhttp.CreatedResponse(c, UploadResponse{
		GeneratedAt:  snap.GeneratedAt,
		LedgerRows:   len(records),
		Accounts:     len(snap.Behavior.AccountMetrics),
		ForecastRows: len(snap.AccountForecast),
	})
}

// Forecast returns account and bank forecast rows, the bank rows decorated
// with the confidence band and stress overlay, optionally filtered and
// scaled to a display unit.
func (h *LiquidityEchoHandler) Forecast(c echo.Context) error {
	req := &models.ForecastRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	res, err := h.views.Forecast(req)
	if err != nil {
		return xhttp.AppErrorResponse(c, err)
	}
	return xhttp.SuccessResponse(c, res)
}

// Behavior returns the behavior intelligence report, optionally narrowed to
// one account.
func (h *LiquidityEchoHandler) Behavior(c echo.Context) error {
	req := &models.BehaviorRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	res, err := h.views.Behavior(req)
	if err != nil {
		return xhttp.AppErrorResponse(c, err)
	}
	return xhttp.SuccessResponse(c, res)
}

// Requirement recomputes the cash requirement on the stored forecast with
// caller-supplied stress and confidence parameters.
func (h *LiquidityEchoHandler) Requirement(c echo.Context) error {
	req := &models.RequirementRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	res, err := h.views.Requirement(req)
	if err != nil {
		return xhttp.AppErrorResponse(c, err)
	}
	return xhttp.SuccessResponse(c, res)
}

// Summary returns the bank-level overview with the executive advisory and
// per-account risk classification.
func (h *LiquidityEchoHandler) Summary(c echo.Context) error {
	req := &models.SummaryRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	res, err := h.views.Summary(req)
	if err != nil {
		return xhttp.AppErrorResponse(c, err)
	}
	return xhttp.SuccessResponse(c, res)
}

// UploadResponse reports what one ledger upload produced.
type UploadResponse struct {
	GeneratedAt  time.Time `json:"generated_at"`
	LedgerRows   int       `json:"ledger_rows"`
	Accounts     int       `json:"accounts"`
	ForecastRows int       `json:"forecast_rows"`
}

func ledgerPayload(c echo.Context) (io.Reader, error) {
	file, err := c.FormFile("file")
	if err == nil {
		f, openErr := file.Open()
		if openErr != nil {
			return nil, xhttp.BadRequestError("could not open uploaded file")
		}
		return f, nil
	}
	if c.Request().Body == nil {
		return nil, xhttp.BadRequestError("empty request body")
	}
	return c.Request().Body, nil
}
