package handler

import (
	"net/http"

	"github.com/dafibh/fortuna/fortuna-tracker/internal/service"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
)

// StatusHandler reports and refreshes the loaded data
type StatusHandler struct {
	financeService *service.FinanceService
}

// NewStatusHandler creates a new StatusHandler
func NewStatusHandler(financeService *service.FinanceService) *StatusHandler {
	return &StatusHandler{financeService: financeService}
}

// DataStatusResponse represents the data access state with collection sizes
type DataStatusResponse struct {
	StatusResponse
	Transactions int `json:"transactions"`
	Goals        int `json:"goals"`
}

// GetStatus godoc
// @Summary Get data status
// @Description Loading flag, last error message and last successful load time
// @Tags status
// @Produce json
// @Success 200 {object} DataStatusResponse
// @Router /status [get]
func (h *StatusHandler) GetStatus(c echo.Context) error {
	return c.JSON(http.StatusOK, h.currentStatus())
}

// Reload godoc
// @Summary Reload data
// @Description Fetch all transactions and goals from the store again. On failure the previous data is kept.
// @Tags status
// @Produce json
// @Success 200 {object} DataStatusResponse
// @Failure 502 {object} ProblemDetails
// @Router /reload [post]
func (h *StatusHandler) Reload(c echo.Context) error {
	if err := h.financeService.Reload(c.Request().Context()); err != nil {
		return respondError(c, err, "Failed to reload data")
	}

	log.Info().Msg("Data reloaded on request")
	return c.JSON(http.StatusOK, h.currentStatus())
}

func (h *StatusHandler) currentStatus() DataStatusResponse {
	snapshot := h.financeService.Snapshot()
	return DataStatusResponse{
		StatusResponse: toStatusResponse(h.financeService.Status()),
		Transactions:   len(snapshot.Transactions),
		Goals:          len(snapshot.Goals),
	}
}
