package handler

import (
	"net/http"
	"time"

	"github.com/dafibh/fortuna/fortuna-tracker/internal/domain"
	"github.com/dafibh/fortuna/fortuna-tracker/internal/service"
	"github.com/labstack/echo/v4"
)

// DashboardHandler handles dashboard-related HTTP requests
type DashboardHandler struct {
	dashboardService *service.DashboardService
}

// NewDashboardHandler creates a new DashboardHandler
func NewDashboardHandler(dashboardService *service.DashboardService) *DashboardHandler {
	return &DashboardHandler{
		dashboardService: dashboardService,
	}
}

// TotalsResponse represents income, expenses and balance in API responses
type TotalsResponse struct {
	Income   string `json:"income"`
	Expenses string `json:"expenses"`
	Balance  string `json:"balance"`
}

// MonthlyFlowResponse represents one month of the income vs expenses chart
type MonthlyFlowResponse struct {
	Name     string `json:"name"`
	Income   string `json:"income"`
	Expenses string `json:"expenses"`
}

// CategoryAmountResponse represents one slice of the expense breakdown
type CategoryAmountResponse struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Amount string `json:"amount"`
}

// StatusResponse represents the data access state
type StatusResponse struct {
	Loading  bool    `json:"loading"`
	Error    string  `json:"error,omitempty"`
	LoadedAt *string `json:"loadedAt,omitempty"`
}

// DashboardResponse represents the dashboard API response
type DashboardResponse struct {
	Totals             TotalsResponse           `json:"totals"`
	Monthly            []MonthlyFlowResponse    `json:"monthly"`
	ExpenseBreakdown   []CategoryAmountResponse `json:"expenseBreakdown"`
	Goals              []GoalResponse           `json:"goals"`
	InvestmentReminder bool                     `json:"investmentReminder"`
	Status             StatusResponse           `json:"status"`
}

// GetDashboard godoc
// @Summary Get the dashboard
// @Description Totals, monthly income vs expenses, expense breakdown by category and goal progress
// @Tags dashboard
// @Produce json
// @Success 200 {object} DashboardResponse
// @Router /dashboard [get]
func (h *DashboardHandler) GetDashboard(c echo.Context) error {
	dashboard := h.dashboardService.GetDashboard()

	monthly := make([]MonthlyFlowResponse, len(dashboard.Monthly))
	for i, m := range dashboard.Monthly {
		monthly[i] = MonthlyFlowResponse{
			Name:     m.Label,
			Income:   m.Income.StringFixed(2),
			Expenses: m.Expenses.StringFixed(2),
		}
	}

	breakdown := make([]CategoryAmountResponse, len(dashboard.ExpenseBreakdown))
	for i, b := range dashboard.ExpenseBreakdown {
		breakdown[i] = CategoryAmountResponse{
			ID:     b.ID,
			Name:   b.Name,
			Amount: b.Amount.StringFixed(2),
		}
	}

	return c.JSON(http.StatusOK, DashboardResponse{
		Totals: TotalsResponse{
			Income:   dashboard.Totals.Income.StringFixed(2),
			Expenses: dashboard.Totals.Expenses.StringFixed(2),
			Balance:  dashboard.Totals.Balance.StringFixed(2),
		},
		Monthly:            monthly,
		ExpenseBreakdown:   breakdown,
		Goals:              toGoalResponses(dashboard.Goals),
		InvestmentReminder: dashboard.InvestmentReminder,
		Status:             toStatusResponse(dashboard.Status),
	})
}

func toStatusResponse(status domain.Status) StatusResponse {
	resp := StatusResponse{
		Loading: status.Loading,
		Error:   status.Error,
	}
	if status.LoadedAt != nil {
		loadedAt := status.LoadedAt.UTC().Format(time.RFC3339)
		resp.LoadedAt = &loadedAt
	}
	return resp
}
