package handler

import (
	"net/http"

	"github.com/dafibh/fortuna/fortuna-tracker/internal/domain"
	"github.com/dafibh/fortuna/fortuna-tracker/internal/service"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

// GoalHandler handles goal-related HTTP requests
type GoalHandler struct {
	financeService   *service.FinanceService
	dashboardService *service.DashboardService
}

// NewGoalHandler creates a new GoalHandler
func NewGoalHandler(financeService *service.FinanceService, dashboardService *service.DashboardService) *GoalHandler {
	return &GoalHandler{
		financeService:   financeService,
		dashboardService: dashboardService,
	}
}

// CreateGoalRequest represents the create goal request body
type CreateGoalRequest struct {
	Name         string `json:"name"`
	TargetAmount string `json:"targetAmount"`
	TargetDate   string `json:"targetDate"`
}

// GoalResponse represents a goal with its progress in API responses
type GoalResponse struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	TargetAmount  string `json:"targetAmount"`
	CurrentAmount string `json:"currentAmount"`
	Remaining     string `json:"remaining"`
	TargetDate    string `json:"targetDate"`
	Progress      string `json:"progress"`
}

// GoalListResponse represents every goal
type GoalListResponse struct {
	Data []GoalResponse `json:"data"`
}

// GetGoals godoc
// @Summary List goals
// @Description Get every savings goal with its progress percentage, clamped to 0..100
// @Tags goals
// @Produce json
// @Success 200 {object} GoalListResponse
// @Router /goals [get]
func (h *GoalHandler) GetGoals(c echo.Context) error {
	return c.JSON(http.StatusOK, GoalListResponse{
		Data: toGoalResponses(h.dashboardService.GetGoals()),
	})
}

// CreateGoal godoc
// @Summary Create a goal
// @Description Validate a savings goal and submit it to the store. The target date must not be in the past.
// @Tags goals
// @Accept json
// @Produce json
// @Param request body CreateGoalRequest true "Goal creation request"
// @Success 201 {object} GoalResponse
// @Failure 400 {object} ProblemDetails
// @Failure 502 {object} ProblemDetails
// @Router /goals [post]
func (h *GoalHandler) CreateGoal(c echo.Context) error {
	var req CreateGoalRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	target, err := decimal.NewFromString(req.TargetAmount)
	if err != nil {
		return fieldError(c, "targetAmount", "Must be a valid decimal number")
	}

	var targetDate domain.Date
	if req.TargetDate != "" {
		targetDate, err = domain.ParseDate(req.TargetDate)
		if err != nil {
			return fieldError(c, "targetDate", "Must be in YYYY-MM-DD format")
		}
	}

	goal, err := h.financeService.CreateGoal(c.Request().Context(), req.Name, target, targetDate)
	if err != nil {
		return respondError(c, err, "Failed to create goal")
	}

	log.Info().Str("goal_id", goal.ID).Str("name", goal.Name).Msg("Goal created")

	return c.JSON(http.StatusCreated, toGoalResponse(service.GoalProgressList([]domain.Goal{*goal})[0]))
}

func toGoalResponses(goals []domain.GoalProgress) []GoalResponse {
	out := make([]GoalResponse, len(goals))
	for i, g := range goals {
		out[i] = toGoalResponse(g)
	}
	return out
}

func toGoalResponse(g domain.GoalProgress) GoalResponse {
	return GoalResponse{
		ID:            g.Goal.ID,
		Name:          g.Goal.Name,
		TargetAmount:  g.Goal.TargetAmount.StringFixed(2),
		CurrentAmount: g.Goal.CurrentAmount.StringFixed(2),
		Remaining:     g.Goal.Remaining().StringFixed(2),
		TargetDate:    g.Goal.TargetDate.String(),
		Progress:      g.Percent.StringFixed(2),
	}
}
