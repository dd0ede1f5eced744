package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dafibh/fortuna/fortuna-tracker/internal/domain"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateGoal_Success(t *testing.T) {
	e := echo.New()
	svc := newTestServices(t)
	handler := NewGoalHandler(svc.finance, svc.dashboard)

	c, rec := postJSON(e, "/api/v1/goals", `{"name": "Emergency fund", "targetAmount": "5000", "targetDate": "2024-12-31"}`)
	require.NoError(t, handler.CreateGoal(c))

	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var response GoalResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	assert.NotEmpty(t, response.ID)
	assert.Equal(t, "5000.00", response.TargetAmount)
	assert.Equal(t, "0.00", response.CurrentAmount)
	assert.Equal(t, "0.00", response.Progress)
	assert.Equal(t, "2024-12-31", response.TargetDate)

	assert.Len(t, svc.finance.Goals(), 1)
}

func TestCreateGoal_TodayIsAccepted(t *testing.T) {
	e := echo.New()
	svc := newTestServices(t)
	handler := NewGoalHandler(svc.finance, svc.dashboard)

	c, rec := postJSON(e, "/api/v1/goals", `{"name": "Now", "targetAmount": "10", "targetDate": "2024-03-18"}`)
	require.NoError(t, handler.CreateGoal(c))
	assert.Equal(t, http.StatusCreated, rec.Code)
}

func TestCreateGoal_ValidationErrors(t *testing.T) {
	tests := []struct {
		name      string
		body      string
		wantField string
	}{
		{"past date", `{"name": "Car", "targetAmount": "100", "targetDate": "2024-03-17"}`, "targetDate"},
		{"missing date", `{"name": "Car", "targetAmount": "100"}`, "targetDate"},
		{"bad date", `{"name": "Car", "targetAmount": "100", "targetDate": "soon"}`, "targetDate"},
		{"zero target", `{"name": "Car", "targetAmount": "0", "targetDate": "2025-01-01"}`, "targetAmount"},
		{"bad target", `{"name": "Car", "targetAmount": "lots", "targetDate": "2025-01-01"}`, "targetAmount"},
		{"blank name", `{"name": "", "targetAmount": "100", "targetDate": "2025-01-01"}`, "name"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := echo.New()
			svc := newTestServices(t)
			handler := NewGoalHandler(svc.finance, svc.dashboard)

			c, rec := postJSON(e, "/api/v1/goals", tt.body)
			require.NoError(t, handler.CreateGoal(c))
			require.Equal(t, http.StatusBadRequest, rec.Code)

			var problem ProblemDetails
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &problem))
			require.Len(t, problem.Errors, 1)
			assert.Equal(t, tt.wantField, problem.Errors[0].Field)
			assert.Equal(t, 0, svc.store.CreateGoalCalls)
		})
	}
}

func TestCreateGoal_StoreFailure(t *testing.T) {
	e := echo.New()
	svc := newTestServices(t)
	svc.store.CreateGoalErr = domain.NewTransportError("create goal", 409, "Goal already exists", "Failed to add goal.", nil)
	handler := NewGoalHandler(svc.finance, svc.dashboard)

	c, rec := postJSON(e, "/api/v1/goals", `{"name": "Car", "targetAmount": "100", "targetDate": "2025-01-01"}`)
	require.NoError(t, handler.CreateGoal(c))
	require.Equal(t, http.StatusBadGateway, rec.Code)

	var problem ProblemDetails
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &problem))
	assert.Equal(t, "Goal already exists", problem.Detail)
}

func TestGetGoals(t *testing.T) {
	e := echo.New()
	svc := newTestServices(t)
	handler := NewGoalHandler(svc.finance, svc.dashboard)

	c, _ := postJSON(e, "/api/v1/goals", `{"name": "Bike", "targetAmount": "800", "targetDate": "2024-06-01"}`)
	require.NoError(t, handler.CreateGoal(c))

	rec := httptest.NewRecorder()
	c = e.NewContext(httptest.NewRequest(http.MethodGet, "/api/v1/goals", nil), rec)
	require.NoError(t, handler.GetGoals(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var response GoalListResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	require.Len(t, response.Data, 1)
	assert.Equal(t, "Bike", response.Data[0].Name)
	assert.Equal(t, "800.00", response.Data[0].Remaining)
}
