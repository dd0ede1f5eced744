package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dafibh/fortuna/fortuna-tracker/internal/domain"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

func TestGetDashboard(t *testing.T) {
	e := echo.New()
	svc := newTestServices(t)
	handler := NewDashboardHandler(svc.dashboard)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/dashboard", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := handler.GetDashboard(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if rec.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", rec.Code)
	}

	var response DashboardResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}

	if response.Totals.Income != "2000.00" {
		t.Errorf("Expected income '2000.00', got %s", response.Totals.Income)
	}
	if response.Totals.Expenses != "100.00" {
		t.Errorf("Expected expenses '100.00', got %s", response.Totals.Expenses)
	}
	if response.Totals.Balance != "1900.00" {
		t.Errorf("Expected balance '1900.00', got %s", response.Totals.Balance)
	}

	if len(response.Monthly) != 2 || response.Monthly[0].Name != "Jan 24" || response.Monthly[1].Name != "Feb 24" {
		t.Errorf("Unexpected monthly series: %+v", response.Monthly)
	}

	amounts := map[string]string{}
	for _, b := range response.ExpenseBreakdown {
		amounts[b.ID] = b.Amount
	}
	if amounts["cat_exp_1"] != "60.00" || amounts["cat_exp_3"] != "40.00" || len(amounts) != 2 {
		t.Errorf("Unexpected expense breakdown: %+v", response.ExpenseBreakdown)
	}

	if !response.InvestmentReminder {
		t.Error("Expected investment reminder without an investment this month")
	}
	if response.Status.Loading || response.Status.Error != "" || response.Status.LoadedAt == nil {
		t.Errorf("Unexpected status: %+v", response.Status)
	}
}

func TestGetDashboard_GoalProgress(t *testing.T) {
	e := echo.New()
	svc := newTestServices(t)
	svc.store.AddGoal(domain.Goal{ID: "g1", Name: "Car", TargetAmount: decimal.NewFromInt(1000), CurrentAmount: decimal.NewFromInt(250)})
	svc.store.AddGoal(domain.Goal{ID: "g2", Name: "Trip", TargetAmount: decimal.NewFromInt(100), CurrentAmount: decimal.NewFromInt(150)})
	if err := svc.finance.Reload(context.Background()); err != nil {
		t.Fatalf("Reload failed: %v", err)
	}
	handler := NewDashboardHandler(svc.dashboard)

	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/api/v1/dashboard", nil), rec)
	if err := handler.GetDashboard(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	var response DashboardResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}
	if len(response.Goals) != 2 {
		t.Fatalf("Expected 2 goals, got %d", len(response.Goals))
	}
	if response.Goals[0].Progress != "25.00" {
		t.Errorf("Expected progress '25.00', got %s", response.Goals[0].Progress)
	}
	if response.Goals[1].Progress != "100.00" || response.Goals[1].Remaining != "0.00" {
		t.Errorf("Expected clamped progress, got %+v", response.Goals[1])
	}
}
