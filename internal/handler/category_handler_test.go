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

func TestGetCategories(t *testing.T) {
	tests := []struct {
		name      string
		query     string
		wantCount int
		wantFirst string
	}{
		{"all", "", 13, "cat_inc_1"},
		{"income", "?kind=income", 4, "cat_inc_1"},
		{"expense", "?kind=EXPENSE", 9, "cat_exp_1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := echo.New()
			handler := NewCategoryHandler(domain.DefaultCategoryRegistry())

			rec := httptest.NewRecorder()
			c := e.NewContext(httptest.NewRequest(http.MethodGet, "/api/v1/categories"+tt.query, nil), rec)
			require.NoError(t, handler.GetCategories(c))
			require.Equal(t, http.StatusOK, rec.Code)

			var response []CategoryResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
			assert.Len(t, response, tt.wantCount)
			assert.Equal(t, tt.wantFirst, response[0].ID)
		})
	}
}

func TestGetCategories_InvalidKind(t *testing.T) {
	e := echo.New()
	handler := NewCategoryHandler(domain.DefaultCategoryRegistry())

	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/api/v1/categories?kind=transfer", nil), rec)
	require.NoError(t, handler.GetCategories(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
