package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/dafibh/fortuna/fortuna-tracker/internal/domain"
	"github.com/dafibh/fortuna/fortuna-tracker/internal/service"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

// TransactionHandler handles transaction-related HTTP requests
type TransactionHandler struct {
	financeService   *service.FinanceService
	dashboardService *service.DashboardService
}

// NewTransactionHandler creates a new TransactionHandler
func NewTransactionHandler(financeService *service.FinanceService, dashboardService *service.DashboardService) *TransactionHandler {
	return &TransactionHandler{
		financeService:   financeService,
		dashboardService: dashboardService,
	}
}

// SplitRequest represents one split in a create transaction request
type SplitRequest struct {
	CategoryID string `json:"categoryId"`
	Amount     string `json:"amount"`
}

// CreateTransactionRequest represents the create transaction request body.
// When splits are omitted the whole total goes to the first category of the type.
type CreateTransactionRequest struct {
	Date        *string        `json:"date,omitempty"`
	Description string         `json:"description"`
	TotalAmount string         `json:"totalAmount"`
	Type        string         `json:"type"`
	Splits      []SplitRequest `json:"splits,omitempty"`
}

// SplitResponse represents a split in API responses
type SplitResponse struct {
	CategoryID   string `json:"categoryId"`
	CategoryName string `json:"categoryName"`
	Amount       string `json:"amount"`
}

// TransactionResponse represents a transaction in API responses
type TransactionResponse struct {
	ID          string          `json:"id"`
	Date        string          `json:"date"`
	Description string          `json:"description"`
	TotalAmount string          `json:"totalAmount"`
	Type        string          `json:"type"`
	Splits      []SplitResponse `json:"splits"`
}

// TransactionListResponse represents the filtered transaction history
type TransactionListResponse struct {
	Data       []TransactionResponse `json:"data"`
	TotalItems int                   `json:"totalItems"`
}

// PreviewResponse is the live feedback for a transaction being entered
type PreviewResponse struct {
	TotalAmount string            `json:"totalAmount"`
	Allocated   string            `json:"allocated"`
	Remaining   string            `json:"remaining"`
	Valid       bool              `json:"valid"`
	Errors      []ValidationError `json:"errors,omitempty"`
}

// CreateTransaction godoc
// @Summary Create a transaction
// @Description Validate a transaction with its category splits and submit it to the store
// @Tags transactions
// @Accept json
// @Produce json
// @Param request body CreateTransactionRequest true "Transaction creation request"
// @Success 201 {object} TransactionResponse
// @Failure 400 {object} ProblemDetails
// @Failure 502 {object} ProblemDetails
// @Router /transactions [post]
func (h *TransactionHandler) CreateTransaction(c echo.Context) error {
	var req CreateTransactionRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	form, problem := h.formFromRequest(req)
	if problem != nil {
		return NewValidationError(c, "Validation failed", []ValidationError{*problem})
	}

	draft, err := h.financeService.ValidateTransaction(form.Date, form.Description, form.TotalAmount, form.Type, form.Splits())
	if err != nil {
		return respondError(c, err, "Failed to create transaction")
	}

	transaction, err := h.financeService.AddTransaction(c.Request().Context(), draft)
	if err != nil {
		return respondError(c, err, "Failed to create transaction")
	}

	log.Info().Str("transaction_id", transaction.ID).Str("description", transaction.Description).Msg("Transaction created")

	return c.JSON(http.StatusCreated, h.toTransactionResponse(*transaction))
}

// PreviewTransaction godoc
// @Summary Preview a transaction
// @Description Report the unassigned remainder and validation problems without saving anything
// @Tags transactions
// @Accept json
// @Produce json
// @Param request body CreateTransactionRequest true "Transaction being entered"
// @Success 200 {object} PreviewResponse
// @Failure 400 {object} ProblemDetails
// @Router /transactions/preview [post]
func (h *TransactionHandler) PreviewTransaction(c echo.Context) error {
	var req CreateTransactionRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	form, problem := h.formFromRequest(req)
	if problem != nil {
		return c.JSON(http.StatusOK, PreviewResponse{
			TotalAmount: "0.00",
			Allocated:   "0.00",
			Remaining:   "0.00",
			Valid:       false,
			Errors:      []ValidationError{*problem},
		})
	}

	splits := form.Splits()
	resp := PreviewResponse{
		TotalAmount: form.TotalAmount.StringFixed(2),
		Allocated:   domain.SumSplits(splits).StringFixed(2),
		Remaining:   form.Remaining().StringFixed(2),
		Valid:       true,
	}

	if _, err := h.financeService.ValidateTransaction(form.Date, form.Description, form.TotalAmount, form.Type, splits); err != nil {
		resp.Valid = false
		field := ""
		var verr *domain.ValidationError
		if errors.As(err, &verr) {
			field = verr.Field
		}
		resp.Errors = []ValidationError{{Field: field, Message: err.Error()}}
	}

	return c.JSON(http.StatusOK, resp)
}

// GetTransactions godoc
// @Summary List transactions
// @Description Get the loaded transaction history with optional filters, newest first as delivered by the store
// @Tags transactions
// @Produce json
// @Param type query string false "Transaction type (income or expense)"
// @Param categoryId query string false "Only transactions with a split in this category"
// @Param startDate query string false "Start date (YYYY-MM-DD), inclusive"
// @Param endDate query string false "End date (YYYY-MM-DD), inclusive"
// @Success 200 {object} TransactionListResponse
// @Failure 400 {object} ProblemDetails
// @Router /transactions [get]
func (h *TransactionHandler) GetTransactions(c echo.Context) error {
	var filters domain.TransactionFilters

	if typeStr := c.QueryParam("type"); typeStr != "" {
		txType, err := domain.ParseTransactionType(typeStr)
		if err != nil {
			return fieldError(c, "type", "Type must be one of: income, expense")
		}
		filters.Type = &txType
	}

	filters.CategoryID = strings.TrimSpace(c.QueryParam("categoryId"))

	if startStr := c.QueryParam("startDate"); startStr != "" {
		start, err := domain.ParseDate(startStr)
		if err != nil {
			return fieldError(c, "startDate", "Must be in YYYY-MM-DD format")
		}
		filters.StartDate = &start
	}
	if endStr := c.QueryParam("endDate"); endStr != "" {
		end, err := domain.ParseDate(endStr)
		if err != nil {
			return fieldError(c, "endDate", "Must be in YYYY-MM-DD format")
		}
		filters.EndDate = &end
	}
	if filters.StartDate != nil && filters.EndDate != nil && filters.EndDate.Before(*filters.StartDate) {
		return fieldError(c, "endDate", "End date must not be before start date")
	}

	transactions := h.dashboardService.GetTransactions(filters)

	data := make([]TransactionResponse, len(transactions))
	for i, t := range transactions {
		data[i] = h.toTransactionResponse(t)
	}

	return c.JSON(http.StatusOK, TransactionListResponse{
		Data:       data,
		TotalItems: len(data),
	})
}

// formFromRequest parses the request into a transaction form, applying the default
// split when none are given. The returned problem is non-nil for unparseable input.
func (h *TransactionHandler) formFromRequest(req CreateTransactionRequest) (*service.TransactionForm, *ValidationError) {
	form := service.NewTransactionForm(h.financeService.Registry(), h.financeService.Today())

	if req.Type != "" {
		txType, err := domain.ParseTransactionType(req.Type)
		if err != nil {
			return nil, &ValidationError{Field: "type", Message: "Type must be one of: income, expense"}
		}
		form.SetType(txType)
	}

	if req.Date != nil && *req.Date != "" {
		date, err := domain.ParseDate(*req.Date)
		if err != nil {
			return nil, &ValidationError{Field: "date", Message: "Must be in YYYY-MM-DD format"}
		}
		form.Date = date
	}

	form.Description = req.Description

	if req.TotalAmount != "" {
		total, err := decimal.NewFromString(req.TotalAmount)
		if err != nil {
			return nil, &ValidationError{Field: "totalAmount", Message: "Must be a valid decimal number"}
		}
		form.SetTotalAmount(total)
	}

	if req.Splits != nil {
		splits := make([]domain.Split, len(req.Splits))
		for i, s := range req.Splits {
			amount := decimal.Zero
			if s.Amount != "" {
				parsed, err := decimal.NewFromString(s.Amount)
				if err != nil {
					return nil, &ValidationError{Field: "splits", Message: "Split amounts must be valid decimal numbers"}
				}
				amount = parsed
			}
			splits[i] = domain.Split{CategoryID: s.CategoryID, Amount: amount}
		}
		form.SetSplits(splits)
	}

	return form, nil
}

func (h *TransactionHandler) toTransactionResponse(t domain.Transaction) TransactionResponse {
	registry := h.financeService.Registry()

	splits := make([]SplitResponse, len(t.Splits))
	for i, s := range t.Splits {
		splits[i] = SplitResponse{
			CategoryID:   s.CategoryID,
			CategoryName: registry.Resolve(s.CategoryID),
			Amount:       s.Amount.StringFixed(2),
		}
	}

	return TransactionResponse{
		ID:          t.ID,
		Date:        t.Date.String(),
		Description: t.Description,
		TotalAmount: t.TotalAmount.StringFixed(2),
		Type:        string(t.Type),
		Splits:      splits,
	}
}
