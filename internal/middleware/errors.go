package middleware

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
)

const errorTypeRateLimit = "https://fortuna.app/errors/rate-limit"

// problemDetails is the RFC 7807 body written by middleware that rejects a request
// before it reaches a handler
type problemDetails struct {
	Type       string `json:"type"`
	Title      string `json:"title"`
	Status     int    `json:"status"`
	Detail     string `json:"detail,omitempty"`
	Instance   string `json:"instance,omitempty"`
	RetryAfter int    `json:"retryAfter,omitempty"`
}

func writeProblem(c echo.Context, p problemDetails) error {
	p.Instance = c.Request().URL.Path
	return c.JSON(p.Status, p)
}

// tooManyRequestsError rejects a throttled request, telling the client how many
// seconds to wait in both the Retry-After header and the body
func tooManyRequestsError(c echo.Context, retryAfter int) error {
	if retryAfter < 1 {
		retryAfter = 1
	}
	c.Response().Header().Set(echo.HeaderRetryAfter, strconv.Itoa(retryAfter))
	return writeProblem(c, problemDetails{
		Type:       errorTypeRateLimit,
		Title:      "Rate Limit Exceeded",
		Status:     http.StatusTooManyRequests,
		Detail:     "Too many requests. Please retry after " + strconv.Itoa(retryAfter) + " seconds.",
		RetryAfter: retryAfter,
	})
}
