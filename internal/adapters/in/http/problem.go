package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"drivefood/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// ContentTypeProblemJSON is the media type of every error response.
const ContentTypeProblemJSON = "application/problem+json"

// ProblemDetail is an RFC 7807 document. Kind is a stable extension member clients
// can branch on.
type ProblemDetail struct {
	Type       string         `json:"type"`
	Title      string         `json:"title"`
	Status     int            `json:"status"`
	Detail     string         `json:"detail,omitempty"`
	Instance   string         `json:"instance,omitempty"`
	Kind       errs.Kind      `json:"kind"`
	Extensions map[string]any `json:"extensions,omitempty"`
}

func (p ProblemDetail) Error() string {
	if p.Detail != "" {
		return fmt.Sprintf("%s: %s", p.Title, p.Detail)
	}
	return p.Title
}

func (p ProblemDetail) WithDetail(detail string) ProblemDetail {
	p.Detail = detail
	return p
}

var problemByKind = map[errs.Kind]ProblemDetail{
	errs.KindValidation:     {Type: "/problems/validation-error", Title: "Validation Error", Status: http.StatusBadRequest},
	errs.KindNotFound:       {Type: "/problems/not-found", Title: "Resource Not Found", Status: http.StatusNotFound},
	errs.KindInvalidState:   {Type: "/problems/invalid-state", Title: "Conflict", Status: http.StatusConflict},
	errs.KindAmountMismatch: {Type: "/problems/amount-mismatch", Title: "Amount Mismatch", Status: http.StatusUnprocessableEntity},
	errs.KindGateway:        {Type: "/problems/gateway-error", Title: "Payment Gateway Error", Status: http.StatusBadGateway},
	errs.KindGatewayTimeout: {Type: "/problems/gateway-timeout", Title: "Payment Gateway Timeout", Status: http.StatusGatewayTimeout},
	errs.KindInternal:       {Type: "/problems/internal-error", Title: "Internal Server Error", Status: http.StatusInternalServerError},
}

// ProblemFor classifies err. Internal errors keep their cause out of the detail.
func ProblemFor(err error) ProblemDetail {
	var problem ProblemDetail
	if errors.As(err, &problem) {
		return problem
	}

	var httpErr *echo.HTTPError
	if errors.As(err, &httpErr) {
		kind := kindForStatus(httpErr.Code)
		p := problemByKind[kind]
		p.Kind = kind
		p.Status = httpErr.Code
		p.Title = http.StatusText(httpErr.Code)
		p.Detail = fmt.Sprint(httpErr.Message)
		return p
	}

	kind := errs.KindOf(err)
	p := problemByKind[kind]
	p.Kind = kind
	if kind != errs.KindInternal {
		p.Detail = err.Error()
	}
	return p
}

func kindForStatus(status int) errs.Kind {
	switch {
	case status == http.StatusNotFound:
		return errs.KindNotFound
	case status >= 400 && status < 500:
		return errs.KindValidation
	default:
		return errs.KindInternal
	}
}

// NewErrorHandler renders every error returned by a handler as a problem document.
func NewErrorHandler(logger *slog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		problem := ProblemFor(err)
		if problem.Instance == "" {
			problem.Instance = c.Request().URL.Path
		}

		ctx := c.Request().Context()
		if problem.Status >= http.StatusInternalServerError {
			logger.ErrorContext(ctx, "request failed", "error", err, "path", problem.Instance, "kind", problem.Kind)
		} else {
			logger.DebugContext(ctx, "request rejected", "error", err, "path", problem.Instance, "kind", problem.Kind)
		}

		body, marshalErr := json.Marshal(problem)
		if marshalErr != nil {
			_ = c.NoContent(problem.Status)
			return
		}
		if c.Request().Method == http.MethodHead {
			_ = c.NoContent(problem.Status)
			return
		}
		_ = c.Blob(problem.Status, ContentTypeProblemJSON, body)
	}
}
