package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/a-h/templ"

	"github.com/dmitrymomot/httpkit/pkg/jsonenc"
	"github.com/dmitrymomot/httpkit/pkg/logger"
	"github.com/dmitrymomot/httpkit/pkg/negotiate"
	"github.com/dmitrymomot/httpkit/pkg/requestid"
)

// ErrorPageParams contains data for rendering error pages
type ErrorPageParams struct {
	Error      string
	StatusCode int
	RequestID  string
	RetryURL   string
}

// ErrorHandlerConfig configures the default error handler
type ErrorHandlerConfig struct {
	// ErrorPage renders full error page for HTML requests.
	// Plain text is written when it is nil.
	ErrorPage func(ErrorPageParams) templ.Component
}

// ErrorInfo contains classified error information
type ErrorInfo struct {
	StatusCode int
	Key        string
	LogLevel   slog.Level
}

type errorBody struct {
	Error     errorDetail `json:"error"`
	RequestID string      `json:"request_id,omitempty"`
}

type errorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func isClientError(statusCode int) bool {
	return statusCode >= http.StatusBadRequest && statusCode < http.StatusInternalServerError
}

// classifyError analyzes the error and returns structured error information
func classifyError(err error) ErrorInfo {
	info := ErrorInfo{
		StatusCode: http.StatusInternalServerError,
		Key:        ErrInternalServerError.Key,
	}

	var httpErr HTTPError
	switch {
	case errors.As(err, &httpErr):
		info.StatusCode = httpErr.Code
		info.Key = httpErr.Key
	case errors.Is(err, negotiate.ErrInvalidJSON), errors.Is(err, negotiate.ErrInvalidForm):
		info.StatusCode = http.StatusBadRequest
		info.Key = ErrBadRequest.Key
	case errors.Is(err, jsonenc.ErrNotSerializable), errors.Is(err, jsonenc.ErrTooDeep):
		info.Key = "not_serializable"
	}

	info.LogLevel = slog.LevelError
	if isClientError(info.StatusCode) {
		info.LogLevel = slog.LevelWarn
	}
	return info
}

// NewErrorHandler creates the default error handler. The body format follows
// the negotiated response format: JSON for json and csv clients, the
// configured error page for html, plain text otherwise.
// Errors from interrupted streams are only logged.
func NewErrorHandler(log *slog.Logger, cfg ErrorHandlerConfig) ErrorHandler[Context] {
	if log == nil {
		log = slog.Default()
	}

	return func(ctx Context, err error) {
		r := ctx.Request()
		w := ctx.ResponseWriter()
		requestID := requestid.FromContext(r.Context())
		info := classifyError(err)

		log.LogAttrs(r.Context(), info.LogLevel, "request error",
			logger.RequestID(requestID),
			logger.Error(err),
			logger.Status(info.StatusCode),
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			logger.Component("error_handler"),
		)

		if errors.Is(err, ErrStreamInterrupted) {
			return
		}

		switch negotiate.ResponseFormat(r, nil) {
		case negotiate.FormatJSON, negotiate.FormatCSV:
			writeJSONError(w, info, requestID)
		case negotiate.FormatHTML:
			if cfg.ErrorPage != nil {
				renderErrorPage(ctx, cfg, info, requestID, log)
				return
			}
			http.Error(w, info.Key, info.StatusCode)
		default:
			http.Error(w, info.Key, info.StatusCode)
		}
	}
}

func writeJSONError(w http.ResponseWriter, info ErrorInfo, requestID string) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(info.StatusCode)
	_ = json.NewEncoder(w).Encode(errorBody{
		Error: errorDetail{
			Code:    info.Key,
			Message: http.StatusText(info.StatusCode),
		},
		RequestID: requestID,
	})
}

func renderErrorPage(ctx Context, cfg ErrorHandlerConfig, info ErrorInfo, requestID string, log *slog.Logger) {
	params := ErrorPageParams{
		Error:      info.Key,
		StatusCode: info.StatusCode,
		RequestID:  requestID,
		RetryURL:   ctx.Request().URL.Path,
	}

	resp := HTML(cfg.ErrorPage(params), WithHTMLStatus(info.StatusCode))
	if renderErr := resp.Render(ctx.ResponseWriter(), ctx.Request()); renderErr != nil {
		log.Error("failed to render error page",
			logger.RequestID(requestID),
			logger.Error(renderErr),
			logger.Event("render_error_page"),
		)
		http.Error(ctx.ResponseWriter(), ErrInternalServerError.Key, http.StatusInternalServerError)
	}
}
