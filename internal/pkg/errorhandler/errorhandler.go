package errorhandler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/tidyhome/tidyhome-api/internal/pkg/logger"
	"github.com/tidyhome/tidyhome-api/internal/pkg/response"
)

// HandleError logs err with the request id and sends an error response.
func HandleError(ctx context.Context, w http.ResponseWriter, status int, code, message string, err error) {
	event := logger.FromContext(ctx).Error().
		Str("request_id", logger.RequestID(ctx)).
		Str("error_code", code).
		Str("error_message", message).
		Int("status_code", status)

	if err != nil {
		event.Err(err)
	}

	event.Msg("Request error")

	response.ErrorWithError(w, status, code, message, err)
}

// HandleValidationError logs field failures at warn level and sends a 422.
func HandleValidationError(ctx context.Context, w http.ResponseWriter, details interface{}) {
	errJSON, _ := json.Marshal(details)
	logger.FromContext(ctx).Warn().
		Str("request_id", logger.RequestID(ctx)).
		RawJSON("validation_errors", errJSON).
		Msg("Validation error")

	response.ValidationError(w, details)
}

// HandlePanicError logs a recovered panic with its stack and sends a 500.
func HandlePanicError(ctx context.Context, w http.ResponseWriter, panicErr interface{}, stackTrace string) {
	logger.FromContext(ctx).Error().
		Str("request_id", logger.RequestID(ctx)).
		Interface("panic_error", panicErr).
		Str("panic_stack", stackTrace).
		Msg("Request panic error")

	response.InternalError(w)
}
