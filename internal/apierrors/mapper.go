package apierrors

import (
	"errors"
	"strings"

	"realtime-bridge/internal/store"
	voiceProcessor "realtime-bridge/internal/voicecall/processor"
	"realtime-bridge/internal/voicecall/streamauth"
)

// MapError converts domain/processor errors to APIErrors.
//
// If the error is already an APIError, it returns it as-is.
// If the error is a known domain error, it maps it to an appropriate APIError.
// If the error is unknown, it returns a sanitized InternalError (500).
func MapError(err error) *APIError {
	if err == nil {
		return nil
	}

	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr
	}

	switch {
	// Map voice call processor errors
	case errors.Is(err, voiceProcessor.ErrCallNotFound):
		return NotFound(CodeCallNotFound, "Call not found")

	case errors.Is(err, voiceProcessor.ErrNoAgentAvailable):
		return ServiceUnavailable(CodeNoAgentAvailable, "No voice agent is available", err)

	// Map stream token errors
	case errors.Is(err, streamauth.ErrInvalidToken):
		return Unauthorized("Invalid stream token")

	// Map store errors
	case errors.Is(err, store.ErrNotFound):
		return NotFound(CodeNotFound, "Resource not found")

	case errors.Is(err, store.ErrAlreadyExists):
		return Conflict(CodeConflict, "Resource already exists")

	default:
		return mapExternalServiceError(err)
	}
}

// mapExternalServiceError attempts to identify external service errors
// and map them to appropriate service-specific error responses.
func mapExternalServiceError(err error) *APIError {
	errMsg := strings.ToLower(err.Error())

	// Realtime model errors (OpenAI)
	if strings.Contains(errMsg, "openai") || strings.Contains(errMsg, "realtime") {
		return ServiceUnavailable(
			CodeAIServiceError,
			"AI service is temporarily unavailable. Please try again later.",
			err,
		)
	}

	// Telephony errors (Twilio)
	if strings.Contains(errMsg, "twilio") || strings.Contains(errMsg, "twiml") {
		return ServiceUnavailable(
			CodeTelephonyError,
			"Telephony provider is temporarily unavailable. Please try again later.",
			err,
		)
	}

	// Default: Unknown error - return sanitized 500
	return InternalError(err)
}
