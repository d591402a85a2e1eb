package tools

import (
	"errors"
	"fmt"

	"github.com/rotisserie/eris"

	"github.com/sells-group/gpu-mcp/pkg/gpu"
)

// ErrInvalidParams marks parameter-contract violations. These fail the tool
// call itself, before any network activity; everything else is translated
// into a normal text result by Translate.
var ErrInvalidParams = errors.New("invalid parameters")

// paramErrorf builds a parameter-contract violation.
func paramErrorf(format string, args ...any) error {
	return eris.Wrapf(ErrInvalidParams, format, args...)
}

const apiName = "Géoportail de l'Urbanisme"

// Translate maps an upstream failure to a stable user-facing diagnostic.
// The result is always a complete sentence prefixed with "Error: " and is
// returned to the caller as a successful text payload.
func Translate(err error) string {
	if se, ok := gpu.AsStatusError(err); ok {
		switch se.Status {
		case 400:
			return fmt.Sprintf("Error: Invalid request parameters — %s. Check your input values and try again.", se.Message)
		case 404:
			return "Error: Resource not found. The requested resource does not exist. Use a search tool to find valid IDs."
		case 429:
			return "Error: Rate limit exceeded. Please wait a moment before retrying."
		case 500, 502, 503:
			return fmt.Sprintf("Error: The %s API is temporarily unavailable (status %d). Try again later.", apiName, se.Status)
		default:
			msg := fmt.Sprintf("Error: API request failed with status %d.", se.Status)
			if se.Message != "" {
				msg += " " + se.Message
			}
			return msg
		}
	}

	if gpu.IsTimeout(err) {
		return fmt.Sprintf("Error: Request timed out. The %s API did not respond within the configured timeout — try again.", apiName)
	}
	if gpu.IsUnreachable(err) {
		return fmt.Sprintf("Error: Cannot reach the %s API. Check your network connection or the base-URL configuration.", apiName)
	}

	return "Error: " + err.Error()
}
