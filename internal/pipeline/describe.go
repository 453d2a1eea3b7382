package pipeline

import (
	"context"
	"errors"

	"github.com/eccentric-easel/easel/internal/models"
)

// Describe renders err as the one message shown to the operator or returned
// to an HTTP caller.
func Describe(err error) string {
	if err == nil {
		return ""
	}
	if errors.Is(err, context.Canceled) {
		return "Cancelled"
	}

	kind, ok := models.KindOf(err)
	if !ok {
		return "Error: " + err.Error()
	}

	switch kind {
	case models.ConfigError:
		return "Configuration error: " + err.Error()
	case models.CredentialError:
		return "Missing credentials: " + err.Error()
	case models.GenerationError:
		return "Error generating item info: " + err.Error()
	case models.ValidationError:
		return "Invalid input: " + err.Error()
	case models.UploadError:
		return "Error adding item to catalog: " + err.Error()
	case models.ImageDecodeError:
		return "Error reading image: " + err.Error()
	case models.IOError:
		return "I/O error: " + err.Error()
	default:
		return "Error: " + err.Error()
	}
}
